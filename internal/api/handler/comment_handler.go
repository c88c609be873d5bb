package handler

import (
	"net/http"
	"strconv"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/service"
	"reviewhub/internal/config"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
	cfg            *config.Config
}

func NewCommentHandler(commentService service.CommentService, cfg *config.Config) *CommentHandler {
	return &CommentHandler{commentService: commentService, cfg: cfg}
}

// RegisterRoutes nests the comment endpoints under a title's review.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	comments := rg.Group("/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.GetByID)
		comments.POST("", authMW, h.Create)
		comments.PATCH("/:comment_id", authMW, h.Update)
		comments.DELETE("/:comment_id", authMW, h.Delete)
	}
}

// List returns a review's comments, newest first
// GET /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c, h.cfg.PageSize, h.cfg.MaxPageSize)

	comments, err := h.commentService.ListByReview(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// GetByID returns one comment
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) GetByID(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	comment, err := h.commentService.GetByID(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Create posts a comment under a review
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return
	}

	userID, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, titleID, reviewID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update edits a comment (owner, moderator or admin)
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	userID, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), userID, actorRole(c), titleID, reviewID, commentID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment (owner, moderator or admin)
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, commentID, ok := commentPath(c)
	if !ok {
		return
	}

	userID, ok := actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), userID, actorRole(c), titleID, reviewID, commentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func commentPath(c *gin.Context) (int64, int64, int64, bool) {
	titleID, reviewID, ok := reviewPath(c)
	if !ok {
		return 0, 0, 0, false
	}
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return 0, 0, 0, false
	}
	return titleID, reviewID, commentID, true
}
