package handler

import (
	"errors"
	"net/http"
	"strconv"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/service"
	"reviewhub/internal/api/validate"

	"github.com/gin-gonic/gin"
)

// pagination reads ?page= and ?page_size=, clamping to sane bounds.
func pagination(c *gin.Context, defaultSize, maxSize int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxSize {
		pageSize = defaultSize
	}
	return page, pageSize
}

// respondServiceError maps the service sentinels onto the error taxonomy:
// validation and duplicates are 400, denial is 403, unresolved targets 404.
// Anything unrecognized is a 500 with no detail leaked.
func respondServiceError(c *gin.Context, err error) {
	var fieldErr *validate.FieldError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message, "field": fieldErr.Field})
		return
	}

	switch {
	case errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})

	case errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidConfirmationCode),
		errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// actor pulls the authenticated identity placed in the context by
// AuthMiddleware.
func actor(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

func actorRole(c *gin.Context) models.Role {
	value, exists := c.Get("role")
	if !exists {
		return ""
	}
	role, _ := value.(models.Role)
	return role
}
