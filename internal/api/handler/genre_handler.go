package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/service"
	"reviewhub/internal/config"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
	cfg          *config.Config
}

func NewGenreHandler(genreService service.GenreService, cfg *config.Config) *GenreHandler {
	return &GenreHandler{genreService: genreService, cfg: cfg}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", authMW, adminMW, h.Create)
	rg.DELETE("/:slug", authMW, adminMW, h.Delete)
}

// List returns genres with pagination and optional name search
// GET /api/v1/genres?search=&page=&page_size=
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pagination(c, h.cfg.PageSize, h.cfg.MaxPageSize)

	genres, err := h.genreService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, genres)
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

// Delete removes a genre by slug
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
