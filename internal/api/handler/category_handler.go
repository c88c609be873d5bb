package handler

import (
	"net/http"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/service"
	"reviewhub/internal/config"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	cfg             *config.Config
}

func NewCategoryHandler(categoryService service.CategoryService, cfg *config.Config) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, cfg: cfg}
}

// RegisterRoutes wires the category endpoints: reads are open, writes are
// admin-only.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", authMW, adminMW, h.Create)
	rg.DELETE("/:slug", authMW, adminMW, h.Delete)
}

// List returns categories with pagination and optional name search
// GET /api/v1/categories?search=&page=&page_size=
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pagination(c, h.cfg.PageSize, h.cfg.MaxPageSize)

	categories, err := h.categoryService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Delete removes a category by slug; its titles survive with category unset
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
