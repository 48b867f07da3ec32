package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
)

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

// ListCategories is the handler for GET /api/categories
func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		h.serverError(c, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory is the handler for GET /api/categories/:id
func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.Store.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Category not found", "Failed to fetch category", zap.Int64("category_id", id))
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory is the handler for POST /api/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	category := &models.Category{Name: name, Slug: input.Slug}
	if category.Slug == "" {
		category.Slug = slug.Make(name)
	}

	id, err := h.Store.CreateCategory(c.Request.Context(), category)
	if err != nil {
		h.serverError(c, "Failed to create category", err, zap.String("slug", category.Slug))
		return
	}
	created(c, id)
}

// UpdateCategory is the handler for PUT /api/categories/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p models.CategoryPatch
	if !bindPatch(c, &p) {
		return
	}
	if err := h.Store.UpdateCategory(c.Request.Context(), id, p); err != nil {
		h.storeError(c, err, "Category not found", "Failed to update category", zap.Int64("category_id", id))
		return
	}
	success(c)
}

// DeleteCategory is the handler for DELETE /api/categories/:id
// A category that still has products is answered with 409.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteCategory(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Category not found", "Failed to delete category", zap.Int64("category_id", id))
		return
	}
	success(c)
}
