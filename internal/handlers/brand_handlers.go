package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/models"
)

// CatalogSourceHeader tells clients whether a listing came from the database
// or the bundled dataset.
const CatalogSourceHeader = "X-Catalog-Source"

// CreateBrandInput defines the JSON input for creating a brand
type CreateBrandInput struct {
	Name      string  `json:"name" binding:"required"`
	Slug      string  `json:"slug"`
	Logo      *string `json:"logo"`
	IsPopular bool    `json:"isPopular"`
	IsActive  *bool   `json:"isActive"`
	SortOrder int     `json:"sortOrder"`
}

// ListBrands is the handler for GET /api/brands
// It always answers 200; an empty or unreachable database serves the bundled brands.
func (h *Handlers) ListBrands(c *gin.Context) {
	brands, source := h.Catalog.Brands(c.Request.Context())
	c.Header(CatalogSourceHeader, string(source))
	c.JSON(http.StatusOK, brands)
}

// Shop is the handler for GET /api/shop
func (h *Handlers) Shop(c *gin.Context) {
	page, source := h.Catalog.Shop(c.Request.Context(), catalog.ShopQuery{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Sort:     c.Query("sort"),
	})
	c.Header(CatalogSourceHeader, string(source))
	c.JSON(http.StatusOK, page)
}

// AdminListBrands is the handler for GET /api/admin/brands
// Inactive brands are included.
func (h *Handlers) AdminListBrands(c *gin.Context) {
	brands, err := h.Store.ListBrands(c.Request.Context(), false)
	if err != nil {
		h.serverError(c, "Failed to fetch brands", err)
		return
	}
	catalog.SortBrands(brands)
	c.JSON(http.StatusOK, brands)
}

// GetBrand is the handler for GET /api/admin/brands/:id
func (h *Handlers) GetBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	brand, err := h.Store.GetBrand(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Brand not found", "Failed to fetch brand", zap.Int64("brand_id", id))
		return
	}
	c.JSON(http.StatusOK, brand)
}

// CreateBrand is the handler for POST /api/admin/brands
func (h *Handlers) CreateBrand(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name is required"})
		return
	}

	// 2. --- Create Brand Model ---
	brand := &models.Brand{
		Name:      name,
		Slug:      input.Slug,
		Logo:      input.Logo,
		IsPopular: input.IsPopular,
		IsActive:  input.IsActive == nil || *input.IsActive,
		SortOrder: input.SortOrder,
	}
	if brand.Slug == "" {
		brand.Slug = slug.Make(name)
	}

	// 3. --- Save to Database ---
	id, err := h.Store.CreateBrand(c.Request.Context(), brand)
	if err != nil {
		h.serverError(c, "Failed to create brand", err, zap.String("slug", brand.Slug))
		return
	}
	created(c, id)
}

// UpdateBrand is the handler for PUT /api/admin/brands/:id
func (h *Handlers) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p models.BrandPatch
	if !bindPatch(c, &p) {
		return
	}
	if err := h.Store.UpdateBrand(c.Request.Context(), id, p); err != nil {
		h.storeError(c, err, "Brand not found", "Failed to update brand", zap.Int64("brand_id", id))
		return
	}
	success(c)
}

// DeleteBrand is the handler for DELETE /api/admin/brands/:id
func (h *Handlers) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteBrand(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Brand not found", "Failed to delete brand", zap.Int64("brand_id", id))
		return
	}
	success(c)
}
