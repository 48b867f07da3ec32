package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/store"
)

// --- Inputs ---

type ImageInput struct {
	ImageURL  string `json:"imageUrl" binding:"required"`
	IsPrimary bool   `json:"isPrimary"`
}

type VariantInput struct {
	Color   string  `json:"color"`
	Storage string  `json:"storage"`
	SKU     *string `json:"sku"`
	Price   float64 `json:"price" binding:"gte=0"`
	Stock   int     `json:"stock" binding:"gte=0"`
}

type CreateProductInput struct {
	Name         string         `json:"name" binding:"required"`
	Slug         string         `json:"slug"`
	Price        float64        `json:"price" binding:"gte=0"`
	ComparePrice *float64       `json:"comparePrice" binding:"omitempty,gte=0"`
	CategoryID   int64          `json:"categoryId" binding:"required,gt=0"`
	Description  *string        `json:"description"`
	Images       []ImageInput   `json:"images" binding:"dive"`
	Variants     []VariantInput `json:"variants" binding:"dive"`
}

type BulkDeleteInput struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// ListProducts is the handler for GET /api/products
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.Store.ListProducts(c.Request.Context(), store.ProductFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("q"),
	})
	if err != nil {
		h.serverError(c, "Failed to fetch products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct is the handler for GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.Store.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Product not found", "Failed to fetch product", zap.Int64("product_id", id))
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct is the handler for POST /api/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product name is required"})
		return
	}

	// 2. --- Exactly one primary image ---
	primaries := 0
	for _, img := range input.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only one image can be primary"})
		return
	}

	// 3. --- Build Product Model ---
	product := &models.Product{
		Name:         name,
		Slug:         input.Slug,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		CategoryID:   input.CategoryID,
		Description:  input.Description,
	}
	if product.Slug == "" {
		product.Slug = slug.Make(name)
	}
	for i, img := range input.Images {
		product.Images = append(product.Images, models.ProductImage{
			ImageURL:  img.ImageURL,
			IsPrimary: img.IsPrimary || (primaries == 0 && i == 0),
		})
	}
	for _, v := range input.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			Color: v.Color, Storage: v.Storage, SKU: v.SKU, Price: v.Price, Stock: v.Stock,
		})
	}

	// 4. --- Save (product, images, variants in one transaction) ---
	id, err := h.Store.CreateProduct(c.Request.Context(), product)
	if err != nil {
		h.storeError(c, err, "Category not found", "Failed to create product", zap.String("slug", product.Slug))
		return
	}
	created(c, id)
}

// UpdateProduct is the handler for PUT /api/products/:id
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p models.ProductPatch
	if !bindPatch(c, &p) {
		return
	}
	if err := h.Store.UpdateProduct(c.Request.Context(), id, p); err != nil {
		h.storeError(c, err, "Product not found", "Failed to update product", zap.Int64("product_id", id))
		return
	}
	success(c)
}

// DeleteProduct is the handler for DELETE /api/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteProduct(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Product not found", "Failed to delete product", zap.Int64("product_id", id))
		return
	}
	success(c)
}

// SetPrimaryImage is the handler for PUT /api/products/:id/images/:imageId/primary
func (h *Handlers) SetPrimaryImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		return
	}
	if err := h.Store.SetPrimaryImage(c.Request.Context(), id, imageID); err != nil {
		h.storeError(c, err, "Image not found", "Failed to set primary image",
			zap.Int64("product_id", id), zap.Int64("image_id", imageID))
		return
	}
	success(c)
}

// BulkDeleteProducts is the handler for POST /api/admin/products/bulk-delete
func (h *Handlers) BulkDeleteProducts(c *gin.Context) {
	var input BulkDeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids must be a non-empty array of product ids"})
		return
	}

	deleted, err := h.Store.BulkDeleteProducts(c.Request.Context(), input.IDs)
	if err != nil {
		h.serverError(c, "Failed to delete products", err, zap.Int64s("product_ids", input.IDs))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}
