package models

import (
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/patch"
)

// Product is the model for the 'products' table.
// Nullable columns are pointers so they serialize as null.
type Product struct {
	ID           int64    `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Slug         string   `json:"slug" db:"slug"`
	Price        float64  `json:"price" db:"price"`
	ComparePrice *float64 `json:"comparePrice" db:"compare_price"`
	CategoryID   int64    `json:"categoryId" db:"category_id"`
	Description  *string  `json:"description" db:"description"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Listing convenience: first primary image (or first image) URL.
	PrimaryImage *string `json:"primaryImage,omitempty" db:"primary_image"`

	// Joins (Not in DB table, populated manually)
	Images   []ProductImage   `json:"images,omitempty" db:"-"`
	Variants []ProductVariant `json:"variants,omitempty" db:"-"`
}

// ProductImage is the model for the 'product_images' table
type ProductImage struct {
	ID        int64  `json:"id" db:"id"`
	ProductID int64  `json:"productId" db:"product_id"`
	ImageURL  string `json:"imageUrl" db:"image_url"`
	IsPrimary bool   `json:"isPrimary" db:"is_primary"`
}

// ProductVariant is the model for the 'product_variants' table
type ProductVariant struct {
	ID        int64   `json:"id" db:"id"`
	ProductID int64   `json:"productId" db:"product_id"`
	Color     string  `json:"color" db:"color"`
	Storage   string  `json:"storage" db:"storage"`
	SKU       *string `json:"sku" db:"sku"`
	Price     float64 `json:"price" db:"price"`
	Stock     int     `json:"stock" db:"stock"`
}

// ProductPatch is the body of PUT /api/products/:id
type ProductPatch struct {
	Name         patch.Field[string]  `json:"name"`
	Slug         patch.Field[string]  `json:"slug"`
	Price        patch.Field[float64] `json:"price"`
	ComparePrice patch.Field[float64] `json:"comparePrice"`
	CategoryID   patch.Field[int64]   `json:"categoryId"`
	Description  patch.Field[string]  `json:"description"`
}

func (p ProductPatch) Validate() error {
	for _, err := range []error{
		patch.NotNull("name", p.Name),
		patch.NotNull("slug", p.Slug),
		patch.NotNull("price", p.Price),
		patch.NotNull("categoryId", p.CategoryID),
	} {
		if err != nil {
			return err
		}
	}
	if p.Name.HasValue() && strings.TrimSpace(p.Name.Value) == "" {
		return errBlank("name")
	}
	if p.Slug.HasValue() && strings.TrimSpace(p.Slug.Value) == "" {
		return errBlank("slug")
	}
	if p.Price.HasValue() && p.Price.Value < 0 {
		return errNegative("price")
	}
	if p.ComparePrice.HasValue() && p.ComparePrice.Value < 0 {
		return errNegative("comparePrice")
	}
	return nil
}
