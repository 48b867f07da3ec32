package catalog

import (
	"sort"
	"strings"

	"github.com/01moynul/storefront-golang/internal/models"
)

// Shop sort keys accepted by ?sort=.
const (
	SortFeatured  = "featured"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
	SortNewest    = "newest"
)

// SortBrands orders popular brands first, then by ascending sortOrder.
// Equal brands keep their input order.
func SortBrands(brands []models.Brand) {
	sort.SliceStable(brands, func(i, j int) bool {
		a, b := brands[i], brands[j]
		if a.IsPopular != b.IsPopular {
			return a.IsPopular
		}
		return a.SortOrder < b.SortOrder
	})
}

// NormalizeSort maps unknown keys to SortFeatured.
func NormalizeSort(key string) string {
	switch key {
	case SortPriceAsc, SortPriceDesc, SortName, SortNewest:
		return key
	default:
		return SortFeatured
	}
}

// SortProducts sorts in place and returns the key actually applied.
// Featured keeps the input order.
func SortProducts(products []models.Product, key string) string {
	key = NormalizeSort(key)

	var less func(a, b models.Product) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case SortName:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNewest:
		less = func(a, b models.Product) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
	default:
		return key
	}

	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
	return key
}
