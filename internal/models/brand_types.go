package models

import (
	"strings"

	"github.com/01moynul/storefront-golang/internal/patch"
)

// Brand defines the struct for the 'brands' table
type Brand struct {
	ID        int64   `json:"id" db:"id" yaml:"-"`
	Name      string  `json:"name" db:"name" yaml:"name"`
	Slug      string  `json:"slug" db:"slug" yaml:"slug"`
	Logo      *string `json:"logo" db:"logo" yaml:"logo,omitempty"`
	IsPopular bool    `json:"isPopular" db:"is_popular" yaml:"isPopular"`
	IsActive  bool    `json:"isActive" db:"is_active" yaml:"isActive"`
	SortOrder int     `json:"sortOrder" db:"sort_order" yaml:"sortOrder"`
}

// BrandPatch is the body of PUT /api/admin/brands/:id
type BrandPatch struct {
	Name      patch.Field[string] `json:"name"`
	Slug      patch.Field[string] `json:"slug"`
	Logo      patch.Field[string] `json:"logo"`
	IsPopular patch.Field[bool]   `json:"isPopular"`
	IsActive  patch.Field[bool]   `json:"isActive"`
	SortOrder patch.Field[int]    `json:"sortOrder"`
}

func (p BrandPatch) Validate() error {
	for _, err := range []error{
		patch.NotNull("name", p.Name),
		patch.NotNull("slug", p.Slug),
		patch.NotNull("isPopular", p.IsPopular),
		patch.NotNull("isActive", p.IsActive),
		patch.NotNull("sortOrder", p.SortOrder),
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
	return nil
}
