package models

import (
	"strings"

	"github.com/01moynul/storefront-golang/internal/patch"
)

// Category defines the struct for the 'categories' table
type Category struct {
	ID   int64  `json:"id" db:"id" yaml:"-"`
	Name string `json:"name" db:"name" yaml:"name"`
	Slug string `json:"slug" db:"slug" yaml:"slug"`
}

type CategoryPatch struct {
	Name patch.Field[string] `json:"name"`
	Slug patch.Field[string] `json:"slug"`
}

func (p CategoryPatch) Validate() error {
	if err := patch.NotNull("name", p.Name); err != nil {
		return err
	}
	if err := patch.NotNull("slug", p.Slug); err != nil {
		return err
	}
	if p.Name.HasValue() && strings.TrimSpace(p.Name.Value) == "" {
		return errBlank("name")
	}
	if p.Slug.HasValue() && strings.TrimSpace(p.Slug.Value) == "" {
		return errBlank("slug")
	}
	return nil
}
