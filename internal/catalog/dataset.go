package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"

	"github.com/01moynul/storefront-golang/internal/models"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Dataset is the bundled catalog. It is parsed once and never mutated; the
// accessors hand out copies.
type Dataset struct {
	Categories []models.Category `yaml:"categories"`
	Brands     []models.Brand    `yaml:"brands"`
	Products   []ProductSeed     `yaml:"products,omitempty"`
}

// ProductSeed is a product as written in the dataset; Category is a slug.
type ProductSeed struct {
	Name         string   `yaml:"name"`
	Slug         string   `yaml:"slug"`
	Price        float64  `yaml:"price"`
	ComparePrice *float64 `yaml:"comparePrice,omitempty"`
	Category     string   `yaml:"category"`
	Description  string   `yaml:"description,omitempty"`
	Images       []string `yaml:"images,omitempty"`
}

// LoadDataset parses the embedded fallback.yaml.
func LoadDataset() (*Dataset, error) {
	return ParseDataset(fallbackYAML)
}

// ParseDataset decodes and validates a dataset. Missing slugs are derived
// from the name.
func ParseDataset(b []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	categories := make(map[string]bool, len(d.Categories))
	for i := range d.Categories {
		c := &d.Categories[i]
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("dataset category %d: name is required", i)
		}
		if c.Slug == "" {
			c.Slug = slug.Make(c.Name)
		}
		categories[c.Slug] = true
	}
	for i := range d.Brands {
		b := &d.Brands[i]
		if strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("dataset brand %d: name is required", i)
		}
		if b.Slug == "" {
			b.Slug = slug.Make(b.Name)
		}
	}
	for i := range d.Products {
		p := &d.Products[i]
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("dataset product %d: name is required", i)
		}
		if p.Slug == "" {
			p.Slug = slug.Make(p.Name)
		}
		if !categories[p.Category] {
			return nil, fmt.Errorf("dataset product %q: unknown category %q", p.Slug, p.Category)
		}
	}
	return &d, nil
}

// StaticBrands returns a copy of the dataset brands with positional ids.
func (d *Dataset) StaticBrands() []models.Brand {
	out := make([]models.Brand, len(d.Brands))
	copy(out, d.Brands)
	for i := range out {
		out[i].ID = int64(i + 1)
	}
	return out
}

// StaticCategories returns a copy of the dataset categories with positional ids.
func (d *Dataset) StaticCategories() []models.Category {
	out := make([]models.Category, len(d.Categories))
	copy(out, d.Categories)
	for i := range out {
		out[i].ID = int64(i + 1)
	}
	return out
}

// StaticProducts converts the seeds into products with positional ids that
// agree with StaticCategories. The first image is the primary one.
func (d *Dataset) StaticProducts() []models.Product {
	catIDs := make(map[string]int64, len(d.Categories))
	for i, c := range d.Categories {
		catIDs[c.Slug] = int64(i + 1)
	}

	out := make([]models.Product, len(d.Products))
	for i, seed := range d.Products {
		p := seed.Product(catIDs[seed.Category])
		p.ID = int64(i + 1)
		for j := range p.Images {
			p.Images[j].ID = int64(j + 1)
			p.Images[j].ProductID = p.ID
		}
		if len(p.Images) > 0 {
			url := p.Images[0].ImageURL
			p.PrimaryImage = &url
		}
		out[i] = p
	}
	return out
}

// Product builds the insertable product for a resolved category id.
func (s ProductSeed) Product(categoryID int64) models.Product {
	p := models.Product{
		Name:       s.Name,
		Slug:       s.Slug,
		Price:      s.Price,
		CategoryID: categoryID,
	}
	if s.ComparePrice != nil {
		v := *s.ComparePrice
		p.ComparePrice = &v
	}
	if s.Description != "" {
		desc := s.Description
		p.Description = &desc
	}
	for i, url := range s.Images {
		p.Images = append(p.Images, models.ProductImage{ImageURL: url, IsPrimary: i == 0})
	}
	return p
}
