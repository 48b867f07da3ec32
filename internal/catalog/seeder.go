package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
)

// Writer is the slice of the store the seeder needs. Each Ensure call
// inserts only when no row with the same slug exists.
type Writer interface {
	EnsureCategory(ctx context.Context, c *models.Category) (int64, bool, error)
	EnsureBrand(ctx context.Context, b *models.Brand) (int64, bool, error)
	EnsureProduct(ctx context.Context, p *models.Product) (int64, bool, error)
}

// SeedCount is the outcome for one table.
type SeedCount struct {
	Created int `json:"created" yaml:"created"`
	Present int `json:"present" yaml:"present"`
}

func (c *SeedCount) add(created bool) {
	if created {
		c.Created++
	} else {
		c.Present++
	}
}

type SeedReport struct {
	Categories SeedCount `json:"categories" yaml:"categories"`
	Brands     SeedCount `json:"brands" yaml:"brands"`
	Products   SeedCount `json:"products" yaml:"products"`
}

// Seeder loads the dataset into the database. Running it again, or from two
// processes at once, leaves exactly one row per slug.
type Seeder struct {
	writer Writer
	data   *Dataset
	log    *zap.Logger
}

func NewSeeder(writer Writer, data *Dataset, log *zap.Logger) *Seeder {
	return &Seeder{writer: writer, data: data, log: log.Named("seeder")}
}

func (s *Seeder) Seed(ctx context.Context) (SeedReport, error) {
	var report SeedReport

	categoryIDs := make(map[string]int64, len(s.data.Categories))
	for _, c := range s.data.Categories {
		c := c
		id, created, err := s.writer.EnsureCategory(ctx, &c)
		if err != nil {
			return report, fmt.Errorf("seed category %q: %w", c.Slug, err)
		}
		categoryIDs[c.Slug] = id
		report.Categories.add(created)
	}

	for _, b := range s.data.Brands {
		b := b
		_, created, err := s.writer.EnsureBrand(ctx, &b)
		if err != nil {
			return report, fmt.Errorf("seed brand %q: %w", b.Slug, err)
		}
		report.Brands.add(created)
	}

	for _, seed := range s.data.Products {
		p := seed.Product(categoryIDs[seed.Category])
		_, created, err := s.writer.EnsureProduct(ctx, &p)
		if err != nil {
			return report, fmt.Errorf("seed product %q: %w", seed.Slug, err)
		}
		report.Products.add(created)
	}

	s.log.Info("catalog seeded",
		zap.Int("categories_created", report.Categories.Created),
		zap.Int("brands_created", report.Brands.Created),
		zap.Int("products_created", report.Products.Created))
	return report, nil
}
