// Package catalog serves the public brand and shop listings. Reads go to the
// database; an empty table or a failed read is answered from the bundled
// dataset. The read path never writes; Seeder populates the tables.
package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/store"
)

// Source tells the caller where a listing came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceStatic   Source = "static"
	SourceFallback Source = "fallback"
)

// Reader is the slice of the store the listings need.
type Reader interface {
	ListBrands(ctx context.Context, activeOnly bool) ([]models.Brand, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context, f store.ProductFilter) ([]models.Product, error)
	CountProducts(ctx context.Context) (int, error)
}

type Lister struct {
	reader Reader
	data   *Dataset
	log    *zap.Logger
}

func NewLister(reader Reader, data *Dataset, log *zap.Logger) *Lister {
	return &Lister{reader: reader, data: data, log: log.Named("catalog")}
}

// Brands returns the active brands, popular first.
func (l *Lister) Brands(ctx context.Context) ([]models.Brand, Source) {
	brands, err := l.reader.ListBrands(ctx, true)
	switch {
	case err != nil:
		l.log.Warn("brand listing failed, serving fallback dataset", zap.Error(err))
		brands = l.data.StaticBrands()
		SortBrands(brands)
		return brands, SourceFallback
	case len(brands) == 0:
		brands = l.data.StaticBrands()
		SortBrands(brands)
		return brands, SourceStatic
	}
	SortBrands(brands)
	return brands, SourceLive
}

type ShopQuery struct {
	Category string
	Search   string
	Sort     string
}

// ShopPage is the body of GET /api/shop.
type ShopPage struct {
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
	Brands     []models.Brand    `json:"brands"`
	Sort       string            `json:"sort"`
}

// Shop returns the filtered, sorted product page. The source reflects the
// product read; brands follow their own fallback.
func (l *Lister) Shop(ctx context.Context, q ShopQuery) (ShopPage, Source) {
	page, source, err := l.liveShop(ctx, q)
	if err != nil {
		l.log.Warn("shop listing failed, serving fallback dataset", zap.Error(err),
			zap.String("category", q.Category), zap.String("search", q.Search))
		page, source = l.staticShop(q), SourceFallback
	}
	page.Brands, _ = l.Brands(ctx)
	page.Sort = SortProducts(page.Products, q.Sort)
	return page, source
}

func (l *Lister) liveShop(ctx context.Context, q ShopQuery) (ShopPage, Source, error) {
	products, err := l.reader.ListProducts(ctx, store.ProductFilter{CategorySlug: q.Category, Search: q.Search})
	if err != nil {
		return ShopPage{}, "", err
	}
	if len(products) == 0 {
		n := 0
		if q.Category != "" || q.Search != "" {
			if n, err = l.reader.CountProducts(ctx); err != nil {
				return ShopPage{}, "", err
			}
		}
		if n == 0 {
			return l.staticShop(q), SourceStatic, nil
		}
	}

	categories, err := l.reader.ListCategories(ctx)
	if err != nil {
		return ShopPage{}, "", err
	}
	return ShopPage{Products: products, Categories: categories}, SourceLive, nil
}

func (l *Lister) staticShop(q ShopQuery) ShopPage {
	categories := l.data.StaticCategories()
	var catID int64 = -1
	if q.Category != "" {
		for _, c := range categories {
			if c.Slug == q.Category {
				catID = c.ID
			}
		}
	}
	needle := strings.ToLower(q.Search)

	products := []models.Product{}
	for _, p := range l.data.StaticProducts() {
		if q.Category != "" && p.CategoryID != catID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		p.Images = nil
		products = append(products, p)
	}
	return ShopPage{Products: products, Categories: categories}
}
