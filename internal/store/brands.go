package store

import (
	"context"
	"fmt"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/patch"
)

const brandColumns = `id, name, slug, logo, is_popular, is_active, sort_order`

// ListBrands returns brands in insertion order; the catalog sorts them.
func (s *Store) ListBrands(ctx context.Context, activeOnly bool) ([]models.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY id ASC`

	brands := []models.Brand{}
	if err := s.db.SelectContext(ctx, &brands, query); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

func (s *Store) GetBrand(ctx context.Context, id int64) (*models.Brand, error) {
	var b models.Brand
	if err := s.db.GetContext(ctx, &b, `SELECT `+brandColumns+` FROM brands WHERE id = ?`, id); err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &b, nil
}

func (s *Store) CreateBrand(ctx context.Context, b *models.Brand) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO brands (name, slug, logo, is_popular, is_active, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.Name, b.Slug, b.Logo, b.IsPopular, b.IsActive, b.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert brand: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("brand id: %w", err)
	}
	b.ID = id
	return id, nil
}

func (s *Store) UpdateBrand(ctx context.Context, id int64, p models.BrandPatch) error {
	var u patch.Update
	patch.Apply(&u, "name", p.Name)
	patch.Apply(&u, "slug", p.Slug)
	patch.Apply(&u, "logo", p.Logo)
	patch.Apply(&u, "is_popular", p.IsPopular)
	patch.Apply(&u, "is_active", p.IsActive)
	patch.Apply(&u, "sort_order", p.SortOrder)
	if u.Len() == 0 {
		return ErrNoChanges
	}

	query, args := u.SQL("brands", id)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update brand: %w", err)
	}
	return expectAffected(res)
}

func (s *Store) DeleteBrand(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	return expectAffected(res)
}

// EnsureBrand inserts b unless a brand with the same slug exists.
func (s *Store) EnsureBrand(ctx context.Context, b *models.Brand) (int64, bool, error) {
	return s.ensure(ctx, `SELECT id FROM brands WHERE slug = ?`, b.Slug, func() (int64, error) {
		return s.CreateBrand(ctx, b)
	})
}
