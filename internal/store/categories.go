package store

import (
	"context"
	"fmt"
	"time"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/patch"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.SelectContext(ctx, &categories, `SELECT id, name, slug FROM categories ORDER BY name ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := s.db.GetContext(ctx, &c, `SELECT id, name, slug FROM categories WHERE id = ?`, id); err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) (int64, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, slug, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.Name, c.Slug, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category id: %w", err)
	}
	c.ID = id
	return id, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id int64, p models.CategoryPatch) error {
	var u patch.Update
	patch.Apply(&u, "name", p.Name)
	patch.Apply(&u, "slug", p.Slug)
	if u.Len() == 0 {
		return ErrNoChanges
	}
	u.Set("updated_at", time.Now().UTC())

	query, args := u.SQL("categories", id)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return expectAffected(res)
}

// DeleteCategory refuses to orphan products.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products WHERE category_id = ?`, id); err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("category %d has %d products: %w", id, n, ErrConflict)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return expectAffected(res)
}

// EnsureCategory inserts c unless a category with the same slug exists.
func (s *Store) EnsureCategory(ctx context.Context, c *models.Category) (int64, bool, error) {
	id, created, err := s.ensure(ctx, `SELECT id FROM categories WHERE slug = ?`, c.Slug, func() (int64, error) {
		return s.CreateCategory(ctx, c)
	})
	if err == nil {
		c.ID = id
	}
	return id, created, err
}
