package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/patch"
)

const productColumns = `p.id, p.name, p.slug, p.price, p.compare_price, p.category_id, p.description, p.created_at, p.updated_at`

// '!' rather than a backslash: MySQL and SQLite read '\\' differently.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ProductFilter narrows ListProducts. Zero values mean "no filter".
type ProductFilter struct {
	CategorySlug string
	Search       string
}

func (s *Store) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	var qb strings.Builder
	var args []any

	qb.WriteString(`
		SELECT ` + productColumns + `,
			(SELECT pi.image_url FROM product_images pi
			 WHERE pi.product_id = p.id
			 ORDER BY pi.is_primary DESC, pi.id ASC LIMIT 1) AS primary_image
		FROM products p`)

	if f.CategorySlug != "" {
		qb.WriteString(" JOIN categories c ON c.id = p.category_id")
	}
	qb.WriteString(" WHERE 1 = 1")
	if f.CategorySlug != "" {
		qb.WriteString(" AND c.slug = ?")
		args = append(args, f.CategorySlug)
	}
	if f.Search != "" {
		qb.WriteString(" AND p.name LIKE ? ESCAPE '!'")
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
	}
	qb.WriteString(" ORDER BY p.id ASC")

	products := []models.Product{}
	if err := s.db.SelectContext(ctx, &products, qb.String(), args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct loads a product with its images and variants.
func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.db.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products p WHERE p.id = ?`, id)
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}

	p.Images = []models.ProductImage{}
	if err := s.db.SelectContext(ctx, &p.Images,
		`SELECT id, product_id, image_url, is_primary FROM product_images WHERE product_id = ? ORDER BY id ASC`, id); err != nil {
		return nil, fmt.Errorf("load product images: %w", err)
	}

	p.Variants = []models.ProductVariant{}
	if err := s.db.SelectContext(ctx, &p.Variants,
		`SELECT id, product_id, color, storage, sku, price, stock FROM product_variants WHERE product_id = ? ORDER BY id ASC`, id); err != nil {
		return nil, fmt.Errorf("load product variants: %w", err)
	}
	return &p, nil
}

func (s *Store) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return n > 0, nil
}

// CreateProduct inserts the product with its Images and Variants in one
// transaction and returns the new id.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) (int64, error) {
	var id int64
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		id, err = insertProduct(ctx, tx, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func insertProduct(ctx context.Context, tx *sqlx.Tx, p *models.Product) (int64, error) {
	var exists int
	if err := tx.GetContext(ctx, &exists, `SELECT COUNT(*) FROM categories WHERE id = ?`, p.CategoryID); err != nil {
		return 0, fmt.Errorf("check category: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("category %d: %w", p.CategoryID, ErrInvalidReference)
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO products (name, slug, price, compare_price, category_id, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Slug, p.Price, p.ComparePrice, p.CategoryID, p.Description, now, now)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product id: %w", err)
	}

	for _, img := range p.Images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_images (product_id, image_url, is_primary) VALUES (?, ?, ?)`,
			id, img.ImageURL, img.IsPrimary); err != nil {
			return 0, fmt.Errorf("insert product image: %w", err)
		}
	}
	for _, v := range p.Variants {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_variants (product_id, color, storage, sku, price, stock) VALUES (?, ?, ?, ?, ?, ?)`,
			id, v.Color, v.Storage, v.SKU, v.Price, v.Stock); err != nil {
			return 0, fmt.Errorf("insert product variant: %w", err)
		}
	}

	p.CreatedAt, p.UpdatedAt = now, now
	return id, nil
}

// UpdateProduct applies the provided fields only.
func (s *Store) UpdateProduct(ctx context.Context, id int64, p models.ProductPatch) error {
	var u patch.Update
	patch.Apply(&u, "name", p.Name)
	patch.Apply(&u, "slug", p.Slug)
	patch.Apply(&u, "price", p.Price)
	patch.Apply(&u, "compare_price", p.ComparePrice)
	patch.Apply(&u, "category_id", p.CategoryID)
	patch.Apply(&u, "description", p.Description)
	if u.Len() == 0 {
		return ErrNoChanges
	}

	if p.CategoryID.HasValue() {
		ok, err := s.CategoryExists(ctx, p.CategoryID.Value)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("category %d: %w", p.CategoryID.Value, ErrInvalidReference)
		}
	}

	u.Set("updated_at", time.Now().UTC())
	query, args := u.SQL("products", id)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return expectAffected(res)
}

// DeleteProduct removes the product and its dependent image and variant rows.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	n, err := s.BulkDeleteProducts(ctx, []int64{id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkDeleteProducts deletes images, then variants, then the products
// themselves, all in one transaction. It returns the number of products removed.
func (s *Store) BulkDeleteProducts(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, table := range []string{"product_images", "product_variants"} {
			query, args, err := sqlx.In("DELETE FROM "+table+" WHERE product_id IN (?)", ids)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}

		query, args, err := sqlx.In("DELETE FROM products WHERE id IN (?)", ids)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return fmt.Errorf("delete products: %w", err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// SetPrimaryImage marks one image primary and clears the flag on the others.
func (s *Store) SetPrimaryImage(ctx context.Context, productID, imageID int64) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var n int
		if err := tx.GetContext(ctx, &n,
			`SELECT COUNT(*) FROM product_images WHERE id = ? AND product_id = ?`, imageID, productID); err != nil {
			return fmt.Errorf("check image: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE product_images SET is_primary = CASE WHEN id = ? THEN 1 ELSE 0 END WHERE product_id = ?`,
			imageID, productID); err != nil {
			return fmt.Errorf("set primary image: %w", err)
		}
		return nil
	})
}

// EnsureProduct inserts p unless a product with the same slug exists.
func (s *Store) EnsureProduct(ctx context.Context, p *models.Product) (int64, bool, error) {
	return s.ensure(ctx, `SELECT id FROM products WHERE slug = ?`, p.Slug, func() (int64, error) {
		return s.CreateProduct(ctx, p)
	})
}

func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
