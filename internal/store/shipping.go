package store

import (
	"context"
	"fmt"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/patch"
)

const zoneColumns = `id, name, postcodes, flat_rate, free_shipping_threshold, weight_rate, is_active, sort_order`

// ListZones returns every zone in matching order.
func (s *Store) ListZones(ctx context.Context) ([]models.ShippingZone, error) {
	return s.selectZones(ctx, `SELECT `+zoneColumns+` FROM shipping_zones ORDER BY sort_order ASC, id ASC`)
}

// ListActiveZones is the candidate set for shipping quotes.
func (s *Store) ListActiveZones(ctx context.Context) ([]models.ShippingZone, error) {
	return s.selectZones(ctx, `SELECT `+zoneColumns+` FROM shipping_zones WHERE is_active = 1 ORDER BY sort_order ASC, id ASC`)
}

func (s *Store) selectZones(ctx context.Context, query string) ([]models.ShippingZone, error) {
	zones := []models.ShippingZone{}
	if err := s.db.SelectContext(ctx, &zones, query); err != nil {
		return nil, fmt.Errorf("list shipping zones: %w", err)
	}
	return zones, nil
}

func (s *Store) GetZone(ctx context.Context, id int64) (*models.ShippingZone, error) {
	var z models.ShippingZone
	if err := s.db.GetContext(ctx, &z, `SELECT `+zoneColumns+` FROM shipping_zones WHERE id = ?`, id); err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &z, nil
}

func (s *Store) CreateZone(ctx context.Context, z *models.ShippingZone) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO shipping_zones (name, postcodes, flat_rate, free_shipping_threshold, weight_rate, is_active, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		z.Name, z.Postcodes, z.FlatRate, z.FreeShippingThreshold, z.WeightRate, z.IsActive, z.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert shipping zone: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("shipping zone id: %w", err)
	}
	z.ID = id
	return id, nil
}

func (s *Store) UpdateZone(ctx context.Context, id int64, p models.ShippingZonePatch) error {
	var u patch.Update
	patch.Apply(&u, "name", p.Name)
	patch.Apply(&u, "postcodes", p.Postcodes)
	patch.Apply(&u, "flat_rate", p.FlatRate)
	patch.Apply(&u, "free_shipping_threshold", p.FreeShippingThreshold)
	patch.Apply(&u, "weight_rate", p.WeightRate)
	patch.Apply(&u, "is_active", p.IsActive)
	patch.Apply(&u, "sort_order", p.SortOrder)
	if u.Len() == 0 {
		return ErrNoChanges
	}

	query, args := u.SQL("shipping_zones", id)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update shipping zone: %w", err)
	}
	return expectAffected(res)
}

func (s *Store) DeleteZone(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shipping_zones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete shipping zone: %w", err)
	}
	return expectAffected(res)
}
