// Package store is the data-access layer: typed queries and mutations over
// the storefront schema. Every call takes the request context.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/01moynul/storefront-golang/internal/database"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidReference is returned when a payload points at a missing parent row.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrConflict is returned when a mutation would break a dependent row.
	ErrConflict = errors.New("conflict")
	// ErrInsufficientStock is returned when an order asks for more than a variant holds.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrNoChanges is returned by updates whose patch provides no field.
	ErrNoChanges = errors.New("no fields to update")
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// DB exposes the pool for maintenance commands.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Stats backs the admin dashboard and `storectl verify`.
type Stats struct {
	Products      int `json:"products" yaml:"products" db:"products"`
	Categories    int `json:"categories" yaml:"categories" db:"categories"`
	Brands        int `json:"brands" yaml:"brands" db:"brands"`
	ShippingZones int `json:"shippingZones" yaml:"shippingZones" db:"shipping_zones"`
	Orders        int `json:"orders" yaml:"orders" db:"orders"`
	PendingOrders int `json:"pendingOrders" yaml:"pendingOrders" db:"pending_orders"`
	Admins        int `json:"admins" yaml:"admins" db:"admins"`
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.GetContext(ctx, &st, `
		SELECT
			(SELECT COUNT(*) FROM products) AS products,
			(SELECT COUNT(*) FROM categories) AS categories,
			(SELECT COUNT(*) FROM brands) AS brands,
			(SELECT COUNT(*) FROM shipping_zones) AS shipping_zones,
			(SELECT COUNT(*) FROM orders) AS orders,
			(SELECT COUNT(*) FROM orders WHERE status = 'pending') AS pending_orders,
			(SELECT COUNT(*) FROM admins) AS admins`)
	if err != nil {
		return Stats{}, fmt.Errorf("load stats: %w", err)
	}
	return st, nil
}

func notFoundIfNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ensure looks a row up by its unique key and calls create when it is
// missing. A duplicate-key error from create means another writer got there
// first, so the row is looked up again and reported as already present.
func (s *Store) ensure(ctx context.Context, lookup, key string, create func() (int64, error)) (int64, bool, error) {
	find := func() (int64, error) {
		var id int64
		err := s.db.GetContext(ctx, &id, lookup, key)
		return id, notFoundIfNoRows(err)
	}

	id, err := find()
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, false, fmt.Errorf("lookup %q: %w", key, err)
	}

	id, err = create()
	if database.IsDuplicate(err) {
		id, err = find()
		return id, false, err
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
