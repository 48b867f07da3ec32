package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/patch"
)

const orderColumns = `id, order_number, customer_name, customer_email, shipping_address, postcode,
	subtotal, shipping_cost, total, status, tracking_number, shipping_provider, created_at, updated_at`

// OrderLine is one requested line of a checkout.
type OrderLine struct {
	ProductID int64
	VariantID *int64
	Quantity  int
}

// NewOrder is the checkout input. Prices come from the catalog, never the client.
type NewOrder struct {
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	Postcode        string
	Lines           []OrderLine
}

// ShippingFunc returns the shipping cost for a priced subtotal. It runs inside
// the order transaction and must not touch the database.
type ShippingFunc func(subtotal float64) (float64, error)

// PlaceOrder prices every line, decrements variant stock, and inserts the
// order with its items in one transaction.
func (s *Store) PlaceOrder(ctx context.Context, in NewOrder, shippingCost ShippingFunc) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("order has no items: %w", ErrInvalidReference)
	}

	var order *models.Order
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(in.Lines))

		for _, line := range in.Lines {
			price, err := priceLine(ctx, tx, line)
			if err != nil {
				return err
			}
			subtotal = subtotal.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
				UnitPrice: price,
			})
		}

		sub := subtotal.Round(2).InexactFloat64()
		ship, err := shippingCost(sub)
		if err != nil {
			return err
		}
		total := subtotal.Add(decimal.NewFromFloat(ship)).Round(2).InexactFloat64()

		now := time.Now().UTC()
		o := &models.Order{
			OrderNumber:     newOrderNumber(),
			CustomerName:    in.CustomerName,
			CustomerEmail:   in.CustomerEmail,
			ShippingAddress: in.ShippingAddress,
			Postcode:        in.Postcode,
			Subtotal:        sub,
			ShippingCost:    ship,
			Total:           total,
			Status:          models.OrderPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO orders (order_number, customer_name, customer_email, shipping_address, postcode,
				subtotal, shipping_cost, total, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.OrderNumber, o.CustomerName, o.CustomerEmail, o.ShippingAddress, o.Postcode,
			o.Subtotal, o.ShippingCost, o.Total, o.Status, o.CreatedAt, o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if o.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("order id: %w", err)
		}

		for i := range items {
			items[i].OrderID = o.ID
			res, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (order_id, product_id, variant_id, quantity, unit_price) VALUES (?, ?, ?, ?, ?)`,
				o.ID, items[i].ProductID, items[i].VariantID, items[i].Quantity, items[i].UnitPrice)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			if items[i].ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("order item id: %w", err)
			}
		}
		o.Items = items
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// priceLine resolves the unit price of a line and reserves variant stock.
func priceLine(ctx context.Context, tx *sqlx.Tx, line OrderLine) (float64, error) {
	if line.Quantity < 1 {
		return 0, fmt.Errorf("product %d quantity %d: %w", line.ProductID, line.Quantity, ErrInvalidReference)
	}

	var price float64
	err := tx.GetContext(ctx, &price, `SELECT price FROM products WHERE id = ?`, line.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("product %d: %w", line.ProductID, ErrInvalidReference)
		}
		return 0, fmt.Errorf("price product: %w", err)
	}
	if line.VariantID == nil {
		return price, nil
	}

	var v models.ProductVariant
	err = tx.GetContext(ctx, &v,
		`SELECT id, product_id, color, storage, sku, price, stock FROM product_variants WHERE id = ? AND product_id = ?`,
		*line.VariantID, line.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("variant %d of product %d: %w", *line.VariantID, line.ProductID, ErrInvalidReference)
		}
		return 0, fmt.Errorf("price variant: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE product_variants SET stock = stock - ? WHERE id = ? AND stock >= ?`,
		line.Quantity, v.ID, line.Quantity)
	if err != nil {
		return 0, fmt.Errorf("reserve stock: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, err
	} else if n == 0 {
		return 0, fmt.Errorf("variant %d has %d left, %d requested: %w", v.ID, v.Stock, line.Quantity, ErrInsufficientStock)
	}

	if v.Price > 0 {
		return v.Price, nil
	}
	return price, nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// ListOrders returns orders newest first, optionally filtered by status.
func (s *Store) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id DESC`

	orders := []models.Order{}
	if err := s.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	if err := s.db.GetContext(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id); err != nil {
		return nil, notFoundIfNoRows(err)
	}

	o.Items = []models.OrderItem{}
	if err := s.db.SelectContext(ctx, &o.Items,
		`SELECT id, order_id, product_id, variant_id, quantity, unit_price FROM order_items WHERE order_id = ? ORDER BY id ASC`, id); err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	return &o, nil
}

func (s *Store) UpdateOrder(ctx context.Context, id int64, p models.OrderPatch) error {
	var u patch.Update
	patch.Apply(&u, "status", p.Status)
	patch.Apply(&u, "tracking_number", p.TrackingNumber)
	patch.Apply(&u, "shipping_provider", p.ShippingProvider)
	if u.Len() == 0 {
		return ErrNoChanges
	}
	u.Set("updated_at", time.Now().UTC())

	query, args := u.SQL("orders", id)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return expectAffected(res)
}
