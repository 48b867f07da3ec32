package models

import (
	"time"

	"github.com/01moynul/storefront-golang/internal/patch"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists every valid value of orders.status.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is the model for the 'orders' table.
// TrackingNumber and ShippingProvider were added by a later migration and are nullable.
type Order struct {
	ID               int64     `json:"id" db:"id"`
	OrderNumber      string    `json:"orderNumber" db:"order_number"`
	CustomerName     string    `json:"customerName" db:"customer_name"`
	CustomerEmail    string    `json:"customerEmail" db:"customer_email"`
	ShippingAddress  string    `json:"shippingAddress" db:"shipping_address"`
	Postcode         string    `json:"postcode" db:"postcode"`
	Subtotal         float64   `json:"subtotal" db:"subtotal"`
	ShippingCost     float64   `json:"shippingCost" db:"shipping_cost"`
	Total            float64   `json:"total" db:"total"`
	Status           string    `json:"status" db:"status"`
	TrackingNumber   *string   `json:"trackingNumber" db:"tracking_number"`
	ShippingProvider *string   `json:"shippingProvider" db:"shipping_provider"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	Items []OrderItem `json:"items,omitempty" db:"-"`
}

// OrderItem is the model for the 'order_items' table
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"orderId" db:"order_id"`
	ProductID int64   `json:"productId" db:"product_id"`
	VariantID *int64  `json:"variantId" db:"variant_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unitPrice" db:"unit_price"` // Price at the time of purchase
}

type OrderPatch struct {
	Status           patch.Field[string] `json:"status"`
	TrackingNumber   patch.Field[string] `json:"trackingNumber"`
	ShippingProvider patch.Field[string] `json:"shippingProvider"`
}

func (p OrderPatch) Validate() error {
	if err := patch.NotNull("status", p.Status); err != nil {
		return err
	}
	if p.Status.HasValue() && !ValidOrderStatus(p.Status.Value) {
		return &ValidationError{Field: "status", Message: "must be one of pending, processing, shipped, delivered, cancelled"}
	}
	return nil
}
