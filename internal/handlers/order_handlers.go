package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/shipping"
	"github.com/01moynul/storefront-golang/internal/store"
)

//
// --- Checkout (Public) ---
//

type OrderItemInput struct {
	ProductID int64  `json:"productId" binding:"required,gt=0"`
	VariantID *int64 `json:"variantId" binding:"omitempty,gt=0"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
}

type PlaceOrderInput struct {
	CustomerName    string           `json:"customerName" binding:"required"`
	CustomerEmail   string           `json:"customerEmail" binding:"required,email"`
	ShippingAddress string           `json:"shippingAddress" binding:"required"`
	Postcode        string           `json:"postcode" binding:"required"`
	WeightKg        float64          `json:"weightKg" binding:"gte=0"`
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder is the handler for POST /api/orders
func (h *Handlers) PlaceOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	// 2. --- Resolve the shipping zone before the transaction ---
	zones, err := h.Store.ListActiveZones(ctx)
	if err != nil {
		h.serverError(c, "Failed to fetch shipping zones", err)
		return
	}
	zone, err := shipping.MatchZone(zones, input.Postcode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 3. --- Price, reserve stock and insert (one transaction) ---
	lines := make([]store.OrderLine, len(input.Items))
	for i, it := range input.Items {
		lines[i] = store.OrderLine{ProductID: it.ProductID, VariantID: it.VariantID, Quantity: it.Quantity}
	}
	order, err := h.Store.PlaceOrder(ctx, store.NewOrder{
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		Postcode:        strings.TrimSpace(input.Postcode),
		Lines:           lines,
	}, func(subtotal float64) (float64, error) {
		return shipping.Calculate(*zone, subtotal, input.WeightKg).Cost, nil
	})
	if err != nil {
		h.storeError(c, err, "Product not found", "Failed to place order")
		return
	}

	// 4. --- Send Success Response ---
	h.Log.Info("order placed", zap.Int64("order_id", order.ID), zap.String("order_number", order.OrderNumber))
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"id":          order.ID,
		"orderNumber": order.OrderNumber,
		"total":       order.Total,
	})
}

//
// --- Order Administration ---
//

// ListOrders is the handler for GET /api/admin/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}
	orders, err := h.Store.ListOrders(c.Request.Context(), status)
	if err != nil {
		h.serverError(c, "Failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder is the handler for GET /api/admin/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.Store.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Order not found", "Failed to fetch order", zap.Int64("order_id", id))
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder is the handler for PATCH /api/admin/orders/:id
func (h *Handlers) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p models.OrderPatch
	if !bindPatch(c, &p) {
		return
	}
	err := h.Store.UpdateOrder(c.Request.Context(), id, p)
	if err != nil {
		h.storeError(c, err, "Order not found", "Failed to update order", zap.Int64("order_id", id))
		return
	}
	success(c)
}
