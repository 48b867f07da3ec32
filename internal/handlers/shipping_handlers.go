package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/shipping"
)

type CreateZoneInput struct {
	Name                  string   `json:"name" binding:"required"`
	Postcodes             *string  `json:"postcodes"`
	FlatRate              float64  `json:"flatRate" binding:"gte=0"`
	FreeShippingThreshold *float64 `json:"freeShippingThreshold" binding:"omitempty,gte=0"`
	WeightRate            float64  `json:"weightRate" binding:"gte=0"`
	IsActive              *bool    `json:"isActive"`
	SortOrder             int      `json:"sortOrder"`
}

type QuoteInput struct {
	Postcode string  `json:"postcode" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"gte=0"`
	WeightKg float64 `json:"weightKg" binding:"gte=0"`
}

// ListZones is the handler for GET /api/admin/shipping/zones
func (h *Handlers) ListZones(c *gin.Context) {
	zones, err := h.Store.ListZones(c.Request.Context())
	if err != nil {
		h.serverError(c, "Failed to fetch shipping zones", err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// GetZone is the handler for GET /api/admin/shipping/zones/:id
func (h *Handlers) GetZone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	zone, err := h.Store.GetZone(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err, "Shipping zone not found", "Failed to fetch shipping zone", zap.Int64("zone_id", id))
		return
	}
	c.JSON(http.StatusOK, zone)
}

// CreateZone is the handler for POST /api/admin/shipping/zones
func (h *Handlers) CreateZone(c *gin.Context) {
	var input CreateZoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Zone name is required"})
		return
	}

	zone := &models.ShippingZone{
		Name:                  name,
		Postcodes:             input.Postcodes,
		FlatRate:              input.FlatRate,
		FreeShippingThreshold: input.FreeShippingThreshold,
		WeightRate:            input.WeightRate,
		IsActive:              input.IsActive == nil || *input.IsActive,
		SortOrder:             input.SortOrder,
	}
	id, err := h.Store.CreateZone(c.Request.Context(), zone)
	if err != nil {
		h.serverError(c, "Failed to create shipping zone", err, zap.String("zone", name))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id, "message": "Shipping zone created"})
}

// UpdateZone is the handler for PUT /api/admin/shipping/zones/:id
func (h *Handlers) UpdateZone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var p models.ShippingZonePatch
	if !bindPatch(c, &p) {
		return
	}
	if err := h.Store.UpdateZone(c.Request.Context(), id, p); err != nil {
		h.storeError(c, err, "Shipping zone not found", "Failed to update shipping zone", zap.Int64("zone_id", id))
		return
	}
	success(c)
}

// DeleteZone is the handler for DELETE /api/admin/shipping/zones/:id
func (h *Handlers) DeleteZone(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteZone(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Shipping zone not found", "Failed to delete shipping zone", zap.Int64("zone_id", id))
		return
	}
	success(c)
}

// QuoteShipping is the handler for POST /api/shipping/quote
func (h *Handlers) QuoteShipping(c *gin.Context) {
	var input QuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zones, err := h.Store.ListActiveZones(c.Request.Context())
	if err != nil {
		h.serverError(c, "Failed to fetch shipping zones", err)
		return
	}
	quote, err := shipping.QuoteFor(zones, input.Postcode, input.Subtotal, input.WeightKg)
	if errors.Is(err, shipping.ErrNoZone) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}
