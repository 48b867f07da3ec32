package models

import (
	"strings"

	"github.com/01moynul/storefront-golang/internal/patch"
)

// ShippingZone is the model for the 'shipping_zones' table.
// Postcodes is a comma-separated list of exact codes, ranges (2000-2999) or prefixes (30*).
type ShippingZone struct {
	ID                    int64    `json:"id" db:"id"`
	Name                  string   `json:"name" db:"name"`
	Postcodes             *string  `json:"postcodes" db:"postcodes"`
	FlatRate              float64  `json:"flatRate" db:"flat_rate"`
	FreeShippingThreshold *float64 `json:"freeShippingThreshold" db:"free_shipping_threshold"`
	WeightRate            float64  `json:"weightRate" db:"weight_rate"`
	IsActive              bool     `json:"isActive" db:"is_active"`
	SortOrder             int      `json:"sortOrder" db:"sort_order"`
}

type ShippingZonePatch struct {
	Name                  patch.Field[string]  `json:"name"`
	Postcodes             patch.Field[string]  `json:"postcodes"`
	FlatRate              patch.Field[float64] `json:"flatRate"`
	FreeShippingThreshold patch.Field[float64] `json:"freeShippingThreshold"`
	WeightRate            patch.Field[float64] `json:"weightRate"`
	IsActive              patch.Field[bool]    `json:"isActive"`
	SortOrder             patch.Field[int]     `json:"sortOrder"`
}

func (p ShippingZonePatch) Validate() error {
	for _, err := range []error{
		patch.NotNull("name", p.Name),
		patch.NotNull("flatRate", p.FlatRate),
		patch.NotNull("weightRate", p.WeightRate),
		patch.NotNull("isActive", p.IsActive),
		patch.NotNull("sortOrder", p.SortOrder),
	} {
		if err != nil {
			return err
		}
	}
	if p.Name.HasValue() && strings.TrimSpace(p.Name.Value) == "" {
		return errBlank("name")
	}
	if p.FlatRate.HasValue() && p.FlatRate.Value < 0 {
		return errNegative("flatRate")
	}
	if p.WeightRate.HasValue() && p.WeightRate.Value < 0 {
		return errNegative("weightRate")
	}
	if p.FreeShippingThreshold.HasValue() && p.FreeShippingThreshold.Value < 0 {
		return errNegative("freeShippingThreshold")
	}
	return nil
}
