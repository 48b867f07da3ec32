// Package shipping matches postcodes to shipping zones and prices a parcel.
package shipping

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-golang/internal/models"
)

// ErrNoZone is returned when no active zone covers a postcode.
var ErrNoZone = errors.New("no shipping zone covers this postcode")

// Quote is the priced result for one zone.
type Quote struct {
	ZoneID   int64   `json:"zoneId"`
	ZoneName string  `json:"zoneName"`
	Postcode string  `json:"postcode"`
	Cost     float64 `json:"cost"`
	Free     bool    `json:"free"`
}

// PostcodeMatches reports whether postcode is covered by list, a
// comma-separated set of exact codes, inclusive ranges (2000-2999) and
// prefixes (30*). An empty list matches nothing.
func PostcodeMatches(list, postcode string) bool {
	postcode = strings.TrimSpace(postcode)
	if postcode == "" {
		return false
	}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == "":
			continue
		case strings.HasSuffix(entry, "*"):
			if strings.HasPrefix(postcode, strings.TrimSuffix(entry, "*")) {
				return true
			}
		case strings.Contains(entry, "-"):
			if inRange(entry, postcode) {
				return true
			}
		case strings.EqualFold(entry, postcode):
			return true
		}
	}
	return false
}

func inRange(entry, postcode string) bool {
	lo, hi, _ := strings.Cut(entry, "-")
	from, err1 := strconv.Atoi(strings.TrimSpace(lo))
	to, err2 := strconv.Atoi(strings.TrimSpace(hi))
	code, err3 := strconv.Atoi(postcode)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	return code >= from && code <= to
}

// MatchZone returns the first active zone, by sortOrder then id, whose list
// covers postcode.
func MatchZone(zones []models.ShippingZone, postcode string) (*models.ShippingZone, error) {
	var best *models.ShippingZone
	for i := range zones {
		z := &zones[i]
		if !z.IsActive || z.Postcodes == nil || !PostcodeMatches(*z.Postcodes, postcode) {
			continue
		}
		if best == nil || z.SortOrder < best.SortOrder || (z.SortOrder == best.SortOrder && z.ID < best.ID) {
			best = z
		}
	}
	if best == nil {
		return nil, ErrNoZone
	}
	return best, nil
}

// Calculate prices a parcel: free at or above the zone threshold, otherwise
// flatRate + weightRate*weightKg rounded to cents.
func Calculate(zone models.ShippingZone, subtotal, weightKg float64) Quote {
	q := Quote{ZoneID: zone.ID, ZoneName: zone.Name}
	if zone.FreeShippingThreshold != nil &&
		decimal.NewFromFloat(subtotal).GreaterThanOrEqual(decimal.NewFromFloat(*zone.FreeShippingThreshold)) {
		q.Free = true
		return q
	}
	if weightKg < 0 {
		weightKg = 0
	}
	cost := decimal.NewFromFloat(zone.FlatRate).
		Add(decimal.NewFromFloat(zone.WeightRate).Mul(decimal.NewFromFloat(weightKg))).
		Round(2)
	q.Cost = cost.InexactFloat64()
	return q
}

// QuoteFor matches the zone for postcode and prices the parcel.
func QuoteFor(zones []models.ShippingZone, postcode string, subtotal, weightKg float64) (Quote, error) {
	zone, err := MatchZone(zones, postcode)
	if err != nil {
		return Quote{}, err
	}
	q := Calculate(*zone, subtotal, weightKg)
	q.Postcode = strings.TrimSpace(postcode)
	return q, nil
}
