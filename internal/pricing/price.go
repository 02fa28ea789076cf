// Package pricing holds the storefront price rules: unit price resolution,
// discount precedence, default variation selection and facet counting.
// Every listing, detail and checkout path goes through these functions.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

// ResolvePrice returns the unit (per pack) price of a variation. A stored
// positive Price is authoritative. Otherwise the price is derived from the
// area rate and pack size. A zero result is valid and means "call for price".
func ResolvePrice(v models.Variation) decimal.Decimal {
	if v.Price.IsPositive() {
		return v.Price
	}
	if !v.PerM2.IsZero() && !v.PackSize.IsZero() {
		return v.PerM2.Mul(v.PackSize).Round(2)
	}
	return decimal.Zero
}

// ResolvePerArea returns the per-area rate, deriving it from Price/PackSize
// when only the pack price was stored.
func ResolvePerArea(v models.Variation) decimal.Decimal {
	if !v.PerM2.IsZero() {
		return v.PerM2
	}
	if v.Price.IsPositive() && !v.PackSize.IsZero() {
		return v.Price.Div(v.PackSize).Round(2)
	}
	return decimal.Zero
}

// Resolve returns a copy of v with Price and PerM2 filled in.
func Resolve(v models.Variation) models.Variation {
	out := v
	out.Price = ResolvePrice(v)
	out.PerM2 = ResolvePerArea(v)
	return out
}

// ResolveAll applies Resolve to every variation, preserving order.
func ResolveAll(vs []models.Variation) []models.Variation {
	if len(vs) == 0 {
		return nil
	}
	out := make([]models.Variation, len(vs))
	for i, v := range vs {
		out[i] = Resolve(v)
	}
	return out
}

// LineSubtotal is unit × quantity rounded to cents.
func LineSubtotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
