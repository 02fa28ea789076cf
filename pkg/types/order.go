package types

import "github.com/shopspring/decimal"

// OrderTotals holds server-computed order money. Client holds whatever totals
// the storefront submitted, kept for reference only.
type OrderTotals struct {
	CartSubtotal decimal.Decimal `json:"cartSubtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	TailLift     decimal.Decimal `json:"tailLift"`
	Total        decimal.Decimal `json:"total"`
	Client       map[string]any  `json:"client,omitempty"`
}
