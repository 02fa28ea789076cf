package types

import "github.com/shopspring/decimal"

// VariationSnapshot is a denormalized copy of variation attributes.
type VariationSnapshot struct {
	Thickness string          `json:"Thickness,omitempty"`
	Size      string          `json:"Size,omitempty"`
	Finish    string          `json:"Finish,omitempty"`
	ColorTone string          `json:"ColorTone,omitempty"`
	PackSize  decimal.Decimal `json:"PackSize"`
	Pcs       int             `json:"Pcs"`
	PerM2     decimal.Decimal `json:"Per_m2"`
}

// CartItemMetadata is captured when an item is added so the cart still renders
// if the catalog entry later changes.
type CartItemMetadata struct {
	ProductName  string            `json:"productName"`
	ProductImage string            `json:"productImage,omitempty"`
	SKU          string            `json:"sku,omitempty"`
	Variation    VariationSnapshot `json:"variation"`
}
