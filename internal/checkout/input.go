package checkout

// ItemInput is one requested line. Product and VariationID are loosely
// typed because storefront clients send numbers, strings or objects.
type ItemInput struct {
	Product     any `json:"product"`
	VariationID any `json:"variation_id"`
	UUID        any `json:"uuid"`
	Quantity    any `json:"quantity"`
}

// Input is the checkout request. Client prices and totals are never trusted.
type Input struct {
	Items           []ItemInput    `json:"items"`
	Shipping        map[string]any `json:"shipping"`
	Contact         map[string]any `json:"contact"`
	ShippingAddress map[string]any `json:"shippingAddress"`
	Totals          map[string]any `json:"totals"`

	UserID   *uint  `json:"-"`
	ClientIP string `json:"-"`
}

func (i ItemInput) variationRef() any {
	if i.VariationID != nil {
		return i.VariationID
	}
	return i.UUID
}
