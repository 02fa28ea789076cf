package cart

import "github.com/angelmondragon/stonefront-backend/pkg/types"

// ProductRefDTO is the minimal product block of a cart line.
type ProductRefDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// VariationRefDTO reports live stock. ID is nil when the variation is gone.
type VariationRefDTO struct {
	ID    *int32 `json:"id"`
	Stock int    `json:"stock"`
}

// ItemDTO is one cart line.
type ItemDTO struct {
	ID        uint                   `json:"id"`
	Quantity  int                    `json:"quantity"`
	UnitPrice float64                `json:"unit_price"`
	Product   ProductRefDTO          `json:"product"`
	Variation VariationRefDTO        `json:"variation"`
	Metadata  types.CartItemMetadata `json:"metadata"`
}

// AddInput is the add-to-cart body. Ids are loosely typed like checkout's.
type AddInput struct {
	Product     any `json:"product"`
	VariationID any `json:"variation_id"`
	Quantity    any `json:"quantity"`
}
