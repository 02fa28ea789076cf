package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// CartItem references a product variation for a user. The metadata snapshot
// keeps the line renderable when the variation changes or disappears.
type CartItem struct {
	ID          uint                   `gorm:"column:id;primaryKey"`
	UserID      uint                   `gorm:"column:user_id;not null;index:cart_items_user_id_idx;uniqueIndex:cart_items_user_product_variation_key"`
	ProductID   uint                   `gorm:"column:product_id;not null;uniqueIndex:cart_items_user_product_variation_key"`
	Product     *Product               `gorm:"foreignKey:ProductID"`
	VariationID int32                  `gorm:"column:variation_id;not null;uniqueIndex:cart_items_user_product_variation_key"`
	Quantity    int                    `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal        `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	Metadata    types.CartItemMetadata `gorm:"column:metadata;type:jsonb;serializer:json"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
