package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/angelmondragon/stonefront-backend/pkg/enums"
	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// Order owns an immutable snapshot of its items.
type Order struct {
	ID              uint              `gorm:"column:id;primaryKey"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	UserID          *uint             `gorm:"column:user_id;index:orders_user_id_idx"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipping        datatypes.JSONMap `gorm:"column:shipping"`
	Contact         datatypes.JSONMap `gorm:"column:contact"`
	ShippingAddress datatypes.JSONMap `gorm:"column:shipping_address"`
	Totals          types.OrderTotals `gorm:"column:totals;type:jsonb;serializer:json"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata"`
	StripeSessionID *string           `gorm:"column:stripe_session_id"`
	PaidAt          *time.Time        `gorm:"column:paid_at"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is frozen at checkout and never recomputed from the catalog.
type OrderItem struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	OrderID     uint            `gorm:"column:order_id;not null;index:order_items_order_id_idx"`
	ProductID   uint            `gorm:"column:product_id;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	VariationID string          `gorm:"column:variation_id;not null"`
	SKU         string          `gorm:"column:sku"`
	Quantity    int             `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
