package models

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/pkg/enums"
)

// Variation is a purchasable configuration of a product. UUID is the
// externally addressable identifier; ID is storage only.
type Variation struct {
	ID        uint            `gorm:"column:id;primaryKey"`
	ProductID uint            `gorm:"column:product_id;not null;uniqueIndex:variations_product_uuid_key"`
	UUID      int32           `gorm:"column:uuid;not null;uniqueIndex:variations_product_uuid_key"`
	SKU       string          `gorm:"column:sku"`
	Thickness enums.Thickness `gorm:"column:thickness;type:text"`
	Size      enums.Size      `gorm:"column:size;type:text"`
	Finish    enums.Finish    `gorm:"column:finish;type:text"`
	ColorTone enums.ColorTone `gorm:"column:color_tone;type:text"`
	PackSize  decimal.Decimal `gorm:"column:pack_size;type:numeric(12,3);not null;default:0"`
	PerM2     decimal.Decimal `gorm:"column:per_m2;type:numeric(12,2);not null;default:0"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	Stock     int             `gorm:"column:stock;not null;default:0;check:variations_stock_non_negative,stock >= 0"`
	Pcs       int             `gorm:"column:pcs;not null;default:0"`
	Position  int             `gorm:"column:position;not null;default:0"`
}
