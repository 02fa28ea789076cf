package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// Product is a catalog entry. It owns its variations.
type Product struct {
	ID              uint            `gorm:"column:id;primaryKey"`
	CategoryID      *uint           `gorm:"column:category_id;index:products_category_id_idx"`
	Category        *Category       `gorm:"foreignKey:CategoryID"`
	Name            string          `gorm:"column:name;not null"`
	Slug            string          `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	Description     string          `gorm:"column:description;type:text"`
	ProductDiscount decimal.Decimal `gorm:"column:product_discount;type:numeric(5,2);not null;default:0"`
	Images          types.Images    `gorm:"column:images;type:jsonb;serializer:json"`
	IsPublished     bool            `gorm:"column:is_published;not null;default:true"`
	Variations      []Variation     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews         []ProductReview `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
