package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// Category groups products. It does not own them.
type Category struct {
	ID               uint              `gorm:"column:id;primaryKey"`
	Name             string            `gorm:"column:name;not null"`
	Slug             string            `gorm:"column:slug;not null;uniqueIndex:categories_slug_key"`
	ShortDescription string            `gorm:"column:short_description;type:text"`
	CategoryDiscount decimal.Decimal   `gorm:"column:category_discount;type:numeric(5,2);not null;default:0"`
	Images           types.Images      `gorm:"column:images;type:jsonb;serializer:json"`
	SEO              datatypes.JSONMap `gorm:"column:seo"`
	Products         []Product         `gorm:"foreignKey:CategoryID"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
