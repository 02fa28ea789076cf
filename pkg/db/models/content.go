package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// Blog is a published article.
type Blog struct {
	ID               uint              `gorm:"column:id;primaryKey"`
	Title            string            `gorm:"column:title;not null"`
	Slug             string            `gorm:"column:slug;not null;uniqueIndex:blogs_slug_key"`
	ShortDescription string            `gorm:"column:short_description;type:text"`
	Content          string            `gorm:"column:content;type:text"`
	AuthorName       string            `gorm:"column:author_name"`
	CoverImage       *types.Image      `gorm:"column:cover_image;type:jsonb;serializer:json"`
	SEO              datatypes.JSONMap `gorm:"column:seo"`
	UploadedDate     *time.Time        `gorm:"column:uploaded_date"`
	IsPublished      bool              `gorm:"column:is_published;not null;default:true"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// SitePolicy is a static policy page keyed by name.
type SitePolicy struct {
	ID              uint      `gorm:"column:id;primaryKey"`
	PageName        string    `gorm:"column:page_name;not null;uniqueIndex:site_policies_page_name_key"`
	PageDescription string    `gorm:"column:page_description;type:text"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductCatalogue is a downloadable brochure.
type ProductCatalogue struct {
	ID        uint         `gorm:"column:id;primaryKey"`
	Name      string       `gorm:"column:name;not null"`
	Thumbnail *types.Image `gorm:"column:thumbnail;type:jsonb;serializer:json"`
	File      *types.File  `gorm:"column:file;type:jsonb;serializer:json"`
	IsActive  bool         `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time    `gorm:"column:created_at;autoCreateTime"`
}
