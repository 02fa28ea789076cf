package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// Primary keys of the single-row content types.
const (
	HomepageID     = 1
	FooterDetailID = 1
)

// Homepage holds the editor-managed marketing sections. There is one row.
type Homepage struct {
	ID                 uint                     `gorm:"column:id;primaryKey"`
	Banners            []HomepageBanner         `gorm:"column:banners;type:jsonb;serializer:json"`
	FeaturedCategories *FeaturedCategorySection `gorm:"column:featured_categories;type:jsonb;serializer:json"`
	BestSellers        *BestSellerSection       `gorm:"column:best_sellers;type:jsonb;serializer:json"`
	CustomerReviews    *CustomerReviewSection   `gorm:"column:customer_reviews;type:jsonb;serializer:json"`
	SEO                *PageSEO                 `gorm:"column:seo;type:jsonb;serializer:json"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

type HomepageBanner struct {
	ID         int          `json:"id"`
	Heading    string       `json:"heading,omitempty"`
	SubHeading string       `json:"subHeading,omitempty"`
	Link       string       `json:"link,omitempty"`
	Image      *types.Image `json:"image,omitempty"`
}

type FeaturedCategorySection struct {
	SectionTitle    string                 `json:"sectionTitle,omitempty"`
	SectionSubtitle string                 `json:"sectionSubtitle,omitempty"`
	Items           []FeaturedCategoryItem `json:"items"`
}

// FeaturedCategoryItem points at a category; StartingFrom is editor text
// such as "£24.99/m²".
type FeaturedCategoryItem struct {
	CategoryID   uint   `json:"categoryId"`
	StartingFrom string `json:"startingFrom,omitempty"`
}

type BestSellerSection struct {
	SectionTitle    string `json:"sectionTitle,omitempty"`
	SectionSubtitle string `json:"sectionSubtitle,omitempty"`
	ProductIDs      []uint `json:"productIds"`
}

// CustomerReviewSection is the curated testimonial block shown on the
// homepage and on every product page.
type CustomerReviewSection struct {
	SectionTitle    string           `json:"sectionTitle,omitempty"`
	SectionSubtitle string           `json:"sectionSubtitle,omitempty"`
	Reviews         []CustomerReview `json:"reviews"`
}

type CustomerReview struct {
	Name     string `json:"name,omitempty"`
	Stars    int    `json:"stars"`
	Review   string `json:"review,omitempty"`
	IsActive bool   `json:"isActive"`
}

type PageSEO struct {
	MetaTitle          string       `json:"metaTitle,omitempty"`
	MetaDescription    string       `json:"metaDescription,omitempty"`
	MetaKeyword        string       `json:"metaKeyword,omitempty"`
	CanonicalTag       string       `json:"canonicalTag,omitempty"`
	Robots             string       `json:"robots,omitempty"`
	OGTitle            string       `json:"ogTitle,omitempty"`
	OGDescription      string       `json:"ogDescription,omitempty"`
	OGImage            *types.Image `json:"ogImage,omitempty"`
	TwitterTitle       string       `json:"twitterTitle,omitempty"`
	TwitterDescription string       `json:"twitterDescription,omitempty"`
	TwitterImage       *types.Image `json:"twitterImage,omitempty"`
}

// FooterDetail is the single row of company contact details. Phone numbers,
// emails and address are editor-shaped JSON passed through as stored.
type FooterDetail struct {
	ID            uint           `gorm:"column:id;primaryKey"`
	PhoneNumbers  datatypes.JSON `gorm:"column:company_phone_numbers"`
	Emails        datatypes.JSON `gorm:"column:company_emails"`
	Address       datatypes.JSON `gorm:"column:company_address"`
	FacebookLink  *string        `gorm:"column:facebook_link"`
	TwitterLink   *string        `gorm:"column:twitter_link"`
	InstagramLink *string        `gorm:"column:instagram_link"`
	LinkedinLink  *string        `gorm:"column:linkedin_link"`
	PinterestLink *string        `gorm:"column:pinterest_link"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
