package catalog

import (
	"time"

	"github.com/angelmondragon/stonefront-backend/internal/pricing"
)

// ImageDTO is the public shape of a stored image.
type ImageDTO struct {
	ID  int    `json:"id,omitempty"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// VariationDTO carries resolved prices. ID is the external numeric uuid.
type VariationDTO struct {
	ID        int32   `json:"id"`
	SKU       string  `json:"SKU"`
	PerM2     float64 `json:"Per_m2"`
	Thickness string  `json:"Thickness"`
	Size      string  `json:"Size"`
	Finish    string  `json:"Finish"`
	PackSize  float64 `json:"PackSize"`
	Pcs       int     `json:"Pcs"`
	Stock     int     `json:"Stock"`
	ColorTone string  `json:"ColorTone"`
	Price     float64 `json:"Price"`
}

// PriceBlockDTO is the pre-discount reference price.
type PriceBlockDTO struct {
	PerM2 float64 `json:"Per_m2"`
	Price float64 `json:"Price"`
}

// CategorySummaryDTO is one entry of the category index.
type CategorySummaryDTO struct {
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	CategoryDiscount float64    `json:"categoryDiscount"`
	Images           []ImageDTO `json:"images"`
}

// ListedProductDTO is the product block shared by listings.
type ListedProductDTO struct {
	ID               uint       `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	ProductDiscount  float64    `json:"productDiscount"`
	CategoryDiscount float64    `json:"categoryDiscount"`
	Images           []ImageDTO `json:"images"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// CategoryProductDTO is a product row on a category page.
type CategoryProductDTO struct {
	Variation           VariationDTO     `json:"variation"`
	PriceBeforeDiscount *PriceBlockDTO   `json:"priceBeforeDiscount"`
	Product             ListedProductDTO `json:"product"`
}

// CategoryDetailDTO is the filtered, paginated category page.
type CategoryDetailDTO struct {
	Name             string               `json:"name"`
	Slug             string               `json:"slug"`
	CategoryDiscount float64              `json:"categoryDiscount"`
	ShortDescription string               `json:"short_description"`
	Images           []ImageDTO           `json:"images"`
	SEO              map[string]any       `json:"seo"`
	TotalProducts    int                  `json:"totalProducts"`
	Products         []CategoryProductDTO `json:"products"`
	FilterCounts     pricing.FacetCounts  `json:"filterCounts"`
}

// ProductCardDTO is a product with every variation plus the selected one.
type ProductCardDTO struct {
	Variations          []VariationDTO   `json:"variations"`
	SelectedVariation   VariationDTO     `json:"selectedVariation"`
	PriceBeforeDiscount *PriceBlockDTO   `json:"priceBeforeDiscount"`
	Product             ListedProductDTO `json:"product"`
}

// ProductListDTO is the paginated product index.
type ProductListDTO struct {
	TotalProducts int64            `json:"totalProducts"`
	Products      []ProductCardDTO `json:"products"`
}

// CategoryRefDTO is the category reference embedded in product detail.
type CategoryRefDTO struct {
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	CategoryDiscount float64 `json:"categoryDiscount"`
}

// ReviewDTO is an approved review. CreatedAt is YYYY-MM-DD.
type ReviewDTO struct {
	Name      string `json:"name"`
	Stars     int    `json:"stars"`
	Feedback  string `json:"feedback"`
	CreatedAt string `json:"createdAt"`
}

// ProductDetailDTO is the product page payload.
type ProductDetailDTO struct {
	ID                  uint                `json:"id"`
	Name                string              `json:"name"`
	Slug                string              `json:"slug"`
	Description         string              `json:"description"`
	ProductDiscount     float64             `json:"productDiscount"`
	Images              []ImageDTO          `json:"images"`
	Variations          []VariationDTO      `json:"variations"`
	SelectedVariation   *VariationDTO       `json:"selectedVariation"`
	Category            *CategoryRefDTO     `json:"category"`
	PriceBeforeDiscount *PriceBlockDTO      `json:"priceBeforeDiscount"`
	ProductReviews      []ReviewDTO         `json:"productReviews"`
	Reviews             *CustomerReviewsDTO `json:"reviews"`
}

// CustomerReviewsDTO is the curated testimonial block. Only active
// testimonials are listed.
type CustomerReviewsDTO struct {
	SectionTitle    string              `json:"sectionTitle"`
	SectionSubtitle string              `json:"sectionSubtitle"`
	Reviews         []CustomerReviewDTO `json:"reviews"`
}

type CustomerReviewDTO struct {
	Name   string `json:"name"`
	Stars  int    `json:"stars"`
	Review string `json:"review"`
}

// BestSellerDTO is a homepage best seller. PriceAfterDiscount is the
// selected variation's selling price.
type BestSellerDTO struct {
	Name                string          `json:"name"`
	Slug                string          `json:"slug"`
	ProductDiscount     float64         `json:"productDiscount"`
	Image               *ImageDTO       `json:"image"`
	PriceAfterDiscount  PriceBlockDTO   `json:"priceAfterDiscount"`
	PriceBeforeDiscount *PriceBlockDTO  `json:"priceBeforeDiscount"`
	Category            *CategoryRefDTO `json:"category"`
}

// SlugDTO is one entry of the slug index.
type SlugDTO struct {
	Slug string `json:"slug"`
}
