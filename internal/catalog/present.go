package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/stonefront-backend/internal/pricing"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

// Presenter renders catalog models into response DTOs.
type Presenter struct {
	assetURL func(string) string
}

// NewPresenter builds a presenter. assetURL turns stored image paths into
// public URLs; nil leaves them untouched.
func NewPresenter(assetURL func(string) string) Presenter {
	if assetURL == nil {
		assetURL = func(s string) string { return s }
	}
	return Presenter{assetURL: assetURL}
}

// Images renders an image list, never nil.
func (p Presenter) Images(images types.Images) []ImageDTO {
	out := make([]ImageDTO, 0, len(images))
	for _, img := range images {
		out = append(out, ImageDTO{ID: img.ID, URL: p.assetURL(img.URL), Alt: img.Alt})
	}
	return out
}

// ImageURL renders the first image URL or "".
func (p Presenter) ImageURL(images types.Images) string {
	if first := images.First(); first != nil {
		return p.assetURL(first.URL)
	}
	return ""
}

// Variation renders an already resolved variation.
func (p Presenter) Variation(v models.Variation) VariationDTO {
	return VariationDTO{
		ID:        v.UUID,
		SKU:       v.SKU,
		PerM2:     v.PerM2.InexactFloat64(),
		Thickness: v.Thickness.String(),
		Size:      v.Size.String(),
		Finish:    v.Finish.String(),
		PackSize:  v.PackSize.InexactFloat64(),
		Pcs:       v.Pcs,
		Stock:     v.Stock,
		ColorTone: v.ColorTone.String(),
		Price:     v.Price.InexactFloat64(),
	}
}

// Variations renders a resolved slice, never nil.
func (p Presenter) Variations(vs []models.Variation) []VariationDTO {
	out := make([]VariationDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, p.Variation(v))
	}
	return out
}

// PriceBlock returns the pre-discount block for a resolved variation.
func (p Presenter) PriceBlock(v models.Variation, discount decimal.Decimal) *PriceBlockDTO {
	block := pricing.PriceBeforeDiscount(v.PerM2, v.Price, discount)
	if block == nil {
		return nil
	}
	return &PriceBlockDTO{
		PerM2: block.PricePerArea.InexactFloat64(),
		Price: block.Price.InexactFloat64(),
	}
}

// ListedProduct renders the product block of a listing row.
func (p Presenter) ListedProduct(prod models.Product, categoryDiscount decimal.Decimal) ListedProductDTO {
	return ListedProductDTO{
		ID:               prod.ID,
		Name:             prod.Name,
		Slug:             prod.Slug,
		ProductDiscount:  prod.ProductDiscount.InexactFloat64(),
		CategoryDiscount: categoryDiscount.InexactFloat64(),
		Images:           p.Images(prod.Images),
		CreatedAt:        prod.CreatedAt,
		UpdatedAt:        prod.UpdatedAt,
	}
}

// ProductCard renders a product with all variations and the selected one.
// It reports false for products without variations.
func (p Presenter) ProductCard(prod models.Product) (ProductCardDTO, bool) {
	resolved := pricing.ResolveAll(prod.Variations)
	selected, ok := pricing.SelectVariation(resolved)
	if !ok {
		return ProductCardDTO{}, false
	}
	categoryDiscount := categoryDiscountOf(prod)
	discount := pricing.EffectiveDiscount(prod.ProductDiscount, categoryDiscount)
	return ProductCardDTO{
		Variations:          p.Variations(resolved),
		SelectedVariation:   p.Variation(selected),
		PriceBeforeDiscount: p.PriceBlock(selected, discount),
		Product:             p.ListedProduct(prod, categoryDiscount),
	}, true
}

// BestSeller renders a homepage best seller. It reports false for products
// without variations.
func (p Presenter) BestSeller(prod models.Product) (BestSellerDTO, bool) {
	selected, ok := pricing.SelectVariation(pricing.ResolveAll(prod.Variations))
	if !ok {
		return BestSellerDTO{}, false
	}
	categoryDiscount := categoryDiscountOf(prod)
	out := BestSellerDTO{
		Name:            prod.Name,
		Slug:            prod.Slug,
		ProductDiscount: prod.ProductDiscount.InexactFloat64(),
		PriceAfterDiscount: PriceBlockDTO{
			PerM2: selected.PerM2.InexactFloat64(),
			Price: selected.Price.InexactFloat64(),
		},
		PriceBeforeDiscount: p.PriceBlock(selected, pricing.EffectiveDiscount(prod.ProductDiscount, categoryDiscount)),
		Category:            p.CategoryRef(prod.Category),
	}
	if first := prod.Images.First(); first != nil {
		out.Image = &ImageDTO{ID: first.ID, URL: p.assetURL(first.URL), Alt: first.Alt}
	}
	return out, true
}

// CategoryRef renders the category reference, nil when there is none.
func (p Presenter) CategoryRef(c *models.Category) *CategoryRefDTO {
	if c == nil {
		return nil
	}
	return &CategoryRefDTO{
		Name:             c.Name,
		Slug:             c.Slug,
		CategoryDiscount: c.CategoryDiscount.InexactFloat64(),
	}
}

// CustomerReviews renders the testimonial block, dropping inactive entries.
func (p Presenter) CustomerReviews(section *models.CustomerReviewSection) *CustomerReviewsDTO {
	if section == nil {
		return nil
	}
	out := &CustomerReviewsDTO{
		SectionTitle:    section.SectionTitle,
		SectionSubtitle: section.SectionSubtitle,
		Reviews:         make([]CustomerReviewDTO, 0, len(section.Reviews)),
	}
	for _, r := range section.Reviews {
		if !r.IsActive {
			continue
		}
		out.Reviews = append(out.Reviews, CustomerReviewDTO{Name: r.Name, Stars: r.Stars, Review: r.Review})
	}
	return out
}

func categoryDiscountOf(prod models.Product) decimal.Decimal {
	if prod.Category == nil {
		return decimal.Zero
	}
	return prod.Category.CategoryDiscount
}
