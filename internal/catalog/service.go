// Package catalog serves category, product and slug read paths. Every
// price, discount and default variation goes through internal/pricing.
package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/pricing"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/pagination"
)

const reviewDateLayout = "2006-01-02"

type reader interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	FindProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	ListProductSlugs(ctx context.Context) ([]string, error)
	FindCustomerReviews(ctx context.Context) (*models.CustomerReviewSection, error)
}

// CategoryQuery is the parsed category page request.
type CategoryQuery struct {
	Filters pricing.Filters
	Offset  int
	Limit   int
}

// Service exposes catalog read operations.
type Service interface {
	ListCategories(ctx context.Context) ([]CategorySummaryDTO, error)
	GetCategory(ctx context.Context, slug string, q CategoryQuery) (*CategoryDetailDTO, error)
	ListProducts(ctx context.Context, page, limit int) (*ProductListDTO, error)
	GetProduct(ctx context.Context, slug string) (*ProductDetailDTO, error)
	ListProductSlugs(ctx context.Context) ([]SlugDTO, error)
	ProductCards(ctx context.Context, ids []uint) ([]ProductCardDTO, error)
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo     reader
	AssetURL func(string) string
}

type service struct {
	repo      reader
	presenter Presenter
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repo is required")
	}
	return &service{
		repo:      params.Repo,
		presenter: NewPresenter(params.AssetURL),
	}, nil
}

// ListCategories returns the category index, keeping the first category per slug.
func (s *service) ListCategories(ctx context.Context) ([]CategorySummaryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	seen := make(map[string]struct{}, len(categories))
	out := make([]CategorySummaryDTO, 0, len(categories))
	for _, c := range categories {
		if _, dup := seen[c.Slug]; dup {
			continue
		}
		seen[c.Slug] = struct{}{}
		out = append(out, CategorySummaryDTO{
			Name:             c.Name,
			Slug:             c.Slug,
			CategoryDiscount: c.CategoryDiscount.InexactFloat64(),
			Images:           s.presenter.Images(c.Images),
		})
	}
	return out, nil
}

// GetCategory filters the category's products, counts facets over the
// unfiltered set and paginates the filtered products.
func (s *service) GetCategory(ctx context.Context, slug string, q CategoryQuery) (*CategoryDetailDTO, error) {
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	products := make([]models.Product, len(category.Products))
	for i, p := range category.Products {
		p.Variations = pricing.ResolveAll(p.Variations)
		products[i] = p
	}

	filtered := pricing.ApplyFilters(products, q.Filters)
	counts := pricing.CountFacets(products, q.Filters)
	page := paginate(filtered, q.Offset, pagination.NormalizeLimit(q.Limit))

	rows := make([]CategoryProductDTO, 0, len(page))
	for _, p := range page {
		selected, ok := pricing.SelectVariation(p.Variations)
		if !ok {
			continue
		}
		discount := pricing.EffectiveDiscount(p.ProductDiscount, category.CategoryDiscount)
		rows = append(rows, CategoryProductDTO{
			Variation:           s.presenter.Variation(selected),
			PriceBeforeDiscount: s.presenter.PriceBlock(selected, discount),
			Product:             s.presenter.ListedProduct(p, category.CategoryDiscount),
		})
	}

	return &CategoryDetailDTO{
		Name:             category.Name,
		Slug:             category.Slug,
		CategoryDiscount: category.CategoryDiscount.InexactFloat64(),
		ShortDescription: category.ShortDescription,
		Images:           s.presenter.Images(category.Images),
		SEO:              map[string]any(category.SEO),
		TotalProducts:    len(filtered),
		Products:         rows,
		FilterCounts:     counts,
	}, nil
}

func paginate(products []models.Product, offset, limit int) []models.Product {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(products) {
		return nil
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end]
}

// ListProducts returns a page of product cards. Products without
// variations are omitted from the page but still counted.
func (s *service) ListProducts(ctx context.Context, page, limit int) (*ProductListDTO, error) {
	params := pagination.FromPage(page, limit)
	products, err := s.repo.ListProducts(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	total, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}

	cards := make([]ProductCardDTO, 0, len(products))
	for _, p := range products {
		if card, ok := s.presenter.ProductCard(p); ok {
			cards = append(cards, card)
		}
	}
	return &ProductListDTO{TotalProducts: total, Products: cards}, nil
}

// GetProduct renders the product page.
func (s *service) GetProduct(ctx context.Context, slug string) (*ProductDetailDTO, error) {
	product, err := s.repo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	testimonials, err := s.repo.FindCustomerReviews(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer reviews")
	}

	resolved := pricing.ResolveAll(product.Variations)
	categoryDiscount := categoryDiscountOf(*product)
	detail := &ProductDetailDTO{
		ID:              product.ID,
		Name:            product.Name,
		Slug:            product.Slug,
		Description:     product.Description,
		ProductDiscount: product.ProductDiscount.InexactFloat64(),
		Images:          s.presenter.Images(product.Images),
		Variations:      s.presenter.Variations(resolved),
		Category:        s.presenter.CategoryRef(product.Category),
		ProductReviews:  make([]ReviewDTO, 0, len(product.Reviews)),
		Reviews:         s.presenter.CustomerReviews(testimonials),
	}
	if selected, ok := pricing.SelectVariation(resolved); ok {
		dto := s.presenter.Variation(selected)
		detail.SelectedVariation = &dto
		discount := pricing.EffectiveDiscount(product.ProductDiscount, categoryDiscount)
		detail.PriceBeforeDiscount = s.presenter.PriceBlock(selected, discount)
	}
	for _, r := range product.Reviews {
		detail.ProductReviews = append(detail.ProductReviews, ReviewDTO{
			Name:      r.Name,
			Stars:     r.Stars,
			Feedback:  r.Feedback,
			CreatedAt: r.CreatedAt.UTC().Format(reviewDateLayout),
		})
	}
	return detail, nil
}

// ListProductSlugs returns every published slug.
func (s *service) ListProductSlugs(ctx context.Context) ([]SlugDTO, error) {
	slugs, err := s.repo.ListProductSlugs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product slugs")
	}
	out := make([]SlugDTO, 0, len(slugs))
	for _, slug := range slugs {
		out = append(out, SlugDTO{Slug: slug})
	}
	return out, nil
}

// ProductCards renders the given products in the order of ids, skipping
// unknown ids and products without variations.
func (s *service) ProductCards(ctx context.Context, ids []uint) ([]ProductCardDTO, error) {
	products, err := s.repo.FindProductsByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	cards := make([]ProductCardDTO, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if card, ok := s.presenter.ProductCard(p); ok {
			cards = append(cards, card)
		}
	}
	return cards, nil
}
