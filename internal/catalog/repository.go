package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/repo"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

// Repository is the explicit read contract for categories, products and
// their variations. Every method names the relations it loads.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func orderedVariations(db *gorm.DB) *gorm.DB {
	return db.Order("variations.position ASC, variations.id ASC")
}

func publishedProducts(db *gorm.DB) *gorm.DB {
	return db.Where("products.is_published = ?", true).Order("products.created_at DESC, products.id DESC")
}

// ListCategories returns every category ordered by id.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindCategoryBySlug loads the category, its published products and their
// variations ordered by position.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.DB(ctx).
		Preload("Products", publishedProducts).
		Preload("Products.Variations", orderedVariations).
		Where("slug = ?", slug).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListProducts returns a page of published products, newest first, with
// category and variations.
func (r *Repository) ListProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := r.DB(ctx).
		Scopes(publishedProducts).
		Preload("Category").
		Preload("Variations", orderedVariations).
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// CountProducts counts published products.
func (r *Repository) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB(ctx).Model(&models.Product{}).Where("is_published = ?", true).Count(&total).Error
	return total, err
}

// FindProductBySlug loads a published product with category, variations and
// approved reviews newest first.
func (r *Repository) FindProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		Preload("Category").
		Preload("Variations", orderedVariations).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_approved = ?", true).Order("created_at DESC, id DESC")
		}).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductByID loads a product with its variations, using tx when set.
func (r *Repository) FindProductByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	err := r.Conn(ctx, tx).
		Preload("Variations", orderedVariations).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProductsByIDs loads published products with category and variations,
// preserving no particular order.
func (r *Repository) FindProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := r.DB(ctx).
		Preload("Category").
		Preload("Variations", orderedVariations).
		Where("id IN ? AND is_published = ?", ids, true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductSlugs returns every published slug.
func (r *Repository) ListProductSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	err := r.DB(ctx).
		Model(&models.Product{}).
		Where("is_published = ?", true).
		Order("id ASC").
		Pluck("slug", &slugs).Error
	return slugs, err
}

// FindCustomerReviews returns the homepage testimonial block, or nil when
// no homepage has been published.
func (r *Repository) FindCustomerReviews(ctx context.Context) (*models.CustomerReviewSection, error) {
	var page models.Homepage
	err := r.DB(ctx).Select("id", "customer_reviews").First(&page, "id = ?", models.HomepageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return page.CustomerReviews, nil
}
