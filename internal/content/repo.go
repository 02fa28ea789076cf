package content

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

// Repository reads editorial content. Only published or active rows are
// ever returned.
type Repository struct {
	db       *gorm.DB
	products *catalog.Repository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, products: catalog.NewRepository(db)}
}

func (r *Repository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Blog{}).Where("is_published = ?", true)
}

func (r *Repository) ListBlogs(ctx context.Context, limit, offset int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.published(ctx).
		Order("uploaded_date DESC").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&blogs).Error
	return blogs, err
}

func (r *Repository) CountBlogs(ctx context.Context) (int64, error) {
	var total int64
	err := r.published(ctx).Count(&total).Error
	return total, err
}

func (r *Repository) FindBlogBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.published(ctx).Where("slug = ?", slug).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// RecentBlogs returns the newest published blogs other than excludeSlug.
func (r *Repository) RecentBlogs(ctx context.Context, excludeSlug string, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.published(ctx).
		Where("slug <> ?", excludeSlug).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

func (r *Repository) FindPolicy(ctx context.Context, pageName string) (*models.SitePolicy, error) {
	var policy models.SitePolicy
	if err := r.db.WithContext(ctx).Where("page_name = ?", pageName).First(&policy).Error; err != nil {
		return nil, err
	}
	return &policy, nil
}

func (r *Repository) ActiveCatalogues(ctx context.Context) ([]models.ProductCatalogue, error) {
	var items []models.ProductCatalogue
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

// FindHomepage loads the single homepage row.
func (r *Repository) FindHomepage(ctx context.Context) (*models.Homepage, error) {
	var page models.Homepage
	if err := r.db.WithContext(ctx).First(&page, "id = ?", models.HomepageID).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// FindFooter loads the single footer row.
func (r *Repository) FindFooter(ctx context.Context) (*models.FooterDetail, error) {
	var footer models.FooterDetail
	if err := r.db.WithContext(ctx).First(&footer, "id = ?", models.FooterDetailID).Error; err != nil {
		return nil, err
	}
	return &footer, nil
}

func (r *Repository) CategoriesByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

// FindProductsByIDs loads published products with category and variations
// through the catalog read contract.
func (r *Repository) FindProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	return r.products.FindProductsByIDs(ctx, ids)
}
