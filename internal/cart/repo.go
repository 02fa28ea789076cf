package cart

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

// Repository defines the persistence surface required by the cart service.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uint) (*models.CartItem, error)
	FindLine(ctx context.Context, userID, productID uint, variationID int32) (*models.CartItem, error)
	ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	IncrementQuantity(ctx context.Context, id uint, by int) error
	UpdateQuantity(ctx context.Context, id uint, quantity int) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func withProduct(db *gorm.DB) *gorm.DB {
	return db.Preload("Product").Preload("Product.Variations", func(db *gorm.DB) *gorm.DB {
		return db.Order("variations.position ASC, variations.id ASC")
	})
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := withProduct(r.db.WithContext(ctx)).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindLine(ctx context.Context, userID, productID uint, variationID int32) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND variation_id = ?", userID, productID, variationID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := withProduct(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Omit("Product").Create(item).Error
}

func (r *repository) IncrementQuantity(ctx context.Context, id uint, by int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", by)).Error
}

func (r *repository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, id).Error
}
