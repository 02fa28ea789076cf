package wishlist

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductIDs returns the liked product ids in the order they were added.
func (r *Repository) ProductIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Pluck("product_id", &ids).Error
	return ids, err
}

// Add inserts likes and ignores duplicates.
func (r *Repository) Add(ctx context.Context, userID uint, productIDs ...uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	rows := make([]models.WishlistItem, 0, len(productIDs))
	for _, id := range productIDs {
		rows = append(rows, models.WishlistItem{UserID: userID, ProductID: id})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// Remove deletes the like if it exists and reports whether a row went away.
func (r *Repository) Remove(ctx context.Context, userID, productID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	return res.RowsAffected > 0, res.Error
}

// KnownProducts filters ids down to products that exist.
func (r *Repository) KnownProducts(ctx context.Context, ids []uint) ([]uint, error) {
	known := []uint{}
	if len(ids) == 0 {
		return known, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &known).Error
	return known, err
}
