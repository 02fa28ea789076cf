package userdetails

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

// Repository persists user profiles keyed by the token's user id.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUser(ctx context.Context, userID uint) (*models.UserDetail, error) {
	var detail models.UserDetail
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *Repository) Create(ctx context.Context, detail *models.UserDetail) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

// Update writes only the named columns of detail.
func (r *Repository) Update(ctx context.Context, detail *models.UserDetail, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(detail).Select(columns).Updates(detail).Error
}
