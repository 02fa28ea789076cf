package enquiries

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
)

// Repository persists contact-form submissions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}
