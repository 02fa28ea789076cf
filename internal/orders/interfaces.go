package orders

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/enums"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status enums.OrderStatus, paidAt *time.Time) error
	SetStripeSession(ctx context.Context, id uint, sessionID string) error
}
