package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/dbtest"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/enums"
	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

func seedOrder(t *testing.T, db *gorm.DB, number string, userID *uint, createdAt time.Time) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber: number,
		UserID:      userID,
		Status:      enums.OrderStatusPending,
		Totals: types.OrderTotals{
			CartSubtotal: decimal.RequireFromString("100.78"),
			ShippingCost: decimal.RequireFromString("25"),
			Total:        decimal.RequireFromString("125.78"),
		},
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Raj Green", VariationID: "1", Quantity: 2, UnitPrice: decimal.RequireFromString("50.39"), Subtotal: decimal.RequireFromString("100.78")},
		},
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	userID := uint(7)

	created := seedOrder(t, db, "ORD-1-1000", &userID, time.Now().UTC())

	got, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1-1000", got.OrderNumber)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "50.39", got.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "125.78", got.Totals.Total.StringFixed(2))

	_, err = repo.FindByID(context.Background(), created.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByUserNewestFirst(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	owner, other := uint(1), uint(2)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seedOrder(t, db, "ORD-A", &owner, base)
	seedOrder(t, db, "ORD-B", &owner, base.Add(time.Hour))
	seedOrder(t, db, "ORD-C", &other, base.Add(2*time.Hour))
	seedOrder(t, db, "ORD-D", nil, base.Add(3*time.Hour))

	list, err := repo.ListByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ORD-B", list[0].OrderNumber)
	assert.Equal(t, "ORD-A", list[1].OrderNumber)
	assert.Len(t, list[0].Items, 1)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	order := seedOrder(t, db, "ORD-S", nil, time.Now().UTC())
	paidAt := time.Now().UTC()

	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusPaid, &paidAt))

	got, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, got.Status)
	assert.NotNil(t, got.PaidAt)

	err = repo.UpdateStatus(context.Background(), order.ID+50, enums.OrderStatusPaid, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySetStripeSession(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	order := seedOrder(t, db, "ORD-P", nil, time.Now().UTC())

	require.NoError(t, repo.SetStripeSession(context.Background(), order.ID, "cs_test_123"))

	got, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StripeSessionID)
	assert.Equal(t, "cs_test_123", *got.StripeSessionID)
}

func TestRepositoryWithTxRollsBack(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		order := &models.Order{OrderNumber: "ORD-TX", Status: enums.OrderStatusPending}
		if err := repo.WithTx(tx).Create(context.Background(), order); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	require.ErrorIs(t, err, gorm.ErrInvalidTransaction)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}
