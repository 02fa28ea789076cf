// Package reservation decrements variation stock with conditional updates
// so concurrent checkouts can never drive stock below zero.
package reservation

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
)

// ReasonInsufficientStock marks a line the conditional update could not claim.
const ReasonInsufficientStock = "insufficient_stock"

// InventoryReservationRequest asks for Qty units of one variation.
type InventoryReservationRequest struct {
	ProductID   uint
	VariationID int32
	Qty         int
}

// InventoryReservationResult reports the outcome for the request at the same index.
type InventoryReservationResult struct {
	ProductID   uint
	VariationID int32
	Qty         int
	Reserved    bool
	Reason      string
}

// ReserveInventory claims stock for each request in order. Callers run it
// inside the order transaction and roll back when any result is unreserved.
func ReserveInventory(ctx context.Context, tx *gorm.DB, requests []InventoryReservationRequest) ([]InventoryReservationResult, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "reservation requires a transaction")
	}
	for _, req := range requests {
		if req.Qty < 1 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid quantity %d for product %d", req.Qty, req.ProductID)
		}
	}

	results := make([]InventoryReservationResult, 0, len(requests))
	for _, req := range requests {
		res := tx.WithContext(ctx).
			Model(&models.Variation{}).
			Where("product_id = ? AND uuid = ? AND stock >= ?", req.ProductID, req.VariationID, req.Qty).
			UpdateColumn("stock", gorm.Expr("stock - ?", req.Qty))
		if res.Error != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve inventory")
		}

		result := InventoryReservationResult{
			ProductID:   req.ProductID,
			VariationID: req.VariationID,
			Qty:         req.Qty,
			Reserved:    res.RowsAffected == 1,
		}
		if !result.Reserved {
			result.Reason = ReasonInsufficientStock
		}
		results = append(results, result)
	}
	return results, nil
}

// AvailableStock reads the current stock of one variation inside tx.
func AvailableStock(ctx context.Context, tx *gorm.DB, productID uint, variationID int32) (int, error) {
	var v models.Variation
	err := tx.WithContext(ctx).
		Select("stock").
		Where("product_id = ? AND uuid = ?", productID, variationID).
		Take(&v).Error
	return v.Stock, err
}
