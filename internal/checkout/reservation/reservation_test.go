package reservation

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/dbtest"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
)

func seedProduct(t *testing.T, db *gorm.DB, slug string, stocks ...int) models.Product {
	t.Helper()
	product := models.Product{Name: slug, Slug: slug}
	for i, stock := range stocks {
		product.Variations = append(product.Variations, models.Variation{UUID: int32(i + 1), Stock: stock})
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func stockOf(t *testing.T, db *gorm.DB, productID uint, uuid int32) int {
	t.Helper()
	var v models.Variation
	if err := db.First(&v, "product_id = ? AND uuid = ?", productID, uuid).Error; err != nil {
		t.Fatalf("load variation: %v", err)
	}
	return v.Stock
}

func TestReserveInventory(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	productA := seedProduct(t, db, "a", 5)
	productB := seedProduct(t, db, "b", 1)

	requests := []InventoryReservationRequest{
		{ProductID: productA.ID, VariationID: 1, Qty: 3},
		{ProductID: productA.ID, VariationID: 1, Qty: 4},
		{ProductID: productB.ID, VariationID: 1, Qty: 1},
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		results, terr := ReserveInventory(ctx, tx, requests)
		if terr != nil {
			return terr
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		if !results[0].Reserved || results[0].Reason != "" {
			t.Fatalf("expected first reservation to succeed")
		}
		if results[1].Reserved || results[1].Reason != ReasonInsufficientStock {
			t.Fatalf("expected second reservation to fail with reason, got %+v", results[1])
		}
		if !results[2].Reserved {
			t.Fatalf("expected third reservation to succeed")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("reserve transaction: %v", err)
	}

	if got := stockOf(t, db, productA.ID, 1); got != 2 {
		t.Fatalf("unexpected stock a: %d", got)
	}
	if got := stockOf(t, db, productB.ID, 1); got != 0 {
		t.Fatalf("unexpected stock b: %d", got)
	}
}

func TestReserveInventoryMatchesVariationByUUID(t *testing.T) {
	db := dbtest.Open(t)
	product := seedProduct(t, db, "multi", 2, 9)

	err := db.Transaction(func(tx *gorm.DB) error {
		results, err := ReserveInventory(context.Background(), tx, []InventoryReservationRequest{
			{ProductID: product.ID, VariationID: 2, Qty: 9},
			{ProductID: product.ID, VariationID: 7, Qty: 1},
		})
		if err != nil {
			return err
		}
		if !results[0].Reserved || results[1].Reserved {
			t.Fatalf("unexpected results %+v", results)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if got := stockOf(t, db, product.ID, 1); got != 2 {
		t.Fatalf("sibling variation touched: %d", got)
	}
	if got := stockOf(t, db, product.ID, 2); got != 0 {
		t.Fatalf("expected variation 2 drained, got %d", got)
	}
}

func TestReserveInventoryInvalidQty(t *testing.T) {
	db := dbtest.Open(t)
	product := seedProduct(t, db, "q", 5)

	_, err := ReserveInventory(context.Background(), db, []InventoryReservationRequest{{ProductID: product.ID, VariationID: 1, Qty: 0}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stockOf(t, db, product.ID, 1); got != 5 {
		t.Fatalf("stock changed on invalid request: %d", got)
	}
}

func TestAvailableStock(t *testing.T) {
	db := dbtest.Open(t)
	product := seedProduct(t, db, "s", 4)

	got, err := AvailableStock(context.Background(), db, product.ID, 1)
	if err != nil {
		t.Fatalf("available stock: %v", err)
	}
	if got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}
