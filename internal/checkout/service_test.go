package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	"github.com/angelmondragon/stonefront-backend/internal/checkout/reservation"
	"github.com/angelmondragon/stonefront-backend/internal/dbtest"
	"github.com/angelmondragon/stonefront-backend/internal/orders"
	"github.com/angelmondragon/stonefront-backend/pkg/db"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/metrics"
)

type fixture struct {
	client  *db.Client
	product models.Product
}

func newFixture(t *testing.T, stock int) fixture {
	t.Helper()
	client := dbtest.Client(t)
	product := models.Product{
		Name: "Raj Green",
		Slug: "raj-green",
		Variations: []models.Variation{
			{UUID: 1, SKU: "RG-20", PerM2: decimal.RequireFromString("34.99"), PackSize: decimal.RequireFromString("1.44"), Stock: stock},
			{UUID: 2, SKU: "RG-30", Price: decimal.RequireFromString("99.99"), Stock: stock},
		},
	}
	if err := client.DB().Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return fixture{client: client, product: product}
}

func (f fixture) service(t *testing.T, runner reservationRunner, m *metrics.CheckoutMetrics) *service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Tx:          f.client,
		Products:    catalog.NewRepository(f.client.DB()),
		Orders:      orders.NewRepository(f.client.DB()),
		Reservation: runner,
		Metrics:     m,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	impl := svc.(*service)
	impl.now = func() time.Time { return time.UnixMilli(1767225600000) }
	impl.intn = func(int) int { return 234 }
	return impl
}

func (f fixture) stock(t *testing.T, uuid int32) int {
	t.Helper()
	var v models.Variation
	if err := f.client.DB().First(&v, "product_id = ? AND uuid = ?", f.product.ID, uuid).Error; err != nil {
		t.Fatalf("load variation: %v", err)
	}
	return v.Stock
}

func (f fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.client.DB().Model(&models.Order{}).Count(&n).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return n
}

func item(product uint, variation any, qty any) ItemInput {
	return ItemInput{Product: float64(product), VariationID: variation, Quantity: qty}
}

func TestExecuteCreatesOrderAndReservesStock(t *testing.T) {
	f := newFixture(t, 10)
	svc := f.service(t, nil, nil)
	userID := uint(42)

	order, err := svc.Execute(context.Background(), Input{
		Items: []ItemInput{
			item(f.product.ID, float64(1), float64(3)),
			item(f.product.ID, "2", float64(1)),
		},
		Totals:   map[string]any{"shippingCost": float64(25), "tailLift": "10", "total": float64(1)},
		Contact:  map[string]any{"email": "buyer@example.com"},
		UserID:   &userID,
		ClientIP: "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if order.OrderNumber != "ORD-1767225600000-1234" {
		t.Fatalf("unexpected order number %q", order.OrderNumber)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if got := order.Items[0].UnitPrice.StringFixed(2); got != "50.39" {
		t.Fatalf("expected derived unit price 50.39, got %s", got)
	}
	if got := order.Items[0].Subtotal.StringFixed(2); got != "151.17" {
		t.Fatalf("expected subtotal 151.17, got %s", got)
	}
	if order.Items[1].VariationID != "2" || order.Items[1].SKU != "RG-30" {
		t.Fatalf("unexpected snapshot %+v", order.Items[1])
	}
	if got := order.Totals.CartSubtotal.StringFixed(2); got != "251.16" {
		t.Fatalf("unexpected cart subtotal %s", got)
	}
	if got := order.Totals.Total.StringFixed(2); got != "286.16" {
		t.Fatalf("unexpected total %s", got)
	}
	if order.Metadata["ip"] != "203.0.113.9" || order.Metadata["createdFrom"] != "frontend" {
		t.Fatalf("unexpected metadata %+v", order.Metadata)
	}
	if order.UserID == nil || *order.UserID != userID {
		t.Fatalf("expected user attached")
	}

	if got := f.stock(t, 1); got != 7 {
		t.Fatalf("expected stock 7, got %d", got)
	}
	if got := f.stock(t, 2); got != 9 {
		t.Fatalf("expected stock 9, got %d", got)
	}
}

func TestExecuteValidationMessages(t *testing.T) {
	f := newFixture(t, 2)
	svc := f.service(t, nil, nil)

	cases := []struct {
		name    string
		items   []ItemInput
		code    pkgerrors.Code
		message string
	}{
		{name: "empty", items: nil, code: pkgerrors.CodeValidation, message: "No items to checkout"},
		{name: "missing product", items: []ItemInput{{VariationID: float64(1)}}, code: pkgerrors.CodeValidation, message: "Each item must have a product ID."},
		{name: "unknown product", items: []ItemInput{item(9999, float64(1), float64(1))}, code: pkgerrors.CodeNotFound, message: "Product with ID 9999 not found."},
		{name: "unknown variation", items: []ItemInput{item(f.product.ID, float64(77), float64(1))}, code: pkgerrors.CodeNotFound},
		{name: "zero quantity", items: []ItemInput{item(f.product.ID, float64(1), float64(0))}, code: pkgerrors.CodeValidation},
		{name: "too many", items: []ItemInput{item(f.product.ID, float64(1), float64(3))}, code: pkgerrors.CodeInsufficientStock, message: "Not enough stock for product Raj Green. Requested: 3, Available: 2."},
	}
	for _, tc := range cases {
		_, err := svc.Execute(context.Background(), Input{Items: tc.items})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != tc.code {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
		if tc.message != "" && typed.Message() != tc.message {
			t.Fatalf("%s: unexpected message %q", tc.name, typed.Message())
		}
	}

	if f.orderCount(t) != 0 {
		t.Fatalf("failed checkouts must not create orders")
	}
	if got := f.stock(t, 1); got != 2 {
		t.Fatalf("failed checkouts must not touch stock, got %d", got)
	}
}

func TestExecuteInsufficientStockDetails(t *testing.T) {
	f := newFixture(t, 1)
	svc := f.service(t, nil, nil)

	_, err := svc.Execute(context.Background(), Input{Items: []ItemInput{item(f.product.ID, float64(1), float64(2))}})
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]int)
	if !ok || details["requested"] != 2 || details["available"] != 1 {
		t.Fatalf("unexpected details %#v", typed.Details())
	}
}

// drainingRunner empties stock inside the transaction before reserving,
// simulating a competing checkout that committed after validation.
type drainingRunner struct{}

func (drainingRunner) Reserve(ctx context.Context, tx *gorm.DB, requests []reservation.InventoryReservationRequest) ([]reservation.InventoryReservationResult, error) {
	for _, req := range requests {
		if err := tx.Model(&models.Variation{}).
			Where("product_id = ? AND uuid = ?", req.ProductID, req.VariationID).
			UpdateColumn("stock", 0).Error; err != nil {
			return nil, err
		}
	}
	return reservation.ReserveInventory(ctx, tx, requests)
}

func TestExecuteRollsBackWhenReservationFails(t *testing.T) {
	f := newFixture(t, 5)
	svc := f.service(t, drainingRunner{}, nil)

	_, err := svc.Execute(context.Background(), Input{Items: []ItemInput{item(f.product.ID, float64(1), float64(2))}})
	if !pkgerrors.Is(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if e := pkgerrors.As(err); e.Message() != "Not enough stock for product Raj Green. Requested: 2, Available: 0." {
		t.Fatalf("unexpected message %q", e.Message())
	}
	if f.orderCount(t) != 0 {
		t.Fatalf("order insert must roll back")
	}
	if got := f.stock(t, 1); got != 5 {
		t.Fatalf("stock must roll back, got %d", got)
	}
}

// staleLoader serves products with the stock seen at the first read, as a
// replica lagging behind the primary would.
type staleLoader struct {
	inner productLoader
	stock int
}

func (l staleLoader) FindProductByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Product, error) {
	product, err := l.inner.FindProductByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	for i := range product.Variations {
		product.Variations[i].Stock = l.stock
	}
	return product, nil
}

func TestExecuteStaleStockRejectedByConditionalUpdate(t *testing.T) {
	f := newFixture(t, 2)
	svc := f.service(t, nil, nil)
	svc.products = staleLoader{inner: catalog.NewRepository(f.client.DB()), stock: 2}
	next := 0
	svc.intn = func(int) int { next++; return next }

	checkout := Input{Items: []ItemInput{item(f.product.ID, float64(1), float64(2))}}
	if _, err := svc.Execute(context.Background(), checkout); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	_, err := svc.Execute(context.Background(), checkout)
	if !pkgerrors.Is(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock from the reservation, got %v", err)
	}
	if e := pkgerrors.As(err); e.Message() != "Not enough stock for product Raj Green. Requested: 2, Available: 0." {
		t.Fatalf("unexpected message %q", e.Message())
	}
	if got := f.orderCount(t); got != 1 {
		t.Fatalf("second order insert must roll back, got %d orders", got)
	}
	if got := f.stock(t, 1); got != 0 {
		t.Fatalf("stock must never go negative, got %d", got)
	}
}

func TestExecuteRejectsNegativeFees(t *testing.T) {
	f := newFixture(t, 5)
	svc := f.service(t, nil, nil)

	for _, key := range []string{"shippingCost", "tailLift"} {
		_, err := svc.Execute(context.Background(), Input{
			Items:  []ItemInput{item(f.product.ID, float64(1), float64(1))},
			Totals: map[string]any{key: float64(-40)},
		})
		if !pkgerrors.Is(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", key, err)
		}
	}
	if f.orderCount(t) != 0 {
		t.Fatalf("rejected checkouts must not create orders")
	}
	if got := f.stock(t, 1); got != 5 {
		t.Fatalf("rejected checkouts must not touch stock, got %d", got)
	}
}

func TestExecuteConcurrentCheckoutsOversellNothing(t *testing.T) {
	f := newFixture(t, 5)
	svc := f.service(t, nil, nil)

	const attempts = 2
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Execute(context.Background(), Input{Items: []ItemInput{item(f.product.ID, float64(1), float64(3))}})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case pkgerrors.Is(err, pkgerrors.CodeInsufficientStock):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected one success and one conflict, got %d/%d", successes, conflicts)
	}
	if got := f.stock(t, 1); got != 2 {
		t.Fatalf("expected stock 2, got %d", got)
	}
	if f.orderCount(t) != 1 {
		t.Fatalf("expected a single order")
	}
}

func TestExecuteRecordsOutcomeMetrics(t *testing.T) {
	f := newFixture(t, 1)
	reg := prometheus.NewRegistry()
	svc := f.service(t, nil, metrics.NewCheckoutMetrics(reg))

	if _, err := svc.Execute(context.Background(), Input{Items: []ItemInput{item(f.product.ID, float64(1), float64(1))}}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	_, _ = svc.Execute(context.Background(), Input{Items: []ItemInput{item(f.product.ID, float64(1), float64(1))}})
	_, _ = svc.Execute(context.Background(), Input{})

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	got := map[string]float64{}
	var observations uint64
	for _, mf := range families {
		switch mf.GetName() {
		case "checkout_total":
			for _, m := range mf.GetMetric() {
				for _, l := range m.GetLabel() {
					if l.GetName() == "outcome" {
						got[l.GetValue()] = m.GetCounter().GetValue()
					}
				}
			}
		case "inventory_reservation_duration_seconds":
			observations = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	if got[metrics.OutcomeSuccess] != 1 || got[metrics.OutcomeInsufficientStock] != 1 || got[metrics.OutcomeValidation] != 1 {
		t.Fatalf("unexpected outcomes %v", got)
	}
	if observations != 1 {
		t.Fatalf("expected one reservation observation, got %d", observations)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatalf("expected error without tx runner")
	}
}
