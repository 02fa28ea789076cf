// Package checkout turns a storefront basket into a pending order,
// re-pricing every line on the server and reserving stock atomically.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/checkout/helpers"
	"github.com/angelmondragon/stonefront-backend/internal/checkout/reservation"
	"github.com/angelmondragon/stonefront-backend/internal/orders"
	"github.com/angelmondragon/stonefront-backend/internal/pricing"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindProductByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Product, error)
}

type reservationRunner interface {
	Reserve(ctx context.Context, tx *gorm.DB, requests []reservation.InventoryReservationRequest) ([]reservation.InventoryReservationResult, error)
}

type reservationEngine struct{}

func (reservationEngine) Reserve(ctx context.Context, tx *gorm.DB, requests []reservation.InventoryReservationRequest) ([]reservation.InventoryReservationResult, error) {
	return reservation.ReserveInventory(ctx, tx, requests)
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, input Input) (*models.Order, error)
}

// ServiceParams groups checkout dependencies. Reservation, Metrics and
// Logger are optional.
type ServiceParams struct {
	Tx          txRunner
	Products    productLoader
	Orders      orders.Repository
	Reservation reservationRunner
	Metrics     *metrics.CheckoutMetrics
	Logger      *logger.Logger
}

type service struct {
	tx          txRunner
	products    productLoader
	orders      orders.Repository
	reservation reservationRunner
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
	now         func() time.Time
	intn        func(int) int
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Reservation == nil {
		params.Reservation = reservationEngine{}
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	return &service{
		tx:          params.Tx,
		products:    params.Products,
		orders:      params.Orders,
		reservation: params.Reservation,
		metrics:     params.Metrics,
		logg:        params.Logger,
		now:         time.Now,
	}, nil
}

type pricedLine struct {
	product   *models.Product
	variation models.Variation
	quantity  int
	unitPrice decimal.Decimal
	subtotal  decimal.Decimal
}

func (s *service) Execute(ctx context.Context, input Input) (*models.Order, error) {
	order, err := s.execute(ctx, input)
	s.metrics.IncOutcome(outcomeOf(err))
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithOrderID(ctx, order.ID)
	s.logg.Info(s.logg.WithField(ctx, "order_number", order.OrderNumber), "checkout.order_created")
	return order, nil
}

func (s *service) execute(ctx context.Context, input Input) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "No items to checkout")
	}
	shipping, err := helpers.Fee(input.Totals, "shippingCost")
	if err != nil {
		return nil, err
	}
	tailLift, err := helpers.Fee(input.Totals, "tailLift")
	if err != nil {
		return nil, err
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		lines, err := s.priceLines(ctx, tx, input.Items)
		if err != nil {
			return err
		}

		order := s.buildOrder(input, lines, shipping, tailLift)
		if err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if err := s.reserve(ctx, tx, lines); err != nil {
			return err
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// priceLines validates every line in request order and resolves its price
// from the live variation.
func (s *service) priceLines(ctx context.Context, tx *gorm.DB, items []ItemInput) ([]pricedLine, error) {
	lines := make([]pricedLine, 0, len(items))
	for _, item := range items {
		productID, ok := helpers.ProductID(item.Product)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Each item must have a product ID.")
		}

		product, err := s.products.FindProductByID(ctx, tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Product with ID %d not found.", productID)
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		variationID, label, ok := helpers.VariationID(item.variationRef())
		var variation models.Variation
		if ok {
			variation, ok = pricing.FindByUUID(product.Variations, variationID)
		}
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Variation ID %s not found for product %d.", label, productID)
		}

		quantity := helpers.Quantity(item.Quantity)
		if quantity < 1 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Quantity for product %s must be at least 1.", product.Name)
		}
		if quantity > variation.Stock {
			return nil, insufficientStock(product.Name, quantity, variation.Stock)
		}

		unit := pricing.ResolvePrice(variation)
		lines = append(lines, pricedLine{
			product:   product,
			variation: variation,
			quantity:  quantity,
			unitPrice: unit,
			subtotal:  pricing.LineSubtotal(unit, quantity),
		})
	}
	return lines, nil
}

func (s *service) buildOrder(input Input, lines []pricedLine, shipping, tailLift decimal.Decimal) *models.Order {
	items := make([]models.OrderItem, 0, len(lines))
	subtotals := make([]decimal.Decimal, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:   line.product.ID,
			ProductName: line.product.Name,
			VariationID: strconv.FormatInt(int64(line.variation.UUID), 10),
			SKU:         line.variation.SKU,
			Quantity:    line.quantity,
			UnitPrice:   line.unitPrice,
			Subtotal:    line.subtotal,
		})
		subtotals = append(subtotals, line.subtotal)
	}

	totals := helpers.ComputeTotals(
		subtotals,
		shipping,
		tailLift,
		input.Totals,
	)

	return &models.Order{
		OrderNumber:     helpers.OrderNumber(s.now(), s.intn),
		UserID:          input.UserID,
		Status:          enums.OrderStatusPending,
		Items:           items,
		Shipping:        orEmpty(input.Shipping),
		Contact:         orEmpty(input.Contact),
		ShippingAddress: orEmpty(input.ShippingAddress),
		Totals:          totals,
		Metadata: map[string]any{
			"createdFrom": "frontend",
			"ip":          input.ClientIP,
		},
	}
}

// reserve decrements stock for every line. Any unreserved line aborts the
// transaction so no partial decrement survives.
func (s *service) reserve(ctx context.Context, tx *gorm.DB, lines []pricedLine) error {
	requests := make([]reservation.InventoryReservationRequest, 0, len(lines))
	for _, line := range lines {
		requests = append(requests, reservation.InventoryReservationRequest{
			ProductID:   line.product.ID,
			VariationID: line.variation.UUID,
			Qty:         line.quantity,
		})
	}

	start := time.Now()
	results, err := s.reservation.Reserve(ctx, tx, requests)
	s.metrics.ObserveReservation(time.Since(start))
	if err != nil {
		return err
	}

	for i, res := range results {
		if res.Reserved {
			continue
		}
		line := lines[i]
		available, err := reservation.AvailableStock(ctx, tx, res.ProductID, res.VariationID)
		if err != nil {
			available = line.variation.Stock
		}
		return insufficientStock(line.product.Name, res.Qty, available)
	}
	return nil
}

func insufficientStock(productName string, requested, available int) error {
	return pkgerrors.Newf(pkgerrors.CodeInsufficientStock,
		"Not enough stock for product %s. Requested: %d, Available: %d.", productName, requested, available).
		WithDetails(map[string]int{"requested": requested, "available": available})
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case pkgerrors.Is(err, pkgerrors.CodeInsufficientStock):
		return metrics.OutcomeInsufficientStock
	case pkgerrors.Is(err, pkgerrors.CodeValidation), pkgerrors.Is(err, pkgerrors.CodeNotFound):
		return metrics.OutcomeValidation
	default:
		return metrics.OutcomeError
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
