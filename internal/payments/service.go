// Package payments opens hosted Stripe checkout sessions for pending orders.
package payments

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/orders"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	"github.com/angelmondragon/stonefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/stripe"
)

// SessionDTO is returned to the storefront, which redirects to URL.
type SessionDTO struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Service creates payment sessions.
type Service interface {
	CreateSession(ctx context.Context, orderID uint) (*SessionDTO, error)
}

type service struct {
	orders  orders.Repository
	creator stripe.SessionCreator
	logg    *logger.Logger
}

// NewService builds the payment session service. A nil creator keeps the
// endpoint mounted but answers with a dependency error.
func NewService(ordersRepo orders.Repository, creator stripe.SessionCreator, logg *logger.Logger) (Service, error) {
	if ordersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{orders: ordersRepo, creator: creator, logg: logg}, nil
}

func (s *service) CreateSession(ctx context.Context, orderID uint) (*SessionDTO, error) {
	if orderID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orderId is required")
	}
	if s.creator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments are not configured")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status == enums.OrderStatusPaid {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "Order is already paid")
	}

	input := sessionInput(order)
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Order has no payable items")
	}

	ctx = s.logg.WithOrderID(ctx, order.ID)
	sess, err := s.creator.CreateCheckoutSession(ctx, input)
	if err != nil {
		s.logg.Error(ctx, "payments.create_session_failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stripe checkout session")
	}

	if err := s.orders.SetStripeSession(ctx, order.ID, sess.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store stripe session id")
	}
	s.logg.Info(s.logg.WithField(ctx, "stripe_session_id", sess.ID), "payments.session_created")
	return &SessionDTO{ID: sess.ID, URL: sess.URL}, nil
}

func sessionInput(order *models.Order) stripe.CheckoutSessionInput {
	items := make([]stripe.LineItem, 0, len(order.Items)+2)
	for _, item := range order.Items {
		name := item.ProductName
		if item.SKU != "" {
			name += " (" + item.SKU + ")"
		}
		items = append(items, stripe.LineItem{
			Name:      name,
			UnitPrice: item.UnitPrice,
			Quantity:  int64(item.Quantity),
		})
	}
	if order.Totals.ShippingCost.IsPositive() {
		items = append(items, stripe.LineItem{Name: "Shipping", UnitPrice: order.Totals.ShippingCost, Quantity: 1})
	}
	if order.Totals.TailLift.IsPositive() {
		items = append(items, stripe.LineItem{Name: "Tail lift", UnitPrice: order.Totals.TailLift, Quantity: 1})
	}

	email, _ := order.Contact["email"].(string)
	return stripe.CheckoutSessionInput{
		OrderID:     strconv.FormatUint(uint64(order.ID), 10),
		OrderNumber: order.OrderNumber,
		Email:       email,
		Items:       items,
	}
}
