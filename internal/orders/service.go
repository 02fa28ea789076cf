package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
)

// Service defines order reads for customers and the payment state
// transitions driven by the webhook.
type Service interface {
	ListForUser(ctx context.Context, userID uint) ([]OrderDTO, error)
	GetForUser(ctx context.Context, userID, orderID uint) (*OrderDTO, error)
	MarkPaid(ctx context.Context, orderID uint) error
	MarkPending(ctx context.Context, orderID uint) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]OrderDTO, error) {
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(records))
	for _, order := range records {
		out = append(out, NewOrderDTO(order))
	}
	return out, nil
}

func (s *service) GetForUser(ctx context.Context, userID, orderID uint) (*OrderDTO, error) {
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "You are not the owner of this order.")
	}
	dto := NewOrderDTO(*order)
	return &dto, nil
}

// MarkPaid is a no-op for orders that are already paid.
func (s *service) MarkPaid(ctx context.Context, orderID uint) error {
	status, err := s.load(ctx, orderID)
	if err != nil {
		return err
	}
	if status == enums.OrderStatusPaid {
		return nil
	}
	paidAt := s.now().UTC()
	return s.transition(ctx, orderID, enums.OrderStatusPaid, &paidAt)
}

func (s *service) MarkPending(ctx context.Context, orderID uint) error {
	if _, err := s.load(ctx, orderID); err != nil {
		return err
	}
	return s.transition(ctx, orderID, enums.OrderStatusPending, nil)
}

func (s *service) load(ctx context.Context, orderID uint) (enums.OrderStatus, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.Newf(pkgerrors.CodeNotFound, "order %d not found", orderID)
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order.Status, nil
}

func (s *service) transition(ctx context.Context, orderID uint, status enums.OrderStatus, paidAt *time.Time) error {
	if err := s.repo.UpdateStatus(ctx, orderID, status, paidAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "order %d not found", orderID)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return nil
}
