// Package stripewebhook applies verified Stripe events to order payment state.
package stripewebhook

import (
	"context"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/metrics"
)

// Webhook event outcomes.
const (
	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

type orderStatusUpdater interface {
	MarkPaid(ctx context.Context, orderID uint) error
	MarkPending(ctx context.Context, orderID uint) error
}

type ServiceParams struct {
	Orders  orderStatusUpdater
	Metrics *metrics.WebhookMetrics
	Logger  *logger.Logger
}

type Service struct {
	orders  orderStatusUpdater
	metrics *metrics.WebhookMetrics
	logg    *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders service required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	return &Service{
		orders:  params.Orders,
		metrics: params.Metrics,
		logg:    params.Logger,
	}, nil
}

// HandleEvent moves the referenced order to paid or pending. Events without
// a usable order reference are acknowledged and logged.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}
	eventType := string(event.Type)
	ctx = s.logg.WithFields(ctx, map[string]any{"stripe_event_id": event.ID, "stripe_event_type": eventType})

	var transition func(context.Context, uint) error
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded,
		stripe.EventTypePaymentIntentSucceeded:
		transition = s.orders.MarkPaid
	case stripe.EventTypeCheckoutSessionAsyncPaymentFailed:
		transition = s.orders.MarkPending
	default:
		s.metrics.IncEvent(eventType, OutcomeIgnored)
		return nil
	}

	orderID, ok := orderIDFrom(event)
	if !ok {
		s.logg.Warn(ctx, "stripe_webhook.order_id_missing")
		s.metrics.IncEvent(eventType, OutcomeSkipped)
		return nil
	}
	ctx = s.logg.WithOrderID(ctx, orderID)

	if err := transition(ctx, orderID); err != nil {
		if pkgerrors.Is(err, pkgerrors.CodeNotFound) {
			s.logg.Warn(ctx, "stripe_webhook.order_not_found")
			s.metrics.IncEvent(eventType, OutcomeSkipped)
			return nil
		}
		s.metrics.IncEvent(eventType, OutcomeFailed)
		return err
	}

	s.metrics.IncEvent(eventType, OutcomeProcessed)
	s.logg.Info(ctx, "stripe_webhook.order_updated")
	return nil
}

func orderIDFrom(event *stripe.Event) (uint, bool) {
	if event == nil || event.Data == nil {
		return 0, false
	}
	obj := event.Data.Object
	metadata, _ := obj["metadata"].(map[string]any)
	raw := stringValue(metadata["orderId"])
	if raw == "" {
		raw = stringValue(obj["client_reference_id"])
	}
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// stringValue reads a string or JSON number field from a decoded event object.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
