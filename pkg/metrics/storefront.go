package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout outcomes.
const (
	OutcomeSuccess           = "success"
	OutcomeValidation        = "validation"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeError             = "error"
)

// CheckoutMetrics records checkout attempts and stock reservation latency.
type CheckoutMetrics struct {
	outcomes    *prometheus.CounterVec
	reservation prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})
	reservation := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventory_reservation_duration_seconds",
		Help:    "Duration of the stock reservation transaction in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(outcomes, reservation)
	return &CheckoutMetrics{
		outcomes:    outcomes,
		reservation: reservation,
	}
}

// IncOutcome counts one checkout attempt.
func (c *CheckoutMetrics) IncOutcome(outcome string) {
	if c == nil || c.outcomes == nil {
		return
	}
	c.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveReservation records how long the reservation transaction took.
func (c *CheckoutMetrics) ObserveReservation(duration time.Duration) {
	if c == nil || c.reservation == nil {
		return
	}
	c.reservation.Observe(duration.Seconds())
}

// WebhookMetrics counts processed payment provider events.
type WebhookMetrics struct {
	events *prometheus.CounterVec
}

// NewWebhookMetrics registers the webhook counter on the provided registerer.
func NewWebhookMetrics(reg prometheus.Registerer) *WebhookMetrics {
	if reg == nil {
		return &WebhookMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Payment webhook events by type and outcome.",
	}, []string{"type", "outcome"})
	reg.MustRegister(events)
	return &WebhookMetrics{events: events}
}

// IncEvent counts one webhook event.
func (w *WebhookMetrics) IncEvent(eventType, outcome string) {
	if w == nil || w.events == nil {
		return
	}
	w.events.WithLabelValues(normalizeLabel(eventType), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
