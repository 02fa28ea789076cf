package webhooks

import (
	"context"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"

	"github.com/angelmondragon/stonefront-backend/api/responses"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

// maxPayloadBytes mirrors Stripe's own webhook payload ceiling.
const maxPayloadBytes = 65536

type StripeWebhookService interface {
	HandleEvent(ctx context.Context, event *stripe.Event) error
}

type stripeWebhookGuard interface {
	CheckAndMark(ctx context.Context, eventID string) (bool, error)
	Delete(ctx context.Context, eventID string) error
}

type signingSecret interface {
	SigningSecret() string
}

type receivedResponse struct {
	Received bool `json:"received"`
}

// StripeWebhook verifies a Stripe delivery and applies it to the order once.
func StripeWebhook(svc StripeWebhookService, client signingSecret, guard stripeWebhookGuard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil || guard == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}
		if client == nil || client.SigningSecret() == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "stripe webhook secret not configured"))
			return
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Webhook error: unreadable body"))
			return
		}

		sigHeader := r.Header.Get("Stripe-Signature")
		if sigHeader == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInvalidSignature, "Webhook error: missing Stripe-Signature header"))
			return
		}

		event, err := webhook.ConstructEvent(payload, sigHeader, client.SigningSecret())
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInvalidSignature, err, "Webhook error: "+err.Error()))
			return
		}

		if logg != nil {
			ctx = logg.WithFields(ctx, map[string]any{
				"stripe_event_id":   event.ID,
				"stripe_event_type": string(event.Type),
			})
		}

		alreadyProcessed, err := guard.CheckAndMark(ctx, event.ID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
			return
		}
		if alreadyProcessed {
			if logg != nil {
				logg.Info(ctx, "stripe.webhook.duplicate")
			}
			responses.WriteRaw(w, http.StatusOK, receivedResponse{Received: true})
			return
		}

		if err := handleClaimed(ctx, svc, guard, &event, logg); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, receivedResponse{Received: true})
	}
}

// handleClaimed runs the service for an event already claimed by guard and
// releases the claim on error or panic so Stripe's retry is processed.
func handleClaimed(ctx context.Context, svc StripeWebhookService, guard stripeWebhookGuard, event *stripe.Event, logg *logger.Logger) (err error) {
	handled := false
	defer func() {
		if handled && err == nil {
			return
		}
		if delErr := guard.Delete(ctx, event.ID); delErr != nil && logg != nil {
			logg.Error(ctx, "stripe.webhook.release_failed", delErr)
		}
	}()
	err = svc.HandleEvent(ctx, event)
	handled = true
	return err
}
