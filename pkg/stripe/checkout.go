package stripe

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
)

// LineItem is one priced row of a hosted checkout page.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// CheckoutSessionInput describes a hosted checkout for a single order.
type CheckoutSessionInput struct {
	OrderID     string
	OrderNumber string
	Email       string
	Items       []LineItem
}

// CheckoutSession is the subset of the Stripe session returned to callers.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionCreator opens hosted checkout sessions.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error)
}

// CreateCheckoutSession opens a one-off payment session priced in the
// configured currency. Amounts are converted to minor units.
func (c *Client) CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error) {
	if c == nil || c.api == nil {
		return nil, errors.New("stripe client not initialized")
	}
	params, err := c.sessionParams(in)
	if err != nil {
		return nil, err
	}
	sess, err := c.api.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (c *Client) sessionParams(in CheckoutSessionInput) (*stripe.CheckoutSessionCreateParams, error) {
	if len(in.Items) == 0 {
		return nil, errors.New("checkout session requires at least one line item")
	}
	params := &stripe.CheckoutSessionCreateParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		ClientReferenceID: stripe.String(in.OrderID),
	}
	if in.Email != "" {
		params.CustomerEmail = stripe.String(in.Email)
	}
	for _, item := range in.Items {
		if item.Quantity < 1 {
			continue
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionCreateLineItemParams{
			Quantity: stripe.Int64(item.Quantity),
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency:   stripe.String(c.currency),
				UnitAmount: stripe.Int64(MinorUnits(item.UnitPrice)),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
		})
	}
	params.AddMetadata("orderId", in.OrderID)
	if in.OrderNumber != "" {
		params.AddMetadata("orderNumber", in.OrderNumber)
	}
	// payment_intent.succeeded only carries the intent's own metadata.
	params.PaymentIntentData = &stripe.CheckoutSessionCreatePaymentIntentDataParams{
		Metadata: map[string]string{"orderId": in.OrderID},
	}
	return params, nil
}

// MinorUnits converts a major-unit amount to pence/cents, rounding half up.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
