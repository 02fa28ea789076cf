package orders

import (
	"context"
	"net/http"

	"github.com/angelmondragon/stonefront-backend/api/middleware"
	"github.com/angelmondragon/stonefront-backend/api/responses"
	"github.com/angelmondragon/stonefront-backend/api/validators"
	checkoutsvc "github.com/angelmondragon/stonefront-backend/internal/checkout"
	"github.com/angelmondragon/stonefront-backend/internal/checkout/helpers"
	internalorders "github.com/angelmondragon/stonefront-backend/internal/orders"
	"github.com/angelmondragon/stonefront-backend/internal/payments"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

type sessionRequest struct {
	OrderID any `json:"orderId"`
}

// Checkout validates the basket against live stock, reserves it and stores
// a pending order. Guests may check out; a valid token links the order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var input checkoutsvc.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.UserID = middleware.UserIDPtr(r.Context())
		input.ClientIP = middleware.ClientIP(r)

		order, err := svc.Execute(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithOrderID(ctx, order.ID)
			logg.Info(ctx, "checkout.order_created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internalorders.NewOrderDTO(*order))
	}
}

// StripeSession opens a hosted payment page for a pending order.
func StripeSession(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		var payload sessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, _ := helpers.ProductID(payload.OrderID)

		session, err := svc.CreateSession(withOrder(r.Context(), logg, orderID), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// List returns the caller's orders, newest first.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := caller(w, r, svc, logg)
		if !ok {
			return
		}
		orders, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// Detail returns one of the caller's orders.
func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := caller(w, r, svc, logg)
		if !ok {
			return
		}
		orderID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.GetForUser(withOrder(r.Context(), logg, orderID), userID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func caller(w http.ResponseWriter, r *http.Request, svc internalorders.Service, logg *logger.Logger) (uint, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
		return 0, false
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return 0, false
	}
	return userID, true
}

func withOrder(ctx context.Context, logg *logger.Logger, orderID uint) context.Context {
	if logg == nil || orderID == 0 {
		return ctx
	}
	return logg.WithOrderID(ctx, orderID)
}
