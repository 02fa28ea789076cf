package cart

import (
	"net/http"

	"github.com/angelmondragon/stonefront-backend/api/middleware"
	"github.com/angelmondragon/stonefront-backend/api/responses"
	"github.com/angelmondragon/stonefront-backend/api/validators"
	cartsvc "github.com/angelmondragon/stonefront-backend/internal/cart"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

// CartAdd adds a product variation to the caller's cart or bumps the
// quantity of the matching line.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authorize(w, r, svc, logg)
		if !ok {
			return
		}

		var payload cartsvc.AddInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Add(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// CartFetch lists the caller's cart, newest first.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authorize(w, r, svc, logg)
		if !ok {
			return
		}
		items, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CartUpdate sets the quantity of one of the caller's lines.
func CartUpdate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authorize(w, r, svc, logg)
		if !ok {
			return
		}
		itemID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateQuantity(r.Context(), userID, itemID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// CartRemove deletes one of the caller's lines and returns it.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := authorize(w, r, svc, logg)
		if !ok {
			return
		}
		itemID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.Remove(r.Context(), userID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func authorize(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger) (uint, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
		return 0, false
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return 0, false
	}
	return userID, true
}
