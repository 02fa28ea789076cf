package controllers

import (
	"net/http"

	"github.com/angelmondragon/stonefront-backend/api/middleware"
	"github.com/angelmondragon/stonefront-backend/api/responses"
	"github.com/angelmondragon/stonefront-backend/api/validators"
	"github.com/angelmondragon/stonefront-backend/internal/checkout/helpers"
	"github.com/angelmondragon/stonefront-backend/internal/wishlist"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

type toggleRequest struct {
	ProductID any `json:"productId"`
}

type mergeRequest struct {
	Items *[]any `json:"items"`
}

func WishlistGet(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, svc == nil, logg)
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

func WishlistToggle(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, svc == nil, logg)
		if !ok {
			return
		}
		var payload toggleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, _ := helpers.ProductID(payload.ProductID)
		result, err := svc.Toggle(r.Context(), userID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// WishlistMerge folds a guest's locally stored list into the account.
// Entries that are not product ids are skipped.
func WishlistMerge(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r, svc == nil, logg)
		if !ok {
			return
		}
		var payload mergeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var ids []uint
		if payload.Items != nil {
			ids = make([]uint, 0, len(*payload.Items))
			for _, raw := range *payload.Items {
				if id, ok := helpers.ProductID(raw); ok {
					ids = append(ids, id)
				}
			}
		}
		result, err := svc.Merge(r.Context(), userID, ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// WishlistProducts renders the ids in ?ids= for guests, else the signed-in
// user's saved list.
func WishlistProducts(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}
		ids := wishlist.ParseIDs(r.URL.Query().Get("ids"))
		cards, err := svc.Products(r.Context(), middleware.UserIDPtr(r.Context()), ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cards)
	}
}

func requireUser(w http.ResponseWriter, r *http.Request, missingService bool, logg *logger.Logger) (uint, bool) {
	if missingService {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "service unavailable"))
		return 0, false
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return 0, false
	}
	return userID, true
}
