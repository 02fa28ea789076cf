package controllers

import (
	"net/http"

	"github.com/angelmondragon/stonefront-backend/api/middleware"
	"github.com/angelmondragon/stonefront-backend/api/responses"
	"github.com/angelmondragon/stonefront-backend/api/validators"
	"github.com/angelmondragon/stonefront-backend/internal/userdetails"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

// UserDetailsMe serves the caller's profile through the redis cache.
func UserDetailsMe(svc userdetails.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, ok := callerIdentity(w, r, svc, logg)
		if !ok {
			return
		}
		profile, err := svc.Get(r.Context(), who)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// UserDetailsUpdate creates or patches the caller's profile row. The cached
// copy is left to expire.
func UserDetailsUpdate(svc userdetails.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, ok := callerIdentity(w, r, svc, logg)
		if !ok {
			return
		}
		var input userdetails.UpsertInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		profile, err := svc.Upsert(r.Context(), who, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func UserDetailsClearCache(svc userdetails.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		who, ok := callerIdentity(w, r, svc, logg)
		if !ok {
			return
		}
		cleared, err := svc.ClearCache(r.Context(), who.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cleared)
	}
}

func callerIdentity(w http.ResponseWriter, r *http.Request, svc userdetails.Service, logg *logger.Logger) (userdetails.Identity, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user details service unavailable"))
		return userdetails.Identity{}, false
	}
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return userdetails.Identity{}, false
	}
	return userdetails.Identity{
		UserID:   identity.UserID,
		Username: identity.Username,
		Email:    identity.Email,
	}, true
}
