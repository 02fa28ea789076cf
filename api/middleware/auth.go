package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/angelmondragon/stonefront-backend/api/responses"
	pkgAuth "github.com/angelmondragon/stonefront-backend/pkg/auth"
	"github.com/angelmondragon/stonefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

// RequireAuth rejects requests without a valid bearer token and seeds the
// request context with the shopper identity.
func RequireAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims, logg)))
		})
	}
}

// OptionalAuth attaches the shopper identity when a valid token is present.
// Missing or invalid tokens fall through as guest requests.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				if logg != nil {
					logg.Debug(logg.WithField(r.Context(), "reason", err.Error()), "auth.optional.ignored")
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims, logg)))
		})
	}
}

func bearerToken(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

func withClaims(ctx context.Context, claims *pkgAuth.AccessTokenClaims, logg *logger.Logger) context.Context {
	ctx = WithIdentity(ctx, Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
	})
	if logg != nil {
		ctx = logg.WithUserID(ctx, strconv.FormatUint(uint64(claims.UserID), 10))
	}
	return ctx
}
