package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/stonefront-backend/pkg/auth"
	"github.com/angelmondragon/stonefront-backend/pkg/config"
)

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "stonefront", ExpirationMinutes: 60}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, userID uint) string {
	t.Helper()
	token, err := auth.MintAccessToken(cfg, time.Now(), auth.AccessTokenPayload{
		UserID:   userID,
		Email:    "ana@example.com",
		Username: "ana",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func serve(handler http.Handler, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	handler := RequireAuth(testJWT(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, header := range []string{"", "Bearer ", "Bearer invalid"} {
		if rec := serve(handler, header); rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 got %d", header, rec.Code)
		}
	}
}

func TestRequireAuthSeedsIdentity(t *testing.T) {
	cfg := testJWT()
	var got Identity
	handler := RequireAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := serve(handler, "bearer "+mintTestToken(t, cfg, 42))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got.UserID != 42 || got.Email != "ana@example.com" || got.Username != "ana" {
		t.Fatalf("unexpected identity %+v", got)
	}
}

func TestRequireAuthRejectsForeignIssuer(t *testing.T) {
	cfg := testJWT()
	other := cfg
	other.Issuer = "someone-else"
	handler := RequireAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	if rec := serve(handler, "Bearer "+mintTestToken(t, other, 1)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestOptionalAuthTreatsBadTokensAsGuest(t *testing.T) {
	cfg := testJWT()
	var userID *uint
	handler := OptionalAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID = UserIDPtr(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	if rec := serve(handler, "Bearer broken"); rec.Code != http.StatusOK || userID != nil {
		t.Fatalf("expected guest pass-through, code=%d user=%v", rec.Code, userID)
	}
	if rec := serve(handler, ""); rec.Code != http.StatusOK || userID != nil {
		t.Fatalf("expected guest without header, code=%d", rec.Code)
	}
	if rec := serve(handler, "Bearer "+mintTestToken(t, cfg, 9)); rec.Code != http.StatusOK || userID == nil || *userID != 9 {
		t.Fatalf("expected user 9, got %v", userID)
	}
}
