package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

const localFrontend = "http://localhost:3000"

// CORS allows the storefront frontend plus local development.
func CORS(frontendURL string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(frontendURL),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Requested-With", "Stripe-Signature"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

func allowedOrigins(frontendURL string) []string {
	origins := []string{localFrontend}
	for _, raw := range strings.Split(frontendURL, ",") {
		origin := strings.TrimRight(strings.TrimSpace(raw), "/")
		if origin == "" || origin == localFrontend {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
