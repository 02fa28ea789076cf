package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/stonefront-backend/api/responses"
	"github.com/angelmondragon/stonefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

const (
	envHeader    = "X-Stonefront-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is any dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis; any failure answers 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger, redisPinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]Pinger{"database": dbPinger, "redis": redisPinger}
		for name, p := range checks {
			if p == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, name+" not configured"))
				return
			}
			if err := p.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
