// Package formguard throttles public form submissions per client IP.
package formguard

import (
	"context"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/redis"
)

// Guard applies a fixed-window limit to one form scope.
type Guard struct {
	limiter redis.RateLimiter
	scope   string
	limit   int64
	window  time.Duration
	message string
	logg    *logger.Logger
}

// Params configures a Guard.
type Params struct {
	Limiter redis.RateLimiter
	Scope   string
	Limit   int
	Window  time.Duration
	// Message is returned to clients when the window is exhausted.
	Message string
	Logger  *logger.Logger
}

// New builds a guard. Limit defaults to 1 and Window to one minute.
func New(p Params) (*Guard, error) {
	if p.Limiter == nil {
		return nil, errors.New("rate limiter is required")
	}
	if strings.TrimSpace(p.Scope) == "" {
		return nil, errors.New("scope is required")
	}
	if p.Limit <= 0 {
		p.Limit = 1
	}
	if p.Window <= 0 {
		p.Window = time.Minute
	}
	if p.Message == "" {
		p.Message = "Too many requests"
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	return &Guard{
		limiter: p.Limiter,
		scope:   p.Scope,
		limit:   int64(p.Limit),
		window:  p.Window,
		message: p.Message,
		logg:    p.Logger,
	}, nil
}

// Allow counts one submission from ip. Limiter outages let the request
// through and are logged.
func (g *Guard) Allow(ctx context.Context, ip string) error {
	subject := strings.TrimSpace(ip)
	if subject == "" {
		subject = "unknown"
	}
	allowed, _, err := g.limiter.FixedWindowAllow(ctx, g.scope, subject, g.limit, g.window)
	if err != nil {
		g.logg.Error(g.logg.WithFields(ctx, map[string]any{"scope": g.scope, "ip": subject}), "rate limiter unavailable", err)
		return nil
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, g.message)
	}
	return nil
}
