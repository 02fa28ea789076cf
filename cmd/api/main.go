package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/stonefront-backend/api/middleware"
	"github.com/angelmondragon/stonefront-backend/api/routes"
	"github.com/angelmondragon/stonefront-backend/internal/cart"
	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	"github.com/angelmondragon/stonefront-backend/internal/checkout"
	"github.com/angelmondragon/stonefront-backend/internal/content"
	"github.com/angelmondragon/stonefront-backend/internal/enquiries"
	"github.com/angelmondragon/stonefront-backend/internal/formguard"
	"github.com/angelmondragon/stonefront-backend/internal/orders"
	"github.com/angelmondragon/stonefront-backend/internal/payments"
	"github.com/angelmondragon/stonefront-backend/internal/reviews"
	"github.com/angelmondragon/stonefront-backend/internal/search"
	"github.com/angelmondragon/stonefront-backend/internal/userdetails"
	stripewebhook "github.com/angelmondragon/stonefront-backend/internal/webhooks/stripe"
	"github.com/angelmondragon/stonefront-backend/internal/wishlist"
	"github.com/angelmondragon/stonefront-backend/pkg/config"
	"github.com/angelmondragon/stonefront-backend/pkg/db"
	"github.com/angelmondragon/stonefront-backend/pkg/instance"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/mailer"
	"github.com/angelmondragon/stonefront-backend/pkg/metrics"
	"github.com/angelmondragon/stonefront-backend/pkg/migrate"
	"github.com/angelmondragon/stonefront-backend/pkg/redis"
	"github.com/angelmondragon/stonefront-backend/pkg/stripe"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps, err := buildDeps(ctx, cfg, logg, dbClient, redisClient, registry)
	if err != nil {
		return err
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.ID(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildDeps(ctx context.Context, cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, registry *prometheus.Registry) (routes.Deps, error) {
	conn := dbClient.DB()
	assetURL := cfg.App.AbsoluteURL

	catalogRepo := catalog.NewRepository(conn)
	catalogService, err := catalog.NewService(catalog.ServiceParams{Repo: catalogRepo, AssetURL: assetURL})
	if err != nil {
		return routes.Deps{}, err
	}

	ordersRepo := orders.NewRepository(conn)
	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		return routes.Deps{}, err
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Tx:       dbClient,
		Products: catalogRepo,
		Orders:   ordersRepo,
		Metrics:  metrics.NewCheckoutMetrics(registry),
		Logger:   logg,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		Tx:       dbClient,
		Repo:     cart.NewRepository(conn),
		Products: catalogRepo,
		AssetURL: assetURL,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:  wishlist.NewRepository(conn),
		Cards: catalogService,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	enquiryGuard, err := formguard.New(formguard.Params{
		Limiter: redisClient,
		Scope:   "enquiry",
		Limit:   cfg.RateLimit.EnquiryLimit,
		Window:  cfg.RateLimit.EnquiryWindow,
		Message: "Please wait before submitting another enquiry",
		Logger:  logg,
	})
	if err != nil {
		return routes.Deps{}, err
	}
	enquiryService, err := enquiries.NewService(enquiries.ServiceParams{
		Repo:       enquiries.NewRepository(conn),
		Throttle:   enquiryGuard,
		Mailer:     mailer.New(cfg.Sendgrid, logg),
		AdminEmail: cfg.Sendgrid.AdminEmail,
		AdminBCC:   cfg.Sendgrid.AdminBCC,
		Logger:     logg,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	reviewGuard, err := formguard.New(formguard.Params{
		Limiter: redisClient,
		Scope:   "review",
		Limit:   cfg.RateLimit.ReviewLimit,
		Window:  cfg.RateLimit.ReviewWindow,
		Message: "Please wait before submitting another review",
		Logger:  logg,
	})
	if err != nil {
		return routes.Deps{}, err
	}
	reviewService, err := reviews.NewService(reviews.ServiceParams{
		Repo:     reviews.NewRepository(conn),
		Throttle: reviewGuard,
		Logger:   logg,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	searchService, err := search.NewService(conn, assetURL)
	if err != nil {
		return routes.Deps{}, err
	}

	userDetailsService, err := userdetails.NewService(userdetails.ServiceParams{
		Repo:     userdetails.NewRepository(conn),
		Cache:    redisClient,
		TTL:      cfg.Cache.UserDetailsTTL,
		AssetURL: assetURL,
		Logger:   logg,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	contentService, err := content.NewService(content.NewRepository(conn), assetURL)
	if err != nil {
		return routes.Deps{}, err
	}

	webhookTTL := cfg.RateLimit.WebhookEventTTL
	if webhookTTL <= 0 {
		webhookTTL = stripewebhook.DefaultIdempotencyTTL
	}
	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, webhookTTL, stripewebhook.IdempotencyScope)
	if err != nil {
		return routes.Deps{}, err
	}
	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		Orders:  ordersService,
		Metrics: metrics.NewWebhookMetrics(registry),
		Logger:  logg,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	deps := routes.Deps{
		DB:               dbClient,
		Redis:            redisClient,
		IdempotencyStore: redisClient,
		WriteThrottle:    middleware.NewWriteThrottle(cfg.RateLimit.WritePerSecond, cfg.RateLimit.WriteBurst),
		HTTPMetrics:      metrics.NewHTTPMetrics(registry),
		MetricsGatherer:  registry,
		Catalog:          catalogService,
		Cart:             cartService,
		Checkout:         checkoutService,
		Orders:           ordersService,
		Wishlist:         wishlistService,
		Enquiries:        enquiryService,
		Reviews:          reviewService,
		Search:           searchService,
		UserDetails:      userDetailsService,
		Content:          contentService,
		StripeWebhooks:   webhookService,
		WebhookGuard:     webhookGuard,
	}

	// Payments stay mounted without Stripe credentials and answer 503.
	var sessionCreator stripe.SessionCreator
	stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
	if err != nil {
		logg.Warn(logg.WithField(ctx, "reason", err.Error()), "stripe disabled")
	} else {
		sessionCreator = stripeClient
		deps.StripeClient = stripeClient
	}
	deps.Payments, err = payments.NewService(ordersRepo, sessionCreator, logg)
	if err != nil {
		return routes.Deps{}, err
	}

	return deps, nil
}
