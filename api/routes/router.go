package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/stonefront-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/stonefront-backend/api/controllers/cart"
	ordercontrollers "github.com/angelmondragon/stonefront-backend/api/controllers/orders"
	webhookcontrollers "github.com/angelmondragon/stonefront-backend/api/controllers/webhooks"
	"github.com/angelmondragon/stonefront-backend/api/middleware"
	"github.com/angelmondragon/stonefront-backend/internal/cart"
	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	checkoutsvc "github.com/angelmondragon/stonefront-backend/internal/checkout"
	"github.com/angelmondragon/stonefront-backend/internal/content"
	"github.com/angelmondragon/stonefront-backend/internal/enquiries"
	"github.com/angelmondragon/stonefront-backend/internal/orders"
	"github.com/angelmondragon/stonefront-backend/internal/payments"
	"github.com/angelmondragon/stonefront-backend/internal/reviews"
	"github.com/angelmondragon/stonefront-backend/internal/search"
	"github.com/angelmondragon/stonefront-backend/internal/userdetails"
	stripewebhook "github.com/angelmondragon/stonefront-backend/internal/webhooks/stripe"
	"github.com/angelmondragon/stonefront-backend/internal/wishlist"
	"github.com/angelmondragon/stonefront-backend/pkg/config"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/metrics"
)

type stripeSigner interface {
	SigningSecret() string
}

type webhookGuard interface {
	CheckAndMark(ctx context.Context, eventID string) (bool, error)
	Delete(ctx context.Context, eventID string) error
}

// Deps carries everything the HTTP surface needs. Nil services answer 500
// on their routes rather than panicking.
type Deps struct {
	DB    controllers.Pinger
	Redis controllers.Pinger

	IdempotencyStore middleware.ResponseStore
	WriteThrottle    *middleware.WriteThrottle
	HTTPMetrics      *metrics.HTTPMetrics
	MetricsGatherer  prometheus.Gatherer

	Catalog     catalog.Service
	Cart        cart.Service
	Checkout    checkoutsvc.Service
	Orders      orders.Service
	Payments    payments.Service
	Wishlist    wishlist.Service
	Enquiries   enquiries.Service
	Reviews     reviews.Service
	Search      *search.Service
	UserDetails userdetails.Service
	Content     content.Service

	StripeClient   stripeSigner
	StripeWebhooks *stripewebhook.Service
	WebhookGuard   webhookGuard
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(cfg.App.FrontendURL),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	requireAuth := middleware.RequireAuth(cfg.JWT, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, logg)
	idempotent := middleware.Idempotency(deps.IdempotencyStore, logg)

	r.Route("/api", func(r chi.Router) {
		// Stripe signs the raw body and retries on its own schedule.
		r.Post("/orders/webhook", webhookcontrollers.StripeWebhook(webhookService(deps.StripeWebhooks), deps.StripeClient, deps.WebhookGuard, logg))

		r.Group(func(r chi.Router) {
			r.Use(deps.WriteThrottle.Middleware(logg))

			r.Get("/categories", controllers.CategoryList(deps.Catalog, logg))
			r.Get("/category/{slug}", controllers.CategoryDetail(deps.Catalog, logg))
			r.Get("/products", controllers.ProductList(deps.Catalog, logg))
			r.Get("/product/{slug}", controllers.ProductDetail(deps.Catalog, logg))
			r.Get("/product-slugs", controllers.ProductSlugs(deps.Catalog, logg))
			r.Get("/search", controllers.Search(searcher(deps.Search), logg))

			r.Get("/homepage", controllers.Homepage(deps.Content, logg))
			r.Get("/footer-detail", controllers.FooterDetail(deps.Content, logg))
			r.Get("/blogs", controllers.BlogList(deps.Content, logg))
			r.Get("/blogs/{slug}", controllers.BlogDetail(deps.Content, logg))
			r.Get("/site-policies/{pageName}", controllers.SitePolicy(deps.Content, logg))
			r.Get("/product-catalogues", controllers.ProductCatalogues(deps.Content, logg))

			r.Post("/enquiries", controllers.EnquirySubmit(deps.Enquiries, logg))
			r.Post("/product-reviews", controllers.ReviewSubmit(deps.Reviews, logg))

			r.Route("/orders", func(r chi.Router) {
				r.With(optionalAuth, idempotent).Post("/checkout", ordercontrollers.Checkout(deps.Checkout, logg))
				r.With(idempotent).Post("/stripe-session", ordercontrollers.StripeSession(deps.Payments, logg))
				r.With(requireAuth).Get("/", ordercontrollers.List(deps.Orders, logg))
				r.With(requireAuth).Get("/{id}", ordercontrollers.Detail(deps.Orders, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/add", cartcontrollers.CartAdd(deps.Cart, logg))
				r.Get("/", cartcontrollers.CartFetch(deps.Cart, logg))
				r.Put("/{id}", cartcontrollers.CartUpdate(deps.Cart, logg))
				r.Delete("/{id}", cartcontrollers.CartRemove(deps.Cart, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.With(optionalAuth).Get("/products", controllers.WishlistProducts(deps.Wishlist, logg))
				r.Group(func(r chi.Router) {
					r.Use(requireAuth)
					r.Get("/", controllers.WishlistGet(deps.Wishlist, logg))
					r.Post("/toggle", controllers.WishlistToggle(deps.Wishlist, logg))
					r.Post("/merge", controllers.WishlistMerge(deps.Wishlist, logg))
				})
			})

			r.Route("/user-details", func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", controllers.UserDetailsMe(deps.UserDetails, logg))
				r.Put("/me", controllers.UserDetailsUpdate(deps.UserDetails, logg))
				r.Delete("/cache", controllers.UserDetailsClearCache(deps.UserDetails, logg))
			})
		})
	})

	return r
}

// webhookService and searcher keep typed-nil pointers from reaching the
// handlers as non-nil interfaces.
func webhookService(svc *stripewebhook.Service) webhookcontrollers.StripeWebhookService {
	if svc == nil {
		return nil
	}
	return svc
}

func searcher(svc *search.Service) interface {
	Find(ctx context.Context, raw string) (search.Results, error)
} {
	if svc == nil {
		return nil
	}
	return svc
}
