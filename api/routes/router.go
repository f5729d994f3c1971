package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prakashthakuri/Happy-Hours/api/controllers"
	cartcontrollers "github.com/prakashthakuri/Happy-Hours/api/controllers/cart"
	catalogcontrollers "github.com/prakashthakuri/Happy-Hours/api/controllers/catalog"
	checkoutcontrollers "github.com/prakashthakuri/Happy-Hours/api/controllers/checkout"
	paymentcontrollers "github.com/prakashthakuri/Happy-Hours/api/controllers/payments"
	"github.com/prakashthakuri/Happy-Hours/api/middleware"
	"github.com/prakashthakuri/Happy-Hours/internal/cart"
	"github.com/prakashthakuri/Happy-Hours/internal/catalog"
	checkoutsvc "github.com/prakashthakuri/Happy-Hours/internal/checkout"
	"github.com/prakashthakuri/Happy-Hours/internal/orders"
	"github.com/prakashthakuri/Happy-Hours/pkg/config"
	"github.com/prakashthakuri/Happy-Hours/pkg/logger"
	pkgredis "github.com/prakashthakuri/Happy-Hours/pkg/redis"
)

// Store backs request idempotency and rate limiting. *redis.Client satisfies it.
type Store interface {
	pkgredis.IdempotencyStore
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readiness map[string]controllers.Pinger,
	store Store,
	metricsHandler http.Handler,
	catalogService catalog.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	paymentPolicy := middleware.NewRateLimitPolicy(
		"payments",
		cfg.RateLimit.PaymentWindow,
		cfg.RateLimit.PaymentIPLimit,
		cfg.RateLimit.PaymentUserLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/items", catalogcontrollers.ItemList(catalogService, logg))
		r.Get("/items/{slug}", catalogcontrollers.ItemDetail(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(store, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartSummary(cartService, logg))
				r.Post("/items/{slug}", cartcontrollers.CartAddItem(cartService, logg))
				r.Delete("/items/{slug}", cartcontrollers.CartRemoveItem(cartService, logg))
				r.Post("/items/{slug}/decrement", cartcontrollers.CartDecrementItem(cartService, logg))
			})

			r.Post("/checkout", checkoutcontrollers.CheckoutSubmit(checkoutService, logg))

			r.With(middleware.RateLimit(paymentPolicy, store, logg)).
				Post("/payments/{method}", paymentcontrollers.Pay(ordersService, logg))
		})
	})

	return r
}
