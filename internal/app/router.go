package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storefront-core/internal/audit"
	"github.com/noah-isme/storefront-core/internal/auth"
	"github.com/noah-isme/storefront-core/internal/billing"
	"github.com/noah-isme/storefront-core/internal/catalog"
	"github.com/noah-isme/storefront-core/internal/checkout"
	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/config"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/events"
	"github.com/noah-isme/storefront-core/internal/health"
	guard "github.com/noah-isme/storefront-core/internal/http/middleware"
	"github.com/noah-isme/storefront-core/internal/inventory"
	"github.com/noah-isme/storefront-core/internal/obs"
	"github.com/noah-isme/storefront-core/internal/order"
	"github.com/noah-isme/storefront-core/internal/payment"
	"github.com/noah-isme/storefront-core/internal/promotion"
	"github.com/noah-isme/storefront-core/internal/ratelimit"
	"github.com/noah-isme/storefront-core/internal/repo"
	"github.com/noah-isme/storefront-core/internal/security"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

// Components is everything the HTTP surface needs. Production wiring passes
// the pgx-backed store; tests pass the in-memory one.
type Components struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Queries   dbgen.Querier
	Tx        db.TxRunner
	Redis     *redis.Client
	Limiter   ratelimit.Limiter
	Notifiers []events.Notifier
	Payments  payment.Gateway
	Tokens    *auth.Tokens
	Health    health.Handler
	Metrics   *obs.HTTPMetrics
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	Tracing        bool
	Now            func() time.Time
}

// NewRouter builds the chi router with every public, merchant and operational route.
func NewRouter(c Components) http.Handler {
	cfg := c.Config
	validate := common.NewValidator()

	auditSvc := audit.Service{Store: c.Queries, Enabled: cfg.AuditEnabled, Logger: c.Logger}
	reader := catalog.Reader{Q: c.Queries}
	storefront := &catalog.Service{
		Reader: reader,
		Cache:  catalog.NewCache(c.Redis, cfg.StorefrontCacheTTL),
		Logger: c.Logger,
	}
	bus := &events.Bus{Notifiers: c.Notifiers}
	promos := &promotion.Service{Q: c.Queries, Now: c.Now}

	checkoutSvc := &checkout.Service{
		Reader:   reader,
		Promos:   promos,
		Fees:     billing.Plans{Q: c.Queries},
		Payments: c.Payments,
		Tx:       c.Tx,
		Bus:      bus,
		Audit:    auditSvc,
		Cache:    storefront,
		Logger:   c.Logger,
	}
	inventorySvc := &inventory.Service{
		Tx:     c.Tx,
		Bus:    bus,
		Audit:  auditSvc,
		Cache:  storefront,
		Logger: c.Logger,
	}

	checkoutHandler := &checkout.Handler{Svc: checkoutSvc, Validate: validate}
	promotionHandler := &promotion.Handler{
		Svc:      promos,
		Stores:   reader,
		Repo:     repo.PromotionsTenantRepo{Q: c.Queries},
		Audit:    auditSvc,
		Validate: validate,
	}
	inventoryHandler := &inventory.Handler{
		Svc:       inventorySvc,
		Movements: repo.MovementsTenantRepo{Q: c.Queries},
		Validate:  validate,
	}
	orderHandler := &order.Handler{Repo: repo.OrdersTenantRepo{Q: c.Queries}, Validate: validate}
	auditHandler := audit.Handler{Store: c.Queries}
	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: storefront})
	auditHTTP := audit.HTTPRecorder{Service: auditSvc}

	idem := common.Idem{R: c.Redis, TTL: cfg.IdempotencyTTL, Scope: common.StoreAndClientScope("storeSlug")}
	checkoutLimit := ratelimit.Handler{
		Limiter: c.Limiter,
		Config:  ratelimit.Config{Key: ratelimit.ByClientIP("checkout"), Window: cfg.CheckoutRateWindow, Max: cfg.CheckoutRateLimit},
	}
	previewLimit := ratelimit.Handler{
		Limiter: c.Limiter,
		Config:  ratelimit.Config{Key: ratelimit.ByClientIP("preview"), Window: cfg.PreviewRateWindow, Max: cfg.PreviewRateLimit},
	}
	resolver := tenant.NewResolver(cfg.PlatformRootDomain, cfg.PlatformHosts)
	merchant := auth.Middleware{Tokens: c.Tokens}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if c.Tracing {
		r.Use(obs.TracingMiddleware)
	}
	r.Use(obs.HTTPObs{Metrics: c.Metrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: c.Logger}.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers{HSTS: cfg.AppEnv == "production"}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if c.MetricsHandler != nil {
		r.Handle("/metrics", c.MetricsHandler)
	}
	r.Get("/health/live", c.Health.Live)
	r.Get("/health/ready", c.Health.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(security.BodyLimit{Max: security.DefaultMaxBody}.Middleware)
		v.With(checkoutLimit.Middleware, idem.Middleware).Post("/orders/checkout", checkoutHandler.Checkout)
		v.With(previewLimit.Middleware).Post("/promotions/preview", promotionHandler.Preview)

		v.Get("/storefront/{slug}/products", catalogHandler.BySlug)
		v.With(resolver.Middleware(reader.FindStore)).Get("/storefront/products", catalogHandler.ByHost)

		v.Group(func(m chi.Router) {
			m.Use(merchant.RequireMerchant)
			m.Use(guard.RequireTenant)

			m.Post("/inventory/adjust", inventoryHandler.Adjust)
			m.Get("/inventory/movements", inventoryHandler.ListMovements)

			owners := guard.RequireRole("owner", "manager")
			m.Get("/promotions", promotionHandler.List)
			m.With(owners).Post("/promotions", promotionHandler.Create)
			m.With(owners).Patch("/promotions/{promotionId}", promotionHandler.Update)
			m.With(owners).Delete("/promotions/{promotionId}", promotionHandler.Delete)

			m.Get("/orders", orderHandler.List)
			m.Get("/orders/{orderId}", orderHandler.Get)
			m.With(auditHTTP.Middleware(audit.HTTPConfig{
				Action:        "update",
				Entity:        "order",
				EntityIDParam: "orderId",
			})).Patch("/orders/{orderId}", orderHandler.Patch)

			m.Get("/audit-events", auditHandler.List)
		})
	})

	return r
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
