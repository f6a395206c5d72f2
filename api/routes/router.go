package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/SalangsangJohnPatrick/inventory-management/api/controllers"
	"github.com/SalangsangJohnPatrick/inventory-management/api/middleware"
	"github.com/SalangsangJohnPatrick/inventory-management/api/responses"
	"github.com/SalangsangJohnPatrick/inventory-management/internal/auth"
	"github.com/SalangsangJohnPatrick/inventory-management/internal/inventory"
	pkgAuth "github.com/SalangsangJohnPatrick/inventory-management/pkg/auth"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/config"
	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/logger"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/metrics"
)

// Deps carries everything the router wires into handlers. RateLimiter and
// MetricsHandler are optional.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Inventory       inventory.Service
	Auth            auth.Service
	Verifier        pkgAuth.VerifyFunc
	RateLimiter     middleware.RateLimiterStore
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	ReadinessChecks []controllers.ReadinessCheck
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.CORS(),
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
	)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Get("/", controllers.Root(cfg))
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.ReadinessChecks...))
	})
	if d.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", d.MetricsHandler)
	}

	r.With(middleware.AuthRateLimit(signupPolicy, d.RateLimiter, logg)).Post("/signup", controllers.AuthSignup(d.Auth, logg))
	r.With(middleware.AuthRateLimit(loginPolicy, d.RateLimiter, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))

	r.Group(func(r chi.Router) {
		if cfg.FeatureFlags.RequireAuth {
			r.Use(middleware.Auth(d.Verifier, logg))
		}

		svc := d.Inventory
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(svc, logg))
			r.Post("/", controllers.InventoryCreate(svc, logg))
			r.Get("/filters", controllers.InventoryFilterOptions(svc, logg))
			r.Get("/{id}", controllers.InventoryShow(svc, logg))
			r.Put("/{id}", controllers.InventoryUpdate(svc, logg))
			r.Delete("/{id}", controllers.InventoryDelete(svc, logg))
		})

		// Route names kept from the first generation of the API.
		r.Get("/GetAllInventoryItems", controllers.InventoryList(svc, logg))
		r.Get("/GetInventoryFilterOptions", controllers.InventoryFilterOptions(svc, logg))
		r.Get("/GetSpecificInventoryItem/{id}", controllers.InventoryShow(svc, logg))
		r.Post("/CreateInventoryItem", controllers.InventoryCreate(svc, logg))
		r.Put("/UpdateInventoryItem/{id}", controllers.InventoryUpdate(svc, logg))
		r.Delete("/DeleteInventoryItem/{id}", controllers.InventoryDelete(svc, logg))
		r.Get("/SortInventoryItems/{column}/{order}", controllers.InventorySort(svc, logg))
		r.Get("/InventoryValuationReport/{type}", controllers.InventoryValuation(svc, logg))
		r.Get("/GetTopSellingProducts", controllers.TopSellingProducts(svc, logg))
		r.Get("/GetLowStockItems", controllers.LowStockItems(svc, logg))
		r.Post("/ImportInventoryItems", controllers.InventoryImport(svc, cfg.Import, logg))
	})

	return r
}
