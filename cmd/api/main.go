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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/SalangsangJohnPatrick/inventory-management/api/controllers"
	"github.com/SalangsangJohnPatrick/inventory-management/api/routes"
	"github.com/SalangsangJohnPatrick/inventory-management/internal/auth"
	"github.com/SalangsangJohnPatrick/inventory-management/internal/inventory"
	"github.com/SalangsangJohnPatrick/inventory-management/internal/users"
	pkgAuth "github.com/SalangsangJohnPatrick/inventory-management/pkg/auth"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/config"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/db"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/instance"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/logger"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/metrics"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/migrate"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/redis"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/security"
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
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	checks := []controllers.ReadinessCheck{{Name: "database", Check: dbClient.Ping}}

	var rateLimiter *redis.Client
	if cfg.Redis.Enabled() {
		rateLimiter, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, rateLimiter.Close()) }()
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Check: rateLimiter.Ping})
	} else {
		logg.Warn(ctx, "redis not configured, auth rate limiting disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	inventoryRepo := inventory.NewRepository(dbClient.DB())
	inventoryService, err := inventory.NewService(
		inventoryRepo,
		inventory.NewImporter(inventoryRepo, metrics.NewImportMetrics(reg)),
	)
	if err != nil {
		return err
	}

	hasher, err := security.NewHasher(cfg.Password)
	if err != nil {
		return err
	}
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  users.NewRepository(dbClient.DB()),
		Hasher:    hasher,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		return err
	}

	deps := routes.Deps{
		Config:          cfg,
		Logger:          logg,
		Inventory:       inventoryService,
		Auth:            authService,
		Verifier:        pkgAuth.NewVerifier(cfg.JWT),
		HTTPMetrics:     metrics.NewHTTPMetrics(reg),
		MetricsHandler:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		ReadinessChecks: checks,
	}
	// A nil *redis.Client must not reach the middleware as a non-nil interface.
	if rateLimiter != nil {
		deps.RateLimiter = rateLimiter
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"version":  cfg.App.Version,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
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
