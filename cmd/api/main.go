package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/dune-crafting-api/docs/swagger"
	"github.com/ghuser/dune-crafting-api/migrations/catalog"
	"github.com/ghuser/dune-crafting-api/pkg/app"
	"github.com/ghuser/dune-crafting-api/pkg/cache"
	"github.com/ghuser/dune-crafting-api/pkg/config"
	"github.com/ghuser/dune-crafting-api/pkg/database"
	"github.com/ghuser/dune-crafting-api/pkg/events"
	"github.com/ghuser/dune-crafting-api/pkg/httpx"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
	"github.com/ghuser/dune-crafting-api/pkg/migrator"
	"github.com/ghuser/dune-crafting-api/pkg/telemetry"
	itemApi "github.com/ghuser/dune-crafting-api/services/item/application/api"
	appsvcs "github.com/ghuser/dune-crafting-api/services/item/application/services"
	"github.com/ghuser/dune-crafting-api/services/item/infrastructure/dataset"
)

const welcomeMessage = "Welcome to the Dune: Awakening Crafting API!"

// @title					Dune: Awakening Crafting API
// @version				1.2.1
// @description			Read-only catalog of craftable Dune: Awakening items with their base and Deep Desert material costs.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8000
// @BasePath				/api
// @schemes				http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(err)
			return
		}
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.Info("starting", "config", config.String(cfg))

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting is optional; log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer db.Close() //nolint:errcheck

	if err := migrator.RunMigrations(ctx, db, catalog.MigrationsFS, log); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	eventBus := events.NewEventBus(log)
	defer eventBus.Close() //nolint:errcheck

	a := &app.Application{
		Config:   cfg,
		Db:       db,
		Logger:   log,
		EventBus: eventBus,
	}
	health := httpx.HealthChecks{Database: db, EventBus: eventBus}

	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, serving without item cache", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			log.Info("redis connected")
			a.Redis = redisClient
			health.Redis = redisClient
		}
	}

	svcs := appsvcs.New(a)
	health.Catalog = svcs.Item
	if err := svcs.Start(ctx); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	// A missing or broken dataset leaves the catalog empty but still serves.
	if _, err := svcs.Loader.EnsurePopulated(ctx); err != nil {
		if errors.Is(err, dataset.ErrDatasetNotFound) {
			log.Warn("catalog dataset not found, starting with an empty catalog", "path", cfg.CatalogDataPath)
		} else {
			log.Warn("catalog population failed, starting with an empty catalog", "error", err)
		}
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			TrustProxyHeaders:  cfg.TrustProxyHeaders,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/", httpx.WelcomeHandler(welcomeMessage))
	r.Get("/health", httpx.HealthHandler(health))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, a, svcs)
	})

	srv := httpx.NewServer(cfg.Addr(), r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
func registerRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	itemApi.ItemRoutes(r, a, svcs)
}
