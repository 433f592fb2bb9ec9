// Command loader seeds an empty catalog from CATALOG_DATA_PATH and warms the
// Redis item cache, then exits. The API does the same on startup; run this
// ahead of a deploy to keep the first boot fast.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardanlabs/conf/v3"

	"github.com/ghuser/dune-crafting-api/migrations/catalog"
	"github.com/ghuser/dune-crafting-api/pkg/app"
	"github.com/ghuser/dune-crafting-api/pkg/cache"
	"github.com/ghuser/dune-crafting-api/pkg/config"
	"github.com/ghuser/dune-crafting-api/pkg/database"
	"github.com/ghuser/dune-crafting-api/pkg/events"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
	"github.com/ghuser/dune-crafting-api/pkg/migrator"
	"github.com/ghuser/dune-crafting-api/pkg/telemetry"
	appsvcs "github.com/ghuser/dune-crafting-api/services/item/application/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("loader failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(err)
			return nil
		}
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logger.New(cfg)
	ctx := context.Background()

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if err := migrator.RunMigrations(ctx, db, catalog.MigrationsFS, log); err != nil {
		return err
	}

	// Blocking publish: every item is cached before EnsurePopulated returns.
	eventBus := events.NewEventBus(log, events.WithBlockingPublish())
	defer eventBus.Close() //nolint:errcheck
	a := &app.Application{Config: cfg, Db: db, Logger: log, EventBus: eventBus}

	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, skipping cache warm-up", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			a.Redis = redisClient
		}
	}

	svcs := appsvcs.New(a)
	if err := svcs.Start(ctx); err != nil {
		return err
	}

	n, err := svcs.Loader.EnsurePopulated(ctx)
	if err != nil {
		telemetry.CaptureError(err)
		return err
	}

	log.Info("loader finished", "inserted", n)
	return nil
}
