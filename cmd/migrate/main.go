// Command migrate applies the catalog schema to DATABASE_URL and exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardanlabs/conf/v3"

	"github.com/ghuser/dune-crafting-api/migrations/catalog"
	"github.com/ghuser/dune-crafting-api/pkg/config"
	"github.com/ghuser/dune-crafting-api/pkg/database"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
	"github.com/ghuser/dune-crafting-api/pkg/migrator"
)

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

	log := logger.New(cfg)
	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck

	if err := migrator.RunMigrations(ctx, db, catalog.MigrationsFS, log); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("migrations applied", "dialect", string(db.Dialect()))
}
