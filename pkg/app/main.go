package app

import (
	"github.com/ghuser/dune-crafting-api/pkg/cache"
	"github.com/ghuser/dune-crafting-api/pkg/config"
	"github.com/ghuser/dune-crafting-api/pkg/database"
	"github.com/ghuser/dune-crafting-api/pkg/events"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each service's constructor and route function during server
// initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "item served", "item_id", id)
//	app.Logger.ErrorContext(ctx, "query failed", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil when REDIS_URL is empty
}
