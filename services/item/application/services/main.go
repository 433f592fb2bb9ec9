package services

import (
	"context"
	"fmt"

	"github.com/ghuser/dune-crafting-api/pkg/app"
	"github.com/ghuser/dune-crafting-api/pkg/cache"
	"github.com/ghuser/dune-crafting-api/services/item/domain/events"
	"github.com/ghuser/dune-crafting-api/services/item/infrastructure/persistence/sqlstore"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item   *ItemService
	Loader *CatalogLoader
	Warmer *CacheWarmer // nil when Redis is disabled

	app *app.Application
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := sqlstore.NewItemRepository(a.Db)

	var itemCache ItemReadCache
	var warmer *CacheWarmer
	var loaderOpts []LoaderOption
	if a.Redis != nil {
		c := cache.NewItemCache(a.Redis, cache.Namespace(a.Config.DatabaseURL))
		itemCache = c
		warmer = NewCacheWarmer(c, a.Logger)
		loaderOpts = append(loaderOpts, WithCacheInvalidator(c))
	}

	var pub Publisher
	if a.EventBus != nil {
		pub = a.EventBus
	}

	return &Services{
		Item:   NewItemService(repo, itemCache, a.Logger),
		Loader: NewCatalogLoader(repo, a.Config.CatalogDataPath, pub, a.Logger, loaderOpts...),
		Warmer: warmer,
		app:    a,
	}
}

// Start subscribes the event handlers of this context. Call it before the
// catalog loader runs so no item.cataloged event is missed.
func (s *Services) Start(ctx context.Context) error {
	if s.Warmer == nil || s.app.EventBus == nil {
		return nil
	}
	errCh, err := s.app.EventBus.Subscribe(ctx, events.TopicItemCataloged, s.Warmer.Handle)
	if err != nil {
		return fmt.Errorf("subscribe cache warmer: %w", err)
	}
	go func() {
		for err := range errCh {
			s.app.Logger.ErrorContext(ctx, "cache warmer failed", "error", err)
		}
	}()
	return nil
}
