package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgcache "github.com/ghuser/dune-crafting-api/pkg/cache"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
	itemdomain "github.com/ghuser/dune-crafting-api/services/item/domain"
	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
	"github.com/ghuser/dune-crafting-api/services/item/domain/repositories"
)

const cacheWriteTimeout = 2 * time.Second

// ItemReadCache is the read-model cache consulted by GetByID.
// *pkgcache.ItemCache satisfies it.
type ItemReadCache interface {
	Get(ctx context.Context, itemID int64) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
}

// ItemService answers catalog queries. It never writes to the store.
// Single-item reads go through the Redis cache when one is configured.
type ItemService struct {
	repo  repositories.ItemRepository
	cache ItemReadCache
	log   logger.Logger
}

// NewItemService returns an ItemService wired with the given repository.
// itemCache may be nil.
func NewItemService(repo repositories.ItemRepository, itemCache ItemReadCache, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, cache: itemCache, log: log}
}

// List returns every item in id order. An empty catalog yields an empty slice.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Count returns the number of items in the catalog.
func (s *ItemService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// GetByID retrieves an Item using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query the store.
//  3. Asynchronously warm the cache with the store result.
//
// Returns an error matching ErrItemNotFound when no item has the id.
func (s *ItemService) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		switch {
		case err == nil:
			return itemFromCache(cached), nil
		case !errors.Is(err, pkgcache.ErrCacheMiss):
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		go s.warm(context.WithoutCancel(ctx), item)
	}

	return item, nil
}

// Search returns items whose name contains term, ignoring case, in id order.
// No match is reported as ErrItemNotFound naming the term.
func (s *ItemService) Search(ctx context.Context, term string) ([]*models.Item, error) {
	items, err := s.repo.FindByNameContaining(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	if len(items) == 0 {
		return nil, itemdomain.ItemNameNotFound(term)
	}
	return items, nil
}

func (s *ItemService) warm(ctx context.Context, item *models.Item) {
	ctx, cancel := context.WithTimeout(ctx, cacheWriteTimeout)
	defer cancel()
	if err := s.cache.Set(ctx, itemToCache(item)); err != nil {
		s.log.WarnContext(ctx, "item cache write failed", "item_id", item.ID, "error", err)
	}
}

func itemToCache(item *models.Item) *pkgcache.CachedItem {
	materials := make([]pkgcache.CachedMaterial, len(item.CraftingMaterials))
	for i, m := range item.CraftingMaterials {
		materials[i] = pkgcache.CachedMaterial{ItemName: m.ItemName, Quantity: m.Quantity}
	}
	return &pkgcache.CachedItem{
		ID:                item.ID,
		Name:              item.Name.String(),
		Description:       item.Description,
		ItemType:          item.ItemType.String(),
		PowerConsumption:  item.PowerConsumption,
		PowerGeneration:   item.PowerGeneration,
		CraftingMaterials: materials,
	}
}

func itemFromCache(c *pkgcache.CachedItem) *models.Item {
	materials := make([]models.Material, len(c.CraftingMaterials))
	for i, m := range c.CraftingMaterials {
		materials[i] = models.Material{ItemName: m.ItemName, Quantity: m.Quantity}
	}
	return &models.Item{
		ID:                c.ID,
		Name:              models.ItemName(c.Name),
		Description:       c.Description,
		ItemType:          models.ItemType(c.ItemType),
		PowerConsumption:  c.PowerConsumption,
		PowerGeneration:   c.PowerGeneration,
		CraftingMaterials: materials,
	}
}
