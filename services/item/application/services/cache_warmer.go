package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	pkgcache "github.com/ghuser/dune-crafting-api/pkg/cache"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
	"github.com/ghuser/dune-crafting-api/services/item/domain/events"
)

// CacheWarmer writes freshly cataloged items into the read-model cache so the
// first GetByID after startup is already a hit.
type CacheWarmer struct {
	cache ItemReadCache
	log   logger.Logger
}

// NewCacheWarmer returns a CacheWarmer writing into itemCache.
func NewCacheWarmer(itemCache ItemReadCache, log logger.Logger) *CacheWarmer {
	return &CacheWarmer{cache: itemCache, log: log}
}

// Handle processes one item.cataloged message. Events with an unknown schema
// version are skipped rather than retried.
func (w *CacheWarmer) Handle(ctx context.Context, msg *message.Message) error {
	var evt events.ItemCatalogedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		w.log.WarnContext(ctx, "cache warmer: undecodable event", "message_id", msg.UUID, "error", err)
		return nil
	}
	if evt.Version != events.ItemCatalogedVersion {
		w.log.WarnContext(ctx, "cache warmer: unsupported event version", "version", evt.Version, "event_id", evt.EventID)
		return nil
	}

	materials := make([]pkgcache.CachedMaterial, len(evt.CraftingMaterials))
	for i, m := range evt.CraftingMaterials {
		materials[i] = pkgcache.CachedMaterial{ItemName: m.ItemName, Quantity: m.Quantity}
	}
	if err := w.cache.Set(ctx, &pkgcache.CachedItem{
		ID:                evt.ItemID,
		Name:              evt.Name,
		Description:       evt.Description,
		ItemType:          evt.ItemType,
		PowerConsumption:  evt.PowerConsumption,
		PowerGeneration:   evt.PowerGeneration,
		CraftingMaterials: materials,
	}); err != nil {
		return fmt.Errorf("warm item %d: %w", evt.ItemID, err)
	}
	return nil
}
