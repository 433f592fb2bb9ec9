package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
)

// TopicItemCataloged is published once per item after the catalog loader
// commits a freshly populated store.
const TopicItemCataloged = "item.cataloged"

// ItemCatalogedVersion is the current schema version of ItemCatalogedEvent.
const ItemCatalogedVersion = 1

// MaterialPayload mirrors models.Material on the wire.
type MaterialPayload struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// ItemCatalogedEvent carries the full stored item so subscribers can build
// read models without querying the store.
type ItemCatalogedEvent struct {
	EventID           uuid.UUID         `json:"event_id"` // Unique publish-time identifier for deduplication
	Version           int               `json:"version"`  // Schema version; increment on breaking changes
	ItemID            int64             `json:"item_id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	ItemType          string            `json:"item_type"`
	PowerConsumption  int               `json:"power_consumption"`
	PowerGeneration   int               `json:"power_generation"`
	CraftingMaterials []MaterialPayload `json:"crafting_materials"`
	OccurredAt        time.Time         `json:"occurred_at"`
}

// NewItemCataloged builds the event for a stored item. item.ID must be set.
func NewItemCataloged(item *models.Item, at time.Time) ItemCatalogedEvent {
	materials := make([]MaterialPayload, len(item.CraftingMaterials))
	for i, m := range item.CraftingMaterials {
		materials[i] = MaterialPayload{ItemName: m.ItemName, Quantity: m.Quantity}
	}
	return ItemCatalogedEvent{
		EventID:           uuid.New(),
		Version:           ItemCatalogedVersion,
		ItemID:            item.ID,
		Name:              item.Name.String(),
		Description:       item.Description,
		ItemType:          item.ItemType.String(),
		PowerConsumption:  item.PowerConsumption,
		PowerGeneration:   item.PowerGeneration,
		CraftingMaterials: materials,
		OccurredAt:        at.UTC(),
	}
}
