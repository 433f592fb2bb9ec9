package models

import "fmt"

// Item is the core aggregate for this bounded context: one craftable catalog
// entry. ID is zero until the store assigns it and never changes afterwards.
type Item struct {
	ID                int64
	Name              ItemName
	Description       string
	ItemType          ItemType
	PowerConsumption  int
	PowerGeneration   int
	CraftingMaterials []Material // order is significant
}

// NewItemParams holds the fields of an Item that is not yet persisted.
type NewItemParams struct {
	Name              ItemName
	Description       string
	ItemType          ItemType
	PowerConsumption  int
	PowerGeneration   int
	CraftingMaterials []Material
}

// NewItem constructs an unsaved Item. The materials slice is copied so later
// changes by the caller do not leak into the aggregate.
func NewItem(p NewItemParams) (*Item, error) {
	if !p.ItemType.Valid() {
		return nil, fmt.Errorf("item type %q is not valid", p.ItemType)
	}
	if p.PowerConsumption < 0 {
		return nil, fmt.Errorf("power consumption must not be negative (got %d)", p.PowerConsumption)
	}
	if p.PowerGeneration < 0 {
		return nil, fmt.Errorf("power generation must not be negative (got %d)", p.PowerGeneration)
	}

	materials := make([]Material, len(p.CraftingMaterials))
	copy(materials, p.CraftingMaterials)

	return &Item{
		Name:              p.Name,
		Description:       p.Description,
		ItemType:          p.ItemType,
		PowerConsumption:  p.PowerConsumption,
		PowerGeneration:   p.PowerGeneration,
		CraftingMaterials: materials,
	}, nil
}
