// Package services holds the stateless rules of the item context: catalog
// validation and the Deep Desert cost projection.
package services

import (
	"fmt"
	"strings"

	itemdomain "github.com/ghuser/dune-crafting-api/services/item/domain"
	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
)

// ValidateName rejects a blank name. Length limits are enforced by
// models.NewItemName; any other spelling is accepted as given.
func ValidateName(name models.ItemName) error {
	if strings.TrimSpace(name.String()) == "" {
		return fmt.Errorf("%w: name must not be blank", itemdomain.ErrInvalidItemName)
	}
	return nil
}

// ValidateMaterials checks every crafting material has a name and a
// non-negative quantity. An empty list is allowed.
func ValidateMaterials(materials []models.Material) error {
	for i, m := range materials {
		if strings.TrimSpace(m.ItemName) == "" {
			return fmt.Errorf("%w: material %d has no item_name", itemdomain.ErrInvalidMaterial, i)
		}
		if m.Quantity < 0 {
			return fmt.Errorf("%w: material %d (%s) has negative quantity %d", itemdomain.ErrInvalidMaterial, i, m.ItemName, m.Quantity)
		}
	}
	return nil
}

// ValidateItemForCreation checks an Item built by models.NewItem before it is
// stored.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if err := ValidateName(item.Name); err != nil {
		return err
	}
	if !item.ItemType.Valid() {
		return fmt.Errorf("%w: %q", itemdomain.ErrInvalidItemType, item.ItemType)
	}
	if err := ValidateMaterials(item.CraftingMaterials); err != nil {
		return err
	}
	if item.ID != 0 {
		return fmt.Errorf("id must not be set before the item is stored (got %d)", item.ID)
	}
	return nil
}
