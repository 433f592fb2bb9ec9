package services

import (
	"errors"
	"testing"

	itemdomain "github.com/ghuser/dune-crafting-api/services/item/domain"
	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   models.ItemName
		wantErr bool
	}{
		{"valid name", "Energy Shield Generator", false},
		{"valid name with special chars", "Maula Pistol Mk-2 (Unique)", false},
		{"valid single space between words", "Spice Refinery", false},
		{"leading whitespace kept as given", " Name", false},
		{"consecutive spaces kept as given", "Item  Name", false},
		{"only whitespace", "   ", true},
		{"only tabs and newlines", "\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr = %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, itemdomain.ErrInvalidItemName) {
				t.Errorf("expected ErrInvalidItemName, got %v", err)
			}
		})
	}
}

func TestValidateMaterials(t *testing.T) {
	tests := []struct {
		name    string
		input   []models.Material
		wantErr bool
	}{
		{"nil list", nil, false},
		{"zero quantity allowed", []models.Material{{ItemName: "Water", Quantity: 0}}, false},
		{"several valid", []models.Material{{ItemName: "Plastanium", Quantity: 7}, {ItemName: "Spice", Quantity: 2}}, false},
		{"empty name", []models.Material{{ItemName: " ", Quantity: 1}}, true},
		{"negative quantity", []models.Material{{ItemName: "Plastanium", Quantity: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMaterials(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateMaterials error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, itemdomain.ErrInvalidMaterial) {
				t.Errorf("expected ErrInvalidMaterial, got %v", err)
			}
		})
	}
}

func TestValidateItemForCreation(t *testing.T) {
	makeItem := func() *models.Item {
		return &models.Item{
			Name:              "Ornithopter",
			ItemType:          models.ItemTypeVehicle,
			CraftingMaterials: []models.Material{{ItemName: "Plastanium", Quantity: 7}},
		}
	}

	t.Run("nil item returns error", func(t *testing.T) {
		if err := ValidateItemForCreation(nil); err == nil {
			t.Fatal("expected error for nil item")
		}
	})

	t.Run("valid item returns nil", func(t *testing.T) {
		if err := ValidateItemForCreation(makeItem()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("preassigned ID returns error", func(t *testing.T) {
		item := makeItem()
		item.ID = 3
		if err := ValidateItemForCreation(item); err == nil {
			t.Fatal("expected error for preassigned ID")
		}
	})

	t.Run("invalid type returns error", func(t *testing.T) {
		item := makeItem()
		item.ItemType = "Spaceship"
		if err := ValidateItemForCreation(item); !errors.Is(err, itemdomain.ErrInvalidItemType) {
			t.Fatalf("expected ErrInvalidItemType, got %v", err)
		}
	})

	t.Run("invalid name propagates error", func(t *testing.T) {
		item := makeItem()
		item.Name = "  "
		if err := ValidateItemForCreation(item); !errors.Is(err, itemdomain.ErrInvalidItemName) {
			t.Fatalf("expected ErrInvalidItemName, got %v", err)
		}
	})

	t.Run("bad material propagates error", func(t *testing.T) {
		item := makeItem()
		item.CraftingMaterials = append(item.CraftingMaterials, models.Material{ItemName: "", Quantity: 1})
		if err := ValidateItemForCreation(item); !errors.Is(err, itemdomain.ErrInvalidMaterial) {
			t.Fatalf("expected ErrInvalidMaterial, got %v", err)
		}
	})
}
