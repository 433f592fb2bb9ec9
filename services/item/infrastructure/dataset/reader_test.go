package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
)

const sample = `[
  {
    "name": "Ornithopter",
    "description": "Light scout aircraft",
    "item_type": "Vehicle",
    "power_consumption": 5,
    "crafting_materials": [{"item_name": "Plastanium", "quantity": 7}]
  },
  {
    "name": "Plastanium",
    "description": "Refined alloy",
    "item_type": "Component"
  }
]`

func TestDecode(t *testing.T) {
	records, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	p := records[0].Params()
	if p.Name != "Ornithopter" || p.ItemType != models.ItemTypeVehicle || p.PowerConsumption != 5 {
		t.Errorf("unexpected params: %+v", p)
	}
	if len(p.CraftingMaterials) != 1 || p.CraftingMaterials[0] != (models.Material{ItemName: "Plastanium", Quantity: 7}) {
		t.Errorf("unexpected materials: %+v", p.CraftingMaterials)
	}

	p = records[1].Params()
	if p.PowerConsumption != 0 || p.PowerGeneration != 0 {
		t.Errorf("missing power fields should default to 0: %+v", p)
	}
	if p.CraftingMaterials == nil || len(p.CraftingMaterials) != 0 {
		t.Errorf("missing materials should become an empty list: %#v", p.CraftingMaterials)
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed json", `[{"name": "Lasgun",`, ""},
		{"not an array", `{"name": "Lasgun"}`, ""},
		{"missing name", `[{"item_type": "Weapon"}]`, "name"},
		{"unknown type", `[{"name": "Thopter", "item_type": "Spaceship"}]`, "item_type"},
		{"negative power", `[{"name": "Windtrap", "item_type": "Building", "power_generation": -1}]`, "power_generation"},
		{"material without name", `[{"name": "Lasgun", "item_type": "Weapon", "crafting_materials": [{"quantity": 1}]}]`, "crafting_materials[0].item_name"},
		{"negative quantity", `[{"name": "Lasgun", "item_type": "Weapon", "crafting_materials": [{"item_name": "Iron", "quantity": -3}]}]`, "crafting_materials[0].quantity"},
		{"duplicate name", `[{"name": "Lasgun", "item_type": "Weapon"}, {"name": "Lasgun", "item_type": "Weapon"}]`, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data))
			if !errors.Is(err, ErrInvalidDataset) {
				t.Fatalf("expected ErrInvalidDataset, got %v", err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads records", func(t *testing.T) {
		path := filepath.Join(dir, "items.json")
		if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
			t.Fatal(err)
		}
		records, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "absent.json"))
		if !errors.Is(err, ErrDatasetNotFound) {
			t.Fatalf("expected ErrDatasetNotFound, got %v", err)
		}
	})

	t.Run("invalid file names the path", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := ReadFile(path)
		if !errors.Is(err, ErrInvalidDataset) || !strings.Contains(err.Error(), "broken.json") {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestShippedDataset(t *testing.T) {
	records, err := ReadFile(filepath.Join("..", "..", "..", "..", "data", "items_data.json"))
	if err != nil {
		t.Fatalf("shipped dataset must be valid: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("shipped dataset is empty")
	}
}
