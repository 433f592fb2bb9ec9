// Package dataset reads the catalog seed file: a JSON array of item records.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	pkgvalidator "github.com/ghuser/dune-crafting-api/pkg/validator"
	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
)

var (
	// ErrDatasetNotFound indicates the dataset file does not exist.
	ErrDatasetNotFound = errors.New("catalog dataset not found")

	// ErrInvalidDataset indicates the file is not a JSON array of valid records.
	ErrInvalidDataset = errors.New("invalid catalog dataset")
)

// MaterialRecord is one crafting material as written in the dataset.
type MaterialRecord struct {
	ItemName string `json:"item_name" validate:"required,max=255"`
	Quantity int    `json:"quantity"  validate:"gte=0"`
}

// ItemRecord is one item as written in the dataset. Missing power fields
// default to zero and a missing material list means no materials.
type ItemRecord struct {
	Name              string           `json:"name"               validate:"required,min=1,max=255"`
	Description       string           `json:"description"`
	ItemType          string           `json:"item_type"          validate:"required,oneof=Weapon Armor Tool Component Consumable Building Vehicle"`
	PowerConsumption  int              `json:"power_consumption"  validate:"gte=0"`
	PowerGeneration   int              `json:"power_generation"   validate:"gte=0"`
	CraftingMaterials []MaterialRecord `json:"crafting_materials" validate:"omitempty,dive"`
}

// Params converts the record into constructor input for a domain Item.
func (r ItemRecord) Params() models.NewItemParams {
	materials := make([]models.Material, len(r.CraftingMaterials))
	for i, m := range r.CraftingMaterials {
		materials[i] = models.Material{ItemName: m.ItemName, Quantity: m.Quantity}
	}
	return models.NewItemParams{
		Name:              models.ItemName(r.Name),
		Description:       r.Description,
		ItemType:          models.ItemType(r.ItemType),
		PowerConsumption:  r.PowerConsumption,
		PowerGeneration:   r.PowerGeneration,
		CraftingMaterials: materials,
	}
}

// ReadFile opens path and decodes it with Decode. A missing file yields an
// error wrapping ErrDatasetNotFound.
func ReadFile(path string) ([]ItemRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Decode parses a JSON array of item records and validates each one. Names
// must be unique across the file.
func Decode(r io.Reader) ([]ItemRecord, error) {
	var records []ItemRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	seen := make(map[string]int, len(records))
	for i := range records {
		rec := &records[i]
		if err := pkgvalidator.Validate(rec); err != nil {
			return nil, fmt.Errorf("%w: record %d (%q): %s", ErrInvalidDataset, i, rec.Name, pkgvalidator.Summary(err))
		}
		if first, dup := seen[rec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q at records %d and %d", ErrInvalidDataset, rec.Name, first, i)
		}
		seen[rec.Name] = i
	}
	return records, nil
}
