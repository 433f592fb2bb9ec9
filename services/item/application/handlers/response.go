package handlers

import (
	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
	domainsvcs "github.com/ghuser/dune-crafting-api/services/item/domain/services"
)

// MaterialResponse is one crafting material.
type MaterialResponse struct {
	ItemName string `json:"item_name" example:"Plastanium"`
	Quantity int    `json:"quantity"  example:"7"`
} // @name CraftingMaterial

// ItemResponse is a catalog item with its Deep Desert material costs.
type ItemResponse struct {
	ID                  int64              `json:"id"                    example:"1"`
	Name                string             `json:"name"                  example:"Ornithopter"`
	Description         string             `json:"description"           example:"Light scout aircraft"`
	ItemType            string             `json:"item_type"             example:"Vehicle" enums:"Weapon,Armor,Tool,Component,Consumable,Building,Vehicle"`
	PowerConsumption    int                `json:"power_consumption"     example:"5"`
	PowerGeneration     int                `json:"power_generation"      example:"0"`
	CraftingMaterials   []MaterialResponse `json:"crafting_materials"`
	DeepDesertMaterials []MaterialResponse `json:"deep_desert_materials"`
} // @name ItemResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"Item with ID 42 not found"`
} // @name ErrorResponse

// ValidationErrorResponse is returned when request parameters fail validation.
type ValidationErrorResponse struct {
	Error  string            `json:"error"  example:"Validation failed"`
	Fields map[string]string `json:"fields"`
} // @name ValidationErrorResponse

func newItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:                  item.ID,
		Name:                item.Name.String(),
		Description:         item.Description,
		ItemType:            item.ItemType.String(),
		PowerConsumption:    item.PowerConsumption,
		PowerGeneration:     item.PowerGeneration,
		CraftingMaterials:   newMaterialResponses(item.CraftingMaterials),
		DeepDesertMaterials: newMaterialResponses(domainsvcs.DeepDesertMaterials(item.CraftingMaterials)),
	}
}

func newItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = newItemResponse(item)
	}
	return out
}

// newMaterialResponses never returns nil so empty lists render as [].
func newMaterialResponses(materials []models.Material) []MaterialResponse {
	out := make([]MaterialResponse, len(materials))
	for i, m := range materials {
		out[i] = MaterialResponse{ItemName: m.ItemName, Quantity: m.Quantity}
	}
	return out
}
