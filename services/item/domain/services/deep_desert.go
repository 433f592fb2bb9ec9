package services

import "github.com/ghuser/dune-crafting-api/services/item/domain/models"

// DeepDesertQuantity is the Deep Desert cost of q units: half, rounded up.
func DeepDesertQuantity(q int) int {
	return (q + 1) / 2
}

// DeepDesertMaterials maps base crafting materials to their Deep Desert
// requirements. The result has the same length and order as materials with
// each quantity halved and rounded up. It never returns nil.
func DeepDesertMaterials(materials []models.Material) []models.Material {
	out := make([]models.Material, len(materials))
	for i, m := range materials {
		out[i] = models.Material{
			ItemName: m.ItemName,
			Quantity: DeepDesertQuantity(m.Quantity),
		}
	}
	return out
}
