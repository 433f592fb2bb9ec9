package services

import (
	"testing"

	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
)

func TestDeepDesertQuantity(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{7, 4},
		{10, 5},
		{11, 6},
		{1000, 500},
		{1001, 501},
	}
	for _, tt := range tests {
		if got := DeepDesertQuantity(tt.in); got != tt.want {
			t.Errorf("DeepDesertQuantity(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDeepDesertMaterials(t *testing.T) {
	t.Run("same length, order and names", func(t *testing.T) {
		in := []models.Material{
			{ItemName: "Plastanium", Quantity: 7},
			{ItemName: "Spice Melange", Quantity: 10},
			{ItemName: "Silicone Block", Quantity: 1},
			{ItemName: "Aluminum Ingot", Quantity: 0},
		}
		got := DeepDesertMaterials(in)
		want := []models.Material{
			{ItemName: "Plastanium", Quantity: 4},
			{ItemName: "Spice Melange", Quantity: 5},
			{ItemName: "Silicone Block", Quantity: 1},
			{ItemName: "Aluminum Ingot", Quantity: 0},
		}
		if len(got) != len(want) {
			t.Fatalf("length: got %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("index %d: got %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		in := []models.Material{{ItemName: "Plastanium", Quantity: 7}}
		_ = DeepDesertMaterials(in)
		if in[0].Quantity != 7 {
			t.Fatalf("input mutated: %+v", in[0])
		}
	})

	t.Run("nil input yields empty non-nil slice", func(t *testing.T) {
		got := DeepDesertMaterials(nil)
		if got == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(got) != 0 {
			t.Fatalf("expected empty slice, got %v", got)
		}
	})
}
