package models

import (
	"fmt"
	"strings"
)

// ItemType is the closed set of catalog categories.
type ItemType string

const (
	ItemTypeWeapon     ItemType = "Weapon"
	ItemTypeArmor      ItemType = "Armor"
	ItemTypeTool       ItemType = "Tool"
	ItemTypeComponent  ItemType = "Component"
	ItemTypeConsumable ItemType = "Consumable"
	ItemTypeBuilding   ItemType = "Building"
	ItemTypeVehicle    ItemType = "Vehicle"
)

// ItemTypes lists every valid ItemType in declaration order.
var ItemTypes = []ItemType{
	ItemTypeWeapon,
	ItemTypeArmor,
	ItemTypeTool,
	ItemTypeComponent,
	ItemTypeConsumable,
	ItemTypeBuilding,
	ItemTypeVehicle,
}

// ParseItemType returns the ItemType whose name equals s exactly.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(s)
	if !t.Valid() {
		names := make([]string, len(ItemTypes))
		for i, v := range ItemTypes {
			names[i] = string(v)
		}
		return "", fmt.Errorf("item type %q is not one of %s", s, strings.Join(names, ", "))
	}
	return t, nil
}

// Valid reports whether t is one of ItemTypes.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeArmor, ItemTypeTool, ItemTypeComponent,
		ItemTypeConsumable, ItemTypeBuilding, ItemTypeVehicle:
		return true
	}
	return false
}

func (t ItemType) String() string {
	return string(t)
}
