package models

// Material is a named quantity of a resource required to craft an Item.
// Equality is by value.
type Material struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}
