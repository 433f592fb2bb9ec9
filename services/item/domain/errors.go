package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates no item matched the requested id or search term.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates an item with the same name already exists.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("invalid item name")

	// ErrInvalidItemType indicates an item_type outside the closed set of types.
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrInvalidItemID indicates a path id that is not an integer.
	ErrInvalidItemID = errors.New("invalid item id")

	// ErrInvalidMaterial indicates a crafting material with no name or a negative quantity.
	ErrInvalidMaterial = errors.New("invalid crafting material")
)

// NotFoundError is a missing-item error whose text is safe to show to clients.
// errors.Is(err, ErrItemNotFound) holds for it.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrItemNotFound }

// ItemIDNotFound reports that no item has the given id.
func ItemIDNotFound(id int64) error {
	return &NotFoundError{Message: fmt.Sprintf("Item with ID %d not found", id)}
}

// ItemNameNotFound reports that no item name contains term.
func ItemNameNotFound(term string) error {
	return &NotFoundError{Message: fmt.Sprintf("No items found with the name '%s'", term)}
}
