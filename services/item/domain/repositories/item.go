package repositories

import (
	"context"

	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
// The running service only reads; Save and SaveAll exist for the catalog loader.
type ItemRepository interface {
	// Save inserts a new item and sets item.ID to the store-assigned id.
	// Returns ErrItemAlreadyExists when the name is taken.
	Save(ctx context.Context, item *models.Item) error

	// SaveAll inserts every item in a single transaction. Either all rows are
	// committed or none are.
	SaveAll(ctx context.Context, items []*models.Item) error

	// GetByID returns ErrItemNotFound when no item has the id.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// FindAll returns every item in insertion (id) order.
	FindAll(ctx context.Context) ([]*models.Item, error)

	// FindByNameContaining returns items whose name contains term, ignoring
	// case, in id order. An empty result is not an error.
	FindByNameContaining(ctx context.Context, term string) ([]*models.Item, error)

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)
}
