// Package sqlstore implements the item repository on database/sql. The same
// queries run on SQLite and PostgreSQL; placeholders go through Rebind.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ghuser/dune-crafting-api/pkg/database"
	itemdomain "github.com/ghuser/dune-crafting-api/services/item/domain"
	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
)

const itemColumns = `id, name, description, item_type, power_consumption, power_generation, crafting_materials`

const (
	insertItemSQL = `INSERT INTO items (name, description, item_type, power_consumption, power_generation, crafting_materials)
		VALUES (?, ?, ?, ?, ?, ?) RETURNING id`
	getItemByIDSQL     = `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	findAllItemsSQL    = `SELECT ` + itemColumns + ` FROM items ORDER BY id`
	findItemsByNameSQL = `SELECT ` + itemColumns + ` FROM items WHERE LOWER(name) LIKE LOWER(?) ESCAPE '\' ORDER BY id`
	countItemsSQL      = `SELECT COUNT(*) FROM items`
)

// rowQuerier is satisfied by *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ItemRepository implements repositories.ItemRepository against a SQL database.
type ItemRepository struct {
	db *database.Database
}

// NewItemRepository returns an ItemRepository backed by the given database.
func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{db: db}
}

// Save inserts a new Item and assigns its store-generated ID.
// Returns ErrItemAlreadyExists on unique constraint violations.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	id, err := r.insert(ctx, r.db.DB(), item)
	if err != nil {
		return err
	}
	item.ID = id
	return nil
}

// SaveAll inserts items in one transaction. IDs are assigned only after the
// commit succeeds.
func (r *ItemRepository) SaveAll(ctx context.Context, items []*models.Item) error {
	ids := make([]int64, len(items))
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, item := range items {
			id, err := r.insert(ctx, tx, item)
			if err != nil {
				return err
			}
			ids[i] = id
		}
		return nil
	})
	if err != nil {
		return err
	}
	for i, item := range items {
		item.ID = ids[i]
	}
	return nil
}

func (r *ItemRepository) insert(ctx context.Context, q rowQuerier, item *models.Item) (int64, error) {
	materials := item.CraftingMaterials
	if materials == nil {
		materials = []models.Material{}
	}
	payload, err := json.Marshal(materials)
	if err != nil {
		return 0, fmt.Errorf("marshal crafting materials: %w", err)
	}

	var id int64
	err = q.QueryRowContext(ctx, r.db.Rebind(insertItemSQL),
		item.Name.String(),
		item.Description,
		item.ItemType.String(),
		item.PowerConsumption,
		item.PowerGeneration,
		string(payload),
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q", itemdomain.ErrItemAlreadyExists, item.Name)
		}
		return 0, fmt.Errorf("insert item %q: %w", item.Name, err)
	}
	return id, nil
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, r.db.Rebind(getItemByIDSQL), id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ItemIDNotFound(id)
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// FindAll retrieves every item in id order.
func (r *ItemRepository) FindAll(ctx context.Context) ([]*models.Item, error) {
	return r.query(ctx, findAllItemsSQL)
}

// FindByNameContaining retrieves items whose name contains term, ignoring
// case. LIKE wildcards in term are matched literally.
func (r *ItemRepository) FindByNameContaining(ctx context.Context, term string) ([]*models.Item, error) {
	return r.query(ctx, findItemsByNameSQL, "%"+escapeLike(term)+"%")
}

// Count returns the number of stored items.
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.DB().QueryRowContext(ctx, countItemsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *ItemRepository) query(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	items := make([]*models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// scanItem maps one items row to a domain models.Item.
func scanItem(s rowScanner) (*models.Item, error) {
	var (
		item      models.Item
		name      string
		itemType  string
		materials []byte
	)
	if err := s.Scan(
		&item.ID,
		&name,
		&item.Description,
		&itemType,
		&item.PowerConsumption,
		&item.PowerGeneration,
		&materials,
	); err != nil {
		return nil, err
	}

	item.Name = models.ItemName(name)
	item.ItemType = models.ItemType(itemType)
	item.CraftingMaterials = []models.Material{}
	if len(materials) > 0 {
		if err := json.Unmarshal(materials, &item.CraftingMaterials); err != nil {
			return nil, fmt.Errorf("decode crafting materials of item %d: %w", item.ID, err)
		}
		if item.CraftingMaterials == nil {
			item.CraftingMaterials = []models.Material{}
		}
	}
	return &item, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside a LIKE pattern using \ as the
// escape character.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
