package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items. The catalog never
	// changes while the process runs, so entries only expire to bound memory.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "dune:item"

	purgeScanCount = 500
)

// ErrCacheMiss is returned by Get when the item is not cached.
var ErrCacheMiss = errors.New("cache miss")

// CachedMaterial is one crafting material in the read model.
type CachedMaterial struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// CachedItem is the denormalized read model stored in Redis as a hash.
// Crafting materials are kept as a JSON array in one field.
type CachedItem struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	ItemType          string           `json:"item_type"`
	PowerConsumption  int              `json:"power_consumption"`
	PowerGeneration   int              `json:"power_generation"`
	CraftingMaterials []CachedMaterial `json:"crafting_materials"`
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "dune:item:{namespace}:{itemID}", or "dune:item:{itemID}" when
// the namespace is empty.
type ItemCache struct {
	client *RedisClient
	prefix string
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
// Entries are kept under namespace, so two catalogs sharing one Redis never
// read each other's items.
func NewItemCache(r *RedisClient, namespace string) *ItemCache {
	prefix := itemCacheKeyPrefix
	if namespace != "" {
		prefix += ":" + namespace
	}
	return &ItemCache{client: r, prefix: prefix}
}

// Namespace derives a stable cache namespace from the store's connection
// string. Credentials never appear in key names.
func Namespace(databaseURL string) string {
	sum := sha256.Sum256([]byte(databaseURL))
	return hex.EncodeToString(sum[:6])
}

// Get retrieves a cached item by ID. Returns ErrCacheMiss when the key does
// not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, ErrCacheMiss
	}
	return decodeItem(vals)
}

// Set writes a cached item as a Redis hash with ItemCacheTTL.
// Uses a transaction pipeline so the fields and the TTL land together.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	fields, err := encodeItem(item)
	if err != nil {
		return err
	}

	key := c.key(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Purge removes every item entry in this cache's namespace and returns how
// many keys were deleted. Keys are walked with SCAN so Redis is never blocked.
func (c *ItemCache) Purge(ctx context.Context) (int, error) {
	rdb := c.client.Client()
	iter := rdb.Scan(ctx, 0, c.prefix+":*", purgeScanCount).Iterator()

	deleted := 0
	batch := make([]string, 0, purgeScanCount)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := rdb.Del(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("cache purge: %w", err)
		}
		deleted += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == purgeScanCount {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("cache purge scan: %w", err)
	}
	if err := flush(); err != nil {
		return deleted, err
	}
	return deleted, nil
}

func (c *ItemCache) key(itemID int64) string {
	return c.prefix + ":" + strconv.FormatInt(itemID, 10)
}

func encodeItem(item *CachedItem) (map[string]any, error) {
	materials := item.CraftingMaterials
	if materials == nil {
		materials = []CachedMaterial{}
	}
	raw, err := json.Marshal(materials)
	if err != nil {
		return nil, fmt.Errorf("cache encode materials: %w", err)
	}
	return map[string]any{
		"id":                 strconv.FormatInt(item.ID, 10),
		"name":               item.Name,
		"description":        item.Description,
		"item_type":          item.ItemType,
		"power_consumption":  strconv.Itoa(item.PowerConsumption),
		"power_generation":   strconv.Itoa(item.PowerGeneration),
		"crafting_materials": string(raw),
	}, nil
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	consumption, err := strconv.Atoi(vals["power_consumption"])
	if err != nil {
		return nil, fmt.Errorf("cache parse power_consumption: %w", err)
	}
	generation, err := strconv.Atoi(vals["power_generation"])
	if err != nil {
		return nil, fmt.Errorf("cache parse power_generation: %w", err)
	}
	materials := []CachedMaterial{}
	if raw := vals["crafting_materials"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &materials); err != nil {
			return nil, fmt.Errorf("cache parse crafting_materials: %w", err)
		}
	}

	return &CachedItem{
		ID:                id,
		Name:              vals["name"],
		Description:       vals["description"],
		ItemType:          vals["item_type"],
		PowerConsumption:  consumption,
		PowerGeneration:   generation,
		CraftingMaterials: materials,
	}, nil
}
