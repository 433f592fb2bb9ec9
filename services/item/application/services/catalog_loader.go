package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	pkgevents "github.com/ghuser/dune-crafting-api/pkg/events"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
	itemdomain "github.com/ghuser/dune-crafting-api/services/item/domain"
	"github.com/ghuser/dune-crafting-api/services/item/domain/events"
	"github.com/ghuser/dune-crafting-api/services/item/domain/models"
	"github.com/ghuser/dune-crafting-api/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/dune-crafting-api/services/item/domain/services"
	"github.com/ghuser/dune-crafting-api/services/item/infrastructure/dataset"
)

// Publisher is the part of the event bus the loader needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// CacheInvalidator drops every cached read-model entry of the catalog.
type CacheInvalidator interface {
	Purge(ctx context.Context) (int, error)
}

// CatalogLoader fills an empty store from the dataset file.
type CatalogLoader struct {
	repo  repositories.ItemRepository
	path  string
	pub   Publisher
	cache CacheInvalidator
	log   logger.Logger
	now   func() time.Time
}

// LoaderOption configures a CatalogLoader.
type LoaderOption func(*CatalogLoader)

// WithCacheInvalidator purges c after a fresh load, so entries cached for a
// previous store can not be served for ids of the new one.
func WithCacheInvalidator(c CacheInvalidator) LoaderOption {
	return func(l *CatalogLoader) { l.cache = c }
}

// NewCatalogLoader returns a loader reading from path. pub may be nil, in
// which case no item.cataloged events are sent.
func NewCatalogLoader(repo repositories.ItemRepository, path string, pub Publisher, log logger.Logger, opts ...LoaderOption) *CatalogLoader {
	l := &CatalogLoader{repo: repo, path: path, pub: pub, log: log, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// EnsurePopulated loads the dataset when the store is empty and returns how
// many items were inserted. A store that already holds items is left alone
// and (0, nil) is returned, so calling this on every startup never duplicates
// rows.
//
// All items are inserted in one transaction: on any error nothing is stored.
// A missing file yields an error matching dataset.ErrDatasetNotFound.
func (l *CatalogLoader) EnsurePopulated(ctx context.Context) (int, error) {
	n, err := l.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		l.log.InfoContext(ctx, "catalog already populated", "items", n)
		return 0, nil
	}

	records, err := dataset.ReadFile(l.path)
	if err != nil {
		return 0, err
	}

	items := make([]*models.Item, 0, len(records))
	for i, rec := range records {
		item, err := buildItem(rec)
		if err != nil {
			return 0, fmt.Errorf("dataset record %d (%q): %w", i, rec.Name, err)
		}
		items = append(items, item)
	}

	if err := l.repo.SaveAll(ctx, items); err != nil {
		return 0, fmt.Errorf("store catalog: %w", err)
	}
	l.log.InfoContext(ctx, "catalog populated", "items", len(items), "source", l.path)

	l.invalidate(ctx)
	l.publish(ctx, items)
	return len(items), nil
}

func buildItem(rec dataset.ItemRecord) (*models.Item, error) {
	params := rec.Params()

	name, err := models.NewItemName(rec.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}
	params.Name = name

	itemType, err := models.ParseItemType(rec.ItemType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemType, err)
	}
	params.ItemType = itemType

	item, err := models.NewItem(params)
	if err != nil {
		return nil, err
	}
	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, err
	}
	return item, nil
}

// invalidate runs before publish so the cache warmer refills a clean
// namespace. A failure is logged; stale entries still expire with their TTL.
func (l *CatalogLoader) invalidate(ctx context.Context) {
	if l.cache == nil {
		return
	}
	n, err := l.cache.Purge(ctx)
	if err != nil {
		l.log.WarnContext(ctx, "purge item cache", "error", err)
		return
	}
	if n > 0 {
		l.log.InfoContext(ctx, "purged stale item cache", "keys", n)
	}
}

// publish announces each stored item. Failures are logged; the catalog is
// already committed and the cache fills on demand anyway.
func (l *CatalogLoader) publish(ctx context.Context, items []*models.Item) {
	if l.pub == nil {
		return
	}
	at := l.now()
	msgs := make([]*message.Message, 0, len(items))
	for _, item := range items {
		msg, err := pkgevents.NewJSONMessage(events.NewItemCataloged(item, at))
		if err != nil {
			l.log.WarnContext(ctx, "encode item.cataloged event", "item_id", item.ID, "error", err)
			continue
		}
		msgs = append(msgs, msg)
	}
	if err := l.pub.Publish(ctx, events.TopicItemCataloged, msgs...); err != nil {
		l.log.WarnContext(ctx, "publish item.cataloged events", "count", len(msgs), "error", err)
	}
}
