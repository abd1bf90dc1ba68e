// Package listcache provides a Redis-backed cache for per-owner quote
// listings. Entries are invalidated by the quote domain events, so a stale
// listing can only outlive a mutation by the event dispatch latency.
package listcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quotedesk/internal/events"
	"quotedesk/internal/quotes/transport"
	"quotedesk/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// Cache caches rendered quote listings keyed by owner.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New creates a quote listing cache on the given Redis client.
func New(rdb *redis.Client, log *logger.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: defaultTTL, log: log}
}

func listKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("quotes:list:%s", ownerID)
}

// GetQuoteList returns the cached listing for an owner. Backend failures and
// decode failures count as misses.
func (c *Cache) GetQuoteList(ctx context.Context, ownerID uuid.UUID) (*transport.QuoteListResponse, bool) {
	raw, err := c.rdb.Get(ctx, listKey(ownerID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("quote list cache read failed", "ownerId", ownerID, "error", err)
		}
		return nil, false
	}

	var list transport.QuoteListResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		c.log.Warn("quote list cache entry corrupt", "ownerId", ownerID, "error", err)
		return nil, false
	}
	return &list, true
}

// SetQuoteList stores the listing for an owner. Failures are logged and
// swallowed; the cache is an optimization, never a source of truth.
func (c *Cache) SetQuoteList(ctx context.Context, ownerID uuid.UUID, list *transport.QuoteListResponse) {
	raw, err := json.Marshal(list)
	if err != nil {
		c.log.Warn("quote list cache encode failed", "ownerId", ownerID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, listKey(ownerID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("quote list cache write failed", "ownerId", ownerID, "error", err)
	}
}

// Invalidate drops the cached listing for an owner.
func (c *Cache) Invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := c.rdb.Del(ctx, listKey(ownerID)).Err(); err != nil {
		c.log.Warn("quote list cache invalidation failed", "ownerId", ownerID, "error", err)
	}
}

// Subscribe registers invalidation handlers for every event that changes an
// owner's quote listing.
func (c *Cache) Subscribe(bus events.Bus) {
	invalidator := events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		switch e := event.(type) {
		case events.QuoteCreated:
			c.Invalidate(ctx, e.OwnerID)
		case events.QuoteUpdated:
			c.Invalidate(ctx, e.OwnerID)
		case events.QuoteDeleted:
			c.Invalidate(ctx, e.OwnerID)
		}
		return nil
	})

	bus.Subscribe(events.QuoteCreated{}.EventName(), invalidator)
	bus.Subscribe(events.QuoteUpdated{}.EventName(), invalidator)
	bus.Subscribe(events.QuoteDeleted{}.EventName(), invalidator)
}
