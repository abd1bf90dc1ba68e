package listcache

import (
	"context"
	"testing"

	"quotedesk/internal/events"
	"quotedesk/internal/quotes/transport"
	"quotedesk/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, logger.New("development"))
}

func sampleList() *transport.QuoteListResponse {
	return &transport.QuoteListResponse{
		Items: []transport.QuoteResponse{
			{ID: uuid.New(), CustomerName: "Acme Corp", TotalCents: 2600},
		},
		Total: 1,
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	owner := uuid.New()

	if _, ok := cache.GetQuoteList(ctx, owner); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	cache.SetQuoteList(ctx, owner, sampleList())

	got, ok := cache.GetQuoteList(ctx, owner)
	if !ok {
		t.Fatal("expected a hit after set")
	}
	if got.Total != 1 || got.Items[0].CustomerName != "Acme Corp" {
		t.Fatalf("cached list mangled: %+v", got)
	}
}

func TestCacheIsOwnerScoped(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	cache.SetQuoteList(ctx, owner, sampleList())

	if _, ok := cache.GetQuoteList(ctx, other); ok {
		t.Fatal("one owner's cache entry must not serve another owner")
	}
}

func TestQuoteEventsInvalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	owner := uuid.New()

	bus := events.NewInMemoryBus(logger.New("development"))
	cache.Subscribe(bus)

	eventsToTest := []events.Event{
		events.QuoteCreated{BaseEvent: events.NewBaseEvent(), QuoteID: uuid.New(), OwnerID: owner},
		events.QuoteUpdated{BaseEvent: events.NewBaseEvent(), QuoteID: uuid.New(), OwnerID: owner},
		events.QuoteDeleted{BaseEvent: events.NewBaseEvent(), QuoteID: uuid.New(), OwnerID: owner},
	}

	for _, ev := range eventsToTest {
		cache.SetQuoteList(ctx, owner, sampleList())
		if _, ok := cache.GetQuoteList(ctx, owner); !ok {
			t.Fatal("expected a hit before the event")
		}

		if err := bus.PublishSync(ctx, ev); err != nil {
			t.Fatalf("PublishSync(%s) failed: %v", ev.EventName(), err)
		}
		if _, ok := cache.GetQuoteList(ctx, owner); ok {
			t.Fatalf("%s must invalidate the owner's listing", ev.EventName())
		}
	}
}

func TestEventsForOtherOwnersKeepEntry(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	owner := uuid.New()

	bus := events.NewInMemoryBus(logger.New("development"))
	cache.Subscribe(bus)

	cache.SetQuoteList(ctx, owner, sampleList())
	err := bus.PublishSync(ctx, events.QuoteCreated{
		BaseEvent: events.NewBaseEvent(), QuoteID: uuid.New(), OwnerID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if _, ok := cache.GetQuoteList(ctx, owner); !ok {
		t.Fatal("a foreign owner's event must not evict this owner's listing")
	}
}
