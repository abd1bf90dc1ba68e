package scheduler

import (
	"context"
	"fmt"

	"quotedesk/internal/events"
	"quotedesk/platform/config"
	"quotedesk/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Client enqueues background document tasks. A nil client is valid and
// silently drops tasks, so Redis stays optional.
type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.RedisConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueuePDFPrerender schedules a fresh PDF render for a quote.
func (c *Client) EnqueuePDFPrerender(ctx context.Context, payload QuotePDFPrerenderPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewQuotePDFPrerenderTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// EnqueuePDFCleanup schedules removal of a deleted quote's stored PDF.
func (c *Client) EnqueuePDFCleanup(ctx context.Context, payload QuotePDFCleanupPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewQuotePDFCleanupTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// Subscribe wires quote events to background tasks: mutations trigger a
// prerender, deletions a cleanup.
func (c *Client) Subscribe(bus events.Bus, log *logger.Logger) {
	bus.Subscribe(events.QuoteCreated{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.QuoteCreated)
		if !ok {
			return nil
		}
		return c.enqueuePrerenderLogged(ctx, e.QuoteID.String(), e.OwnerID.String(), log)
	}))

	bus.Subscribe(events.QuoteUpdated{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.QuoteUpdated)
		if !ok {
			return nil
		}
		return c.enqueuePrerenderLogged(ctx, e.QuoteID.String(), e.OwnerID.String(), log)
	}))

	bus.Subscribe(events.QuoteDeleted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.QuoteDeleted)
		if !ok {
			return nil
		}
		err := c.EnqueuePDFCleanup(ctx, QuotePDFCleanupPayload{QuoteID: e.QuoteID.String()})
		if err != nil {
			log.Warn("failed to enqueue quote pdf cleanup", "quoteId", e.QuoteID, "error", err)
		}
		return err
	}))
}

func (c *Client) enqueuePrerenderLogged(ctx context.Context, quoteID, ownerID string, log *logger.Logger) error {
	err := c.EnqueuePDFPrerender(ctx, QuotePDFPrerenderPayload{QuoteID: quoteID, OwnerID: ownerID})
	if err != nil {
		log.Warn("failed to enqueue quote pdf prerender", "quoteId", quoteID, "error", err)
	}
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
