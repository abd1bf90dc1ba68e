package service

import (
	"context"
	"time"

	"quotedesk/internal/auth/token"
	"quotedesk/internal/events"
	"quotedesk/internal/quotes/repository"
	"quotedesk/internal/quotes/transport"
	"quotedesk/platform/apperr"
	"quotedesk/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const publicTokenSize = 24

// ListCache caches rendered quote listings per owner. Implementations must
// treat a miss and an unavailable backend the same way: return ok=false.
type ListCache interface {
	GetQuoteList(ctx context.Context, ownerID uuid.UUID) (*transport.QuoteListResponse, bool)
	SetQuoteList(ctx context.Context, ownerID uuid.UUID, list *transport.QuoteListResponse)
}

// Service provides the quote workflow: composition, totals, replacement
// updates and the public share view.
type Service struct {
	repo  repository.Repository
	bus   events.Bus
	cache ListCache
}

// New creates a new quotes service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// SetEventBus injects the event bus (set after construction by the composition root).
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// SetListCache injects an optional listing cache. Invalidation is driven by
// the quote events, not by the service.
func (s *Service) SetListCache(cache ListCache) {
	s.cache = cache
}

// Create persists a new quote with its line items. The total is computed
// server-side from the item snapshots; client-supplied totals are ignored.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req transport.CreateQuoteRequest) (*transport.QuoteResponse, error) {
	publicToken, err := token.GenerateRandomToken(publicTokenSize)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to generate share token", err)
	}

	now := time.Now()
	quote := &repository.Quote{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: optionalString(req.CustomerEmail),
		CustomerPhone: optionalPhone(req.CustomerPhone),
		PublicToken:   publicToken,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	items := buildItems(quote.ID, req.Items)
	quote.TotalCents = ComputeTotal(items)

	if err := s.repo.CreateWithItems(ctx, quote, items); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.QuoteCreated{
			BaseEvent: events.NewBaseEvent(),
			QuoteID:   quote.ID,
			OwnerID:   ownerID,
		})
	}

	return toResponse(quote, itemResponses(items)), nil
}

// GetByID returns an owned quote with its items resolved against the catalog.
func (s *Service) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.repo.GetResolvedItems(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	return toResponse(quote, resolvedResponses(resolved)), nil
}

// List returns all of the requester's quote headers, most recently updated
// first. Items are not loaded for listings.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) (*transport.QuoteListResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetQuoteList(ctx, ownerID); ok {
			return cached, nil
		}
	}

	quotes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.QuoteResponse, len(quotes))
	for i := range quotes {
		out[i] = *toResponse(&quotes[i], nil)
	}
	list := &transport.QuoteListResponse{Items: out, Total: len(out)}

	if s.cache != nil {
		s.cache.SetQuoteList(ctx, ownerID, list)
	}
	return list, nil
}

// Update replaces a quote's customer fields and its entire item set, then
// recomputes the total. The stored items are never patched in place.
func (s *Service) Update(ctx context.Context, id, ownerID uuid.UUID, req transport.UpdateQuoteRequest) (*transport.QuoteResponse, error) {
	existing, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	items := buildItems(id, req.Items)
	quote := &repository.Quote{
		ID:            id,
		OwnerID:       ownerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: optionalString(req.CustomerEmail),
		CustomerPhone: optionalPhone(req.CustomerPhone),
		TotalCents:    ComputeTotal(items),
		PublicToken:   existing.PublicToken,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     time.Now(),
	}

	if err := s.repo.UpdateWithItems(ctx, quote, items); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.QuoteUpdated{
			BaseEvent: events.NewBaseEvent(),
			QuoteID:   id,
			OwnerID:   ownerID,
		})
	}

	return s.GetByID(ctx, id, ownerID)
}

// Delete removes a quote and its items.
func (s *Service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.QuoteDeleted{
			BaseEvent: events.NewBaseEvent(),
			QuoteID:   id,
			OwnerID:   ownerID,
		})
	}
	return nil
}

// Send marks a quote as sent to its customer. It requires a customer email
// and publishes a QuoteSent event; delivery itself happens asynchronously.
func (s *Service) Send(ctx context.Context, id, ownerID uuid.UUID) error {
	quote, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if quote.CustomerEmail == nil || *quote.CustomerEmail == "" {
		return apperr.BadRequest("quote has no customer email")
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.QuoteSent{
			BaseEvent:     events.NewBaseEvent(),
			QuoteID:       quote.ID,
			OwnerID:       ownerID,
			CustomerName:  quote.CustomerName,
			CustomerEmail: *quote.CustomerEmail,
			PublicToken:   quote.PublicToken,
			TotalCents:    quote.TotalCents,
		})
	}
	return nil
}

// PublicView returns the customer-facing view of a quote reached through its
// share token. No authentication is involved; the token is the capability.
func (s *Service) PublicView(ctx context.Context, shareToken string) (*transport.PublicQuoteResponse, error) {
	quote, err := s.repo.GetByPublicToken(ctx, shareToken)
	if err != nil {
		return nil, err
	}

	resolved, err := s.repo.GetResolvedItems(ctx, quote.ID, quote.OwnerID)
	if err != nil {
		return nil, err
	}

	return &transport.PublicQuoteResponse{
		CustomerName: quote.CustomerName,
		TotalCents:   quote.TotalCents,
		CreatedAt:    quote.CreatedAt,
		Items:        resolvedResponses(resolved),
	}, nil
}

// ResolvedQuote returns the quote header and resolved items together, for
// document rendering. Header and items load concurrently; both queries are
// owner scoped, so a foreign quote fails on either path.
func (s *Service) ResolvedQuote(ctx context.Context, id, ownerID uuid.UUID) (*repository.Quote, []repository.ResolvedItem, error) {
	var (
		quote    *repository.Quote
		resolved []repository.ResolvedItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quote, err = s.repo.GetByID(gctx, id, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		resolved, err = s.repo.GetResolvedItems(gctx, id, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return quote, resolved, nil
}

func buildItems(quoteID uuid.UUID, reqs []transport.QuoteItemRequest) []repository.QuoteItem {
	items := make([]repository.QuoteItem, len(reqs))
	for i, r := range reqs {
		items[i] = repository.QuoteItem{
			ID:                uuid.New(),
			QuoteID:           quoteID,
			ProductID:         r.ProductID,
			Quantity:          r.Quantity,
			PriceAtQuoteCents: r.PriceAtQuoteCents,
		}
	}
	return items
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalPhone(s string) *string {
	if s == "" {
		return nil
	}
	normalized := phone.NormalizeE164(s)
	return &normalized
}

func itemResponses(items []repository.QuoteItem) []transport.QuoteItemResponse {
	out := make([]transport.QuoteItemResponse, len(items))
	for i, it := range items {
		out[i] = transport.QuoteItemResponse{
			ID:                it.ID,
			ProductID:         it.ProductID,
			Quantity:          it.Quantity,
			PriceAtQuoteCents: it.PriceAtQuoteCents,
			LineTotalCents:    LineTotal(it.Quantity, it.PriceAtQuoteCents),
		}
	}
	return out
}

func resolvedResponses(items []repository.ResolvedItem) []transport.QuoteItemResponse {
	out := make([]transport.QuoteItemResponse, len(items))
	for i, it := range items {
		out[i] = transport.QuoteItemResponse{
			ID:                it.ID,
			ProductID:         it.ProductID,
			ProductName:       it.ProductName,
			UnitOfMeasure:     it.UnitOfMeasure,
			Quantity:          it.Quantity,
			PriceAtQuoteCents: it.PriceAtQuoteCents,
			LineTotalCents:    LineTotal(it.Quantity, it.PriceAtQuoteCents),
		}
	}
	return out
}

func toResponse(q *repository.Quote, items []transport.QuoteItemResponse) *transport.QuoteResponse {
	resp := &transport.QuoteResponse{
		ID:           q.ID,
		CustomerName: q.CustomerName,
		TotalCents:   q.TotalCents,
		PublicToken:  q.PublicToken,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
		Items:        items,
	}
	if q.CustomerEmail != nil {
		resp.CustomerEmail = *q.CustomerEmail
	}
	if q.CustomerPhone != nil {
		resp.CustomerPhone = *q.CustomerPhone
	}
	return resp
}
