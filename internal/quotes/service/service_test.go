package service

import (
	"context"
	"sync"
	"testing"

	"quotedesk/internal/quotes/repository"
	"quotedesk/internal/quotes/transport"
	"quotedesk/platform/apperr"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository for exercising the workflow without a
// database. It mirrors the owner scoping of the real implementation.
type fakeRepo struct {
	mu     sync.Mutex
	quotes map[uuid.UUID]*repository.Quote
	items  map[uuid.UUID][]repository.QuoteItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		quotes: make(map[uuid.UUID]*repository.Quote),
		items:  make(map[uuid.UUID][]repository.QuoteItem),
	}
}

func (f *fakeRepo) CreateWithItems(_ context.Context, quote *repository.Quote, items []repository.QuoteItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *quote
	f.quotes[quote.ID] = &cp
	f.items[quote.ID] = append([]repository.QuoteItem(nil), items...)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id, ownerID uuid.UUID) (*repository.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[id]
	if !ok || q.OwnerID != ownerID {
		return nil, apperr.NotFound("quote not found or access denied")
	}
	cp := *q
	return &cp, nil
}

func (f *fakeRepo) GetItemsByQuoteID(_ context.Context, quoteID, ownerID uuid.UUID) ([]repository.QuoteItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[quoteID]
	if !ok || q.OwnerID != ownerID {
		return nil, apperr.NotFound("quote not found or access denied")
	}
	return append([]repository.QuoteItem(nil), f.items[quoteID]...), nil
}

func (f *fakeRepo) GetResolvedItems(_ context.Context, quoteID, ownerID uuid.UUID) ([]repository.ResolvedItem, error) {
	items, err := f.GetItemsByQuoteID(context.Background(), quoteID, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]repository.ResolvedItem, len(items))
	for i, it := range items {
		out[i] = repository.ResolvedItem{QuoteItem: it, ProductName: "Widget", UnitOfMeasure: "UND"}
	}
	return out, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]repository.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.Quote
	for _, q := range f.quotes {
		if q.OwnerID == ownerID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateWithItems(_ context.Context, quote *repository.Quote, items []repository.QuoteItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.quotes[quote.ID]
	if !ok || existing.OwnerID != quote.OwnerID {
		return apperr.NotFound("quote not found or access denied")
	}
	cp := *quote
	f.quotes[quote.ID] = &cp
	f.items[quote.ID] = append([]repository.QuoteItem(nil), items...)
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quotes[id]
	if !ok || q.OwnerID != ownerID {
		return apperr.NotFound("quote not found or access denied")
	}
	delete(f.quotes, id)
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) GetByPublicToken(_ context.Context, token string) (*repository.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.quotes {
		if q.PublicToken == token {
			cp := *q
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("quote not found")
}

var _ repository.Repository = (*fakeRepo)(nil)

func twoItemRequest() transport.CreateQuoteRequest {
	return transport.CreateQuoteRequest{
		CustomerName: "Acme Corp",
		Items: []transport.QuoteItemRequest{
			{ProductID: uuid.New(), Quantity: 2, PriceAtQuoteCents: 1050},
			{ProductID: uuid.New(), Quantity: 1, PriceAtQuoteCents: 500},
		},
	}
}

func TestCreateComputesTotalServerSide(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	owner := uuid.New()

	resp, err := svc.Create(ctx, owner, twoItemRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.TotalCents != 2600 {
		t.Fatalf("TotalCents = %d, want 2600", resp.TotalCents)
	}
	if resp.PublicToken == "" {
		t.Fatal("expected a public token to be generated")
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].LineTotalCents != 2100 {
		t.Fatalf("first line total = %d, want 2100", resp.Items[0].LineTotalCents)
	}
}

func TestUpdateReplacesItemSetAndRecomputesTotal(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, twoItemRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, owner, transport.UpdateQuoteRequest{
		CustomerName: "Acme Corp",
		Items: []transport.QuoteItemRequest{
			{ProductID: uuid.New(), Quantity: 1, PriceAtQuoteCents: 1050},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.TotalCents != 1050 {
		t.Fatalf("TotalCents after update = %d, want 1050", updated.TotalCents)
	}
	if len(updated.Items) != 1 {
		t.Fatalf("expected the item set to be replaced, got %d items", len(updated.Items))
	}

	// Items from before the update must be gone, not merged.
	stored, err := repo.GetItemsByQuoteID(ctx, created.ID, owner)
	if err != nil {
		t.Fatalf("GetItemsByQuoteID failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored items = %d, want 1", len(stored))
	}
}

func TestUpdatePreservesPublicTokenAndCreatedAt(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, twoItemRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, owner, transport.UpdateQuoteRequest{
		CustomerName: "Renamed Corp",
		Items: []transport.QuoteItemRequest{
			{ProductID: uuid.New(), Quantity: 5, PriceAtQuoteCents: 100},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.PublicToken != created.PublicToken {
		t.Fatal("update must not rotate the public token")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("update must not change createdAt")
	}
}

func TestForeignQuoteIndistinguishableFromMissing(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	created, err := svc.Create(ctx, owner, twoItemRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, foreignErr := svc.GetByID(ctx, created.ID, stranger)
	_, missingErr := svc.GetByID(ctx, uuid.New(), stranger)

	if apperr.GetKind(foreignErr) != apperr.KindNotFound {
		t.Fatalf("foreign quote error kind = %v, want not found", apperr.GetKind(foreignErr))
	}
	if foreignErr.Error() != missingErr.Error() {
		t.Fatalf("foreign and missing errors differ: %q vs %q", foreignErr, missingErr)
	}
}

func TestDeleteTwiceReturnsNotFound(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, twoItemRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID, owner); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	err = svc.Delete(ctx, created.ID, owner)
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("second Delete kind = %v, want not found", apperr.GetKind(err))
	}
}

func TestSendRequiresCustomerEmail(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, twoItemRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Send(ctx, created.ID, owner)
	if apperr.GetKind(err) != apperr.KindBadRequest {
		t.Fatalf("Send without email kind = %v, want bad request", apperr.GetKind(err))
	}
}

func TestPublicViewHidesOwnerAndToken(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	owner := uuid.New()

	req := twoItemRequest()
	req.CustomerEmail = "buyer@example.com"
	created, err := svc.Create(ctx, owner, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	view, err := svc.PublicView(ctx, created.PublicToken)
	if err != nil {
		t.Fatalf("PublicView failed: %v", err)
	}
	if view.CustomerName != "Acme Corp" {
		t.Fatalf("CustomerName = %q", view.CustomerName)
	}
	if view.TotalCents != 2600 {
		t.Fatalf("TotalCents = %d, want 2600", view.TotalCents)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(view.Items))
	}

	_, err = svc.PublicView(ctx, "no-such-token")
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("unknown token kind = %v, want not found", apperr.GetKind(err))
	}
}

func TestCreateNormalizesPhone(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	owner := uuid.New()

	req := twoItemRequest()
	req.CustomerPhone = "(415) 555-2671"
	created, err := svc.Create(ctx, owner, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CustomerPhone != "+14155552671" {
		t.Fatalf("CustomerPhone = %q, want E.164 form", created.CustomerPhone)
	}
}
