package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Quote is the persistence model for a quote header. Total is derived from
// the items by the service; the repository stores it verbatim.
type Quote struct {
	ID            uuid.UUID `db:"id"`
	OwnerID       uuid.UUID `db:"owner_id"`
	CustomerName  string    `db:"customer_name"`
	CustomerEmail *string   `db:"customer_email"`
	CustomerPhone *string   `db:"customer_phone"`
	TotalCents    int64     `db:"total_cents"`
	PublicToken   string    `db:"public_token"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// QuoteItem is the persistence model for a quote line item. Items are owned
// by their quote and never outlive it.
type QuoteItem struct {
	ID                uuid.UUID `db:"id"`
	QuoteID           uuid.UUID `db:"quote_id"`
	ProductID         uuid.UUID `db:"product_id"`
	Quantity          int64     `db:"quantity"`
	PriceAtQuoteCents int64     `db:"price_at_quote_cents"`
}

// ResolvedItem is a line item joined with its product's display fields, for
// document export and detail views.
type ResolvedItem struct {
	QuoteItem
	ProductName   string `db:"product_name"`
	UnitOfMeasure string `db:"unit_of_measure"`
}

// Repository defines quote persistence. Every operation except
// GetByPublicToken is scoped by the owning user, and a missing row is
// indistinguishable from a foreign one. The interface allows the workflow to
// run against an in-memory fake in tests.
type Repository interface {
	// CreateWithItems inserts a quote and its line items in one transaction.
	CreateWithItems(ctx context.Context, quote *Quote, items []QuoteItem) error

	// GetByID retrieves a quote header scoped to its owner.
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*Quote, error)

	// GetItemsByQuoteID retrieves the line items of an owned quote.
	GetItemsByQuoteID(ctx context.Context, quoteID, ownerID uuid.UUID) ([]QuoteItem, error)

	// GetResolvedItems retrieves line items joined with product fields.
	GetResolvedItems(ctx context.Context, quoteID, ownerID uuid.UUID) ([]ResolvedItem, error)

	// ListByOwner retrieves all quote headers belonging to a user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Quote, error)

	// UpdateWithItems replaces a quote's scalar fields and its entire item
	// set in one transaction: existing items are deleted, the header is
	// updated, the new items inserted. Partial outcomes are never visible.
	UpdateWithItems(ctx context.Context, quote *Quote, items []QuoteItem) error

	// Delete removes a quote; items cascade.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// GetByPublicToken retrieves a quote header by its share token.
	GetByPublicToken(ctx context.Context, token string) (*Quote, error)
}
