// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"quotedesk/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserRegistered is published when a new user successfully registers.
type UserRegistered struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func (e UserRegistered) EventName() string { return "auth.user.registered" }

// =============================================================================
// Catalog Domain Events
// =============================================================================

// ProductChanged is published after a product is created, updated or deleted.
type ProductChanged struct {
	BaseEvent
	ProductID uuid.UUID `json:"productId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Change    string    `json:"change"` // "created", "updated", "deleted"
}

func (e ProductChanged) EventName() string { return "catalog.product.changed" }

// =============================================================================
// Quotes Domain Events
// =============================================================================

// QuoteCreated is published when a quote and its items are persisted.
type QuoteCreated struct {
	BaseEvent
	QuoteID uuid.UUID `json:"quoteId"`
	OwnerID uuid.UUID `json:"ownerId"`
}

func (e QuoteCreated) EventName() string { return "quotes.quote.created" }

// QuoteUpdated is published when a quote's scalar fields and item set are replaced.
type QuoteUpdated struct {
	BaseEvent
	QuoteID uuid.UUID `json:"quoteId"`
	OwnerID uuid.UUID `json:"ownerId"`
}

func (e QuoteUpdated) EventName() string { return "quotes.quote.updated" }

// QuoteDeleted is published when a quote and its items are removed.
type QuoteDeleted struct {
	BaseEvent
	QuoteID uuid.UUID `json:"quoteId"`
	OwnerID uuid.UUID `json:"ownerId"`
}

func (e QuoteDeleted) EventName() string { return "quotes.quote.deleted" }

// QuoteSent is published when the owner sends a quote to the customer.
type QuoteSent struct {
	BaseEvent
	QuoteID       uuid.UUID `json:"quoteId"`
	OwnerID       uuid.UUID `json:"ownerId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	PublicToken   string    `json:"publicToken"`
	TotalCents    int64     `json:"totalCents"`
}

func (e QuoteSent) EventName() string { return "quotes.quote.sent" }
