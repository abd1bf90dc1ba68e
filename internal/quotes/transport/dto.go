package transport

import (
	"time"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// QuoteItemRequest is the input for a single line item. The price is the
// caller's snapshot of the product price at quote time, in integer cents; it
// is deliberately independent of the product's current sell price.
type QuoteItemRequest struct {
	ProductID         uuid.UUID `json:"productId" validate:"required"`
	Quantity          int64     `json:"quantity" validate:"min=1"`
	PriceAtQuoteCents int64     `json:"priceAtQuoteCents" validate:"min=0"`
}

// CreateQuoteRequest is the request body for creating a new quote.
type CreateQuoteRequest struct {
	CustomerName  string             `json:"customerName" validate:"required,min=1,max=200"`
	CustomerEmail string             `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string             `json:"customerPhone" validate:"omitempty,max=30"`
	Items         []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateQuoteRequest is the request body for updating a quote. The caller
// supplies the complete desired item set; the stored set is replaced, not
// patched.
type UpdateQuoteRequest struct {
	CustomerName  string             `json:"customerName" validate:"required,min=1,max=200"`
	CustomerEmail string             `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string             `json:"customerPhone" validate:"omitempty,max=30"`
	Items         []QuoteItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// QuoteItemResponse is the response for a single line item. ProductName and
// UnitOfMeasure are joined from the catalog when the quote is resolved; they
// are empty for listings.
type QuoteItemResponse struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"productId"`
	ProductName       string    `json:"productName,omitempty"`
	UnitOfMeasure     string    `json:"unitOfMeasure,omitempty"`
	Quantity          int64     `json:"quantity"`
	PriceAtQuoteCents int64     `json:"priceAtQuoteCents"`
	LineTotalCents    int64     `json:"lineTotalCents"`
}

// QuoteResponse is the owner's view of a quote.
type QuoteResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail,omitempty"`
	CustomerPhone string              `json:"customerPhone,omitempty"`
	TotalCents    int64               `json:"totalCents"`
	PublicToken   string              `json:"publicToken"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Items         []QuoteItemResponse `json:"items,omitempty"`
}

// QuoteListResponse wraps a quote listing.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Total int             `json:"total"`
}

// PublicQuoteResponse is the customer-facing view reached through the share
// token. It never exposes the owner or the token itself.
type PublicQuoteResponse struct {
	CustomerName string              `json:"customerName"`
	TotalCents   int64               `json:"totalCents"`
	CreatedAt    time.Time           `json:"createdAt"`
	Items        []QuoteItemResponse `json:"items"`
}
