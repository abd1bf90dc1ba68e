package transport

import (
	"time"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateProductRequest is the request body for creating a product.
// Prices are integer cents; unitOfMeasure must be one of the catalog's
// recognized codes (enforced by the "uom" validation registered by the module).
type CreateProductRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	SellPriceCents int64   `json:"sellPriceCents" validate:"min=0"`
	BuyPriceCents  int64   `json:"buyPriceCents" validate:"min=0"`
	UnitOfMeasure  string  `json:"unitOfMeasure" validate:"required,uom"`
}

// UpdateProductRequest is the request body for updating a product.
// The caller supplies the full desired field set.
type UpdateProductRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	SellPriceCents int64   `json:"sellPriceCents" validate:"min=0"`
	BuyPriceCents  int64   `json:"buyPriceCents" validate:"min=0"`
	UnitOfMeasure  string  `json:"unitOfMeasure" validate:"required,uom"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// ProductResponse is the public view of a product.
type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description,omitempty"`
	SellPriceCents int64     `json:"sellPriceCents"`
	BuyPriceCents  int64     `json:"buyPriceCents"`
	UnitOfMeasure  string    `json:"unitOfMeasure"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProductListResponse wraps a product listing.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// UnitListResponse lists the recognized unit-of-measure codes.
type UnitListResponse struct {
	Units []string `json:"units"`
}
