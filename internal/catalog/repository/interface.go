package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product owned by a single user.
type Product struct {
	ID             uuid.UUID `db:"id"`
	OwnerID        uuid.UUID `db:"owner_id"`
	Name           string    `db:"name"`
	Description    *string   `db:"description"`
	SellPriceCents int64     `db:"sell_price_cents"`
	BuyPriceCents  int64     `db:"buy_price_cents"`
	UnitOfMeasure  string    `db:"unit_of_measure"`
	CreatedAt      time.Time `db:"created_at"`
}

// UpdateProductParams contains the replacement field values for a product.
type UpdateProductParams struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Description    *string
	SellPriceCents int64
	BuyPriceCents  int64
	UnitOfMeasure  string
}

// Repository defines catalog persistence. All reads and writes are scoped by
// the owning user; a missing row and a foreign row are indistinguishable to
// callers. The interface exists so the service can be exercised against an
// in-memory fake.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*Product, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Product, error)
	Update(ctx context.Context, params UpdateProductParams) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
