package repository

import (
	"context"
	"errors"
	"fmt"

	"quotedesk/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The same message covers "does not exist" and "exists but is not yours";
// owner-scoped queries make the two cases indistinguishable.
const productNotFoundMsg = "product not found or access denied"

const getProductQuery = `
	SELECT id, owner_id, name, description, sell_price_cents, buy_price_cents, unit_of_measure, created_at
	FROM products WHERE id = $1 AND owner_id = $2`

const listProductsQuery = `
	SELECT id, owner_id, name, description, sell_price_cents, buy_price_cents, unit_of_measure, created_at
	FROM products WHERE owner_id = $1
	ORDER BY created_at DESC`

// PgRepository provides Postgres-backed catalog persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Create inserts a product.
func (r *PgRepository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (id, owner_id, name, description, sell_price_cents, buy_price_cents, unit_of_measure, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.pool.Exec(ctx, query,
		product.ID, product.OwnerID, product.Name, product.Description,
		product.SellPriceCents, product.BuyPriceCents, product.UnitOfMeasure, product.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetByID retrieves a product scoped to its owner.
func (r *PgRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx, getProductQuery, id, ownerID).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description,
		&p.SellPriceCents, &p.BuyPriceCents, &p.UnitOfMeasure, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(productNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

// ListByOwner retrieves all products belonging to a user.
func (r *PgRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Product, error) {
	rows, err := r.pool.Query(ctx, listProductsQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Description,
			&p.SellPriceCents, &p.BuyPriceCents, &p.UnitOfMeasure, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// Update replaces a product's mutable fields, scoped to its owner.
func (r *PgRepository) Update(ctx context.Context, params UpdateProductParams) error {
	query := `
		UPDATE products SET
			name = $3, description = $4, sell_price_cents = $5, buy_price_cents = $6, unit_of_measure = $7
		WHERE id = $1 AND owner_id = $2`

	result, err := r.pool.Exec(ctx, query,
		params.ID, params.OwnerID, params.Name, params.Description,
		params.SellPriceCents, params.BuyPriceCents, params.UnitOfMeasure,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMsg)
	}
	return nil
}

// Delete removes a product, scoped to its owner.
func (r *PgRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMsg)
	}
	return nil
}

// Compile-time check that PgRepository implements Repository.
var _ Repository = (*PgRepository)(nil)
