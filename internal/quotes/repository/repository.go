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

// One message for "missing" and "not yours"; owner-scoped queries make the
// two cases indistinguishable so foreign quote IDs cannot be probed.
const quoteNotFoundMsg = "quote not found or access denied"

const getQuoteQuery = `
	SELECT id, owner_id, customer_name, customer_email, customer_phone, total_cents, public_token, created_at, updated_at
	FROM quotes WHERE id = $1 AND owner_id = $2`

const listQuotesQuery = `
	SELECT id, owner_id, customer_name, customer_email, customer_phone, total_cents, public_token, created_at, updated_at
	FROM quotes WHERE owner_id = $1
	ORDER BY updated_at DESC`

const getQuoteItemsQuery = `
	SELECT i.id, i.quote_id, i.product_id, i.quantity, i.price_at_quote_cents
	FROM quote_items i
	JOIN quotes q ON q.id = i.quote_id
	WHERE i.quote_id = $1 AND q.owner_id = $2
	ORDER BY i.id`

const getResolvedItemsQuery = `
	SELECT i.id, i.quote_id, i.product_id, i.quantity, i.price_at_quote_cents,
		COALESCE(p.name, ''), COALESCE(p.unit_of_measure, '')
	FROM quote_items i
	JOIN quotes q ON q.id = i.quote_id
	LEFT JOIN products p ON p.id = i.product_id
	WHERE i.quote_id = $1 AND q.owner_id = $2
	ORDER BY i.id`

const getQuoteByTokenQuery = `
	SELECT id, owner_id, customer_name, customer_email, customer_phone, total_cents, public_token, created_at, updated_at
	FROM quotes WHERE public_token = $1`

// PgRepository provides Postgres-backed quote persistence.
type PgRepository struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// CreateWithItems inserts a quote and its line items in a single transaction.
func (r *PgRepository) CreateWithItems(ctx context.Context, quote *Quote, items []QuoteItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	quoteQuery := `
		INSERT INTO quotes (id, owner_id, customer_name, customer_email, customer_phone, total_cents, public_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := tx.Exec(ctx, quoteQuery,
		quote.ID, quote.OwnerID, quote.CustomerName, quote.CustomerEmail, quote.CustomerPhone,
		quote.TotalCents, quote.PublicToken, quote.CreatedAt, quote.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	if err := insertItems(ctx, tx, items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateWithItems replaces the quote's scalar fields and its entire item set
// in one transaction. The old items are deleted, the header updated, the new
// items inserted; any failure rolls the whole sequence back.
func (r *PgRepository) UpdateWithItems(ctx context.Context, quote *Quote, items []QuoteItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM quote_items WHERE quote_id = $1`, quote.ID); err != nil {
		return fmt.Errorf("failed to delete old quote items: %w", err)
	}

	updateQuery := `
		UPDATE quotes SET
			customer_name = $3, customer_email = $4, customer_phone = $5,
			total_cents = $6, updated_at = $7
		WHERE id = $1 AND owner_id = $2`

	result, err := tx.Exec(ctx, updateQuery,
		quote.ID, quote.OwnerID, quote.CustomerName, quote.CustomerEmail, quote.CustomerPhone,
		quote.TotalCents, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}

	if err := insertItems(ctx, tx, items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, items []QuoteItem) error {
	itemQuery := `
		INSERT INTO quote_items (id, quote_id, product_id, quantity, price_at_quote_cents)
		VALUES ($1, $2, $3, $4, $5)`

	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.QuoteID, item.ProductID, item.Quantity, item.PriceAtQuoteCents,
		); err != nil {
			return fmt.Errorf("failed to insert quote item: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a quote header scoped to its owner.
func (r *PgRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*Quote, error) {
	var q Quote
	err := r.pool.QueryRow(ctx, getQuoteQuery, id, ownerID).Scan(
		&q.ID, &q.OwnerID, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
		&q.TotalCents, &q.PublicToken, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(quoteNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return &q, nil
}

// GetItemsByQuoteID retrieves all items for an owned quote.
func (r *PgRepository) GetItemsByQuoteID(ctx context.Context, quoteID, ownerID uuid.UUID) ([]QuoteItem, error) {
	rows, err := r.pool.Query(ctx, getQuoteItemsQuery, quoteID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote items: %w", err)
	}
	defer rows.Close()

	var items []QuoteItem
	for rows.Next() {
		var it QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.ProductID, &it.Quantity, &it.PriceAtQuoteCents); err != nil {
			return nil, fmt.Errorf("failed to scan quote item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote items: %w", err)
	}
	return items, nil
}

// GetResolvedItems retrieves line items joined with product display fields.
// The join is LEFT so items survive later product deletion.
func (r *PgRepository) GetResolvedItems(ctx context.Context, quoteID, ownerID uuid.UUID) ([]ResolvedItem, error) {
	rows, err := r.pool.Query(ctx, getResolvedItemsQuery, quoteID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query resolved quote items: %w", err)
	}
	defer rows.Close()

	var items []ResolvedItem
	for rows.Next() {
		var it ResolvedItem
		if err := rows.Scan(
			&it.ID, &it.QuoteID, &it.ProductID, &it.Quantity, &it.PriceAtQuoteCents,
			&it.ProductName, &it.UnitOfMeasure,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resolved quote item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resolved quote items: %w", err)
	}
	return items, nil
}

// ListByOwner retrieves all quote headers belonging to a user.
func (r *PgRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Quote, error) {
	rows, err := r.pool.Query(ctx, listQuotesQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(
			&q.ID, &q.OwnerID, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
			&q.TotalCents, &q.PublicToken, &q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}
	return quotes, nil
}

// Delete removes a quote; quote_items cascade via foreign key.
func (r *PgRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(quoteNotFoundMsg)
	}
	return nil
}

// GetByPublicToken retrieves a quote header by its share token.
func (r *PgRepository) GetByPublicToken(ctx context.Context, token string) (*Quote, error) {
	var q Quote
	err := r.pool.QueryRow(ctx, getQuoteByTokenQuery, token).Scan(
		&q.ID, &q.OwnerID, &q.CustomerName, &q.CustomerEmail, &q.CustomerPhone,
		&q.TotalCents, &q.PublicToken, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("quote not found")
		}
		return nil, fmt.Errorf("failed to get quote by token: %w", err)
	}
	return &q, nil
}

// Compile-time check that PgRepository implements Repository.
var _ Repository = (*PgRepository)(nil)
