package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tiendaverde/storefront/internal/domain/offer"
)

const (
	listOffersSQL = `SELECT product_id, descuento FROM ofertas ORDER BY position`

	replaceOffersSQL = `TRUNCATE ofertas`
	insertOfferSQL   = `INSERT INTO ofertas (position, product_id, descuento) VALUES ($1, $2, $3)`
)

var _ offer.Repository = (*OfferRepository)(nil)

// OfferRepository implements offer.Repository backed by PostgreSQL. The
// position column keeps the entries in their original file order so that
// first-match lookup semantics survive the import.
type OfferRepository struct {
	pool *pgxpool.Pool
}

// NewOfferRepository returns an OfferRepository that uses the given pool.
func NewOfferRepository(pool *pgxpool.Pool) *OfferRepository {
	return &OfferRepository{pool: pool}
}

// List returns the full offer table in stored order.
func (r *OfferRepository) List(ctx context.Context) ([]offer.Offer, error) {
	rows, err := r.pool.Query(ctx, listOffersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing offers: %w", err)
	}
	return pgx.CollectRows(rows, scanOffer)
}

// Replace swaps the whole offer table for the given sequence in one
// transaction. Used by the seed tool.
func (r *OfferRepository) Replace(ctx context.Context, offers []offer.Offer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace offers: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, replaceOffersSQL); err != nil {
		return fmt.Errorf("truncate offers: %w", err)
	}
	for i, o := range offers {
		if _, err := tx.Exec(ctx, insertOfferSQL, int64(i+1), o.ID, o.Descuento); err != nil {
			return fmt.Errorf("insert offer %d: %w", o.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace offers: %w", err)
	}
	return nil
}

func scanOffer(row pgx.CollectableRow) (offer.Offer, error) {
	var (
		o         offer.Offer
		descuento decimal.Decimal
	)
	err := row.Scan(&o.ID, &descuento)
	o.Descuento = descuento
	return o, err
}
