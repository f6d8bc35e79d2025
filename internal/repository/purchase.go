package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tiendaverde/storefront/internal/domain/purchase"
)

const (
	createPurchaseSQL = `INSERT INTO compras (productos) VALUES ($1) RETURNING id, created_at`

	listPurchasesSQL = `SELECT id, productos, created_at FROM compras ORDER BY id`
)

var _ purchase.Repository = (*PurchaseRepository)(nil)

// PurchaseRepository implements purchase.Repository backed by PostgreSQL.
// Ids come from the table's sequence, which keeps them monotonic under
// concurrent checkouts without any read-modify-write of the ledger.
type PurchaseRepository struct {
	pool *pgxpool.Pool
}

// NewPurchaseRepository returns a PurchaseRepository that uses the given pool.
func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Create persists a new purchase and fills in the assigned id. The line
// items are serialized to JSON for storage in the JSONB column.
func (r *PurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	itemsJSON, err := json.Marshal(p.Productos)
	if err != nil {
		return fmt.Errorf("marshaling line items: %w", err)
	}

	row := r.pool.QueryRow(ctx, createPurchaseSQL, itemsJSON)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("creating purchase: %w", err)
	}
	return nil
}

// List returns every recorded purchase ordered by id.
func (r *PurchaseRepository) List(ctx context.Context) ([]purchase.Purchase, error) {
	rows, err := r.pool.Query(ctx, listPurchasesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	return pgx.CollectRows(rows, scanPurchase)
}

func scanPurchase(row pgx.CollectableRow) (purchase.Purchase, error) {
	var (
		p         purchase.Purchase
		itemsJSON []byte
	)
	if err := row.Scan(&p.ID, &itemsJSON, &p.CreatedAt); err != nil {
		return p, err
	}
	if err := json.Unmarshal(itemsJSON, &p.Productos); err != nil {
		return p, fmt.Errorf("unmarshaling line items of purchase %d: %w", p.ID, err)
	}
	return p, nil
}
