// Package purchase implements the purchase ledger: validation of checkout
// submissions and durable recording of purchases with stable ids.
package purchase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one product/quantity/price tuple within a purchase.
type LineItem struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Purchase is one completed checkout. Ids are 1-based and strictly
// monotonic; the store allocates them, never the caller.
type Purchase struct {
	ID        int64      `json:"id"`
	Productos []LineItem `json:"productos"`
	CreatedAt time.Time  `json:"-"`
}

// Repository persists purchases. Create assigns the purchase id and fills
// it in on the passed value before returning.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	List(ctx context.Context) ([]Purchase, error)
}
