// Package offer defines the discount table applied on top of the raw catalog.
package offer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Offer is a percentage discount keyed to a product identifier.
//
// Offers form an ordered sequence and lookups use first-match semantics:
// when the table carries duplicate ids, only the first entry governs.
// Descuento is not range-checked; values outside [0,100] are applied as-is.
type Offer struct {
	ID        int64           `json:"id"`
	Descuento decimal.Decimal `json:"descuento"`
}

// Repository loads the offer table from durable storage. Implementations
// must preserve the stored order of the entries.
type Repository interface {
	List(ctx context.Context) ([]Offer, error)
}
