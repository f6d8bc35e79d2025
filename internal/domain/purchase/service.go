package purchase

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for checkout validation.
var (
	ErrEmptyItems    = errors.New("productos required")
	ErrNegativePrice = errors.New("price must not be negative")
)

// InvalidQuantityError indicates a line item with a non-positive quantity.
type InvalidQuantityError struct {
	ProductID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %d", e.ProductID)
}

// UnknownProductError indicates a line item referencing a product that does
// not exist in the current catalog.
type UnknownProductError struct {
	ProductID int64
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// PriceResolver resolves the current discounted price for each of the given
// product ids from catalog and offer state.
type PriceResolver interface {
	ResolvePrices(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}

// Service validates checkout submissions and records them in the ledger.
//
// When a PriceResolver is configured, submitted prices are discarded and
// re-derived server-side; a line item with an unknown product id is
// rejected. With a nil resolver the service runs in compatibility mode and
// trusts client prices verbatim, only rejecting negative values.
type Service struct {
	ledger Repository
	prices PriceResolver
}

// NewService creates a purchase Service. resolver may be nil.
func NewService(ledger Repository, resolver PriceResolver) *Service {
	return &Service{ledger: ledger, prices: resolver}
}

// Record validates the line items, resolves prices, and appends exactly one
// purchase to the ledger. The returned purchase carries the assigned id.
func (s *Service) Record(ctx context.Context, items []LineItem) (*Purchase, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: item.ID}
		}
	}

	if s.prices != nil {
		if err := s.resolvePrices(ctx, items); err != nil {
			return nil, err
		}
	} else {
		for _, item := range items {
			if item.Price.IsNegative() {
				return nil, ErrNegativePrice
			}
		}
	}

	p := &Purchase{Productos: items}
	if err := s.ledger.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "append purchase")
	}
	return p, nil
}

// resolvePrices overwrites each item's price with the current server-side
// price for its product.
func (s *Service) resolvePrices(ctx context.Context, items []LineItem) error {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	current, err := s.prices.ResolvePrices(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "resolve prices")
	}

	for i := range items {
		price, ok := current[items[i].ID]
		if !ok {
			return &UnknownProductError{ProductID: items[i].ID}
		}
		items[i].Price = price
	}
	return nil
}
