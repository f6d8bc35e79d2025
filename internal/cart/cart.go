// Package cart provides the shopping cart capability: an explicit store
// with get/set/clear semantics keyed by an opaque cart id, mirroring the
// cart the browser client keeps in local storage.
package cart

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when no cart exists for the given id.
var ErrNotFound = errors.New("cart not found")

// Item is one cart entry: the enriched-product snapshot the client saw plus
// the chosen quantity. Prices are snapshots for display only; checkout
// re-resolves them server-side.
type Item struct {
	ProductID       int64   `json:"id"`
	Title           string  `json:"title"`
	Image           string  `json:"image"`
	PrecioOriginal  float64 `json:"precioOriginal"`
	PrecioDescuento float64 `json:"precioDescuento"`
	EnOferta        bool    `json:"enOferta"`
	Quantity        int     `json:"quantity"`
}

// Store holds carts between page views. Implementations decide retention;
// a cart may expire at any time and callers must tolerate ErrNotFound.
type Store interface {
	Get(ctx context.Context, cartID string) ([]Item, error)
	Set(ctx context.Context, cartID string, items []Item) error
	Clear(ctx context.Context, cartID string) error
}
