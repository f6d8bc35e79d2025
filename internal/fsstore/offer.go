// Package fsstore implements the durable stores on plain JSON files, wire
// compatible with the ofertas.json / compras JSON files of the original
// deployment. It is selected when no database is configured.
package fsstore

import (
	"context"
	"encoding/json"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/tiendaverde/storefront/internal/domain/offer"
)

var _ offer.Repository = (*OfferStore)(nil)

// OfferStore reads the offer table from a JSON file. The file is re-read on
// every call so edits take effect without a restart.
type OfferStore struct {
	path string
}

// NewOfferStore creates an OfferStore over the given file path.
func NewOfferStore(path string) *OfferStore {
	return &OfferStore{path: path}
}

type offerJSON struct {
	ID        int64   `json:"id"`
	Descuento float64 `json:"descuento"`
}

// List returns the offers in file order.
func (s *OfferStore) List(_ context.Context) ([]offer.Offer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "read offer file")
	}

	var raw []offerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode offer file")
	}

	offers := make([]offer.Offer, len(raw))
	for i, o := range raw {
		offers[i] = offer.Offer{
			ID:        o.ID,
			Descuento: decimal.NewFromFloat(o.Descuento),
		}
	}
	return offers, nil
}
