// Package catalog holds the product model, the pricing engine, and the
// enrichment pipeline that merges the external feed with the offer table.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/tiendaverde/storefront/internal/domain/offer"
)

// Product is a raw catalog item as delivered by the external feed.
type Product struct {
	ID          int64
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	Image       string
}

// EnrichedProduct is a Product extended with derived pricing fields.
//
// Invariant: PrecioDescuento = PrecioOriginal * (1 - descuento/100) when an
// offer matched, otherwise PrecioDescuento = PrecioOriginal. PrecioOriginal
// always equals the feed price at enrichment time.
type EnrichedProduct struct {
	Product

	PrecioOriginal  decimal.Decimal
	PrecioDescuento decimal.Decimal
	EnOferta        bool
}

var hundred = decimal.NewFromInt(100)

// ApplyOffer derives the pricing fields for a single product. It scans the
// offer table in order and the first entry with a matching id wins. The
// function is pure: neither input is mutated and no validation is performed
// on price or discount values.
func ApplyOffer(p Product, offers []offer.Offer) EnrichedProduct {
	enriched := EnrichedProduct{
		Product:         p,
		PrecioOriginal:  p.Price,
		PrecioDescuento: p.Price,
	}

	for _, o := range offers {
		if o.ID != p.ID {
			continue
		}
		descuento := p.Price.Mul(o.Descuento).Div(hundred)
		enriched.PrecioDescuento = p.Price.Sub(descuento)
		enriched.EnOferta = true
		break
	}

	return enriched
}
