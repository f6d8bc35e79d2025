package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tiendaverde/storefront/internal/domain/offer"
	"github.com/tiendaverde/storefront/internal/translate"
)

// defaultConcurrency bounds the number of products enriched in parallel.
const defaultConcurrency = 8

// Source fetches the raw product list from the external catalog feed.
type Source interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// Service is the catalog enrichment pipeline: it pulls the raw feed, runs
// every product through the translator and the pricing engine, and returns
// the enriched list in feed order.
type Service struct {
	source      Source
	offers      offer.Repository
	translator  translate.Translator
	lg          *zap.Logger
	concurrency int
}

// NewService creates the enrichment pipeline with the given collaborators.
func NewService(source Source, offers offer.Repository, translator translate.Translator, lg *zap.Logger) *Service {
	return &Service{
		source:      source,
		offers:      offers,
		translator:  translator,
		lg:          lg,
		concurrency: defaultConcurrency,
	}
}

// Enrich fetches the catalog, loads the offer table, and enriches every
// product. Products are processed concurrently but the output order always
// matches the feed order.
//
// Translation is best-effort: a failed call leaves the field untranslated
// and is logged, it never fails the whole response. Feed or offer-store
// failures abort with an error.
func (s *Service) Enrich(ctx context.Context) ([]EnrichedProduct, error) {
	products, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch catalog")
	}

	offers, err := s.offers.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load offers")
	}

	enriched := make([]EnrichedProduct, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range products {
		g.Go(func() error {
			translated := s.translateProduct(gctx, p)
			enriched[i] = ApplyOffer(translated, offers)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "enrich catalog")
	}

	return enriched, nil
}

// ResolvePrices returns the current discounted price for each requested
// product id, skipping translation entirely. Ids absent from the feed are
// absent from the result.
func (s *Service) ResolvePrices(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	products, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fetch catalog")
	}

	offers, err := s.offers.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load offers")
	}

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	prices := make(map[int64]decimal.Decimal, len(ids))
	for _, p := range products {
		if _, ok := wanted[p.ID]; !ok {
			continue
		}
		prices[p.ID] = ApplyOffer(p, offers).PrecioDescuento
	}
	return prices, nil
}

// translateProduct translates the title, description, and category of a
// product, falling back to the original text per field on failure.
func (s *Service) translateProduct(ctx context.Context, p Product) Product {
	p.Title = s.translateField(ctx, p.ID, "title", p.Title)
	p.Description = s.translateField(ctx, p.ID, "description", p.Description)
	p.Category = s.translateField(ctx, p.ID, "category", p.Category)
	return p
}

func (s *Service) translateField(ctx context.Context, id int64, field, text string) string {
	out, err := s.translator.Translate(ctx, text)
	if err != nil {
		s.lg.Warn("Translation failed, keeping original text",
			zap.Int64("product_id", id),
			zap.String("field", field),
			zap.Error(err),
		)
		return text
	}
	return out
}
