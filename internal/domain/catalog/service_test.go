package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tiendaverde/storefront/internal/domain/offer"
)

// --- Mock implementations ---

type mockSource struct {
	products []Product
	err      error
}

func (m *mockSource) Fetch(_ context.Context) ([]Product, error) {
	return m.products, m.err
}

type mockOfferRepo struct {
	offers []offer.Offer
	err    error
}

func (m *mockOfferRepo) List(_ context.Context) ([]offer.Offer, error) {
	return m.offers, m.err
}

// mockTranslator uppercases text so tests can tell translated fields apart.
// failOn makes specific inputs fail.
type mockTranslator struct {
	failOn map[string]struct{}
}

func (m *mockTranslator) Translate(_ context.Context, text string) (string, error) {
	if _, ok := m.failOn[text]; ok {
		return "", errors.New("translator unavailable")
	}
	return strings.ToUpper(text), nil
}

// --- Helpers ---

func newTestService(source *mockSource, offers *mockOfferRepo, tr *mockTranslator) *Service {
	return NewService(source, offers, tr, zap.NewNop())
}

func feedProduct(id int64, price float64) Product {
	return Product{
		ID:          id,
		Title:       fmt.Sprintf("product %d", id),
		Description: fmt.Sprintf("description %d", id),
		Category:    "electronics",
		Price:       decimal.NewFromFloat(price),
		Image:       fmt.Sprintf("https://img.example/%d.jpg", id),
	}
}

// --- Tests ---

func TestEnrich_AppliesOffersAndTranslation(t *testing.T) {
	source := &mockSource{products: []Product{feedProduct(1, 100)}}
	offers := &mockOfferRepo{offers: []offer.Offer{newOffer(1, 20)}}

	svc := newTestService(source, offers, &mockTranslator{})

	enriched, err := svc.Enrich(context.Background())
	require.NoError(t, err)
	require.Len(t, enriched, 1)

	p := enriched[0]
	assert.Equal(t, "PRODUCT 1", p.Title)
	assert.Equal(t, "DESCRIPTION 1", p.Description)
	assert.Equal(t, "ELECTRONICS", p.Category)
	assert.True(t, p.EnOferta)
	assert.True(t, p.PrecioOriginal.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.PrecioDescuento.Equal(decimal.NewFromInt(80)))
}

func TestEnrich_PreservesFeedOrder(t *testing.T) {
	for _, size := range []int{0, 1, 2, 7, 25} {
		t.Run(fmt.Sprintf("catalog size %d", size), func(t *testing.T) {
			products := make([]Product, size)
			for i := range products {
				products[i] = feedProduct(int64(i+1), float64(10*(i+1)))
			}
			svc := newTestService(&mockSource{products: products}, &mockOfferRepo{}, &mockTranslator{})

			enriched, err := svc.Enrich(context.Background())
			require.NoError(t, err)
			require.Len(t, enriched, size)

			for i, p := range enriched {
				assert.Equal(t, int64(i+1), p.ID, "output order must match feed order")
			}
		})
	}
}

func TestEnrich_TranslationFailureFallsBack(t *testing.T) {
	source := &mockSource{products: []Product{feedProduct(1, 100)}}
	tr := &mockTranslator{failOn: map[string]struct{}{
		"description 1": {},
	}}

	svc := newTestService(source, &mockOfferRepo{}, tr)

	enriched, err := svc.Enrich(context.Background())
	require.NoError(t, err, "translation failure must not abort the response")
	require.Len(t, enriched, 1)

	assert.Equal(t, "PRODUCT 1", enriched[0].Title)
	assert.Equal(t, "description 1", enriched[0].Description, "failed field keeps original text")
	assert.Equal(t, "ELECTRONICS", enriched[0].Category)
}

func TestEnrich_UpstreamFailure(t *testing.T) {
	fetchErr := errors.New("connection refused")
	svc := newTestService(&mockSource{err: fetchErr}, &mockOfferRepo{}, &mockTranslator{})

	_, err := svc.Enrich(context.Background())
	require.ErrorIs(t, err, fetchErr)
}

func TestEnrich_OfferStoreFailure(t *testing.T) {
	storeErr := errors.New("offer store unreadable")
	source := &mockSource{products: []Product{feedProduct(1, 100)}}
	svc := newTestService(source, &mockOfferRepo{err: storeErr}, &mockTranslator{})

	_, err := svc.Enrich(context.Background())
	require.ErrorIs(t, err, storeErr)
}

func TestResolvePrices(t *testing.T) {
	source := &mockSource{products: []Product{
		feedProduct(1, 100),
		feedProduct(2, 50),
	}}
	offers := &mockOfferRepo{offers: []offer.Offer{newOffer(1, 20)}}

	svc := newTestService(source, offers, &mockTranslator{})

	prices, err := svc.ResolvePrices(context.Background(), []int64{1, 2, 99})
	require.NoError(t, err)

	require.Len(t, prices, 2)
	assert.True(t, prices[1].Equal(decimal.NewFromInt(80)), "discounted price expected")
	assert.True(t, prices[2].Equal(decimal.NewFromInt(50)), "undiscounted products keep feed price")
	_, found := prices[99]
	assert.False(t, found, "unknown ids are absent from the result")
}
