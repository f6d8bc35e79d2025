package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{URL: srv.URL})
}

func TestFetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Backpack", "description": "Fits laptops", "category": "men's clothing", "price": 109.95, "image": "https://img.example/1.jpg"},
			{"id": 2, "title": "T-Shirt", "description": "Slim fit", "category": "men's clothing", "price": 22.3, "image": "https://img.example/2.jpg"}
		]`))
	})

	products, err := client.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Backpack", products[0].Title)
	assert.Equal(t, "Fits laptops", products[0].Description)
	assert.Equal(t, "men's clothing", products[0].Category)
	assert.True(t, products[0].Price.Equal(decimal.NewFromFloat(109.95)))
	assert.Equal(t, "https://img.example/1.jpg", products[0].Image)

	assert.Equal(t, int64(2), products[1].ID, "feed order preserved")
}

func TestFetch_EmptyFeed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	products, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestFetch_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetch_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	})

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx)
	require.Error(t, err)
}
