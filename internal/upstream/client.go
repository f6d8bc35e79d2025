// Package upstream fetches the raw product catalog from the external feed.
package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/tiendaverde/storefront/internal/domain/catalog"
)

// DefaultURL is the public fakestore products feed.
const DefaultURL = "https://fakestoreapi.com/products"

// Config configures the feed client.
type Config struct {
	// URL of the products feed. Defaults to DefaultURL.
	URL string
	// Timeout bounds the whole fetch, connection included. Defaults to 15s.
	Timeout time.Duration
}

// Client retrieves the product list over HTTP. A single call, no retries.
type Client struct {
	url    string
	client *http.Client
}

var _ catalog.Source = (*Client)(nil)

// NewClient creates a feed client.
func NewClient(cfg Config) *Client {
	u := cfg.URL
	if u == "" {
		u = DefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:    u,
		client: &http.Client{Timeout: timeout},
	}
}

// productJSON mirrors the feed's wire schema.
type productJSON struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// Fetch retrieves the full product list in feed order.
func (c *Client) Fetch(ctx context.Context) ([]catalog.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("feed returned status %d", resp.StatusCode)
	}

	var raw []productJSON
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	products := make([]catalog.Product, len(raw))
	for i, p := range raw {
		products[i] = catalog.Product{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Category:    p.Category,
			Price:       decimal.NewFromFloat(p.Price),
			Image:       p.Image,
		}
	}
	return products, nil
}
