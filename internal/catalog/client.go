// Package catalog consumes the remote product catalog and caches what
// it has seen: the last-fetched listing in memory, product details in
// the durable store.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"shopfront/internal/domain"
)

var ErrNotFound = errors.New("product not found")

type response struct {
	status int
	body   []byte
}

// Client talks to the catalog read API. Requests go through a circuit
// breaker so a down catalog fails fast instead of stacking timeouts.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[response]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name:    "catalog",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[response](settings),
	}
}

// List fetches the full product collection.
func (c *Client) List(ctx context.Context) ([]domain.Product, error) {
	resp, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := json.Unmarshal(resp.body, &products); err != nil {
		return nil, fmt.Errorf("failed to decode product list: %w", err)
	}
	return products, nil
}

// Get fetches a single product record.
func (c *Client) Get(ctx context.Context, id int64) (*domain.Product, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	var product domain.Product
	if err := json.Unmarshal(resp.body, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	if product.ID == 0 {
		// The upstream API answers some unknown ids with an empty body
		// and status 200.
		return nil, ErrNotFound
	}
	return &product, nil
}

// get runs one request through the breaker. A 404 is a valid answer
// and must not count as a breaker failure; transport errors and 5xx do.
func (c *Client) get(ctx context.Context, path string) (response, error) {
	return c.breaker.Execute(func() (response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return response{}, fmt.Errorf("failed to build request: %w", err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return response{}, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return response{}, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return response{}, fmt.Errorf("failed to read response: %w", err)
		}
		return response{status: resp.StatusCode, body: body}, nil
	})
}
