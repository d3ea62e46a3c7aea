package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// HTTPClient reads product data from the catalog service's REST API. A
// circuit breaker keeps a dead catalog from stalling every add-to-cart call.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*Product]
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	settings := gobreaker.Settings{
		Name:    "catalog",
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// a missing product is an answer, not a catalog outage
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}

	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[*Product](settings),
	}
}

func (c *HTTPClient) Product(ctx context.Context, productID int64) (*Product, error) {
	return c.breaker.Execute(func() (*Product, error) {
		return c.fetch(ctx, productID)
	})
}

func (c *HTTPClient) fetch(ctx context.Context, productID int64) (*Product, error) {
	url := fmt.Sprintf("%s/api/v1/products/%d", c.baseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var p Product
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return nil, fmt.Errorf("decode catalog response: %w", err)
		}
		return &p, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}
}
