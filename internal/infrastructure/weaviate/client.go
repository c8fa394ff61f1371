// Package weaviate implements the production search backend: an HTTP client
// for the thin wrapper service that fronts the hosted Weaviate cluster.
// The wrapper owns collection schema, embedding and generative models; this
// client only speaks its request/response contract.
package weaviate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/kitanog/weaviate-demo/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with the search wrapper service
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new search wrapper client
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// The hosted tier allows ~10 requests per second per key
	limiter := rate.NewLimiter(rate.Limit(10), 20)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the sleep duration before retry n (1-based)
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<(attempt-1)) * 500 * time.Millisecond
}

// doJSON executes one POST with the wrapper's auth header and decodes the
// response body into out when the status is 200.
func (c *Client) doJSON(ctx context.Context, path string, payload any, out any) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "catalog-search/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if c.debug {
		log.Printf("[Weaviate] POST %s -> %d (%d bytes)", path, resp.StatusCode, len(raw))
	}

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("wrapper returned status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// IndexCatalog replaces the remote collection with the given products
func (c *Client) IndexCatalog(ctx context.Context, products []domain.Product) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	var result indexResponse
	if _, err := c.doJSON(ctx, "/products", products, &result); err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("indexing rejected: %s", result.Message)
	}

	log.Printf("[Weaviate] Indexed %d products", result.ProductsAdded)
	return nil
}

// Search executes one query in the requested mode.
// Transient wrapper failures (5xx, transport errors) are retried up to
// three times with exponential backoff.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	path := "/search/" + req.Mode.String()
	payload := searchPayload{
		Query: req.Query,
		Limit: req.Limit,
		Alpha: req.Alpha,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		var result searchResponse
		status, err := c.doJSON(ctx, path, payload, &result)
		if err != nil {
			if status >= 400 && status < 500 {
				// Client errors do not recover on retry
				return nil, err
			}
			log.Printf("[Weaviate] Search error (attempt %d): %v", attempt, err)
			lastErr = err
			select {
			case <-time.After(exponentialBackoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			continue
		}

		if !result.Success {
			return nil, fmt.Errorf("search rejected: %s", result.Message)
		}
		return mapResults(req.Mode, result.Results), nil
	}

	return nil, lastErr
}

// Ready probes the wrapper's health endpoint
func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
	return nil
}
