// Package remote provides a search source backed by the lookup HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchSource = (*Client)(nil)

// HeaderRequestID carries the per-request correlation ID.
const HeaderRequestID = "X-Request-ID"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 4 << 20

// Config holds configuration for the remote client.
type Config struct {
	// BaseURL is the API base URL (default: http://localhost:8080/api).
	BaseURL string

	// RateLimit caps outgoing requests per second. Zero disables limiting.
	RateLimit float64

	// Timeout bounds each HTTP request. Zero means no client-side timeout;
	// cancellation then comes only from the request context.
	Timeout time.Duration

	// HTTPClient overrides the default client. Useful for testing.
	HTTPClient *http.Client
}

// Client queries the config and search endpoints of the lookup API.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// configResponse is the /config response format.
type configResponse struct {
	DataTypes   []domain.Category `json:"dataTypes"`
	DefaultType string            `json:"defaultType"`
}

// NewClient creates a new remote client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultAPIURL
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return c
}

// BaseURL returns the normalised API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Catalog fetches the category catalog from {base}/config.
func (c *Client) Catalog(ctx context.Context) (domain.Catalog, error) {
	body, err := c.get(ctx, "/config")
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: %w", domain.ErrConfigLoad, err)
	}

	var resp configResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Catalog{}, fmt.Errorf("%w: decode response: %w", domain.ErrConfigLoad, err)
	}

	catalog := domain.Catalog{
		Categories: resp.DataTypes,
		DefaultID:  resp.DefaultType,
	}
	if catalog.Categories == nil {
		catalog.Categories = []domain.Category{}
	}
	if catalog.DefaultID == "" {
		catalog.DefaultID = domain.CategoryCostCenter
	}
	return catalog, nil
}

// Search fetches {base}/search/{category}?q={query}.
// The body may be a bare list or an object with a data list; anything
// else yields an empty result rather than an error.
func (c *Client) Search(ctx context.Context, category, query string) ([]domain.ResultItem, error) {
	path := "/search/" + url.PathEscape(category) + "?q=" + url.QueryEscape(query)

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return ParseItems(body), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	logger.Debug("remote: GET %s -> %s in %s (request %s)",
		path, resp.Status, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", domain.ErrSearchFailed, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrSearchFailed, err)
	}
	return body, nil
}

// ParseItems decodes a search response body. It accepts a bare list of
// items or an object whose data field is that list.
func ParseItems(body []byte) []domain.ResultItem {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []domain.ResultItem{}
	}

	if body[0] == '[' {
		var items []domain.ResultItem
		if err := json.Unmarshal(body, &items); err != nil {
			logger.Debug("remote: malformed item list: %v", err)
			return []domain.ResultItem{}
		}
		return nonNil(items)
	}

	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		logger.Debug("remote: malformed response: %v", err)
		return []domain.ResultItem{}
	}

	var items []domain.ResultItem
	if len(wrapped.Data) == 0 || json.Unmarshal(wrapped.Data, &items) != nil {
		return []domain.ResultItem{}
	}
	return nonNil(items)
}

func nonNil(items []domain.ResultItem) []domain.ResultItem {
	if items == nil {
		return []domain.ResultItem{}
	}
	return items
}
