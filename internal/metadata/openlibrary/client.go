// Package openlibrary provides a client for the OpenLibrary search API.
package openlibrary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/estanteapp/estante-server/internal/cache"
	"github.com/estanteapp/estante-server/internal/metadata"
)

const (
	// DefaultBaseURL is the production OpenLibrary endpoint.
	DefaultBaseURL = "https://openlibrary.org"

	// coversBaseURL is the fixed image-service template host.
	coversBaseURL = "https://covers.openlibrary.org"

	// searchTimeout bounds the primary search call; workTimeout bounds
	// the secondary description fetch. A timeout degrades the lookup to
	// an empty result, it is never retried.
	searchTimeout = 10 * time.Second
	workTimeout   = 5 * time.Second

	cacheSize = 100
)

// Client queries OpenLibrary for book metadata.
type Client struct {
	http     *http.Client
	workHTTP *http.Client
	baseURL  string
	cache    *cache.LRU[metadata.Record]
	logger   *slog.Logger
}

// New creates an OpenLibrary client. An empty baseURL selects the
// production endpoint; tests point it at a local server.
func New(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:     &http.Client{Timeout: searchTimeout},
		workHTTP: &http.Client{Timeout: workTimeout},
		baseURL:  baseURL,
		cache:    cache.New[metadata.Record](cacheSize),
		logger:   logger,
	}
}

// Lookup returns a partial metadata record for the given raw title.
// Failures of any kind (network, timeout, malformed payload) are contained
// here and yield an empty record. Results are memoized per raw title.
func (c *Client) Lookup(ctx context.Context, title string) metadata.Record {
	if rec, ok := c.cache.Get(title); ok {
		return rec
	}

	rec, err := c.search(ctx, title)
	if err != nil {
		c.logger.Warn("openlibrary lookup failed",
			"title", title,
			"error", err,
		)
		rec = metadata.Record{}
	}

	c.cache.Add(title, rec)
	return rec
}

// ClearCache drops all memoized lookups.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

// get issues a GET request with standard headers and returns the body.
func (c *Client) get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Estante/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
