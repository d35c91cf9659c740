// Package googlebooks provides a client for the Google Books volumes API.
package googlebooks

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
	// DefaultBaseURL is the production Google Books endpoint.
	DefaultBaseURL = "https://www.googleapis.com/books/v1"

	searchTimeout = 10 * time.Second

	cacheSize = 100
)

// Client queries Google Books for book metadata. It complements the
// OpenLibrary client with page counts, synopses, categories, and cover
// thumbnails; it does not contribute titles or authors to a merge.
type Client struct {
	http    *http.Client
	baseURL string
	cache   *cache.LRU[metadata.Record]
	logger  *slog.Logger
}

// New creates a Google Books client. An empty baseURL selects the
// production endpoint; tests point it at a local server.
func New(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: searchTimeout},
		baseURL: baseURL,
		cache:   cache.New[metadata.Record](cacheSize),
		logger:  logger,
	}
}

// Lookup returns a partial metadata record for the given raw title.
// Failures of any kind are contained here and yield an empty record.
// Results are memoized per raw title.
func (c *Client) Lookup(ctx context.Context, title string) metadata.Record {
	if rec, ok := c.cache.Get(title); ok {
		return rec
	}

	rec, err := c.search(ctx, title)
	if err != nil {
		c.logger.Warn("googlebooks lookup failed",
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

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Estante/1.0")

	resp, err := c.http.Do(req)
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
