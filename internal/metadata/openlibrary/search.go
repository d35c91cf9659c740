package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/estanteapp/estante-server/internal/metadata"
	"github.com/estanteapp/estante-server/internal/normalize"
)

// search queries /search.json for the normalized title and shapes the
// first matching document into a partial record.
func (c *Client) search(ctx context.Context, title string) (metadata.Record, error) {
	params := url.Values{}
	params.Set("title", normalize.Query(title))
	params.Set("limit", "1")

	body, err := c.get(ctx, c.http, c.baseURL+"/search.json?"+params.Encode())
	if err != nil {
		return metadata.Record{}, fmt.Errorf("search: %w", err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return metadata.Record{}, fmt.Errorf("parse search response: %w", err)
	}

	if len(resp.Docs) == 0 {
		return metadata.Record{}, nil
	}
	doc := resp.Docs[0]

	subjects := doc.Subject
	if len(subjects) == 0 {
		subjects = doc.SubjectKeywords
	}

	rec := metadata.Record{
		Title:    doc.Title,
		Author:   strings.Join(doc.AuthorName, ", "),
		Genres:   metadata.FormatGenres(subjects),
		CoverURL: coverURL(doc.CoverEditionKey, doc.CoverI),
	}

	if pages := doc.NumberOfPagesMedian; pages > 0 {
		rec.Pages = strconv.Itoa(pages)
	} else if doc.NumberOfPages > 0 {
		rec.Pages = strconv.Itoa(doc.NumberOfPages)
	}

	if doc.Key != "" {
		rec.Synopsis = c.fetchDescription(ctx, doc.Key)
	}

	return rec, nil
}

// fetchDescription fetches the work record behind a search document for
// its long description, falling back to the first excerpt. Best effort:
// any failure just means no synopsis.
func (c *Client) fetchDescription(ctx context.Context, workKey string) string {
	body, err := c.get(ctx, c.workHTTP, c.baseURL+workKey+".json")
	if err != nil {
		c.logger.Debug("openlibrary work fetch failed",
			"key", workKey,
			"error", err,
		)
		return ""
	}

	var work workResponse
	if err := json.Unmarshal(body, &work); err != nil {
		c.logger.Debug("openlibrary work parse failed",
			"key", workKey,
			"error", err,
		)
		return ""
	}

	if work.Description != "" {
		return string(work.Description)
	}
	if len(work.Excerpts) > 0 {
		return work.Excerpts[0].Text
	}
	return ""
}
