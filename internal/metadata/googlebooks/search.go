package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/estanteapp/estante-server/internal/metadata"
)

// search queries /volumes with an intitle query built from the raw
// (un-normalized) title and shapes the first item into a partial record.
func (c *Client) search(ctx context.Context, title string) (metadata.Record, error) {
	params := url.Values{}
	params.Set("q", "intitle:"+title)
	params.Set("maxResults", "1")

	body, err := c.get(ctx, c.baseURL+"/volumes?"+params.Encode())
	if err != nil {
		return metadata.Record{}, fmt.Errorf("search: %w", err)
	}

	var resp volumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return metadata.Record{}, fmt.Errorf("parse search response: %w", err)
	}

	if len(resp.Items) == 0 {
		return metadata.Record{}, nil
	}
	info := resp.Items[0].VolumeInfo

	rec := metadata.Record{
		Genres:   metadata.FormatGenres(info.Categories),
		Synopsis: info.Description,
	}
	if info.PageCount > 0 {
		rec.Pages = strconv.Itoa(info.PageCount)
	}
	if info.ImageLinks != nil {
		rec.CoverURL = secureURL(info.ImageLinks.Thumbnail)
	}

	return rec, nil
}

// secureURL forces a thumbnail URL onto HTTPS.
func secureURL(u string) string {
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return "https://" + rest
	}
	return u
}
