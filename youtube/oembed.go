package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Metadata is the display-only video card data. Fetch failure here is a
// warning, never a pipeline failure.
type Metadata struct {
	Title        string `json:"title"`
	Author       string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// FetchMetadata queries the oEmbed endpoint for the video's title, author
// and thumbnail.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (*Metadata, error) {
	query := url.Values{}
	query.Set("url", defaultBaseURL+"/watch?v="+videoID)
	query.Set("format", "json")

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/oembed", query, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed returned status %d", resp.StatusCode)
	}

	var meta Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decoding oembed response: %w", err)
	}
	return &meta, nil
}
