package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/media"
)

// directProvider queries an endpoint that resolves a TMDB ID straight to a
// single stream URL:
//
//	GET {url}?id={tmdb_id}
//	{"url": "https://cdn.example/movie.mp4"}
//
// The endpoint reports no quality tiers, so streams carry an "HD" label.
type directProvider struct {
	name   string
	url    string
	client *http.Client
}

var _ Provider = (*directProvider)(nil)

func newDirectProvider(cfg app.SourceConfig, client *http.Client) *directProvider {
	return &directProvider{
		name:   cfg.Name,
		url:    cfg.URL,
		client: client,
	}
}

func (p *directProvider) Name() string {
	return p.name
}

func (p *directProvider) Search(ctx context.Context, meta *media.Metadata) ([]media.Stream, error) {
	if meta.TMDBID == 0 {
		return nil, fmt.Errorf("%s requires a tmdb id", p.name)
	}

	params := url.Values{}
	params.Set("id", strconv.Itoa(meta.TMDBID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", p.name, resp.StatusCode)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", p.name, err)
	}

	if out.URL == "" {
		return nil, nil
	}

	return []media.Stream{{
		URL:       out.URL,
		MediaType: media.TypeFromURL(out.URL),
		Quality:   "HD",
		Source:    p.name,
	}}, nil
}
