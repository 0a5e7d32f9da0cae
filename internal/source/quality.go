package source

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/media"
)

// preferredQualities orders streams from quality-map endpoints; anything
// outside this list sorts after it by name.
var preferredQualities = []string{"1080P", "720P", "480P", "360P"}

// qualityProvider queries an endpoint that answers a title search with a
// quality-to-URL map:
//
//	GET {url}?name={title}&fallback_year={year}
//	{"status": "ok", "streams": {"1080P": "...", "720P": "..."}}
type qualityProvider struct {
	name   string
	url    string
	client *http.Client
}

var _ Provider = (*qualityProvider)(nil)

func newQualityProvider(cfg app.SourceConfig, client *http.Client) *qualityProvider {
	return &qualityProvider{
		name:   cfg.Name,
		url:    cfg.URL,
		client: client,
	}
}

func (p *qualityProvider) Name() string {
	return p.name
}

type qualityResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Streams map[string]string `json:"streams"`
}

func (p *qualityProvider) Search(ctx context.Context, meta *media.Metadata) ([]media.Stream, error) {
	params := url.Values{}
	params.Set("name", meta.Title)
	if meta.Year > 0 {
		params.Set("fallback_year", strconv.Itoa(meta.Year))
	}

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

	var out qualityResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", p.name, err)
	}

	if out.Status != "ok" {
		return nil, fmt.Errorf("%s reported status %q: %s", p.name, out.Status, out.Message)
	}

	return p.orderStreams(out.Streams), nil
}

// orderStreams emits preferred qualities first, then the remainder in
// sorted order so results are deterministic across calls.
func (p *qualityProvider) orderStreams(byQuality map[string]string) []media.Stream {
	var streams []media.Stream

	add := func(quality, rawURL string) {
		streams = append(streams, media.Stream{
			URL:       rawURL,
			MediaType: media.TypeFromURL(rawURL),
			Quality:   quality,
			Source:    p.name,
		})
	}

	for _, quality := range preferredQualities {
		if rawURL, ok := byQuality[quality]; ok {
			add(quality, rawURL)
		}
	}
	for _, quality := range slices.Sorted(maps.Keys(byQuality)) {
		if !slices.Contains(preferredQualities, quality) {
			add(quality, byQuality[quality])
		}
	}

	return streams
}
