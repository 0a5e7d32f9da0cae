package source

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/media"
)

// Provider is one independent video-source integration. Implementations
// search for playable streams for already-resolved metadata and nothing
// else. Zero streams with a nil error is a valid outcome.
type Provider interface {
	Name() string
	Search(ctx context.Context, meta *media.Metadata) ([]media.Stream, error)
}

// NewProviders builds the provider set from configuration, preserving
// configuration order. The order fixes how results concatenate during
// aggregation.
func NewProviders(cfgs []app.SourceConfig) []Provider {
	providers := make([]Provider, 0, len(cfgs))
	for _, cfg := range cfgs {
		client := newHTTPClient(cfg.Timeout)
		switch cfg.Kind {
		case "direct":
			providers = append(providers, newDirectProvider(cfg, client))
		default:
			providers = append(providers, newQualityProvider(cfg, client))
		}
	}
	return providers
}

// newHTTPClient returns a retrying client for upstream source APIs, which
// rate-limit aggressively and flake often.
func newHTTPClient(timeout time.Duration) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil
	return rc.StandardClient()
}
