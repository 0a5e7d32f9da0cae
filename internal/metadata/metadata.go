package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/media"
)

// ErrNotFound covers every way a lookup can come up empty: the provider
// found no match, was unreachable, or timed out. The pipeline never
// proceeds to source lookup without confirmed metadata.
var ErrNotFound = errors.New("metadata not found")

// Resolver turns a loosely specified request (title or IMDb ID, optional
// year) into a canonical metadata record.
type Resolver interface {
	Resolve(ctx context.Context, req *media.Request) (*media.Metadata, error)
}

// NewResolver builds the resolver selected by the configuration.
func NewResolver(cfg app.MetadataConfig) (Resolver, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("metadata backend %q requires an API key", cfg.Backend)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Backend {
	case "omdb":
		return NewOMDB(cfg.APIKey, httpClient), nil
	case "tmdb":
		return NewTMDB(cfg.APIKey, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown metadata backend: %q", cfg.Backend)
	}
}
