package cmd

import (
	"fmt"
	"net/http"

	"github.com/stupside/autocast/internal/app"
	"github.com/stupside/autocast/internal/device"
	"github.com/stupside/autocast/internal/metadata"
	"github.com/stupside/autocast/internal/pipeline"
	"github.com/stupside/autocast/internal/source"
)

// newPipeline assembles the cast pipeline from configuration.
func newPipeline(cfg *app.Config) (*pipeline.Pipeline, error) {
	resolver, err := metadata.NewResolver(cfg.Metadata)
	if err != nil {
		return nil, fmt.Errorf("building metadata resolver: %w", err)
	}

	return pipeline.New(pipeline.Options{
		Resolver:  resolver,
		Providers: source.NewProviders(cfg.Sources),
		Devices:   device.NewRegistry(cfg.Devices),
		Policy:    cfg.Selection.Policy,
		Client:    &http.Client{Timeout: cfg.Network.Timeout},
	}), nil
}
