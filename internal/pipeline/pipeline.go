package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stupside/autocast/internal/device"
	"github.com/stupside/autocast/internal/device/chromecast"
	"github.com/stupside/autocast/internal/device/dlna"
	"github.com/stupside/autocast/internal/device/roku"
	"github.com/stupside/autocast/internal/media"
	"github.com/stupside/autocast/internal/metadata"
	"github.com/stupside/autocast/internal/source"
)

// ErrCastFailed marks dispatch errors: the stream was found but the
// device refused or dropped the playback command.
var ErrCastFailed = errors.New("cast failed")

// Dispatcher sends a selected stream to a device.
type Dispatcher interface {
	Dispatch(ctx context.Context, info device.Info, stream media.Stream, title string) error
}

// Pipeline wires metadata resolution, source aggregation and device
// dispatch into the cast flow.
type Pipeline struct {
	resolver   metadata.Resolver
	providers  []source.Provider
	devices    *device.Registry
	dispatcher Dispatcher
	policy     string
}

// Options configures a Pipeline. Dispatcher defaults to the network
// dispatcher; Policy defaults to picking the first stream.
type Options struct {
	Resolver   metadata.Resolver
	Providers  []source.Provider
	Devices    *device.Registry
	Dispatcher Dispatcher
	Policy     string
	Client     *http.Client
}

func New(opts Options) *Pipeline {
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		client := opts.Client
		if client == nil {
			client = http.DefaultClient
		}
		dispatcher = &networkDispatcher{client: client}
	}

	return &Pipeline{
		resolver:   opts.Resolver,
		providers:  opts.Providers,
		devices:    opts.Devices,
		dispatcher: dispatcher,
		policy:     opts.Policy,
	}
}

// SearchResult is the outcome of a search: confirmed metadata plus
// every stream the providers produced.
type SearchResult struct {
	Metadata *media.Metadata       `json:"metadata"`
	Streams  []media.Stream        `json:"streams"`
	Outcomes []media.SearchOutcome `json:"api_results"`
}

// Search resolves the request's metadata and queries every provider.
func (p *Pipeline) Search(ctx context.Context, req *media.Request) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	meta, err := p.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("resolving metadata: %w", err)
	}

	slog.InfoContext(ctx, "metadata resolved", "title", meta.Title, "year", meta.Year, "imdb_id", meta.ImdbID)

	streams, outcomes := source.Aggregate(ctx, p.providers, meta)

	return &SearchResult{
		Metadata: meta,
		Streams:  streams,
		Outcomes: outcomes,
	}, nil
}

// CastResult reports a completed cast.
type CastResult struct {
	Metadata *media.Metadata       `json:"metadata"`
	Stream   media.Stream          `json:"stream"`
	Device   device.Info           `json:"device"`
	Outcomes []media.SearchOutcome `json:"api_results"`
}

// Cast resolves, searches, selects one stream and plays it on the named
// device. The device is looked up first so a bad name fails before any
// metadata or provider call.
func (p *Pipeline) Cast(ctx context.Context, req *media.Request) (*CastResult, error) {
	if err := req.ValidateForCast(); err != nil {
		return nil, err
	}

	info, err := p.devices.Find(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("device %q: %w", req.Destination, err)
	}

	result, err := p.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	stream, err := source.Select(result.Streams, req.StreamIndex, p.policy)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "stream selected",
		"url", stream.URL, "quality", stream.Quality, "source", stream.Source,
		"device", info.Name, "device_type", string(info.Type))

	if err := p.dispatcher.Dispatch(ctx, info, stream, result.Metadata.Title); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCastFailed, err)
	}

	return &CastResult{
		Metadata: result.Metadata,
		Stream:   stream,
		Device:   info,
		Outcomes: result.Outcomes,
	}, nil
}

// Devices lists the configured device registry.
func (p *Pipeline) Devices() []device.Info {
	return p.devices.List()
}

// networkDispatcher connects to the device matching its registry type
// and plays the stream on it.
type networkDispatcher struct {
	client *http.Client
}

func (d *networkDispatcher) Dispatch(ctx context.Context, info device.Info, stream media.Stream, title string) error {
	var dev device.Device

	switch info.Type {
	case device.TypeRoku:
		dev = roku.NewDevice(info, d.client)
	case device.TypeChromecast:
		dev = chromecast.NewDevice(info)
	case device.TypeDLNA:
		dev = dlna.NewDevice(info)
	default:
		return fmt.Errorf("unknown device type: %q", info.Type)
	}

	if err := dev.Connect(); err != nil {
		return fmt.Errorf("connecting to device: %w", err)
	}
	defer dev.Close()

	if err := dev.Play(ctx, stream, title); err != nil {
		return fmt.Errorf("playing on %s: %w", info.Name, err)
	}

	return nil
}
