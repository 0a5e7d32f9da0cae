package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/stupside/autocast/internal/media"
)

var (
	// ErrNoStreams means every provider settled without producing a
	// single usable stream.
	ErrNoStreams = errors.New("no streams available")

	// ErrIndexOutOfRange means the caller asked for a stream index the
	// aggregated list does not have.
	ErrIndexOutOfRange = errors.New("stream index out of range")
)

// Aggregate fans the same metadata out to every provider concurrently and
// waits for all of them to settle. A provider's failure or timeout is
// contained: it contributes zero streams and a failed outcome, never an
// aggregate error. Streams concatenate in provider (configuration) order,
// each provider's internal ordering preserved.
func Aggregate(ctx context.Context, providers []Provider, meta *media.Metadata) ([]media.Stream, []media.SearchOutcome) {
	results := make([][]media.Stream, len(providers))
	outcomes := make([]media.SearchOutcome, len(providers))

	var g errgroup.Group
	for i, p := range providers {
		g.Go(func() error {
			streams, err := p.Search(ctx, meta)
			if err != nil {
				slog.WarnContext(ctx, "source provider failed", "provider", p.Name(), "error", err)
				outcomes[i] = media.SearchOutcome{Provider: p.Name(), Message: err.Error()}
				return nil
			}

			results[i] = streams
			outcomes[i] = media.SearchOutcome{
				Provider: p.Name(),
				OK:       len(streams) > 0,
				Streams:  len(streams),
				Message:  fmt.Sprintf("found %d stream(s)", len(streams)),
			}
			return nil
		})
	}
	g.Wait()

	return lo.Flatten(results), outcomes
}

// Select picks exactly one stream from the aggregated list. An explicit
// index wins; otherwise the configured policy decides ("first" takes the
// aggregation head, "quality" the highest advertised tier).
func Select(streams []media.Stream, index *int, policy string) (media.Stream, error) {
	if len(streams) == 0 {
		return media.Stream{}, ErrNoStreams
	}

	if index != nil {
		i := *index
		if i < 0 || i >= len(streams) {
			return media.Stream{}, fmt.Errorf("%w: index %d with %d stream(s)", ErrIndexOutOfRange, i, len(streams))
		}
		return streams[i], nil
	}

	if policy == "quality" {
		best := streams[0]
		for _, s := range streams[1:] {
			if qualityRank(s.Quality) > qualityRank(best.Quality) {
				best = s
			}
		}
		return best, nil
	}

	return streams[0], nil
}

// qualityRank turns advertised quality labels into comparable numbers.
// Labels are provider-declared hints, not verified properties, so unknown
// labels simply rank lowest.
func qualityRank(quality string) int {
	q := strings.ToUpper(strings.TrimSpace(quality))
	switch q {
	case "4K", "UHD":
		return 2160
	case "HD":
		return 720
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(q, "P")); err == nil {
		return n
	}
	return 0
}
