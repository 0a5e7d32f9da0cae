package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stupside/autocast/internal/media"
)

// backgroundTimeout bounds a detached cast so an unresponsive device
// cannot leak the goroutine.
const backgroundTimeout = 2 * time.Minute

// Ack acknowledges a background cast before its outcome is known.
type Ack struct {
	JobID  string `json:"job_id"`
	Title  string `json:"title"`
	Device string `json:"device"`
	Note   string `json:"note"`
}

// CastBackground validates the request and confirms the destination
// device exists, then runs the full cast flow in a detached goroutine.
// The returned Ack carries a job ID for log correlation; only failures
// after the ack surface exclusively in the logs.
func (p *Pipeline) CastBackground(ctx context.Context, req *media.Request) (*Ack, error) {
	if err := req.ValidateForCast(); err != nil {
		return nil, err
	}

	if _, err := p.devices.Find(req.Destination); err != nil {
		return nil, fmt.Errorf("device %q: %w", req.Destination, err)
	}

	jobID := uuid.NewString()

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundTimeout)
		defer cancel()

		logger := slog.With("job_id", jobID, "title", req.Title, "imdb_id", req.ImdbID, "device", req.Destination)
		logger.InfoContext(ctx, "background cast started")

		result, err := p.Cast(ctx, req)
		if err != nil {
			logger.ErrorContext(ctx, "background cast failed", "error", err)
			return
		}

		logger.InfoContext(ctx, "background cast finished",
			"confirmed_title", result.Metadata.Title,
			"quality", result.Stream.Quality,
			"source", result.Stream.Source)
	}()

	return &Ack{
		JobID:  jobID,
		Title:  req.Title,
		Device: req.Destination,
		Note:   "cast dispatched, check the logs for the result",
	}, nil
}
