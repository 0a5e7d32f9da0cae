package metadata

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Digital-Shane/omdb"

	"github.com/stupside/autocast/internal/media"
)

// OMDB resolves metadata against the Open Movie Database.
type OMDB struct {
	client *omdb.Client
}

var _ Resolver = (*OMDB)(nil)

// NewOMDB creates an OMDb-backed resolver. The HTTP client's timeout bounds
// every lookup.
func NewOMDB(apiKey string, httpClient *http.Client) *OMDB {
	return &OMDB{client: omdb.NewClient(apiKey, httpClient)}
}

// Resolve looks up a movie by IMDb ID when one is given, otherwise by title
// and optional year. The ID path is exact and ignores any title in the
// request.
func (o *OMDB) Resolve(ctx context.Context, req *media.Request) (*media.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result any
	var err error

	if req.ImdbID != "" {
		result, err = o.client.SearchByImdbID(omdb.QueryData{ImdbID: req.ImdbID})
	} else {
		query := omdb.QueryData{
			Title:      req.Title,
			SearchType: "movie",
			Plot:       "full",
		}
		if req.Year > 0 {
			query.Year = strconv.Itoa(req.Year)
		}
		result, err = o.client.SearchByTitle(query)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: omdb lookup: %v", ErrNotFound, err)
	}

	switch movie := result.(type) {
	case omdb.MovieResult:
		return movieResultToMetadata(movie), nil
	case *omdb.MovieResult:
		return movieResultToMetadata(*movie), nil
	default:
		return nil, fmt.Errorf("%w: no omdb match", ErrNotFound)
	}
}

func movieResultToMetadata(result omdb.MovieResult) *media.Metadata {
	meta := &media.Metadata{
		Title:     result.Title,
		ImdbID:    result.ImdbID,
		Plot:      clean(result.Plot),
		PosterURL: clean(result.Poster),
		Director:  clean(result.Director),
		Actors:    clean(result.Actors),
		Runtime:   clean(result.Runtime),
		Genre:     clean(result.Genre),
		Rating:    clean(result.ImdbRating),
	}

	// OMDb reports year ranges for some titles ("2010-2015"); the first
	// year is the release year.
	if y, err := strconv.Atoi(omdb.FirstYear(result.Year)); err == nil {
		meta.Year = y
	}

	return meta
}

// clean drops OMDb's "N/A" placeholder so optional fields stay empty.
func clean(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}
