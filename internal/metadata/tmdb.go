package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	tmdb "github.com/ryanbradynd05/go-tmdb"

	"github.com/stupside/autocast/internal/media"
)

const (
	tmdbAPIBaseURL   = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// TMDBClient is the subset of the go-tmdb client the resolver uses.
// Matches *tmdb.TMDb so a fake can stand in during tests.
type TMDBClient interface {
	SearchMovie(name string, options map[string]string) (*tmdb.MovieSearchResults, error)
	GetMovieInfo(id int, options map[string]string) (*tmdb.Movie, error)
	GetMovieCredits(id int, options map[string]string) (*tmdb.MovieCredits, error)
}

// TMDB resolves metadata against The Movie Database.
type TMDB struct {
	client TMDBClient
	apiKey string

	// The client library has no find endpoint, so IMDb ID lookups go
	// through this HTTP client directly.
	httpClient *http.Client
	findURL    string
}

var _ Resolver = (*TMDB)(nil)

// NewTMDB creates a TMDB-backed resolver.
func NewTMDB(apiKey string, httpClient *http.Client) *TMDB {
	return &TMDB{
		client: tmdb.Init(tmdb.Config{
			APIKey:   apiKey,
			Proxies:  nil,
			UseProxy: false,
		}),
		apiKey:     apiKey,
		httpClient: httpClient,
		findURL:    tmdbAPIBaseURL + "/find",
	}
}

// Resolve finds the movie's TMDB ID (directly via the find endpoint when an
// IMDb ID is given, otherwise through title search) and fetches full details
// plus credits for it.
func (t *TMDB) Resolve(ctx context.Context, req *media.Request) (*media.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tmdbID int
	var err error

	if req.ImdbID != "" {
		tmdbID, err = t.idFromImdb(ctx, req.ImdbID)
	} else {
		tmdbID, err = t.idFromSearch(req.Title, req.Year)
	}
	if err != nil {
		return nil, err
	}

	movie, err := t.client.GetMovieInfo(tmdbID, nil)
	if err != nil || movie == nil {
		return nil, fmt.Errorf("%w: tmdb movie details: %v", ErrNotFound, err)
	}

	meta := movieToMetadata(movie)

	// Credits are a best-effort enrichment; a failed call leaves the
	// director and actor fields empty rather than failing the lookup.
	if credits, err := t.client.GetMovieCredits(tmdbID, nil); err == nil && credits != nil {
		fillCredits(meta, credits)
	}

	return meta, nil
}

func (t *TMDB) idFromSearch(title string, year int) (int, error) {
	options := map[string]string{"include_adult": "false"}
	if year > 0 {
		options["year"] = strconv.Itoa(year)
	}

	results, err := t.client.SearchMovie(title, options)
	if err != nil {
		return 0, fmt.Errorf("%w: tmdb search: %v", ErrNotFound, err)
	}
	if results == nil || len(results.Results) == 0 {
		return 0, fmt.Errorf("%w: no tmdb match for %q", ErrNotFound, title)
	}

	return results.Results[0].ID, nil
}

func (t *TMDB) idFromImdb(ctx context.Context, imdbID string) (int, error) {
	params := url.Values{}
	params.Set("api_key", t.apiKey)
	params.Set("external_source", "imdb_id")
	reqURL := t.findURL + "/" + url.PathEscape(imdbID) + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: building find request: %v", ErrNotFound, err)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("%w: tmdb find: %v", ErrNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: tmdb find returned %d", ErrNotFound, resp.StatusCode)
	}

	var out struct {
		MovieResults []struct {
			ID int `json:"id"`
		} `json:"movie_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: decoding find response: %v", ErrNotFound, err)
	}
	if len(out.MovieResults) == 0 {
		return 0, fmt.Errorf("%w: no tmdb match for %s", ErrNotFound, imdbID)
	}

	return out.MovieResults[0].ID, nil
}

func movieToMetadata(movie *tmdb.Movie) *media.Metadata {
	meta := &media.Metadata{
		Title:  movie.Title,
		ImdbID: movie.ImdbID,
		TMDBID: movie.ID,
		Plot:   movie.Overview,
	}

	if len(movie.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(movie.ReleaseDate[:4]); err == nil {
			meta.Year = y
		}
	}

	if movie.PosterPath != "" {
		meta.PosterURL = tmdbImageBaseURL + movie.PosterPath
	}
	if movie.Runtime > 0 {
		meta.Runtime = formatRuntime(int(movie.Runtime))
	}
	if movie.VoteAverage > 0 {
		meta.Rating = strconv.FormatFloat(float64(movie.VoteAverage), 'f', 1, 32)
	}

	genres := make([]string, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		genres = append(genres, g.Name)
	}
	meta.Genre = strings.Join(genres, ", ")

	return meta
}

func fillCredits(meta *media.Metadata, credits *tmdb.MovieCredits) {
	var directors []string
	for _, c := range credits.Crew {
		if c.Job == "Director" {
			directors = append(directors, c.Name)
		}
	}
	meta.Director = strings.Join(directors, ", ")

	var actors []string
	for _, c := range credits.Cast {
		actors = append(actors, c.Name)
		if len(actors) == 5 {
			break
		}
	}
	meta.Actors = strings.Join(actors, ", ")
}

// formatRuntime renders minutes the way OMDb reports them ("2h 16m").
func formatRuntime(minutes int) string {
	h, m := minutes/60, minutes%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
