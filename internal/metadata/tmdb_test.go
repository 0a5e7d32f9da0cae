package metadata

import (
	"context"
	"errors"
	"net/http"
	"testing"

	tmdb "github.com/ryanbradynd05/go-tmdb"

	"github.com/stupside/autocast/internal/media"
)

type fakeTMDB struct {
	searchResults *tmdb.MovieSearchResults
	searchErr     error
	movie         *tmdb.Movie
	movieErr      error
	credits       *tmdb.MovieCredits
	creditsErr    error

	searchedName string
	searchedOpts map[string]string
	infoID       int
}

func (f *fakeTMDB) SearchMovie(name string, options map[string]string) (*tmdb.MovieSearchResults, error) {
	f.searchedName = name
	f.searchedOpts = options
	return f.searchResults, f.searchErr
}

func (f *fakeTMDB) GetMovieInfo(id int, options map[string]string) (*tmdb.Movie, error) {
	f.infoID = id
	return f.movie, f.movieErr
}

func (f *fakeTMDB) GetMovieCredits(id int, options map[string]string) (*tmdb.MovieCredits, error) {
	return f.credits, f.creditsErr
}

func matrixMovie() *tmdb.Movie {
	return &tmdb.Movie{
		ID:          603,
		Title:       "The Matrix",
		ReleaseDate: "1999-03-31",
		Overview:    "A computer hacker learns about the true nature of reality.",
		ImdbID:      "tt0133093",
	}
}

func searchResultsWithID(id int) *tmdb.MovieSearchResults {
	results := &tmdb.MovieSearchResults{}
	results.Results = append(results.Results, tmdb.MovieShort{ID: id, Title: "The Matrix"})
	return results
}

func TestTMDBResolveByTitle(t *testing.T) {
	fake := &fakeTMDB{
		searchResults: searchResultsWithID(603),
		movie:         matrixMovie(),
		creditsErr:    errors.New("unavailable"),
	}
	resolver := &TMDB{client: fake, apiKey: "k"}

	meta, err := resolver.Resolve(context.Background(), &media.Request{Title: "The Matrix", Year: 1999})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if meta.Title != "The Matrix" || meta.Year != 1999 || meta.TMDBID != 603 || meta.ImdbID != "tt0133093" {
		t.Errorf("Resolve() = %+v", meta)
	}
	if fake.searchedOpts["year"] != "1999" {
		t.Errorf("year not forwarded: %v", fake.searchedOpts)
	}
	if fake.infoID != 603 {
		t.Errorf("details fetched for id %d, want 603", fake.infoID)
	}
}

func TestTMDBResolveByImdbID(t *testing.T) {
	fake := &fakeTMDB{movie: matrixMovie(), creditsErr: errors.New("unavailable")}
	httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
		if q := req.URL.Query().Get("external_source"); q != "imdb_id" {
			t.Errorf("external_source = %q", q)
		}
		return jsonResponse(200, `{"movie_results":[{"id":603}]}`), nil
	})
	resolver := &TMDB{client: fake, apiKey: "k", httpClient: httpClient, findURL: tmdbAPIBaseURL + "/find"}

	meta, err := resolver.Resolve(context.Background(), &media.Request{ImdbID: "tt0133093", Title: "ignored"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if meta.TMDBID != 603 {
		t.Errorf("tmdb id = %d, want 603", meta.TMDBID)
	}
	if fake.searchedName != "" {
		t.Error("title search performed despite imdb id")
	}
}

func TestTMDBResolveNoMatch(t *testing.T) {
	fake := &fakeTMDB{searchResults: &tmdb.MovieSearchResults{}}
	resolver := &TMDB{client: fake, apiKey: "k"}

	if _, err := resolver.Resolve(context.Background(), &media.Request{Title: "Nonexistent"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestTMDBResolveSearchError(t *testing.T) {
	fake := &fakeTMDB{searchErr: errors.New("timeout")}
	resolver := &TMDB{client: fake, apiKey: "k"}

	if _, err := resolver.Resolve(context.Background(), &media.Request{Title: "The Matrix"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestTMDBFindNoMovieResults(t *testing.T) {
	fake := &fakeTMDB{movie: matrixMovie()}
	httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"movie_results":[]}`), nil
	})
	resolver := &TMDB{client: fake, apiKey: "k", httpClient: httpClient, findURL: tmdbAPIBaseURL + "/find"}

	if _, err := resolver.Resolve(context.Background(), &media.Request{ImdbID: "tt9999999"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestFormatRuntime(t *testing.T) {
	if got := formatRuntime(136); got != "2h 16m" {
		t.Errorf("formatRuntime(136) = %q", got)
	}
	if got := formatRuntime(45); got != "45m" {
		t.Errorf("formatRuntime(45) = %q", got)
	}
}
