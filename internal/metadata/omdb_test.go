package metadata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stupside/autocast/internal/media"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(fn roundTripFunc) *http.Client {
	return &http.Client{Transport: fn}
}

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

const matrixJSON = `{
    "Title": "The Matrix",
    "Year": "1999",
    "Runtime": "136 min",
    "Genre": "Action, Sci-Fi",
    "Director": "Lana Wachowski, Lilly Wachowski",
    "Actors": "Keanu Reeves, Laurence Fishburne, Carrie-Anne Moss",
    "Plot": "A computer hacker learns about the true nature of reality.",
    "Poster": "https://img.example.com/matrix.jpg",
    "imdbRating": "8.7",
    "imdbID": "tt0133093",
    "Type": "movie",
    "Response": "True"
}`

func TestOMDBResolveByTitle(t *testing.T) {
	var gotQuery string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotQuery = req.URL.RawQuery
		return jsonResponse(200, matrixJSON), nil
	})

	resolver := NewOMDB("testing", client)
	meta, err := resolver.Resolve(context.Background(), &media.Request{Title: "The Matrix", Year: 1999})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if meta.Title != "The Matrix" || meta.Year != 1999 || meta.ImdbID != "tt0133093" {
		t.Errorf("Resolve() = %+v", meta)
	}
	if meta.Director == "" || meta.Rating != "8.7" {
		t.Errorf("optional fields not mapped: %+v", meta)
	}
	if !strings.Contains(gotQuery, "1999") {
		t.Errorf("year not forwarded in query %q", gotQuery)
	}
}

func TestOMDBResolveByIDIgnoresTitle(t *testing.T) {
	var gotQuery string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		gotQuery = req.URL.RawQuery
		return jsonResponse(200, matrixJSON), nil
	})

	resolver := NewOMDB("testing", client)
	meta, err := resolver.Resolve(context.Background(), &media.Request{Title: "Wrong Title", ImdbID: "tt0133093"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if meta.Title != "The Matrix" {
		t.Errorf("title = %q, want confirmed title from provider", meta.Title)
	}
	if !strings.Contains(gotQuery, "tt0133093") {
		t.Errorf("imdb id not used in query %q", gotQuery)
	}
	if strings.Contains(gotQuery, "Wrong") {
		t.Errorf("title forwarded despite imdb id: %q", gotQuery)
	}
}

func TestOMDBResolveNotFound(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"Response":"False","Error":"Movie not found!"}`), nil
	})

	resolver := NewOMDB("testing", client)
	if _, err := resolver.Resolve(context.Background(), &media.Request{Title: "Nonexistent"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestOMDBResolveProviderUnreachable(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	resolver := NewOMDB("testing", client)
	if _, err := resolver.Resolve(context.Background(), &media.Request{Title: "The Matrix"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestOMDBResolveCancelledBeforeCall(t *testing.T) {
	called := false
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(200, matrixJSON), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := NewOMDB("testing", client)
	if _, err := resolver.Resolve(ctx, &media.Request{Title: "The Matrix"}); err == nil {
		t.Error("Resolve() with cancelled context succeeded")
	}
	if called {
		t.Error("network call attempted after cancellation")
	}
}

func TestCleanDropsNA(t *testing.T) {
	if clean("N/A") != "" {
		t.Error(`clean("N/A") should be empty`)
	}
	if clean("8.7") != "8.7" {
		t.Error("clean mangled a real value")
	}
}
