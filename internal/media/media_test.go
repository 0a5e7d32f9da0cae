package media

import (
	"errors"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"title only", Request{Title: "The Matrix"}, false},
		{"imdb id only", Request{ImdbID: "tt0133093"}, false},
		{"title and year", Request{Title: "The Matrix", Year: 1999}, false},
		{"both title and id", Request{Title: "The Matrix", ImdbID: "tt0133093"}, false},
		{"neither title nor id", Request{Year: 1999, Destination: "Living Room TV"}, true},
		{"empty request", Request{}, true},
		{"malformed imdb id", Request{ImdbID: "0133093"}, true},
		{"implausible year", Request{Title: "The Matrix", Year: 12}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("Validate() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestRequestValidateForCast(t *testing.T) {
	req := Request{Title: "The Matrix", Year: 1999}
	if err := req.ValidateForCast(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("ValidateForCast() without destination = %v, want ErrInvalidRequest", err)
	}

	req.Destination = "Living Room TV"
	if err := req.ValidateForCast(); err != nil {
		t.Errorf("ValidateForCast() = %v, want nil", err)
	}
}

func TestTypeFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/movie.mp4", "mp4"},
		{"https://cdn.example.com/movie.MKV", "mkv"},
		{"https://cdn.example.com/master.m3u8?token=abc", "m3u8"},
		{"https://cdn.example.com/movie.webm", "webm"},
		{"https://cdn.example.com/stream/ts1", "mp4"},
		{"https://cdn.example.com/movie.ogv", "ogv"},
		{"https://cdn.example.com/archive.backup", "mp4"},
		{"", "mp4"},
	}

	for _, tc := range tests {
		if got := TypeFromURL(tc.url); got != tc.want {
			t.Errorf("TypeFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
