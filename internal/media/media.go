package media

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidRequest is returned when a request fails validation before any
// resolution work has started.
var ErrInvalidRequest = fmt.Errorf("invalid request")

var validate = validator.New()

// Request describes what the caller wants to find and, for cast operations,
// where to play it. At least one of Title or ImdbID must be set.
type Request struct {
	Title       string `json:"title,omitempty" validate:"required_without=ImdbID"`
	ImdbID      string `json:"imdb_id,omitempty" validate:"required_without=Title,omitempty,startswith=tt"`
	Year        int    `json:"year,omitempty" validate:"omitempty,min=1888"`
	Destination string `json:"destination_tv,omitempty"`

	// StreamIndex selects a stream from the aggregated list. Nil means
	// the configured default-selection policy applies.
	StreamIndex *int `json:"stream_index,omitempty"`
}

// Validate checks the request invariants that apply to every operation.
// It runs before any network call.
func (r *Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: either title or imdb_id must be provided", ErrInvalidRequest)
	}
	return nil
}

// ValidateForCast additionally requires a destination device name.
func (r *Request) ValidateForCast() error {
	if err := r.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination_tv is required", ErrInvalidRequest)
	}
	return nil
}

// Metadata is the canonical record produced by the metadata resolver.
// It is immutable once resolved and shared read-only with every source
// provider for the remainder of the request.
type Metadata struct {
	Title     string `json:"confirmed_title"`
	Year      int    `json:"year,omitempty"`
	ImdbID    string `json:"imdb_id,omitempty"`
	TMDBID    int    `json:"tmdb_id,omitempty"`
	Plot      string `json:"plot,omitempty"`
	PosterURL string `json:"poster_url,omitempty"`
	Director  string `json:"director,omitempty"`
	Actors    string `json:"actors,omitempty"`
	Runtime   string `json:"runtime,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Rating    string `json:"rating,omitempty"`
}

// Stream is one playable URL reported by a source provider.
type Stream struct {
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	Quality   string `json:"quality"`
	Source    string `json:"source_api"`
}

// SearchOutcome records how a single provider fared during a fan-out,
// successful or not. Kept for traceability and user display.
type SearchOutcome struct {
	Provider string `json:"api_name"`
	OK       bool   `json:"success"`
	Streams  int    `json:"streams_found"`
	Message  string `json:"message,omitempty"`
}

var knownExtensions = map[string]bool{
	"mp4": true, "mkv": true, "avi": true, "mov": true,
	"wmv": true, "flv": true, "webm": true, "m3u8": true,
}

// TypeFromURL derives a short media-format name (mp4, m3u8, and so on) from a
// stream URL, defaulting to mp4 when the extension is unrecognizable.
// Playback receivers use it as a format hint only.
func TypeFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "mp4"
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
	if knownExtensions[ext] {
		return ext
	}
	if ext != "" && len(ext) <= 4 && isAlnum(ext) {
		return ext
	}
	return "mp4"
}

var contentTypes = map[string]string{
	"mp4":  "video/mp4",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"m3u8": "application/x-mpegURL",
}

// ContentType maps a short format name to the MIME type playback
// receivers expect. Unknown formats map to empty, letting the receiver
// sniff.
func ContentType(mediaType string) string {
	return contentTypes[strings.ToLower(mediaType)]
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
