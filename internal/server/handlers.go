package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/stupside/autocast/internal/device"
	"github.com/stupside/autocast/internal/media"
	"github.com/stupside/autocast/internal/metadata"
	"github.com/stupside/autocast/internal/pipeline"
	"github.com/stupside/autocast/internal/source"
)

type handler struct {
	pipeline        *pipeline.Pipeline
	discoveryWindow time.Duration
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "error", err)
	}
}

// writeError maps pipeline errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, media.ErrInvalidRequest), errors.Is(err, source.ErrIndexOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, metadata.ErrNotFound), errors.Is(err, device.ErrNotFound), errors.Is(err, source.ErrNoStreams):
		status = http.StatusNotFound
	case errors.Is(err, pipeline.ErrCastFailed):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (*media.Request, bool) {
	var req media.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body: " + err.Error()})
		return nil, false
	}
	return &req, true
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) devices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"devices": h.pipeline.Devices()})
}

func (h *handler) discover(w http.ResponseWriter, r *http.Request) {
	found, err := device.Discover(r.Context(), h.discoveryWindow)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"devices": found})
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.pipeline.Search(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) cast(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.pipeline.Cast(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) castBackground(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	ack, err := h.pipeline.CastBackground(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ack)
}
