package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

const maxBodyBytes = 1 << 20

// MatchRequest is the body of POST /api/match.
type MatchRequest struct {
	Tracks []models.TrackDescriptor `json:"tracks"`
}

// MatchResponse carries one outcome per requested track, in request order.
type MatchResponse struct {
	Results []models.MatchOutcome `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// MatchHandler serves POST /api/match.
type MatchHandler struct {
	matcher      BatchMatcher
	maxBatchSize int
	logger       *log.Logger
}

func NewMatchHandler(matcher BatchMatcher, maxBatchSize int, logger *log.Logger) *MatchHandler {
	return &MatchHandler{matcher: matcher, maxBatchSize: maxBatchSize, logger: logger}
}

func (h *MatchHandler) Routes() []string {
	return []string{"POST /api/match"}
}

func (h *MatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.matcher == nil {
		writeError(w, http.StatusServiceUnavailable, shared.ErrServiceUnavailable)
		return
	}

	var req MatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: body exceeds %d bytes", shared.ErrInvalidInput, tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	if err := h.validate(req.Tracks); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results := h.matcher.MatchBatch(r.Context(), req.Tracks)
	h.logger.Debug("batch matched", "tracks", len(req.Tracks))
	writeJSON(w, http.StatusOK, MatchResponse{Results: results})
}

func (h *MatchHandler) validate(tracks []models.TrackDescriptor) error {
	if len(tracks) == 0 {
		return fmt.Errorf("%w: tracks", shared.ErrMissingArgument)
	}
	if len(tracks) > h.maxBatchSize {
		return fmt.Errorf("%w: %d tracks, limit is %d", shared.ErrBatchTooLarge, len(tracks), h.maxBatchSize)
	}
	for i, track := range tracks {
		if err := track.Validate(); err != nil {
			return fmt.Errorf("%w: track %d: %v", shared.ErrInvalidTrack, i, err)
		}
	}
	return nil
}

// HealthHandler serves GET /health.
func HealthHandler(backend string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "backend": backend})
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
