package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/openmohaa/forecast-api/internal/logic"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres":   h.pg != nil && h.pg.Ping(ctx) == nil,
		"clickhouse": h.ch != nil && h.ch.Ping(ctx) == nil,
	}
	if h.redis != nil {
		checks["redis"] = h.redis.Ping(ctx) == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	queueDepth := 0
	if h.pool != nil {
		queueDepth = h.pool.QueueDepth()
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": queueDepth,
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// ErrorBody is the JSON error shape for resolution failures
type ErrorBody struct {
	Error       string   `json:"error"`
	Input       string   `json:"input,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Candidates  []string `json:"candidates,omitempty"`
}

// logicError maps pipeline errors onto HTTP statuses. Unknown errors are
// logged and reported as 500 without detail.
func (h *Handler) logicError(w http.ResponseWriter, err error, msg string, kv ...interface{}) {
	var invalid *logic.InvalidIDError
	var notFound *logic.NotFoundError
	var ambiguous *logic.AmbiguousError

	switch {
	case errors.As(err, &invalid):
		h.errorResponse(w, http.StatusBadRequest, invalid.Error())
	case errors.As(err, &notFound):
		h.jsonResponse(w, http.StatusNotFound, ErrorBody{
			Error:       notFound.Error(),
			Input:       notFound.InputName,
			Suggestions: notFound.Suggestions,
		})
	case errors.As(err, &ambiguous):
		h.jsonResponse(w, http.StatusConflict, ErrorBody{
			Error:       ambiguous.Error(),
			Input:       ambiguous.InputName,
			Suggestions: ambiguous.Suggestions,
			Candidates:  ambiguous.Candidates,
		})
	case errors.Is(err, logic.ErrDuplicateEntrant), errors.Is(err, logic.ErrInvalidOrder):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Errorw(msg, append(kv, "error", err)...)
		h.errorResponse(w, http.StatusInternalServerError, msg)
	}
}

// decodeBody reads a size-limited JSON body and validates it
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	if err := h.ValidateStruct(dst); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}
