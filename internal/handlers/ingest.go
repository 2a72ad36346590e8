package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/openmohaa/forecast-api/internal/models"
)

// IngestMatches handles POST /api/v1/ingest/matches
// @Summary Ingest Match Results
// @Description Accepts a JSON array or newline-separated JSON match records
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param body body []models.MatchRecord true "Matches"
// @Success 202 {object} models.IngestResponse "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 413 {object} map[string]string "Too Large"
// @Router /ingest/matches [post]
func (h *Handler) IngestMatches(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	lines, err := splitRecords(body)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON array")
		return
	}

	resp := models.IngestResponse{Status: "accepted"}
	for i, line := range lines {
		var match models.MatchRecord
		if err := json.Unmarshal(line, &match); err != nil {
			h.logger.Warnw("Failed to unmarshal match record", "error", err, "lineNum", i)
			resp.Rejected++
			continue
		}
		if err := h.ValidateStruct(&match); err != nil {
			h.logger.Warnw("Validation failed for match record", "error", err, "lineNum", i, "match_id", match.MatchID)
			resp.Rejected++
			continue
		}

		if !h.pool.Enqueue(&match) {
			h.logger.Warnw("Worker pool queue full, dropping remaining matches in batch", "dropped", len(lines)-i)
			resp.Rejected += len(lines) - i
			break
		}
		resp.Accepted++
	}

	h.jsonResponse(w, http.StatusAccepted, resp)
}

// splitRecords returns one raw JSON document per record. A body starting with
// '[' is decoded as an array; anything else is treated as NDJSON.
func splitRecords(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, err
		}
		return arr, nil
	}

	var out []json.RawMessage
	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, json.RawMessage(line))
	}
	return out, nil
}
