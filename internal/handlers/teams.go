package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openmohaa/forecast-api/internal/logic"
)

// ResolveTeam maps a free-text name to a canonical team
// @Summary Resolve Team Name
// @Description Alias, exact, normalized and fuzzy matching against the team registry
// @Tags Teams
// @Produce json
// @Param name query string true "Free-text team name"
// @Success 200 {object} models.ResolutionResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} ErrorBody "Not Found"
// @Failure 409 {object} ErrorBody "Ambiguous"
// @Router /teams/resolve [get]
func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		h.errorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(name) > 100 {
		h.errorResponse(w, http.StatusBadRequest, "name too long")
		return
	}

	res, err := h.resolver.Resolve(r.Context(), name)
	if err != nil {
		h.logicError(w, err, "Failed to resolve team", "name", name)
		return
	}
	h.jsonResponse(w, http.StatusOK, res)
}

// GetTeamStats returns guarded statistics for a team id
// @Summary Get Team Stats
// @Description Live provider stats, sanitized stats or a neutral fallback, tagged with data_source
// @Tags Teams
// @Produce json
// @Param id path string true "Numeric team id"
// @Success 200 {object} models.GuardedStats
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /teams/{id}/stats [get]
func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stats, err := h.stats.GetStats(r.Context(), id)
	if err != nil {
		h.logicError(w, err, "Failed to get team stats", "id", id)
		return
	}
	h.jsonResponse(w, http.StatusOK, stats)
}

// GetTeamMatches returns completed matches for a team
// @Summary Get Team Matches
// @Tags Teams
// @Produce json
// @Param id path string true "Numeric team id"
// @Param opponent query string false "Only meetings with this team id"
// @Param map query string false "Map name"
// @Param since query string false "RFC3339 lower bound"
// @Param until query string false "RFC3339 upper bound"
// @Param order query string false "recent (default) or oldest"
// @Param limit query int false "Max rows (default 20, max 500)"
// @Success 200 {array} models.MatchRecord
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /teams/{id}/matches [get]
func (h *Handler) GetTeamMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mq := logic.MatchQuery{
		TeamID:     chi.URLParam(r, "id"),
		OpponentID: q.Get("opponent"),
		MapName:    q.Get("map"),
		Order:      q.Get("order"),
	}

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 {
			h.errorResponse(w, http.StatusBadRequest, "invalid limit")
			return
		}
		mq.Limit = limit
	}
	for key, dst := range map[string]*time.Time{"since": &mq.Since, "until": &mq.Until} {
		s := q.Get(key)
		if s == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "invalid "+key)
			return
		}
		*dst = t
	}

	matches, err := h.history.Matches(r.Context(), mq)
	if err != nil {
		h.logicError(w, err, "Failed to get team matches", "id", mq.TeamID)
		return
	}
	h.jsonResponse(w, http.StatusOK, matches)
}

// ClearStatsCache drops every cached stats entry
// @Summary Clear Stats Cache
// @Tags System
// @Success 204
// @Router /cache/stats [delete]
func (h *Handler) ClearStatsCache(w http.ResponseWriter, r *http.Request) {
	h.stats.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// InvalidateTeamStats drops one team's cached stats
// @Summary Invalidate Team Stats
// @Tags System
// @Param id path string true "Numeric team id"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid id"
// @Router /cache/stats/{id} [delete]
func (h *Handler) InvalidateTeamStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := logic.AssertValidID(id); err != nil {
		h.logicError(w, err, "Failed to invalidate stats", "id", id)
		return
	}
	h.stats.Invalidate(id)
	w.WriteHeader(http.StatusNoContent)
}
