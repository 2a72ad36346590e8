package handlers

import (
	"net/http"

	"github.com/openmohaa/forecast-api/internal/models"
)

// PredictMatchup forecasts a matchup between two free-text team names
// @Summary Predict Matchup
// @Description Resolves both names, acquires guarded stats, and returns the weighted prediction plus a Monte Carlo simulation
// @Tags Matchups
// @Accept json
// @Produce json
// @Param body body models.PredictMatchupRequest true "Teams"
// @Success 200 {object} models.MatchupResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} ErrorBody "Team not found"
// @Failure 409 {object} ErrorBody "Ambiguous team name"
// @Router /matchups/predict [post]
func (h *Handler) PredictMatchup(w http.ResponseWriter, r *http.Request) {
	var req models.PredictMatchupRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	result, err := h.matchup.PredictMatchup(r.Context(), req.TeamA, req.TeamB)
	if err != nil {
		h.logicError(w, err, "Failed to predict matchup", "team_a", req.TeamA, "team_b", req.TeamB)
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}

// SimulateMatchup runs only the Monte Carlo simulator
// @Summary Simulate Matchup
// @Tags Matchups
// @Accept json
// @Produce json
// @Param body body models.SimulateMatchupRequest true "Teams, iterations and optional seed"
// @Success 200 {object} models.SimulationResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} ErrorBody "Team not found"
// @Failure 409 {object} ErrorBody "Ambiguous team name"
// @Router /matchups/simulate [post]
func (h *Handler) SimulateMatchup(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateMatchupRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	result, err := h.matchup.SimulateMatchup(r.Context(), req.TeamA, req.TeamB, req.Iterations, req.Seed)
	if err != nil {
		h.logicError(w, err, "Failed to simulate matchup", "team_a", req.TeamA, "team_b", req.TeamB)
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}

// SimulateTournament runs a seeded single-elimination bracket
// @Summary Simulate Tournament
// @Tags Tournaments
// @Accept json
// @Produce json
// @Param body body models.SimulateTournamentRequest true "Entrants and optional seed"
// @Success 200 {object} models.TournamentResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} ErrorBody "Team not found"
// @Router /tournaments/simulate [post]
func (h *Handler) SimulateTournament(w http.ResponseWriter, r *http.Request) {
	var req models.SimulateTournamentRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	result, err := h.matchup.SimulateTournament(r.Context(), req.Teams, req.Seed)
	if err != nil {
		h.logicError(w, err, "Failed to simulate tournament", "teams", len(req.Teams))
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}
