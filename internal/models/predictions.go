package models

import "time"

// PredictionResult is the closed-form weighted forecast for a matchup.
// WinProbabilityA + WinProbabilityB == 1.
type PredictionResult struct {
	WinProbabilityA float64            `json:"win_probability_a"`
	WinProbabilityB float64            `json:"win_probability_b"`
	UpsetLikelihood float64            `json:"upset_likelihood"`
	Confidence      float64            `json:"confidence"`
	KeyFactors      []string           `json:"key_factors"`
	FeatureDelta    map[string]float64 `json:"feature_delta"` // A minus B, per feature
}

// MatchupSide is everything the pipeline learned about one competitor
type MatchupSide struct {
	Resolution        ResolutionResult  `json:"resolution"`
	Stats             GuardedStats      `json:"stats"`
	Features          FeatureVector     `json:"features"`
	Form              FormIndicators    `json:"form"`
	RecentForm        []float64         `json:"recent_form"` // most recent first
	ComparableMatches []ComparableMatch `json:"comparable_matches,omitempty"`
}

// MatchupResult is the orchestrated forecast for two free-text team names
type MatchupResult struct {
	RequestID  string           `json:"request_id"`
	TeamA      MatchupSide      `json:"team_a"`
	TeamB      MatchupSide      `json:"team_b"`
	Prediction PredictionResult `json:"prediction"`
	Simulation SimulationResult `json:"simulation"`
	Narrative  string           `json:"narrative,omitempty"`
	// Degraded is set when either side's stats are not LIVE
	Degraded    bool      `json:"degraded"`
	GeneratedAt time.Time `json:"generated_at"`
}
