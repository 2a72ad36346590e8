package models

// FeatureVector is the normalized per-entity input to prediction and simulation.
// Every field is clamped to [0,1] and rounded to 3 decimals.
type FeatureVector struct {
	WinRate         float64 `json:"win_rate"`
	KillEfficiency  float64 `json:"kill_efficiency"`
	AggressionIndex float64 `json:"aggression_index"`
	ClutchFactor    float64 `json:"clutch_factor"`
	MomentumScore   float64 `json:"momentum_score"`
	HeadToHeadScore float64 `json:"head_to_head_score"`
	StabilityIndex  float64 `json:"stability_index"`
	ExperienceScore float64 `json:"experience_score"`
}

// FormIndicators are descriptive recent-form signals reported next to the
// feature vector. They are not weighted by the predictor.
type FormIndicators struct {
	WinRateTrend        float64 `json:"win_rate_trend"` // [-1,1]
	TempoScore          float64 `json:"tempo_score"`
	ComebackProbability float64 `json:"comeback_probability"`
}

// TeamFeatures bundles everything derived for one side of a matchup
type TeamFeatures struct {
	Features FeatureVector  `json:"features"`
	Form     FormIndicators `json:"form"`
}
