package models

import "time"

// DataSource is the provenance tag carried by every GuardedStats
type DataSource string

const (
	SourceLive            DataSource = "LIVE"
	SourceGuardedFallback DataSource = "GUARDED_FALLBACK"
	SourceNoData          DataSource = "NO_DATA"
)

// GuardedStats is the never-failing output of stats acquisition.
// Consumers must check DataSource/IsPartial before trusting a prediction.
type GuardedStats struct {
	GamesPlayed int        `json:"games_played"`
	Wins        int        `json:"wins"`
	Losses      int        `json:"losses"`
	WinRate     float64    `json:"win_rate"` // [0,1]
	AvgKills    float64    `json:"avg_kills"`
	SeriesCount int        `json:"series_count"`
	DataSource  DataSource `json:"data_source"`
	IsPartial   bool       `json:"is_partial"`
}

// NeutralStats is the deterministic Tier-3 result
func NeutralStats() GuardedStats {
	return GuardedStats{
		WinRate:    0.5,
		DataSource: SourceNoData,
		IsPartial:  true,
	}
}

// StatsFilter narrows a provider statistics query
type StatsFilter struct {
	TimeWindow string `json:"time_window"`
}

// MatchRecord is one completed match between two registered teams.
// ScoreA/ScoreB are round wins; KillsA/KillsB are team kill totals.
type MatchRecord struct {
	MatchID   string    `json:"match_id"`
	SeriesID  string    `json:"series_id,omitempty"`
	PlayedAt  time.Time `json:"played_at" validate:"required"`
	TeamAID   string    `json:"team_a_id" validate:"required,numeric,max=10"`
	TeamAName string    `json:"team_a_name"`
	TeamBID   string    `json:"team_b_id" validate:"required,numeric,max=10,nefield=TeamAID"`
	TeamBName string    `json:"team_b_name"`
	ScoreA    int       `json:"score_a" validate:"gte=0"`
	ScoreB    int       `json:"score_b" validate:"gte=0"`
	KillsA    int       `json:"kills_a" validate:"gte=0"`
	KillsB    int       `json:"kills_b" validate:"gte=0"`
	MapName   string    `json:"map_name,omitempty"`
}

// HeadToHead summarizes past meetings from side A's perspective
type HeadToHead struct {
	WinsA int `json:"wins_a"`
	WinsB int `json:"wins_b"`
	Draws int `json:"draws"`
}

// Total returns the number of meetings
func (h HeadToHead) Total() int {
	return h.WinsA + h.WinsB + h.Draws
}

// ComparableMatch is a past match ranked by similarity to the current matchup
type ComparableMatch struct {
	MatchID    string  `json:"match_id"`
	Team       string  `json:"team"`
	Opponent   string  `json:"opponent"`
	Result     string  `json:"result"` // "win", "loss", "draw"
	Score      string  `json:"score"`
	Similarity float64 `json:"similarity"`
	Rank       int     `json:"rank"`
}
