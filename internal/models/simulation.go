package models

// WinConditionBreakdown counts simulated matches by how long they ran
type WinConditionBreakdown struct {
	Early int `json:"early"`
	Mid   int `json:"mid"`
	Late  int `json:"late"`
}

// ScoreBucket is one entry of the signed score-difference distribution (A minus B)
type ScoreBucket struct {
	Diff  int `json:"diff"`
	Count int `json:"count"`
}

// SimulationResult aggregates a Monte Carlo run over independent matches
type SimulationResult struct {
	WinsA                 int                   `json:"wins_a"`
	WinsB                 int                   `json:"wins_b"`
	Iterations            int                   `json:"iterations"`
	WinProbabilityA       float64               `json:"win_probability_a"`
	AvgScoreA             float64               `json:"avg_score_a"`
	AvgScoreB             float64               `json:"avg_score_b"`
	ScoreDistribution     []ScoreBucket         `json:"score_distribution"`
	WinConditionBreakdown WinConditionBreakdown `json:"win_condition_breakdown"`
	UpsetScenarios        int                   `json:"upset_scenarios"`
	Confidence            float64               `json:"confidence"`
}

// TournamentEntrant is a seeded bracket participant. Seed 1 is the favorite.
type TournamentEntrant struct {
	Name     string        `json:"name"`
	Seed     int           `json:"seed"`
	Features FeatureVector `json:"features"`
}

// BracketMatch is a single pairing in a bracket round
type BracketMatch struct {
	TeamA  string `json:"team_a"`
	SeedA  int    `json:"seed_a"`
	TeamB  string `json:"team_b,omitempty"`
	SeedB  int    `json:"seed_b,omitempty"`
	Winner string `json:"winner"`
	WinsA  int    `json:"wins_a"`
	WinsB  int    `json:"wins_b"`
	Bye    bool   `json:"bye"`
	Upset  bool   `json:"upset"`
}

// BracketRound is one elimination round
type BracketRound struct {
	Round   int            `json:"round"`
	Matches []BracketMatch `json:"matches"`
}

// TournamentResult is a simulated single-elimination bracket
type TournamentResult struct {
	TournamentID string         `json:"tournament_id"`
	Rounds       []BracketRound `json:"rounds"`
	Champion     string         `json:"champion"`
	Upsets       int            `json:"upsets"`
}
