package models

// Provider response shapes. The statistics provider's schema is not
// guaranteed stable; these are the two shapes currently observed. Everything
// is optional and normalized by the stats sanitize tier.

// FlatStatsPayload: {"gamesPlayed": 30, "wins": "18", "winRate": 0.6, ...}
type FlatStatsPayload struct {
	GamesPlayed FlexFloat `json:"gamesPlayed"`
	Wins        FlexFloat `json:"wins"`
	Losses      FlexFloat `json:"losses"`
	WinRate     FlexFloat `json:"winRate"`
	AvgKills    FlexFloat `json:"avgKills"`
	SeriesCount FlexFloat `json:"seriesCount"`
}

// SeriesStatsPayload: {"series": {"count": 12, "kills": {"avg": 18.5}},
// "game": {"count": 30, "wins": {"value": 18, "percentage": 60}}}
// optionally wrapped as {"data": {"teamStatistics": {...}}}.
type SeriesStatsPayload struct {
	Series *SeriesBlock `json:"series"`
	Game   *GameBlock   `json:"game"`
}

type SeriesBlock struct {
	Count FlexFloat     `json:"count"`
	Kills *AggregateSet `json:"kills"`
}

type GameBlock struct {
	Count  FlexFloat  `json:"count"`
	Wins   *CountStat `json:"wins"`
	Losses *CountStat `json:"losses"`
}

type AggregateSet struct {
	Sum FlexFloat `json:"sum"`
	Avg FlexFloat `json:"avg"`
	Min FlexFloat `json:"min"`
	Max FlexFloat `json:"max"`
}

type CountStat struct {
	Value      FlexFloat `json:"value"`
	Percentage FlexFloat `json:"percentage"`
}

// SeriesStatsEnvelope is the wrapped form of SeriesStatsPayload
type SeriesStatsEnvelope struct {
	Data *struct {
		TeamStatistics *SeriesStatsPayload `json:"teamStatistics"`
	} `json:"data"`
}
