package logic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/openmohaa/forecast-api/internal/models"
)

var (
	errEmptyPayload   = errors.New("empty provider payload")
	errUnknownPayload = errors.New("unrecognized provider payload shape")
)

// providerPayload is the closed set of statistics shapes the provider is
// known to return. Raw provider JSON is handled nowhere else.
type providerPayload interface {
	fields() statsFields
}

type flatPayload struct {
	models.FlatStatsPayload
}

type seriesPayload struct {
	models.SeriesStatsPayload
}

// statsFields is the shape-independent view of a payload. A field with
// Valid=false was absent or unreadable.
type statsFields struct {
	gamesPlayed models.FlexFloat
	wins        models.FlexFloat
	losses      models.FlexFloat
	winRate     models.FlexFloat
	avgKills    models.FlexFloat
	seriesCount models.FlexFloat
}

func (p flatPayload) fields() statsFields {
	return statsFields{
		gamesPlayed: p.GamesPlayed,
		wins:        p.Wins,
		losses:      p.Losses,
		winRate:     p.WinRate,
		avgKills:    p.AvgKills,
		seriesCount: p.SeriesCount,
	}
}

func (p seriesPayload) fields() statsFields {
	var f statsFields
	if s := p.Series; s != nil {
		f.seriesCount = s.Count
		if s.Kills != nil {
			f.avgKills = s.Kills.Avg
		}
	}
	if g := p.Game; g != nil {
		f.gamesPlayed = g.Count
		if g.Wins != nil {
			f.wins = g.Wins.Value
			f.winRate = g.Wins.Percentage
		}
		if g.Losses != nil {
			f.losses = g.Losses.Value
		}
	}
	return f
}

var flatKeys = []string{"gamesPlayed", "wins", "losses", "winRate", "avgKills", "seriesCount"}

// decodeProviderStats classifies raw provider JSON into one of the known shapes
func decodeProviderStats(raw json.RawMessage) (providerPayload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, errEmptyPayload
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	if _, ok := probe["data"]; ok {
		var env models.SeriesStatsEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode wrapped series payload: %w", err)
		}
		if env.Data == nil || env.Data.TeamStatistics == nil {
			return nil, errEmptyPayload
		}
		return seriesPayload{*env.Data.TeamStatistics}, nil
	}

	_, hasSeries := probe["series"]
	_, hasGame := probe["game"]
	if hasSeries || hasGame {
		var p models.SeriesStatsPayload
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, fmt.Errorf("decode series payload: %w", err)
		}
		return seriesPayload{p}, nil
	}

	for _, k := range flatKeys {
		if _, ok := probe[k]; ok {
			var p models.FlatStatsPayload
			if err := json.Unmarshal(trimmed, &p); err != nil {
				return nil, fmt.Errorf("decode flat payload: %w", err)
			}
			return flatPayload{p}, nil
		}
	}
	return nil, errUnknownPayload
}

// sanitized is the result of normalizing statsFields
type sanitized struct {
	stats models.GuardedStats
	// synthesized is set when at least one field had to be filled or derived
	synthesized bool
}

// hasEvidence reports whether the payload described any games at all
func (s sanitized) hasEvidence() bool {
	return s.stats.GamesPlayed > 0
}

// sanitizeStats fills missing numeric fields with 0, derives counts and
// winRate where possible and clamps everything into range. It never fails.
func sanitizeStats(f statsFields) sanitized {
	f.gamesPlayed = countField(f.gamesPlayed)
	f.wins = countField(f.wins)
	f.losses = countField(f.losses)
	f.seriesCount = countField(f.seriesCount)

	synthesized := !f.gamesPlayed.Valid || !f.wins.Valid || !f.losses.Valid ||
		!f.winRate.Valid || !f.avgKills.Valid || !f.seriesCount.Valid

	wins := count(f.wins)
	losses := count(f.losses)
	games := count(f.gamesPlayed)

	if !f.gamesPlayed.Valid && (f.wins.Valid || f.losses.Valid) {
		games = wins + losses
	}
	if !f.losses.Valid && f.gamesPlayed.Valid && f.wins.Valid {
		losses = max(games-wins, 0)
	}
	if wins > games {
		wins = games
		synthesized = true
	}

	var winRate float64
	switch {
	case f.winRate.Valid:
		winRate = f.winRate.Value
		// Percentages arrive as 0-100 from some endpoints
		if winRate > 1 {
			winRate /= 100
		}
	case games > 0:
		winRate = float64(wins) / float64(games)
	}

	return sanitized{
		stats: models.GuardedStats{
			GamesPlayed: games,
			Wins:        wins,
			Losses:      losses,
			WinRate:     clamp01(winRate),
			AvgKills:    math.Max(0, f.avgKills.Or(0)),
			SeriesCount: count(f.seriesCount),
		},
		synthesized: synthesized,
	}
}

// maxCount bounds any count a provider can report
const maxCount = math.MaxInt32

// countField drops counts that are negative, NaN or too large to be real,
// so they are treated as missing.
func countField(f models.FlexFloat) models.FlexFloat {
	if !f.Valid || math.IsNaN(f.Value) || f.Value < 0 || f.Value > maxCount {
		return models.FlexFloat{}
	}
	return f
}

func count(f models.FlexFloat) int {
	if !f.Valid {
		return 0
	}
	return int(math.Round(f.Value))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
