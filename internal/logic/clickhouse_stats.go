package logic

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/openmohaa/forecast-api/internal/models"
)

// timeWindowDays maps provider time windows onto a look-back in days
var timeWindowDays = map[string]int{
	"LAST_WEEK":     7,
	"LAST_MONTH":    30,
	"LAST_3_MONTHS": 90,
	"LAST_6_MONTHS": 180,
	"LAST_YEAR":     365,
}

// clickhouseStatsProvider aggregates team statistics from ingested match
// results. It answers in the flat provider shape so it flows through the
// same sanitize tier as the HTTP provider.
type clickhouseStatsProvider struct {
	ch driver.Conn
}

func NewClickHouseStatsProvider(ch driver.Conn) StatsProvider {
	return &clickhouseStatsProvider{ch: ch}
}

func (p *clickhouseStatsProvider) QueryStats(ctx context.Context, id string, filter models.StatsFilter) (json.RawMessage, error) {
	days, ok := timeWindowDays[filter.TimeWindow]
	if !ok {
		days = timeWindowDays["LAST_3_MONTHS"]
	}

	var games, wins, losses, series uint64
	var avgKills float64
	err := p.ch.QueryRow(ctx, `
		SELECT
			count() AS games,
			countIf((team_a_id = ? AND score_a > score_b) OR (team_b_id = ? AND score_b > score_a)) AS wins,
			countIf((team_a_id = ? AND score_a < score_b) OR (team_b_id = ? AND score_b < score_a)) AS losses,
			avg(if(team_a_id = ?, kills_a, kills_b)) AS avg_kills,
			uniqExactIf(series_id, series_id != '') AS series
		FROM forecast.match_results FINAL
		WHERE (team_a_id = ? OR team_b_id = ?)
		  AND played_at >= now() - INTERVAL ? DAY
	`, id, id, id, id, id, id, id, days).Scan(&games, &wins, &losses, &avgKills, &series)
	if err != nil {
		return nil, fmt.Errorf("team stats query failed: %w", err)
	}

	payload := models.FlatStatsPayload{
		GamesPlayed: models.Flex(float64(games)),
		Wins:        models.Flex(float64(wins)),
		Losses:      models.Flex(float64(losses)),
		SeriesCount: models.Flex(float64(series)),
	}
	// avg over an empty set is nan
	if !math.IsNaN(avgKills) && !math.IsInf(avgKills, 0) {
		payload.AvgKills = models.Flex(avgKills)
	}
	if games > 0 {
		payload.WinRate = models.Flex(float64(wins) / float64(games))
	}
	return json.Marshal(payload)
}
