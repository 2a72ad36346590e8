package logic

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/openmohaa/forecast-api/internal/models"
)

// DefaultHistoryLimit is how many recent matches feed the form features
const DefaultHistoryLimit = 20

const matchResultsDDL = `
	CREATE TABLE IF NOT EXISTS forecast.match_results (
		match_id     String,
		series_id    String,
		played_at    DateTime,
		team_a_id    String,
		team_a_name  String,
		team_b_id    String,
		team_b_name  String,
		score_a      Int32,
		score_b      Int32,
		kills_a      Int32,
		kills_b      Int32,
		map_name     String
	) ENGINE = ReplacingMergeTree
	ORDER BY (match_id)
`

// EnsureHistorySchema creates the match results table if it does not exist
func EnsureHistorySchema(ctx context.Context, ch driver.Conn) error {
	if err := ch.Exec(ctx, `CREATE DATABASE IF NOT EXISTS forecast`); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	if err := ch.Exec(ctx, matchResultsDDL); err != nil {
		return fmt.Errorf("create match_results: %w", err)
	}
	return nil
}

type clickhouseHistory struct {
	ch driver.Conn
}

func NewClickHouseHistory(ch driver.Conn) HistorySource {
	return &clickhouseHistory{ch: ch}
}

// RecentMatches returns the team's latest completed matches, most recent first
func (h *clickhouseHistory) RecentMatches(ctx context.Context, id string, limit int) ([]models.MatchRecord, error) {
	return h.Matches(ctx, MatchQuery{TeamID: id, Limit: limit})
}

// Matches runs a filtered match_results lookup
func (h *clickhouseHistory) Matches(ctx context.Context, q MatchQuery) ([]models.MatchRecord, error) {
	query, args, err := BuildMatchQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := h.ch.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("match query failed: %w", err)
	}
	defer rows.Close()

	var out []models.MatchRecord
	for rows.Next() {
		var m models.MatchRecord
		var scoreA, scoreB, killsA, killsB int32
		if err := rows.Scan(
			&m.MatchID, &m.SeriesID, &m.PlayedAt,
			&m.TeamAID, &m.TeamAName, &m.TeamBID, &m.TeamBName,
			&scoreA, &scoreB, &killsA, &killsB, &m.MapName,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		m.ScoreA, m.ScoreB = int(scoreA), int(scoreB)
		m.KillsA, m.KillsB = int(killsA), int(killsB)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// HeadToHead counts past meetings between two teams from A's perspective
func (h *clickhouseHistory) HeadToHead(ctx context.Context, idA, idB string) (models.HeadToHead, error) {
	if err := AssertValidID(idA); err != nil {
		return models.HeadToHead{}, err
	}
	if err := AssertValidID(idB); err != nil {
		return models.HeadToHead{}, err
	}

	var winsA, winsB, draws uint64
	err := h.ch.QueryRow(ctx, `
		SELECT
			countIf((team_a_id = ? AND score_a > score_b) OR (team_b_id = ? AND score_b > score_a)) AS wins_a,
			countIf((team_a_id = ? AND score_a > score_b) OR (team_b_id = ? AND score_b > score_a)) AS wins_b,
			countIf(score_a = score_b) AS draws
		FROM forecast.match_results FINAL
		WHERE (team_a_id = ? AND team_b_id = ?) OR (team_a_id = ? AND team_b_id = ?)
	`, idA, idA, idB, idB, idA, idB, idB, idA).Scan(&winsA, &winsB, &draws)
	if err != nil {
		return models.HeadToHead{}, fmt.Errorf("head to head query failed: %w", err)
	}
	return models.HeadToHead{WinsA: int(winsA), WinsB: int(winsB), Draws: int(draws)}, nil
}
