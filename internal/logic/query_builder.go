package logic

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidOrder is returned for an unknown MatchQuery.Order
var ErrInvalidOrder = errors.New("invalid order")

const (
	maxMatchQueryLimit = 500
	matchColumns       = `match_id, series_id, played_at, team_a_id, team_a_name, team_b_id, team_b_name,
		score_a, score_b, kills_a, kills_b, map_name`
)

// MatchQuery holds parameters for a match_results lookup
type MatchQuery struct {
	TeamID     string    `json:"team_id"`     // WHERE team played on either side
	OpponentID string    `json:"opponent_id"` // optional: only meetings with this team
	MapName    string    `json:"map_name"`    // WHERE map_name = ?
	Since      time.Time `json:"since"`
	Until      time.Time `json:"until"`
	Order      string    `json:"order"` // recent (default) or oldest
	Limit      int       `json:"limit"`
}

// allowedOrders maps safe API values to ORDER BY clauses
var allowedOrders = map[string]string{
	"recent": "played_at DESC",
	"oldest": "played_at ASC",
}

// BuildMatchQuery constructs a safe ClickHouse SQL query. Every id is
// guarded before it is bound.
func BuildMatchQuery(q MatchQuery) (string, []any, error) {
	if err := AssertValidID(q.TeamID); err != nil {
		return "", nil, err
	}
	if q.OpponentID != "" {
		if err := AssertValidID(q.OpponentID); err != nil {
			return "", nil, err
		}
	}

	order := q.Order
	if order == "" {
		order = "recent"
	}
	orderBy, ok := allowedOrders[order]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrInvalidOrder, q.Order)
	}

	query := "SELECT " + matchColumns + " FROM forecast.match_results FINAL WHERE (team_a_id = ? OR team_b_id = ?)"
	args := []any{q.TeamID, q.TeamID}

	if q.OpponentID != "" {
		query += " AND (team_a_id = ? OR team_b_id = ?)"
		args = append(args, q.OpponentID, q.OpponentID)
	}
	if q.MapName != "" {
		query += " AND map_name = ?"
		args = append(args, q.MapName)
	}
	if !q.Since.IsZero() {
		query += " AND played_at >= ?"
		args = append(args, q.Since)
	}
	if !q.Until.IsZero() {
		query += " AND played_at < ?"
		args = append(args, q.Until)
	}

	query += " ORDER BY " + orderBy

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > maxMatchQueryLimit {
		limit = maxMatchQueryLimit
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	return query, args, nil
}
