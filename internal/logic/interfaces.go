package logic

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/openmohaa/forecast-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RedisClient defines the interface for Redis client
type RedisClient interface {
	HGet(ctx context.Context, key string, field string) *redis.StringCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// StatsProvider is the external statistics service. It may fail on
// network, auth or schema errors and its payload shape is not guaranteed.
type StatsProvider interface {
	QueryStats(ctx context.Context, id string, filter models.StatsFilter) (json.RawMessage, error)
}

// EntitySource supplies canonical entities to the resolver
type EntitySource interface {
	ListEntities(ctx context.Context) ([]models.CanonicalEntity, error)
	// FindEntity fetches a single entity by exact canonical name; nil, nil when absent
	FindEntity(ctx context.Context, name string) (*models.CanonicalEntity, error)
}

// HistorySource supplies completed matches. Callers validate ids first.
type HistorySource interface {
	RecentMatches(ctx context.Context, id string, limit int) ([]models.MatchRecord, error)
	HeadToHead(ctx context.Context, idA, idB string) (models.HeadToHead, error)
	Matches(ctx context.Context, q MatchQuery) ([]models.MatchRecord, error)
}

// NarrativeRequest is the payload handed to the narrative generator
type NarrativeRequest struct {
	TeamA          string                  `json:"team_a"`
	TeamB          string                  `json:"team_b"`
	FeatureVectors [2]models.FeatureVector `json:"feature_vectors"`
	Prediction     models.PredictionResult `json:"prediction"`
	Simulation     models.SimulationResult `json:"simulation"`
}

// NarrativeGenerator produces a human-readable report. Optional.
type NarrativeGenerator interface {
	Generate(ctx context.Context, req NarrativeRequest) (string, error)
}

// NameResolver maps free text to a canonical entity
type NameResolver interface {
	Resolve(ctx context.Context, name string) (*models.ResolutionResult, error)
}

// StatsService is the tiered, never-failing stats acquisition
type StatsService interface {
	GetStats(ctx context.Context, id string) (models.GuardedStats, error)
	ClearCache()
	Invalidate(id string)
}

// MatchupService is the orchestrated prediction entry point
type MatchupService interface {
	PredictMatchup(ctx context.Context, nameA, nameB string) (*models.MatchupResult, error)
	SimulateMatchup(ctx context.Context, nameA, nameB string, iterations int, seed uint64) (*models.SimulationResult, error)
	SimulateTournament(ctx context.Context, names []string, seed uint64) (*models.TournamentResult, error)
}
