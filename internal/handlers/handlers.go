package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openmohaa/forecast-api/internal/logic"
	"github.com/openmohaa/forecast-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// IngestQueue defines the interface for the match ingestion worker pool
type IngestQueue interface {
	Enqueue(match *models.MatchRecord) bool
	QueueDepth() int
}

// Pinger is satisfied by pgxpool.Pool and clickhouse driver.Conn
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	WorkerPool IngestQueue
	Postgres   Pinger
	ClickHouse Pinger
	Redis      Pinger // optional
	Logger     *zap.Logger
	// Services
	Resolver logic.NameResolver
	Stats    logic.StatsService
	History  logic.HistorySource
	Matchup  logic.MatchupService
}

type Handler struct {
	pool     IngestQueue
	pg       Pinger
	ch       Pinger
	redis    Pinger
	logger   *zap.SugaredLogger
	validate *validator.Validate
	resolver logic.NameResolver
	stats    logic.StatsService
	history  logic.HistorySource
	matchup  logic.MatchupService
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		pool:     cfg.WorkerPool,
		pg:       cfg.Postgres,
		ch:       cfg.ClickHouse,
		redis:    cfg.Redis,
		logger:   logger.Sugar(),
		validate: validator.New(),
		resolver: cfg.Resolver,
		stats:    cfg.Stats,
		history:  cfg.History,
		matchup:  cfg.Matchup,
	}
}

// ValidateStruct runs the handler's validator, falling back to a fresh one
// for handlers built directly in tests.
func (h *Handler) ValidateStruct(v any) error {
	if h.validate == nil {
		h.validate = validator.New()
	}
	return h.validate.Struct(v)
}
