// Package worker implements the buffered worker pool pattern for async match ingestion.
// This decouples HTTP request handling from database writes, providing:
// - Backpressure handling via load shedding
// - Batch inserts for efficient ClickHouse writes
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/openmohaa/forecast-api/internal/models"
)

// Prometheus metrics
var (
	matchesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_matches_ingested_total",
		Help: "Total number of match records accepted into the queue",
	})

	matchesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_matches_processed_total",
		Help: "Total number of match records written by workers",
	})

	matchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_matches_failed_total",
		Help: "Total number of match records that failed processing",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "forecast_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forecast_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})

	matchesLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_matches_load_shed_total",
		Help: "Total number of match records dropped due to load shedding",
	})
)

const (
	insertTimeout  = 10 * time.Second
	maxNameLength  = 64
	insertMatchSQL = `
		INSERT INTO forecast.match_results (
			match_id, series_id, played_at,
			team_a_id, team_a_name, team_b_id, team_b_name,
			score_a, score_b, kills_a, kills_b, map_name
		)
	`
	registerTeamSQL = `
		INSERT INTO teams (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
)

// CacheInvalidator drops cached stats for a team once new results land
type CacheInvalidator interface {
	Invalidate(id string)
}

// TeamRegistry records teams seen in ingested matches
type TeamRegistry interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Job represents a unit of work for the worker pool
type Job struct {
	Match     *models.MatchRecord
	Timestamp time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Registry      TeamRegistry     // optional
	Cache         CacheInvalidator // optional
	Logger        *zap.Logger
}

// Pool manages a pool of workers for async match ingestion
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
	stopOnce sync.Once
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop gracefully shuts down the worker pool. Queued matches are flushed.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("Stopping worker pool...")
		close(p.jobQueue)
		p.wg.Wait()
		if p.cancel != nil {
			p.cancel()
		}
		p.logger.Info("Worker pool stopped")
	})
}

// Enqueue adds a match to the queue. Returns false without blocking when the
// queue is full or the pool is stopping.
func (p *Pool) Enqueue(match *models.MatchRecord) bool {
	job := Job{
		Match:     match,
		Timestamp: time.Now(),
	}

	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue match (pool stopped)", "error", r)
		}
	}()

	if p.ctx != nil && p.ctx.Err() != nil {
		matchesLoadShed.Inc()
		return false
	}

	select {
	case p.jobQueue <- job:
		matchesIngested.Inc()
		return true
	default:
		p.logger.Warnw("Worker queue full, shedding match", "match_id", match.MatchID)
		matchesLoadShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker processes jobs from the queue in batches
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch processing failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			matchesFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Batch processed", "worker", id, "batchSize", len(batch), "duration", time.Since(start))
			matchesProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// processBatch writes a batch to ClickHouse, then registers the teams and
// invalidates their cached stats.
func (p *Pool) processBatch(batch []Job) error {
	if len(batch) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
	defer cancel()

	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertMatchSQL)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	teams := make(map[string]string)
	for _, job := range batch {
		m := job.Match
		playedAt := m.PlayedAt
		if playedAt.IsZero() {
			playedAt = job.Timestamp
		}
		nameA, nameB := sanitizeName(m.TeamAName), sanitizeName(m.TeamBName)

		err := chBatch.Append(
			matchID(m, playedAt),
			m.SeriesID,
			playedAt.UTC(),
			m.TeamAID,
			nameA,
			m.TeamBID,
			nameB,
			int32(m.ScoreA),
			int32(m.ScoreB),
			int32(m.KillsA),
			int32(m.KillsB),
			m.MapName,
		)
		if err != nil {
			p.logger.Warnw("Failed to append match to batch", "error", err, "match_id", m.MatchID)
			continue
		}
		teams[m.TeamAID] = nameA
		teams[m.TeamBID] = nameB
	}

	if err := chBatch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	p.registerTeams(ctx, teams)
	if p.config.Cache != nil {
		for id := range teams {
			p.config.Cache.Invalidate(id)
		}
	}
	return nil
}

// registerTeams upserts teams into the registry so the resolver can find
// them after the next index load. Failures are logged only.
func (p *Pool) registerTeams(ctx context.Context, teams map[string]string) {
	if p.config.Registry == nil {
		return
	}
	for id, name := range teams {
		if name == "" {
			continue
		}
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		if _, err := p.config.Registry.Exec(ctx, registerTeamSQL, n, name); err != nil {
			p.logger.Warnw("Failed to register team", "error", err, "team_id", id)
		}
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

// Helper functions

// sanitizeName drops control characters, collapses whitespace and caps the
// length.
func sanitizeName(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < utf8.RuneSelf && (unicode.IsSpace(rune(c)) || unicode.IsControl(rune(c))) {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteByte(c)
	}

	out := sb.String()
	if r := []rune(out); len(r) > maxNameLength {
		out = strings.TrimSpace(string(r[:maxNameLength]))
	}
	return out
}

// matchID keeps a caller-supplied id. Otherwise it derives a deterministic
// UUID from the teams and kickoff so a re-sent record replaces itself.
func matchID(m *models.MatchRecord, playedAt time.Time) string {
	if m.MatchID != "" {
		return m.MatchID
	}
	key := fmt.Sprintf("%s|%s|%d", m.TeamAID, m.TeamBID, playedAt.Unix())
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}
