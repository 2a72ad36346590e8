package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/openmohaa/forecast-api/internal/models"
)

// DefaultProviderTimeout bounds every Tier-1 provider call
const DefaultProviderTimeout = 3 * time.Second

var errNoProvider = errors.New("no stats provider configured")

// StatsServiceConfig holds the collaborators of the stats acquisition chain
type StatsServiceConfig struct {
	Provider   StatsProvider
	Cache      *StatsCache
	Timeout    time.Duration
	TimeWindow string
	Logger     *zap.Logger
}

type statsService struct {
	provider StatsProvider
	cache    *StatsCache
	timeout  time.Duration
	filter   models.StatsFilter
	logger   *zap.SugaredLogger
	sfGroup  singleflight.Group
}

func NewStatsService(cfg StatsServiceConfig) StatsService {
	if cfg.Cache == nil {
		cfg.Cache = NewStatsCache(DefaultStatsMaxAge)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultProviderTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &statsService{
		provider: cfg.Provider,
		cache:    cfg.Cache,
		timeout:  cfg.Timeout,
		filter:   models.StatsFilter{TimeWindow: cfg.TimeWindow},
		logger:   cfg.Logger.Sugar(),
	}
}

// tierOutcome is the result of one pass through the acquisition chain.
// Exactly one of liveOutcome, guardedOutcome or fallbackOutcome.
type tierOutcome interface {
	result() models.GuardedStats
}

// liveOutcome: provider answered with complete data
type liveOutcome struct {
	stats models.GuardedStats
}

// guardedOutcome: provider answered, some fields had to be synthesized
type guardedOutcome struct {
	stats models.GuardedStats
}

// fallbackOutcome: no usable evidence; the neutral object is returned
type fallbackOutcome struct {
	reason error
}

func (o liveOutcome) result() models.GuardedStats {
	s := o.stats
	s.DataSource = models.SourceLive
	s.IsPartial = false
	return s
}

func (o guardedOutcome) result() models.GuardedStats {
	s := o.stats
	s.DataSource = models.SourceGuardedFallback
	s.IsPartial = true
	return s
}

func (o fallbackOutcome) result() models.GuardedStats {
	return models.NeutralStats()
}

// GetStats returns tagged statistics for a validated id. The only error it
// can return is *InvalidIDError; provider failures degrade instead.
func (s *statsService) GetStats(ctx context.Context, id string) (models.GuardedStats, error) {
	if err := AssertValidID(id); err != nil {
		return models.GuardedStats{}, err
	}
	if cached, ok := s.cache.Get(id); ok {
		return cached, nil
	}

	// The shared call outlives any single caller; queryProvider still bounds it
	// with the provider timeout.
	shared := context.WithoutCancel(ctx)
	ch := s.sfGroup.DoChan(id, func() (any, error) {
		outcome := s.acquire(shared, id)
		stats := outcome.result()
		statsTierTotal.WithLabelValues(string(stats.DataSource)).Inc()

		switch o := outcome.(type) {
		case guardedOutcome:
			s.logger.Warnw("Stats degraded to guarded fallback", "id", id, "games_played", stats.GamesPlayed)
		case fallbackOutcome:
			s.logger.Warnw("Stats unavailable, using neutral fallback", "id", id, "reason", o.reason)
		}

		// Neutral results are not cached so the next request retries the provider
		if stats.DataSource != models.SourceNoData {
			s.cache.Set(id, stats)
		}
		return stats, nil
	})

	select {
	case r := <-ch:
		return r.Val.(models.GuardedStats), nil
	case <-ctx.Done():
		return models.NeutralStats(), nil
	}
}

// acquire runs the three tiers in order: live, sanitize, fallback
func (s *statsService) acquire(ctx context.Context, id string) tierOutcome {
	raw, err := s.queryProvider(ctx, id)
	if err != nil {
		return fallbackOutcome{reason: err}
	}

	payload, err := decodeProviderStats(raw)
	if err != nil {
		return fallbackOutcome{reason: err}
	}

	clean := sanitizeStats(payload.fields())
	switch {
	case !clean.hasEvidence():
		return fallbackOutcome{reason: errors.New("no games in provider payload")}
	case clean.synthesized:
		return guardedOutcome{stats: clean.stats}
	default:
		return liveOutcome{stats: clean.stats}
	}
}

type providerReply struct {
	raw json.RawMessage
	err error
}

// queryProvider performs the Tier-1 call under a deadline. The deadline is
// enforced even if the provider ignores its context, and a panicking
// provider is reported as a failed call.
func (s *statsService) queryProvider(ctx context.Context, id string) (json.RawMessage, error) {
	if s.provider == nil {
		return nil, errNoProvider
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	defer func() { providerDuration.Observe(time.Since(start).Seconds()) }()

	replies := make(chan providerReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Errorw("Stats provider panicked", "id", id, "panic", r)
				replies <- providerReply{err: fmt.Errorf("stats provider panic: %v", r)}
			}
		}()
		raw, err := s.provider.QueryStats(ctx, id, s.filter)
		replies <- providerReply{raw: raw, err: err}
	}()

	select {
	case r := <-replies:
		return r.raw, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("stats provider: %w", ctx.Err())
	}
}

// ClearCache drops every cached stats entry
func (s *statsService) ClearCache() {
	s.cache.Clear()
	s.logger.Infow("Stats cache cleared")
}

// Invalidate drops the cached stats for a single id
func (s *statsService) Invalidate(id string) {
	s.cache.Invalidate(id)
}
