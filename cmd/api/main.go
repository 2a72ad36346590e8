// @title Forecast API
// @version 1.0
// @description Team name resolution, guarded statistics and matchup forecasts.
// @BasePath /api/v1
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/openmohaa/forecast-api/docs"
	"github.com/openmohaa/forecast-api/internal/config"
	"github.com/openmohaa/forecast-api/internal/handlers"
	"github.com/openmohaa/forecast-api/internal/logic"
	"github.com/openmohaa/forecast-api/internal/provider"
	"github.com/openmohaa/forecast-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(cfg, logger); err != nil {
		sugar.Fatalw("Server exited", "error", err)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Env == "development" {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = level
	return zcfg.Build()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sugar := logger.Sugar()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Databases ───────────────────────────────────────────────
	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pg.Close()

	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		return fmt.Errorf("clickhouse dsn: %w", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		return fmt.Errorf("clickhouse: %w", err)
	}
	defer ch.Close()

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis url: %w", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := logic.EnsureRegistrySchema(schemaCtx, pg); err != nil {
		return err
	}
	if err := logic.EnsureHistorySchema(schemaCtx, ch); err != nil {
		return err
	}

	// ── Name resolution ─────────────────────────────────────────
	fileAliases, err := config.LoadAliases(cfg.AliasFile)
	if err != nil {
		return err
	}
	var redisAliases map[string]string
	if rdb != nil {
		redisAliases, err = logic.LoadAliasOverrides(schemaCtx, rdb)
		if err != nil {
			sugar.Warnw("Alias overrides unavailable", "error", err)
		}
	}
	aliases := logic.NewAliasTable(logic.DefaultAliases, fileAliases, redisAliases)

	// ── Statistics provider ─────────────────────────────────────
	var (
		statsProvider logic.StatsProvider
		providerTeams logic.EntitySource
	)
	switch cfg.StatsProvider {
	case "clickhouse":
		statsProvider = logic.NewClickHouseStatsProvider(ch)
	default:
		client := provider.NewClient(provider.Config{
			BaseURL: cfg.StatsProviderURL,
			APIKey:  cfg.StatsProviderKey,
			Timeout: cfg.StatsProviderTimeout,
			RPS:     cfg.StatsProviderRPS,
			Logger:  logger,
		})
		statsProvider = client
		providerTeams = client
	}

	index := logic.NewEntityIndex(logic.NewChainedEntitySource(logic.NewPgEntitySource(pg), providerTeams), logger)
	resolver := logic.NewNameResolver(index, aliases, logger)

	stats := logic.NewStatsService(logic.StatsServiceConfig{
		Provider:   statsProvider,
		Cache:      logic.NewStatsCache(cfg.StatsCacheTTL),
		Timeout:    cfg.StatsProviderTimeout,
		TimeWindow: cfg.StatsTimeWindow,
		Logger:     logger,
	})
	history := logic.NewClickHouseHistory(ch)

	var narrative logic.NarrativeGenerator
	if cfg.NarrativeURL != "" {
		narrative = provider.NewNarrativeClient(provider.Config{
			BaseURL: cfg.NarrativeURL,
			Timeout: cfg.NarrativeTimeout,
			Logger:  logger,
		})
	}

	simCfg := logic.DefaultSimulatorConfig()
	simCfg.Iterations = cfg.SimIterations
	simCfg.NoiseLevel = cfg.SimNoiseLevel
	simCfg.UpsetProbability = cfg.SimUpsetProbability
	simCfg.MomentumFactor = cfg.SimMomentumFactor

	matchup := logic.NewMatchupService(logic.MatchupConfig{
		Resolver:         resolver,
		Stats:            stats,
		History:          history,
		Narrative:        narrative,
		NarrativeTimeout: cfg.NarrativeTimeout,
		Simulator:        simCfg,
		Seed:             cfg.SimSeed,
		Logger:           logger,
	})

	// ── Ingestion ───────────────────────────────────────────────
	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		ClickHouse:    ch,
		Registry:      pg,
		Cache:         stats,
		Logger:        logger,
	})
	pool.Start(ctx)
	defer pool.Stop()

	// ── HTTP ────────────────────────────────────────────────────
	hcfg := handlers.Config{
		WorkerPool: pool,
		Postgres:   pg,
		ClickHouse: ch,
		Logger:     logger,
		Resolver:   resolver,
		Stats:      stats,
		History:    history,
		Matchup:    matchup,
	}
	if rdb != nil {
		hcfg.Redis = redisPinger{rdb}
	}
	h := handlers.New(hcfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	sugar.Infow("Server listening",
		"addr", server.Addr,
		"env", cfg.Env,
		"statsProvider", cfg.StatsProvider,
		"aliases", aliases.Len(),
		"narrative", narrative != nil,
	)

	// ── Shutdown ────────────────────────────────────────────────
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	sugar.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Warnw("HTTP shutdown", "error", err)
	}
	return nil
}

// redisPinger adapts *redis.Client to handlers.Pinger
type redisPinger struct {
	client *redis.Client
}

func (r redisPinger) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
