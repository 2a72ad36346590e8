package logic

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openmohaa/forecast-api/internal/models"
)

// comparableMatchCount is how many similar past matches each side carries
const comparableMatchCount = 3

// ErrDuplicateEntrant is returned when two tournament names resolve to the
// same team
var ErrDuplicateEntrant = errors.New("duplicate tournament entrant")

// MatchupConfig wires the orchestrator. History and Narrative are optional.
type MatchupConfig struct {
	Resolver         NameResolver
	Stats            StatsService
	History          HistorySource
	Narrative        NarrativeGenerator
	NarrativeTimeout time.Duration
	Simulator        SimulatorConfig
	// Seed fixes the simulator source; 0 draws a fresh seed per request
	Seed         uint64
	HistoryLimit int
	Logger       *zap.Logger
}

type matchupService struct {
	resolver         NameResolver
	stats            StatsService
	history          HistorySource
	narrative        NarrativeGenerator
	narrativeTimeout time.Duration
	simCfg           SimulatorConfig
	seed             uint64
	historyLimit     int
	logger           *zap.SugaredLogger
}

func NewMatchupService(cfg MatchupConfig) MatchupService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	return &matchupService{
		resolver:         cfg.Resolver,
		stats:            cfg.Stats,
		history:          cfg.History,
		narrative:        cfg.Narrative,
		narrativeTimeout: cfg.NarrativeTimeout,
		simCfg:           cfg.Simulator.withDefaults(),
		seed:             cfg.Seed,
		historyLimit:     cfg.HistoryLimit,
		logger:           cfg.Logger.Sugar(),
	}
}

// sideData is the per-team evidence gathered before feature derivation
type sideData struct {
	resolution *models.ResolutionResult
	stats      models.GuardedStats
	recent     []models.MatchRecord
}

// PredictMatchup resolves both names, gathers evidence for each side
// concurrently and returns the combined forecast. It fails only when a name
// cannot be resolved.
func (s *matchupService) PredictMatchup(ctx context.Context, nameA, nameB string) (*models.MatchupResult, error) {
	a, b, h2h, err := s.gather(ctx, nameA, nameB)
	if err != nil {
		return nil, err
	}

	sideA, sideB := s.buildSides(a, b, h2h)
	prediction := PredictMatchup(sideA.Features, sideB.Features)
	simulation := s.simulate(sideA.Features, sideB.Features, 0, 0)

	result := &models.MatchupResult{
		RequestID:   uuid.NewString(),
		TeamA:       sideA,
		TeamB:       sideB,
		Prediction:  prediction,
		Simulation:  simulation,
		Degraded:    sideA.Stats.DataSource != models.SourceLive || sideB.Stats.DataSource != models.SourceLive,
		GeneratedAt: time.Now().UTC(),
	}

	result.Narrative = narrate(ctx, s.narrative, s.narrativeTimeout, NarrativeRequest{
		TeamA:          sideA.Resolution.Entity.Name,
		TeamB:          sideB.Resolution.Entity.Name,
		FeatureVectors: [2]models.FeatureVector{sideA.Features, sideB.Features},
		Prediction:     prediction,
		Simulation:     simulation,
	}, s.logger)

	s.logger.Infow("Matchup predicted",
		"request_id", result.RequestID,
		"team_a", sideA.Resolution.Entity.Name,
		"team_b", sideB.Resolution.Entity.Name,
		"win_probability_a", prediction.WinProbabilityA,
		"degraded", result.Degraded,
	)
	return result, nil
}

// SimulateMatchup runs only the Monte Carlo simulation for two names
func (s *matchupService) SimulateMatchup(ctx context.Context, nameA, nameB string, iterations int, seed uint64) (*models.SimulationResult, error) {
	a, b, h2h, err := s.gather(ctx, nameA, nameB)
	if err != nil {
		return nil, err
	}
	sideA, sideB := s.buildSides(a, b, h2h)
	sim := s.simulate(sideA.Features, sideB.Features, iterations, seed)
	return &sim, nil
}

// SimulateTournament resolves every entrant, seeds them by raw strength and
// plays a single-elimination bracket.
func (s *matchupService) SimulateTournament(ctx context.Context, names []string, seed uint64) (*models.TournamentResult, error) {
	sides := make([]sideData, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, name := range names {
		g.Go(func() error {
			side, err := s.collectSide(gctx, name)
			if err != nil {
				return err
			}
			sides[i] = side
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(sides))
	entrants := make([]models.TournamentEntrant, len(sides))
	for i, side := range sides {
		e := side.resolution.Entity
		if prev, ok := seen[e.ID]; ok {
			s.logger.Warnw("Duplicate tournament entrant", "team", e.Name, "inputs", []string{prev, names[i]})
			return nil, ErrDuplicateEntrant
		}
		seen[e.ID] = names[i]
		entrants[i] = models.TournamentEntrant{
			Name: e.Name,
			Features: ComputeFeatures(FeatureInput{
				Stats:      side.stats,
				RecentForm: FormSequence(e.ID, side.recent),
			}),
		}
	}

	sort.SliceStable(entrants, func(i, j int) bool {
		return RawScore(entrants[i].Features) > RawScore(entrants[j].Features)
	})
	for i := range entrants {
		entrants[i].Seed = i + 1
	}

	start := time.Now()
	result := SimulateTournament(entrants, s.simCfg, DefaultTournamentMatchIterations, s.source(seed))
	simulationDuration.Observe(time.Since(start).Seconds())
	result.TournamentID = uuid.NewString()

	s.logger.Infow("Tournament simulated",
		"tournament_id", result.TournamentID,
		"entrants", len(entrants),
		"champion", result.Champion,
		"upsets", result.Upsets,
	)
	return &result, nil
}

// gather collects both sides concurrently. Only resolution and guard errors
// are fatal; history failures degrade to empty evidence.
func (s *matchupService) gather(ctx context.Context, nameA, nameB string) (a, b sideData, h2h models.HeadToHead, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.collectSide(gctx, nameA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = s.collectSide(gctx, nameB)
		return err
	})
	if err = g.Wait(); err != nil {
		return a, b, h2h, err
	}

	h2h = s.headToHead(ctx, a.resolution.Entity.ID, b.resolution.Entity.ID)
	return a, b, h2h, nil
}

func (s *matchupService) collectSide(ctx context.Context, name string) (sideData, error) {
	res, err := s.resolver.Resolve(ctx, name)
	if err != nil {
		return sideData{}, err
	}
	id := res.Entity.ID

	stats, err := s.stats.GetStats(ctx, id)
	if err != nil {
		return sideData{}, err
	}

	side := sideData{resolution: res, stats: stats}
	if s.history != nil {
		recent, err := s.history.RecentMatches(ctx, id, s.historyLimit)
		if err != nil {
			s.logger.Warnw("Recent matches unavailable", "id", id, "error", err)
		} else {
			side.recent = recent
		}
	}
	return side, nil
}

func (s *matchupService) headToHead(ctx context.Context, idA, idB string) models.HeadToHead {
	if s.history == nil || idA == idB {
		return models.HeadToHead{}
	}
	h2h, err := s.history.HeadToHead(ctx, idA, idB)
	if err != nil {
		s.logger.Warnw("Head-to-head unavailable", "team_a", idA, "team_b", idB, "error", err)
		return models.HeadToHead{}
	}
	return h2h
}

// buildSides derives features, form and comparable matches for both sides.
// The head-to-head ratio is complemented for side B.
func (s *matchupService) buildSides(a, b sideData, h2h models.HeadToHead) (models.MatchupSide, models.MatchupSide) {
	ratio, hasH2H := HeadToHeadRatio(h2h)
	sideA := s.buildSide(a, b, ratio, hasH2H)
	sideB := s.buildSide(b, a, 1-ratio, hasH2H)
	return sideA, sideB
}

func (s *matchupService) buildSide(own, opp sideData, h2hRatio float64, hasH2H bool) models.MatchupSide {
	e := own.resolution.Entity
	form := FormSequence(e.ID, own.recent)
	query := e.Name + " win " + opp.resolution.Entity.Name

	return models.MatchupSide{
		Resolution: *own.resolution,
		Stats:      own.stats,
		Features: ComputeFeatures(FeatureInput{
			Stats:         own.stats,
			RecentForm:    form,
			HeadToHead:    h2hRatio,
			HasHeadToHead: hasH2H,
		}),
		Form:              ComputeFormIndicators(e.ID, own.recent),
		RecentForm:        form,
		ComparableMatches: SimilarMatches(query, e.ID, e.Name, own.recent, comparableMatchCount),
	}
}

func (s *matchupService) simulate(a, b models.FeatureVector, iterations int, seed uint64) models.SimulationResult {
	cfg := s.simCfg
	if iterations > 0 {
		cfg.Iterations = iterations
	}
	start := time.Now()
	res := SimulateMatch(a, b, cfg, s.source(seed))
	simulationDuration.Observe(time.Since(start).Seconds())
	return res
}

// source picks the request seed, then the configured seed, then a fresh one
func (s *matchupService) source(seed uint64) RandomSource {
	if seed == 0 {
		seed = s.seed
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	return NewSeededSource(seed)
}
