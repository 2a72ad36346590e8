package handlers

import (
	"context"
	"errors"

	"github.com/openmohaa/forecast-api/internal/logic"
	"github.com/openmohaa/forecast-api/internal/models"
)

type MockIngestQueue struct {
	EnqueueFunc func(match *models.MatchRecord) bool
	Enqueued    []*models.MatchRecord
}

func (m *MockIngestQueue) Enqueue(match *models.MatchRecord) bool {
	if m.EnqueueFunc != nil && !m.EnqueueFunc(match) {
		return false
	}
	m.Enqueued = append(m.Enqueued, match)
	return true
}

func (m *MockIngestQueue) QueueDepth() int { return len(m.Enqueued) }

type MockPinger struct {
	Err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.Err }

type MockNameResolver struct {
	ResolveFunc func(ctx context.Context, name string) (*models.ResolutionResult, error)
}

func (m *MockNameResolver) Resolve(ctx context.Context, name string) (*models.ResolutionResult, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, name)
	}
	return nil, &logic.NotFoundError{InputName: name}
}

type MockStatsService struct {
	GetStatsFunc func(ctx context.Context, id string) (models.GuardedStats, error)
	Cleared      int
	Invalidated  []string
}

func (m *MockStatsService) GetStats(ctx context.Context, id string) (models.GuardedStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, id)
	}
	if err := logic.AssertValidID(id); err != nil {
		return models.GuardedStats{}, err
	}
	return models.NeutralStats(), nil
}

func (m *MockStatsService) ClearCache() { m.Cleared++ }
func (m *MockStatsService) Invalidate(id string) { m.Invalidated = append(m.Invalidated, id) }

type MockHistorySource struct {
	MatchesFunc func(ctx context.Context, q logic.MatchQuery) ([]models.MatchRecord, error)
}

func (m *MockHistorySource) RecentMatches(ctx context.Context, id string, limit int) ([]models.MatchRecord, error) {
	return m.Matches(ctx, logic.MatchQuery{TeamID: id, Limit: limit})
}

func (m *MockHistorySource) HeadToHead(ctx context.Context, idA, idB string) (models.HeadToHead, error) {
	return models.HeadToHead{}, nil
}

func (m *MockHistorySource) Matches(ctx context.Context, q logic.MatchQuery) ([]models.MatchRecord, error) {
	if m.MatchesFunc != nil {
		return m.MatchesFunc(ctx, q)
	}
	return []models.MatchRecord{}, nil
}

type MockMatchupService struct {
	PredictFunc    func(ctx context.Context, a, b string) (*models.MatchupResult, error)
	SimulateFunc   func(ctx context.Context, a, b string, iterations int, seed uint64) (*models.SimulationResult, error)
	TournamentFunc func(ctx context.Context, names []string, seed uint64) (*models.TournamentResult, error)
}

func (m *MockMatchupService) PredictMatchup(ctx context.Context, a, b string) (*models.MatchupResult, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, a, b)
	}
	return nil, errors.New("not implemented")
}

func (m *MockMatchupService) SimulateMatchup(ctx context.Context, a, b string, iterations int, seed uint64) (*models.SimulationResult, error) {
	if m.SimulateFunc != nil {
		return m.SimulateFunc(ctx, a, b, iterations, seed)
	}
	return nil, errors.New("not implemented")
}

func (m *MockMatchupService) SimulateTournament(ctx context.Context, names []string, seed uint64) (*models.TournamentResult, error) {
	if m.TournamentFunc != nil {
		return m.TournamentFunc(ctx, names, seed)
	}
	return nil, errors.New("not implemented")
}
