package logic

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/openmohaa/forecast-api/internal/models"
)

// MockEntitySource implements EntitySource for testing
type MockEntitySource struct {
	Entities  []models.CanonicalEntity
	ListErr   error
	FindFunc  func(ctx context.Context, name string) (*models.CanonicalEntity, error)
	listCalls atomic.Int32
	findCalls atomic.Int32
}

func (m *MockEntitySource) ListEntities(ctx context.Context) ([]models.CanonicalEntity, error) {
	m.listCalls.Add(1)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.CanonicalEntity, len(m.Entities))
	copy(out, m.Entities)
	return out, nil
}

func (m *MockEntitySource) FindEntity(ctx context.Context, name string) (*models.CanonicalEntity, error) {
	m.findCalls.Add(1)
	if m.FindFunc != nil {
		return m.FindFunc(ctx, name)
	}
	for _, e := range m.Entities {
		if e.Name == name {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

// MockStatsProvider implements StatsProvider for testing
type MockStatsProvider struct {
	QueryStatsFunc func(ctx context.Context, id string, filter models.StatsFilter) (json.RawMessage, error)
	mu             sync.Mutex
	calls          []string
}

func (m *MockStatsProvider) QueryStats(ctx context.Context, id string, filter models.StatsFilter) (json.RawMessage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, id)
	m.mu.Unlock()
	if m.QueryStatsFunc != nil {
		return m.QueryStatsFunc(ctx, id, filter)
	}
	return nil, errors.New("provider unavailable")
}

func (m *MockStatsProvider) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// MockHistorySource implements HistorySource for testing
type MockHistorySource struct {
	RecentMatchesFunc func(ctx context.Context, id string, limit int) ([]models.MatchRecord, error)
	HeadToHeadFunc    func(ctx context.Context, idA, idB string) (models.HeadToHead, error)
	MatchesFunc       func(ctx context.Context, q MatchQuery) ([]models.MatchRecord, error)
}

func (m *MockHistorySource) Matches(ctx context.Context, q MatchQuery) ([]models.MatchRecord, error) {
	if m.MatchesFunc != nil {
		return m.MatchesFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockHistorySource) RecentMatches(ctx context.Context, id string, limit int) ([]models.MatchRecord, error) {
	if m.RecentMatchesFunc != nil {
		return m.RecentMatchesFunc(ctx, id, limit)
	}
	return nil, nil
}

func (m *MockHistorySource) HeadToHead(ctx context.Context, idA, idB string) (models.HeadToHead, error) {
	if m.HeadToHeadFunc != nil {
		return m.HeadToHeadFunc(ctx, idA, idB)
	}
	return models.HeadToHead{}, nil
}

// MockNarrativeGenerator implements NarrativeGenerator for testing
type MockNarrativeGenerator struct {
	GenerateFunc func(ctx context.Context, req NarrativeRequest) (string, error)
}

func (m *MockNarrativeGenerator) Generate(ctx context.Context, req NarrativeRequest) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "", nil
}

// MockNameResolver implements NameResolver for testing
type MockNameResolver struct {
	ResolveFunc func(ctx context.Context, name string) (*models.ResolutionResult, error)
}

func (m *MockNameResolver) Resolve(ctx context.Context, name string) (*models.ResolutionResult, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, name)
	}
	return nil, &NotFoundError{InputName: name}
}

// MockStatsService implements StatsService for testing
type MockStatsService struct {
	GetStatsFunc func(ctx context.Context, id string) (models.GuardedStats, error)
}

func (m *MockStatsService) GetStats(ctx context.Context, id string) (models.GuardedStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, id)
	}
	return models.NeutralStats(), nil
}

func (m *MockStatsService) ClearCache()          {}
func (m *MockStatsService) Invalidate(id string) {}
