package logic

import (
	"sync"
	"time"

	"github.com/openmohaa/forecast-api/internal/models"
)

// DefaultStatsMaxAge is the stats cache TTL when none is configured
const DefaultStatsMaxAge = 5 * time.Minute

type statsEntry struct {
	data      models.GuardedStats
	timestamp time.Time
}

// StatsCache is an in-memory, process-local map of GuardedStats keyed by
// entity id. Entries expire strictly by age; size is unbounded.
type StatsCache struct {
	mu      sync.RWMutex
	entries map[string]statsEntry
	maxAge  time.Duration
	now     func() time.Time
}

func NewStatsCache(maxAge time.Duration) *StatsCache {
	if maxAge <= 0 {
		maxAge = DefaultStatsMaxAge
	}
	return &StatsCache{
		entries: make(map[string]statsEntry),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Get returns the cached stats for id if the entry is younger than maxAge
func (c *StatsCache) Get(id string) (models.GuardedStats, bool) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok || c.now().Sub(entry.timestamp) >= c.maxAge {
		statsCacheLookups.WithLabelValues("miss").Inc()
		return models.GuardedStats{}, false
	}
	statsCacheLookups.WithLabelValues("hit").Inc()
	return entry.data, true
}

// Set stores stats for id, always refreshing the timestamp
func (c *StatsCache) Set(id string, stats models.GuardedStats) {
	c.mu.Lock()
	c.entries[id] = statsEntry{data: stats, timestamp: c.now()}
	c.mu.Unlock()
}

// Invalidate drops a single entry
func (c *StatsCache) Invalidate(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// Clear drops every entry
func (c *StatsCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]statsEntry)
	c.mu.Unlock()
}

// Len returns the number of entries, expired ones included
func (c *StatsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
