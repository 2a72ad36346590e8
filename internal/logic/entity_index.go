package logic

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/openmohaa/forecast-api/internal/models"
)

// EntityIndex is the process-local cache of canonical entities the resolver
// matches against. Its lifecycle belongs to whoever constructs it.
type EntityIndex struct {
	source   EntitySource
	logger   *zap.SugaredLogger
	mu       sync.RWMutex
	entities []models.CanonicalEntity // sorted by name
	byID     map[string]int
	sfGroup  singleflight.Group
	loaded   atomic.Bool
}

func NewEntityIndex(source EntitySource, logger *zap.Logger) *EntityIndex {
	return &EntityIndex{
		source: source,
		logger: logger.Sugar(),
		byID:   make(map[string]int),
	}
}

// Len returns the number of cached entities
func (ix *EntityIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entities)
}

// Loaded reports whether a full Load has completed. Entities added one at a
// time through Fetch do not count.
func (ix *EntityIndex) Loaded() bool {
	return ix.loaded.Load()
}

// Snapshot returns a copy of the cached entities in name order
func (ix *EntityIndex) Snapshot() []models.CanonicalEntity {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]models.CanonicalEntity, len(ix.entities))
	copy(out, ix.entities)
	return out
}

// Load replaces the index contents from the source. Concurrent callers share
// a single provider round-trip.
func (ix *EntityIndex) Load(ctx context.Context) error {
	_, err, _ := ix.sfGroup.Do("load", func() (any, error) {
		entities, err := ix.source.ListEntities(ctx)
		if err != nil {
			return nil, fmt.Errorf("list entities: %w", err)
		}
		ix.replace(entities)
		ix.loaded.Store(true)
		ix.logger.Infow("Entity index loaded", "entities", len(entities))
		return nil, nil
	})
	return err
}

func (ix *EntityIndex) replace(entities []models.CanonicalEntity) {
	valid := make([]models.CanonicalEntity, 0, len(entities))
	for _, e := range entities {
		if err := AssertValidID(e.ID); err != nil {
			ix.logger.Warnw("Skipping entity with invalid id", "id", e.ID, "name", e.Name)
			continue
		}
		valid = append(valid, e)
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Name < valid[j].Name })

	byID := make(map[string]int, len(valid))
	for i, e := range valid {
		byID[e.ID] = i
	}

	ix.mu.Lock()
	ix.entities = valid
	ix.byID = byID
	ix.mu.Unlock()
}

// Add inserts an entity unless one with the same id is already cached.
// Cached entities are never overwritten.
func (ix *EntityIndex) Add(e models.CanonicalEntity) {
	if AssertValidID(e.ID) != nil {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.byID[e.ID]; ok {
		return
	}
	pos := sort.Search(len(ix.entities), func(i int) bool { return ix.entities[i].Name >= e.Name })
	ix.entities = append(ix.entities, models.CanonicalEntity{})
	copy(ix.entities[pos+1:], ix.entities[pos:])
	ix.entities[pos] = e
	for i := pos; i < len(ix.entities); i++ {
		ix.byID[ix.entities[i].ID] = i
	}
}

// FindByName returns the cached entity whose full name equals name, exactly
// or after normalization.
func (ix *EntityIndex) FindByName(name string) (models.CanonicalEntity, bool) {
	norm := NormalizeInput(name)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, e := range ix.entities {
		if e.Name == name {
			return e, true
		}
	}
	for _, e := range ix.entities {
		if NormalizeInput(e.Name) == norm {
			return e, true
		}
	}
	return models.CanonicalEntity{}, false
}

// Fetch asks the source for one entity by canonical name and caches it
func (ix *EntityIndex) Fetch(ctx context.Context, name string) (*models.CanonicalEntity, error) {
	e, err := ix.source.FindEntity(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find entity %q: %w", name, err)
	}
	if e == nil {
		return nil, nil
	}
	if err := AssertValidID(e.ID); err != nil {
		return nil, err
	}
	ix.Add(*e)
	return e, nil
}
