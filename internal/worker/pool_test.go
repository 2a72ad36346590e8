package worker

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/openmohaa/forecast-api/internal/models"
)

func testMatch(id string) *models.MatchRecord {
	return &models.MatchRecord{
		MatchID:   id,
		PlayedAt:  time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC),
		TeamAID:   "47351",
		TeamAName: " Cloud9\t",
		TeamBID:   "47380",
		TeamBName: "Team  Liquid",
		ScoreA:    13,
		ScoreB:    9,
		KillsA:    98,
		KillsB:    81,
		MapName:   "de_nuke",
	}
}

func TestEnqueueFull(t *testing.T) {
	// Create a pool manually to avoid external dependencies
	cfg := PoolConfig{
		QueueSize: 1,
		Logger:    zap.NewNop(),
	}

	pool := &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.ctx = ctx
	pool.cancel = cancel
	defer cancel()

	if !pool.Enqueue(testMatch("1")) {
		t.Fatal("Failed to enqueue first match")
	}

	start := time.Now()
	enqueued := pool.Enqueue(testMatch("2"))
	duration := time.Since(start)

	if enqueued {
		t.Error("Enqueue should have returned false when queue is full")
	}
	if duration > 10*time.Millisecond {
		t.Errorf("Enqueue took too long (%v), expected immediate return", duration)
	}
}

func TestEnqueueAfterStop(t *testing.T) {
	p := NewPool(PoolConfig{WorkerCount: 1, ClickHouse: &MockClickHouseConn{}, Logger: zap.NewNop()})
	p.Start(context.Background())
	p.Stop()

	if p.Enqueue(testMatch("late")) {
		t.Error("Enqueue after Stop should return false")
	}
	p.Stop() // idempotent
}

func TestProcessBatch(t *testing.T) {
	conn := &MockClickHouseConn{}
	registry := &MockRegistry{}
	cache := &MockInvalidator{}
	p := NewPool(PoolConfig{ClickHouse: conn, Registry: registry, Cache: cache, Logger: zap.NewNop()})

	received := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	noTime := testMatch("")
	noTime.PlayedAt = time.Time{}

	err := p.processBatch([]Job{
		{Match: testMatch("m1"), Timestamp: received},
		{Match: noTime, Timestamp: received},
	})
	if err != nil {
		t.Fatalf("processBatch() error = %v", err)
	}

	rows := conn.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0] != "m1" || rows[0][4] != "Cloud9" || rows[0][6] != "Team Liquid" || rows[0][7] != int32(13) {
		t.Errorf("row = %v", rows[0])
	}
	if id, _ := rows[1][0].(string); id == "" {
		t.Error("empty match id should be derived")
	}
	if got := rows[1][2].(time.Time); !got.Equal(received) {
		t.Errorf("played_at = %v, want receipt time %v", got, received)
	}

	ids := cache.IDs()
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "47351" || ids[1] != "47380" {
		t.Errorf("invalidated = %v", ids)
	}
	if calls := registry.Calls(); len(calls) != 2 {
		t.Errorf("registry calls = %d, want 2", len(calls))
	}
}

func TestProcessBatch_SendFailureSkipsSideEffects(t *testing.T) {
	conn := &MockClickHouseConn{SendErr: errors.New("clickhouse down")}
	cache := &MockInvalidator{}
	registry := &MockRegistry{}
	p := NewPool(PoolConfig{ClickHouse: conn, Registry: registry, Cache: cache, Logger: zap.NewNop()})

	if err := p.processBatch([]Job{{Match: testMatch("m1"), Timestamp: time.Now()}}); err == nil {
		t.Fatal("expected send error")
	}
	if len(cache.IDs()) != 0 || len(registry.Calls()) != 0 {
		t.Error("side effects ran after failed send")
	}
}

func TestMatchIDDeterministic(t *testing.T) {
	m := testMatch("")
	a := matchID(m, m.PlayedAt)
	b := matchID(m, m.PlayedAt)
	if a != b || a == "" {
		t.Errorf("matchID not deterministic: %q vs %q", a, b)
	}
	if got := matchID(testMatch("given"), m.PlayedAt); got != "given" {
		t.Errorf("matchID = %q, want caller id", got)
	}
}

func TestStopFlushesQueue(t *testing.T) {
	conn := &MockClickHouseConn{}
	p := NewPool(PoolConfig{
		WorkerCount:   2,
		BatchSize:     100,
		FlushInterval: time.Hour,
		ClickHouse:    conn,
		Logger:        zap.NewNop(),
	})
	p.Start(context.Background())

	for i := 0; i < 10; i++ {
		if !p.Enqueue(testMatch("")) {
			t.Fatal("enqueue failed")
		}
	}
	p.Stop()

	if got := len(conn.Rows()); got != 10 {
		t.Errorf("flushed rows = %d, want 10", got)
	}
}
