package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgconn"
)

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn
	PrepareErr error
	SendErr    error
	SendDelay  time.Duration

	mu      sync.Mutex
	batches []*MockBatch
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	if m.PrepareErr != nil {
		return nil, m.PrepareErr
	}
	b := &MockBatch{query: query, sendErr: m.SendErr, delay: m.SendDelay}
	m.mu.Lock()
	m.batches = append(m.batches, b)
	m.mu.Unlock()
	return b, nil
}

// Rows returns every row appended to a batch that was sent successfully
func (m *MockClickHouseConn) Rows() [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out [][]interface{}
	for _, b := range m.batches {
		if b.sent {
			out = append(out, b.rows...)
		}
	}
	return out
}

// MockBatch implements driver.Batch
type MockBatch struct {
	driver.Batch
	query   string
	rows    [][]interface{}
	sendErr error
	delay   time.Duration
	sent    bool
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.rows = append(m.rows, v)
	return nil
}

func (m *MockBatch) Send() error {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = true
	return nil
}

func (m *MockBatch) IsSent() bool { return m.sent }
func (m *MockBatch) Rows() int    { return len(m.rows) }
func (m *MockBatch) Abort() error { return nil }

// MockRegistry implements TeamRegistry
type MockRegistry struct {
	mu    sync.Mutex
	calls [][]any
	Err   error
}

func (m *MockRegistry) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, args)
	return pgconn.CommandTag{}, m.Err
}

func (m *MockRegistry) Calls() [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]any(nil), m.calls...)
}

// MockInvalidator implements CacheInvalidator
type MockInvalidator struct {
	mu  sync.Mutex
	ids []string
}

func (m *MockInvalidator) Invalidate(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append(m.ids, id)
}

func (m *MockInvalidator) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ids...)
}
