package logic

import (
	"context"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockConn implements driver.Conn for testing
type MockConn struct {
	driver.Conn
	QueryFunc    func(ctx context.Context, query string, args ...any) (driver.Rows, error)
	QueryRowFunc func(ctx context.Context, query string, args ...any) driver.Row
	ExecFunc     func(ctx context.Context, query string, args ...any) error
	Queries      []string
}

func (m *MockConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	m.Queries = append(m.Queries, query)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query, args...)
	}
	return &MockRows{}, nil
}

func (m *MockConn) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	m.Queries = append(m.Queries, query)
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, query, args...)
	}
	return &MockRow{}
}

func (m *MockConn) Exec(ctx context.Context, query string, args ...any) error {
	m.Queries = append(m.Queries, query)
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, query, args...)
	}
	return nil
}

// MockRows implements driver.Rows over a fixed result set
type MockRows struct {
	driver.Rows
	Data  [][]any
	Index int
}

func (m *MockRows) Next() bool {
	m.Index++
	return m.Index <= len(m.Data)
}

func (m *MockRows) Scan(dest ...any) error {
	if m.Index > len(m.Data) {
		return nil
	}
	row := m.Data[m.Index-1]
	for i, val := range row {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

func (m *MockRows) Close() error { return nil }
func (m *MockRows) Err() error   { return nil }

// MockRow implements driver.Row
type MockRow struct {
	driver.Row
	Values []any
	ErrVal error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.ErrVal != nil {
		return m.ErrVal
	}
	for i, val := range m.Values {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

func (m *MockRow) Err() error { return m.ErrVal }

func setDest(dest any, val any) {
	v := reflect.ValueOf(dest).Elem()
	valV := reflect.ValueOf(val)
	// Handle type conversion if needed (e.g. int to int32)
	if valV.Type().ConvertibleTo(v.Type()) {
		v.Set(valV.Convert(v.Type()))
	} else {
		v.Set(valV)
	}
}
