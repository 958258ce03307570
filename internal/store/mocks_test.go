package store

import (
	"context"
	"reflect"

	chdriver "github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// fakePg captures queries and serves canned rows.
type fakePg struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	ExecSQL  []string
	ExecArgs [][]any
}

func (f *fakePg) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFunc != nil {
		return f.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (f *fakePg) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFunc != nil {
		return f.QueryRowFunc(ctx, sql, args...)
	}
	return &fakeRow{err: pgx.ErrNoRows}
}

func (f *fakePg) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.ExecSQL = append(f.ExecSQL, sql)
	f.ExecArgs = append(f.ExecArgs, args)
	if f.ExecFunc != nil {
		return f.ExecFunc(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// fakeRows serves rows of pre-typed values.
type fakeRows struct {
	pgx.Rows
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	for i, d := range dest {
		assign(d, row[i])
	}
	return nil
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return r.err }

type fakeRow struct {
	values []any
	err    error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		assign(d, r.values[i])
	}
	return nil
}

func assign(dest any, val any) {
	if val == nil {
		return
	}
	v := reflect.ValueOf(dest).Elem()
	rv := reflect.ValueOf(val)
	if !rv.Type().AssignableTo(v.Type()) {
		rv = rv.Convert(v.Type())
	}
	v.Set(rv)
}

// fakeRedis is an in-memory stand-in for the narrow Redis surface.
type fakeRedis struct {
	hashes map[string]map[string]string
	sets   map[string][]string
	err    error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{hashes: map[string]map[string]string{}, sets: map[string][]string{}}
}

func (f *fakeRedis) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.hashes[key][field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	if f.err != nil {
		return redis.NewMapStringStringResult(nil, f.err)
	}
	return redis.NewMapStringStringResult(f.hashes[key], nil)
}

func (f *fakeRedis) HSet(ctx context.Context, key string, values ...any) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	if f.hashes[key] == nil {
		f.hashes[key] = map[string]string{}
	}
	for i := 0; i+1 < len(values); i += 2 {
		f.hashes[key][values[i].(string)] = values[i+1].(string)
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (f *fakeRedis) SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	for _, m := range members {
		f.sets[key] = append(f.sets[key], m.(string))
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeRedis) SMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	if f.err != nil {
		return redis.NewStringSliceResult(nil, f.err)
	}
	return redis.NewStringSliceResult(f.sets[key], nil)
}

// mockCHConn serves canned ClickHouse rows, one result set per Query call.
type mockCHConn struct {
	chdriver.Conn
	results    [][][]any
	queryCalls int
	ExecSQL    []string
	ExecArgs   [][]any
}

func (m *mockCHConn) Query(ctx context.Context, query string, args ...any) (chdriver.Rows, error) {
	m.queryCalls++
	if m.queryCalls > len(m.results) {
		return &mockCHRows{}, nil
	}
	return &mockCHRows{rows: m.results[m.queryCalls-1]}, nil
}

func (m *mockCHConn) Exec(ctx context.Context, query string, args ...any) error {
	m.ExecSQL = append(m.ExecSQL, query)
	m.ExecArgs = append(m.ExecArgs, args)
	return nil
}

type mockCHRows struct {
	chdriver.Rows
	rows [][]any
	idx  int
}

func (m *mockCHRows) Next() bool {
	if m.idx >= len(m.rows) {
		return false
	}
	m.idx++
	return true
}

func (m *mockCHRows) Scan(dest ...any) error {
	row := m.rows[m.idx-1]
	for i, d := range dest {
		assign(d, row[i])
	}
	return nil
}

func (m *mockCHRows) Close() error { return nil }
func (m *mockCHRows) Err() error   { return nil }
