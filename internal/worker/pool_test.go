package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

type fakeRecSink struct {
	mu      sync.Mutex
	recs    []*models.Recommendation
	inserts int
	err     error
}

func (f *fakeRecSink) InsertBatch(_ context.Context, recs []*models.Recommendation) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.recs = append(f.recs, recs...)
	f.inserts++
	return len(recs), nil
}

func (f *fakeRecSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recs)
}

type fakeSnapSink struct {
	mu    sync.Mutex
	snaps []models.MarketOdds
}

func (f *fakeSnapSink) InsertOddsSnapshots(_ context.Context, snaps []models.MarketOdds) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snaps = append(f.snaps, snaps...)
	return nil
}

func (f *fakeSnapSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.snaps)
}

func rec(matchID string, market models.MarketType) *models.Recommendation {
	return &models.Recommendation{
		ID:         matchID + "-" + string(market),
		MatchID:    matchID,
		MarketType: market,
		Prediction: "yes",
	}
}

func TestPoolFlushesOnStop(t *testing.T) {
	recs := &fakeRecSink{}
	snaps := &fakeSnapSink{}
	pool := NewPool(PoolConfig{
		WorkerCount:   2,
		QueueSize:     100,
		BatchSize:     50,
		FlushInterval: time.Hour, // only Stop may flush
		Recs:          recs,
		Snapshots:     snaps,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())

	require.True(t, pool.Enqueue(rec("m1", models.MarketOver25)))
	require.True(t, pool.Enqueue(rec("m1", models.MarketBTTSYes)))
	require.True(t, pool.Enqueue(rec("m2", models.MarketOver25)))
	require.True(t, pool.EnqueueSnapshot(models.MarketOdds{MatchID: "m1", Home: 2.1, Draw: 3.4, Away: 3.6}))

	pool.Stop()

	assert.Equal(t, 3, recs.count())
	assert.Equal(t, 1, snaps.count())
}

func TestPoolFlushesOnBatchSize(t *testing.T) {
	recs := &fakeRecSink{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     10,
		BatchSize:     2,
		FlushInterval: time.Hour,
		Recs:          recs,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())
	defer pool.Stop()

	require.True(t, pool.Enqueue(rec("m1", models.MarketOver25)))
	require.True(t, pool.Enqueue(rec("m2", models.MarketOver25)))

	require.Eventually(t, func() bool { return recs.count() == 2 },
		time.Second, 10*time.Millisecond)
}

func TestPoolFlushesOnInterval(t *testing.T) {
	recs := &fakeRecSink{}
	pool := NewPool(PoolConfig{
		WorkerCount:   1,
		QueueSize:     10,
		BatchSize:     100,
		FlushInterval: 20 * time.Millisecond,
		Recs:          recs,
		Logger:        zap.NewNop(),
	})
	pool.Start(context.Background())
	defer pool.Stop()

	require.True(t, pool.Enqueue(rec("m1", models.MarketDNBHome)))

	require.Eventually(t, func() bool { return recs.count() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestEnqueueShedsWhenFull(t *testing.T) {
	cfg := PoolConfig{
		QueueSize: 1,
		Recs:      &fakeRecSink{},
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

	require.True(t, pool.Enqueue(rec("m1", models.MarketOver25)))

	start := time.Now()
	enqueued := pool.Enqueue(rec("m2", models.MarketOver25))
	took := time.Since(start)

	assert.False(t, enqueued, "full queue must shed, not block")
	assert.Less(t, took, 50*time.Millisecond)
	assert.Equal(t, 1, pool.QueueDepth())
}

func TestEnqueueAfterStop(t *testing.T) {
	pool := NewPool(PoolConfig{
		WorkerCount: 1,
		Recs:        &fakeRecSink{},
		Logger:      zap.NewNop(),
	})
	pool.Start(context.Background())
	pool.Stop()

	assert.False(t, pool.Enqueue(rec("m1", models.MarketOver25)))
}
