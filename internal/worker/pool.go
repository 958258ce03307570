// Package worker implements the buffered worker pool that decouples the
// collect phase from database writes. It provides:
// - Backpressure handling via load shedding
// - Batch inserts for recommendations (Postgres) and odds snapshots (ClickHouse)
// - Graceful shutdown with flush guarantees

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// Prometheus metrics
var (
	rowsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quantfoot_pipeline_rows_ingested_total",
		Help: "Total number of rows accepted by the pipeline pool",
	})

	rowsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quantfoot_pipeline_rows_processed_total",
		Help: "Total number of rows persisted by workers",
	})

	rowsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quantfoot_pipeline_rows_failed_total",
		Help: "Total number of rows that failed persistence",
	})

	rowsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quantfoot_pipeline_rows_load_shed_total",
		Help: "Total number of rows dropped because the queue was full",
	})

	poolQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quantfoot_pipeline_queue_depth",
		Help: "Current depth of the pipeline queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quantfoot_pipeline_batch_insert_duration_seconds",
		Help:    "Duration of pipeline batch inserts",
		Buckets: prometheus.DefBuckets,
	})
)

// RecommendationSink persists recommendation rows in bulk.
type RecommendationSink interface {
	InsertBatch(ctx context.Context, recs []*models.Recommendation) (int, error)
}

// SnapshotSink persists odds snapshots in bulk.
type SnapshotSink interface {
	InsertOddsSnapshots(ctx context.Context, snaps []models.MarketOdds) error
}

// Job is one unit of work: exactly one of the two payloads is set.
type Job struct {
	Rec      *models.Recommendation
	Snapshot *models.MarketOdds
	Queued   time.Time
}

// PoolConfig configures the pipeline pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	Recs          RecommendationSink
	Snapshots     SnapshotSink
	Logger        *zap.Logger
}

// Pool batches recommendation rows and odds snapshots for bulk persistence.
// It satisfies the collect phase's recommendation queue.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Pipeline pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue, flushes pending batches and waits for the workers.
func (p *Pool) Stop() {
	p.logger.Info("Stopping pipeline pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Pipeline pool stopped")
}

// Enqueue accepts a recommendation row. Full queue sheds instead of blocking
// so the collect phase never stalls on a slow database.
func (p *Pool) Enqueue(rec *models.Recommendation) bool {
	return p.enqueue(Job{Rec: rec, Queued: time.Now()})
}

// EnqueueSnapshot accepts an odds snapshot bound for ClickHouse.
func (p *Pool) EnqueueSnapshot(snap models.MarketOdds) bool {
	return p.enqueue(Job{Snapshot: &snap, Queued: time.Now()})
}

func (p *Pool) enqueue(job Job) (ok bool) {
	// Protect against sending on closed channel
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue row (pool stopped)", "error", r)
			ok = false
		}
	}()

	select {
	case p.jobQueue <- job:
		rowsIngested.Inc()
		return true
	case <-p.ctx.Done():
		p.logger.Warn("Pipeline pool context canceled, dropping row")
		rowsLoadShed.Inc()
		return false
	default:
		p.logger.Warnw("Pipeline queue full, shedding row", "depth", len(p.jobQueue))
		rowsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker accumulates jobs and flushes them in batches.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]Job, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		if err := p.processBatch(batch); err != nil {
			p.logger.Errorw("Batch persistence failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			rowsFailed.Add(float64(len(batch)))
		} else {
			p.logger.Debugw("Batch persisted",
				"worker", id, "batchSize", len(batch), "duration", time.Since(start))
			rowsProcessed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}

			batch = append(batch, job)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			flush()
			// Keep draining: Stop closes the queue after cancel and
			// queued rows must still be persisted.
			for job := range p.jobQueue {
				batch = append(batch, job)
				if len(batch) >= p.config.BatchSize {
					flush()
				}
			}
			flush()
			return
		}
	}
}

// processBatch splits a mixed batch by destination and persists both halves.
func (p *Pool) processBatch(batch []Job) error {
	ctx := context.Background()

	var recs []*models.Recommendation
	var snaps []models.MarketOdds
	for _, job := range batch {
		switch {
		case job.Rec != nil:
			recs = append(recs, job.Rec)
		case job.Snapshot != nil:
			snaps = append(snaps, *job.Snapshot)
		}
	}

	var firstErr error
	if len(recs) > 0 {
		inserted, err := p.config.Recs.InsertBatch(ctx, recs)
		if err != nil {
			firstErr = err
		} else if inserted < len(recs) {
			p.logger.Debugw("Duplicate recommendations skipped",
				"batch", len(recs), "inserted", inserted)
		}
	}

	if len(snaps) > 0 && p.config.Snapshots != nil {
		if err := p.config.Snapshots.InsertOddsSnapshots(ctx, snaps); err != nil {
			p.logger.Errorw("Snapshot batch failed", "count", len(snaps), "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			poolQueueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
