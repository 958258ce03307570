package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
	"github.com/quantfoot/analytics-api/internal/tracker"
)

// AdjustmentStore persists adaptive factors, their append-only history and
// the learning snapshots carrying rollback baselines.
type AdjustmentStore struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewAdjustmentStore(pg PgPool, logger *zap.SugaredLogger) *AdjustmentStore {
	return &AdjustmentStore{pg: pg, logger: logger}
}

// GetActiveAdjustment returns the active factor for a target, or (nil, nil)
// when none exists and the neutral 1.0 applies.
func (s *AdjustmentStore) GetActiveAdjustment(ctx context.Context, typ models.AdjustmentType, target string) (*models.Adjustment, error) {
	var a models.Adjustment
	err := s.pg.QueryRow(ctx, `
		SELECT adjustment_type, target, factor, reason, confidence_score,
		       is_active, source, created_at
		FROM adaptive_adjustments
		WHERE adjustment_type = $1 AND target = $2 AND is_active = TRUE
	`, string(typ), target).Scan(&a.Type, &a.Target, &a.Factor, &a.Reason,
		&a.ConfidenceScore, &a.IsActive, &a.Source, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load adjustment %s/%s: %w", typ, target, err)
	}
	return &a, nil
}

// ListActiveAdjustments returns every active factor of one type, keyed by
// target. The sizing engine loads this once per cycle.
func (s *AdjustmentStore) ListActiveAdjustments(ctx context.Context, typ models.AdjustmentType) (map[string]float64, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT target, factor
		FROM adaptive_adjustments
		WHERE adjustment_type = $1 AND is_active = TRUE
	`, string(typ))
	if err != nil {
		return nil, fmt.Errorf("list adjustments %s: %w", typ, err)
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var target string
		var factor float64
		if err := rows.Scan(&target, &factor); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		out[target] = factor
	}
	return out, rows.Err()
}

// UpsertAdjustment writes a factor with last-writer-wins semantics on
// (type, target, source); the learning history keeps every overwritten
// value.
func (s *AdjustmentStore) UpsertAdjustment(ctx context.Context, adj models.Adjustment) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO adaptive_adjustments (
			adjustment_type, target, factor, reason, confidence_score,
			is_active, source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (adjustment_type, target, source) DO UPDATE SET
			factor = EXCLUDED.factor,
			reason = EXCLUDED.reason,
			confidence_score = EXCLUDED.confidence_score,
			is_active = EXCLUDED.is_active,
			created_at = EXCLUDED.created_at
	`, string(adj.Type), adj.Target, adj.Factor, adj.Reason,
		adj.ConfidenceScore, adj.IsActive, adj.Source, adj.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert adjustment %s/%s: %w", adj.Type, adj.Target, err)
	}
	return nil
}

// AppendLearningEvent appends one history row. History is never updated in
// place.
func (s *AdjustmentStore) AppendLearningEvent(ctx context.Context, ev models.LearningEvent) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO learning_history
			(market_type, old_factor, new_factor, reason, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ev.MarketType, ev.OldFactor, ev.NewFactor, ev.Reason, ev.Confidence, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("append learning event %s: %w", ev.MarketType, err)
	}
	return nil
}

// RecentDeltas returns the last relative factor changes for a target,
// newest first. Rebuilds the momentum deque after a restart.
func (s *AdjustmentStore) RecentDeltas(ctx context.Context, target string, limit int) ([]float64, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT old_factor, new_factor
		FROM learning_history
		WHERE market_type = $1 AND old_factor > 0
		ORDER BY created_at DESC
		LIMIT $2
	`, target, limit)
	if err != nil {
		return nil, fmt.Errorf("load deltas %s: %w", target, err)
	}
	defer rows.Close()

	var deltas []float64
	for rows.Next() {
		var oldF, newF float64
		if err := rows.Scan(&oldF, &newF); err != nil {
			return nil, fmt.Errorf("scan delta: %w", err)
		}
		deltas = append(deltas, (newF-oldF)/oldF)
	}
	return deltas, rows.Err()
}

// SaveLearningSnapshot stores the rollback baselines as one JSONB document.
func (s *AdjustmentStore) SaveLearningSnapshot(ctx context.Context, data map[string]tracker.ROIBaseline) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode learning snapshot: %w", err)
	}
	_, err = s.pg.Exec(ctx, `
		INSERT INTO learning_snapshots (data, created_at) VALUES ($1, NOW())
	`, payload)
	if err != nil {
		return fmt.Errorf("save learning snapshot: %w", err)
	}
	return nil
}

// LatestLearningSnapshot returns the most recent baselines, or (nil, nil)
// before the first diagnose cycle.
func (s *AdjustmentStore) LatestLearningSnapshot(ctx context.Context) (map[string]tracker.ROIBaseline, error) {
	var payload []byte
	err := s.pg.QueryRow(ctx, `
		SELECT data FROM learning_snapshots ORDER BY created_at DESC LIMIT 1
	`).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load learning snapshot: %w", err)
	}

	var data map[string]tracker.ROIBaseline
	if err := json.Unmarshal(payload, &data); err != nil {
		s.logger.Warnw("Malformed learning snapshot, starting fresh", "error", err)
		return nil, nil
	}
	return data, nil
}
