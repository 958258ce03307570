package tracker

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// learning constants
const (
	learningRate    = 0.15
	momentumWeight  = 0.7
	minConfidence   = 0.6
	minAdjustSample = 10
	rollbackROIPP   = 5.0
	dequeDepth      = 5
)

// AdjustmentStore persists factors, history and recovery state.
type AdjustmentStore interface {
	GetActiveAdjustment(ctx context.Context, typ models.AdjustmentType, target string) (*models.Adjustment, error)
	UpsertAdjustment(ctx context.Context, adj models.Adjustment) error
	AppendLearningEvent(ctx context.Context, ev models.LearningEvent) error
	// RecentDeltas returns the last signed relative factor changes for a
	// target, newest first, so the momentum deque survives restarts.
	RecentDeltas(ctx context.Context, target string, limit int) ([]float64, error)
	SaveLearningSnapshot(ctx context.Context, data map[string]ROIBaseline) error
	LatestLearningSnapshot(ctx context.Context) (map[string]ROIBaseline, error)
}

// ROIBaseline records the ROI at the moment a factor changed, so the next
// diagnosis can detect a harmful adjustment and roll it back.
type ROIBaseline struct {
	ROI       float64 `json:"roi"`
	OldFactor float64 `json:"old_factor"`
	NewFactor float64 `json:"new_factor"`
}

// Adjuster converts diagnosis deltas into bounded factor updates. Every
// proposal respects the ±15% per-cycle momentum bound and the global
// [0.5, 2.0] factor range; low-confidence proposals are dropped, never
// forced.
type Adjuster struct {
	store  AdjustmentStore
	source string
	logger *zap.SugaredLogger
	now    func() time.Time

	deques map[string][]float64
}

func NewAdjuster(store AdjustmentStore, source string, logger *zap.SugaredLogger) *Adjuster {
	return &Adjuster{
		store:  store,
		source: source,
		logger: logger,
		now:    time.Now,
		deques: map[string][]float64{},
	}
}

// Run walks the market, tier and league buckets and emits accepted
// adjustments per dimension. Rollback is checked first: an adjustment whose
// bucket lost more than 5pp of ROI since it was applied reverts to its
// previous factor.
func (a *Adjuster) Run(ctx context.Context, report *models.DiagnosticsReport) ([]models.Adjustment, error) {
	baselines, err := a.store.LatestLearningSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load learning snapshot: %w", err)
	}
	if baselines == nil {
		baselines = map[string]ROIBaseline{}
	}

	dimensions := []struct {
		typ     models.AdjustmentType
		buckets map[string]*models.BucketDiagnosis
	}{
		{models.AdjustMarketFactor, report.ByMarket},
		{models.AdjustTierFactor, report.ByTier},
		{models.AdjustLeagueFactor, report.ByLeague},
	}

	var emitted []models.Adjustment
	for _, dim := range dimensions {
		for target, bucket := range dim.buckets {
			if bucket.Resolved < minAdjustSample || target == "unknown" {
				continue
			}

			current, err := a.currentFactor(ctx, dim.typ, target)
			if err != nil {
				return emitted, err
			}

			if adj, rolled := a.maybeRollback(ctx, dim.typ, target, bucket, current, baselines); rolled {
				if adj != nil {
					emitted = append(emitted, *adj)
					baselines[target] = ROIBaseline{ROI: bucket.ROI, OldFactor: current, NewFactor: adj.Factor}
				}
				continue
			}

			adj, err := a.propose(ctx, dim.typ, target, bucket, current)
			if err != nil {
				return emitted, err
			}
			if adj == nil {
				continue
			}
			emitted = append(emitted, *adj)
			baselines[target] = ROIBaseline{ROI: bucket.ROI, OldFactor: current, NewFactor: adj.Factor}
		}
	}

	if err := a.store.SaveLearningSnapshot(ctx, baselines); err != nil {
		return emitted, fmt.Errorf("save learning snapshot: %w", err)
	}
	return emitted, nil
}

func (a *Adjuster) currentFactor(ctx context.Context, typ models.AdjustmentType, target string) (float64, error) {
	adj, err := a.store.GetActiveAdjustment(ctx, typ, target)
	if err != nil {
		return 0, fmt.Errorf("load adjustment %s: %w", target, err)
	}
	if adj == nil {
		return 1.0, nil
	}
	return adj.Factor, nil
}

func (a *Adjuster) maybeRollback(ctx context.Context, typ models.AdjustmentType, target string, bucket *models.BucketDiagnosis, current float64, baselines map[string]ROIBaseline) (*models.Adjustment, bool) {
	base, ok := baselines[target]
	if !ok || base.NewFactor != current {
		return nil, false
	}
	if bucket.ROI >= base.ROI-rollbackROIPP {
		return nil, false
	}

	reason := fmt.Sprintf("rollback: ROI fell %.1fpp (%.1f -> %.1f) after factor change",
		base.ROI-bucket.ROI, base.ROI, bucket.ROI)
	adj, err := a.write(ctx, typ, target, current, base.OldFactor, reason, 0.9)
	if err != nil {
		a.logger.Errorw("Rollback write failed", "target", target, "error", err)
		return nil, true
	}
	a.logger.Warnw("Adjustment rolled back", "target", target,
		"from", current, "to", base.OldFactor, "roi", bucket.ROI, "baseline", base.ROI)
	return adj, true
}

func (a *Adjuster) propose(ctx context.Context, typ models.AdjustmentType, target string, bucket *models.BucketDiagnosis, current float64) (*models.Adjustment, error) {
	delta := bucket.WinRate - bucket.ExpectedWR // percentage points

	momentum := 0.0
	if a.dequeAgrees(ctx, target, delta) {
		momentum = momentumWeight
	}

	step := clampF(delta*learningRate*(1+momentum), -models.MaxFactorStep, models.MaxFactorStep)
	proposed := clampF(current*(1+step), models.FactorFloor, models.FactorCeil)

	if math.Abs(proposed-current) < 0.005 {
		return nil, nil
	}

	confidence := a.confidence(bucket)
	if confidence < minConfidence {
		a.logger.Debugw("Adjustment rejected on confidence",
			"target", target, "confidence", confidence, "proposed", proposed)
		return nil, nil
	}

	reason := fmt.Sprintf("wr %.1f%% vs expected %.1f%% over %d picks (trend %s)",
		bucket.WinRate, bucket.ExpectedWR, bucket.Resolved, bucket.Trend)
	adj, err := a.write(ctx, typ, target, current, proposed, reason, confidence)
	if err != nil {
		return nil, err
	}
	a.pushDelta(target, step)
	return adj, nil
}

// confidence = 0.5 + sample bonus + trend bonus + ROI sign bonus.
func (a *Adjuster) confidence(bucket *models.BucketDiagnosis) float64 {
	c := 0.5
	switch {
	case bucket.Resolved >= solidSample:
		c += 0.15
	case bucket.Resolved >= minAdjustSample:
		c += 0.05
	}
	if bucket.Trend == models.TrendImproving {
		c += 0.1
	}
	if bucket.ROI > 0 {
		c += 0.1
	}
	return math.Min(1, c)
}

func (a *Adjuster) write(ctx context.Context, typ models.AdjustmentType, target string, oldFactor, newFactor float64, reason string, confidence float64) (*models.Adjustment, error) {
	adj := models.Adjustment{
		Type:            typ,
		Target:          target,
		Factor:          round2(newFactor),
		Reason:          reason,
		ConfidenceScore: confidence,
		IsActive:        true,
		Source:          a.source,
		CreatedAt:       a.now(),
	}
	if err := a.store.UpsertAdjustment(ctx, adj); err != nil {
		return nil, fmt.Errorf("upsert adjustment %s: %w", target, err)
	}
	ev := models.LearningEvent{
		MarketType: target,
		OldFactor:  oldFactor,
		NewFactor:  adj.Factor,
		Reason:     reason,
		Confidence: confidence,
		CreatedAt:  adj.CreatedAt,
	}
	if err := a.store.AppendLearningEvent(ctx, ev); err != nil {
		return nil, fmt.Errorf("append learning event %s: %w", target, err)
	}
	return &adj, nil
}

// dequeAgrees reports whether the recent delta history points the same way
// as the new delta. An empty deque agrees: first moves get full momentum.
func (a *Adjuster) dequeAgrees(ctx context.Context, target string, delta float64) bool {
	deque, ok := a.deques[target]
	if !ok {
		recovered, err := a.store.RecentDeltas(ctx, target, dequeDepth)
		if err != nil {
			a.logger.Warnw("Momentum deque recovery failed", "target", target, "error", err)
			recovered = nil
		}
		deque = recovered
		a.deques[target] = deque
	}
	if len(deque) == 0 {
		return true
	}

	agree := 0
	for _, d := range deque {
		if (d >= 0) == (delta >= 0) {
			agree++
		}
	}
	return agree*2 >= len(deque)
}

func (a *Adjuster) pushDelta(target string, delta float64) {
	deque := append([]float64{delta}, a.deques[target]...)
	if len(deque) > dequeDepth {
		deque = deque[:dequeDepth]
	}
	a.deques[target] = deque
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
