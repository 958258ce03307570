package tracker

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// zWilson is the 95% normal quantile used for the Wilson interval.
const zWilson = 1.96

// eliteSample is the resolved-pick count above which the strongest stake
// multipliers unlock.
const (
	eliteSample = 50
	solidSample = 30
)

// Wilson computes the 95% binomial confidence interval on the win rate, in
// percentage points. Preferred over the naive rate for small samples.
func Wilson(wins, n int) models.WilsonInterval {
	if n == 0 {
		return models.WilsonInterval{}
	}
	p := float64(wins) / float64(n)
	nf := float64(n)
	z2 := zWilson * zWilson

	denom := 1 + z2/nf
	center := (p + z2/(2*nf)) / denom
	margin := zWilson * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf)) / denom

	return models.WilsonInterval{
		Lower:  math.Max(0, center-margin) * 100,
		Center: center * 100,
		Upper:  math.Min(1, center+margin) * 100,
	}
}

// DiagnosisStore supplies resolved picks for the lookback window.
type DiagnosisStore interface {
	ListResolvedSince(ctx context.Context, since time.Time) ([]models.Recommendation, error)
}

// Diagnoser runs the DIAGNOSE phase: performance buckets, calibration,
// anomalies and the resulting adjustment proposals.
type Diagnoser struct {
	recs     DiagnosisStore
	adjuster *Adjuster
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewDiagnoser(recs DiagnosisStore, adjuster *Adjuster, logger *zap.SugaredLogger) *Diagnoser {
	return &Diagnoser{recs: recs, adjuster: adjuster, logger: logger, now: time.Now}
}

// Run produces the full diagnostics report over the lookback window and,
// when an adjuster is wired, emits factor adjustments.
func (d *Diagnoser) Run(ctx context.Context, windowDays int) (*models.DiagnosticsReport, error) {
	if windowDays <= 0 {
		windowDays = 7
	}
	now := d.now()
	since := now.AddDate(0, 0, -windowDays)

	recs, err := d.recs.ListResolvedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list resolved: %w", err)
	}

	report := &models.DiagnosticsReport{
		WindowDays:    windowDays,
		GeneratedAt:   now,
		ByStrategy:    buildBuckets(recs, now, keyStrategy),
		ByTier:        buildBuckets(recs, now, keyTier),
		ByMarket:      buildBuckets(recs, now, keyMarket),
		ByLeague:      buildBuckets(recs, now, keyLeague),
		ECE:           ExpectedCalibrationError(recs),
		TotalResolved: len(recs),
	}
	report.Anomalies = DetectAnomalies(report)

	if d.adjuster != nil {
		adjustments, err := d.adjuster.Run(ctx, report)
		if err != nil {
			return nil, fmt.Errorf("emit adjustments: %w", err)
		}
		report.Adjustments = adjustments
	}

	d.logger.Infow("Diagnose phase complete",
		"window_days", windowDays,
		"resolved", report.TotalResolved,
		"strategies", len(report.ByStrategy),
		"anomalies", len(report.Anomalies),
		"adjustments", len(report.Adjustments))
	return report, nil
}

func keyStrategy(r *models.Recommendation) string { return factorString(r, "strategy") }
func keyTier(r *models.Recommendation) string     { return factorString(r, "tier") }
func keyMarket(r *models.Recommendation) string   { return string(r.MarketType) }

func keyLeague(r *models.Recommendation) string {
	if r.League == "" {
		return "unknown"
	}
	return r.League
}

// factorString reads a dimension out of the opaque factors JSON.
func factorString(r *models.Recommendation, key string) string {
	if r.Factors != nil {
		if v, ok := r.Factors[key].(string); ok && v != "" {
			return v
		}
	}
	return "unknown"
}

func factorFloat(r *models.Recommendation, key string) (float64, bool) {
	if r.Factors == nil {
		return 0, false
	}
	v, ok := r.Factors[key].(float64)
	return v, ok
}

func buildBuckets(recs []models.Recommendation, now time.Time, keyFn func(*models.Recommendation) string) map[string]*models.BucketDiagnosis {
	buckets := map[string]*models.BucketDiagnosis{}

	for i := range recs {
		rec := &recs[i]
		key := keyFn(rec)
		b, ok := buckets[key]
		if !ok {
			b = &models.BucketDiagnosis{Key: key}
			buckets[key] = b
		}
		accumulate(b, rec)
	}

	for _, b := range buckets {
		finalize(b, recs, now, keyFn)
	}
	return buckets
}

func accumulate(b *models.BucketDiagnosis, rec *models.Recommendation) {
	b.Resolved++
	b.TotalStaked += rec.KellyPct
	b.TotalProfit += rec.ProfitLoss
	b.AvgOdds += rec.OddsTaken
	b.ExpectedWR += rec.Probability * 100
	if clv, ok := factorFloat(rec, "clv"); ok {
		b.AvgCLV += clv
	}

	switch {
	case rec.IsWinner == nil:
		b.Pushes++
	case *rec.IsWinner:
		b.Wins++
	default:
		b.Losses++
		if Attribute(rec) == models.LossUnlucky {
			b.UnluckyLosses++
		} else {
			b.BadAnalysisLosses++
		}
	}
}

func finalize(b *models.BucketDiagnosis, all []models.Recommendation, now time.Time, keyFn func(*models.Recommendation) string) {
	if b.Resolved > 0 {
		b.AvgOdds /= float64(b.Resolved)
		b.AvgCLV /= float64(b.Resolved)
		b.ExpectedWR /= float64(b.Resolved)
	}
	if b.TotalStaked > 0 {
		b.ROI = b.TotalProfit / b.TotalStaked * 100
	}
	decided := b.Wins + b.Losses
	if decided > 0 {
		b.WinRate = float64(b.Wins) / float64(decided) * 100
	}

	b.Wilson = Wilson(b.Wins, decided)
	b.Confidence = math.Min(1, float64(b.Resolved)/50)

	if b.AvgOdds > 1 {
		b.BreakevenWR = 1 / b.AvgOdds * 100
		b.EdgeVsBreakeven = b.WinRate - b.BreakevenWR
	}

	b.Trend = trendFor(b.Key, all, now, keyFn)
	b.Status, b.StakeMultiplier = classifyStatus(b)
}

// trendFor compares ROI over the last 7 days against the full 14-day
// window, with a 2pp dead zone.
func trendFor(key string, all []models.Recommendation, now time.Time, keyFn func(*models.Recommendation) string) models.Trend {
	roi7 := windowROI(key, all, now.AddDate(0, 0, -7), keyFn)
	roi14 := windowROI(key, all, now.AddDate(0, 0, -14), keyFn)

	switch {
	case roi7 > roi14+2:
		return models.TrendImproving
	case roi7 < roi14-2:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func windowROI(key string, all []models.Recommendation, since time.Time, keyFn func(*models.Recommendation) string) float64 {
	var staked, profit float64
	for i := range all {
		rec := &all[i]
		if keyFn(rec) != key {
			continue
		}
		if rec.ResolvedAt == nil || rec.ResolvedAt.Before(since) {
			continue
		}
		staked += rec.KellyPct
		profit += rec.ProfitLoss
	}
	if staked == 0 {
		return 0
	}
	return profit / staked * 100
}

// classifyStatus applies the ROI-driven status ladder. Win rate never
// drives status directly: a 60% win rate at short odds can still bleed.
// Recovery is checked before the loss tiers so a strategy is never
// hard-blocked while it trends back up.
func classifyStatus(b *models.BucketDiagnosis) (models.StrategyStatus, float64) {
	roi := b.ROI
	clv := b.AvgCLV

	switch {
	case roi >= 10 && clv >= 1:
		if b.Resolved >= eliteSample {
			return models.StatusChampion, 1.5
		}
		return models.StatusChampion, 1.2
	case roi >= 2:
		if b.Resolved >= solidSample {
			return models.StatusProfitable, 1.0
		}
		return models.StatusProfitable, 0.8
	case roi < 0 && b.Trend == models.TrendImproving && clv > 1:
		return models.StatusRecovering, 0.5
	case roi >= -2 && roi <= 2:
		if clv >= 3 {
			return models.StatusNeutral, 0.7
		}
		return models.StatusNeutral, 0.5
	case roi >= -10 && roi < -2:
		if clv > 0 {
			return models.StatusStruggling, 0.3
		}
		return models.StatusStruggling, 0.2
	default: // roi < -10
		return models.StatusShadow, 0.0
	}
}

// ExpectedCalibrationError buckets picks by diamond score into 10pp bands
// and weights the |predicted - actual| gap by bucket population. Result is
// in percentage points, [0, 100].
func ExpectedCalibrationError(recs []models.Recommendation) float64 {
	type bucket struct {
		n       int
		predSum float64
		wins    int
	}
	buckets := map[int]*bucket{}
	total := 0

	for i := range recs {
		rec := &recs[i]
		if rec.IsWinner == nil {
			continue
		}
		idx := int(rec.DiamondScore) / 10
		if idx > 9 {
			idx = 9
		}
		b, ok := buckets[idx]
		if !ok {
			b = &bucket{}
			buckets[idx] = b
		}
		b.n++
		b.predSum += rec.DiamondScore
		if *rec.IsWinner {
			b.wins++
		}
		total++
	}

	if total == 0 {
		return 0
	}

	ece := 0.0
	for _, b := range buckets {
		predicted := b.predSum / float64(b.n)
		actual := float64(b.wins) / float64(b.n) * 100
		ece += float64(b.n) / float64(total) * math.Abs(predicted-actual)
	}
	return ece
}
