package models

import "time"

// StrategyStatus is the ROI-driven health classification of a strategy,
// tier or market bucket. It is never derived from win rate alone.
type StrategyStatus string

const (
	StatusChampion   StrategyStatus = "CHAMPION"
	StatusProfitable StrategyStatus = "PROFITABLE"
	StatusRecovering StrategyStatus = "RECOVERING"
	StatusNeutral    StrategyStatus = "NEUTRAL"
	StatusStruggling StrategyStatus = "STRUGGLING"
	StatusShadow     StrategyStatus = "SHADOW"
)

// Trend is the 7d-vs-14d ROI direction.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// LossClass partitions losing picks into variance-driven and
// analysis-driven losses.
type LossClass string

const (
	LossUnlucky     LossClass = "UNLUCKY"
	LossBadAnalysis LossClass = "BAD_ANALYSIS"
)

// WilsonInterval is the 95% binomial confidence interval on win rate,
// expressed in percentage points.
type WilsonInterval struct {
	Lower  float64 `json:"lower"`
	Center float64 `json:"center"`
	Upper  float64 `json:"upper"`
}

// BucketDiagnosis is the full diagnostic picture for one strategy, tier or
// market bucket over the lookback window.
type BucketDiagnosis struct {
	Key      string `json:"key"`
	Resolved int    `json:"resolved"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Pushes   int    `json:"pushes"`

	TotalStaked float64 `json:"total_staked"`
	TotalProfit float64 `json:"total_profit"`
	ROI         float64 `json:"roi"`
	WinRate     float64 `json:"win_rate"`
	ExpectedWR  float64 `json:"expected_wr"`
	AvgOdds     float64 `json:"avg_odds"`
	AvgCLV      float64 `json:"avg_clv"`

	Wilson          WilsonInterval `json:"wilson"`
	Confidence      float64        `json:"confidence"`
	BreakevenWR     float64        `json:"breakeven_wr"`
	EdgeVsBreakeven float64        `json:"edge_vs_breakeven"`

	Trend           Trend          `json:"trend"`
	Status          StrategyStatus `json:"status"`
	StakeMultiplier float64        `json:"stake_multiplier"`

	UnluckyLosses     int `json:"unlucky_losses"`
	BadAnalysisLosses int `json:"bad_analysis_losses"`
}

// Anomaly is one flagged statistical irregularity.
type Anomaly struct {
	Kind    string  `json:"kind"`
	Key     string  `json:"key"`
	Detail  string  `json:"detail"`
	Value   float64 `json:"value"`
	Samples int     `json:"samples"`
}

// DiagnosticsReport aggregates one diagnose run.
type DiagnosticsReport struct {
	WindowDays    int                         `json:"window_days"`
	GeneratedAt   time.Time                   `json:"generated_at"`
	ByStrategy    map[string]*BucketDiagnosis `json:"by_strategy"`
	ByTier        map[string]*BucketDiagnosis `json:"by_tier"`
	ByMarket      map[string]*BucketDiagnosis `json:"by_market"`
	ByLeague      map[string]*BucketDiagnosis `json:"by_league"`
	ECE           float64                     `json:"ece"`
	Anomalies     []Anomaly                   `json:"anomalies"`
	Adjustments   []Adjustment                `json:"adjustments"`
	TotalResolved int                         `json:"total_resolved"`
}
