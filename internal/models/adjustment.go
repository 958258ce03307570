package models

import "time"

// AdjustmentType scopes what an adaptive factor applies to.
type AdjustmentType string

const (
	AdjustMarketFactor AdjustmentType = "market_factor"
	AdjustTierFactor   AdjustmentType = "tier_factor"
	AdjustLeagueFactor AdjustmentType = "league_factor"
)

// Adjustment is one adaptive factor emitted by the diagnose phase and read
// by the sizing engine on subsequent cycles. Unique on (type, target,
// source) with upsert semantics; factor is bounded to [0.5, 2.0] and its
// per-cycle movement to ±15% of the previous value.
type Adjustment struct {
	Type            AdjustmentType `json:"adjustment_type"`
	Target          string         `json:"target"`
	Factor          float64        `json:"factor"`
	Reason          string         `json:"reason"`
	ConfidenceScore float64        `json:"confidence_score"`
	IsActive        bool           `json:"is_active"`
	Source          string         `json:"source"`
	CreatedAt       time.Time      `json:"created_at"`
}

// FactorFloor and FactorCeil bound every adaptive factor.
const (
	FactorFloor = 0.5
	FactorCeil  = 2.0
)

// MaxFactorStep is the largest relative per-cycle change allowed.
const MaxFactorStep = 0.15

// LearningEvent is one appended history row recording a factor change.
// Overwritten proposals survive here even after a last-writer-wins upsert.
type LearningEvent struct {
	MarketType string    `json:"market_type"`
	OldFactor  float64   `json:"old_factor"`
	NewFactor  float64   `json:"new_factor"`
	Reason     string    `json:"reason"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}
