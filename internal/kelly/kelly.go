// Package kelly sizes stakes from a model probability and a structured
// uncertainty profile. The Bayesian penalty (variance over two) is the
// second-order Taylor approximation of E[log(1 + f·X)] when X is itself
// uncertain: more uncertainty means a stronger downward correction before
// any Kelly math runs.
package kelly

import (
	"fmt"
	"math"

	"github.com/quantfoot/analytics-api/internal/models"
)

// Method records which sizing path produced a result.
type Method string

const (
	MethodBayesian       Method = "BAYESIAN"
	MethodZScoreBayesian Method = "ZSCORE_BAYESIAN"
)

// adjustedProbFloor is the hard floor under the penalized probability.
const adjustedProbFloor = 0.10

// Config carries the tunable sizing constants.
type Config struct {
	Fraction float64 // fraction of raw Kelly, default 0.25
	MaxStake float64 // max stake as % of bankroll, default 5.0
	Bankroll float64 // bankroll units, default 100.0
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{Fraction: 0.25, MaxStake: 5.0, Bankroll: 100.0}
}

// Input is one sizing request.
type Input struct {
	MeanProb    float64
	ZEdge       float64
	Odds        float64 // 0 when no market odds are available
	Uncertainty UncertaintyInput

	// AdjustmentFactor is the combined adaptive factor from the feedback
	// loop (market x tier x league). 0 is treated as 1.
	AdjustmentFactor float64

	// Fraction and MaxStakePct are per-strategy overrides. Zero falls back
	// to the sizer config. A strategy cap only ever tightens the global one.
	Fraction    float64
	MaxStakePct float64
}

// Result is the full sizing outcome. A negative-edge request never raises:
// it returns a structured no-bet with IsPositive=false and Stake=0.
type Result struct {
	MeanProb        float64            `json:"mean_prob"`
	Std             float64            `json:"std"`
	AdjustedProb    float64            `json:"adjusted_prob"`
	Penalty         float64            `json:"penalty"`
	EdgePct         float64            `json:"edge_pct"`
	RawKelly        float64            `json:"raw_kelly"`
	FractionalKelly float64            `json:"fractional_kelly"`
	Stake           float64            `json:"stake"`
	IsPositive      bool               `json:"is_positive"`
	Method          Method             `json:"method"`
	Reasoning       string             `json:"reasoning"`
	Uncertainty     UncertaintyProfile `json:"uncertainty"`
}

// Sizer converts probabilities into stakes.
type Sizer struct {
	cfg Config
}

func NewSizer(cfg Config) *Sizer {
	if cfg.Fraction <= 0 {
		cfg.Fraction = 0.25
	}
	if cfg.MaxStake <= 0 {
		cfg.MaxStake = 5.0
	}
	if cfg.Bankroll <= 0 {
		cfg.Bankroll = 100.0
	}
	return &Sizer{cfg: cfg}
}

// Size dispatches on odds availability: real odds take the full Kelly path,
// otherwise the Z-score fallback ladder sizes the stake.
func (s *Sizer) Size(in Input) Result {
	u := BuildUncertainty(in.Uncertainty)
	if in.Odds > 1 {
		return s.sizeWithOdds(in, u)
	}
	return s.sizeZScore(in, u)
}

func (s *Sizer) sizeWithOdds(in Input, u UncertaintyProfile) Result {
	penalty := u.Variance / 2
	adjusted := math.Max(adjustedProbFloor, in.MeanProb-penalty)

	marketProb := models.ImpliedProb(in.Odds)
	edge := adjusted - marketProb
	rawKelly := (adjusted*in.Odds - 1) / (in.Odds - 1)

	res := Result{
		MeanProb:     in.MeanProb,
		Std:          u.TotalStd,
		AdjustedProb: adjusted,
		Penalty:      penalty,
		EdgePct:      edge * 100,
		RawKelly:     rawKelly,
		Method:       MethodBayesian,
		Uncertainty:  u,
	}

	if rawKelly <= 0 || edge < 0 {
		res.Reasoning = fmt.Sprintf(
			"No bet: adjusted prob %.1f%% vs market %.1f%% (edge %.1f%%), raw Kelly %.3f",
			adjusted*100, marketProb*100, edge*100, rawKelly)
		return res
	}

	fraction, maxStake := s.limits(in)
	fractional := math.Min(math.Max(0, rawKelly*fraction), maxStake/s.cfg.Bankroll)
	stake := fractional * s.cfg.Bankroll * s.factor(in)
	stake = math.Min(stake, maxStake)

	res.FractionalKelly = fractional
	res.Stake = round2(stake)
	res.IsPositive = res.Stake > 0
	res.Reasoning = chaosPrefix(in) + fmt.Sprintf(
		"Bayesian Kelly: %.1f%% -> %.1f%% after sigma %.3f, edge %.1f%% at %.2f, stake %.2f",
		in.MeanProb*100, adjusted*100, u.TotalStd, edge*100, in.Odds, res.Stake)
	return res
}

// chaosPrefix flags stakes sized inside a chaos regime so the downstream
// reasoning always names it.
func chaosPrefix(in Input) string {
	if in.Uncertainty.Chaos > 80 {
		return fmt.Sprintf("CHAOS regime (%.0f): ", in.Uncertainty.Chaos)
	}
	return ""
}

// zStakeLadder maps z-edge to the base stake when no odds exist.
func zStakeLadder(z float64) float64 {
	switch {
	case z >= 2.5:
		return 4.0
	case z >= 1.5:
		return 3.0
	case z >= 1.0:
		return 2.0
	case z >= 0.5:
		return 1.0
	default:
		return 0
	}
}

func (s *Sizer) sizeZScore(in Input, u UncertaintyProfile) Result {
	penalty := u.Variance / 2
	adjusted := math.Max(adjustedProbFloor, in.MeanProb-penalty)
	confidenceFactor := 1 - u.TotalStd

	res := Result{
		MeanProb:     in.MeanProb,
		Std:          u.TotalStd,
		AdjustedProb: adjusted,
		Penalty:      penalty,
		Method:       MethodZScoreBayesian,
		Uncertainty:  u,
	}

	base := zStakeLadder(in.ZEdge)
	if base == 0 {
		res.Reasoning = fmt.Sprintf("No bet: Z-edge insuffisant (%.2f < 0.5)", in.ZEdge)
		return res
	}

	_, maxStake := s.limits(in)
	stake := math.Min(maxStake, base*confidenceFactor*u.ModelConfidence)
	stake = math.Min(stake*s.factor(in), maxStake)

	res.EdgePct = 0.08 * in.ZEdge / 1.5 * confidenceFactor * 100
	res.Stake = round2(stake)
	res.IsPositive = res.Stake > 0
	res.Reasoning = chaosPrefix(in) + fmt.Sprintf(
		"Z-score Bayesian: z=%.2f base %.1f, confidence %.2f, model %.2f, stake %.2f",
		in.ZEdge, base, confidenceFactor, u.ModelConfidence, res.Stake)
	return res
}

// limits resolves the effective Kelly fraction and stake cap for one
// request: a strategy fraction replaces the config one, a strategy cap is
// honored only when it is tighter than the global cap.
func (s *Sizer) limits(in Input) (fraction, maxStake float64) {
	fraction = s.cfg.Fraction
	if in.Fraction > 0 {
		fraction = in.Fraction
	}
	maxStake = s.cfg.MaxStake
	if in.MaxStakePct > 0 && in.MaxStakePct < maxStake {
		maxStake = in.MaxStakePct
	}
	return fraction, maxStake
}

func (s *Sizer) factor(in Input) float64 {
	if in.AdjustmentFactor <= 0 {
		return 1
	}
	return in.AdjustmentFactor
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
