package kelly

import (
	"math"

	"github.com/quantfoot/analytics-api/internal/models"
)

// maxTotalStd caps the combined uncertainty: beyond this the probability
// penalty stops growing.
const maxTotalStd = 0.25

// UncertaintyInput gathers everything that widens or narrows the model's
// probability estimate.
type UncertaintyInput struct {
	ZScore     float64
	SampleSize int
	Tier       models.Tier
	Chaos      float64

	CLVSignal      models.CLVSignal
	CLVConfirms    bool
	CLVContradicts bool
}

// UncertaintyProfile is the decomposed sigma: each component is an
// independent source of estimation error, combined in quadrature.
type UncertaintyProfile struct {
	BaseStd         float64 `json:"base_std"`
	ModelStd        float64 `json:"model_std"`
	SampleStd       float64 `json:"sample_std"`
	TierStd         float64 `json:"tier_std"`
	ChaosStd        float64 `json:"chaos_std"`
	CLVStd          float64 `json:"clv_std"`
	TotalStd        float64 `json:"total_std"`
	Variance        float64 `json:"variance"`
	ModelConfidence float64 `json:"model_confidence"`
}

// modelConfidence maps the z-score magnitude to trust in the model: large
// |z| means the estimate sits far in the tail where calibration is weaker.
func modelConfidence(z float64) float64 {
	switch abs := math.Abs(z); {
	case abs <= 2:
		return 0.85
	case abs <= 3:
		return 0.75
	default:
		return 0.65
	}
}

func sampleStd(n int) float64 {
	switch {
	case n >= 15:
		return 0.02
	case n >= 10:
		return 0.05
	case n >= 5:
		return 0.08
	default:
		return 0.12
	}
}

func tierStd(t models.Tier) float64 {
	switch t {
	case models.TierElite:
		return 0.02
	case models.TierGold:
		return 0.04
	case models.TierSilver:
		return 0.07
	default:
		return 0.10
	}
}

func chaosStd(chaos float64) float64 {
	switch {
	case chaos > 80:
		return 0.12
	case chaos > 60:
		return 0.06
	default:
		return 0.02
	}
}

func clvStd(in UncertaintyInput) float64 {
	switch {
	case in.CLVSignal == models.CLVSweetSpot && in.CLVConfirms:
		return 0.01
	case in.CLVSignal == models.CLVGood && in.CLVConfirms:
		return 0.02
	case in.CLVSignal == models.CLVDanger:
		return 0.10
	case in.CLVContradicts:
		return 0.08
	default:
		return 0.05
	}
}

// BuildUncertainty combines every sigma component in quadrature, capped at
// maxTotalStd.
func BuildUncertainty(in UncertaintyInput) UncertaintyProfile {
	mc := modelConfidence(in.ZScore)
	p := UncertaintyProfile{
		BaseStd:         0.05,
		ModelStd:        (1 - mc) * (1 - mc) * 0.05,
		SampleStd:       sampleStd(in.SampleSize),
		TierStd:         tierStd(in.Tier),
		ChaosStd:        chaosStd(in.Chaos),
		CLVStd:          clvStd(in),
		ModelConfidence: mc,
	}

	sum := p.BaseStd*p.BaseStd + p.ModelStd*p.ModelStd + p.SampleStd*p.SampleStd +
		p.TierStd*p.TierStd + p.ChaosStd*p.ChaosStd + p.CLVStd*p.CLVStd
	p.TotalStd = math.Min(math.Sqrt(sum), maxTotalStd)
	p.Variance = p.TotalStd * p.TotalStd
	return p
}
