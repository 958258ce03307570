package kelly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfoot/analytics-api/internal/models"
)

func TestValueSecurePath(t *testing.T) {
	// Strong home edge, GOLD tier, calm match, confirming sweet-spot CLV,
	// real odds at 1.90.
	s := NewSizer(DefaultConfig())
	res := s.Size(Input{
		MeanProb: 0.626,
		ZEdge:    2.3,
		Odds:     1.90,
		Uncertainty: UncertaintyInput{
			ZScore:      2.3,
			SampleSize:  15,
			Tier:        models.TierGold,
			Chaos:       40,
			CLVSignal:   models.CLVSweetSpot,
			CLVConfirms: true,
		},
	})

	require.True(t, res.IsPositive)
	assert.InDelta(t, 0.07, res.Std, 0.01)
	assert.InDelta(t, 0.624, res.AdjustedProb, 0.005)
	assert.InDelta(t, 9.8, res.EdgePct, 0.5)
	assert.Greater(t, res.Stake, 0.0)
	assert.LessOrEqual(t, res.Stake, DefaultConfig().MaxStake)
	assert.Equal(t, MethodBayesian, res.Method)

	dec := Classify(DecisionInput{ZEdge: 2.3, Chaos: 40, Friction: 45, XGTotal: 2.8})
	assert.Equal(t, DecisionValueSecure, dec.Type)
	assert.Equal(t, "match-winner", dec.Market)
}

func TestChaosPlayPenaltyDominates(t *testing.T) {
	s := NewSizer(DefaultConfig())
	in := Input{
		MeanProb: 0.60,
		ZEdge:    1.2,
		Odds:     2.10,
		Uncertainty: UncertaintyInput{
			ZScore:     1.2,
			SampleSize: 3,
			Tier:       models.TierSilver,
			Chaos:      85,
		},
	}
	res := s.Size(in)

	assert.GreaterOrEqual(t, res.Std, 0.13)
	assert.Contains(t, res.Reasoning, "CHAOS")
	// Penalty must shrink the stake relative to the same bet without chaos.
	calm := in
	calm.Uncertainty.Chaos = 20
	calm.Uncertainty.SampleSize = 20
	calmRes := s.Size(calm)
	assert.Less(t, res.Stake, calmRes.Stake)

	dec := Classify(DecisionInput{ZEdge: 1.2, Chaos: 85, Friction: 55, XGTotal: 3.0})
	assert.Equal(t, DecisionChaosPlay, dec.Type)
	assert.Equal(t, "Over 3.0", dec.Market)
}

func TestNoEdgeZScoreFallback(t *testing.T) {
	s := NewSizer(DefaultConfig())
	res := s.Size(Input{
		MeanProb: 0.50,
		ZEdge:    0.3,
		Uncertainty: UncertaintyInput{
			ZScore: 0.3, SampleSize: 10, Tier: models.TierGold, Chaos: 30,
		},
	})

	assert.False(t, res.IsPositive)
	assert.Zero(t, res.Stake)
	assert.Contains(t, res.Reasoning, "Z-edge insuffisant")
	assert.Equal(t, MethodZScoreBayesian, res.Method)
}

func TestZScoreLadder(t *testing.T) {
	tests := []struct {
		z    float64
		base float64
	}{
		{2.8, 4.0},
		{2.5, 4.0},
		{1.7, 3.0},
		{1.0, 2.0},
		{0.6, 1.0},
		{0.4, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.base, zStakeLadder(tt.z), "z=%v", tt.z)
	}
}

func TestNegativeEdgeNeverRaises(t *testing.T) {
	s := NewSizer(DefaultConfig())
	// Model likes it less than the market does.
	res := s.Size(Input{
		MeanProb: 0.30,
		ZEdge:    1.0,
		Odds:     1.50,
		Uncertainty: UncertaintyInput{
			ZScore: 1.0, SampleSize: 20, Tier: models.TierElite, Chaos: 30,
		},
	})

	assert.False(t, res.IsPositive)
	assert.Zero(t, res.Stake)
	assert.NotEmpty(t, res.Reasoning)
	assert.Less(t, res.EdgePct, 0.0)
}

func TestAdjustedProbInvariants(t *testing.T) {
	s := NewSizer(DefaultConfig())
	probs := []float64{0.05, 0.11, 0.35, 0.60, 0.90}
	for _, p := range probs {
		res := s.Size(Input{
			MeanProb: p,
			ZEdge:    1.5,
			Odds:     2.0,
			Uncertainty: UncertaintyInput{
				ZScore: 1.5, SampleSize: 2, Tier: models.TierBronze, Chaos: 90,
			},
		})
		assert.LessOrEqual(t, res.AdjustedProb, maxFloat(p, adjustedProbFloor), "p=%v", p)
		assert.GreaterOrEqual(t, res.AdjustedProb, adjustedProbFloor, "p=%v", p)
	}
}

func TestStakeBounds(t *testing.T) {
	s := NewSizer(DefaultConfig())
	// Absurdly strong pick: stake must still respect MAX_STAKE.
	res := s.Size(Input{
		MeanProb: 0.90,
		ZEdge:    3.0,
		Odds:     3.0,
		Uncertainty: UncertaintyInput{
			ZScore: 1.0, SampleSize: 30, Tier: models.TierElite, Chaos: 10,
			CLVSignal: models.CLVSweetSpot, CLVConfirms: true,
		},
	})
	require.True(t, res.IsPositive)
	assert.LessOrEqual(t, res.Stake, DefaultConfig().MaxStake)
}

func TestAdjustmentFactorScalesStake(t *testing.T) {
	s := NewSizer(DefaultConfig())
	base := Input{
		MeanProb: 0.55,
		ZEdge:    1.5,
		Odds:     2.2,
		Uncertainty: UncertaintyInput{
			ZScore: 1.5, SampleSize: 20, Tier: models.TierGold, Chaos: 30,
		},
	}

	plain := s.Size(base)
	require.True(t, plain.IsPositive)

	boosted := base
	boosted.AdjustmentFactor = 1.4
	up := s.Size(boosted)

	shrunk := base
	shrunk.AdjustmentFactor = 0.5
	down := s.Size(shrunk)

	assert.Greater(t, up.Stake, plain.Stake)
	assert.Less(t, down.Stake, plain.Stake)
	assert.LessOrEqual(t, up.Stake, DefaultConfig().MaxStake)
}

func TestStrategyLimitsOverrideConfig(t *testing.T) {
	s := NewSizer(DefaultConfig())
	base := Input{
		MeanProb: 0.55,
		ZEdge:    1.5,
		Odds:     2.2,
		Uncertainty: UncertaintyInput{
			ZScore: 1.5, SampleSize: 20, Tier: models.TierGold, Chaos: 30,
		},
	}

	plain := s.Size(base)
	require.True(t, plain.IsPositive)

	halved := base
	halved.Fraction = 0.125
	down := s.Size(halved)
	require.True(t, down.IsPositive)
	assert.InDelta(t, plain.Stake*0.5, down.Stake, 0.01, "half the Kelly fraction halves the stake")

	tight := Input{
		MeanProb: 0.90,
		ZEdge:    3.0,
		Odds:     3.0,
		Uncertainty: UncertaintyInput{
			ZScore: 1.0, SampleSize: 30, Tier: models.TierElite, Chaos: 10,
			CLVSignal: models.CLVSweetSpot, CLVConfirms: true,
		},
		MaxStakePct: 2.0,
	}
	capped := s.Size(tight)
	require.True(t, capped.IsPositive)
	assert.LessOrEqual(t, capped.Stake, 2.0)

	// A strategy cap wider than the global one never loosens it.
	loose := tight
	loose.MaxStakePct = 50
	res := s.Size(loose)
	assert.LessOrEqual(t, res.Stake, DefaultConfig().MaxStake)
}

func TestUncertaintyCapped(t *testing.T) {
	p := BuildUncertainty(UncertaintyInput{
		ZScore: 4.0, SampleSize: 0, Tier: models.TierBronze, Chaos: 95,
		CLVSignal: models.CLVDanger,
	})
	assert.LessOrEqual(t, p.TotalStd, maxTotalStd)
	assert.InDelta(t, p.TotalStd*p.TotalStd, p.Variance, 1e-12)
}

func TestDecisionPriority(t *testing.T) {
	tests := []struct {
		name string
		in   DecisionInput
		want DecisionType
	}{
		{"chaos wins over value", DecisionInput{ZEdge: 2.5, Chaos: 85, Friction: 40, XGTotal: 3.0}, DecisionChaosPlay},
		{"tactical lock", DecisionInput{ZEdge: 0.8, Chaos: 40, Friction: 75, XGTotal: 2.0}, DecisionTacticalLock},
		{"shootout", DecisionInput{ZEdge: 0.8, Chaos: 40, Friction: 50, XGTotal: 3.8}, DecisionShootout},
		{"pure value", DecisionInput{ZEdge: 1.2, Chaos: 40, Friction: 65, XGTotal: 2.8}, DecisionPureValue},
		{"no edge", DecisionInput{ZEdge: 0.2, Chaos: 40, Friction: 50, XGTotal: 2.5}, DecisionNoEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in).Type)
		})
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
