package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfoot/analytics-api/internal/models"
)

func neutralInput(name string) models.FrictionInput {
	return models.DefaultTeamDNA(name).FrictionView()
}

func volatileInput(name string) models.FrictionInput {
	in := neutralInput(name)
	in.Style = models.StyleOffensive
	in.Psyche.Profile = models.PsycheVolatile
	in.Psyche.PanicFactor = 1.8
	in.Psyche.CollapseRate = 1.6
	in.Psyche.ComebackMentality = 1.5
	in.PressingIntensity = 16
	in.Context.XGForAvg = 1.9
	return in
}

func TestComputeFrictionBounds(t *testing.T) {
	inputs := []struct {
		name       string
		home, away models.FrictionInput
	}{
		{"neutral", neutralInput("A"), neutralInput("B")},
		{"volatile pair", volatileInput("A"), volatileInput("B")},
		{"mismatch", volatileInput("A"), neutralInput("B")},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			cell := ComputeFriction(tt.home, tt.away)

			assert.GreaterOrEqual(t, cell.FrictionScore, 0.0)
			assert.LessOrEqual(t, cell.FrictionScore, 100.0)
			assert.GreaterOrEqual(t, cell.Friction1H, 0.0)
			assert.LessOrEqual(t, cell.Friction1H, 100.0)
			assert.GreaterOrEqual(t, cell.Friction2H, 0.0)
			assert.LessOrEqual(t, cell.Friction2H, 100.0)
			assert.GreaterOrEqual(t, cell.ChaosPotential, 0.0)
			assert.LessOrEqual(t, cell.ChaosPotential, 100.0)
			assert.GreaterOrEqual(t, cell.PsychologicalEdge, -30.0)
			assert.LessOrEqual(t, cell.PsychologicalEdge, 30.0)
			assert.GreaterOrEqual(t, cell.PredictedGoals, 0.5)
			assert.LessOrEqual(t, cell.PredictedGoals, 7.0)
			assert.GreaterOrEqual(t, cell.PredictedBTTSProb, 0.10)
			assert.LessOrEqual(t, cell.PredictedBTTSProb, 0.95)
		})
	}
}

func TestComputeFrictionDeterministic(t *testing.T) {
	home, away := volatileInput("A"), neutralInput("B")
	first := ComputeFriction(home, away)
	second := ComputeFriction(home, away)
	assert.Equal(t, first, second)
}

func TestStyleClashAsymmetric(t *testing.T) {
	// offensive home vs counter away = 0.90; reversed = 0.85
	home := neutralInput("A")
	home.Style = models.StyleOffensive
	away := neutralInput("B")
	away.Style = models.StyleCounter

	forward := ComputeFriction(home, away)
	reversed := ComputeFriction(away, home)
	assert.NotEqual(t, forward.StyleClash, reversed.StyleClash)
	assert.Equal(t, 90.0, forward.StyleClash)
	assert.Equal(t, 85.0, reversed.StyleClash)
}

func TestChaosPotentialSymmetric(t *testing.T) {
	a, b := volatileInput("A"), neutralInput("B")
	b.Style = models.StyleCounter
	b.Psyche.Profile = models.PsychePredator
	b.Psyche.KillerInstinct = 1.5

	forward := ComputeFriction(a, b)
	reversed := ComputeFriction(b, a)
	assert.Equal(t, forward.ChaosPotential, reversed.ChaosPotential)
}

func TestTempoClashOppositeTemposAmplify(t *testing.T) {
	diesel := neutralInput("Diesel")
	diesel.DieselFactor = 0.80
	diesel.FastStarter = 0.2
	sprinter := neutralInput("Sprinter")
	sprinter.DieselFactor = 0.20
	sprinter.FastStarter = 0.60

	plain := tempoClash(neutralInput("A"), neutralInput("B"))
	amplified := tempoClash(diesel, sprinter)
	assert.Greater(t, amplified, plain)
	assert.LessOrEqual(t, amplified, 1.0)
}

func TestFriction1HDieselSuppression(t *testing.T) {
	slow := neutralInput("A")
	slow.DieselFactor = 0.9
	slowOpp := neutralInput("B")
	slowOpp.DieselFactor = 0.9

	fast := neutralInput("C")
	fast.DieselFactor = 0.1
	fast.FastStarter = 0.8
	fastOpp := neutralInput("D")
	fastOpp.DieselFactor = 0.1
	fastOpp.FastStarter = 0.8

	assert.Less(t, friction1H(slow, slowOpp), friction1H(fast, fastOpp))
}

func TestPsychologicalEdgeFavorsKiller(t *testing.T) {
	home := neutralInput("A")
	home.Psyche.Profile = models.PsychePredator
	home.Psyche.KillerInstinct = 1.6
	home.Context.HomeStrength = 75
	away := neutralInput("B")
	away.Psyche.Profile = models.PsycheFragile
	away.Psyche.PanicFactor = 1.5
	away.Context.AwayStrength = 40

	cell := ComputeFriction(home, away)
	assert.Greater(t, cell.PsychologicalEdge, 0.0)

	mirrored := ComputeFriction(away, home)
	assert.Less(t, mirrored.PsychologicalEdge, 0.0)
}

func TestOver25Table(t *testing.T) {
	tests := []struct {
		goals float64
		want  float64
	}{
		{1.2, 0.20},
		{1.5, 0.20},
		{1.8, 0.35},
		{2.4, 0.50},
		{2.9, 0.60},
		{3.3, 0.70},
		{3.9, 0.80},
		{5.0, 0.85},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, over25FromGoals(tt.goals), "goals=%v", tt.goals)
	}
}

func TestMatchProfileChaosFest(t *testing.T) {
	cell := ComputeFriction(volatileInput("A"), volatileInput("B"))
	require.Greater(t, cell.ChaosPotential, 45.0)
	// Two volatile, high-panic sides never classify as a controlled match.
	assert.NotEqual(t, models.ProfileBoaConstrictor, cell.MatchProfile)
	assert.NotEqual(t, models.ProfileTrenchWarfare, cell.MatchProfile)
}

func TestMatchProfileExplosiveSecondHalf(t *testing.T) {
	home := neutralInput("A")
	home.DieselFactor = 0.85
	home.FastStarter = 0.1
	home.Psyche.PanicFactor = 1.9
	home.LateGameDominance = 90
	away := neutralInput("B")
	away.DieselFactor = 0.85
	away.FastStarter = 0.1
	away.Psyche.PanicFactor = 1.7
	away.LateGameDominance = 80

	cell := ComputeFriction(home, away)
	require.Greater(t, cell.Friction2H, 60.0)
	assert.Equal(t, models.ProfileExplosiveSecondHalf, cell.MatchProfile)
}

func TestConfidenceLevel(t *testing.T) {
	assert.Equal(t, models.ConfidenceLow, confidenceLevel(neutralInput("A"), neutralInput("B")))

	rich := volatileInput("A")
	richer := volatileInput("B")
	richer.LateGameDominance = 70
	assert.Equal(t, models.ConfidenceHigh, confidenceLevel(rich, richer))
}

func TestPredictedGoalsRespondToFriction(t *testing.T) {
	home, away := neutralInput("A"), neutralInput("B")
	low := predictGoals(home, away, 20)
	high := predictGoals(home, away, 90)
	assert.Greater(t, high, low)
}
