// Package engine computes ordered-pair friction between two team DNA
// profiles: clash components, temporal decomposition, chaos potential,
// psychological edge and the derived goal-market predictions. Everything in
// this package is a pure function of its inputs.
package engine

import (
	"math"

	"github.com/quantfoot/analytics-api/internal/models"
)

// homeAdvantage multiplies the home side's expected goals.
const homeAdvantage = 1.1

// component weights for the global friction score
const (
	weightStyle    = 0.20
	weightTempo    = 0.20
	weightPhysical = 0.20
	weightMental   = 0.25
	weightTier     = 0.15
)

// ComputeFriction derives the full friction cell for the ordered pair
// (home, away). Deterministic: identical inputs produce a bit-identical
// cell.
func ComputeFriction(home, away models.FrictionInput) models.FrictionCell {
	style := styleClash(home, away)
	tempo := tempoClash(home, away)
	physical := physicalClash(home, away)
	mental := mentalClash(home, away)
	tier := tierDifferential(home, away)

	friction := clamp((style*weightStyle+tempo*weightTempo+physical*weightPhysical+
		mental*weightMental+tier*weightTier)*100, 0, 100)

	f1h := friction1H(home, away)
	f2h := friction2H(home, away)
	chaos := chaosPotential(home, away)
	edge := psychologicalEdge(home, away)

	goals := predictGoals(home, away, friction)
	btts := predictBTTS(home, away, friction)
	over25 := over25FromGoals(goals)

	cell := models.FrictionCell{
		TeamHome:            home.TeamName,
		TeamAway:            away.TeamName,
		FrictionScore:       round2(friction),
		Friction1H:          round2(f1h),
		Friction2H:          round2(f2h),
		StyleClash:          round2(style * 100),
		TempoClash:          round2(tempo * 100),
		MentalClash:         round2(mental * 100),
		PhysicalClash:       round2(physical * 100),
		ChaosPotential:      round2(chaos),
		PsychologicalEdge:   round2(edge),
		PredictedGoals:      round2(goals),
		PredictedBTTSProb:   round2(btts),
		PredictedOver25Prob: over25,
	}
	cell.MatchProfile = classifyProfile(cell, tier)
	cell.ConfidenceLevel = confidenceLevel(home, away)
	return cell
}

func styleClash(home, away models.FrictionInput) float64 {
	return styleClashLookup(home.Style, away.Style)
}

// tempoClash measures pace incompatibility. Opposite tempos amplify: a
// slow-burning diesel side against a fast starter produces more friction
// than two similar profiles.
func tempoClash(home, away models.FrictionInput) float64 {
	clash := clamp(math.Abs(home.DieselFactor-away.DieselFactor)*1.5, 0, 1)
	if (home.DieselFactor > 0.65 && away.FastStarter > 0.45) ||
		(away.DieselFactor > 0.65 && home.FastStarter > 0.45) {
		clash *= 1.3
	}
	return clamp(clash, 0, 1)
}

func physicalClash(home, away models.FrictionInput) float64 {
	pressing := math.Abs(home.PressingIntensity/20 - away.PressingIntensity/20)
	late := math.Abs(home.LateGameDominance-away.LateGameDominance) / 100
	return clamp(0.7*pressing+0.3*late, 0, 1)
}

func mentalClash(home, away models.FrictionInput) float64 {
	base := psycheClashLookup(home.Psyche.Profile, away.Psyche.Profile)
	panicBoost := 1 + (home.Psyche.PanicFactor+away.Psyche.PanicFactor)/4*0.3
	killerGap := math.Abs(home.Psyche.KillerInstinct-away.Psyche.KillerInstinct) / 2 * 0.2
	return clamp(base*panicBoost+killerGap, 0, 1)
}

func tierDifferential(home, away models.FrictionInput) float64 {
	diff := math.Abs(home.Tier.Value()-away.Tier.Value()) / 100
	if (home.Tier == models.TierElite && away.Tier == models.TierBronze) ||
		(home.Tier == models.TierBronze && away.Tier == models.TierElite) {
		diff *= 1.2
	}
	return clamp(diff, 0, 1)
}

// friction1H: diesel teams suppress early friction, fast starters amplify
// it.
func friction1H(home, away models.FrictionInput) float64 {
	avgDiesel := (home.DieselFactor + away.DieselFactor) / 2
	avgFast := (home.FastStarter + away.FastStarter) / 2
	return clamp((1-avgDiesel)*100*(1+avgFast*0.3), 0, 100)
}

func friction2H(home, away models.FrictionInput) float64 {
	f := math.Max(home.Psyche.PanicFactor, away.Psyche.PanicFactor)*20 +
		math.Max(home.LateGameDominance, away.LateGameDominance)*0.5
	if home.DieselFactor > 0.70 || away.DieselFactor > 0.70 {
		f *= 1.2
	}
	return clamp(f, 0, 100)
}

// chaosPotential is symmetric: chaos(A,B) == chaos(B,A). The friction term
// is rebuilt from symmetrized matrix lookups so the ordering of the pair
// cannot leak in.
func chaosPotential(home, away models.FrictionInput) float64 {
	styleSym := (styleClashLookup(home.Style, away.Style) + styleClashLookup(away.Style, home.Style)) / 2
	mentalSym := (mentalClash(home, away) + mentalClash(away, home)) / 2
	frictionSym := clamp((styleSym*weightStyle+tempoClash(home, away)*weightTempo+
		physicalClash(home, away)*weightPhysical+mentalSym*weightMental+
		tierDifferential(home, away)*weightTier)*100, 0, 100)

	volatile := 0.0
	if home.Psyche.Profile == models.PsycheVolatile {
		volatile++
	}
	if away.Psyche.Profile == models.PsycheVolatile {
		volatile++
	}

	chaos := frictionSym*0.3 +
		(home.Psyche.PanicFactor+away.Psyche.PanicFactor)*4 +
		volatile*8 +
		(home.Psyche.CollapseRate+away.Psyche.CollapseRate)*2 +
		math.Max(home.Psyche.ComebackMentality, away.Psyche.ComebackMentality)*2
	return clamp(chaos, 0, 100)
}

// psychologicalEdge is signed: positive favors the home side.
func psychologicalEdge(home, away models.FrictionInput) float64 {
	killerDiff := home.Psyche.KillerInstinct - away.Psyche.KillerInstinct
	panicDiff := away.Psyche.PanicFactor - home.Psyche.PanicFactor
	strengthDiff := home.Context.HomeStrength - away.Context.AwayStrength
	edge := killerDiff*10 + panicDiff*5 + strengthDiff*0.2 +
		psycheEdgeLookup(home.Psyche.Profile, away.Psyche.Profile)
	return clamp(edge, -30, 30)
}

// predictGoals estimates total match goals. Per-side expectation is the
// geometric mean of own attack and opponent defense, home side boosted by
// the standard home advantage.
func predictGoals(home, away models.FrictionInput, friction float64) float64 {
	homeExp := math.Sqrt(home.Context.XGForAvg*away.Context.XGAgainstAvg) * homeAdvantage
	awayExp := math.Sqrt(away.Context.XGForAvg * home.Context.XGAgainstAvg)
	base := homeExp + awayExp

	goals := base * (1 + (friction-50)/150)
	if (home.PressingIntensity+away.PressingIntensity)/2 > 13 {
		goals += 0.2
	}
	if bonus := home.Psyche.KillerInstinct + away.Psyche.KillerInstinct - 2; bonus > 0 {
		goals += bonus * 0.15
	}
	return clamp(goals, 0.5, 7.0)
}

func predictBTTS(home, away models.FrictionInput, friction float64) float64 {
	p := (1 - math.Exp(-home.Context.XGForAvg)) * (1 - math.Exp(-away.Context.XGForAvg))
	p *= 1 + (friction-50)/200
	p *= 1 + (home.Psyche.PanicFactor+away.Psyche.PanicFactor)/20
	return clamp(p, 0.10, 0.95)
}

// over25FromGoals maps predicted total goals onto p(over 2.5) through the
// calibrated step table.
func over25FromGoals(goals float64) float64 {
	switch {
	case goals <= 1.5:
		return 0.20
	case goals <= 2.0:
		return 0.35
	case goals <= 2.5:
		return 0.50
	case goals <= 3.0:
		return 0.60
	case goals <= 3.5:
		return 0.70
	case goals <= 4.0:
		return 0.80
	default:
		return 0.85
	}
}

// classifyProfile assigns the single match-profile tag. Order matters: the
// first matching rule wins.
func classifyProfile(c models.FrictionCell, tierDiff float64) models.MatchProfile {
	switch {
	case c.Friction2H > 1.5*c.Friction1H && c.Friction2H > 60:
		return models.ProfileExplosiveSecondHalf
	case c.Friction1H > 1.3*c.Friction2H && c.Friction1H > 50:
		return models.ProfileFrontLoaded
	case c.ChaosPotential > 75:
		return models.ProfileChaosFest
	case c.FrictionScore < 40 && c.ChaosPotential < 40:
		return models.ProfileBoaConstrictor
	case c.FrictionScore < 30:
		return models.ProfileTrenchWarfare
	case c.FrictionScore > 65 && c.ChaosPotential > 50:
		return models.ProfileGoalFest
	case tierDiff > 0.5:
		return models.ProfileDavidVsGoliath
	default:
		return models.ProfileTacticalChess
	}
}

// confidenceLevel counts how many inputs deviate from the neutral defaults;
// matches built on defaults alone stay low confidence.
func confidenceLevel(home, away models.FrictionInput) models.ConfidenceLevel {
	count := 0
	for _, in := range []models.FrictionInput{home, away} {
		if in.Style != models.StyleBalanced {
			count++
		}
		if in.DieselFactor != 0.5 {
			count++
		}
		if in.PressingIntensity != 10 {
			count++
		}
		if in.LateGameDominance != 50 {
			count++
		}
		if in.Psyche.Profile != models.PsycheBalanced {
			count++
		}
		if in.Context.XGForAvg != 1.3 {
			count++
		}
	}
	switch {
	case count >= 6:
		return models.ConfidenceHigh
	case count >= 4:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func clamp(v, lo, hi float64) float64 {
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
