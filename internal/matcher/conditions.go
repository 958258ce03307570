package matcher

import (
	"math"

	"github.com/quantfoot/analytics-api/internal/models"
)

// MatchContext is the flattened view of a fixture the condition engine
// evaluates predicates against: the friction cell, both DNAs, the league
// and whatever odds exist.
type MatchContext struct {
	MatchID string
	League  string

	Cell    models.FrictionCell
	HomeDNA *models.TeamDNA
	AwayDNA *models.TeamDNA

	Odds  *models.MarketOdds // nil when no snapshot exists
	CLV   *models.CLVData    // nil when untracked
	ZEdge float64
}

// Metric resolves a named metric from the context. The name set is the
// vocabulary the catalog's condition maps are written in.
func (c *MatchContext) Metric(name string) (float64, bool) {
	switch name {
	case "friction", "friction_score":
		return c.Cell.FrictionScore, true
	case "friction_1h":
		return c.Cell.Friction1H, true
	case "friction_2h":
		return c.Cell.Friction2H, true
	case "chaos", "chaos_potential":
		return c.Cell.ChaosPotential, true
	case "psychological_edge":
		return c.Cell.PsychologicalEdge, true
	case "predicted_goals", "xg_total":
		return c.Cell.PredictedGoals, true
	case "btts_prob":
		return c.Cell.PredictedBTTSProb, true
	case "over25_prob":
		return c.Cell.PredictedOver25Prob, true
	case "z_edge":
		return c.ZEdge, true
	case "style_clash":
		return c.Cell.StyleClash, true
	case "tempo_clash":
		return c.Cell.TempoClash, true
	case "mental_clash":
		return c.Cell.MentalClash, true
	case "physical_clash":
		return c.Cell.PhysicalClash, true
	}

	if c.HomeDNA != nil {
		switch name {
		case "home_panic":
			return c.HomeDNA.Psyche.PanicFactor, true
		case "home_killer":
			return c.HomeDNA.Psyche.KillerInstinct, true
		case "home_diesel":
			return c.HomeDNA.Temporal.DieselFactor, true
		case "home_pressing":
			return c.HomeDNA.Physical.PressingIntensity, true
		case "home_strength":
			return c.HomeDNA.Context.HomeStrength, true
		case "home_tier_value":
			return c.HomeDNA.Tier.Value(), true
		case "home_collapse":
			return c.HomeDNA.Psyche.CollapseRate, true
		}
	}
	if c.AwayDNA != nil {
		switch name {
		case "away_panic":
			return c.AwayDNA.Psyche.PanicFactor, true
		case "away_killer":
			return c.AwayDNA.Psyche.KillerInstinct, true
		case "away_diesel":
			return c.AwayDNA.Temporal.DieselFactor, true
		case "away_pressing":
			return c.AwayDNA.Physical.PressingIntensity, true
		case "away_strength":
			return c.AwayDNA.Context.AwayStrength, true
		case "away_tier_value":
			return c.AwayDNA.Tier.Value(), true
		case "away_collapse":
			return c.AwayDNA.Psyche.CollapseRate, true
		}
	}
	if c.HomeDNA != nil && c.AwayDNA != nil {
		switch name {
		case "max_panic":
			return math.Max(c.HomeDNA.Psyche.PanicFactor, c.AwayDNA.Psyche.PanicFactor), true
		case "tier_gap":
			return math.Abs(c.HomeDNA.Tier.Value() - c.AwayDNA.Tier.Value()), true
		case "max_comeback":
			return math.Max(c.HomeDNA.Psyche.ComebackMentality, c.AwayDNA.Psyche.ComebackMentality), true
		}
	}
	if c.Odds != nil {
		switch name {
		case "odds_home":
			return c.Odds.Home, true
		case "odds_draw":
			return c.Odds.Draw, true
		case "odds_away":
			return c.Odds.Away, true
		}
	}
	return 0, false
}

// evalPredicate applies one {op: threshold} predicate to a value. Unknown
// operators fail closed.
func evalPredicate(value float64, pred models.Predicate) bool {
	for op, threshold := range pred {
		var ok bool
		switch op {
		case ">":
			ok = value > threshold
		case ">=":
			ok = value >= threshold
		case "<":
			ok = value < threshold
		case "<=":
			ok = value <= threshold
		case "==":
			ok = value == threshold
		default:
			ok = false
		}
		if !ok {
			return false
		}
	}
	return true
}

// EvalConditions checks an AND-joined condition set against the context.
// A condition naming an unresolvable metric fails the whole set.
func EvalConditions(ctx *MatchContext, conds models.ConditionSet) bool {
	for metric, pred := range conds {
		value, ok := ctx.Metric(metric)
		if !ok {
			return false
		}
		if !evalPredicate(value, pred) {
			return false
		}
	}
	return true
}
