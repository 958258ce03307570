// Package matcher joins the scenario and strategy catalogs against a match
// context and emits sized-bet candidates. The matcher never sizes a stake
// itself; each candidate carries the parameters the sizing engine needs.
package matcher

import (
	"math"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// ShadowChecker reports whether a (tier, market) pair is currently in
// SHADOW status, and the stake multiplier the board currently assigns to a
// market. Shadowed candidates are still produced, flagged as paper-trade
// only.
type ShadowChecker interface {
	IsShadowed(tier models.Tier, market models.MarketType) bool
	StakeMultiplier(market models.MarketType) float64
}

// Candidate is one (scenario, strategy, market) triple whose conditions all
// hold, ready for the sizing engine.
type Candidate struct {
	ScenarioCode string            `json:"scenario_code"`
	StrategyCode string            `json:"strategy_code"`
	Market       models.MarketType `json:"market"`

	MeanProb      float64 `json:"mean_prob"`
	ZEdge         float64 `json:"z_edge"`
	MinEdge       float64 `json:"min_edge"`
	KellyFraction float64 `json:"kelly_fraction"`
	MaxStakePct   float64 `json:"max_stake_pct"`

	Shadowed bool `json:"shadowed"`
}

// Matcher evaluates the catalog against match contexts.
type Matcher struct {
	shadows ShadowChecker
	logger  *zap.SugaredLogger
}

func New(shadows ShadowChecker, logger *zap.SugaredLogger) *Matcher {
	return &Matcher{shadows: shadows, logger: logger}
}

// Evaluate walks every scenario, joins compatible strategies, intersects
// markets and returns all surviving candidates.
func (m *Matcher) Evaluate(ctx *MatchContext, scenarios []models.Scenario, strategies []models.Strategy) []Candidate {
	var out []Candidate

	for i := range scenarios {
		sc := &scenarios[i]
		if !EvalConditions(ctx, sc.Conditions) {
			continue
		}
		if sc.MinConfidence > 0 && ctx.Cell.ConfidenceLevel == models.ConfidenceLow {
			continue
		}

		for j := range strategies {
			st := &strategies[j]
			if !st.CompatibleWith(sc.Code) {
				continue
			}
			if !EvalConditions(ctx, st.RequiresConditions) {
				continue
			}

			for _, market := range candidateMarkets(sc, st) {
				meanProb, ok := m.meanProbFor(ctx, market, st)
				if !ok {
					continue
				}
				cand := Candidate{
					ScenarioCode:  sc.Code,
					StrategyCode:  st.Code,
					Market:        market,
					MeanProb:      meanProb,
					ZEdge:         ctx.ZEdge,
					MinEdge:       st.MinEdge,
					KellyFraction: st.QuantParams.KellyFraction,
					MaxStakePct:   st.QuantParams.MaxStakePct,
				}
				if m.shadows != nil && ctx.HomeDNA != nil {
					cand.Shadowed = m.shadows.IsShadowed(ctx.HomeDNA.Tier, market)
				}
				out = append(out, cand)
			}
		}
	}

	if m.logger != nil {
		m.logger.Debugw("Catalog evaluated",
			"match", ctx.MatchID, "candidates", len(out))
	}
	return out
}

// candidateMarkets intersects the scenario's primary markets with any
// market constraint on the strategy, minus the scenario's avoid list.
func candidateMarkets(sc *models.Scenario, st *models.Strategy) []models.MarketType {
	avoid := make(map[models.MarketType]bool, len(sc.AvoidMarkets))
	for _, mk := range sc.AvoidMarkets {
		avoid[mk] = true
	}

	allowed := map[models.MarketType]bool{}
	if len(st.MarketConstraint) > 0 {
		for _, mk := range st.MarketConstraint {
			allowed[mk] = true
		}
	}

	var out []models.MarketType
	for _, mk := range sc.PrimaryMarkets {
		if avoid[mk] {
			continue
		}
		if len(allowed) > 0 && !allowed[mk] {
			continue
		}
		out = append(out, mk)
	}
	return out
}

// meanProbFor derives the model probability for a market: the friction
// cell's predictions where the market maps onto them, a strength model for
// result markets, and the strategy's quant thresholds as last resort.
func (m *Matcher) meanProbFor(ctx *MatchContext, market models.MarketType, st *models.Strategy) (float64, bool) {
	cell := ctx.Cell
	lambda := cell.PredictedGoals

	switch market {
	case models.MarketBTTSYes:
		return cell.PredictedBTTSProb, true
	case models.MarketBTTSNo:
		return 1 - cell.PredictedBTTSProb, true
	case models.MarketOver25:
		return cell.PredictedOver25Prob, true
	case models.MarketUnder25:
		return 1 - cell.PredictedOver25Prob, true
	case models.MarketOver15:
		return 1 - poissonCDF(lambda, 1), true
	case models.MarketUnder15:
		return poissonCDF(lambda, 1), true
	case models.MarketOver35:
		return 1 - poissonCDF(lambda, 3), true
	case models.MarketUnder35:
		return poissonCDF(lambda, 3), true
	}

	pHome, pDraw, pAway := m.resultProbs(ctx)
	switch market {
	case models.MarketHomeWin:
		return pHome, true
	case models.MarketAwayWin:
		return pAway, true
	case models.MarketDrawFlat:
		return pDraw, true
	case models.MarketDC1X:
		return pHome + pDraw, true
	case models.MarketDCX2:
		return pDraw + pAway, true
	case models.MarketDC12:
		return pHome + pAway, true
	case models.MarketDNBHome:
		if pHome+pAway == 0 {
			break
		}
		return pHome / (pHome + pAway), true
	case models.MarketDNBAway:
		if pHome+pAway == 0 {
			break
		}
		return pAway / (pHome + pAway), true
	}

	if fallback, ok := st.QuantParams.Thresholds["mean_prob"]; ok {
		return fallback, true
	}
	return 0, false
}

// resultProbs is a coarse 1X2 model: the psychological edge shifts
// probability mass between the sides around a draw base that shrinks as
// expected goals grow.
func (m *Matcher) resultProbs(ctx *MatchContext) (pHome, pDraw, pAway float64) {
	pDraw = clampProb(0.32 - (ctx.Cell.PredictedGoals-2.5)*0.04)
	shift := ctx.Cell.PsychologicalEdge / 100 // [-0.30, +0.30]
	rest := 1 - pDraw
	pHome = clampProb(rest*0.5 + shift)
	pAway = clampProb(rest - pHome)
	// Clamping can leak mass; renormalize so the triple always sums to 1.
	total := pHome + pDraw + pAway
	return pHome / total, pDraw / total, pAway / total
}

func clampProb(p float64) float64 {
	return math.Min(0.95, math.Max(0.02, p))
}

// poissonCDF is P(N <= k) for N ~ Poisson(lambda).
func poissonCDF(lambda float64, k int) float64 {
	if lambda <= 0 {
		return 1
	}
	sum := 0.0
	term := math.Exp(-lambda)
	for i := 0; i <= k; i++ {
		if i > 0 {
			term *= lambda / float64(i)
		}
		sum += term
	}
	return math.Min(1, sum)
}
