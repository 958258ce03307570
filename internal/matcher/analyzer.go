package matcher

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/engine"
	"github.com/quantfoot/analytics-api/internal/kelly"
	"github.com/quantfoot/analytics-api/internal/models"
)

// top3Count marks the strongest picks of an analysis.
const top3Count = 3

// TeamSource supplies full DNA profiles.
type TeamSource interface {
	GetTeamDNA(ctx context.Context, teamName string) (*models.TeamDNA, error)
}

// FrictionSource serves precomputed friction cells, possibly swapped.
type FrictionSource interface {
	GetMatchupFriction(ctx context.Context, home, away string) (*models.FrictionCell, error)
}

// OddsSource serves odds and CLV snapshots.
type OddsSource interface {
	GetRealMarketOdds(ctx context.Context, matchID, bookmaker string) (*models.MarketOdds, error)
	GetCLVData(ctx context.Context, matchID string) (*models.CLVData, error)
}

// CatalogSource serves the scenario and strategy catalogs.
type CatalogSource interface {
	ListScenarios(ctx context.Context) ([]models.Scenario, error)
	ListStrategies(ctx context.Context) ([]models.Strategy, error)
}

// FactorSource serves the active adaptive factors keyed by target.
type FactorSource interface {
	ListActiveAdjustments(ctx context.Context, typ models.AdjustmentType) (map[string]float64, error)
}

// Analyzer runs the full per-match pipeline: friction cell, catalog
// matching, uncertainty-penalized sizing, factor application. It abstains
// (empty analysis) rather than guessing when profiles are missing.
type Analyzer struct {
	teams     TeamSource
	frictions FrictionSource
	odds      OddsSource
	catalog   CatalogSource
	factors   FactorSource
	matcher   *Matcher
	sizer     *kelly.Sizer
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewAnalyzer(teams TeamSource, frictions FrictionSource, odds OddsSource,
	catalog CatalogSource, factors FactorSource, m *Matcher, sizer *kelly.Sizer,
	logger *zap.SugaredLogger) *Analyzer {
	return &Analyzer{
		teams:     teams,
		frictions: frictions,
		odds:      odds,
		catalog:   catalog,
		factors:   factors,
		matcher:   m,
		sizer:     sizer,
		logger:    logger,
		now:       time.Now,
	}
}

// Analyze produces the multi-market analysis for one opportunity. Missing
// team profiles or an underivable friction cell yield an empty analysis:
// the match is skipped as an opportunity, never guessed at.
func (a *Analyzer) Analyze(ctx context.Context, opp models.Opportunity) (*models.MatchAnalysis, error) {
	analysis := &models.MatchAnalysis{Opportunity: opp, GeneratedAt: a.now()}

	homeDNA, err := a.teams.GetTeamDNA(ctx, opp.HomeTeam)
	if err != nil {
		return nil, fmt.Errorf("load home dna: %w", err)
	}
	awayDNA, err := a.teams.GetTeamDNA(ctx, opp.AwayTeam)
	if err != nil {
		return nil, fmt.Errorf("load away dna: %w", err)
	}

	cell, err := a.loadCell(ctx, opp, homeDNA, awayDNA)
	if err != nil {
		return nil, err
	}
	if cell == nil {
		a.logger.Debugw("No friction cell derivable, match skipped",
			"match", opp.MatchID, "home", opp.HomeTeam, "away", opp.AwayTeam)
		return analysis, nil
	}

	odds, err := a.odds.GetRealMarketOdds(ctx, opp.MatchID, "")
	if err != nil {
		return nil, fmt.Errorf("load odds: %w", err)
	}
	clv, err := a.odds.GetCLVData(ctx, opp.MatchID)
	if err != nil {
		return nil, fmt.Errorf("load clv: %w", err)
	}

	scenarios, err := a.catalog.ListScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	strategies, err := a.catalog.ListStrategies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load strategies: %w", err)
	}

	factors, err := a.loadFactors(ctx)
	if err != nil {
		return nil, err
	}

	mc := &MatchContext{
		MatchID: opp.MatchID,
		League:  opp.League,
		Cell:    *cell,
		HomeDNA: homeDNA,
		AwayDNA: awayDNA,
		Odds:    odds,
		CLV:     clv,
		ZEdge:   cell.PsychologicalEdge / 10,
	}

	candidates := a.matcher.Evaluate(mc, scenarios, strategies)
	analysis.Picks = a.sizeCandidates(mc, candidates, factors)

	a.logger.Infow("Match analyzed",
		"match", opp.MatchID, "profile", cell.MatchProfile,
		"candidates", len(candidates), "picks", len(analysis.Picks))
	return analysis, nil
}

// loadCell fetches the stored cell for the pair, reorients reverse hits,
// and falls back to computing it from the profiles when the matrix has no
// row yet.
func (a *Analyzer) loadCell(ctx context.Context, opp models.Opportunity, homeDNA, awayDNA *models.TeamDNA) (*models.FrictionCell, error) {
	cell, err := a.frictions.GetMatchupFriction(ctx, opp.HomeTeam, opp.AwayTeam)
	if err != nil {
		return nil, fmt.Errorf("load friction: %w", err)
	}
	if cell != nil {
		return cell.Reorient(), nil
	}
	if homeDNA == nil || awayDNA == nil {
		return nil, nil
	}
	computed := engine.ComputeFriction(homeDNA.FrictionView(), awayDNA.FrictionView())
	return &computed, nil
}

// activeFactors carries the adaptive loop's three factor dimensions; absent
// targets count as 1.
type activeFactors struct {
	market map[string]float64
	tier   map[string]float64
	league map[string]float64
}

func (f activeFactors) combined(mc *MatchContext, market models.MarketType) float64 {
	c := factorOr1(f.market[string(market)]) * factorOr1(f.league[mc.League])
	if mc.HomeDNA != nil {
		c *= factorOr1(f.tier[string(mc.HomeDNA.Tier)])
	}
	return c
}

func factorOr1(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

func (a *Analyzer) loadFactors(ctx context.Context) (activeFactors, error) {
	var f activeFactors
	if a.factors == nil {
		return f, nil
	}
	var err error
	if f.market, err = a.factors.ListActiveAdjustments(ctx, models.AdjustMarketFactor); err != nil {
		return f, fmt.Errorf("load market factors: %w", err)
	}
	if f.tier, err = a.factors.ListActiveAdjustments(ctx, models.AdjustTierFactor); err != nil {
		return f, fmt.Errorf("load tier factors: %w", err)
	}
	if f.league, err = a.factors.ListActiveAdjustments(ctx, models.AdjustLeagueFactor); err != nil {
		return f, fmt.Errorf("load league factors: %w", err)
	}
	return f, nil
}

// sizeCandidates runs the sizing engine over every candidate and keeps the
// strongest stake per market. Shadowed candidates survive as paper picks at
// their theoretical size; live candidates additionally carry the status
// board's stake multiplier.
func (a *Analyzer) sizeCandidates(mc *MatchContext, candidates []Candidate, factors activeFactors) []models.MarketPick {
	best := map[models.MarketType]models.MarketPick{}

	for _, cand := range candidates {
		marketOdds := oddsForMarket(mc.Odds, cand.Market)

		factor := factors.combined(mc, cand.Market)
		if !cand.Shadowed && a.matcher != nil && a.matcher.shadows != nil {
			factor *= a.matcher.shadows.StakeMultiplier(cand.Market)
		}

		in := kelly.Input{
			MeanProb:         cand.MeanProb,
			ZEdge:            cand.ZEdge,
			Odds:             marketOdds,
			AdjustmentFactor: factor,
			Uncertainty:      a.uncertaintyFor(mc, cand),
			Fraction:         cand.KellyFraction,
			MaxStakePct:      cand.MaxStakePct,
		}
		result := a.sizer.Size(in)
		if !result.IsPositive {
			continue
		}
		if cand.MinEdge > 0 && result.EdgePct < cand.MinEdge {
			continue
		}

		decision := kelly.Classify(kelly.DecisionInput{
			ZEdge:    cand.ZEdge,
			Chaos:    mc.Cell.ChaosPotential,
			Friction: mc.Cell.FrictionScore,
			XGTotal:  mc.Cell.PredictedGoals,
		})

		pick := models.MarketPick{
			Market:       cand.Market,
			Prediction:   decision.Note,
			Odds:         marketOdds,
			Probability:  result.AdjustedProb,
			KellyPct:     result.Stake,
			DiamondScore: diamondScore(result),
			ValueRating:  valueRating(result.EdgePct),
			Factors:      pickFactors(mc, cand, result, decision),
			HomeXG:       homeShare(mc.Cell),
			AwayXG:       awayShare(mc.Cell),
			PoissonProb:  cand.MeanProb,
			Shadowed:     cand.Shadowed,
		}

		if prev, ok := best[cand.Market]; !ok || pick.KellyPct > prev.KellyPct {
			best[cand.Market] = pick
		}
	}

	picks := make([]models.MarketPick, 0, len(best))
	for _, p := range best {
		picks = append(picks, p)
	}
	sort.Slice(picks, func(i, j int) bool {
		if picks[i].KellyPct != picks[j].KellyPct {
			return picks[i].KellyPct > picks[j].KellyPct
		}
		return picks[i].Market < picks[j].Market
	})
	for i := range picks {
		picks[i].IsTop3 = i < top3Count && !picks[i].Shadowed
	}
	return picks
}

func (a *Analyzer) uncertaintyFor(mc *MatchContext, cand Candidate) kelly.UncertaintyInput {
	u := kelly.UncertaintyInput{
		ZScore: cand.ZEdge,
		Chaos:  mc.Cell.ChaosPotential,
		Tier:   models.TierSilver,
	}
	if mc.HomeDNA != nil {
		u.Tier = mc.HomeDNA.Tier
		u.SampleSize = mc.HomeDNA.Market.SampleSize
	}
	if mc.CLV != nil {
		u.CLVSignal = mc.CLV.Signal()
		side := mc.CLV.Side()
		u.CLVConfirms = clvConfirms(side, cand.Market)
		u.CLVContradicts = clvContradicts(side, cand.Market)
	}
	return u
}

// clvConfirms reports whether the market rides the side the closing line
// moved toward.
func clvConfirms(side models.CLVSide, market models.MarketType) bool {
	switch side {
	case models.CLVSideHome:
		return market == models.MarketHomeWin || market == models.MarketDNBHome ||
			market == models.MarketDC1X
	case models.CLVSideAway:
		return market == models.MarketAwayWin || market == models.MarketDNBAway ||
			market == models.MarketDCX2
	case models.CLVSideDraw:
		return market == models.MarketDrawFlat || market == models.MarketDC1X ||
			market == models.MarketDCX2
	default:
		return false
	}
}

// clvContradicts reports whether the market bets against the move.
func clvContradicts(side models.CLVSide, market models.MarketType) bool {
	switch side {
	case models.CLVSideHome:
		return market == models.MarketAwayWin || market == models.MarketDNBAway
	case models.CLVSideAway:
		return market == models.MarketHomeWin || market == models.MarketDNBHome
	default:
		return false
	}
}

// oddsForMarket maps a market onto the snapshot's prices. Markets the
// snapshot does not carry return 0 and size through the Z-score path.
func oddsForMarket(odds *models.MarketOdds, market models.MarketType) float64 {
	if odds == nil {
		return 0
	}
	switch market {
	case models.MarketHomeWin:
		return odds.Home
	case models.MarketDrawFlat:
		return odds.Draw
	case models.MarketAwayWin:
		return odds.Away
	case models.MarketOver25:
		if odds.HasTotals {
			return odds.Over25
		}
	case models.MarketUnder25:
		if odds.HasTotals {
			return odds.Under25
		}
	}
	return 0
}

// diamondScore grades a sized pick on [0, 100]: the penalized probability
// carries the score, the realized edge tops it up.
func diamondScore(r kelly.Result) float64 {
	score := r.AdjustedProb*100 + r.EdgePct
	if score > 99 {
		score = 99
	}
	if score < 0 {
		score = 0
	}
	return score
}

func valueRating(edgePct float64) models.ValueRating {
	switch {
	case edgePct >= 8:
		return models.ValueDiamond
	case edgePct >= 5:
		return models.ValueGold
	case edgePct >= 2:
		return models.ValueSilver
	default:
		return models.ValueBronze
	}
}

func pickFactors(mc *MatchContext, cand Candidate, r kelly.Result, d kelly.Decision) map[string]any {
	factors := map[string]any{
		"scenario": cand.ScenarioCode,
		"strategy": cand.StrategyCode,
		"decision": string(d.Type),
		"z_edge":   cand.ZEdge,
		"friction": mc.Cell.FrictionScore,
		"chaos":    mc.Cell.ChaosPotential,
		"profile":  string(mc.Cell.MatchProfile),
		"method":   string(r.Method),
	}
	if mc.HomeDNA != nil {
		factors["tier"] = string(mc.HomeDNA.Tier)
	}
	if mc.CLV != nil {
		factors["clv"] = mc.CLV.MaxCLV()
	}
	return factors
}

// homeShare and awayShare split the predicted total into per-side xG using
// the psychological edge as the tilt.
func homeShare(cell models.FrictionCell) float64 {
	tilt := 0.5 + cell.PsychologicalEdge/200 // edge ±30 tilts ±15%
	return round2(cell.PredictedGoals * tilt)
}

func awayShare(cell models.FrictionCell) float64 {
	return round2(cell.PredictedGoals - homeShare(cell))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
