// Package tracker implements the recommendation lifecycle: collect picks
// from the opportunity feed, resolve them against finished results, and
// diagnose performance into bounded factor adjustments.
package tracker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// ResolveMarket is the pure resolver: given the final score and outcome,
// it returns the winner flag for a market. A nil flag is a push (DNB with a
// draw): never a loss.
func ResolveMarket(market models.MarketType, scoreHome, scoreAway int, outcome models.Outcome) *bool {
	total := scoreHome + scoreAway
	switch market {
	case models.MarketBTTSYes:
		return boolPtr(scoreHome > 0 && scoreAway > 0)
	case models.MarketBTTSNo:
		return boolPtr(scoreHome == 0 || scoreAway == 0)
	case models.MarketOver15:
		return boolPtr(total >= 2)
	case models.MarketUnder15:
		return boolPtr(total <= 1)
	case models.MarketOver25:
		return boolPtr(total >= 3)
	case models.MarketUnder25:
		return boolPtr(total <= 2)
	case models.MarketOver35:
		return boolPtr(total >= 4)
	case models.MarketUnder35:
		return boolPtr(total <= 3)
	case models.MarketDC1X:
		return boolPtr(outcome == models.OutcomeHome || outcome == models.OutcomeDraw)
	case models.MarketDCX2:
		return boolPtr(outcome == models.OutcomeDraw || outcome == models.OutcomeAway)
	case models.MarketDC12:
		return boolPtr(outcome == models.OutcomeHome || outcome == models.OutcomeAway)
	case models.MarketDNBHome:
		if outcome == models.OutcomeDraw {
			return nil
		}
		return boolPtr(outcome == models.OutcomeHome)
	case models.MarketDNBAway:
		if outcome == models.OutcomeDraw {
			return nil
		}
		return boolPtr(outcome == models.OutcomeAway)
	case models.MarketHomeWin:
		return boolPtr(outcome == models.OutcomeHome)
	case models.MarketAwayWin:
		return boolPtr(outcome == models.OutcomeAway)
	case models.MarketDrawFlat:
		return boolPtr(outcome == models.OutcomeDraw)
	default:
		return boolPtr(false)
	}
}

// ProfitLoss computes the signed result of a resolved pick. Stake is in
// bankroll units; a push returns exactly zero.
func ProfitLoss(isWinner *bool, stake, odds float64) float64 {
	switch {
	case isWinner == nil:
		return 0
	case *isWinner:
		return stake * (odds - 1)
	default:
		return -stake
	}
}

func boolPtr(b bool) *bool { return &b }

// ResultSource supplies finished match results.
type ResultSource interface {
	GetFinishedResults(ctx context.Context, matchIDs []string) (map[string]models.MatchResult, error)
}

// ResolutionStore lists unresolved picks and writes resolutions.
type ResolutionStore interface {
	ListUnresolved(ctx context.Context) ([]models.Recommendation, error)
	MarkResolved(ctx context.Context, id string, res models.Resolution) error
}

// Resolver drives the RESOLVE phase.
type Resolver struct {
	recs    ResolutionStore
	results ResultSource
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewResolver(recs ResolutionStore, results ResultSource, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{recs: recs, results: results, logger: logger, now: time.Now}
}

// Run resolves every unresolved pick whose match has a finished result.
// Returns the number of picks resolved.
func (r *Resolver) Run(ctx context.Context) (int, error) {
	unresolved, err := r.recs.ListUnresolved(ctx)
	if err != nil {
		return 0, fmt.Errorf("list unresolved: %w", err)
	}
	if len(unresolved) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(unresolved))
	seen := map[string]bool{}
	for _, rec := range unresolved {
		if !seen[rec.MatchID] {
			seen[rec.MatchID] = true
			ids = append(ids, rec.MatchID)
		}
	}

	finished, err := r.results.GetFinishedResults(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("load results: %w", err)
	}

	resolved := 0
	pushes := 0
	for _, rec := range unresolved {
		result, ok := finished[rec.MatchID]
		if !ok || !result.IsFinished {
			continue
		}

		winner := ResolveMarket(rec.MarketType, result.ScoreHome, result.ScoreAway, result.Outcome)
		res := models.Resolution{
			IsWinner:   winner,
			ProfitLoss: ProfitLoss(winner, rec.KellyPct, rec.OddsTaken),
			ScoreHome:  result.ScoreHome,
			ScoreAway:  result.ScoreAway,
			ResolvedAt: r.now(),
		}
		if err := r.recs.MarkResolved(ctx, rec.ID, res); err != nil {
			return resolved, fmt.Errorf("mark resolved %s: %w", rec.ID, err)
		}
		resolved++
		if winner == nil {
			pushes++
		}
	}

	r.logger.Infow("Resolve phase complete",
		"unresolved", len(unresolved), "resolved", resolved, "pushes", pushes)
	return resolved, nil
}
