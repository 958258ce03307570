package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quantfoot/analytics-api/internal/models"
)

// collectConcurrency bounds how many analysis calls run at once.
const collectConcurrency = 4

// OpportunityFeed lists upcoming matches worth analyzing.
type OpportunityFeed interface {
	Opportunities(ctx context.Context) ([]models.Opportunity, error)
}

// AnalysisFeed produces the full multi-market analysis for one match.
type AnalysisFeed interface {
	Analyze(ctx context.Context, opp models.Opportunity) (*models.MatchAnalysis, error)
}

// RecommendationQueue is the sink for new recommendation rows; the pipeline
// pool batches the actual inserts.
type RecommendationQueue interface {
	Enqueue(rec *models.Recommendation) bool
}

// TrackedSource rebuilds the already-tracked match set. The in-memory
// cache is a convenience only: it is reconstructed from the store at
// startup and never trusted across restarts.
type TrackedSource interface {
	TrackedMatchIDs(ctx context.Context) ([]string, error)
}

// Collector drives the COLLECT phase.
type Collector struct {
	opps    OpportunityFeed
	analyze AnalysisFeed
	queue   RecommendationQueue
	tracked TrackedSource
	logger  *zap.SugaredLogger
	now     func() time.Time

	mu     sync.Mutex
	seen   map[string]bool
	primed bool
}

func NewCollector(opps OpportunityFeed, analyze AnalysisFeed, queue RecommendationQueue, tracked TrackedSource, logger *zap.SugaredLogger) *Collector {
	return &Collector{
		opps:    opps,
		analyze: analyze,
		queue:   queue,
		tracked: tracked,
		logger:  logger,
		now:     time.Now,
		seen:    map[string]bool{},
	}
}

// Run pulls the opportunity feed, analyzes every match not yet tracked and
// enqueues one recommendation per analyzed market. Returns the number of
// matches analyzed.
func (c *Collector) Run(ctx context.Context) (int, error) {
	if err := c.prime(ctx); err != nil {
		return 0, err
	}

	opportunities, err := c.opps.Opportunities(ctx)
	if err != nil {
		return 0, fmt.Errorf("load opportunities: %w", err)
	}

	fresh := make([]models.Opportunity, 0, len(opportunities))
	c.mu.Lock()
	for _, opp := range opportunities {
		if !c.seen[opp.MatchID] {
			fresh = append(fresh, opp)
		}
	}
	c.mu.Unlock()

	if len(fresh) == 0 {
		c.logger.Debugw("Collect: nothing new", "feed_size", len(opportunities))
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(collectConcurrency)
	var analyzed int
	var countMu sync.Mutex

	for _, opp := range fresh {
		opp := opp
		g.Go(func() error {
			analysis, err := c.analyze.Analyze(gctx, opp)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", opp.MatchID, err)
			}
			if analysis == nil || len(analysis.Picks) == 0 {
				c.logger.Debugw("Collect: empty analysis, skipped as opportunity",
					"match", opp.MatchID)
				return nil
			}

			enqueued := 0
			for i := range analysis.Picks {
				rec := c.toRecommendation(&opp, &analysis.Picks[i])
				if c.queue.Enqueue(rec) {
					enqueued++
				}
			}

			c.mu.Lock()
			c.seen[opp.MatchID] = true
			c.mu.Unlock()
			countMu.Lock()
			analyzed++
			countMu.Unlock()

			c.logger.Infow("Match analyzed",
				"match", opp.MatchID, "home", opp.HomeTeam, "away", opp.AwayTeam,
				"markets", enqueued)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return analyzed, err
	}
	return analyzed, nil
}

// prime rebuilds the tracked set from the recommendations table once per
// process.
func (c *Collector) prime(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.primed {
		return nil
	}

	ids, err := c.tracked.TrackedMatchIDs(ctx)
	if err != nil {
		return fmt.Errorf("rebuild tracked set: %w", err)
	}
	for _, id := range ids {
		c.seen[id] = true
	}
	c.primed = true
	c.logger.Infow("Tracked-match cache rebuilt", "matches", len(ids))
	return nil
}

func (c *Collector) toRecommendation(opp *models.Opportunity, pick *models.MarketPick) *models.Recommendation {
	source := models.SourceLive
	if pick.Shadowed {
		source = models.SourcePaper
	}
	return &models.Recommendation{
		ID:            uuid.NewString(),
		MatchID:       opp.MatchID,
		HomeTeam:      opp.HomeTeam,
		AwayTeam:      opp.AwayTeam,
		League:        opp.League,
		MarketType:    pick.Market,
		Prediction:    pick.Prediction,
		OddsTaken:     pick.Odds,
		Probability:   pick.Probability,
		KellyPct:      pick.KellyPct,
		DiamondScore:  pick.DiamondScore,
		ValueRating:   pick.ValueRating,
		Factors:       pick.Factors,
		IsTop3:        pick.IsTop3,
		Source:        source,
		HomeXG:        pick.HomeXG,
		AwayXG:        pick.AwayXG,
		TotalXG:       pick.HomeXG + pick.AwayXG,
		PoissonProb:   pick.PoissonProb,
		PredictedProb: pick.Probability,
		CreatedAt:     c.now(),
	}
}
