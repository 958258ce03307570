package tracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

type fakeOpportunityFeed struct {
	opps []models.Opportunity
}

func (f *fakeOpportunityFeed) Opportunities(_ context.Context) ([]models.Opportunity, error) {
	return f.opps, nil
}

type fakeAnalysisFeed struct {
	mu       sync.Mutex
	picks    map[string][]models.MarketPick
	analyzed []string
}

func (f *fakeAnalysisFeed) Analyze(_ context.Context, opp models.Opportunity) (*models.MatchAnalysis, error) {
	f.mu.Lock()
	f.analyzed = append(f.analyzed, opp.MatchID)
	f.mu.Unlock()
	return &models.MatchAnalysis{Opportunity: opp, Picks: f.picks[opp.MatchID]}, nil
}

type fakeQueue struct {
	mu   sync.Mutex
	recs []*models.Recommendation
}

func (f *fakeQueue) Enqueue(rec *models.Recommendation) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return true
}

func (f *fakeQueue) byMatch(id string) []*models.Recommendation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Recommendation
	for _, r := range f.recs {
		if r.MatchID == id {
			out = append(out, r)
		}
	}
	return out
}

type fakeTracked struct {
	ids   []string
	calls int
}

func (f *fakeTracked) TrackedMatchIDs(_ context.Context) ([]string, error) {
	f.calls++
	return f.ids, nil
}

func newTestCollector(opps *fakeOpportunityFeed, analyze *fakeAnalysisFeed, queue *fakeQueue, tracked *fakeTracked) *Collector {
	c := NewCollector(opps, analyze, queue, tracked, zap.NewNop().Sugar())
	c.now = func() time.Time { return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) }
	return c
}

func TestCollectorRun(t *testing.T) {
	opps := &fakeOpportunityFeed{opps: []models.Opportunity{
		{MatchID: "m1", HomeTeam: "Arsenal", AwayTeam: "Chelsea", League: "Premier League"},
		{MatchID: "m2", HomeTeam: "Getafe", AwayTeam: "Cadiz", League: "La Liga"},
		{MatchID: "m3", HomeTeam: "Lens", AwayTeam: "Nice", League: "Ligue 1"},
	}}
	analyze := &fakeAnalysisFeed{picks: map[string][]models.MarketPick{
		"m1": {
			{Market: models.MarketOver25, Odds: 1.90, Probability: 0.58, KellyPct: 2.0, HomeXG: 1.6, AwayXG: 1.2},
			{Market: models.MarketBTTSYes, Odds: 1.80, Probability: 0.56, KellyPct: 1.5, Shadowed: true},
		},
		"m2": {}, // no edge anywhere: skipped, stays untracked
	}}
	queue := &fakeQueue{}
	tracked := &fakeTracked{ids: []string{"m3"}}

	c := newTestCollector(opps, analyze, queue, tracked)
	n, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only m1 produced picks; m3 was already tracked")
	assert.NotContains(t, analyze.analyzed, "m3", "tracked matches are never re-analyzed")

	m1 := queue.byMatch("m1")
	require.Len(t, m1, 2)
	for _, rec := range m1 {
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, "Arsenal", rec.HomeTeam)
		assert.False(t, rec.CreatedAt.IsZero())
	}

	bySource := map[string]models.MarketType{}
	for _, rec := range m1 {
		bySource[rec.Source] = rec.MarketType
	}
	assert.Equal(t, models.MarketOver25, bySource[models.SourceLive])
	assert.Equal(t, models.MarketBTTSYes, bySource[models.SourcePaper], "shadowed picks persist as paper trades")

	over := queue.byMatch("m1")[0]
	assert.InDelta(t, 2.8, over.TotalXG, 1e-9)

	// Second run: m1 is now seen in-process, m2 is retried (no picks is
	// not the same as tracked), and the tracked set is primed only once.
	n, err = c.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, tracked.calls)
	assert.Len(t, queue.byMatch("m1"), 2, "no duplicate recommendations")
}
