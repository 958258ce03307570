package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

func TestGetRealMarketOdds(t *testing.T) {
	created := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ch := &mockCHConn{results: [][][]any{
		{{"m1", "pinnacle", 2.10, 3.40, 3.60, 1.85, 1.95, created}},
	}}

	s := NewOddsStore(ch, zap.NewNop().Sugar())
	odds, err := s.GetRealMarketOdds(context.Background(), "m1", "")
	require.NoError(t, err)
	require.NotNil(t, odds)
	assert.Equal(t, "pinnacle", odds.Bookmaker, "empty bookmaker defaults to the sharp book")
	assert.Equal(t, 2.10, odds.Home)
	assert.True(t, odds.HasTotals)
}

func TestGetRealMarketOddsIncomplete(t *testing.T) {
	created := time.Now()
	// Draw price missing: the whole snapshot is unusable.
	ch := &mockCHConn{results: [][][]any{
		{{"m1", "pinnacle", 2.10, 0.0, 3.60, 1.85, 1.95, created}},
	}}

	s := NewOddsStore(ch, zap.NewNop().Sugar())
	odds, err := s.GetRealMarketOdds(context.Background(), "m1", "pinnacle")
	require.NoError(t, err)
	assert.Nil(t, odds)
}

func TestGetRealMarketOddsNoTotals(t *testing.T) {
	ch := &mockCHConn{results: [][][]any{
		{{"m1", "bet365", 2.10, 3.40, 3.60, 0.0, 0.0, time.Now()}},
	}}

	s := NewOddsStore(ch, zap.NewNop().Sugar())
	odds, err := s.GetRealMarketOdds(context.Background(), "m1", "bet365")
	require.NoError(t, err)
	require.NotNil(t, odds)
	assert.False(t, odds.HasTotals, "1X2-only snapshot is still usable")
}

func TestGetRealMarketOddsMissing(t *testing.T) {
	s := NewOddsStore(&mockCHConn{}, zap.NewNop().Sugar())
	odds, err := s.GetRealMarketOdds(context.Background(), "nope", "")
	require.NoError(t, err)
	assert.Nil(t, odds)
}

func TestGetCLVData(t *testing.T) {
	created := time.Now()
	ch := &mockCHConn{results: [][][]any{
		{{"m1", 6.2, 1.0, -3.1, 48.0, created}},
	}}

	s := NewOddsStore(ch, zap.NewNop().Sugar())
	clv, err := s.GetCLVData(context.Background(), "m1")
	require.NoError(t, err)
	require.NotNil(t, clv)
	assert.Equal(t, 6.2, clv.HomeCLV)
	assert.Equal(t, 48.0, clv.HoursTracked)
	assert.Equal(t, models.CLVSweetSpot, clv.Signal())
	assert.Equal(t, models.CLVSideHome, clv.Side())

	missing, err := s.GetCLVData(context.Background(), "m2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestComputeCLV(t *testing.T) {
	opening := &models.MarketOdds{MatchID: "m1", Home: 2.20, Draw: 3.40, Away: 3.40}
	// Home shortened from 2.20 to 2.00: about +4.5pp of implied probability.
	current := &models.MarketOdds{MatchID: "m1", Home: 2.00, Draw: 3.50, Away: 3.60}

	clv := ComputeCLV(opening, current, 24)
	assert.InDelta(t, 4.55, clv.HomeCLV, 0.01)
	assert.Less(t, clv.DrawCLV, 0.0)
	assert.Less(t, clv.AwayCLV, 0.0)
	assert.Equal(t, 24.0, clv.HoursTracked)
	assert.Equal(t, models.CLVSideHome, clv.Side())
}

func TestInsertCLV(t *testing.T) {
	ch := &mockCHConn{}
	s := NewOddsStore(ch, zap.NewNop().Sugar())

	err := s.InsertCLV(context.Background(), models.CLVData{
		MatchID: "m1", HomeCLV: 3.2, HoursTracked: 12,
	})
	require.NoError(t, err)
	require.Len(t, ch.ExecArgs, 1)
	assert.Equal(t, "m1", ch.ExecArgs[0][0])
	assert.NotEqual(t, time.Time{}, ch.ExecArgs[0][5], "zero created_at is stamped")
}
