package store

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

func TestGetMatchupFrictionReverse(t *testing.T) {
	calls := 0
	pg := &fakePg{
		QueryRowFunc: func(_ context.Context, _ string, args ...any) pgx.Row {
			calls++
			// Only the (Inter, Milan) row exists.
			if args[0] == "Inter" && args[1] == "Milan" {
				values := make([]any, 17)
				values[0] = "Inter"
				values[1] = "Milan"
				values[2] = 71.5
				values[10] = 12.0 // psychological edge toward Inter
				values[14] = "CHAOS_FEST"
				values[15] = "high"
				return &fakeRow{values: values}
			}
			return &fakeRow{err: pgx.ErrNoRows}
		},
	}

	s := NewFrictionStore(pg, zap.NewNop().Sugar())

	cell, err := s.GetMatchupFriction(context.Background(), "Milan", "Inter")
	require.NoError(t, err)
	require.NotNil(t, cell)
	assert.True(t, cell.Swapped)
	assert.Equal(t, 2, calls, "reverse lookup only after the ordered miss")

	oriented := cell.Reorient()
	assert.Equal(t, "Milan", oriented.TeamHome)
	assert.Equal(t, "Inter", oriented.TeamAway)
	assert.Equal(t, 71.5, oriented.FrictionScore, "magnitude is frame-independent")
	assert.Equal(t, -12.0, oriented.PsychologicalEdge, "signed edge flips with the frame")
	assert.False(t, oriented.Swapped)
}

func TestGetMatchupFrictionMissing(t *testing.T) {
	s := NewFrictionStore(&fakePg{}, zap.NewNop().Sugar())
	cell, err := s.GetMatchupFriction(context.Background(), "A", "B")
	require.NoError(t, err)
	assert.Nil(t, cell)
}

func TestReorientPassthrough(t *testing.T) {
	var none *models.FrictionCell
	assert.Nil(t, none.Reorient())

	direct := &models.FrictionCell{TeamHome: "A", TeamAway: "B", PsychologicalEdge: 5}
	assert.Same(t, direct, direct.Reorient(), "unswapped cells pass through untouched")
}

func TestUpsertFrictionBatch(t *testing.T) {
	pg := &fakePg{}
	s := NewFrictionStore(pg, zap.NewNop().Sugar())

	cells := []models.FrictionCell{
		{TeamHome: "A", TeamAway: "B", FrictionScore: 60, MatchProfile: models.ProfileGoalFest, ConfidenceLevel: models.ConfidenceHigh},
		{TeamHome: "B", TeamAway: "C", FrictionScore: 42, MatchProfile: models.ProfileTacticalChess, ConfidenceLevel: models.ConfidenceLow},
	}
	require.NoError(t, s.UpsertFrictionBatch(context.Background(), cells))

	require.Len(t, pg.ExecSQL, 1)
	sql := pg.ExecSQL[0]
	assert.Contains(t, sql, "ON CONFLICT (team_home, team_away) DO UPDATE")
	assert.Contains(t, sql, "$32", "second row binds its own placeholders")
	assert.Equal(t, 2, strings.Count(sql, "NOW())"), "one timestamp per row")

	args := pg.ExecArgs[0]
	require.Len(t, args, 32)
	assert.Equal(t, "A", args[0])
	assert.Equal(t, "B", args[16])
	assert.Equal(t, "GOAL_FEST", args[14])
}

func TestUpsertFrictionBatchEmpty(t *testing.T) {
	pg := &fakePg{}
	s := NewFrictionStore(pg, zap.NewNop().Sugar())
	require.NoError(t, s.UpsertFrictionBatch(context.Background(), nil))
	assert.Empty(t, pg.ExecSQL)
}
