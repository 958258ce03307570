package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// frictionColumns is the scan order shared by both lookup directions.
const frictionColumns = `
	team_home, team_away, friction_score, friction_1h, friction_2h,
	style_clash, tempo_clash, mental_clash, physical_clash,
	chaos_potential, psychological_edge,
	predicted_goals, predicted_btts_prob, predicted_over25_prob,
	match_profile, confidence_level, updated_at`

// FrictionStore persists the precomputed pairwise friction matrix.
type FrictionStore struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewFrictionStore(pg PgPool, logger *zap.SugaredLogger) *FrictionStore {
	return &FrictionStore{pg: pg, logger: logger}
}

// GetMatchupFriction returns the cell for the ordered pair (home, away).
// When only the reverse row exists it is returned with Swapped set; the
// caller re-orients direction-sensitive fields. No row either way returns
// (nil, nil).
func (s *FrictionStore) GetMatchupFriction(ctx context.Context, home, away string) (*models.FrictionCell, error) {
	cell, err := s.lookup(ctx, home, away)
	if err != nil || cell != nil {
		return cell, err
	}

	cell, err = s.lookup(ctx, away, home)
	if err != nil || cell == nil {
		return cell, err
	}
	cell.Swapped = true
	return cell, nil
}

func (s *FrictionStore) lookup(ctx context.Context, home, away string) (*models.FrictionCell, error) {
	var c models.FrictionCell
	err := s.pg.QueryRow(ctx, `
		SELECT `+frictionColumns+`
		FROM friction_matrix
		WHERE team_home = $1 AND team_away = $2
	`, home, away).Scan(
		&c.TeamHome, &c.TeamAway, &c.FrictionScore, &c.Friction1H, &c.Friction2H,
		&c.StyleClash, &c.TempoClash, &c.MentalClash, &c.PhysicalClash,
		&c.ChaosPotential, &c.PsychologicalEdge,
		&c.PredictedGoals, &c.PredictedBTTSProb, &c.PredictedOver25Prob,
		&c.MatchProfile, &c.ConfidenceLevel, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load friction %s vs %s: %w", home, away, err)
	}
	return &c, nil
}

// UpsertFrictionBatch writes a batch of cells in one statement. Existing
// pairs are overwritten: the matrix always reflects the latest profiles.
func (s *FrictionStore) UpsertFrictionBatch(ctx context.Context, cells []models.FrictionCell) error {
	if len(cells) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO friction_matrix (
			team_home, team_away, friction_score, friction_1h, friction_2h,
			style_clash, tempo_clash, mental_clash, physical_clash,
			chaos_potential, psychological_edge,
			predicted_goals, predicted_btts_prob, predicted_over25_prob,
			match_profile, confidence_level, updated_at
		) VALUES `)

	args := make([]any, 0, len(cells)*16)
	for i, c := range cells {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 16
		sb.WriteString(fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, NOW())",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
			base+9, base+10, base+11, base+12, base+13, base+14, base+15, base+16))
		args = append(args,
			c.TeamHome, c.TeamAway, c.FrictionScore, c.Friction1H, c.Friction2H,
			c.StyleClash, c.TempoClash, c.MentalClash, c.PhysicalClash,
			c.ChaosPotential, c.PsychologicalEdge,
			c.PredictedGoals, c.PredictedBTTSProb, c.PredictedOver25Prob,
			string(c.MatchProfile), string(c.ConfidenceLevel))
	}

	sb.WriteString(`
		ON CONFLICT (team_home, team_away) DO UPDATE SET
			friction_score = EXCLUDED.friction_score,
			friction_1h = EXCLUDED.friction_1h,
			friction_2h = EXCLUDED.friction_2h,
			style_clash = EXCLUDED.style_clash,
			tempo_clash = EXCLUDED.tempo_clash,
			mental_clash = EXCLUDED.mental_clash,
			physical_clash = EXCLUDED.physical_clash,
			chaos_potential = EXCLUDED.chaos_potential,
			psychological_edge = EXCLUDED.psychological_edge,
			predicted_goals = EXCLUDED.predicted_goals,
			predicted_btts_prob = EXCLUDED.predicted_btts_prob,
			predicted_over25_prob = EXCLUDED.predicted_over25_prob,
			match_profile = EXCLUDED.match_profile,
			confidence_level = EXCLUDED.confidence_level,
			updated_at = NOW()`)

	if _, err := s.pg.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("upsert friction batch (%d cells): %w", len(cells), err)
	}
	s.logger.Debugw("Friction batch written", "cells", len(cells))
	return nil
}
