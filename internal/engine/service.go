package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// upsertBatchSize bounds how many friction cells go into one write.
const upsertBatchSize = 100

// TeamSource supplies full DNA profiles.
type TeamSource interface {
	GetTeamDNA(ctx context.Context, teamName string) (*models.TeamDNA, error)
}

// FrictionSink persists computed cells. Implementations upsert and never
// delete historical rows.
type FrictionSink interface {
	UpsertFrictionBatch(ctx context.Context, cells []models.FrictionCell) error
}

// Service wires the pure friction computation to team loading and batch
// persistence.
type Service struct {
	teams  TeamSource
	sink   FrictionSink
	logger *zap.SugaredLogger
}

func NewService(teams TeamSource, sink FrictionSink, logger *zap.SugaredLogger) *Service {
	return &Service{teams: teams, sink: sink, logger: logger}
}

// ComputePair loads both DNAs up front so the computation observes a
// consistent snapshot, then derives the friction cell. A missing profile on
// either side yields (nil, nil): the caller abstains.
func (s *Service) ComputePair(ctx context.Context, homeTeam, awayTeam string) (*models.FrictionCell, error) {
	homeDNA, err := s.teams.GetTeamDNA(ctx, homeTeam)
	if err != nil {
		return nil, fmt.Errorf("load home dna: %w", err)
	}
	awayDNA, err := s.teams.GetTeamDNA(ctx, awayTeam)
	if err != nil {
		return nil, fmt.Errorf("load away dna: %w", err)
	}
	if homeDNA == nil || awayDNA == nil {
		s.logger.Debugw("Missing DNA profile, skipping friction",
			"home", homeTeam, "away", awayTeam,
			"homeFound", homeDNA != nil, "awayFound", awayDNA != nil)
		return nil, nil
	}

	cell := ComputeFriction(homeDNA.FrictionView(), awayDNA.FrictionView())
	return &cell, nil
}

// RebuildPairs recomputes friction for every ordered pair and persists the
// results in batches. Pairs with a missing profile are skipped and counted.
func (s *Service) RebuildPairs(ctx context.Context, pairs [][2]string) (int, error) {
	batch := make([]models.FrictionCell, 0, upsertBatchSize)
	written := 0
	skipped := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.sink.UpsertFrictionBatch(ctx, batch); err != nil {
			return fmt.Errorf("upsert friction batch: %w", err)
		}
		written += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, pair := range pairs {
		cell, err := s.ComputePair(ctx, pair[0], pair[1])
		if err != nil {
			return written, err
		}
		if cell == nil {
			skipped++
			continue
		}
		batch = append(batch, *cell)
		if len(batch) >= upsertBatchSize {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}
	if err := flush(); err != nil {
		return written, err
	}

	s.logger.Infow("Friction rebuild complete", "written", written, "skipped", skipped)
	return written, nil
}
