package handlers

import (
	"context"

	"github.com/quantfoot/analytics-api/internal/models"
	"github.com/quantfoot/analytics-api/internal/store"
)

// Mocks

type MockSnapshotQueue struct {
	EnqueueFunc func(snap models.MarketOdds) bool
	Snapshots   []models.MarketOdds
}

func (m *MockSnapshotQueue) EnqueueSnapshot(snap models.MarketOdds) bool {
	if m.EnqueueFunc != nil && !m.EnqueueFunc(snap) {
		return false
	}
	m.Snapshots = append(m.Snapshots, snap)
	return true
}
func (m *MockSnapshotQueue) QueueDepth() int { return len(m.Snapshots) }

type MockTeamService struct {
	DNAFunc        func(ctx context.Context, team string) (*models.TeamDNA, error)
	StrategiesFunc func(ctx context.Context, team string) ([]models.TeamStrategy, error)
}

func (m *MockTeamService) GetTeamDNA(ctx context.Context, team string) (*models.TeamDNA, error) {
	if m.DNAFunc != nil {
		return m.DNAFunc(ctx, team)
	}
	return nil, nil
}

func (m *MockTeamService) GetTeamStrategies(ctx context.Context, team string) ([]models.TeamStrategy, error) {
	if m.StrategiesFunc != nil {
		return m.StrategiesFunc(ctx, team)
	}
	return nil, nil
}

type MockFrictionService struct {
	ComputeFunc func(ctx context.Context, home, away string) (*models.FrictionCell, error)
}

func (m *MockFrictionService) ComputePair(ctx context.Context, home, away string) (*models.FrictionCell, error) {
	if m.ComputeFunc != nil {
		return m.ComputeFunc(ctx, home, away)
	}
	return nil, nil
}

type MockRecommendationSource struct {
	ListFunc   func(ctx context.Context, f store.RecommendationFilter) ([]models.Recommendation, error)
	LastFilter store.RecommendationFilter
}

func (m *MockRecommendationSource) ListRecent(ctx context.Context, f store.RecommendationFilter) ([]models.Recommendation, error) {
	m.LastFilter = f
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, nil
}

type MockCLVSource struct {
	GetFunc func(ctx context.Context, matchID string) (*models.CLVData, error)
}

func (m *MockCLVSource) GetCLVData(ctx context.Context, matchID string) (*models.CLVData, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, matchID)
	}
	return nil, nil
}

type MockDiagnosticsService struct {
	RunFunc func(ctx context.Context, windowDays int) (*models.DiagnosticsReport, error)
}

func (m *MockDiagnosticsService) Run(ctx context.Context, windowDays int) (*models.DiagnosticsReport, error) {
	if m.RunFunc != nil {
		return m.RunFunc(ctx, windowDays)
	}
	return &models.DiagnosticsReport{}, nil
}

type MockAdjustmentSource struct {
	ListFunc func(ctx context.Context, typ models.AdjustmentType) (map[string]float64, error)
}

func (m *MockAdjustmentSource) ListActiveAdjustments(ctx context.Context, typ models.AdjustmentType) (map[string]float64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, typ)
	}
	return map[string]float64{}, nil
}

type MockPhaseRunner struct {
	RunFunc func(ctx context.Context) (int, error)
	Calls   int
}

func (m *MockPhaseRunner) Run(ctx context.Context) (int, error) {
	m.Calls++
	if m.RunFunc != nil {
		return m.RunFunc(ctx)
	}
	return 0, nil
}
