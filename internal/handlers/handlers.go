package handlers

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
	"github.com/quantfoot/analytics-api/internal/store"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// SnapshotQueue defines the interface for the odds-snapshot pipeline pool
type SnapshotQueue interface {
	EnqueueSnapshot(snap models.MarketOdds) bool
	QueueDepth() int
}

// TeamService defines the interface for team DNA and strategy lookups
type TeamService interface {
	GetTeamDNA(ctx context.Context, teamName string) (*models.TeamDNA, error)
	GetTeamStrategies(ctx context.Context, teamName string) ([]models.TeamStrategy, error)
}

// FrictionService defines the interface for matchup friction computation
type FrictionService interface {
	ComputePair(ctx context.Context, homeTeam, awayTeam string) (*models.FrictionCell, error)
}

// RecommendationSource defines the interface for recommendation queries
type RecommendationSource interface {
	ListRecent(ctx context.Context, f store.RecommendationFilter) ([]models.Recommendation, error)
}

// CLVSource defines the interface for closing-line-value lookups
type CLVSource interface {
	GetCLVData(ctx context.Context, matchID string) (*models.CLVData, error)
}

// DiagnosticsService defines the interface for the diagnose phase
type DiagnosticsService interface {
	Run(ctx context.Context, windowDays int) (*models.DiagnosticsReport, error)
}

// AdjustmentSource defines the interface for active adaptive factors
type AdjustmentSource interface {
	ListActiveAdjustments(ctx context.Context, typ models.AdjustmentType) (map[string]float64, error)
}

// PhaseRunner defines the interface for manually triggered pipeline phases
type PhaseRunner interface {
	Run(ctx context.Context) (int, error)
}

type Config struct {
	Pipeline   SnapshotQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Teams           TeamService
	Friction        FrictionService
	Recommendations RecommendationSource
	CLV             CLVSource
	Diagnostics     DiagnosticsService
	Adjustments     AdjustmentSource
	Collect         PhaseRunner
	Resolve         PhaseRunner
	DiagnosisWindow int
}

type Handler struct {
	pipeline        SnapshotQueue
	pg              *pgxpool.Pool
	ch              driver.Conn
	redis           *redis.Client
	logger          *zap.SugaredLogger
	validator       *validator.Validate
	teams           TeamService
	friction        FrictionService
	recommendations RecommendationSource
	clv             CLVSource
	diagnostics     DiagnosticsService
	adjustments     AdjustmentSource
	collect         PhaseRunner
	resolve         PhaseRunner
	window          int
}

func New(cfg Config) *Handler {
	window := cfg.DiagnosisWindow
	if window <= 0 {
		window = 7
	}
	return &Handler{
		pipeline:        cfg.Pipeline,
		pg:              cfg.Postgres,
		ch:              cfg.ClickHouse,
		redis:           cfg.Redis,
		logger:          cfg.Logger.Sugar(),
		validator:       validator.New(),
		teams:           cfg.Teams,
		friction:        cfg.Friction,
		recommendations: cfg.Recommendations,
		clv:             cfg.CLV,
		diagnostics:     cfg.Diagnostics,
		adjustments:     cfg.Adjustments,
		collect:         cfg.Collect,
		resolve:         cfg.Resolve,
		window:          window,
	}
}
