package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/quantfoot/analytics-api/internal/models"
)

// CatalogStore holds the scenario and strategy catalogs. Both are small,
// seeded tables read in full at the start of every matching cycle.
type CatalogStore struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewCatalogStore(pg PgPool, logger *zap.SugaredLogger) *CatalogStore {
	return &CatalogStore{pg: pg, logger: logger}
}

// ListScenarios returns the full scenario catalog.
func (s *CatalogStore) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT code, name, category, conditions,
		       primary_markets, secondary_markets, avoid_markets,
		       historical_roi, historical_wr, min_confidence
		FROM scenarios
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var out []models.Scenario
	for rows.Next() {
		var sc models.Scenario
		var conditions, primary, secondary, avoid []byte
		if err := rows.Scan(&sc.Code, &sc.Name, &sc.Category, &conditions,
			&primary, &secondary, &avoid,
			&sc.HistoricalROI, &sc.HistoricalWR, &sc.MinConfidence); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		if err := decodeJSON(conditions, &sc.Conditions); err != nil {
			return nil, fmt.Errorf("scenario %s conditions: %w", sc.Code, err)
		}
		if err := decodeJSON(primary, &sc.PrimaryMarkets); err != nil {
			return nil, fmt.Errorf("scenario %s primary markets: %w", sc.Code, err)
		}
		if err := decodeJSON(secondary, &sc.SecondaryMarkets); err != nil {
			return nil, fmt.Errorf("scenario %s secondary markets: %w", sc.Code, err)
		}
		if err := decodeJSON(avoid, &sc.AvoidMarkets); err != nil {
			return nil, fmt.Errorf("scenario %s avoid markets: %w", sc.Code, err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// ListStrategies returns the full strategy catalog.
func (s *CatalogStore) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT code, name, strategy_group, compatible_scenarios, min_edge,
		       requires_conditions, market_constraint, quant_params
		FROM strategies
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("list strategies: %w", err)
	}
	defer rows.Close()

	var out []models.Strategy
	for rows.Next() {
		var st models.Strategy
		var compatible, requires, constraint, quant []byte
		if err := rows.Scan(&st.Code, &st.Name, &st.Group, &compatible,
			&st.MinEdge, &requires, &constraint, &quant); err != nil {
			return nil, fmt.Errorf("scan strategy: %w", err)
		}
		if err := decodeJSON(compatible, &st.CompatibleScenarios); err != nil {
			return nil, fmt.Errorf("strategy %s compatibility: %w", st.Code, err)
		}
		if err := decodeJSON(requires, &st.RequiresConditions); err != nil {
			return nil, fmt.Errorf("strategy %s conditions: %w", st.Code, err)
		}
		if err := decodeJSON(constraint, &st.MarketConstraint); err != nil {
			return nil, fmt.Errorf("strategy %s market constraint: %w", st.Code, err)
		}
		if err := decodeJSON(quant, &st.QuantParams); err != nil {
			return nil, fmt.Errorf("strategy %s quant params: %w", st.Code, err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// UpsertScenario writes one catalog row; the seeder is the only caller.
func (s *CatalogStore) UpsertScenario(ctx context.Context, sc models.Scenario) error {
	conditions, err := json.Marshal(sc.Conditions)
	if err != nil {
		return fmt.Errorf("encode scenario %s: %w", sc.Code, err)
	}
	primary, _ := json.Marshal(sc.PrimaryMarkets)
	secondary, _ := json.Marshal(sc.SecondaryMarkets)
	avoid, _ := json.Marshal(sc.AvoidMarkets)

	_, err = s.pg.Exec(ctx, `
		INSERT INTO scenarios (
			code, name, category, conditions,
			primary_markets, secondary_markets, avoid_markets,
			historical_roi, historical_wr, min_confidence
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			conditions = EXCLUDED.conditions,
			primary_markets = EXCLUDED.primary_markets,
			secondary_markets = EXCLUDED.secondary_markets,
			avoid_markets = EXCLUDED.avoid_markets,
			historical_roi = EXCLUDED.historical_roi,
			historical_wr = EXCLUDED.historical_wr,
			min_confidence = EXCLUDED.min_confidence
	`, sc.Code, sc.Name, string(sc.Category), conditions,
		primary, secondary, avoid,
		sc.HistoricalROI, sc.HistoricalWR, sc.MinConfidence)
	if err != nil {
		return fmt.Errorf("upsert scenario %s: %w", sc.Code, err)
	}
	return nil
}

// UpsertStrategy writes one catalog row; the seeder is the only caller.
func (s *CatalogStore) UpsertStrategy(ctx context.Context, st models.Strategy) error {
	compatible, _ := json.Marshal(st.CompatibleScenarios)
	requires, err := json.Marshal(st.RequiresConditions)
	if err != nil {
		return fmt.Errorf("encode strategy %s: %w", st.Code, err)
	}
	constraint, _ := json.Marshal(st.MarketConstraint)
	quant, _ := json.Marshal(st.QuantParams)

	_, err = s.pg.Exec(ctx, `
		INSERT INTO strategies (
			code, name, strategy_group, compatible_scenarios, min_edge,
			requires_conditions, market_constraint, quant_params
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			strategy_group = EXCLUDED.strategy_group,
			compatible_scenarios = EXCLUDED.compatible_scenarios,
			min_edge = EXCLUDED.min_edge,
			requires_conditions = EXCLUDED.requires_conditions,
			market_constraint = EXCLUDED.market_constraint,
			quant_params = EXCLUDED.quant_params
	`, st.Code, st.Name, string(st.Group), compatible, st.MinEdge,
		requires, constraint, quant)
	if err != nil {
		return fmt.Errorf("upsert strategy %s: %w", st.Code, err)
	}
	return nil
}

// decodeJSON tolerates NULL columns: empty payloads leave dst zero.
func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
