package models

// ScenarioCategory groups scenarios by the axis of the match they describe.
type ScenarioCategory string

const (
	CategoryTactical      ScenarioCategory = "TACTICAL"
	CategoryTemporal      ScenarioCategory = "TEMPORAL"
	CategoryPhysical      ScenarioCategory = "PHYSICAL"
	CategoryPsychological ScenarioCategory = "PSYCHOLOGICAL"
	CategoryNemesis       ScenarioCategory = "NEMESIS"
)

// StrategyGroup groups strategies by family.
type StrategyGroup string

const (
	GroupConvergence    StrategyGroup = "CONVERGENCE"
	GroupMonteCarlo     StrategyGroup = "MONTE_CARLO"
	GroupQuant          StrategyGroup = "QUANT"
	GroupScoring        StrategyGroup = "SCORING"
	GroupTactical       StrategyGroup = "TACTICAL"
	GroupLeague         StrategyGroup = "LEAGUE"
	GroupSpecialMarkets StrategyGroup = "SPECIAL_MARKETS"
	GroupParadox        StrategyGroup = "PARADOX"
	GroupCombo          StrategyGroup = "COMBO"
	GroupTier           StrategyGroup = "TIER"
	GroupUltimate       StrategyGroup = "ULTIMATE"
)

// Predicate is a single comparison against a metric: operator -> threshold.
// Supported operators: ">", ">=", "<", "<=", "==".
type Predicate map[string]float64

// ConditionSet maps metric names to predicates. All entries must hold
// (AND-joined) for the condition set to match.
type ConditionSet map[string]Predicate

// Scenario is one structural description of a match from the 20-row catalog.
type Scenario struct {
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Category ScenarioCategory `json:"category"`

	Conditions ConditionSet `json:"conditions"`

	PrimaryMarkets   []MarketType `json:"primary_markets"`
	SecondaryMarkets []MarketType `json:"secondary_markets"`
	AvoidMarkets     []MarketType `json:"avoid_markets"`

	HistoricalROI float64 `json:"historical_roi"`
	HistoricalWR  float64 `json:"historical_wr"`
	MinConfidence float64 `json:"min_confidence"`
}

// QuantParams tunes stake sizing for one strategy.
type QuantParams struct {
	KellyFraction float64            `json:"kelly_fraction"`
	MaxStakePct   float64            `json:"max_stake_pct"`
	Thresholds    map[string]float64 `json:"thresholds"`
}

// Strategy is one decision rule from the ~44-row catalog. An empty
// CompatibleScenarios list means the strategy applies to every scenario.
type Strategy struct {
	Code  string        `json:"code"`
	Name  string        `json:"name"`
	Group StrategyGroup `json:"group"`

	CompatibleScenarios []string     `json:"compatible_scenarios"`
	MinEdge             float64      `json:"min_edge"`
	RequiresConditions  ConditionSet `json:"requires_conditions"`
	MarketConstraint    []MarketType `json:"market_constraint"`
	QuantParams         QuantParams  `json:"quant_params"`
}

// CompatibleWith reports whether the strategy may pair with the scenario.
func (s *Strategy) CompatibleWith(scenarioCode string) bool {
	if len(s.CompatibleScenarios) == 0 {
		return true
	}
	for _, c := range s.CompatibleScenarios {
		if c == scenarioCode {
			return true
		}
	}
	return false
}
