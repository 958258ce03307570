package models

// Tier buckets teams by overall quality.
type Tier string

const (
	TierElite  Tier = "ELITE"
	TierGold   Tier = "GOLD"
	TierSilver Tier = "SILVER"
	TierBronze Tier = "BRONZE"
)

// Value maps a tier to its numeric strength used by the friction engine.
func (t Tier) Value() float64 {
	switch t {
	case TierElite:
		return 90
	case TierGold:
		return 70
	case TierSilver:
		return 50
	case TierBronze:
		return 30
	default:
		return 50
	}
}

// Style is a team's primary tactical identity.
type Style string

const (
	StyleOffensive  Style = "offensive"
	StyleDefensive  Style = "defensive"
	StyleBalanced   Style = "balanced"
	StyleCounter    Style = "counter"
	StylePossession Style = "possession"
)

// PsycheProfile tags a team's mental make-up.
type PsycheProfile string

const (
	PsychePredator  PsycheProfile = "PREDATOR"
	PsycheBalanced  PsycheProfile = "BALANCED"
	PsycheVolatile  PsycheProfile = "VOLATILE"
	PsycheFragile   PsycheProfile = "FRAGILE"
	PsycheResilient PsycheProfile = "RESILIENT"
)

// KeeperStatus grades the starting goalkeeper.
type KeeperStatus string

const (
	KeeperLeaky  KeeperStatus = "LEAKY"
	KeeperNormal KeeperStatus = "NORMAL"
	KeeperElite  KeeperStatus = "ELITE"
)

// StaminaProfile grades how a team holds up physically.
type StaminaProfile string

const (
	StaminaLow    StaminaProfile = "LOW"
	StaminaMedium StaminaProfile = "MEDIUM"
	StaminaHigh   StaminaProfile = "HIGH"
)

// LuckProfile classifies xPoints regression candidates.
type LuckProfile string

const (
	LuckUnlucky LuckProfile = "UNLUCKY"
	LuckNeutral LuckProfile = "NEUTRAL"
	LuckLucky   LuckProfile = "LUCKY"
)

// StakeTier caps how aggressively a team may be staked.
type StakeTier string

const (
	StakeTierLow    StakeTier = "LOW"
	StakeTierMedium StakeTier = "MEDIUM"
	StakeTierHigh   StakeTier = "HIGH"
)

// MarketDNA captures how a team has historically responded to the betting
// market itself.
type MarketDNA struct {
	BestStrategy         string  `json:"best_strategy"`
	AvgEdge              float64 `json:"avg_edge"`
	SampleSize           int     `json:"sample_size"`
	AvgCLV               float64 `json:"avg_clv"`
	ProfitableStrategies int     `json:"profitable_strategies"`
	TestedStrategies     int     `json:"tested_strategies"`
}

// ContextDNA captures home/away splits.
type ContextDNA struct {
	HomeStrength float64 `json:"home_strength"`
	AwayStrength float64 `json:"away_strength"`
	HomeWinRate  float64 `json:"home_wr"`
	AwayWinRate  float64 `json:"away_wr"`
	HomeBeast    bool    `json:"home_beast"`
	Differential float64 `json:"differential"`
	XGForAvg     float64 `json:"xg_for_avg"`
	XGAgainstAvg float64 `json:"xg_against_avg"`
}

// RiskDNA captures variance characteristics used by stake sizing.
type RiskDNA struct {
	Variance          float64   `json:"variance"`
	OffensiveVariance float64   `json:"offensive_variance"`
	StakeModifier     float64   `json:"stake_modifier"`
	MaxStakeTier      StakeTier `json:"max_stake_tier"`
	KellyFraction     float64   `json:"kelly_fraction"`
}

// TemporalDNA captures when in the match a team scores.
type TemporalDNA struct {
	DieselFactor   float64            `json:"diesel_factor"`
	SprinterFactor float64            `json:"sprinter_factor"`
	ClutchFactor   float64            `json:"clutch_factor"`
	LateGameKiller bool               `json:"late_game_killer"`
	Periods        map[string]float64 `json:"periods"`
}

// NemesisDNA captures stylistic predator/prey relationships.
type NemesisDNA struct {
	StylePrimary Style    `json:"style_primary"`
	Verticality  float64  `json:"verticality"`
	PreyTeams    []string `json:"prey_teams"`
	NemesisTeams []string `json:"nemesis_teams"`
}

// PsycheDNA captures mental factors. All scalar factors are positive reals
// with 1.0 meaning neutral.
type PsycheDNA struct {
	Profile            PsycheProfile `json:"profile"`
	KillerInstinct     float64       `json:"killer_instinct"`
	PanicFactor        float64       `json:"panic_factor"`
	ComebackMentality  float64       `json:"comeback_mentality"`
	CollapseRate       float64       `json:"collapse_rate"`
	LeadProtection     float64       `json:"lead_protection"`
	DrawingPerformance float64       `json:"drawing_performance"`
}

// SentimentDNA captures the market's relationship to the team's brand.
type SentimentDNA struct {
	PublicTeam      bool    `json:"public_team"`
	BrandPremium    float64 `json:"brand_premium"`
	AvgCLV          float64 `json:"avg_clv"`
	PositiveCLVRate float64 `json:"positive_clv_rate"`
}

// RosterDNA captures squad composition risk.
type RosterDNA struct {
	MVPName        string       `json:"mvp_name"`
	MVPDependency  float64      `json:"mvp_dependency"`
	MVPXGChain     float64      `json:"mvp_xg_chain"`
	KeeperStatus   KeeperStatus `json:"keeper_status"`
	SquadDepth     float64      `json:"squad_depth"`
	Top3Dependency float64      `json:"top3_dependency"`
}

// PhysicalDNA captures pressing and stamina.
type PhysicalDNA struct {
	PressingIntensity float64        `json:"pressing_intensity"`
	StaminaProfile    StaminaProfile `json:"stamina_profile"`
	LateGameDominance float64        `json:"late_game_dominance"`
	PressingDecay     float64        `json:"pressing_decay"`
	Intensity60Plus   float64        `json:"intensity_60_plus"`
}

// LuckDNA captures xPoints vs actual points.
type LuckDNA struct {
	XPoints             float64     `json:"xpoints"`
	ActualPoints        float64     `json:"actual_points"`
	XPointsDelta        float64     `json:"xpoints_delta"`
	Profile             LuckProfile `json:"luck_profile"`
	RegressionDirection string      `json:"regression_direction"`
	FinishingLuck       float64     `json:"finishing_luck"`
	DefensiveLuck       float64     `json:"defensive_luck"`
}

// ChameleonDNA captures tactical adaptability.
type ChameleonDNA struct {
	AdaptabilityIndex         float64 `json:"adaptability_index"`
	ComebackRate              float64 `json:"comeback_rate"`
	TacticalFlexibility       float64 `json:"tactical_flexibility"`
	FormationsUsed            int     `json:"formations_used"`
	HalftimeAdjustmentSuccess float64 `json:"halftime_adjustment_success"`
}

// TeamDNA is the full eleven-vector behavioral profile of a team. Every
// sub-vector either carries loaded values or its safe default; partial state
// is never exposed.
type TeamDNA struct {
	TeamName string `json:"team_name"`
	Tier     Tier   `json:"tier"`

	Market    MarketDNA    `json:"market"`
	Context   ContextDNA   `json:"context"`
	Risk      RiskDNA      `json:"risk"`
	Temporal  TemporalDNA  `json:"temporal"`
	Nemesis   NemesisDNA   `json:"nemesis"`
	Psyche    PsycheDNA    `json:"psyche"`
	Sentiment SentimentDNA `json:"sentiment"`
	Roster    RosterDNA    `json:"roster"`
	Physical  PhysicalDNA  `json:"physical"`
	Luck      LuckDNA      `json:"luck"`
	Chameleon ChameleonDNA `json:"chameleon"`
}

// Default sub-vector constructors. Absent data never crashes the engine:
// each loader falls back to these when a key is missing or malformed.

func DefaultMarketDNA() MarketDNA {
	return MarketDNA{BestStrategy: "", AvgEdge: 0, SampleSize: 0, AvgCLV: 0}
}

func DefaultContextDNA() ContextDNA {
	return ContextDNA{
		HomeStrength: 50, AwayStrength: 50,
		HomeWinRate: 50, AwayWinRate: 50,
		XGForAvg: 1.3, XGAgainstAvg: 1.3,
	}
}

func DefaultRiskDNA() RiskDNA {
	return RiskDNA{
		Variance: 0.5, OffensiveVariance: 0.5,
		StakeModifier: 1.0, MaxStakeTier: StakeTierMedium,
		KellyFraction: 0.25,
	}
}

func DefaultTemporalDNA() TemporalDNA {
	return TemporalDNA{
		DieselFactor: 0.5, SprinterFactor: 0.5, ClutchFactor: 0.5,
		Periods: map[string]float64{
			"0-15": 1.0 / 6, "16-30": 1.0 / 6, "31-45": 1.0 / 6,
			"46-60": 1.0 / 6, "61-75": 1.0 / 6, "76-90": 1.0 / 6,
		},
	}
}

func DefaultNemesisDNA() NemesisDNA {
	return NemesisDNA{StylePrimary: StyleBalanced, Verticality: 0.5}
}

func DefaultPsycheDNA() PsycheDNA {
	return PsycheDNA{
		Profile:        PsycheBalanced,
		KillerInstinct: 1.0, PanicFactor: 1.0, ComebackMentality: 1.0,
		CollapseRate: 1.0, LeadProtection: 1.0, DrawingPerformance: 1.0,
	}
}

func DefaultSentimentDNA() SentimentDNA {
	return SentimentDNA{BrandPremium: 1.0}
}

func DefaultRosterDNA() RosterDNA {
	return RosterDNA{KeeperStatus: KeeperNormal, SquadDepth: 0.5, Top3Dependency: 0.4}
}

func DefaultPhysicalDNA() PhysicalDNA {
	return PhysicalDNA{
		PressingIntensity: 10, StaminaProfile: StaminaMedium,
		LateGameDominance: 50, PressingDecay: 0.5, Intensity60Plus: 0.5,
	}
}

func DefaultLuckDNA() LuckDNA {
	return LuckDNA{Profile: LuckNeutral, RegressionDirection: "none", FinishingLuck: 1.0, DefensiveLuck: 1.0}
}

func DefaultChameleonDNA() ChameleonDNA {
	return ChameleonDNA{
		AdaptabilityIndex: 0.5, ComebackRate: 0.5, TacticalFlexibility: 0.5,
		FormationsUsed: 1, HalftimeAdjustmentSuccess: 0.5,
	}
}

// DefaultTeamDNA returns a fully neutral profile for the named team.
func DefaultTeamDNA(name string) *TeamDNA {
	return &TeamDNA{
		TeamName:  name,
		Tier:      TierSilver,
		Market:    DefaultMarketDNA(),
		Context:   DefaultContextDNA(),
		Risk:      DefaultRiskDNA(),
		Temporal:  DefaultTemporalDNA(),
		Nemesis:   DefaultNemesisDNA(),
		Psyche:    DefaultPsycheDNA(),
		Sentiment: DefaultSentimentDNA(),
		Roster:    DefaultRosterDNA(),
		Physical:  DefaultPhysicalDNA(),
		Luck:      DefaultLuckDNA(),
		Chameleon: DefaultChameleonDNA(),
	}
}

// TeamStrategy is one historical strategy line for a team.
type TeamStrategy struct {
	TeamName     string         `json:"team_name"`
	StrategyName string         `json:"strategy_name"`
	IsBest       bool           `json:"is_best"`
	Bets         int            `json:"bets"`
	Wins         int            `json:"wins"`
	Losses       int            `json:"losses"`
	WinRate      float64        `json:"win_rate"`
	Profit       float64        `json:"profit"`
	ROI          float64        `json:"roi"`
	Parameters   map[string]any `json:"parameters"`
}
