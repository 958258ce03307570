// Package catalog holds the seed data for the scenario and strategy tables.
// The metric names in every condition map belong to the matcher's context
// vocabulary; the catalog test cross-checks them.
package catalog

import "github.com/quantfoot/analytics-api/internal/models"

// Scenarios returns the 20-row scenario catalog.
func Scenarios() []models.Scenario {
	return []models.Scenario{
		{
			Code: "TOTAL_CHAOS", Name: "Total Chaos", Category: models.CategoryTactical,
			Conditions: models.ConditionSet{
				"chaos":    {">": 75},
				"friction": {">": 60},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketOver25, models.MarketBTTSYes, models.MarketOver35},
			SecondaryMarkets: []models.MarketType{models.MarketOver15},
			AvoidMarkets:     []models.MarketType{models.MarketUnder15, models.MarketUnder25},
			HistoricalROI:    11.2, HistoricalWR: 57.0, MinConfidence: 0.60,
		},
		{
			Code: "THE_SIEGE", Name: "The Siege", Category: models.CategoryTactical,
			Conditions: models.ConditionSet{
				"home_strength": {">": 70},
				"away_strength": {"<": 40},
				"tier_gap":      {">=": 20},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketHomeWin, models.MarketDNBHome, models.MarketOver25},
			SecondaryMarkets: []models.MarketType{models.MarketDC1X},
			AvoidMarkets:     []models.MarketType{models.MarketAwayWin},
			HistoricalROI:    8.4, HistoricalWR: 61.5, MinConfidence: 0.62,
		},
		{
			Code: "SNIPER_DUEL", Name: "Sniper Duel", Category: models.CategoryTactical,
			Conditions: models.ConditionSet{
				"chaos":           {"<": 35},
				"friction":        {"<": 40},
				"predicted_goals": {"<": 2.3},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketUnder25, models.MarketUnder35, models.MarketBTTSNo},
			SecondaryMarkets: []models.MarketType{models.MarketUnder15},
			AvoidMarkets:     []models.MarketType{models.MarketOver25, models.MarketOver35},
			HistoricalROI:    6.8, HistoricalWR: 59.2, MinConfidence: 0.60,
		},
		{
			Code: "PRESSING_WAR", Name: "Pressing War", Category: models.CategoryTactical,
			Conditions: models.ConditionSet{
				"home_pressing": {">": 14},
				"away_pressing": {">": 14},
			},
			PrimaryMarkets: []models.MarketType{models.MarketOver25, models.MarketBTTSYes},
			AvoidMarkets:   []models.MarketType{models.MarketUnder15},
			HistoricalROI:  7.1, HistoricalWR: 55.4, MinConfidence: 0.58,
		},
		{
			Code: "STYLE_COLLISION", Name: "Style Collision", Category: models.CategoryTactical,
			Conditions: models.ConditionSet{
				"style_clash": {">": 65},
				"tempo_clash": {">": 55},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketOver25, models.MarketDC12},
			SecondaryMarkets: []models.MarketType{models.MarketBTTSYes},
			HistoricalROI:    5.9, HistoricalWR: 54.0, MinConfidence: 0.58,
		},
		{
			Code: "DIESEL_DERBY", Name: "Diesel Derby", Category: models.CategoryTemporal,
			Conditions: models.ConditionSet{
				"home_diesel": {">": 0.65},
				"away_diesel": {">": 0.65},
				"friction_2h": {">": 55},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketOver25},
			SecondaryMarkets: []models.MarketType{models.MarketBTTSYes},
			HistoricalROI:    9.3, HistoricalWR: 56.1, MinConfidence: 0.60,
		},
		{
			Code: "FAST_STARTERS", Name: "Fast Starters", Category: models.CategoryTemporal,
			Conditions: models.ConditionSet{
				"friction_1h":     {">": 60},
				"predicted_goals": {">": 2.6},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketOver15, models.MarketOver25},
			SecondaryMarkets: []models.MarketType{models.MarketBTTSYes},
			HistoricalROI:    6.2, HistoricalWR: 58.8, MinConfidence: 0.58,
		},
		{
			Code: "LATE_DRAMA", Name: "Late Drama", Category: models.CategoryTemporal,
			Conditions: models.ConditionSet{
				"max_comeback": {">": 1.4},
				"friction_2h":  {">": 60},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketBTTSYes, models.MarketOver25},
			SecondaryMarkets: []models.MarketType{models.MarketOver35},
			HistoricalROI:    10.4, HistoricalWR: 53.7, MinConfidence: 0.60,
		},
		{
			Code: "WAR_OF_ATTRITION", Name: "War of Attrition", Category: models.CategoryPhysical,
			Conditions: models.ConditionSet{
				"physical_clash": {">": 70},
				"chaos":          {"<": 50},
			},
			PrimaryMarkets: []models.MarketType{models.MarketUnder25, models.MarketBTTSNo},
			AvoidMarkets:   []models.MarketType{models.MarketOver35},
			HistoricalROI:  5.1, HistoricalWR: 57.9, MinConfidence: 0.58,
		},
		{
			Code: "TEMPO_MISMATCH", Name: "Tempo Mismatch", Category: models.CategoryPhysical,
			Conditions: models.ConditionSet{
				"tempo_clash": {">": 70},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketOver25, models.MarketDC12},
			SecondaryMarkets: []models.MarketType{models.MarketOver15},
			HistoricalROI:    4.8, HistoricalWR: 54.6, MinConfidence: 0.56,
		},
		{
			Code: "PANIC_ROOM", Name: "Panic Room", Category: models.CategoryPsychological,
			Conditions: models.ConditionSet{
				"max_panic": {">": 1.4},
				"chaos":     {">": 55},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketBTTSYes, models.MarketOver25},
			SecondaryMarkets: []models.MarketType{models.MarketOver35},
			HistoricalROI:    8.9, HistoricalWR: 55.0, MinConfidence: 0.60,
		},
		{
			Code: "MENTAL_FORTRESS", Name: "Mental Fortress", Category: models.CategoryPsychological,
			Conditions: models.ConditionSet{
				"home_killer":        {">": 1.4},
				"psychological_edge": {">": 15},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketHomeWin, models.MarketDNBHome},
			SecondaryMarkets: []models.MarketType{models.MarketDC1X},
			AvoidMarkets:     []models.MarketType{models.MarketAwayWin},
			HistoricalROI:    9.7, HistoricalWR: 63.2, MinConfidence: 0.64,
		},
		{
			Code: "GLASS_CANNON", Name: "Glass Cannon", Category: models.CategoryPsychological,
			Conditions: models.ConditionSet{
				"away_collapse":      {">": 1.3},
				"psychological_edge": {">": 10},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketHomeWin, models.MarketOver25},
			SecondaryMarkets: []models.MarketType{models.MarketDNBHome},
			HistoricalROI:    7.6, HistoricalWR: 58.3, MinConfidence: 0.60,
		},
		{
			Code: "EDGE_DOMINANCE", Name: "Edge Dominance", Category: models.CategoryPsychological,
			Conditions: models.ConditionSet{
				"z_edge":             {">=": 1.5},
				"psychological_edge": {">=": 15},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketHomeWin, models.MarketDNBHome},
			SecondaryMarkets: []models.MarketType{models.MarketDC1X},
			HistoricalROI:    12.1, HistoricalWR: 62.0, MinConfidence: 0.65,
		},
		{
			Code: "AWAY_DOGS", Name: "Away Dogs", Category: models.CategoryPsychological,
			Conditions: models.ConditionSet{
				"psychological_edge": {"<": -12},
				"away_killer":        {">": 1.3},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketAwayWin, models.MarketDNBAway, models.MarketDCX2},
			SecondaryMarkets: []models.MarketType{models.MarketBTTSYes},
			AvoidMarkets:     []models.MarketType{models.MarketHomeWin},
			HistoricalROI:    10.8, HistoricalWR: 51.4, MinConfidence: 0.60,
		},
		{
			Code: "BOGEY_TEAM", Name: "Bogey Team", Category: models.CategoryNemesis,
			Conditions: models.ConditionSet{
				"psychological_edge": {"<=": -15},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketDCX2, models.MarketDNBAway},
			SecondaryMarkets: []models.MarketType{models.MarketAwayWin},
			AvoidMarkets:     []models.MarketType{models.MarketHomeWin},
			HistoricalROI:    7.4, HistoricalWR: 56.6, MinConfidence: 0.60,
		},
		{
			Code: "GRUDGE_MATCH", Name: "Grudge Match", Category: models.CategoryNemesis,
			Conditions: models.ConditionSet{
				"mental_clash": {">": 65},
				"friction":     {">": 55},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketBTTSYes, models.MarketOver25},
			SecondaryMarkets: []models.MarketType{models.MarketDC12},
			HistoricalROI:    6.6, HistoricalWR: 54.9, MinConfidence: 0.58,
		},
		{
			Code: "GOAL_FEST", Name: "Goal Fest", Category: models.CategoryTactical,
			Conditions: models.ConditionSet{
				"predicted_goals": {">": 3.0},
				"btts_prob":       {">": 0.60},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketOver25, models.MarketOver35, models.MarketBTTSYes},
			SecondaryMarkets: []models.MarketType{models.MarketOver15},
			AvoidMarkets:     []models.MarketType{models.MarketUnder25, models.MarketUnder35},
			HistoricalROI:    13.5, HistoricalWR: 58.7, MinConfidence: 0.62,
		},
		{
			Code: "STALEMATE", Name: "Stalemate", Category: models.CategoryTactical,
			Conditions: models.ConditionSet{
				"predicted_goals": {"<": 2.1},
				"over25_prob":     {"<": 0.45},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketUnder25, models.MarketDrawFlat, models.MarketBTTSNo},
			SecondaryMarkets: []models.MarketType{models.MarketUnder15},
			AvoidMarkets:     []models.MarketType{models.MarketOver35},
			HistoricalROI:    5.5, HistoricalWR: 52.8, MinConfidence: 0.58,
		},
		{
			Code: "ODDS_VALUE_GAP", Name: "Odds Value Gap", Category: models.CategoryPsychological,
			Conditions: models.ConditionSet{
				"odds_home": {">": 2.5},
				"z_edge":    {">": 1.0},
			},
			PrimaryMarkets:   []models.MarketType{models.MarketHomeWin, models.MarketDNBHome},
			SecondaryMarkets: []models.MarketType{models.MarketDC1X},
			HistoricalROI:    14.2, HistoricalWR: 47.5, MinConfidence: 0.60,
		},
	}
}

// quant builds the common QuantParams shape.
func quant(fraction, maxStake, meanProb float64) models.QuantParams {
	qp := models.QuantParams{KellyFraction: fraction, MaxStakePct: maxStake}
	if meanProb > 0 {
		qp.Thresholds = map[string]float64{"mean_prob": meanProb}
	}
	return qp
}

// Strategies returns the 44-row strategy catalog.
func Strategies() []models.Strategy {
	return []models.Strategy{
		// CONVERGENCE
		{
			Code: "TRIPLE_CONVERGENCE", Name: "Triple Convergence", Group: models.GroupConvergence,
			MinEdge: 6, QuantParams: quant(0.25, 4, 0.58),
		},
		{
			Code: "MODEL_CONSENSUS", Name: "Model Consensus", Group: models.GroupConvergence,
			MinEdge: 5, QuantParams: quant(0.25, 3.5, 0.56),
		},
		{
			Code: "ODDS_DRIFT_CONFIRM", Name: "Odds Drift Confirm", Group: models.GroupConvergence,
			MinEdge:            4,
			RequiresConditions: models.ConditionSet{"z_edge": {">=": 1.0}},
			QuantParams:        quant(0.25, 3, 0.55),
		},
		{
			Code: "EDGE_AGREEMENT", Name: "Edge Agreement", Group: models.GroupConvergence,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"z_edge": {">=": 0.5}},
			QuantParams:        quant(0.25, 3, 0.55),
		},

		// MONTE_CARLO
		{
			Code: "MC_GOALS_SIM", Name: "Monte Carlo Goals", Group: models.GroupMonteCarlo,
			CompatibleScenarios: []string{"GOAL_FEST", "TOTAL_CHAOS", "FAST_STARTERS"},
			MinEdge:             4,
			MarketConstraint:    []models.MarketType{models.MarketOver25, models.MarketOver35, models.MarketOver15},
			QuantParams:         quant(0.25, 4, 0.60),
		},
		{
			Code: "MC_BTTS_SIM", Name: "Monte Carlo BTTS", Group: models.GroupMonteCarlo,
			CompatibleScenarios: []string{"PANIC_ROOM", "GRUDGE_MATCH", "LATE_DRAMA", "PRESSING_WAR"},
			MinEdge:             4,
			MarketConstraint:    []models.MarketType{models.MarketBTTSYes},
			QuantParams:         quant(0.25, 3.5, 0.58),
		},
		{
			Code: "MC_UNDER_SIM", Name: "Monte Carlo Unders", Group: models.GroupMonteCarlo,
			CompatibleScenarios: []string{"SNIPER_DUEL", "WAR_OF_ATTRITION", "STALEMATE"},
			MinEdge:             4,
			MarketConstraint:    []models.MarketType{models.MarketUnder25, models.MarketUnder35, models.MarketBTTSNo},
			QuantParams:         quant(0.25, 3.5, 0.58),
		},
		{
			Code: "MC_RESULT_SIM", Name: "Monte Carlo 1X2", Group: models.GroupMonteCarlo,
			MinEdge:          5,
			MarketConstraint: []models.MarketType{models.MarketHomeWin, models.MarketAwayWin, models.MarketDrawFlat},
			QuantParams:      quant(0.25, 3, 0.50),
		},

		// QUANT
		{
			Code: "KELLY_CORE", Name: "Kelly Core", Group: models.GroupQuant,
			MinEdge: 5, QuantParams: quant(0.25, 5, 0.55),
		},
		{
			Code: "HALF_KELLY_SAFE", Name: "Half Kelly Safe", Group: models.GroupQuant,
			MinEdge: 4, QuantParams: quant(0.125, 2.5, 0.55),
		},
		{
			Code: "Z_SCORE_LADDER", Name: "Z-Score Ladder", Group: models.GroupQuant,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"z_edge": {">=": 1.5}},
			QuantParams:        quant(0.25, 5, 0.55),
		},
		{
			Code: "EDGE_HUNTER", Name: "Edge Hunter", Group: models.GroupQuant,
			MinEdge: 8, QuantParams: quant(0.25, 4.5, 0.56),
		},
		{
			Code: "VARIANCE_GUARD", Name: "Variance Guard", Group: models.GroupQuant,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"chaos": {"<=": 60}},
			QuantParams:        quant(0.25, 3, 0.57),
		},

		// SCORING
		{
			Code: "OVER_MACHINE", Name: "Over Machine", Group: models.GroupScoring,
			MinEdge:            4,
			RequiresConditions: models.ConditionSet{"predicted_goals": {">": 2.5}},
			MarketConstraint:   []models.MarketType{models.MarketOver15, models.MarketOver25},
			QuantParams:        quant(0.25, 4, 0.58),
		},
		{
			Code: "GOAL_RUSH_35", Name: "Goal Rush 3.5", Group: models.GroupScoring,
			CompatibleScenarios: []string{"GOAL_FEST", "TOTAL_CHAOS"},
			MinEdge:             6,
			RequiresConditions:  models.ConditionSet{"predicted_goals": {">": 3.1}},
			MarketConstraint:    []models.MarketType{models.MarketOver35},
			QuantParams:         quant(0.25, 3, 0.45),
		},
		{
			Code: "CLEAN_SHEET_HUNT", Name: "Clean Sheet Hunt", Group: models.GroupScoring,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"btts_prob": {"<": 0.45}},
			MarketConstraint:   []models.MarketType{models.MarketBTTSNo, models.MarketUnder25},
			QuantParams:        quant(0.25, 3.5, 0.57),
		},
		{
			Code: "BTTS_ENGINE", Name: "BTTS Engine", Group: models.GroupScoring,
			MinEdge:            4,
			RequiresConditions: models.ConditionSet{"btts_prob": {">": 0.58}},
			MarketConstraint:   []models.MarketType{models.MarketBTTSYes},
			QuantParams:        quant(0.25, 4, 0.58),
		},

		// TACTICAL
		{
			Code: "SIEGE_BREAKER", Name: "Siege Breaker", Group: models.GroupTactical,
			CompatibleScenarios: []string{"THE_SIEGE"},
			MinEdge:             5,
			MarketConstraint:    []models.MarketType{models.MarketHomeWin, models.MarketDNBHome},
			QuantParams:         quant(0.25, 4, 0.60),
		},
		{
			Code: "CHAOS_RIDER", Name: "Chaos Rider", Group: models.GroupTactical,
			CompatibleScenarios: []string{"TOTAL_CHAOS"},
			MinEdge:             5,
			MarketConstraint:    []models.MarketType{models.MarketOver25, models.MarketBTTSYes, models.MarketOver35},
			QuantParams:         quant(0.25, 4, 0.55),
		},
		{
			Code: "PRESS_EXPLOIT", Name: "Press Exploit", Group: models.GroupTactical,
			CompatibleScenarios: []string{"PRESSING_WAR", "TEMPO_MISMATCH"},
			MinEdge:             4,
			MarketConstraint:    []models.MarketType{models.MarketOver25, models.MarketBTTSYes},
			QuantParams:         quant(0.25, 3.5, 0.56),
		},
		{
			Code: "COUNTER_PUNCH", Name: "Counter Punch", Group: models.GroupTactical,
			CompatibleScenarios: []string{"AWAY_DOGS", "BOGEY_TEAM"},
			MinEdge:             6,
			MarketConstraint:    []models.MarketType{models.MarketAwayWin, models.MarketDNBAway, models.MarketDCX2},
			QuantParams:         quant(0.25, 3.5, 0.52),
		},
		{
			Code: "DIESEL_SECOND_HALF", Name: "Diesel Second Half", Group: models.GroupTactical,
			CompatibleScenarios: []string{"DIESEL_DERBY", "LATE_DRAMA"},
			MinEdge:             5,
			MarketConstraint:    []models.MarketType{models.MarketOver25},
			QuantParams:         quant(0.25, 3.5, 0.56),
		},

		// LEAGUE
		{
			Code: "HOME_FORTRESS", Name: "Home Fortress", Group: models.GroupLeague,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"home_strength": {">": 72}},
			MarketConstraint:   []models.MarketType{models.MarketHomeWin, models.MarketDNBHome},
			QuantParams:        quant(0.25, 4, 0.60),
		},
		{
			Code: "ROAD_WARRIORS", Name: "Road Warriors", Group: models.GroupLeague,
			MinEdge:            6,
			RequiresConditions: models.ConditionSet{"away_strength": {">": 65}},
			MarketConstraint:   []models.MarketType{models.MarketAwayWin, models.MarketDNBAway},
			QuantParams:        quant(0.25, 3.5, 0.55),
		},
		{
			Code: "DERBY_DISCIPLINE", Name: "Derby Discipline", Group: models.GroupLeague,
			CompatibleScenarios: []string{"GRUDGE_MATCH"},
			MinEdge:             7,
			QuantParams:         quant(0.25, 3, 0.56),
		},

		// SPECIAL_MARKETS
		{
			Code: "DNB_SHIELD", Name: "DNB Shield", Group: models.GroupSpecialMarkets,
			MinEdge:          4,
			MarketConstraint: []models.MarketType{models.MarketDNBHome, models.MarketDNBAway},
			QuantParams:      quant(0.25, 4, 0.58),
		},
		{
			Code: "DOUBLE_CHANCE_VALUE", Name: "Double Chance Value", Group: models.GroupSpecialMarkets,
			MinEdge:          3,
			MarketConstraint: []models.MarketType{models.MarketDC1X, models.MarketDCX2, models.MarketDC12},
			QuantParams:      quant(0.25, 4, 0.62),
		},
		{
			Code: "DRAW_SNIPER", Name: "Draw Sniper", Group: models.GroupSpecialMarkets,
			CompatibleScenarios: []string{"STALEMATE"},
			MinEdge:             9,
			MarketConstraint:    []models.MarketType{models.MarketDrawFlat},
			QuantParams:         quant(0.25, 2.5, 0.33),
		},
		{
			Code: "UNDER_15_LOCK", Name: "Under 1.5 Lock", Group: models.GroupSpecialMarkets,
			MinEdge:            7,
			RequiresConditions: models.ConditionSet{"predicted_goals": {"<": 1.9}},
			MarketConstraint:   []models.MarketType{models.MarketUnder15},
			QuantParams:        quant(0.25, 2.5, 0.68),
		},

		// PARADOX
		{
			Code: "FAVOURITE_FADE", Name: "Favourite Fade", Group: models.GroupParadox,
			MinEdge:            6,
			RequiresConditions: models.ConditionSet{"odds_home": {"<": 1.45}},
			MarketConstraint:   []models.MarketType{models.MarketDCX2, models.MarketBTTSYes},
			QuantParams:        quant(0.25, 2.5, 0.52),
		},
		{
			Code: "CHAOS_UNDER", Name: "Chaos Under", Group: models.GroupParadox,
			CompatibleScenarios: []string{"TOTAL_CHAOS"},
			MinEdge:             8,
			MarketConstraint:    []models.MarketType{models.MarketUnder35},
			QuantParams:         quant(0.25, 2.5, 0.60),
		},
		{
			Code: "PANIC_CALM", Name: "Panic Calm", Group: models.GroupParadox,
			CompatibleScenarios: []string{"PANIC_ROOM"},
			MinEdge:             8,
			MarketConstraint:    []models.MarketType{models.MarketUnder25},
			QuantParams:         quant(0.25, 2.5, 0.58),
		},

		// COMBO
		{
			Code: "EDGE_PLUS_CHAOS", Name: "Edge Plus Chaos", Group: models.GroupCombo,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"z_edge": {">=": 1.0}, "chaos": {">": 55}},
			MarketConstraint:   []models.MarketType{models.MarketOver25, models.MarketBTTSYes},
			QuantParams:        quant(0.25, 4, 0.56),
		},
		{
			Code: "PSYCH_PLUS_FORM", Name: "Psych Plus Form", Group: models.GroupCombo,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"psychological_edge": {">=": 12}, "home_killer": {">": 1.3}},
			MarketConstraint:   []models.MarketType{models.MarketHomeWin, models.MarketDNBHome},
			QuantParams:        quant(0.25, 4, 0.58),
		},
		{
			Code: "TEMPO_PLUS_GOALS", Name: "Tempo Plus Goals", Group: models.GroupCombo,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"tempo_clash": {">": 60}, "predicted_goals": {">": 2.7}},
			MarketConstraint:   []models.MarketType{models.MarketOver25},
			QuantParams:        quant(0.25, 4, 0.57),
		},

		// TIER
		{
			Code: "TIER_GAP_CRUSH", Name: "Tier Gap Crush", Group: models.GroupTier,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"tier_gap": {">=": 40}},
			MarketConstraint:   []models.MarketType{models.MarketHomeWin, models.MarketDC1X},
			QuantParams:        quant(0.25, 4, 0.60),
		},
		{
			Code: "GOLD_STANDARD", Name: "Gold Standard", Group: models.GroupTier,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"home_tier_value": {">=": 70}},
			MarketConstraint:   []models.MarketType{models.MarketHomeWin, models.MarketOver25},
			QuantParams:        quant(0.25, 4, 0.58),
		},
		{
			Code: "PEER_BATTLE", Name: "Peer Battle", Group: models.GroupTier,
			MinEdge:            5,
			RequiresConditions: models.ConditionSet{"tier_gap": {"<=": 20}},
			MarketConstraint:   []models.MarketType{models.MarketDC12, models.MarketBTTSYes},
			QuantParams:        quant(0.25, 3, 0.56),
		},
		{
			Code: "UNDERDOG_TIER", Name: "Underdog Tier", Group: models.GroupTier,
			MinEdge:            6,
			RequiresConditions: models.ConditionSet{"away_tier_value": {">=": 70}, "psychological_edge": {"<": 0}},
			MarketConstraint:   []models.MarketType{models.MarketAwayWin, models.MarketDNBAway},
			QuantParams:        quant(0.25, 3.5, 0.54),
		},

		// ULTIMATE
		{
			Code: "DIAMOND_HAND", Name: "Diamond Hand", Group: models.GroupUltimate,
			MinEdge: 10, QuantParams: quant(0.25, 5, 0.60),
		},
		{
			Code: "PERFECT_STORM", Name: "Perfect Storm", Group: models.GroupUltimate,
			CompatibleScenarios: []string{"TOTAL_CHAOS", "GOAL_FEST"},
			MinEdge:             7,
			RequiresConditions:  models.ConditionSet{"z_edge": {">=": 2.0}, "chaos": {">": 70}},
			MarketConstraint:    []models.MarketType{models.MarketOver25, models.MarketOver35, models.MarketBTTSYes},
			QuantParams:         quant(0.25, 5, 0.58),
		},
		{
			Code: "MAX_CONVICTION", Name: "Max Conviction", Group: models.GroupUltimate,
			MinEdge:            8,
			RequiresConditions: models.ConditionSet{"z_edge": {">=": 2.5}},
			QuantParams:        quant(0.25, 5, 0.58),
		},
		{
			Code: "GRAND_SLAM", Name: "Grand Slam", Group: models.GroupUltimate,
			MinEdge: 12,
			RequiresConditions: models.ConditionSet{
				"z_edge":             {">=": 1.5},
				"psychological_edge": {">=": 10},
				"predicted_goals":    {">": 2.5},
			},
			MarketConstraint: []models.MarketType{models.MarketHomeWin, models.MarketOver25},
			QuantParams:      quant(0.25, 5, 0.60),
		},
	}
}
