package engine

import "github.com/quantfoot/analytics-api/internal/models"

// styleClashMatrix is the hand-calibrated 5x5 clash intensity keyed by
// (home style, away style). Deliberately asymmetric: an offensive home side
// against a counter-attacking visitor is not the mirror fixture.
var styleClashMatrix = map[models.Style]map[models.Style]float64{
	models.StyleOffensive: {
		models.StyleOffensive:  0.65,
		models.StyleDefensive:  0.85,
		models.StyleBalanced:   0.55,
		models.StyleCounter:    0.90,
		models.StylePossession: 0.50,
	},
	models.StyleDefensive: {
		models.StyleOffensive:  0.80,
		models.StyleDefensive:  0.30,
		models.StyleBalanced:   0.45,
		models.StyleCounter:    0.55,
		models.StylePossession: 0.70,
	},
	models.StyleBalanced: {
		models.StyleOffensive:  0.60,
		models.StyleDefensive:  0.50,
		models.StyleBalanced:   0.50,
		models.StyleCounter:    0.60,
		models.StylePossession: 0.45,
	},
	models.StyleCounter: {
		models.StyleOffensive:  0.85,
		models.StyleDefensive:  0.60,
		models.StyleBalanced:   0.55,
		models.StyleCounter:    0.75,
		models.StylePossession: 0.80,
	},
	models.StylePossession: {
		models.StyleOffensive:  0.55,
		models.StyleDefensive:  0.75,
		models.StyleBalanced:   0.50,
		models.StyleCounter:    0.85,
		models.StylePossession: 0.40,
	},
}

// psycheClashMatrix grades how two mental profiles combust when paired.
// VOLATILE x VOLATILE 0.95 (anything can happen), FRAGILE facing PREDATOR
// 0.90 (weakest meets strongest), RESILIENT x RESILIENT 0.30 (both absorb).
var psycheClashMatrix = map[models.PsycheProfile]map[models.PsycheProfile]float64{
	models.PsycheVolatile: {
		models.PsycheVolatile:  0.95,
		models.PsycheBalanced:  0.60,
		models.PsycheFragile:   0.75,
		models.PsychePredator:  0.80,
		models.PsycheResilient: 0.55,
	},
	models.PsycheBalanced: {
		models.PsycheVolatile:  0.60,
		models.PsycheBalanced:  0.45,
		models.PsycheFragile:   0.50,
		models.PsychePredator:  0.55,
		models.PsycheResilient: 0.40,
	},
	models.PsycheFragile: {
		models.PsycheVolatile:  0.80,
		models.PsycheBalanced:  0.55,
		models.PsycheFragile:   0.65,
		models.PsychePredator:  0.90,
		models.PsycheResilient: 0.50,
	},
	models.PsychePredator: {
		models.PsycheVolatile:  0.75,
		models.PsycheBalanced:  0.55,
		models.PsycheFragile:   0.85,
		models.PsychePredator:  0.70,
		models.PsycheResilient: 0.50,
	},
	models.PsycheResilient: {
		models.PsycheVolatile:  0.55,
		models.PsycheBalanced:  0.40,
		models.PsycheFragile:   0.45,
		models.PsychePredator:  0.50,
		models.PsycheResilient: 0.30,
	},
}

// psycheEdgeBonus is the signed bonus to the home side's psychological edge
// for a (home profile, away profile) pairing.
var psycheEdgeBonus = map[models.PsycheProfile]map[models.PsycheProfile]float64{
	models.PsychePredator: {
		models.PsycheFragile:  6,
		models.PsycheVolatile: 4,
		models.PsycheBalanced: 2,
	},
	models.PsycheResilient: {
		models.PsycheVolatile: 3,
		models.PsycheFragile:  2,
	},
	models.PsycheFragile: {
		models.PsychePredator:  -6,
		models.PsycheResilient: -3,
	},
	models.PsycheVolatile: {
		models.PsychePredator:  -4,
		models.PsycheResilient: -3,
	},
}

func styleClashLookup(home, away models.Style) float64 {
	if row, ok := styleClashMatrix[home]; ok {
		if v, ok := row[away]; ok {
			return v
		}
	}
	return 0.50
}

func psycheClashLookup(home, away models.PsycheProfile) float64 {
	if row, ok := psycheClashMatrix[home]; ok {
		if v, ok := row[away]; ok {
			return v
		}
	}
	return 0.45
}

func psycheEdgeLookup(home, away models.PsycheProfile) float64 {
	if row, ok := psycheEdgeBonus[home]; ok {
		return row[away]
	}
	return 0
}
