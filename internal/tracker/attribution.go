package tracker

import (
	"math"

	"github.com/quantfoot/analytics-api/internal/models"
)

// xG thresholds for attribution: the pick was "supported" when the
// underlying chance creation pointed the same way the bet did.
const (
	bttsSideXG   = 1.0
	resultMargin = 0.25
)

// Attribute classifies a losing pick: UNLUCKY when the xG supported the
// bet and variance took it away, BAD_ANALYSIS when the xG never backed the
// pick in the first place.
func Attribute(rec *models.Recommendation) models.LossClass {
	if xgSupports(rec.MarketType, rec.HomeXG, rec.AwayXG, rec.TotalXG) {
		return models.LossUnlucky
	}
	return models.LossBadAnalysis
}

func xgSupports(market models.MarketType, homeXG, awayXG, totalXG float64) bool {
	diff := homeXG - awayXG
	switch market {
	case models.MarketOver15:
		return totalXG > 1.5
	case models.MarketUnder15:
		return totalXG < 1.5
	case models.MarketOver25:
		return totalXG > 2.5
	case models.MarketUnder25:
		return totalXG < 2.5
	case models.MarketOver35:
		return totalXG > 3.5
	case models.MarketUnder35:
		return totalXG < 3.5
	case models.MarketBTTSYes:
		return homeXG >= bttsSideXG && awayXG >= bttsSideXG
	case models.MarketBTTSNo:
		return homeXG < bttsSideXG || awayXG < bttsSideXG
	case models.MarketHomeWin, models.MarketDNBHome, models.MarketDC1X:
		return diff > 0
	case models.MarketAwayWin, models.MarketDNBAway, models.MarketDCX2:
		return diff < 0
	case models.MarketDC12:
		return math.Abs(diff) > resultMargin
	case models.MarketDrawFlat:
		return math.Abs(diff) <= resultMargin
	default:
		return false
	}
}
