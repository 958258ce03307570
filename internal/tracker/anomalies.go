package tracker

import (
	"fmt"
	"math"

	"github.com/quantfoot/analytics-api/internal/models"
)

// anomaly thresholds
const (
	wrDeviationPP    = 20.0
	anomalyMinSample = 10
	roiCollapse      = -20.0
	decliningWRMax   = 40.0
)

// DetectAnomalies scans the per-strategy buckets for statistical
// irregularities worth a human look. Anomalies never gate anything by
// themselves; they surface in the report.
func DetectAnomalies(report *models.DiagnosticsReport) []models.Anomaly {
	var out []models.Anomaly

	for key, b := range report.ByStrategy {
		if b.Resolved >= anomalyMinSample {
			expected := b.ExpectedWR
			if dev := math.Abs(b.WinRate - expected); dev > wrDeviationPP && expected > 0 {
				out = append(out, models.Anomaly{
					Kind:    "wr_deviation",
					Key:     key,
					Detail:  fmt.Sprintf("win rate %.1f%% vs expected %.1f%%", b.WinRate, expected),
					Value:   dev,
					Samples: b.Resolved,
				})
			}
			if b.EdgeVsBreakeven > 0 && b.ROI < roiCollapse {
				out = append(out, models.Anomaly{
					Kind:    "roi_edge_mismatch",
					Key:     key,
					Detail:  fmt.Sprintf("positive edge %.1fpp but ROI %.1f%%", b.EdgeVsBreakeven, b.ROI),
					Value:   b.ROI,
					Samples: b.Resolved,
				})
			}
		}
		if b.Trend == models.TrendDeclining && b.WinRate < decliningWRMax && b.Resolved > 0 {
			out = append(out, models.Anomaly{
				Kind:    "declining_performance",
				Key:     key,
				Detail:  fmt.Sprintf("declining trend with win rate %.1f%%", b.WinRate),
				Value:   b.WinRate,
				Samples: b.Resolved,
			})
		}
	}
	return out
}
