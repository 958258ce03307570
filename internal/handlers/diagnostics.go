package handlers

import (
	"net/http"
	"strconv"

	"github.com/quantfoot/analytics-api/internal/models"
)

// GetDiagnostics runs the diagnostics report over the lookback window
// @Summary Get Diagnostics Report
// @Description Per-bucket win rates, ROI, calibration and status board
// @Tags Diagnostics
// @Produce json
// @Param window query int false "Window in days" default(7)
// @Success 200 {object} models.DiagnosticsReport
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /diagnostics [get]
func (h *Handler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	window := h.window
	if raw := r.URL.Query().Get("window"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 90 {
			window = parsed
		}
	}

	report, err := h.diagnostics.Run(ctx, window)
	if err != nil {
		h.logger.Errorw("Diagnostics run failed", "window", window, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Diagnostics failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, report)
}

// GetAdjustments returns the active adaptive factors per scope
// @Summary Get Active Adjustments
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /adjustments [get]
func (h *Handler) GetAdjustments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out := map[string]map[string]float64{}
	for _, typ := range []models.AdjustmentType{
		models.AdjustMarketFactor,
		models.AdjustTierFactor,
		models.AdjustLeagueFactor,
	} {
		factors, err := h.adjustments.ListActiveAdjustments(ctx, typ)
		if err != nil {
			h.logger.Errorw("Failed to list adjustments", "type", typ, "error", err)
			h.errorResponse(w, http.StatusInternalServerError, "Query failed")
			return
		}
		out[string(typ)] = factors
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"adjustments": out,
	})
}
