package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/quantfoot/analytics-api/internal/models"
)

type oddsSnapshotRequest struct {
	MatchID   string  `json:"match_id" validate:"required"`
	Bookmaker string  `json:"bookmaker"`
	Home      float64 `json:"home" validate:"required,gt=1"`
	Draw      float64 `json:"draw" validate:"required,gt=1"`
	Away      float64 `json:"away" validate:"required,gt=1"`
	Over25    float64 `json:"over25" validate:"omitempty,gt=1"`
	Under25   float64 `json:"under25" validate:"omitempty,gt=1"`
}

// IngestOddsSnapshots handles POST /api/v1/odds/snapshots
// @Summary Ingest Odds Snapshots
// @Description Accepts a JSON array of odds snapshots for async persistence
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param body body []oddsSnapshotRequest true "Snapshots"
// @Success 202 {object} map[string]interface{} "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /odds/snapshots [post]
func (h *Handler) IngestOddsSnapshots(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var reqs []oddsSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	now := time.Now()
	accepted := 0
	for i := range reqs {
		req := &reqs[i]
		if err := h.validator.Struct(req); err != nil {
			h.logger.Warnw("Snapshot validation failed", "match", req.MatchID, "error", err)
			continue
		}

		bookmaker := req.Bookmaker
		if bookmaker == "" {
			bookmaker = "pinnacle"
		}
		snap := models.MarketOdds{
			MatchID:   req.MatchID,
			Bookmaker: bookmaker,
			Home:      req.Home,
			Draw:      req.Draw,
			Away:      req.Away,
			Over25:    req.Over25,
			Under25:   req.Under25,
			HasTotals: req.Over25 > 1 && req.Under25 > 1,
			CreatedAt: now,
		}

		if !h.pipeline.EnqueueSnapshot(snap) {
			h.logger.Warn("Pipeline queue full, dropping remaining snapshots in batch")
			break
		}
		accepted++
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "accepted",
		"accepted": accepted,
	})
}
