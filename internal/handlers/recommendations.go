package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quantfoot/analytics-api/internal/models"
	"github.com/quantfoot/analytics-api/internal/store"
)

// ListRecommendations returns recent recommendations, newest first
// @Summary List Recommendations
// @Tags Recommendations
// @Produce json
// @Param match_id query string false "Filter by match"
// @Param market query string false "Filter by market type"
// @Param source query string false "Filter by source (live, paper)"
// @Param top3 query bool false "Only top-3 picks"
// @Param limit query int false "Limit" default(100)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad filter"
// @Router /recommendations [get]
func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := store.RecommendationFilter{
		MatchID: q.Get("match_id"),
		Source:  q.Get("source"),
	}
	if raw := q.Get("market"); raw != "" {
		market, err := models.ParseMarketType(raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "Unknown market type")
			return
		}
		filter.Market = market
	}
	if filter.Source != "" && filter.Source != models.SourceLive && filter.Source != models.SourcePaper {
		h.errorResponse(w, http.StatusBadRequest, "Unknown source")
		return
	}
	filter.Top3Only = q.Get("top3") == "true"
	if l := q.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 500 {
			filter.Limit = parsed
		}
	}

	recs, err := h.recommendations.ListRecent(ctx, filter)
	if err != nil {
		h.logger.Errorw("Failed to list recommendations", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Query failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// GetCLV returns the latest closing-line-value snapshot for a match
// @Summary Get Match CLV
// @Tags Recommendations
// @Produce json
// @Param matchID path string true "Match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "No CLV tracked"
// @Router /clv/{matchID} [get]
func (h *Handler) GetCLV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	matchID := chi.URLParam(r, "matchID")

	clv, err := h.clv.GetCLVData(ctx, matchID)
	if err != nil {
		h.logger.Errorw("Failed to load CLV", "match", matchID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Query failed")
		return
	}
	if clv == nil {
		h.errorResponse(w, http.StatusNotFound, "No CLV tracked for match")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"clv":    clv,
		"signal": clv.Signal(),
		"side":   clv.Side(),
	})
}
