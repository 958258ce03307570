package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetTeamDNA returns the full behavioral profile for one team
// @Summary Get Team DNA
// @Tags Teams
// @Produce json
// @Param team path string true "Team name or alias"
// @Success 200 {object} models.TeamDNA
// @Failure 404 {object} map[string]string "Unknown team"
// @Router /teams/{team}/dna [get]
func (h *Handler) GetTeamDNA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	team := chi.URLParam(r, "team")

	dna, err := h.teams.GetTeamDNA(ctx, team)
	if err != nil {
		h.logger.Errorw("Failed to load team DNA", "team", team, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Query failed")
		return
	}
	if dna == nil {
		h.errorResponse(w, http.StatusNotFound, "Unknown team")
		return
	}

	h.jsonResponse(w, http.StatusOK, dna)
}

// GetTeamStrategies returns a team's learned strategy performance rows
// @Summary Get Team Strategies
// @Tags Teams
// @Produce json
// @Param team path string true "Team name or alias"
// @Success 200 {object} map[string]interface{}
// @Router /teams/{team}/strategies [get]
func (h *Handler) GetTeamStrategies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	team := chi.URLParam(r, "team")

	strategies, err := h.teams.GetTeamStrategies(ctx, team)
	if err != nil {
		h.logger.Errorw("Failed to load team strategies", "team", team, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Query failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"team":       team,
		"strategies": strategies,
	})
}
