package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetFriction returns the friction cell for one ordered matchup
// @Summary Get Matchup Friction
// @Description Computes the DNA friction cell for home vs away
// @Tags Friction
// @Produce json
// @Param home path string true "Home team"
// @Param away path string true "Away team"
// @Success 200 {object} models.FrictionCell
// @Failure 404 {object} map[string]string "Profile missing for either side"
// @Router /friction/{home}/{away} [get]
func (h *Handler) GetFriction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	home := chi.URLParam(r, "home")
	away := chi.URLParam(r, "away")

	cell, err := h.friction.ComputePair(ctx, home, away)
	if err != nil {
		h.logger.Errorw("Failed to compute friction", "home", home, "away", away, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Computation failed")
		return
	}
	if cell == nil {
		h.errorResponse(w, http.StatusNotFound, "DNA profile missing for one or both teams")
		return
	}

	h.jsonResponse(w, http.StatusOK, cell)
}
