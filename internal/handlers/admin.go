package handlers

import "net/http"

// TriggerCollect runs the collect phase once, outside its schedule
// @Summary Trigger Collect Phase
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{} "Matches analyzed"
// @Failure 500 {object} map[string]string "Phase failed"
// @Router /admin/collect [post]
func (h *Handler) TriggerCollect(w http.ResponseWriter, r *http.Request) {
	h.runPhase(w, r, "collect", h.collect)
}

// TriggerResolve runs the resolve phase once, outside its schedule
// @Summary Trigger Resolve Phase
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{} "Picks resolved"
// @Failure 500 {object} map[string]string "Phase failed"
// @Router /admin/resolve [post]
func (h *Handler) TriggerResolve(w http.ResponseWriter, r *http.Request) {
	h.runPhase(w, r, "resolve", h.resolve)
}

func (h *Handler) runPhase(w http.ResponseWriter, r *http.Request, name string, phase PhaseRunner) {
	n, err := phase.Run(r.Context())
	if err != nil {
		h.logger.Errorw("Manual phase trigger failed", "phase", name, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Phase failed: "+err.Error())
		return
	}

	h.logger.Infow("Manual phase trigger", "phase", name, "processed", n)
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"phase":     name,
		"processed": n,
	})
}
