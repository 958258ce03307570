package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the full HTTP surface.
func (h *Handler) Routes(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams/{team}/dna", h.GetTeamDNA)
		r.Get("/teams/{team}/strategies", h.GetTeamStrategies)
		r.Get("/friction/{home}/{away}", h.GetFriction)
		r.Get("/recommendations", h.ListRecommendations)
		r.Get("/clv/{matchID}", h.GetCLV)
		r.Get("/diagnostics", h.GetDiagnostics)
		r.Get("/adjustments", h.GetAdjustments)

		r.Post("/odds/snapshots", h.IngestOddsSnapshots)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/collect", h.TriggerCollect)
			r.Post("/resolve", h.TriggerResolve)
		})
	})

	return r
}
