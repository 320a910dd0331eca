package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all annotation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/annotate", h.HandleAnnotate)
	r.Post("/extract", h.HandleExtract)
	r.Post("/risk", h.HandleClassifyRisk)
	r.Post("/eligibility", h.HandleEvaluateEligibility)
	r.Route("/evidence", func(r chi.Router) {
		r.Get("/", h.HandleListEvidence)
		r.Get("/{id}", h.HandleGetEvidence)
	})
}
