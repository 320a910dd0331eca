// Package handlers provides HTTP handlers for annotation operations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/haneul-health/lipidlens/internal/modules/annotate"
	"github.com/haneul-health/lipidlens/internal/modules/eligibility"
	"github.com/haneul-health/lipidlens/internal/modules/extract"
	"github.com/haneul-health/lipidlens/internal/modules/risk"
)

// Handler handles annotation HTTP requests
type Handler struct {
	service *annotate.Service
	log     zerolog.Logger
}

// NewHandler creates a new annotation handler
func NewHandler(service *annotate.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "annotate").Logger(),
	}
}

type textRequest struct {
	Text string `json:"text"`
}

// HandleAnnotate handles POST /api/annotate
func (h *Handler) HandleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.AnnotateText(req.Text))
}

// HandleExtract handles POST /api/extract
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	state, trace := extract.Extract(req.Text)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"patient": state,
		"trace":   trace,
	})
}

// HandleClassifyRisk handles POST /api/risk
func (h *Handler) HandleClassifyRisk(w http.ResponseWriter, r *http.Request) {
	var in risk.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	assessment, citations := h.service.ClassifyRisk(in)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"assessment": assessment,
		"citations":  citations,
	})
}

// HandleEvaluateEligibility handles POST /api/eligibility
func (h *Handler) HandleEvaluateEligibility(w http.ResponseWriter, r *http.Request) {
	var in eligibility.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	result, citations := h.service.EvaluateEligibility(in)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"result":    result,
		"citations": citations,
	})
}

// HandleListEvidence handles GET /api/evidence
func (h *Handler) HandleListEvidence(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"citations": h.service.Evidence().All(),
	})
}

// HandleGetEvidence handles GET /api/evidence/{id}
func (h *Handler) HandleGetEvidence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ref, ok := h.service.Evidence().Get(id)
	if !ok {
		http.Error(w, "Citation not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, ref)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
