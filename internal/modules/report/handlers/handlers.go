// Package handlers provides HTTP handlers for counseling report generation.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/haneul-health/lipidlens/internal/modules/annotate"
	"github.com/haneul-health/lipidlens/internal/modules/report"
)

// Handler handles report HTTP requests
type Handler struct {
	annotator *annotate.Service
	reports   *report.Service
	log       zerolog.Logger
}

// NewHandler creates a new report handler
func NewHandler(annotator *annotate.Service, reports *report.Service, log zerolog.Logger) *Handler {
	return &Handler{
		annotator: annotator,
		reports:   reports,
		log:       log.With().Str("handler", "report").Logger(),
	}
}

type reportRequest struct {
	Text string `json:"text"`
}

// HandleGenerateReport handles POST /api/report. The narrative is annotated
// first and the annotation is returned alongside the generated report so
// the caller can audit what the report was grounded on.
func (h *Handler) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	annotation := h.annotator.AnnotateText(req.Text)

	rep, err := h.reports.Generate(r.Context(), annotation)
	if err != nil {
		if errors.Is(err, report.ErrDisabled) {
			http.Error(w, "Report generation is not configured", http.StatusServiceUnavailable)
			return
		}
		h.log.Error().Err(err).Str("trace_id", annotation.TraceID).Msg("Report generation failed")
		http.Error(w, "Report generation failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"report":     rep,
		"annotation": annotation,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
