package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneul-health/lipidlens/internal/clients/openai"
	"github.com/haneul-health/lipidlens/internal/evidence"
	"github.com/haneul-health/lipidlens/internal/modules/annotate"
	"github.com/haneul-health/lipidlens/internal/modules/report"
)

func newTestRouter(t *testing.T, reports *report.Service) *chi.Mux {
	t.Helper()

	table, err := evidence.LoadSeed()
	require.NoError(t, err)

	annotator := annotate.NewService(table, zerolog.Nop())
	h := NewHandler(annotator, reports, zerolog.Nop())

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r
}

func TestHandleGenerateReport(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Report text."}},
			},
		})
	}))
	defer upstream.Close()

	client := openai.NewClient(openai.Config{BaseURL: upstream.URL, APIKey: "k", Model: "m"}, zerolog.Nop())
	reports := report.NewService(client, true, nil, time.Hour, zerolog.Nop())
	router := newTestRouter(t, reports)

	body := `{"text": "65-year-old male, status post coronary stent, LDL 92"}`
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Report struct {
			Text  string `json:"text"`
			Model string `json:"model"`
		} `json:"report"`
		Annotation struct {
			Risk struct {
				Category string `json:"category"`
			} `json:"risk"`
		} `json:"annotation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Report text.", resp.Report.Text)
	assert.Equal(t, "m", resp.Report.Model)
	assert.Equal(t, "very_high", resp.Annotation.Risk.Category)
}

func TestHandleGenerateReportDisabled(t *testing.T) {
	reports := report.NewService(nil, false, nil, time.Hour, zerolog.Nop())
	router := newTestRouter(t, reports)

	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{"text": "x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleGenerateReportBadJSON(t *testing.T) {
	reports := report.NewService(nil, false, nil, time.Hour, zerolog.Nop())
	router := newTestRouter(t, reports)

	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
