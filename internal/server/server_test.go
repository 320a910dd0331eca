package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneul-health/lipidlens/internal/config"
	"github.com/haneul-health/lipidlens/internal/evidence"
	"github.com/haneul-health/lipidlens/internal/modules/annotate"
	"github.com/haneul-health/lipidlens/internal/modules/report"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	table, err := evidence.LoadSeed()
	require.NoError(t, err)

	log := zerolog.Nop()
	cfg := &config.Config{
		Port:        8080,
		CORSOrigins: []string{"*"},
	}

	return New(Config{
		Log:       log,
		Config:    cfg,
		Evidence:  table,
		Annotator: annotate.NewService(table, log),
		Reports:   report.NewService(nil, false, nil, time.Hour, log),
		Port:      cfg.Port,
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "lipidlens", resp["service"])
}

func TestAnnotateRouteMounted(t *testing.T) {
	srv := newTestServer(t)

	body := `{"text": "65-year-old male, status post coronary stent, LDL 92"}`
	req := httptest.NewRequest(http.MethodPost, "/api/annotate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Risk struct {
			Category string `json:"category"`
		} `json:"risk"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "very_high", resp.Risk.Category)
}

func TestReportRouteDisabled(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{"text": "x"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSystemStatus(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "running", resp["status"])
	assert.Equal(t, false, resp["report_enabled"])
	assert.Equal(t, false, resp["cache_healthy"])
	assert.Greater(t, resp["citations"], float64(0))
}
