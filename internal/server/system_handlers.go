package server

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/haneul-health/lipidlens/internal/database"
	"github.com/haneul-health/lipidlens/internal/evidence"
	"github.com/haneul-health/lipidlens/internal/modules/report"
)

// SystemHandlers serves runtime status and database statistics.
type SystemHandlers struct {
	log         zerolog.Logger
	evidence    *evidence.Table
	cacheDB     *database.DB
	reports     *report.Service
	startupTime time.Time
}

// NewSystemHandlers creates system monitoring handlers.
func NewSystemHandlers(log zerolog.Logger, table *evidence.Table, cacheDB *database.DB, reports *report.Service) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		evidence:    table,
		cacheDB:     cacheDB,
		reports:     reports,
		startupTime: time.Now(),
	}
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPct, memPct := h.getSystemStats()

	cacheHealthy := false
	if h.cacheDB != nil {
		cacheHealthy = h.cacheDB.Health(r.Context()) == nil
	}

	h.writeJSON(w, map[string]interface{}{
		"status":         "running",
		"uptime_hours":   time.Since(h.startupTime).Hours(),
		"cpu_percent":    cpuPct,
		"memory_percent": memPct,
		"citations":      h.evidence.Len(),
		"cache_healthy":  cacheHealthy,
		"report_enabled": h.reports != nil && h.reports.Enabled(),
	})
}

// HandleDatabaseStats handles GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{}

	if h.cacheDB != nil {
		entry := map[string]interface{}{
			"path":    h.cacheDB.Path(),
			"size_mb": fileSizeMB(h.cacheDB.Path()),
		}
		var rows int
		err := h.cacheDB.Conn().QueryRowContext(r.Context(),
			`SELECT COUNT(*) FROM report_cache`).Scan(&rows)
		if err != nil {
			h.log.Warn().Err(err).Msg("Failed to count cache rows")
		} else {
			entry["rows"] = rows
		}
		stats[h.cacheDB.Name()] = entry
	}

	h.writeJSON(w, map[string]interface{}{
		"databases": stats,
	})
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a 100ms sampling interval so status calls stay fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func fileSizeMB(path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return float64(info.Size()) / 1024 / 1024
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
