package handlers

import (
	"net/http"
	"time"

	"rvsalt/config"
	"rvsalt/core"
	"rvsalt/database"
	"rvsalt/logger"
)

// StatsHandler handles GET requests for the per-source dashboard summary.
func StatsHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := database.GetAllSources()
	if err != nil {
		logger.Error("StatsHandler: Error fetching sources: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve sources")
		return
	}

	sheets := make([]core.SourceSheets, 0, len(sources))
	for _, src := range sources {
		sheets = append(sheets, core.SourceSheets{
			Name:      src.Name,
			VInfo:     loadSheet("vInfo", src.Name),
			VSnapshot: loadSheet("vSnapshot", src.Name),
		})
	}

	stats := core.BuildStats(sheets, config.AppConfig.Analysis.SnapshotOldDays, time.Now())
	writeJSON(w, http.StatusOK, stats)
}
