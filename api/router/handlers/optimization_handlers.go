package handlers

import (
	"net/http"

	"rvsalt/config"
	"rvsalt/core"
)

// RightsizingHandler handles GET requests for the consolidated right-sizing
// and health analysis.
func RightsizingHandler(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	in := core.RightsizeInput{
		VInfo:     loadSheet("vInfo", source),
		VHost:     loadSheet("vHost", source),
		VCPU:      loadSheet("vCPU", source),
		VTools:    loadSheet("vTools", source),
		VSnapshot: loadSheet("vSnapshot", source),
		VNetwork:  loadSheet("vNetwork", source),
		VHealth:   loadSheet("vHealth", source),
	}
	opts := core.RightsizeOptions{
		LowCPUUsagePct:      config.AppConfig.Analysis.LowCPUUsagePct,
		DefaultHostSpeedMHz: config.AppConfig.Analysis.DefaultHostSpeedMHz,
		SnapshotOldDays:     config.AppConfig.Analysis.SnapshotOldDays,
	}
	writeJSON(w, http.StatusOK, core.AnalyzeRightsizing(in, opts))
}
