package handlers

import (
	"net/http"

	"rvsalt/config"
	"rvsalt/core"
)

// RisksHandler handles GET requests for the infrastructure risk analysis.
func RisksHandler(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	report := core.AnalyzeRisks(
		loadSheet("vInfo", source),
		loadSheet("vHost", source),
		loadSheet("vHealth", source),
		config.AppConfig.Analysis.MinBIOSYear,
	)
	writeJSON(w, http.StatusOK, report)
}
