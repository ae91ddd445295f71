package handlers

import (
	"net/http"

	"rvsalt/core"
)

// DRAnalysisHandler handles GET requests for the disaster-recovery analysis.
func DRAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	report := core.AnalyzeDR(loadSheet("vInfo", source), loadSheet("vHost", source))
	writeJSON(w, http.StatusOK, report)
}
