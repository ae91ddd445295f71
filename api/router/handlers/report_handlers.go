package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"rvsalt/core"
	"rvsalt/export"
	"rvsalt/logger"
	"rvsalt/tabular"
)

var sheetNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Fields leading the CSV when present; the remaining fields follow sorted.
var preferredReportFields = []string{
	"VM", "Host", "Cluster", "Datacenter", "Powerstate",
	"Name", "CPUs", "Memory", "Source",
}

// ExportCSVHandler handles GET requests to download one sheet's filtered
// rows as CSV. Filters mirror the list endpoints: source and search.
func ExportCSVHandler(w http.ResponseWriter, r *http.Request, sheet string) {
	if !sheetNameRe.MatchString(sheet) {
		writeError(w, http.StatusBadRequest, "Invalid sheet name")
		return
	}

	source := r.URL.Query().Get("source")
	search := r.URL.Query().Get("search")

	rows := loadSheet(sheet, source)
	cols := export.ColumnsFromRows(rows, preferredReportFields)

	if search != "" {
		fields := make([]string, len(cols))
		for i, col := range cols {
			fields[i] = col.Key
		}
		rows = tabular.Apply(rows, tabular.Query{Search: search, SearchFields: fields})
	}

	filename := fmt.Sprintf("rvsalt_%s_%s.csv", sheet, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := export.WriteCSV(w, cols, rows); err != nil {
		// Headers are already out; nothing left to report to the client.
		logger.Error("ExportCSVHandler: Error streaming csv for sheet %s: %v", sheet, err)
	}
}

// ResourceUsageHandler handles GET requests for the per-cluster and per-host
// VM load aggregation.
func ResourceUsageHandler(w http.ResponseWriter, r *http.Request) {
	vinfo := loadSheet("vInfo", r.URL.Query().Get("source"))
	writeJSON(w, http.StatusOK, core.BuildResourceUsage(vinfo))
}

// OSDistributionHandler handles GET requests for the guest OS breakdown.
func OSDistributionHandler(w http.ResponseWriter, r *http.Request) {
	vinfo := loadSheet("vInfo", r.URL.Query().Get("source"))
	writeJSON(w, http.StatusOK, core.BuildOSDistribution(vinfo))
}

// ReservedResourcesHandler handles GET requests for the VMs holding CPU or
// memory reservations.
func ReservedResourcesHandler(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	reserved := core.AnalyzeReservations(
		loadSheet("vInfo", source),
		loadSheet("vCPU", source),
		loadSheet("vMemory", source),
	)
	writeJSON(w, http.StatusOK, reserved)
}

// DiskWasteHandler handles GET requests for the thick-provisioning waste
// estimate.
func DiskWasteHandler(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	writeJSON(w, http.StatusOK, core.AnalyzeDiskWaste(
		loadSheet("vDisk", source),
		loadSheet("vInfo", source),
	))
}

// ZombieDisksHandler handles GET requests for the orphaned disk file report.
func ZombieDisksHandler(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	writeJSON(w, http.StatusOK, core.AnalyzeZombieDisks(
		loadSheet("vHealth", source),
		loadSheet("vDatastore", source),
	))
}
