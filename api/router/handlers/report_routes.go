package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterReportRoutes(r chi.Router) {
	r.Get("/reports/resource-usage", ResourceUsageHandler)
	r.Get("/reports/os-distribution", OSDistributionHandler)
	r.Get("/reports/reserved", ReservedResourcesHandler)
	r.Get("/reports/disk-waste", DiskWasteHandler)
	r.Get("/reports/zombie-disks", ZombieDisksHandler)

	r.Get("/reports/csv/{sheetName}", func(w http.ResponseWriter, req *http.Request) {
		sheet := chi.URLParam(req, "sheetName")
		if sheet == "" {
			writeError(w, http.StatusBadRequest, "Missing sheet name")
			return
		}
		ExportCSVHandler(w, req, sheet)
	})

	// PDF rendering is delegated to an external reporting pipeline.
	r.Get("/reports/pdf/{reportType}", notImplementedHandler)
}
