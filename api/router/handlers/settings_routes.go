package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterSettingsRoutes(r chi.Router) {
	r.Get("/settings/ui", GetUISettingsHandler)
	r.Put("/settings/ui", SaveUISettingsHandler)
	r.Get("/settings/table-widths", ListTableLayoutsHandler)
	r.Post("/settings/table-widths/reset", ResetTableLayoutsHandler)

	r.Route("/settings/table-widths/{tableID}", func(subRouter chi.Router) {
		subRouter.Get("/", func(w http.ResponseWriter, req *http.Request) {
			tableID := chi.URLParam(req, "tableID")
			if tableID == "" {
				writeError(w, http.StatusBadRequest, "Missing table ID")
				return
			}
			GetTableWidthsHandler(w, req, tableID)
		})
		subRouter.Put("/", func(w http.ResponseWriter, req *http.Request) {
			tableID := chi.URLParam(req, "tableID")
			if tableID == "" {
				writeError(w, http.StatusBadRequest, "Missing table ID")
				return
			}
			SaveTableWidthsHandler(w, req, tableID)
		})
	})
}
