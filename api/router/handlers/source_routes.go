package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterSourceRoutes(r chi.Router) {
	r.Get("/sources", ListSourcesHandler)
	r.Post("/reload", ReloadHandler)

	r.Delete("/sources/{sourceName}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "sourceName")
		if name == "" {
			writeError(w, http.StatusBadRequest, "Missing source name")
			return
		}
		DeleteSourceHandler(w, req, name)
	})
}
