package handlers

import "github.com/go-chi/chi/v5"

func RegisterDRRoutes(r chi.Router) {
	r.Get("/dr-analysis", DRAnalysisHandler)
}
