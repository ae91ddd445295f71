package handlers

import "github.com/go-chi/chi/v5"

func RegisterOptimizationRoutes(r chi.Router) {
	r.Get("/rightsizing", RightsizingHandler)
}
