package handlers

import "github.com/go-chi/chi/v5"

func RegisterStatsRoutes(r chi.Router) {
	r.Get("/stats", StatsHandler)
}
