package handlers

import "github.com/go-chi/chi/v5"

func RegisterRiskRoutes(r chi.Router) {
	r.Get("/risks", RisksHandler)

	// Remediation advice depends on an external model integration.
	r.Get("/ai/remediation", notImplementedHandler)
}
