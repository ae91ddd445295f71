package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rvsalt/api/router/handlers"
	"rvsalt/logger"
)

// NewRouter creates and configures the API router. All registered paths are
// relative to the /api base path.
func NewRouter() http.Handler {
	router := chi.NewRouter()

	handlers.RegisterHealthRoutes(router)
	handlers.RegisterSourceRoutes(router)
	handlers.RegisterStatsRoutes(router)
	handlers.RegisterVMRoutes(router)
	handlers.RegisterHostRoutes(router)
	handlers.RegisterDatastoreRoutes(router)
	handlers.RegisterRiskRoutes(router)
	handlers.RegisterOptimizationRoutes(router)
	handlers.RegisterDRRoutes(router)
	handlers.RegisterReportRoutes(router)
	handlers.RegisterNoteRoutes(router)
	handlers.RegisterSettingsRoutes(router)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		logger.Error("API SUB-ROUTER CATCH-ALL: Unhandled route relative to /api: %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})

	return router
}
