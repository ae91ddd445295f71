package handlers

import (
	"encoding/json"
	"net/http"

	"rvsalt/config"
	"rvsalt/database"
	"rvsalt/ingest"
	"rvsalt/logger"
	"rvsalt/tabular"
)

// loadSheet fetches one sheet across all sources or a single source. Errors
// degrade to an empty slice so every analysis endpoint stays renderable.
func loadSheet(sheet, source string) []tabular.Record {
	rows, err := database.GetSheetRows(sheet, source)
	if err != nil {
		logger.Error("loadSheet: Error loading sheet %s (source=%q): %v", sheet, source, err)
		return nil
	}
	return rows
}

// ListSourcesHandler handles GET requests for the imported source list.
func ListSourcesHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := database.GetAllSources()
	if err != nil {
		logger.Error("ListSourcesHandler: Error fetching sources: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve sources")
		return
	}
	writeJSON(w, http.StatusOK, sources)
}

// DeleteSourceHandler handles DELETE requests to drop one source and its rows.
func DeleteSourceHandler(w http.ResponseWriter, r *http.Request, name string) {
	if err := database.DeleteSource(name); err != nil {
		logger.Error("DeleteSourceHandler: Error deleting source %s: %v", name, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete source")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReloadHandler handles POST requests to re-ingest the data directory.
func ReloadHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RebuildDB bool `json:"rebuild_db"`
	}
	if r.Body != nil {
		// Body is optional; a bad one just means default behavior.
		_ = json.NewDecoder(r.Body).Decode(&payload)
		defer r.Body.Close()
	}

	if payload.RebuildDB {
		sources, err := database.GetAllSources()
		if err == nil {
			for _, src := range sources {
				if err := database.DeleteSource(src.Name); err != nil {
					logger.Warn("ReloadHandler: Error dropping source %s before rebuild: %v", src.Name, err)
				}
			}
		}
	}

	if err := ingest.LoadDir(config.AppConfig.Data.Dir); err != nil {
		logger.Error("ReloadHandler: Error reloading data dir: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error", "message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"rebuild_db": payload.RebuildDB,
	})
}
