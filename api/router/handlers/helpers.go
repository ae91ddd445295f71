package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"rvsalt/logger"
	"rvsalt/models"
)

// writeJSON serializes payload with the standard content type. Encoding
// failures are logged, not surfaced; headers are already out by then.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("writeJSON: Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Message: message})
}

// notImplementedHandler returns a 501 Not Implemented error.
func notImplementedHandler(w http.ResponseWriter, r *http.Request) {
	errMsg := fmt.Sprintf("%s %s - Not Implemented Yet (relative path within API router)", r.Method, r.URL.Path)
	writeJSON(w, http.StatusNotImplemented, models.ErrorResponse{Message: errMsg})
}
