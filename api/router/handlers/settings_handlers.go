package handlers

import (
	"encoding/json"
	"net/http"

	"rvsalt/database"
	"rvsalt/logger"
	"rvsalt/models"
)

// GetTableWidthsHandler handles GET requests for one table's persisted
// column width list. Unknown tables return an empty list.
func GetTableWidthsHandler(w http.ResponseWriter, r *http.Request, tableID string) {
	widths, err := database.SettingsWidthStore{}.LoadWidths(tableID)
	if err != nil {
		logger.Error("GetTableWidthsHandler: Error loading widths for %s: %v", tableID, err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve table layout")
		return
	}
	if widths == nil {
		widths = []string{}
	}
	writeJSON(w, http.StatusOK, models.TableWidths(widths))
}

// SaveTableWidthsHandler handles PUT requests to persist one table's full
// ordered width list. The whole list is always written, never a delta.
func SaveTableWidthsHandler(w http.ResponseWriter, r *http.Request, tableID string) {
	var widths []string
	if err := json.NewDecoder(r.Body).Decode(&widths); err != nil {
		logger.Error("SaveTableWidthsHandler: Error decoding widths for %s: %v", tableID, err)
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := (database.SettingsWidthStore{}).SaveWidths(tableID, widths); err != nil {
		logger.Error("SaveTableWidthsHandler: Error saving widths for %s: %v", tableID, err)
		writeError(w, http.StatusInternalServerError, "Failed to save table layout")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// GetUISettingsHandler handles GET requests for the general UI preference
// blob. Nothing saved yet returns an empty object.
func GetUISettingsHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := database.GetSetting(models.UISettingsKey)
	if err != nil {
		logger.Error("GetUISettingsHandler: Error loading UI settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve UI settings")
		return
	}
	if raw == "" {
		raw = "{}"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(raw)); err != nil {
		logger.Error("GetUISettingsHandler: Error writing response: %v", err)
	}
}

// SaveUISettingsHandler handles PUT requests replacing the UI preference
// blob. The payload must be a JSON object; its fields are opaque here.
func SaveUISettingsHandler(w http.ResponseWriter, r *http.Request) {
	var prefs map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		logger.Error("SaveUISettingsHandler: Error decoding UI settings: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	raw, err := json.Marshal(prefs)
	if err != nil {
		logger.Error("SaveUISettingsHandler: Error encoding UI settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save UI settings")
		return
	}
	if err := database.SetSetting(models.UISettingsKey, string(raw)); err != nil {
		logger.Error("SaveUISettingsHandler: Error saving UI settings: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save UI settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// ListTableLayoutsHandler handles GET requests for every persisted layout.
func ListTableLayoutsHandler(w http.ResponseWriter, r *http.Request) {
	layouts, err := database.GetAllTableLayouts()
	if err != nil {
		logger.Error("ListTableLayoutsHandler: Error fetching table layouts: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve table layouts")
		return
	}
	writeJSON(w, http.StatusOK, layouts)
}

// ResetTableLayoutsHandler handles POST requests to drop every persisted
// layout, returning all tables to automatic column sizing.
func ResetTableLayoutsHandler(w http.ResponseWriter, r *http.Request) {
	if err := database.ResetAllTableLayouts(); err != nil {
		logger.Error("ResetTableLayoutsHandler: Error resetting table layouts: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to reset table layouts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
