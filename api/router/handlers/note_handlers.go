package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"rvsalt/database"
	"rvsalt/logger"
	"rvsalt/models"
)

// GetNoteHandler handles GET requests for the note attached to a target.
// Absent notes return an empty body rather than 404 so the UI can always
// render the editor.
func GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	targetType := r.URL.Query().Get("target_type")
	targetName := r.URL.Query().Get("target_name")
	if targetType == "" || targetName == "" {
		writeError(w, http.StatusBadRequest, "Missing target_type or target_name")
		return
	}

	note, err := database.GetNote(targetType, targetName)
	if err != nil {
		logger.Error("GetNoteHandler: Error fetching note for %s/%s: %v", targetType, targetName, err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve note")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// SaveNoteHandler handles POST requests to create or replace a note.
func SaveNoteHandler(w http.ResponseWriter, r *http.Request) {
	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		logger.Error("SaveNoteHandler: Error decoding request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(note.TargetType) == "" || strings.TrimSpace(note.TargetName) == "" {
		writeError(w, http.StatusBadRequest, "Missing target_type or target_name")
		return
	}

	updatedAt, err := database.UpsertNote(note.TargetType, note.TargetName, note.NoteContent)
	if err != nil {
		logger.Error("SaveNoteHandler: Error saving note for %s/%s: %v", note.TargetType, note.TargetName, err)
		writeError(w, http.StatusInternalServerError, "Failed to save note")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "success",
		"message":    "Note saved",
		"updated_at": updatedAt,
	})
}
