package database

import (
	"database/sql"
	"fmt"
	"time"

	"rvsalt/models"
)

// UpsertNote saves or replaces the note attached to (targetType, targetName)
// and returns the stored timestamp.
func UpsertNote(targetType, targetName, content string) (string, error) {
	updatedAt := time.Now().Format("2006-01-02 15:04:05")
	_, err := DB.Exec(`INSERT INTO custom_notes (target_type, target_name, note_content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(target_type, target_name)
		DO UPDATE SET note_content = excluded.note_content, updated_at = excluded.updated_at`,
		targetType, targetName, content, updatedAt)
	if err != nil {
		return "", fmt.Errorf("upserting note for %s/%s: %w", targetType, targetName, err)
	}
	return updatedAt, nil
}

// GetNote fetches the note attached to (targetType, targetName). A missing
// note returns an empty note, not an error.
func GetNote(targetType, targetName string) (models.Note, error) {
	note := models.Note{TargetType: targetType, TargetName: targetName}
	err := DB.QueryRow(
		"SELECT note_content, updated_at FROM custom_notes WHERE target_type = ? AND target_name = ?",
		targetType, targetName,
	).Scan(&note.NoteContent, &note.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return note, nil
		}
		return note, fmt.Errorf("fetching note for %s/%s: %w", targetType, targetName, err)
	}
	return note, nil
}
