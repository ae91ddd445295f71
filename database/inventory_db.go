package database

import (
	"encoding/json"
	"fmt"
	"time"

	"rvsalt/logger"
	"rvsalt/models"
	"rvsalt/tabular"
)

// ReplaceSourceRows swaps out every stored row of one source atomically:
// either the new collection fully replaces the old one or the old rows
// survive untouched. Sheets map sheet name (vInfo, vHost, ...) to the parsed
// record sequence in file order.
func ReplaceSourceRows(source, filename, importID string, sheets map[string][]tabular.Record) error {
	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("beginning import transaction for source '%s': %w", source, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM inventory_rows WHERE source = ?", source); err != nil {
		return fmt.Errorf("clearing rows for source '%s': %w", source, err)
	}

	stmt, err := tx.Prepare("INSERT INTO inventory_rows (source, sheet, seq, data) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing row insert for source '%s': %w", source, err)
	}
	defer stmt.Close()

	var rowCount int64
	for sheet, records := range sheets {
		for seq, rec := range records {
			data, err := json.Marshal(rec)
			if err != nil {
				// One unencodable row should not sink the whole import.
				logger.Error("ReplaceSourceRows: Skipping row %d of %s/%s: %v", seq, source, sheet, err)
				continue
			}
			if _, err := stmt.Exec(source, sheet, seq, string(data)); err != nil {
				return fmt.Errorf("inserting row %d of %s/%s: %w", seq, source, sheet, err)
			}
			rowCount++
		}
	}

	_, err = tx.Exec(`INSERT INTO inventory_sources (name, filename, import_id, imported_at, row_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			filename = excluded.filename,
			import_id = excluded.import_id,
			imported_at = excluded.imported_at,
			row_count = excluded.row_count`,
		source, filename, importID, time.Now().Format("2006-01-02 15:04:05"), rowCount)
	if err != nil {
		return fmt.Errorf("upserting source '%s': %w", source, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import for source '%s': %w", source, err)
	}
	logger.Info("Imported %d rows for source '%s' (import %s)", rowCount, source, importID)
	return nil
}

// GetSheetRows loads a sheet's records in insertion order, tagging each with
// its source name. An empty source loads the sheet across all sources.
func GetSheetRows(sheet, source string) ([]tabular.Record, error) {
	query := "SELECT source, data FROM inventory_rows WHERE sheet = ? ORDER BY source, seq"
	args := []interface{}{sheet}
	if source != "" {
		query = "SELECT source, data FROM inventory_rows WHERE sheet = ? AND source = ? ORDER BY seq"
		args = append(args, source)
	}

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sheet '%s': %w", sheet, err)
	}
	defer rows.Close()

	var records []tabular.Record
	for rows.Next() {
		var src, data string
		if err := rows.Scan(&src, &data); err != nil {
			return nil, fmt.Errorf("scanning row of sheet '%s': %w", sheet, err)
		}
		var rec tabular.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			logger.Error("GetSheetRows: Skipping undecodable row in %s: %v", sheet, err)
			continue
		}
		if !rec.Has("Source") {
			rec["Source"] = src
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetAllSources lists the imported sources ordered by name.
func GetAllSources() ([]models.Source, error) {
	rows, err := DB.Query("SELECT name, filename, import_id, imported_at, row_count FROM inventory_sources ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []models.Source
	for rows.Next() {
		var s models.Source
		if err := rows.Scan(&s.Name, &s.Filename, &s.ImportID, &s.ImportedAt, &s.RowCount); err != nil {
			return nil, fmt.Errorf("scanning source row: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

// DeleteSource removes one source and, via the cascade, all its rows.
func DeleteSource(name string) error {
	if _, err := DB.Exec("DELETE FROM inventory_sources WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting source '%s': %w", name, err)
	}
	return nil
}
