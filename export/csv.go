// Package export serializes filtered record sets for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"rvsalt/tabular"
)

// WriteCSV streams rows as CSV with one header row per column title. Cells
// render through the same text formatting the tables use, so numbers and
// missing values come out identical to the on-screen view.
func WriteCSV(w io.Writer, cols []tabular.Column, rows []tabular.Record) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, col := range cols {
		title := col.Title
		if title == "" {
			title = col.Key
		}
		header[i] = title
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	line := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			line[i] = row.Text(col.Key)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ColumnsFromRows derives a stable column list for sheets whose field set is
// only known at runtime. Preferred fields come first when present, the rest
// follow in first-seen order.
func ColumnsFromRows(rows []tabular.Record, preferred []string) []tabular.Column {
	seen := map[string]bool{}
	var cols []tabular.Column

	for _, key := range preferred {
		for _, row := range rows {
			if row.Has(key) {
				cols = append(cols, tabular.Column{Key: key, Title: key})
				seen[key] = true
				break
			}
		}
	}

	for _, row := range rows {
		for _, key := range row.Keys() {
			if !seen[key] {
				cols = append(cols, tabular.Column{Key: key, Title: key})
				seen[key] = true
			}
		}
	}
	return cols
}
