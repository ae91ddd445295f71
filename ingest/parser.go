// Package ingest loads inventory export files (one JSON file per vCenter
// source, one array of flat objects per sheet) into the database, and keeps
// them fresh by watching the data directory.
package ingest

import (
	"fmt"
	"os"

	"rvsalt/logger"
	"rvsalt/tabular"

	"github.com/tidwall/gjson"
)

// ParsedSource is one export file read into memory but not yet applied.
type ParsedSource struct {
	Name     string
	Filename string
	Sheets   map[string][]tabular.Record
}

// ParseFile reads an export file and parses every sheet. No schema is
// presumed: whatever flat fields each object carries are kept as-is.
// Non-array sheets and non-object rows are skipped with a log line, never an
// error — a partially usable export still renders.
func ParseFile(path, sourceName string) (*ParsedSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file '%s': %w", path, err)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("export file '%s' is not valid JSON", path)
	}

	parsed := &ParsedSource{
		Name:     sourceName,
		Filename: path,
		Sheets:   make(map[string][]tabular.Record),
	}

	gjson.ParseBytes(raw).ForEach(func(sheet, value gjson.Result) bool {
		if !value.IsArray() {
			logger.Warn("ParseFile: Sheet '%s' in %s is not an array, skipping", sheet.String(), path)
			return true
		}
		var records []tabular.Record
		value.ForEach(func(_, row gjson.Result) bool {
			if !row.IsObject() {
				logger.Warn("ParseFile: Non-object row in %s/%s, skipping", path, sheet.String())
				return true
			}
			rec := make(tabular.Record)
			row.ForEach(func(field, cell gjson.Result) bool {
				rec[field.String()] = cellValue(cell)
				return true
			})
			rec["Source"] = sourceName
			records = append(records, rec)
			return true
		})
		parsed.Sheets[sheet.String()] = records
		return true
	})
	return parsed, nil
}

// cellValue maps a JSON cell onto the record value set {string, number,
// bool, nil}. Nested structures have no tabular meaning; their raw JSON is
// kept as text so nothing silently disappears.
func cellValue(cell gjson.Result) interface{} {
	switch cell.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		return cell.Float()
	case gjson.String:
		return cell.String()
	default:
		return cell.Raw
	}
}
