// Package core derives the dashboard's computed views from raw inventory
// records: summary statistics, risk findings, right-sizing recommendations
// and disaster-recovery pairing.
package core

import (
	"math"
	"strconv"
	"strings"
	"time"

	"rvsalt/tabular"
)

// numField reads a field as a number, tolerating string-typed cells. Exports
// frequently carry numbers as text ("16" or "2.048,5"); anything unusable is
// zero, never an error.
func numField(r tabular.Record, field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		// Turkish-formatted numbers: grouping dots, decimal comma.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// boolField reads a field as a boolean, accepting the textual forms exports
// use ("True", "true", "1").
func boolField(r tabular.Record, field string) bool {
	switch v := r[field].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1"
	case float64:
		return v != 0
	}
	return false
}

var snapshotTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006",
}

// parseTime coerces the date formats seen in export files; a zero time means
// the cell was unparsable and the row is skipped by age checks.
func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range snapshotTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
