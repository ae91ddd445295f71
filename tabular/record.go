// Package tabular implements the interactive table engine shared by every
// dashboard page: column sorting with type inference, persisted column-width
// resizing, hierarchical tri-state faceting and the record filter pipeline.
// It has no opinion about where records come from or how rows are rendered.
package tabular

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Record is a flat, loosely-typed row as delivered by an inventory export.
// Field sets are not guaranteed to be identical across records; fields are
// looked up by name at the point of use and absence degrades gracefully.
type Record map[string]interface{}

// Column identifies a field within a table. SortKey, when set, derives the
// sort value from the whole record instead of a direct field lookup (used
// for computed cells like usage percentages).
type Column struct {
	Key     string
	Title   string
	SortKey func(Record) interface{}
}

// Has reports whether the record carries a non-nil value for the field.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Text returns the field rendered as cell text, or "" when absent.
func (r Record) Text(field string) string {
	v, ok := r[field]
	if !ok {
		return ""
	}
	return CellText(v)
}

// Keys returns the record's field names in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CellText renders a loosely-typed cell value the way the table displays it.
func CellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		// Unexpected types still need a stable textual form for sorting/search.
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	}
}
