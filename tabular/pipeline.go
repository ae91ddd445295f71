package tabular

import "strings"

// Query bundles the three filter stages applied to a record collection
// before sorting: discrete dropdown filters, free-text search over a
// configured field subset, and the facet selection.
type Query struct {
	Search       string
	SearchFields []string

	// Discrete maps field name to a required exact value. An empty value
	// passes everything, matching an unset dropdown.
	Discrete map[string]string

	// FacetField names the leaf hierarchy level (e.g. "Cluster"); Selection
	// is the set of selected leaf values. A nil Selection disables the
	// stage.
	FacetField string
	Selection  SelectionSet
}

// Empty reports whether the query filters nothing.
func (q Query) Empty() bool {
	if q.Search != "" {
		return false
	}
	for _, v := range q.Discrete {
		if v != "" {
			return false
		}
	}
	return q.Selection == nil
}

// Apply runs the filter stages in fixed order: discrete filters first, then
// text search, then facet selection — later stages are cheaper on the
// already-narrowed set. An empty query returns the input collection
// unchanged. A record missing a field referenced by a stage fails that
// stage; it is never an error.
func Apply(records []Record, q Query) []Record {
	if q.Empty() {
		return records
	}

	search := strings.ToLower(q.Search)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !matchDiscrete(rec, q.Discrete) {
			continue
		}
		if search != "" && !matchSearch(rec, search, q.SearchFields) {
			continue
		}
		if q.Selection != nil && !q.Selection.Contains(FacetValue(rec, q.FacetField)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchDiscrete(rec Record, filters map[string]string) bool {
	for field, want := range filters {
		if want == "" {
			continue
		}
		if !rec.Has(field) || rec.Text(field) != want {
			return false
		}
	}
	return true
}

func matchSearch(rec Record, needle string, fields []string) bool {
	for _, field := range fields {
		if !rec.Has(field) {
			continue
		}
		if strings.Contains(strings.ToLower(rec.Text(field)), needle) {
			return true
		}
	}
	return false
}
