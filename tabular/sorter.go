package tabular

import "sort"

// SortDirection is the per-column sort direction. The zero value means no
// active sort (natural/insertion order).
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortState holds the single active sort of one table. Each table owns its
// own SortState; nothing here is shared across tables or pages.
type SortState struct {
	ColumnKey string        `json:"column_key"`
	Direction SortDirection `json:"direction"`
}

// Toggle advances the state for a header click on columnKey. Clicking a new
// column activates it ascending and clears the previous column. Repeated
// clicks cycle ascending, descending, then back to natural order.
func (s *SortState) Toggle(columnKey string) {
	if s.ColumnKey != columnKey {
		s.ColumnKey = columnKey
		s.Direction = SortAsc
		return
	}
	switch s.Direction {
	case SortAsc:
		s.Direction = SortDesc
	case SortDesc:
		s.ColumnKey = ""
		s.Direction = SortNone
	default:
		s.Direction = SortAsc
	}
}

// Active reports whether a sort is in effect.
func (s *SortState) Active() bool {
	return s.ColumnKey != "" && s.Direction != SortNone
}

// Sorter re-orders row sequences using a Classifier for per-pair comparison.
type Sorter struct {
	classifier *Classifier
}

// NewSorter returns a sorter backed by the given classifier. A nil
// classifier falls back to the Turkish default used across the dashboard.
func NewSorter(c *Classifier) *Sorter {
	if c == nil {
		c = NewTurkishClassifier()
	}
	return &Sorter{classifier: c}
}

// Sort returns a new, stably sorted copy of rows ordered by col. The input
// slice is left untouched so a cleared sort restores insertion order without
// re-fetching. Rows missing the cell compare equal and keep their relative
// order. Direction SortNone returns a plain copy.
func (s *Sorter) Sort(rows []Record, col Column, dir SortDirection) []Record {
	out := make([]Record, len(rows))
	copy(out, rows)
	if dir == SortNone {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := s.compareRows(out[i], out[j], col)
		if dir == SortDesc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out
}

// SortByState applies the table's sort state against its column set. An
// inactive state or an unknown column key leaves the order natural.
func (s *Sorter) SortByState(rows []Record, cols []Column, state SortState) []Record {
	if !state.Active() {
		out := make([]Record, len(rows))
		copy(out, rows)
		return out
	}
	for _, col := range cols {
		if col.Key == state.ColumnKey {
			return s.Sort(rows, col, state.Direction)
		}
	}
	out := make([]Record, len(rows))
	copy(out, rows)
	return out
}

func (s *Sorter) compareRows(a, b Record, col Column) int {
	av, aok := sortValue(a, col)
	bv, bok := sortValue(b, col)
	if !aok || !bok {
		// Missing cells are ties; stability keeps their original order.
		return 0
	}
	return s.classifier.Compare(CellText(av), CellText(bv))
}

func sortValue(r Record, col Column) (interface{}, bool) {
	if col.SortKey != nil {
		v := col.SortKey(r)
		return v, v != nil
	}
	v, ok := r[col.Key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
