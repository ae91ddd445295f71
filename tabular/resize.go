package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"rvsalt/logger"
)

// MinColumnWidth is the floor applied while dragging, preventing zero or
// negative width states.
const MinColumnWidth = 30.0

// WidthStore persists ordered column width lists keyed by table identifier.
// The database settings table implements this; tests use an in-memory map.
type WidthStore interface {
	LoadWidths(tableID string) ([]string, error)
	SaveWidths(tableID string, widths []string) error
}

// Resizer tracks the column widths of one table and the in-flight drag, and
// round-trips the full width list through a WidthStore. Widths are applied
// positionally by column index, never by header text.
type Resizer struct {
	tableID string
	store   WidthStore

	widths      []float64 // pixels per column, 0 = auto
	fixedLayout bool

	drag *dragState
}

type dragState struct {
	column     int
	startX     float64
	startWidth float64
}

// NewResizer creates a resizer for a table with columnCount columns, all at
// auto width until a drag or a restore says otherwise.
func NewResizer(tableID string, columnCount int, store WidthStore) *Resizer {
	return &Resizer{
		tableID: tableID,
		store:   store,
		widths:  make([]float64, columnCount),
	}
}

// StartResize captures the column's current rendered width and the pointer
// position at the start of a drag. Out-of-range columns are ignored.
func (r *Resizer) StartResize(column int, currentWidth, pointerX float64) {
	if column < 0 || column >= len(r.widths) {
		return
	}
	if currentWidth < MinColumnWidth {
		currentWidth = MinColumnWidth
	}
	r.drag = &dragState{column: column, startX: pointerX, startWidth: currentWidth}
}

// UpdateResize moves the active drag to pointerX and returns the clamped
// width now assigned to the dragged column. Without an active drag it
// returns 0.
func (r *Resizer) UpdateResize(pointerX float64) float64 {
	if r.drag == nil {
		return 0
	}
	w := r.drag.startWidth + (pointerX - r.drag.startX)
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	r.widths[r.drag.column] = w
	r.fixedLayout = true
	return w
}

// EndResize finishes the drag and persists the full ordered width list for
// the table, overwriting any prior saved state. Always writing the whole
// list avoids read-modify-write races on the store.
func (r *Resizer) EndResize() error {
	r.drag = nil
	if r.store == nil {
		return nil
	}
	if err := r.store.SaveWidths(r.tableID, r.Widths()); err != nil {
		return fmt.Errorf("persisting widths for table '%s': %w", r.tableID, err)
	}
	return nil
}

// Restore loads the persisted width list and applies it positionally. A
// saved list longer than the current column count has its extras ignored; a
// shorter list leaves the remaining columns at auto width. A table with any
// restored width switches to fixed layout so the widths are honored exactly.
func (r *Resizer) Restore() error {
	if r.store == nil {
		return nil
	}
	saved, err := r.store.LoadWidths(r.tableID)
	if err != nil {
		// Persisted-state problems are never surfaced; the table renders
		// with auto widths.
		logger.Warn("Resizer: could not load widths for table '%s': %v", r.tableID, err)
		return nil
	}
	restored := false
	for i, s := range saved {
		if i >= len(r.widths) {
			break
		}
		w, ok := parseWidth(s)
		if !ok {
			continue
		}
		r.widths[i] = w
		restored = true
	}
	if restored {
		r.fixedLayout = true
	}
	return nil
}

// Widths returns the ordered CSS width strings for every column; auto-width
// columns report "auto".
func (r *Resizer) Widths() []string {
	out := make([]string, len(r.widths))
	for i, w := range r.widths {
		if w <= 0 {
			out[i] = "auto"
			continue
		}
		out[i] = strconv.FormatFloat(w, 'f', -1, 64) + "px"
	}
	return out
}

// FixedLayout reports whether the table must render in fixed layout mode.
func (r *Resizer) FixedLayout() bool {
	return r.fixedLayout
}

func parseWidth(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" || s == "auto" {
		return 0, false
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || w <= 0 {
		return 0, false
	}
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	return w, true
}
