package models

// TableWidths is the persisted layout of a single table: the ordered CSS
// width string of every column, applied positionally on restore.
type TableWidths []string

// AllTableLayouts maps table identifiers (e.g. "vmTable") to their saved
// column widths.
type AllTableLayouts map[string]TableWidths
