package tabular

import (
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Classifier decides, per pair of cell values, whether a comparison should be
// numeric or lexical. The decision is made per pair rather than per column so
// that columns mixing real values with "-" placeholders still sort
// numerically for the rows that have values.
//
// Lexical fallback uses locale collation; the dashboard UI is Turkish, so the
// default classifier collates with Turkish rules (dotted/dotless I, case and
// diacritic ordering).
type Classifier struct {
	col *collate.Collator
}

// NewClassifier returns a classifier collating with the given locale.
func NewClassifier(tag language.Tag) *Classifier {
	return &Classifier{col: collate.New(tag)}
}

// NewTurkishClassifier returns the classifier used by the dashboard tables.
func NewTurkishClassifier() *Classifier {
	return NewClassifier(language.Turkish)
}

// parseNumeric interprets cell text written with Turkish separators
// ("1.234,5" means 1234.5). It strips grouping dots, converts the decimal
// comma, then drops everything except digits, '.' and '-'. The text counts
// as numeric only when a digit survives and the remainder parses.
func parseNumeric(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(s, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	var b strings.Builder
	hasDigit := false
	for _, r := range cleaned {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
			b.WriteRune(r)
		case r == '.' || r == '-':
			b.WriteRune(r)
		}
	}
	if !hasDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Compare orders two cell texts. Both numeric: numeric order. Exactly one
// numeric: the numeric value orders first, keeping placeholder rows at the
// high end of an ascending sort. Neither: collated lexical order.
func (c *Classifier) Compare(a, b string) int {
	fa, aNum := parseNumeric(a)
	fb, bNum := parseNumeric(b)

	switch {
	case aNum && bNum:
		if fa < fb {
			return -1
		}
		if fa > fb {
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return c.col.CompareString(a, b)
}
