package layout

import (
	"strings"

	"github.com/deckgen/deckgen/tabular"
)

// RowClass labels a data row for styling purposes.
type RowClass int

const (
	RowRegular RowClass = iota
	RowSubtotal
	RowTotal
)

func (c RowClass) String() string {
	switch c {
	case RowSubtotal:
		return "subtotal"
	case RowTotal:
		return "total"
	}
	return "regular"
}

// Labels that mark a grand-total row when found in the first column.
// Matched as whole words so "Summary" or "Subtotal" never counts.
var totalKeywords = []string{"TOTAL", "SUM"}

// Leading markers that distinguish a real aggregate from a line item
// that merely mentions a total.
var aggregatePrefixes = []string{"TOTAL", "GRAND", "SUM", "ALL"}

// ClassifyRows labels each row of t. A row is a total when its first
// column contains a total keyword and either starts with an aggregate
// marker or is the last row. A row is a subtotal when its second column
// is empty while a later column still carries a value. Classification is
// a pure function of the table contents.
func ClassifyRows(t *tabular.Table) []RowClass {
	n := t.NumRows()
	out := make([]RowClass, n)
	for r := 0; r < n; r++ {
		out[r] = classifyRow(t, r, r == n-1)
	}
	return out
}

func classifyRow(t *tabular.Table, row int, last bool) RowClass {
	label := strings.ToUpper(strings.TrimSpace(tabular.String(t.Cell(row, 0))))
	if containsAnyWord(label, totalKeywords) && (hasAggregatePrefix(label) || last) {
		return RowTotal
	}
	if t.NumCols() > 2 && tabular.IsMissing(t.Cell(row, 1)) {
		for c := 2; c < t.NumCols(); c++ {
			if !tabular.IsMissing(t.Cell(row, c)) {
				return RowSubtotal
			}
		}
	}
	return RowRegular
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if containsWord(s, w) {
			return true
		}
	}
	return false
}

// containsWord reports whether w appears in s bounded by non-word
// characters (or the string ends) on both sides.
func containsWord(s, w string) bool {
	for off := 0; off <= len(s)-len(w); {
		i := strings.Index(s[off:], w)
		if i < 0 {
			return false
		}
		i += off
		startOK := i == 0 || !isWordByte(s[i-1])
		endOK := i+len(w) == len(s) || !isWordByte(s[i+len(w)])
		if startOK && endOK {
			return true
		}
		off = i + 1
	}
	return false
}

func hasAggregatePrefix(s string) bool {
	for _, p := range aggregatePrefixes {
		if strings.HasPrefix(s, p) && (len(s) == len(p) || !isWordByte(s[len(p)])) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
