// Package rules applies ordered declarative transforms to resolved
// tables before they are rendered: appended total rows, derived ratio
// and delta columns, renames and empty-row cleanup.
package rules

import (
	"github.com/deckgen/deckgen/diag"
	"github.com/deckgen/deckgen/tabular"
)

// Transform is one declarative table transform.
//
// Kinds:
//
//	sum        append a total row; Label names it (default "Total"),
//	           Columns limits which columns are summed (default: all numeric)
//	ratio      new column As = A / B
//	delta      new column As = A - B
//	rename     rename column A to As
//	drop_empty drop rows whose cells are all missing
type Transform struct {
	Kind    string   `yaml:"kind"`
	A       string   `yaml:"a"`
	B       string   `yaml:"b"`
	As      string   `yaml:"as"`
	Label   string   `yaml:"label"`
	Columns []string `yaml:"columns"`
}

// Apply runs the transforms in order. Unknown kinds and unresolvable
// column references are skipped with a warning; Apply never fails. The
// input table is never modified: transforms work on a snapshot, so a
// table resolved straight out of a DataStore stays intact.
func Apply(t *tabular.Table, transforms []Transform, logger diag.Logger) *tabular.Table {
	if logger == nil {
		logger = diag.Nop()
	}
	if len(transforms) == 0 {
		return t
	}
	t = t.Snapshot()
	for _, tr := range transforms {
		switch tr.Kind {
		case "sum":
			t = applySum(t, tr)
		case "ratio":
			t = applyBinary(t, tr, logger, func(a, b float64) (float64, bool) {
				if b == 0 {
					return 0, false
				}
				return a / b, true
			})
		case "delta":
			t = applyBinary(t, tr, logger, func(a, b float64) (float64, bool) {
				return a - b, true
			})
		case "rename":
			if tr.A == "" || tr.As == "" || !t.RenameColumn(tr.A, tr.As) {
				logger.Warn("rename skipped", "column", tr.A)
			}
		case "drop_empty":
			t = t.FilterRows(func(row int) bool {
				for c := 0; c < t.NumCols(); c++ {
					if !tabular.IsMissing(t.Cell(row, c)) {
						return true
					}
				}
				return false
			})
		default:
			logger.Warn("unknown transform kind, skipping", "kind", tr.Kind)
		}
	}
	return t
}

func applySum(t *tabular.Table, tr Transform) *tabular.Table {
	if t.NumCols() == 0 {
		return t
	}
	label := tr.Label
	if label == "" {
		label = "Total"
	}
	wanted := make(map[string]bool, len(tr.Columns))
	for _, c := range tr.Columns {
		wanted[c] = true
	}
	row := make([]tabular.Value, t.NumCols())
	for c := 0; c < t.NumCols(); c++ {
		col := t.ColumnAt(c)
		if len(tr.Columns) > 0 && !wanted[col.Name] {
			continue
		}
		sum, any := 0.0, false
		for _, v := range col.Values {
			if f, ok := tabular.Number(v); ok {
				sum += f
				any = true
			}
		}
		if any {
			row[c] = sum
		}
	}
	row[0] = label
	return t.AddRow(row...)
}

func applyBinary(t *tabular.Table, tr Transform, logger diag.Logger,
	op func(a, b float64) (float64, bool)) *tabular.Table {
	as := tr.As
	if as == "" {
		logger.Warn("derived column has no name, skipping", "kind", tr.Kind)
		return t
	}
	ca, aok := t.Column(tr.A)
	cb, bok := t.Column(tr.B)
	if !aok || !bok {
		logger.Warn("derived column inputs not found, skipping",
			"kind", tr.Kind, "a", tr.A, "b", tr.B)
		return t
	}
	vals := make([]tabular.Value, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		fa, okA := tabular.Number(ca.Values[i])
		fb, okB := tabular.Number(cb.Values[i])
		if okA && okB {
			if out, ok := op(fa, fb); ok {
				vals[i] = out
			}
		}
	}
	return t.AppendColumn(as, vals)
}
