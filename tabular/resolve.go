package tabular

import (
	"fmt"

	"github.com/deckgen/deckgen/diag"
)

// PlaceholderColumn is the column name of diagnostic placeholder tables.
const PlaceholderColumn = "Data"

// Placeholder returns a single-column, single-row table carrying a
// diagnostic message. The resolver hands these out instead of nil so the
// rendering layer always has something to draw.
func Placeholder(msg string) *Table {
	t := NewTable(PlaceholderColumn)
	t.AddRow(msg)
	return t
}

// IsPlaceholder reports whether t has the shape Placeholder produces.
func IsPlaceholder(t *Table) bool {
	return t != nil && t.NumCols() == 1 && t.ColumnNames()[0] == PlaceholderColumn
}

// Resolver slices tables out of a DataStore according to MappingSpecs.
// Resolution never fails: any lookup that cannot be satisfied degrades
// to a fallback or a placeholder table and emits one log line.
type Resolver struct {
	Logger diag.Logger
	// Strict disables the first-available-source fallback.
	Strict bool
}

func (r *Resolver) log() diag.Logger {
	if r.Logger == nil {
		return diag.Nop()
	}
	return r.Logger
}

// Resolve returns the table selected by spec. The result is never nil.
func (r *Resolver) Resolve(store *DataStore, spec MappingSpec) *Table {
	t, _ := r.ResolveWithMapping(store, spec)
	return t
}

// ResolveWithMapping additionally reports which stored column satisfied
// each requested column name. Placeholder results carry a nil mapping.
func (r *Resolver) ResolveWithMapping(store *DataStore, spec MappingSpec) (*Table, ColumnMapping) {
	t := r.resolveSheet(store, spec)
	if t == nil || IsPlaceholder(t) {
		if t == nil {
			t = Placeholder("No data available")
		}
		return t, nil
	}
	if spec.HeaderRow > 0 {
		t = t.Rekey(spec.HeaderRow - 1)
		r.log().Debug("re-keyed table from in-data header row",
			"source", spec.Source, "header_row", spec.HeaderRow)
	}
	t = r.applyFilters(t, spec.Filters)
	t, mapping := r.selectColumns(t, spec)
	if spec.MaxRows > 0 && t.NumRows() > spec.MaxRows {
		t = t.Head(spec.MaxRows)
		r.log().Debug("capped rows", "source", spec.Source, "max_rows", spec.MaxRows)
	}
	return t, mapping
}

// resolveSheet finds the sheet-or-table behind spec.Source/spec.Sheet.
func (r *Resolver) resolveSheet(store *DataStore, spec MappingSpec) *Table {
	if store == nil || store.Len() == 0 {
		r.log().Warn("data store is empty", "source", spec.Source)
		return Placeholder("No data available")
	}
	source := spec.Source
	ref, ok := store.Lookup(source)
	if !ok {
		sources := store.Sources()
		if i, strategy, matched := matchName(source, sources); matched {
			r.log().Info("resolved source by "+strategy+" match",
				"requested", source, "matched", sources[i])
			source = sources[i]
			ref, _ = store.Lookup(source)
		} else if r.Strict {
			r.log().Warn("source not found", "source", spec.Source)
			return Placeholder(fmt.Sprintf("No data available for source %q", spec.Source))
		} else {
			name, first, _ := store.First()
			r.log().Warn("source not found, falling back to first available",
				"requested", spec.Source, "fallback", name)
			source, ref = name, first
		}
	}
	if ref.Table != nil {
		if spec.Sheet != "" {
			r.log().Debug("sheet requested on a flat source, using table as-is",
				"source", source, "sheet", spec.Sheet)
		}
		return ref.Table
	}
	return r.pickSheet(source, ref.Sheets, spec.Sheet)
}

func (r *Resolver) pickSheet(source string, sheets *SheetMap, want string) *Table {
	if sheets == nil || sheets.Len() == 0 {
		r.log().Warn("source has no sheets", "source", source)
		return Placeholder(fmt.Sprintf("No data available for source %q", source))
	}
	if want == "" {
		name, t, _ := sheets.First()
		r.log().Debug("no sheet requested, using first", "source", source, "sheet", name)
		return t
	}
	if t, ok := sheets.Get(want); ok {
		return t
	}
	names := sheets.Names()
	if i, strategy, ok := matchName(want, names); ok {
		r.log().Info("resolved sheet by "+strategy+" match",
			"source", source, "requested", want, "matched", names[i])
		t, _ := sheets.Get(names[i])
		return t
	}
	r.log().Warn("sheet not found", "source", source, "sheet", want)
	return Placeholder(fmt.Sprintf("Sheet %q not found in source %q", want, source))
}

func (r *Resolver) applyFilters(t *Table, filters []Filter) *Table {
	for _, f := range filters {
		names := t.ColumnNames()
		ci, strategy, ok := matchName(f.Column, names)
		if !ok {
			r.log().Warn("filter column not found, skipping filter", "column", f.Column)
			continue
		}
		if strategy != "exact" {
			r.log().Debug("resolved filter column by "+strategy+" match",
				"requested", f.Column, "matched", names[ci])
		}
		col := t.ColumnAt(ci)
		before := t.NumRows()
		t = t.FilterRows(func(row int) bool {
			return filterKeep(col.Values[row], f)
		})
		r.log().Debug("applied filter", "column", names[ci], "op", string(f.Op),
			"rows_before", before, "rows_after", t.NumRows())
	}
	return t
}

func filterKeep(v Value, f Filter) bool {
	switch f.Op {
	case OpNotNull:
		return !IsMissing(v)
	case OpNotEqual:
		if f.Value == nil {
			return !IsMissing(v)
		}
		return !valueEqual(v, f.Value)
	case OpEqual:
		return valueEqual(v, f.Value)
	case OpGreaterEq:
		return compareValues(v, f.Value) >= 0
	case OpLessEq:
		return compareValues(v, f.Value) <= 0
	}
	return true
}

func valueEqual(a, b Value) bool {
	if na, ok := Number(a); ok {
		if nb, ok := Number(b); ok {
			return na == nb
		}
	}
	return String(a) == String(b)
}

// compareValues orders numerically when both sides parse as numbers,
// lexicographically otherwise.
func compareValues(a, b Value) int {
	if na, ok := Number(a); ok {
		if nb, ok := Number(b); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}
	sa, sb := String(a), String(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

// selectColumns projects the table onto the requested columns, in the
// requested order. No request, or nothing matching, keeps every column.
func (r *Resolver) selectColumns(t *Table, spec MappingSpec) (*Table, ColumnMapping) {
	if len(spec.Columns) == 0 {
		return t, identityMapping(t)
	}
	names := t.ColumnNames()
	used := make(map[int]bool)
	var indices []int
	mapping := make(ColumnMapping)
	for _, want := range spec.Columns {
		i, strategy, ok := matchName(want, names)
		if !ok {
			r.log().Warn("requested column not found", "source", spec.Source, "column", want)
			continue
		}
		if used[i] {
			r.log().Warn("requested column resolves to an already selected column, dropping duplicate",
				"requested", want, "matched", names[i])
			continue
		}
		if strategy != "exact" {
			r.log().Info("resolved column by "+strategy+" match",
				"requested", want, "matched", names[i])
		}
		used[i] = true
		indices = append(indices, i)
		mapping[want] = names[i]
	}
	if len(indices) == 0 {
		r.log().Warn("no requested columns matched, keeping all columns",
			"source", spec.Source, "requested", fmt.Sprint(spec.Columns))
		return t, identityMapping(t)
	}
	return t.SelectIndices(indices), mapping
}

func identityMapping(t *Table) ColumnMapping {
	mapping := make(ColumnMapping, t.NumCols())
	for _, n := range t.ColumnNames() {
		mapping[n] = n
	}
	return mapping
}
