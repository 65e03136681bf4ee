// Package tabular models the in-memory report data deckgen renders:
// column-ordered tables, a two-level data store (source -> sheet ->
// table), and the mapping resolver that slices a table out of the store
// according to a declarative MappingSpec.
package tabular

// Column is a named, ordered list of cell values.
type Column struct {
	Name   string
	Values []Value
}

// Table is an ordered collection of equal-length columns. The zero value
// is an empty table.
type Table struct {
	cols []Column
}

// NewTable creates a table with the given column names and no rows.
func NewTable(names ...string) *Table {
	t := &Table{cols: make([]Column, len(names))}
	for i, n := range names {
		t.cols[i].Name = n
	}
	return t
}

// AddRow appends one row. Missing trailing values are filled with nil;
// extra values are dropped.
func (t *Table) AddRow(vals ...Value) *Table {
	for i := range t.cols {
		var v Value
		if i < len(vals) {
			v = normalize(vals[i])
		}
		t.cols[i].Values = append(t.cols[i].Values, v)
	}
	return t
}

func normalize(v Value) Value {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// ColumnAt returns the column at index i.
func (t *Table) ColumnAt(i int) *Column { return &t.cols[i] }

// Column returns the column with the exact given name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i], true
		}
	}
	return nil, false
}

// Cell returns the value at (row, col). Out-of-range access returns nil.
func (t *Table) Cell(row, col int) Value {
	if col < 0 || col >= len(t.cols) {
		return nil
	}
	if row < 0 || row >= len(t.cols[col].Values) {
		return nil
	}
	return t.cols[col].Values[row]
}

// Row returns a copy of row i across all columns.
func (t *Table) Row(i int) []Value {
	out := make([]Value, len(t.cols))
	for c := range t.cols {
		out[c] = t.Cell(i, c)
	}
	return out
}

// SelectIndices returns a new table containing the given columns, in the
// given order. Column data is shared for reading; capacities are capped
// so appending to the result never writes into this table's backing
// arrays.
func (t *Table) SelectIndices(indices []int) *Table {
	out := &Table{cols: make([]Column, 0, len(indices))}
	for _, i := range indices {
		if i >= 0 && i < len(t.cols) {
			c := t.cols[i]
			out.cols = append(out.cols, Column{Name: c.Name, Values: capValues(c.Values)})
		}
	}
	return out
}

// capValues limits a shared value slice to its own length so a later
// append reallocates instead of overwriting the source table.
func capValues(v []Value) []Value {
	return v[:len(v):len(v)]
}

// FilterRows returns a new table containing only rows where keep returns
// true.
func (t *Table) FilterRows(keep func(row int) bool) *Table {
	out := NewTable(t.ColumnNames()...)
	for r := 0; r < t.NumRows(); r++ {
		if keep(r) {
			out.AddRow(t.Row(r)...)
		}
	}
	return out
}

// Head returns a new table with at most n rows. n <= 0 returns the table
// unchanged.
func (t *Table) Head(n int) *Table {
	if n <= 0 || t.NumRows() <= n {
		return t
	}
	out := &Table{cols: make([]Column, len(t.cols))}
	for i, c := range t.cols {
		out.cols[i] = Column{Name: c.Name, Values: c.Values[:n:n]}
	}
	return out
}

// Rekey treats data row headerRow (0-based) as the header: column names
// become that row's values and the rows above and including it are
// dropped. Out-of-range headerRow leaves the table unchanged.
func (t *Table) Rekey(headerRow int) *Table {
	if headerRow < 0 || headerRow >= t.NumRows() {
		return t
	}
	out := &Table{cols: make([]Column, len(t.cols))}
	for i, c := range t.cols {
		out.cols[i] = Column{
			Name:   String(c.Values[headerRow]),
			Values: capValues(c.Values[headerRow+1:]),
		}
	}
	return out
}

// Snapshot returns a table that shares this table's cell data but owns
// its own column list and slice headers. Appending rows or columns to
// the snapshot, or renaming its columns, leaves this table untouched.
func (t *Table) Snapshot() *Table {
	out := &Table{cols: make([]Column, len(t.cols))}
	for i, c := range t.cols {
		out.cols[i] = Column{Name: c.Name, Values: capValues(c.Values)}
	}
	return out
}

// AppendColumn adds a column. Its values are padded or truncated to the
// current row count.
func (t *Table) AppendColumn(name string, values []Value) *Table {
	n := t.NumRows()
	if len(t.cols) == 0 {
		n = len(values)
	}
	vals := make([]Value, n)
	for i := 0; i < n && i < len(values); i++ {
		vals[i] = normalize(values[i])
	}
	t.cols = append(t.cols, Column{Name: name, Values: vals})
	return t
}

// RenameColumn renames the first column with the exact old name.
func (t *Table) RenameColumn(old, name string) bool {
	for i := range t.cols {
		if t.cols[i].Name == old {
			t.cols[i].Name = name
			return true
		}
	}
	return false
}
