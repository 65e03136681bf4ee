package tabular

// FilterOp is a row filter comparison operator.
type FilterOp string

const (
	OpEqual     FilterOp = "=="
	OpNotEqual  FilterOp = "!="
	OpGreaterEq FilterOp = ">="
	OpLessEq    FilterOp = "<="
	OpNotNull   FilterOp = "notna"
)

// Filter keeps rows whose value in Column satisfies Op against Value.
// A filter naming an unknown column is skipped. OpNotEqual with a nil
// Value behaves like OpNotNull.
type Filter struct {
	Column string
	Op     FilterOp
	Value  Value
}

// MappingSpec declares how to slice a table out of a DataStore: which
// source and sheet to read, which columns to keep (in which order), row
// filters, an optional row cap and an optional in-data header row.
type MappingSpec struct {
	Source    string
	Sheet     string
	Columns   []string
	Filters   []Filter
	MaxRows   int
	HeaderRow int // 0-based workbook row holding the real headers; 0 means already keyed
}

// ColumnMapping records which stored column satisfied each requested
// column name. Keys are requested names, values are matched names.
type ColumnMapping map[string]string
