package tabular

// TableRef is a tagged reference to either a flat table or a sheet map.
// Exactly one field is non-nil.
type TableRef struct {
	Table  *Table
	Sheets *SheetMap
}

// IsZero reports whether the reference points at nothing.
func (r TableRef) IsZero() bool { return r.Table == nil && r.Sheets == nil }

// SheetMap is an insertion-ordered collection of named sheets.
type SheetMap struct {
	names []string
	m     map[string]*Table
}

// NewSheetMap creates an empty sheet map.
func NewSheetMap() *SheetMap {
	return &SheetMap{m: make(map[string]*Table)}
}

// Set adds or replaces a sheet. New names keep insertion order.
func (s *SheetMap) Set(name string, t *Table) {
	if _, ok := s.m[name]; !ok {
		s.names = append(s.names, name)
	}
	s.m[name] = t
}

// Get returns the sheet with the exact given name.
func (s *SheetMap) Get(name string) (*Table, bool) {
	t, ok := s.m[name]
	return t, ok
}

// Names returns sheet names in insertion order.
func (s *SheetMap) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of sheets.
func (s *SheetMap) Len() int { return len(s.names) }

// First returns the first inserted sheet.
func (s *SheetMap) First() (string, *Table, bool) {
	if len(s.names) == 0 {
		return "", nil, false
	}
	return s.names[0], s.m[s.names[0]], true
}

// DataStore maps source names to tables or sheet maps. Source order is
// insertion order, which makes every fallback that picks "the first
// source" deterministic.
type DataStore struct {
	names []string
	refs  map[string]TableRef
}

// NewDataStore creates an empty store.
func NewDataStore() *DataStore {
	return &DataStore{refs: make(map[string]TableRef)}
}

// SetTable adds or replaces a flat-table source.
func (d *DataStore) SetTable(source string, t *Table) {
	d.set(source, TableRef{Table: t})
}

// SetSheets adds or replaces a multi-sheet source.
func (d *DataStore) SetSheets(source string, s *SheetMap) {
	d.set(source, TableRef{Sheets: s})
}

// SetSheet adds one sheet under a source, creating the sheet map if the
// source is new. Setting a sheet on a flat-table source converts it.
func (d *DataStore) SetSheet(source, sheet string, t *Table) {
	ref, ok := d.refs[source]
	if !ok || ref.Sheets == nil {
		ref = TableRef{Sheets: NewSheetMap()}
	}
	ref.Sheets.Set(sheet, t)
	d.set(source, ref)
}

func (d *DataStore) set(source string, ref TableRef) {
	if _, ok := d.refs[source]; !ok {
		d.names = append(d.names, source)
	}
	d.refs[source] = ref
}

// Lookup returns the reference stored under the exact source name.
func (d *DataStore) Lookup(source string) (TableRef, bool) {
	ref, ok := d.refs[source]
	return ref, ok
}

// Sources returns source names in insertion order.
func (d *DataStore) Sources() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Len returns the number of sources.
func (d *DataStore) Len() int { return len(d.names) }

// First returns the first inserted source.
func (d *DataStore) First() (string, TableRef, bool) {
	if len(d.names) == 0 {
		return "", TableRef{}, false
	}
	return d.names[0], d.refs[d.names[0]], true
}
