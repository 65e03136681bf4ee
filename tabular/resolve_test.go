package tabular

import (
	"reflect"
	"testing"
)

func salesTable() *Table {
	t := NewTable("Region", "Net_Sales", "Margin", "Share")
	t.AddRow("North", 1200.0, 0.21, "12%")
	t.AddRow("South", 800.0, 0.18, "8%")
	t.AddRow("East", 0.0, nil, "0%")
	t.AddRow("TOTAL", 2000.0, 0.20, "20%")
	return t
}

func salesStore() *DataStore {
	d := NewDataStore()
	d.SetSheet("sales_report", "Summary", salesTable())
	d.SetSheet("sales_report", "Detail", NewTable("SKU").AddRow("A-1"))
	d.SetTable("headcount", NewTable("Dept", "FTE").AddRow("Ops", 12.0))
	return d
}

func TestResolveExact(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{
		Source:  "sales_report",
		Sheet:   "Summary",
		Columns: []string{"Region", "Net_Sales"},
	})
	if got.NumCols() != 2 || got.NumRows() != 4 {
		t.Fatalf("got %dx%d, want 2x4", got.NumCols(), got.NumRows())
	}
	if want := []string{"Region", "Net_Sales"}; !reflect.DeepEqual(got.ColumnNames(), want) {
		t.Fatalf("columns = %v, want %v", got.ColumnNames(), want)
	}
}

func TestResolveColumnOrderFollowsRequest(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{
		Source:  "sales_report",
		Columns: []string{"Margin", "Region"},
	})
	if want := []string{"Margin", "Region"}; !reflect.DeepEqual(got.ColumnNames(), want) {
		t.Fatalf("columns = %v, want request order %v", got.ColumnNames(), want)
	}
}

func TestResolveFuzzyColumnAndSheet(t *testing.T) {
	r := &Resolver{}
	got, mapping := r.ResolveWithMapping(salesStore(), MappingSpec{
		Source:  "Sales Report", // fuzzy source
		Sheet:   "summary",      // fold sheet
		Columns: []string{"net sales", "Regoin"},
	})
	if IsPlaceholder(got) {
		t.Fatal("fuzzy resolution degraded to placeholder")
	}
	if want := []string{"Net_Sales", "Region"}; !reflect.DeepEqual(got.ColumnNames(), want) {
		t.Fatalf("columns = %v, want %v", got.ColumnNames(), want)
	}
	if mapping["Regoin"] != "Region" {
		t.Fatalf("mapping[Regoin] = %q, want Region", mapping["Regoin"])
	}
}

func TestResolveNoColumnsKeepsAll(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{Source: "sales_report"})
	if got.NumCols() != 4 {
		t.Fatalf("got %d columns, want all 4", got.NumCols())
	}
}

func TestResolveZeroMatchedColumnsKeepsAll(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{
		Source:  "sales_report",
		Columns: []string{"Quantity", "Velocity"},
	})
	if got.NumCols() != 4 {
		t.Fatalf("got %d columns, want all 4 after zero matches", got.NumCols())
	}
}

func TestResolveDuplicateMatchDropped(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{
		Source:  "sales_report",
		Columns: []string{"Region", "region "},
	})
	if got.NumCols() != 1 {
		t.Fatalf("got %d columns, want 1 after duplicate drop", got.NumCols())
	}
}

func TestResolveMissingSourceFallsBack(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{Source: "inventory"})
	if IsPlaceholder(got) {
		t.Fatal("default mode should fall back to the first source, not a placeholder")
	}
	// First source is sales_report; first sheet is Summary.
	if _, ok := got.Column("Region"); !ok {
		t.Fatalf("fallback table columns = %v, want Summary sheet", got.ColumnNames())
	}
}

func TestResolveMissingSourceStrict(t *testing.T) {
	r := &Resolver{Strict: true}
	got := r.Resolve(salesStore(), MappingSpec{Source: "inventory"})
	if !IsPlaceholder(got) {
		t.Fatalf("strict mode should produce a placeholder, got columns %v", got.ColumnNames())
	}
	if got.NumRows() != 1 || String(got.Cell(0, 0)) == "" {
		t.Fatal("placeholder must carry a diagnostic message row")
	}
}

func TestResolveMissingSheetPlaceholder(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{Source: "sales_report", Sheet: "Quarterly"})
	if !IsPlaceholder(got) {
		t.Fatalf("missing sheet should produce a placeholder, got %v", got.ColumnNames())
	}
}

func TestResolveEmptyStore(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(NewDataStore(), MappingSpec{Source: "anything"})
	if !IsPlaceholder(got) {
		t.Fatal("empty store should produce a placeholder")
	}
}

func TestResolveFilters(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{
		Source: "sales_report",
		Filters: []Filter{
			{Column: "Net_Sales", Op: OpGreaterEq, Value: 800.0},
			{Column: "Region", Op: OpNotEqual, Value: "TOTAL"},
		},
	})
	if got.NumRows() != 2 {
		t.Fatalf("got %d rows, want 2 (North, South)", got.NumRows())
	}
	if String(got.Cell(0, 0)) != "North" || String(got.Cell(1, 0)) != "South" {
		t.Fatalf("rows = %v / %v", got.Row(0), got.Row(1))
	}
}

func TestResolveFilterNotNull(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{
		Source:  "sales_report",
		Filters: []Filter{{Column: "Margin", Op: OpNotNull}},
	})
	if got.NumRows() != 3 {
		t.Fatalf("got %d rows, want 3 after dropping the nil margin row", got.NumRows())
	}
}

func TestResolveFilterUnknownColumnSkipped(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{
		Source:  "sales_report",
		Filters: []Filter{{Column: "Velocity", Op: OpGreaterEq, Value: 1.0}},
	})
	if got.NumRows() != 4 {
		t.Fatalf("got %d rows, want 4 (unknown filter column is a no-op)", got.NumRows())
	}
}

func TestResolveMaxRows(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{Source: "sales_report", MaxRows: 2})
	if got.NumRows() != 2 {
		t.Fatalf("got %d rows, want 2", got.NumRows())
	}
}

func TestResolveHeaderRow(t *testing.T) {
	raw := NewTable("A", "B")
	raw.AddRow("Region", "Sales") // real headers live in the first data row
	raw.AddRow("North", 10.0)
	raw.AddRow("South", 20.0)
	d := NewDataStore()
	d.SetTable("raw", raw)

	r := &Resolver{}
	got := r.Resolve(d, MappingSpec{Source: "raw", HeaderRow: 1, Columns: []string{"Region"}})
	if want := []string{"Region"}; !reflect.DeepEqual(got.ColumnNames(), want) {
		t.Fatalf("columns = %v, want %v", got.ColumnNames(), want)
	}
	if got.NumRows() != 2 {
		t.Fatalf("got %d rows, want 2", got.NumRows())
	}
}

func TestResolveFlatSourceIgnoresSheet(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(salesStore(), MappingSpec{Source: "headcount", Sheet: "Anything"})
	if IsPlaceholder(got) {
		t.Fatal("a flat source with a sheet request should still resolve")
	}
	if _, ok := got.Column("Dept"); !ok {
		t.Fatalf("columns = %v, want headcount table", got.ColumnNames())
	}
}
