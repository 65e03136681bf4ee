package rules

import (
	"testing"

	"github.com/deckgen/deckgen/tabular"
)

func fixture() *tabular.Table {
	t := tabular.NewTable("Region", "Sales", "Cost")
	t.AddRow("North", 100.0, 60.0)
	t.AddRow("South", 200.0, 120.0)
	return t
}

func TestApplySum(t *testing.T) {
	got := Apply(fixture(), []Transform{{Kind: "sum", Label: "Company Total"}}, nil)
	if got.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", got.NumRows())
	}
	if tabular.String(got.Cell(2, 0)) != "Company Total" {
		t.Fatalf("label = %q", tabular.String(got.Cell(2, 0)))
	}
	if f, _ := tabular.Number(got.Cell(2, 1)); f != 300 {
		t.Fatalf("sum = %v, want 300", f)
	}
}

func TestApplyRatioAndDelta(t *testing.T) {
	got := Apply(fixture(), []Transform{
		{Kind: "ratio", A: "Cost", B: "Sales", As: "Cost Ratio"},
		{Kind: "delta", A: "Sales", B: "Cost", As: "Profit"},
	}, nil)
	if got.NumCols() != 5 {
		t.Fatalf("cols = %d, want 5", got.NumCols())
	}
	if f, _ := tabular.Number(got.Cell(0, 3)); f != 0.6 {
		t.Fatalf("ratio = %v, want 0.6", f)
	}
	if f, _ := tabular.Number(got.Cell(1, 4)); f != 80 {
		t.Fatalf("delta = %v, want 80", f)
	}
}

func TestApplyRatioDivisionByZero(t *testing.T) {
	tab := tabular.NewTable("A", "B").AddRow(10.0, 0.0)
	got := Apply(tab, []Transform{{Kind: "ratio", A: "A", B: "B", As: "R"}}, nil)
	if !tabular.IsMissing(got.Cell(0, 2)) {
		t.Fatalf("ratio over zero must be missing, got %v", got.Cell(0, 2))
	}
}

func TestApplyRenameAndUnknownKind(t *testing.T) {
	got := Apply(fixture(), []Transform{
		{Kind: "rename", A: "Sales", As: "Net Sales"},
		{Kind: "explode"}, // skipped
	}, nil)
	if _, ok := got.Column("Net Sales"); !ok {
		t.Fatalf("rename lost: %v", got.ColumnNames())
	}
}

func TestApplyDropEmpty(t *testing.T) {
	tab := tabular.NewTable("A", "B")
	tab.AddRow("x", 1.0)
	tab.AddRow(nil, "")
	got := Apply(tab, []Transform{{Kind: "drop_empty"}}, nil)
	if got.NumRows() != 1 {
		t.Fatalf("rows = %d, want 1", got.NumRows())
	}
}

func TestApplyLeavesStoreIntact(t *testing.T) {
	stored := tabular.NewTable("Region", "Total")
	stored.AddRow("East", 100.0)
	stored.AddRow("West", 200.0)
	stored.AddRow("South", 300.0)
	stored.AddRow("North", 400.0)
	store := tabular.NewDataStore()
	store.SetTable("sales", stored)

	r := &tabular.Resolver{}
	capped := r.Resolve(store, tabular.MappingSpec{Source: "sales", MaxRows: 2})
	Apply(capped, []Transform{{Kind: "sum"}}, nil)

	again := r.Resolve(store, tabular.MappingSpec{Source: "sales"})
	if again.NumRows() != 4 {
		t.Fatalf("stored rows = %d after transform, want 4", again.NumRows())
	}
	if got := tabular.String(again.Cell(2, 0)); got != "South" {
		t.Fatalf("stored row 2 = %q after transform on a capped view, want South", got)
	}

	// Uncapped resolves hand back the stored table directly; transforms
	// must still not grow or reshape it.
	full := r.Resolve(store, tabular.MappingSpec{Source: "sales"})
	Apply(full, []Transform{
		{Kind: "delta", A: "Total", B: "Total", As: "Zero"},
		{Kind: "sum"},
	}, nil)
	if stored.NumRows() != 4 || stored.NumCols() != 2 {
		t.Fatalf("stored table reshaped to %dx%d, want 4x2",
			stored.NumRows(), stored.NumCols())
	}
}

func TestApplyOrder(t *testing.T) {
	// The sum row must include the derived column when ratio runs first.
	got := Apply(fixture(), []Transform{
		{Kind: "delta", A: "Sales", B: "Cost", As: "Profit"},
		{Kind: "sum"},
	}, nil)
	if f, _ := tabular.Number(got.Cell(2, 3)); f != 120 {
		t.Fatalf("summed derived column = %v, want 120", f)
	}
}
