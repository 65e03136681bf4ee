package deck

import (
	"strings"
	"testing"

	"github.com/deckgen/deckgen/layout"
	"github.com/deckgen/deckgen/pptx"
	"github.com/deckgen/deckgen/style"
	"github.com/deckgen/deckgen/tabular"
)

func newTestBuilder(t *testing.T) (*Builder, *pptx.Slide) {
	t.Helper()
	doc, err := pptx.New()
	if err != nil {
		t.Fatalf("pptx.New: %v", err)
	}
	slide, err := doc.AddSlide(nil)
	if err != nil {
		t.Fatalf("AddSlide: %v", err)
	}
	return &Builder{Doc: doc}, slide
}

func findTable(s *pptx.Slide) *pptx.TableShape {
	for _, sh := range s.Shapes() {
		if t, ok := sh.(*pptx.TableShape); ok {
			return t
		}
	}
	return nil
}

func regionTable() *tabular.Table {
	t := tabular.NewTable("Region", "Net_Sales", "Margin")
	t.AddRow("North", 1200.0, 0.21)
	t.AddRow("South", 800.0, 0.18)
	t.AddRow("TOTAL", 2000.0, 0.20)
	return t
}

func TestBuildTableShape(t *testing.T) {
	b, slide := newTestBuilder(t)
	box := layout.Rect{Left: 0.5, Top: 1.5, Width: 9, Height: 5}
	b.BuildTable(slide, regionTable(), box, &TableFormatting{
		NumberFormats: map[string]string{
			"Net_Sales": "currency",
			"Margin":    "percentage",
		},
	})
	shape := findTable(slide)
	if shape == nil {
		t.Fatal("no table shape added")
	}
	if len(shape.Rows) != 4 || !shape.FirstRowHeader {
		t.Fatalf("rows = %d, header = %v", len(shape.Rows), shape.FirstRowHeader)
	}
	if got := shape.Rows[0][0].Paragraph.Text(); got != "Region" {
		t.Fatalf("header cell = %q", got)
	}
	if got := shape.Rows[1][1].Paragraph.Text(); got != "$1,200" {
		t.Fatalf("currency cell = %q", got)
	}
	if got := shape.Rows[1][2].Paragraph.Text(); got != "21.0%" {
		t.Fatalf("percentage cell = %q", got)
	}
	// The total row keeps the brand fill and bold text.
	totalCell := shape.Rows[3][0]
	if totalCell.FillHex == "" || !totalCell.Paragraph.Runs[0].Bold {
		t.Fatalf("total row unstyled: %+v", totalCell)
	}
	if regular := shape.Rows[1][0]; regular.FillHex != "" {
		t.Fatalf("regular row should have no fill, got %q", regular.FillHex)
	}
}

func TestBuildTableEmptyRows(t *testing.T) {
	b, slide := newTestBuilder(t)
	b.BuildTable(slide, tabular.NewTable("Region", "Sales"),
		layout.Rect{Width: 9, Height: 5}, nil)
	shape := findTable(slide)
	if shape == nil {
		t.Fatal("no table shape added")
	}
	if len(shape.Rows) != 2 {
		t.Fatalf("rows = %d, want header plus placeholder", len(shape.Rows))
	}
	if got := shape.Rows[1][0].Paragraph.Text(); got != "No data available" {
		t.Fatalf("placeholder cell = %q", got)
	}
}

func TestBuildTableNilTable(t *testing.T) {
	b, slide := newTestBuilder(t)
	b.BuildTable(slide, nil, layout.Rect{Width: 9, Height: 5}, nil)
	shape := findTable(slide)
	if shape == nil {
		t.Fatal("nil table must still produce a placeholder table shape")
	}
	if got := shape.Rows[1][0].Paragraph.Text(); got != "No data available" {
		t.Fatalf("placeholder cell = %q", got)
	}
}

func TestBuildTableConditionalColors(t *testing.T) {
	b, slide := newTestBuilder(t)
	b.BuildTable(slide, regionTable(), layout.Rect{Width: 9, Height: 5}, &TableFormatting{
		ConditionalColors: []ConditionalColor{
			{Column: "Margin", Op: "<", Threshold: 0.2, Color: "#CC0000"},
		},
	})
	shape := findTable(slide)
	if got := shape.Rows[2][2].Paragraph.Runs[0].ColorHex; got != "CC0000" {
		t.Fatalf("low margin cell color = %q, want CC0000", got)
	}
	if got := shape.Rows[1][2].Paragraph.Runs[0].ColorHex; got == "CC0000" {
		t.Fatal("high margin cell should not be recolored")
	}
}

func TestSetTitleUsesPlaceholder(t *testing.T) {
	doc, _ := pptx.New()
	slide, _ := doc.AddSlide(doc.LayoutByName("Title and Content"))
	b := &Builder{Doc: doc}
	before := len(slide.Shapes())
	b.SetTitle(slide, "Regional Sales", style.Style{})
	if len(slide.Shapes()) != before {
		t.Fatal("title should reuse the cloned placeholder, not add a shape")
	}
	if !strings.Contains(slide.Text(), "Regional Sales") {
		t.Fatalf("title text missing: %q", slide.Text())
	}
}

func TestBuildChartMissingColumn(t *testing.T) {
	b, slide := newTestBuilder(t)
	err := b.BuildChart(slide, regionTable(), &ChartConfig{
		XColumn:  "Region",
		YColumns: []string{"Velocity"},
	}, layout.Rect{Width: 8, Height: 5})
	if err == nil {
		t.Fatal("missing y column must fail loudly")
	}
}

func TestBuildChartFuzzyColumns(t *testing.T) {
	b, slide := newTestBuilder(t)
	err := b.BuildChart(slide, regionTable(), &ChartConfig{
		Type:     "bar",
		XColumn:  "region",
		YColumns: []string{"net sales"},
	}, layout.Rect{Width: 8, Height: 5})
	if err != nil {
		t.Fatalf("fuzzy chart columns should resolve: %v", err)
	}
	found := false
	for _, sh := range slide.Shapes() {
		if _, ok := sh.(*pptx.ChartRef); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("chart shape missing")
	}
}
