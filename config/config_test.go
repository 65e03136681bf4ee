package config

import (
	"os"
	"path/filepath"
	"testing"
)

const slidesYAML = `
defaults:
  layout_name: Title and Content
  title_formatting:
    font_size: 24
    bold: true
  table_formatting:
    number_formats:
      Net_Sales: currency
slides:
  - slide_number: 1
    slide_type: section
    title: Executive Summary
  - slide_number: 2
    title: Regional Detail
    layout_name: Blank
    table_mapping:
      data_source: sales_report
      sheet: Summary
      columns: [Region, Net_Sales]
      filters:
        - column: Region
          op: "!="
          value: TOTAL
      max_rows: 10
  - slide_number: 3
    title: Trend
    chart:
      enabled: true
      type: line
      x_column: Month
      y_columns: [Net_Sales]
`

func writeYAML(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSlides(t *testing.T) {
	pages, err := LoadSlides(writeYAML(t, "slides.yaml", slidesYAML))
	if err != nil {
		t.Fatalf("LoadSlides: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("pages = %d", len(pages))
	}
	if pages[0].Type != "section" || pages[0].Title != "Executive Summary" {
		t.Fatalf("page 1 = %+v", pages[0])
	}
	m := pages[1].TableMapping
	if m == nil || m.Source != "sales_report" || len(m.Columns) != 2 || m.MaxRows != 10 {
		t.Fatalf("table mapping = %+v", m)
	}
	if len(m.Filters) != 1 || m.Filters[0].Op != "!=" {
		t.Fatalf("filters = %+v", m.Filters)
	}
	ch := pages[2].Chart
	if ch == nil || !ch.Enabled || ch.Type != "line" || ch.YColumns[0] != "Net_Sales" {
		t.Fatalf("chart = %+v", ch)
	}
}

func TestLoadSlidesDefaults(t *testing.T) {
	pages, err := LoadSlides(writeYAML(t, "slides.yaml", slidesYAML))
	if err != nil {
		t.Fatalf("LoadSlides: %v", err)
	}
	if pages[0].Layout != "Title and Content" {
		t.Fatalf("layout default not applied: %q", pages[0].Layout)
	}
	if pages[1].Layout != "Blank" {
		t.Fatalf("explicit layout overridden: %q", pages[1].Layout)
	}
	if pages[0].TitleFormatting["font_size"] == nil {
		t.Fatal("title formatting default not applied")
	}
	tf := pages[1].TableMapping.Formatting
	if tf == nil || tf.NumberFormats["Net_Sales"] != "currency" {
		t.Fatalf("table formatting default = %+v", tf)
	}
}

func TestLoadSlidesDefaultsAreCopies(t *testing.T) {
	path := writeYAML(t, "slides.yaml", `
defaults:
  title_formatting:
    bold: true
slides:
  - slide_number: 1
    title: A
  - slide_number: 2
    title: B
`)
	pages, err := LoadSlides(path)
	if err != nil {
		t.Fatalf("LoadSlides: %v", err)
	}
	pages[0].TitleFormatting["bold"] = false
	if got := pages[1].TitleFormatting["bold"]; got != true {
		t.Fatalf("defaults aliased between slides: %v", got)
	}
}

func TestLoadSlidesNumbersDefaultToOrder(t *testing.T) {
	pages, err := LoadSlides(writeYAML(t, "slides.yaml", `
slides:
  - title: First
  - title: Second
`))
	if err != nil {
		t.Fatalf("LoadSlides: %v", err)
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Fatalf("numbers = %d, %d", pages[0].Number, pages[1].Number)
	}
}

func TestLoadSlidesEmptyFails(t *testing.T) {
	if _, err := LoadSlides(writeYAML(t, "slides.yaml", "slides: []\n")); err == nil {
		t.Fatal("empty slide list must error")
	}
}

func TestLoadFormatting(t *testing.T) {
	path := writeYAML(t, "formatting.yaml", `
font_name: Segoe UI
brand_color: "004080"
chart_colors: ["004080", "6699CC"]
table:
  alternate_row_color: "F2F2F2"
`)
	f, err := LoadFormatting(path)
	if err != nil {
		t.Fatalf("LoadFormatting: %v", err)
	}
	if f.FontName != "Segoe UI" || f.BrandColor != "004080" {
		t.Fatalf("formatting = %+v", f)
	}
	if f.Table == nil || f.Table.AlternateRowColor != "F2F2F2" {
		t.Fatalf("table defaults = %+v", f.Table)
	}
	if len(f.ChartColor) != 2 {
		t.Fatalf("chart colors = %v", f.ChartColor)
	}
}

func TestLoadFormattingMissingFileIsZero(t *testing.T) {
	f, err := LoadFormatting(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing formatting file must not error: %v", err)
	}
	if f.FontName != "" {
		t.Fatalf("zero value expected, got %+v", f)
	}
}
