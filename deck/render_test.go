package deck

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/deckgen/deckgen/pptx"
	"github.com/deckgen/deckgen/tabular"
)

func reportStore() *tabular.DataStore {
	sales := tabular.NewTable("Region", "Net_Sales", "Margin")
	sales.AddRow("North", 1200.0, 0.21)
	sales.AddRow("South", 800.0, 0.18)
	sales.AddRow("TOTAL", 2000.0, 0.20)
	store := tabular.NewDataStore()
	store.SetSheet("sales_report", "Summary", sales)
	return store
}

func newEngine(t *testing.T) (*Engine, *pptx.Document) {
	t.Helper()
	doc, err := pptx.New()
	if err != nil {
		t.Fatal(err)
	}
	return &Engine{
		Builder:  &Builder{Doc: doc},
		Resolver: &tabular.Resolver{},
	}, doc
}

func TestGeneratePageTable(t *testing.T) {
	e, doc := newEngine(t)
	err := e.GeneratePage(doc, reportStore(), PageConfig{
		Number: 1,
		Title:  "Regional Performance",
		TableMapping: &TableMapping{
			Source:  "Sales Report", // fuzzy source name
			Columns: []string{"Region", "net sales"},
		},
	})
	if err != nil {
		t.Fatalf("GeneratePage: %v", err)
	}
	slide := doc.Slides()[0]
	if !strings.Contains(slide.Text(), "Regional Performance") {
		t.Fatalf("title missing: %q", slide.Text())
	}
	shape := findTable(slide)
	if shape == nil {
		t.Fatal("table missing")
	}
	if got := shape.Rows[0][1].Paragraph.Text(); got != "Net_Sales" {
		t.Fatalf("fuzzy column lost: header = %q", got)
	}
}

func TestGeneratePageChartFailureDegrades(t *testing.T) {
	e, doc := newEngine(t)
	err := e.GeneratePage(doc, reportStore(), PageConfig{
		Number: 2,
		Title:  "Trend",
		TableMapping: &TableMapping{
			Source: "sales_report",
		},
		Chart: &ChartConfig{
			Enabled:  true,
			XColumn:  "Region",
			YColumns: []string{"Velocity"}, // not a real column
		},
	})
	if err != nil {
		t.Fatalf("chart failure must not abort the run: %v", err)
	}
	slide := doc.Slides()[0]
	if findTable(slide) != nil {
		t.Fatal("chart page must not fall back to a table")
	}
	for _, sh := range slide.Shapes() {
		if _, ok := sh.(*pptx.ChartRef); ok {
			t.Fatal("broken chart should not leave a chart shape")
		}
	}
	if !strings.Contains(slide.Text(), "Content unavailable") {
		t.Fatalf("missing unavailable note: %q", slide.Text())
	}
}

func TestGeneratePageChartSuccess(t *testing.T) {
	e, doc := newEngine(t)
	err := e.GeneratePage(doc, reportStore(), PageConfig{
		Number: 2,
		Chart: &ChartConfig{
			Enabled:  true,
			Source:   "sales_report",
			Type:     "line",
			XColumn:  "Region",
			YColumns: []string{"Net_Sales", "Margin"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	slide := doc.Slides()[0]
	hasChart := false
	for _, sh := range slide.Shapes() {
		if _, ok := sh.(*pptx.ChartRef); ok {
			hasChart = true
		}
	}
	if !hasChart {
		t.Fatal("chart shape missing")
	}
	if findTable(slide) != nil {
		t.Fatal("chart pages render the chart only")
	}
}

func TestGeneratePageBullets(t *testing.T) {
	e, doc := newEngine(t)
	err := e.GeneratePage(doc, reportStore(), PageConfig{
		Number: 3,
		Type:   "bullet_list",
		ItemsSource: &ListSource{
			Source: "sales_report",
			Column: "Region",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	text := doc.Slides()[0].Text()
	for _, want := range []string{"North", "South"} {
		if !strings.Contains(text, want) {
			t.Fatalf("bullet %q missing from %q", want, text)
		}
	}
}

func TestTextFromDataAggregates(t *testing.T) {
	e, _ := newEngine(t)
	store := reportStore()

	got, ok := e.textFromData(store, &TextSource{
		Source: "sales_report", Column: "Net_Sales",
		Aggregate: "sum", Format: "currency", Prefix: "Sales: ",
	})
	if !ok || got != "Sales: $4,000" {
		t.Fatalf("sum = %q (%v)", got, ok)
	}
	got, ok = e.textFromData(store, &TextSource{
		Source: "sales_report", Column: "Region",
	})
	if !ok || got != "North" {
		t.Fatalf("first = %q (%v)", got, ok)
	}
	if _, ok := e.textFromData(store, &TextSource{Source: "sales_report", Column: "Margin", Aggregate: "mean"}); !ok {
		t.Fatal("mean over numeric column must resolve")
	}
}

func TestAssembleFreshDeck(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "deck.pptx")
	asm := NewAssembler(AssemblerConfig{})
	err := asm.Generate(Job{
		Store: reportStore(),
		Pages: []PageConfig{
			{Number: 2, Title: "Details", TableMapping: &TableMapping{Source: "sales_report"}},
			{Number: 1, Type: "section", Title: "Overview"},
		},
		Output: out,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	doc, err := pptx.Open(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if doc.SlideCount() != 2 {
		t.Fatalf("slides = %d, want 2", doc.SlideCount())
	}
	// List order wins over slide numbers: the deck renders pages in the
	// order they were configured.
	if !strings.Contains(doc.Slides()[0].Text(), "Details") {
		t.Fatalf("first slide = %q, want the first configured page", doc.Slides()[0].Text())
	}
	if !strings.Contains(doc.Slides()[1].Text(), "Overview") {
		t.Fatalf("second slide = %q", doc.Slides()[1].Text())
	}
}

func buildTemplate(t *testing.T, path string) {
	t.Helper()
	doc, err := pptx.New()
	if err != nil {
		t.Fatal(err)
	}
	addSlideWithText := func(text string) {
		s, err := doc.AddSlide(doc.LayoutByName("Title and Content"))
		if err != nil {
			t.Fatal(err)
		}
		s.FindTextBox(func(string) bool { return true }).SetText(text)
	}
	addSlideWithText("AIL Business Review")
	addSlideWithText("Old Content 1")
	addSlideWithText("Old Content 2")
	addSlideWithText("Old Content 3")
	addSlideWithText("Thank You")
	if err := doc.SaveFile(path); err != nil {
		t.Fatal(err)
	}
}

func TestAssembleTemplateCoverAndCloser(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "template.pptx")
	buildTemplate(t, template)
	out := filepath.Join(dir, "deck.pptx")

	asm := NewAssembler(AssemblerConfig{})
	err := asm.Generate(Job{
		Store: reportStore(),
		Pages: []PageConfig{
			{Number: 1, Title: "Overview", Type: "section"},
			{Number: 2, Title: "Details", TableMapping: &TableMapping{Source: "sales_report"}},
		},
		Formatting: Formatting{},
		Template:   template,
		Output:     out,
		Entity:     "Northwind",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	doc, err := pptx.Open(out)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if doc.SlideCount() != 4 {
		t.Fatalf("slides = %d, want cover + 2 pages + closer", doc.SlideCount())
	}
	if got := doc.Slides()[0].Text(); !strings.Contains(got, "Northwind Business Review") {
		t.Fatalf("cover = %q, want entity substituted", got)
	}
	if got := doc.Slides()[3].Text(); !strings.Contains(got, "Thank You") {
		t.Fatalf("closer = %q", got)
	}
	all := ""
	for _, s := range doc.Slides() {
		all += s.Text() + "\n"
	}
	if strings.Contains(all, "Old Content") {
		t.Fatal("template middle slides must be dropped")
	}
}

func TestAssembleMissingTemplateFails(t *testing.T) {
	asm := NewAssembler(AssemblerConfig{})
	err := asm.Generate(Job{
		Store:    tabular.NewDataStore(),
		Pages:    []PageConfig{{Number: 1, Title: "x"}},
		Template: filepath.Join(t.TempDir(), "missing.pptx"),
		Output:   filepath.Join(t.TempDir(), "out.pptx"),
	})
	if err == nil {
		t.Fatal("unreadable template is an environment failure and must error")
	}
}
