package pptx

import (
	"strings"
	"testing"
)

func TestAddChartCreatesPart(t *testing.T) {
	d, _ := New()
	s, _ := d.AddSlide(nil)
	ref, err := d.AddChart(s, RectInches(1, 1, 8, 5), Chart{
		Type:       ChartColumn,
		Title:      "Sales by Region",
		Categories: []string{"North", "South"},
		Series: []Series{
			{Name: "Net Sales", Values: []float64{1200, 800}, ColorHex: "1F4E79"},
		},
		Legend:    true,
		Gridlines: true,
		YTitle:    "USD",
	})
	if err != nil {
		t.Fatalf("AddChart: %v", err)
	}
	if ref == nil || ref.relID == "" {
		t.Fatal("chart ref missing relationship id")
	}
	part, ok := d.pkg.Part("ppt/charts/chart1.xml")
	if !ok {
		t.Fatal("chart part not created")
	}
	xmlStr := string(part)
	for _, want := range []string{
		"<c:barChart>", `<c:barDir val="col"/>`,
		"<c:strLit>", "<c:numLit>",
		"<c:v>North</c:v>", "<c:v>1200</c:v>",
		`<a:srgbClr val="1F4E79"/>`,
		"<c:majorGridlines/>", "<c:legend>",
		"<a:t>Sales by Region</a:t>",
	} {
		if !strings.Contains(xmlStr, want) {
			t.Errorf("chart XML missing %s", want)
		}
	}

	b, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	got, err := FromBytes(b)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	rels, err := got.pkg.Rels(got.Slides()[0].PartName())
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, r := range rels {
		if r.Type == relTypeChart {
			found = true
		}
	}
	if !found {
		t.Fatal("slide has no chart relationship after round trip")
	}
}

func TestAddChartValidation(t *testing.T) {
	d, _ := New()
	s, _ := d.AddSlide(nil)

	if _, err := d.AddChart(s, Rect{}, Chart{}); err == nil {
		t.Fatal("chart with no series must fail")
	}
	if _, err := d.AddChart(s, Rect{}, Chart{
		Series: []Series{{Name: "empty"}},
	}); err == nil {
		t.Fatal("series with no values must fail")
	}
	if _, err := d.AddChart(s, Rect{}, Chart{
		Categories: []string{"a", "b", "c"},
		Series:     []Series{{Name: "short", Values: []float64{1}}},
	}); err == nil {
		t.Fatal("category/value length mismatch must fail")
	}
	if _, err := d.AddChart(s, Rect{}, Chart{
		Type:   ChartType("scatter3d"),
		Series: []Series{{Values: []float64{1}}},
	}); err == nil {
		t.Fatal("unknown chart type must fail")
	}
}

func TestAddChartToTemplateSlideFails(t *testing.T) {
	d, _ := New()
	if _, err := d.AddSlide(nil); err != nil {
		t.Fatal(err)
	}
	b, _ := d.Bytes()
	got, err := FromBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := got.AddChart(got.Slides()[0], Rect{}, Chart{
		Series: []Series{{Values: []float64{1}}},
	}); err == nil {
		t.Fatal("charts on template-backed slides must be rejected")
	}
}

func TestPieChartHasNoAxes(t *testing.T) {
	part := chartPartXML(Chart{
		Type:       ChartPie,
		Categories: []string{"a", "b"},
		Series:     []Series{{Values: []float64{1, 2}}},
	})
	s := string(part)
	if strings.Contains(s, "<c:catAx>") || strings.Contains(s, "<c:valAx>") {
		t.Fatal("pie charts must not emit axes")
	}
	if !strings.Contains(s, "<c:pieChart>") {
		t.Fatal("missing pieChart element")
	}
}
