package pptx

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/deckgen/deckgen/opc"
	"github.com/pkg/errors"
)

const chartNS = "http://schemas.openxmlformats.org/drawingml/2006/chart"

const (
	relTypeChart     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	contentTypeChart = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
)

// ChartType selects the plot kind.
type ChartType string

const (
	ChartColumn ChartType = "column"
	ChartBar    ChartType = "bar"
	ChartLine   ChartType = "line"
	ChartPie    ChartType = "pie"
	ChartArea   ChartType = "area"
)

// Series is one data series with literal values; charts carry their data
// inline rather than referencing an embedded workbook.
type Series struct {
	Name     string
	Values   []float64
	ColorHex string // empty for the theme default
}

// Chart describes a chart to be created as its own part.
type Chart struct {
	Type       ChartType
	Title      string
	Categories []string
	Series     []Series
	XTitle     string
	YTitle     string
	Legend     bool
	Gridlines  bool
}

// AddChart creates a chart part from ch, relates it to the slide and
// places a graphic frame at frame. Unlike tables and text, chart
// creation fails loudly: an invalid chart is an error, not a degraded
// shape.
func (d *Document) AddChart(s *Slide, frame Rect, ch Chart) (*ChartRef, error) {
	if s.IsTemplate() {
		return nil, errors.New("pptx: cannot add a chart to a template slide")
	}
	if len(ch.Series) == 0 {
		return nil, errors.New("pptx: chart has no series")
	}
	for _, ser := range ch.Series {
		if len(ser.Values) == 0 {
			return nil, errors.Errorf("pptx: chart series %q has no values", ser.Name)
		}
		if len(ch.Categories) > 0 && len(ser.Values) != len(ch.Categories) {
			return nil, errors.Errorf("pptx: chart series %q has %d values for %d categories",
				ser.Name, len(ser.Values), len(ch.Categories))
		}
	}
	switch ch.Type {
	case ChartColumn, ChartBar, ChartLine, ChartPie, ChartArea:
	case "":
		ch.Type = ChartColumn
	default:
		return nil, errors.Errorf("pptx: unsupported chart type %q", ch.Type)
	}

	d.chartSeq++
	partName := fmt.Sprintf("ppt/charts/chart%d.xml", d.chartSeq)
	d.pkg.SetPart(partName, chartPartXML(ch))
	if err := d.pkg.SetOverrideType(partName, contentTypeChart); err != nil {
		return nil, err
	}
	relID, err := d.pkg.AddRel(s.partName, opc.Relationship{
		Type:   relTypeChart,
		Target: opc.RelativeTarget(s.partName, partName),
	})
	if err != nil {
		return nil, err
	}
	ref := &ChartRef{Name: "Chart " + strconv.Itoa(d.chartSeq), Frame: frame, relID: relID}
	s.shapes = append(s.shapes, ref)
	return ref, nil
}

// chartPartXML renders a complete chartSpace part with literal data
// caches.
func chartPartXML(ch Chart) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<c:chartSpace xmlns:c=%q xmlns:a=%q xmlns:r=%q>`, chartNS, nsA, nsR)
	b.WriteString(`<c:chart>`)
	if ch.Title != "" {
		writeChartTitle(&b, ch.Title)
		b.WriteString(`<c:autoTitleDeleted val="0"/>`)
	} else {
		b.WriteString(`<c:autoTitleDeleted val="1"/>`)
	}
	b.WriteString(`<c:plotArea><c:layout/>`)
	writePlot(&b, ch)
	if ch.Type != ChartPie {
		writeAxes(&b, ch)
	}
	b.WriteString(`</c:plotArea>`)
	if ch.Legend {
		b.WriteString(`<c:legend><c:legendPos val="r"/><c:overlay val="0"/></c:legend>`)
	}
	b.WriteString(`<c:plotVisOnly val="1"/></c:chart></c:chartSpace>`)
	return []byte(b.String())
}

const (
	catAxID = 111111111
	valAxID = 222222222
)

func writePlot(b *strings.Builder, ch Chart) {
	switch ch.Type {
	case ChartColumn, ChartBar:
		b.WriteString(`<c:barChart>`)
		dir := "col"
		if ch.Type == ChartBar {
			dir = "bar"
		}
		fmt.Fprintf(b, `<c:barDir val="%s"/><c:grouping val="clustered"/>`, dir)
		writeAllSeries(b, ch)
		fmt.Fprintf(b, `<c:axId val="%d"/><c:axId val="%d"/>`, catAxID, valAxID)
		b.WriteString(`</c:barChart>`)
	case ChartLine:
		b.WriteString(`<c:lineChart><c:grouping val="standard"/>`)
		writeAllSeries(b, ch)
		b.WriteString(`<c:marker val="1"/>`)
		fmt.Fprintf(b, `<c:axId val="%d"/><c:axId val="%d"/>`, catAxID, valAxID)
		b.WriteString(`</c:lineChart>`)
	case ChartArea:
		b.WriteString(`<c:areaChart><c:grouping val="standard"/>`)
		writeAllSeries(b, ch)
		fmt.Fprintf(b, `<c:axId val="%d"/><c:axId val="%d"/>`, catAxID, valAxID)
		b.WriteString(`</c:areaChart>`)
	case ChartPie:
		b.WriteString(`<c:pieChart><c:varyColors val="1"/>`)
		writeAllSeries(b, ch)
		b.WriteString(`<c:firstSliceAng val="0"/></c:pieChart>`)
	}
}

func writeAllSeries(b *strings.Builder, ch Chart) {
	for i, ser := range ch.Series {
		fmt.Fprintf(b, `<c:ser><c:idx val="%d"/><c:order val="%d"/>`, i, i)
		if ser.Name != "" {
			fmt.Fprintf(b, `<c:tx><c:v>%s</c:v></c:tx>`, esc(ser.Name))
		}
		if ser.ColorHex != "" {
			fmt.Fprintf(b, `<c:spPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill></c:spPr>`,
				ser.ColorHex)
		}
		if len(ch.Categories) > 0 {
			b.WriteString(`<c:cat><c:strLit>`)
			fmt.Fprintf(b, `<c:ptCount val="%d"/>`, len(ch.Categories))
			for j, cat := range ch.Categories {
				fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, j, esc(cat))
			}
			b.WriteString(`</c:strLit></c:cat>`)
		}
		b.WriteString(`<c:val><c:numLit>`)
		b.WriteString(`<c:formatCode>General</c:formatCode>`)
		fmt.Fprintf(b, `<c:ptCount val="%d"/>`, len(ser.Values))
		for j, v := range ser.Values {
			fmt.Fprintf(b, `<c:pt idx="%d"><c:v>%s</c:v></c:pt>`,
				j, strconv.FormatFloat(v, 'f', -1, 64))
		}
		b.WriteString(`</c:numLit></c:val></c:ser>`)
	}
}

func writeChartTitle(b *strings.Builder, title string) {
	b.WriteString(`<c:title><c:tx><c:rich><a:bodyPr/><a:lstStyle/><a:p><a:r>`)
	fmt.Fprintf(b, `<a:rPr lang="en-US" b="1"/><a:t>%s</a:t>`, esc(title))
	b.WriteString(`</a:r></a:p></c:rich></c:tx><c:overlay val="0"/></c:title>`)
}

func writeAxisTitle(b *strings.Builder, title string) {
	b.WriteString(`<c:title><c:tx><c:rich><a:bodyPr/><a:lstStyle/><a:p><a:r>`)
	fmt.Fprintf(b, `<a:rPr lang="en-US"/><a:t>%s</a:t>`, esc(title))
	b.WriteString(`</a:r></a:p></c:rich></c:tx><c:overlay val="0"/></c:title>`)
}

func writeAxes(b *strings.Builder, ch Chart) {
	fmt.Fprintf(b, `<c:catAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling>`, catAxID)
	b.WriteString(`<c:delete val="0"/><c:axPos val="b"/>`)
	if ch.XTitle != "" {
		writeAxisTitle(b, ch.XTitle)
	}
	fmt.Fprintf(b, `<c:crossAx val="%d"/></c:catAx>`, valAxID)
	fmt.Fprintf(b, `<c:valAx><c:axId val="%d"/><c:scaling><c:orientation val="minMax"/></c:scaling>`, valAxID)
	b.WriteString(`<c:delete val="0"/><c:axPos val="l"/>`)
	if ch.Gridlines {
		b.WriteString(`<c:majorGridlines/>`)
	}
	if ch.YTitle != "" {
		writeAxisTitle(b, ch.YTitle)
	}
	fmt.Fprintf(b, `<c:crossAx val="%d"/></c:valAx>`, catAxID)
}
