package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
)

// esc escapes text for XML character data and attribute values.
func esc(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// slideXML serializes a generated slide's shape list into a complete
// slide part.
func slideXML(shapes []Shape) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<p:sld xmlns:a=%q xmlns:r=%q xmlns:p=%q>`, nsA, nsR, nsP)
	b.WriteString(`<p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/>` +
		`<a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)
	// Shape ids 1 and 2 are reserved for the group shape.
	id := 2
	for _, sh := range shapes {
		switch t := sh.(type) {
		case *TextBox:
			writeTextBox(&b, t, id)
		case *TableShape:
			writeTable(&b, t, id)
		case *ChartRef:
			writeChartRef(&b, t, id)
		}
		id++
	}
	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return []byte(b.String())
}

func writeXfrm(b *strings.Builder, tag string, f Rect) {
	fmt.Fprintf(b, `<%s><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></%s>`,
		tag, f.X, f.Y, f.W, f.H, tag)
}

func writeTextBox(b *strings.Builder, t *TextBox, id int) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/>`, id, esc(t.Name))
	b.WriteString(`<p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>`)
	writeXfrm(b, "a:xfrm", t.Frame)
	b.WriteString(`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`)
	if t.FillHex != "" {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, t.FillHex)
	}
	b.WriteString(`</p:spPr><p:txBody>`)
	if t.NoWrap {
		b.WriteString(`<a:bodyPr wrap="none"/>`)
	} else {
		b.WriteString(`<a:bodyPr wrap="square"/>`)
	}
	b.WriteString(`<a:lstStyle/>`)
	if len(t.Paragraphs) == 0 {
		b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
	}
	for _, p := range t.Paragraphs {
		writeParagraph(b, p)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func alignAttr(align string) string {
	switch align {
	case "center":
		return "ctr"
	case "right":
		return "r"
	case "justify":
		return "just"
	case "left":
		return "l"
	}
	return ""
}

func writeParagraph(b *strings.Builder, p Paragraph) {
	b.WriteString(`<a:p>`)
	var attrs []string
	if a := alignAttr(p.Align); a != "" {
		attrs = append(attrs, fmt.Sprintf(`algn="%s"`, a))
	}
	if p.Bullet && p.Level > 0 {
		attrs = append(attrs, fmt.Sprintf(`lvl="%d"`, p.Level))
	}
	if len(attrs) > 0 || p.Bullet {
		b.WriteString(`<a:pPr`)
		for _, a := range attrs {
			b.WriteString(" " + a)
		}
		b.WriteString(`>`)
		if p.Bullet {
			b.WriteString(`<a:buChar char="•"/>`)
		} else {
			b.WriteString(`<a:buNone/>`)
		}
		b.WriteString(`</a:pPr>`)
	}
	for _, r := range p.Runs {
		writeRun(b, r)
	}
	b.WriteString(`</a:p>`)
}

func writeRun(b *strings.Builder, r Run) {
	b.WriteString(`<a:r><a:rPr lang="en-US"`)
	if r.SizePt > 0 {
		fmt.Fprintf(b, ` sz="%d"`, centipoints(r.SizePt))
	}
	if r.Bold {
		b.WriteString(` b="1"`)
	}
	if r.Italic {
		b.WriteString(` i="1"`)
	}
	if r.Underline {
		b.WriteString(` u="sng"`)
	}
	b.WriteString(`>`)
	if r.ColorHex != "" {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, r.ColorHex)
	}
	if r.Font != "" {
		fmt.Fprintf(b, `<a:latin typeface="%s"/>`, esc(r.Font))
	}
	fmt.Fprintf(b, `</a:rPr><a:t>%s</a:t></a:r>`, esc(r.Text))
}

const tableGraphicURI = "http://schemas.openxmlformats.org/drawingml/2006/table"

func writeTable(b *strings.Builder, t *TableShape, id int) {
	b.WriteString(`<p:graphicFrame><p:nvGraphicFramePr>`)
	fmt.Fprintf(b, `<p:cNvPr id="%d" name="%s"/>`, id, esc(t.Name))
	b.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr>`)
	b.WriteString(`<p:nvPr/></p:nvGraphicFramePr>`)
	writeXfrm(b, "p:xfrm", t.Frame)
	fmt.Fprintf(b, `<a:graphic><a:graphicData uri=%q>`, tableGraphicURI)
	b.WriteString(`<a:tbl><a:tblPr`)
	if t.FirstRowHeader {
		b.WriteString(` firstRow="1"`)
	}
	b.WriteString(` bandRow="0"/>`)
	b.WriteString(`<a:tblGrid>`)
	for _, w := range t.ColWidths {
		fmt.Fprintf(b, `<a:gridCol w="%d"/>`, w)
	}
	b.WriteString(`</a:tblGrid>`)
	for ri, row := range t.Rows {
		h := EMU(0)
		if ri < len(t.RowHeights) {
			h = t.RowHeights[ri]
		}
		fmt.Fprintf(b, `<a:tr h="%d">`, h)
		for ci := range t.ColWidths {
			var cell TableCell
			if ci < len(row) {
				cell = row[ci]
			}
			writeTableCell(b, cell)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func writeTableCell(b *strings.Builder, c TableCell) {
	b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>`)
	writeParagraph(b, c.Paragraph)
	b.WriteString(`</a:txBody><a:tcPr anchor="ctr"`)
	fmt.Fprintf(b, ` marL="36000" marR="36000" marT="18000" marB="18000">`)
	if c.FillHex != "" {
		fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, c.FillHex)
	}
	b.WriteString(`</a:tcPr></a:tc>`)
}

const chartGraphicURI = "http://schemas.openxmlformats.org/drawingml/2006/chart"

func writeChartRef(b *strings.Builder, c *ChartRef, id int) {
	b.WriteString(`<p:graphicFrame><p:nvGraphicFramePr>`)
	fmt.Fprintf(b, `<p:cNvPr id="%d" name="%s"/>`, id, esc(c.Name))
	b.WriteString(`<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr>`)
	b.WriteString(`<p:nvPr/></p:nvGraphicFramePr>`)
	writeXfrm(b, "p:xfrm", c.Frame)
	fmt.Fprintf(b, `<a:graphic><a:graphicData uri=%q>`, chartGraphicURI)
	fmt.Fprintf(b, `<c:chart xmlns:c=%q xmlns:r=%q r:id="%s"/>`, chartNS, nsR, c.relID)
	b.WriteString(`</a:graphicData></a:graphic></p:graphicFrame>`)
}
