package deck

import (
	"strings"

	"github.com/deckgen/deckgen/diag"
	"github.com/deckgen/deckgen/layout"
	"github.com/deckgen/deckgen/pptx"
	"github.com/deckgen/deckgen/style"
	"github.com/deckgen/deckgen/tabular"
)

// Visual defaults used when the configuration does not say otherwise.
const (
	defaultBrandHex     = "1F4E79"
	defaultFontName     = "Calibri"
	subtotalFillHex     = "D9D9D9"
	defaultTitleSize    = 24.0
	defaultSubtitleSize = 14.0
	defaultBodySize     = 12.0
)

// Builder renders individual visual elements onto slides. Primitives
// never fail: bad inputs degrade to placeholder content and a log line.
// The one exception is BuildChart, which returns an error because a
// broken chart is not representable as degraded output.
type Builder struct {
	Doc      *pptx.Document
	Logger   diag.Logger
	Defaults Formatting
}

func (b *Builder) log() diag.Logger {
	if b.Logger == nil {
		return diag.Nop()
	}
	return b.Logger
}

func (b *Builder) fontName() string {
	if b.Defaults.FontName != "" {
		return b.Defaults.FontName
	}
	return defaultFontName
}

func (b *Builder) brand() style.Color {
	hex := b.Defaults.BrandColor
	if hex == "" {
		hex = defaultBrandHex
	}
	c, err := style.ParseHex(hex)
	if err != nil {
		b.log().Warn("malformed brand color, using default", "value", hex)
		c, _ = style.ParseHex(defaultBrandHex)
	}
	return c
}

// contentBox returns the default content area below the title band.
func (b *Builder) contentBox() layout.Rect {
	w, h := b.Doc.SlideSize()
	return layout.Rect{
		Left:   0.5,
		Top:    1.6,
		Width:  w.Inches() - 1.0,
		Height: h.Inches() - 2.1,
	}
}

func boxOr(pos *Box, fallback layout.Rect) layout.Rect {
	if pos == nil || pos.Width <= 0 || pos.Height <= 0 {
		return fallback
	}
	return layout.Rect{Left: pos.Left, Top: pos.Top, Width: pos.Width, Height: pos.Height}
}

func frameOf(r layout.Rect) pptx.Rect {
	return pptx.RectInches(r.Left, r.Top, r.Width, r.Height)
}

// runFor builds a pptx run from a style, falling back to the builder's
// font defaults.
func (b *Builder) runFor(st style.Style, fallbackSize float64) pptx.Run {
	r := pptx.Run{
		Font:      b.fontName(),
		SizePt:    fallbackSize,
		Bold:      st.IsBold(),
		Italic:    st.IsItalic(),
		Underline: st.IsUnderline(),
	}
	if st.FontName != "" {
		r.Font = st.FontName
	}
	if st.FontSize > 0 {
		r.SizePt = st.FontSize
	}
	if st.Color != nil {
		r.ColorHex = st.Color.Hex()
	}
	return r
}

// SetTitle fills the slide's title placeholder, or adds a title box
// when the layout has none.
func (b *Builder) SetTitle(s *pptx.Slide, text string, st style.Style) {
	b.setBandText(s, text, st, defaultTitleSize, isTitleName, layout.Rect{
		Left: 0.5, Top: 0.3, Width: b.contentBox().Width, Height: 1.0,
	}, "Title")
}

// SetSubtitle fills the subtitle placeholder, or adds a box under the
// title band.
func (b *Builder) SetSubtitle(s *pptx.Slide, text string, st style.Style) {
	b.setBandText(s, text, st, defaultSubtitleSize, isSubtitleName, layout.Rect{
		Left: 0.5, Top: 1.1, Width: b.contentBox().Width, Height: 0.5,
	}, "Subtitle")
}

func (b *Builder) setBandText(s *pptx.Slide, text string, st style.Style,
	size float64, match func(string) bool, fallback layout.Rect, name string) {
	if text == "" {
		return
	}
	run := b.runFor(st, size)
	tb := s.FindTextBox(match)
	if tb == nil {
		tb = &pptx.TextBox{Name: name, Frame: frameOf(fallback)}
		s.AddShape(tb)
		b.log().Debug("no placeholder found, added text box", "shape", name)
	}
	run.Text = text
	align := st.Align
	tb.Paragraphs = []pptx.Paragraph{{Runs: []pptx.Run{run}, Align: string(align)}}
	if st.Fill != nil {
		tb.FillHex = st.Fill.Hex()
	}
}

func isTitleName(name string) bool {
	return containsFold(name, "title") && !containsFold(name, "subtitle")
}

func isSubtitleName(name string) bool {
	return containsFold(name, "subtitle") || containsFold(name, "text placeholder")
}

func isBodyName(name string) bool {
	return containsFold(name, "content") || containsFold(name, "body")
}

// AddText places a free text block.
func (b *Builder) AddText(s *pptx.Slide, name, text string, box layout.Rect, st style.Style) *pptx.TextBox {
	run := b.runFor(st, defaultBodySize)
	run.Text = text
	tb := &pptx.TextBox{
		Name:       name,
		Frame:      frameOf(box),
		Paragraphs: []pptx.Paragraph{{Runs: []pptx.Run{run}, Align: string(st.Align)}},
	}
	if st.Fill != nil {
		tb.FillHex = st.Fill.Hex()
	}
	s.AddShape(tb)
	return tb
}

// AddBulletList renders one bullet paragraph per item, preferring the
// layout's body placeholder.
func (b *Builder) AddBulletList(s *pptx.Slide, items []string, box layout.Rect, st style.Style) {
	if len(items) == 0 {
		items = []string{"No content available"}
		b.log().Warn("bullet list has no items")
	}
	run := b.runFor(st, defaultBodySize+2)
	var paras []pptx.Paragraph
	for _, item := range items {
		r := run
		r.Text = item
		paras = append(paras, pptx.Paragraph{Runs: []pptx.Run{r}, Bullet: true})
	}
	tb := s.FindTextBox(isBodyName)
	if tb == nil {
		tb = &pptx.TextBox{Name: "Content", Frame: frameOf(box)}
		s.AddShape(tb)
	}
	tb.Paragraphs = paras
}

// BuildTable renders a data table into box: geometry from the layout
// planner, row classes restyled, values formatted per column rules. A
// table with no data rows renders a single diagnostic row.
func (b *Builder) BuildTable(s *pptx.Slide, t *tabular.Table, box layout.Rect, tf *TableFormatting) {
	if t == nil || t.NumCols() == 0 {
		t = tabular.Placeholder("No data available")
	}
	if tf == nil {
		tf = b.Defaults.Table
	}
	if tf == nil {
		tf = &TableFormatting{}
	}
	names := t.ColumnNames()
	rows := t.NumRows()
	plan := layout.PlanTable(rows, len(names), box, b.log())
	classes := layout.ClassifyRows(t)

	brand := b.brand()
	headerStyle := style.Merge(style.Style{
		FontSize: plan.HeaderFontSize,
		Bold:     style.Flag(true),
		Color:    &style.Color{R: 255, G: 255, B: 255},
		Fill:     &brand,
		Align:    style.AlignLeft,
	}, style.Resolve(tf.HeaderFormatting, b.log()))
	dataStyle := style.Merge(style.Style{
		FontSize: plan.FontSize,
	}, style.Resolve(tf.DataFormatting, b.log()))
	subtotalFill, _ := style.ParseHex(subtotalFillHex)
	subtotalStyle := style.Merge(style.Merge(dataStyle, style.Style{
		Bold: style.Flag(true),
		Fill: &subtotalFill,
	}), style.Resolve(tf.SubtotalFormatting, b.log()))
	totalStyle := style.Merge(style.Merge(dataStyle, style.Style{
		Bold:  style.Flag(true),
		Color: &style.Color{R: 255, G: 255, B: 255},
		Fill:  &brand,
	}), style.Resolve(tf.TotalFormatting, b.log()))

	shape := &pptx.TableShape{
		Name:           "Data Table",
		Frame:          frameOf(layout.Rect{Left: box.Left, Top: box.Top, Width: plan.TableWidth, Height: box.Height}),
		FirstRowHeader: true,
	}
	for range names {
		shape.ColWidths = append(shape.ColWidths, pptx.Inches(plan.ColWidth))
	}

	// Header row.
	shape.RowHeights = append(shape.RowHeights, pptx.Inches(plan.HeaderHeight))
	var header []pptx.TableCell
	for _, n := range names {
		header = append(header, b.tableCell(n, headerStyle))
	}
	shape.Rows = append(shape.Rows, header)

	if rows == 0 {
		shape.RowHeights = append(shape.RowHeights, pptx.Inches(plan.RowHeight))
		row := make([]pptx.TableCell, len(names))
		row[0] = b.tableCell("No data available", dataStyle)
		shape.Rows = append(shape.Rows, row)
		b.log().Warn("table has no data rows, rendering placeholder row")
		s.AddShape(shape)
		return
	}

	kindByCol := b.columnKinds(names, tf.NumberFormats)
	condByCol := b.columnConditions(names, tf.ConditionalColors)
	altFill := b.alternateFill(tf.AlternateRowColor)

	for r := 0; r < rows; r++ {
		shape.RowHeights = append(shape.RowHeights, pptx.Inches(plan.RowHeight))
		rowStyle := dataStyle
		switch classes[r] {
		case layout.RowSubtotal:
			rowStyle = subtotalStyle
		case layout.RowTotal:
			rowStyle = totalStyle
		}
		var cells []pptx.TableCell
		for c := range names {
			v := t.Cell(r, c)
			cellStyle := rowStyle
			if classes[r] == layout.RowRegular {
				if altFill != nil && r%2 == 1 && cellStyle.Fill == nil {
					cellStyle.Fill = altFill
				}
				if cond, ok := condByCol[c]; ok {
					if hex, hit := cond.apply(v); hit {
						if col, err := style.ParseHex(hex); err == nil {
							cellStyle.Color = &col
						}
					}
				}
			}
			if c > 0 && cellStyle.Align == "" {
				cellStyle.Align = style.AlignRight
			}
			cells = append(cells, b.tableCell(FormatNumber(v, kindByCol[c]), cellStyle))
		}
		shape.Rows = append(shape.Rows, cells)
	}
	if plan.Overflow {
		b.log().Warn("table content exceeds the slide area", "rows", rows)
	}
	s.AddShape(shape)
}

func (b *Builder) tableCell(text string, st style.Style) pptx.TableCell {
	run := b.runFor(st, defaultBodySize)
	run.Text = text
	cell := pptx.TableCell{
		Paragraph: pptx.Paragraph{Runs: []pptx.Run{run}, Align: string(st.Align)},
	}
	if st.Fill != nil {
		cell.FillHex = st.Fill.Hex()
	}
	return cell
}

// columnKinds maps column index -> number format kind via fuzzy column
// matching.
func (b *Builder) columnKinds(names []string, formats map[string]string) map[int]string {
	out := make(map[int]string)
	for key, kind := range formats {
		if i, ok := tabular.MatchColumn(key, names); ok {
			out[i] = kind
		} else {
			b.log().Warn("number format column not found", "column", key)
		}
	}
	return out
}

type condRule struct {
	op        string
	threshold float64
	color     string
}

func (c condRule) apply(v tabular.Value) (string, bool) {
	f, ok := tabular.Number(v)
	if !ok {
		return "", false
	}
	hit := false
	switch c.op {
	case ">=":
		hit = f >= c.threshold
	case "<=":
		hit = f <= c.threshold
	case ">":
		hit = f > c.threshold
	case "<":
		hit = f < c.threshold
	case "==":
		hit = f == c.threshold
	}
	return c.color, hit
}

func (b *Builder) columnConditions(names []string, ccs []ConditionalColor) map[int]condRule {
	out := make(map[int]condRule)
	for _, cc := range ccs {
		i, ok := tabular.MatchColumn(cc.Column, names)
		if !ok {
			b.log().Warn("conditional color column not found", "column", cc.Column)
			continue
		}
		out[i] = condRule{op: cc.Op, threshold: cc.Threshold, color: cc.Color}
	}
	return out
}

func (b *Builder) alternateFill(hex string) *style.Color {
	if hex == "" {
		return nil
	}
	c, err := style.ParseHex(hex)
	if err != nil {
		b.log().Warn("malformed alternate row color", "value", hex)
		return nil
	}
	return &c
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
