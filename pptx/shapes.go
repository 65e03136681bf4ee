package pptx

// Shape is a drawable element on a generated slide. Implementations are
// the shape structs in this package; the interface is sealed by the
// unexported method.
type Shape interface {
	shapeName() string
}

// Run is a span of uniformly formatted text.
type Run struct {
	Text      string
	Font      string
	SizePt    float64
	Bold      bool
	Italic    bool
	Underline bool
	ColorHex  string // "RRGGBB", empty for the theme default
}

// Paragraph is one line-block of runs.
type Paragraph struct {
	Runs   []Run
	Align  string // "left", "center", "right", "justify"
	Bullet bool
	Level  int // indent level for bullets, 0-based
}

// Text concatenates the paragraph's run texts.
func (p Paragraph) Text() string {
	var s string
	for _, r := range p.Runs {
		s += r.Text
	}
	return s
}

// PlainParagraph builds a single-run paragraph.
func PlainParagraph(text string, run Run) Paragraph {
	run.Text = text
	return Paragraph{Runs: []Run{run}}
}

// TextBox is a free-standing text shape.
type TextBox struct {
	Name       string
	Frame      Rect
	Paragraphs []Paragraph
	NoWrap     bool
	FillHex    string // shape background, empty for none
}

func (t *TextBox) shapeName() string { return t.Name }

// SetText replaces the box content with a single plain paragraph,
// keeping the first run's formatting when present.
func (t *TextBox) SetText(text string) {
	var run Run
	if len(t.Paragraphs) > 0 && len(t.Paragraphs[0].Runs) > 0 {
		run = t.Paragraphs[0].Runs[0]
	}
	align := ""
	if len(t.Paragraphs) > 0 {
		align = t.Paragraphs[0].Align
	}
	run.Text = text
	t.Paragraphs = []Paragraph{{Runs: []Run{run}, Align: align}}
}

// Text concatenates all paragraph text with newlines.
func (t *TextBox) Text() string {
	var s string
	for i, p := range t.Paragraphs {
		if i > 0 {
			s += "\n"
		}
		s += p.Text()
	}
	return s
}

// TableCell is one cell of a TableShape.
type TableCell struct {
	Paragraph Paragraph
	FillHex   string // cell background, empty for none
}

// TableShape is a native PresentationML table. Rows[0] is the header
// when FirstRowHeader is set. RowHeights aligns with Rows.
type TableShape struct {
	Name           string
	Frame          Rect
	ColWidths      []EMU
	RowHeights     []EMU
	Rows           [][]TableCell
	FirstRowHeader bool
}

func (t *TableShape) shapeName() string { return t.Name }

// ChartRef places a chart part on a slide. Created via AddChart, never
// directly.
type ChartRef struct {
	Name  string
	Frame Rect
	relID string
}

func (c *ChartRef) shapeName() string { return c.Name }
