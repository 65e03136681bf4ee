package deck

import (
	"strings"

	"github.com/deckgen/deckgen/diag"
	"github.com/deckgen/deckgen/layout"
	"github.com/deckgen/deckgen/pptx"
	"github.com/deckgen/deckgen/rules"
	"github.com/deckgen/deckgen/style"
	"github.com/deckgen/deckgen/tabular"
	"github.com/pkg/errors"
)

// Engine renders one page configuration at a time. Data problems
// degrade on the slide; only environment failures surface as errors.
type Engine struct {
	Builder  *Builder
	Resolver *tabular.Resolver
	Logger   diag.Logger
}

func (e *Engine) log() diag.Logger {
	if e.Logger == nil {
		return diag.Nop()
	}
	return e.Logger
}

// Leftover template-layout instruction text cleared before population.
func isInstructionText(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "Click to") ||
		strings.Contains(t, "Master text styles") ||
		strings.Contains(t, "Master title style") ||
		strings.EqualFold(t, "eyebrow")
}

// GeneratePage appends one slide for cfg. The content area is guarded:
// any failure inside it, including panics, degrades to a "Content
// unavailable" note on the slide rather than aborting the run.
func (e *Engine) GeneratePage(doc *pptx.Document, store *tabular.DataStore, cfg PageConfig) error {
	layoutName := cfg.Layout
	if layoutName == "" {
		layoutName = "Title and Content"
	}
	slide, err := doc.AddSlide(doc.LayoutByName(layoutName))
	if err != nil {
		return errors.Wrapf(err, "deck: page %d", cfg.Number)
	}
	slide.ClearMatchingText(isInstructionText)

	e.setTitles(slide, store, cfg)

	func() {
		defer func() {
			if r := recover(); r != nil {
				e.log().Error("slide content generation panicked",
					"slide", cfg.Number, "panic", r)
				e.renderUnavailable(slide)
			}
		}()
		e.renderBody(slide, store, cfg)
	}()
	return nil
}

func (e *Engine) setTitles(slide *pptx.Slide, store *tabular.DataStore, cfg PageConfig) {
	b := e.Builder
	title := cfg.Title
	if cfg.TitleSource != nil {
		if v, ok := e.textFromData(store, cfg.TitleSource); ok {
			title = v
		} else {
			e.log().Warn("title data source unresolved, using literal title",
				"slide", cfg.Number)
		}
	}
	if title != "" {
		st := style.Merge(style.Resolve(b.Defaults.Title, e.log()),
			style.Resolve(cfg.TitleFormatting, e.log()))
		b.SetTitle(slide, title, st)
	}
	subtitle := cfg.Subtitle
	if cfg.SubtitleSource != nil {
		if v, ok := e.textFromData(store, cfg.SubtitleSource); ok {
			subtitle = v
		}
	}
	if subtitle != "" {
		st := style.Merge(style.Resolve(b.Defaults.Subtitle, e.log()),
			style.Resolve(cfg.SubtitleFormatting, e.log()))
		b.SetSubtitle(slide, subtitle, st)
	}
}

// renderBody fills the content area. A chart-enabled page renders the
// chart and nothing else; a chart failure becomes the unavailable note,
// never a chart-plus-table slide.
func (e *Engine) renderBody(slide *pptx.Slide, store *tabular.DataStore, cfg PageConfig) {
	if cfg.Chart != nil && cfg.Chart.Enabled {
		if err := e.renderChart(slide, store, cfg); err != nil {
			e.log().Error("chart generation failed", "slide", cfg.Number, "error", err)
			e.renderUnavailable(slide)
		}
		return
	}
	switch cfg.Type {
	case "bullet_list":
		e.renderBullets(slide, store, cfg)
	case "section":
		// Section pages carry only their titles.
	default:
		if cfg.TableMapping != nil {
			e.renderTable(slide, store, cfg)
		}
		e.renderContents(slide, store, cfg)
	}
}

func (e *Engine) renderChart(slide *pptx.Slide, store *tabular.DataStore, cfg PageConfig) error {
	ch := cfg.Chart
	spec := tabular.MappingSpec{Source: ch.Source, Sheet: ch.Sheet, HeaderRow: ch.HeaderRow}
	if spec.Source == "" && cfg.TableMapping != nil {
		spec.Source = cfg.TableMapping.Source
		spec.Sheet = cfg.TableMapping.Sheet
	}
	t := e.Resolver.Resolve(store, spec)
	return e.Builder.BuildChart(slide, t, ch, boxOr(ch.Position, e.Builder.contentBox()))
}

func (e *Engine) renderTable(slide *pptx.Slide, store *tabular.DataStore, cfg PageConfig) {
	b := e.Builder
	m := cfg.TableMapping
	t := e.Resolver.Resolve(store, m.Spec())
	if len(m.Transforms) > 0 && !tabular.IsPlaceholder(t) {
		t = rules.Apply(t, m.Transforms, e.log())
	}
	tf := m.Formatting
	if tf == nil {
		tf = b.Defaults.Table
	}
	b.BuildTable(slide, t, b.contentBox(), tf)
}

func (e *Engine) renderBullets(slide *pptx.Slide, store *tabular.DataStore, cfg PageConfig) {
	b := e.Builder
	items := cfg.Items
	if cfg.ItemsSource != nil {
		if fromData := e.listFromData(store, cfg.ItemsSource); len(fromData) > 0 {
			items = fromData
		} else {
			e.log().Warn("bullet items data source unresolved, using literal items",
				"slide", cfg.Number)
		}
	}
	b.AddBulletList(slide, items, b.contentBox(), style.Style{})
}

func (e *Engine) renderContents(slide *pptx.Slide, store *tabular.DataStore, cfg PageConfig) {
	b := e.Builder
	box := b.contentBox()
	stackTop := box.Top
	for i, cm := range cfg.ContentMappings {
		text := cm.Text
		if cm.Source != nil {
			if v, ok := e.textFromData(store, cm.Source); ok {
				text = v
			} else {
				e.log().Warn("content data source unresolved", "slide", cfg.Number, "block", i)
				if text == "" {
					text = "No data available"
				}
			}
		}
		if text == "" {
			continue
		}
		target := boxOr(cm.Position, layout.Rect{
			Left: box.Left, Top: stackTop, Width: box.Width, Height: 0.6,
		})
		if cm.Position == nil {
			stackTop += 0.7
		}
		name := cm.Name
		if name == "" {
			name = "Content"
		}
		st := style.Resolve(cm.Formatting, e.log())
		if tb := slide.FindTextBox(func(n string) bool {
			return cm.Name != "" && containsFold(n, cm.Name)
		}); tb != nil {
			tb.SetText(text)
		} else {
			b.AddText(slide, name, text, target, st)
		}
	}
}

// textFromData resolves a single text value from the store.
func (e *Engine) textFromData(store *tabular.DataStore, ts *TextSource) (string, bool) {
	t := e.Resolver.Resolve(store, tabular.MappingSpec{
		Source:  ts.Source,
		Sheet:   ts.Sheet,
		Columns: []string{ts.Column},
	})
	if tabular.IsPlaceholder(t) || t.NumRows() == 0 {
		return "", false
	}
	col := t.ColumnAt(0)
	var text string
	switch ts.Aggregate {
	case "sum", "mean":
		sum, n := 0.0, 0
		for _, v := range col.Values {
			if f, ok := tabular.Number(v); ok {
				sum += f
				n++
			}
		}
		if n == 0 {
			return "", false
		}
		if ts.Aggregate == "mean" {
			sum /= float64(n)
		}
		text = FormatNumber(sum, ts.Format)
	default: // first
		var v tabular.Value
		for _, cand := range col.Values {
			if !tabular.IsMissing(cand) {
				v = cand
				break
			}
		}
		if v == nil {
			return "", false
		}
		text = FormatNumber(v, ts.Format)
	}
	return ts.Prefix + text + ts.Suffix, true
}

// listFromData resolves one bullet item per row.
func (e *Engine) listFromData(store *tabular.DataStore, ls *ListSource) []string {
	t := e.Resolver.Resolve(store, tabular.MappingSpec{
		Source:  ls.Source,
		Sheet:   ls.Sheet,
		Columns: []string{ls.Column},
		MaxRows: ls.MaxItems,
	})
	if tabular.IsPlaceholder(t) || t.NumCols() == 0 {
		return nil
	}
	var items []string
	col := t.ColumnAt(0)
	for _, v := range col.Values {
		if !tabular.IsMissing(v) {
			items = append(items, tabular.String(v))
		}
	}
	return items
}

// renderUnavailable is the in-slide failure state: the deck keeps its
// page, the page says why it is empty.
func (e *Engine) renderUnavailable(slide *pptx.Slide) {
	gray := style.Color{R: 0x80, G: 0x80, B: 0x80}
	e.Builder.AddText(slide, "Unavailable", "Content unavailable",
		e.Builder.contentBox(), style.Style{
			FontSize: 18,
			Italic:   style.Flag(true),
			Color:    &gray,
			Align:    style.AlignCenter,
		})
}
