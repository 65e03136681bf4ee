package deck

import (
	"github.com/deckgen/deckgen/pptx"
	"github.com/deckgen/deckgen/style"
	"github.com/deckgen/deckgen/tabular"
	"github.com/pkg/errors"

	"github.com/deckgen/deckgen/layout"
)

// chartTypeFor maps config chart kinds onto the pptx plot types.
// Unqualified "bar" means vertical bars.
func chartTypeFor(kind string) (pptx.ChartType, error) {
	switch kind {
	case "", "bar", "column":
		return pptx.ChartColumn, nil
	case "horizontal_bar", "barh":
		return pptx.ChartBar, nil
	case "line":
		return pptx.ChartLine, nil
	case "pie":
		return pptx.ChartPie, nil
	case "area":
		return pptx.ChartArea, nil
	}
	return "", errors.Errorf("deck: unsupported chart type %q", kind)
}

// BuildChart renders cfg against the resolved table. Charts fail
// loudly: any unusable input is an error for the page boundary to
// handle, never a silently empty plot.
func (b *Builder) BuildChart(s *pptx.Slide, t *tabular.Table, cfg *ChartConfig, box layout.Rect) error {
	if cfg == nil {
		return errors.New("deck: chart config missing")
	}
	if t == nil || t.NumRows() == 0 {
		return errors.New("deck: chart has no data rows")
	}
	if tabular.IsPlaceholder(t) {
		return errors.Errorf("deck: chart data unavailable: %s", tabular.String(t.Cell(0, 0)))
	}
	kind, err := chartTypeFor(cfg.Type)
	if err != nil {
		return err
	}
	names := t.ColumnNames()
	xi, ok := tabular.MatchColumn(cfg.XColumn, names)
	if !ok {
		return errors.Errorf("deck: chart x column %q not found in %v", cfg.XColumn, names)
	}
	if len(cfg.YColumns) == 0 {
		return errors.New("deck: chart has no y columns")
	}

	rows := t.NumRows()
	if cfg.MaxPoints > 0 && rows > cfg.MaxPoints {
		b.log().Debug("capping chart points", "max_points", cfg.MaxPoints)
		rows = cfg.MaxPoints
	}
	categories := make([]string, rows)
	for r := 0; r < rows; r++ {
		categories[r] = tabular.String(t.Cell(r, xi))
	}

	colors := b.seriesColors(cfg, len(cfg.YColumns))
	var series []pptx.Series
	for i, yc := range cfg.YColumns {
		yi, ok := tabular.MatchColumn(yc, names)
		if !ok {
			return errors.Errorf("deck: chart y column %q not found in %v", yc, names)
		}
		values := make([]float64, rows)
		for r := 0; r < rows; r++ {
			values[r] = chartValue(t.Cell(r, yi))
		}
		series = append(series, pptx.Series{
			Name:     names[yi],
			Values:   values,
			ColorHex: colors[i],
		})
	}

	legend := len(series) > 1
	if cfg.Legend != nil {
		legend = *cfg.Legend
	}
	gridlines := true
	if cfg.Gridlines != nil {
		gridlines = *cfg.Gridlines
	}
	_, err = b.Doc.AddChart(s, frameOf(box), pptx.Chart{
		Type:       kind,
		Title:      cfg.Title,
		Categories: categories,
		Series:     series,
		XTitle:     cfg.XTitle,
		YTitle:     cfg.YTitle,
		Legend:     legend,
		Gridlines:  gridlines,
	})
	return err
}

// seriesColors takes configured hex colors where given and fills the
// rest from a brand-color ramp toward white.
func (b *Builder) seriesColors(cfg *ChartConfig, n int) []string {
	configured := cfg.Colors
	if len(configured) == 0 && len(b.Defaults.ChartColor) > 0 {
		configured = b.Defaults.ChartColor
	}
	ramp := style.Ramp(b.brand(), n)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(configured) {
			if c, err := style.ParseHex(configured[i]); err == nil {
				out[i] = c.Hex()
				continue
			}
			b.log().Warn("malformed chart color, using ramp", "value", configured[i])
		}
		out[i] = ramp[i].Hex()
	}
	return out
}
