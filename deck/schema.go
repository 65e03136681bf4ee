// Package deck turns page configurations into slides: it resolves data
// through tabular, plans geometry through layout, and renders text,
// tables and charts through pptx. The Assembler drives whole-deck runs
// including template cover and closer handling.
package deck

import (
	"github.com/deckgen/deckgen/rules"
	"github.com/deckgen/deckgen/tabular"
)

// PageConfig declares one slide. Field names mirror the YAML slide
// configuration.
type PageConfig struct {
	Number   int    `yaml:"slide_number"`
	Type     string `yaml:"slide_type"` // table, chart, content, bullet_list, section, text
	Layout   string `yaml:"layout_name"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`

	TitleSource    *TextSource `yaml:"title_data_source"`
	SubtitleSource *TextSource `yaml:"subtitle_data_source"`

	TitleFormatting    map[string]any `yaml:"title_formatting"`
	SubtitleFormatting map[string]any `yaml:"subtitle_formatting"`

	TableMapping    *TableMapping    `yaml:"table_mapping"`
	ContentMappings []ContentMapping `yaml:"content_mappings"`

	Items       []string    `yaml:"items"`
	ItemsSource *ListSource `yaml:"items_data_source"`

	Chart *ChartConfig `yaml:"chart"`
}

// FilterConfig is the YAML form of a row filter.
type FilterConfig struct {
	Column string `yaml:"column"`
	Op     string `yaml:"op"`
	Value  any    `yaml:"value"`
}

// TableMapping binds a slide's table to stored data.
type TableMapping struct {
	Source     string            `yaml:"data_source"`
	Sheet      string            `yaml:"sheet"`
	Columns    []string          `yaml:"columns"`
	Filters    []FilterConfig    `yaml:"filters"`
	MaxRows    int               `yaml:"max_rows"`
	HeaderRow  int               `yaml:"header_row"`
	Transforms []rules.Transform `yaml:"transforms"`
	Formatting *TableFormatting  `yaml:"formatting"`
}

// Spec converts the mapping to the resolver's form.
func (m *TableMapping) Spec() tabular.MappingSpec {
	spec := tabular.MappingSpec{
		Source:    m.Source,
		Sheet:     m.Sheet,
		Columns:   m.Columns,
		MaxRows:   m.MaxRows,
		HeaderRow: m.HeaderRow,
	}
	for _, f := range m.Filters {
		spec.Filters = append(spec.Filters, tabular.Filter{
			Column: f.Column,
			Op:     tabular.FilterOp(f.Op),
			Value:  f.Value,
		})
	}
	return spec
}

// TableFormatting controls table cell styling and value formatting.
type TableFormatting struct {
	HeaderFormatting   map[string]any     `yaml:"header_formatting"`
	DataFormatting     map[string]any     `yaml:"data_formatting"`
	SubtotalFormatting map[string]any     `yaml:"subtotal_formatting"`
	TotalFormatting    map[string]any     `yaml:"total_formatting"`
	NumberFormats      map[string]string  `yaml:"number_formats"` // column -> percentage, currency, integer, number
	ConditionalColors  []ConditionalColor `yaml:"conditional_colors"`
	AlternateRowColor  string             `yaml:"alternate_row_color"`
}

// ConditionalColor recolors a cell's text when its numeric value
// crosses a threshold.
type ConditionalColor struct {
	Column    string  `yaml:"column"`
	Op        string  `yaml:"op"` // ">=", "<=", ">", "<", "=="
	Threshold float64 `yaml:"threshold"`
	Color     string  `yaml:"color"` // hex
}

// ContentMapping places one free text block on a slide, either literal
// or data-bound.
type ContentMapping struct {
	Name       string         `yaml:"name"`
	Text       string         `yaml:"text"`
	Source     *TextSource    `yaml:"data_source"`
	Position   *Box           `yaml:"position"`
	Formatting map[string]any `yaml:"formatting"`
}

// TextSource binds a text value to stored data.
type TextSource struct {
	Source    string `yaml:"data_source"`
	Sheet     string `yaml:"sheet"`
	Column    string `yaml:"column"`
	Aggregate string `yaml:"aggregate"` // first (default), sum, mean
	Format    string `yaml:"format"`    // number format kind
	Prefix    string `yaml:"prefix"`
	Suffix    string `yaml:"suffix"`
}

// ListSource binds bullet items to a stored column, one item per row.
type ListSource struct {
	Source   string `yaml:"data_source"`
	Sheet    string `yaml:"sheet"`
	Column   string `yaml:"column"`
	MaxItems int    `yaml:"max_items"`
}

// ChartConfig declares a chart slide. When Enabled, the page renders
// the chart and nothing else in the content area.
type ChartConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Type      string   `yaml:"type"` // bar, column, horizontal_bar, line, pie, area
	Source    string   `yaml:"data_source"`
	Sheet     string   `yaml:"sheet"`
	XColumn   string   `yaml:"x_column"`
	YColumns  []string `yaml:"y_columns"`
	HeaderRow int      `yaml:"header_row"`
	MaxPoints int      `yaml:"max_points"`
	Title     string   `yaml:"title"`
	XTitle    string   `yaml:"x_axis_title"`
	YTitle    string   `yaml:"y_axis_title"`
	Legend    *bool    `yaml:"legend"`
	Gridlines *bool    `yaml:"gridlines"`
	Colors    []string `yaml:"colors"`
	Position  *Box     `yaml:"position"`
}

// Box positions content in inches from the slide's top-left corner.
type Box struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Formatting carries deck-wide defaults merged under each slide's own
// formatting maps.
type Formatting struct {
	FontName   string           `yaml:"font_name"`
	BrandColor string           `yaml:"brand_color"` // hex, drives header fills and chart ramps
	Title      map[string]any   `yaml:"title"`
	Subtitle   map[string]any   `yaml:"subtitle"`
	Table      *TableFormatting `yaml:"table"`
	ChartColor []string         `yaml:"chart_colors"`
}
