package style

import (
	"strings"

	"github.com/deckgen/deckgen/diag"
)

// Align is a horizontal paragraph alignment.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// Style describes run and cell formatting. Zero and nil fields mean
// "unset" so styles can be layered with Merge.
type Style struct {
	FontName  string
	FontSize  float64 // points
	Bold      *bool
	Italic    *bool
	Underline *bool
	Color     *Color // text color
	Fill      *Color // cell or shape background
	Align     Align
	WordWrap  *bool
}

// Flag returns a pointer suitable for the optional bool fields.
func Flag(b bool) *bool { return &b }

// IsBold reports the effective bold flag, defaulting to false.
func (s Style) IsBold() bool { return s.Bold != nil && *s.Bold }

// IsItalic reports the effective italic flag, defaulting to false.
func (s Style) IsItalic() bool { return s.Italic != nil && *s.Italic }

// IsUnderline reports the effective underline flag, defaulting to false.
func (s Style) IsUnderline() bool { return s.Underline != nil && *s.Underline }

// Merge overlays src onto dst: every set field of src wins, unset
// fields keep dst's value.
func Merge(dst Style, src Style) Style {
	if src.FontName != "" {
		dst.FontName = src.FontName
	}
	if src.FontSize > 0 {
		dst.FontSize = src.FontSize
	}
	if src.Bold != nil {
		dst.Bold = src.Bold
	}
	if src.Italic != nil {
		dst.Italic = src.Italic
	}
	if src.Underline != nil {
		dst.Underline = src.Underline
	}
	if src.Color != nil {
		dst.Color = src.Color
	}
	if src.Fill != nil {
		dst.Fill = src.Fill
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
	if src.WordWrap != nil {
		dst.WordWrap = src.WordWrap
	}
	return dst
}

// Resolve converts a declarative formatting map (as parsed from YAML)
// into a Style. Unknown keys are ignored; malformed values are skipped
// with a warning so one bad entry never sinks a slide.
//
// Recognized keys: font_name, font_size, bold, italic, underline,
// font_color, fill_color (alias background_color), alignment, word_wrap.
func Resolve(m map[string]any, logger diag.Logger) Style {
	if logger == nil {
		logger = diag.Nop()
	}
	var s Style
	for k, v := range m {
		switch k {
		case "font_name":
			if name, ok := v.(string); ok {
				s.FontName = name
			}
		case "font_size":
			if f, ok := toFloat(v); ok && f > 0 {
				s.FontSize = f
			} else {
				logger.Warn("ignoring malformed font_size", "value", v)
			}
		case "bold":
			if b, ok := v.(bool); ok {
				s.Bold = Flag(b)
			}
		case "italic":
			if b, ok := v.(bool); ok {
				s.Italic = Flag(b)
			}
		case "underline":
			if b, ok := v.(bool); ok {
				s.Underline = Flag(b)
			}
		case "font_color":
			if c, ok := resolveColor(v, logger); ok {
				s.Color = &c
			}
		case "fill_color", "background_color":
			if c, ok := resolveColor(v, logger); ok {
				s.Fill = &c
			}
		case "alignment":
			if a, ok := v.(string); ok {
				switch Align(strings.ToLower(a)) {
				case AlignLeft, AlignCenter, AlignRight, AlignJustify:
					s.Align = Align(strings.ToLower(a))
				default:
					logger.Warn("ignoring unknown alignment", "value", a)
				}
			}
		case "word_wrap":
			if b, ok := v.(bool); ok {
				s.WordWrap = Flag(b)
			}
		}
	}
	return s
}

func resolveColor(v any, logger diag.Logger) (Color, bool) {
	switch t := v.(type) {
	case string:
		c, err := ParseHex(t)
		if err != nil {
			logger.Warn("ignoring malformed color", "value", t)
			return Color{}, false
		}
		return c, true
	case map[string]any:
		r, rok := toFloat(t["r"])
		g, gok := toFloat(t["g"])
		b, bok := toFloat(t["b"])
		if rok && gok && bok {
			return Color{R: clamp8(r), G: clamp8(g), B: clamp8(b)}, true
		}
	}
	logger.Warn("ignoring malformed color", "value", v)
	return Color{}, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func clamp8(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f)
}
