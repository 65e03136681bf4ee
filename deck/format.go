package deck

import (
	"fmt"
	"strings"

	"github.com/deckgen/deckgen/tabular"
)

// FormatNumber renders a cell for display under a named format kind:
// "percentage", "currency", "integer", "number", or "" for best-effort
// default formatting. Non-numeric values render as their plain string.
func FormatNumber(v tabular.Value, kind string) string {
	f, ok := tabular.Number(v)
	if !ok {
		return tabular.String(v)
	}
	switch kind {
	case "percentage":
		return formatPercent(f)
	case "currency":
		return "$" + groupThousands(fmt.Sprintf("%.0f", f))
	case "integer":
		return groupThousands(fmt.Sprintf("%.0f", f))
	case "number":
		return groupThousands(fmt.Sprintf("%.2f", f))
	}
	if f == float64(int64(f)) {
		return groupThousands(fmt.Sprintf("%.0f", f))
	}
	return groupThousands(fmt.Sprintf("%.2f", f))
}

// formatPercent guesses the scale of a percentage-like value: fractions
// below 1 are ratios and get multiplied up, values above 100 are
// basis-point style and get divided down, anything in between is
// already a percentage.
func formatPercent(f float64) string {
	switch {
	case f < 1:
		f *= 100
	case f > 100:
		f /= 100
	}
	return fmt.Sprintf("%.1f%%", f)
}

// groupThousands inserts commas into the integer part of a formatted
// number.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	out := intPart + frac
	if neg {
		out = "-" + out
	}
	return out
}

// chartValue coerces a cell to a numeric chart point. Unparseable cells
// plot as zero rather than breaking the series.
func chartValue(v tabular.Value) float64 {
	f, ok := tabular.Number(v)
	if !ok {
		return 0
	}
	return f
}
