// Package style resolves declarative formatting maps into concrete text
// and fill styles, including hex color parsing and the lightening ramp
// used for chart series.
package style

import (
	"fmt"
	"strings"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Hex renders the color as "RRGGBB" (no leading '#'), the form OOXML
// attributes expect.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHex parses "#RRGGBB", "RRGGBB" or the short "#RGB" form.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, fmt.Errorf("style: invalid hex color %q", s)
	}
	var c Color
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("style: invalid hex color %q", s)
	}
	return c, nil
}

// Lighten mixes c toward white. frac 0 returns c unchanged, 1 returns
// white.
func Lighten(c Color, frac float64) Color {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*frac)
	}
	return Color{R: mix(c.R), G: mix(c.G), B: mix(c.B)}
}

// Ramp produces n series colors: the base color followed by
// progressively lighter variants. Later series stay distinguishable by
// capping the lightening at 70%.
func Ramp(base Color, n int) []Color {
	if n <= 0 {
		return nil
	}
	out := make([]Color, n)
	for i := 0; i < n; i++ {
		frac := 0.0
		if n > 1 {
			frac = 0.7 * float64(i) / float64(n-1)
		}
		out[i] = Lighten(base, frac)
	}
	return out
}
