// Package pptx is a presentation document model over the opc container:
// it opens .pptx templates, adds and removes slides, builds text boxes,
// native tables and charts, and saves valid PresentationML packages.
package pptx

// EMU is an English Metric Unit, the native PresentationML length.
type EMU int64

// EMUPerInch is the EMU-to-inch conversion factor.
const EMUPerInch EMU = 914400

// Inches converts inches to EMUs.
func Inches(f float64) EMU { return EMU(f * float64(EMUPerInch)) }

// Inches converts back to inches.
func (e EMU) Inches() float64 { return float64(e) / float64(EMUPerInch) }

// Default slide size for fresh documents: 10 x 7.5 inches.
const (
	DefaultSlideWidth  EMU = 9144000
	DefaultSlideHeight EMU = 6858000
)

// centipoints renders a font size the way rPr sz attributes expect:
// hundredths of a point.
func centipoints(pt float64) int {
	return int(pt*100 + 0.5)
}

// Rect positions a shape on a slide.
type Rect struct {
	X, Y, W, H EMU
}

// RectInches builds a Rect from inch measurements.
func RectInches(x, y, w, h float64) Rect {
	return Rect{X: Inches(x), Y: Inches(y), W: Inches(w), H: Inches(h)}
}
