// Package layout computes table geometry for slides: bucketed row and
// font sizing by row count, bounded shrink passes when a table exceeds
// its box, and even column splitting with advisory minimum widths. All
// lengths are in inches, font sizes in points.
package layout

import "github.com/deckgen/deckgen/diag"

// Rect is a box on a slide, in inches.
type Rect struct {
	Left, Top, Width, Height float64
}

// Plan is the resolved geometry for one table.
type Plan struct {
	RowHeight      float64 // data row height
	HeaderHeight   float64 // header row height
	ColWidth       float64 // uniform column width
	TableWidth     float64 // total width actually used
	FontSize       float64 // data cell font, points
	HeaderFontSize float64 // header cell font, points
	ShrinkPasses   int     // vertical shrink passes applied (0..3)
	Overflow       bool    // true when the table still exceeds the box
}

// Sizing buckets by data row count. Tables with more rows get tighter
// rows and smaller fonts before any shrinking happens.
type bucket struct {
	maxRows    int
	rowH       float64
	headerH    float64
	font       float64
	headerFont float64
}

var rowBuckets = []bucket{
	{5, 0.40, 0.50, 12, 14},
	{10, 0.33, 0.45, 11, 13},
	{15, 0.28, 0.40, 10, 12},
	{20, 0.24, 0.38, 9, 11},
	{25, 0.21, 0.35, 8, 10},
	{30, 0.19, 0.32, 7, 9},
}

// Fallback bucket for very tall tables.
var tallBucket = bucket{0, 0.17, 0.30, 6, 8}

// Hard floors: shrinking never pushes geometry below these.
const (
	minRowHeight    = 0.12
	minHeaderHeight = 0.18
	minFontSize     = 6
	maxShrinkPasses = 3
)

// Recommended minimum column widths by column count. The even split of
// the box always wins; a split below the tier minimum only warns, since
// fitting the page beats readability.
type widthTier struct {
	maxCols int
	min     float64
}

var widthTiers = []widthTier{
	{4, 1.2},
	{7, 0.9},
	{10, 0.7},
}

var wideTier = widthTier{0, 0.5}

func bucketFor(rows int) bucket {
	for _, b := range rowBuckets {
		if rows <= b.maxRows {
			return b
		}
	}
	return tallBucket
}

func tierFor(cols int) widthTier {
	for _, c := range widthTiers {
		if cols <= c.maxCols {
			return c
		}
	}
	return wideTier
}

// PlanTable computes the geometry for a table with the given data row
// and column counts inside box. It never fails; if the table cannot fit
// even after the bounded shrink passes the plan is returned with
// Overflow set and a warning logged.
func PlanTable(rows, cols int, box Rect, logger diag.Logger) Plan {
	if logger == nil {
		logger = diag.Nop()
	}
	if rows < 0 {
		rows = 0
	}
	if cols < 1 {
		cols = 1
	}
	b := bucketFor(rows)
	p := Plan{
		RowHeight:      b.rowH,
		HeaderHeight:   b.headerH,
		FontSize:       b.font,
		HeaderFontSize: b.headerFont,
	}
	p.planWidth(cols, box, logger)
	p.planHeight(rows, box, logger)
	return p
}

func (p *Plan) planWidth(cols int, box Rect, logger diag.Logger) {
	w := box.Width / float64(cols)
	if min := tierFor(cols).min; w < min {
		logger.Warn("columns narrower than the recommended minimum",
			"cols", cols, "width_in", w, "min_in", min)
	}
	p.ColWidth = w
	p.TableWidth = box.Width
}

// planHeight applies up to maxShrinkPasses vertical shrink passes. The
// first pass targets 92% of the box, later passes 90% and also step the
// fonts down. Heights only ever decrease and are clamped to the floors,
// so a table can still overflow; that is reported, not fixed.
func (p *Plan) planHeight(rows int, box Rect, logger diag.Logger) {
	if box.Height <= 0 {
		return
	}
	needed := func() float64 {
		return p.HeaderHeight + float64(rows)*p.RowHeight
	}
	for pass := 1; pass <= maxShrinkPasses; pass++ {
		if needed() <= box.Height {
			return
		}
		margin := 0.92
		if pass > 1 {
			margin = 0.90
		}
		scale := box.Height * margin / needed()
		p.RowHeight = maxf(p.RowHeight*scale, minRowHeight)
		p.HeaderHeight = maxf(p.HeaderHeight*scale, minHeaderHeight)
		if pass > 1 {
			p.FontSize = maxf(p.FontSize-1, minFontSize)
			p.HeaderFontSize = maxf(p.HeaderFontSize-1, minFontSize)
		}
		p.ShrinkPasses = pass
		logger.Debug("shrink pass applied",
			"pass", pass, "rows", rows, "row_height_in", p.RowHeight)
	}
	if needed() > box.Height {
		p.Overflow = true
		logger.Warn("table exceeds its box after shrinking",
			"rows", rows, "needed_in", needed(), "box_in", box.Height)
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
