package pptx

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Layout is a slide layout part from the template.
type Layout struct {
	partName string
	name     string // cSld name attribute, e.g. "Title and Content"
	raw      []byte
}

// PartName returns the layout's package part name.
func (l *Layout) PartName() string { return l.partName }

// Name returns the layout's display name.
func (l *Layout) Name() string { return l.name }

var layoutNamePattern = regexp.MustCompile(`<p:cSld[^>]*\sname="([^"]*)"`)

// Layouts returns the template's slide layouts in part order.
func (d *Document) Layouts() []*Layout {
	names := d.pkg.Names("ppt/slideLayouts/slideLayout")
	sort.Slice(names, func(i, j int) bool {
		return layoutIndex(names[i]) < layoutIndex(names[j])
	})
	var out []*Layout
	for _, n := range names {
		if strings.Contains(n, "_rels") {
			continue
		}
		raw, _ := d.pkg.Part(n)
		l := &Layout{partName: n, raw: raw}
		if m := layoutNamePattern.FindSubmatch(raw); m != nil {
			l.name = xmlUnescape(string(m[1]))
		}
		out = append(out, l)
	}
	return out
}

var layoutIndexPattern = regexp.MustCompile(`slideLayout(\d+)\.xml$`)

func layoutIndex(partName string) int {
	if m := layoutIndexPattern.FindStringSubmatch(partName); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 1 << 30
}

// LayoutByName finds a layout by display name, case-insensitively.
// An empty name, or no match, selects the first layout.
func (d *Document) LayoutByName(name string) *Layout {
	layouts := d.Layouts()
	if len(layouts) == 0 {
		return nil
	}
	if name != "" {
		for _, l := range layouts {
			if strings.EqualFold(l.name, name) {
				return l
			}
		}
		for _, l := range layouts {
			if strings.Contains(strings.ToLower(l.name), strings.ToLower(name)) {
				return l
			}
		}
	}
	return layouts[0]
}

// Placeholder shapes cloned from a layout when a slide is created.
var (
	spBlockPattern = regexp.MustCompile(`(?s)<p:sp>.*?</p:sp>`)
	phTypePattern  = regexp.MustCompile(`<p:ph[^>]*\stype="([^"]*)"`)
	phIdxPattern   = regexp.MustCompile(`<p:ph[^>]*\sidx="`)
	cNvPrPattern   = regexp.MustCompile(`<p:cNvPr[^>]*\sname="([^"]*)"`)
	xfrmPattern    = regexp.MustCompile(`<a:off x="(-?\d+)" y="(-?\d+)"/><a:ext cx="(\d+)" cy="(\d+)"/>`)
)

// Placeholder geometry defaults for layouts that inherit positions from
// the master instead of spelling them out.
var phDefaults = map[string]Rect{
	"title":    RectInches(0.5, 0.3, 9.0, 1.1),
	"ctrTitle": RectInches(0.5, 2.3, 9.0, 1.6),
	"subTitle": RectInches(0.5, 4.0, 9.0, 1.0),
	"body":     RectInches(0.5, 1.5, 9.0, 5.5),
}

// clonePlaceholders turns the layout's titled placeholders into
// editable text boxes so generated slides can refill them by name.
func clonePlaceholders(l *Layout) []Shape {
	if l == nil {
		return nil
	}
	var shapes []Shape
	for _, block := range spBlockPattern.FindAll(l.raw, -1) {
		tm := phTypePattern.FindSubmatch(block)
		phType := ""
		if tm != nil {
			phType = string(tm[1])
		} else if phIdxPattern.Match(block) {
			phType = "body"
		} else {
			continue
		}
		frame, ok := phDefaults[phType]
		if !ok {
			continue
		}
		if xm := xfrmPattern.FindSubmatch(block); xm != nil {
			frame = Rect{
				X: parseEMU(xm[1]), Y: parseEMU(xm[2]),
				W: parseEMU(xm[3]), H: parseEMU(xm[4]),
			}
		}
		name := phType
		if nm := cNvPrPattern.FindSubmatch(block); nm != nil && len(nm[1]) > 0 {
			name = xmlUnescape(string(nm[1]))
		}
		shapes = append(shapes, &TextBox{Name: name, Frame: frame})
	}
	return shapes
}

func parseEMU(b []byte) EMU {
	n, _ := strconv.ParseInt(string(b), 10, 64)
	return EMU(n)
}
