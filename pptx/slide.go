package pptx

import (
	"regexp"
	"strings"
)

// Slide is one slide in a Document. Slides opened from a template keep
// their original XML and support only run-level text edits; generated
// slides hold a shape list serialized at save time.
type Slide struct {
	doc      *Document
	partName string
	layout   string // layout part name, may be empty for template slides
	raw      []byte // template XML; nil for generated slides
	shapes   []Shape
}

// PartName returns the slide's package part name.
func (s *Slide) PartName() string { return s.partName }

// IsTemplate reports whether the slide came from the template file.
func (s *Slide) IsTemplate() bool { return s.raw != nil }

// AddShape appends a shape to a generated slide. Template slides ignore
// the call.
func (s *Slide) AddShape(sh Shape) {
	if s.IsTemplate() {
		return
	}
	s.shapes = append(s.shapes, sh)
}

// Shapes returns the shape list of a generated slide.
func (s *Slide) Shapes() []Shape { return s.shapes }

// FindTextBox returns the first text box whose name satisfies match.
func (s *Slide) FindTextBox(match func(name string) bool) *TextBox {
	for _, sh := range s.shapes {
		if tb, ok := sh.(*TextBox); ok && match(tb.Name) {
			return tb
		}
	}
	return nil
}

// runPattern captures the text content of <a:t> elements in raw slide
// XML. Run text never contains child elements, so a non-greedy span is
// exact.
var runPattern = regexp.MustCompile(`(<a:t>)(.*?)(</a:t>)`)

// rewriteRuns applies f to the text of every run on the slide and
// returns how many runs changed. Raw slides are patched in place;
// generated slides rewrite their shape runs.
func (s *Slide) rewriteRuns(f func(string) string) int {
	changed := 0
	if s.raw != nil {
		s.raw = runPattern.ReplaceAllFunc(s.raw, func(m []byte) (out []byte) {
			sub := runPattern.FindSubmatch(m)
			text := xmlUnescape(string(sub[2]))
			next := f(text)
			if next == text {
				return m
			}
			changed++
			return []byte(string(sub[1]) + esc(next) + string(sub[3]))
		})
		return changed
	}
	for _, sh := range s.shapes {
		tb, ok := sh.(*TextBox)
		if !ok {
			continue
		}
		for pi := range tb.Paragraphs {
			for ri := range tb.Paragraphs[pi].Runs {
				text := tb.Paragraphs[pi].Runs[ri].Text
				if next := f(text); next != text {
					tb.Paragraphs[pi].Runs[ri].Text = next
					changed++
				}
			}
		}
	}
	return changed
}

// ReplaceText substitutes every occurrence of old inside run text and
// returns the number of runs changed.
func (s *Slide) ReplaceText(old, new string) int {
	if old == "" {
		return 0
	}
	return s.rewriteRuns(func(text string) string {
		return strings.ReplaceAll(text, old, new)
	})
}

// ClearMatchingText empties every run whose text satisfies match and
// returns the number of runs cleared. Used to strip leftover
// instructional placeholder text from template layouts.
func (s *Slide) ClearMatchingText(match func(string) bool) int {
	return s.rewriteRuns(func(text string) string {
		if text != "" && match(text) {
			return ""
		}
		return text
	})
}

// Text returns all run text on the slide joined by newlines, mainly for
// tests and diagnostics.
func (s *Slide) Text() string {
	var parts []string
	if s.raw != nil {
		for _, m := range runPattern.FindAllSubmatch(s.raw, -1) {
			parts = append(parts, xmlUnescape(string(m[2])))
		}
		return strings.Join(parts, "\n")
	}
	for _, sh := range s.shapes {
		if tb, ok := sh.(*TextBox); ok {
			parts = append(parts, tb.Text())
		}
	}
	return strings.Join(parts, "\n")
}

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#34;", `"`,
	"&#39;", "'",
	"&#xA;", "\n",
	"&#x9;", "\t",
	"&#xD;", "\r",
	"&amp;", "&",
)

func xmlUnescape(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return xmlUnescaper.Replace(s)
}
