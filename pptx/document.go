package pptx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/deckgen/deckgen/opc"
	"github.com/pkg/errors"
)

const presentationPart = "ppt/presentation.xml"

const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
)

const (
	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML          = "application/xml"
)

// Document is an open presentation.
type Document struct {
	pkg      *opc.Package
	slides   []*Slide
	slideSeq int // highest slide part index ever used
	chartSeq int // highest chart part index ever used
	slideW   EMU
	slideH   EMU
}

// Open reads a presentation from disk.
func Open(path string) (*Document, error) {
	pkg, err := opc.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return fromPackage(pkg)
}

// FromBytes reads a presentation from .pptx bytes.
func FromBytes(b []byte) (*Document, error) {
	pkg, err := opc.FromBytes(b)
	if err != nil {
		return nil, err
	}
	return fromPackage(pkg)
}

var (
	sldIdPattern   = regexp.MustCompile(`<p:sldId[^>]*\sr:id="([^"]+)"`)
	sldSzPattern   = regexp.MustCompile(`<p:sldSz[^>]*\scx="(\d+)"[^>]*\scy="(\d+)"`)
	sldIdLstSpan   = regexp.MustCompile(`(?s)<p:sldIdLst/>|<p:sldIdLst>.*?</p:sldIdLst>`)
	partIdxPattern = regexp.MustCompile(`(\d+)\.xml$`)
)

func fromPackage(pkg *opc.Package) (*Document, error) {
	pres, ok := pkg.Part(presentationPart)
	if !ok {
		return nil, errors.Errorf("pptx: package has no %s", presentationPart)
	}
	d := &Document{pkg: pkg, slideW: DefaultSlideWidth, slideH: DefaultSlideHeight}
	if m := sldSzPattern.FindSubmatch(pres); m != nil {
		d.slideW = parseEMU(m[1])
		d.slideH = parseEMU(m[2])
	}
	rels, err := pkg.Rels(presentationPart)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]opc.Relationship, len(rels))
	for _, r := range rels {
		byID[r.ID] = r
	}
	for _, m := range sldIdPattern.FindAllSubmatch(pres, -1) {
		rel, ok := byID[string(m[1])]
		if !ok {
			continue
		}
		partName := opc.ResolveTarget(presentationPart, rel.Target)
		raw, ok := pkg.Part(partName)
		if !ok {
			return nil, errors.Errorf("pptx: slide part %s missing", partName)
		}
		s := &Slide{doc: d, partName: partName, raw: raw}
		if srels, err := pkg.Rels(partName); err == nil {
			for _, r := range srels {
				if r.Type == relTypeSlideLayout {
					s.layout = opc.ResolveTarget(partName, r.Target)
					break
				}
			}
		}
		d.slides = append(d.slides, s)
	}
	d.slideSeq = maxPartIndex(pkg, "ppt/slides/slide")
	d.chartSeq = maxPartIndex(pkg, "ppt/charts/chart")
	return d, nil
}

func maxPartIndex(pkg *opc.Package, prefix string) int {
	max := 0
	for _, n := range pkg.Names(prefix) {
		if strings.Contains(n, "_rels") {
			continue
		}
		if m := partIdxPattern.FindStringSubmatch(n); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil && v > max {
				max = v
			}
		}
	}
	return max
}

// New creates a presentation with no slides, a default master, a
// "Title and Content" layout and a "Blank" layout.
func New() (*Document, error) {
	pkg := opc.New()
	steps := []struct {
		fn  func() error
		msg string
	}{
		{func() error { return pkg.SetDefaultType("rels", ctRels) }, "default rels type"},
		{func() error { return pkg.SetDefaultType("xml", ctXML) }, "default xml type"},
		{func() error { return pkg.SetOverrideType(presentationPart, ctPresentation) }, "presentation type"},
		{func() error { return pkg.SetOverrideType("ppt/slideMasters/slideMaster1.xml", ctSlideMaster) }, "master type"},
		{func() error { return pkg.SetOverrideType("ppt/slideLayouts/slideLayout1.xml", ctSlideLayout) }, "layout type"},
		{func() error { return pkg.SetOverrideType("ppt/slideLayouts/slideLayout2.xml", ctSlideLayout) }, "layout type"},
		{func() error { return pkg.SetOverrideType("ppt/theme/theme1.xml", ctTheme) }, "theme type"},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return nil, errors.Wrap(err, "pptx: "+s.msg)
		}
	}
	pkg.SetPart(presentationPart, []byte(skeletonPresentation))
	pkg.SetPart("ppt/slideMasters/slideMaster1.xml", []byte(skeletonMaster))
	pkg.SetPart("ppt/slideLayouts/slideLayout1.xml", []byte(skeletonLayoutTitleContent))
	pkg.SetPart("ppt/slideLayouts/slideLayout2.xml", []byte(skeletonLayoutBlank))
	pkg.SetPart("ppt/theme/theme1.xml", []byte(skeletonTheme))

	if err := pkg.SetRels("", []opc.Relationship{
		{ID: "rId1", Type: relTypeOfficeDocument, Target: "ppt/presentation.xml"},
	}); err != nil {
		return nil, err
	}
	if err := pkg.SetRels(presentationPart, []opc.Relationship{
		{ID: "rId1", Type: relTypeSlideMaster, Target: "slideMasters/slideMaster1.xml"},
		{ID: "rId2", Type: relTypeTheme, Target: "theme/theme1.xml"},
	}); err != nil {
		return nil, err
	}
	if err := pkg.SetRels("ppt/slideMasters/slideMaster1.xml", []opc.Relationship{
		{ID: "rId1", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
		{ID: "rId2", Type: relTypeSlideLayout, Target: "../slideLayouts/slideLayout2.xml"},
		{ID: "rId3", Type: relTypeTheme, Target: "../theme/theme1.xml"},
	}); err != nil {
		return nil, err
	}
	for _, layout := range []string{"ppt/slideLayouts/slideLayout1.xml", "ppt/slideLayouts/slideLayout2.xml"} {
		if err := pkg.SetRels(layout, []opc.Relationship{
			{ID: "rId1", Type: relTypeSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
		}); err != nil {
			return nil, err
		}
	}
	return fromPackage(pkg)
}

// Slides returns the slides in presentation order.
func (d *Document) Slides() []*Slide { return d.slides }

// SlideCount returns the number of slides.
func (d *Document) SlideCount() int { return len(d.slides) }

// SlideSize returns the slide dimensions.
func (d *Document) SlideSize() (w, h EMU) { return d.slideW, d.slideH }

// AddSlide appends a generated slide built on the given layout. A nil
// layout uses the first layout in the package. The layout's titled
// placeholders are cloned into editable text boxes.
func (d *Document) AddSlide(layout *Layout) (*Slide, error) {
	if layout == nil {
		layout = d.LayoutByName("")
	}
	d.slideSeq++
	partName := fmt.Sprintf("ppt/slides/slide%d.xml", d.slideSeq)
	if err := d.pkg.SetOverrideType(partName, ctSlide); err != nil {
		return nil, err
	}
	s := &Slide{doc: d, partName: partName, shapes: clonePlaceholders(layout)}
	if layout != nil {
		s.layout = layout.partName
		if err := d.pkg.SetRels(partName, []opc.Relationship{
			{ID: "rId1", Type: relTypeSlideLayout, Target: opc.RelativeTarget(partName, layout.partName)},
		}); err != nil {
			return nil, err
		}
	}
	// Reserve the part so the name is taken even before flush.
	d.pkg.SetPart(partName, nil)
	d.slides = append(d.slides, s)
	return s, nil
}

// RemoveSlide deletes the slide at index i (0-based).
func (d *Document) RemoveSlide(i int) error {
	if i < 0 || i >= len(d.slides) {
		return errors.Errorf("pptx: slide index %d out of range", i)
	}
	d.pkg.RemovePart(d.slides[i].partName)
	if err := d.pkg.RemoveOverrideType(d.slides[i].partName); err != nil {
		return err
	}
	d.slides = append(d.slides[:i], d.slides[i+1:]...)
	return nil
}

// CopySlideFrom clones slide i of src into this document, including
// every part the slide references that this document does not already
// have. Relationship IDs are preserved so references inside the slide
// XML stay valid.
func (d *Document) CopySlideFrom(src *Document, i int) (*Slide, error) {
	if i < 0 || i >= len(src.slides) {
		return nil, errors.Errorf("pptx: source slide index %d out of range", i)
	}
	from := src.slides[i]
	data := from.raw
	if data == nil {
		data = slideXML(from.shapes)
	}
	d.slideSeq++
	partName := fmt.Sprintf("ppt/slides/slide%d.xml", d.slideSeq)
	d.pkg.SetPart(partName, append([]byte(nil), data...))
	if err := d.pkg.SetOverrideType(partName, ctSlide); err != nil {
		return nil, err
	}
	rels, err := src.pkg.Rels(from.partName)
	if err != nil {
		return nil, err
	}
	// Both slides live under ppt/slides/, so relative targets carry over.
	if len(rels) > 0 {
		if err := d.pkg.SetRels(partName, rels); err != nil {
			return nil, err
		}
	}
	visited := make(map[string]bool)
	for _, r := range rels {
		if r.External {
			continue
		}
		target := opc.ResolveTarget(from.partName, r.Target)
		if err := d.copyPartTree(src, target, visited); err != nil {
			return nil, err
		}
	}
	s := &Slide{doc: d, partName: partName, raw: append([]byte(nil), data...)}
	for _, r := range rels {
		if r.Type == relTypeSlideLayout {
			s.layout = opc.ResolveTarget(partName, r.Target)
			break
		}
	}
	d.slides = append(d.slides, s)
	return s, nil
}

// copyPartTree copies a part and everything it references from src,
// skipping parts this document already has.
func (d *Document) copyPartTree(src *Document, partName string, visited map[string]bool) error {
	if visited[partName] || d.pkg.Has(partName) {
		return nil
	}
	visited[partName] = true
	data, ok := src.pkg.Part(partName)
	if !ok {
		return nil
	}
	d.pkg.SetPart(partName, append([]byte(nil), data...))
	if ct, err := src.pkg.ContentType(partName); err == nil && ct != "" {
		if err := d.pkg.SetOverrideType(partName, ct); err != nil {
			return err
		}
	}
	rels, err := src.pkg.Rels(partName)
	if err != nil || len(rels) == 0 {
		return nil
	}
	if err := d.pkg.SetRels(partName, rels); err != nil {
		return err
	}
	for _, r := range rels {
		if r.External {
			continue
		}
		if err := d.copyPartTree(src, opc.ResolveTarget(partName, r.Target), visited); err != nil {
			return err
		}
	}
	return nil
}

// flush serializes generated slides and rewrites the slide list in
// presentation.xml and its rels.
func (d *Document) flush() error {
	for _, s := range d.slides {
		if s.raw != nil {
			d.pkg.SetPart(s.partName, s.raw)
		} else {
			d.pkg.SetPart(s.partName, slideXML(s.shapes))
		}
	}
	rels, err := d.pkg.Rels(presentationPart)
	if err != nil {
		return err
	}
	kept := rels[:0]
	for _, r := range rels {
		if r.Type != relTypeSlide {
			kept = append(kept, r)
		}
	}
	maxID := 0
	for _, r := range kept {
		if n, err := strconv.Atoi(strings.TrimPrefix(r.ID, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	var sldIds strings.Builder
	sldIds.WriteString(`<p:sldIdLst>`)
	for i, s := range d.slides {
		maxID++
		id := fmt.Sprintf("rId%d", maxID)
		kept = append(kept, opc.Relationship{
			ID:     id,
			Type:   relTypeSlide,
			Target: opc.RelativeTarget(presentationPart, s.partName),
		})
		fmt.Fprintf(&sldIds, `<p:sldId id="%d" r:id="%s"/>`, 256+i, id)
	}
	sldIds.WriteString(`</p:sldIdLst>`)
	if err := d.pkg.SetRels(presentationPart, kept); err != nil {
		return err
	}
	pres, _ := d.pkg.Part(presentationPart)
	if sldIdLstSpan.Match(pres) {
		pres = sldIdLstSpan.ReplaceAll(pres, []byte(sldIds.String()))
	} else if i := strings.Index(string(pres), "<p:sldSz"); i >= 0 {
		pres = []byte(string(pres[:i]) + sldIds.String() + string(pres[i:]))
	} else {
		return errors.New("pptx: presentation.xml has no slide list anchor")
	}
	d.pkg.SetPart(presentationPart, pres)
	return nil
}

// Bytes renders the document to .pptx bytes.
func (d *Document) Bytes() ([]byte, error) {
	if err := d.flush(); err != nil {
		return nil, err
	}
	return d.pkg.Bytes()
}

// SaveFile writes the document to disk, creating parent directories as
// needed.
func (d *Document) SaveFile(path string) error {
	if err := d.flush(); err != nil {
		return err
	}
	return d.pkg.SaveFile(path)
}
