// Package opc reads and writes OOXML packages: zip archives of XML
// parts plus relationship and content-type indexes. It is the container
// layer under pptx and knows nothing about slides.
package opc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ContentTypesPart is the name of the package content-type index.
const ContentTypesPart = "[Content_Types].xml"

// Package is an in-memory OOXML package. Part names use forward slashes
// and no leading slash ("ppt/slides/slide1.xml"). Part order is
// preserved so saved archives are deterministic.
type Package struct {
	names []string
	parts map[string][]byte
}

// New creates an empty package with an empty content-type index.
func New() *Package {
	p := &Package{parts: make(map[string][]byte)}
	p.SetPart(ContentTypesPart, []byte(emptyContentTypes))
	return p
}

// OpenFile reads a package from a file on disk.
func OpenFile(pathname string) (*Package, error) {
	b, err := os.ReadFile(pathname)
	if err != nil {
		return nil, errors.Wrapf(err, "opc: opening %s", pathname)
	}
	p, err := FromBytes(b)
	if err != nil {
		return nil, errors.Wrapf(err, "opc: reading %s", pathname)
	}
	return p, nil
}

// FromBytes reads a package from zip archive bytes.
func FromBytes(b []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, errors.Wrap(err, "opc: not a zip archive")
	}
	p := &Package{parts: make(map[string][]byte)}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opc: opening part %s", f.Name)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "opc: reading part %s", f.Name)
		}
		p.SetPart(f.Name, data)
	}
	if _, ok := p.Part(ContentTypesPart); !ok {
		return nil, fmt.Errorf("opc: package has no %s", ContentTypesPart)
	}
	return p, nil
}

// Part returns the raw bytes of a part.
func (p *Package) Part(name string) ([]byte, bool) {
	b, ok := p.parts[clean(name)]
	return b, ok
}

// Has reports whether the package contains a part.
func (p *Package) Has(name string) bool {
	_, ok := p.parts[clean(name)]
	return ok
}

// SetPart adds or replaces a part. New parts append to the order.
func (p *Package) SetPart(name string, data []byte) {
	name = clean(name)
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
}

// RemovePart deletes a part and its relationship part, if any.
func (p *Package) RemovePart(name string) {
	name = clean(name)
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
	if rels := RelsPath(name); p.Has(rels) {
		p.RemovePart(rels)
	}
}

// Names returns part names with the given prefix, in package order.
// An empty prefix returns every part.
func (p *Package) Names(prefix string) []string {
	var out []string
	for _, n := range p.names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}

// Save writes the package as a zip archive.
func (p *Package) Save(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range p.names {
		fw, err := zw.Create(name)
		if err != nil {
			return errors.Wrapf(err, "opc: writing part %s", name)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return errors.Wrapf(err, "opc: writing part %s", name)
		}
	}
	return errors.Wrap(zw.Close(), "opc: closing archive")
}

// SaveFile writes the package to disk, creating parent directories as
// needed.
func (p *Package) SaveFile(pathname string) error {
	if dir := filepath.Dir(pathname); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "opc: creating %s", dir)
		}
	}
	f, err := os.Create(pathname)
	if err != nil {
		return errors.Wrapf(err, "opc: creating %s", pathname)
	}
	if err := p.Save(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "opc: closing %s", pathname)
}

// Bytes renders the package to zip archive bytes.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clean(name string) string {
	return strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "/")
}
