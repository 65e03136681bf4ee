package opc

import (
	"encoding/xml"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const relsNS = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship links a part to another part (or an external resource).
type Relationship struct {
	ID     string
	Type   string
	Target string
	// External marks targets outside the package (hyperlinks).
	External bool
}

type xmlRelationships struct {
	XMLName xml.Name `xml:"Relationships"`
	XMLNS   string   `xml:"xmlns,attr"`
	Rels    []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	XMLName    xml.Name `xml:"Relationship"`
	ID         string   `xml:"Id,attr"`
	Type       string   `xml:"Type,attr"`
	Target     string   `xml:"Target,attr"`
	TargetMode string   `xml:"TargetMode,attr,omitempty"`
}

// RelsPath returns the name of the relationship part for a part. The
// empty string addresses the package-level rels.
func RelsPath(partName string) string {
	if partName == "" {
		return "_rels/.rels"
	}
	dir, base := path.Split(clean(partName))
	return dir + "_rels/" + base + ".rels"
}

// Rels returns the relationships of a part, in stored order. A missing
// rels part yields an empty list.
func (p *Package) Rels(partName string) ([]Relationship, error) {
	data, ok := p.Part(RelsPath(partName))
	if !ok {
		return nil, nil
	}
	var x xmlRelationships
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, errors.Wrapf(err, "opc: parsing %s", RelsPath(partName))
	}
	out := make([]Relationship, len(x.Rels))
	for i, r := range x.Rels {
		out[i] = Relationship{
			ID:       r.ID,
			Type:     r.Type,
			Target:   r.Target,
			External: r.TargetMode == "External",
		}
	}
	return out, nil
}

// SetRels replaces the relationships of a part.
func (p *Package) SetRels(partName string, rels []Relationship) error {
	x := xmlRelationships{XMLNS: relsNS}
	for _, r := range rels {
		xr := xmlRelationship{ID: r.ID, Type: r.Type, Target: r.Target}
		if r.External {
			xr.TargetMode = "External"
		}
		x.Rels = append(x.Rels, xr)
	}
	data, err := xml.Marshal(x)
	if err != nil {
		return errors.Wrapf(err, "opc: serializing %s", RelsPath(partName))
	}
	p.SetPart(RelsPath(partName), append([]byte(xml.Header), data...))
	return nil
}

// AddRel appends one relationship to a part, assigning the next free
// "rId<n>" when rel.ID is empty, and returns the ID used.
func (p *Package) AddRel(partName string, rel Relationship) (string, error) {
	rels, err := p.Rels(partName)
	if err != nil {
		return "", err
	}
	if rel.ID == "" {
		rel.ID = nextRelID(rels)
	}
	rels = append(rels, rel)
	if err := p.SetRels(partName, rels); err != nil {
		return "", err
	}
	return rel.ID, nil
}

func nextRelID(rels []Relationship) string {
	max := 0
	for _, r := range rels {
		if n, err := strconv.Atoi(strings.TrimPrefix(r.ID, "rId")); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("rId%d", max+1)
}

// ResolveTarget turns a relationship target relative to basePart into a
// package part name. Absolute targets ("/ppt/...") resolve against the
// package root.
func ResolveTarget(basePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return clean(target)
	}
	dir, _ := path.Split(clean(basePart))
	return clean(path.Join(dir, target))
}

// RelativeTarget renders a part name as a target relative to basePart,
// the form stored in rels files.
func RelativeTarget(basePart, partName string) string {
	dir, _ := path.Split(clean(basePart))
	dir = strings.TrimSuffix(dir, "/")
	part := clean(partName)
	if dir == "" {
		return part
	}
	// Walk up until part shares the prefix.
	prefix := dir
	up := ""
	for prefix != "" && !strings.HasPrefix(part, prefix+"/") {
		prefix = path.Dir(prefix)
		if prefix == "." {
			prefix = ""
		}
		up += "../"
	}
	if prefix == "" {
		return up + part
	}
	return up + strings.TrimPrefix(part, prefix+"/")
}
