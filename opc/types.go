package opc

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

const typesNS = "http://schemas.openxmlformats.org/package/2006/content-types"

const emptyContentTypes = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`

type xmlTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	XMLNS     string        `xml:"xmlns,attr"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func (p *Package) loadTypes() (*xmlTypes, error) {
	data, ok := p.Part(ContentTypesPart)
	if !ok {
		return &xmlTypes{XMLNS: typesNS}, nil
	}
	var x xmlTypes
	if err := xml.Unmarshal(data, &x); err != nil {
		return nil, errors.Wrap(err, "opc: parsing content types")
	}
	x.XMLNS = typesNS
	return &x, nil
}

func (p *Package) storeTypes(x *xmlTypes) error {
	data, err := xml.Marshal(x)
	if err != nil {
		return errors.Wrap(err, "opc: serializing content types")
	}
	p.SetPart(ContentTypesPart, append([]byte(xml.Header), data...))
	return nil
}

// SetDefaultType registers the content type for a file extension.
func (p *Package) SetDefaultType(ext, contentType string) error {
	x, err := p.loadTypes()
	if err != nil {
		return err
	}
	for i := range x.Defaults {
		if x.Defaults[i].Extension == ext {
			x.Defaults[i].ContentType = contentType
			return p.storeTypes(x)
		}
	}
	x.Defaults = append(x.Defaults, xmlDefault{Extension: ext, ContentType: contentType})
	return p.storeTypes(x)
}

// SetOverrideType registers the content type of a single part.
func (p *Package) SetOverrideType(partName, contentType string) error {
	x, err := p.loadTypes()
	if err != nil {
		return err
	}
	name := "/" + clean(partName)
	for i := range x.Overrides {
		if x.Overrides[i].PartName == name {
			x.Overrides[i].ContentType = contentType
			return p.storeTypes(x)
		}
	}
	x.Overrides = append(x.Overrides, xmlOverride{PartName: name, ContentType: contentType})
	return p.storeTypes(x)
}

// RemoveOverrideType drops a part's content-type override.
func (p *Package) RemoveOverrideType(partName string) error {
	x, err := p.loadTypes()
	if err != nil {
		return err
	}
	name := "/" + clean(partName)
	for i := range x.Overrides {
		if x.Overrides[i].PartName == name {
			x.Overrides = append(x.Overrides[:i], x.Overrides[i+1:]...)
			return p.storeTypes(x)
		}
	}
	return nil
}

// ContentType resolves a part's content type: overrides first, then the
// extension default.
func (p *Package) ContentType(partName string) (string, error) {
	x, err := p.loadTypes()
	if err != nil {
		return "", err
	}
	name := "/" + clean(partName)
	for _, o := range x.Overrides {
		if o.PartName == name {
			return o.ContentType, nil
		}
	}
	ext := ""
	if i := lastDot(name); i >= 0 {
		ext = name[i+1:]
	}
	for _, d := range x.Defaults {
		if d.Extension == ext {
			return d.ContentType, nil
		}
	}
	return "", nil
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
		if s[i] == '/' {
			return -1
		}
	}
	return -1
}
