// Package config loads the YAML slide and formatting configurations
// into the deck schema.
package config

import (
	"os"

	"github.com/deckgen/deckgen/deck"
	"github.com/pkg/errors"
	"github.com/tiendc/go-deepcopy"
	"gopkg.in/yaml.v3"
)

// slidesFile is the shape of slides.yaml: the slide list plus optional
// shared defaults applied to every slide that does not override them.
type slidesFile struct {
	Slides   []deck.PageConfig `yaml:"slides"`
	Defaults *slideDefaults    `yaml:"defaults"`
}

type slideDefaults struct {
	Layout             string                `yaml:"layout_name"`
	TitleFormatting    map[string]any        `yaml:"title_formatting"`
	SubtitleFormatting map[string]any        `yaml:"subtitle_formatting"`
	Table              *deck.TableFormatting `yaml:"table_formatting"`
	Chart              *chartDefaults        `yaml:"chart"`
}

type chartDefaults struct {
	Legend    *bool    `yaml:"legend"`
	Gridlines *bool    `yaml:"gridlines"`
	Colors    []string `yaml:"colors"`
}

// LoadSlides parses slides.yaml. Shared defaults are deep-copied into
// each slide, never aliased, so later per-slide mutation stays local.
func LoadSlides(path string) ([]deck.PageConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	var file slidesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}
	if len(file.Slides) == 0 {
		return nil, errors.Errorf("config: %s declares no slides", path)
	}
	for i := range file.Slides {
		if file.Slides[i].Number == 0 {
			file.Slides[i].Number = i + 1
		}
		if err := applyDefaults(&file.Slides[i], file.Defaults); err != nil {
			return nil, errors.Wrapf(err, "config: slide %d defaults", file.Slides[i].Number)
		}
	}
	return file.Slides, nil
}

func applyDefaults(page *deck.PageConfig, d *slideDefaults) error {
	if d == nil {
		return nil
	}
	if page.Layout == "" {
		page.Layout = d.Layout
	}
	if page.TitleFormatting == nil && d.TitleFormatting != nil {
		if err := deepcopy.Copy(&page.TitleFormatting, d.TitleFormatting); err != nil {
			return err
		}
	}
	if page.SubtitleFormatting == nil && d.SubtitleFormatting != nil {
		if err := deepcopy.Copy(&page.SubtitleFormatting, d.SubtitleFormatting); err != nil {
			return err
		}
	}
	if page.TableMapping != nil && page.TableMapping.Formatting == nil && d.Table != nil {
		var tf deck.TableFormatting
		if err := deepcopy.Copy(&tf, d.Table); err != nil {
			return err
		}
		page.TableMapping.Formatting = &tf
	}
	if page.Chart != nil && d.Chart != nil {
		if page.Chart.Legend == nil && d.Chart.Legend != nil {
			legend := *d.Chart.Legend
			page.Chart.Legend = &legend
		}
		if page.Chart.Gridlines == nil && d.Chart.Gridlines != nil {
			grid := *d.Chart.Gridlines
			page.Chart.Gridlines = &grid
		}
		if len(page.Chart.Colors) == 0 && len(d.Chart.Colors) > 0 {
			if err := deepcopy.Copy(&page.Chart.Colors, d.Chart.Colors); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadFormatting parses formatting.yaml into the deck-wide defaults.
// A missing file is not an error; the zero Formatting falls back to
// built-in visual defaults.
func LoadFormatting(path string) (deck.Formatting, error) {
	var f deck.Formatting
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, errors.Wrapf(err, "config: reading %s", path)
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return f, errors.Wrapf(err, "config: parsing %s", path)
	}
	return f, nil
}
