package deck

import (
	"os"

	"github.com/deckgen/deckgen/diag"
	"github.com/deckgen/deckgen/pptx"
	"github.com/deckgen/deckgen/tabular"
	"github.com/pkg/errors"
)

// AssemblerConfig configures a whole-deck run.
type AssemblerConfig struct {
	Logger        diag.Logger
	StrictSources bool
	CoverToken    string // cover text token replaced by the entity name
}

// Job is the input of one deck generation run.
type Job struct {
	Store      *tabular.DataStore
	Pages      []PageConfig
	Formatting Formatting
	Template   string // template .pptx path; empty builds a fresh deck
	Output     string
	Entity     string
}

// Assembler opens the template, preserves its cover and closer,
// generates the configured pages between them and writes the result.
type Assembler struct {
	logger     diag.Logger
	strict     bool
	coverToken string
}

// NewAssembler creates an Assembler.
func NewAssembler(cfg AssemblerConfig) *Assembler {
	logger := cfg.Logger
	if logger == nil {
		logger = diag.Nop()
	}
	token := cfg.CoverToken
	if token == "" {
		token = "AIL"
	}
	return &Assembler{logger: logger, strict: cfg.StrictSources, coverToken: token}
}

// Generate runs the job. Environment failures (unreadable template,
// failed save) return errors; per-slide data problems degrade on their
// slides.
func (a *Assembler) Generate(job Job) error {
	doc, err := a.openTemplate(job.Template)
	if err != nil {
		return err
	}
	engine := &Engine{
		Builder:  &Builder{Doc: doc, Logger: a.logger, Defaults: job.Formatting},
		Resolver: &tabular.Resolver{Logger: a.logger, Strict: a.strict},
		Logger:   a.logger,
	}

	templateSlides := doc.SlideCount()
	closerIdx := -1
	if templateSlides >= 2 {
		closerIdx = templateSlides - 1
		a.prepareCover(doc.Slides()[0], job.Entity)
		// Everything between cover and the regenerated content goes.
		for doc.SlideCount() > 1 {
			if err := doc.RemoveSlide(1); err != nil {
				return errors.Wrap(err, "deck: trimming template")
			}
		}
		a.logger.Info("template adopted", "slides", templateSlides)
	} else if templateSlides > 0 {
		a.logger.Warn("template has fewer than two slides, regenerating all",
			"slides", templateSlides)
		for doc.SlideCount() > 0 {
			if err := doc.RemoveSlide(0); err != nil {
				return errors.Wrap(err, "deck: trimming template")
			}
		}
	}

	// Pages render strictly in list order; Number labels a page for
	// diagnostics, it is not a sort key.
	for _, page := range job.Pages {
		if err := engine.GeneratePage(doc, job.Store, page); err != nil {
			return err
		}
	}

	if closerIdx >= 0 {
		a.appendCloser(doc, job.Template, closerIdx)
	}

	if err := doc.SaveFile(job.Output); err != nil {
		return errors.Wrapf(err, "deck: writing %s", job.Output)
	}
	a.logger.Info("deck written", "output", job.Output, "slides", doc.SlideCount())
	return nil
}

func (a *Assembler) openTemplate(path string) (*pptx.Document, error) {
	if path == "" {
		a.logger.Info("no template, starting from a blank deck")
		doc, err := pptx.New()
		return doc, errors.Wrap(err, "deck: creating blank deck")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "deck: template %s", path)
	}
	doc, err := pptx.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "deck: opening template %s", path)
	}
	return doc, nil
}

// prepareCover swaps the entity token on the cover slide.
func (a *Assembler) prepareCover(cover *pptx.Slide, entity string) {
	if entity == "" {
		return
	}
	if n := cover.ReplaceText(a.coverToken, entity); n > 0 {
		a.logger.Info("cover token replaced", "token", a.coverToken,
			"entity", entity, "runs", n)
	} else {
		a.logger.Debug("cover token not found", "token", a.coverToken)
	}
}

// appendCloser re-clones the template's last slide from a pristine copy
// so generated content never leaks into it. When the template cannot be
// re-read the deck still closes, on a blank page.
func (a *Assembler) appendCloser(doc *pptx.Document, templatePath string, closerIdx int) {
	pristine, err := pptx.Open(templatePath)
	if err == nil && closerIdx < pristine.SlideCount() {
		if _, err := doc.CopySlideFrom(pristine, closerIdx); err == nil {
			a.logger.Debug("closer slide restored from template", "index", closerIdx)
			return
		}
		a.logger.Warn("closer clone failed, appending blank closer", "error", err)
	} else {
		a.logger.Warn("template re-open for closer failed, appending blank closer",
			"error", err)
	}
	if _, err := doc.AddSlide(doc.LayoutByName("Blank")); err != nil {
		a.logger.Error("blank closer could not be added", "error", err)
	}
}
