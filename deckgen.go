// Package deckgen turns tabular report data and declarative slide
// configuration into finished PowerPoint decks. The heavy lifting lives
// in the subpackages (tabular, layout, style, deck, pptx); this package
// provides the top-level Generator most callers want.
package deckgen

import (
	"os"

	"github.com/deckgen/deckgen/deck"
	"github.com/deckgen/deckgen/diag"
	"github.com/deckgen/deckgen/tabular"
)

// Job describes one deck generation run.
type Job struct {
	Store      *tabular.DataStore // source -> table data, never nil
	Pages      []deck.PageConfig  // slides to generate, in order
	Formatting deck.Formatting    // deck-wide formatting defaults
	Template   string             // template .pptx path; empty for a blank deck
	Output     string             // destination .pptx path
	Entity     string             // replaces the cover token when non-empty
}

// Generator produces decks. It is safe for concurrent use: each Generate
// call works on its own document.
type Generator struct {
	logger        diag.Logger
	strictSources bool
	coverToken    string
}

// New creates a Generator using functional options.
//
// Example:
//
//	gen := deckgen.New(
//	    deckgen.WithLogger(logger),
//	    deckgen.WithStrictSources(),
//	)
func New(opts ...Option) *Generator {
	cfg := &generatorConfig{
		logger:     diag.Nop(),
		coverToken: "AIL",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Generator{
		logger:        cfg.logger,
		strictSources: cfg.strictSources,
		coverToken:    cfg.coverToken,
	}
}

// Generate renders the configured pages into a deck and writes it to
// job.Output. Environment-level failures (unreadable template, failed
// save) abort with an error; data-level problems degrade into
// placeholder content on the affected slide and are logged.
func (g *Generator) Generate(job Job) error {
	if len(job.Pages) == 0 {
		return newDeckError("Generate", ErrNoPages)
	}
	if job.Output == "" {
		return newDeckError("Generate", ErrNoOutput)
	}
	if job.Template != "" {
		if _, err := os.Stat(job.Template); os.IsNotExist(err) {
			return newDeckError("Generate", ErrTemplateMissing)
		}
	}
	store := job.Store
	if store == nil {
		store = tabular.NewDataStore()
	}
	asm := deck.NewAssembler(deck.AssemblerConfig{
		Logger:        g.logger,
		StrictSources: g.strictSources,
		CoverToken:    g.coverToken,
	})
	if err := asm.Generate(deck.Job{
		Store:      store,
		Pages:      job.Pages,
		Formatting: job.Formatting,
		Template:   job.Template,
		Output:     job.Output,
		Entity:     job.Entity,
	}); err != nil {
		return newDeckError("Generate", err)
	}
	return nil
}
