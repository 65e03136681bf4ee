package deckgen

import (
	"errors"
	"fmt"
)

// Sentinel errors for environment-level failure conditions. Data-level
// problems (missing sources, unmatched columns, oversized tables) never
// surface as errors; they degrade into placeholder content and log lines.
var (
	ErrNoPages         = errors.New("deckgen: no page configurations")
	ErrTemplateMissing = errors.New("deckgen: template file not found")
	ErrNoOutput        = errors.New("deckgen: output path is empty")
)

// DeckError represents an error that occurred during a specific deck
// operation. It wraps an underlying error and includes the operation name
// for context.
type DeckError struct {
	Op  string // operation name, e.g. "Generate", "Save"
	Err error  // underlying error
}

func (e *DeckError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deckgen.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("deckgen.%s: unknown error", e.Op)
}

func (e *DeckError) Unwrap() error {
	return e.Err
}

// newDeckError creates a new DeckError wrapping the given error with
// operation context.
func newDeckError(op string, err error) *DeckError {
	return &DeckError{Op: op, Err: err}
}
