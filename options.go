package deckgen

import "github.com/deckgen/deckgen/diag"

// Option is a functional option for configuring a Generator via New.
type Option func(*generatorConfig)

type generatorConfig struct {
	logger        diag.Logger
	strictSources bool
	coverToken    string
}

// WithLogger installs a diagnostic logger. The default discards all
// events.
func WithLogger(l diag.Logger) Option {
	return func(c *generatorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStrictSources disables the fallback to the first available data
// source when a requested source cannot be resolved. With strict sources
// a missing source produces a placeholder table instead of data from an
// unrelated source.
func WithStrictSources() Option {
	return func(c *generatorConfig) {
		c.strictSources = true
	}
}

// WithCoverToken sets the placeholder token replaced by the entity name
// on the template cover slide. Defaults to "AIL".
func WithCoverToken(token string) Option {
	return func(c *generatorConfig) {
		if token != "" {
			c.coverToken = token
		}
	}
}
