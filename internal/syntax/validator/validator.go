// Package validator runs the full validation pipeline over a script.
//
// The source text is scanned for top level expressions, each of which is checked
// against the rules for it's keyword, then the whole document is resolved once for
// the rules that need to see everything at once. Finally every diagnostic is mapped
// from byte offsets to lines and columns.
//
// Validation is stateless and synchronous, every call starts from scratch so any
// number of documents may be validated concurrently.
package validator

import (
	"go.followtheprocess.codes/vnscript/internal/syntax"
	"go.followtheprocess.codes/vnscript/internal/syntax/checker"
	"go.followtheprocess.codes/vnscript/internal/syntax/resolver"
	"go.followtheprocess.codes/vnscript/internal/syntax/scanner"
)

// Option is a functional option for configuring validation.
type Option func(*options)

// options holds the validation configuration.
type options struct {
	locator     syntax.Locator    // Maps offsets to lines and columns, nil means build a LineIndex
	columns     syntax.ColumnMode // Column mode for the default LineIndex
	maxProblems int               // Cap on the number of diagnostics, 0 means no cap
}

// WithLocator sets the [syntax.Locator] used to map diagnostic spans onto
// lines and columns. By default a [syntax.LineIndex] over the source is used.
func WithLocator(locator syntax.Locator) Option {
	return func(o *options) {
		o.locator = locator
	}
}

// WithColumns sets the [syntax.ColumnMode] of the default locator. It has no
// effect if [WithLocator] is also given.
func WithColumns(mode syntax.ColumnMode) Option {
	return func(o *options) {
		o.columns = mode
	}
}

// WithMaxProblems caps the number of diagnostics returned, keeping the first n.
// n <= 0 means no cap.
func WithMaxProblems(n int) Option {
	return func(o *options) {
		o.maxProblems = n
	}
}

// Result is the outcome of validating a single document.
type Result struct {
	// Diagnostics is every problem found, in order.
	Diagnostics []syntax.Diagnostic

	// Document is the outline of labels and entry points found.
	Document resolver.Document

	// Expressions is the number of top level expressions checked.
	Expressions int
}

// Validate validates src, returning the diagnostics found. name is the
// name of the document, used in the diagnostic positions.
func Validate(name string, src []byte, opts ...Option) []syntax.Diagnostic {
	return Analyse(name, src, opts...).Diagnostics
}

// Analyse is like [Validate] but also returns the outline of the document.
func Analyse(name string, src []byte, opts ...Option) Result {
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.locator == nil {
		cfg.locator = syntax.NewLineIndex(src, cfg.columns)
	}

	var (
		result      Result
		diagnostics []syntax.Diagnostic
	)

	s := scanner.New(src)
	c := checker.New()

	for {
		expr, ok := s.Scan()
		if !ok {
			break
		}

		c.Check(expr)
		result.Expressions++
	}

	diagnostics = append(diagnostics, c.Diagnostics()...)
	diagnostics = append(diagnostics, s.Diagnostics()...)

	r := resolver.New()
	result.Document = r.Resolve(src)

	diagnostics = append(diagnostics, r.Diagnostics()...)

	if cfg.maxProblems > 0 && len(diagnostics) > cfg.maxProblems {
		diagnostics = diagnostics[:cfg.maxProblems]
	}

	result.Diagnostics = make([]syntax.Diagnostic, 0, len(diagnostics))
	for _, diag := range diagnostics {
		result.Diagnostics = append(result.Diagnostics, diag.Locate(name, cfg.locator))
	}

	return result
}
