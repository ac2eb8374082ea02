// Package resolver implements the whole document checks.
//
// Some rules can't be decided one expression at a time: a start-dialogue may point
// at a label declared anywhere in the document, and a document with no start-dialogue
// at all has nowhere to begin. The resolver sweeps every closed expression at every
// depth once, builds the table of declared labels and checks every entry point
// against it.
package resolver

import (
	"slices"
	"strings"

	"go.followtheprocess.codes/vnscript/internal/syntax"
	"go.followtheprocess.codes/vnscript/internal/syntax/scanner"
	"go.followtheprocess.codes/vnscript/internal/syntax/token"
)

// Label is a label declaration.
type Label struct {
	Name string      `json:"name" toml:"name" yaml:"name"` // The label's name
	Span syntax.Span `json:"span" toml:"span" yaml:"span"` // Span of the whole '(label ...)' expression
}

// EntryPoint is a start-dialogue declaration. Only those with a target give the
// script somewhere to start.
type EntryPoint struct {
	Target string      `json:"target" toml:"target" yaml:"target"` // Name of the label it points to, may be empty
	Span   syntax.Span `json:"span"   toml:"span"   yaml:"span"`   // Span of the whole '(start-dialogue ...)' expression
}

// Document is the outline of declarations found by the resolver.
type Document struct {
	Labels      []Label      `json:"labels,omitempty"      toml:"labels,omitempty"      yaml:"labels,omitempty"`      // Every named label, in source order
	EntryPoints []EntryPoint `json:"entryPoints,omitempty" toml:"entryPoints,omitempty" yaml:"entryPoints,omitempty"` // Every start-dialogue, in source order
}

// Resolver resolves start-dialogue targets against declared labels.
type Resolver struct {
	diagnostics []syntax.Diagnostic // Diagnostics collected during resolving.
}

// New returns a new [Resolver].
func New() *Resolver {
	return &Resolver{}
}

// Resolve checks the cross references in src, returning the outline of declarations
// it found. Problems are reported through [Resolver.Diagnostics].
func (r *Resolver) Resolve(src []byte) Document {
	var doc Document

	labels := newTable()

	for _, expr := range scanner.Nested(src, 0) {
		word, args, _ := expr.Head()
		kind, _ := token.Keyword(word)

		switch kind {
		case token.Label:
			name, _, _ := token.Split(args)
			if name == "" {
				// The checker reports nameless labels, there's nothing to point at
				continue
			}

			if labels.declare(name, expr.Span()) {
				doc.Labels = append(doc.Labels, Label{Name: name, Span: expr.Span()})
			}
		case token.StartDialogue:
			doc.EntryPoints = append(doc.EntryPoints, EntryPoint{Target: target(args), Span: expr.Span()})
		}
	}

	named := 0

	for _, entry := range doc.EntryPoints {
		if entry.Target == "" {
			// Already reported by the checker, and it doesn't give the script anywhere to start
			continue
		}

		named++

		if _, ok := labels.lookup(entry.Target); !ok {
			r.errorf(entry.Span, "No label found with the name '%s'.", entry.Target)
		}
	}

	if named == 0 {
		r.error(
			syntax.Span{Start: 0, End: len(src)},
			"No 'start-dialogue' specified, the script won't know where to start!",
		)
	}

	return doc
}

// Diagnostics returns the diagnostics gathered during resolving.
func (r *Resolver) Diagnostics() []syntax.Diagnostic {
	// Create a copy so caller can't mutate the original diagnostics slice
	return slices.Clone(r.diagnostics)
}

// error reports a resolve error with a fixed message.
func (r *Resolver) error(span syntax.Span, msg string) {
	r.diagnostics = append(r.diagnostics, syntax.Error(span, msg))
}

// errorf calls error with a formatted message.
func (r *Resolver) errorf(span syntax.Span, format string, a ...any) {
	r.diagnostics = append(r.diagnostics, syntax.Errorf(span, format, a...))
}

// target returns the label name a start-dialogue points to, the first
// whitespace separated field of it's arguments.
func target(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}
