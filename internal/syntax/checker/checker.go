// Package checker implements the per expression validation rules.
//
// Each top level expression is classified by it's leading keyword and handed to the
// validator for that keyword. Validators never fail, malformed or half typed expressions
// are exactly what they exist to describe, so every problem is recorded as a
// [syntax.Diagnostic] and checking carries on.
package checker

import (
	"slices"
	"strings"

	"go.followtheprocess.codes/vnscript/internal/syntax"
	"go.followtheprocess.codes/vnscript/internal/syntax/ast"
	"go.followtheprocess.codes/vnscript/internal/syntax/scanner"
	"go.followtheprocess.codes/vnscript/internal/syntax/token"
)

// Checker validates top level expressions one at a time.
type Checker struct {
	diagnostics []syntax.Diagnostic // Diagnostics collected during checking
}

// New returns a new [Checker].
func New() *Checker {
	return &Checker{}
}

// Diagnostics returns the diagnostics gathered so far, in the order they
// were reported.
func (c *Checker) Diagnostics() []syntax.Diagnostic {
	// Create a copy so caller can't mutate the original diagnostics slice
	return slices.Clone(c.diagnostics)
}

// Check classifies a top level expression by it's keyword and validates it.
func (c *Checker) Check(expr ast.Expression) {
	switch expr.Keyword() {
	case token.Label:
		c.checkLabel(expr)
	case token.StartDialogue:
		c.checkStartDialogue(expr)
	case token.Set:
		c.checkSet(expr)
	default:
		c.error(expr.Span(), "Unexpected content.")
	}
}

// error reports a diagnostic with a fixed message.
func (c *Checker) error(span syntax.Span, msg string) {
	c.diagnostics = append(c.diagnostics, syntax.Error(span, msg))
}

// errorf reports a diagnostic with a formatted message.
func (c *Checker) errorf(span syntax.Span, format string, a ...any) {
	c.diagnostics = append(c.diagnostics, syntax.Errorf(span, format, a...))
}

// checkLabel validates a '(label <name> <content>)' expression.
func (c *Checker) checkLabel(expr ast.Expression) {
	_, body, bodyStart := expr.Head()
	name, content, offset := token.Split(body)
	contentStart := bodyStart + offset

	if name == "" {
		c.error(expr.Span(), "Labels need to feature a name.")
	}

	if content == "" {
		c.error(expr.Span(), "Labels need to feature content.")
	}

	nested := scanner.Nested([]byte(content), contentStart)

	for _, inner := range nested {
		if inner.Keyword() == token.Label {
			c.error(expr.Span(), "Why?")
			break
		}
	}

	c.checkLabelContent(expr, name, own(nested))
}

// checkLabelContent validates the annotations anywhere inside a label: exactly one
// text and at most one bg, which must name a file with an extension.
func (c *Checker) checkLabelContent(label ast.Expression, name string, nested []ast.Expression) {
	var (
		texts       int
		backgrounds []ast.Expression
	)

	for _, inner := range nested {
		word, args, _ := inner.Head()
		kind, _ := token.Annotation(word)

		switch kind {
		case token.Text:
			if isQuoted(args) {
				texts++
			}
		case token.Background:
			backgrounds = append(backgrounds, inner)
		}
	}

	switch {
	case texts == 0:
		c.errorf(label.Span(), `Label '%s' should include '(text "")' content.`, name)
	case texts > 1:
		c.errorf(label.Span(), "Label '%s' should only include one text keyword.", name)
	}

	if len(backgrounds) > 1 {
		c.error(label.Span(), "There can only be one 'bg' keyword in a label.")
	}

	for _, bg := range backgrounds {
		_, args, _ := bg.Head()

		var asset string
		if fields := strings.Fields(args); len(fields) > 0 {
			asset = fields[0]
		}

		if !strings.Contains(asset, ".") {
			c.error(bg.Span(), "'bg' keyword needs to feature the file extension.")
		}
	}
}

// checkStartDialogue validates a '(start-dialogue <label>)' expression.
//
// Whether the label actually exists needs the whole document so is left
// to the resolver.
func (c *Checker) checkStartDialogue(expr ast.Expression) {
	_, target, _ := expr.Head()
	if target == "" {
		c.error(expr.Span(), "Start-dialogue needs to point to a label.")
	}
}

// checkSet validates a '(set ...)' variable assignment.
//
// TODO(@FollowTheProcess): Variable assignments are accepted as is until the
// assignment syntax is settled.
func (c *Checker) checkSet(ast.Expression) {}

// own returns the expressions of nested, ordered by start offset, that belong to the
// enclosing label: any nested label and everything inside it is left out.
func own(nested []ast.Expression) []ast.Expression {
	var (
		kept     []ast.Expression
		labelEnd int // End of the last nested label seen
	)

	for _, expr := range nested {
		if expr.Start < labelEnd {
			continue
		}

		if expr.Keyword() == token.Label {
			labelEnd = expr.End
			continue
		}

		kept = append(kept, expr)
	}

	return kept
}

// isQuoted reports whether args begins with a closed double quoted string, which may
// be followed by a speaker annotation e.g. `"Hello" say alice`.
func isQuoted(args string) bool {
	rest, ok := strings.CutPrefix(args, `"`)
	if !ok {
		return false
	}

	return strings.Contains(rest, `"`)
}
