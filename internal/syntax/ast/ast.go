// Package ast defines the expressions recovered from script text.
//
// There is deliberately no tree here: an [Expression] is just the outer boundary of
// a parenthesised region plus it's inner content, nested expressions stay verbatim in
// the content until something re-scans them.
package ast

import (
	"go.followtheprocess.codes/vnscript/internal/syntax"
	"go.followtheprocess.codes/vnscript/internal/syntax/token"
)

// Expression is a single balanced '(' ... ')' region of script text.
type Expression struct {
	// Content is the text strictly between the delimiters with surrounding
	// whitespace removed.
	Content string

	// Start is the byte offset of the opening '('.
	Start int

	// End is the byte offset one past the closing ')'.
	End int

	// ContentStart is the byte offset of the first byte of Content.
	ContentStart int
}

// Span returns the span of the whole expression, delimiters included.
func (e Expression) Span() syntax.Span {
	return syntax.Span{Start: e.Start, End: e.End}
}

// Head splits the content into it's leading word and the remaining arguments, see
// [token.Split].
//
// argsStart is the byte offset in the source text at which args begins.
func (e Expression) Head() (word, args string, argsStart int) {
	word, args, offset := token.Split(e.Content)
	return word, args, e.ContentStart + offset
}

// Keyword returns the [token.Kind] of the top level keyword leading the expression,
// [token.Other] if there isn't one.
func (e Expression) Keyword() token.Kind {
	word, _, _ := e.Head()
	kind, _ := token.Keyword(word)

	return kind
}
