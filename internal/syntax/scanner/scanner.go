// Package scanner recovers balanced parenthesised expressions from raw script text.
//
// The scanner makes a single left to right pass over the source keeping one depth
// counter. It only cares about the outer boundary of each top level expression, anything
// nested is left verbatim in the expression's content for the checker to re-scan.
//
// Everything outside of an expression is ignored. The only thing the scanner reports is
// an opening '(' that is never closed, after which it cannot know where any further
// expression begins so it stops for good.
package scanner

import (
	"slices"
	"strings"
	"unicode"

	"go.followtheprocess.codes/vnscript/internal/syntax"
	"go.followtheprocess.codes/vnscript/internal/syntax/ast"
)

// eof signifies we have reached the end of the input.
const eof = -1

// Scanner is the script text scanner.
type Scanner struct {
	src         []byte              // Raw source text
	diagnostics []syntax.Diagnostic // Diagnostics gathered during scanning
	base        int                 // Offset of src in the enclosing document
	pos         int                 // Current scanner position in src (bytes, 0 indexed)
	done        bool                // Whether scanning has finished, either at eof or due to an error
}

// New returns a new [Scanner] over src.
func New(src []byte) *Scanner {
	return NewAt(src, 0)
}

// NewAt returns a new [Scanner] over src, a slice of some larger document starting at
// byte offset base. All reported offsets are relative to the larger document.
func NewAt(src []byte, base int) *Scanner {
	return &Scanner{
		src:  src,
		base: base,
	}
}

// Scan returns the next top level expression and true, or false once there are
// no more expressions to return.
//
// If the source contains an unclosed '(', Scan records a diagnostic and returns false,
// no further expressions are ever returned.
func (s *Scanner) Scan() (ast.Expression, bool) {
	if s.done {
		return ast.Expression{}, false
	}

	s.skipUntil('(')

	if s.peek() == eof {
		s.done = true
		return ast.Expression{}, false
	}

	start := s.pos
	depth := 0

	for {
		switch s.next() {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s.expression(start, s.pos), true
			}
		case eof:
			s.done = true
			s.error(syntax.Span{Start: start, End: len(s.src)}, "Unclosed parenthesis.")

			return ast.Expression{}, false
		}
	}
}

// All scans the remaining input and returns every top level expression.
func (s *Scanner) All() []ast.Expression {
	var expressions []ast.Expression

	for {
		expr, ok := s.Scan()
		if !ok {
			return expressions
		}

		expressions = append(expressions, expr)
	}
}

// Diagnostics returns the list of diagnostics gathered during scanning.
func (s *Scanner) Diagnostics() []syntax.Diagnostic {
	// Create a copy so caller can't mutate the original diagnostics slice
	return slices.Clone(s.diagnostics)
}

// Nested returns every closed expression in src at every depth, ordered by the offset
// of their opening '('. src is assumed to start at byte offset base of the enclosing document.
//
// Unlike [Scanner.Scan], an unclosed '(' is not an error, it is simply never reported
// while the closed expressions inside it still are.
func Nested(src []byte, base int) []ast.Expression {
	var (
		open        []int // Stack of offsets of unmatched '('
		expressions []ast.Expression
	)

	for i, char := range src {
		switch char {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				// Stray ')', ignored just like at the top level
				continue
			}

			start := open[len(open)-1]
			open = open[:len(open)-1]
			expressions = append(expressions, makeExpression(src, base, start, i+1))
		}
	}

	// Expressions are appended in the order they close, inner before outer
	slices.SortStableFunc(expressions, func(a, b ast.Expression) int {
		return a.Start - b.Start
	})

	return expressions
}

// next returns the next byte in the input, or [eof], and advances the scanner
// over it.
func (s *Scanner) next() int {
	if s.pos >= len(s.src) {
		return eof
	}

	char := s.src[s.pos]
	s.pos++

	return int(char)
}

// peek returns the next byte in the input, or [eof], but does not
// advance the scanner.
func (s *Scanner) peek() int {
	if s.pos >= len(s.src) {
		return eof
	}

	return int(s.src[s.pos])
}

// skipUntil advances the scanner until the next byte is char or [eof].
func (s *Scanner) skipUntil(char byte) {
	for s.peek() != eof && s.peek() != int(char) {
		s.pos++
	}
}

// expression builds an [ast.Expression] from the delimiters at src[start] and src[end-1].
func (s *Scanner) expression(start, end int) ast.Expression {
	return makeExpression(s.src, s.base, start, end)
}

// error records a diagnostic with a span relative to src.
func (s *Scanner) error(span syntax.Span, msg string) {
	s.diagnostics = append(s.diagnostics, syntax.Error(span.Shift(s.base), msg))
}

// makeExpression builds an [ast.Expression] from the delimiters at src[start] and src[end-1],
// offsets are shifted by base.
func makeExpression(src []byte, base, start, end int) ast.Expression {
	inner := string(src[start+1 : end-1])
	leading := len(inner) - len(strings.TrimLeftFunc(inner, unicode.IsSpace))

	return ast.Expression{
		Content:      strings.TrimSpace(inner),
		Start:        base + start,
		End:          base + end,
		ContentStart: base + start + 1 + leading,
	}
}
