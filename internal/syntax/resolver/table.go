package resolver

import "go.followtheprocess.codes/vnscript/internal/syntax"

// table is the set of labels declared in a document.
type table struct {
	labels map[string]syntax.Span
}

// newTable creates a new, empty [table].
func newTable() *table {
	return &table{
		labels: make(map[string]syntax.Span),
	}
}

// declare records a label declaration, returning false if a label with the same
// name was already declared, in which case the first declaration wins.
func (t *table) declare(name string, span syntax.Span) bool {
	if _, exists := t.labels[name]; exists {
		return false
	}

	t.labels[name] = span

	return true
}

// lookup returns the span of the label declared with name and whether
// it exists.
func (t *table) lookup(name string) (syntax.Span, bool) {
	span, ok := t.labels[name]
	return span, ok
}
