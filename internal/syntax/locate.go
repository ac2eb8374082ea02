package syntax

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Point is a line and column in the source text, both 1 indexed.
type Point struct {
	Line   int // Line number (1 indexed)
	Column int // Column number (1 indexed), the unit depends on the [ColumnMode]
}

// Locator maps byte offsets in the source text to a [Point].
//
// Editors disagree on what a column is so the locator is supplied by the caller,
// [LineIndex] is the default.
type Locator interface {
	// Locate returns the Point for the given byte offset.
	Locate(offset int) Point
}

// LocatorFunc is an adapter allowing a plain function to be used as a [Locator].
type LocatorFunc func(offset int) Point

// Locate implements [Locator] for [LocatorFunc].
func (f LocatorFunc) Locate(offset int) Point {
	return f(offset)
}

// ColumnMode controls the unit columns are counted in.
type ColumnMode int

const (
	// ColumnBytes counts columns in bytes.
	ColumnBytes ColumnMode = iota

	// ColumnUTF16 counts columns in UTF-16 code units, as the language server protocol does.
	ColumnUTF16
)

// ParseColumnMode parses the textual name of a [ColumnMode].
func ParseColumnMode(text string) (ColumnMode, error) {
	switch text {
	case "bytes", "":
		return ColumnBytes, nil
	case "utf16":
		return ColumnUTF16, nil
	default:
		return ColumnBytes, fmt.Errorf("invalid column mode %q, allowed values are 'bytes', 'utf16'", text)
	}
}

// String implements [fmt.Stringer] for a [ColumnMode].
func (c ColumnMode) String() string {
	switch c {
	case ColumnBytes:
		return "bytes"
	case ColumnUTF16:
		return "utf16"
	default:
		return fmt.Sprintf("ColumnMode(%d)", int(c))
	}
}

// LineIndex is a [Locator] built from the offsets of every newline in a source text.
type LineIndex struct {
	src   []byte     // The source text, never modified
	lines []int      // Offset of the first byte of every line, lines[0] == 0
	mode  ColumnMode // How columns are counted
}

// NewLineIndex returns a [LineIndex] for src counting columns according to mode.
func NewLineIndex(src []byte, mode ColumnMode) LineIndex {
	lines := []int{0}

	for i, b := range src {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}

	return LineIndex{
		src:   src,
		lines: lines,
		mode:  mode,
	}
}

// Locate implements [Locator] for a [LineIndex].
//
// Offsets out of range are clamped to the start or end of the source.
func (l LineIndex) Locate(offset int) Point {
	offset = max(0, min(offset, len(l.src)))

	// Largest line start that is <= offset
	line := sort.Search(len(l.lines), func(i int) bool { return l.lines[i] > offset }) - 1
	start := l.lines[line]

	column := offset - start
	if l.mode == ColumnUTF16 {
		column = utf16Len(l.src[start:offset])
	}

	return Point{Line: line + 1, Column: column + 1}
}

// LSPPosition is a 0 indexed position as used by the language server protocol.
type LSPPosition struct {
	Line      uint32 `json:"line"      toml:"line"      yaml:"line"`      // Line number (0 indexed)
	Character uint32 `json:"character" toml:"character" yaml:"character"` // Column number (0 indexed)
}

// LSPRange is a range of [LSPPosition], the end is exclusive.
type LSPRange struct {
	Start LSPPosition `json:"start" toml:"start" yaml:"start"` // Start of the range
	End   LSPPosition `json:"end"   toml:"end"   yaml:"end"`   // One past the end of the range
}

// LSP converts a 1 indexed [Point] into an [LSPPosition].
func LSP(point Point) (LSPPosition, error) {
	line, err := safecast.Conv[uint32](point.Line - 1)
	if err != nil {
		return LSPPosition{}, fmt.Errorf("line %d out of range: %w", point.Line, err)
	}

	character, err := safecast.Conv[uint32](point.Column - 1)
	if err != nil {
		return LSPPosition{}, fmt.Errorf("column %d out of range: %w", point.Column, err)
	}

	return LSPPosition{Line: line, Character: character}, nil
}

// utf16Len returns the number of UTF-16 code units needed to encode b.
//
// Invalid utf8 counts as one unit per byte.
func utf16Len(b []byte) int {
	n := 0

	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}

		b = b[size:]
	}

	return n
}
