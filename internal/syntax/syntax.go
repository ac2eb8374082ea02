// Package syntax holds the types shared by every stage of script validation: byte
// spans into the source text, human readable source positions and the diagnostics
// reported against them.
//
// The scanner, checker and resolver all report problems as [Diagnostic]s anchored
// to a [Span], it's only at the very end of validation that spans are mapped onto
// line and column information using a [Locator].
package syntax

import "fmt"

// Source is the fixed source tag attached to every [Diagnostic].
const Source = "vnscript"

// Span is a half open range of byte offsets [Start, End) into the source text.
type Span struct {
	Start int `json:"start" toml:"start" yaml:"start"` // Byte offset of the start of the span
	End   int `json:"end"   toml:"end"   yaml:"end"`   // Byte offset one past the end of the span
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Shift returns a copy of the span moved forward by offset bytes.
func (s Span) Shift(offset int) Span {
	return Span{Start: s.Start + offset, End: s.End + offset}
}

// String implements [fmt.Stringer] for a [Span].
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// Position is an arbitrary source file position including file, line
// and column information. It can also express a range of source via the End fields,
// this is useful for error reporting.
//
// Columns are 1 indexed and the end column is exclusive, so a position covering the
// first three characters of a line has StartCol 1 and EndCol 4.
//
// Positions without filenames are considered invalid, in the case of stdin
// the string "stdin" may be used.
type Position struct {
	Name     string `json:"name"     toml:"name"     yaml:"name"`     // Filename
	Offset   int    `json:"offset"   toml:"offset"   yaml:"offset"`   // Byte offset of the start of the position
	Line     int    `json:"line"     toml:"line"     yaml:"line"`     // Start line number (1 indexed)
	StartCol int    `json:"startCol" toml:"startCol" yaml:"startCol"` // Start column (1 indexed)
	EndLine  int    `json:"endLine"  toml:"endLine"  yaml:"endLine"`  // End line number (1 indexed)
	EndCol   int    `json:"endCol"   toml:"endCol"   yaml:"endCol"`   // End column (1 indexed, exclusive)
}

// IsValid reports whether the [Position] describes a valid source position.
//
// The rules are:
//
//   - Name, Line, StartCol, EndLine and EndCol must be set (and non zero)
//   - EndLine cannot be before Line
//   - On a single line, EndCol cannot be before StartCol
func (p Position) IsValid() bool {
	if p.Name == "" || p.Line < 1 || p.StartCol < 1 || p.EndLine < 1 || p.EndCol < 1 {
		return false
	}

	if p.EndLine < p.Line {
		return false
	}

	if p.EndLine == p.Line && p.EndCol < p.StartCol {
		return false
	}

	return true
}

// String returns a string representation of a [Position].
//
// It is formatted such that most text editors/terminals will be able to support clicking on it
// and navigating to the position.
//
// Depending on which fields are set, the string returned will be different:
//
//   - "file:line:start": the position covers nothing or a single character
//   - "file:line:start-end": a range of text on a single line
//   - "file:line:start-endline:endcol": a range of text spanning multiple lines
//
// If the position is not valid, an error string will be returned.
func (p Position) String() string {
	if !p.IsValid() {
		return fmt.Sprintf(
			"BadPosition: {Name: %q, Line: %d, StartCol: %d, EndLine: %d, EndCol: %d}",
			p.Name,
			p.Line,
			p.StartCol,
			p.EndLine,
			p.EndCol,
		)
	}

	switch {
	case p.EndLine != p.Line:
		return fmt.Sprintf("%s:%d:%d-%d:%d", p.Name, p.Line, p.StartCol, p.EndLine, p.EndCol)
	case p.EndCol-p.StartCol <= 1:
		return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.StartCol)
	default:
		return fmt.Sprintf("%s:%d:%d-%d", p.Name, p.Line, p.StartCol, p.EndCol)
	}
}

// Range returns the position as an [LSPRange], both ends moved to 0 indexed.
func (p Position) Range() (LSPRange, error) {
	start, err := LSP(Point{Line: p.Line, Column: p.StartCol})
	if err != nil {
		return LSPRange{}, err
	}

	end, err := LSP(Point{Line: p.EndLine, Column: p.EndCol})
	if err != nil {
		return LSPRange{}, err
	}

	return LSPRange{Start: start, End: end}, nil
}

// Severity is the severity of a [Diagnostic].
//
// Every rule currently reports at [SeverityError], there is no warning tier.
type Severity int

const (
	// SeverityError marks a problem that makes the script invalid.
	SeverityError Severity = iota + 1
)

// String implements [fmt.Stringer] for a [Severity].
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Severity].
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is a problem found in the source text.
type Diagnostic struct {
	Severity  Severity `json:"severity"  toml:"severity"  yaml:"severity"`  // How bad it is, always [SeverityError] for now
	Source    string   `json:"source"    toml:"source"    yaml:"source"`    // The tool that produced it, always [Source]
	Msg       string   `json:"msg"       toml:"msg"       yaml:"msg"`       // A descriptive message explaining the error
	Highlight Span     `json:"highlight" toml:"highlight" yaml:"highlight"` // The span of source the diagnostic is about
	Position  Position `json:"position"  toml:"position"  yaml:"position"`  // Highlight mapped to lines and columns
	Range     LSPRange `json:"range"     toml:"range"     yaml:"range"`     // Position as a language server protocol range
}

// Error returns a new [Diagnostic] at [SeverityError] highlighting span.
//
// The Position is left empty, it is filled in once the whole document
// has been validated, see [Diagnostic.Locate].
func Error(span Span, msg string) Diagnostic {
	return Diagnostic{
		Severity:  SeverityError,
		Source:    Source,
		Msg:       msg,
		Highlight: span,
	}
}

// Errorf is like [Error] but with a formatted message.
func Errorf(span Span, format string, a ...any) Diagnostic {
	return Error(span, fmt.Sprintf(format, a...))
}

// Locate returns a copy of the diagnostic with its Position and Range filled in from
// the highlighted span.
//
// The Range is left empty if the locator returns points that are not 1 indexed.
func (d Diagnostic) Locate(name string, locator Locator) Diagnostic {
	start := locator.Locate(d.Highlight.Start)
	end := locator.Locate(d.Highlight.End)

	d.Position = Position{
		Name:     name,
		Offset:   d.Highlight.Start,
		Line:     start.Line,
		StartCol: start.Column,
		EndLine:  end.Line,
		EndCol:   end.Column,
	}

	if rng, err := d.Position.Range(); err == nil {
		d.Range = rng
	}

	return d
}

// String prints a [Diagnostic].
func (d Diagnostic) String() string {
	return d.Position.String() + ": " + d.Msg + "\n"
}
