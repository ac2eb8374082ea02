package format

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/vnscript/internal/syntax"
)

// Styles for text output.
const (
	// errorStyle is the style for the severity label.
	errorStyle = hue.Red | hue.Bold

	// gutter is the style for the line number gutter and arrow.
	gutter = hue.Cyan

	// caret is the style of the underline beneath the highlighted source.
	caret = hue.Red
)

// TextExporter is an [Exporter] that renders diagnostics for humans, each one
// followed by an excerpt of the source it points at.
//
// Valid files produce no output.
type TextExporter struct{}

// Export implements [Exporter] for [TextExporter].
func (t TextExporter) Export(w io.Writer, results Results) error {
	for _, file := range results.Files {
		for _, diag := range file.Diagnostics {
			if err := writeDiagnostic(w, diag, file.Source); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeDiagnostic writes a single diagnostic in the form:
//
//	error: Unexpected content.
//	 --> demo.vns:2:1-8
//	  |
//	2 | (oops x)
//	  | ^^^^^^^^
func writeDiagnostic(w io.Writer, diag syntax.Diagnostic, src []byte) error {
	var s strings.Builder

	fmt.Fprintf(&s, "%s: %s\n", errorStyle.Text(diag.Severity.String()), hue.Bold.Text(diag.Msg))

	line, indent, width, ok := excerpt(src, diag.Highlight)
	if !ok {
		fmt.Fprintf(&s, " %s %s\n\n", gutter.Text("-->"), diag.Position)
		_, err := io.WriteString(w, s.String())

		return err
	}

	number := strconv.Itoa(diag.Position.Line)
	pad := strings.Repeat(" ", len(number))

	fmt.Fprintf(&s, "%s%s %s\n", pad, gutter.Text("-->"), diag.Position)
	fmt.Fprintf(&s, "%s %s\n", pad, gutter.Text("|"))
	fmt.Fprintf(&s, "%s %s %s\n", gutter.Text(number), gutter.Text("|"), line)
	fmt.Fprintf(&s, "%s %s %s%s\n\n", pad, gutter.Text("|"), indent, caret.Text(strings.Repeat("^", width)))

	_, err := io.WriteString(w, s.String())

	return err
}

// excerpt returns the line of src containing the start of span, the whitespace needed to
// indent up to the start of the span on that line and the width of the underline.
//
// The underline stops at the end of the line for spans covering more than one line. If the
// span is outside src, or there is no src, ok is false.
func excerpt(src []byte, span syntax.Span) (line, indent string, width int, ok bool) {
	if src == nil || span.Start < 0 || span.Start > len(src) || span.Len() < 0 {
		return "", "", 0, false
	}

	start := bytes.LastIndexByte(src[:span.Start], '\n') + 1

	end := len(src)
	if i := bytes.IndexByte(src[span.Start:], '\n'); i != -1 {
		end = span.Start + i
	}

	var prefix strings.Builder
	for _, r := range string(src[start:span.Start]) {
		if r == '\t' {
			prefix.WriteRune('\t')
		} else {
			prefix.WriteRune(' ')
		}
	}

	stop := min(span.End, end)
	width = max(utf8.RuneCount(src[span.Start:stop]), 1)

	return strings.TrimRight(string(src[start:end]), "\r"), prefix.String(), width, true
}
