package validator_test

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/txtar"
	"go.followtheprocess.codes/vnscript/internal/syntax"
	"go.followtheprocess.codes/vnscript/internal/syntax/validator"
	"go.uber.org/goleak"
)

var update = flag.Bool("update", false, "Update testdata")

func TestValidate(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		src  string // Script text to validate
		want string // Expected diagnostics, concatenated
	}{
		{
			name: "valid",
			src:  `(start-dialogue intro)(label intro (text "Hi"))`,
			want: "",
		},
		{
			name: "bg without extension",
			src:  `(label intro (text "Hi") (bg room))`,
			want: "a.vns:1:26-35: 'bg' keyword needs to feature the file extension.\n" +
				"a.vns:1:1-36: No 'start-dialogue' specified, the script won't know where to start!\n",
		},
		{
			name: "two texts",
			src:  `(label a (text "x")(text "y"))(start-dialogue a)`,
			want: "a.vns:1:1-31: Label 'a' should only include one text keyword.\n",
		},
		{
			name: "empty document",
			src:  "",
			want: "a.vns:1:1: No 'start-dialogue' specified, the script won't know where to start!\n",
		},
		{
			name: "unclosed after valid",
			src:  "(start-dialogue a)\n(label a (text \"x\"))\n(label b",
			want: "a.vns:3:1-9: Unclosed parenthesis.\n",
		},
		{
			name: "checker before scanner before resolver",
			src:  "(oops)(start-dialogue nowhere)(",
			want: "a.vns:1:1-7: Unexpected content.\n" +
				"a.vns:1:31: Unclosed parenthesis.\n" +
				"a.vns:1:7-31: No label found with the name 'nowhere'.\n",
		},
		{
			name: "empty start dialogue is nowhere to start",
			src:  "(start-dialogue)",
			want: "a.vns:1:1-17: Start-dialogue needs to point to a label.\n" +
				"a.vns:1:1-17: No 'start-dialogue' specified, the script won't know where to start!\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validator.Validate("a.vns", []byte(tt.src))
			test.Diff(t, render(got), tt.want)
		})
	}
}

func TestValidateProperties(t *testing.T) {
	sources := []string{
		"",
		"plain text with no expressions",
		`(label intro (text "Hi") (bg room))`,
		`(start-dialogue a) (label a (text "x") (label b (text "y")))`,
		"(label (label (label",
		"))))((((",
		`(set x 1)(foo)(start-dialogue)`,
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first := validator.Validate("p.vns", []byte(src))
			second := validator.Validate("p.vns", []byte(src))

			// Validation is a pure function of the input
			test.Diff(t, render(first), render(second))

			test.True(t, first != nil, test.Context("diagnostics should never be nil"))

			for _, diag := range first {
				test.Equal(t, diag.Severity, syntax.SeverityError)
				test.Equal(t, diag.Source, syntax.Source)
				test.True(t, diag.Highlight.Start >= 0, test.Context("negative start %s", diag.Highlight))
				test.True(t, diag.Highlight.End <= len(src), test.Context("end past source %s", diag.Highlight))
				test.True(t, diag.Position.IsValid(), test.Context("invalid position %s", diag.Position))
			}
		})
	}
}

func TestValidateNoStartDialogueAlwaysReported(t *testing.T) {
	srcs := []string{
		"",
		`(label a (text "x"))`,
		"(set x 1)",
		"(start-dialogue a", // Unclosed so never seen
		"(start-dialogue)",  // Points nowhere
	}

	for _, src := range srcs {
		diagnostics := validator.Validate("s.vns", []byte(src))

		found := slices.ContainsFunc(diagnostics, func(diag syntax.Diagnostic) bool {
			return strings.HasPrefix(diag.Msg, "No 'start-dialogue' specified")
		})
		test.True(t, found, test.Context("missing start-dialogue not reported for %q", src))
	}
}

func TestMaxProblems(t *testing.T) {
	src := []byte("(a)(b)(c)(d)")

	all := validator.Validate("m.vns", src)
	test.Equal(t, len(all), 5) // 4 unexpected + no start-dialogue

	capped := validator.Validate("m.vns", src, validator.WithMaxProblems(2))
	test.Equal(t, len(capped), 2)
	test.Diff(t, render(capped), render(all[:2]))

	unlimited := validator.Validate("m.vns", src, validator.WithMaxProblems(0))
	test.Equal(t, len(unlimited), 5)
}

func TestColumns(t *testing.T) {
	// 'é' is 2 bytes in utf-8 but 1 utf-16 code unit
	src := []byte(`(text "é") (bg x)`)

	bytes := validator.Validate("c.vns", src)
	test.Equal(t, bytes[0].Position.StartCol, 1)
	test.Equal(t, bytes[0].Position.EndCol, 12)

	utf16 := validator.Validate("c.vns", src, validator.WithColumns(syntax.ColumnUTF16))
	test.Equal(t, utf16[0].Position.StartCol, 1)
	test.Equal(t, utf16[0].Position.EndCol, 11)

	// Spans are always bytes
	test.Equal(t, bytes[0].Highlight, utf16[0].Highlight)
}

func TestWithLocator(t *testing.T) {
	locator := syntax.LocatorFunc(func(offset int) syntax.Point {
		return syntax.Point{Line: 10, Column: offset + 1}
	})

	got := validator.Validate("l.vns", []byte("(oops)(start-dialogue)"), validator.WithLocator(locator))
	test.Diff(
		t,
		render(got),
		"l.vns:10:1-7: Unexpected content.\n"+
			"l.vns:10:7-23: Start-dialogue needs to point to a label.\n"+
			"l.vns:10:1-23: No 'start-dialogue' specified, the script won't know where to start!\n",
	)
}

func TestAnalyse(t *testing.T) {
	src := []byte("(start-dialogue a)\n(label a (text \"x\"))\n(set y 2)")

	result := validator.Analyse("doc.vns", src)

	test.Equal(t, len(result.Diagnostics), 0)
	test.Equal(t, result.Expressions, 3)
	test.Equal(t, len(result.Document.Labels), 1)
	test.Equal(t, result.Document.Labels[0].Name, "a")
	test.Equal(t, len(result.Document.EntryPoints), 1)
	test.Equal(t, result.Document.EntryPoints[0].Target, "a")
}

func TestValid(t *testing.T) {
	// Force colour for diffs but only locally
	test.ColorEnabled(os.Getenv("CI") == "")

	pattern := filepath.Join("testdata", "valid", "*.txtar")
	files, err := filepath.Glob(pattern)
	test.Ok(t, err)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar") + ".vns"
		t.Run(name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			archive, err := txtar.ParseFile(file)
			test.Ok(t, err)

			src, ok := archive.Read("src.vns")
			test.True(t, ok, test.Context("%s missing src.vns", file))

			want, ok := archive.Read("want.json")
			test.True(t, ok, test.Context("%s missing want.json", file))

			result := validator.Analyse(name, []byte(src))
			test.Diff(t, render(result.Diagnostics), "")

			out, err := json.MarshalIndent(result.Document, "", "  ")
			test.Ok(t, err)

			got := string(out) + "\n"

			if *update {
				err := archive.Write("want.json", got)
				test.Ok(t, err)

				err = txtar.DumpFile(file, archive)
				test.Ok(t, err)

				return
			}

			test.Diff(t, got, want)
		})
	}
}

func TestInvalid(t *testing.T) {
	// Force colour for diffs but only locally
	test.ColorEnabled(os.Getenv("CI") == "")

	pattern := filepath.Join("testdata", "invalid", "*.txtar")
	files, err := filepath.Glob(pattern)
	test.Ok(t, err)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txtar") + ".vns"
		t.Run(name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			archive, err := txtar.ParseFile(file)
			test.Ok(t, err)

			src, ok := archive.Read("src.vns")
			test.True(t, ok, test.Context("%s missing src.vns", file))

			want, ok := archive.Read("diagnostics.txt")
			test.True(t, ok, test.Context("%s missing diagnostics.txt", file))

			got := render(validator.Validate(name, []byte(src)))
			test.True(t, got != "", test.Context("expected diagnostics for %s", file))

			if *update {
				err := archive.Write("diagnostics.txt", got)
				test.Ok(t, err)

				err = txtar.DumpFile(file, archive)
				test.Ok(t, err)

				return
			}

			test.Diff(t, got, want)
		})
	}
}

func FuzzValidate(f *testing.F) {
	for _, kind := range []string{"valid", "invalid"} {
		files, err := filepath.Glob(filepath.Join("testdata", kind, "*.txtar"))
		test.Ok(f, err)

		for _, file := range files {
			archive, err := txtar.ParseFile(file)
			test.Ok(f, err)

			src, ok := archive.Read("src.vns")
			test.True(f, ok, test.Context("%s missing src.vns", file))

			f.Add(src)
		}
	}

	// Property: Validation never panics, always reports within the source and
	// always produces valid positions
	f.Fuzz(func(t *testing.T, src string) {
		for _, mode := range []syntax.ColumnMode{syntax.ColumnBytes, syntax.ColumnUTF16} {
			diagnostics := validator.Validate("fuzz.vns", []byte(src), validator.WithColumns(mode))
			for _, diag := range diagnostics {
				span := diag.Highlight
				test.True(t, span.Start >= 0 && span.Start <= span.End && span.End <= len(src))
				test.True(t, diag.Position.IsValid(), test.Context("invalid position %#v", diag.Position))
			}
		}
	})
}

func BenchmarkValidate(b *testing.B) {
	file := filepath.Join("testdata", "valid", "basic.txtar")
	archive, err := txtar.ParseFile(file)
	test.Ok(b, err)

	src, ok := archive.Read("src.vns")
	test.True(b, ok, test.Context("%s missing src.vns", file))

	for b.Loop() {
		validator.Validate("bench.vns", []byte(src))
	}
}

// render concatenates the string form of every diagnostic.
func render(diagnostics []syntax.Diagnostic) string {
	var s strings.Builder
	for _, diag := range diagnostics {
		s.WriteString(diag.String())
	}

	return s.String()
}
