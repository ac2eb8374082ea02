// Package format provides mechanisms for rendering validation results into external formats.
//
// Notably, the package provides the [Exporter] interface for doing this in a
// format-agnostic way, along with the built in exporters for plain text, JSON, YAML
// and TOML.
package format

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"go.followtheprocess.codes/vnscript/internal/syntax"
	"go.followtheprocess.codes/vnscript/internal/syntax/resolver"
)

// ErrUnknownFormat is returned from [Lookup] when asked for a format that doesn't exist.
var ErrUnknownFormat = errors.New("unknown format")

// Report is the outcome of validating a single script file.
type Report struct {
	// Path is the path to the script, as given on the command line.
	Path string `json:"path" toml:"path" yaml:"path"`

	// Expressions is the number of top level expressions in the script.
	Expressions int `json:"expressions" toml:"expressions" yaml:"expressions"`

	// Diagnostics is every problem found in the script, empty if it's valid.
	Diagnostics []syntax.Diagnostic `json:"diagnostics" toml:"diagnostics" yaml:"diagnostics"`

	// Outline is the labels and entry points declared in the script.
	Outline resolver.Document `json:"outline" toml:"outline" yaml:"outline"`

	// Source is the raw script text, used to show excerpts in text output.
	Source []byte `json:"-" toml:"-" yaml:"-"`
}

// Valid reports whether the script had no problems.
func (r Report) Valid() bool {
	return len(r.Diagnostics) == 0
}

// Results is the outcome of validating a collection of scripts.
type Results struct {
	// Files is a [Report] per script in the order they were requested.
	Files []Report `json:"files" toml:"files" yaml:"files"`
}

// Problems returns the total number of diagnostics across every file.
func (r Results) Problems() int {
	total := 0
	for _, file := range r.Files {
		total += len(file.Diagnostics)
	}

	return total
}

// Exporter is the interface defining a mechanism for exporting validation
// results into an external format.
type Exporter interface {
	// Export exports the [Results] into an external format, written to w.
	Export(w io.Writer, results Results) error
}

// exporters maps format names to their [Exporter].
var exporters = map[string]Exporter{
	"text": TextExporter{},
	"json": JSONExporter{},
	"yaml": YAMLExporter{},
	"toml": TOMLExporter{},
}

// Lookup returns the [Exporter] registered under name.
func Lookup(name string) (Exporter, error) {
	exporter, ok := exporters[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, expected one of %v", ErrUnknownFormat, name, Names())
	}

	return exporter, nil
}

// Names returns the sorted names of every supported format.
func Names() []string {
	return slices.Sorted(maps.Keys(exporters))
}
