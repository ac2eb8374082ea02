package format

import (
	"io"

	"github.com/BurntSushi/toml"
)

// TOMLExporter is an [Exporter] that renders results as a TOML document.
type TOMLExporter struct{}

// Export implements [Exporter] for [TOMLExporter] and exports the given results
// as a complete TOML document, one [[files]] table per script.
func (t TOMLExporter) Export(w io.Writer, results Results) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	return encoder.Encode(normalise(results))
}
