package format

import (
	"encoding/json"
	"io"

	"go.followtheprocess.codes/vnscript/internal/syntax"
)

// JSONExporter is an [Exporter] that renders results as a JSON document.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given results
// as a complete JSON document.
func (j JSONExporter) Export(w io.Writer, results Results) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(normalise(results))
}

// normalise returns a copy of results where every nil diagnostics slice is
// replaced by an empty one, so valid files render as [] rather than null.
func normalise(results Results) Results {
	files := make([]Report, 0, len(results.Files))
	for _, file := range results.Files {
		if file.Diagnostics == nil {
			file.Diagnostics = []syntax.Diagnostic{}
		}

		files = append(files, file)
	}

	return Results{Files: files}
}
