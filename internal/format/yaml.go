package format

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that renders results as a YAML document.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given results as
// a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, results Results) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(normalise(results)); err != nil {
		return fmt.Errorf("could not encode YAML: %w", err)
	}

	return encoder.Close()
}
