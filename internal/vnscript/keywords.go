package vnscript

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/hue/tabwriter"
	"go.followtheprocess.codes/vnscript/internal/syntax/token"
)

// Styles.
const (
	// keywordStyle is the style used for keyword names.
	keywordStyle = hue.Cyan | hue.Bold

	// dimmed is the style used for informational content like keyword descriptions.
	dimmed = hue.BrightBlack | hue.Italic
)

// KeywordsOptions are the options passed to the keywords subcommand.
type KeywordsOptions struct {
	// JSON outputs the keyword table as a JSON object.
	JSON bool

	// Debug enables debug logging.
	Debug bool
}

// Keywords implements the keywords subcommand, listing every keyword of the notation
// with a description of what it does.
func (a App) Keywords(options KeywordsOptions) error {
	logger := a.logger.Prefixed("keywords")

	descriptions := token.Descriptions()
	logger.Debug("Loaded keyword table", slog.Int("keywords", len(descriptions)))

	if options.JSON {
		encoder := json.NewEncoder(a.stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(descriptions)
	}

	tab := tabwriter.NewWriter(a.stdout, 0, 8, 2, ' ', 0)

	for _, name := range token.Names() {
		marker := " "
		if _, ok := token.Keyword(name); ok {
			marker = "*"
		}

		fmt.Fprintf(tab, "%s %s\t%s\n", marker, keywordStyle.Text(name), dimmed.Text(descriptions[name]))
	}

	if err := tab.Flush(); err != nil {
		return fmt.Errorf("could not write keywords: %w", err)
	}

	fmt.Fprintf(a.stdout, "\n%s\n", dimmed.Text("* may start a top level expression"))

	return nil
}
