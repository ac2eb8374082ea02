package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/vnscript/internal/vnscript"
)

// keywords returns the keywords subcommand.
func keywords() (*cli.Command, error) {
	var options vnscript.KeywordsOptions

	return cli.New(
		"keywords",
		cli.Short("List the keywords of the script notation"),
		cli.Flag(&options.JSON, "json", flag.NoShortHand, "Output the keywords as JSON"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := vnscript.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Keywords(options)
		}),
	)
}
