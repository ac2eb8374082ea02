package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/vnscript/internal/vnscript"
)

const newLong = `
The new script has a start-dialogue pointing at a first label, which holds
the opening line of dialogue and optionally a background image.

Any of the entry label or opening line not given as flags are prompted for.
`

// newScript returns the new subcommand.
func newScript() (*cli.Command, error) {
	var options vnscript.NewOptions

	return cli.New(
		"new",
		cli.Short("Scaffold a new script"),
		cli.Long(newLong),
		cli.Arg(&options.Path, "file", "Path of the script to create", cli.ArgDefault("story.vns")),
		cli.Flag(&options.Entry, "entry", 'e', "Name of the first label"),
		cli.Flag(&options.Text, "text", 't', "Opening line of dialogue"),
		cli.Flag(&options.Background, "bg", flag.NoShortHand, "Background image of the first label"),
		cli.Flag(&options.Force, "force", flag.NoShortHand, "Overwrite the file if it exists"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			app := vnscript.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.New(ctx, options)
		}),
	)
}
