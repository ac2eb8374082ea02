package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/cli/flag"
	"go.followtheprocess.codes/vnscript/internal/config"
	"go.followtheprocess.codes/vnscript/internal/vnscript"
)

const checkLong = `
The path argument may be a directory or a file, pass --stdin instead to
read a single script from stdin.

If it is the name of a file, then this file alone is checked for
validity regardless of it's extension.

If it is a directory, this directory is scanned recursively for all
files with one of the configured extensions ('.vns' by default) and
any matching files will be validated.

Settings are read from a '.vnscript.toml' file in the current directory
if there is one, flags take precedence over the file.
`

// check returns the check subcommand.
func check() (*cli.Command, error) {
	var (
		options     vnscript.CheckOptions
		maxProblems int
	)

	return cli.New(
		"check",
		cli.Short("Check scripts for errors"),
		cli.Long(checkLong),
		cli.Arg(&options.Path, "path", "Path to check, may be directory or file", cli.ArgDefault(".")),
		cli.Flag(&options.Format, "format", 'f', "Output format, one of text, json, yaml or toml"),
		cli.Flag(&options.Columns, "columns", flag.NoShortHand, "How columns are counted, bytes or utf16"),
		cli.Flag(
			&maxProblems,
			"max-problems",
			flag.NoShortHand,
			"Cap on problems reported per file, 0 means no cap",
			cli.FlagDefault(-1),
		),
		cli.Flag(
			&options.Config,
			"config",
			'c',
			"Path to the configuration file",
			cli.FlagDefault(config.FileName),
		),
		cli.Flag(&options.Stdin, "stdin", flag.NoShortHand, "Read a single script from stdin"),
		cli.Flag(&options.Debug, "debug", 'd', "Enable debug logging"),
		cli.Run(func(ctx context.Context, cmd *cli.Command) error {
			if maxProblems >= 0 {
				options.MaxProblems = &maxProblems
			}

			app := vnscript.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
			return app.Check(ctx, options)
		}),
	)
}
