// Package cmd implements vnscript's CLI.
package cmd

import (
	"go.followtheprocess.codes/cli"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the vnscript CLI.
func Build() (*cli.Command, error) {
	return cli.New(
		"vnscript",
		cli.Short("A validator for visual novel scripts"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Check a single script", "vnscript check ./story.vns"),
		cli.Example("Check every script in a directory (recursively)", "vnscript check ./story"),
		cli.Example("Check a script from stdin, reporting as JSON", "cat story.vns | vnscript check --stdin --format json"),
		cli.Example("List the keywords of the notation", "vnscript keywords"),
		cli.Example("Start a new script", "vnscript new ./story.vns --entry intro"),
		cli.SubCommands(check, keywords, newScript),
	)
}
