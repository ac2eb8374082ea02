// Package vnscript implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package vnscript

import (
	"errors"
	"io"

	"go.followtheprocess.codes/log"
)

// ErrInvalid is returned when one or more scripts have problems.
var ErrInvalid = errors.New("invalid scripts")

// App represents the vnscript program.
type App struct {
	stdin   io.Reader   // Input, only used when reading a script from stdin or prompting
	stdout  io.Writer   // Normal program output is written here
	stderr  io.Writer   // Logs and errors are written here
	logger  *log.Logger // The logger for the application
	version string      // The vnscript version
}

// New returns a new [App].
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) App {
	level := log.LevelInfo
	if debug {
		level = log.LevelDebug
	}

	logger := log.New(stderr, log.Prefix("vnscript"), log.WithLevel(level))

	return App{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		version: version,
	}
}
