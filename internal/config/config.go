// Package config loads the optional project configuration file.
//
// Configuration lives in a TOML file, by default .vnscript.toml in the current
// directory. Every key is optional and a missing default file is not an error, the
// defaults are simply used instead. Command line flags take precedence over
// anything set here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/vnscript/internal/format"
	"go.followtheprocess.codes/vnscript/internal/syntax"
)

// FileName is the default name of the configuration file.
const FileName = ".vnscript.toml"

// DefaultMaxProblems is the default cap on diagnostics reported per file.
const DefaultMaxProblems = 1000

// ErrUnknownKeys is returned when the configuration file contains keys that
// are not recognised.
var ErrUnknownKeys = errors.New("unknown configuration keys")

// Config is the vnscript configuration.
type Config struct {
	// Extensions are the file extensions collected when checking a directory.
	Extensions []string `toml:"extensions"`

	// Columns is how diagnostic columns are counted, "bytes" or "utf16".
	Columns string `toml:"columns"`

	// Format is the default output format for check.
	Format string `toml:"format"`

	// MaxProblems caps the number of diagnostics reported per file, 0 means no cap.
	MaxProblems int `toml:"max-problems"`
}

// Default returns the default [Config].
func Default() Config {
	return Config{
		Extensions:  []string{".vns"},
		Columns:     syntax.ColumnBytes.String(),
		Format:      "text",
		MaxProblems: DefaultMaxProblems,
	}
}

// Load reads the configuration file at path over the top of [Default].
//
// An empty path means there is no file and the defaults are returned. A missing
// [FileName] is not an error either, but any other path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == FileName {
			return cfg, nil
		}

		return Config{}, fmt.Errorf("could not read config file: %w", err)
	}

	md, err := toml.Decode(string(contents), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("could not decode %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}

		return Config{}, fmt.Errorf("%w in %s: %s", ErrUnknownKeys, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports whether the configuration is usable.
func (c Config) Validate() error {
	var errs []error

	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("extensions must not be empty"))
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with a '.'", ext))
		}
	}

	if c.MaxProblems < 0 {
		errs = append(errs, fmt.Errorf("max-problems must be >= 0, got %d", c.MaxProblems))
	}

	if _, err := syntax.ParseColumnMode(c.Columns); err != nil {
		errs = append(errs, err)
	}

	if _, err := format.Lookup(c.Format); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ColumnMode returns the parsed column mode, it assumes the config is valid.
func (c Config) ColumnMode() syntax.ColumnMode {
	mode, err := syntax.ParseColumnMode(c.Columns)
	if err != nil {
		return syntax.ColumnBytes
	}

	return mode
}
