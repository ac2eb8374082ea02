package vnscript

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/vnscript/internal/config"
	"go.followtheprocess.codes/vnscript/internal/format"
	"go.followtheprocess.codes/vnscript/internal/syntax/validator"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Path is the path (file or directory) to check, ignored if Stdin is set.
	Path string

	// Config is the path to the configuration file, empty means use the defaults.
	Config string

	// Format is the output format, empty means use the configured one.
	Format string

	// Columns is how columns are counted, empty means use the configured mode.
	Columns string

	// MaxProblems caps the diagnostics per file, 0 means no cap and nil means
	// use the configured value.
	MaxProblems *int

	// Stdin reads a single script from stdin instead of checking Path.
	Stdin bool

	// Debug enables debug logging.
	Debug bool
}

// Check implements the check subcommand.
func (a App) Check(ctx context.Context, options CheckOptions) error {
	logger := a.logger.Prefixed("check").With(slog.String("path", options.Path))
	logger.Debug("Checking path")

	cfg, err := a.settings(options)
	if err != nil {
		return err
	}

	logger.Debug("Resolved configuration", slog.String("config", fmt.Sprintf("%+v", cfg)))

	exporter, err := format.Lookup(cfg.Format)
	if err != nil {
		return err
	}

	opts := []validator.Option{
		validator.WithColumns(cfg.ColumnMode()),
		validator.WithMaxProblems(cfg.MaxProblems),
	}

	var results format.Results

	if options.Stdin {
		logger.Debug("Reading script from stdin")

		src, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("could not read stdin: %w", err)
		}

		results.Files = []format.Report{report("stdin", src, opts)}
	} else {
		paths, err := a.collect(options.Path, cfg.Extensions)
		if err != nil {
			return err
		}

		logger.Debug("Checking scripts given by path", slog.Int("number", len(paths)))

		if len(paths) == 0 {
			msg.Fwarn(a.stderr, "no scripts with extension(s) %v found in %s", cfg.Extensions, options.Path)
			return nil
		}

		results.Files, err = checkAll(ctx, paths, opts)
		if err != nil {
			return err
		}
	}

	if err := a.write(exporter, cfg.Format, results); err != nil {
		return err
	}

	if problems := results.Problems(); problems != 0 {
		invalid := 0

		for _, file := range results.Files {
			if !file.Valid() {
				invalid++
			}
		}

		logger.Debug("Found problems", slog.Int("problems", problems), slog.Int("files", invalid))

		return fmt.Errorf("%w: %d problem(s) in %d file(s)", ErrInvalid, problems, invalid)
	}

	return nil
}

// settings loads the configuration file and applies any overrides from options.
func (a App) settings(options CheckOptions) (config.Config, error) {
	cfg, err := config.Load(options.Config)
	if err != nil {
		return config.Config{}, err
	}

	if options.Format != "" {
		cfg.Format = options.Format
	}

	if options.Columns != "" {
		cfg.Columns = options.Columns
	}

	if options.MaxProblems != nil {
		cfg.MaxProblems = *options.MaxProblems
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid options: %w", err)
	}

	return cfg, nil
}

// collect returns the scripts to check for path, which may be a single file
// (checked regardless of it's extension) or a directory to search.
func (a App) collect(path string, extensions []string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not get path info: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var paths []string

	for file, err := range scripts(path, extensions) {
		if err != nil {
			return nil, fmt.Errorf("could not walk %s: %w", path, err)
		}

		paths = append(paths, file)
	}

	return paths, nil
}

// write exports the results, text output goes to stderr after a success line per
// valid script on stdout, every other format is a single document on stdout.
func (a App) write(exporter format.Exporter, name string, results format.Results) error {
	if name != "text" {
		return exporter.Export(a.stdout, results)
	}

	for _, file := range results.Files {
		if file.Valid() {
			msg.Fsuccess(a.stdout, "%s is valid", file.Path)
		}
	}

	return exporter.Export(a.stderr, results)
}

// checkAll validates every script in paths concurrently, returning the reports in
// the same order as paths.
func checkAll(ctx context.Context, paths []string, opts []validator.Option) ([]format.Report, error) {
	reports := make([]format.Report, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("could not read %s: %w", path, err)
			}

			reports[i] = report(path, src, opts)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// report validates a single script.
func report(path string, src []byte, opts []validator.Option) format.Report {
	result := validator.Analyse(path, src, opts...)

	return format.Report{
		Path:        path,
		Expressions: result.Expressions,
		Diagnostics: result.Diagnostics,
		Outline:     result.Document,
		Source:      src,
	}
}
