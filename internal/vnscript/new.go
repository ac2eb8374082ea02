package vnscript

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"
	"go.followtheprocess.codes/msg"
	"go.followtheprocess.codes/vnscript/internal/syntax/validator"
)

// NewOptions are the options passed to the new subcommand.
type NewOptions struct {
	// Path is the script file to create.
	Path string

	// Entry is the name of the first label, the script starts from here.
	Entry string

	// Text is the opening line of dialogue.
	Text string

	// Background is the optional background image of the first label.
	Background string

	// Force allows overwriting an existing file.
	Force bool

	// Debug enables debug logging.
	Debug bool
}

// New implements the new subcommand, scaffolding a valid script with a start-dialogue
// and a first label.
//
// Any of the entry label or opening text not given in options are asked for interactively.
func (a App) New(ctx context.Context, options NewOptions) error {
	logger := a.logger.Prefixed("new").With(slog.String("path", options.Path))

	if options.Path == "" {
		return errors.New("path of the script to create is required")
	}

	if !options.Force {
		if _, err := os.Stat(options.Path); err == nil {
			return fmt.Errorf("%s already exists, pass --force to overwrite it", options.Path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("could not get path info: %w", err)
		}
	}

	if err := a.prompt(ctx, &options); err != nil {
		return err
	}

	logger.Debug("Scaffolding script", slog.String("entry", options.Entry), slog.String("background", options.Background))

	script, err := scaffold(options)
	if err != nil {
		return err
	}

	if diagnostics := validator.Validate(options.Path, []byte(script)); len(diagnostics) != 0 {
		return fmt.Errorf("scaffolded script would be invalid: %s", strings.TrimSpace(diagnostics[0].String()))
	}

	if err := os.WriteFile(options.Path, []byte(script), 0o644); err != nil {
		return fmt.Errorf("could not write %s: %w", options.Path, err)
	}

	msg.Fsuccess(a.stdout, "Created %s", options.Path)

	return nil
}

// prompt asks for any of the required values missing from options.
func (a App) prompt(ctx context.Context, options *NewOptions) error {
	var fields []huh.Field

	if options.Entry == "" {
		fields = append(
			fields,
			huh.NewInput().
				Title("Entry label").
				Description("The label the script starts from").
				Value(&options.Entry).
				Validate(validateName),
		)
	}

	if options.Text == "" {
		fields = append(
			fields,
			huh.NewInput().
				Title("Opening line").
				Description("The first line of dialogue").
				Value(&options.Text).
				Validate(validateText),
		)
	}

	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithInput(a.stdin).WithOutput(a.stdout)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	return nil
}

// scaffold renders the script described by options.
func scaffold(options NewOptions) (string, error) {
	if err := validateName(options.Entry); err != nil {
		return "", fmt.Errorf("invalid entry label: %w", err)
	}

	if err := validateText(options.Text); err != nil {
		return "", fmt.Errorf("invalid opening line: %w", err)
	}

	s := &strings.Builder{}

	fmt.Fprintf(s, "(start-dialogue %s)\n\n", options.Entry)
	fmt.Fprintf(s, "(label %s\n", options.Entry)
	fmt.Fprintf(s, "  (text %q)", options.Text)

	if options.Background != "" {
		if err := validateName(options.Background); err != nil {
			return "", fmt.Errorf("invalid background: %w", err)
		}

		fmt.Fprintf(s, "\n  (bg %s)", options.Background)
	}

	s.WriteString(")\n")

	return s.String(), nil
}

// validateName reports whether name can be written as a single word.
func validateName(name string) error {
	if name == "" {
		return errors.New("must not be empty")
	}

	if strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')' || r == '"'
	}) {
		return fmt.Errorf("%q must be a single word without parentheses or quotes", name)
	}

	return nil
}

// validateText reports whether text can be written as a quoted dialogue line.
func validateText(text string) error {
	if text == "" {
		return errors.New("must not be empty")
	}

	if strings.ContainsAny(text, "\"()\\\n") {
		return fmt.Errorf("%q must not contain quotes, parentheses, backslashes or newlines", text)
	}

	return nil
}
