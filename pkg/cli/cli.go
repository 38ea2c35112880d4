// Package cli implements the rush command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/funvibe/rush/internal/config"
	"github.com/funvibe/rush/internal/driver"
	"github.com/funvibe/rush/internal/value"
)

// runFlags holds the flags of the root command.
type runFlags struct {
	mode    string
	output  string
	onError string
	color   string
	config  string
	input   string
	sets    []string
	verbose bool

	// mode shortcuts
	str, lines, words, chars, bytes, files bool
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.mode, "mode", "m", "", "record mode: "+strings.Join(config.Modes, ", "))
	fs.BoolVarP(&f.str, "string", "s", false, "read the whole input as one string")
	fs.BoolVarP(&f.lines, "lines", "a", false, "read all lines as one array")
	fs.BoolVarP(&f.words, "words", "w", false, "process each word, keeping whitespace")
	fs.BoolVarP(&f.chars, "chars", "c", false, "process each character")
	fs.BoolVarP(&f.bytes, "bytes", "b", false, "process each byte as an integer")
	fs.BoolVarP(&f.files, "files", "f", false, "read each line as a file name and process the file")
	fs.StringVarP(&f.output, "output", "o", "", "output format: "+strings.Join(config.Outputs, ", "))
	fs.StringVar(&f.onError, "on-error", "", "what to do with a failing record: "+strings.Join(config.ErrorPolicies, ", "))
	fs.StringArrayVar(&f.sets, "set", nil, "bind a variable before the first record (name=value)")
	fs.StringVar(&f.config, "config", "", "configuration file (default $"+config.EnvConfigPath+")")
	fs.StringVar(&f.color, "color", "", "colour error messages: "+strings.Join(config.ColorModes, ", "))
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log evaluation details to stderr")
	fs.StringVarP(&f.input, "input", "i", "", "read input from `file` instead of stdin")
}

// shortcutMode returns the mode picked by a shortcut flag, if any.
func (f *runFlags) shortcutMode() string {
	shortcuts := []struct {
		set  bool
		mode driver.Mode
	}{
		{f.str, driver.ModeString},
		{f.lines, driver.ModeLines},
		{f.words, driver.ModeWords},
		{f.chars, driver.ModeChars},
		{f.bytes, driver.ModeBytes},
		{f.files, driver.ModeFiles},
	}
	for _, s := range shortcuts {
		if s.set {
			return string(s.mode)
		}
	}
	return ""
}

// NewCommand returns the rush root command.
func NewCommand() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "rush [flags] EXPR...",
		Short: "evaluate expressions over lines, words or bytes of input",
		Long: `rush evaluates each EXPR against every record of its input.

The record is bound to _ and the result of one expression becomes _ for
the next. A result that is a function of one argument is applied to _.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, &flags, args)
		},
	}
	flags.register(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("mode", "string", "lines", "words", "chars", "bytes", "files")
	// Flags must come before the first expression.
	cmd.Flags().SetInterspersed(false)

	cmd.AddCommand(newParseCmd(), newVersionCmd())
	return cmd
}

func runRoot(cmd *cobra.Command, flags *runFlags, args []string) error {
	file, err := config.Load(flags.config)
	if err != nil {
		return err
	}
	if flags.color != "" && !contains(config.ColorModes, flags.color) {
		return fmt.Errorf("invalid color %q (want one of %s)", flags.color, strings.Join(config.ColorModes, ", "))
	}

	vars, err := parseVars(file.Vars, flags.sets)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)
	if flags.verbose {
		slog.SetDefault(logger)
	}

	mode := config.Or(flags.shortcutMode(), config.Or(flags.mode, file.Mode))
	d, err := driver.New(args, driver.Options{
		Mode:    driver.Mode(mode),
		Output:  driver.Format(config.Or(flags.output, file.Output)),
		OnError: driver.ErrorPolicy(config.Or(flags.onError, file.OnError)),
		Vars:    vars,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if flags.input != "" {
		f, err := os.Open(flags.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	return d.Run(cmd.Context(), in, cmd.OutOrStdout())
}

// parseVars merges the variables of the config file with those given
// by --set. Values are read the way input records are.
func parseVars(fromFile map[string]string, sets []string) (map[string]value.Value, error) {
	vars := make(map[string]value.Value, len(fromFile)+len(sets))
	for name, text := range fromFile {
		vars[name] = value.Parse(text)
	}
	for _, s := range sets {
		name, text, ok := strings.Cut(s, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", s)
		}
		vars[name] = value.Parse(text)
	}
	return vars, nil
}

// newLogger logs to w without timestamps, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Main runs the command with the process arguments and returns the
// exit code.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	colorMode := flagValue(cmd, "color")
	if colorMode == "" {
		if file, err := config.Load(flagValue(cmd, "config")); err == nil {
			colorMode = file.Color
		}
	}
	printError(stderr, err, useColor(config.Or(colorMode, config.DefaultColor), stderr))
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}

func flagValue(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
