package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/ntuplegen/internal/app"
	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/directive"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type flags struct {
	config    string
	ntuple    string
	friends   []string
	blocked   []string
	literals  []string
	output    string
	format    string
	logFormat string
	logLevel  string
	workers   int
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		f   flags
		cfg *app.Config
	)
	cmd := &cobra.Command{
		Use:   "ntuplegen [flags] [CONFIG]",
		Short: "Generate ntuple slimming directives from a babymaker configuration.",
		Long: `ntuplegen reads a babymaker configuration and the branch dump of an ntuple,
resolves every output variable against the available branches and writes the
resulting directive.

CONFIG is a .yaml/.yml file, a .hcl file, or a directory of .hcl files.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.config == "" && len(args) > 0 {
				f.config = args[0]
			}
			if f.config == "" {
				slog.Debug("No config path provided, printing usage and exiting.")
				return cmd.Help()
			}

			var err error
			cfg, err = f.appConfig()
			return err
		},
	}
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "Path to the babymaker configuration.")
	fs.StringVarP(&f.ntuple, "ntuple", "n", "", "Path to the branch dump of the main ntuple.")
	fs.StringSliceVar(&f.friends, "friend", nil, "Path to the branch dump of a friend ntuple. Repeatable.")
	fs.StringSliceVar(&f.blocked, "block-tree", nil, "Tree of the main ntuple to ignore. Repeatable.")
	fs.StringArrayVarP(&f.literals, "literal", "l", nil, "Literal definition NAME=VALUE inlined into expressions. Repeatable.")
	fs.StringVarP(&f.output, "output", "o", "", "Write the directive to this file instead of stdout.")
	fs.StringVar(&f.format, "format", directive.FormatDebug, "Output format. Options: "+strings.Join(directive.Formats, ", ")+".")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.IntVar(&f.workers, "workers", 0, "Number of output trees resolved concurrently. 0 uses every CPU.")

	if err := cmd.Execute(); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if cfg == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func (f *flags) appConfig() (*app.Config, error) {
	var literals []config.Pair
	for _, def := range f.literals {
		p, err := app.ParseLiteral(def)
		if err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}
		literals = append(literals, p)
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:   f.config,
		NtuplePath:   f.ntuple,
		Friends:      f.friends,
		BlockedTrees: f.blocked,
		Literals:     literals,
		OutputPath:   f.output,
		Format:       strings.ToLower(f.format),
		LogFormat:    strings.ToLower(f.logFormat),
		LogLevel:     strings.ToLower(f.logLevel),
		WorkerCount:  f.workers,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: fmt.Sprintf("invalid arguments: %v", err)}
	}
	return cfg, nil
}
