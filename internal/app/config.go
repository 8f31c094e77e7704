package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/directive"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // .yaml, .yml, .hcl or a directory of .hcl files
	NtuplePath string // branch dump of the main ntuple
	Friends    []string
	// BlockedTrees are removed from the main ntuple before anything else.
	BlockedTrees []string
	Literals     []config.Pair

	// OutputPath is where the rendered directive goes. Empty means the
	// app's output writer.
	OutputPath string
	Format     string

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	var errs *multierror.Error
	if cfg.ConfigPath == "" {
		errs = multierror.Append(errs, errors.New("ConfigPath is a required configuration field and cannot be empty"))
	}
	if cfg.NtuplePath == "" {
		errs = multierror.Append(errs, errors.New("NtuplePath is a required configuration field and cannot be empty"))
	}

	if cfg.Format == "" {
		cfg.Format = directive.FormatDebug
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !slices.Contains(directive.Formats, cfg.Format) {
		errs = multierror.Append(errs, fmt.Errorf("invalid format %q: must be one of %s", cfg.Format, strings.Join(directive.Formats, ", ")))
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		errs = multierror.Append(errs, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat))
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		errs = multierror.Append(errs, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel))
	}
	if cfg.WorkerCount < 0 {
		errs = multierror.Append(errs, fmt.Errorf("invalid workers %d: must not be negative", cfg.WorkerCount))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseLiteral splits a NAME=VALUE definition.
func ParseLiteral(def string) (config.Pair, error) {
	name, value, ok := strings.Cut(def, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return config.Pair{}, fmt.Errorf("invalid literal %q: expected NAME=VALUE", def)
	}
	return config.Pair{Key: name, Value: strings.TrimSpace(value)}, nil
}
