package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/ntuplegen/internal/branches"
	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/hcl"
	"github.com/specialistvlad/ntuplegen/internal/yamlconf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	lookup branches.Lookup
}

// Option overrides one of the App's collaborators.
type Option func(*App)

// WithLoader replaces the loader picked from the config path.
func WithLoader(l config.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithLookup replaces the file-backed branch lookup.
func WithLookup(l branches.Lookup) Option {
	return func(a *App) { a.lookup = l }
}

// NewApp is the constructor for the main application. The rendered directive
// goes to outW unless the config names an output file; logs and progress
// messages go to errW.
func NewApp(outW, errW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	a := &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: cfg,
		loader: loaderFor(cfg.ConfigPath),
		lookup: branches.NewFileLookup(),
	}
	for _, opt := range opts {
		opt(a)
	}
	logger.Debug("App configured.", "config_path", cfg.ConfigPath, "format", cfg.Format)
	return a
}

// loaderFor picks the YAML loader for .yaml and .yml files and the HCL
// loader for everything else, directories included.
func loaderFor(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlconf.NewLoader()
	}
	return hcl.NewLoader()
}

// output opens the destination for the rendered directive.
func (a *App) output() (io.WriteCloser, error) {
	if a.config.OutputPath == "" {
		return nopCloser{a.outW}, nil
	}
	return os.Create(a.config.OutputPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
