package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ntuplegen/internal/branches"
	"github.com/specialistvlad/ntuplegen/internal/ctxlog"
	"github.com/specialistvlad/ntuplegen/internal/directive"
)

// Run loads the configuration and the ntuple structure, builds the directive
// and renders it.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded.", "outputs", len(model.Outputs))

	ntuples, err := branches.DumpNtuples(ctx, a.lookup, a.config.NtuplePath, a.config.Friends, a.config.BlockedTrees)
	if err != nil {
		return fmt.Errorf("failed to dump ntuple structure: %w", err)
	}
	a.logger.Debug("Ntuple structure dumped.", "trees", ntuples.Trees.Names())

	builder := directive.NewBuilder(model, ntuples, directive.Options{
		Literals: a.config.Literals,
		Workers:  a.config.WorkerCount,
		Report:   a.errW,
	})
	d, err := builder.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build directive: %w", err)
	}

	w, err := a.output()
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
	}()

	if err := directive.Render(w, d, a.config.Format); err != nil {
		return fmt.Errorf("failed to render directive: %w", err)
	}

	a.logger.Info("Directive written.", "trees", len(d.Trees), "format", a.config.Format)
	a.logger.Debug("App.Run method finished.")
	return nil
}
