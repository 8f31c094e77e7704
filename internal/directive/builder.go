package directive

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/ntuplegen/internal/branches"
	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/ctxlog"
	"github.com/specialistvlad/ntuplegen/internal/dag"
)

// Options tune a Builder.
type Options struct {
	// Literals are inlined by value wherever they are referenced.
	Literals []config.Pair
	// Workers bounds how many output trees are resolved at once. Zero means
	// GOMAXPROCS.
	Workers int
	// Report receives the human-readable progress messages. Nil discards
	// them.
	Report io.Writer
}

// Builder builds a Directive from a configuration and the ntuple it reads.
type Builder struct {
	model   *config.Model
	ntuples *branches.Ntuples
	opts    Options
}

func NewBuilder(model *config.Model, ntuples *branches.Ntuples, opts Options) *Builder {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Builder{model: model, ntuples: ntuples, opts: opts}
}

type treeResult struct {
	tree   *Tree
	report *report
}

// Build resolves every output tree. Trees whose input tree is missing from
// the ntuple are skipped with a message. Configuration errors of all trees
// are collected and returned together.
func (b *Builder) Build(ctx context.Context) (*Directive, error) {
	logger := ctxlog.FromContext(ctx)
	literals := LiteralTable(b.opts.Literals)

	results := make([]treeResult, len(b.model.Outputs))
	errs := make([]error, len(b.model.Outputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Workers)
	for i, out := range b.model.Outputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tctx := ctxlog.With(gctx, "output_tree", out.Name)
			tree, rep, err := b.buildTree(tctx, out, literals)
			results[i] = treeResult{tree: tree, report: rep}
			if err != nil {
				errs[i] = fmt.Errorf("output tree %q: %w", out.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merr *multierror.Error
	for _, err := range errs {
		merr = multierror.Append(merr, err)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	d := &Directive{
		SystemHeaders: uniq(b.model.Headers.System),
		UserHeaders:   uniq(b.model.Headers.User),
		Ntuple:        b.ntuples.Path,
		Friends:       append([]string(nil), b.ntuples.Friends...),
		TreeRelations: b.ntuples.Relations,
	}
	for _, r := range results {
		r.report.writeTo(b.opts.Report)
		if r.tree == nil {
			continue
		}
		d.Trees = append(d.Trees, r.tree)
		if !slices.Contains(d.InputTrees, r.tree.InputTree) {
			d.InputTrees = append(d.InputTrees, r.tree.InputTree)
		}
	}
	logger.Debug("Directive built.", "trees", len(d.Trees))
	return d, nil
}

func (b *Builder) buildTree(ctx context.Context, out *config.Output, literals *dag.Table) (*Tree, *report, error) {
	rep := &report{}
	logger := ctxlog.FromContext(ctx)

	input, ok := b.ntuples.Trees.Tree(out.Input)
	if !ok {
		rep.add(levelSkip, "Input tree %s not found, skipping %s...", out.Input, out.Name)
		logger.Warn("Input tree not found.", "input_tree", out.Input)
		return nil, rep, nil
	}
	rep.add(levelBanner, "=== Handling output tree %s ===", out.Name)

	section := config.Merge(b.model.Global, out.Section, out.Inherits())
	scopes := dag.Scopes{
		ScopeLiterals: literals,
		ScopeRaw:      rawTable(input),
	}

	var errs *multierror.Error
	dropped, err := addDropKeepRename(scopes, section)
	errs = multierror.Append(errs, err)
	errs = multierror.Append(errs, addCalculation(scopes, section))
	addSelection(scopes, section)
	mute, err := compilePatterns("mute", section.Mute)
	errs = multierror.Append(errs, err)
	if err := errs.ErrorOrNil(); err != nil {
		return nil, rep, err
	}
	for _, name := range dropped {
		rep.add(levelPlain, "Dropping branch: %s", name)
	}

	resolver := dag.NewResolver(scopes, Ordering, dag.WithSkipNames(section.SkipNames...))
	rawOnly := resolver.WithOrdering([]string{ScopeRaw})
	acc := dag.NewResolved()

	selection, failedSel, err := resolver.ResolveScope(ctx, ScopeSelection, acc)
	if err != nil {
		return nil, rep, err
	}
	keep, failedKeep, err := rawOnly.ResolveScope(ctx, ScopeKeep, acc)
	if err != nil {
		return nil, rep, err
	}
	rename, failedRename, err := rawOnly.ResolveScope(ctx, ScopeRename, acc)
	if err != nil {
		return nil, rep, err
	}
	calculation, failedCalc, err := resolver.ResolveScope(ctx, ScopeCalculation, acc)
	if err != nil {
		return nil, rep, err
	}

	tree := &Tree{
		Name:      out.Name,
		InputTree: out.Input,
		Sel:       []string{"true"},
		Extra:     out.Extra,
		Resolved:  acc.Nodes(),
		Dropped:   dropped,
	}

	for _, n := range failedSel {
		if mute.match(n.Expr) {
			continue
		}
		rep.add(levelWarning, "Selection expr %s cannot be resolved...", n.Expr)
		u, err := unresolved(resolver, UnresolvedSelection, n)
		if err != nil {
			return nil, rep, err
		}
		tree.Unresolved = append(tree.Unresolved, u)
	}
	for _, n := range slices.Concat(failedKeep, failedRename, failedCalc) {
		if mute.match(n.Name) {
			continue
		}
		kind := UnresolvedTemp
		if n.Output {
			kind = UnresolvedOutput
			rep.add(levelWarning, "Output branch %s cannot be resolved...", n.Name)
		} else {
			rep.add(levelWarning, "Temp variable %s cannot be resolved...", n.Name)
		}
		u, err := unresolved(resolver, kind, n)
		if err != nil {
			return nil, rep, err
		}
		tree.Unresolved = append(tree.Unresolved, u)
	}

	for _, n := range selection {
		if n.Fake() {
			tree.Sel = append(tree.Sel, n.Rval())
		} else if !n.Input {
			tree.PreSelVars = append(tree.PreSelVars, n)
		}
	}
	for _, n := range slices.Concat(keep, rename, calculation) {
		if !n.Fake() && !n.Input {
			tree.PostSelVars = append(tree.PostSelVars, n)
		}
	}
	for _, n := range tree.Resolved {
		if n.Input {
			tree.Input = append(tree.Input, n)
			tree.InputBr = append(tree.InputBr, n.Fname())
		}
		if n.Output {
			tree.Output = append(tree.Output, n)
		}
		if !n.Input && !n.Output && !n.Fake() {
			tree.Tmp = append(tree.Tmp, n)
		}
	}

	logger.Debug("Output tree resolved.",
		"resolved", len(tree.Resolved), "unresolved", len(tree.Unresolved))
	return tree, rep, nil
}

func unresolved(r *dag.Resolver, kind UnresolvedKind, n *dag.Node) (Unresolved, error) {
	missing, err := r.Unresolved(n)
	if err != nil {
		return Unresolved{}, err
	}
	return Unresolved{Kind: kind, Name: n.Name, Expr: n.Rval(), Missing: missing}, nil
}

func uniq(items []string) []string {
	var out []string
	for _, it := range items {
		if !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}
