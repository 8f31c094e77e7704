package dag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/ntuplegen/internal/boolexpr"
	"github.com/specialistvlad/ntuplegen/internal/ctxlog"
)

// DefaultOrdering is the scope search order used when none is given.
var DefaultOrdering = []string{"calculation", "rename", "raw"}

// Resolver resolves variables against a fixed set of scopes. It holds no
// per-call state, so one Resolver may serve concurrent calls as long as each
// call gets its own accumulator.
type Resolver struct {
	scopes   Scopes
	ordering []string
	skip     map[string]struct{}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSkipNames makes the resolver treat the given names as always resolved
// without materializing a node for them. Physical units are the usual case.
func WithSkipNames(names ...string) Option {
	return func(r *Resolver) {
		for _, name := range names {
			r.skip[name] = struct{}{}
		}
	}
}

// NewResolver returns a resolver that searches scopes in the given order. A
// nil ordering means DefaultOrdering.
func NewResolver(scopes Scopes, ordering []string, opts ...Option) *Resolver {
	if ordering == nil {
		ordering = DefaultOrdering
	}
	r := &Resolver{
		scopes:   scopes,
		ordering: append([]string(nil), ordering...),
		skip:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithOrdering returns a copy of r that searches scopes in a different order.
func (r *Resolver) WithOrdering(ordering []string) *Resolver {
	cp := *r
	cp.ordering = append([]string(nil), ordering...)
	return &cp
}

// Result is the outcome of resolving one variable.
type Result struct {
	OK bool
	// Node is the resolved node, or the last attempted candidate on failure.
	// Its children then hold the dependencies that did resolve.
	Node *Node
	// Resolved lists the nodes materialized by this call that the
	// accumulator did not already hold, dependencies first.
	Resolved []*Node
}

// Resolve resolves v, which lives in scope, reusing any node already in acc.
// acc is read but not modified. Only a malformed expression is an error; an
// unresolvable variable is reported through Result.OK.
func (r *Resolver) Resolve(ctx context.Context, v *Variable, scope string, acc *Resolved) (Result, error) {
	w := &walk{
		Resolver: r,
		logger:   ctxlog.FromContext(ctx),
		global:   acc,
		scratch:  NewResolved(),
	}
	return w.resolve(v, scope, nil)
}

// ResolveMany resolves vars in order. Each success is committed to acc before
// the next variable is tried. resolved holds the nodes newly added to acc,
// failed holds the diagnostic node of every variable that could not be
// resolved.
func (r *Resolver) ResolveMany(ctx context.Context, vars []*Variable, scope string, acc *Resolved) (resolved, failed []*Node, err error) {
	if acc == nil {
		acc = NewResolved()
	}
	for _, v := range vars {
		res, err := r.Resolve(ctx, v, scope, acc)
		if err != nil {
			return nil, nil, err
		}
		if !res.OK {
			failed = append(failed, res.Node)
			continue
		}
		resolved = append(resolved, acc.Add(res.Resolved...)...)
	}
	return resolved, failed, nil
}

// ResolveScope resolves every variable of a scope in table order. An unknown
// scope yields empty results.
func (r *Resolver) ResolveScope(ctx context.Context, scope string, acc *Resolved) (resolved, failed []*Node, err error) {
	return r.ResolveMany(ctx, r.scopes[scope].Variables(), scope, acc)
}

// Unresolved lists the dependencies of n's expression that are neither
// among its resolved children nor skipped names.
func (r *Resolver) Unresolved(n *Node) ([]string, error) {
	deps, err := boolexpr.FindAllVars(n.Expr)
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(n.Children))
	for _, c := range n.Children {
		have[c.Name] = struct{}{}
	}
	var missing []string
	for _, d := range deps {
		if _, ok := have[d]; ok {
			continue
		}
		if _, ok := r.skip[d]; ok {
			continue
		}
		missing = append(missing, d)
	}
	return missing, nil
}

// walk is the state of one Resolve call. global is the caller's accumulator.
// scratch collects everything this call resolved so far, so later candidates
// can reuse work done by earlier, failed ones.
type walk struct {
	*Resolver
	logger  *slog.Logger
	global  *Resolved
	scratch *Resolved
}

func (w *walk) resolve(v *Variable, scope string, parent *Node) (Result, error) {
	if v.IsLiteral() {
		node := newNode(v, "", "", parent)
		if parent == nil {
			w.logger.Warn("Literal resolved without a parent, nothing will inline it.", "name", v.Name)
		}
		link(parent, node)
		return Result{OK: true, Node: node}, nil
	}

	if v.IsTerminal() {
		node := newNode(v, scope, "", parent)
		if existing, newly, ok := w.reuse(node); ok {
			link(parent, existing)
			return Result{OK: true, Node: existing, Resolved: newly}, nil
		}
		link(parent, node)
		return Result{OK: true, Node: node, Resolved: []*Node{node}}, nil
	}

	cands, err := v.Candidates()
	if err != nil {
		return Result{}, fmt.Errorf("scope %q: %w", scope, err)
	}

	var last *Node
	for _, cand := range cands {
		node := newNode(v, scope, cand.Expr, parent)
		if existing, newly, ok := w.reuse(node); ok {
			w.logger.Debug("Reusing resolved node.", "node", existing.Fname(), "expr", existing.Expr)
			link(parent, existing)
			return Result{OK: true, Node: existing, Resolved: newly}, nil
		}

		ok, local, err := w.resolveDeps(node, cand.Deps)
		if err != nil {
			return Result{}, err
		}
		if ok {
			local.Add(node)
			link(parent, node)
			return Result{OK: true, Node: node, Resolved: local.Nodes()}, nil
		}
		w.logger.Debug("Candidate expression not resolvable.", "name", v.Name, "scope", scope, "expr", cand.Expr)
		last = node
	}
	return Result{Node: last}, nil
}

// resolveDeps resolves every dependency of a candidate node. It keeps going
// after a failure so the node's children show everything that did resolve.
func (w *walk) resolveDeps(node *Node, deps []string) (bool, *Resolved, error) {
	blocked := node.ancestry()
	local := NewResolved()
	complete := true

	for _, dep := range deps {
		if _, ok := w.skip[dep]; ok {
			continue
		}
		found := false
		for _, scope := range w.ordering {
			dv, ok := w.scopes.Lookup(scope, dep)
			if !ok {
				continue
			}
			if _, ok := blocked[scope+"_"+dep]; ok {
				w.logger.Debug("Dependency skipped to avoid a cycle.", "name", dep, "scope", scope)
				continue
			}
			res, err := w.resolve(dv, scope, node)
			if err != nil {
				return false, nil, err
			}
			if res.OK {
				local.Add(res.Resolved...)
				w.scratch.Add(res.Resolved...)
				found = true
				break
			}
		}
		if !found {
			w.logger.Debug("Dependency not resolvable.", "name", dep, "parent", node.Fname())
			complete = false
		}
	}
	return complete, local, nil
}

// reuse looks for a node equal to n. A hit in the caller's accumulator adds
// nothing new. A hit in this call's scratch set brings along the dependency
// closure the accumulator does not have yet.
func (w *walk) reuse(n *Node) (*Node, []*Node, bool) {
	if existing, ok := w.global.Find(n); ok {
		return existing, nil, true
	}
	if existing, ok := w.scratch.Find(n); ok {
		return existing, w.pending(existing), true
	}
	return nil, nil, false
}

// pending lists n and its transitive children that are not in the global
// accumulator, dependencies first. Literals are skipped.
func (w *walk) pending(n *Node) []*Node {
	var out []*Node
	seen := make(map[*Node]struct{})
	var visit func(*Node)
	visit = func(c *Node) {
		if _, ok := seen[c]; ok || c.IsLiteral() || w.global.Contains(c) {
			return
		}
		seen[c] = struct{}{}
		for _, gc := range c.Children {
			visit(gc)
		}
		out = append(out, c)
	}
	visit(n)
	return out
}

func link(parent, child *Node) {
	if parent != nil {
		parent.AddChild(child)
	}
}
