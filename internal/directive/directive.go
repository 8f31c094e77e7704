package directive

import "github.com/specialistvlad/ntuplegen/internal/dag"

// Scope names.
const (
	ScopeLiterals    = "literals"
	ScopeRaw         = "raw"
	ScopeKeep        = "keep"
	ScopeRename      = "rename"
	ScopeCalculation = "calculation"
	ScopeSelection   = "selection"
)

// Ordering is the scope search order for selection and calculation.
var Ordering = []string{ScopeLiterals, ScopeCalculation, ScopeRename, ScopeRaw}

// Directive is everything a code generator needs for one run.
type Directive struct {
	SystemHeaders []string
	UserHeaders   []string
	// InputTrees lists each input tree used by at least one output tree.
	InputTrees    []string
	Ntuple        string
	Friends       []string
	TreeRelations map[string][]bool
	Trees         []*Tree
}

// Tree is the directive for one output tree.
type Tree struct {
	Name      string
	InputTree string
	// Sel holds "true" followed by the substituted selection expressions.
	Sel []string
	// PreSelVars must be computed before the cut is evaluated.
	PreSelVars []*dag.Node
	// PostSelVars are computed only for events passing the cut.
	PostSelVars []*dag.Node
	Input       []*dag.Node
	Output      []*dag.Node
	Tmp         []*dag.Node
	// InputBr lists the Fname of every input branch.
	InputBr []string
	Extra   map[string]any

	// Resolved is every node of the tree in dependency order.
	Resolved   []*dag.Node
	Dropped    []string
	Unresolved []Unresolved
}

// UnresolvedKind says what an unresolved variable was needed for.
type UnresolvedKind int

const (
	UnresolvedSelection UnresolvedKind = iota
	UnresolvedOutput
	UnresolvedTemp
)

func (k UnresolvedKind) String() string {
	switch k {
	case UnresolvedSelection:
		return "selection"
	case UnresolvedOutput:
		return "output"
	case UnresolvedTemp:
		return "temp"
	}
	return "unknown"
}

// Unresolved describes a variable that could not be resolved.
type Unresolved struct {
	Kind UnresolvedKind
	Name string
	// Expr is the substituted expression of the last candidate tried.
	Expr string
	// Missing lists the dependencies that could not be found.
	Missing []string
}
