package dag

import (
	"regexp"
	"sync"
)

// Node is one resolved (or attempted) variable. Children are the nodes the
// chosen expression depends on, in resolution order. Parent is a
// back-reference used only to detect cycles. It never takes part in
// equality.
type Node struct {
	Name  string
	Scope string
	Type  string
	// Expr is the chosen candidate expression. Empty for terminal and
	// literal nodes.
	Expr    string
	Literal *string
	Input   bool
	Output  bool

	Parent   *Node
	Children []*Node
}

func newNode(v *Variable, scope, expr string, parent *Node) *Node {
	return &Node{
		Name:    v.Name,
		Scope:   scope,
		Type:    v.Type,
		Expr:    expr,
		Literal: v.Literal,
		Input:   v.Input,
		Output:  v.Output,
		Parent:  parent,
	}
}

// Fname is the scope-qualified name used as the generated C++ identifier.
func (n *Node) Fname() string {
	return n.Scope + "_" + n.Name
}

// IsLiteral reports whether the node stands for a literal constant.
func (n *Node) IsLiteral() bool {
	return n.Literal != nil
}

// Fake nodes carry an expression but no type. They are never declared as
// variables and are only inlined, as selection conditions are.
func (n *Node) Fake() bool {
	return n.Type == "" && n.Expr != "" && n.Literal == nil
}

// Rval is the node's expression with every dependency name replaced, as a
// whole word, by the dependency's Fname. Literal dependencies are replaced by
// their value. Replacements are applied in child order.
func (n *Node) Rval() string {
	val := n.Expr
	switch {
	case n.Literal != nil:
		val = *n.Literal
	case val == "":
		val = n.Name
	}
	for _, c := range n.Children {
		repl := c.Fname()
		if c.Literal != nil {
			repl = *c.Literal
		}
		val = wordPattern(c.Name).ReplaceAllLiteralString(val, repl)
	}
	return val
}

// Equal compares scope, name, type and chosen expression.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.key() == o.key()
}

// AddChild appends c unless an equal child is already present.
func (n *Node) AddChild(c *Node) {
	for _, existing := range n.Children {
		if existing.Equal(c) {
			return
		}
	}
	n.Children = append(n.Children, c)
}

// ancestry returns the Fnames of n and every ancestor.
func (n *Node) ancestry() map[string]struct{} {
	out := make(map[string]struct{})
	for cur := n; cur != nil; cur = cur.Parent {
		out[cur.Fname()] = struct{}{}
	}
	return out
}

func (n *Node) String() string {
	if n.Literal != nil {
		return n.Name + " := " + *n.Literal
	}
	lhs := n.Scope + "." + n.Name
	if n.Type != "" {
		lhs = n.Type + " " + lhs
	}
	return lhs + " = " + n.Rval()
}

type nodeKey struct {
	scope, name, typ, expr string
}

func (n *Node) key() nodeKey {
	return nodeKey{scope: n.Scope, name: n.Name, typ: n.Type, expr: n.Expr}
}

var patternCache sync.Map // name -> *regexp.Regexp

func wordPattern(name string) *regexp.Regexp {
	if re, ok := patternCache.Load(name); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	patternCache.Store(name, re)
	return re
}
