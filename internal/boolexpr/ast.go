package boolexpr

import (
	"strings"
)

// Expr is a node of a parsed expression tree.
type Expr interface {
	// Children returns the direct subtrees, left to right.
	Children() []Expr
	// Pos is the byte offset of the node's first token.
	Pos() int
	String() string
}

// BinaryExpr is `Left Op Right` for arithmetic, comparison and boolean
// operators.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	At    int
}

// UnaryExpr is `!X` or `-X`.
type UnaryExpr struct {
	Op string
	X  Expr
	At int
}

// CallExpr is a free function call, `Func(args)` or `Func{args}`. Func may be
// a scoped name such as `TMath::Sqrt`. Args is nil for an empty call.
type CallExpr struct {
	Func  string
	Args  *Arguments
	Brace bool
	At    int
}

// GetAttrExpr is member access, `Recv.Name` or `Recv->Name`.
type GetAttrExpr struct {
	Recv  Expr
	Name  string
	Arrow bool
	At    int
}

// MethodCallExpr is `Recv.Name(args)` or `Recv->Name(args)`.
type MethodCallExpr struct {
	Recv  Expr
	Name  string
	Args  *Arguments
	Arrow bool
	At    int
}

// Arguments is the argument list of a call.
type Arguments struct {
	Items []Expr
	At    int
}

// VarExpr is a reference to a variable, possibly scoped (`A::B`).
type VarExpr struct {
	Name string
	At   int
}

// NumberLit keeps the literal text, suffix included.
type NumberLit struct {
	Text string
	At   int
}

type BoolLit struct {
	Value bool
	At    int
}

func (e *BinaryExpr) Children() []Expr { return []Expr{e.Left, e.Right} }
func (e *UnaryExpr) Children() []Expr  { return []Expr{e.X} }
func (e *CallExpr) Children() []Expr {
	if e.Args == nil {
		return nil
	}
	return []Expr{e.Args}
}
func (e *GetAttrExpr) Children() []Expr { return []Expr{e.Recv} }
func (e *MethodCallExpr) Children() []Expr {
	if e.Args == nil {
		return []Expr{e.Recv}
	}
	return []Expr{e.Recv, e.Args}
}
func (e *Arguments) Children() []Expr { return e.Items }
func (e *VarExpr) Children() []Expr   { return nil }
func (e *NumberLit) Children() []Expr { return nil }
func (e *BoolLit) Children() []Expr   { return nil }

func (e *BinaryExpr) Pos() int     { return e.At }
func (e *UnaryExpr) Pos() int      { return e.At }
func (e *CallExpr) Pos() int       { return e.At }
func (e *GetAttrExpr) Pos() int    { return e.At }
func (e *MethodCallExpr) Pos() int { return e.At }
func (e *Arguments) Pos() int      { return e.At }
func (e *VarExpr) Pos() int        { return e.At }
func (e *NumberLit) Pos() int      { return e.At }
func (e *BoolLit) Pos() int        { return e.At }

// String renders binary and unary expressions fully parenthesized, so the
// output shows how the parser grouped operands.
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

func (e *UnaryExpr) String() string { return "(" + e.Op + e.X.String() + ")" }

func (e *CallExpr) String() string {
	open, close := "(", ")"
	if e.Brace {
		open, close = "{", "}"
	}
	args := ""
	if e.Args != nil {
		args = e.Args.String()
	}
	return e.Func + open + args + close
}

func (e *GetAttrExpr) String() string {
	return e.Recv.String() + accessor(e.Arrow) + e.Name
}

func (e *MethodCallExpr) String() string {
	args := ""
	if e.Args != nil {
		args = e.Args.String()
	}
	return e.Recv.String() + accessor(e.Arrow) + e.Name + "(" + args + ")"
}

func (e *Arguments) String() string {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		parts[i] = item.String()
	}
	return strings.Join(parts, ", ")
}

func (e *VarExpr) String() string   { return e.Name }
func (e *NumberLit) String() string { return e.Text }
func (e *BoolLit) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func accessor(arrow bool) string {
	if arrow {
		return "->"
	}
	return "."
}
