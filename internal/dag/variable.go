package dag

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/ntuplegen/internal/boolexpr"
)

// Variable is a named definition inside a scope.
type Variable struct {
	Name string
	// Type is the C++ type of the variable. Empty for selection expressions
	// and literals.
	Type string
	// Rvals are the candidate expressions, tried in order. A variable with no
	// rvals and no literal is terminal.
	Rvals []string
	// Literal holds the constant value of a literal variable.
	Literal *string
	Input   bool
	Output  bool
}

// NewVariable returns an output variable with the given candidate
// expressions.
func NewVariable(name, typ string, rvals ...string) *Variable {
	return &Variable{Name: name, Type: typ, Rvals: rvals, Output: true}
}

// NewLiteral returns a literal variable whose value is inlined verbatim into
// every expression that references it.
func NewLiteral(name, value string) *Variable {
	return &Variable{Name: name, Literal: &value}
}

// IsLiteral reports whether the variable is a literal constant.
func (v *Variable) IsLiteral() bool {
	return v.Literal != nil
}

// IsTerminal reports whether the variable has nothing to resolve.
func (v *Variable) IsTerminal() bool {
	return len(v.Rvals) == 0 && v.Literal == nil
}

// Candidate is one rval of a variable together with the names it uses.
type Candidate struct {
	Expr string
	Deps []string
}

// Candidates parses every rval and returns them in definition order. A
// malformed rval is an error.
func (v *Variable) Candidates() ([]Candidate, error) {
	out := make([]Candidate, 0, len(v.Rvals))
	for _, rval := range v.Rvals {
		deps, err := boolexpr.FindAllVars(rval)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		out = append(out, Candidate{Expr: rval, Deps: deps})
	}
	return out, nil
}

func (v *Variable) String() string {
	if v.Literal != nil {
		return v.Name + " := " + *v.Literal
	}
	lhs := v.Name
	if v.Type != "" {
		lhs = v.Type + " " + v.Name
	}
	return lhs + " = " + strings.Join(v.Rvals, "|")
}
