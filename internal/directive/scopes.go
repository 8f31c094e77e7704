package directive

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/specialistvlad/ntuplegen/internal/branches"
	"github.com/specialistvlad/ntuplegen/internal/config"
	"github.com/specialistvlad/ntuplegen/internal/dag"
)

// LiteralTable builds the literals scope from NAME=VALUE pairs.
func LiteralTable(literals []config.Pair) *dag.Table {
	t := dag.NewTable()
	for _, l := range literals {
		t.Set(l.Key, dag.NewLiteral(l.Key, l.Value))
	}
	return t
}

// rawTable exposes every branch of the input tree as a terminal variable.
func rawTable(tree *branches.Tree) *dag.Table {
	t := dag.NewTable()
	for _, b := range tree.Branches() {
		t.Set(b.Name, &dag.Variable{Name: b.Name, Type: b.Type, Input: true})
	}
	return t
}

// patterns is a list of unanchored regular expressions.
type patterns []*regexp.Regexp

func compilePatterns(section string, exprs []string) (patterns, error) {
	var errs *multierror.Error
	out := make(patterns, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(e)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid %s pattern %q: %w", section, e, err))
			continue
		}
		out = append(out, re)
	}
	return out, errs.ErrorOrNil()
}

func (p patterns) match(s string) bool {
	for _, re := range p {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// addDropKeepRename fills the keep and rename scopes from the raw scope and
// returns the names of dropped branches. A dropped branch is neither kept
// nor renamed.
func addDropKeepRename(scopes dag.Scopes, section *config.Section) ([]string, error) {
	var errs *multierror.Error
	drop, err := compilePatterns("drop", section.Drop)
	errs = multierror.Append(errs, err)
	keep, err := compilePatterns("keep", section.Keep)
	errs = multierror.Append(errs, err)
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	keepTable := scopes.Table(ScopeKeep)
	renameTable := scopes.Table(ScopeRename)
	var dropped []string

	for _, raw := range scopes[ScopeRaw].Variables() {
		if drop.match(raw.Name) {
			dropped = append(dropped, raw.Name)
			continue
		}
		if renamed, ok := config.Lookup(section.Rename, raw.Name); ok {
			renameTable.Set(renamed, dag.NewVariable(renamed, raw.Type, raw.Name))
		}
		if keep.match(raw.Name) {
			keepTable.Set(raw.Name, dag.NewVariable(raw.Name, raw.Type, raw.Name))
		}
	}
	return dropped, nil
}

// addCalculation parses "type; rval1; rval2" definitions. A '^' around the
// type marks a temporary variable that is computed but not written.
func addCalculation(scopes dag.Scopes, section *config.Section) error {
	var errs *multierror.Error
	table := scopes.Table(ScopeCalculation)

	for _, calc := range section.Calculation {
		parts := strings.Split(calc.Value, ";")
		datatype := strings.TrimSpace(parts[0])
		var rvals []string
		for _, p := range parts[1:] {
			if p = strings.TrimSpace(p); p != "" {
				rvals = append(rvals, p)
			}
		}
		if len(rvals) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("illegal specification for %s: %s", calc.Key, calc.Value))
			continue
		}

		v := dag.NewVariable(calc.Key, datatype, rvals...)
		if strings.Contains(datatype, "^") {
			v.Type = strings.Trim(datatype, "^")
			v.Output = false
		}
		table.Set(calc.Key, v)
	}
	return errs.ErrorOrNil()
}

// addSelection names global selections first, then tree selections, as
// sel0, sel1, ...
func addSelection(scopes dag.Scopes, section *config.Section) {
	table := scopes.Table(ScopeSelection)
	exprs := append(append([]string(nil), section.GlobalSelection...), section.Selection...)
	for i, expr := range exprs {
		name := "sel" + strconv.Itoa(i)
		table.Set(name, &dag.Variable{Name: name, Rvals: []string{expr}})
	}
}
