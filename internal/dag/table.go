package dag

// Table is the ordered contents of one scope. Iteration follows insertion
// order, which decides resolution order for whole-scope operations.
type Table struct {
	keys []string
	vars map[string]*Variable
}

// NewTable builds a table keyed by each variable's name.
func NewTable(vars ...*Variable) *Table {
	t := &Table{vars: make(map[string]*Variable, len(vars))}
	for _, v := range vars {
		t.Set(v.Name, v)
	}
	return t
}

// Set stores v under key. Replacing an existing key keeps its position.
func (t *Table) Set(key string, v *Variable) {
	if t.vars == nil {
		t.vars = make(map[string]*Variable)
	}
	if _, ok := t.vars[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.vars[key] = v
}

// Get is safe on a nil table.
func (t *Table) Get(key string) (*Variable, bool) {
	if t == nil {
		return nil, false
	}
	v, ok := t.vars[key]
	return v, ok
}

func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// Variables returns the stored variables in key order.
func (t *Table) Variables() []*Variable {
	if t == nil {
		return nil
	}
	out := make([]*Variable, len(t.keys))
	for i, k := range t.keys {
		out[i] = t.vars[k]
	}
	return out
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Scopes maps scope names to their tables. A missing scope behaves like an
// empty one.
type Scopes map[string]*Table

// Lookup finds the variable stored under name in scope.
func (s Scopes) Lookup(scope, name string) (*Variable, bool) {
	return s[scope].Get(name)
}

// Table returns the table for scope, creating it when absent.
func (s Scopes) Table(scope string) *Table {
	t, ok := s[scope]
	if !ok {
		t = NewTable()
		s[scope] = t
	}
	return t
}
