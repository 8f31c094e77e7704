package boolexpr

// Subtrees lists every node of the tree rooted at root, deepest level first
// and left to right within a level. The order decides which name is "first
// seen" in FindAllVars and FindAllArgs, and it is stable for a given tree.
func Subtrees(root Expr) []Expr {
	if root == nil {
		return nil
	}
	queue := []Expr{root}
	for i := 0; i < len(queue); i++ {
		children := queue[i].Children()
		for j := len(children) - 1; j >= 0; j-- {
			queue = append(queue, children[j])
		}
	}
	for i, j := 0, len(queue)-1; i < j; i, j = i+1, j-1 {
		queue[i], queue[j] = queue[j], queue[i]
	}
	return queue
}

// Vars returns the names of all variables referenced by expr, deduplicated
// in first-seen order. Function names, member names and method names are not
// variables. Receivers of member access and method calls are.
func Vars(expr Expr) []string {
	var names nameList
	for _, sub := range Subtrees(expr) {
		if v, ok := sub.(*VarExpr); ok {
			names.add(v.Name)
		}
	}
	return names.items
}

// Args returns the variables that appear inside any call's argument list,
// nested calls included, deduplicated in first-seen order.
func Args(expr Expr) []string {
	var names nameList
	for _, sub := range Subtrees(expr) {
		args, ok := sub.(*Arguments)
		if !ok {
			continue
		}
		for _, inner := range Subtrees(args) {
			if v, ok := inner.(*VarExpr); ok {
				names.add(v.Name)
			}
		}
	}
	return names.items
}

// FindAllVars parses src and returns Vars of the result. An empty source
// returns an empty list.
func FindAllVars(src string) ([]string, error) {
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Vars(expr), nil
}

// FindAllArgs parses src and returns Args of the result.
func FindAllArgs(src string) ([]string, error) {
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Args(expr), nil
}

type nameList struct {
	items []string
	seen  map[string]struct{}
}

func (l *nameList) add(name string) {
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	if _, ok := l.seen[name]; ok {
		return
	}
	l.seen[name] = struct{}{}
	l.items = append(l.items, name)
}
