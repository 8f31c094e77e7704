package branches

// Branch is one leaf of a tree.
type Branch struct {
	Name string
	Type string
}

// Tree is an ordered set of branches.
type Tree struct {
	Name     string
	branches []Branch
	index    map[string]int
}

// NewTree builds a tree; later branches with a repeated name replace the
// type of earlier ones.
func NewTree(name string, branches ...Branch) *Tree {
	t := &Tree{Name: name, index: make(map[string]int)}
	for _, b := range branches {
		t.Set(b.Name, b.Type)
	}
	return t
}

// Set adds a branch or updates its type in place.
func (t *Tree) Set(name, typ string) {
	if i, ok := t.index[name]; ok {
		t.branches[i].Type = typ
		return
	}
	t.index[name] = len(t.branches)
	t.branches = append(t.branches, Branch{Name: name, Type: typ})
}

func (t *Tree) Type(name string) (string, bool) {
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.branches[i].Type, true
}

// Branches returns a copy in insertion order.
func (t *Tree) Branches() []Branch {
	return append([]Branch(nil), t.branches...)
}

func (t *Tree) Len() int {
	return len(t.branches)
}

// Update makes every branch of other available in t.
func (t *Tree) Update(other *Tree) {
	for _, b := range other.branches {
		t.Set(b.Name, b.Type)
	}
}

func (t *Tree) clone() *Tree {
	return NewTree(t.Name, t.branches...)
}

// Dump is the ordered set of trees found in one ntuple.
type Dump struct {
	trees []*Tree
	index map[string]int
}

func NewDump(trees ...*Tree) *Dump {
	d := &Dump{index: make(map[string]int)}
	for _, t := range trees {
		d.Add(t)
	}
	return d
}

// Add stores t, replacing a tree of the same name in place.
func (d *Dump) Add(t *Tree) {
	if i, ok := d.index[t.Name]; ok {
		d.trees[i] = t
		return
	}
	d.index[t.Name] = len(d.trees)
	d.trees = append(d.trees, t)
}

func (d *Dump) Tree(name string) (*Tree, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.trees[i], true
}

// Trees returns the trees in insertion order.
func (d *Dump) Trees() []*Tree {
	if d == nil {
		return nil
	}
	return append([]*Tree(nil), d.trees...)
}

func (d *Dump) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.trees))
	for i, t := range d.trees {
		names[i] = t.Name
	}
	return names
}
