package dag

import "sync"

// Resolved is an insertion-ordered set of nodes, keyed by node equality. It
// is the accumulator shared by resolution calls, so the order of Nodes is
// always dependencies before dependents. Safe for concurrent use.
type Resolved struct {
	mu    sync.RWMutex
	order []*Node
	index map[nodeKey]*Node
}

func NewResolved(nodes ...*Node) *Resolved {
	r := &Resolved{index: make(map[nodeKey]*Node)}
	r.Add(nodes...)
	return r
}

// Add inserts the nodes that are not already present and returns those that
// were inserted, in order.
func (r *Resolved) Add(nodes ...*Node) []*Node {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		r.index = make(map[nodeKey]*Node)
	}
	var added []*Node
	for _, n := range nodes {
		k := n.key()
		if _, ok := r.index[k]; ok {
			continue
		}
		r.index[k] = n
		r.order = append(r.order, n)
		added = append(added, n)
	}
	return added
}

// Find returns the stored node equal to n. A nil set is empty.
func (r *Resolved) Find(n *Node) (*Node, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	existing, ok := r.index[n.key()]
	return existing, ok
}

func (r *Resolved) Contains(n *Node) bool {
	_, ok := r.Find(n)
	return ok
}

// Nodes returns a copy of the stored nodes in insertion order.
func (r *Resolved) Nodes() []*Node {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Node(nil), r.order...)
}

func (r *Resolved) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
