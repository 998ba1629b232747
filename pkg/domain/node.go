package domain

// Node is one step of a traversal: the full path from the root to the
// current handle, plus one "is last sibling" flag per path element.
//
// Invariant: len(Path) == len(LastAtDepth). The flag at depth d is true iff
// the element at depth d was the final sibling among its siblings, known at
// emission time because the enumerator materializes sibling lists up front.
type Node struct {
	Path        []Handle `json:"path"`
	LastAtDepth []bool   `json:"last_at_depth"`
}

// Depth is the number of elements on the path. The root has depth 1.
func (n Node) Depth() int {
	return len(n.Path)
}

// Handle returns the current (deepest) handle on the path.
func (n Node) Handle() Handle {
	return n.Path[len(n.Path)-1]
}

// Names returns the path as plain names, mostly for logging and tests.
func (n Node) Names() []string {
	names := make([]string, len(n.Path))
	for i, h := range n.Path {
		names[i] = h.Name
	}
	return names
}
