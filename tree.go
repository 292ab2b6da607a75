package gocube

import "slices"

// Node is an element of the search tree. It owns its cube and its children
// and keeps a back reference to its parent.
//
// Depth is fixed when the node is attached to its parent. The visited flag
// only ever goes from false to true.
type Node struct {
	cube     Cube
	parent   *Node
	children []*Node
	depth    int
	visited  bool
}

// NewNode creates a detached node (a root, depth 0) wrapping c.
func NewNode(c Cube) *Node {
	return &Node{cube: c}
}

// Cube returns the cube held by the node.
func (n *Node) Cube() Cube {
	return n.cube
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's current children.
func (n *Node) Children() []*Node {
	return n.children
}

// Depth returns the distance from the root.
func (n *Node) Depth() int {
	return n.depth
}

// Visited reports whether the node has been processed by the search.
func (n *Node) Visited() bool {
	return n.visited
}

// MarkVisited flags the node as processed.
func (n *Node) MarkVisited() {
	n.visited = true
}

// Add attaches child under n.
func (n *Node) Add(child *Node) {
	child.parent = n
	child.depth = n.depth + 1
	n.children = append(n.children, child)
}

// IsFullyVisited reports whether n and every node below it have been
// visited.
func (n *Node) IsFullyVisited() bool {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !cur.visited {
			return false
		}
		stack = append(stack, cur.children...)
	}
	return true
}

// Backtrace returns the path from n up to, but not including, the root,
// nearest first. A root has an empty backtrace.
func (n *Node) Backtrace() []*Node {
	var path []*Node
	for cur := n; cur.parent != nil; cur = cur.parent {
		path = append(path, cur)
	}
	return path
}

// Moves returns the moves leading from the root to n, in the order they
// have to be applied.
func (n *Node) Moves() []Move {
	path := n.Backtrace()
	moves := make([]Move, 0, len(path))
	for i := len(path) - 1; i >= 0; i-- {
		if m, ok := path[i].cube.FromMove(); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// Delete detaches n from its parent and drops its children, making the whole
// subtree unreachable.
func (n *Node) Delete() {
	if p := n.parent; p != nil {
		if i := slices.Index(p.children, n); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
	n.children = nil
}

// HighestFullyVisitedNode walks up from n while the parent is fully visited
// and returns the last node reached. It returns nil if n itself is not fully
// visited.
func (n *Node) HighestFullyVisitedNode() *Node {
	if !n.IsFullyVisited() {
		return nil
	}
	cur := n
	for cur.parent != nil && cur.parent.IsFullyVisited() {
		cur = cur.parent
	}
	return cur
}

// Prune walks up from n through fully visited ancestors and deletes the
// highest of them once an ancestor that still has work left is reached.
// Reaching the root ends the walk without deleting anything, so the root and
// its direct children are never removed.
func (n *Node) Prune() {
	var previous *Node
	for cur := n; cur.parent != nil; cur = cur.parent {
		if !cur.IsFullyVisited() {
			if previous != nil {
				previous.Delete()
			}
			return
		}
		previous = cur
	}
}
