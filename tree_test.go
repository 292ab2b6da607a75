package gocube

import (
	"testing"
)

// chain builds a root with a single line of n descendants and returns every
// node, root first.
func chain(n int) []*Node {
	nodes := []*Node{NewNode(SolvedCube())}
	for i := 0; i < n; i++ {
		child := NewNode(SolvedCube())
		nodes[len(nodes)-1].Add(child)
		nodes = append(nodes, child)
	}
	return nodes
}

func TestNodeAdd(t *testing.T) {
	root := NewNode(SolvedCube())
	child := NewNode(SolvedCube().ApplyMove(F).WithFromMove(F))
	root.Add(child)

	if child.Parent() != root {
		t.Error("child parent should be root")
	}
	if child.Depth() != 1 {
		t.Errorf("child depth = %d, want 1", child.Depth())
	}
	if len(root.Children()) != 1 || root.Children()[0] != child {
		t.Error("root should have exactly the added child")
	}
	if root.Depth() != 0 || root.Parent() != nil {
		t.Error("root should have depth 0 and no parent")
	}
}

func TestBacktrace(t *testing.T) {
	nodes := chain(3)

	if got := nodes[0].Backtrace(); len(got) != 0 {
		t.Errorf("root backtrace length = %d, want 0", len(got))
	}

	got := nodes[3].Backtrace()
	if len(got) != 3 {
		t.Fatalf("backtrace length = %d, want 3", len(got))
	}
	for i, n := range got {
		if n != nodes[3-i] {
			t.Errorf("backtrace[%d] has depth %d, want %d", i, n.Depth(), 3-i)
		}
	}
}

func TestNodeMoves(t *testing.T) {
	root := NewNode(SolvedCube())
	var cur = root
	for _, m := range MustParseMoves("R U' F2") {
		child := NewNode(cur.Cube().ApplyMove(m).WithFromMove(m))
		cur.Add(child)
		cur = child
	}

	if got := FormatMoves(cur.Moves()); got != "R U' F2" {
		t.Errorf("Moves() = %q, want %q", got, "R U' F2")
	}
	if len(root.Moves()) != 0 {
		t.Error("root should have no moves")
	}
}

func TestIsFullyVisited(t *testing.T) {
	nodes := chain(2)
	if nodes[0].IsFullyVisited() {
		t.Error("unvisited root should not be fully visited")
	}

	nodes[0].MarkVisited()
	nodes[1].MarkVisited()
	if nodes[0].IsFullyVisited() {
		t.Error("root with an unvisited grandchild should not be fully visited")
	}
	if nodes[1].IsFullyVisited() {
		t.Error("child with an unvisited child should not be fully visited")
	}

	nodes[2].MarkVisited()
	if !nodes[0].IsFullyVisited() {
		t.Error("root should be fully visited once every node is visited")
	}
}

func TestDelete(t *testing.T) {
	root := NewNode(SolvedCube())
	a := NewNode(SolvedCube())
	b := NewNode(SolvedCube())
	c := NewNode(SolvedCube())
	root.Add(a)
	root.Add(b)
	root.Add(c)
	b.Add(NewNode(SolvedCube()))

	b.Delete()

	if len(root.Children()) != 2 || root.Children()[0] != a || root.Children()[1] != c {
		t.Error("Delete should remove only the deleted child and keep sibling order")
	}
	if len(b.Children()) != 0 {
		t.Error("deleted node should have no children")
	}
}

func TestHighestFullyVisitedNode(t *testing.T) {
	nodes := chain(3)
	for _, n := range nodes[1:] {
		n.MarkVisited()
	}
	// The root is unvisited, so the walk stops at depth 1.
	if got := nodes[3].HighestFullyVisitedNode(); got != nodes[1] {
		t.Errorf("HighestFullyVisitedNode depth = %v, want 1", depthOf(got))
	}

	fresh := chain(1)
	if fresh[1].HighestFullyVisitedNode() != nil {
		t.Error("an unvisited node should have no fully visited ancestor")
	}
}

func TestPruneDeletesHighestFinishedAncestor(t *testing.T) {
	// root -> a -> b -> leaf, plus an unvisited sibling of a.
	root := NewNode(SolvedCube())
	a := NewNode(SolvedCube())
	other := NewNode(SolvedCube())
	b := NewNode(SolvedCube())
	leaf := NewNode(SolvedCube())
	root.Add(a)
	root.Add(other)
	a.Add(b)
	b.Add(leaf)
	for _, n := range []*Node{root, a, b, leaf} {
		n.MarkVisited()
	}

	// Without a grandparent having pending work the walk reaches the root
	// and nothing is removed.
	leaf.Prune()
	if len(root.Children()) != 2 || len(a.Children()) != 1 || len(b.Children()) != 1 {
		t.Error("Prune that reaches the root should not delete anything")
	}

	// Give a pending work below it: b's subtree is finished, a's is not.
	pending := NewNode(SolvedCube())
	a.Add(pending)
	leaf.Prune()
	if len(a.Children()) != 1 || a.Children()[0] != pending {
		t.Error("Prune should delete b, the highest finished node under a")
	}
	if len(b.Children()) != 0 {
		t.Error("pruned node should lose its children")
	}
}

func TestPruneKeepsUnfinishedNode(t *testing.T) {
	nodes := chain(2)
	nodes[0].MarkVisited()
	nodes[1].MarkVisited()
	// nodes[2] is still pending.
	nodes[2].Prune()
	if len(nodes[1].Children()) != 1 {
		t.Error("Prune on an unvisited node should not delete anything")
	}
}

func TestPruneChainLeaf(t *testing.T) {
	nodes := chain(DefaultDepthLimit)
	for _, n := range nodes {
		n.MarkVisited()
	}
	leaf := nodes[len(nodes)-1]
	parent := nodes[len(nodes)-2]

	leaf.Prune()
	if len(parent.Children()) != 1 {
		t.Error("a fully visited chain pruned up to the root keeps its nodes")
	}
}

func depthOf(n *Node) int {
	if n == nil {
		return -1
	}
	return n.Depth()
}
