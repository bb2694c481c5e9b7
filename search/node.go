package search

import "github.com/katalvlaran/gridwalk/maze"

// NoParent is the Parent value of a root node.
const NoParent = -1

// Node records how a cell was reached: its parent's arena index and its costs.
// Nodes live in an append-only arena. A parent link always points at an
// expanded node, and only queued nodes are ever reparented, so parent chains
// are acyclic and end at a root.
type Node struct {
	Cell   maze.Coord
	Parent int
	G      int // accumulated cost from the side's root
	H      int // heuristic estimate to the goal
	F      int // G + H
}

// Root reports whether n has no parent.
func (n Node) Root() bool { return n.Parent == NoParent }

// arena is the append-only node store shared by both sides of a search.
type arena []Node

func (a *arena) add(n Node) int {
	*a = append(*a, n)
	return len(*a) - 1
}

// chain returns the cells from id back to its root, id first.
func (a arena) chain(id int) []maze.Coord {
	var cells []maze.Coord
	for cur := id; cur != NoParent; cur = a[cur].Parent {
		cells = append(cells, a[cur].Cell)
	}
	return cells
}
