package search

import "github.com/katalvlaran/gridwalk/maze"

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|, the admissible and
// consistent heuristic for uniform-cost 4-directional movement.
func Manhattan(a, b maze.Coord) int {
	return abs(b.Row-a.Row) + abs(b.Col-a.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Restore follows parent indices from nodes[end] and marks every node cell
// that has a parent as Path. Start and Target cells keep their kind, and the
// root (no parent) is never marked. Nodes are not modified.
//
// Returns the number of cells whose kind changed, so a second call on the
// same chain returns 0.
// Complexity: O(chain length).
func Restore(g *maze.Grid, nodes []Node, end int) int {
	changed := 0
	for cur := end; cur != NoParent && nodes[cur].Parent != NoParent; cur = nodes[cur].Parent {
		c := nodes[cur].Cell
		switch g.At(c) {
		case maze.Start, maze.Target, maze.Path:
			continue
		}
		if g.Set(c, maze.Path) == nil {
			changed++
		}
	}
	return changed
}
