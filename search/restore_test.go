package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/gridwalk/maze"
	"github.com/katalvlaran/gridwalk/search"
)

func chainAlongRow(cols ...int) []search.Node {
	nodes := make([]search.Node, 0, len(cols))
	for i, c := range cols {
		nodes = append(nodes, search.Node{Cell: maze.Coord{Row: 1, Col: c}, Parent: i - 1})
	}
	return nodes
}

func TestRestore_MarksEveryNonRootAndIsIdempotent(t *testing.T) {
	g := mustParse(t, "#######\n#S....#\n#....T#\n#######\n")
	nodes := chainAlongRow(1, 2, 3, 4, 5)
	assert.True(t, nodes[0].Root())

	assert.Equal(t, 4, search.Restore(g, nodes, 4))
	assert.Equal(t, 4, g.Count(maze.Path))
	assert.Equal(t, maze.Start, g.At(maze.Coord{Row: 1, Col: 1}))

	assert.Equal(t, 0, search.Restore(g, nodes, 4))
	assert.Equal(t, 4, g.Count(maze.Path))
}

func TestRestore_KeepsEndpoints(t *testing.T) {
	g := mustParse(t, "#######\n#S...T#\n#######\n")
	nodes := chainAlongRow(1, 2, 3, 4, 5)

	assert.Equal(t, 3, search.Restore(g, nodes, 4))
	assert.Equal(t, maze.Target, g.At(maze.Coord{Row: 1, Col: 5}))
}

func TestRestore_RootOnly(t *testing.T) {
	g := mustParse(t, "#######\n#S...T#\n#######\n")
	nodes := chainAlongRow(1)
	assert.Equal(t, 0, search.Restore(g, nodes, 0))
	assert.Equal(t, 0, search.Restore(g, nodes, search.NoParent))
}

func TestManhattan(t *testing.T) {
	a := maze.Coord{Row: 1, Col: 7}
	b := maze.Coord{Row: 4, Col: 2}
	assert.Equal(t, 8, search.Manhattan(a, b))
	assert.Equal(t, search.Manhattan(b, a), search.Manhattan(a, b))
	assert.Equal(t, 0, search.Manhattan(a, a))
}
