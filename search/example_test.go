package search_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridwalk/maze"
	"github.com/katalvlaran/gridwalk/search"
)

// ExampleBegin runs A* on a small maze and prints the painted grid.
func ExampleBegin() {
	g, err := maze.ParseString(`
#######
#S..#.#
##.##.#
#....T#
#######
`)
	if err != nil {
		panic(err)
	}
	eng, err := search.Begin(g, search.AStar)
	if err != nil {
		panic(err)
	}
	state, err := eng.RunToCompletion(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Println(state, len(eng.Path())-1)
	fmt.Print(g)
	// Output:
	// found 6
	// #######
	// #S*x#.#
	// ##*##.#
	// #o***T#
	// #######
}
