// Package gridwalk is a step-at-a-time pathfinding playground for walled
// grid mazes: watch BFS, DFS, bidirectional BFS, Dijkstra and A* paint their
// frontiers, one expansion per frame.
//
// 🚀 What is gridwalk?
//
//	A small engine plus drivers:
//		• maze: the Grid, its cell kinds, text encoding and random generator
//		• search: the incremental Engine (Begin, Step, RunToCompletion, Abandon)
//		  with FIFO, LIFO and stable min-heap frontiers and path restoration
//		• internal/config: TOML settings
//		• internal/cli: solve, play (terminal animation), generate, serve (HTTP)
//		• cmd/gridwalk: the binary
//
// ✨ Why step-at-a-time?
//
//   - The driver owns the clock: one Step per rendered frame, or run to the end
//   - All progress lives in the grid as cell marks, so any renderer works
//   - Hooks (OnExpand, OnEnqueue) expose the search without logging from the core
//
// Quick ASCII example (A* after completion):
//
//	#######
//	#S*x#.#
//	##*##.#
//	#o***T#
//	#######
//
//	go install github.com/katalvlaran/gridwalk/cmd/gridwalk@latest
package gridwalk
