// Package search implements incremental, step-at-a-time pathfinding over a
// maze.Grid: breadth-first, depth-first, bidirectional breadth-first, Dijkstra
// and A*.
//
// What
//
//   - Begin validates the grid and returns an Engine in the Running state.
//   - Engine.Step expands exactly one node per side and reports Running,
//     Found or Exhausted. The driver decides when to call it again: once per
//     rendered frame, or in a tight loop via RunToCompletion.
//   - Engine.Abandon drops all frontier state and returns to Idle.
//   - Progress is written into the grid as cell marks (Frontier, Visited,
//     Path and their secondary variants), so rendering only needs Grid.At.
//
// Frontier discipline per Algorithm
//
//	BFS           FIFO queue, g = h = 0
//	DFS           LIFO stack, neighbor order shuffled per expansion
//	Bidirectional two FIFO queues, Start side and Target side
//	Dijkstra      stable min-heap on g = parent.g + 1
//	AStar         stable min-heap on f = g + Manhattan(cell, Target)
//
// Ties in the heap are broken by insertion order. A cell is never enqueued
// twice. Costs are uniform and the Manhattan heuristic is consistent, so with
// the in-place cost lowering below, BFS, Dijkstra, AStar and Bidirectional all
// return shortest paths.
//
// Search tree
//
//	Nodes live in an append-only arena and refer to their parent by index.
//	A parent is always expanded before it is linked, so chains are acyclic.
//	The heap frontiers lower a queued node's cost in place (heap.Fix) when a
//	later expansion reaches it more cheaply; the cell is still pushed once.
//	Restore walks a chain and paints Path marks without touching the nodes.
//
// Bidirectional meeting
//
//	When one side examines a neighbor already claimed by the other side (its
//	root, frontier or visited mark), the sides have met. Both halves are
//	restored from the meeting cell; the other side's node is removed from its
//	queue if it had not been expanded yet.
//
// Complexity (N = rows×cols)
//
//   - Time:   O(N) node creations per search; O(log N) per heap operation.
//   - Memory: O(N) for the arena and the per-side cell index.
//
// Usage
//
//	eng, err := search.Begin(g, search.AStar)
//	if err != nil {
//		// ErrInvalidConfiguration: endpoints missing or invalid
//	}
//	for eng.State() == search.Running {
//		if _, err := eng.Step(); err != nil {
//			break
//		}
//		// render g
//	}
//	path := eng.Path()
package search
