package search

import (
	"context"
	"fmt"

	"github.com/katalvlaran/gridwalk/maze"
)

// side is one exploring frontier with its own mark vocabulary.
// Single-frontier algorithms use one side; Bidirectional uses two.
type side struct {
	front        frontier
	rootKind     maze.CellKind // Start or Target; never overwritten
	frontierMark maze.CellKind
	visitedMark  maze.CellKind
	byCell       []int // grid index -> arena index, NoParent if unclaimed
}

// owns reports whether a cell of kind k was claimed by this side.
func (s *side) owns(k maze.CellKind) bool {
	return k == s.rootKind || k == s.frontierMark || k == s.visitedMark
}

// Engine performs one unit of search work per Step over a borrowed Grid.
// It is single-threaded; callers must not mutate the grid while Running.
type Engine struct {
	grid  *maze.Grid
	alg   Algorithm
	opts  Options
	state State

	goal  maze.Coord
	nodes arena
	sides [2]*side
	// ends holds the arena indices where each side's half of the path ends:
	// ends[0] on the Start side, ends[1] on the Target side (NoParent for
	// single-frontier searches).
	ends  [2]int
	stats Stats
	order [4]maze.Coord
}

// Begin validates g and returns a Running engine seeded at Start (and, for
// Bidirectional, at Target). Search marks left on g by a previous run are
// cleared first; walls and endpoints are kept.
//
// Returns ErrInvalidConfiguration when g is nil, an endpoint is missing or
// no longer holds its kind, and ErrUnknownAlgorithm for an invalid tag.
func Begin(g *maze.Grid, alg Algorithm, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: grid is nil", ErrInvalidConfiguration)
	}
	if !alg.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, alg)
	}
	start, ok := g.Start()
	if !ok {
		return nil, fmt.Errorf("%w: start not placed", ErrInvalidConfiguration)
	}
	target, ok := g.Target()
	if !ok {
		return nil, fmt.Errorf("%w: target not placed", ErrInvalidConfiguration)
	}
	if k := g.At(start); k != maze.Start {
		return nil, fmt.Errorf("%w: start cell %v holds %v", ErrInvalidConfiguration, start, k)
	}
	if k := g.At(target); k != maze.Target {
		return nil, fmt.Errorf("%w: target cell %v holds %v", ErrInvalidConfiguration, target, k)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g.ClearMarks()
	e := &Engine{
		grid:  g,
		alg:   alg,
		opts:  o,
		goal:  target,
		nodes: make(arena, 0, 64),
		ends:  [2]int{NoParent, NoParent},
		order: maze.Offsets(),
	}
	e.sides[0] = e.seed(start, maze.Start, maze.Frontier, maze.Visited)
	if alg == Bidirectional {
		e.sides[1] = e.seed(target, maze.Target, maze.FrontierAlt, maze.VisitedAlt)
	}
	e.state = Running

	return e, nil
}

// seed creates a side with its root node already queued.
func (e *Engine) seed(root maze.Coord, rootKind, frontierMark, visitedMark maze.CellKind) *side {
	s := &side{
		front:        newFrontier(e.alg),
		rootKind:     rootKind,
		frontierMark: frontierMark,
		visitedMark:  visitedMark,
		byCell:       make([]int, e.grid.Rows()*e.grid.Cols()),
	}
	for i := range s.byCell {
		s.byCell[i] = NoParent
	}
	n := Node{Cell: root, Parent: NoParent}
	if e.alg == AStar {
		n.H = Manhattan(root, e.goal)
		n.F = n.H
	}
	id := e.nodes.add(n)
	e.stats.Created++
	s.byCell[e.grid.Index(root)] = id
	s.front.push(id, n.F)
	e.opts.OnEnqueue(n)

	return s
}

// State returns the current engine state.
func (e *Engine) State() State { return e.state }

// Algorithm returns the algorithm the engine was started with.
func (e *Engine) Algorithm() Algorithm { return e.alg }

// Grid returns the grid being searched.
func (e *Engine) Grid() *maze.Grid { return e.grid }

// Stats returns work counters since Begin.
func (e *Engine) Stats() Stats { return e.stats }

// FrontierLen returns the number of queued nodes across all sides.
func (e *Engine) FrontierLen() int {
	n := 0
	for _, s := range e.sides {
		if s != nil {
			n += s.front.len()
		}
	}
	return n
}

// Step expands one node (one per side for Bidirectional) and reports the
// resulting state. Calling Step in any state but Running returns
// ErrPreconditionViolated and does nothing.
func (e *Engine) Step() (State, error) {
	if e.state != Running {
		return e.state, fmt.Errorf("%w: step while %v", ErrPreconditionViolated, e.state)
	}
	e.stats.Steps++
	for i, s := range e.sides {
		if s == nil || e.state != Running {
			break
		}
		if err := e.expand(i); err != nil {
			return e.state, err
		}
	}
	return e.state, nil
}

// RunToCompletion steps until the engine leaves Running or ctx is done.
// It is a no-op on a terminal engine and fails with ErrPreconditionViolated
// on an Idle one.
func (e *Engine) RunToCompletion(ctx context.Context) (State, error) {
	if e.state == Idle {
		return e.state, fmt.Errorf("%w: run while idle", ErrPreconditionViolated)
	}
	for e.state == Running {
		select {
		case <-ctx.Done():
			return e.state, ctx.Err()
		default:
		}
		if _, err := e.Step(); err != nil {
			return e.state, err
		}
	}
	return e.state, nil
}

// Abandon forces the engine to Idle and drops all frontier and node state.
// Marks already written to the grid are left in place. Safe in any state.
func (e *Engine) Abandon() {
	e.state = Idle
	e.nodes = nil
	e.sides = [2]*side{}
	e.ends = [2]int{NoParent, NoParent}
}

// Path returns the cells from Start to Target, both included, once the
// engine is Found. It returns nil in every other state.
func (e *Engine) Path() []maze.Coord {
	if e.state != Found {
		return nil
	}
	head := e.nodes.chain(e.ends[0])
	path := make([]maze.Coord, 0, len(head))
	for i := len(head) - 1; i >= 0; i-- {
		path = append(path, head[i])
	}
	if e.ends[1] != NoParent {
		// both halves contain the meeting cell
		tail := e.nodes.chain(e.ends[1])
		path = append(path, tail[1:]...)
	}
	return path
}

// expand pops one node from side i and examines its neighbors.
func (e *Engine) expand(i int) error {
	s := e.sides[i]
	id, ok := s.front.pop()
	if !ok {
		e.state = Exhausted
		return nil
	}
	e.stats.Expanded++
	cur := e.nodes[id].Cell
	if e.grid.At(cur) != s.rootKind {
		if err := e.grid.Set(cur, s.visitedMark); err != nil {
			return fmt.Errorf("search: mark visited %v: %w", cur, err)
		}
	}
	e.opts.OnExpand(cur)

	var other *side
	if e.alg == Bidirectional {
		other = e.sides[1-i]
	}
	for _, d := range e.neighborOrder() {
		nb := cur.Add(d)
		k := e.grid.At(nb)
		switch {
		case other == nil && k == maze.Target:
			goal := e.nodes.add(e.child(id, nb))
			e.stats.Created++
			e.ends = [2]int{goal, NoParent}
			Restore(e.grid, e.nodes, goal)
			e.state = Found
			return nil
		case other != nil && other.owns(k):
			e.meet(i, id, nb)
			return nil
		case k == maze.Space:
			if err := e.enqueue(s, id, nb); err != nil {
				return err
			}
		case k == s.frontierMark:
			e.relax(s, id, nb)
		}
	}
	return nil
}

// neighborOrder returns the fixed down, up, right, left order, shuffled
// independently per expansion for DFS.
func (e *Engine) neighborOrder() [4]maze.Coord {
	order := e.order
	if e.alg == DFS {
		e.opts.Rand.Shuffle(len(order), func(a, b int) {
			order[a], order[b] = order[b], order[a]
		})
	}
	return order
}

// child builds the node for cell c reached from parent, applying the cost rule.
func (e *Engine) child(parent int, c maze.Coord) Node {
	n := Node{Cell: c, Parent: parent}
	switch e.alg {
	case Dijkstra:
		n.G = e.nodes[parent].G + 1
	case AStar:
		n.G = e.nodes[parent].G + 1
		n.H = Manhattan(c, e.goal)
	}
	n.F = n.G + n.H
	return n
}

// enqueue records a new node for c on side s and marks the cell.
func (e *Engine) enqueue(s *side, parent int, c maze.Coord) error {
	if err := e.grid.Set(c, s.frontierMark); err != nil {
		return fmt.Errorf("search: mark frontier %v: %w", c, err)
	}
	n := e.child(parent, c)
	id := e.nodes.add(n)
	e.stats.Created++
	s.byCell[e.grid.Index(c)] = id
	s.front.push(id, n.F)
	e.opts.OnEnqueue(n)
	return nil
}

// relax lowers the cost of the queued node on c when parent offers a
// cheaper route, reparenting it in place. Only priority frontiers are keyed
// by cost; FIFO and LIFO discovery order already fixes the parent.
func (e *Engine) relax(s *side, parent int, c maze.Coord) {
	pq, ok := s.front.(*priority)
	if !ok {
		return
	}
	id := s.byCell[e.grid.Index(c)]
	n := e.child(parent, c)
	if n.G >= e.nodes[id].G {
		return
	}
	e.nodes[id] = n
	pq.update(id, n.F)
	e.stats.Relaxed++
}

// meet joins side i's node parent with the other side's claim on cell c.
func (e *Engine) meet(i, parent int, c maze.Coord) {
	other := e.sides[1-i]
	here := e.nodes.add(e.child(parent, c))
	e.stats.Created++
	there := other.byCell[e.grid.Index(c)]
	other.front.remove(there)

	Restore(e.grid, e.nodes, here)
	Restore(e.grid, e.nodes, there)
	if i == 0 {
		e.ends = [2]int{here, there}
	} else {
		e.ends = [2]int{there, here}
	}
	e.state = Found
}
