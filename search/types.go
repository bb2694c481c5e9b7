// Package search defines the algorithm tags, engine states, sentinel errors
// and functional options for the incremental grid search engine.
package search

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/katalvlaran/gridwalk/maze"
)

// Sentinel errors for engine operations.
var (
	// ErrInvalidConfiguration is returned by Begin when Start or Target is
	// missing, when an endpoint cell no longer holds its kind, or when the
	// algorithm tag is unknown.
	ErrInvalidConfiguration = errors.New("search: invalid configuration")

	// ErrPreconditionViolated is returned by Step on an Idle or terminal engine.
	ErrPreconditionViolated = errors.New("search: precondition violated")

	// ErrUnknownAlgorithm wraps ErrInvalidConfiguration for unrecognized tags.
	ErrUnknownAlgorithm = fmt.Errorf("%w: unknown algorithm", ErrInvalidConfiguration)
)

// Algorithm selects the frontier discipline and cost rule of a search.
type Algorithm int

const (
	// BFS expands in FIFO order.
	BFS Algorithm = iota
	// DFS expands in LIFO order with a shuffled neighbor order per node.
	DFS
	// Bidirectional runs two FIFO searches, from Start and from Target, until they meet.
	Bidirectional
	// Dijkstra expands the minimum accumulated cost g first.
	Dijkstra
	// AStar expands the minimum g + Manhattan(cell, Target) first.
	AStar
)

var algorithmNames = [...]string{
	BFS:           "bfs",
	DFS:           "dfs",
	Bidirectional: "bibfs",
	Dijkstra:      "dijkstra",
	AStar:         "astar",
}

// Algorithms lists every supported tag in display order.
func Algorithms() []Algorithm {
	return []Algorithm{BFS, DFS, Bidirectional, Dijkstra, AStar}
}

// String returns the canonical tag accepted by ParseAlgorithm.
func (a Algorithm) String() string {
	if a >= 0 && int(a) < len(algorithmNames) {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

func (a Algorithm) valid() bool {
	return a >= BFS && a <= AStar
}

// ParseAlgorithm maps a case-insensitive tag, or one of its aliases, to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs":
		return BFS, nil
	case "dfs":
		return DFS, nil
	case "bibfs", "dbfs", "double-bfs", "bidirectional":
		return Bidirectional, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// State is the engine state and also the outcome reported by Step.
type State int

const (
	// Idle: not started, or abandoned.
	Idle State = iota
	// Running: Step may be called.
	Running
	// Found: a path was reconstructed; terminal.
	Found
	// Exhausted: a frontier emptied without reaching the goal; terminal.
	Exhausted
)

var stateNames = [...]string{
	Idle:      "idle",
	Running:   "running",
	Found:     "found",
	Exhausted: "exhausted",
}

// String returns a lowercase name for s.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether s is Found or Exhausted.
func (s State) Terminal() bool {
	return s == Found || s == Exhausted
}

// Stats counts engine work since Begin.
type Stats struct {
	Steps    int // Step calls that did work
	Expanded int // nodes popped from a frontier
	Created  int // nodes created, roots included
	Relaxed  int // queued nodes moved onto a cheaper parent
}

// Option configures an Engine via functional arguments.
type Option func(*Options)

// Options holds engine parameters and hooks.
type Options struct {
	// Rand drives DFS neighbor shuffling.
	Rand *rand.Rand

	// OnExpand is called with each popped cell, before its neighbors are examined.
	OnExpand func(c maze.Coord)

	// OnEnqueue is called with each node pushed onto a frontier, roots included.
	OnEnqueue func(n Node)
}

// DefaultOptions returns Options with a randomly seeded PCG source and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		OnExpand:  func(maze.Coord) {},
		OnEnqueue: func(Node) {},
	}
}

// WithRand sets the random source used by DFS. Nil is ignored.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithSeed seeds a deterministic PCG source for DFS.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithOnExpand registers a callback run for every expansion.
func WithOnExpand(fn func(c maze.Coord)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnEnqueue registers a callback run for every enqueued node.
func WithOnEnqueue(fn func(n Node)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}
