package maze

import (
	"errors"
	"math/rand/v2"
)

// ErrUnsolvable is returned by Generate when no connected layout was found
// within the attempt budget.
var ErrUnsolvable = errors.New("maze: no connected layout found")

// Wall probabilities, in percent, for the striped generator. Even rows are
// dense, odd rows sparse, which yields horizontal corridors with breaks.
const (
	evenRowWallPct = 55
	oddRowWallPct  = 15
)

// RandomWalls overwrites every interior non-endpoint cell with Wall or Space.
// Search marks are discarded. Endpoints and the border are untouched.
func RandomWalls(g *Grid, rng *rand.Rand) {
	for row := 1; row < g.rows-1; row++ {
		pct := oddRowWallPct
		if row%2 == 0 {
			pct = evenRowWallPct
		}
		for col := 1; col < g.cols-1; col++ {
			i := g.index(Coord{Row: row, Col: col})
			if k := g.cells[i]; k == Start || k == Target {
				continue
			}
			if rng.IntN(100) < pct {
				g.cells[i] = Wall
			} else {
				g.cells[i] = Space
			}
		}
	}
}

// GenerateOptions configures Generate.
type GenerateOptions struct {
	Rows, Cols int
	// Start and Target are placed before walls are drawn.
	Start, Target Coord
	// Solvable retries until Start and Target are Connected.
	Solvable bool
	// MaxAttempts bounds the Solvable retries; 0 means 100.
	MaxAttempts int
}

// DefaultGenerateOptions returns a 40x60 layout with endpoints in opposite corners.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Rows:        40,
		Cols:        60,
		Start:       Coord{Row: 1, Col: 1},
		Target:      Coord{Row: 38, Col: 58},
		Solvable:    true,
		MaxAttempts: 100,
	}
}

// Generate builds a new grid, places both endpoints and draws random walls.
// With Solvable set, it redraws until the endpoints are connected or the
// attempt budget runs out (ErrUnsolvable).
func Generate(opts GenerateOptions, rng *rand.Rand) (*Grid, error) {
	g, err := New(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}
	if err = g.PlaceStart(opts.Start); err != nil {
		return nil, err
	}
	if err = g.PlaceTarget(opts.Target); err != nil {
		return nil, err
	}
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = 100
	}
	for i := 0; i < attempts; i++ {
		RandomWalls(g, rng)
		if !opts.Solvable || g.Connected(opts.Start, opts.Target) {
			return g, nil
		}
	}
	return nil, ErrUnsolvable
}
