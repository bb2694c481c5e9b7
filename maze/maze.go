package maze

import "fmt"

// MinSize is the smallest allowed row or column count: a one-cell interior
// inside the border ring.
const MinSize = 3

// Grid is a rows×cols board whose border ring is always Wall.
// Cells are stored row-major; index(c) = c.Row*cols + c.Col.
// A Grid is not safe for concurrent mutation.
type Grid struct {
	rows, cols int
	cells      []CellKind

	start, target       Coord
	hasStart, hasTarget bool
}

// New constructs an empty grid: every interior cell Space, every border cell Wall.
// Returns ErrTooSmall if rows or cols is below 3.
// Complexity: O(R×C).
func New(rows, cols int) (*Grid, error) {
	if rows < MinSize || cols < MinSize {
		return nil, fmt.Errorf("%w: got %dx%d", ErrTooSmall, rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, cells: make([]CellKind, rows*cols)}
	g.Reset()

	return g, nil
}

// Rows returns the number of rows, border included.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns, border included.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies within [0,rows)×[0,cols).
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Interior reports whether c is in bounds and not on the border ring.
func (g *Grid) Interior(c Coord) bool {
	return c.Row > 0 && c.Row < g.rows-1 && c.Col > 0 && c.Col < g.cols-1
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// Index maps an in-bounds coordinate to its row-major index.
func (g *Grid) Index(c Coord) int { return g.index(c) }

// Coordinate converts a row-major index back to a Coord.
func (g *Grid) Coordinate(idx int) Coord {
	return Coord{Row: idx / g.cols, Col: idx % g.cols}
}

// At returns the kind of an in-bounds cell. It panics like a slice index
// when c is out of bounds; use CellAt for caller-supplied input.
func (g *Grid) At(c Coord) CellKind {
	return g.cells[g.index(c)]
}

// CellAt is the checked accessor for caller-supplied coordinates.
func (g *Grid) CellAt(row, col int) (CellKind, error) {
	c := Coord{Row: row, Col: col}
	if !g.InBounds(c) {
		return Space, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, g.rows, g.cols)
	}
	return g.At(c), nil
}

// Start returns the Start coordinate and whether one is placed.
func (g *Grid) Start() (Coord, bool) { return g.start, g.hasStart }

// Target returns the Target coordinate and whether one is placed.
func (g *Grid) Target() (Coord, bool) { return g.target, g.hasTarget }

// checkWritable validates a caller-supplied coordinate for mutation.
func (g *Grid) checkWritable(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, g.rows, g.cols)
	}
	if !g.Interior(c) {
		return fmt.Errorf("%w: %v", ErrBorder, c)
	}
	return nil
}

// Set writes a search mark (Space, Frontier, Visited, FrontierAlt, VisitedAlt, Path).
// Walls and endpoints have dedicated operations and cannot be written or overwritten here.
func (g *Grid) Set(c Coord, k CellKind) error {
	if k != Space && !k.IsMark() {
		return fmt.Errorf("%w: %v", ErrBadKind, k)
	}
	if err := g.checkWritable(c); err != nil {
		return err
	}
	switch cur := g.At(c); cur {
	case Wall, Start, Target:
		return fmt.Errorf("%w: %v is %v", ErrOccupied, c, cur)
	}
	g.cells[g.index(c)] = k
	return nil
}

// PlaceWall turns c into Wall. Border cells are already Wall, so placing
// there is a no-op. Returns ErrOccupied on Start or Target.
func (g *Grid) PlaceWall(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, c, g.rows, g.cols)
	}
	if !g.Interior(c) {
		return nil
	}
	switch cur := g.At(c); cur {
	case Start, Target:
		return fmt.Errorf("%w: %v is %v", ErrOccupied, c, cur)
	}
	g.cells[g.index(c)] = Wall
	return nil
}

// EraseWall turns an interior Wall back into Space. Non-wall cells are left alone.
func (g *Grid) EraseWall(c Coord) error {
	if err := g.checkWritable(c); err != nil {
		return err
	}
	if g.At(c) == Wall {
		g.cells[g.index(c)] = Space
	}
	return nil
}

// PlaceStart moves Start to c, vacating the previous Start cell.
func (g *Grid) PlaceStart(c Coord) error {
	return g.placeEndpoint(c, Start, &g.start, &g.hasStart)
}

// PlaceTarget moves Target to c, vacating the previous Target cell.
func (g *Grid) PlaceTarget(c Coord) error {
	return g.placeEndpoint(c, Target, &g.target, &g.hasTarget)
}

func (g *Grid) placeEndpoint(c Coord, kind CellKind, pos *Coord, placed *bool) error {
	if err := g.checkWritable(c); err != nil {
		return err
	}
	cur := g.At(c)
	if cur == kind {
		return nil
	}
	if cur == Wall || cur == Start || cur == Target {
		return fmt.Errorf("%w: cannot place %v on %v at %v", ErrOccupied, kind, cur, c)
	}
	if *placed {
		g.cells[g.index(*pos)] = Space
	}
	g.cells[g.index(c)] = kind
	*pos, *placed = c, true
	return nil
}

// ClearMarks removes every search mark, keeping walls and endpoints.
func (g *Grid) ClearMarks() {
	for i, k := range g.cells {
		if k.IsMark() {
			g.cells[i] = Space
		}
	}
}

// ClearToBlank turns every non-Wall cell into Space and forgets both endpoints.
func (g *Grid) ClearToBlank() {
	for i, k := range g.cells {
		if k != Wall {
			g.cells[i] = Space
		}
	}
	g.hasStart, g.hasTarget = false, false
	g.start, g.target = Coord{}, Coord{}
}

// Reset restores the grid to the state returned by New.
func (g *Grid) Reset() {
	for i := range g.cells {
		c := g.Coordinate(i)
		if g.Interior(c) {
			g.cells[i] = Space
		} else {
			g.cells[i] = Wall
		}
	}
	g.hasStart, g.hasTarget = false, false
	g.start, g.target = Coord{}, Coord{}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	cp := *g
	cp.cells = make([]CellKind, len(g.cells))
	copy(cp.cells, g.cells)
	return &cp
}

// Count returns the number of cells currently holding kind k.
func (g *Grid) Count(k CellKind) int {
	n := 0
	for _, cur := range g.cells {
		if cur == k {
			n++
		}
	}
	return n
}

// Cells calls fn for every cell in row-major order.
func (g *Grid) Cells(fn func(c Coord, k CellKind)) {
	for i, k := range g.cells {
		fn(g.Coordinate(i), k)
	}
}
