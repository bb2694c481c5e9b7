package maze

import (
	"errors"
	"fmt"
)

// Sentinel errors for maze operations.
var (
	// ErrTooSmall indicates a grid with fewer than 3 rows or columns.
	ErrTooSmall = errors.New("maze: grid must be at least 3x3")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("maze: coordinate out of bounds")
	// ErrBorder indicates a write to the border ring, which is always Wall.
	ErrBorder = errors.New("maze: border cells are immutable")
	// ErrOccupied indicates a write onto a Wall, Start or Target cell.
	ErrOccupied = errors.New("maze: cell is occupied")
	// ErrBadKind indicates Set was asked to write a structural kind.
	ErrBadKind = errors.New("maze: kind cannot be written with Set")
	// ErrNonRectangular indicates text rows of differing lengths.
	ErrNonRectangular = errors.New("maze: all rows must have the same length")
	// ErrOpenBorder indicates a non-Wall cell on the border of parsed text.
	ErrOpenBorder = errors.New("maze: border must be wall")
	// ErrUnknownCell indicates an unrecognized rune in parsed text.
	ErrUnknownCell = errors.New("maze: unknown cell rune")
	// ErrDuplicateEndpoint indicates more than one Start or Target in parsed text.
	ErrDuplicateEndpoint = errors.New("maze: duplicate endpoint")
	// ErrLineTooLong indicates a text row longer than the reader accepts.
	ErrLineTooLong = errors.New("maze: line too long")
)

// CellKind is the state of a single grid cell.
type CellKind uint8

const (
	// Space is an empty, enterable cell.
	Space CellKind = iota
	// Wall is impassable.
	Wall
	// Start is the origin of the (primary) search.
	Start
	// Target is the goal of the search and the origin of the secondary side.
	Target
	// Frontier marks a cell discovered by the primary side but not yet expanded.
	Frontier
	// Visited marks a cell expanded by the primary side.
	Visited
	// FrontierAlt marks a cell discovered by the secondary (Target-rooted) side.
	FrontierAlt
	// VisitedAlt marks a cell expanded by the secondary side.
	VisitedAlt
	// Path marks a cell on the reconstructed route.
	Path
)

var kindRunes = [...]rune{
	Space:       '.',
	Wall:        '#',
	Start:       'S',
	Target:      'T',
	Frontier:    'o',
	Visited:     'x',
	FrontierAlt: 'O',
	VisitedAlt:  'X',
	Path:        '*',
}

var kindNames = [...]string{
	Space:       "space",
	Wall:        "wall",
	Start:       "start",
	Target:      "target",
	Frontier:    "frontier",
	Visited:     "visited",
	FrontierAlt: "frontier-alt",
	VisitedAlt:  "visited-alt",
	Path:        "path",
}

// Rune returns the text-encoding rune for k.
func (k CellKind) Rune() rune {
	if int(k) < len(kindRunes) {
		return kindRunes[k]
	}
	return '?'
}

// String returns a lowercase name for k.
func (k CellKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("CellKind(%d)", uint8(k))
}

// IsMark reports whether k is a search mark that ClearMarks removes.
func (k CellKind) IsMark() bool {
	switch k {
	case Frontier, Visited, FrontierAlt, VisitedAlt, Path:
		return true
	}
	return false
}

// KindFromRune maps a text-encoding rune back to its CellKind.
func KindFromRune(r rune) (CellKind, bool) {
	for k, kr := range kindRunes {
		if kr == r {
			return CellKind(k), true
		}
	}
	return Space, false
}

// Coord addresses a cell by row and column.
type Coord struct {
	Row, Col int
}

// String formats c as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns c shifted by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// offsets holds the four orthogonal directions in expansion order.
var offsets = [4]Coord{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Offsets returns the four orthogonal directions in expansion order:
// down, up, right, left. The result is a copy.
func Offsets() [4]Coord { return offsets }
