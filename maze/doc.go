// Package maze models the rectangular board that the search engines explore:
// a fixed-size array of typed cells framed by an immutable Wall border.
//
// What:
//
//   - Grid stores rows×cols CellKind values in row-major order together with
//     the Start and Target coordinates.
//   - Placement (PlaceWall, EraseWall, PlaceStart, PlaceTarget) enforces the
//     endpoint rules: Start and Target never overlap, never sit on a Wall,
//     and relocating one vacates its previous cell.
//   - Set writes search marks (Frontier, Visited, Path and their secondary
//     variants) and refuses to touch walls, endpoints or the border.
//   - ClearMarks, ClearToBlank and Reset restore three levels of "clean".
//   - Parse and Grid.String provide a one-rune-per-cell text encoding.
//   - RandomWalls and Generate fill the interior with a striped random maze.
//
// Why the border:
//
//	Every interior cell has four in-bounds neighbors because row 0, col 0,
//	row rows-1 and col cols-1 are always Wall. Neighbor expansion therefore
//	never needs a bounds check; At is safe for any neighbor of an interior cell.
//
// Text encoding:
//
//	.  Space        #  Wall         S  Start        T  Target
//	o  Frontier     O  FrontierAlt  x  Visited      X  VisitedAlt
//	*  Path
//
// Complexity:
//
//   - New, Reset, ClearMarks, ClearToBlank, Clone: O(R×C).
//   - At, CellAt, Set, Place*: O(1).
//   - Connected: O(R×C) time and memory.
//
// Errors:
//
//   - ErrTooSmall: a dimension is below 3.
//   - ErrOutOfBounds: a coordinate lies outside [0,rows)×[0,cols).
//   - ErrBorder: a write targets the border ring.
//   - ErrOccupied: a write would overwrite a Wall, Start or Target.
//   - ErrBadKind: Set was asked to write Wall, Start or Target.
//   - ErrNonRectangular, ErrOpenBorder, ErrUnknownCell, ErrDuplicateEndpoint,
//     ErrLineTooLong: Parse failures.
package maze
