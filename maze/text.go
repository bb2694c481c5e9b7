package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse reads a grid in the one-rune-per-cell text encoding (see package doc).
// Blank lines are skipped; every remaining line is one row.
//
// Returns ErrNonRectangular for ragged rows, ErrOpenBorder when the border
// ring contains a non-Wall rune, ErrUnknownCell for unrecognized runes,
// ErrDuplicateEndpoint for a second S or T, ErrTooSmall below 3x3, and
// ErrLineTooLong for a row longer than the scanner's 64 KiB token limit.
func Parse(r io.Reader) (*Grid, error) {
	var lines [][]rune
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r \t")
		if line == "" {
			continue
		}
		lines = append(lines, []rune(line))
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: %w", ErrLineTooLong, err)
		}
		return nil, fmt.Errorf("maze: read: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrTooSmall)
	}

	rows, cols := len(lines), len(lines[0])
	for i, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, i, len(line), cols)
		}
	}
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}

	for row, line := range lines {
		for col, ch := range line {
			c := Coord{Row: row, Col: col}
			k, ok := KindFromRune(ch)
			if !ok {
				return nil, fmt.Errorf("%w: %q at %v", ErrUnknownCell, ch, c)
			}
			if !g.Interior(c) {
				if k != Wall {
					return nil, fmt.Errorf("%w: %q at %v", ErrOpenBorder, ch, c)
				}
				continue
			}
			switch k {
			case Start:
				if g.hasStart {
					return nil, fmt.Errorf("%w: second start at %v", ErrDuplicateEndpoint, c)
				}
				g.start, g.hasStart = c, true
			case Target:
				if g.hasTarget {
					return nil, fmt.Errorf("%w: second target at %v", ErrDuplicateEndpoint, c)
				}
				g.target, g.hasTarget = c, true
			}
			g.cells[g.index(c)] = k
		}
	}

	return g, nil
}

// ParseString is Parse over a string literal.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// String encodes g, one line per row, each line terminated by '\n'.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for i, k := range g.cells {
		b.WriteRune(k.Rune())
		if (i+1)%g.cols == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteTo writes the text encoding of g to w.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}
