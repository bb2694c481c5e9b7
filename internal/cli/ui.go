package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/gridwalk/maze"
	"github.com/katalvlaran/gridwalk/search"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary frontier
	colorGreen  = lipgloss.Color("35")  // Green - start, success
	colorYellow = lipgloss.Color("220") // Amber - path
	colorRed    = lipgloss.Color("167") // Soft red - target, errors
	colorBlue   = lipgloss.Color("75")  // Light blue - secondary frontier
	colorPurple = lipgloss.Color("98")  // Purple - secondary visited
	colorWhite  = lipgloss.Color("255") // Bright white - walls
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - visited, muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleError = lipgloss.NewStyle().Foreground(colorRed)
	styleLabel = lipgloss.NewStyle().Foreground(colorGray)
)

// cellStyles colors each cell kind. Space renders unstyled.
var cellStyles = map[maze.CellKind]lipgloss.Style{
	maze.Wall:        lipgloss.NewStyle().Foreground(colorWhite),
	maze.Start:       lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
	maze.Target:      lipgloss.NewStyle().Bold(true).Foreground(colorRed),
	maze.Frontier:    lipgloss.NewStyle().Foreground(colorCyan),
	maze.Visited:     lipgloss.NewStyle().Foreground(colorDim),
	maze.FrontierAlt: lipgloss.NewStyle().Foreground(colorBlue),
	maze.VisitedAlt:  lipgloss.NewStyle().Foreground(colorPurple),
	maze.Path:        lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
}

// =============================================================================
// Grid Rendering
// =============================================================================

// renderGrid draws g one rune per cell, coloring runs of equal kinds together.
// Without a color profile the output equals g.String().
func renderGrid(g *maze.Grid) string {
	var b strings.Builder
	b.Grow(g.Rows() * (g.Cols() + 1))
	var run strings.Builder
	for row := 0; row < g.Rows(); row++ {
		col := 0
		for col < g.Cols() {
			k := g.At(maze.Coord{Row: row, Col: col})
			run.Reset()
			for col < g.Cols() && g.At(maze.Coord{Row: row, Col: col}) == k {
				run.WriteRune(k.Rune())
				col++
			}
			if st, ok := cellStyles[k]; ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// legend lists the mark runes with their colors.
func legend() string {
	kinds := []maze.CellKind{
		maze.Start, maze.Target, maze.Frontier, maze.Visited,
		maze.FrontierAlt, maze.VisitedAlt, maze.Path,
	}
	parts := make([]string, 0, len(kinds))
	for _, k := range kinds {
		parts = append(parts, cellStyles[k].Render(string(k.Rune()))+" "+StyleDim.Render(k.String()))
	}
	return strings.Join(parts, "  ")
}

// stateStyle picks the color for an engine state label.
func stateStyle(s search.State) lipgloss.Style {
	switch s {
	case search.Found:
		return StyleSuccess
	case search.Exhausted:
		return styleError
	case search.Running:
		return StyleTitle
	default:
		return StyleDim
	}
}

// statsLine summarises engine counters and the path length when found.
func statsLine(eng *search.Engine) string {
	st := eng.Stats()
	line := fmt.Sprintf("%s %s  %s %d  %s %d  %s %d  %s %d",
		styleLabel.Render("state"), stateStyle(eng.State()).Render(eng.State().String()),
		styleLabel.Render("steps"), st.Steps,
		styleLabel.Render("expanded"), st.Expanded,
		styleLabel.Render("created"), st.Created,
		styleLabel.Render("frontier"), eng.FrontierLen(),
	)
	if p := eng.Path(); p != nil {
		line += fmt.Sprintf("  %s %d", styleLabel.Render("path"), len(p)-1)
	}
	return line
}

// printResult writes the painted grid followed by the stats line.
func printResult(w io.Writer, eng *search.Engine) {
	fmt.Fprint(w, renderGrid(eng.Grid()))
	fmt.Fprintln(w, statsLine(eng))
}
