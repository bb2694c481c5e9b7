package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridwalk/search"
)

// algorithmInfo describes one tag for the algorithms listing.
type algorithmInfo struct {
	aliases  string
	frontier string
	shortest bool
}

var algorithmTable = map[search.Algorithm]algorithmInfo{
	search.BFS:           {aliases: "", frontier: "FIFO queue", shortest: true},
	search.DFS:           {aliases: "", frontier: "LIFO stack, shuffled neighbors", shortest: false},
	search.Bidirectional: {aliases: "dbfs, double-bfs", frontier: "two FIFO queues", shortest: true},
	search.Dijkstra:      {aliases: "", frontier: "min-heap on g", shortest: true},
	search.AStar:         {aliases: "a*, a-star", frontier: "min-heap on g+manhattan", shortest: true},
}

func (c *CLI) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available search algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := make([][]string, 0, len(search.Algorithms()))
			for _, a := range search.Algorithms() {
				info := algorithmTable[a]
				shortest := "no"
				if info.shortest {
					shortest = "yes"
				}
				rows = append(rows, []string{a.String(), info.aliases, info.frontier, shortest})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Tag", "Aliases", "Frontier", "Shortest").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle.Padding(0, 1)
					}
					if col == 0 {
						return StyleTitle.Padding(0, 1)
					}
					return lipgloss.NewStyle().Padding(0, 1)
				})

			_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}
