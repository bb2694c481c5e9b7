package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags    mazeFlags
		output   string
		unsolved bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random maze in text form",
		Long: `Generate draws random walls in horizontal stripes, dense on even rows and
sparse on odd ones, and writes the grid using the same text encoding that
solve and play read with --maze.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			cfg.Maze.File = ""
			cfg.Maze.Random = true
			if unsolved {
				cfg.Maze.Solvable = false
			}

			g, err := loadGrid(cmd.Context(), cfg.Maze)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if _, err = g.WriteTo(w); err != nil {
				return err
			}
			if output != "" {
				loggerFromContext(cmd.Context()).Info("Wrote maze", "path", output, "rows", g.Rows(), "cols", g.Cols())
			}
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&unsolved, "allow-unsolvable", false, "skip the Start-Target connectivity retry")

	return cmd
}
