package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridwalk/search"
)

func (c *CLI) solveCommand() *cobra.Command {
	var flags mazeFlags

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run a search to completion and print the painted grid",
		Example: `  gridwalk solve -a bibfs --seed 42
  gridwalk solve -a dfs -m level.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			g, err := loadGrid(ctx, cfg.Maze)
			if err != nil {
				return err
			}
			alg := cfg.SearchAlgorithm()
			eng, err := search.Begin(g, alg, engineOptions(cfg.Maze)...)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			state, err := eng.RunToCompletion(ctx)
			if err != nil {
				return err
			}
			st := eng.Stats()
			prog.done("Search finished", "algorithm", alg, "state", state, "expanded", st.Expanded)

			printResult(cmd.OutOrStdout(), eng)
			if state == search.Exhausted {
				logger.Warn("Target is unreachable from Start")
			}
			return nil
		},
	}
	flags.register(cmd, true)

	return cmd
}
