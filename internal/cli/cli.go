// Package cli implements the gridwalk command-line interface.
//
// Commands:
//   - solve: run a search to completion and print the painted grid
//   - play: animate a search in the terminal, one step per frame
//   - generate: write a random maze in text form
//   - serve: expose step-by-step searches over a JSON HTTP API
//   - algorithms: list the algorithm tags
//
// Settings come from an optional TOML file (--config) and are overridden by
// per-command flags. The logger travels through the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridwalk/internal/config"
	"github.com/katalvlaran/gridwalk/maze"
	"github.com/katalvlaran/gridwalk/search"
)

const appName = "gridwalk"

// version is overridden at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfgPath string
	cfg     config.Config
}

// New creates a CLI whose logger writes to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), cfg: config.Default()}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Its PersistentPreRunE loads the config file and attaches the logger to the
// command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gridwalk animates pathfinding on grid mazes",
		Long:         `gridwalk runs BFS, DFS, bidirectional BFS, Dijkstra and A* on a walled grid one step at a time, painting frontier, visited and path cells as it goes.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.cfgPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.SetLogLevel(cfg.LogLevel())
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.cfgPath != "" {
				c.Logger.Debug("loaded config", "path", c.cfgPath)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "path to a TOML config file")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.algorithmsCommand())

	return root
}

// =============================================================================
// Shared flags
// =============================================================================

// mazeFlags are the grid and algorithm overrides shared by several commands.
type mazeFlags struct {
	algorithm string
	file      string
	seed      uint64
	rows      int
	cols      int
}

func (f *mazeFlags) register(cmd *cobra.Command, withAlgorithm bool) {
	fs := cmd.Flags()
	if withAlgorithm {
		fs.StringVarP(&f.algorithm, "algorithm", "a", "", "bfs, dfs, bibfs, dijkstra or astar")
	}
	fs.StringVarP(&f.file, "maze", "m", "", "read the maze from a text file instead of generating one")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed for generation and DFS (0 picks one)")
	fs.IntVar(&f.rows, "rows", 0, "generated maze rows, border included")
	fs.IntVar(&f.cols, "cols", 0, "generated maze columns, border included")
}

// apply copies explicitly set flags over cfg and revalidates it. Changing the
// size without a config target moves the Target to the far interior corner.
func (f *mazeFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("algorithm") {
		cfg.Algorithm = f.algorithm
	}
	if fs.Changed("maze") {
		cfg.Maze.File = f.file
	}
	if fs.Changed("seed") {
		cfg.Maze.Seed = f.seed
	}
	resized := false
	if fs.Changed("rows") {
		cfg.Maze.Rows, resized = f.rows, true
	}
	if fs.Changed("cols") {
		cfg.Maze.Cols, resized = f.cols, true
	}
	if resized {
		cfg.Maze.Target = [2]int{cfg.Maze.Rows - 2, cfg.Maze.Cols - 2}
	}
	return cfg.Validate()
}

// =============================================================================
// Grid and engine helpers
// =============================================================================

// newRand returns a PCG source for seed, drawing a fresh seed when it is 0.
func newRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1)), seed
}

// loadGrid reads m.File when set, otherwise builds a grid from the maze section.
func loadGrid(ctx context.Context, m config.MazeConfig) (*maze.Grid, error) {
	logger := loggerFromContext(ctx)
	if m.File != "" {
		f, err := os.Open(m.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		g, err := maze.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.File, err)
		}
		logger.Debug("loaded maze", "file", m.File, "rows", g.Rows(), "cols", g.Cols())
		return g, nil
	}

	opts := m.GenerateOptions()
	if !m.Random {
		g, err := maze.New(opts.Rows, opts.Cols)
		if err != nil {
			return nil, err
		}
		if err = g.PlaceStart(opts.Start); err != nil {
			return nil, err
		}
		if err = g.PlaceTarget(opts.Target); err != nil {
			return nil, err
		}
		return g, nil
	}

	rng, seed := newRand(m.Seed)
	g, err := maze.Generate(opts, rng)
	if err != nil {
		return nil, fmt.Errorf("generate %dx%d seed %d: %w", opts.Rows, opts.Cols, seed, err)
	}
	logger.Debug("generated maze", "rows", opts.Rows, "cols", opts.Cols, "seed", seed)
	return g, nil
}

// engineOptions carries the configured seed into DFS shuffling so that a
// seeded run is reproducible end to end.
func engineOptions(m config.MazeConfig) []search.Option {
	if m.Seed == 0 {
		return nil
	}
	return []search.Option{search.WithSeed(m.Seed)}
}
