// Package config loads gridwalk settings from a TOML file.
//
// Values are decoded on top of Default, so a file only needs the keys it
// changes. Command-line flags are applied by the caller after Load.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/katalvlaran/gridwalk/maze"
	"github.com/katalvlaran/gridwalk/search"
)

// ErrInvalid is wrapped by every Load and Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Frame rate bounds for the play command.
const (
	MinFPS = 1
	MaxFPS = 240
)

// Config is the root of the TOML document.
type Config struct {
	Algorithm string      `toml:"algorithm"`
	Maze      MazeConfig  `toml:"maze"`
	Play      PlayConfig  `toml:"play"`
	Serve     ServeConfig `toml:"serve"`
	Log       LogConfig   `toml:"log"`
}

// MazeConfig selects where the grid comes from: a text file, or the random
// generator when File is empty.
type MazeConfig struct {
	Rows     int    `toml:"rows"`
	Cols     int    `toml:"cols"`
	File     string `toml:"file"`
	Seed     uint64 `toml:"seed"` // 0 picks a random seed
	Random   bool   `toml:"random"`
	Solvable bool   `toml:"solvable"`
	Start    [2]int `toml:"start"`  // row, col
	Target   [2]int `toml:"target"` // row, col
}

// PlayConfig drives the terminal animation.
type PlayConfig struct {
	FPS  int  `toml:"fps"`
	Fast bool `toml:"fast"`
}

// ServeConfig drives the HTTP API.
type ServeConfig struct {
	Addr string `toml:"addr"`
	// MaxSessions caps live sessions; creates beyond it are refused.
	MaxSessions int `toml:"max_sessions"`
	// SessionTTL evicts a session once it has gone this long without a request.
	SessionTTL time.Duration `toml:"session_ttl"`
}

// LogConfig sets the logger level name ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings: A* on a solvable random 40x60 maze.
func Default() Config {
	g := maze.DefaultGenerateOptions()
	return Config{
		Algorithm: search.AStar.String(),
		Maze: MazeConfig{
			Rows:     g.Rows,
			Cols:     g.Cols,
			Random:   true,
			Solvable: g.Solvable,
			Start:    [2]int{g.Start.Row, g.Start.Col},
			Target:   [2]int{g.Target.Row, g.Target.Col},
		},
		Play:  PlayConfig{FPS: 60},
		Serve: ServeConfig{Addr: "127.0.0.1:8080", MaxSessions: 256, SessionTTL: 30 * time.Minute},
		Log:   LogConfig{Level: "info"},
	}
}

// Load decodes the file at path over Default and validates the result.
// An empty path returns Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	if err = cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if _, err := search.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Maze.File == "" {
		if c.Maze.Rows < maze.MinSize || c.Maze.Cols < maze.MinSize {
			return fmt.Errorf("%w: maze size %dx%d below %d", ErrInvalid, c.Maze.Rows, c.Maze.Cols, maze.MinSize)
		}
		for name, p := range map[string][2]int{"start": c.Maze.Start, "target": c.Maze.Target} {
			if p[0] < 1 || p[0] > c.Maze.Rows-2 || p[1] < 1 || p[1] > c.Maze.Cols-2 {
				return fmt.Errorf("%w: %s %v outside the %dx%d interior", ErrInvalid, name, p, c.Maze.Rows, c.Maze.Cols)
			}
		}
		if c.Maze.Start == c.Maze.Target {
			return fmt.Errorf("%w: start and target coincide at %v", ErrInvalid, c.Maze.Start)
		}
	}
	if c.Play.FPS < MinFPS || c.Play.FPS > MaxFPS {
		return fmt.Errorf("%w: fps %d not in %d..%d", ErrInvalid, c.Play.FPS, MinFPS, MaxFPS)
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("%w: serve.addr is empty", ErrInvalid)
	}
	if c.Serve.MaxSessions < 1 {
		return fmt.Errorf("%w: serve.max_sessions %d below 1", ErrInvalid, c.Serve.MaxSessions)
	}
	if c.Serve.SessionTTL <= 0 {
		return fmt.Errorf("%w: serve.session_ttl %v not positive", ErrInvalid, c.Serve.SessionTTL)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SearchAlgorithm returns the parsed algorithm tag. Call Validate first.
func (c Config) SearchAlgorithm() search.Algorithm {
	a, _ := search.ParseAlgorithm(c.Algorithm)
	return a
}

// LogLevel returns the parsed level, falling back to info.
func (c Config) LogLevel() log.Level {
	l, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return l
}

// GenerateOptions maps the maze section onto the random generator.
func (m MazeConfig) GenerateOptions() maze.GenerateOptions {
	o := maze.DefaultGenerateOptions()
	o.Rows, o.Cols = m.Rows, m.Cols
	o.Start = maze.Coord{Row: m.Start[0], Col: m.Start[1]}
	o.Target = maze.Coord{Row: m.Target[0], Col: m.Target[1]}
	o.Solvable = m.Solvable
	return o
}
