package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridwalk/internal/config"
	"github.com/katalvlaran/gridwalk/maze"
	"github.com/katalvlaran/gridwalk/search"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridwalk.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, search.AStar, cfg.SearchAlgorithm())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())

	g := cfg.Maze.GenerateOptions()
	assert.Equal(t, maze.DefaultGenerateOptions(), g)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
algorithm = "dbfs"

[maze]
rows = 11
cols = 21
seed = 7
target = [9, 19]

[play]
fps = 30

[serve]
session_ttl = "90s"

[log]
level = "debug"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, search.Bidirectional, cfg.SearchAlgorithm())
	assert.Equal(t, 11, cfg.Maze.Rows)
	assert.Equal(t, uint64(7), cfg.Maze.Seed)
	assert.Equal(t, [2]int{1, 1}, cfg.Maze.Start, "kept from Default")
	assert.Equal(t, [2]int{9, 19}, cfg.Maze.Target)
	assert.True(t, cfg.Maze.Solvable, "kept from Default")
	assert.Equal(t, 30, cfg.Play.FPS)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, config.Default().Serve.Addr, cfg.Serve.Addr)
	assert.Equal(t, 90*time.Second, cfg.Serve.SessionTTL)
	assert.Equal(t, config.Default().Serve.MaxSessions, cfg.Serve.MaxSessions)
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"Syntax", "algorithm = \n"},
		{"UnknownKey", "colour = \"red\"\n"},
		{"UnknownAlgorithm", "algorithm = \"greedy\"\n"},
		{"FPSTooHigh", "[play]\nfps = 500\n"},
		{"FPSZero", "[play]\nfps = 0\n"},
		{"TooSmall", "[maze]\nrows = 2\n"},
		{"TargetOnBorder", "[maze]\ntarget = [39, 58]\n"},
		{"SameEndpoints", "[maze]\ntarget = [1, 1]\n"},
		{"BadLevel", "[log]\nlevel = \"loud\"\n"},
		{"EmptyAddr", "[serve]\naddr = \"\"\n"},
		{"NoSessions", "[serve]\nmax_sessions = 0\n"},
		{"ZeroTTL", "[serve]\nsession_ttl = \"0s\"\n"},
		{"BadTTL", "[serve]\nsession_ttl = \"soon\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, tc.body))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestValidate_FileSkipsSizeChecks(t *testing.T) {
	cfg := config.Default()
	cfg.Maze.File = "level.txt"
	cfg.Maze.Rows, cfg.Maze.Cols = 0, 0
	assert.NoError(t, cfg.Validate())
}
