package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridwalk/internal/config"
	"github.com/katalvlaran/gridwalk/maze"
)

// execute runs the root command with args and returns stdout and the log output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSolve_FromFile(t *testing.T) {
	path := writeTemp(t, "corridor.txt", corridor)
	out, logs, err := execute(t, "solve", "-m", path, "-a", "bfs")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "#S***T#", lines[1])
	assert.Contains(t, out, "state found")
	assert.Contains(t, out, "path 4")
	assert.Contains(t, logs, "Search finished")
}

func TestSolve_Unreachable(t *testing.T) {
	path := writeTemp(t, "blocked.txt", "#####\n#S#T#\n#####\n")
	out, logs, err := execute(t, "solve", "-m", path)
	require.NoError(t, err)
	assert.Contains(t, out, "state exhausted")
	assert.NotContains(t, out, "path ")
	assert.Contains(t, logs, "unreachable")
}

func TestSolve_BadFlags(t *testing.T) {
	_, _, err := execute(t, "solve", "-a", "greedy")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "solve", "--rows", "2")
	assert.ErrorIs(t, err, config.ErrInvalid)

	path := writeTemp(t, "open.txt", "#####\n#S.T.\n#####\n")
	_, _, err = execute(t, "solve", "-m", path)
	assert.ErrorIs(t, err, maze.ErrOpenBorder)
}

func TestSolve_SeededGenerationIsReproducible(t *testing.T) {
	args := []string{"solve", "-a", "dfs", "--seed", "99", "--rows", "15", "--cols", "25"}
	out1, _, err := execute(t, args...)
	require.NoError(t, err)
	out2, _, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestConfigFlag(t *testing.T) {
	level := writeTemp(t, "level.txt", corridor)
	cfg := writeTemp(t, "gridwalk.toml", "algorithm = \"dijkstra\"\n[maze]\nfile = \""+filepath.ToSlash(level)+"\"\n[log]\nlevel = \"debug\"\n")
	out, logs, err := execute(t, "--config", cfg, "solve")
	require.NoError(t, err)
	assert.Contains(t, out, "#S***T#")
	assert.Contains(t, logs, "loaded config")
	assert.Contains(t, logs, "dijkstra")

	bad := writeTemp(t, "bad.toml", "[play]\nfps = 1000\n")
	_, _, err = execute(t, "--config", bad, "algorithms")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestGenerate_RoundTrips(t *testing.T) {
	out, _, err := execute(t, "generate", "--seed", "5", "--rows", "9", "--cols", "13")
	require.NoError(t, err)

	g, err := maze.ParseString(out)
	require.NoError(t, err)
	assert.Equal(t, 9, g.Rows())
	assert.Equal(t, 13, g.Cols())
	s, _ := g.Start()
	tg, _ := g.Target()
	assert.Equal(t, maze.Coord{Row: 1, Col: 1}, s)
	assert.Equal(t, maze.Coord{Row: 7, Col: 11}, tg)
	assert.True(t, g.Connected(s, tg))
}

func TestGenerate_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	out, logs, err := execute(t, "generate", "--seed", "5", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, logs, "Wrote maze")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	g, err := maze.ParseString(string(data))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Maze.Rows, g.Rows())
}

func TestAlgorithmsCommand(t *testing.T) {
	out, _, err := execute(t, "algorithms")
	require.NoError(t, err)
	for _, tag := range []string{"bfs", "dfs", "bibfs", "dijkstra", "astar", "double-bfs"} {
		assert.Contains(t, out, tag)
	}
}
