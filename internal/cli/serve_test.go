package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridwalk/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Maze.Rows, cfg.Maze.Cols = 11, 15
	cfg.Maze.Target = [2]int{9, 13}
	ts := httptest.NewServer(newServer(cfg, newLogger(io.Discard, LogInfo)).routes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeSnapshot(t *testing.T, data []byte) snapshot {
	t.Helper()
	var s snapshot
	require.NoError(t, json.Unmarshal(data, &s))
	return s
}

func decodeError(t *testing.T, data []byte) errorResponse {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestServe_Lifecycle(t *testing.T) {
	ts := newTestServer(t)
	base := ts.URL + "/api/searches"

	resp, data := do(t, http.MethodPost, base, createRequest{Maze: corridor, Algorithm: "bfs"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	created := decodeSnapshot(t, data)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "running", created.State)
	assert.Equal(t, 4, created.Rows)
	assert.Equal(t, 7, created.Cols)
	assert.Equal(t, "#S...T#", created.Grid[1])
	url := base + "/" + created.ID

	resp, data = do(t, http.MethodPost, url+"/step", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	snap := decodeSnapshot(t, data)
	assert.Equal(t, 1, snap.Stats.Steps)
	assert.Equal(t, "#So..T#", snap.Grid[1])

	resp, data = do(t, http.MethodPost, url+"/step?n=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, decodeSnapshot(t, data).Stats.Steps)

	resp, data = do(t, http.MethodPost, url+"/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decodeSnapshot(t, data)
	assert.Equal(t, "found", snap.State)
	assert.Equal(t, [][2]int{{1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 5}}, snap.Path)
	assert.Equal(t, "#S***T#", snap.Grid[1])

	resp, data = do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "found", decodeSnapshot(t, data).State)

	resp, data = do(t, http.MethodPost, url+"/step", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "precondition_violated", decodeError(t, data).Code)

	resp, _ = do(t, http.MethodDelete, url, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, data = do(t, http.MethodGet, url, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decodeError(t, data).Code)
}

func TestServe_GeneratedMaze(t *testing.T) {
	ts := newTestServer(t)
	seed := uint64(42)
	resp, data := do(t, http.MethodPost, ts.URL+"/api/searches", createRequest{Algorithm: "dbfs", Seed: &seed})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	created := decodeSnapshot(t, data)
	assert.Equal(t, "bibfs", created.Algorithm)
	assert.Equal(t, 11, created.Rows)
	assert.Equal(t, 15, created.Cols)

	resp, data = do(t, http.MethodPost, ts.URL+"/api/searches/"+created.ID+"/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "found", decodeSnapshot(t, data).State, "generator retries until solvable")

	// same seed, same maze
	resp, data = do(t, http.MethodPost, ts.URL+"/api/searches", createRequest{Algorithm: "bfs", Seed: &seed})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, created.Grid, decodeSnapshot(t, data).Grid)
}

func TestServe_Errors(t *testing.T) {
	ts := newTestServer(t)
	base := ts.URL + "/api/searches"

	cases := []struct {
		name   string
		method string
		url    string
		body   string
		status int
		code   string
	}{
		{"MalformedJSON", http.MethodPost, base, "{", http.StatusBadRequest, "invalid_configuration"},
		{"UnknownAlgorithm", http.MethodPost, base, `{"maze":"#####\n#S.T#\n#####","algorithm":"greedy"}`, http.StatusBadRequest, "invalid_configuration"},
		{"BadMaze", http.MethodPost, base, `{"maze":"#####\n#S.T.\n#####"}`, http.StatusBadRequest, "invalid_configuration"},
		{"NoTarget", http.MethodPost, base, `{"maze":"#####\n#S..#\n#####"}`, http.StatusBadRequest, "invalid_configuration"},
		{"LongLine", http.MethodPost, base, `{"maze":"###\n` + strings.Repeat("#", 70000) + `\n###"}`, http.StatusBadRequest, "invalid_configuration"},
		{"BodyTooLarge", http.MethodPost, base, `{"maze":"` + strings.Repeat("#", maxCreateBody) + `"}`, http.StatusRequestEntityTooLarge, "body_too_large"},
		{"BadID", http.MethodGet, base + "/not-a-uuid", "", http.StatusNotFound, "not_found"},
		{"UnknownID", http.MethodPost, base + "/4b0f1a8e-7c1f-4c1e-9a55-0d3f8f7b2a10/run", "", http.StatusNotFound, "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, tc.url, strings.NewReader(tc.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode, string(data))
			e := decodeError(t, data)
			assert.Equal(t, tc.code, e.Code)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestServe_StepBounds(t *testing.T) {
	ts := newTestServer(t)
	resp, data := do(t, http.MethodPost, ts.URL+"/api/searches", createRequest{Maze: corridor})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decodeSnapshot(t, data).ID

	for _, n := range []string{"0", "-3", "abc"} {
		resp, _ = do(t, http.MethodPost, ts.URL+"/api/searches/"+id+"/step?n="+n, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, n)
	}
}

//----------------------------------------------------------------------------//
// Session limits
//----------------------------------------------------------------------------//

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// newLimitedServer serves with a session cap and a clock the test advances.
func newLimitedServer(t *testing.T, maxSessions int, ttl time.Duration) (*httptest.Server, *fakeClock) {
	t.Helper()
	cfg := config.Default()
	cfg.Serve.MaxSessions, cfg.Serve.SessionTTL = maxSessions, ttl
	srv := newServer(cfg, newLogger(io.Discard, LogInfo))
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	srv.now = clock.now
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts, clock
}

func TestServe_SessionCap(t *testing.T) {
	ts, _ := newLimitedServer(t, 2, time.Hour)
	base := ts.URL + "/api/searches"

	var ids []string
	for i := 0; i < 2; i++ {
		resp, data := do(t, http.MethodPost, base, createRequest{Maze: corridor})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
		ids = append(ids, decodeSnapshot(t, data).ID)
	}
	resp, data := do(t, http.MethodPost, base, createRequest{Maze: corridor})
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode, string(data))
	assert.Equal(t, "session_limit", decodeError(t, data).Code)

	// deleting frees a slot
	resp, _ = do(t, http.MethodDelete, base+"/"+ids[0], nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, data = do(t, http.MethodPost, base, createRequest{Maze: corridor})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
}

func TestServe_IdleSessionsExpire(t *testing.T) {
	ts, clock := newLimitedServer(t, 1, time.Minute)
	base := ts.URL + "/api/searches"

	resp, data := do(t, http.MethodPost, base, createRequest{Maze: corridor})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
	url := base + "/" + decodeSnapshot(t, data).ID

	// each request refreshes the idle clock
	clock.advance(50 * time.Second)
	resp, _ = do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	clock.advance(50 * time.Second)
	resp, _ = do(t, http.MethodPost, url+"/step", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	clock.advance(time.Minute)
	resp, data = do(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decodeError(t, data).Code)
}

func TestServe_CreateEvictsIdleSessions(t *testing.T) {
	ts, clock := newLimitedServer(t, 1, time.Minute)
	base := ts.URL + "/api/searches"

	resp, data := do(t, http.MethodPost, base, createRequest{Maze: corridor})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(data))

	clock.advance(2 * time.Minute)
	resp, data = do(t, http.MethodPost, base, createRequest{Maze: corridor})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(data))
}
