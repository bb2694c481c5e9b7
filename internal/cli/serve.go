package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridwalk/internal/config"
	"github.com/katalvlaran/gridwalk/maze"
	"github.com/katalvlaran/gridwalk/search"
)

const (
	// maxStepsPerRequest bounds ?n= on the step route.
	maxStepsPerRequest = 1 << 20
	// maxCreateBody caps the create request body.
	maxCreateBody = 1 << 20
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve step-by-step searches over a JSON HTTP API",
		Long: `Serve keeps searches in memory, one engine per session id.

  POST   /api/searches              create: {"maze": "...", "algorithm": "astar", "seed": 7}
  GET    /api/searches/{id}         snapshot
  POST   /api/searches/{id}/step    advance ?n=N steps (default 1)
  POST   /api/searches/{id}/run     run to completion
  DELETE /api/searches/{id}         abandon and forget

An empty "maze" generates a random one from the [maze] config section.
Sessions idle for serve.session_ttl are evicted, and creates beyond
serve.max_sessions get 429.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			srv := &http.Server{
				Addr:              cfg.Serve.Addr,
				Handler:           newServer(cfg, logger).routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			logger.Info("Listening", "addr", cfg.Serve.Addr)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logger.Info("Server stopped")
			return ctx.Err()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}

// =============================================================================
// Sessions
// =============================================================================

// session serialises access to one engine and its grid.
type session struct {
	mu  sync.Mutex
	eng *search.Engine

	lastUsed time.Time // guarded by server.mu
}

// server holds every live session by id.
type server struct {
	cfg    config.Config
	logger *log.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func newServer(cfg config.Config, logger *log.Logger) *server {
	return &server{cfg: cfg, logger: logger, now: time.Now, sessions: make(map[uuid.UUID]*session)}
}

func (s *server) expired(sess *session, now time.Time) bool {
	return now.Sub(sess.lastUsed) >= s.cfg.Serve.SessionTTL
}

// evictLocked drops every idle session. Callers hold s.mu.
func (s *server) evictLocked(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			s.logger.Debug("session expired", "id", id)
		}
	}
}

// add stores eng under a fresh id unless the session cap is reached.
func (s *server) add(eng *search.Engine) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.evictLocked(now)
	if len(s.sessions) >= s.cfg.Serve.MaxSessions {
		return uuid.Nil, errSessionLimit
	}
	id := uuid.New()
	s.sessions[id] = &session{eng: eng, lastUsed: now}
	return id, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api/searches", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Post("/step", s.handleStep)
			r.Post("/run", s.handleRun)
			r.Delete("/", s.handleDelete)
		})
	})
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "elapsed", time.Since(start))
	})
}

func (s *server) lookup(r *http.Request) (uuid.UUID, *session, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, nil, errNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return id, nil, errNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return id, nil, errNotFound
	}
	sess.lastUsed = now
	return id, sess, nil
}

// =============================================================================
// Wire types
// =============================================================================

type createRequest struct {
	Maze      string  `json:"maze"`
	Algorithm string  `json:"algorithm"`
	Seed      *uint64 `json:"seed,omitempty"`
}

type statsJSON struct {
	Steps    int `json:"steps"`
	Expanded int `json:"expanded"`
	Created  int `json:"created"`
	Relaxed  int `json:"relaxed"`
	Frontier int `json:"frontier"`
}

type snapshot struct {
	ID        string    `json:"id"`
	Algorithm string    `json:"algorithm"`
	State     string    `json:"state"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Grid      []string  `json:"grid"`
	Path      [][2]int  `json:"path,omitempty"`
	Stats     statsJSON `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func snapshotOf(id uuid.UUID, eng *search.Engine) snapshot {
	g := eng.Grid()
	snap := snapshot{
		ID:        id.String(),
		Algorithm: eng.Algorithm().String(),
		State:     eng.State().String(),
		Rows:      g.Rows(),
		Cols:      g.Cols(),
		Grid:      strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n"),
		Stats: statsJSON{
			Steps:    eng.Stats().Steps,
			Expanded: eng.Stats().Expanded,
			Created:  eng.Stats().Created,
			Relaxed:  eng.Stats().Relaxed,
			Frontier: eng.FrontierLen(),
		},
	}
	for _, c := range eng.Path() {
		snap.Path = append(snap.Path, [2]int{c.Row, c.Col})
	}
	return snap
}

// =============================================================================
// Handlers
// =============================================================================

var (
	errNotFound     = errors.New("search session not found")
	errBadRequest   = errors.New("malformed request")
	errSessionLimit = errors.New("too many live search sessions")
)

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	body := http.MaxBytesReader(w, r.Body, maxCreateBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, errors.Join(errBadRequest, err))
		return
	}

	algName := req.Algorithm
	if algName == "" {
		algName = s.cfg.Algorithm
	}
	alg, err := search.ParseAlgorithm(algName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	m := s.cfg.Maze
	m.File = ""
	if req.Seed != nil {
		m.Seed = *req.Seed
	}
	var g *maze.Grid
	if strings.TrimSpace(req.Maze) != "" {
		g, err = maze.ParseString(req.Maze)
	} else {
		g, err = loadGrid(r.Context(), m)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	eng, err := search.Begin(g, alg, engineOptions(m)...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := s.add(eng)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Debug("session created", "id", id, "algorithm", alg, "rows", g.Rows(), "cols", g.Cols())

	writeJSON(w, http.StatusCreated, snapshotOf(id, eng))
}

func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, snapshotOf(id, sess.eng))
}

func (s *server) handleStep(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	n := 1
	if v := r.URL.Query().Get("n"); v != "" {
		n, err = strconv.Atoi(v)
		if err != nil || n < 1 || n > maxStepsPerRequest {
			s.writeError(w, errors.Join(errBadRequest, errors.New("n must be in 1.."+strconv.Itoa(maxStepsPerRequest))))
			return
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if _, err = sess.eng.Step(); err != nil {
		s.writeError(w, err)
		return
	}
	for i := 1; i < n && sess.eng.State() == search.Running; i++ {
		if _, err = sess.eng.Step(); err != nil {
			s.writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, snapshotOf(id, sess.eng))
}

func (s *server) handleRun(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if _, err = sess.eng.RunToCompletion(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotOf(id, sess.eng))
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	sess.mu.Lock()
	sess.eng.Abandon()
	sess.mu.Unlock()
	s.logger.Debug("session deleted", "id", id)

	w.WriteHeader(http.StatusNoContent)
}

// writeError maps sentinel errors to status codes and a stable code string.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		status, code = http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, errSessionLimit):
		status, code = http.StatusTooManyRequests, "session_limit"
	case errors.Is(err, errNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, search.ErrPreconditionViolated):
		status, code = http.StatusConflict, "precondition_violated"
	case errors.Is(err, search.ErrInvalidConfiguration),
		errors.Is(err, errBadRequest),
		isMazeError(err):
		status, code = http.StatusBadRequest, "invalid_configuration"
	default:
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// isMazeError reports whether err comes from grid parsing, placement or generation.
func isMazeError(err error) bool {
	for _, target := range []error{
		maze.ErrTooSmall, maze.ErrOutOfBounds, maze.ErrBorder, maze.ErrOccupied,
		maze.ErrBadKind, maze.ErrNonRectangular, maze.ErrOpenBorder,
		maze.ErrUnknownCell, maze.ErrDuplicateEndpoint, maze.ErrLineTooLong,
		maze.ErrUnsolvable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
