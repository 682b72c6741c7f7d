// Package web serves Flappy Ostrich over WebSocket. Every connection gets
// its own game driven by an engine; state frames are msgpack-encoded and
// player commands arrive as small JSON envelopes.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/flappy-ostrich/internal/config"
	"github.com/vovakirdan/flappy-ostrich/internal/engine"
	"github.com/vovakirdan/flappy-ostrich/internal/games/ostrich"
	"github.com/vovakirdan/flappy-ostrich/internal/storage"
)

const (
	defaultFPS   = 30
	maxSessions  = 64
	scoresLimit  = 10
	shutdownWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Options configures a Server.
type Options struct {
	Config config.OstrichConfig
	Store  *storage.Store // Shared by all sessions; nil disables persistence
	FPS    int            // Per-session frame rate (default 30)
	Logger *log.Logger    // nil discards
}

// Server hosts one game per WebSocket connection.
type Server struct {
	opts   Options
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	clients map[string]*Client
	wg      sync.WaitGroup
}

// NewServer creates a Server. Sessions are cancelled by Close.
func NewServer(opts Options) *Server {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		opts:    opts,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		clients: make(map[string]*Client),
	}
}

// Sessions returns the number of connected players.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "ok %d\n", s.Sessions())
	})
	mux.HandleFunc("/scores", s.handleScores)
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.Sessions() >= maxSessions {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade error", "error", err)
		return
	}

	id := uuid.NewString()
	logger := s.logger.With("session", id)

	gameOpts := []ostrich.Option{
		ostrich.WithErrorHandler(func(op string, err error) {
			logger.Warn("storage failure", "op", op, "error", err)
		}),
	}
	if s.opts.Store != nil {
		gameOpts = append(gameOpts, ostrich.WithStore(s.opts.Store))
	}
	game := ostrich.New(s.opts.Config, gameOpts...)
	eng := engine.New(game, engine.Options{FPS: s.opts.FPS, Logger: logger})
	client := NewClient(id, conn, eng, logger)

	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[id] = client
	s.wg.Add(1)
	s.mu.Unlock()
	logger.Info("session started", "remote", extractIP(r))

	go func() {
		defer s.wg.Done()
		client.Serve(s.ctx, NewWelcomeMsg(id, s.opts.Config))

		s.mu.Lock()
		delete(s.clients, id)
		s.mu.Unlock()
		logger.Info("session ended")
	}()
}

// ScoreEntry is one row of the /scores response.
type ScoreEntry struct {
	RunID      string    `json:"run_id"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

// handleScores lists the best runs, optionally filtered by ?difficulty= and
// capped by ?limit=.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		http.Error(w, "scores unavailable", http.StatusNotFound)
		return
	}

	limit := scoresLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = min(n, 100)
	}

	difficulty := r.URL.Query().Get("difficulty")
	if difficulty != "" {
		tier, ok := config.ParseTier(difficulty)
		if !ok {
			http.Error(w, "unknown difficulty", http.StatusBadRequest)
			return
		}
		difficulty = string(tier)
	}

	entries, err := s.opts.Store.TopScores(difficulty, limit)
	if err != nil {
		s.logger.Error("load scores", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]ScoreEntry, len(entries))
	for i, e := range entries {
		out[i] = ScoreEntry{RunID: e.RunID, Score: e.Score, Difficulty: e.Difficulty, CreatedAt: e.CreatedAt}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Warn("write scores", "error", err)
	}
}

// ListenAndServe serves on addr until ctx is done, then closes every session.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.Close()
		if ok {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close ends every session and waits for them to finish.
func (s *Server) Close() {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	s.wg.Wait()
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
