// Package web serves Red Light, Green Light to browsers over websockets.
//
// Every connection gets its own session. The browser sends key presses
// and releases as JSON and receives the field layout once, then a
// snapshot whenever the session changes.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/redlight-arcade/internal/config"
	"github.com/vovakirdan/redlight-arcade/internal/core"
	"github.com/vovakirdan/redlight-arcade/internal/games/redlight"
	"github.com/vovakirdan/redlight-arcade/internal/storage"
)

// Config holds websocket server configuration.
type Config struct {
	Address        string   // Listen address (e.g., ":8080")
	Path           string   // Websocket endpoint (default "/ws")
	FrameRate      int      // Session frames per second (default 30)
	Seed           int64    // RNG seed for every session, 0 for time-based
	AllowedOrigins []string // Empty allows any origin
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Address:   ":8080",
		Path:      "/ws",
		FrameRate: 30,
	}
}

// Server accepts websocket connections and runs a session for each.
type Server struct {
	cfg      Config
	game     config.RedLightConfig
	store    *storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	clients map[*Client]struct{}
}

// NewServer creates a server for the given game configuration.
// store may be nil to disable result saving.
func NewServer(cfg Config, game config.RedLightConfig, store *storage.Store, logger *log.Logger) (*Server, error) {
	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	if cfg.Path == "" {
		cfg.Path = "/ws"
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:     cfg,
		game:    game,
		store:   store,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		clients: make(map[*Client]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s, nil
}

// Handler returns the HTTP handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, "ok %d\n", s.Clients())
	})
	return mux
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(s.cfg.AllowedOrigins, r.Header.Get("Origin"))
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c, err := s.newClient(conn, r.RemoteAddr)
	if err != nil {
		s.logger.Error("could not create session", "remote", r.RemoteAddr, "error", err)
		conn.Close()
		return
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	c.logger.Info("client connected")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		c.run(s.ctx)

		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		c.logger.Info("client disconnected")
	}()
	go c.writePump()
	go c.readPump()
}

func (s *Server) newClient(conn *websocket.Conn, remote string) (*Client, error) {
	c := &Client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		inbox:  make(chan ClientMessage, inboxBuffer),
		done:   make(chan struct{}),
		clock:  core.NewManualClock(),
		frame:  time.Second / time.Duration(s.cfg.FrameRate),
		store:  s.store,
		logger: s.logger.With("remote", remote),
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := redlight.Options{
		GameID:       redlight.GameID,
		Clock:        c.clock,
		Random:       redlight.NewRandomRange(seed),
		Logger:       c.logger,
		OnTransition: c.onTransition,
	}
	if s.store != nil {
		opts.Progress = s.store
	}

	session, err := redlight.NewSession(s.game, opts)
	if err != nil {
		return nil, err
	}
	c.session = session
	return c, nil
}

// Clients returns the number of connected browsers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.httpSrv = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("starting websocket server", "address", s.cfg.Address, "path", s.cfg.Path)

	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

// Shutdown ends every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return err
}
