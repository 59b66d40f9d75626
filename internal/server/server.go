// Package server runs character-creation sessions over WebSocket.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/dungeonkit/internal/antispam"
	"github.com/lawnchairsociety/dungeonkit/internal/config"
	"github.com/lawnchairsociety/dungeonkit/internal/creation"
	"github.com/lawnchairsociety/dungeonkit/internal/logger"
)

const shutdownNotice = "Server shutting down."

// SessionFactory builds a fresh session for one connection.
type SessionFactory func(remoteAddr string) *creation.Session

// Server accepts WebSocket connections on /ws and runs one creation session
// per connection.
type Server struct {
	cfg        config.ServerConfig
	newSession SessionFactory
	limiter    *ConnLimiter
	upgrader   websocket.Upgrader

	mu         sync.Mutex
	clients    map[Client]struct{}
	closing    bool
	httpServer *http.Server
	wg         sync.WaitGroup
}

// New creates a server. Nothing listens until ListenAndServe.
func New(cfg config.ServerConfig, factory SessionFactory) *Server {
	s := &Server{
		cfg:        cfg,
		newSession: factory,
		limiter:    NewConnLimiter(cfg),
		clients:    make(map[Client]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}
	return s
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)
	return mux
}

// ListenAndServe blocks serving the configured address until Shutdown.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	logger.Info("WebSocket server listening", "address", s.cfg.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections, then closes open sessions and waits for
// their goroutines to finish or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	srv := s.httpServer
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}

	s.mu.Lock()
	open := make([]Client, 0, len(s.clients))
	for c := range s.clients {
		open = append(open, c)
	}
	s.mu.Unlock()

	for _, c := range open {
		c.WriteLine(shutdownNotice)
		c.Close()
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

func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	clientIP := getRealIP(r)

	if !s.limiter.TryAcquire(clientIP) {
		logger.Warning("WebSocket connection rejected - limit exceeded",
			"remote_addr", r.RemoteAddr,
			"client_ip", clientIP)
		http.Error(w, "Too many connections. Please try again later.", http.StatusTooManyRequests)
		return
	}

	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", "error", err)
		s.limiter.Release(clientIP)
		return
	}
	if s.cfg.MaxMessageSize > 0 {
		wsConn.SetReadLimit(s.cfg.MaxMessageSize)
	}

	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		s.limiter.Release(clientIP)
		wsConn.Close()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	go func() {
		defer s.wg.Done()
		defer s.limiter.Release(clientIP)
		s.handleClient(NewWebSocketClient(wsConn))
	}()
}

// handleClient runs a session until it finishes or the client goes away.
func (s *Server) handleClient(c Client) {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		c.WriteLine(shutdownNotice)
		c.Close()
		return
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		c.Close()
	}()

	addr := c.RemoteAddr()
	logger.Info("Creation session started", "remote_addr", addr)
	session := s.newSession(addr)
	throttle := antispam.NewTracker(antispam.Config{
		MaxCommands: s.cfg.MaxCommands,
		Window:      s.cfg.CommandWindow,
	})

	if err := c.WriteLine(session.Greeting()); err != nil {
		return
	}
	for !session.Done() {
		line, err := c.ReadLine()
		if err != nil {
			logger.Debug("Creation session closed by client", "remote_addr", addr, "error", err)
			return
		}
		if res := throttle.Check(); !res.Allowed {
			logger.Debug("Command throttled", "remote_addr", addr, "wait_seconds", res.WaitSeconds)
			if err := c.WriteLine(res.Reason); err != nil {
				return
			}
			continue
		}
		if reply := session.Execute(line); reply != "" {
			if err := c.WriteLine(reply); err != nil {
				return
			}
		}
	}
	logger.Info("Creation session finished", "remote_addr", addr, "scene", session.Scene())
}

// ActiveSessions returns the number of connected clients.
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
