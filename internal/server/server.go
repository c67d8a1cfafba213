// Package server hosts one poker table: the WebSocket endpoints, the
// session loop that owns all game state, the per-seat decision clock
// and the spectator broadcast pipeline.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Server accepts WebSocket upgrades and hands the connections to the
// session. Bots dial /ws, spectators and operators /spectate; the roles
// are decided by the hello frame, so either path accepts either role.
type Server struct {
	cfg      Config
	session  *Session
	upgrader websocket.Upgrader
	httpSrv  *http.Server
	logger   *log.Logger
}

// NewServer creates the HTTP front for a session.
func NewServer(cfg Config, session *Session, metrics *Metrics, logger *log.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		session: session,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Bots connect from anywhere, there is no browser origin
				// to check.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.WithPrefix("server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/spectate", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", metrics.Handler())
	s.httpSrv = &http.Server{Addr: cfg.Addr, Handler: mux}

	return s
}

// ListenAndServe serves until Shutdown is called. A server closed by
// Shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting WebSocket server", "addr", s.cfg.Addr)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and unblocks ListenAndServe.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// handleWebSocket upgrades a request and starts the connection pumps.
// Everything after the upgrade is driven by the session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := newConn(ws, s.logger)
	s.logger.Debug("Client connected", "conn", conn.ID(), "path", r.URL.Path, "remote", r.RemoteAddr)

	go conn.writePump()
	go conn.readPump(s.session.post)
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}
