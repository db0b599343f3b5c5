package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/todo-knk/xibalba/internal/engine"
	"github.com/todo-knk/xibalba/internal/version"
	"github.com/todo-knk/xibalba/pkg/logger"
)

type Server struct {
	Service *engine.GameService
	Port    string

	mu         sync.Mutex
	controller string
	http       *http.Server
}

func New(svc *engine.GameService, port string) *Server {
	return &Server{
		Service: svc,
		Port:    port,
	}
}

// Handler собирает маршруты сервера.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	NewDebugHandler(s.Service).RegisterRoutes(mux)
	return mux
}

// Run запускает HTTP сервер и блокируется до Shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Component("http").Infof("Xibalba server running on :%s", s.Port)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// claim делает сессию контроллером, если место свободно.
func (s *Server) claim(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller != "" {
		return false
	}
	s.controller = sessionID
	return true
}

// Reserve занимает место контроллера за внутренней сессией (бот).
// Все подключившиеся клиенты тогда становятся зрителями.
func (s *Server) Reserve(sessionID string) bool {
	return s.claim(sessionID)
}

func (s *Server) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controller == sessionID {
		s.controller = ""
	}
}

func (s *Server) isController(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller == sessionID
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Component("http").WithError(err).Error("websocket upgrade failed")
		return
	}

	client := NewClient(s, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(version.Info())
}
