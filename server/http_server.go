// Package server exposes the assistant over HTTP and WebSocket transports.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/room4-2/OpenReserve/assistant"
	"github.com/room4-2/OpenReserve/booking"
	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
	"github.com/room4-2/OpenReserve/messages"
	"github.com/room4-2/OpenReserve/session"
)

// HTTPServer serves the request/response chat surface.
type HTTPServer struct {
	httpServer *http.Server
	assistant  *assistant.Assistant
	store      *session.Store
	api        *booking.Client
	config     *config.Config
	log        *logging.Logger
}

// NewHTTPServer wires the chat endpoints onto a configured http.Server.
func NewHTTPServer(cfg *config.Config, asst *assistant.Assistant, store *session.Store, api *booking.Client, log *logging.Logger) *HTTPServer {
	s := &HTTPServer{
		assistant: asst,
		store:     store,
		api:       api,
		config:    cfg,
		log:       log.Sub("http"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/send", s.handleSend)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		// A single turn can fan out several upstream calls when hunting
		// for alternative slots, so the write side gets headroom.
		WriteTimeout: 60 * time.Second,
	}

	return s
}

// Start begins listening for connections.
func (s *HTTPServer) Start() error {
	s.log.Info().Int("port", s.config.Port).Msg("🚀 HTTP server starting")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("🛑 shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *HTTPServer) handleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 64*1024))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	var req messages.ChatRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	reply := s.assistant.HandleMessage(r.Context(), req.SessionID, req.Message)
	writeJSON(w, http.StatusOK, reply)
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	apiUp := s.api.Ping(ctx) == nil
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"api_connected": apiUp,
		"sessions":      s.store.ActiveCount(),
	})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, s.store.ActiveCount())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	out, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encoding failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
