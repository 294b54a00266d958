package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/room4-2/OpenReserve/assistant"
	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
	"github.com/room4-2/OpenReserve/messages"
	"github.com/room4-2/OpenReserve/session"
)

// WSServer serves the streaming chat surface: one JSON ChatRequest per text
// frame in, one Reply per frame out.
type WSServer struct {
	httpServer *http.Server
	upgrader   websocket.Upgrader
	assistant  *assistant.Assistant
	store      *session.Store
	config     *config.Config
	log        *logging.Logger
}

// NewWSServer wires the WebSocket endpoint onto a configured http.Server.
func NewWSServer(cfg *config.Config, asst *assistant.Assistant, store *session.Store, log *logging.Logger) *WSServer {
	s := &WSServer{
		assistant: asst,
		store:     store,
		config:    cfg,
		log:       log.Sub("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  8 * 1024,
			WriteBufferSize: 8 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				for _, allowed := range cfg.AllowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.WSPort),
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	return s
}

// Start begins listening for connections.
func (s *WSServer) Start() error {
	s.log.Info().Int("port", s.config.WSPort).Msg("🚀 WebSocket server starting")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *WSServer) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("🛑 shutting down WebSocket server")
	return s.httpServer.Shutdown(ctx)
}

func (s *WSServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Frames without a session_id all share this connection-scoped identity.
	connID := uuid.NewString()
	s.log.Info().Str("conn", connID).Msg("✅ websocket connected")

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Str("conn", connID).Msg("websocket read failed")
			}
			break
		}

		var req messages.ChatRequest
		if err := sonic.Unmarshal(frame, &req); err != nil {
			s.writeReply(conn, messages.NewReply(messages.ActionError, "Invalid message format."))
			continue
		}
		if req.SessionID == "" {
			req.SessionID = connID
		}

		reply := s.assistant.HandleMessage(r.Context(), req.SessionID, req.Message)
		if !s.writeReply(conn, reply) {
			break
		}
	}

	s.log.Info().Str("conn", connID).Msg("🔌 websocket closed")
}

func (s *WSServer) writeReply(conn *websocket.Conn, reply *messages.Reply) bool {
	out, err := sonic.Marshal(reply)
	if err != nil {
		s.log.Error().Err(err).Msg("encode reply failed")
		return false
	}
	if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
		s.log.Warn().Err(err).Msg("websocket write failed")
		return false
	}
	return true
}

func (s *WSServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","sessions":%d}`, s.store.ActiveCount())
}
