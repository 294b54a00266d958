package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/room4-2/OpenReserve/assistant"
	"github.com/room4-2/OpenReserve/booking"
	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
	"github.com/room4-2/OpenReserve/session"
)

func dialTestWS(t *testing.T) *websocket.Conn {
	t.Helper()
	cfg := &config.Config{
		BaseURLPrefix:  "http://127.0.0.1:1/api/ConsumerApi/v1/Restaurant",
		Restaurant:     "TheHungryUnicorn",
		APIToken:       "t",
		MaxSessions:    10,
		SessionTimeout: time.Minute,
		RequestTimeout: time.Second,
		AllowedOrigins: []string{"*"},
		Timezone:       time.UTC,
	}
	log := logging.New(io.Discard, "silent")
	store := session.NewMemoryStore(cfg, log)
	api := booking.NewClient(cfg, log)
	asst := assistant.New(store, api, cfg, log)
	srv := NewWSServer(cfg, asst, store, log)

	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, payload string) (string, string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))

	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var reply struct {
		Reply  string `json:"reply"`
		Action string `json:"action"`
	}
	require.NoError(t, sonic.Unmarshal(frame, &reply))
	return reply.Action, reply.Reply
}

func TestWebSocketChat(t *testing.T) {
	conn := dialTestWS(t)

	action, text := roundTrip(t, conn, `{"message":"help"}`)
	assert.Equal(t, "help_shown", action)
	assert.NotEmpty(t, text)
}

// Frames without a session_id share the connection's identity, so a flow
// started in one frame continues in the next.
func TestWebSocketConnectionSession(t *testing.T) {
	conn := dialTestWS(t)

	action, _ := roundTrip(t, conn, `{"message":"book a table"}`)
	require.Equal(t, "ask_date", action)

	action, _ = roundTrip(t, conn, `{"message":"tomorrow"}`)
	assert.Equal(t, "ask_time", action)
}

func TestWebSocketInvalidFrame(t *testing.T) {
	conn := dialTestWS(t)

	action, _ := roundTrip(t, conn, `{not json`)
	assert.Equal(t, "error", action)
}
