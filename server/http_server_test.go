package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/room4-2/OpenReserve/assistant"
	"github.com/room4-2/OpenReserve/booking"
	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
	"github.com/room4-2/OpenReserve/session"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Port:           0,
		BaseURLPrefix:  "http://127.0.0.1:1/api/ConsumerApi/v1/Restaurant",
		Restaurant:     "TheHungryUnicorn",
		APIToken:       "t",
		MaxSessions:    10,
		SessionTimeout: time.Minute,
		RequestTimeout: time.Second,
		Timezone:       time.UTC,
	}
	log := logging.New(io.Discard, "silent")
	store := session.NewMemoryStore(cfg, log)
	api := booking.NewClient(cfg, log)
	asst := assistant.New(store, api, cfg, log)
	return NewHTTPServer(cfg, asst, store, api, log).httpServer.Handler
}

func postSend(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSend(t *testing.T) {
	h := testHandler(t)

	rec := postSend(t, h, `{"session_id":"s1","message":"help"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var reply struct {
		Reply  string `json:"reply"`
		Action string `json:"action"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "help_shown", reply.Action)
	assert.NotEmpty(t, reply.Reply)
}

func TestSend_RequiresSessionID(t *testing.T) {
	h := testHandler(t)

	rec := postSend(t, h, `{"message":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postSend(t, h, `{"session_id":"  ","message":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSend_RejectsBadRequests(t *testing.T) {
	h := testHandler(t)

	rec := postSend(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/send", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSend_SessionsPersistAcrossRequests(t *testing.T) {
	h := testHandler(t)

	rec := postSend(t, h, `{"session_id":"s1","message":"book a table"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reply struct {
		Action string `json:"action"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &reply))
	require.Equal(t, "ask_date", reply.Action)

	// Same session continues the flow; answering the date moves to time.
	rec = postSend(t, h, `{"session_id":"s1","message":"tomorrow"}`)
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "ask_time", reply.Action)

	// A different session starts fresh: a bare time still gets asked for a
	// date first.
	rec = postSend(t, h, `{"session_id":"s2","message":"7pm"}`)
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &reply))
	assert.Equal(t, "ask_date", reply.Action)
}

func TestHealth(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
