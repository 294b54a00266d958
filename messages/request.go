package messages

// ChatRequest represents an inbound chat turn from a client.
// SessionID is required: every conversational identity supplies its own key.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}
