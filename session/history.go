package session

import (
	"sync"
	"time"
)

const defaultTranscriptTurns = 50

// Turn is one transcript entry.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
	At   time.Time
}

// Transcript accumulates the most recent turns of a conversation, bounded
// so an unbounded chat cannot grow a session without limit.
type Transcript struct {
	turns []Turn
	max   int
	mu    sync.Mutex
}

// NewTranscript creates a transcript keeping at most max turns.
func NewTranscript(max int) *Transcript {
	return &Transcript{
		turns: make([]Turn, 0),
		max:   max,
	}
}

// Append records a turn, evicting the oldest once the cap is reached.
func (t *Transcript) Append(role, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turns = append(t.turns, Turn{Role: role, Text: text, At: time.Now()})
	if len(t.turns) > t.max {
		t.turns = t.turns[len(t.turns)-t.max:]
	}
}

// Turns returns a copy of the recorded turns in order.
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of recorded turns.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}

// Clear empties the transcript.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = make([]Turn, 0)
}
