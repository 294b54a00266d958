package session

import (
	"sync"
	"time"

	"github.com/room4-2/OpenReserve/nlp"
)

// Flow is the session's active slot-filling flow.
type Flow int

const (
	FlowNone Flow = iota
	FlowAvailability
	FlowBooking
)

func (f Flow) String() string {
	switch f {
	case FlowAvailability:
		return "availability"
	case FlowBooking:
		return "booking"
	default:
		return "none"
	}
}

// Slots holds the information collected so far for the active flow.
// Fields are optional; a nil/empty value means "not yet provided".
type Slots struct {
	Date      *time.Time
	Time      *nlp.ClockTime
	Party     *int
	Name      string
	Email     string
	Mobile    string
	Reference string
}

// AvailabilityContext caches the last availability query so a "check
// availability" flow can promote into a booking flow without re-querying.
type AvailabilityContext struct {
	Date      time.Time
	PartySize int
	Times     []string // Open HH:MM:SS times
}

// Booking is the client-side projection of the externally authoritative
// booking record.
type Booking struct {
	Reference string
	Date      time.Time
	Time      nlp.ClockTime
	PartySize int
}

// Session is the per-identity conversational state. The orchestrator is the
// only writer; it holds the mutex for the whole turn, so turns for one
// session never interleave.
type Session struct {
	ID           string
	Flow         Flow
	Slots        Slots
	Availability *AvailabilityContext
	Current      *Booking
	Transcript   *Transcript
	CreatedAt    time.Time

	mu sync.Mutex

	// lastActivity has its own guard: the cleanup goroutine reads it
	// without taking the turn lock, which a turn can hold across slow
	// API calls.
	activityMu   sync.Mutex
	lastActivity time.Time
}

// New creates an empty session for the given identity.
func New(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Transcript:   NewTranscript(defaultTranscriptTurns),
		CreatedAt:    now,
		lastActivity: now,
	}
}

// Lock acquires the session for exclusive turn processing.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records activity, for TTL-based eviction.
func (s *Session) Touch() {
	s.activityMu.Lock()
	s.lastActivity = time.Now()
	s.activityMu.Unlock()
}

// LastSeen returns the time of the most recent activity.
func (s *Session) LastSeen() time.Time {
	s.activityMu.Lock()
	defer s.activityMu.Unlock()
	return s.lastActivity
}

// ClearFlow drops the active flow, its slots, and the cached availability
// context. The current-booking projection survives: abandoning a flow does
// not forget an already-confirmed reservation.
func (s *Session) ClearFlow() {
	s.Flow = FlowNone
	s.Slots = Slots{}
	s.Availability = nil
}

// Reset returns the session to its empty initial state unconditionally.
func (s *Session) Reset() {
	s.ClearFlow()
	s.Current = nil
	s.Transcript.Clear()
}
