// Package assistant is the dialogue engine: intent dispatch, per-session
// slot filling, availability resolution and booking execution. One call to
// HandleMessage processes one turn to completion.
package assistant

import (
	"context"
	"time"

	"github.com/room4-2/OpenReserve/booking"
	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
	"github.com/room4-2/OpenReserve/messages"
	"github.com/room4-2/OpenReserve/nlp"
	"github.com/room4-2/OpenReserve/session"
)

// BookingAPI is the outbound surface of the reservation API the engine
// depends on. *booking.Client satisfies it; tests substitute a fake.
type BookingAPI interface {
	SearchAvailability(ctx context.Context, visitDate string, partySize int) (*booking.AvailabilityResult, error)
	CreateBooking(ctx context.Context, req booking.CreateRequest) (map[string]any, string, error)
	GetBooking(ctx context.Context, reference string) (map[string]any, error)
	UpdateBooking(ctx context.Context, reference string, patch booking.Patch) (map[string]any, error)
	CancelBooking(ctx context.Context, reference string, reasonID int) (map[string]any, error)
}

// Assistant drives conversations. The session store is the only mutable
// state; the assistant itself is safe for concurrent use across sessions.
type Assistant struct {
	store *session.Store
	api   BookingAPI
	cfg   *config.Config
	log   *logging.Logger
	now   func() time.Time
}

// New creates an assistant.
func New(store *session.Store, api BookingAPI, cfg *config.Config, log *logging.Logger) *Assistant {
	return &Assistant{
		store: store,
		api:   api,
		cfg:   cfg,
		log:   log.Sub("assistant"),
		now:   time.Now,
	}
}

// HandleMessage processes one turn for the given session and returns the
// reply. It never panics out: a malformed or unexpected input yields an
// error reply, not a dead turn loop.
func (a *Assistant) HandleMessage(ctx context.Context, sessionID, text string) (reply *messages.Reply) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Any("panic", r).Str("session", sessionID).Msg("turn panicked")
			reply = messages.NewReply(messages.ActionError, "Sorry, I encountered an unexpected error. Please try again.")
		}
	}()

	sess, err := a.store.GetOrCreate(ctx, sessionID)
	if err != nil {
		return messages.NewReply(messages.ActionError, "Sorry, I couldn't start a session: "+err.Error())
	}

	// One exclusive writer per session per turn.
	sess.Lock()
	defer sess.Unlock()
	defer a.store.Touch(ctx, sess)

	now := a.now().In(a.cfg.Timezone)
	ents := nlp.Extract(text, now)
	intent := nlp.Classify(text, ents)

	a.log.Debug().Str("session", sessionID).Str("intent", intent.String()).
		Str("flow", sess.Flow.String()).Msg("turn")

	sess.Transcript.Append("user", text)
	reply = a.dispatch(ctx, sess, intent, ents, now)
	sess.Transcript.Append("assistant", reply.Reply)
	return reply
}

// dispatch routes a turn. Explicit intents always beat an in-progress flow;
// Book and Unknown are offered to the current flow first (the continuation
// rule), so "tomorrow" or "8pm" answers a pending question without the user
// repeating the whole request.
func (a *Assistant) dispatch(ctx context.Context, sess *session.Session, intent nlp.Intent, ents nlp.Entities, now time.Time) *messages.Reply {
	switch intent {
	case nlp.IntentReset:
		sess.Reset()
		return resetReply()

	case nlp.IntentHelp:
		sess.ClearFlow()
		return helpReply()

	case nlp.IntentCheckAvailability:
		sess.ClearFlow()
		sess.Flow = session.FlowAvailability
		fillAvailabilitySlots(sess, ents)
		return a.availabilityNext(ctx, sess, now)

	case nlp.IntentShowBooking:
		sess.ClearFlow()
		return a.showBooking(ctx, sess)

	case nlp.IntentModifyBooking:
		sess.ClearFlow()
		return a.modifyBooking(ctx, sess, ents, now)

	case nlp.IntentCancelBooking:
		sess.ClearFlow()
		return a.cancelBooking(ctx, sess)
	}

	// Book or Unknown: continuation first.
	switch sess.Flow {
	case session.FlowBooking:
		return a.continueBooking(ctx, sess, ents, now)
	case session.FlowAvailability:
		return a.continueAvailability(ctx, sess, ents, now)
	}

	if intent == nlp.IntentBook {
		sess.Flow = session.FlowBooking
		fillBookingSlots(sess, ents)
		return a.advanceBooking(ctx, sess, now)
	}

	return defaultReply()
}

// fillBookingSlots copies this turn's entities into the session slots.
func fillBookingSlots(sess *session.Session, ents nlp.Entities) {
	if ents.Date != nil {
		sess.Slots.Date = ents.Date
	}
	if ents.Clock != nil {
		sess.Slots.Time = ents.Clock
	}
	if ents.Party != nil {
		sess.Slots.Party = ents.Party
	}
	if ents.Name != "" {
		sess.Slots.Name = ents.Name
	}
	if ents.Email != "" {
		sess.Slots.Email = ents.Email
	}
	if ents.Mobile != "" {
		sess.Slots.Mobile = ents.Mobile
	}
}

// fillAvailabilitySlots copies only the slots an availability search consumes.
func fillAvailabilitySlots(sess *session.Session, ents nlp.Entities) {
	if ents.Date != nil {
		sess.Slots.Date = ents.Date
	}
	if ents.Party != nil {
		sess.Slots.Party = ents.Party
	}
}
