package assistant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/room4-2/OpenReserve/booking"
	"github.com/room4-2/OpenReserve/messages"
	"github.com/room4-2/OpenReserve/nlp"
	"github.com/room4-2/OpenReserve/session"
)

const (
	minPartySize = 1
	maxPartySize = 20

	// Reason 1 is "customer request". The API accepts ids 1 through 5 but
	// nothing in the conversation distinguishes them, so every cancellation
	// goes out with the same one.
	cancellationReason = 1
	minCancelReason    = 1
	maxCancelReason    = 5
)

// Guest details used when the conversation never captured real contact info.
const (
	defaultFirstName = "Guest"
	defaultSurname   = "Guest"
	defaultEmail     = "guest@example.com"
	defaultMobile    = "0000000000"
)

// continueBooking handles a turn while a booking is being assembled: this
// turn's entities land in the slots, then the flow advances.
func (a *Assistant) continueBooking(ctx context.Context, sess *session.Session, ents nlp.Entities, now time.Time) *messages.Reply {
	fillBookingSlots(sess, ents)
	return a.advanceBooking(ctx, sess, now)
}

// advanceBooking asks for the first missing slot in date, time, party order;
// once all three are present it resolves availability and executes. Slots
// stay filled across failures so a retry never re-asks answered questions.
func (a *Assistant) advanceBooking(ctx context.Context, sess *session.Session, now time.Time) *messages.Reply {
	if sess.Slots.Date == nil {
		return askBookingDateReply()
	}
	if sess.Slots.Time == nil {
		return askTimeReply()
	}
	if sess.Slots.Party == nil {
		return askPartyReply()
	}

	date := *sess.Slots.Date
	clock := *sess.Slots.Time
	party := *sess.Slots.Party

	if date.Before(startOfDay(now)) {
		sess.Slots.Date = nil
		return pastDateReply()
	}
	if party < minPartySize || party > maxPartySize {
		sess.Slots.Party = nil
		return partySizeReply()
	}

	times, err := a.openTimes(ctx, sess, date, party)
	if err != nil {
		return a.apiReply(err)
	}
	if len(times) == 0 {
		return noAvailabilityReply(date, party)
	}

	want := clock.String()
	if !slices.Contains(times, want) {
		offers := a.alternatives(ctx, date, party, times, now)
		sess.Slots.Time = nil
		return timeUnavailableReply(date, clock, offers)
	}

	return a.executeBooking(ctx, sess, date, clock, party)
}

// executeBooking creates the reservation and records the projection. On
// failure the flow and slots are untouched, so the next turn retries.
func (a *Assistant) executeBooking(ctx context.Context, sess *session.Session, date time.Time, clock nlp.ClockTime, party int) *messages.Reply {
	first, last := splitName(sess.Slots.Name)
	req := booking.CreateRequest{
		VisitDate: date.Format(dateLayout),
		VisitTime: clock.String(),
		PartySize: party,
		FirstName: first,
		Surname:   last,
		Email:     orDefault(sess.Slots.Email, defaultEmail),
		Mobile:    orDefault(sess.Slots.Mobile, defaultMobile),
	}

	data, ref, err := a.api.CreateBooking(ctx, req)
	if err != nil {
		return a.apiReply(err)
	}

	// The flow's slots are spent: clearing them means the next booking
	// request starts from ask_date instead of silently re-booking the same
	// table. Only the reference survives, alongside the projection.
	sess.Slots = session.Slots{Reference: ref}
	sess.Current = &session.Booking{
		Reference: ref,
		Date:      date,
		Time:      clock,
		PartySize: party,
	}
	sess.Flow = session.FlowNone
	sess.Availability = nil

	return bookingCreatedReply(sess.Current, data)
}

// showBooking surfaces the current reservation, refreshed from the API.
func (a *Assistant) showBooking(ctx context.Context, sess *session.Session) *messages.Reply {
	cur := sess.Current
	if cur == nil {
		return noBookingReply()
	}

	data, err := a.api.GetBooking(ctx, cur.Reference)
	if err != nil {
		return a.apiReply(err)
	}
	return bookingInfoReply(cur, data)
}

// modifyBooking patches the current reservation with whatever this turn
// carried. With no usable entities it asks what should change.
func (a *Assistant) modifyBooking(ctx context.Context, sess *session.Session, ents nlp.Entities, now time.Time) *messages.Reply {
	cur := sess.Current
	if cur == nil {
		return noBookingReply()
	}
	if ents.Date == nil && ents.Clock == nil && ents.Party == nil {
		return askModificationReply()
	}

	var patch booking.Patch
	if ents.Date != nil {
		if ents.Date.Before(startOfDay(now)) {
			return pastDateReply()
		}
		patch.VisitDate = ents.Date.Format(dateLayout)
	}
	if ents.Clock != nil {
		patch.VisitTime = ents.Clock.String()
	}
	if ents.Party != nil {
		if *ents.Party < minPartySize || *ents.Party > maxPartySize {
			return partySizeReply()
		}
		patch.PartySize = *ents.Party
	}

	data, err := a.api.UpdateBooking(ctx, cur.Reference, patch)
	if err != nil {
		return a.apiReply(err)
	}

	if ents.Date != nil {
		cur.Date = *ents.Date
	}
	if ents.Clock != nil {
		cur.Time = *ents.Clock
	}
	if ents.Party != nil {
		cur.PartySize = *ents.Party
	}
	return bookingModifiedReply(cur, data)
}

// cancelBooking cancels the current reservation and drops the projection.
func (a *Assistant) cancelBooking(ctx context.Context, sess *session.Session) *messages.Reply {
	cur := sess.Current
	if cur == nil {
		return noBookingReply()
	}
	if cancellationReason < minCancelReason || cancellationReason > maxCancelReason {
		return messages.NewValidationError("Invalid cancellation reason.")
	}

	data, err := a.api.CancelBooking(ctx, cur.Reference, cancellationReason)
	if err != nil {
		return a.apiReply(err)
	}

	cancelled := *cur
	sess.Current = nil
	sess.Slots.Reference = ""
	return bookingCancelledReply(&cancelled, data)
}

// apiReply maps an outbound failure onto a user-facing reply, keeping API
// rejections distinct from transport failures.
func (a *Assistant) apiReply(err error) *messages.Reply {
	var apiErr *booking.APIError
	if errors.As(err, &apiErr) {
		a.log.Warn().Int("status", apiErr.Status).Str("detail", apiErr.Detail).Msg("booking api rejected request")
		return messages.NewAPIError(fmt.Sprintf("Sorry, the booking service returned an error (%d). Please try again.", apiErr.Status))
	}
	a.log.Error().Err(err).Msg("booking api unreachable")
	return messages.NewNetworkError("Sorry, I couldn't reach the booking service. Please try again in a moment.")
}

// splitName splits a captured name into first/surname, falling back to the
// guest placeholders.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultFirstName, defaultSurname
	}
	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0], defaultSurname
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
