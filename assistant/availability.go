package assistant

import (
	"context"
	"time"

	"github.com/room4-2/OpenReserve/messages"
	"github.com/room4-2/OpenReserve/nlp"
	"github.com/room4-2/OpenReserve/session"
)

const dateLayout = "2006-01-02"

// availabilityNext asks for the first missing search slot, or runs the query.
func (a *Assistant) availabilityNext(ctx context.Context, sess *session.Session, now time.Time) *messages.Reply {
	if sess.Slots.Date == nil {
		return askAvailabilityDateReply()
	}
	if sess.Slots.Party == nil {
		return askPartyReply()
	}
	return a.runAvailability(ctx, sess, now)
}

// continueAvailability handles a turn while an availability search is in
// progress. A concrete time, or a party size once results are already on the
// table, signals commitment: the session promotes to a booking flow seeded
// from the cached context so nothing already answered is asked again.
func (a *Assistant) continueAvailability(ctx context.Context, sess *session.Session, ents nlp.Entities, now time.Time) *messages.Reply {
	if ents.Clock != nil || (ents.Party != nil && sess.Availability != nil) {
		avail := sess.Availability
		sess.Flow = session.FlowBooking
		if avail != nil {
			if sess.Slots.Date == nil {
				d := avail.Date
				sess.Slots.Date = &d
			}
			if sess.Slots.Party == nil && avail.PartySize > 0 {
				p := avail.PartySize
				sess.Slots.Party = &p
			}
		}
		fillBookingSlots(sess, ents)
		return a.advanceBooking(ctx, sess, now)
	}

	fillAvailabilitySlots(sess, ents)
	return a.availabilityNext(ctx, sess, now)
}

// runAvailability validates the collected slots, queries the API and caches
// the result. Slots survive a no-availability answer so the user can pivot
// with just a new date.
func (a *Assistant) runAvailability(ctx context.Context, sess *session.Session, now time.Time) *messages.Reply {
	date := *sess.Slots.Date
	party := *sess.Slots.Party

	if date.Before(startOfDay(now)) {
		sess.Slots.Date = nil
		return pastDateReply()
	}
	if party < minPartySize || party > maxPartySize {
		sess.Slots.Party = nil
		return partySizeReply()
	}

	result, err := a.api.SearchAvailability(ctx, date.Format(dateLayout), party)
	if err != nil {
		return a.apiReply(err)
	}

	times := result.OpenTimes()
	sess.Availability = &session.AvailabilityContext{Date: date, PartySize: party, Times: times}

	if len(times) == 0 {
		return noAvailabilityReply(date, party)
	}
	return availabilityFoundReply(date, party, times, result.Raw)
}

// openTimes resolves the open slots for a date and party size, reusing the
// cached availability context when it matches so a check-then-book sequence
// costs a single search.
func (a *Assistant) openTimes(ctx context.Context, sess *session.Session, date time.Time, party int) ([]string, error) {
	if av := sess.Availability; av != nil && sameDay(av.Date, date) && av.PartySize == party {
		return av.Times, nil
	}

	result, err := a.api.SearchAvailability(ctx, date.Format(dateLayout), party)
	if err != nil {
		return nil, err
	}
	times := result.OpenTimes()
	sess.Availability = &session.AvailabilityContext{Date: date, PartySize: party, Times: times}
	return times, nil
}

// dayTimes is one day's worth of alternative slots.
type dayTimes struct {
	Date  time.Time
	Times []string
}

// alternatives assembles nearby options when the requested time is taken:
// up to four other times the same day, plus up to three each from the
// adjacent days. A failed adjacent-day search is skipped, not fatal.
func (a *Assistant) alternatives(ctx context.Context, date time.Time, party int, sameDayTimes []string, now time.Time) []dayTimes {
	var offers []dayTimes
	if len(sameDayTimes) > 0 {
		offers = append(offers, dayTimes{Date: date, Times: capTimes(sameDayTimes, 4)})
	}

	today := startOfDay(now)
	for _, delta := range []int{-1, 1} {
		d := date.AddDate(0, 0, delta)
		if d.Before(today) {
			continue
		}
		result, err := a.api.SearchAvailability(ctx, d.Format(dateLayout), party)
		if err != nil {
			a.log.Warn().Err(err).Str("date", d.Format(dateLayout)).Msg("alternative day search failed")
			continue
		}
		if times := result.OpenTimes(); len(times) > 0 {
			offers = append(offers, dayTimes{Date: d, Times: capTimes(times, 3)})
		}
	}
	return offers
}

func capTimes(times []string, n int) []string {
	if len(times) <= n {
		return times
	}
	return times[:n]
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
