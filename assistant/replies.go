package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/room4-2/OpenReserve/messages"
	"github.com/room4-2/OpenReserve/nlp"
	"github.com/room4-2/OpenReserve/session"
)

const displayDateLayout = "Monday, January 2, 2006"

func displayDate(d time.Time) string {
	return d.Format(displayDateLayout)
}

func displayClock(c nlp.ClockTime) string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// displayTime shortens a wire HH:MM:SS time for humans.
func displayTime(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

func guestsWord(n int) string {
	if n == 1 {
		return "guest"
	}
	return "guests"
}

func resetReply() *messages.Reply {
	return messages.NewReply(messages.ActionReset,
		"🔄 I've cleared our conversation. How can I help you today?")
}

func helpReply() *messages.Reply {
	return messages.NewReply(messages.ActionHelpShown,
		"🍽️ Here's what I can do:\n"+
			"• Check availability: \"Do you have a table for 4 tomorrow?\"\n"+
			"• Book a table: \"Book a table for 2 on Friday at 7pm\"\n"+
			"• Show your booking: \"Show my booking\"\n"+
			"• Change a booking: \"Change to 8pm\"\n"+
			"• Cancel a booking: \"Cancel the booking\"\n"+
			"Just tell me what you'd like to do!")
}

func defaultReply() *messages.Reply {
	return messages.NewReply(messages.ActionDefault,
		"I can help you check availability, book a table, or manage an existing reservation. What would you like to do?")
}

func askAvailabilityDateReply() *messages.Reply {
	return messages.NewReply(messages.ActionAskDate,
		"I'd be happy to check availability for you! 📅 What date would you like to dine? (e.g., 'tomorrow', 'August 6th' or '2025-08-06')")
}

func askBookingDateReply() *messages.Reply {
	return messages.NewReply(messages.ActionAskDate,
		"Great, let's get you a table! 📅 What date would you like to come in?")
}

func askTimeReply() *messages.Reply {
	return messages.NewReply(messages.ActionAskTime,
		"🕐 What time would you like? (e.g., '7:30 PM' or '19:30')")
}

func askPartyReply() *messages.Reply {
	return messages.NewReply(messages.ActionAskParty,
		"👥 How many people will be joining?")
}

func askModificationReply() *messages.Reply {
	return messages.NewReply(messages.ActionAskModification,
		"✏️ What would you like to change? You can give me a new date, time, or party size.")
}

func pastDateReply() *messages.Reply {
	return messages.NewValidationError("That date is in the past. Please choose a future date.")
}

func partySizeReply() *messages.Reply {
	return messages.NewValidationError(
		fmt.Sprintf("Party size must be between %d and %d people.", minPartySize, maxPartySize))
}

func noBookingReply() *messages.Reply {
	return messages.NewReply(messages.ActionNoBooking,
		"🔍 I couldn't find a booking in this conversation. Would you like to make one?")
}

func availabilityFoundReply(date time.Time, party int, times []string, raw map[string]any) *messages.Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Here's what's open on %s for %d %s:\n", displayDate(date), party, guestsWord(party))
	for _, t := range capTimes(times, 8) {
		fmt.Fprintf(&b, "• %s\n", displayTime(t))
	}
	b.WriteString("Just tell me a time and I'll book it! 🕐")

	r := messages.NewDataReply(messages.ActionAvailabilityFound, b.String(), raw)
	r.HTML = timesHTML(times)
	return r
}

func noAvailabilityReply(date time.Time, party int) *messages.Reply {
	return messages.NewReply(messages.ActionNoAvailability,
		fmt.Sprintf("😔 I'm sorry, there are no tables for %d %s on %s. Would you like to try another date?",
			party, guestsWord(party), displayDate(date)))
}

func timeUnavailableReply(date time.Time, want nlp.ClockTime, offers []dayTimes) *messages.Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "😔 %s isn't available on %s.", displayClock(want), displayDate(date))
	if len(offers) == 0 {
		b.WriteString(" I couldn't find nearby alternatives either. Would you like to try a different date?")
		return messages.NewReply(messages.ActionTimeUnavailable, b.String())
	}

	b.WriteString(" Here are the closest options:\n")
	for _, day := range offers {
		short := make([]string, 0, len(day.Times))
		for _, t := range day.Times {
			short = append(short, displayTime(t))
		}
		fmt.Fprintf(&b, "📅 %s: %s\n", displayDate(day.Date), strings.Join(short, ", "))
	}
	b.WriteString("Which time works for you?")

	r := messages.NewReply(messages.ActionTimeUnavailable, b.String())
	if sameDayFirst(offers, date) {
		r.HTML = timesHTML(offers[0].Times)
	}
	return r
}

func sameDayFirst(offers []dayTimes, date time.Time) bool {
	return len(offers) > 0 && sameDay(offers[0].Date, date)
}

func bookingCreatedReply(b *session.Booking, data map[string]any) *messages.Reply {
	text := fmt.Sprintf("🎉 Your table is booked!\n"+
		"📋 Reference: %s\n"+
		"📅 %s\n"+
		"🕐 %s\n"+
		"👥 %d %s\n"+
		"We look forward to seeing you!",
		b.Reference, displayDate(b.Date), displayClock(b.Time), b.PartySize, guestsWord(b.PartySize))
	return messages.NewDataReply(messages.ActionBookingCreated, text, data)
}

func bookingInfoReply(b *session.Booking, data map[string]any) *messages.Reply {
	var extra strings.Builder
	if email, ok := data["customer_email"].(string); ok && email != "" {
		fmt.Fprintf(&extra, "\n📧 %s", email)
	}
	if mobile, ok := data["customer_mobile"].(string); ok && mobile != "" {
		fmt.Fprintf(&extra, "\n📱 %s", mobile)
	}
	text := fmt.Sprintf("📋 Here's your booking:\n"+
		"Reference: %s\n"+
		"📅 %s\n"+
		"🕐 %s\n"+
		"👥 %d %s%s",
		b.Reference, displayDate(b.Date), displayClock(b.Time), b.PartySize, guestsWord(b.PartySize), extra.String())
	return messages.NewDataReply(messages.ActionBookingInfoShown, text, data)
}

func bookingModifiedReply(b *session.Booking, data map[string]any) *messages.Reply {
	text := fmt.Sprintf("✏️ Done! Booking %s is now:\n"+
		"📅 %s\n"+
		"🕐 %s\n"+
		"👥 %d %s",
		b.Reference, displayDate(b.Date), displayClock(b.Time), b.PartySize, guestsWord(b.PartySize))
	return messages.NewDataReply(messages.ActionBookingModified, text, data)
}

func bookingCancelledReply(b *session.Booking, data map[string]any) *messages.Reply {
	text := fmt.Sprintf("🗑️ Your booking %s for %s has been cancelled. We hope to see you another time!",
		b.Reference, displayDate(b.Date))
	return messages.NewDataReply(messages.ActionBookingCancelled, text, data)
}

// timesHTML renders clickable slot buttons for web clients that want more
// than plain text.
func timesHTML(times []string) string {
	if len(times) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="time-slots">`)
	for _, t := range times {
		fmt.Fprintf(&b, `<button class="time-slot" data-time="%s">%s</button>`, t, displayTime(t))
	}
	b.WriteString(`</div>`)
	return b.String()
}
