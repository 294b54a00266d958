package nlp

import "strings"

// Intent is the user's high-level goal for a turn.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentCheckAvailability
	IntentBook
	IntentShowBooking
	IntentModifyBooking
	IntentCancelBooking
	IntentHelp
	IntentReset
)

func (i Intent) String() string {
	switch i {
	case IntentCheckAvailability:
		return "check_availability"
	case IntentBook:
		return "book"
	case IntentShowBooking:
		return "show_booking"
	case IntentModifyBooking:
		return "modify_booking"
	case IntentCancelBooking:
		return "cancel_booking"
	case IntentHelp:
		return "help"
	case IntentReset:
		return "reset"
	default:
		return "unknown"
	}
}

// intentRule pairs an ordered keyword set with the intent it signals.
type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules is evaluated top to bottom, first match wins. Availability
// words come first: they co-occur with booking words in natural phrasing
// ("book a table, what times are available") and the user should get to
// browse before committing. Rule order is load-bearing; see the tests.
var intentRules = []intentRule{
	{IntentCheckAvailability, []string{"available", "availability", "check", "search", "time", "slot", "when"}},
	{IntentBook, []string{"book", "reservation", "reserve", "make booking", "table for", "dinner", "lunch"}},
	{IntentShowBooking, []string{"my booking", "booking info", "reservation details", "show booking", "what time", "show my"}},
	{IntentModifyBooking, []string{"change", "modify", "update", "edit", "move"}},
	{IntentCancelBooking, []string{"cancel", "cancellation"}},
}

var resetPhrases = []string{"reset", "start over", "start again"}

// Classify maps raw text to an intent using the ordered keyword rules.
// Keywords match on word boundaries, so "booking" is not the word "book":
// that keeps "cancel my booking" out of the Book rule and lets it fall
// through to the show/cancel rules below it. When no rule matches but an
// extractor found something, the turn is treated as an implicit booking
// request.
func Classify(text string, ents Entities) Intent {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, phrase := range resetPhrases {
		if lower == phrase {
			return IntentReset
		}
	}

	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if containsWord(lower, kw) {
				return rule.intent
			}
		}
	}

	if strings.Contains(lower, "help") {
		return IntentHelp
	}

	if ents.Any() {
		return IntentBook
	}
	return IntentUnknown
}
