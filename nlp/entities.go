// Package nlp turns free-form utterances into typed entities and intents.
// Every extractor is a total function over text: absence of a match is a
// normal outcome, never an error.
package nlp

import "time"

// Entities holds everything extracted from a single turn.
type Entities struct {
	Date   *time.Time // Calendar date, midnight in the reference timezone
	Clock  *ClockTime // Time of day, normalized 24-hour
	Party  *int
	Email  string
	Mobile string
	Name   string
}

// Any reports whether at least one entity was found. The classifier uses
// this as the implicit-booking fallback signal.
func (e Entities) Any() bool {
	return e.Date != nil || e.Clock != nil || e.Party != nil ||
		e.Email != "" || e.Mobile != "" || e.Name != ""
}

// Extract runs all entity extractors over the text. The now argument is the
// current instant in the reference timezone; relative dates resolve against it.
func Extract(text string, now time.Time) Entities {
	var ents Entities
	if d, ok := ExtractDate(text, now); ok {
		ents.Date = &d
	}
	if c, ok := ExtractClock(text); ok {
		ents.Clock = &c
	}
	if p, ok := ExtractPartySize(text); ok {
		ents.Party = &p
	}
	ents.Email = ExtractEmail(text)
	ents.Mobile = ExtractMobile(text)
	ents.Name = ExtractName(text)
	return ents
}
