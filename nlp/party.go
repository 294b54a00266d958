package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Conservative fallback range for standalone integers, to avoid
	// misreading phone numbers or date fragments as a party size.
	fallbackPartyMin = 1
	fallbackPartyMax = 12
)

var (
	partyPhraseRE = regexp.MustCompile(`\b(\d{1,2})\s*(?:people|persons?|guests?|pax|party|seats?)\b`)
	partyOfRE     = regexp.MustCompile(`\b(?:party\s+of|table\s+for)\s+(\d{1,2})\b`)
	standaloneRE  = regexp.MustCompile(`\b([1-9]\d?)\b`)
)

// ExtractPartySize finds the number of diners in the text. Explicit
// quantifier phrases ("4 people", "party of 6") win; failing that, the first
// standalone integer in [1,12] is taken as a best-effort fallback.
func ExtractPartySize(text string) (int, bool) {
	lower := strings.ToLower(text)

	if m := partyPhraseRE.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	if m := partyOfRE.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}

	for _, m := range standaloneRE.FindAllStringSubmatch(lower, -1) {
		n, _ := strconv.Atoi(m[1])
		if n >= fallbackPartyMin && n <= fallbackPartyMax {
			return n, true
		}
	}
	return 0, false
}
