package nlp

import (
	"regexp"
	"strings"
)

var (
	emailRE     = regexp.MustCompile(`\b[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}\b`)
	digitRunRE  = regexp.MustCompile(`\+?\d+`)
	forNameRE   = regexp.MustCompile(`(?i)\bfor\s+\d{1,2}\s+([a-z][a-z'\-]+)\b`)
	quantifiers = map[string]bool{
		"people": true, "person": true, "persons": true,
		"guest": true, "guests": true, "pax": true,
		"party": true, "seat": true, "seats": true,
	}
)

// ExtractEmail finds the first email address in the text.
func ExtractEmail(text string) string {
	return emailRE.FindString(text)
}

// ExtractMobile finds a phone number: a run of 10 to 14 digits, optionally
// prefixed with +, after stripping whitespace.
func ExtractMobile(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, text)

	for _, run := range digitRunRE.FindAllString(stripped, -1) {
		digits := strings.TrimPrefix(run, "+")
		if len(digits) >= 10 && len(digits) <= 14 {
			return run
		}
	}
	return ""
}

// ExtractName finds a guest name via the narrow "for N <Word>" pattern.
// Intentionally weak; a miss is fine because booking falls back to defaults.
func ExtractName(text string) string {
	m := forNameRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	word := m[1]
	if quantifiers[strings.ToLower(word)] {
		return ""
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
