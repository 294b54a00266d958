package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

const monthAlternates = `january|february|march|april|may|june|july|august|september|sept|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec`

var (
	weekdayRE  = regexp.MustCompile(`\b(?:next\s+|on\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	monthDayRE = regexp.MustCompile(`\b(` + monthAlternates + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	dayMonthRE = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlternates + `)\b`)
	isoDateRE  = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

// ExtractDate resolves a calendar date mentioned in the text, relative to now.
// Patterns are tried in a fixed priority order; the first match wins. Past
// dates are returned as-is (the not-in-past guard lives with the caller).
func ExtractDate(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	today := midnight(now)

	if containsWord(lower, "today") {
		return today, true
	}
	if containsWord(lower, "tomorrow") || containsWord(lower, "tmr") {
		return today.AddDate(0, 0, 1), true
	}
	if strings.Contains(lower, "this weekend") {
		// Upcoming Saturday; today if today is Saturday
		delta := (int(time.Saturday) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, delta), true
	}
	if m := weekdayRE.FindStringSubmatch(lower); m != nil {
		target := weekdays[m[1]]
		// A zero delta jumps a full week: "next Friday" said on a Friday means
		// the following week. "on Friday" shares this path.
		delta := (int(target) - int(today.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return today.AddDate(0, 0, delta), true
	}
	if m := monthDayRE.FindStringSubmatch(lower); m != nil {
		return monthDayDate(months[m[1]], m[2], today)
	}
	if m := dayMonthRE.FindStringSubmatch(lower); m != nil {
		return monthDayDate(months[m[2]], m[1], today)
	}
	if m := isoDateRE.FindStringSubmatch(lower); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if mo < 1 || mo > 12 || d < 1 || d > 31 {
			return time.Time{}, false
		}
		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// monthDayDate builds a date in the current year, rolling forward to next
// year if it has already passed.
func monthDayDate(month time.Month, dayStr string, today time.Time) (time.Time, bool) {
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(today.Year(), month, day, 0, 0, 0, 0, today.Location())
	if date.Before(today) {
		date = date.AddDate(1, 0, 0)
	}
	return date, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
