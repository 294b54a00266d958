package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ClockTime is a time of day normalized to 24-hour hour/minute/second.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// String renders the canonical HH:MM:SS form the booking API expects.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

var (
	amPmClockRE = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2})(?::(\d{2}))?)?\s*(am|pm)\b`)
	bareClockRE = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?\b`)
)

// ExtractClock finds a time of day in the text. Recognizes "7pm", "7:30 pm",
// "7:30:15pm" and bare 24-hour "19:00" or "19:00:00" forms. Seconds default
// to zero unless given. 12am maps to 00, 12pm stays 12.
func ExtractClock(text string) (ClockTime, bool) {
	lower := strings.ToLower(text)

	if m := amPmClockRE.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := atoiDefault(m[2], 0)
		second := atoiDefault(m[3], 0)
		if hour < 1 || hour > 12 || minute > 59 || second > 59 {
			return ClockTime{}, false
		}
		if m[4] == "pm" && hour != 12 {
			hour += 12
		} else if m[4] == "am" && hour == 12 {
			hour = 0
		}
		return ClockTime{Hour: hour, Minute: minute, Second: second}, true
	}

	if m := bareClockRE.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second := atoiDefault(m[3], 0)
		if hour > 23 || minute > 59 || second > 59 {
			return ClockTime{}, false
		}
		return ClockTime{Hour: hour, Minute: minute, Second: second}, true
	}

	return ClockTime{}, false
}

// ParseClock parses an already-normalized HH:MM[:SS] string, the form the
// booking API uses for slot times.
func ParseClock(s string) (ClockTime, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return ClockTime{}, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour > 23 || hour < 0 {
		return ClockTime{}, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute > 59 || minute < 0 {
		return ClockTime{}, false
	}
	second := 0
	if len(parts) == 3 {
		second, err = strconv.Atoi(parts[2])
		if err != nil || second > 59 || second < 0 {
			return ClockTime{}, false
		}
	}
	return ClockTime{Hour: hour, Minute: minute, Second: second}, true
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
