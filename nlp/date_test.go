package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday afternoon, so weekday arithmetic is exercised mid-week.
var refNow = time.Date(2025, 8, 6, 15, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{"today", "any tables today?", date(2025, time.August, 6)},
		{"tomorrow", "book for tomorrow please", date(2025, time.August, 7)},
		{"tmr", "tmr at 7", date(2025, time.August, 7)},
		{"this weekend", "do you have space this weekend", date(2025, time.August, 9)},
		{"on weekday", "on friday", date(2025, time.August, 8)},
		{"bare weekday", "saturday evening", date(2025, time.August, 9)},
		{"month day", "august 20", date(2025, time.August, 20)},
		{"month day ordinal", "Aug 20th would be great", date(2025, time.August, 20)},
		{"day of month", "the 7th of august", date(2025, time.August, 7)},
		{"day month", "20 aug", date(2025, time.August, 20)},
		{"past month rolls forward", "march 1", date(2026, time.March, 1)},
		{"iso", "2025-12-31", date(2025, time.December, 31)},
		{"today beats weekday", "today or friday", date(2025, time.August, 6)},
		{"tomorrow beats month day", "tomorrow or august 20", date(2025, time.August, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDate(tt.text, refNow)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDate_NoMatch(t *testing.T) {
	for _, text := range []string{
		"book a table",
		"hello there",
		"2025-13-01", // invalid month
		"yesterday",  // never offered as a booking date
	} {
		_, ok := ExtractDate(text, refNow)
		assert.False(t, ok, "text %q", text)
	}
}

// A weekday equal to today's jumps a full week rather than resolving to
// today. "on wednesday" shares the path with "next wednesday", so both jump.
func TestExtractDate_SameWeekdayJumpsWeek(t *testing.T) {
	for _, text := range []string{"next wednesday", "on wednesday", "wednesday"} {
		got, ok := ExtractDate(text, refNow)
		require.True(t, ok, "text %q", text)
		assert.Equal(t, date(2025, time.August, 13), got, "text %q", text)
	}
}

func TestExtractDate_NextWeekdayWithinWeek(t *testing.T) {
	got, ok := ExtractDate("next friday", refNow)
	require.True(t, ok)

	days := int(got.Sub(date(2025, time.August, 6)).Hours() / 24)
	assert.Greater(t, days, 0)
	assert.LessOrEqual(t, days, 7)
}

func TestExtractDate_WeekendOnSaturday(t *testing.T) {
	saturday := time.Date(2025, 8, 9, 10, 0, 0, 0, time.UTC)
	got, ok := ExtractDate("this weekend", saturday)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.August, 9), got)
}

func TestExtractDate_PreservesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	got, ok := ExtractDate("tomorrow", time.Date(2025, 8, 6, 23, 30, 0, 0, loc))
	require.True(t, ok)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 7, got.Day())
}
