package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClock(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"7pm", "19:00:00"},
		{"7 pm", "19:00:00"},
		{"7:30 pm", "19:30:00"},
		{"7:30:15pm", "19:30:15"},
		{"11am", "11:00:00"},
		{"12pm", "12:00:00"}, // noon
		{"12am", "00:00:00"}, // midnight
		{"19:00", "19:00:00"},
		{"19:00:00", "19:00:00"},
		{"7:30", "07:30:00"},
		{"book tomorrow at 8pm for 4", "20:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractClock(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestExtractClock_NoMatch(t *testing.T) {
	for _, text := range []string{
		"no time here",
		"25:00",
		"13pm",
		"a table for 4",
	} {
		_, ok := ExtractClock(text)
		assert.False(t, ok, "text %q", text)
	}
}

// Normalization is idempotent: feeding the canonical form back through
// extraction returns it unchanged.
func TestExtractClock_Idempotent(t *testing.T) {
	for _, text := range []string{"7pm", "7 pm", "19:00", "19:00:00"} {
		got, ok := ExtractClock(text)
		require.True(t, ok)
		require.Equal(t, "19:00:00", got.String())

		again, ok := ExtractClock(got.String())
		require.True(t, ok)
		assert.Equal(t, got, again)
	}
}

func TestParseClock(t *testing.T) {
	c, ok := ParseClock("19:30")
	require.True(t, ok)
	assert.Equal(t, ClockTime{Hour: 19, Minute: 30}, c)

	c, ok = ParseClock("19:30:45")
	require.True(t, ok)
	assert.Equal(t, ClockTime{Hour: 19, Minute: 30, Second: 45}, c)

	for _, s := range []string{"7pm", "24:00", "19", "19:60", ""} {
		_, ok := ParseClock(s)
		assert.False(t, ok, "input %q", s)
	}
}
