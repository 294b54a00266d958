package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPartySize(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"4 people", 4},
		{"2 guests", 2},
		{"1 person", 1},
		{"6pax", 6},
		{"a party of 6", 6},
		{"table for 2 please", 2},
		{"15 people", 15}, // explicit phrasing beats the fallback cap
		{"just 4", 4},     // standalone fallback
		{"we are 8", 8},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractPartySize(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPartySize_NoMatch(t *testing.T) {
	for _, text := range []string{
		"book a table",
		"15",          // standalone out of fallback range
		"0 somewhere", // zero never a party
		"at 7pm",      // glued to am/pm suffix
		"19:00",       // out of fallback range
		"call 07911123456",
	} {
		_, ok := ExtractPartySize(text)
		assert.False(t, ok, "text %q", text)
	}
}
