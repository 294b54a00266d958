package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "jane.doe@example.co.uk", ExtractEmail("reach me at jane.doe@example.co.uk thanks"))
	assert.Equal(t, "", ExtractEmail("no address here"))
}

func TestExtractMobile(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"call me on 07911123456", "07911123456"},
		{"+44 7911 123456", "+447911123456"},
		{"(079) 1112-3456", "07911123456"},
		{"table for 4 at 7pm", ""}, // short digit runs are not numbers
		{"123456789012345", ""},   // too long
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractMobile(tt.text), "text %q", tt.text)
	}
}

func TestExtractName(t *testing.T) {
	assert.Equal(t, "Smith", ExtractName("a table for 2 smith"))
	assert.Equal(t, "", ExtractName("a table for 4 people"))
	assert.Equal(t, "", ExtractName("book a table"))
}
