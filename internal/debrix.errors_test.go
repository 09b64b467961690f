package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParserError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParserError
		expected string
	}{
		{
			name:     "no positives",
			err:      NewParserError(3),
			expected: "Unexpected at 3.",
		},
		{
			name:     "single character",
			err:      NewParserError(7, "}"),
			expected: "Unexpected at 7, expected '}'.",
		},
		{
			name:     "word",
			err:      NewParserError(0, ExpectIdentifier),
			expected: "Unexpected at 0, expected " + ExpectIdentifier + ".",
		},
		{
			name:     "list",
			err:      NewParserError(12, ">", "/>", "attribute"),
			expected: "Unexpected at 12, expected '>', /> or attribute.",
		},
		{
			name:     "end of input",
			err:      NewParserError(4, "\x00", ")"),
			expected: "Unexpected at 4, expected NULL or ')'.",
		},
		{
			name:     "multibyte character is quoted",
			err:      NewParserError(1, "é"),
			expected: "Unexpected at 1, expected 'é'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestCompilerError_Error(t *testing.T) {
	err := NewCompilerError(Span{Start: 4, End: 9}, ErrMsgNodeNotAllowed)

	assert.Equal(t, 4, err.Start)
	assert.Equal(t, 9, err.End)
	assert.Equal(t, ErrMsgNodeNotAllowed+" (4..9)", err.Error())
}
