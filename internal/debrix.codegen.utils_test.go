package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "plain", expected: `"plain"`},
		{input: `say "hi"`, expected: `"say \"hi\""`},
		{input: `back\slash`, expected: `"back\\slash"`},
		{input: "a\nb\tc\r", expected: `"a\nb\tc\r"`},
		{input: "a\u2028b", expected: `"a\u2028b"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, InString(tt.input))
		})
	}
}

func TestIdentifierChecks(t *testing.T) {
	assert.True(t, IsIdentifierName("foo"))
	assert.True(t, IsIdentifierName("$self"))
	assert.True(t, IsIdentifierName("class"))
	assert.False(t, IsIdentifierName("1a"))
	assert.False(t, IsIdentifierName("a-b"))
	assert.False(t, IsIdentifierName(""))

	assert.True(t, IsValidIdentifier("Card"))
	assert.False(t, IsValidIdentifier("class"))
	assert.False(t, IsValidIdentifier("my card"))
}

func TestToValidIdent(t *testing.T) {
	assert.Equal(t, "my_button", ToValidIdent("my-button"))
	assert.Equal(t, "_1st", ToValidIdent("1st"))
	assert.Equal(t, "_", ToValidIdent(""))
	assert.Equal(t, "div", ToValidIdent("div"))
}

func TestToValidProperty(t *testing.T) {
	assert.Equal(t, "title", ToValidProperty("title"))
	assert.Equal(t, `"aria-label"`, ToValidProperty("aria-label"))
}

func TestJoinSpaces(t *testing.T) {
	assert.Equal(t, " ", JoinSpaces("\n\t  "))
	assert.Equal(t, " Hello world ", JoinSpaces("  Hello \n world\t"))
	assert.Equal(t, "x", JoinSpaces("x"))
}

func TestCaseConversion(t *testing.T) {
	assert.Equal(t, "MyButton", TitleCase("my-button"))
	assert.Equal(t, "Default", TitleCase("default"))
	assert.Equal(t, "UserCard", TitleCase("userCard"))
	assert.Equal(t, "my_button", SnakeCase("MyButton"))
	assert.Equal(t, "default", SnakeCase("Default"))
	assert.Equal(t, "user_card_2", SnakeCase("UserCard_2"))
}
