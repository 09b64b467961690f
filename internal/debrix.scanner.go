package internal

import (
	"strings"
	"unicode/utf8"
)

// Scanner is a cursor over template source. Offsets are byte offsets.
// Reading past the end yields CharNull.
type Scanner struct {
	input  string
	cursor int
}

// NewScanner creates a scanner positioned at the start of input
func NewScanner(input string) *Scanner {
	return &Scanner{input: input}
}

// Peek returns the character at the cursor without consuming it
func (s *Scanner) Peek() rune {
	if s.cursor >= len(s.input) {
		return CharNull
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.cursor:])
	return r
}

// Next advances past the current character and returns the new current one
func (s *Scanner) Next() rune {
	if s.cursor >= len(s.input) {
		return CharNull
	}
	_, width := utf8.DecodeRuneInString(s.input[s.cursor:])
	s.cursor += width
	return s.Peek()
}

// Back moves the cursor one character backwards. It reports false at the start.
func (s *Scanner) Back() bool {
	if s.cursor == 0 {
		return false
	}
	_, width := utf8.DecodeLastRuneInString(s.input[:s.cursor])
	s.cursor -= width
	return true
}

// Test reports whether the upcoming text equals lit
func (s *Scanner) Test(lit string) bool {
	return strings.HasPrefix(s.input[s.cursor:], lit)
}

// Take consumes lit if the upcoming text equals it
func (s *Scanner) Take(lit string) bool {
	if !s.Test(lit) {
		return false
	}
	s.cursor += len(lit)
	return true
}

// Cursor returns the current byte offset
func (s *Scanner) Cursor() int {
	return s.cursor
}

// SetCursor moves the cursor, clamped to the input bounds
func (s *Scanner) SetCursor(offset int) {
	switch {
	case offset < 0:
		s.cursor = 0
	case offset > len(s.input):
		s.cursor = len(s.input)
	default:
		s.cursor = offset
	}
}

// Slice returns input[start:end], clamped to the input bounds
func (s *Scanner) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.input) {
		end = len(s.input)
	}
	if start >= end {
		return ""
	}
	return s.input[start:end]
}

// IsDone reports whether the cursor reached the end of input
func (s *Scanner) IsDone() bool {
	return s.cursor >= len(s.input)
}

// Input returns the full source text
func (s *Scanner) Input() string {
	return s.input
}
