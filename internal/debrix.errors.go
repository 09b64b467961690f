package internal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParserError is a syntax error at a byte offset. Positives lists what
// would have been accepted there.
type ParserError struct {
	Position  int
	Positives []string
}

// NewParserError creates a parser error at position
func NewParserError(position int, positives ...string) *ParserError {
	return &ParserError{
		Position:  position,
		Positives: positives,
	}
}

// Error implements the error interface
func (e *ParserError) Error() string {
	if len(e.Positives) == 0 {
		return fmt.Sprintf(ErrFmtUnexpected, e.Position)
	}
	return fmt.Sprintf(ErrFmtUnexpectedExpected, e.Position, formatPositives(e.Positives))
}

// formatPositives renders "'x', y or z". Single characters are quoted.
func formatPositives(positives []string) string {
	items := make([]string, len(positives))
	for i, p := range positives {
		items[i] = formatPositive(p)
	}
	if len(items) == 1 {
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ErrStrListSep) + ErrStrOr + items[len(items)-1]
}

func formatPositive(p string) string {
	if p == "\x00" {
		return ErrStrNull
	}
	if utf8.RuneCountInString(p) == 1 {
		return "'" + p + "'"
	}
	return p
}

// CompilerError is a semantic error over the source span [Start, End).
type CompilerError struct {
	Start   int
	End     int
	Message string
}

// NewCompilerError creates a compiler error over a span
func NewCompilerError(span Span, message string) *CompilerError {
	return &CompilerError{
		Start:   span.Start,
		End:     span.End,
		Message: message,
	}
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	return fmt.Sprintf(ErrFmtCompiler, e.Message, e.Start, e.End)
}
