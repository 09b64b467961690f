package debrix

import (
	"errors"
	"strconv"
	"strings"

	"github.com/itsatony/go-cuserr"

	"github.com/debrix-lang/debrix-go/internal"
)

// ParserError is a syntax error. Position is a byte offset into the
// source; Line and Column are zero-based, Column counts bytes.
// Positives lists what would have been accepted at Position.
type ParserError struct {
	Position  int
	Line      int
	Column    int
	Positives []string
}

// Error implements the error interface
func (e *ParserError) Error() string {
	return (&internal.ParserError{Position: e.Position, Positives: e.Positives}).Error()
}

// CompilerError is a semantic error over the byte span [Start, End).
// Line and Column locate Start, zero-based.
type CompilerError struct {
	Start   int
	End     int
	Line    int
	Column  int
	Message string
}

// Error implements the error interface
func (e *CompilerError) Error() string {
	return (&internal.CompilerError{Start: e.Start, End: e.End, Message: e.Message}).Error()
}

// ErrorKind classifies err the way the host adapters tag failures:
// ErrorKindCompiler, ErrorKindParser or ErrorKindOther.
func ErrorKind(err error) int {
	if err == nil {
		return ErrorKindOther
	}
	var pe *ParserError
	if errors.As(err, &pe) {
		return ErrorKindParser
	}
	var ce *CompilerError
	if errors.As(err, &ce) {
		return ErrorKindCompiler
	}

	var customErr *cuserr.CustomError
	if errors.As(err, &customErr) {
		if kind, ok := customErr.GetMetadata(MetaKeyKind); ok {
			switch kind {
			case errorKindNameParser:
				return ErrorKindParser
			case errorKindNameCompiler:
				return ErrorKindCompiler
			}
		}
	}
	return ErrorKindOther
}

// AsParserError extracts the parser error carried by err
func AsParserError(err error) (*ParserError, bool) {
	var pe *ParserError
	ok := errors.As(err, &pe)
	return pe, ok
}

// AsCompilerError extracts the compiler error carried by err
func AsCompilerError(err error) (*CompilerError, bool) {
	var ce *CompilerError
	ok := errors.As(err, &ce)
	return ce, ok
}

// wrapPipelineError converts an error from the internal pipeline into a
// public error located in input
func wrapPipelineError(err error, lines *lineIndex) error {
	var pe *internal.ParserError
	if errors.As(err, &pe) {
		line, column := lines.locate(pe.Position)
		return NewParseError(&ParserError{
			Position:  pe.Position,
			Line:      line,
			Column:    column,
			Positives: pe.Positives,
		})
	}

	var ce *internal.CompilerError
	if errors.As(err, &ce) {
		line, column := lines.locate(ce.Start)
		return NewCompileError(&CompilerError{
			Start:   ce.Start,
			End:     ce.End,
			Line:    line,
			Column:  column,
			Message: ce.Message,
		})
	}

	return cuserr.WrapStdError(err, ErrCodeCompile, ErrMsgCompileFailed)
}

// NewParseError wraps a parser error with position metadata
func NewParseError(pe *ParserError) error {
	return cuserr.WrapStdError(pe, ErrCodeParse, ErrMsgParseFailed).
		WithMetadata(MetaKeyKind, errorKindNameParser).
		WithMetadata(MetaKeyPosition, strconv.Itoa(pe.Position)).
		WithMetadata(MetaKeyLine, strconv.Itoa(pe.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pe.Column)).
		WithMetadata(MetaKeyPositives, strings.Join(pe.Positives, ","))
}

// NewCompileError wraps a compiler error with span metadata
func NewCompileError(ce *CompilerError) error {
	return cuserr.WrapStdError(ce, ErrCodeCompile, ErrMsgCompileFailed).
		WithMetadata(MetaKeyKind, errorKindNameCompiler).
		WithMetadata(MetaKeyStart, strconv.Itoa(ce.Start)).
		WithMetadata(MetaKeyEnd, strconv.Itoa(ce.End)).
		WithMetadata(MetaKeyLine, strconv.Itoa(ce.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(ce.Column))
}

// NewUnsupportedTargetError creates an error for targets without a
// code generator
func NewUnsupportedTargetError(target Target) error {
	return cuserr.NewValidationError(ErrCodeTarget, ErrMsgTargetUnsupported).
		WithMetadata(MetaKeyTarget, target.String())
}

// NewIOError creates an error for a failed file operation
func NewIOError(msg, path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeIO, msg).
		WithMetadata(MetaKeyPath, path)
}

// NewConfigError creates a configuration error. cause may be nil.
func NewConfigError(msg string, cause error) error {
	if cause != nil {
		return cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	}
	return cuserr.NewValidationError(ErrCodeConfig, msg)
}
