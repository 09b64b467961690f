package internal

import (
	"unicode"
)

// Lexer tokenizes the embedded script language directly from a Scanner.
type Lexer struct {
	scanner *Scanner
}

// NewLexer creates a lexer reading from scanner's current position
func NewLexer(scanner *Scanner) *Lexer {
	return &Lexer{scanner: scanner}
}

// Scan skips whitespace and comments and returns the next token.
// At the end of input it returns a zero-width EOF token.
func (l *Lexer) Scan() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}

	s := l.scanner
	start := s.Cursor()
	if s.IsDone() {
		return Token{Kind: TokenEOF, Start: start, End: start}, nil
	}

	ch := s.Peek()
	switch {
	case isIdentStart(ch):
		return l.scanIdentifier(start), nil
	case isDigit(ch):
		return l.scanNumeric(start, false), nil
	case ch == CharDot && l.fractionFollows(start):
		return l.scanNumeric(start, true), nil
	case ch == CharDoubleQuote || ch == CharSingleQuote:
		return l.scanQuoted(start, ch, TokenString)
	case ch == CharBacktick:
		return l.scanQuoted(start, ch, TokenTemplate)
	}

	return l.scanOperator(start)
}

// skipTrivia skips whitespace, line comments and block comments
func (l *Lexer) skipTrivia() error {
	s := l.scanner
	for !s.IsDone() {
		switch {
		case unicode.IsSpace(s.Peek()):
			s.Next()
		case s.Take(StrLineComment):
			for !s.IsDone() && s.Peek() != CharNewline {
				s.Next()
			}
		case s.Test(StrBlockOpen):
			start := s.Cursor()
			s.Take(StrBlockOpen)
			for !s.Take(StrBlockClose) {
				if s.IsDone() {
					return NewParserError(start, StrBlockClose)
				}
				s.Next()
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scanIdentifier(start int) Token {
	s := l.scanner
	for ch := s.Next(); isIdentPart(ch); ch = s.Next() {
	}
	end := s.Cursor()
	if kind, ok := keywords[s.Slice(start, end)]; ok {
		return Token{Kind: kind, Start: start, End: end}
	}
	return Token{Kind: TokenIdentifier, Start: start, End: end}
}

// fractionFollows reports whether the dot at start begins a number like
// .5, which also keeps `a?.5:1` a conditional
func (l *Lexer) fractionFollows(start int) bool {
	next := l.scanner.Slice(start+1, start+2)
	return next != "" && isDigit(rune(next[0]))
}

// scanNumeric reads digits with at most one decimal point
func (l *Lexer) scanNumeric(start int, seenDot bool) Token {
	s := l.scanner
	for ch := s.Next(); ; ch = s.Next() {
		if isDigit(ch) {
			continue
		}
		if ch == CharDot && !seenDot {
			seenDot = true
			continue
		}
		break
	}
	return Token{Kind: TokenNumeric, Start: start, End: s.Cursor()}
}

// scanQuoted reads a string or template literal up to the matching
// unescaped quote. Template interpolations are not tokenized.
func (l *Lexer) scanQuoted(start int, quote rune, kind TokenKind) (Token, error) {
	s := l.scanner
	ch := s.Next()
	for {
		if s.IsDone() {
			return Token{}, NewParserError(s.Cursor(), string(quote))
		}
		if ch == CharBackslash {
			s.Next()
			if s.IsDone() {
				return Token{}, NewParserError(s.Cursor(), string(quote))
			}
			ch = s.Next()
			continue
		}
		if ch == quote {
			s.Next()
			return Token{Kind: kind, Start: start, End: s.Cursor()}, nil
		}
		ch = s.Next()
	}
}

// scanOperator takes the longest operator spelling at the cursor
func (l *Lexer) scanOperator(start int) (Token, error) {
	s := l.scanner
	if s.Test("..") && !s.Test(StrSpread) {
		return Token{}, NewParserError(start+1, StrSpread)
	}
	for _, group := range operatorsByLength {
		for _, kind := range group {
			if s.Take(operatorText[kind]) {
				return Token{Kind: kind, Start: start, End: s.Cursor()}, nil
			}
		}
	}
	return Token{}, NewParserError(start)
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == CharUnderscore || ch == CharDollar
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
