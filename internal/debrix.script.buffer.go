package internal

// TokenBuffer wraps a Lexer with an append-only token history and a
// movable read index, giving unlimited lookahead with rewind.
type TokenBuffer struct {
	lexer   *Lexer
	scanner *Scanner
	tokens  []Token
	index   int
}

// NewTokenBuffer creates a token buffer reading from scanner
func NewTokenBuffer(scanner *Scanner) *TokenBuffer {
	return &TokenBuffer{
		lexer:   NewLexer(scanner),
		scanner: scanner,
	}
}

// Scan returns the next token, replaying history after an Unscan
func (b *TokenBuffer) Scan() (Token, error) {
	if b.index < len(b.tokens) {
		tok := b.tokens[b.index]
		b.index++
		b.scanner.SetCursor(tok.End)
		return tok, nil
	}

	tok, err := b.lexer.Scan()
	if err != nil {
		return Token{}, err
	}
	b.tokens = append(b.tokens, tok)
	b.index++
	return tok, nil
}

// Unscan rewinds one token and moves the scanner back to its start
func (b *TokenBuffer) Unscan() {
	if b.index == 0 {
		return
	}
	b.index--
	b.scanner.SetCursor(b.tokens[b.index].Start)
}

// Peek returns the next token without consuming it
func (b *TokenBuffer) Peek() (Token, error) {
	tok, err := b.Scan()
	if err != nil {
		return Token{}, err
	}
	b.Unscan()
	return tok, nil
}

// Last returns the most recently consumed token
func (b *TokenBuffer) Last() Token {
	if b.index == 0 {
		return Token{Start: b.scanner.Cursor(), End: b.scanner.Cursor()}
	}
	return b.tokens[b.index-1]
}

// Text returns the source text of tok
func (b *TokenBuffer) Text(tok Token) string {
	return b.scanner.Slice(tok.Start, tok.End)
}
