package internal

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Parser is a recursive-descent parser for templates, working directly on
// the Scanner. Embedded expressions are handed to ScriptParser.
type Parser struct {
	scanner *Scanner
	logger  *zap.Logger
}

// NewParser creates a template parser over input
func NewParser(input string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldSource, len(input)))
	return &Parser{
		scanner: NewScanner(input),
		logger:  logger,
	}
}

// Parse is a convenience function that parses a whole template
func Parse(input string, logger *zap.Logger) (*Document, error) {
	return NewParser(input, logger).Parse()
}

// Parse reads top-level nodes until the input is exhausted
func (p *Parser) Parse() (*Document, error) {
	p.logger.Debug(LogMsgParserStart)

	doc := &Document{
		Span:     Span{Start: 0, End: len(p.scanner.Input())},
		Children: []Node{},
	}
	for {
		node, err := p.Next()
		if err != nil {
			return nil, err
		}
		if node == nil {
			break
		}
		doc.Children = append(doc.Children, node)
	}

	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(doc.Children)))
	return doc, nil
}

// Next parses one top-level node. It returns nil at the end of input.
func (p *Parser) Next() (Node, error) {
	p.skipWhitespace()
	s := p.scanner

	switch {
	case s.IsDone():
		return nil, nil
	case s.Test(StrUsing):
		return p.parseDependency()
	case s.Test(StrCommentOpen):
		return p.parseComment()
	case s.Peek() == CharLessThan:
		return p.parseElement()
	}
	return nil, NewParserError(s.Cursor(), StrUsing, string(CharLessThan))
}

// parseChildren reads nodes until `</`, `}` or the end of input. The
// terminator is left for the caller.
func (p *Parser) parseChildren() ([]Node, error) {
	s := p.scanner
	nodes := []Node{}

	for !s.IsDone() {
		if s.Test(StrEndTagOpen) || s.Peek() == CharCloseBrace {
			break
		}

		var node Node
		var err error
		switch {
		case s.Test("<!"):
			node, err = p.parseComment()
		case s.Peek() == CharLessThan:
			node, err = p.parseElement()
		case s.Peek() == CharOpenBrace:
			node, err = p.parseTextBinding()
		case s.Peek() == CharHash:
			node, err = p.parseFlow()
		default:
			node = p.parseText()
		}
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}

	return nodes, nil
}

// parseText reads character data up to the next `<`, `{`, `}` or `#`.
// A backslash keeps the following character literally.
func (p *Parser) parseText() Node {
	s := p.scanner
	start := s.Cursor()
	var sb strings.Builder

	for ch := s.Peek(); !s.IsDone(); ch = s.Peek() {
		if ch == CharLessThan || ch == CharOpenBrace || ch == CharCloseBrace || ch == CharHash {
			break
		}
		if ch == CharBackslash {
			ch = s.Next()
			if s.IsDone() {
				break
			}
		}
		sb.WriteRune(ch)
		s.Next()
	}

	if sb.Len() == 0 {
		return nil
	}
	return &Text{
		Span:    Span{Start: start, End: s.Cursor()},
		Content: sb.String(),
	}
}

// parseTextBinding parses `{expression}`
func (p *Parser) parseTextBinding() (Node, error) {
	start := p.scanner.Cursor()
	p.scanner.Next()

	expr, err := ParseScriptExpression(p.scanner)
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(CharCloseBrace); err != nil {
		return nil, err
	}

	return &TextBinding{
		Span:       Span{Start: start, End: p.scanner.Cursor()},
		Expression: expr,
	}, nil
}

// parseComment parses `<!-- content -->`
func (p *Parser) parseComment() (Node, error) {
	s := p.scanner
	start := s.Cursor()
	if !s.Take(StrCommentOpen) {
		return nil, NewParserError(start, StrCommentOpen)
	}

	rest := s.Input()[s.Cursor():]
	idx := strings.Index(rest, StrCommentClose)
	if idx < 0 {
		s.SetCursor(len(s.Input()))
		return nil, NewParserError(s.Cursor(), StrCommentClose)
	}

	content := rest[:idx]
	s.SetCursor(s.Cursor() + idx + len(StrCommentClose))
	return &Comment{
		Span:    Span{Start: start, End: s.Cursor()},
		Content: content,
	}, nil
}

// parseStringLiteral parses a quoted string without escape processing
func (p *Parser) parseStringLiteral() (*StringLiteral, error) {
	s := p.scanner
	start := s.Cursor()
	quote := s.Peek()
	if quote != CharDoubleQuote && quote != CharSingleQuote {
		return nil, NewParserError(start, string(CharDoubleQuote), string(CharSingleQuote))
	}

	for ch := s.Next(); ch != quote; ch = s.Next() {
		if s.IsDone() {
			return nil, NewParserError(s.Cursor(), string(quote))
		}
	}
	s.Next()

	return &StringLiteral{
		Span:  Span{Start: start, End: s.Cursor()},
		Value: s.Slice(start+1, s.Cursor()-1),
		Quote: quote,
	}, nil
}

// parseName reads an identifier-shaped word
func (p *Parser) parseName(expected string) (*Identifier, error) {
	s := p.scanner
	start := s.Cursor()
	if !isIdentStart(s.Peek()) {
		return nil, NewParserError(start, expected)
	}
	for ch := s.Next(); isIdentPart(ch); ch = s.Next() {
	}
	return &Identifier{
		Span: Span{Start: start, End: s.Cursor()},
		Name: s.Slice(start, s.Cursor()),
	}, nil
}

// takeWord consumes word only when it is not followed by an identifier character
func (p *Parser) takeWord(word string) bool {
	s := p.scanner
	if !s.Test(word) {
		return false
	}
	save := s.Cursor()
	s.SetCursor(save + len(word))
	if isIdentPart(s.Peek()) {
		s.SetCursor(save)
		return false
	}
	return true
}

func (p *Parser) expectChar(ch rune) error {
	if p.scanner.Peek() != ch || p.scanner.IsDone() {
		return NewParserError(p.scanner.Cursor(), string(ch))
	}
	p.scanner.Next()
	return nil
}

func (p *Parser) skipWhitespace() {
	s := p.scanner
	for !s.IsDone() && unicode.IsSpace(s.Peek()) {
		s.Next()
	}
}
