package internal

import "unicode"

// parseFlow dispatches `#when` and `#each`
func (p *Parser) parseFlow() (Node, error) {
	switch {
	case p.takeWord(StrWhen):
		return p.parseWhen(p.scanner.Cursor() - len(StrWhen))
	case p.takeWord(StrEach):
		return p.parseEach(p.scanner.Cursor() - len(StrEach))
	}
	return nil, NewParserError(p.scanner.Cursor(), StrWhen, StrEach)
}

// parseWhen parses the block after `#when` and its `#else` chain
func (p *Parser) parseWhen(start int) (Node, error) {
	s := p.scanner
	cond, err := ParseScriptExpression(s)
	if err != nil {
		return nil, err
	}
	children, err := p.parseFlowBody()
	if err != nil {
		return nil, err
	}

	when := &WhenBlock{
		Span:      Span{Start: start, End: s.Cursor()},
		Condition: cond,
		Children:  children,
		Chain:     []*ElseBlock{},
	}

	for {
		save := s.Cursor()
		p.skipWhitespace()
		elseStart := s.Cursor()
		if !p.takeWord(StrElse) {
			s.SetCursor(save)
			break
		}
		p.skipWhitespace()

		link := &ElseBlock{}
		if p.takeWord(StrWhenKeyword) {
			link.Condition, err = ParseScriptExpression(s)
			if err != nil {
				return nil, err
			}
		}
		link.Children, err = p.parseFlowBody()
		if err != nil {
			return nil, err
		}
		link.Span = Span{Start: elseStart, End: s.Cursor()}
		when.Chain = append(when.Chain, link)
		when.End = s.Cursor()

		// nothing after an unconditional #else can be selected
		if link.Condition == nil {
			break
		}
	}

	return when, nil
}

// parseEach parses `item in items { ... }` after `#each`
func (p *Parser) parseEach(start int) (Node, error) {
	s := p.scanner
	p.skipWhitespace()
	iterator, err := p.parseName(ExpectIdentifier)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if !p.takeWord(StrIn) {
		return nil, NewParserError(s.Cursor(), StrIn)
	}

	iterable, err := ParseScriptExpression(s)
	if err != nil {
		return nil, err
	}
	children, err := p.parseFlowBody()
	if err != nil {
		return nil, err
	}

	return &EachBlock{
		Span:     Span{Start: start, End: s.Cursor()},
		Iterator: iterator,
		Iterable: iterable,
		Children: children,
	}, nil
}

// parseFlowBody parses `{ children }`. Whitespace-only text at either
// edge of the body is dropped.
func (p *Parser) parseFlowBody() ([]Node, error) {
	p.skipWhitespace()
	if err := p.expectChar(CharOpenBrace); err != nil {
		return nil, err
	}
	p.skipWhitespace()

	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(CharCloseBrace); err != nil {
		return nil, err
	}

	if n := len(children); n > 0 {
		if text, ok := children[n-1].(*Text); ok && isBlank(text.Content) {
			children = children[:n-1]
		}
	}
	return children, nil
}

func isBlank(value string) bool {
	for _, ch := range value {
		if !unicode.IsSpace(ch) {
			return false
		}
	}
	return true
}
