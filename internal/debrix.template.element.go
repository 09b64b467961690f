package internal

import "unicode"

// parseElement parses `<tag attrs>children</tag>` or `<tag attrs/>`
func (p *Parser) parseElement() (Node, error) {
	s := p.scanner
	start := s.Cursor()
	if err := p.expectChar(CharLessThan); err != nil {
		return nil, err
	}

	tag := p.parseTagName()
	if tag == nil {
		return nil, NewParserError(s.Cursor(), ExpectTagName)
	}

	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}

	el := &Element{
		Tag:        tag,
		Attributes: attrs,
		Children:   []Node{},
	}

	if s.Take(string(CharSlash)) {
		if err := p.expectChar(CharGreaterThan); err != nil {
			return nil, err
		}
		el.StartTag = Span{Start: start, End: s.Cursor()}
		el.Span = el.StartTag
		return el, nil
	}

	if err := p.expectChar(CharGreaterThan); err != nil {
		return nil, err
	}
	el.StartTag = Span{Start: start, End: s.Cursor()}

	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	el.Children = children

	endStart := s.Cursor()
	closing := StrEndTagOpen + tag.Name + string(CharGreaterThan)
	if !s.Take(StrEndTagOpen) {
		return nil, NewParserError(s.Cursor(), closing)
	}
	if !s.Take(tag.Name) {
		return nil, NewParserError(s.Cursor(), tag.Name)
	}
	p.skipWhitespace()
	if err := p.expectChar(CharGreaterThan); err != nil {
		return nil, err
	}

	el.EndTag = &Span{Start: endStart, End: s.Cursor()}
	el.Span = Span{Start: start, End: s.Cursor()}
	return el, nil
}

// parseTagName reads up to whitespace, `>` or `/`
func (p *Parser) parseTagName() *Identifier {
	s := p.scanner
	start := s.Cursor()
	for ch := s.Peek(); !s.IsDone(); ch = s.Next() {
		if unicode.IsSpace(ch) || ch == CharGreaterThan || ch == CharSlash {
			break
		}
	}
	if s.Cursor() == start {
		return nil
	}
	return &Identifier{
		Span: Span{Start: start, End: s.Cursor()},
		Name: s.Slice(start, s.Cursor()),
	}
}

// parseAttributes reads attributes until `>` or `/`
func (p *Parser) parseAttributes() ([]Attribute, error) {
	s := p.scanner
	attrs := []Attribute{}

	for {
		p.skipWhitespace()
		if s.IsDone() {
			return nil, NewParserError(s.Cursor(), string(CharGreaterThan))
		}

		switch s.Peek() {
		case CharGreaterThan, CharSlash:
			return attrs, nil
		case CharDoubleQuote, CharSingleQuote, CharEquals:
			return nil, NewParserError(s.Cursor(), ExpectAttribute)
		case CharOpenBrace:
			attr, err := p.parseBraceAttribute()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, attr)
		default:
			attr, err := p.parseNamedAttribute()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, attr)
		}
	}
}

// parseBraceAttribute parses `{...expr}` or `{name}`
func (p *Parser) parseBraceAttribute() (Attribute, error) {
	s := p.scanner
	start := s.Cursor()
	s.Next()

	if s.Take(StrSpread) {
		expr, err := ParseScriptExpression(s)
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(CharCloseBrace); err != nil {
			return nil, err
		}
		return &SpreadAttribute{Span: Span{Start: start, End: s.Cursor()}, Value: expr}, nil
	}

	p.skipWhitespace()
	name, err := p.parseName(ExpectIdentifier)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if err := p.expectChar(CharCloseBrace); err != nil {
		return nil, err
	}
	return &ShortBindingAttribute{Span: Span{Start: start, End: s.Cursor()}, Name: name}, nil
}

// parseNamedAttribute parses `name`, `name="value"` or `name={expr}`
func (p *Parser) parseNamedAttribute() (Attribute, error) {
	s := p.scanner
	start := s.Cursor()

	for ch := s.Peek(); !s.IsDone(); ch = s.Next() {
		if unicode.IsSpace(ch) || isAttributeDelimiter(ch) {
			break
		}
	}
	if s.Cursor() == start {
		return nil, NewParserError(start, ExpectAttribute)
	}
	name := &Identifier{
		Span: Span{Start: start, End: s.Cursor()},
		Name: s.Slice(start, s.Cursor()),
	}

	save := s.Cursor()
	p.skipWhitespace()
	if !s.Take(string(CharEquals)) {
		s.SetCursor(save)
		return &StaticAttribute{Span: name.Span, Name: name}, nil
	}
	p.skipWhitespace()

	switch s.Peek() {
	case CharDoubleQuote, CharSingleQuote:
		value, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		return &StaticAttribute{
			Span:  Span{Start: start, End: value.End},
			Name:  name,
			Value: value,
		}, nil

	case CharOpenBrace:
		s.Next()
		expr, err := ParseScriptExpression(s)
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(CharCloseBrace); err != nil {
			return nil, err
		}
		return &BindingAttribute{
			Span:  Span{Start: start, End: s.Cursor()},
			Name:  name,
			Value: expr,
		}, nil
	}

	return nil, NewParserError(s.Cursor(), string(CharDoubleQuote), string(CharSingleQuote), string(CharOpenBrace))
}

func isAttributeDelimiter(ch rune) bool {
	switch ch {
	case CharEquals, CharGreaterThan, CharSlash, CharOpenBrace, CharDoubleQuote, CharSingleQuote:
		return true
	}
	return false
}
