package internal

// ScriptParser parses one embedded script expression starting at the
// scanner's cursor. When it returns, the scanner sits right after the
// last consumed token, so the template parser can resume there.
type ScriptParser struct {
	tokens *TokenBuffer
}

// NewScriptParser creates a script parser over scanner
func NewScriptParser(scanner *Scanner) *ScriptParser {
	return &ScriptParser{tokens: NewTokenBuffer(scanner)}
}

// ParseScriptExpression parses a single expression from the scanner's cursor
func ParseScriptExpression(scanner *Scanner) (Expression, error) {
	return NewScriptParser(scanner).ParseExpression()
}

// ParseExpression parses a primary or prefix expression and then any
// continuation. Binary and assignment continuations recurse on the right
// and do not apply operator precedence.
func (p *ScriptParser) ParseExpression() (Expression, error) {
	left, err := p.parseLazy()
	if err != nil {
		return nil, err
	}
	return p.parseContinuation(left)
}

// ParseIdentifier parses a single identifier token
func (p *ScriptParser) ParseIdentifier() (*IdentifierExpression, error) {
	tok, err := p.tokens.Scan()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenIdentifier {
		return nil, NewParserError(tok.Start, ExpectIdentifier)
	}
	return p.identifier(tok), nil
}

func (p *ScriptParser) identifier(tok Token) *IdentifierExpression {
	return &IdentifierExpression{
		Span: Span{Start: tok.Start, End: tok.End},
		Name: p.tokens.Text(tok),
	}
}

// parseLazy dispatches on the first token
func (p *ScriptParser) parseLazy() (Expression, error) {
	tok, err := p.tokens.Scan()
	if err != nil {
		return nil, err
	}
	span := Span{Start: tok.Start, End: tok.End}

	switch tok.Kind {
	case TokenIdentifier:
		return p.identifier(tok), nil

	case TokenNumeric:
		raw := p.tokens.Text(tok)
		return &LiteralExpression{Span: span, Literal: LiteralNumber, Raw: raw, Value: raw}, nil

	case TokenString:
		raw := p.tokens.Text(tok)
		return &LiteralExpression{
			Span:    span,
			Literal: LiteralString,
			Raw:     raw,
			Value:   raw[1 : len(raw)-1],
			Quote:   rune(raw[0]),
		}, nil

	case TokenTemplate:
		raw := p.tokens.Text(tok)
		return &TemplateLiteral{Span: span, Raw: raw[1 : len(raw)-1]}, nil

	case TokenTrue, TokenFalse:
		raw := p.tokens.Text(tok)
		return &LiteralExpression{Span: span, Literal: LiteralBoolean, Raw: raw, Value: raw}, nil

	case TokenNull:
		raw := p.tokens.Text(tok)
		return &LiteralExpression{Span: span, Literal: LiteralNull, Raw: raw, Value: raw}, nil

	case TokenOpenParen:
		p.tokens.Unscan()
		return p.parseArrowOrParenthesized()

	case TokenOpenBracket:
		p.tokens.Unscan()
		return p.parseArray()

	case TokenOpenBrace:
		p.tokens.Unscan()
		return p.parseObject()

	case TokenNew:
		return p.parseNew(tok)
	}

	if tok.Kind.IsUnary() {
		operand, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{
			Span:     Span{Start: tok.Start, End: operand.Range().End},
			Operator: tok.Kind,
			Operand:  operand,
		}, nil
	}

	return nil, NewParserError(tok.Start, ExpectExpression)
}

// parseContinuation wraps left according to the following token.
// Member, call and tagged-template continuations loop so that chains nest
// to the left; binary, assignment and conditional ones end the expression.
func (p *ScriptParser) parseContinuation(left Expression) (Expression, error) {
	for {
		tok, err := p.tokens.Scan()
		if err != nil {
			return nil, err
		}

		switch {
		case tok.Kind.IsBinary():
			right, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			return &BinaryExpression{
				Span:     Span{Start: left.Range().Start, End: right.Range().End},
				Operator: tok.Kind,
				Left:     left,
				Right:    right,
			}, nil

		case tok.Kind.IsAssignment():
			right, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			return &AssignmentExpression{
				Span:     Span{Start: left.Range().Start, End: right.Range().End},
				Operator: tok.Kind,
				Left:     left,
				Right:    right,
			}, nil

		case tok.Kind == TokenQuestion:
			next, err := p.tokens.Scan()
			if err != nil {
				return nil, err
			}
			if next.Kind == TokenDot {
				left, err = p.parseOptionalMember(left)
				if err != nil {
					return nil, err
				}
				continue
			}
			p.tokens.Unscan()
			return p.parseConditional(left)

		case tok.Kind == TokenOpenParen:
			args, closing, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			left = &CallExpression{
				Span:      Span{Start: left.Range().Start, End: closing.End},
				Callee:    left,
				Arguments: args,
			}

		case tok.Kind == TokenDot:
			property, err := p.parsePropertyName()
			if err != nil {
				return nil, err
			}
			left = &MemberExpression{
				Span:     Span{Start: left.Range().Start, End: property.End},
				Object:   left,
				Property: property,
			}

		case tok.Kind == TokenOpenBracket:
			property, closing, err := p.parseComputedProperty()
			if err != nil {
				return nil, err
			}
			left = &MemberExpression{
				Span:     Span{Start: left.Range().Start, End: closing.End},
				Object:   left,
				Property: property,
				Computed: true,
			}

		case tok.Kind == TokenTemplate:
			raw := p.tokens.Text(tok)
			left = &TaggedTemplateExpression{
				Span:  Span{Start: left.Range().Start, End: tok.End},
				Tag:   left,
				Quasi: &TemplateLiteral{Span: Span{Start: tok.Start, End: tok.End}, Raw: raw[1 : len(raw)-1]},
			}

		default:
			p.tokens.Unscan()
			return left, nil
		}
	}
}

// parseOptionalMember handles `?.name` and `?.[expr]`; `?.` is consumed
func (p *ScriptParser) parseOptionalMember(object Expression) (Expression, error) {
	tok, err := p.tokens.Scan()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenOpenBracket {
		property, closing, err := p.parseComputedProperty()
		if err != nil {
			return nil, err
		}
		return &MemberExpression{
			Span:     Span{Start: object.Range().Start, End: closing.End},
			Object:   object,
			Property: property,
			Computed: true,
			Optional: true,
		}, nil
	}

	p.tokens.Unscan()
	property, err := p.parsePropertyName()
	if err != nil {
		return nil, err
	}
	return &MemberExpression{
		Span:     Span{Start: object.Range().Start, End: property.End},
		Object:   object,
		Property: property,
		Optional: true,
	}, nil
}

// parsePropertyName accepts identifiers and keywords after a dot
func (p *ScriptParser) parsePropertyName() (*IdentifierExpression, error) {
	tok, err := p.tokens.Scan()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenIdentifier && !tok.Kind.IsKeyword() {
		return nil, NewParserError(tok.Start, ExpectIdentifier)
	}
	return p.identifier(tok), nil
}

// parseComputedProperty parses `expr]`; the opening bracket is consumed
func (p *ScriptParser) parseComputedProperty() (Expression, Token, error) {
	property, err := p.ParseExpression()
	if err != nil {
		return nil, Token{}, err
	}
	closing, err := p.expect(TokenCloseBracket)
	if err != nil {
		return nil, Token{}, err
	}
	return property, closing, nil
}

func (p *ScriptParser) parseConditional(test Expression) (Expression, error) {
	consequent, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	alternate, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ConditionalExpression{
		Span:       Span{Start: test.Range().Start, End: alternate.Range().End},
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
	}, nil
}

// parseArguments parses `args)`; the opening paren is consumed.
// Spread arguments and a trailing comma are accepted.
func (p *ScriptParser) parseArguments() ([]Expression, Token, error) {
	args := []Expression{}
	for {
		tok, err := p.tokens.Scan()
		if err != nil {
			return nil, Token{}, err
		}
		if tok.Kind == TokenCloseParen {
			return args, tok, nil
		}

		arg, err := p.parseElement(tok)
		if err != nil {
			return nil, Token{}, err
		}
		args = append(args, arg)

		tok, err = p.tokens.Scan()
		if err != nil {
			return nil, Token{}, err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenCloseParen:
			return args, tok, nil
		default:
			return nil, Token{}, NewParserError(tok.Start, ",", ")")
		}
	}
}

// parseElement parses a list element that may be a spread; tok is the
// already scanned first token
func (p *ScriptParser) parseElement(tok Token) (Expression, error) {
	if tok.Kind == TokenEllipsis {
		argument, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &SpreadExpression{
			Span:     Span{Start: tok.Start, End: argument.Range().End},
			Argument: argument,
		}, nil
	}
	p.tokens.Unscan()
	return p.ParseExpression()
}

// parseArrowOrParenthesized looks past the matching close paren for `=>`,
// rewinds everything it scanned, and parses the chosen form
func (p *ScriptParser) parseArrowOrParenthesized() (Expression, error) {
	count := 0
	depth := 0
	for {
		tok, err := p.tokens.Scan()
		if err != nil {
			return nil, err
		}
		count++

		switch tok.Kind {
		case TokenOpenParen:
			depth++
		case TokenCloseParen:
			depth--
		case TokenEOF:
			return nil, NewParserError(tok.Start, ")")
		}
		if depth == 0 {
			break
		}
	}

	next, err := p.tokens.Scan()
	if err != nil {
		return nil, err
	}
	count++

	for i := 0; i < count; i++ {
		p.tokens.Unscan()
	}

	if next.Kind == TokenArrow {
		return p.parseArrowFunction()
	}
	return p.parseParenthesized()
}

func (p *ScriptParser) parseArrowFunction() (Expression, error) {
	open, err := p.expect(TokenOpenParen)
	if err != nil {
		return nil, err
	}

	params := []Expression{}
	for {
		tok, err := p.tokens.Scan()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenCloseParen:
			return p.parseArrowBody(open, params)
		case TokenIdentifier:
			params = append(params, p.identifier(tok))
		case TokenEllipsis:
			argument, err := p.ParseIdentifier()
			if err != nil {
				return nil, err
			}
			params = append(params, &SpreadExpression{
				Span:     Span{Start: tok.Start, End: argument.End},
				Argument: argument,
			})
		default:
			return nil, NewParserError(tok.Start, ExpectIdentifier, "...", ")")
		}

		tok, err = p.tokens.Scan()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenCloseParen:
			return p.parseArrowBody(open, params)
		default:
			return nil, NewParserError(tok.Start, ",", ")")
		}
	}
}

func (p *ScriptParser) parseArrowBody(open Token, params []Expression) (Expression, error) {
	if _, err := p.expect(TokenArrow); err != nil {
		return nil, err
	}
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &FunctionExpression{
		Span:       Span{Start: open.Start, End: body.Range().End},
		Parameters: params,
		Body:       body,
	}, nil
}

func (p *ScriptParser) parseParenthesized() (Expression, error) {
	open, err := p.expect(TokenOpenParen)
	if err != nil {
		return nil, err
	}
	inner, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	closing, err := p.expect(TokenCloseParen)
	if err != nil {
		return nil, err
	}
	return &ParenthesizedExpression{
		Span:       Span{Start: open.Start, End: closing.End},
		Expression: inner,
	}, nil
}

// parseArray parses an array literal with holes, spreads and a trailing comma
func (p *ScriptParser) parseArray() (Expression, error) {
	open, err := p.expect(TokenOpenBracket)
	if err != nil {
		return nil, err
	}

	elements := []Expression{}
	for {
		tok, err := p.tokens.Scan()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenCloseBracket:
			return &ArrayExpression{Span: Span{Start: open.Start, End: tok.End}, Elements: elements}, nil
		case TokenComma:
			elements = append(elements, &EmptyExpression{Span: Span{Start: tok.Start, End: tok.Start}})
			continue
		}

		element, err := p.parseElement(tok)
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)

		tok, err = p.tokens.Scan()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenCloseBracket:
			return &ArrayExpression{Span: Span{Start: open.Start, End: tok.End}, Elements: elements}, nil
		default:
			return nil, NewParserError(tok.Start, ",", "]")
		}
	}
}

// parseObject parses keyed, shorthand, computed and spread properties
func (p *ScriptParser) parseObject() (Expression, error) {
	open, err := p.expect(TokenOpenBrace)
	if err != nil {
		return nil, err
	}

	properties := []ObjectProperty{}
	for {
		tok, err := p.tokens.Scan()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenCloseBrace {
			return &ObjectExpression{Span: Span{Start: open.Start, End: tok.End}, Properties: properties}, nil
		}

		property, err := p.parseProperty(tok)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)

		tok, err = p.tokens.Scan()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenCloseBrace:
			return &ObjectExpression{Span: Span{Start: open.Start, End: tok.End}, Properties: properties}, nil
		default:
			return nil, NewParserError(tok.Start, ",", "}")
		}
	}
}

// parseProperty parses one object member; tok is its first token
func (p *ScriptParser) parseProperty(tok Token) (ObjectProperty, error) {
	switch {
	case tok.Kind == TokenEllipsis:
		argument, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &SpreadProperty{Span: Span{Start: tok.Start, End: argument.Range().End}, Argument: argument}, nil

	case tok.Kind == TokenOpenBracket:
		key, _, err := p.parseComputedProperty()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return &ComputedProperty{Span: Span{Start: tok.Start, End: value.Range().End}, Key: key, Value: value}, nil

	case tok.Kind == TokenIdentifier || tok.Kind.IsKeyword():
		key := p.identifier(tok)
		next, err := p.tokens.Peek()
		if err != nil {
			return nil, err
		}
		if next.Kind != TokenColon {
			if tok.Kind != TokenIdentifier {
				return nil, NewParserError(next.Start, ":")
			}
			return &KeyedProperty{Span: key.Span, Key: key}, nil
		}
		return p.parseKeyedValue(tok, key)

	case tok.Kind == TokenString || tok.Kind == TokenNumeric:
		p.tokens.Unscan()
		key, err := p.parseLazy()
		if err != nil {
			return nil, err
		}
		return p.parseKeyedValue(tok, key)
	}

	return nil, NewParserError(tok.Start, ExpectIdentifier, "[", "...", "}")
}

// parseKeyedValue parses `: value` after a property key
func (p *ScriptParser) parseKeyedValue(start Token, key Expression) (ObjectProperty, error) {
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &KeyedProperty{Span: Span{Start: start.Start, End: value.Range().End}, Key: key, Value: value}, nil
}

// parseNew parses `new callee[(args)]`. The callee may be a member chain
// but never swallows the argument list.
func (p *ScriptParser) parseNew(keyword Token) (Expression, error) {
	callee, err := p.parseLazy()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.tokens.Scan()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenDot:
			property, err := p.parsePropertyName()
			if err != nil {
				return nil, err
			}
			callee = &MemberExpression{
				Span:     Span{Start: callee.Range().Start, End: property.End},
				Object:   callee,
				Property: property,
			}
			continue

		case TokenOpenBracket:
			property, closing, err := p.parseComputedProperty()
			if err != nil {
				return nil, err
			}
			callee = &MemberExpression{
				Span:     Span{Start: callee.Range().Start, End: closing.End},
				Object:   callee,
				Property: property,
				Computed: true,
			}
			continue

		case TokenOpenParen:
			args, closing, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			return &NewExpression{
				Span:      Span{Start: keyword.Start, End: closing.End},
				Callee:    callee,
				Arguments: args,
			}, nil
		}

		p.tokens.Unscan()
		return &NewExpression{
			Span:   Span{Start: keyword.Start, End: callee.Range().End},
			Callee: callee,
		}, nil
	}
}

// expect consumes a token of the given kind or fails at its position
func (p *ScriptParser) expect(kind TokenKind) (Token, error) {
	tok, err := p.tokens.Scan()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, NewParserError(tok.Start, kind.String())
	}
	return tok, nil
}
