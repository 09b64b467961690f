package internal

// parseDependency parses
//
//	using usage [local] from "source"
//	using { usage imported [as local] ... } from "source"
//	using usage [local], { ... } from "source"
func (p *Parser) parseDependency() (Node, error) {
	s := p.scanner
	start := s.Cursor()
	if !p.takeWord(StrUsing) {
		return nil, NewParserError(start, StrUsing)
	}
	p.skipWhitespace()

	dep := &DependencyStatement{}

	if s.Peek() != CharOpenBrace {
		def, err := p.parseDefaultSpecifier()
		if err != nil {
			return nil, err
		}
		dep.Default = def

		p.skipWhitespace()
		if s.Peek() == CharComma {
			s.Next()
			p.skipWhitespace()
			if s.Peek() != CharOpenBrace {
				return nil, NewParserError(s.Cursor(), string(CharOpenBrace))
			}
		}
	}

	if s.Peek() == CharOpenBrace {
		named, err := p.parseNamedSpecifiers()
		if err != nil {
			return nil, err
		}
		dep.Named = named
		p.skipWhitespace()
	}

	if !p.takeWord(StrFrom) {
		return nil, NewParserError(s.Cursor(), StrFrom)
	}
	p.skipWhitespace()

	source, err := p.parseStringLiteral()
	if err != nil {
		return nil, err
	}
	dep.Source = source
	dep.Span = Span{Start: start, End: source.End}
	return dep, nil
}

// parseDefaultSpecifier parses `usage [local]`. In `using foo from from "x"`
// the first `from` is the local name.
func (p *Parser) parseDefaultSpecifier() (*DefaultSpecifier, error) {
	s := p.scanner
	usage, err := p.parseName(ExpectSpecifier)
	if err != nil {
		return nil, err
	}
	spec := &DefaultSpecifier{Span: usage.Span, Usage: usage}

	save := s.Cursor()
	p.skipWhitespace()
	if !isIdentStart(s.Peek()) {
		s.SetCursor(save)
		return spec, nil
	}

	local, err := p.parseName(ExpectIdentifier)
	if err != nil {
		return nil, err
	}
	if local.Name == StrFrom {
		p.skipWhitespace()
		if next := s.Peek(); next == CharDoubleQuote || next == CharSingleQuote {
			s.SetCursor(save)
			return spec, nil
		}
	}

	spec.Local = local
	spec.End = local.End
	return spec, nil
}

// parseNamedSpecifiers parses `{ usage imported [as local] ... }`.
// Specifiers may be separated by whitespace or commas.
func (p *Parser) parseNamedSpecifiers() (*NamedSpecifiers, error) {
	s := p.scanner
	start := s.Cursor()
	s.Next()

	named := &NamedSpecifiers{Specifiers: []*NamedSpecifier{}}
	for {
		p.skipWhitespace()
		if s.Peek() == CharCloseBrace {
			s.Next()
			break
		}
		if s.IsDone() {
			return nil, NewParserError(s.Cursor(), string(CharCloseBrace))
		}

		spec, err := p.parseNamedSpecifier()
		if err != nil {
			return nil, err
		}
		named.Specifiers = append(named.Specifiers, spec)

		p.skipWhitespace()
		if s.Peek() == CharComma {
			s.Next()
		}
	}

	named.Span = Span{Start: start, End: s.Cursor()}
	return named, nil
}

func (p *Parser) parseNamedSpecifier() (*NamedSpecifier, error) {
	s := p.scanner
	usage, err := p.parseName(ExpectSpecifier)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	imported, err := p.parseName(ExpectIdentifier)
	if err != nil {
		return nil, err
	}
	spec := &NamedSpecifier{
		Span:     Span{Start: usage.Start, End: imported.End},
		Usage:    usage,
		Imported: imported,
	}

	save := s.Cursor()
	p.skipWhitespace()
	if !p.takeWord(StrAs) {
		s.SetCursor(save)
		return spec, nil
	}
	p.skipWhitespace()
	local, err := p.parseName(ExpectIdentifier)
	if err != nil {
		return nil, err
	}
	spec.Local = local
	spec.End = local.End
	return spec, nil
}
