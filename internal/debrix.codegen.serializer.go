package internal

// Serializer renders script expressions back to source text. Identifiers
// that are not fragment locals are read through the component instance:
//
//	("name" in this ? this["name"] : name)
//
// Locals map a template name to the identifier emitted for it. Globals
// name module-level imports that were renamed on emission.
type Serializer struct {
	locals  map[string]string
	globals map[string]string
}

// NewSerializer creates a serializer with no locals
func NewSerializer() *Serializer {
	return &Serializer{
		locals:  make(map[string]string),
		globals: make(map[string]string),
	}
}

// WithGlobals makes the serializer fall back to renamed module imports
func (s *Serializer) WithGlobals(globals map[string]string) *Serializer {
	s.globals = globals
	return s
}

// Declare registers a local: name in the template, emitted in the output
func (s *Serializer) Declare(name, emitted string) {
	s.locals[name] = emitted
}

// Local returns the emitted identifier of a local
func (s *Serializer) Local(name string) (string, bool) {
	emitted, ok := s.locals[name]
	return emitted, ok
}

// Serialize renders expr with instance lookups enabled
func (s *Serializer) Serialize(expr Expression) *Chunk {
	return s.serialize(expr, true)
}

func (s *Serializer) serialize(expr Expression, thisify bool) *Chunk {
	c := NewChunk()

	switch e := expr.(type) {
	case *IdentifierExpression:
		return s.serializeIdentifier(e, thisify)

	case *LiteralExpression:
		c.Map(e.Start).Write(e.Raw).Map(e.End)

	case *UnaryExpression:
		op := e.Operator.String()
		c.Map(e.Start).Write(op).Map(e.Start + len(op)).Write(" ")
		if e.Operator == TokenIncrement || e.Operator == TokenDecrement || e.Operator == TokenDelete {
			c.Append(s.serializeTarget(e.Operand, thisify))
		} else {
			c.Append(s.serialize(e.Operand, thisify))
		}

	case *BinaryExpression:
		c.Append(s.serialize(e.Left, thisify)).
			Write(" " + e.Operator.String() + " ").
			Append(s.serialize(e.Right, thisify))

	case *AssignmentExpression:
		c.Append(s.serializeTarget(e.Left, thisify)).
			Write(" " + e.Operator.String() + " ").
			Append(s.serialize(e.Right, thisify))

	case *ConditionalExpression:
		c.Append(s.serialize(e.Test, thisify)).
			Write(" ? ").
			Append(s.serialize(e.Consequent, thisify)).
			Write(" : ").
			Append(s.serialize(e.Alternate, thisify))

	case *CallExpression:
		c.Append(s.serialize(e.Callee, thisify))
		s.writeList(c, "(", e.Arguments, ")", thisify)

	case *NewExpression:
		c.Map(e.Start).Write("new ").Append(s.serialize(e.Callee, thisify))
		if e.Arguments != nil {
			s.writeList(c, "(", e.Arguments, ")", thisify)
		}

	case *MemberExpression:
		c.Append(s.serialize(e.Object, thisify))
		switch {
		case e.Optional && e.Computed:
			c.Write("?.[").Append(s.serialize(e.Property, thisify)).Write("]")
		case e.Computed:
			c.Write("[").Append(s.serialize(e.Property, thisify)).Write("]")
		case e.Optional:
			c.Write("?.").Append(propertyName(e.Property))
		default:
			c.Write(".").Append(propertyName(e.Property))
		}

	case *FunctionExpression:
		c.Map(e.Start).Write("(")
		inner := s.scope()
		for _, param := range e.Parameters {
			if name := paramName(param); name != "" {
				inner.Declare(name, name)
			}
		}
		for i, param := range e.Parameters {
			if i > 0 {
				c.Write(", ")
			}
			c.Append(inner.serialize(param, false))
		}
		c.Write(") => ").Append(inner.serialize(e.Body, thisify))

	case *SpreadExpression:
		c.Map(e.Start).Write("...").Append(s.serialize(e.Argument, thisify))

	case *TemplateLiteral:
		return s.serializeTemplate(e)

	case *TaggedTemplateExpression:
		c.Append(s.serialize(e.Tag, thisify)).Append(s.serializeTemplate(e.Quasi))

	case *ObjectExpression:
		c.Map(e.Start).Write("{")
		for i, prop := range e.Properties {
			if i > 0 {
				c.Write(", ")
			}
			c.Append(s.serializeProperty(prop, thisify))
		}
		c.Write("}").Map(e.End)

	case *ArrayExpression:
		c.Map(e.Start)
		s.writeList(c, "[", e.Elements, "", thisify)
		if n := len(e.Elements); n > 0 {
			if _, hole := e.Elements[n-1].(*EmptyExpression); hole {
				c.Write(",")
			}
		}
		c.Write("]").Map(e.End)

	case *ParenthesizedExpression:
		c.Map(e.Start).Write("(").Append(s.serialize(e.Expression, thisify)).Write(")").Map(e.End)

	case *EmptyExpression:
		c.Map(e.Start)
	}

	return c
}

// serializeIdentifier renders a name as a local, a global, or an
// instance lookup
func (s *Serializer) serializeIdentifier(e *IdentifierExpression, thisify bool) *Chunk {
	c := NewChunk().Map(e.Start)

	if emitted, ok := s.locals[e.Name]; ok {
		return c.Write(emitted).Map(e.End)
	}
	if _, global := globalNames[e.Name]; global || !thisify {
		return c.Write(e.Name).Map(e.End)
	}

	quoted := InString(e.Name)
	if IsReserved(e.Name) {
		return c.Write("this[" + quoted + "]").Map(e.End)
	}
	fallback := e.Name
	if renamed, ok := s.globals[e.Name]; ok {
		fallback = renamed
	}
	return c.Write("(" + quoted + " in this ? this[" + quoted + "] : " + fallback + ")").Map(e.End)
}

// serializeTarget renders an assignment target. Instance names are
// written through this; anything else renders normally.
func (s *Serializer) serializeTarget(expr Expression, thisify bool) *Chunk {
	id, ok := expr.(*IdentifierExpression)
	if !ok || !thisify {
		return s.serialize(expr, thisify)
	}
	if _, local := s.locals[id.Name]; local {
		return s.serializeIdentifier(id, thisify)
	}
	if _, global := globalNames[id.Name]; global {
		return s.serializeIdentifier(id, thisify)
	}
	return NewChunk().Map(id.Start).Write("this[" + InString(id.Name) + "]").Map(id.End)
}

func (s *Serializer) serializeProperty(prop ObjectProperty, thisify bool) *Chunk {
	c := NewChunk()

	switch p := prop.(type) {
	case *KeyedProperty:
		if id, ok := p.Key.(*IdentifierExpression); ok {
			c.Map(id.Start).Write(id.Name).Map(id.End)
			if p.Value == nil {
				value := s.serialize(id, thisify)
				if value.Source() != id.Name {
					c.Write(": ").Append(value)
				}
				return c
			}
		} else {
			c.Append(s.serialize(p.Key, false))
		}
		c.Write(": ").Append(s.serialize(p.Value, thisify))

	case *ComputedProperty:
		c.Map(p.Start).Write("[").
			Append(s.serialize(p.Key, thisify)).
			Write("]: ").
			Append(s.serialize(p.Value, thisify))

	case *SpreadProperty:
		c.Map(p.Start).Write("...").Append(s.serialize(p.Argument, thisify))
	}

	return c
}

// serializeTemplate writes the template literal verbatim; interpolations
// are not rewritten
func (s *Serializer) serializeTemplate(e *TemplateLiteral) *Chunk {
	return NewChunk().Map(e.Start).Write("`" + e.Raw + "`").Map(e.End)
}

func (s *Serializer) writeList(c *Chunk, open string, items []Expression, closing string, thisify bool) {
	c.Write(open)
	for i, item := range items {
		if i > 0 {
			c.Write(", ")
		}
		c.Append(s.serialize(item, thisify))
	}
	c.Write(closing)
}

// scope returns a serializer sharing the current locals by copy
func (s *Serializer) scope() *Serializer {
	inner := NewSerializer().WithGlobals(s.globals)
	for k, v := range s.locals {
		inner.locals[k] = v
	}
	return inner
}

func paramName(param Expression) string {
	switch p := param.(type) {
	case *IdentifierExpression:
		return p.Name
	case *SpreadExpression:
		if id, ok := p.Argument.(*IdentifierExpression); ok {
			return id.Name
		}
	}
	return ""
}

// propertyName writes a member name exactly as it appears in the source
func propertyName(expr Expression) *Chunk {
	if id, ok := expr.(*IdentifierExpression); ok {
		return NewChunk().Map(id.Start).Write(id.Name).Map(id.End)
	}
	return NewSerializer().serialize(expr, false)
}
