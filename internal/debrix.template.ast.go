package internal

// NodeKind identifies the variant of a template node
type NodeKind int

// Node kinds
const (
	NodeDependency NodeKind = iota
	NodeComment
	NodeElement
	NodeText
	NodeTextBinding
	NodeWhen
	NodeEach
)

var nodeKindNames = [...]string{
	NodeDependency:  "DependencyStatement",
	NodeComment:     "Comment",
	NodeElement:     "Element",
	NodeText:        "Text",
	NodeTextBinding: "TextBinding",
	NodeWhen:        "When",
	NodeEach:        "Each",
}

// String returns the variant name
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return TokenNameUnknown
}

// Node is the closed sum type of template nodes
type Node interface {
	Ranged
	Kind() NodeKind
	node()
}

// Document is the parse result: the ordered top-level nodes
type Document struct {
	Span
	Children []Node
}

// Identifier is a name in template syntax: tag, attribute or specifier
type Identifier struct {
	Span
	Name string
}

// StringLiteral is a quoted template string. Escapes are not processed.
type StringLiteral struct {
	Span
	Value string
	Quote rune
}

// Serialize returns the literal with its original quotes
func (l *StringLiteral) Serialize() string {
	return string(l.Quote) + l.Value + string(l.Quote)
}

// DependencyStatement is `using default, { named } from "source"`
type DependencyStatement struct {
	Span
	Default *DefaultSpecifier
	Named   *NamedSpecifiers
	Source  *StringLiteral
}

// DefaultSpecifier is `usage [local]`
type DefaultSpecifier struct {
	Span
	Usage *Identifier
	Local *Identifier
}

// NamedSpecifiers is the braced specifier list
type NamedSpecifiers struct {
	Span
	Specifiers []*NamedSpecifier
}

// NamedSpecifier is `usage imported [as local]`
type NamedSpecifier struct {
	Span
	Usage    *Identifier
	Imported *Identifier
	Local    *Identifier
}

// Comment is `<!-- content -->`
type Comment struct {
	Span
	Content string
}

// Element is a tag with attributes and children. EndTag is nil for
// self-closing elements.
type Element struct {
	Span
	Tag        *Identifier
	Attributes []Attribute
	Children   []Node
	StartTag   Span
	EndTag     *Span
}

// Text is raw character data; whitespace is collapsed during generation
type Text struct {
	Span
	Content string
}

// TextBinding is `{expression}` in content position
type TextBinding struct {
	Span
	Expression Expression
}

// WhenBlock is `#when cond { ... }` with its `#else` chain
type WhenBlock struct {
	Span
	Condition Expression
	Children  []Node
	Chain     []*ElseBlock
}

// ElseBlock is `#else { ... }` or `#else when cond { ... }`
type ElseBlock struct {
	Span
	Condition Expression
	Children  []Node
}

// EachBlock is `#each item in items { ... }`
type EachBlock struct {
	Span
	Iterator *Identifier
	Iterable Expression
	Children []Node
}

func (*DependencyStatement) Kind() NodeKind { return NodeDependency }
func (*Comment) Kind() NodeKind             { return NodeComment }
func (*Element) Kind() NodeKind             { return NodeElement }
func (*Text) Kind() NodeKind                { return NodeText }
func (*TextBinding) Kind() NodeKind         { return NodeTextBinding }
func (*WhenBlock) Kind() NodeKind           { return NodeWhen }
func (*EachBlock) Kind() NodeKind           { return NodeEach }

func (*DependencyStatement) node() {}
func (*Comment) node()             {}
func (*Element) node()             {}
func (*Text) node()                {}
func (*TextBinding) node()         {}
func (*WhenBlock) node()           {}
func (*EachBlock) node()           {}

// AttributeKind identifies the variant of an attribute
type AttributeKind int

// Attribute kinds
const (
	AttributeStatic AttributeKind = iota
	AttributeBinding
	AttributeSpread
	AttributeShortBinding
)

var attributeKindNames = [...]string{
	AttributeStatic:       "Static",
	AttributeBinding:      "Binding",
	AttributeSpread:       "Spread",
	AttributeShortBinding: "ShortBinding",
}

// String returns the variant name
func (k AttributeKind) String() string {
	if int(k) < len(attributeKindNames) {
		return attributeKindNames[k]
	}
	return TokenNameUnknown
}

// Attribute is the closed sum type of element attributes
type Attribute interface {
	Ranged
	Kind() AttributeKind
	attribute()
}

// StaticAttribute is `name` or `name="value"`
type StaticAttribute struct {
	Span
	Name  *Identifier
	Value *StringLiteral
}

// BindingAttribute is `name={expression}`; a `bind:` prefix selects a binder
type BindingAttribute struct {
	Span
	Name  *Identifier
	Value Expression
}

// SpreadAttribute is `{...expression}`
type SpreadAttribute struct {
	Span
	Value Expression
}

// ShortBindingAttribute is `{name}`
type ShortBindingAttribute struct {
	Span
	Name *Identifier
}

// Expression returns the bound identifier as a script expression
func (a *ShortBindingAttribute) Expression() *IdentifierExpression {
	return &IdentifierExpression{Span: a.Name.Span, Name: a.Name.Name}
}

func (*StaticAttribute) Kind() AttributeKind       { return AttributeStatic }
func (*BindingAttribute) Kind() AttributeKind      { return AttributeBinding }
func (*SpreadAttribute) Kind() AttributeKind       { return AttributeSpread }
func (*ShortBindingAttribute) Kind() AttributeKind { return AttributeShortBinding }

func (*StaticAttribute) attribute()       {}
func (*BindingAttribute) attribute()      {}
func (*SpreadAttribute) attribute()       {}
func (*ShortBindingAttribute) attribute() {}

// AttributeName returns the name of a named attribute, or "" for spreads
func AttributeName(attr Attribute) string {
	switch a := attr.(type) {
	case *StaticAttribute:
		return a.Name.Name
	case *BindingAttribute:
		return a.Name.Name
	case *ShortBindingAttribute:
		return a.Name.Name
	}
	return ""
}

// FindAttribute returns the first attribute named name
func FindAttribute(attrs []Attribute, name string) Attribute {
	for _, attr := range attrs {
		if AttributeName(attr) == name {
			return attr
		}
	}
	return nil
}
