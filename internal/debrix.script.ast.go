package internal

// Span is a half-open [Start, End) byte range into the template source.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Range returns the span itself. Every AST node gets it by embedding Span.
func (s Span) Range() Span {
	return s
}

// Len returns the byte length of the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Ranged is implemented by every AST node
type Ranged interface {
	Range() Span
}

// ExpressionKind identifies the variant of a script expression
type ExpressionKind int

// Expression kinds
const (
	ExpressionIdentifier ExpressionKind = iota
	ExpressionLiteral
	ExpressionUnary
	ExpressionBinary
	ExpressionConditional
	ExpressionCall
	ExpressionNew
	ExpressionMember
	ExpressionFunction
	ExpressionAssignment
	ExpressionSpread
	ExpressionTemplate
	ExpressionTaggedTemplate
	ExpressionObject
	ExpressionArray
	ExpressionParenthesized
	ExpressionEmpty
)

// Expression kind names for debugging
var expressionKindNames = [...]string{
	ExpressionIdentifier:     "Identifier",
	ExpressionLiteral:        "Literal",
	ExpressionUnary:          "Unary",
	ExpressionBinary:         "Binary",
	ExpressionConditional:    "Conditional",
	ExpressionCall:           "Call",
	ExpressionNew:            "New",
	ExpressionMember:         "Member",
	ExpressionFunction:       "Function",
	ExpressionAssignment:     "Assignment",
	ExpressionSpread:         "Spread",
	ExpressionTemplate:       "Template",
	ExpressionTaggedTemplate: "TaggedTemplate",
	ExpressionObject:         "Object",
	ExpressionArray:          "Array",
	ExpressionParenthesized:  "Parenthesized",
	ExpressionEmpty:          "Empty",
}

// String returns the variant name
func (k ExpressionKind) String() string {
	if int(k) < len(expressionKindNames) {
		return expressionKindNames[k]
	}
	return TokenNameUnknown
}

// Expression is the closed sum type of script expressions
type Expression interface {
	Ranged
	Kind() ExpressionKind
	expression()
}

// IdentifierExpression is a bare name
type IdentifierExpression struct {
	Span
	Name string
}

// LiteralKind identifies the literal class
type LiteralKind int

// Literal kinds
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBoolean
	LiteralNull
)

var literalKindNames = [...]string{
	LiteralNumber:  "Number",
	LiteralString:  "String",
	LiteralBoolean: "Boolean",
	LiteralNull:    "Null",
}

func (k LiteralKind) String() string {
	if int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return TokenNameUnknown
}

// LiteralExpression is a number, string, boolean or null literal.
// Raw keeps the source text; Value is the unquoted content for strings.
type LiteralExpression struct {
	Span
	Literal LiteralKind
	Raw     string
	Value   string
	Quote   rune
}

// UnaryExpression is a prefix operator applied to an operand
type UnaryExpression struct {
	Span
	Operator TokenKind
	Operand  Expression
}

// BinaryExpression is a binary operator expression
type BinaryExpression struct {
	Span
	Operator TokenKind
	Left     Expression
	Right    Expression
}

// AssignmentExpression is an assignment or compound assignment
type AssignmentExpression struct {
	Span
	Operator TokenKind
	Left     Expression
	Right    Expression
}

// ConditionalExpression is the ternary operator
type ConditionalExpression struct {
	Span
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// CallExpression is a function call
type CallExpression struct {
	Span
	Callee    Expression
	Arguments []Expression
}

// NewExpression is a constructor call. Arguments is nil when the
// argument list was omitted.
type NewExpression struct {
	Span
	Callee    Expression
	Arguments []Expression
}

// MemberExpression is a property access
type MemberExpression struct {
	Span
	Object   Expression
	Property Expression
	Computed bool
	Optional bool
}

// FunctionExpression is an arrow function with an expression body.
// Parameters are identifiers or spreads of identifiers.
type FunctionExpression struct {
	Span
	Parameters []Expression
	Body       Expression
}

// SpreadExpression is `...argument`
type SpreadExpression struct {
	Span
	Argument Expression
}

// TemplateLiteral keeps the text between the backticks verbatim
type TemplateLiteral struct {
	Span
	Raw string
}

// TaggedTemplateExpression is a tag applied to a template literal
type TaggedTemplateExpression struct {
	Span
	Tag   Expression
	Quasi *TemplateLiteral
}

// ObjectExpression is an object literal
type ObjectExpression struct {
	Span
	Properties []ObjectProperty
}

// ArrayExpression is an array literal; holes are EmptyExpression
type ArrayExpression struct {
	Span
	Elements []Expression
}

// ParenthesizedExpression wraps an expression in parentheses
type ParenthesizedExpression struct {
	Span
	Expression Expression
}

// EmptyExpression is an elided array slot
type EmptyExpression struct {
	Span
}

func (*IdentifierExpression) Kind() ExpressionKind     { return ExpressionIdentifier }
func (*LiteralExpression) Kind() ExpressionKind        { return ExpressionLiteral }
func (*UnaryExpression) Kind() ExpressionKind          { return ExpressionUnary }
func (*BinaryExpression) Kind() ExpressionKind         { return ExpressionBinary }
func (*AssignmentExpression) Kind() ExpressionKind     { return ExpressionAssignment }
func (*ConditionalExpression) Kind() ExpressionKind    { return ExpressionConditional }
func (*CallExpression) Kind() ExpressionKind           { return ExpressionCall }
func (*NewExpression) Kind() ExpressionKind            { return ExpressionNew }
func (*MemberExpression) Kind() ExpressionKind         { return ExpressionMember }
func (*FunctionExpression) Kind() ExpressionKind       { return ExpressionFunction }
func (*SpreadExpression) Kind() ExpressionKind         { return ExpressionSpread }
func (*TemplateLiteral) Kind() ExpressionKind          { return ExpressionTemplate }
func (*TaggedTemplateExpression) Kind() ExpressionKind { return ExpressionTaggedTemplate }
func (*ObjectExpression) Kind() ExpressionKind         { return ExpressionObject }
func (*ArrayExpression) Kind() ExpressionKind          { return ExpressionArray }
func (*ParenthesizedExpression) Kind() ExpressionKind  { return ExpressionParenthesized }
func (*EmptyExpression) Kind() ExpressionKind          { return ExpressionEmpty }

func (*IdentifierExpression) expression()     {}
func (*LiteralExpression) expression()        {}
func (*UnaryExpression) expression()          {}
func (*BinaryExpression) expression()         {}
func (*AssignmentExpression) expression()     {}
func (*ConditionalExpression) expression()    {}
func (*CallExpression) expression()           {}
func (*NewExpression) expression()            {}
func (*MemberExpression) expression()         {}
func (*FunctionExpression) expression()       {}
func (*SpreadExpression) expression()         {}
func (*TemplateLiteral) expression()          {}
func (*TaggedTemplateExpression) expression() {}
func (*ObjectExpression) expression()         {}
func (*ArrayExpression) expression()          {}
func (*ParenthesizedExpression) expression()  {}
func (*EmptyExpression) expression()          {}

// ObjectProperty is the closed sum type of object literal members
type ObjectProperty interface {
	Ranged
	objectProperty()
}

// KeyedProperty is `key: value`, or shorthand `key` when Value is nil.
// Key is an identifier, or a string or number literal.
type KeyedProperty struct {
	Span
	Key   Expression
	Value Expression
}

// ComputedProperty is `[key]: value`
type ComputedProperty struct {
	Span
	Key   Expression
	Value Expression
}

// SpreadProperty is `...argument`
type SpreadProperty struct {
	Span
	Argument Expression
}

func (*KeyedProperty) objectProperty()    {}
func (*ComputedProperty) objectProperty() {}
func (*SpreadProperty) objectProperty()   {}
