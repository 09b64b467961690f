package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sexpr renders an expression tree in a compact prefix form for assertions
func sexpr(expr Expression) string {
	switch e := expr.(type) {
	case *IdentifierExpression:
		return e.Name
	case *LiteralExpression:
		return e.Raw
	case *UnaryExpression:
		return "(" + e.Operator.String() + " " + sexpr(e.Operand) + ")"
	case *BinaryExpression:
		return "(" + e.Operator.String() + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *AssignmentExpression:
		return "(" + e.Operator.String() + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *ConditionalExpression:
		return "(? " + sexpr(e.Test) + " " + sexpr(e.Consequent) + " " + sexpr(e.Alternate) + ")"
	case *CallExpression:
		return "(call " + sexpr(e.Callee) + sexprList(e.Arguments) + ")"
	case *NewExpression:
		if e.Arguments == nil {
			return "(new " + sexpr(e.Callee) + ")"
		}
		return "(new " + sexpr(e.Callee) + " (args" + sexprList(e.Arguments) + "))"
	case *MemberExpression:
		op := "."
		if e.Computed {
			op = "[]"
		}
		if e.Optional {
			op = "?" + op
		}
		return "(" + op + " " + sexpr(e.Object) + " " + sexpr(e.Property) + ")"
	case *FunctionExpression:
		return "(=> (" + strings.TrimPrefix(sexprList(e.Parameters), " ") + ") " + sexpr(e.Body) + ")"
	case *SpreadExpression:
		return "(... " + sexpr(e.Argument) + ")"
	case *TemplateLiteral:
		return "`" + e.Raw + "`"
	case *TaggedTemplateExpression:
		return "(tag " + sexpr(e.Tag) + " " + sexpr(e.Quasi) + ")"
	case *ObjectExpression:
		parts := make([]string, len(e.Properties))
		for i, prop := range e.Properties {
			switch p := prop.(type) {
			case *KeyedProperty:
				if p.Value == nil {
					parts[i] = sexpr(p.Key)
				} else {
					parts[i] = sexpr(p.Key) + ":" + sexpr(p.Value)
				}
			case *ComputedProperty:
				parts[i] = "[" + sexpr(p.Key) + "]:" + sexpr(p.Value)
			case *SpreadProperty:
				parts[i] = "..." + sexpr(p.Argument)
			}
		}
		return "{" + strings.Join(parts, " ") + "}"
	case *ArrayExpression:
		return "[" + strings.TrimPrefix(sexprList(e.Elements), " ") + "]"
	case *ParenthesizedExpression:
		return "(paren " + sexpr(e.Expression) + ")"
	case *EmptyExpression:
		return "_"
	}
	return "?"
}

func sexprList(exprs []Expression) string {
	var sb strings.Builder
	for _, expr := range exprs {
		sb.WriteString(" ")
		sb.WriteString(sexpr(expr))
	}
	return sb.String()
}

func TestScriptParser_ParseExpression(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "identifier", input: "foo", expected: "foo"},
		{name: "number", input: "1.5", expected: "1.5"},
		{name: "string", input: `'hi'`, expected: `'hi'`},
		{name: "boolean", input: "true", expected: "true"},
		{name: "null", input: "null", expected: "null"},
		{name: "binary", input: "a + b", expected: "(+ a b)"},
		{name: "binary chains nest to the right", input: "a - b - c", expected: "(- a (- b c))"},
		{name: "no precedence between operators", input: "a * b + c", expected: "(* a (+ b c))"},
		{name: "in operator", input: "a in b", expected: "(in a b)"},
		{name: "assignment", input: "a = b = c", expected: "(= a (= b c))"},
		{name: "compound assignment", input: "a += 1", expected: "(+= a 1)"},
		{name: "conditional", input: "a ? b : c", expected: "(? a b c)"},
		{name: "conditional with a fraction", input: "a ?.5 : 1", expected: "(? a .5 1)"},
		{name: "unary", input: "!a", expected: "(! a)"},
		{name: "typeof", input: "typeof a", expected: "(typeof a)"},
		{name: "unary takes the whole rest", input: "-a + b", expected: "(- (+ a b))"},
		{name: "member chain", input: "a.b.c", expected: "(. (. a b) c)"},
		{name: "keyword property", input: "a.new", expected: "(. a new)"},
		{name: "computed member", input: "a[b]", expected: "([] a b)"},
		{name: "optional member", input: "a?.b", expected: "(?. a b)"},
		{name: "optional computed member", input: "a?.[0]", expected: "(?[] a 0)"},
		{name: "optional chain continues", input: "a?.b.c", expected: "(. (?. a b) c)"},
		{name: "call", input: "f(a, ...b,)", expected: "(call f a (... b))"},
		{name: "call chain", input: "a.b(c).d", expected: "(. (call (. a b) c) d)"},
		{name: "new without arguments", input: "new Foo", expected: "(new Foo)"},
		{name: "new with member callee", input: "new a.b(c)", expected: "(new (. a b) (args c))"},
		{name: "new with empty arguments", input: "new Foo()", expected: "(new Foo (args))"},
		{name: "member after new", input: "new Foo().bar", expected: "(. (new Foo (args)) bar)"},
		{name: "arrow function", input: "(a, b) => a + b", expected: "(=> (a b) (+ a b))"},
		{name: "arrow with rest", input: "(...rest) => rest", expected: "(=> ((... rest)) rest)"},
		{name: "arrow without parameters", input: "() => 1", expected: "(=> () 1)"},
		{name: "parenthesized", input: "(a)", expected: "(paren a)"},
		{name: "nested parentheses", input: "(a + (b)) * c", expected: "(* (paren (+ a (paren b))) c)"},
		{name: "array", input: "[1, ...a, b,]", expected: "[1 (... a) b]"},
		{name: "array holes", input: "[1, , 2]", expected: "[1 _ 2]"},
		{name: "leading hole", input: "[,a]", expected: "[_ a]"},
		{name: "empty array", input: "[]", expected: "[]"},
		{name: "object", input: "{a, b: 1, [c]: d, ...e, 'f': g, 2: h}", expected: "{a b:1 [c]:d ...e 'f':g 2:h}"},
		{name: "keyword key", input: "{new: 1}", expected: "{new:1}"},
		{name: "template", input: "`a ${b}`", expected: "`a ${b}`"},
		{name: "tagged template", input: "tag`x`", expected: "(tag tag `x`)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseScriptExpression(NewScanner(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sexpr(expr))

			span := expr.Range()
			assert.Equal(t, tt.input, tt.input[span.Start:span.End], "span must cover the source")
		})
	}
}

func TestScriptParser_StopsBeforeFollowingToken(t *testing.T) {
	s := NewScanner("a + b } rest")
	expr, err := ParseScriptExpression(s)
	require.NoError(t, err)
	assert.Equal(t, "(+ a b)", sexpr(expr))
	assert.Equal(t, 6, s.Cursor())
}

func TestScriptParser_ChildSpans(t *testing.T) {
	input := "foo.bar(baz)"
	expr, err := ParseScriptExpression(NewScanner(input))
	require.NoError(t, err)

	call, ok := expr.(*CallExpression)
	require.True(t, ok)
	member, ok := call.Callee.(*MemberExpression)
	require.True(t, ok)

	slice := func(r Ranged) string {
		span := r.Range()
		return input[span.Start:span.End]
	}
	assert.Equal(t, "foo.bar", slice(member))
	assert.Equal(t, "foo", slice(member.Object))
	assert.Equal(t, "bar", slice(member.Property))
	assert.Equal(t, "baz", slice(call.Arguments[0]))
}

func TestScriptParser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		position  int
		positives []string
	}{
		{name: "missing operand", input: "a +", position: 3, positives: []string{ExpectExpression}},
		{name: "unclosed paren", input: "(a", position: 2, positives: []string{")"}},
		{name: "this is not supported", input: "this", position: 0, positives: []string{ExpectExpression}},
		{name: "missing comma in arguments", input: "f(a b)", position: 4, positives: []string{",", ")"}},
		{name: "missing colon in conditional", input: "a ? b c", position: 6, positives: []string{":"}},
		{name: "bad arrow parameter", input: "(1) => 2", position: 1, positives: []string{ExpectIdentifier, "...", ")"}},
		{name: "bad object key", input: "{(a): 1}", position: 1, positives: []string{ExpectIdentifier, "[", "...", "}"}},
		{name: "keyword shorthand", input: "{new}", position: 4, positives: []string{":"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScriptExpression(NewScanner(tt.input))
			var perr *ParserError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.position, perr.Position)
			assert.Equal(t, tt.positives, perr.Positives)
		})
	}
}
