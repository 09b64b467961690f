package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serializeSource(t *testing.T, s *Serializer, input string) string {
	t.Helper()
	expr, err := ParseScriptExpression(NewScanner(input))
	require.NoError(t, err)
	return s.Serialize(expr).Source()
}

func TestSerializer_Serialize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "instance lookup", input: "a", expected: `("a" in this ? this["a"] : a)`},
		{name: "global names pass through", input: "undefined", expected: "undefined"},
		{name: "literals", input: `'x'`, expected: `'x'`},
		{name: "reserved name", input: "class", expected: `this["class"]`},
		{name: "binary", input: "a + 1", expected: `("a" in this ? this["a"] : a) + 1`},
		{name: "member property is not rewritten", input: "a.b", expected: `("a" in this ? this["a"] : a).b`},
		{name: "optional member", input: "a?.b", expected: `("a" in this ? this["a"] : a)?.b`},
		{name: "computed member", input: "a[0]", expected: `("a" in this ? this["a"] : a)[0]`},
		{name: "call", input: "f(1, ...x)", expected: `("f" in this ? this["f"] : f)(1, ...("x" in this ? this["x"] : x))`},
		{name: "assignment target", input: "a = 1", expected: `this["a"] = 1`},
		{name: "increment target", input: "++a", expected: `++ this["a"]`},
		{name: "unary", input: "!a", expected: `! ("a" in this ? this["a"] : a)`},
		{name: "conditional", input: "1 ? 2 : 3", expected: "1 ? 2 : 3"},
		{name: "arrow parameters are locals", input: "(x, ...r) => x + r", expected: "(x, ...r) => x + r"},
		{name: "arrow body reads instance", input: "(x) => y", expected: `(x) => ("y" in this ? this["y"] : y)`},
		{name: "object", input: "{a, b: 1, [c]: 2, ...d}", expected: `{a: ("a" in this ? this["a"] : a), b: 1, [("c" in this ? this["c"] : c)]: 2, ...("d" in this ? this["d"] : d)}`},
		{name: "string key", input: "{'k': 1}", expected: "{'k': 1}"},
		{name: "array with holes", input: "[1, , 2]", expected: "[1, , 2]"},
		{name: "trailing hole", input: "[1, ,]", expected: "[1, ,]"},
		{name: "parenthesized", input: "(1)", expected: "(1)"},
		{name: "new", input: "new Date()", expected: `new ("Date" in this ? this["Date"] : Date)()`},
		{name: "template is raw", input: "`a ${b}`", expected: "`a ${b}`"},
		{name: "tagged template", input: "t`x`", expected: "(\"t\" in this ? this[\"t\"] : t)`x`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, serializeSource(t, NewSerializer(), tt.input))
		})
	}
}

func TestSerializer_Locals(t *testing.T) {
	s := NewSerializer()
	s.Declare("item", "item_1")
	s.Declare("$self", "$self")

	assert.Equal(t, "item_1.name", serializeSource(t, s, "item.name"))
	assert.Equal(t, "item_1 = 2", serializeSource(t, s, "item = 2"))
	assert.Equal(t, "{item: item_1}", serializeSource(t, s, "{item}"))
	assert.Equal(t, "$self.slots", serializeSource(t, s, "$self.slots"))

	emitted, ok := s.Local("item")
	assert.True(t, ok)
	assert.Equal(t, "item_1", emitted)
}

func TestSerializer_ArrowShadowsLocal(t *testing.T) {
	s := NewSerializer()
	s.Declare("item", "item_1")

	assert.Equal(t, "(item) => item", serializeSource(t, s, "(item) => item"))
	assert.Equal(t, "item_1", serializeSource(t, s, "item"), "arrow scope must not leak")
}

func TestSerializer_Globals(t *testing.T) {
	s := NewSerializer().WithGlobals(map[string]string{"format": "format_1"})

	assert.Equal(t, `("format" in this ? this["format"] : format_1)(1)`, serializeSource(t, s, "format(1)"))
	assert.Equal(t, `("format" in this ? this["format"] : format_1)`, serializeSource(t, s, "format"))
}

func TestSerializer_Mappings(t *testing.T) {
	input := "a + b"
	expr, err := ParseScriptExpression(NewScanner(input))
	require.NoError(t, err)

	chunk := NewSerializer().Serialize(expr)
	lookup := `("a" in this ? this["a"] : a)`
	assert.Equal(t, []Mapping{
		{Original: 0, GenLine: 0, GenColumn: 0},
		{Original: 1, GenLine: 0, GenColumn: len(lookup)},
		{Original: 4, GenLine: 0, GenColumn: len(lookup) + 3},
		{Original: 5, GenLine: 0, GenColumn: 2*len(lookup) + 3},
	}, chunk.Mappings())
}
