package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func generate(t *testing.T, input string) string {
	t.Helper()
	doc, err := Parse(input, zap.NewNop())
	require.NoError(t, err)
	chunk, err := Generate(doc, zap.NewNop())
	require.NoError(t, err)
	return chunk.Source()
}

func generateError(t *testing.T, input string) *CompilerError {
	t.Helper()
	doc, err := Parse(input, nil)
	require.NoError(t, err)
	_, err = Generate(doc, nil)
	var cerr *CompilerError
	require.ErrorAs(t, err, &cerr)
	return cerr
}

func TestGenerator_Render_Element(t *testing.T) {
	out := generate(t, `<div class="x">{a + b}</div>`)

	expected := `import { Component, element, attr, text, bind_text, insert } from "@debrix/internal";

function render_default($self) {
	/* declarations */
	let div_1 = element("div");
	let text_1 = text();

	/* initialization */
	attr(div_1, "class", "x");

	/* binding */
	bind_text(text_1, this.$computed(() => ("a" in this ? this["a"] : a) + ("b" in this ? this["b"] : b)));

	/* appending */
	insert(div_1, null, text_1);

	return [div_1];
}

class Default extends Component {
	static render = render_default;
}

export { Default as default };
`
	assert.Equal(t, expected, out)
}

func TestGenerator_Render_WhenElse(t *testing.T) {
	out := generate(t, `<div>#when cond { <p>yes</p> } #else { <p>no</p> }</div>`)

	assert.Contains(t, out, "function render_fragment_1($self) {")
	assert.Contains(t, out, "function render_fragment_2($self) {")
	assert.Equal(t, 3, strings.Count(out, "\nfunction "))
	assert.Contains(t, out, "let fragment_1 = render_fragment_1.call(this, $self);")
	assert.Contains(t, out, "let fragment_2 = render_fragment_2.call(this, $self);")
	assert.Contains(t, out, `let accessor_1 = this.$computed(() => ("cond" in this ? this["cond"] : cond));`)
	assert.Contains(t, out, "let flow_1 = bind_when(fragment_1, accessor_1);")
	assert.Contains(t, out, "let flow_2 = bind_when(fragment_2, computed_not(accessor_1));")
	assert.Equal(t, 2, strings.Count(out, "bind_when(fragment_"))
	assert.Contains(t, out, "insert(div_1, null, flow_1, flow_2);")
	assert.Contains(t, out, `let text_1 = text("yes");`)
}

func TestGenerator_Render_WhenWithoutElse(t *testing.T) {
	out := generate(t, `<div>#when open { <p>x</p> }</div>`)

	assert.Contains(t, out, `let flow_1 = bind_when(fragment_1, this.$computed(() => ("open" in this ? this["open"] : open)));`)
	assert.NotContains(t, out, "accessor_")
	assert.NotContains(t, out, "computed_not")
}

func TestGenerator_Render_ElseWhenChain(t *testing.T) {
	out := generate(t, `<div>#when a { x } #else when b { y } #else when c { z } #else { w }</div>`)

	assert.Contains(t, out, "let flow_1 = bind_when(fragment_1, accessor_1);")
	assert.Contains(t, out, "let flow_2 = bind_when(fragment_2, computed_and(computed_not(accessor_1), accessor_2));")
	assert.Contains(t, out, "let accessor_3 = computed_or(accessor_1, accessor_2);")
	assert.Contains(t, out, "let flow_3 = bind_when(fragment_3, computed_and(computed_not(accessor_3), accessor_4));")
	assert.Contains(t, out, "let accessor_5 = computed_or(accessor_3, accessor_4);")
	assert.Contains(t, out, "let flow_4 = bind_when(fragment_4, computed_not(accessor_5));")
	assert.Contains(t, out, "import { Component, element, bind_when, text, computed_not, computed_and, computed_or, insert }")
}

func TestGenerator_Render_Each(t *testing.T) {
	out := generate(t, `<ul>#each item in items { <li>{item}</li> }</ul>`)

	assert.Contains(t, out, "function render_fragment_1($self, item) {")
	assert.Contains(t, out, "bind_text(text_1, this.$computed(() => item));")
	assert.Contains(t, out, `let flow_1 = bind_each(render_fragment_1.bind(this, $self), this.$computed(() => ("items" in this ? this["items"] : items)));`)
	assert.Contains(t, out, "insert(ul_1, null, flow_1);")
}

func TestGenerator_Render_NestedEachForwardsLocals(t *testing.T) {
	out := generate(t, `<table>#each row in rows { #each cell in row.cells { {cell} } }</table>`)

	assert.Contains(t, out, "function render_fragment_1($self, row) {")
	assert.Contains(t, out, "function render_fragment_2($self, row, cell) {")
	assert.Contains(t, out, "let flow_2 = bind_each(render_fragment_2.bind(this, $self, row), this.$computed(() => row.cells));")
	assert.Contains(t, out, "bind_text(text_1, this.$computed(() => cell));")
}

func TestGenerator_Render_IteratorShadowsImport(t *testing.T) {
	out := generate(t, "using component format from \"./format\"\n<ul>#each format in list { {format} }</ul>")

	assert.Contains(t, out, `import format from "./format";`)
	assert.Contains(t, out, "function render_fragment_1($self, format_1) {")
	assert.Contains(t, out, "this.$computed(() => format_1)")
}

func TestGenerator_Render_ComponentElement(t *testing.T) {
	input := "using component Foo from \"./foo\"\n" +
		`<div><Foo title="t" value={v}><span slot="head">h</span>body</Foo></div>`
	out := generate(t, input)

	assert.True(t, strings.HasPrefix(out, "import Foo from \"./foo\";\n"))
	assert.Contains(t, out, `	let Foo_1 = new Foo({
		__family: "__family" in Foo && $self[Foo.__family],
		slots: {
			head: render_fragment_1.bind(this),
			main: render_fragment_2.bind(this)
		},
		attrs: {
			title: "t",
			value: this.$computed(() => ("v" in this ? this["v"] : v))
		},
	});
`)
	assert.Contains(t, out, "insert(div_1, null, Foo_1);")
	assert.NotContains(t, out, `attr(span_1, "slot"`)
	assert.NotContains(t, out, `element("Foo")`)
}

func TestGenerator_Render_SlotClosesOverLocals(t *testing.T) {
	input := "using component Row from \"./row\"\n" +
		`<ul>#each item in items { <Row>{item}</Row> }</ul>`
	out := generate(t, input)

	assert.Contains(t, out, "main: ($self) => render_fragment_2.call(this, $self, item)")
	assert.Contains(t, out, "function render_fragment_2($self, item) {")
}

func TestGenerator_Render_SlotOutlet(t *testing.T) {
	out := generate(t, `<div><slot/><slot name="side"/><slot name="x-y"/></div>`)

	assert.Contains(t, out, "let fragment_1 = $self.slots.main && $self.slots.main($self);")
	assert.Contains(t, out, "let fragment_2 = $self.slots.side && $self.slots.side($self);")
	assert.Contains(t, out, `let fragment_3 = $self.slots["x-y"] && $self.slots["x-y"]($self);`)
	assert.Contains(t, out, "insert(div_1, null, fragment_1, fragment_2, fragment_3);")
}

func TestGenerator_Render_Binder(t *testing.T) {
	out := generate(t, "using binder value from \"./binders\"\n<input bind:value={name}/>")

	assert.Contains(t, out, `import value from "./binders";`)
	assert.Contains(t, out, `bind(input_1, value, this.$computed(() => ("name" in this ? this["name"] : name)));`)
}

func TestGenerator_Render_Attributes(t *testing.T) {
	out := generate(t, `<a href="/x" hidden title={t} {...rest} {id}></a>`)

	assert.Contains(t, out, `attr(a_1, "href", "/x");`)
	assert.Contains(t, out, `attr(a_1, "hidden");`)
	assert.Contains(t, out, `bind_attr(a_1, "title", this.$computed(() => ("t" in this ? this["t"] : t)));`)
	assert.Contains(t, out, `bind_attr_spread(a_1, this.$computed(() => ("rest" in this ? this["rest"] : rest)));`)
	assert.Contains(t, out, `bind_attr(a_1, "id", this.$computed(() => ("id" in this ? this["id"] : id)));`)
}

func TestGenerator_Render_TextAndComments(t *testing.T) {
	out := generate(t, "<p>Hello   world <!-- c --> <b/></p>")

	assert.Contains(t, out, `let text_1 = text("Hello world ");`)
	assert.Contains(t, out, `let comment_1 = comment(" c ");`)
	assert.Contains(t, out, "let space_1 = space();")
	assert.Contains(t, out, "insert(p_1, null, text_1, comment_1, space_1, b_1);")
}

func TestGenerator_Render_HTMLPrefix(t *testing.T) {
	out := generate(t, "using component button from \"./b\"\n<div><html:button/></div>")

	assert.Contains(t, out, `let button_1 = element("button");`)
	assert.NotContains(t, out, "new button")
}

func TestGenerator_Render_ModelAndFamily(t *testing.T) {
	out := generate(t, "using model Store from \"./store\"\n<div></div>\n<span as=\"badge\"></span>")

	assert.Contains(t, out, "const FAMILY = Symbol();")
	assert.Contains(t, out, "class Default extends Component {\n\tstatic render = render_default;\n\tstatic model = Store;\n\tstatic __family = FAMILY;\n}")
	assert.Contains(t, out, "class Badge extends Component {\n\tstatic render = render_badge;\n\tstatic __family = FAMILY;\n}")
	assert.Contains(t, out, "export { Default as default, Badge as badge };")
	assert.NotContains(t, out, `"as"`)
}

func TestGenerator_Render_NestedAsIsAnAttribute(t *testing.T) {
	out := generate(t, `<div as="card"><p as="x"></p></div>`)

	assert.Contains(t, out, `attr(p_1, "as", "x");`)
	assert.NotContains(t, out, `attr(div_1, "as"`)
	assert.Contains(t, out, "class Card extends Component {")
}

func TestGenerator_Render_ObjectLiteralBinding(t *testing.T) {
	out := generate(t, `<div style={ {color: c} }></div>`)

	assert.Contains(t, out, `bind_attr(div_1, "style", this.$computed(() => ({color: ("c" in this ? this["c"] : c)})));`)
}

func TestGenerator_Render_ComponentBinder(t *testing.T) {
	out := generate(t, "using component Foo from \"./foo\"\nusing { binder focus } from \"./binders\"\n<div><Foo bind:focus={x}/></div>")

	assert.Contains(t, out, `"bind:focus": this.$computed(() => ("x" in this ? this["x"] : x))`)
}

func TestGenerator_Render_NoFamilyForSingleDefault(t *testing.T) {
	out := generate(t, `<div></div>`)
	assert.NotContains(t, out, "FAMILY")
	assert.NotContains(t, out, "__family")
}

func TestGenerator_Render_ExportedComponentIsUsable(t *testing.T) {
	out := generate(t, `<div as="card"></div><section><card/></section>`)

	assert.Contains(t, out, "let card_1 = new Card({")
}

func TestGenerator_Render_HelperCollidesWithDependency(t *testing.T) {
	out := generate(t, "using component text from \"./text\"\n<p>hi</p>")

	assert.Contains(t, out, `import text from "./text";`)
	assert.Contains(t, out, "text as text_1")
	assert.Contains(t, out, `let text_2 = text_1("hi");`)
}

func TestGenerator_Render_RenamedDependency(t *testing.T) {
	input := "using { component Card as Panel, binder focus as f } from \"./lib\"\n<div><Panel/><i bind:f={x}/></div>"
	out := generate(t, input)

	assert.Contains(t, out, `import { Card as Panel, focus as f } from "./lib";`)
	assert.Contains(t, out, "new Panel({")
	assert.Contains(t, out, "bind(i_1, f, ")
}

func TestGenerator_Import_Deduplicates(t *testing.T) {
	g := NewGenerator(nil)

	first := g.Import("text", "", InternalModule)
	second := g.Import("text", "", InternalModule)
	assert.Equal(t, first, second)

	g.unique.Claim("insert")
	aliased := g.Import("insert", "", InternalModule)
	assert.Equal(t, "insert_1", aliased)
	assert.Equal(t, "other", g.Import("default", "other", "./other"))

	g.renderImports()
	assert.Equal(t,
		"import { text, insert as insert_1 } from \"@debrix/internal\";\nimport other from \"./other\";\n",
		g.imports.Source())
}

func TestGenerator_Render_Mappings(t *testing.T) {
	input := `<div class="x"></div>`
	doc, err := Parse(input, nil)
	require.NoError(t, err)
	chunk, err := Generate(doc, nil)
	require.NoError(t, err)

	lines := strings.Split(chunk.Source(), "\n")
	var atAttribute []string
	for _, m := range chunk.Mappings() {
		require.Less(t, m.GenLine, len(lines))
		require.LessOrEqual(t, m.GenColumn, len(lines[m.GenLine]))
		if m.Original == 5 {
			atAttribute = append(atAttribute, lines[m.GenLine][m.GenColumn:])
		}
	}
	require.NotEmpty(t, atAttribute, "the static attribute must be mapped")
	assert.Equal(t, `attr(div_1, "class", "x");`, atAttribute[0])
}

func TestGenerator_Render_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		span    Span
	}{
		{
			name:    "duplicate default",
			input:   `<div></div><p></p>`,
			message: ErrMsgDefaultAlreadyDefined,
			span:    Span{Start: 11, End: 14},
		},
		{
			name:    "duplicate named",
			input:   `<div as="a"></div><p as="a"></p>`,
			message: "Component a is already defined!",
			span:    Span{Start: 21, End: 27},
		},
		{
			name:    "invalid export name",
			input:   `<div as="1x"></div>`,
			message: `Component cannot be named non-valid javascript identifiers. "1x" is not a valid identifier.`,
			span:    Span{Start: 9, End: 11},
		},
		{
			name:    "binding export name",
			input:   `<div as={x}></div>`,
			message: ErrMsgAttributeMustBeStatic,
			span:    Span{Start: 5, End: 11},
		},
		{
			name:    "export name without value",
			input:   `<div as></div>`,
			message: ErrMsgAttributeNeedsValue,
			span:    Span{Start: 5, End: 7},
		},
		{
			name:    "undefined binder",
			input:   `<div><input bind:value={x}/></div>`,
			message: "Undefined binder 'value'.",
			span:    Span{Start: 12, End: 22},
		},
		{
			name:    "undefined binder on a component",
			input:   "using component Foo from \"./foo\"\n<div><Foo bind:nope={x}/></div>",
			message: "Undefined binder 'nope'.",
			span:    Span{Start: 43, End: 52},
		},
		{
			name:    "two spreads",
			input:   `<div {...a} {...b}></div>`,
			message: "Attributes can only be expanded once. Occured at 5..11.",
			span:    Span{Start: 12, End: 18},
		},
		{
			name:    "duplicate declaration",
			input:   "using component Foo from \"a\"\nusing component Foo from \"b\"\n<div/>",
			message: "Variable 'Foo' for 'component' is already defined.",
			span:    Span{Start: 35, End: 48},
		},
		{
			name:    "slot defined twice",
			input:   "using component Foo from \"a\"\n<Foo><i slot=\"a\" slot=\"b\"/></Foo>",
			message: ErrMsgSpecialTwice,
			span:    Span{Start: 46, End: 54},
		},
		{
			name:    "dynamic slot",
			input:   "using component Foo from \"a\"\n<Foo><i slot={s}/></Foo>",
			message: ErrMsgSpecialMustBeStatic,
			span:    Span{Start: 37, End: 45},
		},
		{
			name:    "slot without value",
			input:   "using component Foo from \"a\"\n<Foo><i slot/></Foo>",
			message: ErrMsgSpecialNeedsValue,
			span:    Span{Start: 37, End: 41},
		},
		{
			name:    "dynamic slot outlet name",
			input:   `<div><slot name={n}/></div>`,
			message: ErrMsgAttributeMustBeStatic,
			span:    Span{Start: 11, End: 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := generateError(t, tt.input)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.span, Span{Start: err.Start, End: err.End})
		})
	}
}

func TestGenerator_Render_NodeNotAllowed(t *testing.T) {
	doc := &Document{Children: []Node{&Text{Span: Span{Start: 0, End: 3}, Content: "abc"}}}
	_, err := Generate(doc, nil)

	var cerr *CompilerError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrMsgNodeNotAllowed, cerr.Message)
	assert.Equal(t, 3, cerr.End)
}
