package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type fragmentLocal struct {
	name  string
	ident string
}

// Fragment renders one generation unit: a component root, a flow branch,
// a loop body or a slot. It borrows its Generator for the duration of
// Render and writes the finished function into the generator's fragment
// section.
//
// Every fragment function takes the receiver first, then the locals
// inherited from the enclosing fragment, then its own loop variable:
//
//	function render_fragment_1($self, item, index) { ... }
type Fragment struct {
	gen    *Generator
	js     *Serializer
	locals []fragmentLocal
	params *Chunk

	// root is the exported element of a component fragment; its `as`
	// attribute names the export and is not rendered
	root *Element

	decl   *Chunk
	init   *Chunk
	bind   *Chunk
	insert *Chunk
}

// NewFragment creates a top-level fragment with no locals
func NewFragment(gen *Generator) *Fragment {
	js := NewSerializer().WithGlobals(gen.globals)
	js.Declare(ReceiverName, ReceiverName)
	return &Fragment{
		gen:    gen,
		js:     js,
		params: NewChunk(),
		decl:   NewChunk(),
		init:   NewChunk(),
		bind:   NewChunk(),
		insert: NewChunk(),
	}
}

// child creates a fragment that receives this fragment's locals
func (f *Fragment) child() *Fragment {
	c := NewFragment(f.gen)
	for _, local := range f.locals {
		c.declareLocal(local.name, local.ident)
		c.params.Write(", " + local.ident)
	}
	return c
}

func (f *Fragment) declareLocal(name, ident string) {
	f.js.Declare(name, ident)
	f.locals = append(f.locals, fragmentLocal{name: name, ident: ident})
}

// arguments returns the receiver plus the emitted locals, ready to be
// passed to a child fragment
func (f *Fragment) arguments() string {
	args := []string{ReceiverName}
	for _, local := range f.locals {
		args = append(args, local.ident)
	}
	return strings.Join(args, ", ")
}

// Render lowers nodes into a function named name
func (f *Fragment) Render(name string, nodes []Node) error {
	var roots []string
	for _, node := range nodes {
		names, err := f.renderNode(node)
		if err != nil {
			return err
		}
		roots = append(roots, names...)
	}

	out := f.gen.fragments
	out.Write("function " + name + "(" + ReceiverName).
		Append(f.params).
		Write(") {\n")

	sections := []struct {
		title string
		body  *Chunk
	}{
		{"declarations", f.decl},
		{"initialization", f.init},
		{"binding", f.bind},
		{"appending", f.insert},
	}
	for _, section := range sections {
		if section.body.IsEmpty() {
			continue
		}
		out.Write("\t/* " + section.title + " */\n").
			Append(section.body.Indent(1)).
			Write("\n")
	}

	out.Write("\treturn [" + strings.Join(roots, ", ") + "];\n}\n\n")

	f.gen.logger.Debug(LogMsgFragmentRendered,
		zap.String(LogFieldFragment, name),
		zap.Int(LogFieldNodes, len(nodes)))
	return nil
}

// renderNode renders one node and returns the locals holding its output
func (f *Fragment) renderNode(node Node) ([]string, error) {
	switch n := node.(type) {
	case *Comment:
		return []string{f.renderComment(n)}, nil
	case *Element:
		name, err := f.renderElement(n)
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	case *Text:
		return []string{f.renderText(n)}, nil
	case *TextBinding:
		return []string{f.renderTextBinding(n)}, nil
	case *WhenBlock:
		return f.renderWhen(n)
	case *EachBlock:
		name, err := f.renderEach(n)
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	return nil, NewCompilerError(node.Range(), ErrMsgNodeNotAllowed)
}

func (f *Fragment) helper(name string) string {
	return f.gen.Import(name, "", InternalModule)
}

// computed wraps a serialized expression in a reactive accessor. Object
// literals are parenthesized so the arrow body is not read as a block.
func (f *Fragment) computed(expr Expression) *Chunk {
	c := NewChunk().Write("this.$computed(() => ")
	if _, ok := expr.(*ObjectExpression); ok {
		return c.Write("(").Append(f.js.Serialize(expr)).Write("))")
	}
	return c.Append(f.js.Serialize(expr)).Write(")")
}

func (f *Fragment) renderComment(node *Comment) string {
	helper := f.helper(HelperComment)
	name := f.gen.unique.From(LocalComment)

	f.decl.Write("let " + name + " = ").
		Map(node.Start).
		Write(helper + "(" + InString(node.Content) + ");").
		Map(node.End).
		Write("\n")
	return name
}

func (f *Fragment) renderText(node *Text) string {
	text := JoinSpaces(node.Content)

	if text == " " {
		helper := f.helper(HelperSpace)
		name := f.gen.unique.From(LocalSpace)
		f.decl.Write("let " + name + " = ").
			Map(node.Start).
			Write(helper + "();").
			Map(node.End).
			Write("\n")
		return name
	}

	helper := f.helper(HelperText)
	name := f.gen.unique.From(LocalText)
	f.decl.Write("let " + name + " = ").
		Map(node.Start).
		Write(helper + "(" + InString(text) + ");").
		Map(node.End).
		Write("\n")
	return name
}

func (f *Fragment) renderTextBinding(node *TextBinding) string {
	text := f.helper(HelperText)
	name := f.gen.unique.From(LocalText)

	f.decl.Write("let " + name + " = ").
		Map(node.Start).
		Write(text + "();").
		Map(node.End).
		Write("\n")

	bindText := f.helper(HelperBindText)
	f.bind.Write(bindText + "(" + name + ", ").
		Append(f.computed(node.Expression)).
		Write(");\n")
	return name
}

// renderElement dispatches between component construction, slot
// outlets and plain elements
func (f *Fragment) renderElement(node *Element) (string, error) {
	if err := checkSpreads(node.Attributes); err != nil {
		return "", err
	}

	if constructor, ok := f.gen.Declaration(KindComponent, node.Tag.Name); ok {
		return f.renderComponentElement(node, constructor)
	}
	if node.Tag.Name == TagSlot {
		return f.renderSlot(node)
	}

	tag := strings.TrimPrefix(node.Tag.Name, StrHTMLPrefix)
	helper := f.helper(HelperElement)
	name := f.gen.unique.From(ToValidIdent(tag))

	f.decl.Write("let " + name + " = ").
		Map(node.Start).
		Write(helper + "(").
		Map(node.Tag.Start).
		Write(InString(tag)).
		Map(node.Tag.End).
		Write(");").
		Map(node.End).
		Write("\n")

	for _, attr := range node.Attributes {
		if static, ok := attr.(*StaticAttribute); ok {
			if static.Name.Name == AttrSlot || f.isExportName(node, static) {
				continue
			}
		}
		if err := f.renderAttribute(name, attr); err != nil {
			return "", err
		}
	}

	if len(node.Children) > 0 {
		var args []string
		for _, child := range node.Children {
			names, err := f.renderNode(child)
			if err != nil {
				return "", err
			}
			args = append(args, names...)
		}
		insert := f.helper(HelperInsert)
		f.insert.Write(insert + "(" + name + ", null, " + strings.Join(args, ", ") + ");\n")
	}

	return name, nil
}

func (f *Fragment) isExportName(node *Element, attr *StaticAttribute) bool {
	return node == f.root && attr.Name.Name == AttrAs
}

// checkSpreads rejects a second spread attribute on one element
func checkSpreads(attrs []Attribute) error {
	var first *SpreadAttribute
	for _, attr := range attrs {
		spread, ok := attr.(*SpreadAttribute)
		if !ok {
			continue
		}
		if first != nil {
			return NewCompilerError(spread.Span, fmt.Sprintf(ErrMsgSpreadOnce, first.Start, first.End))
		}
		first = spread
	}
	return nil
}

func (f *Fragment) renderAttribute(parent string, attr Attribute) error {
	switch a := attr.(type) {
	case *StaticAttribute:
		helper := f.helper(HelperAttr)
		f.init.Map(a.Start).
			Write(helper + "(" + parent + ", ").
			Map(a.Name.Start).
			Write(InString(a.Name.Name)).
			Map(a.Name.End)
		if a.Value != nil {
			f.init.Write(", ").
				Map(a.Value.Start).
				Write(InString(a.Value.Value)).
				Map(a.Value.End)
		}
		f.init.Write(");").Map(a.End).Write("\n")

	case *BindingAttribute:
		if binder, ok := strings.CutPrefix(a.Name.Name, StrBindPrefix); ok {
			ident, declared := f.gen.Declaration(KindBinder, binder)
			if !declared {
				return NewCompilerError(a.Name.Span, fmt.Sprintf(ErrMsgUndefinedBinder, binder))
			}
			helper := f.helper(HelperBind)
			f.bind.Map(a.Start).
				Write(helper + "(" + parent + ", " + ident + ", ").
				Append(f.computed(a.Value)).
				Write(");\n")
			return nil
		}

		helper := f.helper(HelperBindAttr)
		f.bind.Map(a.Start).
			Write(helper + "(" + parent + ", " + InString(a.Name.Name) + ", ").
			Append(f.computed(a.Value)).
			Write(");\n")

	case *SpreadAttribute:
		helper := f.helper(HelperBindAttrSpread)
		f.bind.Map(a.Start).
			Write(helper + "(" + parent + ", ").
			Append(f.computed(a.Value)).
			Write(");\n")

	case *ShortBindingAttribute:
		helper := f.helper(HelperBindAttr)
		f.bind.Map(a.Start).
			Write(helper + "(" + parent + ", " + InString(a.Name.Name) + ", ").
			Append(f.computed(a.Expression())).
			Write(");\n")
	}
	return nil
}

// renderComponentElement constructs a declared component, passing its
// attributes and one fragment per slot
func (f *Fragment) renderComponentElement(node *Element, constructor string) (string, error) {
	slots, err := partitionSlots(node.Children)
	if err != nil {
		return "", err
	}

	name := f.gen.unique.From(ToValidIdent(node.Tag.Name))

	var entries []*Chunk
	for _, attr := range node.Attributes {
		entry := NewChunk().Map(attr.Range().Start)
		switch a := attr.(type) {
		case *StaticAttribute:
			if a.Name.Name == AttrSlot || f.isExportName(node, a) {
				continue
			}
			value := ""
			if a.Value != nil {
				value = a.Value.Value
			}
			entry.Write(ToValidProperty(a.Name.Name) + ": " + InString(value))
		case *BindingAttribute:
			if binder, ok := strings.CutPrefix(a.Name.Name, StrBindPrefix); ok {
				if _, declared := f.gen.Declaration(KindBinder, binder); !declared {
					return "", NewCompilerError(a.Name.Span, fmt.Sprintf(ErrMsgUndefinedBinder, binder))
				}
			}
			entry.Write(ToValidProperty(a.Name.Name) + ": ").Append(f.computed(a.Value))
		case *ShortBindingAttribute:
			entry.Write(ToValidProperty(a.Name.Name) + ": ").Append(f.computed(a.Expression()))
		case *SpreadAttribute:
			entry.Write("_: ").Append(f.js.Serialize(a.Value))
		}
		entries = append(entries, entry)
	}

	c := f.decl
	c.Write("let " + name + " = ").
		Map(node.Start).
		Write("new " + constructor + "({\n").
		Write("\t" + FamilyProperty + ": " + InString(FamilyProperty) + " in " + constructor +
			" && " + ReceiverName + "[" + constructor + "." + FamilyProperty + "],\n")

	if slots.Len() > 0 {
		c.Write("\tslots: {\n")
		i := 0
		err := slots.Each(func(slot string, nodes []Node) error {
			fragment := f.gen.unique.From(BaseFragmentName)
			if err := f.child().Render(fragment, nodes); err != nil {
				return err
			}
			c.Write("\t\t" + ToValidProperty(slot) + ": " + f.slotCallable(fragment))
			i++
			if i < slots.Len() {
				c.Write(",")
			}
			c.Write("\n")
			return nil
		})
		if err != nil {
			return "", err
		}
		c.Write("\t},\n")
	}

	if len(entries) > 0 {
		body := NewChunk()
		for i, entry := range entries {
			body.Append(entry)
			if i < len(entries)-1 {
				body.Write(",")
			}
			body.Write("\n")
		}
		c.Write("\tattrs: {\n").
			Append(body.Indent(2)).
			Write("\t},\n")
	}

	c.Write("});").Map(node.End).Write("\n")
	return name, nil
}

// slotCallable renders the callable passed for a slot. Slots are invoked
// with the receiving component; locals of this fragment are closed over.
func (f *Fragment) slotCallable(fragment string) string {
	if len(f.locals) == 0 {
		return fragment + ".bind(this)"
	}
	return "(" + ReceiverName + ") => " + fragment + ".call(this, " + f.arguments() + ")"
}

// partitionSlots groups component children by their static slot
// attribute. Whitespace between slotted children is dropped.
func partitionSlots(children []Node) (*OrderedMap[string, []Node], error) {
	slots := NewOrderedMap[string, []Node]()

	for _, child := range children {
		if text, ok := child.(*Text); ok && isBlank(text.Content) {
			continue
		}

		slot := DefaultSlotName
		if el, ok := child.(*Element); ok {
			named, err := slotName(el.Attributes)
			if err != nil {
				return nil, err
			}
			if named != "" {
				slot = named
			}
		}

		nodes, _ := slots.Get(slot)
		slots.Set(slot, append(nodes, child))
	}
	return slots, nil
}

func slotName(attrs []Attribute) (string, error) {
	name := ""
	found := false
	for _, attr := range attrs {
		switch a := attr.(type) {
		case *StaticAttribute:
			if a.Name.Name != AttrSlot {
				continue
			}
			if found {
				return "", NewCompilerError(a.Span, ErrMsgSpecialTwice)
			}
			if a.Value == nil {
				return "", NewCompilerError(a.Span, ErrMsgSpecialNeedsValue)
			}
			name = a.Value.Value
			found = true
		case *BindingAttribute, *ShortBindingAttribute:
			if AttributeName(attr) == AttrSlot {
				return "", NewCompilerError(attr.Range(), ErrMsgSpecialMustBeStatic)
			}
		}
	}
	return name, nil
}

// renderSlot renders a <slot> outlet inside a component's own template
func (f *Fragment) renderSlot(node *Element) (string, error) {
	slot := DefaultSlotName
	if attr := FindAttribute(node.Attributes, AttrName); attr != nil {
		static, ok := attr.(*StaticAttribute)
		if !ok {
			return "", NewCompilerError(attr.Range(), ErrMsgAttributeMustBeStatic)
		}
		if static.Value == nil {
			return "", NewCompilerError(static.Span, ErrMsgAttributeNeedsValue)
		}
		slot = static.Value.Value
	}

	access := ReceiverName + ".slots"
	if IsIdentifierName(slot) {
		access += "." + slot
	} else {
		access += "[" + InString(slot) + "]"
	}

	name := f.gen.unique.From(LocalFragment)
	f.decl.Write("let " + name + " = ").
		Map(node.Start).
		Write(access + " && " + access + "(" + ReceiverName + ");").
		Map(node.End).
		Write("\n")
	return name, nil
}

// instantiate renders nodes into a child fragment and declares a local
// holding its output
func (f *Fragment) instantiate(nodes []Node) (string, error) {
	fragment := f.gen.unique.From(BaseFragmentName)
	if err := f.child().Render(fragment, nodes); err != nil {
		return "", err
	}

	instance := f.gen.unique.From(LocalFragment)
	f.decl.Write("let " + instance + " = " + fragment + ".call(this, " + f.arguments() + ");\n")
	return instance, nil
}

// renderWhen lowers a conditional chain into one bind_when per branch.
// Later branches are guarded by the negation of every earlier condition.
func (f *Fragment) renderWhen(node *WhenBlock) ([]string, error) {
	bindWhen := f.helper(HelperBindWhen)

	instance, err := f.instantiate(node.Children)
	if err != nil {
		return nil, err
	}
	flow := f.gen.unique.From(LocalFlow)

	if len(node.Chain) == 0 {
		f.bind.Map(node.Start).
			Write("let " + flow + " = " + bindWhen + "(" + instance + ", ").
			Append(f.computed(node.Condition)).
			Write(");\n")
		return []string{flow}, nil
	}

	flows := []string{flow}
	previous := f.gen.unique.From(LocalAccessor)
	f.bind.Map(node.Start).
		Write("let " + previous + " = ").
		Append(f.computed(node.Condition)).
		Write(";\n").
		Write("let " + flow + " = " + bindWhen + "(" + instance + ", " + previous + ");\n")

	for i, link := range node.Chain {
		instance, err := f.instantiate(link.Children)
		if err != nil {
			return nil, err
		}
		flow := f.gen.unique.From(LocalFlow)
		flows = append(flows, flow)

		not := f.helper(HelperComputedNot)
		if link.Condition == nil {
			f.bind.Map(link.Start).
				Write("let " + flow + " = " + bindWhen + "(" + instance + ", " + not + "(" + previous + "));\n")
			continue
		}

		and := f.helper(HelperComputedAnd)
		accessor := f.gen.unique.From(LocalAccessor)
		f.bind.Map(link.Start).
			Write("let " + accessor + " = ").
			Append(f.computed(link.Condition)).
			Write(";\n").
			Write("let " + flow + " = " + bindWhen + "(" + instance + ", " +
				and + "(" + not + "(" + previous + "), " + accessor + "));\n")

		if i < len(node.Chain)-1 {
			or := f.helper(HelperComputedOr)
			combined := f.gen.unique.From(LocalAccessor)
			f.bind.Write("let " + combined + " = " + or + "(" + previous + ", " + accessor + ");\n")
			previous = combined
		}
	}

	return flows, nil
}

// renderEach lowers a loop into a fragment taking the loop variable,
// bound over the iterable with bind_each
func (f *Fragment) renderEach(node *EachBlock) (string, error) {
	bindEach := f.helper(HelperBindEach)
	flow := f.gen.unique.From(LocalFlow)
	fragment := f.gen.unique.From(BaseFragmentName)

	body := f.child()
	iterator := f.gen.unique.Claim(ToValidIdent(node.Iterator.Name))
	body.declareLocal(node.Iterator.Name, iterator)
	body.params.Write(", ").
		Map(node.Iterator.Start).
		Write(iterator).
		Map(node.Iterator.End)

	if err := body.Render(fragment, node.Children); err != nil {
		return "", err
	}

	f.bind.Map(node.Start).
		Write("let " + flow + " = " + bindEach + "(" + fragment + ".bind(this, " + f.arguments() + "), ").
		Append(f.computed(node.Iterable)).
		Write(");\n")
	return flow, nil
}
