package internal

// Dump converts a parsed document into plain maps and slices, suitable
// for JSON or YAML encoding. Every entry carries its kind and span.
func Dump(doc *Document) map[string]any {
	return map[string]any{
		"kind":     "Document",
		"span":     doc.Span,
		"children": dumpNodes(doc.Children),
	}
}

func dumpNodes(nodes []Node) []any {
	out := make([]any, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, DumpNode(node))
	}
	return out
}

// DumpNode converts one template node
func DumpNode(node Node) map[string]any {
	m := map[string]any{
		"kind": node.Kind().String(),
		"span": node.Range(),
	}

	switch n := node.(type) {
	case *DependencyStatement:
		if n.Default != nil {
			def := map[string]any{"usage": n.Default.Usage.Name}
			if n.Default.Local != nil {
				def["local"] = n.Default.Local.Name
			}
			m["default"] = def
		}
		if n.Named != nil {
			specs := make([]any, 0, len(n.Named.Specifiers))
			for _, spec := range n.Named.Specifiers {
				s := map[string]any{
					"usage":    spec.Usage.Name,
					"imported": spec.Imported.Name,
				}
				if spec.Local != nil {
					s["local"] = spec.Local.Name
				}
				specs = append(specs, s)
			}
			m["named"] = specs
		}
		m["source"] = n.Source.Value

	case *Comment:
		m["content"] = n.Content

	case *Element:
		m["tag"] = n.Tag.Name
		attrs := make([]any, 0, len(n.Attributes))
		for _, attr := range n.Attributes {
			attrs = append(attrs, dumpAttribute(attr))
		}
		m["attributes"] = attrs
		m["children"] = dumpNodes(n.Children)
		m["selfClosing"] = n.EndTag == nil

	case *Text:
		m["content"] = n.Content

	case *TextBinding:
		m["expression"] = DumpExpression(n.Expression)

	case *WhenBlock:
		m["condition"] = DumpExpression(n.Condition)
		m["children"] = dumpNodes(n.Children)
		chain := make([]any, 0, len(n.Chain))
		for _, link := range n.Chain {
			l := map[string]any{
				"span":     link.Span,
				"children": dumpNodes(link.Children),
			}
			if link.Condition != nil {
				l["condition"] = DumpExpression(link.Condition)
			}
			chain = append(chain, l)
		}
		m["chain"] = chain

	case *EachBlock:
		m["iterator"] = n.Iterator.Name
		m["iterable"] = DumpExpression(n.Iterable)
		m["children"] = dumpNodes(n.Children)
	}

	return m
}

func dumpAttribute(attr Attribute) map[string]any {
	m := map[string]any{
		"kind": attr.Kind().String(),
		"span": attr.Range(),
	}
	switch a := attr.(type) {
	case *StaticAttribute:
		m["name"] = a.Name.Name
		if a.Value != nil {
			m["value"] = a.Value.Value
		}
	case *BindingAttribute:
		m["name"] = a.Name.Name
		m["value"] = DumpExpression(a.Value)
	case *SpreadAttribute:
		m["value"] = DumpExpression(a.Value)
	case *ShortBindingAttribute:
		m["name"] = a.Name.Name
	}
	return m
}

// DumpExpression converts one script expression
func DumpExpression(expr Expression) map[string]any {
	if expr == nil {
		return nil
	}
	m := map[string]any{
		"kind": expr.Kind().String(),
		"span": expr.Range(),
	}

	switch e := expr.(type) {
	case *IdentifierExpression:
		m["name"] = e.Name
	case *LiteralExpression:
		m["literal"] = e.Literal.String()
		m["raw"] = e.Raw
	case *UnaryExpression:
		m["operator"] = e.Operator.String()
		m["operand"] = DumpExpression(e.Operand)
	case *BinaryExpression:
		m["operator"] = e.Operator.String()
		m["left"] = DumpExpression(e.Left)
		m["right"] = DumpExpression(e.Right)
	case *AssignmentExpression:
		m["operator"] = e.Operator.String()
		m["left"] = DumpExpression(e.Left)
		m["right"] = DumpExpression(e.Right)
	case *ConditionalExpression:
		m["test"] = DumpExpression(e.Test)
		m["consequent"] = DumpExpression(e.Consequent)
		m["alternate"] = DumpExpression(e.Alternate)
	case *CallExpression:
		m["callee"] = DumpExpression(e.Callee)
		m["arguments"] = dumpExpressions(e.Arguments)
	case *NewExpression:
		m["callee"] = DumpExpression(e.Callee)
		if e.Arguments != nil {
			m["arguments"] = dumpExpressions(e.Arguments)
		}
	case *MemberExpression:
		m["object"] = DumpExpression(e.Object)
		m["property"] = DumpExpression(e.Property)
		m["computed"] = e.Computed
		m["optional"] = e.Optional
	case *FunctionExpression:
		m["parameters"] = dumpExpressions(e.Parameters)
		m["body"] = DumpExpression(e.Body)
	case *SpreadExpression:
		m["argument"] = DumpExpression(e.Argument)
	case *TemplateLiteral:
		m["raw"] = e.Raw
	case *TaggedTemplateExpression:
		m["tag"] = DumpExpression(e.Tag)
		m["quasi"] = DumpExpression(e.Quasi)
	case *ObjectExpression:
		props := make([]any, 0, len(e.Properties))
		for _, prop := range e.Properties {
			props = append(props, dumpProperty(prop))
		}
		m["properties"] = props
	case *ArrayExpression:
		m["elements"] = dumpExpressions(e.Elements)
	case *ParenthesizedExpression:
		m["expression"] = DumpExpression(e.Expression)
	}

	return m
}

func dumpExpressions(exprs []Expression) []any {
	out := make([]any, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, DumpExpression(expr))
	}
	return out
}

func dumpProperty(prop ObjectProperty) map[string]any {
	switch p := prop.(type) {
	case *KeyedProperty:
		m := map[string]any{
			"kind": "Keyed",
			"span": p.Range(),
			"key":  DumpExpression(p.Key),
		}
		if p.Value != nil {
			m["value"] = DumpExpression(p.Value)
		} else {
			m["shorthand"] = true
		}
		return m
	case *ComputedProperty:
		return map[string]any{
			"kind":  "Computed",
			"span":  p.Range(),
			"key":   DumpExpression(p.Key),
			"value": DumpExpression(p.Value),
		}
	case *SpreadProperty:
		return map[string]any{
			"kind":     "Spread",
			"span":     p.Range(),
			"argument": DumpExpression(p.Argument),
		}
	}
	return nil
}
