package internal

import "go.uber.org/zap"

// renderComponent writes the class for one exported top-level element.
// The element itself is rendered as the component's root fragment.
func (g *Generator) renderComponent(ident string, el *Element, model string) error {
	base := g.Import(HelperComponent, "", InternalModule)
	render := g.unique.Claim(RenderPrefix + SnakeCase(ident))

	fragment := NewFragment(g)
	fragment.root = el
	if err := fragment.Render(render, []Node{el}); err != nil {
		return err
	}

	c := g.components
	c.Map(el.Start).
		Write("class " + ident + " extends " + base + " {\n").
		Write("\tstatic render = " + render + ";\n")
	if model != "" {
		c.Write("\tstatic model = " + model + ";\n")
	}
	if g.family != "" {
		c.Write("\tstatic " + FamilyProperty + " = " + g.family + ";\n")
	}
	c.Write("}\n").Map(el.End).Write("\n")

	g.logger.Debug(LogMsgComponentRendered,
		zap.String(LogFieldComponent, ident),
		zap.String(LogFieldFragment, render))
	return nil
}
