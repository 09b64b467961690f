package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type importEntry struct {
	name  string
	alias string
	from  string
}

type exportEntry struct {
	name  string
	alias string
	from  string
}

type declaration struct {
	kind  string
	name  string
	ident string
}

// Generator lowers one parsed template into a script module. It owns the
// module-wide state: identifier allocation, imports, exports and the
// declaration registry. Fragments borrow it while they render.
type Generator struct {
	imports    *Chunk
	exports    *Chunk
	fragments  *Chunk
	components *Chunk

	unique       *Unique
	globals      map[string]string
	importList   []importEntry
	exportList   []exportEntry
	declarations []declaration
	family       string

	logger *zap.Logger
}

// NewGenerator creates a generator with empty state
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgGeneratorCreated)
	return &Generator{
		imports:    NewChunk(),
		exports:    NewChunk(),
		fragments:  NewChunk(),
		components: NewChunk(),
		unique:     NewUnique(),
		globals:    make(map[string]string),
		logger:     logger,
	}
}

// Generate is a convenience function that renders doc with a fresh generator
func Generate(doc *Document, logger *zap.Logger) (*Chunk, error) {
	return NewGenerator(logger).Render(doc)
}

// Unique returns the module-wide identifier allocator
func (g *Generator) Unique() *Unique {
	return g.unique
}

// Import registers name from a module once and returns its local alias
func (g *Generator) Import(name, alias, from string) string {
	for _, imp := range g.importList {
		if imp.name == name && imp.from == from {
			if imp.alias != "" {
				return imp.alias
			}
			return imp.name
		}
	}

	requested := alias
	if requested == "" {
		requested = name
	}
	ident := g.unique.Ensure(requested)
	entry := importEntry{name: name, from: from}
	if ident != name {
		entry.alias = ident
	}
	g.importList = append(g.importList, entry)
	return ident
}

// Export registers a module export. An empty from exports a local binding.
func (g *Generator) Export(name, alias, from string) {
	g.exportList = append(g.exportList, exportEntry{name: name, alias: alias, from: from})
}

// Declare registers ident under (kind, name). It reports false when the
// pair is already taken. An empty name is the kind's unnamed slot.
func (g *Generator) Declare(kind, name, ident string) bool {
	if _, ok := g.Declaration(kind, name); ok {
		return false
	}
	g.declarations = append(g.declarations, declaration{kind: kind, name: name, ident: ident})
	return true
}

// Declaration looks up the identifier registered under (kind, name)
func (g *Generator) Declaration(kind, name string) (string, bool) {
	for _, d := range g.declarations {
		if d.kind == kind && d.name == name {
			return d.ident, true
		}
	}
	return "", false
}

// Render generates the module for doc. Top-level elements become exported
// components keyed by their static `as` attribute; dependency statements
// become imports and declarations.
func (g *Generator) Render(doc *Document) (*Chunk, error) {
	g.logger.Debug(LogMsgGeneratorStart, zap.Int(LogFieldNodes, len(doc.Children)))

	exports := NewOrderedMap[string, *Element]()
	exportSpans := make(map[string]Span)

	for _, node := range doc.Children {
		switch n := node.(type) {
		case *Element:
			name, span, err := exportName(n)
			if err != nil {
				return nil, err
			}
			if exports.Has(name) {
				if name == DefaultExport {
					return nil, NewCompilerError(span, ErrMsgDefaultAlreadyDefined)
				}
				return nil, NewCompilerError(span, fmt.Sprintf(ErrMsgComponentAlreadyDefined, name))
			}
			exports.Set(name, n)
			exportSpans[name] = span

		case *DependencyStatement:
			if err := g.renderDependency(n); err != nil {
				return nil, err
			}

		case *Comment:
			continue

		default:
			return nil, NewCompilerError(node.Range(), ErrMsgNodeNotAllowed)
		}
	}

	componentNames := make(map[string]string, exports.Len())
	err := exports.Each(func(name string, _ *Element) error {
		ident := g.unique.Claim(TitleCase(name))
		if !g.Declare(KindComponent, name, ident) {
			return NewCompilerError(exportSpans[name], fmt.Sprintf(ErrMsgVariableAlreadyDefined, name, KindComponent))
		}
		componentNames[name] = ident
		return nil
	})
	if err != nil {
		return nil, err
	}

	if exports.Len() > 1 || (exports.Len() == 1 && !exports.Has(DefaultExport)) {
		g.family = g.unique.Claim(FamilyName)
	}

	err = exports.Each(func(name string, el *Element) error {
		ident := componentNames[name]
		model := ""
		if name == DefaultExport {
			model, _ = g.Declaration(KindModel, "")
		}
		if err := g.renderComponent(ident, el, model); err != nil {
			return err
		}
		g.Export(ident, name, "")
		return nil
	})
	if err != nil {
		return nil, err
	}

	g.renderImports()
	g.renderExports()

	out := NewChunk().Append(g.imports)
	if g.family != "" {
		out.Write("\nconst " + g.family + " = Symbol();\n")
	}
	out.Write("\n").
		Append(g.fragments).
		Append(g.components).
		Append(g.exports)

	g.logger.Debug(LogMsgGeneratorEnd,
		zap.Int(LogFieldOutput, out.Len()),
		zap.Int(LogFieldMappings, len(out.Mappings())))
	return out, nil
}

// exportName resolves the export name of a top-level element and the span
// to blame for a duplicate
func exportName(el *Element) (string, Span, error) {
	attr := FindAttribute(el.Attributes, AttrAs)
	if attr == nil {
		return DefaultExport, el.StartTag, nil
	}

	static, ok := attr.(*StaticAttribute)
	if !ok {
		return "", Span{}, NewCompilerError(attr.Range(), ErrMsgAttributeMustBeStatic)
	}
	if static.Value == nil {
		return "", Span{}, NewCompilerError(static.Span, ErrMsgAttributeNeedsValue)
	}
	value := static.Value
	if !IsValidIdentifier(value.Value) {
		return "", Span{}, NewCompilerError(
			Span{Start: value.Start + 1, End: value.End - 1},
			fmt.Sprintf(ErrMsgInvalidComponentName, value.Value),
		)
	}
	return value.Value, static.Span, nil
}

// renderDependency writes a dependency statement as an import and records
// its specifiers in the declaration registry
func (g *Generator) renderDependency(dep *DependencyStatement) error {
	c := g.imports
	c.Map(dep.Start).Write("import ")

	if def := dep.Default; def != nil {
		owner := def.Usage
		if def.Local != nil {
			owner = def.Local
		}
		ident := g.unique.Claim(owner.Name)
		c.Map(def.Usage.Start).Write(ident).Map(owner.End)

		kind := def.Usage.Name
		name := ""
		if kind != KindModel && def.Local != nil {
			name = def.Local.Name
		}
		if !g.Declare(kind, name, ident) {
			return NewCompilerError(def.Span, fmt.Sprintf(ErrMsgVariableAlreadyDefined, owner.Name, kind))
		}
		g.rename(owner.Name, ident)

		if dep.Named != nil {
			c.Write(", ")
		} else {
			c.Write(" ")
		}
	}

	if named := dep.Named; named != nil {
		c.Map(named.Start).Write("{ ")
		for i, spec := range named.Specifiers {
			if i > 0 {
				c.Write(", ")
			}
			owner := spec.Imported
			if spec.Local != nil {
				owner = spec.Local
			}
			ident := g.unique.Claim(owner.Name)

			c.Map(spec.Start).Write(spec.Imported.Name)
			if spec.Imported.Name != ident {
				c.Write(" as ").Map(owner.Start).Write(ident).Map(owner.End)
			}
			c.Map(spec.End)

			if !g.Declare(spec.Usage.Name, owner.Name, ident) {
				return NewCompilerError(spec.Span, fmt.Sprintf(ErrMsgVariableAlreadyDefined, owner.Name, spec.Usage.Name))
			}
			g.rename(owner.Name, ident)
		}
		c.Write(" } ").Map(named.End)
	}

	c.Write("from ").
		Map(dep.Source.Start).
		Write(InString(dep.Source.Value)).
		Map(dep.Source.End).
		Write(";\n")

	g.logger.Debug(LogMsgDependency, zap.String(LogFieldSourceRef, dep.Source.Value))
	return nil
}

func (g *Generator) rename(name, ident string) {
	if name != ident {
		g.globals[name] = ident
	}
}

// renderImports writes one statement per source module, in first-use order
func (g *Generator) renderImports() {
	grouped := NewOrderedMap[string, *OrderedMap[string, string]]()
	for _, imp := range g.importList {
		specs, ok := grouped.Get(imp.from)
		if !ok {
			specs = NewOrderedMap[string, string]()
			grouped.Set(imp.from, specs)
		}
		specs.Set(imp.name, imp.alias)
	}

	_ = grouped.Each(func(from string, specs *OrderedMap[string, string]) error {
		g.imports.Write("import ")
		if alias, ok := specs.Delete(DefaultExport); ok {
			g.imports.Write(alias)
			if specs.Len() > 0 {
				g.imports.Write(", ")
			} else {
				g.imports.Write(" ")
			}
		}
		if specs.Len() > 0 {
			g.imports.Write("{ " + joinSpecifiers(specs) + " } ")
		}
		g.imports.Write("from " + InString(from) + ";\n")
		return nil
	})
}

// renderExports writes one statement per source module; local exports
// share a single statement
func (g *Generator) renderExports() {
	grouped := NewOrderedMap[string, *OrderedMap[string, string]]()
	for _, exp := range g.exportList {
		specs, ok := grouped.Get(exp.from)
		if !ok {
			specs = NewOrderedMap[string, string]()
			grouped.Set(exp.from, specs)
		}
		alias := exp.alias
		if alias == exp.name {
			alias = ""
		}
		specs.Set(exp.name, alias)
	}

	_ = grouped.Each(func(from string, specs *OrderedMap[string, string]) error {
		g.exports.Write("export { " + joinSpecifiers(specs) + " }")
		if from != "" {
			g.exports.Write(" from " + InString(from))
		}
		g.exports.Write(";\n")
		return nil
	})
}

func joinSpecifiers(specs *OrderedMap[string, string]) string {
	parts := make([]string, 0, specs.Len())
	_ = specs.Each(func(name, alias string) error {
		if alias != "" {
			parts = append(parts, name+" as "+alias)
		} else {
			parts = append(parts, name)
		}
		return nil
	})
	return strings.Join(parts, ", ")
}
