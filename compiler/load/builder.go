package load

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/node"
)

const (
	anyType    = "xs:anyType"
	stringType = "xs:string"
)

// builder turns classified schema nodes into entities. The parent of a
// node is reachable through the node itself and decides how the node is
// built: a global element becomes a type, an element inside a sequence a
// struct field and an element inside a choice an enum case.
type builder struct {
	logger *slog.Logger

	// globalAttrs maps global attribute names to their type reference.
	globalAttrs map[string]string
}

func newBuilder(opts ...Option) *builder {
	b := &builder{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		globalAttrs: make(map[string]string),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// build dispatches n to the builder of its kind.
func (b *builder) build(n *node.Node) (graph.Entity, error) {
	switch n.Kind() {
	case node.KindElement:
		return b.element(n)
	case node.KindAttribute:
		return b.attribute(n)
	case node.KindSequence, node.KindAll:
		return b.sequence(n)
	case node.KindChoice:
		return b.choice(n)
	case node.KindUnion:
		return b.union(n)
	case node.KindGroup:
		if isGlobal(n) {
			return b.groupDecl(n)
		}
		return b.groupRef(n)
	case node.KindAttributeGroup:
		if isGlobal(n) {
			return b.attributeGroupDecl(n)
		}
		return b.attributeGroupRef(n)
	case node.KindComplexType:
		return b.complexType(n)
	case node.KindSimpleType:
		return b.simpleType(n)
	case node.KindImport, node.KindInclude:
		return &graph.Import{
			Name:     n.Attr("namespace"),
			Location: n.Attr("schemaLocation"),
		}, nil
	default:
		return nil, NewNodeError(n, "unsupported construct", nil)
	}
}

func isGlobal(n *node.Node) bool {
	return n.Parent() != nil && n.Parent().Kind() == node.KindSchema
}

// modifiers maps the occurrence bounds of n to field modifiers.
func modifiers(n *node.Node) (graph.Modifiers, error) {
	o, err := n.Occurs()
	if err != nil {
		return nil, NewNodeError(n, "", err)
	}
	switch {
	case o.Prohibited():
		return graph.Modifiers{graph.Empty}, nil
	case o.Many():
		return graph.Modifiers{graph.Array}, nil
	case o.Optional():
		return graph.Modifiers{graph.Option}, nil
	}
	return nil, nil
}

// rename sets the name of a type-like entity.
func rename(e graph.Entity, name string) {
	switch e := e.(type) {
	case *graph.Struct:
		e.Name = name
	case *graph.TupleStruct:
		e.Name = name
	case *graph.Enum:
		e.Name = name
	case *graph.Alias:
		e.Name = name
	}
}

// comment sets the comment of a type-like entity unless it already has one.
func comment(e graph.Entity, doc string) {
	if doc == "" {
		return
	}
	switch e := e.(type) {
	case *graph.Struct:
		if e.Comment == "" {
			e.Comment = doc
		}
	case *graph.TupleStruct:
		if e.Comment == "" {
			e.Comment = doc
		}
	case *graph.Enum:
		if e.Comment == "" {
			e.Comment = doc
		}
	case *graph.Alias:
		if e.Comment == "" {
			e.Comment = doc
		}
	}
}

// suffix numbers the second and later anonymous siblings of one kind.
func suffix(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}

// inlineType builds the anonymous complex or simple type declared inside
// n, if any.
func (b *builder) inlineType(n *node.Node) (graph.Entity, error) {
	for _, c := range n.Children() {
		switch c.Kind() {
		case node.KindComplexType, node.KindSimpleType:
			return b.build(c)
		}
	}
	return nil, nil
}

// element builds a global element into a type, and a local element into a
// struct field or, inside a choice, an enum case.
func (b *builder) element(n *node.Node) (graph.Entity, error) {
	name, typ := n.Name(), n.TypeRef("type")
	if ref := n.Attr("ref"); name == "" && ref != "" {
		name = node.Local(ref)
		if typ == "" {
			typ = ref
		}
	}
	if name == "" {
		return nil, missingAttr(n, "name")
	}
	doc := n.Documentation()
	sub, err := b.inlineType(n)
	if err != nil {
		return nil, err
	}
	var subtypes []graph.Entity
	if sub != nil {
		rename(sub, name)
		subtypes = []graph.Entity{sub}
		typ = name
	}
	if typ == "" {
		typ = anyType
	}
	if isGlobal(n) {
		if sub != nil {
			comment(sub, doc)
			return sub, nil
		}
		return &graph.Alias{Name: name, Original: typ, Comment: doc}, nil
	}
	mods, err := modifiers(n)
	if err != nil {
		return nil, err
	}
	if n.Parent().Kind() == node.KindChoice {
		return &graph.EnumCase{
			Name:      name,
			Comment:   doc,
			TypeName:  typ,
			Modifiers: mods,
			Source:    graph.EnumChoice,
			Subtypes:  subtypes,
		}, nil
	}
	return &graph.StructField{
		Name:      name,
		XMLName:   name,
		TypeName:  typ,
		Comment:   doc,
		Modifiers: mods,
		Source:    graph.SourceElement,
		Subtypes:  subtypes,
	}, nil
}

// attribute builds a local attribute declaration or reference into a
// struct field. Prohibited attributes yield nil.
func (b *builder) attribute(n *node.Node) (graph.Entity, error) {
	f, err := b.attributeField(n)
	if err != nil || f == nil {
		return nil, err
	}
	return f, nil
}

func (b *builder) attributeField(n *node.Node) (*graph.StructField, error) {
	name, typ := n.Name(), n.TypeRef("type")
	if ref := n.Attr("ref"); name == "" && ref != "" {
		name = node.Local(ref)
		if typ == "" {
			typ = b.globalAttrs[name]
		}
	}
	if name == "" {
		return nil, missingAttr(n, "name")
	}
	var subtypes []graph.Entity
	if st, ok := n.Child(node.KindSimpleType); ok {
		sub, err := b.simpleType(st)
		if err != nil {
			return nil, err
		}
		rename(sub, name)
		subtypes = []graph.Entity{sub}
		typ = name
	}
	if typ == "" {
		typ = stringType
	}
	var mods graph.Modifiers
	switch n.Attr("use") {
	case "required":
	case "prohibited":
		b.logger.Debug("dropping prohibited attribute", "name", name, "parent", n.ParentName())
		return nil, nil
	default:
		mods = graph.Modifiers{graph.Option}
	}
	return &graph.StructField{
		Name:      name,
		XMLName:   name,
		TypeName:  typ,
		Comment:   n.Documentation(),
		Modifiers: mods,
		Source:    graph.SourceAttribute,
		Subtypes:  subtypes,
	}, nil
}

// globalAttribute records the type of a global attribute. An inline
// simple type is returned so that it can be emitted as a top-level type.
func (b *builder) globalAttribute(n *node.Node) (graph.Entity, error) {
	name := n.Name()
	if name == "" {
		return nil, missingAttr(n, "name")
	}
	typ := n.TypeRef("type")
	var sub graph.Entity
	if st, ok := n.Child(node.KindSimpleType); ok {
		var err error
		if sub, err = b.simpleType(st); err != nil {
			return nil, err
		}
		rename(sub, name)
		comment(sub, n.Documentation())
		typ = name
	}
	if typ == "" {
		typ = stringType
	}
	b.globalAttrs[name] = typ
	return sub, nil
}

// attributes collects the attribute declarations and attribute-group
// references held directly by n.
func (b *builder) attributes(n *node.Node) ([]*graph.StructField, []*graph.Alias, error) {
	var (
		fields []*graph.StructField
		groups []*graph.Alias
	)
	for _, c := range n.Children() {
		switch c.Kind() {
		case node.KindAttribute:
			f, err := b.attributeField(c)
			if err != nil {
				return nil, nil, err
			}
			if f != nil {
				fields = append(fields, f)
			}
		case node.KindAttributeGroup:
			a, err := b.attributeGroupRef(c)
			if err != nil {
				return nil, nil, err
			}
			groups = append(groups, a)
		case node.KindAnyAttribute:
			b.logger.Debug("skipping attribute wildcard", "parent", n.ParentName())
		}
	}
	return fields, groups, nil
}
