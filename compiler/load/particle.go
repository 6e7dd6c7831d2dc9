package load

import (
	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/node"
)

// sequence builds an xs:sequence or xs:all into a struct named after the
// nearest named ancestor. Nested choices and sequences become flattened
// fields owning the nested entity.
func (b *builder) sequence(n *node.Node) (*graph.Struct, error) {
	parent := n.ParentName()
	st := &graph.Struct{Name: parent, Comment: n.Documentation()}
	var choices, sequences int
	for _, c := range n.Children() {
		switch c.Kind() {
		case node.KindAnnotation:
		case node.KindElement:
			e, err := b.element(c)
			if err != nil {
				return nil, err
			}
			f := e.(*graph.StructField)
			if len(f.Subtypes) == 0 && node.Local(f.TypeName) == parent {
				f.Modifiers = f.Modifiers.With(graph.Recursive)
			}
			st.Fields = append(st.Fields, f)
		case node.KindChoice:
			en, err := b.choice(c)
			if err != nil {
				return nil, err
			}
			en.Name = parent + "Choice" + suffix(choices)
			choices++
			f, err := nestedField(c, en, graph.SourceChoice)
			if err != nil {
				return nil, err
			}
			st.Fields = append(st.Fields, f)
		case node.KindSequence, node.KindAll:
			sub, err := b.sequence(c)
			if err != nil {
				return nil, err
			}
			sub.Name = parent + "Sequence" + suffix(sequences)
			sequences++
			f, err := nestedField(c, sub, graph.SourceSequence)
			if err != nil {
				return nil, err
			}
			st.Fields = append(st.Fields, f)
		case node.KindGroup:
			a, err := b.groupRef(c)
			if err != nil {
				return nil, err
			}
			addGroup(st, a)
		case node.KindAny:
			b.logger.Debug("skipping element wildcard", "parent", parent)
		default:
			return nil, unexpectedChild(n, c)
		}
	}
	return st, nil
}

// nestedField wraps an anonymous particle entity into a flattened field
// carrying the particle's occurrence bounds.
func nestedField(n *node.Node, e graph.Entity, source graph.FieldSource) (*graph.StructField, error) {
	mods, err := modifiers(n)
	if err != nil {
		return nil, err
	}
	return &graph.StructField{
		Name:      e.EntityName(),
		TypeName:  e.EntityName(),
		Modifiers: mods.With(graph.Flatten),
		Source:    source,
		Subtypes:  []graph.Entity{e},
	}, nil
}

// choice builds an xs:choice into an enum with one case per alternative.
func (b *builder) choice(n *node.Node) (*graph.Enum, error) {
	parent := n.ParentName()
	en := &graph.Enum{
		Name:     parent + "Choice",
		Comment:  n.Documentation(),
		TypeName: stringType,
		Source:   graph.EnumChoice,
	}
	var choices, sequences int
	for _, c := range n.Children() {
		switch c.Kind() {
		case node.KindAnnotation:
		case node.KindElement:
			e, err := b.element(c)
			if err != nil {
				return nil, err
			}
			en.Cases = append(en.Cases, e.(*graph.EnumCase))
		case node.KindSequence, node.KindAll:
			st, err := b.sequence(c)
			if err != nil {
				return nil, err
			}
			st.Name = "Sequence" + suffix(sequences)
			sequences++
			ec, err := nestedCase(c, st)
			if err != nil {
				return nil, err
			}
			en.Cases = append(en.Cases, ec)
		case node.KindChoice:
			sub, err := b.choice(c)
			if err != nil {
				return nil, err
			}
			sub.Name = "Choice" + suffix(choices)
			choices++
			ec, err := nestedCase(c, sub)
			if err != nil {
				return nil, err
			}
			en.Cases = append(en.Cases, ec)
		case node.KindGroup:
			a, err := b.groupRef(c)
			if err != nil {
				return nil, err
			}
			en.Cases = append(en.Cases, &graph.EnumCase{
				Name:      a.Name,
				TypeName:  a.Original,
				Modifiers: a.Modifiers.With(graph.Flatten),
				Source:    graph.EnumChoice,
				Subtypes:  []graph.Entity{a},
			})
		case node.KindAny:
			b.logger.Debug("skipping element wildcard", "parent", parent)
		default:
			return nil, unexpectedChild(n, c)
		}
	}
	if len(en.Cases) == 0 {
		return nil, NewNodeError(n, "choice has no alternatives", nil)
	}
	return en, nil
}

func nestedCase(n *node.Node, e graph.Entity) (*graph.EnumCase, error) {
	mods, err := modifiers(n)
	if err != nil {
		return nil, err
	}
	return &graph.EnumCase{
		Name:      e.EntityName(),
		TypeName:  e.EntityName(),
		Modifiers: mods.With(graph.Flatten),
		Source:    graph.EnumChoice,
		Subtypes:  []graph.Entity{e},
	}, nil
}

// groupRef builds a local xs:group reference into a pending alias.
func (b *builder) groupRef(n *node.Node) (*graph.Alias, error) {
	ref := n.Attr("ref")
	if ref == "" {
		return nil, missingAttr(n, "ref")
	}
	mods, err := modifiers(n)
	if err != nil {
		return nil, err
	}
	return &graph.Alias{Name: node.Local(ref), Original: ref, Modifiers: mods}, nil
}

// addGroup records the pending group reference a and a marker field
// keeping its position among the fields of st.
func addGroup(st *graph.Struct, a *graph.Alias) {
	st.Groups = append(st.Groups, a)
	st.Fields = append(st.Fields, &graph.StructField{
		Name:      graph.GroupField,
		TypeName:  a.Original,
		Modifiers: a.Modifiers,
		Source:    graph.SourceGroup,
	})
}

// groupDecl builds a global xs:group into a struct holding its content.
func (b *builder) groupDecl(n *node.Node) (*graph.Struct, error) {
	name := n.Name()
	if name == "" {
		return nil, missingAttr(n, "name")
	}
	st := &graph.Struct{Name: name, Comment: n.Documentation()}
	content := n.ChildrenOf(node.KindSequence, node.KindAll, node.KindChoice)
	if len(content) > 1 {
		return nil, NewNodeError(n, "more than one content model", nil)
	}
	for _, c := range content {
		if err := b.content(c, st); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// content merges the content model c into st. Sequences contribute their
// fields, a choice is held by one flattened field and a group reference
// stays pending behind a marker field.
func (b *builder) content(c *node.Node, st *graph.Struct) error {
	switch c.Kind() {
	case node.KindSequence, node.KindAll:
		seq, err := b.sequence(c)
		if err != nil {
			return err
		}
		st.Fields = append(st.Fields, seq.Fields...)
		st.Groups = append(st.Groups, seq.Groups...)
		st.Subtypes = append(st.Subtypes, seq.Subtypes...)
	case node.KindChoice:
		en, err := b.choice(c)
		if err != nil {
			return err
		}
		en.Name = st.Name + "Choice"
		f, err := nestedField(c, en, graph.SourceChoice)
		if err != nil {
			return err
		}
		st.Fields = append(st.Fields, f)
	case node.KindGroup:
		a, err := b.groupRef(c)
		if err != nil {
			return err
		}
		addGroup(st, a)
	default:
		return NewNodeError(c, "unsupported content model", nil)
	}
	return nil
}

// attributeGroupDecl builds a global xs:attributeGroup into a struct of
// attribute fields.
func (b *builder) attributeGroupDecl(n *node.Node) (*graph.Struct, error) {
	name := n.Name()
	if name == "" {
		return nil, missingAttr(n, "name")
	}
	fields, groups, err := b.attributes(n)
	if err != nil {
		return nil, err
	}
	return &graph.Struct{
		Name:            name,
		Comment:         n.Documentation(),
		Fields:          fields,
		AttributeGroups: groups,
	}, nil
}

// attributeGroupRef builds a local xs:attributeGroup reference into a
// pending alias.
func (b *builder) attributeGroupRef(n *node.Node) (*graph.Alias, error) {
	ref := n.Attr("ref")
	if ref == "" {
		return nil, missingAttr(n, "ref")
	}
	return &graph.Alias{Name: node.Local(ref), Original: ref}, nil
}
