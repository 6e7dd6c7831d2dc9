package load

import (
	"fmt"
	"strings"

	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/node"
)

// typeName returns the name of a complex or simple type. Global types
// must be named; anonymous ones take the name of their nearest named
// ancestor.
func typeName(n *node.Node) (string, error) {
	if name := n.Name(); name != "" {
		return name, nil
	}
	if isGlobal(n) {
		return "", missingAttr(n, "name")
	}
	return n.ParentName(), nil
}

// complexType builds an xs:complexType into a struct. Attributes come
// first, followed by the content model.
func (b *builder) complexType(n *node.Node) (*graph.Struct, error) {
	name, err := typeName(n)
	if err != nil {
		return nil, err
	}
	fields, groups, err := b.attributes(n)
	if err != nil {
		return nil, err
	}
	st := &graph.Struct{
		Name:            name,
		Comment:         n.Documentation(),
		Fields:          fields,
		AttributeGroups: groups,
	}
	var content []*node.Node
	for _, c := range n.Children() {
		if c.Kind().IsContent() {
			content = append(content, c)
		}
	}
	switch {
	case len(content) == 0:
		return st, nil
	case len(content) > 1:
		return nil, NewNodeError(n, "more than one content model", nil)
	}
	c := content[0]
	switch c.Kind() {
	case node.KindComplexContent:
		err = b.complexContent(c, st)
	case node.KindSimpleContent:
		err = b.simpleContent(c, st)
	default:
		err = b.content(c, st)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// derivation returns the extension or restriction held by a simple or
// complex content node, and its base type.
func derivation(n *node.Node) (*node.Node, string, error) {
	for _, c := range n.Children() {
		switch c.Kind() {
		case node.KindExtension, node.KindRestriction:
			base := c.TypeRef("base")
			if base == "" {
				return nil, "", missingAttr(c, "base")
			}
			return c, base, nil
		}
	}
	return nil, "", NewNodeError(n, "missing extension or restriction", nil)
}

func baseField(base string) *graph.StructField {
	return &graph.StructField{Name: graph.BaseField, TypeName: base, Source: graph.SourceBase}
}

// complexContent adds a derived content model to st. An extension keeps a
// marker field for the base content, replaced during resolution. A
// restriction restates the whole content and refers to nothing.
func (b *builder) complexContent(n *node.Node, st *graph.Struct) error {
	d, base, err := derivation(n)
	if err != nil {
		return err
	}
	if d.Kind() == node.KindExtension && base != anyType {
		st.Fields = append(st.Fields, baseField(base))
	}
	fields, groups, err := b.attributes(d)
	if err != nil {
		return err
	}
	var content []*node.Node
	for _, c := range d.Children() {
		switch c.Kind() {
		case node.KindSequence, node.KindAll, node.KindChoice, node.KindGroup:
			content = append(content, c)
		}
	}
	if len(content) > 1 {
		return NewNodeError(d, "more than one content model", nil)
	}
	for _, c := range content {
		if err := b.content(c, st); err != nil {
			return err
		}
	}
	st.Fields = append(st.Fields, fields...)
	st.AttributeGroups = append(st.AttributeGroups, groups...)
	return nil
}

// simpleContent adds a text value and attributes to st. The value is
// typed by the base, which the resolver turns into a value field.
func (b *builder) simpleContent(n *node.Node, st *graph.Struct) error {
	d, base, err := derivation(n)
	if err != nil {
		return err
	}
	fields, groups, err := b.attributes(d)
	if err != nil {
		return err
	}
	st.Fields = append(st.Fields, baseField(base))
	st.Fields = append(st.Fields, fields...)
	st.AttributeGroups = append(st.AttributeGroups, groups...)
	return nil
}

// simpleType builds an xs:simpleType. Enumerated restrictions become
// enums, other restrictions and lists become tuple structs and unions
// become enums with one case per member.
func (b *builder) simpleType(n *node.Node) (graph.Entity, error) {
	name, err := typeName(n)
	if err != nil {
		return nil, err
	}
	var e graph.Entity
	switch {
	case hasChild(n, node.KindRestriction):
		r, _ := n.Child(node.KindRestriction)
		e, err = b.restriction(r, name)
	case hasChild(n, node.KindList):
		l, _ := n.Child(node.KindList)
		e, err = b.list(l, name)
	case hasChild(n, node.KindUnion):
		u, _ := n.Child(node.KindUnion)
		e, err = b.union(u)
	default:
		return nil, NewNodeError(n, "missing restriction, list or union", nil)
	}
	if err != nil {
		return nil, err
	}
	comment(e, n.Documentation())
	return e, nil
}

func hasChild(n *node.Node, kind node.Kind) bool {
	_, ok := n.Child(kind)
	return ok
}

// restriction builds a simple type restriction named name.
func (b *builder) restriction(n *node.Node, name string) (graph.Entity, error) {
	base := n.TypeRef("base")
	var subtypes []graph.Entity
	if base == "" {
		st, ok := n.Child(node.KindSimpleType)
		if !ok {
			return nil, missingAttr(n, "base")
		}
		sub, err := b.simpleType(st)
		if err != nil {
			return nil, err
		}
		base = name + "Base"
		rename(sub, base)
		subtypes = []graph.Entity{sub}
	}
	if enums := n.ChildrenOf(node.KindEnumeration); len(enums) > 0 {
		en := &graph.Enum{
			Name:     name,
			TypeName: base,
			Source:   graph.EnumRestriction,
			Subtypes: subtypes,
		}
		for _, c := range enums {
			v := c.Attr("value")
			en.Cases = append(en.Cases, &graph.EnumCase{
				Name:    v,
				Comment: c.Documentation(),
				Value:   v,
				Source:  graph.EnumRestriction,
			})
		}
		return en, nil
	}
	ts := &graph.TupleStruct{Name: name, TypeName: base, Subtypes: subtypes}
	for _, c := range n.Children() {
		if c.Kind().IsFacet() {
			ts.Facets = append(ts.Facets, graph.Facet{
				Kind:    c.Kind().String(),
				Value:   c.Attr("value"),
				Comment: c.Documentation(),
			})
		}
	}
	return ts, nil
}

// list builds a whitespace separated list type named name.
func (b *builder) list(n *node.Node, name string) (*graph.TupleStruct, error) {
	item := n.TypeRef("itemType")
	var subtypes []graph.Entity
	if item == "" {
		st, ok := n.Child(node.KindSimpleType)
		if !ok {
			return nil, missingAttr(n, "itemType")
		}
		sub, err := b.simpleType(st)
		if err != nil {
			return nil, err
		}
		item = name + "Item"
		rename(sub, item)
		subtypes = []graph.Entity{sub}
	}
	return &graph.TupleStruct{
		Name:      name,
		TypeName:  item,
		Modifiers: graph.Modifiers{graph.Array},
		Subtypes:  subtypes,
	}, nil
}

// union builds an xs:union into an enum with one case per member type,
// then one case per inline member. A union carrying attributes becomes a
// struct of those attributes plus a flattened field holding the enum.
func (b *builder) union(n *node.Node) (graph.Entity, error) {
	parent := n.ParentName()
	en := &graph.Enum{
		Name:     parent,
		TypeName: stringType,
		Source:   graph.EnumUnion,
	}
	for _, m := range strings.Fields(n.Attr("memberTypes")) {
		en.Cases = append(en.Cases, &graph.EnumCase{
			Name:     node.Local(m),
			TypeName: n.NormalizeRef(m),
			Source:   graph.EnumUnion,
		})
	}
	for i, c := range n.ChildrenOf(node.KindSimpleType) {
		sub, err := b.simpleType(c)
		if err != nil {
			return nil, err
		}
		typ := fmt.Sprintf("EnumCaseType_%d", i)
		rename(sub, typ)
		en.Cases = append(en.Cases, &graph.EnumCase{
			Name:      fmt.Sprintf("EnumCase_%d", i),
			TypeName:  typ,
			Modifiers: graph.Modifiers{graph.Flatten},
			Source:    graph.EnumUnion,
			Subtypes:  []graph.Entity{sub},
		})
	}
	if len(en.Cases) == 0 {
		return nil, NewNodeError(n, "union has no member types", nil)
	}
	fields, _, err := b.attributes(n)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return en, nil
	}
	en.Name = parent + "Choice"
	return &graph.Struct{
		Name: parent,
		Fields: append(fields, &graph.StructField{
			Name:      en.Name,
			TypeName:  en.Name,
			Modifiers: graph.Modifiers{graph.Flatten},
			Source:    graph.SourceChoice,
			Subtypes:  []graph.Entity{en},
		}),
	}, nil
}
