package load

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"aqwari.net/xml/xmltree"

	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/node"
)

// Schema is the entity forest assembled from one schema document. Global
// groups and attribute groups are kept apart from the types because they
// are only reachable through references and never emitted on their own.
type Schema struct {
	TargetNamespace string
	Types           []graph.Entity
	Groups          []graph.Entity
	AttributeGroups []graph.Entity
}

// Option configures the loader.
type Option func(*builder)

// WithLogger sets the logger used to report skipped constructs.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Parse loads a schema document.
func Parse(data []byte, opts ...Option) (*Schema, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("xsdgen: parse schema document: %w", err)
	}
	return ParseElement(root, opts...)
}

// ParseFile loads the schema document stored at path.
func ParseFile(path string, opts ...Option) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xsdgen: open schema: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("xsdgen: read schema %s: %w", path, err)
	}
	s, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseElement assembles the schema rooted at an already parsed
// xs:schema element.
func ParseElement(root *xmltree.Element, opts ...Option) (*Schema, error) {
	b := newBuilder(opts...)
	n := node.New(root)
	if n.Kind() != node.KindSchema {
		return nil, &NodeError{
			Kind:    n.Kind(),
			Name:    root.Name.Local,
			Message: "root element is not xs:schema",
		}
	}
	s := &Schema{TargetNamespace: n.Attr("targetNamespace")}
	// Global attributes are indexed first so that references resolve
	// regardless of declaration order.
	for _, c := range n.ChildrenOf(node.KindAttribute) {
		sub, err := b.globalAttribute(c)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			s.Types = append(s.Types, sub)
		}
	}
	for _, c := range n.Children() {
		switch c.Kind() {
		case node.KindAnnotation, node.KindAttribute:
		case node.KindElement, node.KindComplexType, node.KindSimpleType, node.KindImport, node.KindInclude:
			e, err := b.build(c)
			if err != nil {
				return nil, err
			}
			s.Types = append(s.Types, e)
		case node.KindGroup:
			e, err := b.build(c)
			if err != nil {
				return nil, err
			}
			s.Groups = append(s.Groups, e)
		case node.KindAttributeGroup:
			e, err := b.build(c)
			if err != nil {
				return nil, err
			}
			s.AttributeGroups = append(s.AttributeGroups, e)
		case node.KindNotation:
			b.logger.Debug("skipping notation", "name", c.Name())
		case node.KindRedefine:
			return nil, NewNodeError(c, "redefine is not supported", nil)
		default:
			return nil, unexpectedChild(n, c)
		}
	}
	b.logger.Debug("schema assembled",
		"namespace", s.TargetNamespace,
		"types", len(s.Types),
		"groups", len(s.Groups),
		"attribute_groups", len(s.AttributeGroups),
	)
	return s, nil
}

// Entities returns every top-level entity of the schema: types, then
// groups, then attribute groups.
func (s *Schema) Entities() []graph.Entity {
	out := make([]graph.Entity, 0, len(s.Types)+len(s.Groups)+len(s.AttributeGroups))
	out = append(out, s.Types...)
	out = append(out, s.Groups...)
	return append(out, s.AttributeGroups...)
}

// Imports returns the imported and included documents.
func (s *Schema) Imports() []*graph.Import {
	var out []*graph.Import
	for _, e := range s.Types {
		if imp, ok := e.(*graph.Import); ok {
			out = append(out, imp)
		}
	}
	return out
}
