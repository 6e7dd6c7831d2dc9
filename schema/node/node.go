package node

import (
	"encoding/xml"
	"strings"

	"aqwari.net/xml/xmltree"

	"github.com/syssam/xsdgen/schema/field"
)

// Namespace is the XML Schema namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema"

// Kind is the construct kind of a schema element.
type Kind uint8

// Construct kinds.
const (
	KindUnknown Kind = iota
	KindAll
	KindAnnotation
	KindAny
	KindAnyAttribute
	KindAppInfo
	KindAttribute
	KindAttributeGroup
	KindChoice
	KindComplexContent
	KindComplexType
	KindDocumentation
	KindElement
	KindExtension
	KindGroup
	KindImport
	KindInclude
	KindList
	KindNotation
	KindRedefine
	KindRestriction
	KindSchema
	KindSequence
	KindSimpleContent
	KindSimpleType
	KindUnion

	// Facets.
	KindEnumeration
	KindFractionDigits
	KindLength
	KindMaxExclusive
	KindMaxInclusive
	KindMaxLength
	KindMinExclusive
	KindMinInclusive
	KindMinLength
	KindPattern
	KindTotalDigits
	KindWhiteSpace
)

var kindNames = [...]string{
	KindUnknown:        "unknown",
	KindAll:            "all",
	KindAnnotation:     "annotation",
	KindAny:            "any",
	KindAnyAttribute:   "anyAttribute",
	KindAppInfo:        "appinfo",
	KindAttribute:      "attribute",
	KindAttributeGroup: "attributeGroup",
	KindChoice:         "choice",
	KindComplexContent: "complexContent",
	KindComplexType:    "complexType",
	KindDocumentation:  "documentation",
	KindElement:        "element",
	KindExtension:      "extension",
	KindGroup:          "group",
	KindImport:         "import",
	KindInclude:        "include",
	KindList:           "list",
	KindNotation:       "notation",
	KindRedefine:       "redefine",
	KindRestriction:    "restriction",
	KindSchema:         "schema",
	KindSequence:       "sequence",
	KindSimpleContent:  "simpleContent",
	KindSimpleType:     "simpleType",
	KindUnion:          "union",
	KindEnumeration:    "enumeration",
	KindFractionDigits: "fractionDigits",
	KindLength:         "length",
	KindMaxExclusive:   "maxExclusive",
	KindMaxInclusive:   "maxInclusive",
	KindMaxLength:      "maxLength",
	KindMinExclusive:   "minExclusive",
	KindMinInclusive:   "minInclusive",
	KindMinLength:      "minLength",
	KindPattern:        "pattern",
	KindTotalDigits:    "totalDigits",
	KindWhiteSpace:     "whiteSpace",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if Kind(k) != KindUnknown {
			m[name] = Kind(k)
		}
	}
	return m
}()

// String returns the XSD element name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsFacet reports whether the kind is a constraining facet.
func (k Kind) IsFacet() bool {
	return k >= KindEnumeration && k <= KindWhiteSpace
}

// IsContent reports whether the kind is one of the content models a
// complex type may hold.
func (k Kind) IsContent() bool {
	switch k {
	case KindAll, KindChoice, KindComplexContent, KindGroup, KindSequence, KindSimpleContent:
		return true
	}
	return false
}

// Classify maps a schema element to its construct kind. Elements outside
// the XML Schema namespace are KindUnknown.
func Classify(el *xmltree.Element) Kind {
	if el.Name.Space != Namespace {
		return KindUnknown
	}
	return kindByName[el.Name.Local]
}

// Node is a classified schema element together with the chain of its
// ancestors, which supplies naming context for anonymous constructs.
type Node struct {
	el     *xmltree.Element
	kind   Kind
	parent *Node
}

// New returns the root node for el.
func New(el *xmltree.Element) *Node {
	return &Node{el: el, kind: Classify(el)}
}

// Kind returns the construct kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// Element returns the underlying tree element.
func (n *Node) Element() *xmltree.Element {
	return n.el
}

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the classified child elements in document order.
func (n *Node) Children() []*Node {
	children := make([]*Node, 0, len(n.el.Children))
	for i := range n.el.Children {
		el := &n.el.Children[i]
		children = append(children, &Node{el: el, kind: Classify(el), parent: n})
	}
	return children
}

// ChildrenOf returns the children of the given kinds in document order.
func (n *Node) ChildrenOf(kinds ...Kind) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		for _, k := range kinds {
			if c.kind == k {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Child returns the first child of the given kind.
func (n *Node) Child(kind Kind) (*Node, bool) {
	for _, c := range n.Children() {
		if c.kind == kind {
			return c, true
		}
	}
	return nil, false
}

// Attr returns the value of an unqualified attribute.
func (n *Node) Attr(name string) string {
	return n.el.Attr("", name)
}

// HasAttr reports whether an unqualified attribute is present.
func (n *Node) HasAttr(name string) bool {
	for _, a := range n.el.StartElement.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return true
		}
	}
	return false
}

// Name returns the name attribute.
func (n *Node) Name() string {
	return n.Attr("name")
}

// TypeRef returns the QName held by attr in normalized form: references to
// builtin datatypes become "xs:<local>" whatever prefix the document
// binds to the XML Schema namespace, other references are returned as
// written.
func (n *Node) TypeRef(attr string) string {
	return n.NormalizeRef(n.Attr(attr))
}

// NormalizeRef normalizes one QName written inside this node.
func (n *Node) NormalizeRef(ref string) string {
	if ref == "" {
		return ""
	}
	name := n.Resolve(ref)
	if name.Space == Namespace && field.IsBuiltinName(name.Local) {
		return "xs:" + name.Local
	}
	return ref
}

// Resolve resolves a QName against the namespace scope of the node.
func (n *Node) Resolve(qname string) xml.Name {
	return n.el.Resolve(qname)
}

// ParentName returns the name attribute of the nearest named ancestor.
// Anonymous types are named after it.
func (n *Node) ParentName() string {
	for p := n.parent; p != nil; p = p.parent {
		if name := p.Name(); name != "" {
			return name
		}
		if ref := p.Attr("ref"); ref != "" && p.kind != KindGroup && p.kind != KindAttributeGroup {
			return Local(ref)
		}
	}
	return ""
}

// Documentation returns the text of the xs:annotation/xs:documentation
// children, joined by blank lines.
func (n *Node) Documentation() string {
	var docs []string
	for _, a := range n.ChildrenOf(KindAnnotation) {
		for _, d := range a.ChildrenOf(KindDocumentation) {
			var text string
			if err := xmltree.Unmarshal(d.el, &text); err != nil {
				continue
			}
			if text = strings.TrimSpace(text); text != "" {
				docs = append(docs, text)
			}
		}
	}
	return strings.Join(docs, "\n\n")
}

// Local strips the namespace prefix of a QName.
func Local(qname string) string {
	if i := strings.LastIndexByte(qname, ':'); i >= 0 {
		return qname[i+1:]
	}
	return qname
}
