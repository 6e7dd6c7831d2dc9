package load

import (
	"errors"
	"strings"

	"github.com/syssam/xsdgen/schema/node"
)

// ErrMalformedSchema is the sentinel matched by every NodeError.
var ErrMalformedSchema = errors.New("xsdgen: malformed schema")

// NodeError reports a schema construct the builder cannot turn into an
// entity: a missing required attribute, an unexpected child, invalid
// occurrence bounds or an unsupported construct.
type NodeError struct {
	Kind    node.Kind
	Name    string // name of the construct, or of its nearest named ancestor
	Attr    string // offending attribute, if any
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	var b strings.Builder
	b.WriteString("xsdgen: ")
	b.WriteString(e.Kind.String())
	if e.Name != "" {
		b.WriteString(" ")
		b.WriteString(e.Name)
	}
	if e.Attr != "" {
		b.WriteString(" (attribute: ")
		b.WriteString(e.Attr)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *NodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for NodeError.
func (e *NodeError) Is(target error) bool {
	return target == ErrMalformedSchema
}

// NewNodeError creates a new NodeError for n.
func NewNodeError(n *node.Node, message string, cause error) *NodeError {
	return &NodeError{
		Kind:    n.Kind(),
		Name:    nodeName(n),
		Message: message,
		Cause:   cause,
	}
}

// IsMalformed reports whether the error is a NodeError.
func IsMalformed(err error) bool {
	var nodeErr *NodeError
	return errors.As(err, &nodeErr)
}

func missingAttr(n *node.Node, attr string) *NodeError {
	return &NodeError{
		Kind:    n.Kind(),
		Name:    nodeName(n),
		Attr:    attr,
		Message: "missing required attribute",
	}
}

func unexpectedChild(n, child *node.Node) *NodeError {
	return &NodeError{
		Kind:    n.Kind(),
		Name:    nodeName(n),
		Message: "unexpected child " + child.Element().Name.Local,
	}
}

func nodeName(n *node.Node) string {
	if name := n.Name(); name != "" {
		return name
	}
	if ref := n.Attr("ref"); ref != "" {
		return ref
	}
	return n.ParentName()
}
