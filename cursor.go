package xsdgen

import (
	"aqwari.net/xml/xmltree"
)

// Cursor is a read position over an XML document consumed by generated
// decode routines.
//
// A cursor positioned on an element reads that element's attributes in any
// order and its child elements in document order. Clone returns an
// independent copy of the position; Restore moves the receiver to the
// position of a clone. Neither copies document data.
type Cursor interface {
	// PopChild consumes the next child element if it has the given local
	// name and returns a cursor positioned inside it.
	PopChild(name string) (Cursor, error)
	// PopAttribute returns a cursor over the value of the named attribute.
	PopAttribute(name string) (Cursor, error)
	// PopValue returns the character data at the position.
	PopValue() (string, error)
	// Clone returns a copy of the position.
	Clone() Cursor
	// Restore moves the receiver to the position held by a clone.
	Restore(Cursor)
	// Offset reports how many child elements have been consumed.
	Offset() int
}

// NewCursor returns a cursor positioned inside el.
func NewCursor(el *xmltree.Element) Cursor {
	return &treeCursor{el: el}
}

// ValueCursor returns a cursor over a bare text value, as found in an
// attribute or in one token of a list.
func ValueCursor(text string) Cursor {
	return &valueCursor{text: text}
}

// treeCursor is an element plus the index of its next unconsumed child.
type treeCursor struct {
	el   *xmltree.Element
	next int
}

func (c *treeCursor) PopChild(name string) (Cursor, error) {
	if c.next >= len(c.el.Children) {
		return nil, NewNotFoundError("child", name)
	}
	child := &c.el.Children[c.next]
	if child.Name.Local != name {
		return nil, NewNotFoundError("child", name)
	}
	c.next++
	return &treeCursor{el: child}, nil
}

func (c *treeCursor) PopAttribute(name string) (Cursor, error) {
	for _, a := range c.el.StartElement.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		if a.Name.Local == name {
			return &valueCursor{text: a.Value}, nil
		}
	}
	return nil, NewNotFoundError("attribute", name)
}

func (c *treeCursor) PopValue() (string, error) {
	var text string
	if err := xmltree.Unmarshal(c.el, &text); err != nil {
		return "", NewShapeError("text", c.el.Name.Local, err)
	}
	return text, nil
}

func (c *treeCursor) Clone() Cursor {
	cp := *c
	return &cp
}

func (c *treeCursor) Restore(from Cursor) {
	if src, ok := from.(*treeCursor); ok {
		*c = *src
	}
}

func (c *treeCursor) Offset() int {
	return c.next
}

// valueCursor is a leaf position: it has a value but no children or attributes.
type valueCursor struct {
	text string
}

func (c *valueCursor) PopChild(name string) (Cursor, error) {
	return nil, NewNotFoundError("child", name)
}

func (c *valueCursor) PopAttribute(name string) (Cursor, error) {
	return nil, NewNotFoundError("attribute", name)
}

func (c *valueCursor) PopValue() (string, error) {
	return c.text, nil
}

func (c *valueCursor) Clone() Cursor {
	cp := *c
	return &cp
}

func (c *valueCursor) Restore(from Cursor) {
	if src, ok := from.(*valueCursor); ok {
		*c = *src
	}
}

func (c *valueCursor) Offset() int {
	return 0
}
