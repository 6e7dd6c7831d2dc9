package xsdgen

import (
	"strings"

	"aqwari.net/xml/xmltree"
)

// Decoder is implemented by every generated type.
type Decoder interface {
	DecodeXML(Cursor) error
}

// DecodeFunc reads one value of type T at a cursor position.
type DecodeFunc[T any] func(Cursor) (T, error)

// Decode reads a generated type T through its DecodeXML method.
// It is used as a DecodeFunc: xsdgen.Decode[Order, *Order].
func Decode[T any, PT interface {
	*T
	Decoder
}](c Cursor) (T, error) {
	var v T
	err := PT(&v).DecodeXML(c)
	return v, err
}

// Leaf returns a DecodeFunc that reads the value at the position and
// converts it with parse.
func Leaf[T any](parse func(string) (T, error)) DecodeFunc[T] {
	return func(c Cursor) (T, error) {
		return Value(c, parse)
	}
}

// Value reads the value at the position and converts it with parse.
func Value[T any](c Cursor, parse func(string) (T, error)) (T, error) {
	var zero T
	s, err := c.PopValue()
	if err != nil {
		return zero, err
	}
	v, err := parse(s)
	if err != nil {
		return zero, err
	}
	return v, nil
}

// ListValue reads the value at the position as a whitespace separated list
// and decodes every token with dec.
func ListValue[T any](c Cursor, dec DecodeFunc[T]) ([]T, error) {
	s, err := c.PopValue()
	if err != nil {
		return nil, err
	}
	return decodeTokens(s, dec)
}

// ExpectValue reads the value at the position and fails with a ShapeError
// unless it equals literal after whitespace trimming.
func ExpectValue(c Cursor, literal string) error {
	s, err := c.PopValue()
	if err != nil {
		return err
	}
	if strings.TrimSpace(s) != literal {
		return NewShapeError(literal, s, nil)
	}
	return nil
}

// PopChild consumes exactly one child element and decodes it.
func PopChild[T any](c Cursor, name string, dec DecodeFunc[T]) (T, error) {
	var zero T
	child, err := c.PopChild(name)
	if err != nil {
		return zero, err
	}
	return dec(child)
}

// PopChildren consumes zero or more consecutive child elements with the
// given name. A present child that fails to decode is an error.
func PopChildren[T any](c Cursor, name string, dec DecodeFunc[T]) ([]T, error) {
	var vs []T
	for {
		next := c.Clone()
		child, err := next.PopChild(name)
		if IsNotFound(err) {
			return vs, nil
		}
		if err != nil {
			return nil, err
		}
		v, err := dec(child)
		if err != nil {
			return nil, err
		}
		c.Restore(next)
		vs = append(vs, v)
	}
}

// PopSomeChildren is like PopChildren but requires at least one child.
func PopSomeChildren[T any](c Cursor, name string, dec DecodeFunc[T]) ([]T, error) {
	vs, err := PopChildren(c, name, dec)
	if err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return nil, NewNotFoundError("child", name)
	}
	return vs, nil
}

// MaybePopChild consumes zero or one child element. It returns nil when the
// child is absent.
func MaybePopChild[T any](c Cursor, name string, dec DecodeFunc[T]) (*T, error) {
	next := c.Clone()
	child, err := next.PopChild(name)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := dec(child)
	if err != nil {
		return nil, err
	}
	c.Restore(next)
	return &v, nil
}

// PopIndirectChild consumes exactly one child element and returns it
// behind a pointer, for recursive types.
func PopIndirectChild[T any](c Cursor, name string, dec DecodeFunc[T]) (*T, error) {
	v, err := PopChild(c, name, dec)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// PopAttribute decodes a required attribute.
func PopAttribute[T any](c Cursor, name string, dec DecodeFunc[T]) (T, error) {
	var zero T
	a, err := c.PopAttribute(name)
	if err != nil {
		return zero, err
	}
	return dec(a)
}

// MaybePopAttribute decodes an optional attribute. It returns nil when the
// attribute is absent.
func MaybePopAttribute[T any](c Cursor, name string, dec DecodeFunc[T]) (*T, error) {
	a, err := c.PopAttribute(name)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := dec(a)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// PopAttributes decodes an attribute holding a whitespace separated list.
// An absent attribute yields an empty list.
func PopAttributes[T any](c Cursor, name string, dec DecodeFunc[T]) ([]T, error) {
	a, err := c.PopAttribute(name)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s, err := a.PopValue()
	if err != nil {
		return nil, err
	}
	return decodeTokens(s, dec)
}

// Commit runs fn on a clone of c and moves c to the clone's position only
// if fn succeeds. On failure c is left untouched.
func Commit(c Cursor, fn func(Cursor) error) error {
	next := c.Clone()
	if err := fn(next); err != nil {
		return err
	}
	c.Restore(next)
	return nil
}

// FlattenMany decodes dec repeatedly at the same cursor until it fails or
// stops consuming input.
func FlattenMany[T any](c Cursor, dec DecodeFunc[T]) ([]T, error) {
	var vs []T
	for {
		next := c.Clone()
		v, err := dec(next)
		if err != nil || next.Offset() == c.Offset() {
			return vs, nil
		}
		c.Restore(next)
		vs = append(vs, v)
	}
}

// FlattenSome is like FlattenMany but requires at least one value.
func FlattenSome[T any](c Cursor, dec DecodeFunc[T]) ([]T, error) {
	next := c.Clone()
	first, err := dec(next)
	if err != nil {
		return nil, err
	}
	c.Restore(next)
	rest, err := FlattenMany(c, dec)
	if err != nil {
		return nil, err
	}
	return append([]T{first}, rest...), nil
}

// FlattenMaybe decodes dec at the same cursor, returning nil instead of an
// error when it does not match.
func FlattenMaybe[T any](c Cursor, dec DecodeFunc[T]) (*T, error) {
	next := c.Clone()
	v, err := dec(next)
	if err != nil {
		return nil, nil
	}
	c.Restore(next)
	return &v, nil
}

// Case is one alternative of an enum decode.
type Case[T any] struct {
	Name   string
	Decode DecodeFunc[T]
}

// DecodeUnique attempts every case on its own clone of c. Exactly one case
// must succeed; c is then moved to the position that case reached. When no
// case or several cases succeed, c is unchanged and a NoUniqueMatchError
// naming enum is returned. Case order is the attempt order only.
func DecodeUnique[T any](c Cursor, enum string, cases ...Case[T]) (T, error) {
	var (
		zero    T
		winner  T
		pos     Cursor
		matches []string
	)
	for _, cs := range cases {
		next := c.Clone()
		v, err := cs.Decode(next)
		if err != nil {
			continue
		}
		matches = append(matches, cs.Name)
		winner, pos = v, next
	}
	if len(matches) != 1 {
		return zero, NewNoUniqueMatchError(enum, matches...)
	}
	c.Restore(pos)
	return winner, nil
}

// Unmarshal parses an XML document and decodes its root element into T.
// When root is not empty the root element must have that local name.
func Unmarshal[T any, PT interface {
	*T
	Decoder
}](data []byte, root string) (T, error) {
	var zero T
	el, err := xmltree.Parse(data)
	if err != nil {
		return zero, err
	}
	if root == "" {
		return Decode[T, PT](NewCursor(el))
	}
	doc := &xmltree.Element{Children: []xmltree.Element{*el}}
	return PopChild[T](NewCursor(doc), root, Decode[T, PT])
}

func decodeTokens[T any](s string, dec DecodeFunc[T]) ([]T, error) {
	tokens := strings.Fields(s)
	vs := make([]T, 0, len(tokens))
	for _, tok := range tokens {
		v, err := dec(ValueCursor(tok))
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}
