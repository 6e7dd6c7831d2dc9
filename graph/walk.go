package graph

import "errors"

// SkipChildren is returned by a WalkFunc to skip the entities owned by the
// visited one.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every entity visited by Walk.
type WalkFunc func(e Entity) error

// Children returns the entities directly owned by e, in declaration order:
// fields, pending group and attribute-group references, cases and subtypes.
func Children(e Entity) []Entity {
	var out []Entity
	switch e := e.(type) {
	case *Struct:
		for _, f := range e.Fields {
			out = append(out, f)
		}
		for _, a := range e.Groups {
			out = append(out, a)
		}
		for _, a := range e.AttributeGroups {
			out = append(out, a)
		}
		out = append(out, e.Subtypes...)
	case *StructField:
		out = append(out, e.Subtypes...)
	case *TupleStruct:
		out = append(out, e.Subtypes...)
	case *Enum:
		for _, c := range e.Cases {
			out = append(out, c)
		}
		out = append(out, e.Subtypes...)
	case *EnumCase:
		out = append(out, e.Subtypes...)
	case *Alias, *Import:
	}
	return out
}

// Walk visits e and everything it owns in pre-order.
func Walk(e Entity, fn WalkFunc) error {
	if err := fn(e); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range Children(e) {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkAll walks every entity of a list.
func WalkAll(es []Entity, fn WalkFunc) error {
	for _, e := range es {
		if err := Walk(e, fn); err != nil {
			return err
		}
	}
	return nil
}

// NestedStructs returns the structs owned by e at any depth, children
// before their owners. e itself is not included.
func NestedStructs(e Entity) []*Struct {
	var out []*Struct
	for _, c := range Children(e) {
		out = append(out, NestedStructs(c)...)
		if st, ok := c.(*Struct); ok {
			out = append(out, st)
		}
	}
	return out
}
