package graph

import (
	"fmt"
	"slices"
)

// Clone returns a deep copy of e. Nil slices stay nil.
func Clone(e Entity) Entity {
	switch e := e.(type) {
	case *Struct:
		return e.Clone()
	case *StructField:
		return e.Clone()
	case *TupleStruct:
		c := *e
		c.Modifiers = slices.Clone(e.Modifiers)
		c.Facets = slices.Clone(e.Facets)
		c.Subtypes = CloneAll(e.Subtypes)
		return &c
	case *Enum:
		c := *e
		c.Cases = cloneSlice(e.Cases, (*EnumCase).Clone)
		c.Subtypes = CloneAll(e.Subtypes)
		return &c
	case *EnumCase:
		return e.Clone()
	case *Alias:
		return e.Clone()
	case *Import:
		c := *e
		return &c
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("graph: unexpected entity %T", e))
	}
}

// CloneAll deep copies a list of entities.
func CloneAll(es []Entity) []Entity {
	return cloneSlice(es, Clone)
}

// Clone returns a deep copy of the struct.
func (e *Struct) Clone() *Struct {
	c := *e
	c.Fields = cloneSlice(e.Fields, (*StructField).Clone)
	c.Groups = cloneSlice(e.Groups, (*Alias).Clone)
	c.AttributeGroups = cloneSlice(e.AttributeGroups, (*Alias).Clone)
	c.Subtypes = CloneAll(e.Subtypes)
	return &c
}

// Clone returns a deep copy of the field.
func (f *StructField) Clone() *StructField {
	c := *f
	c.Modifiers = slices.Clone(f.Modifiers)
	c.Subtypes = CloneAll(f.Subtypes)
	return &c
}

// Clone returns a deep copy of the case.
func (c *EnumCase) Clone() *EnumCase {
	cp := *c
	cp.Modifiers = slices.Clone(c.Modifiers)
	cp.Subtypes = CloneAll(c.Subtypes)
	return &cp
}

// Clone returns a copy of the alias.
func (a *Alias) Clone() *Alias {
	c := *a
	c.Modifiers = slices.Clone(a.Modifiers)
	return &c
}

func cloneSlice[T any](s []T, clone func(T) T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	for i, v := range s {
		out[i] = clone(v)
	}
	return out
}
