package golang

import (
	"slices"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/graph"
)

// FieldEmitter renders one struct field: its member declaration and the
// statement reading it inside the owner's DecodeXML.
type FieldEmitter struct {
	h     gen.GeneratorHelper
	owner *graph.Struct
	field *graph.StructField
	ref   gen.TypeRef
}

func newFieldEmitter(h gen.GeneratorHelper, owner *graph.Struct, f *graph.StructField, scope gen.Scope) *FieldEmitter {
	return &FieldEmitter{
		h:     h,
		owner: owner,
		field: f,
		ref:   h.ResolveType(f.TypeName, scope, owned(f.Subtypes, owner.Subtypes)),
	}
}

// Name returns the Go name of the field. Names of methods get a Field
// suffix.
func (e *FieldEmitter) Name() string {
	name := gen.Pascal(e.field.Name)
	if slices.Contains(methods, name) {
		name += "Field"
	}
	return name
}

// TypeName returns the element type of the field, before modifiers.
func (e *FieldEmitter) TypeName() jen.Code {
	return e.ref.Code()
}

// Skip reports whether the field is prohibited and has no Go member.
func (e *FieldEmitter) Skip() bool {
	return e.field.Modifiers.Has(graph.Empty)
}

// Declaration adds the field to the struct declaration.
func (e *FieldEmitter) Declaration(g *jen.Group) {
	if e.Skip() {
		return
	}
	if e.field.Comment != "" {
		g.Comment(e.field.Comment)
	}
	st := g.Id(e.Name()).Add(goType(e.TypeName(), e.field.Modifiers))
	if tag := e.tag(); tag != "" {
		st.Tag(map[string]string{"xml": tag})
	}
}

// tag returns the xml struct tag of the field.
func (e *FieldEmitter) tag() string {
	f := e.field
	switch {
	case f.Source == graph.SourceAttribute:
		tag := f.XMLName + ",attr"
		if f.Modifiers.Has(graph.Option) || f.Modifiers.Has(graph.Array) {
			tag += ",omitempty"
		}
		return tag
	case f.Modifiers.Has(graph.Flatten) && e.ref.Builtin != nil:
		return ",chardata"
	case f.Modifiers.Has(graph.Flatten):
		return ""
	default:
		return f.XMLName
	}
}

// Decode returns the statement assigning the field of the decoded value:
//
//	if out.Name, err = xsdgen.PopChild[string](c, "name", ...); err != nil {
//		return xsdgen.FieldError("Address", "name", err)
//	}
//
// It returns nil for skipped fields.
func (e *FieldEmitter) Decode() jen.Code {
	if e.Skip() {
		return nil
	}
	return jen.If(
		jen.List(jen.Id(outVar).Dot(e.Name()), jen.Id(errVar)).Op("=").Add(e.read()),
		jen.Id(errVar).Op("!=").Nil(),
	).Block(
		jen.Return(jen.Qual(e.h.RuntimePkg(), "FieldError").Call(
			jen.Lit(e.owner.Name), jen.Lit(e.field.Name), jen.Id(errVar),
		)),
	)
}

// read returns the expression reading the field, chosen by its source and
// modifiers.
func (e *FieldEmitter) read() jen.Code {
	f, ms := e.field, e.field.Modifiers
	switch {
	case ms.Has(graph.Flatten):
		switch {
		case ms.Has(graph.Array):
			return flatten(e.h, "FlattenMany", e.ref)
		case ms.Has(graph.Option):
			return flatten(e.h, "FlattenMaybe", e.ref)
		default:
			return decodeCall(e.h, e.ref)
		}
	case f.Source == graph.SourceAttribute:
		switch {
		case ms.Has(graph.Array):
			return pop(e.h, "PopAttributes", e.ref, f.XMLName)
		case ms.Has(graph.Option):
			return pop(e.h, "MaybePopAttribute", e.ref, f.XMLName)
		default:
			return pop(e.h, "PopAttribute", e.ref, f.XMLName)
		}
	default:
		switch {
		case ms.Has(graph.Array):
			return pop(e.h, "PopChildren", e.ref, e.xmlName())
		case ms.Has(graph.Option):
			return pop(e.h, "MaybePopChild", e.ref, e.xmlName())
		case ms.Has(graph.Recursive):
			return pop(e.h, "PopIndirectChild", e.ref, e.xmlName())
		default:
			return pop(e.h, "PopChild", e.ref, e.xmlName())
		}
	}
}

func (e *FieldEmitter) xmlName() string {
	if e.field.XMLName != "" {
		return e.field.XMLName
	}
	return e.field.Name
}

var _ gen.MemberEmitter = (*FieldEmitter)(nil)
