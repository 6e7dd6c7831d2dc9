package golang

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/graph"
)

// Names of the identifiers used inside generated decode routines.
const (
	cursorVar = "c"
	outVar    = "out"
	errVar    = "err"
	valueVar  = "x"
	recvVar   = "v"
)

// comment writes the doc comment of a declaration: the summary line,
// followed by the schema documentation when there is any.
func comment(f *jen.File, summary, doc string) {
	f.Comment(summary)
	if doc = strings.TrimSpace(doc); doc != "" {
		f.Comment("//")
		for _, line := range strings.Split(doc, "\n") {
			f.Comment(strings.TrimSpace(line))
		}
	}
}

// cursor is the type of the cursor parameter of decode routines.
func cursor(h gen.GeneratorHelper) jen.Code {
	return jen.Qual(h.RuntimePkg(), "Cursor")
}

// decoder returns the DecodeFunc value reading one ref.
//
//	xsdgen.Leaf(xsdgen.ParseString)
//	xsdgen.Decode[Address, *Address]
func decoder(h gen.GeneratorHelper, ref gen.TypeRef) jen.Code {
	rt := h.RuntimePkg()
	if ref.Builtin != nil {
		return jen.Qual(rt, "Leaf").Call(jen.Qual(rt, ref.Builtin.Parser))
	}
	return jen.Qual(rt, "Decode").Types(jen.Id(ref.Name), jen.Op("*").Id(ref.Name))
}

// decodeCall returns the expression reading one ref at the cursor.
//
//	xsdgen.Value(c, xsdgen.ParseString)
//	xsdgen.Decode[Address, *Address](c)
func decodeCall(h gen.GeneratorHelper, ref gen.TypeRef) jen.Code {
	rt := h.RuntimePkg()
	if ref.Builtin != nil {
		return jen.Qual(rt, "Value").Call(jen.Id(cursorVar), jen.Qual(rt, ref.Builtin.Parser))
	}
	return jen.Qual(rt, "Decode").Types(jen.Id(ref.Name), jen.Op("*").Id(ref.Name)).Call(jen.Id(cursorVar))
}

// pop returns the call of the runtime helper fn reading ref.
//
//	xsdgen.PopChild[string](c, "name", xsdgen.Leaf(xsdgen.ParseString))
func pop(h gen.GeneratorHelper, fn string, ref gen.TypeRef, name string) jen.Code {
	return jen.Qual(h.RuntimePkg(), fn).Types(ref.Code()).Call(jen.Id(cursorVar), jen.Lit(name), decoder(h, ref))
}

// flatten returns the call of the runtime helper fn reading ref at the
// cursor position itself.
//
//	xsdgen.FlattenMany[Line](c, xsdgen.Decode[Line, *Line])
func flatten(h gen.GeneratorHelper, fn string, ref gen.TypeRef) jen.Code {
	return jen.Qual(h.RuntimePkg(), fn).Types(ref.Code()).Call(jen.Id(cursorVar), decoder(h, ref))
}

// goType wraps the element type t according to the modifiers.
func goType(t jen.Code, ms graph.Modifiers) jen.Code {
	switch {
	case ms.Has(graph.Array):
		return jen.Index().Add(t)
	case ms.Has(graph.Option), ms.Has(graph.Recursive):
		return jen.Op("*").Add(t)
	default:
		return t
	}
}

// owned returns the subtypes visible to a member: its own, then those of
// its owner.
func owned(own, owner []graph.Entity) []graph.Entity {
	out := make([]graph.Entity, 0, len(own)+len(owner))
	out = append(out, own...)
	return append(out, owner...)
}
