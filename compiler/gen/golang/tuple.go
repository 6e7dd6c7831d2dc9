package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/graph"
)

// TupleStructEmitter renders a restricted or list simple type as a named
// Go type over its base.
type TupleStructEmitter struct {
	h    gen.GeneratorHelper
	ts   *graph.TupleStruct
	name string
	ref  gen.TypeRef
}

func newTupleStructEmitter(h gen.GeneratorHelper, ts *graph.TupleStruct, scope gen.Scope) *TupleStructEmitter {
	e := &TupleStructEmitter{h: h, ts: ts, name: h.GoName(ts, scope)}
	e.ref = h.ResolveType(ts.TypeName, e.NestedScope(), ts.Subtypes)
	return e
}

// Name returns the Go name of the type.
func (e *TupleStructEmitter) Name() string {
	return e.name
}

// NestedScope returns the scope of the base and item types declared
// inline.
func (e *TupleStructEmitter) NestedScope() gen.Scope {
	return gen.Scope{}.Child(e.name)
}

func (e *TupleStructEmitter) list() bool {
	return e.ts.Modifiers.Has(graph.Array)
}

// Declaration renders the type.
func (e *TupleStructEmitter) Declaration(f *jen.File) {
	summary := fmt.Sprintf("%s is the %q simple type.", e.name, e.ts.Name)
	if e.list() {
		summary = fmt.Sprintf("%s is the %q list type.", e.name, e.ts.Name)
	}
	comment(f, summary, e.ts.Comment)
	typ := e.ref.Code()
	if e.list() {
		typ = jen.Index().Add(typ)
	}
	f.Type().Id(e.name).Add(typ)
}

// Validation renders the Validate stub, listing the facets it is meant to
// check.
func (e *TupleStructEmitter) Validation(f *jen.File) {
	validation(f, e.name, e.ts.Facets)
}

// Decode renders DecodeXML, reading the value at the cursor and converting
// it to the named type.
func (e *TupleStructEmitter) Decode(f *jen.File) {
	read := decodeCall(e.h, e.ref)
	if e.list() {
		read = jen.Qual(e.h.RuntimePkg(), "ListValue").Types(e.ref.Code()).Call(jen.Id(cursorVar), decoder(e.h, e.ref))
	}
	f.Comment(fmt.Sprintf("DecodeXML reads a %s at the cursor position.", e.name))
	f.Func().Params(jen.Id(recvVar).Op("*").Id(e.name)).Id("DecodeXML").
		Params(jen.Id(cursorVar).Add(cursor(e.h))).Error().
		Block(
			jen.List(jen.Id(valueVar), jen.Id(errVar)).Op(":=").Add(read),
			jen.If(jen.Id(errVar).Op("!=").Nil()).Block(jen.Return(jen.Id(errVar))),
			jen.Op("*").Id(recvVar).Op("=").Id(e.name).Call(jen.Id(valueVar)),
			jen.Return(jen.Nil()),
		)
}

var _ gen.TypeEmitter = (*TupleStructEmitter)(nil)
