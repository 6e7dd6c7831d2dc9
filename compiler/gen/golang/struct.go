package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/graph"
)

// StructEmitter renders a struct: a Go struct type whose DecodeXML reads
// every field in declaration order and fails on the first missing one.
type StructEmitter struct {
	h      gen.GeneratorHelper
	st     *graph.Struct
	name   string
	fields []*FieldEmitter
}

func newStructEmitter(h gen.GeneratorHelper, st *graph.Struct, scope gen.Scope) *StructEmitter {
	e := &StructEmitter{h: h, st: st, name: h.GoName(st, scope)}
	nested := e.NestedScope()
	for _, f := range st.Fields {
		e.fields = append(e.fields, newFieldEmitter(h, st, f, nested))
	}
	return e
}

// Name returns the Go name of the struct.
func (e *StructEmitter) Name() string {
	return e.name
}

// NestedScope returns the scope of the types nested in the struct.
func (e *StructEmitter) NestedScope() gen.Scope {
	return gen.Scope{}.Child(e.name)
}

// Declaration renders the struct type.
func (e *StructEmitter) Declaration(f *jen.File) {
	comment(f, fmt.Sprintf("%s is the %q complex type.", e.name, e.st.Name), e.st.Comment)
	f.Type().Id(e.name).StructFunc(func(g *jen.Group) {
		for _, fe := range e.fields {
			fe.Declaration(g)
		}
	})
}

// Validation renders the Validate stub.
func (e *StructEmitter) Validation(f *jen.File) {
	validation(f, e.name, nil)
}

// Decode renders DecodeXML. The fields are read on a clone of the cursor
// that is committed only when every field was read.
func (e *StructEmitter) Decode(f *jen.File) {
	rt := e.h.RuntimePkg()
	var reads []jen.Code
	for _, fe := range e.fields {
		if code := fe.Decode(); code != nil {
			reads = append(reads, code)
		}
	}
	var body []jen.Code
	if len(reads) == 0 {
		body = []jen.Code{
			jen.Op("*").Id(recvVar).Op("=").Id(e.name).Values(),
			jen.Return(jen.Nil()),
		}
	} else {
		body = append(body, jen.Var().Defs(
			jen.Id(outVar).Id(e.name),
			jen.Id(errVar).Error(),
		))
		body = append(body, reads...)
		body = append(body,
			jen.Op("*").Id(recvVar).Op("=").Id(outVar),
			jen.Return(jen.Nil()),
		)
	}
	f.Comment(fmt.Sprintf("DecodeXML reads a %s at the cursor position.", e.name))
	f.Func().Params(jen.Id(recvVar).Op("*").Id(e.name)).Id("DecodeXML").
		Params(jen.Id(cursorVar).Add(cursor(e.h))).Error().
		Block(
			jen.Return(jen.Qual(rt, "Commit").Call(
				jen.Id(cursorVar),
				jen.Func().Params(jen.Id(cursorVar).Add(cursor(e.h))).Error().Block(body...),
			)),
		)
}

// validation renders a Validate method returning nil. facets are listed in
// its doc comment.
func validation(f *jen.File, name string, facets []graph.Facet) {
	f.Comment(fmt.Sprintf("Validate checks the constraints of %s.", name))
	if len(facets) > 0 {
		f.Comment("//")
		for _, fc := range facets {
			f.Comment(fmt.Sprintf("//\t%s: %s", fc.Kind, fc.Value))
		}
	}
	f.Func().Params(jen.Id(recvVar).Id(name)).Id("Validate").Params().Error().Block(
		jen.Return(jen.Nil()),
	)
}

var _ gen.TypeEmitter = (*StructEmitter)(nil)
