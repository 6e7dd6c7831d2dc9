package golang

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/graph"
)

// EnumEmitter renders an enum as a struct holding a discriminator and one
// payload field per non-unit case. The zero value is the Unknown
// alternative, which never takes part in decoding.
type EnumEmitter struct {
	h       gen.GeneratorHelper
	en      *graph.Enum
	name    string
	cases   []*EnumCaseEmitter
	unknown gen.TypeRef
}

func newEnumEmitter(h gen.GeneratorHelper, en *graph.Enum, scope gen.Scope) *EnumEmitter {
	e := &EnumEmitter{h: h, en: en, name: h.GoName(en, scope)}
	nested := e.NestedScope()
	for _, c := range en.Cases {
		e.cases = append(e.cases, newEnumCaseEmitter(h, en, c, nested))
	}
	e.unknown = h.ResolveType(en.TypeName, nested, en.Subtypes)
	return e
}

// Name returns the Go name of the enum.
func (e *EnumEmitter) Name() string {
	return e.name
}

// NestedScope returns the scope of the case payload types declared
// inline.
func (e *EnumEmitter) NestedScope() gen.Scope {
	return gen.Scope{}.Child(e.name)
}

// Kind returns the name of the discriminator type.
func (e *EnumEmitter) Kind() string {
	return e.name + gen.KindSuffix
}

// Declaration renders the discriminator type, its constants and the enum
// struct. String methods are added when the stringer feature is enabled.
func (e *EnumEmitter) Declaration(f *jen.File) {
	kind := e.Kind()
	f.Comment(fmt.Sprintf("%s identifies the alternative held by a %s.", kind, e.name))
	f.Type().Id(kind).Int()

	f.Comment(fmt.Sprintf("Alternatives of %s.", e.name))
	f.Const().DefsFunc(func(g *jen.Group) {
		g.Id(kind + unknownField).Id(kind).Op("=").Iota()
		for _, c := range e.cases {
			g.Id(c.Const())
		}
	})

	comment(f, e.summary(), e.en.Comment)
	f.Type().Id(e.name).StructFunc(func(g *jen.Group) {
		g.Id(kindField).Id(kind)
		for _, c := range e.cases {
			c.Declaration(g)
		}
		g.Comment("Unknown is the value of an enum that was not decoded.")
		g.Id(unknownField).Add(e.unknown.Code())
	})

	if e.h.FeatureEnabled(gen.FeatureStringer.Name) {
		e.stringers(f)
	}
}

func (e *EnumEmitter) summary() string {
	switch e.en.Source {
	case graph.EnumRestriction:
		return fmt.Sprintf("%s is the %q enumeration.", e.name, e.en.Name)
	case graph.EnumUnion:
		return fmt.Sprintf("%s is the %q union.", e.name, e.en.Name)
	default:
		return fmt.Sprintf("%s holds one alternative of the %q choice.", e.name, e.en.Name)
	}
}

// stringers renders String on the discriminator and, for enums made of
// literals only, on the enum itself.
func (e *EnumEmitter) stringers(f *jen.File) {
	f.Comment("String returns the schema name of the alternative.")
	f.Func().Params(jen.Id("k").Id(e.Kind())).Id("String").Params().String().Block(
		jen.Switch(jen.Id("k")).BlockFunc(func(g *jen.Group) {
			for _, c := range e.cases {
				g.Case(jen.Id(c.Const())).Block(jen.Return(jen.Lit(c.c.Name)))
			}
			g.Default().Block(jen.Return(jen.Lit(unknownField)))
		}),
	)
	if !e.en.IsUnit() {
		return
	}
	f.Comment("String returns the literal of the value.")
	f.Func().Params(jen.Id(recvVar).Id(e.name)).Id("String").Params().String().Block(
		jen.Switch(jen.Id(recvVar).Dot(kindField)).BlockFunc(func(g *jen.Group) {
			for _, c := range e.cases {
				g.Case(jen.Id(c.Const())).Block(jen.Return(jen.Lit(c.c.Value)))
			}
			g.Default().Block(jen.Return(jen.Qual("fmt", "Sprint").Call(jen.Id(recvVar).Dot(unknownField))))
		}),
	)
}

// Validation renders the Validate stub.
func (e *EnumEmitter) Validation(f *jen.File) {
	validation(f, e.name, nil)
}

// Decode renders DecodeXML. Every case is attempted on its own clone of
// the cursor; exactly one must match.
func (e *EnumEmitter) Decode(f *jen.File) {
	rt := e.h.RuntimePkg()
	f.Comment(fmt.Sprintf("DecodeXML reads the single alternative of %s matching at the cursor position.", e.name))
	f.Func().Params(jen.Id(recvVar).Op("*").Id(e.name)).Id("DecodeXML").
		Params(jen.Id(cursorVar).Add(cursor(e.h))).Error().
		Block(
			jen.List(jen.Id(outVar), jen.Id(errVar)).Op(":=").Qual(rt, "DecodeUnique").Types(jen.Id(e.name)).CallFunc(func(g *jen.Group) {
				g.Id(cursorVar)
				g.Lit(e.name)
				for _, c := range e.cases {
					g.Add(c.Decode())
				}
			}),
			jen.If(jen.Id(errVar).Op("!=").Nil()).Block(jen.Return(jen.Id(errVar))),
			jen.Op("*").Id(recvVar).Op("=").Id(outVar),
			jen.Return(jen.Nil()),
		)
}

var _ gen.TypeEmitter = (*EnumEmitter)(nil)
