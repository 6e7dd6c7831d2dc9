package golang

import (
	"slices"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/graph"
)

// Member names reserved by the enum struct itself.
const (
	kindField    = "Kind"
	unknownField = "Unknown"
)

// methods lists the methods of generated types. Fields and payloads never
// take these names.
var methods = []string{"DecodeXML", "String", "Validate"}

// EnumCaseEmitter renders one alternative of an enum: its discriminator
// constant, its payload field and the attempt passed to the speculative
// decode of the owner.
type EnumCaseEmitter struct {
	h    gen.GeneratorHelper
	enum string // Go name of the owner
	c    *graph.EnumCase
	name string
	ref  gen.TypeRef
}

func newEnumCaseEmitter(h gen.GeneratorHelper, owner *graph.Enum, c *graph.EnumCase, scope gen.Scope) *EnumCaseEmitter {
	names := caseNames(owner)
	e := &EnumCaseEmitter{
		h:    h,
		enum: scope.Prefix,
		c:    c,
		name: names[slices.Index(owner.Cases, c)],
	}
	if !c.IsUnit() {
		e.ref = h.ResolveType(c.TypeName, scope, owned(c.Subtypes, owner.Subtypes))
	}
	return e
}

// caseNames returns the Go names of the cases of en, in order. Names are
// unique and never clash with the members of the enum struct.
func caseNames(en *graph.Enum) []string {
	names := make([]string, len(en.Cases))
	seen := map[string]bool{kindField: true, unknownField: true}
	for _, m := range methods {
		seen[m] = true
	}
	for i, c := range en.Cases {
		name := gen.Pascal(c.Name)
		if seen[name] {
			name += "Case"
		}
		for j := 1; seen[name]; j++ {
			name = gen.Pascal(c.Name) + "Case" + strconv.Itoa(j)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

// Name returns the Go name of the case, used for its payload field.
func (e *EnumCaseEmitter) Name() string {
	return e.name
}

// Const returns the name of the discriminator constant of the case. The
// constants share the prefix of the discriminator type, apart from the
// names of the payload types nested in the enum.
func (e *EnumCaseEmitter) Const() string {
	return e.enum + gen.KindSuffix + e.name
}

// TypeName returns the payload element type. Unit cases have none.
func (e *EnumCaseEmitter) TypeName() jen.Code {
	if e.c.IsUnit() {
		return jen.Null()
	}
	return e.ref.Code()
}

// payloadType returns the Go type of the payload field: a slice for
// repeated cases, a pointer otherwise.
func (e *EnumCaseEmitter) payloadType() jen.Code {
	if e.c.Modifiers.Has(graph.Array) {
		return jen.Index().Add(e.TypeName())
	}
	return jen.Op("*").Add(e.TypeName())
}

// Declaration adds the payload field of the case to the enum struct.
func (e *EnumCaseEmitter) Declaration(g *jen.Group) {
	if e.c.IsUnit() {
		return
	}
	if e.c.Comment != "" {
		g.Comment(e.c.Comment)
	}
	g.Id(e.name).Add(e.payloadType())
}

// Decode returns the case attempt:
//
//	xsdgen.Case[Shape]{Name: "circle", Decode: func(c xsdgen.Cursor) (Shape, error) {
//		x, err := xsdgen.PopChild[ShapeCircle](c, "circle", xsdgen.Decode[ShapeCircle, *ShapeCircle])
//		if err != nil {
//			return Shape{}, err
//		}
//		return Shape{Kind: ShapeKindCircle, Circle: &x}, nil
//	}}
func (e *EnumCaseEmitter) Decode() jen.Code {
	rt := e.h.RuntimePkg()
	zero := jen.Id(e.enum).Values()
	var body []jen.Code
	if e.c.IsUnit() {
		body = []jen.Code{
			jen.If(
				jen.Id(errVar).Op(":=").Qual(rt, "ExpectValue").Call(jen.Id(cursorVar), jen.Lit(e.c.Value)),
				jen.Id(errVar).Op("!=").Nil(),
			).Block(jen.Return(zero, jen.Id(errVar))),
			jen.Return(jen.Id(e.enum).Values(jen.Dict{
				jen.Id(kindField): jen.Id(e.Const()),
			}), jen.Nil()),
		}
	} else {
		read, direct := e.read()
		payload := jen.Id(valueVar)
		if !direct {
			payload = jen.Op("&").Id(valueVar)
		}
		body = []jen.Code{
			jen.List(jen.Id(valueVar), jen.Id(errVar)).Op(":=").Add(read),
			jen.If(jen.Id(errVar).Op("!=").Nil()).Block(jen.Return(zero, jen.Id(errVar))),
			jen.Return(jen.Id(e.enum).Values(jen.Dict{
				jen.Id(kindField): jen.Id(e.Const()),
				jen.Id(e.name):    payload,
			}), jen.Nil()),
		}
	}
	return jen.Qual(rt, "Case").Types(jen.Id(e.enum)).Values(jen.Dict{
		jen.Id("Name"): jen.Lit(e.c.Name),
		jen.Id("Decode"): jen.Func().
			Params(jen.Id(cursorVar).Add(cursor(e.h))).
			Params(jen.Id(e.enum), jen.Error()).
			Block(body...),
	})
}

// read returns the expression reading the payload, and whether its result
// already has the payload field type. A case only matches when it reads
// at least one item, so optional cases read like required ones.
func (e *EnumCaseEmitter) read() (jen.Code, bool) {
	ms := e.c.Modifiers
	switch {
	case ms.Has(graph.Flatten), e.c.Source == graph.EnumUnion:
		if ms.Has(graph.Array) {
			return flatten(e.h, "FlattenSome", e.ref), true
		}
		return decodeCall(e.h, e.ref), false
	case ms.Has(graph.Array):
		return pop(e.h, "PopSomeChildren", e.ref, e.c.Name), true
	case ms.Has(graph.Recursive):
		return pop(e.h, "PopIndirectChild", e.ref, e.c.Name), true
	default:
		return pop(e.h, "PopChild", e.ref, e.c.Name), false
	}
}

var _ gen.MemberEmitter = (*EnumCaseEmitter)(nil)
