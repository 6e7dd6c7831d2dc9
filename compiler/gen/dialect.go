package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/field"
)

// TypeEmitter renders one named type: a struct, a tuple struct or an
// enum. Every type gets a declaration, a Validate stub and a DecodeXML
// method.
type TypeEmitter interface {
	// Name returns the Go name of the type.
	Name() string
	// Declaration renders the type declaration and its helpers.
	Declaration(f *jen.File)
	// Validation renders the Validate method. It is emitted for every type.
	Validation(f *jen.File)
	// Decode renders the DecodeXML method.
	Decode(f *jen.File)
	// NestedScope returns the scope the subtypes of the type are named in.
	NestedScope() Scope
}

// MemberEmitter renders one member of a type: a struct field or an enum
// case.
type MemberEmitter interface {
	// Name returns the Go name of the member.
	Name() string
	// TypeName returns the Go type of the member's value.
	TypeName() jen.Code
	// Declaration adds the member to the owner's struct declaration.
	Declaration(g *jen.Group)
	// Decode returns the code reading the member from a cursor.
	Decode() jen.Code
}

// MinimalDialect creates the emitters of every entity kind.
type MinimalDialect interface {
	// Name returns the dialect name (e.g., "golang").
	Name() string
	Struct(st *graph.Struct, scope Scope) TypeEmitter
	TupleStruct(ts *graph.TupleStruct, scope Scope) TypeEmitter
	Enum(en *graph.Enum, scope Scope) TypeEmitter
	Field(owner *graph.Struct, f *graph.StructField, scope Scope) MemberEmitter
	EnumCase(owner *graph.Enum, c *graph.EnumCase, scope Scope) MemberEmitter
	// Alias renders a top-level alias declaration.
	Alias(f *jen.File, a *graph.Alias)
}

// DocGenerator is implemented by dialects rendering the package
// documentation file.
type DocGenerator interface {
	// GenDoc generates doc.go.
	GenDoc() *jen.File
}

// TypeRef is a type reference resolved for emission.
type TypeRef struct {
	// Name is the Go name of a user type.
	Name string
	// Builtin is set for builtin datatypes and aliases of them.
	Builtin *field.TypeInfo
	// Entity is the referenced entity, nil for builtins.
	Entity graph.Entity
}

// Code returns the Go type expression of the reference.
func (r TypeRef) Code() jen.Code {
	if r.Builtin == nil {
		return jen.Id(r.Name)
	}
	switch {
	case r.Builtin.Slice():
		return jen.Index().Id(r.Builtin.Ident)
	case r.Builtin.PkgPath != "":
		return jen.Qual(r.Builtin.PkgPath, r.Builtin.Ident)
	default:
		return jen.Id(r.Builtin.Ident)
	}
}

// GeneratorHelper provides helper methods for dialect implementations.
// JenniferGenerator implements this interface, allowing dialect packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the standard header comment.
	NewFile(pkg string) *jen.File

	// Graph returns the resolved graph.
	Graph() *Graph

	// Pkg returns the output package name.
	Pkg() string

	// RuntimePkg returns the import path of the decoding runtime.
	RuntimePkg() string

	// FeatureEnabled reports if the given feature name is enabled.
	FeatureEnabled(name string) bool

	// ResolveType resolves a type reference made by a member whose owned
	// subtypes are owned, named in scope.
	ResolveType(ref string, scope Scope, owned []graph.Entity) TypeRef

	// GoName returns the Go name of the type e declared in scope.
	GoName(e graph.Entity, scope Scope) string
}
