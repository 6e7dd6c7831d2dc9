package golang

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/graph"
)

// Generate is a convenience function to generate Go code for the resolved
// graph using the Jennifer generator.
//
// Hooks registered in g.Config.Hooks wrap the base generator, first hook
// outermost, so an extension can run before or after the Go files are
// written.
//
// Example:
//
//	import "github.com/syssam/xsdgen/compiler/gen/golang"
//	err := golang.Generate(graph)
func Generate(g *gen.Graph) error {
	if g.Config == nil || g.Config.Target == "" {
		return gen.NewConfigError("Target", nil, "missing target directory in config")
	}

	base := gen.GenerateFunc(func(g *gen.Graph) error {
		generator := gen.NewJenniferGenerator(g, g.Config.Target)
		if g.Config.Package != "" {
			generator.WithPackage(filepath.Base(g.Config.Package))
		}
		generator.WithDialect(NewDialect(generator))
		return generator.Generate(context.Background())
	})

	var generator gen.Generator = base
	for i := len(g.Config.Hooks) - 1; i >= 0; i-- {
		generator = g.Config.Hooks[i](generator)
	}
	return generator.Generate(g)
}

// Dialect renders entities as Go declarations with DecodeXML methods
// reading the xsdgen cursor runtime.
type Dialect struct {
	helper gen.GeneratorHelper
}

// NewDialect creates a new Go dialect.
// The helper parameter should be a *gen.JenniferGenerator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "golang"
}

// =============================================================================
// Emitters
// =============================================================================

// Struct returns the emitter of a struct declared in scope.
func (d *Dialect) Struct(st *graph.Struct, scope gen.Scope) gen.TypeEmitter {
	return newStructEmitter(d.helper, st, scope)
}

// TupleStruct returns the emitter of a tuple struct declared in scope.
func (d *Dialect) TupleStruct(ts *graph.TupleStruct, scope gen.Scope) gen.TypeEmitter {
	return newTupleStructEmitter(d.helper, ts, scope)
}

// Enum returns the emitter of an enum declared in scope.
func (d *Dialect) Enum(en *graph.Enum, scope gen.Scope) gen.TypeEmitter {
	return newEnumEmitter(d.helper, en, scope)
}

// Field returns the emitter of a struct field. scope is the nested scope
// of the owner.
func (d *Dialect) Field(owner *graph.Struct, f *graph.StructField, scope gen.Scope) gen.MemberEmitter {
	return newFieldEmitter(d.helper, owner, f, scope)
}

// EnumCase returns the emitter of an enum case. scope is the nested scope
// of the owner.
func (d *Dialect) EnumCase(owner *graph.Enum, c *graph.EnumCase, scope gen.Scope) gen.MemberEmitter {
	return newEnumCaseEmitter(d.helper, owner, c, scope)
}

// Alias renders a top-level alias declaration.
func (d *Dialect) Alias(f *jen.File, a *graph.Alias) {
	name := gen.Pascal(a.Name)
	ref := d.helper.ResolveType(a.Original, gen.Scope{}, nil)
	comment(f, fmt.Sprintf("%s is the type of the %q element.", name, a.Name), a.Comment)
	f.Type().Id(name).Op("=").Add(ref.Code())
}

// GenDoc generates doc.go: the package comment with the target namespace
// and the imported documents.
func (d *Dialect) GenDoc() *jen.File {
	g := d.helper.Graph()
	f := d.helper.NewFile(d.helper.Pkg())
	f.PackageComment(fmt.Sprintf("Package %s holds the types decoded from an XML Schema.", d.helper.Pkg()))
	if g.Namespace != "" {
		f.PackageComment("//")
		f.PackageComment("Target namespace: " + g.Namespace)
	}
	if len(g.Imports) > 0 {
		f.PackageComment("//")
		f.PackageComment("Imported documents:")
		f.PackageComment("//")
		for _, imp := range g.Imports {
			switch {
			case imp.Name == "":
				f.PackageComment("//\t" + imp.Location)
			case imp.Location == "":
				f.PackageComment("//\t" + imp.Name)
			default:
				f.PackageComment(fmt.Sprintf("//\t%s (%s)", imp.Name, imp.Location))
			}
		}
	}
	return f
}

// Compile-time checks.
var (
	_ gen.MinimalDialect = (*Dialect)(nil)
	_ gen.DocGenerator   = (*Dialect)(nil)
)
