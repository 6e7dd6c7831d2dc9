package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/xsdgen/graph"
)

// stubDialect declares every type as an empty struct.
type stubDialect struct{}

func (stubDialect) Name() string { return "stub" }

func (stubDialect) Struct(st *graph.Struct, scope Scope) TypeEmitter {
	return stubEmitter(scope.Qualify(st.Name))
}

func (stubDialect) TupleStruct(ts *graph.TupleStruct, scope Scope) TypeEmitter {
	return stubEmitter(scope.Qualify(ts.Name))
}

func (stubDialect) Enum(en *graph.Enum, scope Scope) TypeEmitter {
	return stubEmitter(scope.Qualify(en.Name))
}

func (stubDialect) Field(*graph.Struct, *graph.StructField, Scope) MemberEmitter { return nil }

func (stubDialect) EnumCase(*graph.Enum, *graph.EnumCase, Scope) MemberEmitter { return nil }

func (stubDialect) Alias(f *jen.File, a *graph.Alias) {
	f.Type().Id(Pascal(a.Name)).Op("=").String()
}

// stubDocDialect also renders doc.go.
type stubDocDialect struct {
	stubDialect
	h GeneratorHelper
}

func (d stubDocDialect) GenDoc() *jen.File {
	f := d.h.NewFile(d.h.Pkg())
	f.PackageComment("Package " + d.h.Pkg() + " is generated.")
	return f
}

type stubEmitter string

func (e stubEmitter) Name() string { return string(e) }

func (e stubEmitter) Declaration(f *jen.File) { f.Type().Id(string(e)).Struct() }

func (stubEmitter) Validation(*jen.File) {}

func (stubEmitter) Decode(*jen.File) {}

func (e stubEmitter) NestedScope() Scope { return Scope{}.Child(string(e)) }

func generate(t *testing.T, g *Graph) (*JenniferGenerator, string) {
	t.Helper()
	gen := NewJenniferGenerator(g, g.Config.Target)
	gen.WithDialect(stubDocDialect{h: gen})
	require.NoError(t, gen.Generate(context.Background()))
	return gen, g.Config.Target
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestJenniferGenerator_NoDialect(t *testing.T) {
	g := newTestGraph(t)
	err := NewJenniferGenerator(g, g.Config.Target).Generate(context.Background())
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestJenniferGenerator_Generate(t *testing.T) {
	item := &graph.Struct{Name: "item"}
	g := newTestGraph(t,
		&graph.Struct{Name: "Items", Fields: []*graph.StructField{
			{Name: "item", XMLName: "item", TypeName: "item", Source: graph.SourceElement, Subtypes: []graph.Entity{item}},
		}},
		&graph.TupleStruct{Name: "SKU", TypeName: "xs:string"},
		&graph.Enum{Name: "Color", TypeName: "xs:string", Cases: []*graph.EnumCase{{Name: "red", Value: "red"}}},
		&graph.Struct{Name: "Doc"},
		&graph.Alias{Name: "items", Original: "t:Items"},
		&graph.Alias{Name: "comment", Original: "xs:string"},
	)
	gen, dir := generate(t, g)

	assert.Contains(t, readFile(t, dir, "items.go"), "type Items struct{}")
	assert.Contains(t, readFile(t, dir, "items.go"), "type ItemsItem struct{}")
	assert.Contains(t, readFile(t, dir, "sku.go"), "type SKU struct{}")
	assert.Contains(t, readFile(t, dir, "color.go"), "type Color struct{}")
	assert.Contains(t, readFile(t, dir, "doc_1.go"), "type Doc struct{}")
	assert.Contains(t, readFile(t, dir, "doc.go"), "// Package schema is generated.")

	aliases := readFile(t, dir, "alias.go")
	assert.Contains(t, aliases, "type Comment = string")
	assert.NotContains(t, aliases, "type Items =")

	for _, name := range []string{"items.go", "doc.go", "alias.go"} {
		assert.Contains(t, readFile(t, dir, name), "// Code generated by xsdgen. DO NOT EDIT.")
	}
	assert.Equal(t, 6, gen.Metrics().FilesGenerated)
	assert.Positive(t, gen.Metrics().TotalBytes)
}

func TestJenniferGenerator_Options(t *testing.T) {
	g := newTestGraph(t, &graph.Struct{Name: "Order"})
	g.Config.Header = "// Custom header."
	g.Config.Features = []Feature{FeatureFormat}

	gen := NewJenniferGenerator(g, g.Config.Target).WithWorkers(2).WithPackage("orders")
	gen.WithDialect(stubDialect{})
	require.NoError(t, gen.Generate(context.Background()))

	code := readFile(t, g.Config.Target, "order.go")
	assert.Contains(t, code, "// Custom header.")
	assert.Contains(t, code, "package orders")
	assert.NoFileExists(t, filepath.Join(g.Config.Target, "doc.go"))
	assert.NoFileExists(t, filepath.Join(g.Config.Target, "alias.go"))
}

func TestJenniferGenerator_Snapshot(t *testing.T) {
	g := newTestGraph(t, &graph.Struct{Name: "Order"})
	g.Config.Features = []Feature{FeatureSnapshot}
	_, dir := generate(t, g)
	require.FileExists(t, filepath.Join(dir, SnapshotFile))

	order := filepath.Join(dir, "order.go")
	require.NoError(t, os.Remove(order))
	gen, _ := generate(t, g)
	assert.NoFileExists(t, order)
	assert.Zero(t, gen.Metrics().FilesGenerated)

	// A changed schema is generated again.
	g.Types = append(g.Types, &graph.Struct{Name: "Invoice"})
	generate(t, g)
	assert.FileExists(t, order)
	assert.FileExists(t, filepath.Join(dir, "invoice.go"))
}

func TestJenniferGenerator_ResolveType(t *testing.T) {
	owned := &graph.Struct{Name: "item"}
	g := newTestGraph(t,
		&graph.Struct{Name: "Order"},
		&graph.Alias{Name: "comment", Original: "xs:string"},
	)
	gen := NewJenniferGenerator(g, g.Config.Target)

	ref := gen.ResolveType("item", Scope{Prefix: "Items"}, []graph.Entity{owned})
	assert.Equal(t, "ItemsItem", ref.Name)
	assert.Same(t, owned, ref.Entity)

	ref = gen.ResolveType("t:comment", Scope{}, nil)
	require.NotNil(t, ref.Builtin)
	assert.Equal(t, "string", ref.Builtin.Ident)

	ref = gen.ResolveType("t:Order", Scope{Prefix: "Items"}, nil)
	assert.Equal(t, "Order", ref.Name)

	ref = gen.ResolveType("other:Thing", Scope{}, nil)
	require.NotNil(t, ref.Builtin)
	assert.Equal(t, "string", ref.Builtin.Ident)

	assert.False(t, gen.FeatureEnabled("missing"))
	assert.Equal(t, DefaultRuntimePackage, gen.RuntimePkg())
}
