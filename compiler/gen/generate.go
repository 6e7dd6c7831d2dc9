package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/field"
)

const (
	docFile   = "doc.go"
	aliasFile = "alias.go"
)

// JenniferGenerator renders the resolved graph with Jennifer. Each
// top-level type and the types nested in it go to one file; files are
// rendered and written in parallel.
type JenniferGenerator struct {
	graph   *Graph
	workers int
	outDir  string
	pkg     string

	// Dialect creating the per-kind emitters.
	dialect MinimalDialect

	// Optional interface implementations detected at runtime
	docGen DocGenerator

	names *typeNames

	metrics *WriterMetrics
}

// NewJenniferGenerator creates a new Jennifer-based generator.
// You must call WithDialect() to set a dialect before calling Generate().
//
// Example:
//
//	import "github.com/syssam/xsdgen/compiler/gen/golang"
//
//	gen := gen.NewJenniferGenerator(graph, outDir)
//	gen.WithDialect(golang.NewDialect(gen))
//	gen.Generate(ctx)
func NewJenniferGenerator(g *Graph, outDir string) *JenniferGenerator {
	if g.Config == nil {
		g.Config = &Config{Target: outDir}
	}
	pkg := filepath.Base(outDir)
	if g.Config.Package != "" {
		pkg = g.Config.Package
	}
	return &JenniferGenerator{
		graph:   g,
		workers: g.Config.workers(),
		outDir:  outDir,
		pkg:     pkg,
		names:   newTypeNames(g.Types),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithPackage sets the output package name.
func (g *JenniferGenerator) WithPackage(pkg string) *JenniferGenerator {
	if pkg != "" {
		g.pkg = pkg
	}
	return g
}

// WithDialect sets the dialect generator. Additional capabilities are
// detected via DocGenerator.
func (g *JenniferGenerator) WithDialect(d MinimalDialect) *JenniferGenerator {
	if d != nil {
		g.dialect = d
		if dg, ok := d.(DocGenerator); ok {
			g.docGen = dg
		}
	}
	return g
}

// Metrics returns the generation metrics.
func (g *JenniferGenerator) Metrics() *WriterMetrics {
	return g.metrics
}

// Generate renders and writes every file. It returns an error if no
// dialect has been set via WithDialect().
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	if g.dialect == nil {
		return NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return err
	}
	if err := g.graph.Config.cleanup(); err != nil {
		return err
	}
	snapshot, unchanged, err := g.checkSnapshot()
	if err != nil {
		return err
	}
	log := g.graph.Config.Log()
	if unchanged {
		log.Info("schema unchanged, skipping generation", "target", g.outDir)
		return nil
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)

	names := fileNames{docFile: true, aliasFile: true}
	var aliases []*graph.Alias
	for _, e := range g.graph.Types {
		switch e := e.(type) {
		case *graph.Alias:
			if g.skipAlias(e) {
				log.Debug("skipping alias shadowed by a type", "name", e.Name, "original", e.Original)
				continue
			}
			aliases = append(aliases, e)
		case *graph.Struct, *graph.TupleStruct, *graph.Enum:
			name := g.GoName(e, Scope{})
			file := names.reserve(FileName(name))
			errg.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				f := g.newFile(g.pkg)
				g.renderType(f, e, Scope{})
				if err := g.writeFile(f, "", file); err != nil {
					return NewGenerationError(name, file, "", err)
				}
				return nil
			})
		}
	}
	if len(aliases) > 0 {
		errg.Go(func() error {
			f := g.newFile(g.pkg)
			for _, a := range aliases {
				g.dialect.Alias(f, a)
			}
			return g.writeFile(f, "", aliasFile)
		})
	}
	if g.docGen != nil {
		errg.Go(func() error {
			return g.writeFile(g.docGen.GenDoc(), "", docFile)
		})
	}
	if err := errg.Wait(); err != nil {
		return err
	}
	if snapshot != nil {
		if err := os.WriteFile(filepath.Join(g.outDir, SnapshotFile), snapshot, 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	log.Info("code generated", "files", g.metrics.FilesGenerated, "target", g.outDir)
	return nil
}

// renderType renders the type e and, recursively, the types it owns.
func (g *JenniferGenerator) renderType(f *jen.File, e graph.Entity, scope Scope) {
	var te TypeEmitter
	switch e := e.(type) {
	case *graph.Struct:
		te = g.dialect.Struct(e, scope)
	case *graph.TupleStruct:
		te = g.dialect.TupleStruct(e, scope)
	case *graph.Enum:
		te = g.dialect.Enum(e, scope)
	default:
		return
	}
	te.Declaration(f)
	te.Validation(f)
	te.Decode(f)
	for _, sub := range ownedTypes(e) {
		g.renderType(f, sub, te.NestedScope())
	}
}

// skipAlias reports whether the top-level alias a would redeclare a Go
// name already taken by a type.
func (g *JenniferGenerator) skipAlias(a *graph.Alias) bool {
	name := Pascal(a.Name)
	if target, ok := g.graph.Lookup(a.Original); ok && g.GoName(target, Scope{}) == name {
		return true
	}
	for _, e := range g.graph.Types {
		if _, ok := e.(*graph.Alias); !ok && g.GoName(e, Scope{}) == name {
			return true
		}
	}
	return false
}

// checkSnapshot returns the snapshot to write when the snapshot feature is
// enabled, and whether it matches the one already in the target.
func (g *JenniferGenerator) checkSnapshot() ([]byte, bool, error) {
	if !g.FeatureEnabled(FeatureSnapshot.Name) {
		return nil, false, nil
	}
	data, err := g.graph.Snapshot()
	if err != nil {
		return nil, false, err
	}
	prev, err := os.ReadFile(filepath.Join(g.outDir, SnapshotFile))
	if err != nil {
		return data, false, nil
	}
	return data, bytes.Equal(prev, data), nil
}

// fileNames hands out unique file names.
type fileNames map[string]bool

func (n fileNames) reserve(name string) string {
	base := strings.TrimSuffix(name, ".go")
	for i := 0; n[name]; i++ {
		name = fmt.Sprintf("%s_%d.go", base, i+1)
	}
	n[name] = true
	return name
}

// =============================================================================
// GeneratorHelper interface implementation
// These exported methods allow dialect packages to access helper functionality.
// =============================================================================

// NewFile creates a new Jennifer file with the standard header comment.
func (g *JenniferGenerator) NewFile(pkg string) *jen.File {
	return g.newFile(pkg)
}

// Graph returns the resolved graph.
func (g *JenniferGenerator) Graph() *Graph {
	return g.graph
}

// Pkg returns the output package name.
func (g *JenniferGenerator) Pkg() string {
	return g.pkg
}

// RuntimePkg returns the import path of the decoding runtime.
func (g *JenniferGenerator) RuntimePkg() string {
	return g.graph.Config.Runtime()
}

// FeatureEnabled reports if the given feature name is enabled.
func (g *JenniferGenerator) FeatureEnabled(name string) bool {
	enabled, _ := g.graph.Config.FeatureEnabled(name)
	return enabled
}

// GoName returns the Go name of the type e declared in scope. Types of the
// graph get the unique name assigned when the generator was created;
// other entities are named by qualifying their name in scope.
func (g *JenniferGenerator) GoName(e graph.Entity, scope Scope) string {
	if name, ok := g.names.byEntity[e]; ok {
		return name
	}
	return scope.Qualify(e.EntityName())
}

// ResolveType resolves a type reference. Subtypes owned by the member
// take precedence over builtins, which take precedence over top-level
// types. References to undeclared types, such as types of imported
// schemas, fall back to string.
func (g *JenniferGenerator) ResolveType(ref string, scope Scope, owned []graph.Entity) TypeRef {
	for _, e := range owned {
		if e.EntityName() == ref {
			return TypeRef{Name: g.GoName(e, scope), Entity: e}
		}
	}
	if ti, ok := g.graph.Builtin(ref); ok {
		return TypeRef{Builtin: ti}
	}
	if e, ok := g.graph.Lookup(ref); ok {
		return TypeRef{Name: g.GoName(e, Scope{}), Entity: e}
	}
	g.graph.Config.Log().Warn("undeclared type, using string", "ref", ref)
	ti, _ := field.Lookup("xs:string")
	return TypeRef{Builtin: ti}
}

// newFile creates a new Jennifer file with the header comment.
func (g *JenniferGenerator) newFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	header := "Code generated by xsdgen. DO NOT EDIT."
	if g.graph.Config.Header != "" {
		header = g.graph.Config.Header
	}
	f.HeaderComment(header)
	return f
}
