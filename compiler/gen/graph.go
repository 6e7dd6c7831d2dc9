package gen

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/xsdgen/compiler/load"
	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/field"
	"github.com/syssam/xsdgen/schema/node"
)

// Graph holds the resolved entities of a schema, ready for emission.
type Graph struct {
	*Config

	// Namespace is the target namespace of the schema.
	Namespace string

	// Types holds the resolved top-level entities: declared types first,
	// then hoisted groups.
	Types []graph.Entity

	// Imports holds the imported and included documents.
	Imports []*graph.Import

	index map[string]graph.Entity
}

// NewGraph resolves the loaded schema s. The schema itself is left
// untouched.
func NewGraph(c *Config, s *load.Schema) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	r := &Resolver{Logger: c.Log()}
	types, err := r.Resolve(s.Types, s.Groups, s.AttributeGroups)
	if err != nil {
		return nil, err
	}
	g := &Graph{
		Config:    c,
		Namespace: s.TargetNamespace,
		index:     make(map[string]graph.Entity, len(types)),
	}
	for _, e := range types {
		if imp, ok := e.(*graph.Import); ok {
			g.Imports = append(g.Imports, imp)
			continue
		}
		g.Types = append(g.Types, e)
		indexEntity(g.index, e)
	}
	return g, nil
}

// Lookup returns the top-level entity a type reference names.
func (g *Graph) Lookup(ref string) (graph.Entity, bool) {
	e, ok := g.index[node.Local(ref)]
	return e, ok
}

// Builtin returns the builtin datatype a reference resolves to, following
// top-level aliases.
func (g *Graph) Builtin(ref string) (*field.TypeInfo, bool) {
	for i, n := 0, len(g.index)+1; i < n; i++ {
		if ti, ok := field.Lookup(ref); ok && field.IsBuiltin(ref) {
			return ti, true
		}
		e, ok := g.Lookup(ref)
		if !ok {
			break
		}
		a, ok := e.(*graph.Alias)
		if !ok {
			break
		}
		ref = a.Original
	}
	return nil, false
}

// snapshotEntry tags a top-level entity with its kind so that snapshots of
// different entity kinds sharing a name differ.
type snapshotEntry struct {
	Kind   string       `msgpack:"kind"`
	Entity graph.Entity `msgpack:"entity"`
}

// Snapshot encodes the resolved graph with msgpack. Equal graphs yield
// equal snapshots.
func (g *Graph) Snapshot() ([]byte, error) {
	entries := make([]snapshotEntry, 0, len(g.Types)+len(g.Imports))
	for _, e := range g.Types {
		entries = append(entries, snapshotEntry{Kind: fmt.Sprintf("%T", e), Entity: e})
	}
	for _, imp := range g.Imports {
		entries = append(entries, snapshotEntry{Kind: fmt.Sprintf("%T", imp), Entity: imp})
	}
	data, err := msgpack.Marshal(struct {
		Namespace string          `msgpack:"namespace"`
		Types     []snapshotEntry `msgpack:"types"`
	}{g.Namespace, entries})
	if err != nil {
		return nil, fmt.Errorf("xsdgen: encode snapshot: %w", err)
	}
	return data, nil
}
