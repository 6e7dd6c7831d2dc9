package golang

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/compiler/load"
	"github.com/syssam/xsdgen/graph"
)

// mockHelper is a real generator over an in-memory graph, with feature
// flags set by the test.
type mockHelper struct {
	*gen.JenniferGenerator
	features map[string]bool
}

func newMockHelper(t *testing.T, types ...graph.Entity) *mockHelper {
	t.Helper()
	cfg := gen.MustNewConfig(gen.WithPackage("schema"), gen.WithTarget(t.TempDir()))
	g, err := gen.NewGraph(cfg, &load.Schema{TargetNamespace: "urn:test", Types: types})
	require.NoError(t, err)
	return &mockHelper{
		JenniferGenerator: gen.NewJenniferGenerator(g, cfg.Target),
		features:          make(map[string]bool),
	}
}

func (m *mockHelper) withFeatures(names ...string) *mockHelper {
	for _, name := range names {
		m.features[name] = true
	}
	return m
}

func (m *mockHelper) FeatureEnabled(name string) bool { return m.features[name] }

// Ensure mockHelper implements gen.GeneratorHelper.
var _ gen.GeneratorHelper = (*mockHelper)(nil)

// render runs every stage of a type emitter into a new file.
func render(h gen.GeneratorHelper, te gen.TypeEmitter) string {
	f := h.NewFile(h.Pkg())
	te.Declaration(f)
	te.Validation(f)
	te.Decode(f)
	return f.GoString()
}

// renderMember renders a member declaration inside a struct.
func renderMember(h gen.GeneratorHelper, me gen.MemberEmitter) string {
	f := h.NewFile(h.Pkg())
	f.Type().Id("T").StructFunc(me.Declaration)
	return f.GoString()
}

// renderCode renders one expression or statement inside a function body.
func renderCode(h gen.GeneratorHelper, code jen.Code) string {
	f := h.NewFile(h.Pkg())
	f.Func().Id("f").Params().Block(code)
	return f.GoString()
}

func element(name, typ string, ms ...graph.Modifier) *graph.StructField {
	return &graph.StructField{Name: name, XMLName: name, TypeName: typ, Modifiers: ms, Source: graph.SourceElement}
}

func attribute(name, typ string, ms ...graph.Modifier) *graph.StructField {
	return &graph.StructField{Name: name, XMLName: name, TypeName: typ, Modifiers: ms, Source: graph.SourceAttribute}
}
