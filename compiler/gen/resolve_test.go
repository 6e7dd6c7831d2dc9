package gen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/xsdgen/compiler/load"
	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/node"
)

func element(name, typ string, ms ...graph.Modifier) *graph.StructField {
	return &graph.StructField{Name: name, XMLName: name, TypeName: typ, Modifiers: ms, Source: graph.SourceElement}
}

func attribute(name, typ string, ms ...graph.Modifier) *graph.StructField {
	return &graph.StructField{Name: name, XMLName: name, TypeName: typ, Modifiers: ms, Source: graph.SourceAttribute}
}

func base(ref string) *graph.StructField {
	return &graph.StructField{Name: graph.BaseField, TypeName: ref}
}

// groupRef adds a reference to the group ref at the end of st, as the
// loader does for a group inside a sequence.
func groupRef(st *graph.Struct, ref string, ms ...graph.Modifier) {
	st.Groups = append(st.Groups, &graph.Alias{Name: node.Local(ref), Original: ref, Modifiers: ms})
	st.Fields = append(st.Fields, &graph.StructField{Name: graph.GroupField, TypeName: ref, Modifiers: ms, Source: graph.SourceGroup})
}

func fieldNames(st *graph.Struct) []string {
	names := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		names[i] = f.Name
	}
	return names
}

func structNamed(t *testing.T, es []graph.Entity, name string) *graph.Struct {
	t.Helper()
	for _, e := range es {
		if st, ok := e.(*graph.Struct); ok && st.Name == name {
			return st
		}
	}
	require.Failf(t, "struct not found", "no struct %q", name)
	return nil
}

func TestResolve_Base(t *testing.T) {
	t.Run("struct base is spliced at the marker", func(t *testing.T) {
		address := &graph.Struct{Name: "Address", Fields: []*graph.StructField{
			element("name", "xs:string"),
			element("city", "xs:string"),
		}}
		us := &graph.Struct{Name: "USAddress", Fields: []*graph.StructField{
			element("id", "xs:int"),
			base("t:Address"),
			element("city", "xs:token"),
			element("state", "xs:string"),
		}}
		types, err := Resolve([]graph.Entity{us, address}, nil, nil)
		require.NoError(t, err)

		got := structNamed(t, types, "USAddress")
		assert.Equal(t, []string{"id", "name", "city", "state"}, fieldNames(got))
		// Own fields win over inherited ones.
		assert.Equal(t, "xs:token", got.Field("city").TypeName)
	})

	t.Run("base chains resolve in any order", func(t *testing.T) {
		a := &graph.Struct{Name: "A", Fields: []*graph.StructField{element("a", "xs:string")}}
		b := &graph.Struct{Name: "B", Fields: []*graph.StructField{base("A"), element("b", "xs:string")}}
		c := &graph.Struct{Name: "C", Fields: []*graph.StructField{base("B"), element("c", "xs:string")}}
		types, err := Resolve([]graph.Entity{c, b, a}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, fieldNames(structNamed(t, types, "C")))
	})

	t.Run("simple base becomes a value field", func(t *testing.T) {
		price := &graph.Struct{Name: "Price", Fields: []*graph.StructField{
			base("xs:decimal"),
			attribute("currency", "xs:string"),
		}}
		types, err := Resolve([]graph.Entity{price}, nil, nil)
		require.NoError(t, err)

		value := structNamed(t, types, "Price").Field("value")
		require.NotNil(t, value)
		assert.Equal(t, "xs:decimal", value.TypeName)
		assert.True(t, value.Modifiers.Has(graph.Flatten))
	})

	t.Run("anyType contributes nothing", func(t *testing.T) {
		st := &graph.Struct{Name: "Any", Fields: []*graph.StructField{base("xs:anyType"), element("x", "xs:string")}}
		types, err := Resolve([]graph.Entity{st}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, fieldNames(structNamed(t, types, "Any")))
	})

	t.Run("type wins over an element alias of the same name", func(t *testing.T) {
		alias := &graph.Alias{Name: "Address", Original: "t:Address"}
		address := &graph.Struct{Name: "Address", Fields: []*graph.StructField{element("street", "xs:string")}}
		us := &graph.Struct{Name: "USAddress", Fields: []*graph.StructField{base("t:Address"), element("zip", "xs:string")}}
		types, err := Resolve([]graph.Entity{alias, address, us}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"street", "zip"}, fieldNames(structNamed(t, types, "USAddress")))
	})

	t.Run("input is left untouched", func(t *testing.T) {
		address := &graph.Struct{Name: "Address", Fields: []*graph.StructField{element("name", "xs:string")}}
		us := &graph.Struct{Name: "USAddress", Fields: []*graph.StructField{base("Address")}}
		_, err := Resolve([]graph.Entity{us, address}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, graph.BaseField, us.Fields[0].Name)
	})
}

func TestResolve_Groups(t *testing.T) {
	shipping := &graph.Struct{Name: "shipping", Fields: []*graph.StructField{
		element("shipDate", "xs:date"),
		element("carrier", "xs:string"),
	}}

	t.Run("reference without cardinality is spliced", func(t *testing.T) {
		item := &graph.Struct{
			Name:   "Item",
			Fields: []*graph.StructField{element("name", "xs:string")},
			Groups: []*graph.Alias{{Name: "shipping", Original: "t:shipping"}},
		}
		types, err := Resolve([]graph.Entity{item}, []graph.Entity{shipping}, nil)
		require.NoError(t, err)
		require.Len(t, types, 1)

		got := structNamed(t, types, "Item")
		assert.Equal(t, []string{"name", "shipDate", "carrier"}, fieldNames(got))
		assert.Nil(t, got.Groups)
	})

	t.Run("reference with cardinality is hoisted once", func(t *testing.T) {
		ref := func() []*graph.Alias {
			return []*graph.Alias{{Name: "shipping", Original: "t:shipping", Modifiers: graph.Modifiers{graph.Option}}}
		}
		a := &graph.Struct{Name: "A", Groups: ref()}
		b := &graph.Struct{Name: "B", Groups: ref()}
		types, err := Resolve([]graph.Entity{a, b}, []graph.Entity{shipping}, nil)
		require.NoError(t, err)
		require.Len(t, types, 3)

		f := structNamed(t, types, "A").Field("shipping")
		require.NotNil(t, f)
		assert.Equal(t, "shipping", f.TypeName)
		assert.True(t, f.Modifiers.Has(graph.Option))
		assert.True(t, f.Modifiers.Has(graph.Flatten))
		assert.Equal(t, []string{"shipDate", "carrier"}, fieldNames(structNamed(t, types[2:], "shipping")))
	})

	t.Run("nested groups", func(t *testing.T) {
		outer := &graph.Struct{Name: "outer", Fields: []*graph.StructField{element("o", "xs:string")},
			Groups: []*graph.Alias{{Name: "shipping", Original: "shipping"}}}
		st := &graph.Struct{Name: "T", Groups: []*graph.Alias{{Name: "outer", Original: "outer"}}}
		types, err := Resolve([]graph.Entity{st}, []graph.Entity{shipping, outer}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"o", "shipDate", "carrier"}, fieldNames(structNamed(t, types, "T")))
	})

	t.Run("references keep their position", func(t *testing.T) {
		pair := &graph.Struct{Name: "pair", Fields: []*graph.StructField{
			element("left", "xs:string"),
			element("right", "xs:string"),
		}}
		outer := &graph.Struct{Name: "outer"}
		groupRef(outer, "t:pair")
		outer.Fields = append(outer.Fields, element("extra", "xs:string"))

		st := &graph.Struct{Name: "Node", Fields: []*graph.StructField{
			element("name", "xs:string"),
			element("next", "Node", graph.Option, graph.Recursive),
		}}
		groupRef(st, "t:outer")
		groupRef(st, "t:pair", graph.Array)
		st.Fields = append(st.Fields, element("shape", "xs:string"))

		types, err := Resolve([]graph.Entity{st}, []graph.Entity{pair, outer}, nil)
		require.NoError(t, err)
		got := structNamed(t, types, "Node")
		assert.Equal(t, []string{"name", "next", "left", "right", "extra", "pair", "shape"}, fieldNames(got))
		assert.Equal(t, graph.Modifiers{graph.Array, graph.Flatten}, got.Field("pair").Modifiers)
		assert.Equal(t, []string{"left", "right"}, fieldNames(structNamed(t, types[1:], "pair")))
	})

	t.Run("optional reference ahead of a choice", func(t *testing.T) {
		s, err := load.Parse([]byte(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:t="urn:t" targetNamespace="urn:t">
  <xs:group name="pair">
    <xs:sequence>
      <xs:element name="left" type="xs:string"/>
      <xs:element name="right" type="xs:string"/>
    </xs:sequence>
  </xs:group>
  <xs:complexType name="Other">
    <xs:sequence>
      <xs:group ref="t:pair" minOccurs="0"/>
      <xs:choice maxOccurs="unbounded">
        <xs:element name="a" type="xs:string"/>
        <xs:element name="b" type="xs:string"/>
      </xs:choice>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`))
		require.NoError(t, err)
		types, err := Resolve(s.Types, s.Groups, s.AttributeGroups)
		require.NoError(t, err)
		assert.Equal(t, []string{"pair", "OtherChoice"}, fieldNames(structNamed(t, types, "Other")))
	})

	t.Run("choice alternatives reference the hoisted group", func(t *testing.T) {
		choice := &graph.Enum{Name: "Delivery", TypeName: "xs:string", Source: graph.EnumChoice, Cases: []*graph.EnumCase{
			{Name: "pickup", TypeName: "xs:string", Source: graph.EnumChoice},
			{Name: "shipping", Source: graph.EnumChoice, Modifiers: graph.Modifiers{graph.Flatten},
				Subtypes: []graph.Entity{&graph.Alias{Name: "shipping", Original: "t:shipping"}}},
		}}
		types, err := Resolve([]graph.Entity{choice}, []graph.Entity{shipping}, nil)
		require.NoError(t, err)
		require.Len(t, types, 2)

		c := types[0].(*graph.Enum).Cases[1]
		assert.Equal(t, "shipping", c.TypeName)
		assert.Empty(t, c.Subtypes)
		assert.Equal(t, "shipping", types[1].EntityName())
	})
}

func TestResolve_AttributeGroups(t *testing.T) {
	audit := &graph.Struct{Name: "audit", Fields: []*graph.StructField{
		attribute("createdBy", "xs:string"),
		attribute("currency", "xs:string"),
	}}
	st := &graph.Struct{
		Name: "Order",
		Fields: []*graph.StructField{
			element("createdBy", "xs:string"),
			attribute("currency", "xs:token"),
		},
		AttributeGroups: []*graph.Alias{{Name: "audit", Original: "t:audit"}},
	}
	types, err := Resolve([]graph.Entity{st}, nil, []graph.Entity{audit})
	require.NoError(t, err)

	got := structNamed(t, types, "Order")
	assert.Equal(t, []string{"createdBy", "currency", "createdBy_attr"}, fieldNames(got))
	assert.Equal(t, "xs:token", got.Field("currency").TypeName)
	assert.Equal(t, "createdBy", got.Field("createdBy_attr").XMLName)
	assert.Nil(t, got.AttributeGroups)
}

func TestResolve_Errors(t *testing.T) {
	t.Run("unresolved references", func(t *testing.T) {
		tests := []struct {
			name string
			st   *graph.Struct
			kind RefKind
		}{
			{"base", &graph.Struct{Name: "S", Fields: []*graph.StructField{base("t:Missing")}}, RefBase},
			{"group", &graph.Struct{Name: "S", Groups: []*graph.Alias{{Name: "g", Original: "t:g"}}}, RefGroup},
			{"attribute group", &graph.Struct{Name: "S", AttributeGroups: []*graph.Alias{{Name: "a", Original: "t:a"}}}, RefAttributeGroup},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Resolve([]graph.Entity{tt.st}, nil, nil)
				var re *ResolveError
				require.ErrorAs(t, err, &re)
				assert.Equal(t, tt.kind, re.Kind)
				assert.Equal(t, "S", re.Owner)
			})
		}
	})

	t.Run("group cycle", func(t *testing.T) {
		a := &graph.Struct{Name: "a", Groups: []*graph.Alias{{Name: "b", Original: "b"}}}
		b := &graph.Struct{Name: "b", Groups: []*graph.Alias{{Name: "a", Original: "a"}}}
		st := &graph.Struct{Name: "T", Groups: []*graph.Alias{{Name: "a", Original: "a"}}}
		_, err := Resolve([]graph.Entity{st}, []graph.Entity{a, b}, nil)
		var ce *CycleError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, RefGroup, ce.Kind)
		assert.Equal(t, []string{"a", "b", "a"}, ce.Path)
	})

	t.Run("attribute group cycle", func(t *testing.T) {
		a := &graph.Struct{Name: "a", AttributeGroups: []*graph.Alias{{Name: "a", Original: "a"}}}
		st := &graph.Struct{Name: "T", AttributeGroups: []*graph.Alias{{Name: "a", Original: "a"}}}
		_, err := Resolve([]graph.Entity{st}, nil, []graph.Entity{a})
		var ce *CycleError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, RefAttributeGroup, ce.Kind)
	})

	t.Run("base cycles are aggregated", func(t *testing.T) {
		a := &graph.Struct{Name: "A", Fields: []*graph.StructField{base("B")}}
		b := &graph.Struct{Name: "B", Fields: []*graph.StructField{base("A")}}
		_, err := Resolve([]graph.Entity{a, b}, nil, nil)
		require.Error(t, err)

		var agg *AggregateError
		require.ErrorAs(t, err, &agg)
		assert.Len(t, agg.Errors, 2)
		assert.True(t, IsCycleError(err))
		assert.Contains(t, err.Error(), "A -> B -> A")
	})
}

func TestResolve_Idempotent(t *testing.T) {
	s, err := load.ParseFile(filepath.Join("..", "load", "testdata", "po.xsd"))
	require.NoError(t, err)

	once, err := Resolve(s.Types, s.Groups, s.AttributeGroups)
	require.NoError(t, err)
	twice, err := Resolve(once, s.Groups, s.AttributeGroups)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	err = graph.WalkAll(once, func(e graph.Entity) error {
		switch e := e.(type) {
		case *graph.Struct:
			assert.Nil(t, e.Groups, e.Name)
			assert.Nil(t, e.AttributeGroups, e.Name)
		case *graph.StructField:
			assert.NotEqual(t, graph.BaseField, e.Name)
			assert.NotEqual(t, graph.SourceGroup, e.Source, e.Name)
		case *graph.EnumCase:
			for _, sub := range e.Subtypes {
				_, pending := sub.(*graph.Alias)
				assert.False(t, pending, e.Name)
			}
		}
		return nil
	})
	require.NoError(t, err)
}
