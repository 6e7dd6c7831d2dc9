package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/xsdgen/graph"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"purchaseOrder", "PurchaseOrder"},
		{"PurchaseOrderType", "PurchaseOrderType"},
		{"USAddress", "USAddress"},
		{"ship_to", "ShipTo"},
		{"xml:lang", "XmlLang"},
		{"part-num", "PartNum"},
		{"EnumCase_0", "EnumCase0"},
		{"1.5", "N15"},
		{"", "Empty"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Pascal(tt.in))
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "usaddress.go", FileName("USAddress"))
	assert.Equal(t, "purchaseordertype.go", FileName("PurchaseOrderType"))
}

func TestScope(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		assert.Equal(t, "Items", Scope{}.Qualify("items"))
	})
	t.Run("nested names are prefixed", func(t *testing.T) {
		s := Scope{}.Child("Items")
		assert.Equal(t, "ItemsItem", s.Qualify("item"))
		assert.Equal(t, "ItemsItemQuantity", s.Child(s.Qualify("item")).Qualify("quantity"))
	})
	t.Run("prefix is not repeated", func(t *testing.T) {
		s := Scope{Prefix: "Order"}
		assert.Equal(t, "OrderChoice", s.Qualify("OrderChoice"))
	})
}

func TestFileNames(t *testing.T) {
	names := fileNames{docFile: true}
	assert.Equal(t, "doc_1.go", names.reserve("doc.go"))
	assert.Equal(t, "item.go", names.reserve("item.go"))
	assert.Equal(t, "item_1.go", names.reserve("item.go"))
	assert.Equal(t, "item_2.go", names.reserve("item.go"))
}

func TestTypeNames(t *testing.T) {
	inner := &graph.Struct{Name: "ItemList"}
	item := &graph.Struct{Name: "Item", Fields: []*graph.StructField{
		{Name: "ItemList", TypeName: "ItemList", Subtypes: []graph.Entity{inner}},
	}}
	list := &graph.Struct{Name: "ItemList"}

	kind := &graph.Struct{Name: "kind"}
	choice := &graph.Enum{Name: "ShapeChoice", Cases: []*graph.EnumCase{
		{Name: "kind", TypeName: "kind", Subtypes: []graph.Entity{kind}},
	}}
	label := &graph.TupleStruct{Name: "label", TypeName: "xs:string"}
	shape := &graph.Struct{
		Name:     "Shape",
		Fields:   []*graph.StructField{{Name: "ShapeChoice", TypeName: "ShapeChoice", Subtypes: []graph.Entity{choice}}},
		Subtypes: []graph.Entity{label},
	}
	alias := &graph.Alias{Name: "ShapeLabel", Original: "xs:string"}

	n := newTypeNames([]graph.Entity{item, list, shape, alias})

	t.Run("top level names are kept", func(t *testing.T) {
		assert.Equal(t, "Item", n.byEntity[item])
		assert.Equal(t, "ItemList", n.byEntity[list])
		assert.Equal(t, "Shape", n.byEntity[shape])
		assert.Equal(t, "ShapeChoice", n.byEntity[choice])
	})
	t.Run("nested name taken by a top level type", func(t *testing.T) {
		assert.Equal(t, "ItemList2", n.byEntity[inner])
	})
	t.Run("nested name taken by an alias", func(t *testing.T) {
		assert.Equal(t, "ShapeLabel2", n.byEntity[label])
	})
	t.Run("nested name taken by a discriminator", func(t *testing.T) {
		assert.True(t, n.taken["ShapeChoiceKind"])
		assert.Equal(t, "ShapeChoiceKind2", n.byEntity[kind])
	})
	t.Run("aliases get no entry", func(t *testing.T) {
		_, ok := n.byEntity[alias]
		assert.False(t, ok)
	})
}
