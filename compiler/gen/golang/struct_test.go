package golang

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/graph"
)

func TestStructEmitter(t *testing.T) {
	address := &graph.Struct{
		Name:    "Address",
		Comment: "A postal address.",
		Fields: []*graph.StructField{
			element("name", "xs:string"),
			element("zip", "xs:int", graph.Option),
			element("line", "xs:string", graph.Array),
			element("next", "Address", graph.Recursive),
			element("hidden", "xs:string", graph.Empty),
			attribute("country", "xs:token", graph.Option),
			attribute("codes", "xs:int", graph.Array),
			attribute("id", "xs:ID"),
		},
	}
	h := newMockHelper(t, address)
	code := render(h, NewDialect(h).Struct(address, gen.Scope{}))

	t.Run("declaration", func(t *testing.T) {
		assert.Contains(t, code, "// Address is the \"Address\" complex type.")
		assert.Contains(t, code, "// A postal address.")
		assert.Contains(t, code, "type Address struct {")
		assert.Regexp(t, `Name\s+string\s+`+"`"+`xml:"name"`+"`", code)
		assert.Regexp(t, `Zip\s+\*int32`, code)
		assert.Regexp(t, `Line\s+\[\]string`, code)
		assert.Regexp(t, `Next\s+\*Address`, code)
		assert.Regexp(t, `Country\s+\*string\s+`+"`"+`xml:"country,attr,omitempty"`+"`", code)
		assert.Regexp(t, `Codes\s+\[\]int32`, code)
		assert.Contains(t, code, `xml:"id,attr"`)
		assert.NotContains(t, code, "Hidden")
	})
	t.Run("validation", func(t *testing.T) {
		assert.Contains(t, code, "func (v Address) Validate() error {")
	})
	t.Run("decode", func(t *testing.T) {
		assert.Contains(t, code, "func (v *Address) DecodeXML(c xsdgen.Cursor) error {")
		assert.Contains(t, code, "return xsdgen.Commit(c, func(c xsdgen.Cursor) error {")
		assert.Contains(t, code, `if out.Name, err = xsdgen.PopChild[string](c, "name", xsdgen.Leaf(xsdgen.ParseString)); err != nil {`)
		assert.Contains(t, code, `return xsdgen.FieldError("Address", "name", err)`)
		assert.Contains(t, code, `xsdgen.MaybePopChild[int32](c, "zip", xsdgen.Leaf(xsdgen.ParseInt32))`)
		assert.Contains(t, code, `xsdgen.PopChildren[string](c, "line", xsdgen.Leaf(xsdgen.ParseString))`)
		assert.Contains(t, code, `xsdgen.PopIndirectChild[Address](c, "next", xsdgen.Decode[Address, *Address])`)
		assert.Contains(t, code, `xsdgen.MaybePopAttribute[string](c, "country", xsdgen.Leaf(xsdgen.ParseToken))`)
		assert.Contains(t, code, `xsdgen.PopAttributes[int32](c, "codes", xsdgen.Leaf(xsdgen.ParseInt32))`)
		assert.Contains(t, code, `xsdgen.PopAttribute[string](c, "id", xsdgen.Leaf(xsdgen.ParseToken))`)
		assert.Contains(t, code, "*v = out")
		assert.NotContains(t, code, `"hidden"`)
	})
}

func TestStructEmitter_SimpleContent(t *testing.T) {
	price := &graph.Struct{
		Name: "Price",
		Fields: []*graph.StructField{
			attribute("currency", "xs:string"),
			{Name: "value", TypeName: "xs:decimal", Modifiers: graph.Modifiers{graph.Flatten}, Source: graph.SourceElement},
		},
	}
	h := newMockHelper(t, price)
	code := render(h, NewDialect(h).Struct(price, gen.Scope{}))

	assert.Regexp(t, `Value\s+float64\s+`+"`"+`xml:",chardata"`+"`", code)
	assert.Contains(t, code, "if out.Value, err = xsdgen.Value(c, xsdgen.ParseFloat64); err != nil {")
}

func TestStructEmitter_Nested(t *testing.T) {
	seq := &graph.Struct{Name: "OrderSequence", Fields: []*graph.StructField{element("sku", "xs:string")}}
	item := &graph.Struct{Name: "item", Fields: []*graph.StructField{element("qty", "xs:int")}}
	order := &graph.Struct{
		Name: "Order",
		Fields: []*graph.StructField{
			{
				Name:      "OrderSequence",
				TypeName:  "OrderSequence",
				Modifiers: graph.Modifiers{graph.Array, graph.Flatten},
				Source:    graph.SourceSequence,
				Subtypes:  []graph.Entity{seq},
			},
			{
				Name:     "item",
				XMLName:  "item",
				TypeName: "item",
				Source:   graph.SourceElement,
				Subtypes: []graph.Entity{item},
			},
			{
				Name:      "extra",
				TypeName:  "Extra",
				Modifiers: graph.Modifiers{graph.Option, graph.Flatten},
				Source:    graph.SourceSequence,
			},
		},
	}
	extra := &graph.Struct{Name: "Extra"}
	h := newMockHelper(t, order, extra)
	st := NewDialect(h).Struct(order, gen.Scope{})
	code := render(h, st)

	assert.Equal(t, gen.Scope{Prefix: "Order"}, st.NestedScope())
	assert.Regexp(t, `OrderSequence\s+\[\]OrderSequence`+"\n", code)
	assert.Regexp(t, `Item\s+OrderItem\s+`, code)
	assert.Regexp(t, `Extra\s+\*Extra`+"\n", code)
	assert.Contains(t, code, "xsdgen.FlattenMany[OrderSequence](c, xsdgen.Decode[OrderSequence, *OrderSequence])")
	assert.Contains(t, code, `xsdgen.PopChild[OrderItem](c, "item", xsdgen.Decode[OrderItem, *OrderItem])`)
	assert.Contains(t, code, "xsdgen.FlattenMaybe[Extra](c, xsdgen.Decode[Extra, *Extra])")
}

func TestStructEmitter_Empty(t *testing.T) {
	empty := &graph.Struct{Name: "marker"}
	h := newMockHelper(t, empty)
	code := render(h, NewDialect(h).Struct(empty, gen.Scope{}))

	assert.Contains(t, code, "type Marker struct{}")
	assert.Contains(t, code, "*v = Marker{}")
	assert.NotContains(t, code, "err error")
}

func TestFieldEmitter(t *testing.T) {
	owner := &graph.Struct{Name: "Doc"}
	h := newMockHelper(t, owner)
	d := NewDialect(h)

	t.Run("renames method names", func(t *testing.T) {
		fe := d.Field(owner, element("validate", "xs:string"), gen.Scope{Prefix: "Doc"})
		assert.Equal(t, "ValidateField", fe.Name())
	})
	t.Run("attribute suffix", func(t *testing.T) {
		fe := d.Field(owner, attribute("lang_attr", "xs:language"), gen.Scope{Prefix: "Doc"})
		assert.Equal(t, "LangAttr", fe.Name())
		assert.Contains(t, renderMember(h, fe), `xml:"lang_attr,attr"`)
	})
	t.Run("undeclared type falls back to string", func(t *testing.T) {
		fe := d.Field(owner, element("ext", "other:Thing"), gen.Scope{Prefix: "Doc"})
		assert.Regexp(t, `Ext\s+string`, renderMember(h, fe))
	})
	t.Run("decode statement", func(t *testing.T) {
		fe := d.Field(owner, element("when", "xs:dateTime"), gen.Scope{Prefix: "Doc"})
		code := renderCode(h, fe.Decode())
		assert.Contains(t, code, `if out.When, err = xsdgen.PopChild[time.Time](c, "when", xsdgen.Leaf(xsdgen.ParseDateTime)); err != nil {`)
	})
	t.Run("skipped field", func(t *testing.T) {
		fe := d.Field(owner, element("gone", "xs:string", graph.Empty), gen.Scope{Prefix: "Doc"})
		assert.Nil(t, fe.Decode())
	})
}
