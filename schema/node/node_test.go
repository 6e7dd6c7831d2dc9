package node

import (
	"testing"

	"aqwari.net/xml/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `<schema xmlns="http://www.w3.org/2001/XMLSchema" xmlns:t="urn:t" xmlns:x="urn:x">
  <complexType name="Order">
    <annotation>
      <documentation> First part. </documentation>
      <documentation>Second part.</documentation>
      <appinfo>ignored</appinfo>
    </annotation>
    <sequence>
      <element name="id" type="int"/>
      <element name="ref" type="t:Ref" minOccurs="0" maxOccurs="unbounded"/>
      <element ref="t:comment"/>
      <element name="line">
        <complexType>
          <sequence>
            <element name="sku">
              <simpleType>
                <restriction base="string"><pattern value="\d+"/></restriction>
              </simpleType>
            </element>
          </sequence>
        </complexType>
      </element>
      <x:extra/>
    </sequence>
    <attribute name="currency" type="token"/>
  </complexType>
</schema>`

func parse(t *testing.T) *Node {
	t.Helper()
	root, err := xmltree.Parse([]byte(doc))
	require.NoError(t, err)
	return New(root)
}

func TestClassify(t *testing.T) {
	n := parse(t)
	assert.Equal(t, KindSchema, n.Kind())
	assert.Nil(t, n.Parent())

	ct, ok := n.Child(KindComplexType)
	require.True(t, ok)
	assert.Equal(t, "Order", ct.Name())
	assert.Same(t, n, ct.Parent())

	seq, ok := ct.Child(KindSequence)
	require.True(t, ok)
	kinds := make([]Kind, 0)
	for _, c := range seq.Children() {
		kinds = append(kinds, c.Kind())
	}
	assert.Equal(t, []Kind{KindElement, KindElement, KindElement, KindElement, KindUnknown}, kinds)
	assert.Len(t, seq.ChildrenOf(KindElement), 4)

	_, ok = ct.Child(KindChoice)
	assert.False(t, ok)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "attributeGroup", KindAttributeGroup.String())
	assert.Equal(t, "unknown", Kind(200).String())
	assert.True(t, KindPattern.IsFacet())
	assert.True(t, KindEnumeration.IsFacet())
	assert.False(t, KindUnion.IsFacet())
	assert.True(t, KindSimpleContent.IsContent())
	assert.False(t, KindAttribute.IsContent())
}

func TestNode_Attributes(t *testing.T) {
	ct, _ := parse(t).Child(KindComplexType)
	seq, _ := ct.Child(KindSequence)
	elems := seq.ChildrenOf(KindElement)

	t.Run("builtin references are normalized", func(t *testing.T) {
		assert.Equal(t, "xs:int", elems[0].TypeRef("type"))
		attr, _ := ct.Child(KindAttribute)
		assert.Equal(t, "xs:token", attr.TypeRef("type"))
	})
	t.Run("other references are kept", func(t *testing.T) {
		assert.Equal(t, "t:Ref", elems[1].TypeRef("type"))
		assert.Equal(t, "", elems[2].TypeRef("type"))
		assert.Equal(t, "urn:t", elems[1].Resolve("t:Ref").Space)
	})
	t.Run("HasAttr", func(t *testing.T) {
		assert.True(t, elems[2].HasAttr("ref"))
		assert.False(t, elems[2].HasAttr("name"))
	})
}

func TestNode_ParentName(t *testing.T) {
	ct, _ := parse(t).Child(KindComplexType)
	seq, _ := ct.Child(KindSequence)
	line := seq.ChildrenOf(KindElement)[3]
	inner, ok := line.Child(KindComplexType)
	require.True(t, ok)
	assert.Equal(t, "line", inner.ParentName())

	innerSeq, _ := inner.Child(KindSequence)
	sku := innerSeq.ChildrenOf(KindElement)[0]
	st, ok := sku.Child(KindSimpleType)
	require.True(t, ok)
	assert.Equal(t, "sku", st.ParentName())

	r, _ := st.Child(KindRestriction)
	assert.Equal(t, "xs:string", r.TypeRef("base"))
	p, _ := r.Child(KindPattern)
	assert.True(t, p.Kind().IsFacet())
}

func TestNode_Documentation(t *testing.T) {
	ct, _ := parse(t).Child(KindComplexType)
	assert.Equal(t, "First part.\n\nSecond part.", ct.Documentation())
	seq, _ := ct.Child(KindSequence)
	assert.Empty(t, seq.Documentation())
}

func TestLocal(t *testing.T) {
	assert.Equal(t, "Ref", Local("t:Ref"))
	assert.Equal(t, "Ref", Local("Ref"))
	assert.Equal(t, "", Local(""))
}

func TestOccurs(t *testing.T) {
	tests := []struct {
		name    string
		attrs   string
		want    Occurs
		wantErr string
	}{
		{"defaults", ``, Occurs{Min: 1, Max: 1}, ""},
		{"optional", `minOccurs="0"`, Occurs{Min: 0, Max: 1}, ""},
		{"unbounded", `minOccurs="0" maxOccurs="unbounded"`, Occurs{Min: 0, Max: Unbounded, MaxSet: true}, ""},
		{"bounded", `minOccurs="2" maxOccurs="5"`, Occurs{Min: 2, Max: 5, MaxSet: true}, ""},
		{"prohibited", `minOccurs="0" maxOccurs="0"`, Occurs{Min: 0, Max: 0, MaxSet: true}, ""},
		{"negative min", `minOccurs="-1"`, Occurs{}, "minOccurs is not a non-negative integer"},
		{"bad max", `maxOccurs="many"`, Occurs{}, "maxOccurs is not a non-negative integer or unbounded"},
		{"zero max", `maxOccurs="0"`, Occurs{}, "maxOccurs is zero but minOccurs is not"},
		{"min above max", `minOccurs="3" maxOccurs="2"`, Occurs{}, "minOccurs is greater than maxOccurs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := xmltree.Parse([]byte(`<element xmlns="http://www.w3.org/2001/XMLSchema" ` + tt.attrs + `/>`))
			require.NoError(t, err)
			got, err := New(root).Occurs()
			if tt.wantErr != "" {
				var be *BoundsError
				require.ErrorAs(t, err, &be)
				assert.Contains(t, be.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("predicates", func(t *testing.T) {
		o := Occurs{Min: 0, Max: Unbounded}
		assert.True(t, o.IsUnbounded())
		assert.True(t, o.Many())
		assert.True(t, o.Optional())
		assert.False(t, o.Prohibited())

		o = Occurs{Min: 1, Max: 1}
		assert.False(t, o.Many())
		assert.False(t, o.Optional())
		assert.True(t, Occurs{Max: 0}.Prohibited())
	})
}
