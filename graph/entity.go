package graph

import "slices"

// BaseField is the name of the marker field that stands for the content
// inherited from a base type until it is resolved. It is not a valid XML
// name, so it never collides with a declared field.
const BaseField = "#base"

// GroupField is the name of the marker fields that keep the position of
// group references within a sequence until they are resolved. The k-th
// marker of a struct stands for its k-th pending group reference.
const GroupField = "#group"

// A Modifier annotates the cardinality or shape of a field or enum case.
type Modifier uint8

// List of modifiers.
const (
	None Modifier = iota
	Array
	Option
	Recursive
	Empty
	Flatten
)

var modifierNames = [...]string{
	None:      "None",
	Array:     "Array",
	Option:    "Option",
	Recursive: "Recursive",
	Empty:     "Empty",
	Flatten:   "Flatten",
}

// String returns the name of the modifier.
func (m Modifier) String() string {
	if int(m) < len(modifierNames) {
		return modifierNames[m]
	}
	return "Modifier(?)"
}

// Modifiers is the ordered modifier list of a field, case or alias.
type Modifiers []Modifier

// Has reports whether m is in the list.
func (ms Modifiers) Has(m Modifier) bool {
	return slices.Contains(ms, m)
}

// With returns a copy of the list with m appended, unless already present.
func (ms Modifiers) With(m Modifier) Modifiers {
	if ms.Has(m) {
		return slices.Clone(ms)
	}
	return append(slices.Clone(ms), m)
}

// IsNone reports whether the list carries no multiplicity or shape
// information.
func (ms Modifiers) IsNone() bool {
	for _, m := range ms {
		if m != None {
			return false
		}
	}
	return true
}

// FieldSource tells which construct a struct field was built from.
type FieldSource uint8

// List of field sources.
const (
	SourceAttribute FieldSource = iota + 1
	SourceElement
	SourceBase
	SourceChoice
	SourceSequence
	SourceGroup
)

var fieldSourceNames = [...]string{
	0:               "Unknown",
	SourceAttribute: "Attribute",
	SourceElement:   "Element",
	SourceBase:      "Base",
	SourceChoice:    "Choice",
	SourceSequence:  "Sequence",
	SourceGroup:     "Group",
}

// String returns the name of the source.
func (s FieldSource) String() string {
	if int(s) < len(fieldSourceNames) {
		return fieldSourceNames[s]
	}
	return fieldSourceNames[0]
}

// EnumSource tells which construct an enum or enum case was built from.
type EnumSource uint8

// List of enum sources.
const (
	EnumRestriction EnumSource = iota + 1
	EnumChoice
	EnumUnion
)

var enumSourceNames = [...]string{
	0:               "Unknown",
	EnumRestriction: "Restriction",
	EnumChoice:      "Choice",
	EnumUnion:       "Union",
}

// String returns the name of the source.
func (s EnumSource) String() string {
	if int(s) < len(enumSourceNames) {
		return enumSourceNames[s]
	}
	return enumSourceNames[0]
}

// Facet is a constraining facet attached to a restricted simple type.
type Facet struct {
	Kind    string // e.g. "maxLength", "pattern"
	Value   string
	Comment string
}

// Entity is one node of the type graph. The set of implementations is
// closed: *Struct, *StructField, *TupleStruct, *Enum, *EnumCase, *Alias and
// *Import. Consumers switch over them exhaustively.
type Entity interface {
	// EntityName returns the name of the entity as declared in the schema.
	EntityName() string
	entity()
}

// Struct is a product type.
type Struct struct {
	Name            string
	Comment         string
	Fields          []*StructField
	Groups          []*Alias // pending group references
	AttributeGroups []*Alias // pending attribute-group references
	Subtypes        []Entity
}

// StructField is one member of a Struct.
type StructField struct {
	Name      string
	XMLName   string // name of the element or attribute read for this field
	TypeName  string
	Comment   string
	Modifiers Modifiers
	Source    FieldSource
	Subtypes  []Entity
}

// TupleStruct is a named wrapper over a single type, used for restricted
// and list simple types.
type TupleStruct struct {
	Name      string
	Comment   string
	TypeName  string
	Modifiers Modifiers
	Facets    []Facet
	Subtypes  []Entity
}

// Enum is a sum type. Cases are never empty once built.
type Enum struct {
	Name     string
	Comment  string
	TypeName string // type of the catch-all unknown case
	Cases    []*EnumCase
	Source   EnumSource
	Subtypes []Entity
}

// EnumCase is one alternative of an Enum. A case with an empty TypeName is
// a unit case matching the Value literal.
type EnumCase struct {
	Name      string
	Comment   string
	Value     string
	TypeName  string
	Modifiers Modifiers
	Source    EnumSource
	Subtypes  []Entity
}

// Alias is a named reference to another type. Aliases held in
// Struct.Groups, Struct.AttributeGroups or an EnumCase's subtypes are
// pending group references; top-level aliases come from global elements.
type Alias struct {
	Name      string
	Original  string
	Comment   string
	Modifiers Modifiers
}

// Import records an imported or included schema document.
type Import struct {
	Name     string // namespace
	Location string
}

func (e *Struct) EntityName() string      { return e.Name }
func (e *StructField) EntityName() string { return e.Name }
func (e *TupleStruct) EntityName() string { return e.Name }
func (e *Enum) EntityName() string        { return e.Name }
func (e *EnumCase) EntityName() string    { return e.Name }
func (e *Alias) EntityName() string       { return e.Name }
func (e *Import) EntityName() string      { return e.Name }

func (*Struct) entity()      {}
func (*StructField) entity() {}
func (*TupleStruct) entity() {}
func (*Enum) entity()        {}
func (*EnumCase) entity()    {}
func (*Alias) entity()       {}
func (*Import) entity()      {}

// Field returns the field with the given name, or nil.
func (e *Struct) Field(name string) *StructField {
	for _, f := range e.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// IsUnit reports whether the case carries no payload.
func (c *EnumCase) IsUnit() bool {
	return c.TypeName == ""
}

// IsUnit reports whether every case of the enum is a unit case.
func (e *Enum) IsUnit() bool {
	for _, c := range e.Cases {
		if !c.IsUnit() {
			return false
		}
	}
	return len(e.Cases) > 0
}
