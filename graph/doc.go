// Package graph provides the semantic type graph compiled from an XML Schema.
//
// The graph is a forest of entities. Every entity owns its name, an optional
// comment and its nested subtypes:
//
//	*Struct       product type (complex types, sequences, groups)
//	*StructField  one member of a Struct
//	*TupleStruct  named wrapper over one type (restrictions, lists)
//	*Enum         sum type (choices, unions, enumerations)
//	*EnumCase     one alternative of an Enum
//	*Alias        named reference, pending group references
//	*Import       imported or included document
//
// The only non-owning relation is a type name held by a field, case or
// alias. Names are resolved by the compiler against an index built for a
// single resolution run.
//
// Loaded graphs are never mutated by later stages; the resolver works on a
// deep copy obtained with Clone or CloneAll.
package graph
