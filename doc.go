// Package xsdgen is the runtime support imported by code generated from an
// XML Schema.
//
// Generated types implement Decoder. Their DecodeXML methods read from a
// Cursor, an O(1)-clonable position over a parsed document, using the
// generic helpers in this package:
//
//	PopChild / PopChildren / MaybePopChild / PopIndirectChild
//	PopAttribute / PopAttributes / MaybePopAttribute
//	Value / ListValue / ExpectValue
//	Commit / FlattenMany / FlattenMaybe / DecodeUnique
//
// Choices and unions decode speculatively: DecodeUnique attempts every case
// on its own clone of the cursor and commits only when exactly one case
// matched.
//
// Usage:
//
//	order, err := xsdgen.Unmarshal[po.PurchaseOrder](data, "purchaseOrder")
//	if xsdgen.IsNoUniqueMatch(err) {
//		// the document is ambiguous for a choice in the schema
//	}
package xsdgen
