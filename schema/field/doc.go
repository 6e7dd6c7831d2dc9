// Package field describes the builtin datatypes of XML Schema and how they
// map onto Go types and the runtime parsers of the xsdgen package.
//
//	info, ok := field.Lookup("xs:dateTime")
//	// info.Ident == "Time", info.PkgPath == "time", info.Parser == "ParseDateTime"
package field
