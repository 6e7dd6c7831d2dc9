package field

import "strings"

// A Type represents the Go type a builtin datatype decodes to.
type Type uint8

// List of Go types used by builtin datatypes.
const (
	TypeInvalid Type = iota
	TypeString
	TypeBool
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeTime
	TypeBytes
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeString:  "string",
	TypeBool:    "bool",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeTime:    "time.Time",
	TypeBytes:   "[]byte",
}

// String returns the Go spelling of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is known.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t <= TypeFloat64
}

// TypeInfo holds the Go mapping of one builtin datatype.
type TypeInfo struct {
	Type    Type
	Name    string // XSD local name, e.g. "dateTime"
	Ident   string // Go identifier, e.g. "string" or "Time"
	PkgPath string // import path of Ident, empty for predeclared types
	Parser  string // xsdgen parse function, e.g. "ParseDateTime"
}

// Slice reports whether the Go type is a byte slice.
func (ti TypeInfo) Slice() bool {
	return ti.Type == TypeBytes
}

func info(t Type, name, parser string) *TypeInfo {
	ti := &TypeInfo{Type: t, Name: name, Ident: t.String(), Parser: parser}
	switch t {
	case TypeTime:
		ti.Ident, ti.PkgPath = "Time", "time"
	case TypeBytes:
		ti.Ident = "byte"
	}
	return ti
}

var builtins = func() map[string]*TypeInfo {
	m := make(map[string]*TypeInfo)
	add := func(t Type, parser string, names ...string) {
		for _, name := range names {
			m[name] = info(t, name, parser)
		}
	}
	add(TypeString, "ParseString", "string", "normalizedString", "anyType", "anySimpleType")
	add(TypeString, "ParseToken", "token", "language", "Name", "NCName", "NMTOKEN", "NMTOKENS",
		"ID", "IDREF", "IDREFS", "ENTITY", "ENTITIES", "QName", "NOTATION", "anyURI", "duration",
		"gYear", "gYearMonth", "gMonth", "gMonthDay", "gDay")
	add(TypeBool, "ParseBool", "boolean")
	add(TypeFloat64, "ParseFloat64", "decimal", "double")
	add(TypeFloat32, "ParseFloat32", "float")
	add(TypeInt64, "ParseInt", "integer", "long", "nonPositiveInteger", "negativeInteger")
	add(TypeInt32, "ParseInt32", "int")
	add(TypeInt16, "ParseInt16", "short")
	add(TypeInt8, "ParseInt8", "byte")
	add(TypeUint64, "ParseUint", "nonNegativeInteger", "positiveInteger", "unsignedLong")
	add(TypeUint32, "ParseUint32", "unsignedInt")
	add(TypeUint16, "ParseUint16", "unsignedShort")
	add(TypeUint8, "ParseUint8", "unsignedByte")
	add(TypeTime, "ParseDateTime", "dateTime")
	add(TypeTime, "ParseDate", "date")
	add(TypeTime, "ParseTime", "time")
	add(TypeBytes, "ParseBase64", "base64Binary")
	add(TypeBytes, "ParseHex", "hexBinary")
	return m
}()

// Lookup returns the mapping of a builtin datatype. The name may carry the
// "xs:" prefix produced by reference normalization, or be a bare local name.
func Lookup(name string) (*TypeInfo, bool) {
	ti, ok := builtins[strings.TrimPrefix(name, "xs:")]
	return ti, ok
}

// IsBuiltin reports whether name is a normalized reference to a builtin
// datatype.
func IsBuiltin(name string) bool {
	if !strings.HasPrefix(name, "xs:") {
		return false
	}
	_, ok := builtins[name[3:]]
	return ok
}

// IsBuiltinName reports whether local is the name of a builtin datatype.
func IsBuiltinName(local string) bool {
	_, ok := builtins[local]
	return ok
}
