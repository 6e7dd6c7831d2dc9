package xsdgen

import (
	"encoding/base64"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"
)

// Parsers for XSD builtin datatypes. Generated code passes them to Leaf,
// Value and the Pop helpers.

// ParseString returns s unchanged (xs:string preserves whitespace).
func ParseString(s string) (string, error) {
	return s, nil
}

// ParseToken collapses whitespace (xs:token and its derivations).
func ParseToken(s string) (string, error) {
	return strings.Join(strings.Fields(s), " "), nil
}

// ParseBool parses xs:boolean ("true", "false", "1", "0").
func ParseBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, NewShapeError("xs:boolean", s, nil)
}

// ParseInt parses xs:integer and xs:long.
func ParseInt(s string) (int64, error) {
	return parseSigned[int64](s, 64, "xs:long")
}

// ParseInt32 parses xs:int.
func ParseInt32(s string) (int32, error) {
	return parseSigned[int32](s, 32, "xs:int")
}

// ParseInt16 parses xs:short.
func ParseInt16(s string) (int16, error) {
	return parseSigned[int16](s, 16, "xs:short")
}

// ParseInt8 parses xs:byte.
func ParseInt8(s string) (int8, error) {
	return parseSigned[int8](s, 8, "xs:byte")
}

// ParseUint parses xs:unsignedLong and xs:nonNegativeInteger.
func ParseUint(s string) (uint64, error) {
	return parseUnsigned[uint64](s, 64, "xs:unsignedLong")
}

// ParseUint32 parses xs:unsignedInt.
func ParseUint32(s string) (uint32, error) {
	return parseUnsigned[uint32](s, 32, "xs:unsignedInt")
}

// ParseUint16 parses xs:unsignedShort.
func ParseUint16(s string) (uint16, error) {
	return parseUnsigned[uint16](s, 16, "xs:unsignedShort")
}

// ParseUint8 parses xs:unsignedByte.
func ParseUint8(s string) (uint8, error) {
	return parseUnsigned[uint8](s, 8, "xs:unsignedByte")
}

// ParseFloat64 parses xs:double and xs:decimal, including INF, -INF and NaN.
func ParseFloat64(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, NewShapeError("xs:double", s, err)
	}
	return v, nil
}

// ParseFloat32 parses xs:float.
func ParseFloat32(s string) (float32, error) {
	v, err := ParseFloat64(s)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

var (
	dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"}
	dateLayouts     = []string{"2006-01-02Z07:00", "2006-01-02"}
	timeLayouts     = []string{"15:04:05.999999999Z07:00", "15:04:05.999999999"}
)

// ParseDateTime parses xs:dateTime with or without a zone offset.
func ParseDateTime(s string) (time.Time, error) {
	return parseTime(s, dateTimeLayouts, "xs:dateTime")
}

// ParseDate parses xs:date with or without a zone offset.
func ParseDate(s string) (time.Time, error) {
	return parseTime(s, dateLayouts, "xs:date")
}

// ParseTime parses xs:time with or without a zone offset.
func ParseTime(s string) (time.Time, error) {
	return parseTime(s, timeLayouts, "xs:time")
}

// ParseBase64 parses xs:base64Binary.
func ParseBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, NewShapeError("xs:base64Binary", s, err)
	}
	return b, nil
}

// ParseHex parses xs:hexBinary.
func ParseHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, NewShapeError("xs:hexBinary", s, err)
	}
	return b, nil
}

func parseSigned[T ~int8 | ~int16 | ~int32 | ~int64](s string, bits int, typ string) (T, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, bits)
	if err != nil {
		return 0, NewShapeError(typ, s, err)
	}
	return T(v), nil
}

func parseUnsigned[T ~uint8 | ~uint16 | ~uint32 | ~uint64](s string, bits int, typ string) (T, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "+"), 10, bits)
	if err != nil {
		return 0, NewShapeError(typ, s, err)
	}
	return T(v), nil
}

func parseTime(s string, layouts []string, typ string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range layouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewShapeError(typ, s, err)
}
