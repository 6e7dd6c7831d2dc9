// Package schema groups the packages describing the XML Schema input
// language:
//
//   - [node]: classification of schema document elements
//   - [field]: builtin datatypes and their Go mapping
//
// The documents themselves are loaded by the compiler/load package.
package schema
