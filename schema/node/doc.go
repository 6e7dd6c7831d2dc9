// Package node classifies the elements of a parsed XML Schema document.
//
// Classify maps an element to its construct Kind. Node wraps an element
// with its ancestors so that builders can name anonymous constructs after
// the nearest named ancestor, read occurrence bounds and documentation, and
// normalize QName references.
package node
