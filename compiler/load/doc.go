// Package load builds the entity graph of an XML Schema document.
//
// Every schema element is classified with package node and handed to the
// builder of its kind, which returns one graph.Entity. Anonymous types are
// named after their nearest named ancestor, nested particles are held by
// flattened fields or cases, and references to groups, attribute groups
// and base types are kept pending for the resolver in package gen.
package load
