package gen

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/xsdgen/graph"
)

// Pascal converts a schema name to an exported Go identifier.
//
//	Pascal("purchaseOrder")  // PurchaseOrder
//	Pascal("xml:lang")       // XmlLang
//	Pascal("USAddress")      // USAddress
//	Pascal("1.5")            // N15
func Pascal(name string) string {
	s := inflect.Camelize(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name))
	switch {
	case s == "":
		return "Empty"
	case unicode.IsDigit([]rune(s)[0]):
		return "N" + s
	}
	return s
}

// FileName returns the name of the file holding the Go type name.
func FileName(name string) string {
	return cases.Lower(language.Und).String(name) + ".go"
}

// Scope qualifies the Go names of nested types. Go has no nested type
// scopes, so a subtype is named after its owner.
type Scope struct {
	Prefix string
}

// Qualify returns the Go name of the schema name within the scope. Names
// already starting with the prefix are not prefixed twice; the clashes this
// may cause are settled by the generator's name table.
func (s Scope) Qualify(name string) string {
	n := Pascal(name)
	if s.Prefix == "" || strings.HasPrefix(n, s.Prefix) {
		return n
	}
	return s.Prefix + n
}

// Child returns the scope of the types nested in the type named goName.
func (s Scope) Child(goName string) Scope {
	return Scope{Prefix: goName}
}

// KindSuffix names the discriminator type of an enum, and prefixes the
// names of its constants.
const KindSuffix = "Kind"

// typeNames assigns a unique Go name to every type of the package:
// top-level types first, in declaration order, then global element
// aliases, then nested types, depth first. A name already taken gets a
// numeric suffix. An enum also takes the name of its discriminator type.
type typeNames struct {
	byEntity map[graph.Entity]string
	taken    map[string]bool
}

func newTypeNames(types []graph.Entity) *typeNames {
	n := &typeNames{
		byEntity: make(map[graph.Entity]string),
		taken:    make(map[string]bool),
	}
	for _, e := range types {
		if isType(e) {
			n.assign(e, Pascal(e.EntityName()))
		}
	}
	for _, e := range types {
		if a, ok := e.(*graph.Alias); ok {
			n.taken[Pascal(a.Name)] = true
		}
	}
	for _, e := range types {
		if name, ok := n.byEntity[e]; ok {
			n.nested(e, name)
		}
	}
	return n
}

func (n *typeNames) assign(e graph.Entity, candidate string) string {
	name := candidate
	for i := 2; n.clash(e, name); i++ {
		name = candidate + strconv.Itoa(i)
	}
	n.taken[name] = true
	if _, ok := e.(*graph.Enum); ok {
		n.taken[name+KindSuffix] = true
	}
	n.byEntity[e] = name
	return name
}

func (n *typeNames) clash(e graph.Entity, name string) bool {
	if n.taken[name] {
		return true
	}
	_, ok := e.(*graph.Enum)
	return ok && n.taken[name+KindSuffix]
}

func (n *typeNames) nested(e graph.Entity, name string) {
	scope := Scope{}.Child(name)
	for _, sub := range ownedTypes(e) {
		if _, ok := n.byEntity[sub]; ok || !isType(sub) {
			continue
		}
		n.nested(sub, n.assign(sub, scope.Qualify(sub.EntityName())))
	}
}

func isType(e graph.Entity) bool {
	switch e.(type) {
	case *graph.Struct, *graph.TupleStruct, *graph.Enum:
		return true
	}
	return false
}

// ownedTypes returns the types declared inside e, in rendering order.
func ownedTypes(e graph.Entity) []graph.Entity {
	var subs []graph.Entity
	switch e := e.(type) {
	case *graph.Struct:
		subs = append(subs, e.Subtypes...)
		for _, f := range e.Fields {
			subs = append(subs, f.Subtypes...)
		}
	case *graph.TupleStruct:
		subs = append(subs, e.Subtypes...)
	case *graph.Enum:
		subs = append(subs, e.Subtypes...)
		for _, c := range e.Cases {
			subs = append(subs, c.Subtypes...)
		}
	}
	return subs
}
