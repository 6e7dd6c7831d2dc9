package gen

import (
	"io"
	"log/slog"
	"slices"

	"github.com/syssam/xsdgen/graph"
	"github.com/syssam/xsdgen/schema/field"
	"github.com/syssam/xsdgen/schema/node"
)

// attrSuffix is appended to attribute fields sharing their name with an
// element field of the same struct.
const attrSuffix = "_attr"

// valueField is the name of the field holding the text of a simple base.
const valueField = "value"

// Resolver expands base types, group and attribute-group references of a
// loaded entity forest.
type Resolver struct {
	Logger *slog.Logger
}

// Resolve expands the references of types against the given global groups
// and attribute groups with a default Resolver.
func Resolve(types, groups, attrGroups []graph.Entity) ([]graph.Entity, error) {
	return (&Resolver{}).Resolve(types, groups, attrGroups)
}

// Resolve returns a resolved deep copy of types. In the result no struct
// holds a base marker field or a pending group or attribute-group
// reference, and no enum case holds a group alias. Groups referenced with
// a cardinality, or from a choice, are hoisted to the top level after the
// declared types. Resolving a resolved forest returns an equal forest.
//
// The returned error is an *AggregateError when more than one type failed.
func (r *Resolver) Resolve(types, groups, attrGroups []graph.Entity) ([]graph.Entity, error) {
	rs := newResolution(r.Logger, graph.CloneAll(types), graph.CloneAll(groups), graph.CloneAll(attrGroups))
	var errs []error
	for _, e := range rs.types {
		if err := rs.resolve(e); err != nil {
			errs = append(errs, err)
		}
	}
	if err := NewAggregateError(errs...); err != nil {
		return nil, err
	}
	return append(rs.types, rs.hoisted...), nil
}

// resolution is the state of one Resolve call.
type resolution struct {
	logger     *slog.Logger
	types      []graph.Entity
	index      map[string]graph.Entity
	groups     map[string]*graph.Struct
	attrGroups map[string]*graph.Struct

	visiting map[*graph.Struct]bool
	done     map[*graph.Struct]bool
	stack    []string

	hoisted []graph.Entity
	names   map[string]bool
}

func newResolution(logger *slog.Logger, types, groups, attrGroups []graph.Entity) *resolution {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rs := &resolution{
		logger:     logger,
		types:      types,
		index:      make(map[string]graph.Entity, len(types)),
		groups:     structIndex(groups),
		attrGroups: structIndex(attrGroups),
		visiting:   make(map[*graph.Struct]bool),
		done:       make(map[*graph.Struct]bool),
		names:      make(map[string]bool, len(types)),
	}
	for _, e := range types {
		if _, ok := e.(*graph.Import); ok {
			continue
		}
		indexEntity(rs.index, e)
		rs.names[e.EntityName()] = true
	}
	return rs
}

// indexEntity adds the top-level entity e to the name index m. Types are
// found ahead of global element aliases sharing their name; otherwise the
// first declaration wins.
func indexEntity(m map[string]graph.Entity, e graph.Entity) {
	name := e.EntityName()
	prev, ok := m[name]
	if !ok {
		m[name] = e
		return
	}
	_, prevAlias := prev.(*graph.Alias)
	_, alias := e.(*graph.Alias)
	if prevAlias && !alias {
		m[name] = e
	}
}

func structIndex(es []graph.Entity) map[string]*graph.Struct {
	m := make(map[string]*graph.Struct, len(es))
	for _, e := range es {
		if st, ok := e.(*graph.Struct); ok {
			m[st.Name] = st
		}
	}
	return m
}

// resolve expands every struct owned by the top-level entity e.
func (rs *resolution) resolve(e graph.Entity) error {
	if st, ok := e.(*graph.Struct); ok {
		return rs.extend(st, RefBase)
	}
	for _, st := range graph.NestedStructs(e) {
		if err := rs.extend(st, RefBase); err != nil {
			return err
		}
	}
	return rs.resolveCases(e)
}

// extend resolves st in place, nested structs first. kind is the kind of
// reference that led to st, used to report cycles.
func (rs *resolution) extend(st *graph.Struct, kind RefKind) error {
	if rs.done[st] {
		return nil
	}
	if rs.visiting[st] {
		path := append(slices.Clone(rs.stack[slices.Index(rs.stack, st.Name):]), st.Name)
		return &CycleError{Kind: kind, Path: path}
	}
	rs.visiting[st] = true
	rs.stack = append(rs.stack, st.Name)
	defer func() {
		rs.stack = rs.stack[:len(rs.stack)-1]
		delete(rs.visiting, st)
	}()

	for _, nested := range graph.NestedStructs(st) {
		if err := rs.extend(nested, kind); err != nil {
			return err
		}
	}
	fields, err := rs.expandBase(st)
	if err != nil {
		return err
	}
	if fields, err = rs.expandGroups(st, fields); err != nil {
		return err
	}
	if fields, err = rs.expandAttributeGroups(st, fields); err != nil {
		return err
	}
	st.Fields = renameAttributes(fields)
	st.Groups, st.AttributeGroups = nil, nil
	if err := rs.resolveCases(st); err != nil {
		return err
	}
	rs.done[st] = true
	return nil
}

// expandBase replaces the base marker of st by the fields of its base.
func (rs *resolution) expandBase(st *graph.Struct) ([]*graph.StructField, error) {
	own := make(map[string]bool, len(st.Fields))
	for _, f := range st.Fields {
		if f.Name != graph.BaseField {
			own[f.Name] = true
		}
	}
	fields := make([]*graph.StructField, 0, len(st.Fields))
	for _, f := range st.Fields {
		if f.Name != graph.BaseField {
			fields = append(fields, f)
			continue
		}
		base, err := rs.baseFields(st, f.TypeName)
		if err != nil {
			return nil, err
		}
		for _, bf := range base {
			if !own[bf.Name] && !hasField(fields, bf.Name) {
				fields = append(fields, bf)
			}
		}
	}
	return fields, nil
}

// baseFields returns the fields contributed by the base type ref: a copy
// of the fields of a struct base, or a single value field holding the text
// of a simple base.
func (rs *resolution) baseFields(st *graph.Struct, ref string) ([]*graph.StructField, error) {
	if ref == "xs:anyType" {
		return nil, nil
	}
	if field.IsBuiltin(ref) {
		return []*graph.StructField{simpleValue(ref)}, nil
	}
	target, ok := rs.index[node.Local(ref)]
	if !ok {
		return nil, NewResolveError(st.Name, ref, RefBase)
	}
	switch target := target.(type) {
	case *graph.Struct:
		if err := rs.extend(target, RefBase); err != nil {
			return nil, err
		}
		fields := make([]*graph.StructField, len(target.Fields))
		for i, f := range target.Fields {
			fields[i] = f.Clone()
		}
		return fields, nil
	case *graph.TupleStruct, *graph.Enum, *graph.Alias:
		return []*graph.StructField{simpleValue(ref)}, nil
	default:
		return nil, NewResolveError(st.Name, ref, RefBase)
	}
}

func simpleValue(ref string) *graph.StructField {
	return &graph.StructField{
		Name:      valueField,
		TypeName:  ref,
		Modifiers: graph.Modifiers{graph.Flatten},
		Source:    graph.SourceElement,
	}
}

// expandGroups replaces the group markers of st, in place, by the fields
// of the referenced groups. A group referenced without cardinality is
// spliced; one referenced with a cardinality becomes a single flattened
// field and is hoisted. References without a marker are expanded after
// the other fields. Fields declared by st win over group fields.
func (rs *resolution) expandGroups(st *graph.Struct, fields []*graph.StructField) ([]*graph.StructField, error) {
	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Source != graph.SourceGroup {
			declared[f.Name] = true
		}
	}
	out := make([]*graph.StructField, 0, len(fields))
	add := func(a *graph.Alias) error {
		gfs, err := rs.groupFields(st, a)
		if err != nil {
			return err
		}
		for _, gf := range gfs {
			if !declared[gf.Name] && !hasField(out, gf.Name) {
				out = append(out, gf)
			}
		}
		return nil
	}
	next := 0
	for _, f := range fields {
		if f.Source != graph.SourceGroup {
			out = append(out, f)
			continue
		}
		a := groupAlias(f)
		if next < len(st.Groups) {
			a = st.Groups[next]
		}
		next++
		if err := add(a); err != nil {
			return nil, err
		}
	}
	for ; next < len(st.Groups); next++ {
		if err := add(st.Groups[next]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// groupFields returns the fields the reference a contributes to st.
func (rs *resolution) groupFields(st *graph.Struct, a *graph.Alias) ([]*graph.StructField, error) {
	g, err := rs.group(st, a)
	if err != nil {
		return nil, err
	}
	if a.Modifiers.IsNone() {
		fields := make([]*graph.StructField, 0, len(g.Fields))
		for _, gf := range g.Fields {
			fields = append(fields, gf.Clone())
		}
		st.Subtypes = append(st.Subtypes, graph.CloneAll(g.Subtypes)...)
		return fields, nil
	}
	rs.hoist(g)
	return []*graph.StructField{{
		Name:      a.Name,
		TypeName:  g.Name,
		Comment:   a.Comment,
		Modifiers: a.Modifiers.With(graph.Flatten),
		Source:    graph.SourceSequence,
	}}, nil
}

// groupAlias rebuilds the reference held by a marker field.
func groupAlias(f *graph.StructField) *graph.Alias {
	return &graph.Alias{Name: node.Local(f.TypeName), Original: f.TypeName, Modifiers: f.Modifiers}
}

// group returns the extended global group referenced by a.
func (rs *resolution) group(st *graph.Struct, a *graph.Alias) (*graph.Struct, error) {
	g, ok := rs.groups[node.Local(a.Original)]
	if !ok {
		return nil, NewResolveError(st.Name, a.Original, RefGroup)
	}
	if err := rs.extend(g, RefGroup); err != nil {
		return nil, err
	}
	return g, nil
}

// expandAttributeGroups appends the attributes of referenced attribute
// groups. An attribute already declared by the struct is kept.
func (rs *resolution) expandAttributeGroups(st *graph.Struct, fields []*graph.StructField) ([]*graph.StructField, error) {
	for _, a := range st.AttributeGroups {
		ag, ok := rs.attrGroups[node.Local(a.Original)]
		if !ok {
			return nil, NewResolveError(st.Name, a.Original, RefAttributeGroup)
		}
		if err := rs.extend(ag, RefAttributeGroup); err != nil {
			return nil, err
		}
		for _, af := range ag.Fields {
			if hasAttribute(fields, af.XMLName) {
				continue
			}
			fields = append(fields, af.Clone())
		}
	}
	return fields, nil
}

// renameAttributes suffixes the attribute fields whose name is also used
// by an element field.
func renameAttributes(fields []*graph.StructField) []*graph.StructField {
	elements := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Source != graph.SourceAttribute {
			elements[f.Name] = true
		}
	}
	for _, f := range fields {
		if f.Source == graph.SourceAttribute && elements[f.Name] {
			f.Name += attrSuffix
		}
	}
	return fields
}

// resolveCases replaces the group aliases held by enum cases below e with
// a reference to the hoisted group.
func (rs *resolution) resolveCases(e graph.Entity) error {
	var owner string
	if st, ok := e.(*graph.Struct); ok {
		owner = st.Name
	}
	return graph.Walk(e, func(e graph.Entity) error {
		switch e := e.(type) {
		case *graph.Struct:
			if owner == "" {
				owner = e.Name
			}
		case *graph.Enum:
			if owner == "" {
				owner = e.Name
			}
			for _, c := range e.Cases {
				if err := rs.resolveCase(owner, c); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (rs *resolution) resolveCase(owner string, c *graph.EnumCase) error {
	var rest []graph.Entity
	for _, sub := range c.Subtypes {
		a, ok := sub.(*graph.Alias)
		if !ok {
			rest = append(rest, sub)
			continue
		}
		g, ok := rs.groups[node.Local(a.Original)]
		if !ok {
			return NewResolveError(owner, a.Original, RefGroup)
		}
		if err := rs.extend(g, RefGroup); err != nil {
			return err
		}
		c.TypeName = g.Name
		rs.hoist(g)
	}
	c.Subtypes = rest
	return nil
}

// hoist adds a copy of the group g to the top level, once per name.
func (rs *resolution) hoist(g *graph.Struct) {
	if rs.names[g.Name] {
		rs.logger.Debug("skipping duplicate hoisted group", "name", g.Name)
		return
	}
	rs.names[g.Name] = true
	rs.hoisted = append(rs.hoisted, g.Clone())
	rs.logger.Debug("hoisted group", "name", g.Name)
}

func hasField(fields []*graph.StructField, name string) bool {
	return slices.ContainsFunc(fields, func(f *graph.StructField) bool { return f.Name == name })
}

func hasAttribute(fields []*graph.StructField, xmlName string) bool {
	return slices.ContainsFunc(fields, func(f *graph.StructField) bool {
		return f.Source == graph.SourceAttribute && f.XMLName == xmlName
	})
}
