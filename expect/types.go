package expect

import (
	"fmt"
	"strings"

	"github.com/teranos/sharpgen/syntax"
	"github.com/teranos/sharpgen/typecompare"
)

// typeMembers holds the lookups shared by classes, structs, records and
// interfaces. It reports through n rather than embedding the node so it
// can sit next to declared in one struct.
type typeMembers[E any] struct {
	n     *node
	owner E
	decl  *syntax.TypeDecl
	// memberAccess is the access a member has when none is written.
	memberAccess string
}

func (m *typeMembers[E]) init(n *node, owner E, decl *syntax.TypeDecl) {
	m.n = n
	m.owner = owner
	m.decl = decl
	m.memberAccess = "private"
	if decl.Kind == syntax.KindInterface {
		m.memberAccess = "public"
	}
}

func (m *typeMembers[E]) memberDesc(kind, name string) string {
	return fmt.Sprintf("%s %s.%s", kind, m.decl.Name, name)
}

func (m *typeMembers[E]) baseNames() []string {
	var out []string
	for _, b := range m.decl.BaseTypes {
		out = append(out, b.Type.String())
	}
	return out
}

// HasBaseType checks the first entry of the base list, which is where C#
// requires a base class to be written.
func (m *typeMembers[E]) HasBaseType(name string) E {
	m.n.r.t.Helper()
	ok := len(m.decl.BaseTypes) > 0 && typecompare.AreEquivalent(m.decl.BaseTypes[0].Type, name)
	m.n.check(ok, "base type "+name, "base list "+quoteList(m.baseNames()))
	return m.owner
}

// ImplementsInterface checks that name appears anywhere in the base list.
func (m *typeMembers[E]) ImplementsInterface(name string) E {
	m.n.r.t.Helper()
	ok := false
	for _, b := range m.decl.BaseTypes {
		if typecompare.AreEquivalent(b.Type, name) {
			ok = true
			break
		}
	}
	m.n.check(ok, "to implement "+name, "base list "+quoteList(m.baseNames()))
	return m.owner
}

// HasTypeParameter checks for a type parameter declared on the type.
func (m *typeMembers[E]) HasTypeParameter(name string) E {
	m.n.r.t.Helper()
	checkTypeParameter(m.n, m.decl.TypeParameters, name)
	return m.owner
}

// HasMemberCount counts members as written; `int a, b;` counts twice.
func (m *typeMembers[E]) HasMemberCount(n int) E {
	m.n.r.t.Helper()
	got := len(m.decl.Members)
	m.n.check(got == n, fmt.Sprintf("%d members", n), fmt.Sprintf("%d", got))
	return m.owner
}

// HasMethod locates the first method named name and runs fns against it.
func (m *typeMembers[E]) HasMethod(name string, fns ...func(*MethodExpectations)) E {
	m.n.r.t.Helper()
	if !m.n.active() {
		return m.owner
	}
	method := m.decl.Method(name)
	if method == nil {
		m.n.fail("a method named "+name, "methods "+quoteList(memberNames(m.decl.Methods())))
		return m.owner
	}
	run(newMethodExpectations(m.n.child(m.memberDesc("method", name)), method, m.memberAccess), fns)
	return m.owner
}

// HasMethodOverloads checks how many methods are named name.
func (m *typeMembers[E]) HasMethodOverloads(name string, n int) E {
	m.n.r.t.Helper()
	got := len(m.decl.MethodsNamed(name))
	m.n.check(got == n, fmt.Sprintf("%d overloads of %s", n, name), fmt.Sprintf("%d", got))
	return m.owner
}

// HasNoMethod checks that no method is named name.
func (m *typeMembers[E]) HasNoMethod(name string) E {
	m.n.r.t.Helper()
	m.n.check(m.decl.Method(name) == nil, "no method named "+name, "one")
	return m.owner
}

// HasProperty locates the property named name and runs fns against it.
// Indexers are named "this".
func (m *typeMembers[E]) HasProperty(name string, fns ...func(*PropertyExpectations)) E {
	m.n.r.t.Helper()
	if !m.n.active() {
		return m.owner
	}
	prop := m.decl.Property(name)
	if prop == nil {
		m.n.fail("a property named "+name, "properties "+quoteList(memberNames(m.decl.Properties())))
		return m.owner
	}
	run(newPropertyExpectations(m.n.child(m.memberDesc("property", name)), prop, m.memberAccess), fns)
	return m.owner
}

// HasNoProperty checks that no property is named name.
func (m *typeMembers[E]) HasNoProperty(name string) E {
	m.n.r.t.Helper()
	m.n.check(m.decl.Property(name) == nil, "no property named "+name, "one")
	return m.owner
}

// HasField locates the field named name and runs fns against it.
func (m *typeMembers[E]) HasField(name string, fns ...func(*FieldExpectations)) E {
	m.n.r.t.Helper()
	if !m.n.active() {
		return m.owner
	}
	f := m.decl.Field(name)
	if f == nil {
		m.n.fail("a field named "+name, "fields "+quoteList(memberNames(m.decl.Fields())))
		return m.owner
	}
	run(newFieldExpectations(m.n.child(m.memberDesc("field", name)), f, m.memberAccess), fns)
	return m.owner
}

// HasNoField checks that no field is named name.
func (m *typeMembers[E]) HasNoField(name string) E {
	m.n.r.t.Helper()
	m.n.check(m.decl.Field(name) == nil, "no field named "+name, "one")
	return m.owner
}

// HasConstructor locates the constructor whose parameter types match
// paramTypes position by position, compared as text without whitespace.
func (m *typeMembers[E]) HasConstructor(paramTypes []string, fns ...func(*ConstructorExpectations)) E {
	m.n.r.t.Helper()
	if !m.n.active() {
		return m.owner
	}
	var found *syntax.Constructor
	var seen []string
	for _, c := range m.decl.Constructors() {
		seen = append(seen, "("+strings.Join(parameterTypes(c.Parameters), ", ")+")")
		if found == nil && sameTypeText(c.Parameters, paramTypes) {
			found = c
		}
	}
	sig := "(" + strings.Join(paramTypes, ", ") + ")"
	if found == nil {
		m.n.fail("a constructor "+m.decl.Name+sig, "constructors "+quoteList(seen))
		return m.owner
	}
	run(newConstructorExpectations(m.n.child("constructor "+m.decl.Name+sig), found, m.memberAccess), fns)
	return m.owner
}

// HasConstructorCount counts declared constructors, static ones included.
func (m *typeMembers[E]) HasConstructorCount(n int) E {
	m.n.r.t.Helper()
	got := len(m.decl.Constructors())
	m.n.check(got == n, fmt.Sprintf("%d constructors", n), fmt.Sprintf("%d", got))
	return m.owner
}

func (m *typeMembers[E]) nested(kind syntax.DeclKind, name string) *syntax.TypeDecl {
	m.n.r.t.Helper()
	if !m.n.active() {
		return nil
	}
	t := m.decl.NestedType(kind, name)
	if t == nil {
		var names []string
		for _, nt := range m.decl.NestedTypes() {
			names = append(names, nt.Kind.String()+" "+nt.Name)
		}
		m.n.fail(fmt.Sprintf("a nested %s named %s", kind, name), "nested types "+quoteList(names))
	}
	return t
}

func (m *typeMembers[E]) nestedNode(t *syntax.TypeDecl) *node {
	return m.n.child(fmt.Sprintf("%s %s.%s", t.Kind, m.decl.Name, t.Name))
}

// HasNestedClass locates a nested class.
func (m *typeMembers[E]) HasNestedClass(name string, fns ...func(*ClassExpectations)) E {
	m.n.r.t.Helper()
	if t := m.nested(syntax.KindClass, name); t != nil {
		run(newClassExpectations(m.nestedNode(t), t, m.memberAccess), fns)
	}
	return m.owner
}

// HasNestedEnum locates a nested enum.
func (m *typeMembers[E]) HasNestedEnum(name string, fns ...func(*EnumExpectations)) E {
	m.n.r.t.Helper()
	if t := m.nested(syntax.KindEnum, name); t != nil {
		run(newEnumExpectations(m.nestedNode(t), t, m.memberAccess), fns)
	}
	return m.owner
}

// HasNestedInterface locates a nested interface.
func (m *typeMembers[E]) HasNestedInterface(name string, fns ...func(*InterfaceExpectations)) E {
	m.n.r.t.Helper()
	if t := m.nested(syntax.KindInterface, name); t != nil {
		run(newInterfaceExpectations(m.nestedNode(t), t, m.memberAccess), fns)
	}
	return m.owner
}

// HasNestedRecord locates a nested record.
func (m *typeMembers[E]) HasNestedRecord(name string, fns ...func(*RecordExpectations)) E {
	m.n.r.t.Helper()
	if t := m.nested(syntax.KindRecord, name); t != nil {
		run(newRecordExpectations(m.nestedNode(t), t, m.memberAccess), fns)
	}
	return m.owner
}

func memberNames[T syntax.Member](members []T) []string {
	var out []string
	for _, m := range members {
		out = append(out, m.MemberName())
	}
	return out
}

func checkTypeParameter(n *node, params []*syntax.TypeParameter, name string) {
	n.r.t.Helper()
	var names []string
	for _, tp := range params {
		if tp.Name == name {
			return
		}
		names = append(names, tp.Name)
	}
	n.check(false, "type parameter "+name, "type parameters "+quoteList(names))
}

// ClassExpectations checks a class or struct declaration.
type ClassExpectations struct {
	declared[*ClassExpectations]
	typeMembers[*ClassExpectations]
	decl *syntax.TypeDecl
}

func newClassExpectations(n *node, decl *syntax.TypeDecl, defaultAccess string) *ClassExpectations {
	e := &ClassExpectations{decl: decl}
	e.declared.init(n, e, decl.Modifiers, decl.Attributes, decl.Doc, defaultAccess)
	e.typeMembers.init(n, e, decl)
	return e
}

// Declaration returns the wrapped node.
func (e *ClassExpectations) Declaration() *syntax.TypeDecl { return e.decl }

// IsStruct checks the declaration uses the struct keyword.
func (e *ClassExpectations) IsStruct() *ClassExpectations {
	e.r.t.Helper()
	e.check(e.decl.Kind == syntax.KindStruct, "a struct", "a "+e.decl.Kind.String())
	return e
}

// HasPrimaryConstructorParameter checks a class or struct primary
// constructor parameter.
func (e *ClassExpectations) HasPrimaryConstructorParameter(name string, fns ...func(*ParameterExpectations)) *ClassExpectations {
	e.r.t.Helper()
	checkParameter(e.node, e.decl.Parameters, name, fns)
	return e
}

// InterfaceExpectations checks an interface declaration.
type InterfaceExpectations struct {
	declared[*InterfaceExpectations]
	typeMembers[*InterfaceExpectations]
	decl *syntax.TypeDecl
}

func newInterfaceExpectations(n *node, decl *syntax.TypeDecl, defaultAccess string) *InterfaceExpectations {
	e := &InterfaceExpectations{decl: decl}
	e.declared.init(n, e, decl.Modifiers, decl.Attributes, decl.Doc, defaultAccess)
	e.typeMembers.init(n, e, decl)
	return e
}

// Declaration returns the wrapped node.
func (e *InterfaceExpectations) Declaration() *syntax.TypeDecl { return e.decl }

// Extends checks that name appears in the base interface list.
func (e *InterfaceExpectations) Extends(name string) *InterfaceExpectations {
	e.r.t.Helper()
	return e.ImplementsInterface(name)
}

// HasVariantTypeParameter checks a type parameter declared in or out.
func (e *InterfaceExpectations) HasVariantTypeParameter(name, variance string) *InterfaceExpectations {
	e.r.t.Helper()
	for _, tp := range e.decl.TypeParameters {
		if tp.Name == name {
			e.check(tp.Variance == variance, fmt.Sprintf("type parameter %s to be %q", name, variance), quoted(tp.Variance))
			return e
		}
	}
	checkTypeParameter(e.node, e.decl.TypeParameters, name)
	return e
}

// RecordExpectations checks a record, record class or record struct.
type RecordExpectations struct {
	declared[*RecordExpectations]
	typeMembers[*RecordExpectations]
	decl *syntax.TypeDecl
}

func newRecordExpectations(n *node, decl *syntax.TypeDecl, defaultAccess string) *RecordExpectations {
	e := &RecordExpectations{decl: decl}
	e.declared.init(n, e, decl.Modifiers, decl.Attributes, decl.Doc, defaultAccess)
	e.typeMembers.init(n, e, decl)
	return e
}

// Declaration returns the wrapped node.
func (e *RecordExpectations) Declaration() *syntax.TypeDecl { return e.decl }

// IsRecordClass accepts `record class` and plain `record`.
func (e *RecordExpectations) IsRecordClass() *RecordExpectations {
	e.r.t.Helper()
	e.check(!e.decl.RecordStruct, "a record class", "a record struct")
	return e
}

// IsRecordStruct checks for `record struct`.
func (e *RecordExpectations) IsRecordStruct() *RecordExpectations {
	e.r.t.Helper()
	e.check(e.decl.RecordStruct, "a record struct", "a record class")
	return e
}

// IsReadOnly checks for `readonly record struct`.
func (e *RecordExpectations) IsReadOnly() *RecordExpectations {
	e.r.t.Helper()
	return e.HasModifier("readonly")
}

// HasPrimaryConstructorParameter locates a positional parameter.
func (e *RecordExpectations) HasPrimaryConstructorParameter(name string, fns ...func(*ParameterExpectations)) *RecordExpectations {
	e.r.t.Helper()
	checkParameter(e.node, e.decl.Parameters, name, fns)
	return e
}

// HasPrimaryConstructorParameterCount counts positional parameters.
func (e *RecordExpectations) HasPrimaryConstructorParameterCount(n int) *RecordExpectations {
	e.r.t.Helper()
	checkParameterCount(e.node, e.decl.Parameters, n)
	return e
}

// HasPrimaryConstructorParameterTypes compares positional parameter types
// in order.
func (e *RecordExpectations) HasPrimaryConstructorParameterTypes(types ...string) *RecordExpectations {
	e.r.t.Helper()
	checkParameterTypes(e.node, e.decl.Parameters, types)
	return e
}

// HasBaseRecordArguments checks the arguments passed to the base record.
func (e *RecordExpectations) HasBaseRecordArguments(args ...string) *RecordExpectations {
	e.r.t.Helper()
	if len(e.decl.BaseTypes) == 0 || !e.decl.BaseTypes[0].HasArgs {
		e.check(false, "base record arguments ("+strings.Join(args, ", ")+")", "no base record call")
		return e
	}
	got := e.decl.BaseTypes[0].Args
	e.check(sameArgs(got, args), "base record arguments ("+strings.Join(args, ", ")+")", "("+strings.Join(got, ", ")+")")
	return e
}
