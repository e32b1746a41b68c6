package expect

import (
	"fmt"
	"strings"

	"github.com/teranos/sharpgen/syntax"
)

// scope holds the lookups shared by a file and a namespace. Braced and
// file-scoped namespaces look the same from here.
type scope[E any] struct {
	*node
	self       E
	types      []*syntax.TypeDecl
	nested     map[*syntax.TypeDecl]bool
	usings     []*syntax.Using
	namespaces []*namedNamespace
	fileScoped bool
}

// namedNamespace is a namespace with its dotted name relative to the scope
// that holds it: namespace A { namespace B { } } yields A and A.B.
type namedNamespace struct {
	name string
	ns   *syntax.Namespace
}

func flattenNamespaces(prefix string, nss []*syntax.Namespace, out []*namedNamespace) []*namedNamespace {
	for _, ns := range nss {
		name := ns.Name
		if prefix != "" {
			name = prefix + "." + ns.Name
		}
		out = append(out, &namedNamespace{name: name, ns: ns})
		out = flattenNamespaces(name, ns.Namespaces, out)
	}
	return out
}

// typesIn collects every type declared in the namespaces, nested ones
// included, and marks which are nested in another type.
func typesIn(direct []*syntax.TypeDecl, nss []*syntax.Namespace) ([]*syntax.TypeDecl, map[*syntax.TypeDecl]bool) {
	var out []*syntax.TypeDecl
	nested := map[*syntax.TypeDecl]bool{}
	var visit func(ts []*syntax.TypeDecl, inner bool)
	visit = func(ts []*syntax.TypeDecl, inner bool) {
		for _, t := range ts {
			out = append(out, t)
			if inner {
				nested[t] = true
			}
			visit(t.NestedTypes(), true)
		}
	}
	visit(direct, false)
	for _, nn := range flattenNamespaces("", nss, nil) {
		visit(nn.ns.Types, false)
	}
	return out, nested
}

func usingsIn(direct []*syntax.Using, nss []*syntax.Namespace) []*syntax.Using {
	out := append([]*syntax.Using(nil), direct...)
	for _, nn := range flattenNamespaces("", nss, nil) {
		out = append(out, nn.ns.Usings...)
	}
	return out
}

func (s *scope[E]) findType(kind syntax.DeclKind, name string) *syntax.TypeDecl {
	s.r.t.Helper()
	if !s.active() {
		return nil
	}
	var names []string
	for _, t := range s.types {
		if t.Kind == kind && t.Name == name {
			return t
		}
		if t.Kind == kind {
			names = append(names, t.Name)
		}
	}
	s.fail(fmt.Sprintf("%s named %s", withArticle(kind.String()), name), plural(kind.String())+" "+quoteList(names))
	return nil
}

func (s *scope[E]) typeNode(t *syntax.TypeDecl) *node {
	return s.child(t.Kind.String() + " " + t.Name)
}

// defaultAccess is internal for top-level types and private for nested ones.
func (s *scope[E]) defaultAccess(t *syntax.TypeDecl) string {
	if s.nested[t] {
		return "private"
	}
	return "internal"
}

// HasClass locates a class anywhere in the scope, nested types included.
func (s *scope[E]) HasClass(name string, fns ...func(*ClassExpectations)) E {
	s.r.t.Helper()
	if t := s.findType(syntax.KindClass, name); t != nil {
		run(newClassExpectations(s.typeNode(t), t, s.defaultAccess(t)), fns)
	}
	return s.self
}

// HasStruct locates a struct.
func (s *scope[E]) HasStruct(name string, fns ...func(*ClassExpectations)) E {
	s.r.t.Helper()
	if t := s.findType(syntax.KindStruct, name); t != nil {
		run(newClassExpectations(s.typeNode(t), t, s.defaultAccess(t)), fns)
	}
	return s.self
}

// HasInterface locates an interface.
func (s *scope[E]) HasInterface(name string, fns ...func(*InterfaceExpectations)) E {
	s.r.t.Helper()
	if t := s.findType(syntax.KindInterface, name); t != nil {
		run(newInterfaceExpectations(s.typeNode(t), t, s.defaultAccess(t)), fns)
	}
	return s.self
}

// HasEnum locates an enum.
func (s *scope[E]) HasEnum(name string, fns ...func(*EnumExpectations)) E {
	s.r.t.Helper()
	if t := s.findType(syntax.KindEnum, name); t != nil {
		run(newEnumExpectations(s.typeNode(t), t, s.defaultAccess(t)), fns)
	}
	return s.self
}

// HasRecord locates a record, record class or record struct.
func (s *scope[E]) HasRecord(name string, fns ...func(*RecordExpectations)) E {
	s.r.t.Helper()
	if t := s.findType(syntax.KindRecord, name); t != nil {
		run(newRecordExpectations(s.typeNode(t), t, s.defaultAccess(t)), fns)
	}
	return s.self
}

// HasDelegate checks a delegate declaration exists.
func (s *scope[E]) HasDelegate(name string) E {
	s.r.t.Helper()
	s.findType(syntax.KindDelegate, name)
	return s.self
}

// HasNoType checks nothing in scope is named name.
func (s *scope[E]) HasNoType(name string) E {
	s.r.t.Helper()
	for _, t := range s.types {
		if t.Name == name {
			s.check(false, "no type named "+name, "a "+t.Kind.String())
			break
		}
	}
	return s.self
}

// HasTypeCount counts every type in scope, nested ones included.
func (s *scope[E]) HasTypeCount(n int) E {
	s.r.t.Helper()
	s.check(len(s.types) == n, fmt.Sprintf("%d types", n), fmt.Sprintf("%d", len(s.types)))
	return s.self
}

// HasNamespace locates a namespace by dotted name. Nested braced
// namespaces are addressed by their joined name.
func (s *scope[E]) HasNamespace(name string, fns ...func(*NamespaceExpectations)) E {
	s.r.t.Helper()
	if !s.active() {
		return s.self
	}
	var names []string
	for _, nn := range s.namespaces {
		if nn.name == name {
			run(newNamespaceExpectations(s.child("namespace "+nn.name), nn.ns), fns)
			return s.self
		}
		names = append(names, nn.name)
	}
	s.fail("a namespace named "+name, "namespaces "+quoteList(names))
	return s.self
}

// HasUsing checks a using directive. The leading `using`, `global` and the
// trailing `;` are optional in the argument.
func (s *scope[E]) HasUsing(directive string) E {
	s.r.t.Helper()
	want := normalizeUsing(directive)
	var seen []string
	for _, u := range s.usings {
		if normalizeUsing(u.Text()) == want {
			return s.self
		}
		seen = append(seen, u.Text())
	}
	s.check(false, "using "+want, "usings "+quoteList(seen))
	return s.self
}

// HasNoUsing checks a using directive is absent.
func (s *scope[E]) HasNoUsing(directive string) E {
	s.r.t.Helper()
	want := normalizeUsing(directive)
	for _, u := range s.usings {
		if normalizeUsing(u.Text()) == want {
			s.check(false, "no using "+want, "one")
			break
		}
	}
	return s.self
}

// IsFileScoped checks for a `namespace X;` declaration.
func (s *scope[E]) IsFileScoped() E {
	s.r.t.Helper()
	s.check(s.fileScoped, "a file-scoped namespace", "a braced namespace or none")
	return s.self
}

func withArticle(word string) string {
	if strings.IndexByte("aeiou", word[0]) >= 0 {
		return "an " + word
	}
	return "a " + word
}

func plural(word string) string {
	if strings.HasSuffix(word, "s") {
		return word + "es"
	}
	return word + "s"
}

func normalizeUsing(directive string) string {
	d := strings.TrimSpace(directive)
	d = strings.TrimSpace(strings.TrimSuffix(d, ";"))
	d = strings.TrimSpace(strings.TrimPrefix(d, "global "))
	if strings.HasPrefix(d, "using ") {
		d = d[len("using "):]
	}
	return strings.Join(strings.Fields(d), " ")
}

// SyntaxTreeExpectations checks a whole source file.
type SyntaxTreeExpectations struct {
	scope[*SyntaxTreeExpectations]
	file *syntax.File
}

func newSyntaxTreeExpectations(n *node, f *syntax.File) *SyntaxTreeExpectations {
	e := &SyntaxTreeExpectations{file: f}
	types, nested := typesIn(f.Types, f.Namespaces)
	e.scope = scope[*SyntaxTreeExpectations]{
		node:       n,
		self:       e,
		types:      types,
		nested:     nested,
		usings:     usingsIn(f.Usings, f.Namespaces),
		namespaces: flattenNamespaces("", f.Namespaces, nil),
		fileScoped: f.FileScopedNamespace() != nil,
	}
	return e
}

// File returns the wrapped tree.
func (e *SyntaxTreeExpectations) File() *syntax.File { return e.file }

// HasAssemblyAttribute checks an [assembly: ...] attribute.
func (e *SyntaxTreeExpectations) HasAssemblyAttribute(name string, args ...string) *SyntaxTreeExpectations {
	e.r.t.Helper()
	checkAttribute(e.node, e.file.Attributes, name, args)
	return e
}

// HasDirective checks for a preprocessor line such as "#nullable enable".
func (e *SyntaxTreeExpectations) HasDirective(directive string) *SyntaxTreeExpectations {
	e.r.t.Helper()
	want := strings.Join(strings.Fields(directive), " ")
	for _, d := range e.file.Directives {
		if strings.Join(strings.Fields(d), " ") == want {
			return e
		}
	}
	e.check(false, "directive "+want, "directives "+quoteList(e.file.Directives))
	return e
}

// NamespaceExpectations checks one namespace and everything inside it.
type NamespaceExpectations struct {
	scope[*NamespaceExpectations]
	ns *syntax.Namespace
}

func newNamespaceExpectations(n *node, ns *syntax.Namespace) *NamespaceExpectations {
	e := &NamespaceExpectations{ns: ns}
	types, nested := typesIn(ns.Types, ns.Namespaces)
	e.scope = scope[*NamespaceExpectations]{
		node:       n,
		self:       e,
		types:      types,
		nested:     nested,
		usings:     usingsIn(ns.Usings, ns.Namespaces),
		namespaces: flattenNamespaces("", ns.Namespaces, nil),
		fileScoped: ns.FileScoped,
	}
	return e
}

// Declaration returns the wrapped node.
func (e *NamespaceExpectations) Declaration() *syntax.Namespace { return e.ns }
