package syntax

import (
	"strings"

	"github.com/teranos/sharpgen/xmldoc"
)

// File is a parsed source file.
type File struct {
	Name       string
	Source     string
	Usings     []*Using
	Attributes []*Attribute // assembly and module attributes
	// Namespaces holds top-level namespace declarations. A file-scoped
	// namespace holds everything declared after it.
	Namespaces []*Namespace
	// Types holds declarations in the global namespace.
	Types      []*TypeDecl
	Directives []string
}

// FileScopedNamespace returns the file-scoped namespace, if the file has one.
func (f *File) FileScopedNamespace() *Namespace {
	for _, ns := range f.Namespaces {
		if ns.FileScoped {
			return ns
		}
	}
	return nil
}

// AllTypes returns every type declaration in the file, depth first,
// including nested types.
func (f *File) AllTypes() []*TypeDecl {
	var out []*TypeDecl
	var visitTypes func([]*TypeDecl)
	visitTypes = func(ts []*TypeDecl) {
		for _, t := range ts {
			out = append(out, t)
			visitTypes(t.NestedTypes())
		}
	}
	var visitNS func([]*Namespace)
	visitNS = func(nss []*Namespace) {
		for _, ns := range nss {
			visitTypes(ns.Types)
			visitNS(ns.Namespaces)
		}
	}
	visitTypes(f.Types)
	visitNS(f.Namespaces)
	return out
}

// Using is a using directive.
type Using struct {
	Name   string // namespace or type, e.g. System.Text
	Alias  string // set for `using Json = System.Text.Json;`
	Static bool
	Global bool
	Range  Range
}

// Text renders the directive without `global`, `using` and `;`.
func (u *Using) Text() string {
	var parts []string
	if u.Static {
		parts = append(parts, "static")
	}
	if u.Alias != "" {
		parts = append(parts, u.Alias, "=")
	}
	parts = append(parts, u.Name)
	return strings.Join(parts, " ")
}

// Namespace is a braced or file-scoped namespace declaration.
type Namespace struct {
	Name       string
	FileScoped bool
	Usings     []*Using
	Namespaces []*Namespace
	Types      []*TypeDecl
	Range      Range
}

// DeclKind is the keyword of a type declaration.
type DeclKind int

const (
	KindClass DeclKind = iota
	KindStruct
	KindInterface
	KindRecord
	KindEnum
	KindDelegate
)

func (k DeclKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindRecord:
		return "record"
	case KindEnum:
		return "enum"
	case KindDelegate:
		return "delegate"
	}
	return "unknown"
}

// Member is anything declared in a type body.
type Member interface {
	MemberName() string
	MemberKind() string
	Span() Range
}

// Attribute is one attribute inside a [ ] section.
type Attribute struct {
	Target string // "return", "assembly", "property"...
	Name   string
	Args   []string // argument source text, including `Name = value` forms
	Range  Range
}

// ShortName returns the name without namespace qualification or the
// Attribute suffix: System.FlagsAttribute → Flags.
func (a *Attribute) ShortName() string {
	name := a.Name
	if i := strings.LastIndexAny(name, ".:"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '<'); i > 0 {
		name = name[:i]
	}
	if len(name) > len("Attribute") {
		name = strings.TrimSuffix(name, "Attribute")
	}
	return name
}

// Matches reports whether the attribute is name, ignoring qualification and
// the Attribute suffix on both sides.
func (a *Attribute) Matches(name string) bool {
	other := &Attribute{Name: strings.TrimSpace(strings.Trim(name, "[]"))}
	return a.ShortName() == other.ShortName()
}

// Doc is a `///` documentation comment.
type Doc struct {
	Lines    []string
	Elements []xmldoc.Element
}

func newDoc(lines []string) *Doc {
	if len(lines) == 0 {
		return nil
	}
	return &Doc{Lines: lines, Elements: xmldoc.Parse(xmldoc.StripPrefix(lines))}
}

// Text returns the comment without the `///` prefixes.
func (d *Doc) Text() string {
	if d == nil {
		return ""
	}
	return xmldoc.StripPrefix(d.Lines)
}

// Tag returns the first element named name.
func (d *Doc) Tag(name string) (xmldoc.Element, bool) {
	if d == nil {
		return xmldoc.Element{}, false
	}
	for _, e := range d.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return xmldoc.Element{}, false
}

// Summary returns the collapsed <summary> content.
func (d *Doc) Summary() string {
	e, _ := d.Tag("summary")
	return e.Content
}

// Modifiers are the modifier keywords of a declaration in source order.
type Modifiers []string

// Has reports whether m contains the keyword.
func (m Modifiers) Has(keyword string) bool {
	for _, k := range m {
		if k == keyword {
			return true
		}
	}
	return false
}

// Access returns the access keywords joined, e.g. "protected internal", or "".
func (m Modifiers) Access() string {
	var parts []string
	for _, k := range m {
		switch k {
		case "public", "private", "protected", "internal", "file":
			parts = append(parts, k)
		}
	}
	return strings.Join(parts, " ")
}

func (m Modifiers) String() string {
	return strings.Join(m, " ")
}

// TypeParameter is one entry of a <...> declaration list.
type TypeParameter struct {
	Name       string
	Variance   string // "in", "out" or ""
	Attributes []*Attribute
}

// Constraint is one where clause.
type Constraint struct {
	TypeParameter string
	Clauses       []string
}

// BaseType is one entry of a base list. Args is set for a record base
// with an argument list: `: Person(Name)`.
type BaseType struct {
	Type    *TypeExpr
	Args    []string
	HasArgs bool
}

// TypeDecl is a class, struct, interface, record, enum or delegate.
type TypeDecl struct {
	Kind       DeclKind
	Name       string
	Modifiers  Modifiers
	Attributes []*Attribute
	Doc        *Doc

	TypeParameters []*TypeParameter
	Constraints    []*Constraint
	BaseTypes      []*BaseType

	// Records: `record class` sets RecordClass, `record struct` RecordStruct.
	RecordClass  bool
	RecordStruct bool
	// Primary constructor parameters of records, classes and structs.
	Parameters       []*Parameter
	HasParameterList bool

	// Members in source order. Enum values live in EnumValues.
	Members    []Member
	EnumValues []*EnumValue

	// Delegates only.
	ReturnType *TypeExpr

	Range Range
}

func (t *TypeDecl) MemberName() string { return t.Name }
func (t *TypeDecl) MemberKind() string { return t.Kind.String() }
func (t *TypeDecl) Span() Range        { return t.Range }

// EnumBase returns the enum's underlying type, or nil when none is written.
func (t *TypeDecl) EnumBase() *TypeExpr {
	if t.Kind != KindEnum || len(t.BaseTypes) == 0 {
		return nil
	}
	return t.BaseTypes[0].Type
}

func (t *TypeDecl) Fields() []*Field             { return membersOf[*Field](t.Members) }
func (t *TypeDecl) Properties() []*Property      { return membersOf[*Property](t.Members) }
func (t *TypeDecl) Methods() []*Method           { return membersOf[*Method](t.Members) }
func (t *TypeDecl) Constructors() []*Constructor { return membersOf[*Constructor](t.Members) }
func (t *TypeDecl) NestedTypes() []*TypeDecl     { return membersOf[*TypeDecl](t.Members) }

// Field returns the field named name.
func (t *TypeDecl) Field(name string) *Field {
	return findMember(t.Fields(), name)
}

// Property returns the property named name.
func (t *TypeDecl) Property(name string) *Property {
	return findMember(t.Properties(), name)
}

// Method returns the first method named name.
func (t *TypeDecl) Method(name string) *Method {
	return findMember(t.Methods(), name)
}

// MethodsNamed returns every overload named name.
func (t *TypeDecl) MethodsNamed(name string) []*Method {
	var out []*Method
	for _, m := range t.Methods() {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// NestedType returns the nested declaration of the given kind and name.
func (t *TypeDecl) NestedType(kind DeclKind, name string) *TypeDecl {
	for _, n := range t.NestedTypes() {
		if n.Kind == kind && n.Name == name {
			return n
		}
	}
	return nil
}

// EnumValue returns the enum member named name.
func (t *TypeDecl) EnumValue(name string) *EnumValue {
	for _, v := range t.EnumValues {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func membersOf[T Member](members []Member) []T {
	var out []T
	for _, m := range members {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func findMember[T Member](members []T, name string) T {
	var zero T
	for _, m := range members {
		if m.MemberName() == name {
			return m
		}
	}
	return zero
}

// Field is one declarator of a field or event field declaration;
// `int a, b;` yields two fields sharing type and modifiers.
type Field struct {
	Name           string
	Type           *TypeExpr
	Modifiers      Modifiers
	Attributes     []*Attribute
	Doc            *Doc
	Event          bool
	Initializer    string
	HasInitializer bool
	Range          Range
}

func (f *Field) MemberName() string { return f.Name }
func (f *Field) MemberKind() string { return "field" }
func (f *Field) Span() Range        { return f.Range }

// Accessor is get, set, init, add or remove.
type Accessor struct {
	Keyword           string
	Modifiers         Modifiers
	Attributes        []*Attribute
	Body              string
	HasBody           bool
	ExpressionBody    string
	HasExpressionBody bool
}

// Property is a property, indexer or event with accessors.
type Property struct {
	Name       string
	Type       *TypeExpr
	Modifiers  Modifiers
	Attributes []*Attribute
	Doc        *Doc
	Event      bool
	// Indexers are named "this" and carry Parameters.
	Parameters []*Parameter

	ExplicitInterface string

	Accessors         []*Accessor
	HasAccessorList   bool
	ExpressionBody    string
	HasExpressionBody bool
	Initializer       string
	HasInitializer    bool
	Range             Range
}

func (p *Property) MemberName() string { return p.Name }
func (p *Property) MemberKind() string { return "property" }
func (p *Property) Span() Range        { return p.Range }

// Accessor returns the accessor with the given keyword, or nil.
func (p *Property) Accessor(keyword string) *Accessor {
	for _, a := range p.Accessors {
		if a.Keyword == keyword {
			return a
		}
	}
	return nil
}

// Method is a method, operator, conversion operator or finalizer.
// Operators are named "operator +", conversions "implicit operator int",
// finalizers "~Name".
type Method struct {
	Name              string
	ReturnType        *TypeExpr
	Modifiers         Modifiers
	Attributes        []*Attribute
	Doc               *Doc
	ExplicitInterface string
	TypeParameters    []*TypeParameter
	Constraints       []*Constraint
	Parameters        []*Parameter
	Body              string
	HasBody           bool
	ExpressionBody    string
	HasExpressionBody bool
	Range             Range
}

func (m *Method) MemberName() string { return m.Name }
func (m *Method) MemberKind() string { return "method" }
func (m *Method) Span() Range        { return m.Range }

// ConstructorInitializer is `: base(...)` or `: this(...)`.
type ConstructorInitializer struct {
	Kind string
	Args []string
}

// Constructor is an instance or static constructor.
type Constructor struct {
	Name              string
	Modifiers         Modifiers
	Attributes        []*Attribute
	Doc               *Doc
	Parameters        []*Parameter
	Initializer       *ConstructorInitializer
	Body              string
	HasBody           bool
	ExpressionBody    string
	HasExpressionBody bool
	Range             Range
}

func (c *Constructor) MemberName() string { return c.Name }
func (c *Constructor) MemberKind() string { return "constructor" }
func (c *Constructor) Span() Range        { return c.Range }

// Parameter is one parameter of a method, constructor, indexer, delegate or
// primary constructor.
type Parameter struct {
	Name       string
	Type       *TypeExpr
	Modifiers  Modifiers // ref, out, in, params, this, scoped, readonly
	Attributes []*Attribute
	Default    string
	HasDefault bool
	Range      Range
}

// EnumValue is one enum member.
type EnumValue struct {
	Name       string
	Value      string
	HasValue   bool
	Attributes []*Attribute
	Doc        *Doc
	Range      Range
}
