package expect

import (
	"fmt"
	"strings"

	"github.com/teranos/sharpgen/syntax"
	"github.com/teranos/sharpgen/typecompare"
)

// MethodExpectations checks a method, operator or finalizer.
type MethodExpectations struct {
	declared[*MethodExpectations]
	decl *syntax.Method
}

func newMethodExpectations(n *node, m *syntax.Method, defaultAccess string) *MethodExpectations {
	e := &MethodExpectations{decl: m}
	// explicit interface implementations carry no access keyword
	if m.ExplicitInterface != "" {
		defaultAccess = ""
	}
	e.declared.init(n, e, m.Modifiers, m.Attributes, m.Doc, defaultAccess)
	return e
}

// Declaration returns the wrapped node.
func (e *MethodExpectations) Declaration() *syntax.Method { return e.decl }

// HasReturnType compares the return type with typecompare rules.
func (e *MethodExpectations) HasReturnType(typ string) *MethodExpectations {
	e.r.t.Helper()
	e.check(typecompare.AreEquivalent(e.decl.ReturnType, typ), "return type "+typ, "return type "+e.decl.ReturnType.String())
	return e
}

// IsVoid checks the method returns void.
func (e *MethodExpectations) IsVoid() *MethodExpectations {
	e.r.t.Helper()
	return e.HasReturnType("void")
}

// IsAsync checks the async modifier.
func (e *MethodExpectations) IsAsync() *MethodExpectations {
	e.r.t.Helper()
	return e.HasModifier("async")
}

// IsExtension checks the first parameter is declared with this.
func (e *MethodExpectations) IsExtension() *MethodExpectations {
	e.r.t.Helper()
	ok := len(e.decl.Parameters) > 0 && e.decl.Parameters[0].Modifiers.Has("this")
	e.check(ok, "an extension method", "no this parameter")
	return e
}

// ImplementsExplicitly checks an explicit interface implementation such as
// IDisposable.Dispose.
func (e *MethodExpectations) ImplementsExplicitly(iface string) *MethodExpectations {
	e.r.t.Helper()
	got := e.decl.ExplicitInterface
	ok := got != "" && typecompare.AreEquivalent(syntax.MustParseType(got), iface)
	e.check(ok, "explicit implementation of "+iface, "interface qualifier "+quoted(got))
	return e
}

// HasTypeParameter checks a method type parameter.
func (e *MethodExpectations) HasTypeParameter(name string) *MethodExpectations {
	e.r.t.Helper()
	checkTypeParameter(e.node, e.decl.TypeParameters, name)
	return e
}

// HasParameter locates a parameter by name and runs fns against it.
func (e *MethodExpectations) HasParameter(name string, fns ...func(*ParameterExpectations)) *MethodExpectations {
	e.r.t.Helper()
	checkParameter(e.node, e.decl.Parameters, name, fns)
	return e
}

// HasParameterCount counts parameters.
func (e *MethodExpectations) HasParameterCount(n int) *MethodExpectations {
	e.r.t.Helper()
	checkParameterCount(e.node, e.decl.Parameters, n)
	return e
}

// HasNoParameters checks an empty parameter list.
func (e *MethodExpectations) HasNoParameters() *MethodExpectations {
	e.r.t.Helper()
	return e.HasParameterCount(0)
}

// HasParameterTypes compares parameter types in order.
func (e *MethodExpectations) HasParameterTypes(types ...string) *MethodExpectations {
	e.r.t.Helper()
	checkParameterTypes(e.node, e.decl.Parameters, types)
	return e
}

// HasBody checks for a { } block body.
func (e *MethodExpectations) HasBody() *MethodExpectations {
	e.r.t.Helper()
	e.check(e.decl.HasBody, "a block body", describeBody(e.decl.HasBody, e.decl.HasExpressionBody))
	return e
}

// HasNoBody checks the method ends in a semicolon: abstract, interface,
// partial or extern.
func (e *MethodExpectations) HasNoBody() *MethodExpectations {
	e.r.t.Helper()
	none := !e.decl.HasBody && !e.decl.HasExpressionBody
	e.check(none, "no body", describeBody(e.decl.HasBody, e.decl.HasExpressionBody))
	return e
}

// HasBodyContaining checks the block body contains text.
func (e *MethodExpectations) HasBodyContaining(text string) *MethodExpectations {
	e.r.t.Helper()
	checkContains(e.node, "body", e.decl.Body, e.decl.HasBody, text)
	return e
}

// HasExpressionBody checks for => expr.
func (e *MethodExpectations) HasExpressionBody() *MethodExpectations {
	e.r.t.Helper()
	e.check(e.decl.HasExpressionBody, "an expression body", describeBody(e.decl.HasBody, e.decl.HasExpressionBody))
	return e
}

// HasExpressionBodyContaining checks the expression body contains text.
func (e *MethodExpectations) HasExpressionBodyContaining(text string) *MethodExpectations {
	e.r.t.Helper()
	checkContains(e.node, "expression body", e.decl.ExpressionBody, e.decl.HasExpressionBody, text)
	return e
}

// PropertyExpectations checks a property, indexer or event property.
type PropertyExpectations struct {
	declared[*PropertyExpectations]
	decl *syntax.Property
}

func newPropertyExpectations(n *node, p *syntax.Property, defaultAccess string) *PropertyExpectations {
	e := &PropertyExpectations{decl: p}
	if p.ExplicitInterface != "" {
		defaultAccess = ""
	}
	e.declared.init(n, e, p.Modifiers, p.Attributes, p.Doc, defaultAccess)
	return e
}

// Declaration returns the wrapped node.
func (e *PropertyExpectations) Declaration() *syntax.Property { return e.decl }

// HasType compares the property type with typecompare rules.
func (e *PropertyExpectations) HasType(typ string) *PropertyExpectations {
	e.r.t.Helper()
	e.check(typecompare.AreEquivalent(e.decl.Type, typ), "type "+typ, "type "+e.decl.Type.String())
	return e
}

func (e *PropertyExpectations) accessorList() string {
	if e.decl.HasExpressionBody {
		return "an expression body"
	}
	var kws []string
	for _, a := range e.decl.Accessors {
		kws = append(kws, a.Keyword)
	}
	return "accessors " + quoteList(kws)
}

func (e *PropertyExpectations) checkAccessor(keyword string) *PropertyExpectations {
	e.r.t.Helper()
	e.check(e.decl.Accessor(keyword) != nil, "a "+keyword+" accessor", e.accessorList())
	return e
}

// HasGetter checks for get, or an expression body which is one.
func (e *PropertyExpectations) HasGetter() *PropertyExpectations {
	e.r.t.Helper()
	if e.decl.HasExpressionBody {
		return e
	}
	return e.checkAccessor("get")
}

// HasSetter checks for a set accessor.
func (e *PropertyExpectations) HasSetter() *PropertyExpectations {
	e.r.t.Helper()
	return e.checkAccessor("set")
}

// HasInitSetter checks for an init accessor.
func (e *PropertyExpectations) HasInitSetter() *PropertyExpectations {
	e.r.t.Helper()
	return e.checkAccessor("init")
}

// HasAccessorAccess checks the access written on one accessor, e.g.
// HasAccessorAccess("set", "private").
func (e *PropertyExpectations) HasAccessorAccess(keyword, access string) *PropertyExpectations {
	e.r.t.Helper()
	a := e.decl.Accessor(keyword)
	if a == nil {
		return e.checkAccessor(keyword)
	}
	got := a.Modifiers.Access()
	e.check(got == access, fmt.Sprintf("%s accessor to be %s", keyword, access), "access "+quoted(got))
	return e
}

// IsReadOnly checks there is neither a set nor an init accessor.
func (e *PropertyExpectations) IsReadOnly() *PropertyExpectations {
	e.r.t.Helper()
	ok := e.decl.Accessor("set") == nil && e.decl.Accessor("init") == nil
	e.check(ok, "a read-only property", e.accessorList())
	return e
}

// IsAutoProperty checks for an accessor list whose accessors have no
// bodies.
func (e *PropertyExpectations) IsAutoProperty() *PropertyExpectations {
	e.r.t.Helper()
	ok := e.decl.HasAccessorList
	for _, a := range e.decl.Accessors {
		if a.HasBody || a.HasExpressionBody {
			ok = false
		}
	}
	e.check(ok, "an auto-property", e.accessorList()+" with bodies")
	return e
}

// IsRequired checks the required modifier.
func (e *PropertyExpectations) IsRequired() *PropertyExpectations {
	e.r.t.Helper()
	return e.HasModifier("required")
}

// HasInitializer checks for `= value;` after the accessor list.
func (e *PropertyExpectations) HasInitializer() *PropertyExpectations {
	e.r.t.Helper()
	e.check(e.decl.HasInitializer, "an initializer", "none")
	return e
}

// HasInitializerValue compares the initializer text, whitespace ignored.
func (e *PropertyExpectations) HasInitializerValue(value string) *PropertyExpectations {
	e.r.t.Helper()
	checkValue(e.node, "initializer", e.decl.Initializer, e.decl.HasInitializer, value)
	return e
}

// HasExpressionBody checks for => expr.
func (e *PropertyExpectations) HasExpressionBody() *PropertyExpectations {
	e.r.t.Helper()
	e.check(e.decl.HasExpressionBody, "an expression body", e.accessorList())
	return e
}

// HasExpressionBodyContaining checks the expression body contains text.
func (e *PropertyExpectations) HasExpressionBodyContaining(text string) *PropertyExpectations {
	e.r.t.Helper()
	checkContains(e.node, "expression body", e.decl.ExpressionBody, e.decl.HasExpressionBody, text)
	return e
}

// FieldExpectations checks one field declarator.
type FieldExpectations struct {
	declared[*FieldExpectations]
	decl *syntax.Field
}

func newFieldExpectations(n *node, f *syntax.Field, defaultAccess string) *FieldExpectations {
	e := &FieldExpectations{decl: f}
	e.declared.init(n, e, f.Modifiers, f.Attributes, f.Doc, defaultAccess)
	return e
}

// Declaration returns the wrapped node.
func (e *FieldExpectations) Declaration() *syntax.Field { return e.decl }

// HasType compares the field type with typecompare rules.
func (e *FieldExpectations) HasType(typ string) *FieldExpectations {
	e.r.t.Helper()
	e.check(typecompare.AreEquivalent(e.decl.Type, typ), "type "+typ, "type "+e.decl.Type.String())
	return e
}

// IsReadOnly checks the readonly modifier.
func (e *FieldExpectations) IsReadOnly() *FieldExpectations {
	e.r.t.Helper()
	return e.HasModifier("readonly")
}

// IsConst checks the const modifier.
func (e *FieldExpectations) IsConst() *FieldExpectations {
	e.r.t.Helper()
	return e.HasModifier("const")
}

// IsEvent checks for an event field.
func (e *FieldExpectations) IsEvent() *FieldExpectations {
	e.r.t.Helper()
	e.check(e.decl.Event, "an event", "a plain field")
	return e
}

// HasInitializer checks for `= value`.
func (e *FieldExpectations) HasInitializer() *FieldExpectations {
	e.r.t.Helper()
	e.check(e.decl.HasInitializer, "an initializer", "none")
	return e
}

// HasNoInitializer checks the field has no `= value`.
func (e *FieldExpectations) HasNoInitializer() *FieldExpectations {
	e.r.t.Helper()
	e.check(!e.decl.HasInitializer, "no initializer", quoted(e.decl.Initializer))
	return e
}

// HasInitializerValue compares the initializer text, whitespace ignored.
func (e *FieldExpectations) HasInitializerValue(value string) *FieldExpectations {
	e.r.t.Helper()
	checkValue(e.node, "initializer", e.decl.Initializer, e.decl.HasInitializer, value)
	return e
}

// ConstructorExpectations checks one constructor.
type ConstructorExpectations struct {
	declared[*ConstructorExpectations]
	decl *syntax.Constructor
}

func newConstructorExpectations(n *node, c *syntax.Constructor, defaultAccess string) *ConstructorExpectations {
	e := &ConstructorExpectations{decl: c}
	e.declared.init(n, e, c.Modifiers, c.Attributes, c.Doc, defaultAccess)
	return e
}

// Declaration returns the wrapped node.
func (e *ConstructorExpectations) Declaration() *syntax.Constructor { return e.decl }

// HasParameter locates a parameter by name and runs fns against it.
func (e *ConstructorExpectations) HasParameter(name string, fns ...func(*ParameterExpectations)) *ConstructorExpectations {
	e.r.t.Helper()
	checkParameter(e.node, e.decl.Parameters, name, fns)
	return e
}

// HasParameterCount counts parameters.
func (e *ConstructorExpectations) HasParameterCount(n int) *ConstructorExpectations {
	e.r.t.Helper()
	checkParameterCount(e.node, e.decl.Parameters, n)
	return e
}

func (e *ConstructorExpectations) initializerText() string {
	if e.decl.Initializer == nil {
		return "no initializer"
	}
	return fmt.Sprintf("%s(%s)", e.decl.Initializer.Kind, strings.Join(e.decl.Initializer.Args, ", "))
}

func (e *ConstructorExpectations) checkInitializer(kind string, args []string) *ConstructorExpectations {
	e.r.t.Helper()
	want := kind + "(" + strings.Join(args, ", ") + ")"
	call := e.decl.Initializer
	if call == nil || call.Kind != kind {
		e.check(false, "a "+kind+" call", e.initializerText())
		return e
	}
	if len(args) > 0 {
		e.check(sameArgs(call.Args, args), "initializer "+want, e.initializerText())
	}
	return e
}

// HasBaseCall checks for `: base(...)`. With args, they must match in order.
func (e *ConstructorExpectations) HasBaseCall(args ...string) *ConstructorExpectations {
	e.r.t.Helper()
	return e.checkInitializer("base", args)
}

// HasThisCall checks for `: this(...)`. With args, they must match in order.
func (e *ConstructorExpectations) HasThisCall(args ...string) *ConstructorExpectations {
	e.r.t.Helper()
	return e.checkInitializer("this", args)
}

// HasNoInitializer checks there is neither a base nor a this call.
func (e *ConstructorExpectations) HasNoInitializer() *ConstructorExpectations {
	e.r.t.Helper()
	e.check(e.decl.Initializer == nil, "no initializer", e.initializerText())
	return e
}

// HasBody checks for a { } block body.
func (e *ConstructorExpectations) HasBody() *ConstructorExpectations {
	e.r.t.Helper()
	e.check(e.decl.HasBody, "a block body", describeBody(e.decl.HasBody, e.decl.HasExpressionBody))
	return e
}

// HasBodyContaining checks the block body contains text.
func (e *ConstructorExpectations) HasBodyContaining(text string) *ConstructorExpectations {
	e.r.t.Helper()
	checkContains(e.node, "body", e.decl.Body, e.decl.HasBody, text)
	return e
}

// ParameterExpectations checks one parameter.
type ParameterExpectations struct {
	*node
	decl *syntax.Parameter
}

// Declaration returns the wrapped node.
func (e *ParameterExpectations) Declaration() *syntax.Parameter { return e.decl }

// HasType compares the parameter type with typecompare rules.
func (e *ParameterExpectations) HasType(typ string) *ParameterExpectations {
	e.r.t.Helper()
	e.check(typecompare.AreEquivalent(e.decl.Type, typ), "type "+typ, "type "+e.decl.Type.String())
	return e
}

// HasDefaultValue checks for `= value`.
func (e *ParameterExpectations) HasDefaultValue() *ParameterExpectations {
	e.r.t.Helper()
	e.check(e.decl.HasDefault, "a default value", "none")
	return e
}

// HasDefaultValueOf compares the default value text, whitespace ignored.
func (e *ParameterExpectations) HasDefaultValueOf(value string) *ParameterExpectations {
	e.r.t.Helper()
	checkValue(e.node, "default value", e.decl.Default, e.decl.HasDefault, value)
	return e
}

// HasNoDefaultValue checks the parameter is required.
func (e *ParameterExpectations) HasNoDefaultValue() *ParameterExpectations {
	e.r.t.Helper()
	e.check(!e.decl.HasDefault, "no default value", quoted(e.decl.Default))
	return e
}

// IsParams checks the params modifier.
func (e *ParameterExpectations) IsParams() *ParameterExpectations {
	e.r.t.Helper()
	return e.HasModifier("params")
}

// HasModifier checks ref, out, in, params, this or scoped.
func (e *ParameterExpectations) HasModifier(keyword string) *ParameterExpectations {
	e.r.t.Helper()
	got := "no modifiers"
	if len(e.decl.Modifiers) > 0 {
		got = "modifiers " + quoted(e.decl.Modifiers.String())
	}
	e.check(e.decl.Modifiers.Has(keyword), "modifier "+keyword, got)
	return e
}

// HasAttribute checks for an attribute such as [NotNull].
func (e *ParameterExpectations) HasAttribute(name string, args ...string) *ParameterExpectations {
	e.r.t.Helper()
	checkAttribute(e.node, e.decl.Attributes, name, args)
	return e
}

func checkParameter(n *node, params []*syntax.Parameter, name string, fns []func(*ParameterExpectations)) {
	n.r.t.Helper()
	if !n.active() {
		return
	}
	var names []string
	for _, p := range params {
		if p.Name == name {
			run(&ParameterExpectations{node: n.child(fmt.Sprintf("parameter %s of %s", name, n.desc)), decl: p}, fns)
			return
		}
		names = append(names, p.Name)
	}
	n.fail("a parameter named "+name, "parameters "+quoteList(names))
}

func checkParameterCount(n *node, params []*syntax.Parameter, want int) {
	n.r.t.Helper()
	n.check(len(params) == want, fmt.Sprintf("%d parameters", want), fmt.Sprintf("%d", len(params)))
}

func checkParameterTypes(n *node, params []*syntax.Parameter, types []string) {
	n.r.t.Helper()
	ok := len(params) == len(types)
	for i := 0; ok && i < len(types); i++ {
		ok = typecompare.AreEquivalent(params[i].Type, types[i])
	}
	n.check(ok, "parameter types ("+strings.Join(types, ", ")+")",
		"("+strings.Join(parameterTypes(params), ", ")+")")
}

func parameterTypes(params []*syntax.Parameter) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, p.Type.String())
	}
	return out
}

func sameTypeText(params []*syntax.Parameter, types []string) bool {
	if len(params) != len(types) {
		return false
	}
	for i, p := range params {
		if squash(p.Type.String()) != squash(types[i]) {
			return false
		}
	}
	return true
}

func sameArgs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if squash(got[i]) != squash(want[i]) {
			return false
		}
	}
	return true
}

func describeBody(block, expr bool) string {
	switch {
	case block:
		return "a block body"
	case expr:
		return "an expression body"
	}
	return "no body"
}

func checkContains(n *node, what, text string, present bool, want string) {
	n.r.t.Helper()
	if !present {
		n.check(false, fmt.Sprintf("%s containing %q", what, want), "no "+what)
		return
	}
	n.check(strings.Contains(text, want), fmt.Sprintf("%s containing %q", what, want), quoted(text))
}

func checkValue(n *node, what, got string, present bool, want string) {
	n.r.t.Helper()
	if !present {
		n.check(false, fmt.Sprintf("%s %s", what, want), "no "+what)
		return
	}
	n.check(squash(got) == squash(want), fmt.Sprintf("%s %s", what, want), got)
}
