package expect

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/syntax"
	"github.com/teranos/sharpgen/typecompare"
)

// EnumExpectations checks an enum declaration.
type EnumExpectations struct {
	declared[*EnumExpectations]
	decl *syntax.TypeDecl
}

func newEnumExpectations(n *node, decl *syntax.TypeDecl, defaultAccess string) *EnumExpectations {
	e := &EnumExpectations{decl: decl}
	e.declared.init(n, e, decl.Modifiers, decl.Attributes, decl.Doc, defaultAccess)
	return e
}

// Declaration returns the wrapped node.
func (e *EnumExpectations) Declaration() *syntax.TypeDecl { return e.decl }

// HasValue locates the member named name and runs fns against it.
func (e *EnumExpectations) HasValue(name string, fns ...func(*EnumValueExpectations)) *EnumExpectations {
	e.r.t.Helper()
	if !e.active() {
		return e
	}
	values := resolveEnumValues(e.decl.EnumValues)
	for i, v := range e.decl.EnumValues {
		if v.Name == name {
			run(&EnumValueExpectations{
				node:     e.child(fmt.Sprintf("enum value %s.%s", e.decl.Name, name)),
				decl:     v,
				resolved: values[i],
			}, fns)
			return e
		}
	}
	e.fail("a value named "+name, "values "+quoteList(e.valueNames()))
	return e
}

// HasValues checks each name is declared.
func (e *EnumExpectations) HasValues(names ...string) *EnumExpectations {
	e.r.t.Helper()
	for _, n := range names {
		e.HasValue(n)
	}
	return e
}

// HasValueCount counts declared members.
func (e *EnumExpectations) HasValueCount(n int) *EnumExpectations {
	e.r.t.Helper()
	got := len(e.decl.EnumValues)
	e.check(got == n, fmt.Sprintf("%d values", n), fmt.Sprintf("%d (%s)", got, quoteList(e.valueNames())))
	return e
}

// HasBaseType checks the underlying type. An enum without a base list is
// an int enum.
func (e *EnumExpectations) HasBaseType(typ string) *EnumExpectations {
	e.r.t.Helper()
	base := e.decl.EnumBase()
	if base == nil {
		base = &syntax.TypeExpr{Kind: syntax.TypePredefined, Name: "int"}
	}
	e.check(typecompare.AreEquivalent(base, typ), "underlying type "+typ, "underlying type "+base.String())
	return e
}

// HasFlagsAttribute checks for [Flags].
func (e *EnumExpectations) HasFlagsAttribute() *EnumExpectations {
	e.r.t.Helper()
	return e.HasAttribute("Flags")
}

func (e *EnumExpectations) valueNames() []string {
	var out []string
	for _, v := range e.decl.EnumValues {
		out = append(out, v.Name)
	}
	return out
}

// EnumValueExpectations checks one enum member.
type EnumValueExpectations struct {
	*node
	decl     *syntax.EnumValue
	resolved resolvedValue
}

// Declaration returns the wrapped node.
func (e *EnumValueExpectations) Declaration() *syntax.EnumValue { return e.decl }

// HasValue checks the numeric value. Implicit members count up from the
// previous member, or from zero.
func (e *EnumValueExpectations) HasValue(n int64) *EnumValueExpectations {
	e.r.t.Helper()
	if !e.resolved.known {
		e.check(false, fmt.Sprintf("value %d", n), "expression "+quoted(e.decl.Value))
		return e
	}
	e.check(e.resolved.value == n, fmt.Sprintf("value %d", n), fmt.Sprintf("%d", e.resolved.value))
	return e
}

// HasValueText compares the written value expression, whitespace ignored.
func (e *EnumValueExpectations) HasValueText(expr string) *EnumValueExpectations {
	e.r.t.Helper()
	checkValue(e.node, "value", e.decl.Value, e.decl.HasValue, expr)
	return e
}

// HasExplicitValue checks the member is written with `= value`.
func (e *EnumValueExpectations) HasExplicitValue() *EnumValueExpectations {
	e.r.t.Helper()
	e.check(e.decl.HasValue, "an explicit value", "an implicit value")
	return e
}

// HasNoExplicitValue checks the member has no `= value`.
func (e *EnumValueExpectations) HasNoExplicitValue() *EnumValueExpectations {
	e.r.t.Helper()
	e.check(!e.decl.HasValue, "an implicit value", "= "+e.decl.Value)
	return e
}

// HasAttribute checks an attribute on the member.
func (e *EnumValueExpectations) HasAttribute(name string, args ...string) *EnumValueExpectations {
	e.r.t.Helper()
	checkAttribute(e.node, e.decl.Attributes, name, args)
	return e
}

// HasSummary checks the member's <summary> text.
func (e *EnumValueExpectations) HasSummary(text string) *EnumValueExpectations {
	e.r.t.Helper()
	want := strings.Join(strings.Fields(text), " ")
	got := e.decl.Doc.Summary()
	e.check(got == want, "summary "+quoted(want), "summary "+quoted(got))
	return e
}

type resolvedValue struct {
	value int64
	known bool
}

// resolveEnumValues computes member values where the source allows it:
// integer literals and implicit successors of known values.
func resolveEnumValues(values []*syntax.EnumValue) []resolvedValue {
	out := make([]resolvedValue, len(values))
	next, nextKnown := int64(0), true
	for i, v := range values {
		if v.HasValue {
			n, err := parseEnumLiteral(v.Value)
			out[i] = resolvedValue{value: n, known: err == nil}
		} else {
			out[i] = resolvedValue{value: next, known: nextKnown}
		}
		next, nextKnown = out[i].value+1, out[i].known
	}
	return out
}

// parseEnumLiteral reads C# integer literals: 404, -1, 0x1F, 0b101, 1_000,
// with u/l suffixes and a leading sign. Values above math.MaxInt64 keep
// their 64-bit pattern; negative values must fit an int64.
func parseEnumLiteral(text string) (int64, error) {
	s := strings.TrimSpace(text)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, "+"):
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimRight(s, "uUlL")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return 0, errors.Mark(errors.Newf("enum value %q is not an integer literal", text), errors.ErrSyntax)
	}

	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, s = 16, s[2:]
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		base, s = 2, s[2:]
	}
	u, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "enum value %q", text), errors.ErrSyntax)
	}
	if neg {
		if u > uint64(math.MaxInt64)+1 {
			return 0, errors.Mark(errors.Newf("enum value %q is below the int64 range", text), errors.ErrSyntax)
		}
		return int64(-u), nil
	}
	return int64(u), nil
}
