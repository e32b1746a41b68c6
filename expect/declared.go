package expect

import (
	"fmt"
	"strings"

	"github.com/teranos/sharpgen/syntax"
)

// declared holds the checks every declaration with modifiers shares:
// accessibility, modifier keywords, attributes and documentation. E is the
// concrete expectation type returned for chaining.
type declared[E any] struct {
	*node
	self  E
	mods  syntax.Modifiers
	attrs []*syntax.Attribute
	doc   *syntax.Doc
	// defaultAccess applies when no access keyword is written: private for
	// class members, public for interface members, internal for top-level
	// types.
	defaultAccess string
}

func (d *declared[E]) init(n *node, self E, mods syntax.Modifiers, attrs []*syntax.Attribute, doc *syntax.Doc, defaultAccess string) {
	d.node = n
	d.self = self
	d.mods = mods
	d.attrs = attrs
	d.doc = doc
	d.defaultAccess = defaultAccess
}

func (d *declared[E]) access() string {
	if a := d.mods.Access(); a != "" {
		return a
	}
	return d.defaultAccess
}

// HasAccess checks the effective access level, e.g. "protected internal".
// Without an access keyword the C# default for the declaration applies.
func (d *declared[E]) HasAccess(access string) E {
	d.r.t.Helper()
	want := strings.Join(strings.Fields(access), " ")
	d.check(d.access() == want, "to be "+want, "access "+quoted(d.access()))
	return d.self
}

func (d *declared[E]) IsPublic() E    { d.r.t.Helper(); return d.HasAccess("public") }
func (d *declared[E]) IsPrivate() E   { d.r.t.Helper(); return d.HasAccess("private") }
func (d *declared[E]) IsInternal() E  { d.r.t.Helper(); return d.HasAccess("internal") }
func (d *declared[E]) IsProtected() E { d.r.t.Helper(); return d.HasAccess("protected") }

// HasModifier checks that keyword is written on the declaration.
func (d *declared[E]) HasModifier(keyword string) E {
	d.r.t.Helper()
	d.check(d.mods.Has(keyword), "modifier "+keyword, d.modifierText())
	return d.self
}

// HasModifiers checks each keyword in turn.
func (d *declared[E]) HasModifiers(keywords ...string) E {
	d.r.t.Helper()
	for _, k := range keywords {
		d.HasModifier(k)
	}
	return d.self
}

// DoesNotHaveModifier checks that keyword is absent.
func (d *declared[E]) DoesNotHaveModifier(keyword string) E {
	d.r.t.Helper()
	d.check(!d.mods.Has(keyword), "no modifier "+keyword, d.modifierText())
	return d.self
}

func (d *declared[E]) IsStatic() E   { d.r.t.Helper(); return d.HasModifier("static") }
func (d *declared[E]) IsAbstract() E { d.r.t.Helper(); return d.HasModifier("abstract") }
func (d *declared[E]) IsSealed() E   { d.r.t.Helper(); return d.HasModifier("sealed") }
func (d *declared[E]) IsPartial() E  { d.r.t.Helper(); return d.HasModifier("partial") }
func (d *declared[E]) IsVirtual() E  { d.r.t.Helper(); return d.HasModifier("virtual") }
func (d *declared[E]) IsOverride() E { d.r.t.Helper(); return d.HasModifier("override") }

func (d *declared[E]) modifierText() string {
	if len(d.mods) == 0 {
		return "no modifiers"
	}
	return "modifiers " + quoted(d.mods.String())
}

// HasAttribute checks for an attribute by name, ignoring qualification and
// the Attribute suffix. Each arg must appear verbatim in its argument list.
func (d *declared[E]) HasAttribute(name string, args ...string) E {
	d.r.t.Helper()
	checkAttribute(d.node, d.attrs, name, args)
	return d.self
}

// DoesNotHaveAttribute checks that no attribute named name is applied.
func (d *declared[E]) DoesNotHaveAttribute(name string) E {
	d.r.t.Helper()
	d.check(findAttribute(d.attrs, name) == nil, "no attribute ["+name+"]", "attributes "+attributeNames(d.attrs))
	return d.self
}

// HasSummary checks the <summary> text, whitespace collapsed.
func (d *declared[E]) HasSummary(text string) E {
	d.r.t.Helper()
	want := strings.Join(strings.Fields(text), " ")
	if d.doc == nil {
		d.check(false, "summary "+quoted(want), "no documentation comment")
		return d.self
	}
	got := d.doc.Summary()
	d.check(got == want, "summary "+quoted(want), "summary "+quoted(got))
	return d.self
}

// HasDocTag checks the documentation comment has a <tag> element. When
// content is given the element text must contain it.
func (d *declared[E]) HasDocTag(tag string, content ...string) E {
	d.r.t.Helper()
	e, ok := d.doc.Tag(tag)
	if !ok {
		d.check(false, "documentation tag <"+tag+">", "tags "+docTags(d.doc))
		return d.self
	}
	for _, c := range content {
		d.check(strings.Contains(e.Content, c),
			fmt.Sprintf("<%s> containing %q", tag, c), quoted(e.Content))
	}
	return d.self
}

// HasDocParam checks for <param name="name">.
func (d *declared[E]) HasDocParam(name string) E {
	d.r.t.Helper()
	if d.doc != nil {
		for _, e := range d.doc.Elements {
			if e.Name == "param" && e.Attr("name") == name {
				return d.self
			}
		}
	}
	d.check(false, "<param name="+quoted(name)+">", "tags "+docTags(d.doc))
	return d.self
}

func docTags(doc *syntax.Doc) string {
	if doc == nil {
		return "none (no documentation comment)"
	}
	var names []string
	for _, e := range doc.Elements {
		names = append(names, "<"+e.Name+">")
	}
	return quoteList(names)
}

func findAttribute(attrs []*syntax.Attribute, name string) *syntax.Attribute {
	for _, a := range attrs {
		if a.Matches(name) {
			return a
		}
	}
	return nil
}

func attributeNames(attrs []*syntax.Attribute) string {
	var names []string
	for _, a := range attrs {
		names = append(names, "["+a.Name+"]")
	}
	return quoteList(names)
}

func checkAttribute(n *node, attrs []*syntax.Attribute, name string, args []string) {
	n.r.t.Helper()
	a := findAttribute(attrs, name)
	if a == nil {
		n.check(false, "attribute ["+name+"]", "attributes "+attributeNames(attrs))
		return
	}
	for _, want := range args {
		found := false
		for _, got := range a.Args {
			if squash(got) == squash(want) {
				found = true
				break
			}
		}
		n.check(found, fmt.Sprintf("[%s] with argument %s", name, want),
			fmt.Sprintf("arguments (%s)", strings.Join(a.Args, ", ")))
	}
}
