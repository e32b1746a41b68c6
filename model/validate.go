package model

import (
	"fmt"
	"strings"

	"github.com/teranos/sharpgen/codebuilder"
	"github.com/teranos/sharpgen/errors"
)

// Validate checks the model for problems the builders would only report one
// at a time. Every problem is listed in the returned error, which is marked
// ErrInvalidArgument.
func (f *File) Validate() error {
	v := &validator{}
	if !isDottedName(f.Namespace) {
		v.addf("namespace %q is not a dotted identifier", f.Namespace)
	}
	if len(f.Types) == 0 {
		v.addf("no types declared")
	}

	seen := make(map[string]bool)
	for i, t := range f.Types {
		where := fmt.Sprintf("types[%d]", i)
		if t.Name != "" {
			where = fmt.Sprintf("%s %s", t.Kind, t.Name)
		}
		if !isName(t.Name) {
			v.addf("%s: name %q is not an identifier", where, t.Name)
		}
		if seen[t.Name] {
			v.addf("%s: declared more than once", where)
		}
		seen[t.Name] = true
		v.checkAccess(where, t.Access)
		v.checkType(where, t)
	}
	return v.err()
}

type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...interface{}) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return errors.InvalidArgumentf("invalid model:\n  - %s", strings.Join(v.problems, "\n  - "))
}

func (v *validator) checkAccess(where, access string) {
	if access == "" {
		return
	}
	if _, ok := codebuilder.ParseAccess(access); !ok {
		v.addf("%s: unknown access %q", where, access)
	}
}

func (v *validator) checkType(where string, t Type) {
	switch t.Kind {
	case KindClass, KindInterface, KindRecord:
		if len(t.Values) > 0 || t.Flags {
			v.addf("%s: only enums have values", where)
		}
	case KindEnum:
		if len(t.Fields)+len(t.Properties)+len(t.Methods)+len(t.Constructors) > 0 {
			v.addf("%s: enums only have values", where)
		}
		if len(t.Values) == 0 {
			v.addf("%s: no values", where)
		}
	default:
		v.addf("%s: unknown kind %q (want class, interface, record or enum)", where, t.Kind)
		return
	}
	if t.Kind != KindRecord && (len(t.Parameters) > 0 || t.Struct) {
		v.addf("%s: only records have primary parameters or struct", where)
	}
	if t.Kind == KindInterface && len(t.Fields)+len(t.Constructors) > 0 {
		v.addf("%s: interfaces cannot declare fields or constructors", where)
	}

	members := make(map[string]bool)
	member := func(kind, name string) {
		if !isName(name) {
			v.addf("%s: %s name %q is not an identifier", where, kind, name)
			return
		}
		if members[name] {
			v.addf("%s: member %s declared more than once", where, name)
		}
		members[name] = true
	}
	for _, fd := range t.Fields {
		member("field", fd.Name)
		v.checkAccess(where+"."+fd.Name, fd.Access)
		if fd.Type == "" {
			v.addf("%s.%s: missing type", where, fd.Name)
		}
	}
	for _, p := range t.Properties {
		member("property", p.Name)
		v.checkAccess(where+"."+p.Name, p.Access)
		if p.Type == "" {
			v.addf("%s.%s: missing type", where, p.Name)
		}
		switch p.Setter {
		case "", "set", "init", "private", "none":
		default:
			v.addf("%s.%s: unknown setter %q (want set, init, private or none)", where, p.Name, p.Setter)
		}
	}
	for _, m := range t.Methods {
		// Overloads share a name, so methods skip the duplicate check.
		if !isName(m.Name) {
			v.addf("%s: method name %q is not an identifier", where, m.Name)
		}
		v.checkAccess(where+"."+m.Name, m.Access)
		if m.Body != "" && m.Expression != "" {
			v.addf("%s.%s: body and expression are exclusive", where, m.Name)
		}
	}
	for i, c := range t.Constructors {
		switch c.Initializer {
		case "", "base", "this":
		default:
			v.addf("%s: constructors[%d]: initializer must be base or this, got %q", where, i, c.Initializer)
		}
		if c.Initializer == "" && len(c.Args) > 0 {
			v.addf("%s: constructors[%d]: args without an initializer", where, i)
		}
	}
	for _, ev := range t.Values {
		member("value", ev.Name)
		if ev.Value != nil && ev.Expression != "" {
			v.addf("%s.%s: value and expression are exclusive", where, ev.Name)
		}
	}
}

func isName(s string) bool {
	s = strings.TrimPrefix(s, "@")
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127
		if !letter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func isDottedName(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !isName(part) {
			return false
		}
	}
	return true
}
