package codebuilder

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
)

// Parameter modifiers accepted by AddParameterWithModifier.
var parameterModifiers = map[string]bool{
	"ref":          true,
	"out":          true,
	"in":           true,
	"params":       true,
	"this":         true,
	"ref readonly": true,
	"scoped":       true,
	"scoped ref":   true,
}

// Parameter is one entry of a parameter list.
type Parameter struct {
	Name       string
	Type       string
	Modifier   string
	Default    string
	HasDefault bool
	Attributes []*AttributeBuilder
}

func (p Parameter) render(withDefault bool) string {
	var sb strings.Builder
	for _, a := range p.Attributes {
		sb.WriteString(a.Build() + " ")
	}
	if p.Modifier != "" {
		sb.WriteString(p.Modifier + " ")
	}
	sb.WriteString(p.Type + " " + p.Name)
	if withDefault && p.HasDefault {
		sb.WriteString(" = " + p.Default)
	}
	return sb.String()
}

// parameterList keeps parameters in insertion order and rejects duplicates.
type parameterList struct {
	params []Parameter
}

func (l *parameterList) add(owner string, p Parameter) {
	requireName("parameter", p.Name)
	requireType("parameter "+p.Name, p.Type)
	p.Modifier = strings.Join(strings.Fields(p.Modifier), " ")
	if p.Modifier != "" && !parameterModifiers[p.Modifier] {
		panic(errors.InvalidArgumentf("%s: unknown parameter modifier %q", owner, p.Modifier))
	}
	if p.HasDefault && isBlank(p.Default) {
		panic(errors.InvalidArgumentf("%s: default value for parameter %s cannot be empty", owner, p.Name))
	}
	for _, existing := range l.params {
		if existing.Name == p.Name {
			panic(errors.InvalidOperationf("%s already has a parameter named %s", owner, p.Name))
		}
		if existing.Modifier == "params" {
			panic(errors.InvalidOperationf("%s: parameter %s cannot follow params parameter %s", owner, p.Name, existing.Name))
		}
	}
	if p.Modifier == "this" && len(l.params) > 0 {
		panic(errors.InvalidOperationf("%s: this parameter %s must be first", owner, p.Name))
	}
	l.params = append(l.params, p)
}

func (l *parameterList) render(withDefaults bool) string {
	parts := make([]string, len(l.params))
	for i, p := range l.params {
		parts[i] = p.render(withDefaults)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (l *parameterList) names() []string {
	out := make([]string, len(l.params))
	for i, p := range l.params {
		out[i] = p.Name
	}
	return out
}

// typeParameters renders <T, U> and the matching where clauses.
type typeParameters struct {
	names       []string
	constraints map[string][]string
}

func (t *typeParameters) add(owner, name string) {
	variance := ""
	bare := name
	for _, prefix := range []string{"in ", "out "} {
		if strings.HasPrefix(name, prefix) {
			variance, bare = prefix, strings.TrimSpace(name[len(prefix):])
		}
	}
	requireName("type parameter", bare)
	for _, existing := range t.names {
		if stripVariance(existing) == bare {
			panic(errors.InvalidOperationf("%s already has a type parameter named %s", owner, bare))
		}
	}
	t.names = append(t.names, variance+bare)
}

func stripVariance(name string) string {
	return strings.TrimPrefix(strings.TrimPrefix(name, "in "), "out ")
}

func (t *typeParameters) constrain(owner, name string, constraints ...string) {
	found := false
	for _, existing := range t.names {
		if stripVariance(existing) == name {
			found = true
		}
	}
	if !found {
		panic(errors.InvalidOperationf("%s has no type parameter %s to constrain", owner, name))
	}
	if len(constraints) == 0 {
		panic(errors.InvalidArgumentf("%s: constraint list for %s cannot be empty", owner, name))
	}
	for _, c := range constraints {
		requireText("type parameter constraint", c)
	}
	if t.constraints == nil {
		t.constraints = map[string][]string{}
	}
	t.constraints[name] = append(t.constraints[name], constraints...)
}

func (t *typeParameters) list() string {
	if len(t.names) == 0 {
		return ""
	}
	return "<" + strings.Join(t.names, ", ") + ">"
}

// where returns the constraint clauses with a leading space, in declaration order.
func (t *typeParameters) where() string {
	var sb strings.Builder
	for _, n := range t.names {
		bare := stripVariance(n)
		if cs := t.constraints[bare]; len(cs) > 0 {
			sb.WriteString(" where " + bare + " : " + strings.Join(cs, ", "))
		}
	}
	return sb.String()
}
