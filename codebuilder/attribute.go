package codebuilder

import (
	"strings"
)

// AttributeBuilder renders one attribute section such as
// [JsonPropertyName("id")].
type AttributeBuilder struct {
	name   string
	target string
	args   []string
}

// NewAttribute returns a builder for the attribute name. Surrounding brackets
// are stripped, so "[Flags]" and "Flags" are the same attribute.
func NewAttribute(name string) *AttributeBuilder {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	requireQualifiedName("attribute", genericBase(name))
	return &AttributeBuilder{name: name}
}

// genericBase strips a type argument list so Foo<int> validates as Foo.
func genericBase(name string) string {
	if i := strings.IndexByte(name, '<'); i > 0 {
		return name[:i]
	}
	return name
}

// Attribute is a shorthand for NewAttribute(name).AddArguments(args...).
func Attribute(name string, args ...string) *AttributeBuilder {
	return NewAttribute(name).AddArguments(args...)
}

// Name returns the attribute name as given.
func (a *AttributeBuilder) Name() string { return a.name }

// AddArgument appends a positional argument expression.
func (a *AttributeBuilder) AddArgument(expr string) *AttributeBuilder {
	requireText("attribute argument", expr)
	a.args = append(a.args, expr)
	return a
}

// AddArguments appends several positional arguments.
func (a *AttributeBuilder) AddArguments(exprs ...string) *AttributeBuilder {
	for _, e := range exprs {
		a.AddArgument(e)
	}
	return a
}

// AddStringArgument appends a quoted string argument.
func (a *AttributeBuilder) AddStringArgument(value string) *AttributeBuilder {
	a.args = append(a.args, Quote(value))
	return a
}

// AddNamedArgument appends Name = value.
func (a *AttributeBuilder) AddNamedArgument(name, value string) *AttributeBuilder {
	requireName("attribute argument", name)
	requireText("attribute argument value", value)
	a.args = append(a.args, name+" = "+value)
	return a
}

// WithTarget sets the attribute target, e.g. "return" or "assembly".
func (a *AttributeBuilder) WithTarget(target string) *AttributeBuilder {
	requireName("attribute target", target)
	a.target = target
	return a
}

// Build renders the attribute section.
func (a *AttributeBuilder) Build() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if a.target != "" {
		sb.WriteString(a.target + ": ")
	}
	sb.WriteString(a.name)
	if len(a.args) > 0 {
		sb.WriteString("(" + strings.Join(a.args, ", ") + ")")
	}
	sb.WriteByte(']')
	return sb.String()
}

// Quote returns s as a C# regular string literal.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
