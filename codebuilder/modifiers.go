package codebuilder

import (
	"strings"
)

// Access is a C# accessibility level.
type Access int

const (
	// AccessDefault leaves the choice to the builder (fields private,
	// everything else public, nothing inside an interface).
	AccessDefault Access = iota
	Public
	Private
	Protected
	Internal
	ProtectedInternal
	PrivateProtected
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Private:
		return "private"
	case Protected:
		return "protected"
	case Internal:
		return "internal"
	case ProtectedInternal:
		return "protected internal"
	case PrivateProtected:
		return "private protected"
	default:
		return ""
	}
}

// Modifier is a set of non-access modifiers.
type Modifier uint32

const (
	// Shadow is the "new" modifier hiding an inherited member.
	Shadow Modifier = 1 << iota
	Static
	Const
	Sealed
	Override
	Abstract
	Virtual
	Required
	Readonly
	Volatile
	Extern
	Unsafe
	Async
	Partial
)

// canonicalOrder is the order modifiers are rendered in after the access
// modifier. partial is last because C# requires it directly before the type
// keyword or return type.
var canonicalOrder = []struct {
	mod  Modifier
	text string
}{
	{Shadow, "new"},
	{Static, "static"},
	{Const, "const"},
	{Sealed, "sealed"},
	{Override, "override"},
	{Abstract, "abstract"},
	{Virtual, "virtual"},
	{Required, "required"},
	{Readonly, "readonly"},
	{Volatile, "volatile"},
	{Extern, "extern"},
	{Unsafe, "unsafe"},
	{Async, "async"},
	{Partial, "partial"},
}

// Has reports whether all of m are set.
func (s Modifier) Has(m Modifier) bool {
	return s&m == m
}

// Tokens returns the modifier keywords in canonical order.
func (s Modifier) Tokens() []string {
	var out []string
	for _, c := range canonicalOrder {
		if s&c.mod != 0 {
			out = append(out, c.text)
		}
	}
	return out
}

func (s Modifier) String() string {
	return strings.Join(s.Tokens(), " ")
}

// ParseModifier maps a keyword such as "static" to its Modifier.
func ParseModifier(keyword string) (Modifier, bool) {
	for _, c := range canonicalOrder {
		if c.text == keyword {
			return c.mod, true
		}
	}
	return 0, false
}

// ParseAccess maps "public", "protected internal", ... to an Access.
func ParseAccess(keyword string) (Access, bool) {
	keyword = strings.Join(strings.Fields(keyword), " ")
	for a := Public; a <= PrivateProtected; a++ {
		if a.String() == keyword {
			return a, true
		}
	}
	// C# accepts both orders for the combined levels
	switch keyword {
	case "internal protected":
		return ProtectedInternal, true
	case "protected private":
		return PrivateProtected, true
	}
	return AccessDefault, false
}

// renderCtx describes where a member is rendered.
type renderCtx struct {
	inInterface bool
}

// modifierPrefix renders "access mods " with a trailing space, or "".
// Inside an interface the access modifier is only emitted when set explicitly.
func modifierPrefix(access, fallback Access, mods Modifier, ctx renderCtx) string {
	var tokens []string
	switch {
	case access != AccessDefault:
		tokens = append(tokens, access.String())
	case !ctx.inInterface && fallback != AccessDefault:
		tokens = append(tokens, fallback.String())
	}
	tokens = append(tokens, mods.Tokens()...)
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, " ") + " "
}
