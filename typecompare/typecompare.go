// Package typecompare decides whether two C# type expressions name the same
// type without semantic analysis: System.String, String and string are
// equivalent, and so are int? and int.
package typecompare

import (
	"strings"

	"github.com/teranos/sharpgen/syntax"
)

// aliases maps framework type names to their C# keywords.
var aliases = map[string]string{
	"String":  "string",
	"Int32":   "int",
	"Boolean": "bool",
	"Object":  "object",
	"Decimal": "decimal",
	"Double":  "double",
	"Single":  "float",
	"Int64":   "long",
	"Int16":   "short",
	"Byte":    "byte",
	"Char":    "char",
	"UInt32":  "uint",
	"UInt64":  "ulong",
	"UInt16":  "ushort",
	"SByte":   "sbyte",
	"IntPtr":  "nint",
	"UIntPtr": "nuint",
}

// Keyword returns the C# keyword for a framework type name such as Int32, or
// name itself when it has no keyword.
func Keyword(name string) string {
	if k, ok := aliases[name]; ok {
		return k
	}
	return name
}

// AreEquivalent parses expected and compares it with actual. An expected
// string that does not parse is compared as whitespace-insensitive text.
func AreEquivalent(actual *syntax.TypeExpr, expected string) bool {
	if actual == nil {
		return strings.TrimSpace(expected) == ""
	}
	want, err := syntax.ParseType(strings.TrimSpace(expected))
	if err != nil {
		return squash(actual.String()) == squash(expected)
	}
	return Equivalent(actual, want)
}

// Equivalent applies the rules in order: nullable wrappers are stripped
// from either side, generics compare pairwise, qualified names compare by
// their rightmost segment, arrays by rank and element, names by text or
// through the alias table. Tuples and pointers must match structurally.
func Equivalent(a, b *syntax.TypeExpr) bool {
	if a == nil || b == nil {
		return a == b
	}
	a, b = normalize(a), normalize(b)

	if a.Kind == syntax.TypeNullable {
		return Equivalent(a.Elem, b)
	}
	if b.Kind == syntax.TypeNullable {
		return Equivalent(a, b.Elem)
	}

	if a.Kind == syntax.TypeGeneric && b.Kind == syntax.TypeGeneric {
		if canonical(a.Name) != canonical(b.Name) || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equivalent(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	}

	if a.Kind == syntax.TypeQualified || b.Kind == syntax.TypeQualified {
		return Equivalent(a.Rightmost(), b.Rightmost())
	}

	if a.Kind == syntax.TypeArray || b.Kind == syntax.TypeArray {
		return a.Kind == b.Kind && a.Rank == b.Rank && Equivalent(a.Elem, b.Elem)
	}

	switch {
	case isName(a) && isName(b):
		return canonical(a.Name) == canonical(b.Name)
	case a.Kind == syntax.TypeTuple && b.Kind == syntax.TypeTuple,
		a.Kind == syntax.TypePointer && b.Kind == syntax.TypePointer:
		return a.String() == b.String()
	}
	return false
}

// normalize rewrites Nullable<T> and System.Nullable<T> as T?.
func normalize(t *syntax.TypeExpr) *syntax.TypeExpr {
	r := t.Rightmost()
	if r.Kind == syntax.TypeGeneric && canonical(r.Name) == "Nullable" && len(r.Args) == 1 && r.Args[0] != nil {
		return &syntax.TypeExpr{Kind: syntax.TypeNullable, Elem: r.Args[0]}
	}
	return t
}

// isName covers identifiers and predefined keywords. Comparing through
// Keyword makes identifier/identifier, keyword/keyword and keyword/identifier
// pairs one rule: String ≡ string, Int32 ≡ int, Foo ≡ Foo.
func isName(t *syntax.TypeExpr) bool {
	return t.Kind == syntax.TypeIdentifier || t.Kind == syntax.TypePredefined
}

// canonical drops the verbatim @ prefix and maps framework names to keywords.
func canonical(name string) string {
	return Keyword(strings.TrimPrefix(name, "@"))
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}
