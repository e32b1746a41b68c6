package typegen

import (
	"strings"
	"unicode"
)

// ToPascalCase converts snake_case, kebab-case, dotted or spaced words to
// PascalCase, e.g. "in-progress" -> "InProgress".
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' ' || r == '/'
	})

	var result strings.Builder
	for _, part := range parts {
		// Capitalize first letter, keep rest as-is
		runes := []rune(part)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}
	return result.String()
}

// ToCamelCase converts snake_case or kebab-case to camelCase
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return pascal
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// TrimTypePrefix strips a Go enum type name from a constant name:
// StatusOpen of type Status becomes Open. The name is returned unchanged
// when the remainder would not start with an upper-case letter.
func TrimTypePrefix(constName, typeName string) string {
	rest := strings.TrimPrefix(constName, typeName)
	if rest == constName || rest == "" {
		return constName
	}
	if r := []rune(rest)[0]; !unicode.IsUpper(r) {
		return constName
	}
	return rest
}
