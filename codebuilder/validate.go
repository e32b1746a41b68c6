package codebuilder

import (
	"strings"
	"unicode"

	"github.com/teranos/sharpgen/errors"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// requireName panics unless name is a plain identifier, optionally prefixed
// with @ to escape a keyword.
func requireName(what, name string) {
	if isBlank(name) {
		panic(errors.InvalidArgumentf("%s name cannot be empty", what))
	}
	if !isIdentifier(strings.TrimPrefix(name, "@")) {
		panic(errors.InvalidArgumentf("%s name %q is not a valid identifier", what, name))
	}
}

// requireQualifiedName accepts dotted identifiers such as System.Text.Json.
func requireQualifiedName(what, name string) {
	if isBlank(name) {
		panic(errors.InvalidArgumentf("%s name cannot be empty", what))
	}
	for _, part := range strings.Split(name, ".") {
		if !isIdentifier(strings.TrimPrefix(part, "@")) {
			panic(errors.InvalidArgumentf("%s name %q is not a valid qualified name", what, name))
		}
	}
}

// requireType only rejects blank types; type syntax is not checked.
func requireType(what, typ string) {
	if isBlank(typ) {
		panic(errors.InvalidArgumentf("%s type cannot be empty", what))
	}
}

func requireText(what, text string) {
	if isBlank(text) {
		panic(errors.InvalidArgumentf("%s cannot be empty", what))
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Pc, r)) {
			continue
		}
		return false
	}
	return true
}
