package typegen

import (
	"go/ast"
	"sort"
)

// Result holds the exported types of one Go package in a language-agnostic
// form. Each Generator renders it differently.
type Result struct {
	// PackageName is the Go package that was processed
	PackageName string

	// ImportPath is the package's import path, empty for FromFiles results
	ImportPath string

	// Structs are the exported struct types, sorted by name
	Structs []Struct

	// Enums are the exported string types with typed constants, sorted by name
	Enums []Enum

	// TypePositions maps type names to their source location
	TypePositions map[string]Position
}

// Position represents a source code location
type Position struct {
	// File is the base name of the declaring file
	File string
	// Line is the line number where the type is defined
	Line int
}

// Struct is an exported Go struct.
type Struct struct {
	Name   string
	Doc    string
	Fields []Field
}

// Field is one exported, non-embedded struct field.
type Field struct {
	GoName string
	// JSONName is the json tag name, or GoName without a tag
	JSONName string
	Doc      string
	// Type is the field's Go type expression
	Type ast.Expr
	// Override is a target type forced through the csharp struct tag
	Override  string
	Pointer   bool
	Omitempty bool
}

// Optional reports whether the field may be absent on the wire.
func (f Field) Optional() bool {
	return f.Pointer || f.Omitempty
}

// Enum is a named string type together with its typed constants.
type Enum struct {
	Name   string
	Doc    string
	Values []EnumValue
}

// EnumValue is one string constant of an Enum.
type EnumValue struct {
	ConstName string
	Value     string
	Doc       string
}

// TypeNames returns every generated type name in sorted order
func (r *Result) TypeNames() []string {
	names := make([]string, 0, len(r.Structs)+len(r.Enums))
	for _, s := range r.Structs {
		names = append(names, s.Name)
	}
	for _, e := range r.Enums {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Struct finds a struct by name.
func (r *Result) Struct(name string) (Struct, bool) {
	for _, s := range r.Structs {
		if s.Name == name {
			return s, true
		}
	}
	return Struct{}, false
}

// Enum finds an enum by name.
func (r *Result) Enum(name string) (Enum, bool) {
	for _, e := range r.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return Enum{}, false
}
