package typegen

import (
	"go/ast"
)

// TypeConverterConfig describes a target language's spelling of Go types.
type TypeConverterConfig struct {
	// TypeMapping maps Go type names, qualified ones as "pkg.Name", to target types
	TypeMapping map[string]string

	// ArrayFormat spells a slice or fixed array of elem
	ArrayFormat func(elem string) string

	// MapFormat spells a map
	MapFormat func(key, val string) string

	// GenericFormat spells an instantiated generic type such as Page[Order].
	// When nil such fields become UnknownType.
	GenericFormat func(base string, args []string) string

	// StringMapUnknownType is used for map[string]any
	StringMapUnknownType string

	// UnknownType is used for any, interface types, funcs and channels
	UnknownType string

	// StringType is the converted spelling of string, to detect map[string]any
	StringType string
}

// ConvertGoType converts a field type expression with config. Pointers
// convert to their element type; callers decide about nullability.
func ConvertGoType(expr ast.Expr, config *TypeConverterConfig) string {
	return config.Convert(expr)
}

// Convert is ConvertGoType as a method.
func (c *TypeConverterConfig) Convert(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		if t.Name == "any" {
			return c.UnknownType
		}
		return c.lookup(t.Name, t.Name)

	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return c.UnknownType
		}
		return c.lookup(pkg.Name+"."+t.Sel.Name, t.Sel.Name)

	case *ast.StarExpr:
		return c.Convert(t.X)

	case *ast.ParenExpr:
		return c.Convert(t.X)

	case *ast.ArrayType:
		return c.ArrayFormat(c.Convert(t.Elt))

	case *ast.MapType:
		key, val := c.Convert(t.Key), c.Convert(t.Value)
		if key == c.StringType && val == c.UnknownType {
			return c.StringMapUnknownType
		}
		return c.MapFormat(key, val)

	case *ast.IndexExpr:
		return c.generic(t.X, []ast.Expr{t.Index})

	case *ast.IndexListExpr:
		return c.generic(t.X, t.Indices)
	}
	return c.UnknownType
}

// lookup returns the mapped spelling of key, or fallback for types declared
// alongside the struct.
func (c *TypeConverterConfig) lookup(key, fallback string) string {
	if mapped, ok := c.TypeMapping[key]; ok {
		return mapped
	}
	return fallback
}

func (c *TypeConverterConfig) generic(base ast.Expr, indices []ast.Expr) string {
	if c.GenericFormat == nil {
		return c.UnknownType
	}
	args := make([]string, len(indices))
	for i, idx := range indices {
		args[i] = c.Convert(idx)
	}
	return c.GenericFormat(c.Convert(base), args)
}
