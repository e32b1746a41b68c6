// Package typegen extracts exported Go types so they can be mirrored in
// another language. The csharp subpackage renders them as C# records and
// enums through codebuilder.
//
// Structs become records with one property per exported field; a named
// string type with typed constants becomes an enum:
//
//	type Status string
//
//	const (
//	    StatusOpen   Status = "open"
//	    StatusClosed Status = "closed"
//	)
//
// Struct tags drive naming: json:"name,omitempty" sets the wire name and
// optionality, csharp:"Type" overrides the target type and csharp:"-" (or
// json:"-") drops the field. A //typegen:skip line in a type's doc comment
// leaves the type out.
package typegen

import (
	"go/ast"
	"go/token"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/logger"
)

// SkipDirective in a type's doc comment excludes the type.
const SkipDirective = "typegen:skip"

// GenerateFromPackage loads a Go package and collects its exported structs
// and string enums.
//
// Import path should be a full Go import path like "github.com/teranos/sharpgen/verify"
func GenerateFromPackage(importPath string) (*Result, error) {
	return GenerateFromPackageDir("", importPath)
}

// GenerateFromPackageDir is GenerateFromPackage with the go command run in
// dir, so relative patterns such as "./models" resolve against it.
func GenerateFromPackageDir(dir, pattern string) (*Result, error) {
	log := logger.ComponentLogger("typegen")

	// Only syntax is needed; skipping type checking keeps cgo dependencies
	// out of the load.
	cfg := &packages.Config{
		Dir:  dir,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load package %s", pattern)
	}
	if len(pkgs) == 0 {
		return nil, errors.NewNotFoundError("no packages found for %s", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		msgs := make([]string, len(pkg.Errors))
		for i, e := range pkg.Errors {
			msgs[i] = e.Error()
		}
		return nil, errors.Newf("package %s: %s", pattern, strings.Join(msgs, "; "))
	}

	result := FromFiles(pkg.Name, pkg.Fset, pkg.Syntax)
	result.ImportPath = pkg.PkgPath
	log.Debugw("loaded package",
		logger.FieldPackage, pkg.PkgPath,
		logger.FieldCount, len(result.Structs)+len(result.Enums))
	return result, nil
}

// FromFiles collects exported types from already parsed files of one
// package. Declarations may be spread across the files.
func FromFiles(pkgName string, fset *token.FileSet, files []*ast.File) *Result {
	c := &collector{
		fset:       fset,
		aliases:    make(map[string]string),
		aliasDocs:  make(map[string]string),
		constsByTy: make(map[string][]EnumValue),
		result: &Result{
			PackageName:   pkgName,
			TypePositions: make(map[string]Position),
		},
	}
	for _, f := range files {
		c.file(f)
	}
	return c.finish()
}

type collector struct {
	fset       *token.FileSet
	aliases    map[string]string // typeName -> underlying ident
	aliasDocs  map[string]string
	constsByTy map[string][]EnumValue
	result     *Result
}

func (c *collector) file(f *ast.File) {
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gd.Tok {
		case token.CONST:
			c.constBlock(gd)
		case token.TYPE:
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				c.typeSpec(ts, doc)
			}
		}
	}
}

func (c *collector) typeSpec(ts *ast.TypeSpec, doc *ast.CommentGroup) {
	// Only process exported, non-generic types
	if !ts.Name.IsExported() || ts.TypeParams != nil {
		return
	}
	if hasDirective(doc, SkipDirective) {
		return
	}
	text := commentText(doc)
	name := ts.Name.Name

	switch t := ts.Type.(type) {
	case *ast.StructType:
		c.result.Structs = append(c.result.Structs, Struct{
			Name:   name,
			Doc:    text,
			Fields: c.fields(name, t),
		})
		c.position(name, ts)
	case *ast.Ident:
		// Named type like: type Status string
		c.aliases[name] = t.Name
		c.aliasDocs[name] = text
		c.position(name, ts)
	}
}

func (c *collector) position(name string, node ast.Node) {
	if c.fset == nil {
		return
	}
	p := c.fset.Position(node.Pos())
	c.result.TypePositions[name] = Position{File: filepath.Base(p.Filename), Line: p.Line}
}

func (c *collector) fields(owner string, st *ast.StructType) []Field {
	var out []Field
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			logger.Logger.Debugw("skipping embedded field", logger.FieldType, owner)
			continue
		}
		tags := parseFieldTags(field.Tag)
		if tags.Skip {
			continue
		}
		for _, fieldName := range field.Names {
			if !fieldName.IsExported() {
				continue
			}
			jsonName := tags.JSONName
			if jsonName == "" {
				jsonName = fieldName.Name
			}
			out = append(out, Field{
				GoName:    fieldName.Name,
				JSONName:  jsonName,
				Doc:       ExtractFieldComment(field),
				Type:      field.Type,
				Override:  tags.Override,
				Pointer:   isPointerType(field.Type),
				Omitempty: tags.Omitempty,
			})
		}
	}
	return out
}

// constBlock extracts string constants grouped by their declared type. A
// spec without a type inherits the previous spec's type, as iota blocks do.
func (c *collector) constBlock(decl *ast.GenDecl) {
	var currentType string
	for _, spec := range decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if vs.Type != nil {
			currentType = ""
			if ident, ok := vs.Type.(*ast.Ident); ok {
				currentType = ident.Name
			}
		}
		if currentType == "" {
			continue
		}
		for i, value := range vs.Values {
			lit, ok := value.(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING || i >= len(vs.Names) {
				continue
			}
			s, err := strconv.Unquote(lit.Value)
			if err != nil {
				continue
			}
			doc := commentText(vs.Doc)
			if doc == "" {
				doc = commentText(vs.Comment)
			}
			c.constsByTy[currentType] = append(c.constsByTy[currentType], EnumValue{
				ConstName: vs.Names[i].Name,
				Value:     s,
				Doc:       doc,
			})
		}
	}
}

func (c *collector) finish() *Result {
	for name, underlying := range c.aliases {
		values := c.constsByTy[name]
		if underlying != "string" || len(values) == 0 {
			continue
		}
		c.result.Enums = append(c.result.Enums, Enum{Name: name, Doc: c.aliasDocs[name], Values: values})
	}
	for name := range c.aliases {
		if _, isEnum := c.result.Enum(name); !isEnum {
			delete(c.result.TypePositions, name)
		}
	}
	sort.Slice(c.result.Structs, func(i, j int) bool { return c.result.Structs[i].Name < c.result.Structs[j].Name })
	sort.Slice(c.result.Enums, func(i, j int) bool { return c.result.Enums[i].Name < c.result.Enums[j].Name })
	return c.result
}

// FieldTagInfo contains parsed struct tag information
type FieldTagInfo struct {
	JSONName  string // Field name from json tag
	Omitempty bool   // Has omitempty option
	Override  string // Custom target type from csharp tag
	Skip      bool   // Skip this field (json:"-" or csharp:"-")
}

// parseFieldTags extracts json and csharp tags from a struct field tag
//
// Supported tags:
//   - json:"name,omitempty" - Standard JSON field naming
//   - csharp:"CustomType" - Override the C# type
//   - csharp:"-" - Skip field in C# output
func parseFieldTags(tag *ast.BasicLit) FieldTagInfo {
	info := FieldTagInfo{}
	if tag == nil {
		return info
	}

	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		raw = strings.Trim(tag.Value, "`")
	}
	st := reflect.StructTag(raw)

	if jsonTag := st.Get("json"); jsonTag != "" {
		parts := strings.Split(jsonTag, ",")
		info.JSONName = parts[0]
		if info.JSONName == "-" && len(parts) == 1 {
			info.Skip = true
			return info
		}
		for _, part := range parts[1:] {
			if part == "omitempty" || part == "omitzero" {
				info.Omitempty = true
			}
		}
	}

	if csTag := st.Get("csharp"); csTag != "" {
		if csTag == "-" {
			info.Skip = true
			return info
		}
		info.Override = csTag
	}
	return info
}

// isPointerType checks if the AST expression represents a pointer type
func isPointerType(expr ast.Expr) bool {
	_, ok := expr.(*ast.StarExpr)
	return ok
}
