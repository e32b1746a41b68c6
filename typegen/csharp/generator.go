// Package csharp renders typegen results as C# records and enums.
package csharp

import (
	"fmt"
	"strings"

	"github.com/teranos/sharpgen/codebuilder"
	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/logger"
	"github.com/teranos/sharpgen/typegen"
)

// TypeMapping defines how Go types map to C# types
var TypeMapping = map[string]string{
	"string":          "string",
	"int":             "long",
	"int8":            "sbyte",
	"int16":           "short",
	"int32":           "int",
	"int64":           "long",
	"uint":            "ulong",
	"uint8":           "byte",
	"uint16":          "ushort",
	"uint32":          "uint",
	"uint64":          "ulong",
	"uintptr":         "ulong",
	"float32":         "float",
	"float64":         "double",
	"byte":            "byte", // Go byte is alias for uint8
	"rune":            "int",
	"bool":            "bool",
	"error":           "string",
	"time.Time":       "DateTimeOffset",
	"time.Duration":   "long", // nanoseconds, as encoding/json writes it
	"json.RawMessage": "JsonElement",
	"uuid.UUID":       "Guid",
	"big.Int":         "System.Numerics.BigInteger",
}

var typeConverterConfig = &typegen.TypeConverterConfig{
	TypeMapping: TypeMapping,
	ArrayFormat: func(elem string) string {
		// encoding/json writes []byte as base64, which byte[] reads back
		if elem == "byte" {
			return "byte[]"
		}
		return fmt.Sprintf("List<%s>", elem)
	},
	MapFormat: func(key, val string) string {
		return fmt.Sprintf("Dictionary<%s, %s>", key, val)
	},
	GenericFormat: func(base string, args []string) string {
		return base + "<" + strings.Join(args, ", ") + ">"
	},
	StringMapUnknownType: "Dictionary<string, object?>",
	UnknownType:          "object",
	StringType:           "string",
}

// Generator implements typegen.Generator for C#.
type Generator struct {
	// Namespace of the generated file
	Namespace string
	// JSONAttributes adds System.Text.Json attributes for wire names
	JSONAttributes bool
	// IndentWidth is the number of spaces per level
	IndentWidth int
	// GeneratedHeader emits // <auto-generated/> and #nullable enable
	GeneratedHeader bool
	// FileScoped renders `namespace X;`
	FileScoped bool
}

// NewGenerator creates a C# generator with JSON attributes and the usual
// four-space indent.
func NewGenerator(namespace string) *Generator {
	return &Generator{
		Namespace:       namespace,
		JSONAttributes:  true,
		IndentWidth:     4,
		GeneratedHeader: true,
		FileScoped:      true,
	}
}

// Language returns "csharp"
func (g *Generator) Language() string { return "csharp" }

// FileExtension returns "cs"
func (g *Generator) FileExtension() string { return "cs" }

// ConvertType maps a Go field to its C# type. Optional fields are nullable.
func ConvertType(f typegen.Field) string {
	typ := f.Override
	if typ == "" {
		typ = typeConverterConfig.Convert(f.Type)
	}
	if f.Optional() && !strings.HasSuffix(typ, "?") {
		typ += "?"
	}
	return typ
}

// GenerateFile renders every enum and struct of result into one file, enums
// first, each group in name order.
func (g *Generator) GenerateFile(result *typegen.Result) (string, error) {
	if result == nil {
		return "", errors.InvalidArgumentf("nil typegen result")
	}
	if len(result.Structs)+len(result.Enums) == 0 {
		return "", errors.WithHint(
			errors.NewNotFoundError("package %s has no exported structs or string enums", result.PackageName),
			"enums need a named string type with typed constants")
	}

	var out string
	err := codebuilder.Catch(func() {
		ns := codebuilder.NewNamespace(g.Namespace).
			WithIndentWidth(g.IndentWidth).
			AddUsings(g.usings(result)...)
		if g.GeneratedHeader {
			ns.WithGeneratedHeader()
		}
		if !g.FileScoped {
			ns.UseBlockScope()
		}
		for _, e := range result.Enums {
			ns.AddType(g.Enum(e))
		}
		for _, s := range result.Structs {
			ns.AddType(g.Record(s))
		}
		out = ns.Build()
	})
	if err != nil {
		return "", errors.Wrapf(err, "generate C# for package %s", result.PackageName)
	}

	logger.Logger.Debugw("generated C# types",
		logger.FieldPackage, result.PackageName,
		logger.FieldNamespace, g.Namespace,
		logger.FieldCount, len(result.Structs)+len(result.Enums))
	return out, nil
}

// Record renders a struct as a sealed record with init-only properties.
func (g *Generator) Record(s typegen.Struct) *codebuilder.RecordBuilder {
	r := codebuilder.NewRecord(s.Name).MakeSealed()
	if s.Doc != "" {
		r.WithSummary(s.Doc)
	}
	for _, f := range s.Fields {
		p := codebuilder.NewProperty(f.GoName, ConvertType(f)).WithInitSetter()
		if f.Doc != "" {
			p.WithSummary(f.Doc)
		}
		if g.JSONAttributes {
			p.AddAttribute(codebuilder.NewAttribute("JsonPropertyName").AddStringArgument(f.JSONName))
			if f.Omitempty {
				p.AddAttribute(codebuilder.NewAttribute("JsonIgnore").
					AddNamedArgument("Condition", "JsonIgnoreCondition.WhenWritingNull"))
			}
		}
		r.AddProperty(p)
	}
	return r
}

// Enum renders a string enum. With JSON attributes each member carries its
// Go string value.
func (g *Generator) Enum(e typegen.Enum) *codebuilder.EnumBuilder {
	b := codebuilder.NewEnum(e.Name)
	if e.Doc != "" {
		b.WithSummary(e.Doc)
	}
	if g.JSONAttributes {
		b.WithAttribute("JsonConverter", fmt.Sprintf("typeof(JsonStringEnumConverter<%s>)", e.Name))
	}
	for _, v := range e.Values {
		name := memberName(e.Name, v)
		b.AddImplicitValue(name)
		if g.JSONAttributes {
			b.WithValueAttribute(name, codebuilder.NewAttribute("JsonStringEnumMemberName").AddStringArgument(v.Value))
		}
	}
	return b
}

func memberName(enumName string, v typegen.EnumValue) string {
	name := typegen.TrimTypePrefix(v.ConstName, enumName)
	if name == "" || name == "_" {
		name = typegen.ToPascalCase(v.Value)
	}
	return name
}

func (g *Generator) usings(result *typegen.Result) []string {
	usings := []string{"System", "System.Collections.Generic"}
	if g.JSONAttributes || usesType(result, "JsonElement") {
		usings = append(usings, "System.Text.Json")
	}
	if g.JSONAttributes {
		usings = append(usings, "System.Text.Json.Serialization")
	}
	return usings
}

func usesType(result *typegen.Result, csType string) bool {
	for _, s := range result.Structs {
		for _, f := range s.Fields {
			if strings.Contains(ConvertType(f), csType) {
				return true
			}
		}
	}
	return false
}
