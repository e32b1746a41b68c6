// Package model describes C# files declaratively in YAML or TOML and renders
// them through the codebuilder package.
//
// A model names one namespace and the types in it:
//
//	namespace: Acme.Orders
//	usings: [System]
//	types:
//	  - kind: enum
//	    name: Status
//	    values:
//	      - {name: Open, value: 1}
//	  - kind: record
//	    name: Order
//	    parameters:
//	      - {name: Id, type: Guid}
package model

// Type kinds.
const (
	KindClass     = "class"
	KindInterface = "interface"
	KindRecord    = "record"
	KindEnum      = "enum"
)

// File is one model document. It renders to one C# file.
type File struct {
	Namespace string   `yaml:"namespace" toml:"namespace"`
	Usings    []string `yaml:"usings,omitempty" toml:"usings"`
	// LangVersion overrides the configured language version for this file.
	LangVersion string `yaml:"lang_version,omitempty" toml:"lang_version"`
	Types       []Type `yaml:"types" toml:"types"`

	// Path is where the model was loaded from.
	Path string `yaml:"-" toml:"-"`
}

// Type is a class, interface, record or enum.
type Type struct {
	Kind       string      `yaml:"kind" toml:"kind"`
	Name       string      `yaml:"name" toml:"name"`
	Access     string      `yaml:"access,omitempty" toml:"access"`
	Modifiers  []string    `yaml:"modifiers,omitempty" toml:"modifiers"`
	Summary    string      `yaml:"summary,omitempty" toml:"summary"`
	Attributes []Attribute `yaml:"attributes,omitempty" toml:"attributes"`

	// Base is the base class, base record or, for enums, the underlying type.
	Base           string   `yaml:"base,omitempty" toml:"base"`
	BaseArgs       []string `yaml:"base_args,omitempty" toml:"base_args"`
	Interfaces     []string `yaml:"interfaces,omitempty" toml:"interfaces"`
	TypeParameters []string `yaml:"type_parameters,omitempty" toml:"type_parameters"`

	// Struct renders a record as `record struct`.
	Struct bool `yaml:"struct,omitempty" toml:"struct"`
	// Parameters is a record's primary constructor.
	Parameters []Parameter `yaml:"parameters,omitempty" toml:"parameters"`

	Fields       []Field       `yaml:"fields,omitempty" toml:"fields"`
	Properties   []Property    `yaml:"properties,omitempty" toml:"properties"`
	Constructors []Constructor `yaml:"constructors,omitempty" toml:"constructors"`
	Methods      []Method      `yaml:"methods,omitempty" toml:"methods"`

	Flags  bool        `yaml:"flags,omitempty" toml:"flags"`
	Values []EnumValue `yaml:"values,omitempty" toml:"values"`
}

// Attribute is an attribute application. Args are C# expressions.
type Attribute struct {
	Name string   `yaml:"name" toml:"name"`
	Args []string `yaml:"args,omitempty" toml:"args"`
}

type Parameter struct {
	Name     string `yaml:"name" toml:"name"`
	Type     string `yaml:"type" toml:"type"`
	Modifier string `yaml:"modifier,omitempty" toml:"modifier"`
	// Default is a C# expression; it is only emitted for record parameters
	// and for members with EmitDefaults set.
	Default string `yaml:"default,omitempty" toml:"default"`
	Summary string `yaml:"summary,omitempty" toml:"summary"`
}

type Field struct {
	Name        string      `yaml:"name" toml:"name"`
	Type        string      `yaml:"type" toml:"type"`
	Access      string      `yaml:"access,omitempty" toml:"access"`
	Modifiers   []string    `yaml:"modifiers,omitempty" toml:"modifiers"`
	Const       string      `yaml:"const,omitempty" toml:"const"`
	Initializer string      `yaml:"initializer,omitempty" toml:"initializer"`
	Summary     string      `yaml:"summary,omitempty" toml:"summary"`
	Attributes  []Attribute `yaml:"attributes,omitempty" toml:"attributes"`
}

type Property struct {
	Name      string   `yaml:"name" toml:"name"`
	Type      string   `yaml:"type" toml:"type"`
	Access    string   `yaml:"access,omitempty" toml:"access"`
	Modifiers []string `yaml:"modifiers,omitempty" toml:"modifiers"`
	// Setter is "", "set", "init", "private" or "none".
	Setter      string      `yaml:"setter,omitempty" toml:"setter"`
	Initializer string      `yaml:"initializer,omitempty" toml:"initializer"`
	Expression  string      `yaml:"expression,omitempty" toml:"expression"`
	Summary     string      `yaml:"summary,omitempty" toml:"summary"`
	Attributes  []Attribute `yaml:"attributes,omitempty" toml:"attributes"`
}

type Constructor struct {
	Access     string      `yaml:"access,omitempty" toml:"access"`
	Static     bool        `yaml:"static,omitempty" toml:"static"`
	Parameters []Parameter `yaml:"parameters,omitempty" toml:"parameters"`
	// Initializer is "base" or "this"; Args are its arguments.
	Initializer  string   `yaml:"initializer,omitempty" toml:"initializer"`
	Args         []string `yaml:"args,omitempty" toml:"args"`
	Body         string   `yaml:"body,omitempty" toml:"body"`
	EmitDefaults bool     `yaml:"emit_defaults,omitempty" toml:"emit_defaults"`
	Summary      string   `yaml:"summary,omitempty" toml:"summary"`
}

type Method struct {
	Name           string      `yaml:"name" toml:"name"`
	Returns        string      `yaml:"returns,omitempty" toml:"returns"`
	Access         string      `yaml:"access,omitempty" toml:"access"`
	Modifiers      []string    `yaml:"modifiers,omitempty" toml:"modifiers"`
	TypeParameters []string    `yaml:"type_parameters,omitempty" toml:"type_parameters"`
	Parameters     []Parameter `yaml:"parameters,omitempty" toml:"parameters"`
	Body           string      `yaml:"body,omitempty" toml:"body"`
	Expression     string      `yaml:"expression,omitempty" toml:"expression"`
	EmitDefaults   bool        `yaml:"emit_defaults,omitempty" toml:"emit_defaults"`
	Summary        string      `yaml:"summary,omitempty" toml:"summary"`
	ReturnsDoc     string      `yaml:"returns_doc,omitempty" toml:"returns_doc"`
	Attributes     []Attribute `yaml:"attributes,omitempty" toml:"attributes"`
}

// EnumValue is one enum member. Value and Expression are exclusive; with
// neither the member is implicit.
type EnumValue struct {
	Name       string `yaml:"name" toml:"name"`
	Value      *int64 `yaml:"value,omitempty" toml:"value"`
	Expression string `yaml:"expression,omitempty" toml:"expression"`
	Summary    string `yaml:"summary,omitempty" toml:"summary"`
}
