package xmldoc

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
)

// Provider supplies documentation for one named element.
type Provider interface {
	Name() string
	// ElementType is optional ("class", "property", ...); empty when unknown
	ElementType() string
	HasCustomDocumentation() bool
	Documentation() string
	SetDocumentation(summary string)
}

// Manager wraps a Provider and renders its documentation.
type Manager struct {
	provider Provider
}

// NewManager panics when provider is nil.
func NewManager(provider Provider) *Manager {
	if provider == nil {
		panic(errors.InvalidArgumentf("documentation provider cannot be nil"))
	}
	return &Manager{provider: provider}
}

// Provider returns the wrapped provider.
func (m *Manager) Provider() Provider {
	return m.provider
}

// SetCustomDocumentation forwards summary to the provider.
func (m *Manager) SetCustomDocumentation(summary string) error {
	if strings.TrimSpace(summary) == "" {
		return errors.InvalidArgumentf("documentation summary for %s cannot be empty", m.provider.Name())
	}
	m.provider.SetDocumentation(summary)
	return nil
}

// GenerateDocumentation returns the provider's documentation as a summary block.
func (m *Manager) GenerateDocumentation() string {
	return FormatSummary(m.provider.Documentation())
}

// Element types understood by AutoProvider.
const (
	ElementClass       = "class"
	ElementStruct      = "struct"
	ElementRecord      = "record"
	ElementInterface   = "interface"
	ElementEnum        = "enum"
	ElementEnumValue   = "enum value"
	ElementMethod      = "method"
	ElementProperty    = "property"
	ElementField       = "field"
	ElementParameter   = "parameter"
	ElementConstructor = "constructor"
)

// AutoProvider derives a summary from the element's name and type until custom
// documentation is set.
type AutoProvider struct {
	name        string
	elementType string
	custom      string
}

// NewAutoProvider panics when name is blank.
func NewAutoProvider(name, elementType string) *AutoProvider {
	if strings.TrimSpace(name) == "" {
		panic(errors.InvalidArgumentf("documented element name cannot be empty"))
	}
	return &AutoProvider{name: name, elementType: elementType}
}

func (p *AutoProvider) Name() string        { return p.name }
func (p *AutoProvider) ElementType() string { return p.elementType }

func (p *AutoProvider) HasCustomDocumentation() bool {
	return p.custom != ""
}

func (p *AutoProvider) SetDocumentation(summary string) {
	p.custom = summary
}

// Documentation returns the custom summary, or one derived from the name.
func (p *AutoProvider) Documentation() string {
	if p.custom != "" {
		return p.custom
	}

	words := strings.ToLower(SplitPascalCase(p.name))
	switch p.elementType {
	case ElementClass, ElementStruct, ElementRecord:
		return "Represents " + article(words) + " " + words + "."
	case ElementInterface:
		return "Defines the contract for " + strings.ToLower(SplitPascalCase(trimInterfacePrefix(p.name))) + "."
	case ElementEnum:
		return "Specifies the " + words + " values."
	case ElementProperty:
		return "Gets or sets the " + words + "."
	case ElementField, ElementParameter, ElementEnumValue:
		return "The " + words + "."
	case ElementConstructor:
		return `Initializes a new instance of the <see cref="` + p.name + `"/> class.`
	default:
		return CapitalizeFirst(words) + "."
	}
}

func article(words string) string {
	if words != "" && strings.ContainsRune("aeiou", rune(words[0])) {
		return "an"
	}
	return "a"
}

// trimInterfacePrefix drops the conventional I from names like IOrderService.
func trimInterfacePrefix(name string) string {
	if len(name) > 1 && name[0] == 'I' && name[1] >= 'A' && name[1] <= 'Z' {
		return name[1:]
	}
	return name
}
