package langversion

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/sharpgen/errors"
)

// Feature is a language feature the builders can emit.
type Feature string

const (
	FileScopedNamespace   Feature = "file-scoped namespace"
	Records               Feature = "records"
	RecordStructs         Feature = "record structs"
	InitAccessors         Feature = "init accessors"
	RequiredMembers       Feature = "required members"
	NullableReferences    Feature = "nullable reference types"
	DefaultInterfaceImpls Feature = "default interface methods"
	GenericAttributes     Feature = "generic attributes"
	ExpressionBodies      Feature = "expression-bodied members"
	PrimaryConstructors   Feature = "primary constructors"
)

// constraints maps each feature to the versions that provide it.
var constraints = map[Feature]string{
	ExpressionBodies:      ">= 6.0",
	NullableReferences:    ">= 8.0",
	DefaultInterfaceImpls: ">= 8.0",
	Records:               ">= 9.0",
	InitAccessors:         ">= 9.0",
	FileScopedNamespace:   ">= 10.0",
	RecordStructs:         ">= 10.0",
	RequiredMembers:       ">= 11.0",
	GenericAttributes:     ">= 11.0",
	PrimaryConstructors:   ">= 12.0",
}

// Features lists every known feature, sorted by name.
func Features() []Feature {
	out := make([]Feature, 0, len(constraints))
	for f := range constraints {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Constraint returns the version constraint for f.
func Constraint(f Feature) (string, bool) {
	c, ok := constraints[f]
	return c, ok
}

// Supports reports whether v provides f. Unknown features are unsupported.
func (v Version) Supports(f Feature) bool {
	return Check(v, f) == nil
}

// Check returns an error marked ErrUnsupportedFeature when v does not provide f.
func Check(v Version, f Feature) error {
	raw, ok := constraints[f]
	if !ok {
		return errors.UnsupportedFeaturef("unknown language feature %q", string(f))
	}
	c, err := semver.NewConstraint(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid constraint %s for %s", raw, f)
	}
	if !c.Check(v.semver()) {
		return errors.WithHintf(
			errors.UnsupportedFeaturef("%s requires C# %s, but language version is %s", f, raw, v),
			"raise render.lang_version or avoid %s", f)
	}
	return nil
}
