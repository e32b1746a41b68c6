// Package langversion gates C# language features on a configured language
// version, the way a project's <LangVersion> does.
package langversion

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/sharpgen/errors"
)

// Version is a parsed C# language version.
type Version struct {
	v     *semver.Version
	label string
}

// Named versions. Latest tracks the newest released language version.
const (
	LatestName  = "latest"
	PreviewName = "preview"
	DefaultName = "default"
)

var (
	latest  = semver.MustParse("13.0.0")
	preview = semver.MustParse("14.0.0")
)

// Latest returns the newest released version.
func Latest() Version { return Version{v: latest, label: LatestName} }

// Parse accepts "latest", "preview", "default", a bare major ("10") or a
// major.minor ("7.3"). The empty string means latest.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", LatestName, DefaultName:
		return Version{v: latest, label: LatestName}, nil
	case PreviewName:
		return Version{v: preview, label: PreviewName}, nil
	}

	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, errors.WithHint(
			errors.Wrapf(err, "invalid C# language version %q", s),
			"use latest, preview or a number such as 10.0")
	}
	if v.Prerelease() != "" || v.Metadata() != "" || v.Patch() != 0 {
		return Version{}, errors.Newf("invalid C# language version %q", s)
	}
	if v.Major() < 1 || v.GreaterThan(preview) {
		return Version{}, errors.Newf("unknown C# language version %q", s)
	}
	return Version{v: v, label: formatNumber(v)}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func formatNumber(v *semver.Version) string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// String returns the label the version was parsed from ("latest", "10.0").
func (v Version) String() string {
	if v.v == nil {
		return LatestName
	}
	return v.label
}

// Number returns "major.minor".
func (v Version) Number() string {
	if v.v == nil {
		return formatNumber(latest)
	}
	return formatNumber(v.v)
}

func (v Version) semver() *semver.Version {
	if v.v == nil {
		return latest
	}
	return v.v
}

// AtLeast reports whether v is the same as or newer than other.
func (v Version) AtLeast(other Version) bool {
	return !v.semver().LessThan(other.semver())
}
