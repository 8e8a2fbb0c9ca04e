package domain

import (
	"slices"
	"strings"

	mm "github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// CompilerVersion is a concrete major.minor.patch compiler release.
//
// Build metadata such as "+commit.d9974bed" and any "v" prefix are dropped on
// parse, so two spellings of the same release compare equal.
type CompilerVersion struct {
	v *mm.Version
}

// ParseCompilerVersion parses a concrete compiler version.
func ParseCompilerVersion(raw string) (CompilerVersion, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}
	v, err := mm.StrictNewVersion(s)
	if err != nil {
		return CompilerVersion{}, zerr.With(zerr.Wrap(err, ErrInvalidVersion.Error()), "version", raw)
	}
	return NewCompilerVersion(v.Major(), v.Minor(), v.Patch()), nil
}

// MustParseCompilerVersion is ParseCompilerVersion for constants; it panics on error.
func MustParseCompilerVersion(raw string) CompilerVersion {
	v, err := ParseCompilerVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// NewCompilerVersion builds a version from its numeric parts.
func NewCompilerVersion(major, minor, patch uint64) CompilerVersion {
	return CompilerVersion{v: mm.New(major, minor, patch, "", "")}
}

// IsZero reports whether the version was never set.
func (c CompilerVersion) IsZero() bool {
	return c.v == nil
}

// Major returns the major component.
func (c CompilerVersion) Major() uint64 { return c.semver().Major() }

// Minor returns the minor component.
func (c CompilerVersion) Minor() uint64 { return c.semver().Minor() }

// Patch returns the patch component.
func (c CompilerVersion) Patch() uint64 { return c.semver().Patch() }

// NextPatch returns the smallest version strictly greater than c.
func (c CompilerVersion) NextPatch() CompilerVersion {
	return NewCompilerVersion(c.Major(), c.Minor(), c.Patch()+1)
}

// Compare returns -1, 0 or 1. The zero value sorts lowest.
func (c CompilerVersion) Compare(o CompilerVersion) int {
	switch {
	case c.v == nil && o.v == nil:
		return 0
	case c.v == nil:
		return -1
	case o.v == nil:
		return 1
	}
	return c.v.Compare(o.v)
}

// Equal reports whether both versions name the same release.
func (c CompilerVersion) Equal(o CompilerVersion) bool {
	return c.Compare(o) == 0
}

// Less reports whether c sorts before o.
func (c CompilerVersion) Less(o CompilerVersion) bool {
	return c.Compare(o) < 0
}

// String renders the version as "major.minor.patch".
func (c CompilerVersion) String() string {
	if c.v == nil {
		return ""
	}
	return c.v.String()
}

// MarshalText implements encoding.TextMarshaler.
func (c CompilerVersion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompilerVersion) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = CompilerVersion{}
		return nil
	}
	v, err := ParseCompilerVersion(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c CompilerVersion) semver() *mm.Version {
	if c.v == nil {
		return mm.New(0, 0, 0, "", "")
	}
	return c.v
}

// SortVersions sorts versions ascending and removes duplicates.
func SortVersions(versions []CompilerVersion) []CompilerVersion {
	out := slices.Clone(versions)
	slices.SortFunc(out, CompilerVersion.Compare)
	return slices.CompactFunc(out, CompilerVersion.Equal)
}

// VersionStrings renders versions for diagnostics.
func VersionStrings(versions []CompilerVersion) []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.String()
	}
	return out
}
