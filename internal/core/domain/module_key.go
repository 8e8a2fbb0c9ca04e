package domain

import (
	"path"
	"slices"
	"strings"
	"unique"
)

// ModuleKey identifies one source unit within a resolution run.
// It wraps a unique.Handle[string] so keys are cheap to compare and use as map keys.
// The wrapped value is always a cleaned, slash-separated path: either relative to
// the contracts folder or a source unit name under a remapping prefix.
type ModuleKey struct {
	h unique.Handle[string]
}

// NewModuleKey normalizes p and interns it.
// Backslashes become slashes, "./" prefixes and redundant separators are removed.
func NewModuleKey(p string) ModuleKey {
	return ModuleKey{h: unique.Make(NormalizePath(p))}
}

// NormalizePath converts an import path or file path into module key form.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

// String returns the underlying key value.
func (k ModuleKey) String() string {
	var zero unique.Handle[string]
	if k.h == zero {
		return ""
	}
	return k.h.Value()
}

// IsZero reports whether k was never assigned.
func (k ModuleKey) IsZero() bool {
	var zero unique.Handle[string]
	return k.h == zero
}

// Dir returns the key-space directory of k ("." for top-level keys).
func (k ModuleKey) Dir() string {
	return path.Dir(k.String())
}

// Segments splits the key on "/".
func (k ModuleKey) Segments() []string {
	s := k.String()
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}

// MarshalText implements encoding.TextMarshaler.
func (k ModuleKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ModuleKey) UnmarshalText(text []byte) error {
	*k = NewModuleKey(string(text))
	return nil
}

// HasSegmentPrefix reports whether p starts with prefix on a path segment boundary.
// "@dependency" matches "@dependency" and "@dependency/A.sol" but not "@dependency_extra/A.sol".
func HasSegmentPrefix(p, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return false
	}
	if p == prefix {
		return true
	}
	return strings.HasPrefix(p, prefix+"/")
}

// SortKeys sorts keys lexically in place.
func SortKeys(keys []ModuleKey) {
	slices.SortFunc(keys, func(a, b ModuleKey) int {
		return strings.Compare(a.String(), b.String())
	})
}
