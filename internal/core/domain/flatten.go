package domain

import "strings"

// FlattenedPart is one module body with imports and header lines removed.
type FlattenedPart struct {
	Key  ModuleKey
	Text string
}

// FlattenedUnit is an import closure inlined into one standalone source.
// Parts are ordered dependencies first and each module appears once.
type FlattenedUnit struct {
	Target ModuleKey
	// Header holds the single license line and the hoisted pragmas.
	Header []string
	Parts  []FlattenedPart
}

// Keys returns the emitted modules in output order.
func (u *FlattenedUnit) Keys() []ModuleKey {
	out := make([]ModuleKey, len(u.Parts))
	for i, p := range u.Parts {
		out[i] = p.Key
	}
	return out
}

// Render concatenates the header and parts with a "// File:" marker per module.
func (u *FlattenedUnit) Render() string {
	var b strings.Builder
	for _, line := range u.Header {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, p := range u.Parts {
		b.WriteString("\n// File: ")
		b.WriteString(p.Key.String())
		b.WriteString("\n\n")
		if body := strings.TrimSpace(p.Text); body != "" {
			b.WriteString(body)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
