package domain

import "strings"

// Span is a half-open byte range [Start, End) into source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ImportSymbol is one name brought in by `import { A as B } from "X"`.
type ImportSymbol struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// ImportStatement is one import directive as written.
type ImportStatement struct {
	RawPath string         `json:"path"`
	Alias   string         `json:"alias,omitempty"`
	Symbols []ImportSymbol `json:"symbols,omitempty"`
	Span    Span           `json:"span"`
	Line    int            `json:"line"`
}

// PragmaStatement is one `pragma <name> <value>;` directive.
type PragmaStatement struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Span  Span   `json:"span"`
}

// IsSolidity reports whether the pragma declares a compiler version.
func (p PragmaStatement) IsSolidity() bool {
	return p.Name == "solidity"
}

// Text renders the pragma in canonical single-line form.
func (p PragmaStatement) Text() string {
	if p.Value == "" {
		return "pragma " + p.Name + ";"
	}
	return "pragma " + p.Name + " " + p.Value + ";"
}

// LicenseHeader is an SPDX license comment.
type LicenseHeader struct {
	Identifier string `json:"identifier"`
	Span       Span   `json:"span"`
}

// Text renders the license comment.
func (l LicenseHeader) Text() string {
	return "// SPDX-License-Identifier: " + l.Identifier
}

// ScanResult is what the import scanner extracts from one source text.
// It is plain data so it can be persisted by the scan cache.
type ScanResult struct {
	Imports  []ImportStatement `json:"imports,omitempty"`
	Pragmas  []PragmaStatement `json:"pragmas,omitempty"`
	Licenses []LicenseHeader   `json:"licenses,omitempty"`
	// Malformed holds import clauses that never reach a semicolon or match no import form.
	Malformed []Span `json:"malformed,omitempty"`
}

// SolidityPragma returns the first `pragma solidity` statement.
func (s *ScanResult) SolidityPragma() (PragmaStatement, bool) {
	for _, p := range s.Pragmas {
		if p.IsSolidity() {
			return p, true
		}
	}
	return PragmaStatement{}, false
}

// Declared parses the module's own version constraint.
// The returned warnings are MissingPragma, MalformedPragma and MalformedImport conditions;
// none of them is fatal.
func (s *ScanResult) Declared() (VersionConstraint, []error) {
	var warnings []error
	for range s.Malformed {
		warnings = append(warnings, ErrMalformedImport)
	}

	pragma, ok := s.SolidityPragma()
	if !ok {
		return Unconstrained(), append(warnings, ErrMissingPragma)
	}
	c, err := ParseConstraint(pragma.Value)
	if err != nil {
		return Unconstrained(), append(warnings, err)
	}
	return c, warnings
}

// StripRanges returns the spans the flattener removes from a module body:
// every import, every pragma and every license header.
func (s *ScanResult) StripRanges() []Span {
	out := make([]Span, 0, len(s.Imports)+len(s.Pragmas)+len(s.Licenses))
	for _, imp := range s.Imports {
		out = append(out, imp.Span)
	}
	for _, p := range s.Pragmas {
		out = append(out, p.Span)
	}
	for _, l := range s.Licenses {
		out = append(out, l.Span)
	}
	return out
}

// CutSpans removes the given non-overlapping-or-nested spans from text.
func CutSpans(text string, spans []Span) string {
	if len(spans) == 0 {
		return text
	}
	keep := make([]bool, len(text))
	for i := range keep {
		keep[i] = true
	}
	for _, sp := range spans {
		for i := max(sp.Start, 0); i < min(sp.End, len(text)); i++ {
			keep[i] = false
		}
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if keep[i] {
			b.WriteByte(text[i])
		}
	}
	return b.String()
}
