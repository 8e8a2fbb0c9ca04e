// Package scanner extracts imports, pragmas and license headers from Solidity sources
// using pattern matching over comment-free text.
package scanner

import (
	"regexp"
	"strings"

	"go.trai.ch/soldeps/internal/core/domain"
)

var (
	reKeyword  = regexp.MustCompile(`\b(import|pragma)\b`)
	reBoundary = regexp.MustCompile(`\b(import|pragma|contract|library|interface|abstract|function)\b`)
	reSPDX     = regexp.MustCompile(`SPDX-License-Identifier:\s*([^\s*]+)`)
	rePragma   = regexp.MustCompile(`(?s)^pragma\s+([A-Za-z_][\w]*)\s*(.*)$`)

	reImportPlain   = regexp.MustCompile(`(?s)^import\s+(["'])(.*?)["']\s*(?:as\s+([A-Za-z_$][\w$]*))?\s*$`)
	reImportStar    = regexp.MustCompile(`(?s)^import\s+\*\s*as\s+([A-Za-z_$][\w$]*)\s+from\s+(["'])(.*?)["']\s*$`)
	reImportSymbols = regexp.MustCompile(`(?s)^import\s*\{([^}]*)\}\s*from\s+(["'])(.*?)["']\s*$`)
	reSymbol        = regexp.MustCompile(`^([A-Za-z_$][\w$]*)(?:\s+as\s+([A-Za-z_$][\w$]*))?$`)
)

// Scan extracts every import statement, pragma and SPDX header from text.
// Statements inside comments or string literals are ignored. Duplicate imports
// are preserved in source order.
func Scan(text string) *domain.ScanResult {
	src := newSource(text)
	res := &domain.ScanResult{Licenses: src.licenses}

	matches := reKeyword.FindAllStringIndex(src.code, -1)
	for _, m := range matches {
		start := m[0]
		end, ok := src.statementEnd(m[1])
		keyword := src.code[m[0]:m[1]]

		if !ok {
			if keyword == "import" {
				res.Malformed = append(res.Malformed, domain.Span{Start: start, End: end})
			}
			continue
		}

		body := strings.TrimSpace(src.text[start:end])
		span := domain.Span{Start: start, End: end + 1}

		switch keyword {
		case "pragma":
			if p, ok := parsePragma(body); ok {
				p.Span = span
				res.Pragmas = append(res.Pragmas, p)
			}
		case "import":
			imp, ok := parseImport(body)
			if !ok {
				res.Malformed = append(res.Malformed, span)
				continue
			}
			imp.Span = span
			imp.Line = strings.Count(text[:start], "\n") + 1
			res.Imports = append(res.Imports, imp)
		}
	}
	return res
}

func parsePragma(body string) (domain.PragmaStatement, bool) {
	m := rePragma.FindStringSubmatch(body)
	if m == nil {
		return domain.PragmaStatement{}, false
	}
	return domain.PragmaStatement{
		Name:  m[1],
		Value: strings.Join(strings.Fields(m[2]), " "),
	}, true
}

func parseImport(body string) (domain.ImportStatement, bool) {
	if m := reImportPlain.FindStringSubmatch(body); m != nil {
		return domain.ImportStatement{RawPath: m[2], Alias: m[3]}, true
	}
	if m := reImportStar.FindStringSubmatch(body); m != nil {
		return domain.ImportStatement{RawPath: m[3], Alias: m[1]}, true
	}
	m := reImportSymbols.FindStringSubmatch(body)
	if m == nil {
		return domain.ImportStatement{}, false
	}
	imp := domain.ImportStatement{RawPath: m[3]}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		sm := reSymbol.FindStringSubmatch(part)
		if sm == nil {
			return domain.ImportStatement{}, false
		}
		imp.Symbols = append(imp.Symbols, domain.ImportSymbol{Name: sm[1], Alias: sm[2]})
	}
	return imp, true
}
