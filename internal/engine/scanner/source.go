package scanner

import (
	"strings"

	"go.trai.ch/soldeps/internal/core/domain"
)

// source holds three aligned views of one text.
// text keeps string literals with comments blanked; code additionally blanks
// string literal contents. Both have the same length as the original, so byte
// offsets are shared.
type source struct {
	text     string
	code     string
	licenses []domain.LicenseHeader
}

func newSource(original string) *source {
	text := []byte(original)
	code := []byte(original)
	var licenses []domain.LicenseHeader

	blank := func(buf []byte, from, to int) {
		for i := from; i < to; i++ {
			if buf[i] != '\n' {
				buf[i] = ' '
			}
		}
	}

	for i := 0; i < len(original); {
		c := original[i]
		switch {
		case c == '/' && i+1 < len(original) && original[i+1] == '/':
			end := strings.IndexByte(original[i:], '\n')
			if end < 0 {
				end = len(original)
			} else {
				end += i
			}
			if m := reSPDX.FindStringSubmatch(original[i:end]); m != nil {
				licenses = append(licenses, domain.LicenseHeader{Identifier: m[1], Span: domain.Span{Start: i, End: end}})
			}
			blank(text, i, end)
			blank(code, i, end)
			i = end
		case c == '/' && i+1 < len(original) && original[i+1] == '*':
			end := strings.Index(original[i+2:], "*/")
			if end < 0 {
				end = len(original)
			} else {
				end += i + 4
			}
			if m := reSPDX.FindStringSubmatch(original[i:end]); m != nil {
				licenses = append(licenses, domain.LicenseHeader{Identifier: m[1], Span: domain.Span{Start: i, End: end}})
			}
			blank(text, i, end)
			blank(code, i, end)
			i = end
		case c == '"' || c == '\'':
			end := i + 1
			for end < len(original) && original[end] != c && original[end] != '\n' {
				if original[end] == '\\' {
					end++
				}
				end++
			}
			end = min(end, len(original))
			blank(code, i+1, end)
			i = min(end+1, len(original))
		default:
			i++
		}
	}
	return &source{text: string(text), code: string(code), licenses: licenses}
}

// statementEnd returns the index of the semicolon closing the statement that
// starts before from. When the statement runs into another top-level keyword or
// the end of input it returns the point where scanning stopped and false.
func (s *source) statementEnd(from int) (int, bool) {
	semi := strings.IndexByte(s.code[from:], ';')
	next := reBoundary.FindStringIndex(s.code[from:])

	switch {
	case semi < 0 && next == nil:
		return len(s.code), false
	case semi < 0:
		return from + next[0], false
	case next != nil && next[0] < semi:
		return from + next[0], false
	}
	return from + semi, true
}
