package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

// RemappingOrigin records where a rule came from.
type RemappingOrigin int

const (
	// OriginExplicit marks a rule configured by the user.
	OriginExplicit RemappingOrigin = iota
	// OriginDependency marks a rule derived from an installed dependency package.
	OriginDependency
)

func (o RemappingOrigin) String() string {
	if o == OriginDependency {
		return "dependency"
	}
	return "explicit"
}

const (
	// PriorityExplicit ranks user-configured rules.
	PriorityExplicit = 100
	// PriorityDependency ranks rules derived from installed packages.
	PriorityDependency = 50
)

// RemappingRule maps an import path prefix to a target directory.
type RemappingRule struct {
	Prefix   string
	Target   string
	Priority int
	Origin   RemappingOrigin
	// Order is the position in the configured list, used as the last tie-breaker.
	Order int
}

// ParseRemapping parses one "prefix=target" entry into an explicit rule.
func ParseRemapping(entry string, order int) (RemappingRule, error) {
	prefix, target, ok := strings.Cut(entry, "=")
	prefix = strings.TrimSpace(prefix)
	target = strings.TrimSpace(target)
	if !ok || prefix == "" || target == "" || strings.Contains(target, "=") {
		return RemappingRule{}, zerr.With(ErrMalformedRemapping, "remapping", entry)
	}
	return RemappingRule{
		Prefix:   strings.TrimSuffix(NormalizePath(prefix), "/"),
		Target:   strings.ReplaceAll(target, "\\", "/"),
		Priority: PriorityExplicit,
		Origin:   OriginExplicit,
		Order:    order,
	}, nil
}

// Matches reports whether key starts with the rule prefix on a segment boundary.
func (r RemappingRule) Matches(key string) bool {
	return HasSegmentPrefix(key, r.Prefix)
}

// Apply rewrites key by replacing the prefix with the target directory.
func (r RemappingRule) Apply(key string) string {
	rest := strings.TrimPrefix(strings.TrimPrefix(key, r.Prefix), "/")
	if rest == "" {
		return r.Target
	}
	return path.Join(r.Target, rest)
}

// String renders the rule in "prefix=target" form, as handed to the compiler.
func (r RemappingRule) String() string {
	return r.Prefix + "=" + r.Target
}

// RuleOrder sorts rules by priority, then prefix length, then configured order.
func RuleOrder(a, b RemappingRule) int {
	switch {
	case a.Priority != b.Priority:
		return b.Priority - a.Priority
	case len(a.Prefix) != len(b.Prefix):
		return len(b.Prefix) - len(a.Prefix)
	}
	return a.Order - b.Order
}
