// Package remap turns raw import paths into module keys and candidate file locations.
package remap

import (
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Candidate is one location to try for an import.
type Candidate struct {
	Location string
	// Rule is the remapping that produced the location; nil for project-relative fallbacks.
	Rule *domain.RemappingRule
}

// Resolution is the outcome of resolving one import path.
type Resolution struct {
	Key        domain.ModuleKey
	Candidates []Candidate
}

// Locations returns the candidate locations in the order they are tried.
func (r Resolution) Locations() []string {
	out := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		out[i] = c.Location
	}
	return out
}

type derived struct {
	rules []domain.RemappingRule
	err   error
}

// Resolver applies remapping rules in priority order.
// It is owned by one resolution run and is not safe for concurrent use.
type Resolver struct {
	explicit     []domain.RemappingRule
	deps         ports.DependencyProvider
	packagesDir  string
	contractsDir string
	basePath     string
	derived      map[string]derived
}

// Options configures a Resolver.
type Options struct {
	Rules        []domain.RemappingRule
	Dependencies ports.DependencyProvider
	PackagesDir  string
	ContractsDir string
	// BasePath anchors relative remapping targets and the last fallback.
	BasePath string
}

// New creates a Resolver. Rules are sorted by priority, prefix length and configured order.
func New(opts Options) *Resolver {
	rules := slices.Clone(opts.Rules)
	slices.SortStableFunc(rules, domain.RuleOrder)
	return &Resolver{
		explicit:     rules,
		deps:         opts.Dependencies,
		packagesDir:  opts.PackagesDir,
		contractsDir: opts.ContractsDir,
		basePath:     opts.BasePath,
		derived:      make(map[string]derived),
	}
}

// Key computes the module key for raw as imported by importer.
// Relative paths are joined with the importer's directory in key space.
func Key(raw string, importer domain.ModuleKey) domain.ModuleKey {
	p := strings.ReplaceAll(strings.TrimSpace(raw), "\\", "/")
	if strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../") {
		p = path.Join(importer.Dir(), p)
	}
	return domain.NewModuleKey(p)
}

// Resolve returns the module key for raw and the locations to try, best first.
// It returns an *domain.AmbiguousDependencyError when no explicit rule matches and
// the dependency named by the first path segment is installed more than once.
func (r *Resolver) Resolve(raw string, importer domain.ModuleKey) (Resolution, error) {
	key := Key(raw, importer)
	res := Resolution{Key: key}
	k := key.String()

	for i := range r.explicit {
		if rule := r.explicit[i]; rule.Matches(k) {
			res.Candidates = append(res.Candidates, Candidate{Location: r.locate(rule.Apply(k)), Rule: &rule})
		}
	}

	dep := r.derive(key)
	if dep.err != nil && len(res.Candidates) == 0 {
		return res, dep.err
	}
	if dep.err == nil {
		for i := range dep.rules {
			if rule := dep.rules[i]; rule.Matches(k) {
				res.Candidates = append(res.Candidates, Candidate{Location: filepath.FromSlash(rule.Apply(k)), Rule: &rule})
			}
		}
	}

	for _, dir := range []string{r.contractsDir, r.basePath} {
		if dir == "" {
			continue
		}
		loc := filepath.Join(dir, filepath.FromSlash(k))
		if !slices.ContainsFunc(res.Candidates, func(c Candidate) bool { return c.Location == loc }) {
			res.Candidates = append(res.Candidates, Candidate{Location: loc})
		}
	}
	return res, nil
}

// derive builds dependency rules for the first segment of key, trying the
// segment with and without a leading "@".
func (r *Resolver) derive(key domain.ModuleKey) derived {
	segs := key.Segments()
	if r.deps == nil || len(segs) < 2 || segs[0] == "." || segs[0] == ".." {
		return derived{}
	}
	prefix := segs[0]
	if d, ok := r.derived[prefix]; ok {
		return d
	}

	names := []string{prefix}
	if trimmed := strings.TrimPrefix(prefix, "@"); trimmed != prefix && trimmed != "" {
		names = append(names, trimmed)
	}

	var d derived
	for _, name := range names {
		roots, err := r.deps.Roots(r.packagesDir, name)
		if err != nil {
			d.err = zerr.With(zerr.Wrap(err, "failed to list dependency packages"), "dependency", name)
			break
		}
		if len(roots) > 1 {
			d.err = &domain.AmbiguousDependencyError{Name: name, Candidates: roots}
			break
		}
		if len(roots) == 1 {
			for i, dir := range roots[0].SourceDirs() {
				d.rules = append(d.rules, domain.RemappingRule{
					Prefix:   prefix,
					Target:   filepath.ToSlash(dir),
					Priority: domain.PriorityDependency,
					Origin:   domain.OriginDependency,
					Order:    i,
				})
			}
			break
		}
	}
	r.derived[prefix] = d
	return d
}

func (r *Resolver) locate(target string) string {
	p := filepath.FromSlash(target)
	if filepath.IsAbs(p) || r.basePath == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(r.basePath, p)
}
