package domain

import (
	"slices"
	"strings"
)

// ModuleResolution is the outcome for one module that resolved successfully.
type ModuleResolution struct {
	Key       ModuleKey
	Declared  VersionConstraint
	Effective VersionConstraint
	Version   CompilerVersion
	// Group is the ID of the group the module is a member of; empty for import-only modules.
	Group string
}

// Report is the result of one resolution run.
type Report struct {
	Graph *ImportGraph
	// Modules maps every successfully resolved module to its selection.
	Modules     map[ModuleKey]*ModuleResolution
	Groups      []*CompilationGroup
	Diagnostics []Diagnostic
}

// Keys returns the resolved modules sorted by key.
func (r *Report) Keys() []ModuleKey {
	keys := make([]ModuleKey, 0, len(r.Modules))
	for k := range r.Modules {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Errors returns the diagnostics that excluded a module.
func (r *Report) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Warnings returns the diagnostics that left modules usable.
func (r *Report) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

// HasErrors reports whether any module was excluded.
func (r *Report) HasErrors() bool {
	return slices.ContainsFunc(r.Diagnostics, func(d Diagnostic) bool { return d.Severity() == SeverityError })
}

// GroupByID returns the group with the given ID or nil.
func (r *Report) GroupByID(id string) *CompilationGroup {
	i := slices.IndexFunc(r.Groups, func(g *CompilationGroup) bool { return g.ID == id })
	if i < 0 {
		return nil
	}
	return r.Groups[i]
}

func (r *Report) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity() == sev {
			out = append(out, d)
		}
	}
	return out
}

// SortDiagnostics orders diagnostics by module then kind, keeping insertion order otherwise.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := strings.Compare(a.Module.String(), b.Module.String()); c != 0 {
			return c
		}
		return strings.Compare(string(a.Kind), string(b.Kind))
	})
}
