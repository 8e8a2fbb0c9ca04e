package constraint

import (
	"context"
	"errors"
	"slices"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures a Resolver.
type Options struct {
	Registry     ports.VersionRegistry
	CompilersDir string
	// Preferred is the project-wide version; the zero value selects the highest match.
	Preferred   domain.CompilerVersion
	AutoInstall bool
}

// Resolver selects one compiler version per module.
// It belongs to a single resolution run.
type Resolver struct {
	registry    ports.VersionRegistry
	dir         string
	preferred   domain.CompilerVersion
	autoInstall bool

	installed   []domain.CompilerVersion
	installable []domain.CompilerVersion
	loaded      bool
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	return &Resolver{
		registry:    opts.Registry,
		dir:         opts.CompilersDir,
		preferred:   opts.Preferred,
		autoInstall: opts.AutoInstall,
	}
}

// Result maps every module that received a version, plus the diagnostics
// for those that did not.
type Result struct {
	Modules     map[domain.ModuleKey]*domain.ModuleResolution
	Diagnostics []domain.Diagnostic
}

// Resolve propagates constraints across g and selects versions for every
// healthy module. Modules in failed are skipped together with their dependents.
// Only registry failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, g *domain.ImportGraph, failed map[domain.ModuleKey]bool) (*Result, error) {
	prop := Propagate(g, failed)

	res := &Result{
		Modules:     make(map[domain.ModuleKey]*domain.ModuleResolution),
		Diagnostics: prop.Diagnostics,
	}
	for idx, node := range g.Nodes() {
		if prop.Failed[idx] {
			continue
		}
		v, err := r.Select(ctx, node.Key, prop.Effective[idx])
		if err != nil {
			var noVersion *domain.NoAvailableVersionError
			if !errors.As(err, &noVersion) {
				return nil, err
			}
			res.Diagnostics = append(res.Diagnostics, domain.NewDiagnostic(node.Key, err))
			continue
		}
		res.Modules[node.Key] = &domain.ModuleResolution{
			Key:       node.Key,
			Declared:  prop.Declared[idx],
			Effective: prop.Effective[idx],
			Version:   v,
		}
	}
	return res, nil
}

// Select picks the version for one effective constraint.
//
// A configured preferred version is used when it satisfies the constraint and
// is a *domain.NoAvailableVersionError otherwise. Without one, the highest
// installed match wins; with auto install enabled the highest installable
// match is ensured when nothing installed fits.
func (r *Resolver) Select(ctx context.Context, module domain.ModuleKey, effective domain.VersionConstraint) (domain.CompilerVersion, error) {
	if err := r.load(ctx); err != nil {
		return domain.CompilerVersion{}, err
	}
	fail := &domain.NoAvailableVersionError{
		Module:     module,
		Constraint: effective,
		Available:  slices.Clone(r.installed),
	}

	if !r.preferred.IsZero() {
		fail.Preferred = r.preferred
		if !effective.Contains(r.preferred) {
			return domain.CompilerVersion{}, fail
		}
		if slices.ContainsFunc(r.installed, r.preferred.Equal) {
			return r.preferred, nil
		}
		if r.autoInstall && slices.ContainsFunc(r.installable, r.preferred.Equal) {
			return r.preferred, r.ensure(ctx, r.preferred)
		}
		return domain.CompilerVersion{}, fail
	}

	if v, ok := effective.MaxSatisfying(r.installed); ok {
		return v, nil
	}
	if r.autoInstall {
		if v, ok := effective.MaxSatisfying(r.installable); ok {
			return v, r.ensure(ctx, v)
		}
	}
	return domain.CompilerVersion{}, fail
}

func (r *Resolver) load(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	installed, err := r.registry.Installed(ctx, r.dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to list installed compilers"), "dir", r.dir)
	}
	r.installed = domain.SortVersions(installed)

	if r.autoInstall {
		installable, err := r.registry.Installable(ctx)
		if err != nil {
			return zerr.Wrap(err, "failed to list installable compilers")
		}
		r.installable = domain.SortVersions(installable)
	}
	r.loaded = true
	return nil
}

func (r *Resolver) ensure(ctx context.Context, v domain.CompilerVersion) error {
	if err := r.registry.Ensure(ctx, r.dir, v); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to install compiler"), "version", v.String())
	}
	r.installed = domain.SortVersions(append(r.installed, v))
	return nil
}
