// Package session runs dependency resolution for one project.
//
// A Session owns its graph, caches and groups; nothing is shared between
// sessions. Resolution runs on the calling goroutine.
package session

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/soldeps/internal/engine/constraint"
	"go.trai.ch/soldeps/internal/engine/depgraph"
	"go.trai.ch/soldeps/internal/engine/flatten"
	"go.trai.ch/soldeps/internal/engine/grouper"
	"go.trai.ch/soldeps/internal/engine/remap"
	"go.trai.ch/zerr"
)

// Options holds the settings and collaborators of a Session.
// Hasher, Cache and Metrics may be nil.
type Options struct {
	Settings     *domain.Settings
	Sources      ports.SourceProvider
	Dependencies ports.DependencyProvider
	Registry     ports.VersionRegistry
	Hasher       ports.ContentHasher
	Cache        ports.ScanCache
	Metrics      ports.Metrics
}

// Session is one resolution run.
type Session struct {
	opts    Options
	built   *depgraph.Result
	report  *domain.Report
	grouper *grouper.Grouper
}

// New creates a Session.
func New(opts Options) *Session {
	return &Session{opts: opts}
}

// Settings returns the validated settings the session runs with.
func (s *Session) Settings() *domain.Settings {
	return s.opts.Settings
}

// Graph builds the import graph from the project's entry files.
// The graph is built once per session.
func (s *Session) Graph(ctx context.Context) (*depgraph.Result, error) {
	if s.built != nil {
		return s.built, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := s.opts.Settings
	entries, err := s.opts.Sources.Sources(cfg.ContractsDir, cfg.Extensions, cfg.Exclude, []string{cfg.PackagesDir})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list project sources")
	}

	resolver := remap.New(remap.Options{
		Rules:        cfg.Remappings,
		Dependencies: s.opts.Dependencies,
		PackagesDir:  cfg.PackagesDir,
		ContractsDir: cfg.ContractsDir,
		BasePath:     cfg.ProjectRoot,
	})
	built, err := depgraph.NewBuilder(depgraph.Options{
		Sources:      s.opts.Sources,
		Resolver:     resolver,
		Hasher:       s.opts.Hasher,
		Cache:        s.opts.Cache,
		Metrics:      s.opts.Metrics,
		ContractsDir: cfg.ContractsDir,
	}).Build(entries)
	if err != nil {
		return nil, err
	}

	if s.opts.Cache != nil {
		if err := s.opts.Cache.Flush(); err != nil {
			return nil, zerr.Wrap(err, "failed to persist scan cache")
		}
	}
	s.built = built
	return built, nil
}

// Resolve selects a compiler version for every module and groups the entry modules.
// Per-module problems are reported as diagnostics; the error is reserved for
// I/O and registry failures.
func (s *Session) Resolve(ctx context.Context) (*domain.Report, error) {
	if s.report != nil {
		return s.report, nil
	}
	built, err := s.Graph(ctx)
	if err != nil {
		return nil, err
	}

	cfg := s.opts.Settings
	resolved, err := constraint.New(constraint.Options{
		Registry:     s.opts.Registry,
		CompilersDir: cfg.CompilersDir,
		Preferred:    cfg.PreferredVersion,
		AutoInstall:  cfg.AutoInstall,
	}).Resolve(ctx, built.Graph, failedModules(built.Diagnostics))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to select compiler versions")
	}

	s.grouper = grouper.New(built.Graph, resolved.Modules, grouper.Options{
		EVMVersion: cfg.EVMVersion,
		ViaIR:      cfg.ViaIR,
		Libraries:  cfg.Libraries,
	})

	diags := make([]domain.Diagnostic, 0, len(built.Diagnostics)+len(resolved.Diagnostics))
	diags = append(diags, built.Diagnostics...)
	diags = append(diags, resolved.Diagnostics...)
	domain.SortDiagnostics(diags)
	if s.opts.Metrics != nil {
		for _, d := range diags {
			s.opts.Metrics.DiagnosticReported(d.Kind)
		}
	}

	s.report = &domain.Report{
		Graph:       built.Graph,
		Modules:     resolved.Modules,
		Groups:      s.grouper.Groups(),
		Diagnostics: diags,
	}
	return s.report, nil
}

// Flatten inlines the closure of target, which is a module key or a file path.
func (s *Session) Flatten(ctx context.Context, target string) (*domain.FlattenedUnit, error) {
	built, err := s.Graph(ctx)
	if err != nil {
		return nil, err
	}
	return flatten.Flatten(built.Graph, s.Key(target))
}

// Key maps a file path or module key to the module key used in the graph.
// Existing files are named relative to the contracts folder.
func (s *Session) Key(target string) domain.ModuleKey {
	cfg := s.opts.Settings
	candidates := []string{target}
	if !filepath.IsAbs(target) {
		candidates = append(candidates, filepath.Join(cfg.ProjectRoot, target))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			if abs, err := filepath.Abs(c); err == nil {
				return depgraph.EntryKey(cfg.ContractsDir, abs)
			}
		}
	}
	return domain.NewModuleKey(target)
}

// Bind sets a library address and returns the refreshed groups that changed.
func (s *Session) Bind(b domain.LibraryBinding) ([]*domain.CompilationGroup, error) {
	if s.grouper == nil {
		return nil, domain.ErrNotResolved
	}
	return s.refresh(s.grouper.Bind(b)), nil
}

// Unbind removes a library address and returns the refreshed groups that changed.
func (s *Session) Unbind(module domain.ModuleKey, name string) ([]*domain.CompilationGroup, error) {
	if s.grouper == nil {
		return nil, domain.ErrNotResolved
	}
	return s.refresh(s.grouper.Unbind(module, name)), nil
}

func (s *Session) refresh(ids []string) []*domain.CompilationGroup {
	if len(ids) == 0 {
		return nil
	}
	s.report.Groups = s.grouper.Groups()
	out := make([]*domain.CompilationGroup, 0, len(ids))
	for _, id := range ids {
		if g := s.report.GroupByID(id); g != nil {
			out = append(out, g)
		}
	}
	return out
}

// failedModules returns the modules carrying an error diagnostic.
func failedModules(diags []domain.Diagnostic) map[domain.ModuleKey]bool {
	failed := make(map[domain.ModuleKey]bool)
	for _, d := range diags {
		if d.Severity() == domain.SeverityError {
			failed[d.Module] = true
		}
	}
	return failed
}
