// Package depgraph builds the module import graph from project entry files.
package depgraph

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/soldeps/internal/engine/remap"
	"go.trai.ch/soldeps/internal/engine/scanner"
	"go.trai.ch/zerr"
)

// Builder discovers modules breadth-first from the entry files.
// Every module is read and scanned at most once per build.
type Builder struct {
	sources      ports.SourceProvider
	resolver     *remap.Resolver
	hasher       ports.ContentHasher
	cache        ports.ScanCache
	metrics      ports.Metrics
	contractsDir string
}

// Options configures a Builder. Cache, Hasher and Metrics may be nil.
type Options struct {
	Sources      ports.SourceProvider
	Resolver     *remap.Resolver
	Hasher       ports.ContentHasher
	Cache        ports.ScanCache
	Metrics      ports.Metrics
	ContractsDir string
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		sources:      opts.Sources,
		resolver:     opts.Resolver,
		hasher:       opts.Hasher,
		cache:        opts.Cache,
		metrics:      opts.Metrics,
		contractsDir: opts.ContractsDir,
	}
}

// Result is the built graph plus every per-module condition found while building it.
type Result struct {
	Graph       *domain.ImportGraph
	Diagnostics []domain.Diagnostic
}

// Build scans entries and everything they import.
// Unresolvable imports become dangling nodes with a diagnostic on the importer;
// only I/O failures on files known to exist abort the build.
func (b *Builder) Build(entries []string) (*Result, error) {
	g := domain.NewImportGraph()
	res := &Result{Graph: g}

	var queue []int
	for _, file := range entries {
		loc := filepath.Clean(file)
		idx, created := g.AddNode(b.entryKey(loc), loc, true)
		if created {
			queue = append(queue, idx)
		}
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]

		next, err := b.visit(g, idx, res)
		if err != nil {
			return nil, err
		}
		queue = append(queue, next...)
	}
	return res, nil
}

func (b *Builder) visit(g *domain.ImportGraph, idx int, res *Result) ([]int, error) {
	node := g.Node(idx)
	data, err := b.sources.ReadFile(node.Location)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read module"), "module", node.Key.String())
	}
	node.Source = string(data)
	node.Scan = b.scan(data)

	_, warnings := node.Scan.Declared()
	for _, w := range warnings {
		res.Diagnostics = append(res.Diagnostics, domain.NewDiagnostic(node.Key, w))
	}

	var discovered []int
	seen := make(map[string]int)
	for _, imp := range node.Scan.Imports {
		if to, ok := seen[imp.RawPath]; ok {
			g.AddEdge(idx, to, imp.RawPath, imp.Alias)
			continue
		}

		to, created, diag := b.resolveImport(g, node, imp)
		if diag != nil {
			res.Diagnostics = append(res.Diagnostics, *diag)
		}
		if created && !g.Node(to).Dangling() {
			discovered = append(discovered, to)
		}
		seen[imp.RawPath] = to
		g.AddEdge(idx, to, imp.RawPath, imp.Alias)
	}
	return discovered, nil
}

// resolveImport maps one import to a node, creating a dangling node when
// no candidate location exists.
func (b *Builder) resolveImport(g *domain.ImportGraph, node *domain.ModuleNode, imp domain.ImportStatement) (int, bool, *domain.Diagnostic) {
	resolution, err := b.resolver.Resolve(imp.RawPath, node.Key)
	if err != nil {
		idx, created := g.AddNode(resolution.Key, "", false)
		d := domain.NewDiagnostic(node.Key, err)
		return idx, created, &d
	}

	for _, c := range resolution.Candidates {
		if !b.sources.IsFile(c.Location) {
			continue
		}
		if c.Rule != nil {
			addRule(node, *c.Rule)
		}
		idx, created := g.AddNode(resolution.Key, filepath.Clean(c.Location), false)
		return idx, created, nil
	}

	idx, created := g.AddNode(resolution.Key, "", false)
	d := domain.NewDiagnostic(node.Key, &domain.UnresolvedImportError{
		Importer: node.Key,
		RawPath:  imp.RawPath,
		Tried:    resolution.Locations(),
	})
	return idx, created, &d
}

func (b *Builder) scan(data []byte) *domain.ScanResult {
	if b.hasher == nil || b.cache == nil {
		b.countScan(false)
		return scanner.Scan(string(data))
	}

	hash := b.hasher.HashContent(data)
	if cached, ok := b.cache.Get(hash); ok {
		b.countScan(true)
		return cached
	}
	result := scanner.Scan(string(data))
	b.cache.Put(hash, result)
	b.countScan(false)
	return result
}

func (b *Builder) countScan(cached bool) {
	if b.metrics != nil {
		b.metrics.ModuleScanned(cached)
	}
}

func (b *Builder) entryKey(loc string) domain.ModuleKey {
	return EntryKey(b.contractsDir, loc)
}

// EntryKey names a project file by its path relative to the contracts folder.
// Files outside the folder keep their full path.
func EntryKey(contractsDir, loc string) domain.ModuleKey {
	rel, err := filepath.Rel(contractsDir, loc)
	if err != nil || strings.HasPrefix(rel, "..") {
		return domain.NewModuleKey(filepath.ToSlash(loc))
	}
	return domain.NewModuleKey(filepath.ToSlash(rel))
}

func addRule(node *domain.ModuleNode, rule domain.RemappingRule) {
	if !slices.ContainsFunc(node.Rules, func(r domain.RemappingRule) bool {
		return r.Prefix == rule.Prefix && r.Target == rule.Target
	}) {
		node.Rules = append(node.Rules, rule)
	}
}
