// Package grouper partitions resolved modules into compiler invocations.
package grouper

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/soldeps/internal/core/domain"
)

// Options carries the project-wide compiler settings.
type Options struct {
	EVMVersion string
	ViaIR      bool
	Libraries  []domain.LibraryBinding
}

// Grouper owns the groups of one resolution run.
//
// Membership is fixed at construction: modules with identical compiler
// configuration always share a group. Library bindings only mark the groups
// whose sources contain the bound module as dirty; dirty groups are refreshed
// on the next call to Groups.
type Grouper struct {
	graph    *domain.ImportGraph
	aliases  map[domain.ModuleKey]domain.ModuleKey
	groups   []*domain.CompilationGroup
	byID     map[string]*domain.CompilationGroup
	bindings map[domain.ModuleKey]map[string]string
	dirty    map[string]bool
}

// New groups every resolved entry module in modules and records the group ID
// on its resolution.
func New(g *domain.ImportGraph, modules map[domain.ModuleKey]*domain.ModuleResolution, opts Options) *Grouper {
	gr := &Grouper{
		graph:    g,
		aliases:  g.Aliases(),
		byID:     make(map[string]*domain.CompilationGroup),
		bindings: make(map[domain.ModuleKey]map[string]string),
		dirty:    make(map[string]bool),
	}
	for _, b := range opts.Libraries {
		gr.setBinding(b)
	}

	keys := slices.Collect(maps.Keys(modules))
	domain.SortKeys(keys)
	for _, key := range keys {
		res := modules[key]
		node := g.NodeByKey(key)
		if node == nil || !node.Entry {
			continue
		}
		gk := domain.GroupKey{Version: res.Version, EVMVersion: opts.EVMVersion, ViaIR: opts.ViaIR}
		id := gk.String()
		group, ok := gr.byID[id]
		if !ok {
			group = &domain.CompilationGroup{
				ID:               id,
				Key:              gk,
				SupportsBasePath: !res.Version.Less(domain.BasePathMinVersion),
			}
			gr.byID[id] = group
			gr.groups = append(gr.groups, group)
		}
		group.Members = append(group.Members, key)
		res.Group = id
	}

	slices.SortFunc(gr.groups, func(a, b *domain.CompilationGroup) int {
		if c := a.Key.Version.Compare(b.Key.Version); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	for _, group := range gr.groups {
		gr.collectSources(group)
		gr.refresh(group)
	}
	return gr
}

// Groups returns every group, recomputing those invalidated since the last call.
func (gr *Grouper) Groups() []*domain.CompilationGroup {
	for _, group := range gr.groups {
		if gr.dirty[group.ID] {
			gr.refresh(group)
		}
	}
	clear(gr.dirty)
	return slices.Clone(gr.groups)
}

// Bind sets a library address and returns the IDs of the invalidated groups.
// Rebinding to the same address invalidates nothing.
func (gr *Grouper) Bind(b domain.LibraryBinding) []string {
	if gr.bindings[b.Module][b.Name] == b.Address {
		return nil
	}
	gr.setBinding(b)
	return gr.invalidate(b.Module)
}

// Unbind removes a library address and returns the IDs of the invalidated groups.
func (gr *Grouper) Unbind(module domain.ModuleKey, name string) []string {
	if _, ok := gr.bindings[module][name]; !ok {
		return nil
	}
	delete(gr.bindings[module], name)
	if len(gr.bindings[module]) == 0 {
		delete(gr.bindings, module)
	}
	return gr.invalidate(module)
}

func (gr *Grouper) setBinding(b domain.LibraryBinding) {
	if gr.bindings[b.Module] == nil {
		gr.bindings[b.Module] = make(map[string]string)
	}
	gr.bindings[b.Module][b.Name] = b.Address
}

func (gr *Grouper) invalidate(module domain.ModuleKey) []string {
	var ids []string
	for _, group := range gr.groups {
		if group.HasSource(module) {
			gr.dirty[group.ID] = true
			ids = append(ids, group.ID)
		}
	}
	return ids
}

// collectSources fills the membership-derived fields, which bindings never change.
func (gr *Grouper) collectSources(group *domain.CompilationGroup) {
	seen := make(map[int]bool)
	var order []int
	for _, member := range group.Members {
		idx, _ := gr.graph.Lookup(member)
		for _, i := range gr.graph.Closure(idx) {
			if !seen[i] {
				seen[i] = true
				order = append(order, i)
			}
		}
	}

	group.Sources = make([]domain.ModuleKey, 0, len(order))
	group.Locations = make(map[domain.ModuleKey]string, len(order))
	group.Remappings = nil
	for _, i := range order {
		node := gr.graph.Node(i)
		group.Sources = append(group.Sources, node.Key)
		group.Locations[node.Key] = node.Location
		for _, rule := range node.Rules {
			if !slices.ContainsFunc(group.Remappings, func(r domain.RemappingRule) bool {
				return r.Prefix == rule.Prefix && r.Target == rule.Target
			}) {
				group.Remappings = append(group.Remappings, rule)
			}
		}
	}
	domain.SortKeys(group.Sources)
	group.Aliases = nil
	for alias, canonical := range gr.aliases {
		if _, ok := group.Locations[canonical]; !ok {
			continue
		}
		if group.Aliases == nil {
			group.Aliases = make(map[domain.ModuleKey]domain.ModuleKey)
		}
		group.Aliases[alias] = canonical
	}
	slices.SortStableFunc(group.Remappings, domain.RuleOrder)
}

// refresh recomputes the binding-derived fields and the fingerprint.
func (gr *Grouper) refresh(group *domain.CompilationGroup) {
	group.Libraries = nil
	for _, key := range group.Sources {
		for name, addr := range gr.bindings[key] {
			group.Libraries = append(group.Libraries, domain.LibraryBinding{Module: key, Name: name, Address: addr})
		}
	}
	slices.SortFunc(group.Libraries, domain.CompareBindings)
	group.Fingerprint = gr.fingerprint(group)
}

func (gr *Grouper) fingerprint(group *domain.CompilationGroup) string {
	h := xxhash.New()
	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = h.WriteString(p)
			_, _ = h.Write([]byte{0})
		}
	}

	write("group-v1", group.ID)
	for _, key := range group.Sources {
		node := gr.graph.NodeByKey(key)
		write(key.String(), fmt.Sprintf("%016x", xxhash.Sum64String(node.Source)))
	}
	aliases := slices.Collect(maps.Keys(group.Aliases))
	domain.SortKeys(aliases)
	for _, alias := range aliases {
		write(alias.String(), group.Aliases[alias].String())
	}
	for _, r := range group.Remappings {
		write(r.String())
	}
	for _, l := range group.Libraries {
		write(l.String())
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
