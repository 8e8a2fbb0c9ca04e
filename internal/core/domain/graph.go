// Package domain contains the core models for import graphs, version constraints and compilation groups.
package domain

import (
	"iter"
	"slices"
)

// ModuleNode is one source unit in the import graph.
type ModuleNode struct {
	Key ModuleKey
	// Location is the physical file; empty when the module could not be found.
	Location string
	Source   string
	Scan     *ScanResult
	// Imports holds node indices in first-seen order, without repeats.
	Imports []int
	// Entry is set for in-scope project files.
	Entry bool
	// ViaImportOnly is set for modules reached only through imports.
	ViaImportOnly bool
	// Rules are the remapping rules used to resolve this module's imports.
	Rules []RemappingRule
}

// Dangling reports whether the module has no physical location.
func (n *ModuleNode) Dangling() bool {
	return n.Location == ""
}

// ImportEdge is one import statement resolved to graph indices.
// Repeated statements produce repeated edges.
type ImportEdge struct {
	From    int
	To      int
	RawPath string
	Alias   string
}

// ImportGraph is an arena of module nodes addressed by index.
type ImportGraph struct {
	nodes      []*ModuleNode
	index      map[ModuleKey]int
	byLocation map[string]int
	edges      []ImportEdge
}

// NewImportGraph creates an empty graph.
func NewImportGraph() *ImportGraph {
	return &ImportGraph{
		index:      make(map[ModuleKey]int),
		byLocation: make(map[string]int),
	}
}

// AddNode returns the index for key, creating the node when absent.
// A new key pointing at an already known location collapses onto that node.
// The boolean reports whether a node was created.
func (g *ImportGraph) AddNode(key ModuleKey, location string, entry bool) (int, bool) {
	if idx, ok := g.index[key]; ok {
		if entry {
			g.markEntry(idx)
		}
		return idx, false
	}
	if location != "" {
		if idx, ok := g.byLocation[location]; ok {
			g.index[key] = idx
			if entry {
				g.markEntry(idx)
			}
			return idx, false
		}
	}

	idx := len(g.nodes)
	g.nodes = append(g.nodes, &ModuleNode{
		Key:           key,
		Location:      location,
		Entry:         entry,
		ViaImportOnly: !entry,
	})
	g.index[key] = idx
	if location != "" {
		g.byLocation[location] = idx
	}
	return idx, true
}

func (g *ImportGraph) markEntry(idx int) {
	g.nodes[idx].Entry = true
	g.nodes[idx].ViaImportOnly = false
}

// AddEdge records an import of to by from.
func (g *ImportGraph) AddEdge(from, to int, rawPath, alias string) {
	g.edges = append(g.edges, ImportEdge{From: from, To: to, RawPath: rawPath, Alias: alias})
	n := g.nodes[from]
	if !slices.Contains(n.Imports, to) {
		n.Imports = append(n.Imports, to)
	}
}

// Lookup returns the node index for key.
func (g *ImportGraph) Lookup(key ModuleKey) (int, bool) {
	idx, ok := g.index[key]
	return idx, ok
}

// Node returns the node at idx.
func (g *ImportGraph) Node(idx int) *ModuleNode {
	return g.nodes[idx]
}

// NodeByKey returns the node for key or nil.
func (g *ImportGraph) NodeByKey(key ModuleKey) *ModuleNode {
	idx, ok := g.index[key]
	if !ok {
		return nil
	}
	return g.nodes[idx]
}

// Len returns the number of nodes.
func (g *ImportGraph) Len() int {
	return len(g.nodes)
}

// Nodes iterates nodes in discovery order.
func (g *ImportGraph) Nodes() iter.Seq2[int, *ModuleNode] {
	return func(yield func(int, *ModuleNode) bool) {
		for i, n := range g.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Edges returns every import edge in the order the statements were seen.
func (g *ImportGraph) Edges() []ImportEdge {
	return slices.Clone(g.edges)
}

// Aliases returns keys that collapsed onto an existing node, mapped to the canonical key.
func (g *ImportGraph) Aliases() map[ModuleKey]ModuleKey {
	out := make(map[ModuleKey]ModuleKey)
	for key, idx := range g.index {
		if canonical := g.nodes[idx].Key; canonical != key {
			out[key] = canonical
		}
	}
	return out
}

// Closure returns idx and every node reachable from it, breadth-first in first-seen order.
func (g *ImportGraph) Closure(idx int) []int {
	seen := map[int]bool{idx: true}
	order := []int{idx}
	for i := 0; i < len(order); i++ {
		for _, next := range g.nodes[order[i]].Imports {
			if !seen[next] {
				seen[next] = true
				order = append(order, next)
			}
		}
	}
	return order
}

// Dependents returns, for every node, the nodes that import it.
func (g *ImportGraph) Dependents() [][]int {
	out := make([][]int, len(g.nodes))
	for from, n := range g.nodes {
		for _, to := range n.Imports {
			out[to] = append(out[to], from)
		}
	}
	return out
}
