// Package constraint computes effective compiler version constraints over the
// import graph and selects a concrete compiler version per module.
package constraint

import (
	"slices"

	"go.trai.ch/soldeps/internal/core/domain"
)

// Propagation holds per-node constraints indexed like the import graph.
type Propagation struct {
	Declared  []domain.VersionConstraint
	Effective []domain.VersionConstraint
	// Failed marks nodes excluded from selection, either by an earlier
	// diagnostic or by propagation itself.
	Failed      []bool
	Diagnostics []domain.Diagnostic
}

// Propagate computes effective(m) = declared(m) ∩ effective(i) for every import i.
//
// Strongly connected components collapse to one unit whose members share the
// identical effective constraint. Components are evaluated sinks-first, so
// every successor is final before its dependents read it. Nodes named in
// failed, and dangling nodes, poison every module that transitively imports them.
func Propagate(g *domain.ImportGraph, failed map[domain.ModuleKey]bool) *Propagation {
	n := g.Len()
	p := &Propagation{
		Declared:  make([]domain.VersionConstraint, n),
		Effective: make([]domain.VersionConstraint, n),
		Failed:    make([]bool, n),
	}
	for idx, node := range g.Nodes() {
		if node.Scan != nil {
			p.Declared[idx], _ = node.Scan.Declared()
		}
	}

	comps := components(g)
	compOf := make([]int, n)
	for c, members := range comps {
		for _, idx := range members {
			compOf[idx] = c
		}
	}

	// pending counts unfinished successor components; preds feeds the worklist.
	pending := make([]int, len(comps))
	preds := make([][]int, len(comps))
	for c, members := range comps {
		var succ []int
		for _, idx := range members {
			for _, to := range g.Node(idx).Imports {
				if sc := compOf[to]; sc != c && !slices.Contains(succ, sc) {
					succ = append(succ, sc)
				}
			}
		}
		pending[c] = len(succ)
		for _, sc := range succ {
			preds[sc] = append(preds[sc], c)
		}
	}

	var queue []int
	for c := range comps {
		if pending[c] == 0 {
			queue = append(queue, c)
		}
	}
	compFailed := make([]bool, len(comps))
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		compFailed[c] = p.evaluate(g, comps[c], compOf, compFailed, failed)
		for _, pc := range preds[c] {
			if pending[pc]--; pending[pc] == 0 {
				queue = append(queue, pc)
			}
		}
	}
	return p
}

// evaluate settles one component and reports whether it failed.
func (p *Propagation) evaluate(g *domain.ImportGraph, members []int, compOf []int, compFailed []bool, failed map[domain.ModuleKey]bool) bool {
	self := compOf[members[0]]

	var cause domain.ModuleKey
	for _, idx := range members {
		node := g.Node(idx)
		if node.Dangling() || failed[node.Key] {
			cause = node.Key
			break
		}
	}
	if cause.IsZero() {
		for _, idx := range members {
			for _, to := range g.Node(idx).Imports {
				if compOf[to] != self && compFailed[compOf[to]] {
					cause = g.Node(to).Key
					break
				}
			}
			if !cause.IsZero() {
				break
			}
		}
	}
	if !cause.IsZero() {
		for _, idx := range members {
			p.Failed[idx] = true
			node := g.Node(idx)
			if node.Dangling() || failed[node.Key] {
				continue
			}
			p.Diagnostics = append(p.Diagnostics, domain.NewDiagnostic(node.Key,
				&domain.ExcludedDependencyError{Module: node.Key, Via: cause}))
		}
		return true
	}

	effective := domain.Unconstrained()
	for _, idx := range members {
		effective = effective.Intersect(p.Declared[idx])
		for _, to := range g.Node(idx).Imports {
			if compOf[to] != self {
				effective = effective.Intersect(p.Effective[to])
			}
		}
	}

	if !effective.IsSatisfiable() {
		conflicts := p.contributors(g, members[0])
		for _, idx := range members {
			p.Failed[idx] = true
			key := g.Node(idx).Key
			p.Diagnostics = append(p.Diagnostics, domain.NewDiagnostic(key,
				&domain.UnsatisfiableVersionError{Module: key, Conflicts: conflicts}))
		}
		return true
	}
	for _, idx := range members {
		p.Effective[idx] = effective
	}
	return false
}

// contributors lists every constrained module in the closure of idx with its pragma.
func (p *Propagation) contributors(g *domain.ImportGraph, idx int) []domain.ConstraintSource {
	var out []domain.ConstraintSource
	for _, i := range g.Closure(idx) {
		if p.Declared[i].IsUnconstrained() {
			continue
		}
		node := g.Node(i)
		src := domain.ConstraintSource{Module: node.Key, Pragma: p.Declared[i].Raw}
		if pragma, ok := node.Scan.SolidityPragma(); ok {
			src.Pragma = pragma.Value
		}
		out = append(out, src)
	}
	return out
}

// components returns the strongly connected components with members in
// ascending node order, ordered by their smallest member.
// It is Tarjan's algorithm driven by an explicit frame stack.
func components(g *domain.ImportGraph) [][]int {
	n := g.Len()
	index := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = -1
	}

	var (
		comps   [][]int
		stack   []int
		frames  []frame
		counter int
	)
	push := func(v int) {
		index[v], low[v] = counter, counter
		counter++
		stack = append(stack, v)
		onStack[v] = true
		frames = append(frames, frame{node: v})
	}

	for root := range n {
		if index[root] != -1 {
			continue
		}
		push(root)
		for len(frames) > 0 {
			top := &frames[len(frames)-1]
			v := top.node
			imports := g.Node(v).Imports
			if top.next < len(imports) {
				w := imports[top.next]
				top.next++
				switch {
				case index[w] == -1:
					push(w)
				case onStack[w]:
					low[v] = min(low[v], index[w])
				}
				continue
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				low[parent] = min(low[parent], low[v])
			}
			if low[v] != index[v] {
				continue
			}
			var comp []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			slices.Sort(comp)
			comps = append(comps, comp)
		}
	}

	slices.SortFunc(comps, func(a, b []int) int { return a[0] - b[0] })
	return comps
}

type frame struct {
	node int
	next int
}
