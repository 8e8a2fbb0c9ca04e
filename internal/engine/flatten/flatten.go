// Package flatten inlines a module's import closure into one source text.
package flatten

import (
	"slices"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	unvisited = iota
	visiting
	emitted
)

type frame struct {
	idx  int
	next int
}

// Flatten emits the closure of target dependencies first.
//
// Imports are followed in the order they were written, so ties are broken by
// discovery order and the output is stable for identical input. Import cycles
// are cut at the back edge. Every module is emitted exactly once.
func Flatten(g *domain.ImportGraph, target domain.ModuleKey) (*domain.FlattenedUnit, error) {
	root, ok := g.Lookup(target)
	if !ok {
		return nil, zerr.With(domain.ErrModuleNotFound, "module", target.String())
	}

	state := make([]int, g.Len())
	var order []int

	state[root] = visiting
	stack := []frame{{idx: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		node := g.Node(top.idx)
		if node.Dangling() {
			return nil, zerr.With(zerr.With(domain.ErrModuleNotFound, "module", node.Key.String()), "target", target.String())
		}

		if top.next < len(node.Imports) {
			child := node.Imports[top.next]
			top.next++
			if state[child] == unvisited {
				state[child] = visiting
				stack = append(stack, frame{idx: child})
			}
			continue
		}

		stack = stack[:len(stack)-1]
		if state[top.idx] == emitted {
			return nil, zerr.With(domain.ErrCyclicFlattenGuard, "module", node.Key.String())
		}
		state[top.idx] = emitted
		order = append(order, top.idx)
	}

	unit := &domain.FlattenedUnit{Target: g.Node(root).Key}
	for _, idx := range order {
		node := g.Node(idx)
		unit.Parts = append(unit.Parts, domain.FlattenedPart{
			Key:  node.Key,
			Text: domain.CutSpans(node.Source, node.Scan.StripRanges()),
		})
	}
	unit.Header = header(g, root, order)
	return unit, nil
}

// header hoists one license, one solidity pragma and every distinct other pragma.
// The target's license and solidity pragma win over those of its dependencies.
func header(g *domain.ImportGraph, root int, order []int) []string {
	var (
		license string
		version string
		others  []string
	)
	if scan := g.Node(root).Scan; scan != nil {
		if len(scan.Licenses) > 0 {
			license = scan.Licenses[0].Text()
		}
		if p, ok := scan.SolidityPragma(); ok {
			version = p.Text()
		}
	}

	for _, idx := range order {
		scan := g.Node(idx).Scan
		if license == "" && len(scan.Licenses) > 0 {
			license = scan.Licenses[0].Text()
		}
		for _, p := range scan.Pragmas {
			switch {
			case p.IsSolidity():
				if version == "" {
					version = p.Text()
				}
			case !slices.Contains(others, p.Text()):
				others = append(others, p.Text())
			}
		}
	}

	var out []string
	for _, line := range []string{license, version} {
		if line != "" {
			out = append(out, line)
		}
	}
	return append(out, others...)
}
