// Package validate checks a partially filled grid against its constraint
// model and reports which cells are provably wrong.
//
// The check is a full recompute: every group is evaluated from scratch over
// the current grid. Grids are small and edits arrive one cell at a time, so
// a from-scratch pass after each edit stays well under interactive budgets
// and avoids the bookkeeping bugs of incremental invalidation.
//
// Two rules shape every predicate here. First, an unassigned cell is never
// an error - silence about a cell is not a claim about it. Second, a clean
// report does not mean the puzzle is solved; Report.Solved additionally
// requires a complete grid.
package validate

import (
	"sort"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// Report is the outcome of one validation pass.
type Report struct {
	// Bad lists the variables that currently violate at least one group
	// predicate, sorted ascending. Only assigned variables ever appear.
	Bad []int

	// Solved is true when the grid is complete and error-free, which for a
	// well-formed model means it satisfies every constraint exactly.
	Solved bool
}

// Clean reports whether no cell is currently in error.
func (r Report) Clean() bool { return len(r.Bad) == 0 }

// Check evaluates every group of the model against the grid.
func Check(m *puzzle.Model, grid puzzle.Assignment) Report {
	bad := make(map[int]bool)

	for v, val := range grid {
		if val != puzzle.Unassigned && m.DomainIndex(val) < 0 && !m.IsFixed(v) {
			bad[v] = true
		}
	}

	groups := m.Groups()
	for i := range groups {
		checkGroup(m, &groups[i], grid, bad)
	}

	r := Report{Bad: make([]int, 0, len(bad))}
	for v := range bad {
		r.Bad = append(r.Bad, v)
	}
	sort.Ints(r.Bad)
	r.Solved = grid.Complete() && len(r.Bad) == 0
	return r
}

func checkGroup(m *puzzle.Model, g *puzzle.Group, grid puzzle.Assignment, bad map[int]bool) {
	assigned, count := 0, 0
	sum := 0
	for _, v := range g.Vars {
		val := grid[v]
		if val == puzzle.Unassigned {
			continue
		}
		assigned++
		sum += int(val)
		if val == g.Counted {
			count++
		}
	}
	open := len(g.Vars) - assigned

	switch g.Kind {
	case puzzle.GroupAtMostCount:
		if count > g.Target {
			flagCounted(g, grid, bad)
		}

	case puzzle.GroupExactCount, puzzle.GroupShape:
		switch {
		case count > g.Target:
			flagCounted(g, grid, bad)
		case count+open < g.Target:
			// Even converting every open cell cannot reach the target;
			// some already-placed cell must change.
			flagAssigned(g, grid, bad)
		}
		if g.Kind == puzzle.GroupShape && open == 0 && count == g.Target {
			cells := countedCells(g, grid)
			if !puzzle.MatchesAny(cells, m.Cols, g.Shapes) {
				flagCounted(g, grid, bad)
			}
		}

	case puzzle.GroupExactSum:
		lo, hi := domainBounds(m.Domain)
		if sum+open*int(lo) > g.Target || sum+open*int(hi) < g.Target {
			flagAssigned(g, grid, bad)
		}

	case puzzle.GroupAllDistinct:
		flagDuplicates(g, grid, bad)

	case puzzle.GroupConsecutiveRun:
		flagDuplicates(g, grid, bad)
		if assigned > 0 {
			lo, hi := assignedBounds(g, grid)
			if int(hi-lo)+1 > len(g.Vars) {
				flagAssigned(g, grid, bad)
			}
		}

	case puzzle.GroupNoCycle:
		for _, v := range puzzle.CycleVars(m, g, grid) {
			bad[v] = true
		}

	case puzzle.GroupNoTouch:
		member := memberSet(g)
		for _, v := range g.Vars {
			if grid[v] != g.Counted {
				continue
			}
			for _, n := range m.Neighbors8(v) {
				if member[n] && grid[n] == g.Counted {
					bad[v] = true
					bad[n] = true
				}
			}
		}

	case puzzle.GroupConnected:
		for _, v := range strandedCells(m, g, grid) {
			bad[v] = true
		}
	}
}

// strandedCells returns the assigned open cells that can no longer reach the
// rest of the open region. Unassigned cells are passable, so a cell is only
// stranded once blocking assignments provably wall it off.
func strandedCells(m *puzzle.Model, g *puzzle.Group, grid puzzle.Assignment) []int {
	member := memberSet(g)
	blocked := func(v int) bool { return grid[v] == g.Counted }

	start := -1
	for _, v := range g.Vars {
		if !blocked(v) {
			start = v
			break
		}
	}
	if start == -1 {
		return nil
	}

	seen := make(map[int]bool, len(g.Vars))
	stack := []int{start}
	seen[start] = true
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range m.Neighbors4(v) {
			if member[n] && !seen[n] && !blocked(n) {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}

	var out []int
	for _, v := range g.Vars {
		if grid[v] != puzzle.Unassigned && !blocked(v) && !seen[v] {
			out = append(out, v)
		}
	}
	return out
}

func flagCounted(g *puzzle.Group, grid puzzle.Assignment, bad map[int]bool) {
	for _, v := range g.Vars {
		if grid[v] == g.Counted {
			bad[v] = true
		}
	}
}

func flagAssigned(g *puzzle.Group, grid puzzle.Assignment, bad map[int]bool) {
	for _, v := range g.Vars {
		if grid[v] != puzzle.Unassigned {
			bad[v] = true
		}
	}
}

func flagDuplicates(g *puzzle.Group, grid puzzle.Assignment, bad map[int]bool) {
	seen := make(map[puzzle.Value][]int)
	for _, v := range g.Vars {
		if grid[v] != puzzle.Unassigned {
			seen[grid[v]] = append(seen[grid[v]], v)
		}
	}
	for _, vars := range seen {
		if len(vars) > 1 {
			for _, v := range vars {
				bad[v] = true
			}
		}
	}
}

func countedCells(g *puzzle.Group, grid puzzle.Assignment) []int {
	var cells []int
	for _, v := range g.Vars {
		if grid[v] == g.Counted {
			cells = append(cells, v)
		}
	}
	return cells
}

func memberSet(g *puzzle.Group) map[int]bool {
	m := make(map[int]bool, len(g.Vars))
	for _, v := range g.Vars {
		m[v] = true
	}
	return m
}

func assignedBounds(g *puzzle.Group, grid puzzle.Assignment) (lo, hi puzzle.Value) {
	lo, hi = puzzle.Value(127), puzzle.Value(-128)
	for _, v := range g.Vars {
		val := grid[v]
		if val == puzzle.Unassigned {
			continue
		}
		if val < lo {
			lo = val
		}
		if val > hi {
			hi = val
		}
	}
	return lo, hi
}

func domainBounds(domain []puzzle.Value) (lo, hi puzzle.Value) {
	lo, hi = domain[0], domain[0]
	for _, v := range domain[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
