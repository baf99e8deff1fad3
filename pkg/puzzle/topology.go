package puzzle

import "github.com/ianfhunter/enigma/pkg/dsu"

// CycleVars replays a no-cycle group's implied edges over the assignment,
// in member order, and returns the member variables whose edge closed a
// cycle. A nil result means the chosen edges form a forest.
//
// The replay is O(members) with a scratch DSU; it runs from scratch on
// every call, which is cheap enough to repeat after each single-cell edit.
func CycleVars(m *Model, g *Group, a Assignment) []int {
	d := dsu.New(g.Verts)
	var bad []int
	for i, v := range g.Vars {
		val := a[v]
		if val == Unassigned {
			continue
		}
		vi := m.DomainIndex(val)
		if vi < 0 {
			bad = append(bad, v)
			continue
		}
		e := g.Ends[i][vi]
		if !d.Union(e.A, e.B) {
			bad = append(bad, v)
		}
	}
	return bad
}

// RegionConnected reports whether the group's non-blocked cells can still
// form a single orthogonally connected region. Unassigned cells count as
// passable, so a partial grid only fails once two non-blocked cells are
// provably separated by blocking assignments.
func RegionConnected(m *Model, g *Group, a Assignment) bool {
	member := make(map[int]bool, len(g.Vars))
	for _, v := range g.Vars {
		member[v] = true
	}

	blocked := func(v int) bool { return a[v] == g.Counted }

	// Flood from any open member through non-blocked member cells.
	start := -1
	for _, v := range g.Vars {
		if !blocked(v) {
			start = v
			break
		}
	}
	if start == -1 {
		return true // everything blocked, nothing to connect
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

	// Only assigned, non-blocked cells must already be reachable; open
	// unassigned cells that are unreachable could still become blocked.
	for _, v := range g.Vars {
		if a[v] != Unassigned && !blocked(v) && !seen[v] {
			return false
		}
	}
	return true
}
