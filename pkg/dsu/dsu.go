// Package dsu implements a disjoint-set union (union-find) structure used
// for cheap cycle and connectivity checks during puzzle generation and
// solving.
//
// The structure tracks which vertices of an abstract graph are already
// connected. Union returns false when both endpoints share a root, which is
// exactly the "this edge would close a cycle" signal the generators and the
// solver rely on. Clone produces an independent snapshot so speculative
// search branches can explore without corrupting each other.
//
// A DSU cannot fail; it only reports topology facts.
package dsu

import "slices"

// DSU is a union-find structure over vertices 0..n-1 with path compression
// and union by rank. The zero value is not usable - use New.
//
// DSU is not safe for concurrent use. Search code that needs to explore
// alternatives takes a Clone rather than sharing one instance across
// branches.
type DSU struct {
	parent []int
	rank   []int
	sets   int
}

// New creates a DSU with n singleton vertices.
func New(n int) *DSU {
	d := &DSU{
		parent: make([]int, n),
		rank:   make([]int, n),
		sets:   n,
	}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// Find returns the root of x's component, compressing the path on the way.
// Amortized near O(1).
func (d *DSU) Find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]] // halve the path
		x = d.parent[x]
	}
	return x
}

// Union merges the components of a and b. It returns false if a and b were
// already connected, i.e. adding the edge a-b would close a cycle.
func (d *DSU) Union(a, b int) bool {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return false
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
	d.sets--
	return true
}

// Connected reports whether a and b are in the same component.
func (d *DSU) Connected(a, b int) bool {
	return d.Find(a) == d.Find(b)
}

// Len returns the number of vertices.
func (d *DSU) Len() int { return len(d.parent) }

// Sets returns the current number of disjoint components.
func (d *DSU) Sets() int { return d.sets }

// Clone returns an independent copy of the structure. The copy is a full
// O(n) array copy; it is taken at backtracking branch points where
// rollback-by-recomputation would cost more than the copy.
func (d *DSU) Clone() *DSU {
	return &DSU{
		parent: slices.Clone(d.parent),
		rank:   slices.Clone(d.rank),
		sets:   d.sets,
	}
}
