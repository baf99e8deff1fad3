// Package generate produces fully assigned, fully valid solutions by
// randomized constructive search with bounded retry.
//
// Two shapes of problem recur across puzzle families and are implemented
// here as reusable builders:
//
//   - Edge/orientation assignment ([Slant]): pick one of two diagonals per
//     cell so the chosen endpoints form a spanning forest. Cells are
//     visited in a random order, both orientations are tried against a
//     DSU, and a dead end discards the whole attempt. Retrying with a
//     fresh shuffle succeeds with high probability, so the generator never
//     backtracks - backtracking is the solver's job, used to verify, not
//     to construct.
//
//   - Object placement ([Tents]): place anchor/satellite pairs (trees and
//     tents) so satellites never touch each other and the unplaced cells
//     stay one connected region, checked by flood fill from scratch after
//     each placement. An anchor that cannot take a satellite is skipped,
//     not fatal; the generator accepts whatever density a bounded number
//     of tries yields.
//
// Every builder takes its *rand.Rand as a parameter so seeded and fully
// random generation share one code path. When all attempts are exhausted a
// builder returns ErrExhausted; callers fall back to the family's fixed
// trivial puzzle rather than surfacing a failure.
package generate

import (
	"errors"
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/dsu"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// ErrExhausted is returned when every bounded attempt failed to produce a
// valid solution. Callers recover with the family's fallback puzzle; the
// error never crosses the engine boundary.
var ErrExhausted = errors.New("generation attempts exhausted")

// DefaultAttempts bounds whole-grid retries for the orientation builder.
// A tunable, not a magic constant: larger grids may need more restarts,
// but the cap must keep worst-case latency interactive.
const DefaultAttempts = 200

// Slant orientation values.
const (
	SlantNE puzzle.Value = 0 // "/" - connects ne and sw lattice corners
	SlantNW puzzle.Value = 1 // "\" - connects nw and se lattice corners
)

// SlantEnds returns the lattice edge implied by orienting cell (r,c) on a
// grid with the given column count. The vertex lattice is
// (rows+1)x(cols+1), indexed row-major.
func SlantEnds(r, c, cols int, v puzzle.Value) puzzle.Edge {
	nw := r*(cols+1) + c
	ne := nw + 1
	sw := nw + cols + 1
	se := sw + 1
	if v == SlantNE {
		return puzzle.Edge{A: ne, B: sw}
	}
	return puzzle.Edge{A: nw, B: se}
}

// Slant builds a full acyclic orientation assignment for a rows x cols
// grid. attempts <= 0 means DefaultAttempts.
func Slant(rng *rand.Rand, rows, cols, attempts int) (puzzle.Assignment, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	n := rows * cols
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	for attempt := 0; attempt < attempts; attempt++ {
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		a := puzzle.NewAssignment(n)
		d := dsu.New((rows + 1) * (cols + 1))
		ok := true
		for _, cell := range order {
			r, c := cell/cols, cell%cols
			first := SlantNE
			if rng.Intn(2) == 1 {
				first = SlantNW
			}
			if !placeSlant(d, a, cell, r, c, cols, first) &&
				!placeSlant(d, a, cell, r, c, cols, 1-first) {
				// Both orientations close a cycle: discard the whole
				// partial grid and retry with a fresh shuffle.
				ok = false
				break
			}
		}
		if ok {
			return a, nil
		}
	}
	return nil, ErrExhausted
}

func placeSlant(d *dsu.DSU, a puzzle.Assignment, cell, r, c, cols int, v puzzle.Value) bool {
	e := SlantEnds(r, c, cols, v)
	if d.Connected(e.A, e.B) {
		return false
	}
	d.Union(e.A, e.B)
	a[cell] = v
	return true
}

// SlantFallback is the fixed always-valid tiling: every cell "/", which
// can never close a cycle on its own lattice.
func SlantFallback(rows, cols int) puzzle.Assignment {
	a := make(puzzle.Assignment, rows*cols)
	for i := range a {
		a[i] = SlantNE
	}
	return a
}
