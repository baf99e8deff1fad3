package generate

import (
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// Tents cell values.
const (
	TentEmpty puzzle.Value = 0
	TentTent  puzzle.Value = 1
	TentTree  puzzle.Value = 2
)

// neighborOffsets are the four orthogonal tree-to-tent directions.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Tents places up to pairs tree/tent pairs on a rows x cols grid. Each tent
// is orthogonally adjacent to its tree, no tent touches another tent
// (diagonals included), and the non-tent cells always remain one connected
// region. Anchors that cannot take a tent are skipped rather than aborting,
// so the result may hold fewer pairs than asked for; it is always valid.
//
// pairs <= 0 means roughly one pair per five cells.
func Tents(rng *rand.Rand, rows, cols, pairs int) puzzle.Assignment {
	n := rows * cols
	if pairs <= 0 {
		pairs = n / 5
	}

	a := make(puzzle.Assignment, n) // TentEmpty
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}
	rng.Shuffle(n, func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	placed := 0
	for _, anchor := range candidates {
		if placed >= pairs {
			break
		}
		if a[anchor] != TentEmpty {
			continue
		}
		r, c := anchor/cols, anchor%cols

		offs := neighborOffsets
		rng.Shuffle(len(offs), func(i, j int) { offs[i], offs[j] = offs[j], offs[i] })

		for _, off := range offs {
			tr, tc := r+off[0], c+off[1]
			if tr < 0 || tr >= rows || tc < 0 || tc >= cols {
				continue
			}
			tent := tr*cols + tc
			if a[tent] != TentEmpty || touchesTent(a, tent, rows, cols) {
				continue
			}

			a[anchor] = TentTree
			a[tent] = TentTent
			// The tent must not disconnect the walkable area; this
			// check re-runs from scratch after every placement.
			if nonTentsConnected(a, rows, cols) {
				placed++
				break
			}
			a[anchor] = TentEmpty
			a[tent] = TentEmpty
		}
		// No legal tent for this anchor: skip it, do not abort.
	}
	return a
}

// TentsFallback is the fixed trivial instance: a single pair in the top-left
// corner, which is valid on any grid of at least 1x2.
func TentsFallback(rows, cols int) puzzle.Assignment {
	a := make(puzzle.Assignment, rows*cols)
	if cols >= 2 {
		a[0] = TentTree
		a[1] = TentTent
	}
	return a
}

// touchesTent reports whether any 8-neighborhood cell of v holds a tent.
func touchesTent(a puzzle.Assignment, v, rows, cols int) bool {
	r, c := v/cols, v%cols
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if nr >= 0 && nr < rows && nc >= 0 && nc < cols && a[nr*cols+nc] == TentTent {
				return true
			}
		}
	}
	return false
}

// nonTentsConnected flood-fills the non-tent cells and reports whether they
// form a single orthogonally connected region.
func nonTentsConnected(a puzzle.Assignment, rows, cols int) bool {
	start := -1
	open := 0
	for i, v := range a {
		if v != TentTent {
			open++
			if start == -1 {
				start = i
			}
		}
	}
	if open == 0 {
		return true
	}

	seen := make([]bool, len(a))
	stack := []int{start}
	seen[start] = true
	count := 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r, c := v/cols, v%cols
		for _, off := range neighborOffsets {
			nr, nc := r+off[0], c+off[1]
			if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
				continue
			}
			n := nr*cols + nc
			if !seen[n] && a[n] != TentTent {
				seen[n] = true
				count++
				stack = append(stack, n)
			}
		}
	}
	return count == open
}
