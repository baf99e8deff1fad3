// Package reduce strips a fully clued solution down to a sparse clue set
// that still has exactly one solution.
//
// The pass is greedy and order-dependent by design: variables are shuffled
// once, then each one is hidden in turn and the solver re-counts solutions
// with limit 2. If the count is no longer exactly one the clue is restored
// permanently; otherwise it stays hidden. The result is locally
// irreducible - at the moment each clue was tested, removing it alone broke
// uniqueness - but not globally minimal. Do not "fix" this: the difficulty
// characteristics of the generated puzzles depend on the order-dependent
// behavior, and a globally minimal pass would be combinatorially expensive
// anyway.
package reduce

import (
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/puzzle"
	"github.com/ianfhunter/enigma/pkg/solver"
)

// Result reports what one reduction pass did.
type Result struct {
	Clues   puzzle.Assignment
	Hidden  int // clues removed
	Kept    int // clues restored because hiding them broke uniqueness
	States  int // total solver states spent across all probes
	Aborted bool // a probe hit the state bound; its clue was kept
}

// Reduce hides as many clues of the full solution as a single greedy pass
// allows while the clue set keeps exactly one solution. Variables fixed by
// the model (for example tree cells) are never candidates. The solver
// options' Limit is forced to 2; MaxStates is respected per probe.
func Reduce(rng *rand.Rand, m *puzzle.Model, solution puzzle.Assignment, opts solver.Options) Result {
	opts.Limit = 2

	clues := solution.Clone()
	order := make([]int, len(clues))
	for i := range order {
		order[i] = i
	}
	// One shuffle up front; the pass never revisits a decision.
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var res Result
	for _, v := range order {
		if m.IsFixed(v) || clues[v] == puzzle.Unassigned {
			continue
		}
		hidden := clues[v]
		clues[v] = puzzle.Unassigned

		probe := solver.Solve(m, clues, opts)
		res.States += probe.States
		if probe.Status == solver.StatusBoundExceeded {
			// Could not determine satisfiability; keep the clue rather
			// than risk an ambiguous puzzle.
			res.Aborted = true
			clues[v] = hidden
			res.Kept++
			continue
		}
		if len(probe.Solutions) != 1 {
			clues[v] = hidden
			res.Kept++
			continue
		}
		res.Hidden++
	}
	res.Clues = clues
	return res
}
