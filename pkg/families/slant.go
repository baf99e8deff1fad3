package families

import (
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/generate"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

func init() {
	register(&Family{
		Name:        "slant",
		DefaultSize: 8,
		Generate:    generateSlant,
		Build:       buildSlant,
	})
}

// generateSlant builds an acyclic diagonal orientation for every cell. The
// layout carries no extra geometry; the grid size is the whole story.
func generateSlant(rng *rand.Rand, p Params) (puzzle.Assignment, puzzle.Layout, bool) {
	sol, err := generate.Slant(rng, p.Rows, p.Cols, p.Attempts)
	if err != nil {
		return generate.SlantFallback(p.Rows, p.Cols), puzzle.Layout{}, true
	}
	return sol, puzzle.Layout{}, false
}

// buildSlant creates the model: one variable per cell with domain {"/",
// "\"} and a single no-cycle group over the (rows+1)x(cols+1) vertex
// lattice.
func buildSlant(rows, cols int, _ puzzle.Layout) (*puzzle.Model, error) {
	m, err := puzzle.NewModel("slant", rows, cols, []puzzle.Value{generate.SlantNE, generate.SlantNW})
	if err != nil {
		return nil, err
	}

	n := rows * cols
	vars := make([]int, n)
	ends := make([][]puzzle.Edge, n)
	for v := 0; v < n; v++ {
		vars[v] = v
		r, c := v/cols, v%cols
		ends[v] = []puzzle.Edge{
			generate.SlantEnds(r, c, cols, generate.SlantNE),
			generate.SlantEnds(r, c, cols, generate.SlantNW),
		}
	}

	err = m.AddGroup(puzzle.Group{
		Name:  "lattice",
		Kind:  puzzle.GroupNoCycle,
		Vars:  vars,
		Verts: (rows + 1) * (cols + 1),
		Ends:  ends,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
