package families

import (
	"fmt"
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/generate"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

func init() {
	register(&Family{
		Name:        "tents",
		DefaultSize: 8,
		Generate:    generateTents,
		Build:       buildTents,
	})
}

// generateTents places tree/tent pairs, then derives the layout: tree
// anchors plus exact tent counts per row and column. The placement builder
// degrades density instead of failing, so the fallback only covers grids
// too small to hold a single pair.
func generateTents(rng *rand.Rand, p Params) (puzzle.Assignment, puzzle.Layout, bool) {
	sol := generate.Tents(rng, p.Rows, p.Cols, p.Pairs)
	fallback := false
	if countValue(sol, generate.TentTent) == 0 && p.Rows*p.Cols >= 2 {
		// Nothing placed at all; hand out the fixed corner pair.
		sol = generate.TentsFallback(p.Rows, p.Cols)
		fallback = true
	}
	return sol, tentsLayout(sol, p.Rows, p.Cols), fallback
}

func tentsLayout(sol puzzle.Assignment, rows, cols int) puzzle.Layout {
	var layout puzzle.Layout
	layout.RowTargets = make([]int, rows)
	layout.ColTargets = make([]int, cols)
	for v, val := range sol {
		switch val {
		case generate.TentTree:
			layout.Anchors = append(layout.Anchors, v)
		case generate.TentTent:
			layout.RowTargets[v/cols]++
			layout.ColTargets[v%cols]++
		}
	}
	return layout
}

// buildTents creates the model: free cells choose between grass and tent,
// tree cells are fixed, rows and columns carry exact tent counts, tents
// never touch (8-neighborhood), and the non-tent cells form one connected
// region.
func buildTents(rows, cols int, layout puzzle.Layout) (*puzzle.Model, error) {
	m, err := puzzle.NewModel("tents", rows, cols, []puzzle.Value{generate.TentEmpty, generate.TentTent})
	if err != nil {
		return nil, err
	}
	if len(layout.RowTargets) != rows || len(layout.ColTargets) != cols {
		return nil, fmt.Errorf("%w: tents layout needs %dx%d targets", puzzle.ErrBadGroup, rows, cols)
	}

	m.Fixed = puzzle.NewAssignment(rows * cols)
	for _, a := range layout.Anchors {
		if a < 0 || a >= rows*cols {
			return nil, fmt.Errorf("%w: anchor %d out of range", puzzle.ErrBadGroup, a)
		}
		m.Fixed[a] = generate.TentTree
	}

	all := make([]int, rows*cols)
	for i := range all {
		all[i] = i
	}

	for r := 0; r < rows; r++ {
		vars := make([]int, cols)
		for c := 0; c < cols; c++ {
			vars[c] = m.Index(r, c)
		}
		err := m.AddGroup(puzzle.Group{
			Name:    fmt.Sprintf("row %d", r),
			Kind:    puzzle.GroupExactCount,
			Vars:    vars,
			Counted: generate.TentTent,
			Target:  layout.RowTargets[r],
		})
		if err != nil {
			return nil, err
		}
	}
	for c := 0; c < cols; c++ {
		vars := make([]int, rows)
		for r := 0; r < rows; r++ {
			vars[r] = m.Index(r, c)
		}
		err := m.AddGroup(puzzle.Group{
			Name:    fmt.Sprintf("col %d", c),
			Kind:    puzzle.GroupExactCount,
			Vars:    vars,
			Counted: generate.TentTent,
			Target:  layout.ColTargets[c],
		})
		if err != nil {
			return nil, err
		}
	}

	err = m.AddGroup(puzzle.Group{
		Name:    "tent spacing",
		Kind:    puzzle.GroupNoTouch,
		Vars:    all,
		Counted: generate.TentTent,
	})
	if err != nil {
		return nil, err
	}

	err = m.AddGroup(puzzle.Group{
		Name:    "open region",
		Kind:    puzzle.GroupConnected,
		Vars:    all,
		Counted: generate.TentTent,
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func countValue(a puzzle.Assignment, v puzzle.Value) int {
	n := 0
	for _, x := range a {
		if x == v {
			n++
		}
	}
	return n
}
