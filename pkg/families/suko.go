package families

import (
	"fmt"
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/generate"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

func init() {
	register(&Family{
		Name:        "suko",
		DefaultSize: 3,
		FixedSize:   true,
		Generate:    generateSuko,
		Build:       buildSuko,
	})
}

// generateSuko shuffles 1..9 over the 3x3 grid and derives the published
// targets: the four overlapping quadrant sums followed by one sum per color
// zone. Any permutation is valid, so there is no fallback path.
func generateSuko(rng *rand.Rand, _ Params) (puzzle.Assignment, puzzle.Layout, bool) {
	sol := generate.Suko(rng)
	zones := generate.SukoZones(rng)

	sums := make([]int, 0, 7)
	for _, quad := range generate.SukoQuads {
		s := 0
		for _, cell := range quad {
			s += int(sol[cell])
		}
		sums = append(sums, s)
	}
	zoneSums := [3]int{}
	for cell, zone := range zones {
		zoneSums[zone] += int(sol[cell])
	}
	sums = append(sums, zoneSums[0], zoneSums[1], zoneSums[2])

	return sol, puzzle.Layout{Zones: zones, Sums: sums}, false
}

// buildSuko creates the model: nine cells over 1..9, all distinct, four
// quadrant sum groups and three zone sum groups.
func buildSuko(rows, cols int, layout puzzle.Layout) (*puzzle.Model, error) {
	if rows != 3 || cols != 3 {
		return nil, fmt.Errorf("%w: suko is always 3x3", puzzle.ErrBadGeometry)
	}
	if len(layout.Zones) != 9 || len(layout.Sums) != 7 {
		return nil, fmt.Errorf("%w: suko layout needs 9 zones and 7 sums", puzzle.ErrBadGroup)
	}

	domain := make([]puzzle.Value, 9)
	for i := range domain {
		domain[i] = puzzle.Value(i + 1)
	}
	m, err := puzzle.NewModel("suko", 3, 3, domain)
	if err != nil {
		return nil, err
	}

	all := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	if err := m.AddGroup(puzzle.Group{Name: "digits", Kind: puzzle.GroupAllDistinct, Vars: all}); err != nil {
		return nil, err
	}

	for qi, quad := range generate.SukoQuads {
		err := m.AddGroup(puzzle.Group{
			Name:   fmt.Sprintf("quadrant %d", qi),
			Kind:   puzzle.GroupExactSum,
			Vars:   []int{quad[0], quad[1], quad[2], quad[3]},
			Target: layout.Sums[qi],
		})
		if err != nil {
			return nil, err
		}
	}

	zoneVars := make([][]int, 3)
	for cell, zone := range layout.Zones {
		if zone < 0 || zone > 2 {
			return nil, fmt.Errorf("%w: zone %d", puzzle.ErrBadGroup, zone)
		}
		zoneVars[zone] = append(zoneVars[zone], cell)
	}
	for zi, vars := range zoneVars {
		err := m.AddGroup(puzzle.Group{
			Name:   fmt.Sprintf("zone %d", zi),
			Kind:   puzzle.GroupExactSum,
			Vars:   vars,
			Target: layout.Sums[4+zi],
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
