package generate

import (
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// Suko returns a random full suko solution: the digits 1..9 shuffled over
// the 3x3 grid. Any permutation is valid, so this builder cannot fail; the
// clue targets (quadrant and zone sums) are derived from it afterwards.
func Suko(rng *rand.Rand) puzzle.Assignment {
	a := make(puzzle.Assignment, 9)
	for i := range a {
		a[i] = puzzle.Value(i + 1)
	}
	rng.Shuffle(9, func(i, j int) { a[i], a[j] = a[j], a[i] })
	return a
}

// SukoZones colors the nine cells with three zones whose sizes are each
// between 2 and 5 and sum to 9, assigning shuffled cells to zones in order.
func SukoZones(rng *rand.Rand) []int {
	var sizes [3]int
	for {
		sizes[0] = 2 + rng.Intn(4)
		sizes[1] = 2 + rng.Intn(4)
		sizes[2] = 9 - sizes[0] - sizes[1]
		if sizes[2] >= 2 && sizes[2] <= 5 {
			break
		}
	}

	order := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	rng.Shuffle(9, func(i, j int) { order[i], order[j] = order[j], order[i] })

	zones := make([]int, 9)
	k := 0
	for zone, size := range sizes {
		for i := 0; i < size; i++ {
			zones[order[k]] = zone
			k++
		}
	}
	return zones
}

// SukoQuads lists the four overlapping 2x2 quadrants of the 3x3 grid in
// reading order: top-left, top-right, bottom-left, bottom-right.
var SukoQuads = [4][4]int{
	{0, 1, 3, 4},
	{1, 2, 4, 5},
	{3, 4, 6, 7},
	{4, 5, 7, 8},
}

// SukoFallback is the fixed trivial instance: digits 1..9 in reading order.
func SukoFallback() puzzle.Assignment {
	a := make(puzzle.Assignment, 9)
	for i := range a {
		a[i] = puzzle.Value(i + 1)
	}
	return a
}
