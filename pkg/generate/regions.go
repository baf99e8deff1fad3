package generate

import (
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// Shaded marks a shaded cell in region-shading families.
const (
	TetroEmpty  puzzle.Value = 0
	TetroShaded puzzle.Value = 1
)

// Regions partitions a rows x cols grid into connected regions of the given
// size by random seeded growth: pick an unused cell, grow through unused
// orthogonal neighbors until the region is full, restart the whole
// partition when growth strands cells. attempts <= 0 means DefaultAttempts.
func Regions(rng *rand.Rand, rows, cols, size, attempts int) ([]int, error) {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	n := rows * cols
	if size <= 0 || n%size != 0 {
		return nil, ErrExhausted
	}

	for attempt := 0; attempt < attempts; attempt++ {
		ids := make([]int, n)
		for i := range ids {
			ids[i] = -1
		}
		if growRegions(rng, ids, rows, cols, size) {
			return ids, nil
		}
	}
	return nil, ErrExhausted
}

func growRegions(rng *rand.Rand, ids []int, rows, cols, size int) bool {
	n := rows * cols
	next := 0
	for used := 0; used < n; used += size {
		start := -1
		for i, id := range ids {
			if id == -1 {
				start = i
				break
			}
		}
		region := []int{start}
		ids[start] = next
		for len(region) < size {
			var frontier []int
			for _, cell := range region {
				r, c := cell/cols, cell%cols
				for _, off := range neighborOffsets {
					nr, nc := r+off[0], c+off[1]
					if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
						continue
					}
					if v := nr*cols + nc; ids[v] == -1 {
						frontier = append(frontier, v)
					}
				}
			}
			if len(frontier) == 0 {
				return false // stranded; retry the whole partition
			}
			pick := frontier[rng.Intn(len(frontier))]
			ids[pick] = next
			region = append(region, pick)
		}
		next++
	}
	return true
}

// RegionCells groups cell indices by region id.
func RegionCells(ids []int) [][]int {
	max := -1
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	out := make([][]int, max+1)
	for cell, id := range ids {
		out[id] = append(out[id], cell)
	}
	return out
}

// TetroShade shades one tetromino of the named kind inside each region,
// choosing uniformly among the placements that fit. Returns ErrExhausted
// when some region admits no placement of its target shape.
func TetroShade(rng *rand.Rand, regions [][]int, cols int, names []string) (puzzle.Assignment, error) {
	n := 0
	for _, cells := range regions {
		n += len(cells)
	}
	a := make(puzzle.Assignment, n) // TetroEmpty

	for ri, cells := range regions {
		placements := tetroPlacements(cells, cols, puzzle.Tetromino(names[ri]))
		if len(placements) == 0 {
			return nil, ErrExhausted
		}
		for _, cell := range placements[rng.Intn(len(placements))] {
			a[cell] = TetroShaded
		}
	}
	return a, nil
}

// tetroPlacements enumerates every 4-cell subset of the region matching one
// of the shapes. Regions are small, so brute force over anchor cells is
// fine.
func tetroPlacements(cells []int, cols int, shapes []puzzle.Shape) [][]int {
	inRegion := make(map[int]bool, len(cells))
	for _, c := range cells {
		inRegion[c] = true
	}
	var out [][]int
	for _, anchor := range cells {
		ar, ac := anchor/cols, anchor%cols
		for _, s := range shapes {
			placement := shapeAt(s, ar, ac, cols, inRegion)
			if placement != nil {
				out = append(out, placement)
			}
		}
	}
	return out
}

// shapeAt tries to stamp shape s with its origin at (ar,ac); nil when any
// cell falls outside the region.
func shapeAt(s puzzle.Shape, ar, ac, cols int, inRegion map[int]bool) []int {
	offs := s.Offsets()
	cells := make([]int, 0, len(offs))
	for _, off := range offs {
		r, c := ar+off[0], ac+off[1]
		if c < 0 || c >= cols {
			return nil
		}
		v := r*cols + c
		if !inRegion[v] {
			return nil
		}
		cells = append(cells, v)
	}
	return cells
}
