package families

import (
	"fmt"
	"math/rand"

	"github.com/ianfhunter/enigma/pkg/generate"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

func init() {
	register(&Family{
		Name:        "tetro",
		DefaultSize: 8,
		Generate:    generateTetro,
		Build:       buildTetro,
	})
}

// tetroAttempts bounds partition-plus-shading retries. Each retry draws a
// fresh region partition, so a snaky region that fits no piece is simply
// rolled again.
const tetroAttempts = 40

// generateTetro partitions the grid into regions, assigns each region a
// random target tetromino, and shades one placement of it. When no
// partition works within the attempt budget the fixed fallback tiling (row
// strips of I pieces) is returned.
func generateTetro(rng *rand.Rand, p Params) (puzzle.Assignment, puzzle.Layout, bool) {
	size := p.RegionSize
	if size < 4 || (p.Rows*p.Cols)%size != 0 {
		size = defaultRegionSize(p.Rows, p.Cols)
	}
	names := puzzle.TetrominoNames()

	for attempt := 0; attempt < tetroAttempts; attempt++ {
		ids, err := generate.Regions(rng, p.Rows, p.Cols, size, 0)
		if err != nil {
			break
		}
		regions := generate.RegionCells(ids)
		targets := make([]string, len(regions))
		for i := range targets {
			targets[i] = names[rng.Intn(len(names))]
		}
		sol, err := generate.TetroShade(rng, regions, p.Cols, targets)
		if err != nil {
			continue
		}
		return sol, puzzle.Layout{Regions: ids, ShapeNames: targets}, false
	}
	return tetroFallback(p.Rows, p.Cols)
}

// defaultRegionSize picks the largest divisor of the cell count in 4..8 so
// every region can hold a tetromino with slack.
func defaultRegionSize(rows, cols int) int {
	n := rows * cols
	for size := 8; size >= 4; size-- {
		if n%size == 0 {
			return size
		}
	}
	return 4
}

// tetroFallback tiles rows of width-4 strips, each shaded as an I piece.
func tetroFallback(rows, cols int) (puzzle.Assignment, puzzle.Layout, bool) {
	n := rows * cols
	ids := make([]int, n)
	names := make([]string, 0, n/4)
	sol := make(puzzle.Assignment, n)
	region := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c += 4 {
			width := min(4, cols-c)
			for k := 0; k < width; k++ {
				ids[r*cols+c+k] = region
			}
			names = append(names, "I")
			region++
		}
	}
	// A strip narrower than 4 cannot hold an I piece; shade nothing there
	// and the builder will reject it, so pad narrow grids into one region
	// per row instead.
	if cols%4 != 0 {
		return tetroRowFallback(rows, cols)
	}
	for i := range sol {
		sol[i] = generate.TetroShaded
	}
	return sol, puzzle.Layout{Regions: ids, ShapeNames: names}, true
}

// tetroRowFallback uses whole rows as regions (requires cols >= 4), shading
// the first four cells of each row.
func tetroRowFallback(rows, cols int) (puzzle.Assignment, puzzle.Layout, bool) {
	n := rows * cols
	ids := make([]int, n)
	names := make([]string, rows)
	sol := make(puzzle.Assignment, n)
	for r := 0; r < rows; r++ {
		names[r] = "I"
		for c := 0; c < cols; c++ {
			ids[r*cols+c] = r
		}
		for c := 0; c < 4 && c < cols; c++ {
			sol[r*cols+c] = generate.TetroShaded
		}
	}
	return sol, puzzle.Layout{Regions: ids, ShapeNames: names}, true
}

// buildTetro creates the model: one shade/no-shade variable per cell and a
// shape group per region requiring exactly four shaded cells forming the
// region's target tetromino.
func buildTetro(rows, cols int, layout puzzle.Layout) (*puzzle.Model, error) {
	if len(layout.Regions) != rows*cols {
		return nil, fmt.Errorf("%w: tetro layout needs one region id per cell", puzzle.ErrBadGroup)
	}
	m, err := puzzle.NewModel("tetro", rows, cols, []puzzle.Value{generate.TetroEmpty, generate.TetroShaded})
	if err != nil {
		return nil, err
	}

	regions := generate.RegionCells(layout.Regions)
	if len(layout.ShapeNames) != len(regions) {
		return nil, fmt.Errorf("%w: tetro layout needs one shape per region", puzzle.ErrBadGroup)
	}
	for ri, cells := range regions {
		shapes := puzzle.Tetromino(layout.ShapeNames[ri])
		if shapes == nil {
			return nil, fmt.Errorf("%w: unknown tetromino %q", puzzle.ErrBadGroup, layout.ShapeNames[ri])
		}
		err := m.AddGroup(puzzle.Group{
			Name:    fmt.Sprintf("region %d (%s)", ri, layout.ShapeNames[ri]),
			Kind:    puzzle.GroupShape,
			Vars:    cells,
			Counted: generate.TetroShaded,
			Target:  4,
			Shapes:  shapes,
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
