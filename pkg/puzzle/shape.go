package puzzle

import (
	"fmt"
	"sort"
	"strings"
)

// Shape is a canonical polyomino: cell offsets translated to the origin,
// sorted, and joined into a comparable string ("0,0 0,1 1,1 ..."). Two cell
// sets match iff their Shape strings are equal.
type Shape string

// ShapeOf normalizes a set of variable indices on a grid with the given
// column count into a canonical Shape. Rotations and reflections are NOT
// folded; a shape group lists every acceptable orientation explicitly.
func ShapeOf(cells []int, cols int) Shape {
	if len(cells) == 0 {
		return ""
	}
	type rc struct{ r, c int }
	pts := make([]rc, len(cells))
	minR, minC := int(^uint(0)>>1), int(^uint(0)>>1)
	for i, v := range cells {
		pts[i] = rc{v / cols, v % cols}
		if pts[i].r < minR {
			minR = pts[i].r
		}
		if pts[i].c < minC {
			minC = pts[i].c
		}
	}
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%d,%d", p.r-minR, p.c-minC)
	}
	sort.Strings(parts)
	return Shape(strings.Join(parts, " "))
}

// tetrominoBase holds one reference orientation per tetromino, as row/col
// offsets. Orientations returns every distinct rotation and reflection.
var tetrominoBase = map[string][][2]int{
	"I": {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	"L": {{0, 0}, {1, 0}, {2, 0}, {2, 1}},
	"T": {{0, 0}, {0, 1}, {0, 2}, {1, 1}},
	"S": {{0, 1}, {0, 2}, {1, 0}, {1, 1}},
	"O": {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
}

// TetrominoNames lists the supported tetromino identifiers.
func TetrominoNames() []string {
	names := make([]string, 0, len(tetrominoBase))
	for name := range tetrominoBase {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tetromino returns every distinct orientation (rotations and reflections)
// of the named tetromino, or nil if the name is unknown.
func Tetromino(name string) []Shape {
	base, ok := tetrominoBase[name]
	if !ok {
		return nil
	}
	seen := make(map[Shape]bool)
	var out []Shape
	cur := base
	for flip := 0; flip < 2; flip++ {
		for rot := 0; rot < 4; rot++ {
			s := offsetsShape(cur)
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
			cur = rotate(cur)
		}
		cur = reflect(base)
	}
	return out
}

func rotate(pts [][2]int) [][2]int {
	out := make([][2]int, len(pts))
	for i, p := range pts {
		out[i] = [2]int{p[1], -p[0]}
	}
	return out
}

func reflect(pts [][2]int) [][2]int {
	out := make([][2]int, len(pts))
	for i, p := range pts {
		out[i] = [2]int{p[0], -p[1]}
	}
	return out
}

// offsetsShape normalizes raw offsets (possibly negative after rotation)
// into a canonical Shape.
func offsetsShape(pts [][2]int) Shape {
	minR, minC := pts[0][0], pts[0][1]
	for _, p := range pts[1:] {
		if p[0] < minR {
			minR = p[0]
		}
		if p[1] < minC {
			minC = p[1]
		}
	}
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%d,%d", p[0]-minR, p[1]-minC)
	}
	sort.Strings(parts)
	return Shape(strings.Join(parts, " "))
}

// Offsets parses the canonical form back into row/column offsets.
func (s Shape) Offsets() [][2]int {
	if s == "" {
		return nil
	}
	fields := strings.Fields(string(s))
	out := make([][2]int, 0, len(fields))
	for _, f := range fields {
		var r, c int
		if _, err := fmt.Sscanf(f, "%d,%d", &r, &c); err != nil {
			continue
		}
		out = append(out, [2]int{r, c})
	}
	return out
}

// MatchesAny reports whether the cell set forms one of the given shapes.
func MatchesAny(cells []int, cols int, shapes []Shape) bool {
	got := ShapeOf(cells, cols)
	for _, s := range shapes {
		if s == got {
			return true
		}
	}
	return false
}
