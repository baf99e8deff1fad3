package puzzle

import "testing"

func TestShapeOfNormalizes(t *testing.T) {
	// The same L tetromino at two grid positions normalizes identically.
	a := ShapeOf([]int{0, 5, 10, 11}, 5)
	b := ShapeOf([]int{7, 12, 17, 18}, 5)
	if a != b {
		t.Errorf("translated shapes differ: %q vs %q", a, b)
	}
}

func TestTetrominoMatchesRotations(t *testing.T) {
	shapes := Tetromino("L")
	if len(shapes) == 0 {
		t.Fatal("no shapes for L")
	}

	// Vertical L and its 90-degree rotation on a 5-wide grid.
	vertical := []int{0, 5, 10, 11}
	rotated := []int{0, 1, 2, 5}
	if !MatchesAny(vertical, 5, shapes) {
		t.Error("vertical L not matched")
	}
	if !MatchesAny(rotated, 5, shapes) {
		t.Error("rotated L not matched")
	}

	// A square is not an L.
	square := []int{0, 1, 5, 6}
	if MatchesAny(square, 5, shapes) {
		t.Error("square matched against L shapes")
	}
}

func TestTetrominoNamesStable(t *testing.T) {
	names := TetrominoNames()
	if len(names) != len(tetrominoBase) {
		t.Fatalf("TetrominoNames returned %d names, want %d", len(names), len(tetrominoBase))
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate name %q", n)
		}
		seen[n] = true
		if _, ok := tetrominoBase[n]; !ok {
			t.Errorf("unknown name %q", n)
		}
	}
}

func TestShapeOffsetsRoundTrip(t *testing.T) {
	s := ShapeOf([]int{0, 1, 2, 3}, 6) // I tetromino
	pts := s.Offsets()
	if len(pts) != 4 {
		t.Fatalf("Offsets returned %d points, want 4", len(pts))
	}
	if got := offsetsShape(pts); got != s {
		t.Errorf("offsetsShape(Offsets()) = %q, want %q", got, s)
	}
}
