package reduce

import (
	"math/rand"
	"testing"

	"github.com/ianfhunter/enigma/pkg/puzzle"
	"github.com/ianfhunter/enigma/pkg/solver"
)

// distinctSumModel is a 1x3 row of digits 1..3 that must be distinct and
// sum to 6. Every permutation of (1,2,3) solves it, so a single clue pins
// the first variable but never determines the remaining two on its own.
func distinctSumModel(t *testing.T) *puzzle.Model {
	t.Helper()
	m, err := puzzle.NewModel("test", 1, 3, []puzzle.Value{1, 2, 3})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if err := m.AddGroup(puzzle.Group{Name: "digits", Kind: puzzle.GroupAllDistinct, Vars: []int{0, 1, 2}}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	if err := m.AddGroup(puzzle.Group{Name: "sum", Kind: puzzle.GroupExactSum, Vars: []int{0, 1, 2}, Target: 6}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	return m
}

func TestReducePreservesUniqueness(t *testing.T) {
	m := distinctSumModel(t)
	solution := puzzle.Assignment{1, 2, 3}

	res := Reduce(rand.New(rand.NewSource(7)), m, solution, solver.Options{})
	got := solver.Solve(m, res.Clues, solver.Options{Limit: 2})
	if !got.Unique() {
		t.Fatalf("reduced clue set is not unique: %d solutions, status %v", len(got.Solutions), got.Status)
	}
	if res.Hidden+res.Kept != len(solution) {
		t.Errorf("hidden %d + kept %d != %d variables", res.Hidden, res.Kept, len(solution))
	}
}

// With distinct digits summing to 6, any two clues determine the third,
// but one clue alone leaves two completions. The pass must end with
// exactly two clues standing regardless of shuffle order.
func TestReduceRestoresAmbiguousClue(t *testing.T) {
	m := distinctSumModel(t)
	solution := puzzle.Assignment{1, 2, 3}

	for seed := int64(0); seed < 8; seed++ {
		res := Reduce(rand.New(rand.NewSource(seed)), m, solution, solver.Options{})
		if res.Hidden != 1 || res.Kept != 2 {
			t.Errorf("seed %d: hidden=%d kept=%d, want 1/2", seed, res.Hidden, res.Kept)
		}
		if n := res.Clues.Assigned(); n != 2 {
			t.Errorf("seed %d: %d clues remain, want 2", seed, n)
		}
	}
}

func TestReduceSkipsFixedVariables(t *testing.T) {
	m, err := puzzle.NewModel("test", 1, 3, []puzzle.Value{0, 1})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m.Fixed = puzzle.NewAssignment(3)
	m.Fixed[1] = 1
	if err := m.AddGroup(puzzle.Group{Name: "count", Kind: puzzle.GroupExactCount, Vars: []int{0, 2}, Target: 2, Counted: 1}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	solution := puzzle.Assignment{1, 1, 1}

	res := Reduce(rand.New(rand.NewSource(1)), m, solution, solver.Options{})
	if res.Clues[1] != 1 {
		t.Errorf("fixed variable was hidden")
	}
	// Both free cells are forced by the count group, so every free clue
	// should come out.
	if res.Hidden != 2 {
		t.Errorf("hidden = %d, want 2", res.Hidden)
	}
}

func TestReduceKeepsClueWhenBoundExceeded(t *testing.T) {
	m := distinctSumModel(t)
	solution := puzzle.Assignment{1, 2, 3}

	res := Reduce(rand.New(rand.NewSource(3)), m, solution, solver.Options{MaxStates: 1})
	if !res.Aborted {
		t.Fatalf("expected at least one probe to hit the state bound")
	}
	if res.Hidden != 0 {
		t.Errorf("hidden = %d clues under a bound too small to prove anything", res.Hidden)
	}
	for i, v := range res.Clues {
		if v != solution[i] {
			t.Errorf("clue %d was removed without proof of uniqueness", i)
		}
	}
}

func TestReduceDeterministicPerSeed(t *testing.T) {
	m := distinctSumModel(t)
	solution := puzzle.Assignment{1, 2, 3}

	a := Reduce(rand.New(rand.NewSource(42)), m, solution, solver.Options{})
	b := Reduce(rand.New(rand.NewSource(42)), m, solution, solver.Options{})
	for i := range a.Clues {
		if a.Clues[i] != b.Clues[i] {
			t.Fatalf("same seed produced different clue sets at %d", i)
		}
	}
}
