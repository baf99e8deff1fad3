package solver

import (
	"testing"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// sumModel builds a 1x3 grid over 1..3 where all values are distinct and
// sum to 6. Exactly 3! = 6 total assignments satisfy it.
func sumModel(t *testing.T) *puzzle.Model {
	t.Helper()
	m, err := puzzle.NewModel("test", 1, 3, []puzzle.Value{1, 2, 3})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	vars := []int{0, 1, 2}
	if err := m.AddGroup(puzzle.Group{Name: "distinct", Kind: puzzle.GroupAllDistinct, Vars: vars}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	if err := m.AddGroup(puzzle.Group{Name: "sum", Kind: puzzle.GroupExactSum, Vars: vars, Target: 6}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	return m
}

func TestSolveEnumeratesUpToLimit(t *testing.T) {
	m := sumModel(t)

	res := Solve(m, nil, Options{Limit: 10})
	if res.Status != StatusExhausted {
		t.Fatalf("status = %v, want exhausted", res.Status)
	}
	if len(res.Solutions) != 6 {
		t.Fatalf("got %d solutions, want 6", len(res.Solutions))
	}

	res = Solve(m, nil, Options{Limit: 2})
	if res.Status != StatusLimitReached {
		t.Fatalf("status = %v, want limit-reached", res.Status)
	}
	if len(res.Solutions) != 2 {
		t.Fatalf("got %d solutions, want 2", len(res.Solutions))
	}
}

func TestSolveRespectsClues(t *testing.T) {
	m := sumModel(t)
	clues := puzzle.NewAssignment(3)
	clues[0] = 1
	clues[1] = 2

	res := Solve(m, clues, Options{Limit: 2})
	if !res.Unique() {
		t.Fatalf("expected a unique completion, got %d solutions (%v)", len(res.Solutions), res.Status)
	}
	want := puzzle.Assignment{1, 2, 3}
	got := res.Solutions[0]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("solution = %v, want %v", got, want)
		}
	}
}

func TestSolveRejectsContradictoryClues(t *testing.T) {
	m := sumModel(t)
	clues := puzzle.NewAssignment(3)
	clues[0] = 2
	clues[1] = 2 // duplicate breaks the distinct group

	res := Solve(m, clues, Options{Limit: 2})
	if res.Status != StatusExhausted || len(res.Solutions) != 0 {
		t.Fatalf("want zero solutions exhausted, got %d (%v)", len(res.Solutions), res.Status)
	}
}

func TestSolveBoundExceededIsNotUnsat(t *testing.T) {
	// 3x3 latin-ish grid with a starved state budget.
	m, err := puzzle.NewModel("test", 3, 3, []puzzle.Value{1, 2, 3})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	for r := 0; r < 3; r++ {
		vars := []int{m.Index(r, 0), m.Index(r, 1), m.Index(r, 2)}
		if err := m.AddGroup(puzzle.Group{Kind: puzzle.GroupAllDistinct, Vars: vars}); err != nil {
			t.Fatalf("AddGroup: %v", err)
		}
	}

	res := Solve(m, nil, Options{Limit: 2, MaxStates: 3})
	if res.Status != StatusBoundExceeded {
		t.Fatalf("status = %v, want bound-exceeded", res.Status)
	}
	if res.Unique() {
		t.Fatal("a bounded search must never claim uniqueness")
	}
}

func TestSolveConsecutiveRun(t *testing.T) {
	m, err := puzzle.NewModel("test", 1, 3, []puzzle.Value{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if err := m.AddGroup(puzzle.Group{Kind: puzzle.GroupConsecutiveRun, Vars: []int{0, 1, 2}}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	clues := puzzle.NewAssignment(3)
	clues[0] = 2
	clues[2] = 4

	res := Solve(m, clues, Options{Limit: 5})
	if len(res.Solutions) != 1 {
		t.Fatalf("got %d solutions, want 1 (the middle cell must be 3)", len(res.Solutions))
	}
	if res.Solutions[0][1] != 3 {
		t.Fatalf("middle cell = %d, want 3", res.Solutions[0][1])
	}
}

func TestSolveNoCycle(t *testing.T) {
	// A 2x2 slant-style model: each cell picks one of two diagonals over
	// a 3x3 vertex lattice. Every orientation set without a closed loop
	// is a solution.
	m, err := puzzle.NewModel("test", 2, 2, []puzzle.Value{0, 1})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	vars := []int{0, 1, 2, 3}
	ends := make([][]puzzle.Edge, 4)
	for i, v := range vars {
		r, c := v/2, v%2
		nw := r*3 + c
		ne := r*3 + c + 1
		sw := (r+1)*3 + c
		se := (r+1)*3 + c + 1
		// value 0 = "/" (ne-sw), value 1 = "\" (nw-se)
		ends[i] = []puzzle.Edge{{A: ne, B: sw}, {A: nw, B: se}}
	}
	if err := m.AddGroup(puzzle.Group{Kind: puzzle.GroupNoCycle, Vars: vars, Verts: 9, Ends: ends}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}

	res := Solve(m, nil, Options{Limit: 100})
	if res.Status != StatusExhausted {
		t.Fatalf("status = %v, want exhausted", res.Status)
	}
	// Of the 16 orientation sets exactly one closes a loop: the diamond
	// through the four edge-midpoint vertices. Every accepted solution
	// must also replay cleanly through a fresh DSU.
	if len(res.Solutions) != 15 {
		t.Fatalf("got %d solutions, want 15", len(res.Solutions))
	}
	for _, sol := range res.Solutions {
		g := m.Group(0)
		if bad := puzzle.CycleVars(m, g, sol); bad != nil {
			t.Fatalf("solution %v contains cycle vars %v", sol, bad)
		}
	}
}

func TestSolveRejectsOutOfDomainClues(t *testing.T) {
	// A grid loaded from outside the engine can carry any byte values;
	// the search must refuse them instead of indexing counters with them.
	cases := []struct {
		name string
		val  puzzle.Value
	}{
		{"above domain", 5},
		{"negative", -5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := sumModel(t)
			clues := puzzle.NewAssignment(3)
			clues[0] = tc.val

			res := Solve(m, clues, Options{Limit: 2})
			if res.Status != StatusExhausted || len(res.Solutions) != 0 {
				t.Fatalf("want zero solutions exhausted, got %d (%v)", len(res.Solutions), res.Status)
			}
		})
	}
}

func TestSolveRejectsOutOfDomainNoCycleClue(t *testing.T) {
	// NoCycle groups index their edge table by domain position, so a
	// stray value must be caught before the lookup.
	m, err := puzzle.NewModel("test", 1, 1, []puzzle.Value{0, 1})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	ends := [][]puzzle.Edge{{{A: 1, B: 2}, {A: 0, B: 3}}}
	if err := m.AddGroup(puzzle.Group{Kind: puzzle.GroupNoCycle, Vars: []int{0}, Verts: 4, Ends: ends}); err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	clues := puzzle.Assignment{5}

	res := Solve(m, clues, Options{Limit: 2})
	if res.Status != StatusExhausted || len(res.Solutions) != 0 {
		t.Fatalf("want zero solutions exhausted, got %d (%v)", len(res.Solutions), res.Status)
	}
}
