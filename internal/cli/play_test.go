package cli

import (
	"math/rand"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ianfhunter/enigma/pkg/families"
	"github.com/ianfhunter/enigma/pkg/puzzle"
	"github.com/ianfhunter/enigma/pkg/session"
)

// nearSolvedSuko builds a suko with every cell revealed except one, so a
// single correct keypress finishes the puzzle.
func nearSolvedSuko(t *testing.T) (*puzzle.Puzzle, *puzzle.Model) {
	t.Helper()
	fam, err := families.Lookup("suko")
	if err != nil {
		t.Fatalf("lookup suko: %v", err)
	}
	params := fam.Normalize(families.Params{})
	rng := rand.New(rand.NewSource(3))
	sol, layout, fallback := fam.Generate(rng, params)
	if fallback {
		t.Fatal("suko generation fell back")
	}

	clues := sol.Clone()
	clues[4] = puzzle.Unassigned
	p := puzzle.NewPuzzle("suko", 3, 3, 3, layout, sol, clues)

	m, err := fam.Build(3, 3, layout)
	if err != nil {
		t.Fatalf("build model: %v", err)
	}
	return p, m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlayModelSolvesOnLastCell(t *testing.T) {
	p, m := nearSolvedSuko(t)
	sess := session.New(p)
	pm := newPlayModel(p, m, sess, false)

	if pm.cursor != 4 {
		t.Fatalf("cursor starts at %d, want the free cell 4", pm.cursor)
	}
	if pm.report.Solved {
		t.Fatal("report solved before the last cell is set")
	}

	digit := byte('0' + byte(p.Solution[4]))
	next, cmd := pm.Update(key(string(digit)))
	pm = next.(playModel)

	if !pm.sess.Solved {
		t.Fatal("session not solved after entering the last correct digit")
	}
	if cmd == nil {
		t.Error("expected a quit command once solved")
	}
}

func TestPlayModelRejectsClueEdits(t *testing.T) {
	p, m := nearSolvedSuko(t)
	sess := session.New(p)
	pm := newPlayModel(p, m, sess, false)

	pm.cursor = 0 // a clue cell
	before := pm.sess.Grid[0]
	next, _ := pm.Update(key("x"))
	pm = next.(playModel)

	if pm.sess.Grid[0] != before {
		t.Errorf("clue cell changed from %d to %d", before, pm.sess.Grid[0])
	}
	if pm.status == "" {
		t.Error("expected a status message after editing a clue")
	}
}

func TestPlayModelWrongDigitFlagsConflict(t *testing.T) {
	p, m := nearSolvedSuko(t)
	sess := session.New(p)
	pm := newPlayModel(p, m, sess, false)

	// A duplicate of any revealed digit violates the all-distinct group.
	wrong := p.Solution[0]
	next, _ := pm.Update(key(string(byte('0' + byte(wrong)))))
	pm = next.(playModel)

	if pm.sess.Solved {
		t.Fatal("session marked solved with a conflicting digit")
	}
	if len(pm.report.Bad) == 0 {
		t.Error("expected flagged cells after entering a duplicate digit")
	}
}

func TestPlayModelRevealDoesNotWin(t *testing.T) {
	p, m := nearSolvedSuko(t)
	sess := session.New(p)
	pm := newPlayModel(p, m, sess, false)

	next, _ := pm.Update(key("R"))
	pm = next.(playModel)

	if !pm.revealed {
		t.Fatal("reveal flag not set")
	}
	if pm.sess.Solved {
		t.Error("revealing the solution must not count as solving")
	}
	if !pm.sess.Grid.Complete() {
		t.Error("grid not complete after reveal")
	}
}

func TestPlayModelQuitSaves(t *testing.T) {
	p, m := nearSolvedSuko(t)
	sess := session.New(p)
	pm := newPlayModel(p, m, sess, false)

	_, cmd := pm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command on esc")
	}
}

func TestLoadPlayPuzzleRejectsBadID(t *testing.T) {
	// The ID becomes a session file name, so anything that is not a
	// UUID must be refused at load time.
	p, _ := nearSolvedSuko(t)
	good := p.ID
	cases := []struct {
		name string
		id   string
		ok   bool
	}{
		{"uuid", good, true},
		{"empty", "", false},
		{"path traversal", "../../etc/passwd", false},
		{"free text", "my puzzle", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p.ID = tc.id
			path := filepath.Join(t.TempDir(), "puzzle.json")
			if err := writePuzzleFile(p, path); err != nil {
				t.Fatalf("writePuzzleFile: %v", err)
			}
			_, err := loadPlayPuzzle(path)
			if tc.ok && err != nil {
				t.Fatalf("loadPlayPuzzle: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("loadPlayPuzzle accepted id %q", tc.id)
			}
		})
	}
}
