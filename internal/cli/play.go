package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ianfhunter/enigma/pkg/engine"
	enigmaerrors "github.com/ianfhunter/enigma/pkg/errors"
	"github.com/ianfhunter/enigma/pkg/puzzle"
	"github.com/ianfhunter/enigma/pkg/session"
	"github.com/ianfhunter/enigma/pkg/validate"
)

// playCommand creates the play command for interactive terminal play.
func (c *CLI) playCommand() *cobra.Command {
	var (
		noCache bool
		size    int
	)
	opts := c.engineOptions()

	cmd := &cobra.Command{
		Use:   "play [puzzle.json]",
		Short: "Play a puzzle interactively with live validation",
		Long: `Play a puzzle interactively with live validation.

Without an argument a fresh puzzle is generated from your config defaults.
With a puzzle.json (from 'generate -o') that puzzle is loaded instead, and
an unfinished session for it resumes where you left off.

Every edit is validated immediately: cells that contradict a constraint
turn red. Progress is saved on quit.

Keys:
  ←↓↑→ / hjkl   move the cursor
  space         cycle the cell value
  1-9           set a digit (suko, tetro)
  x / backspace clear the cell
  R             reveal the solution (gives up)
  q / esc       save and quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if size > 0 {
				opts.Rows, opts.Cols = size, size
			}
			return c.runPlay(cmd.Context(), input, opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Family, "family", "f", opts.Family, "puzzle family for fresh puzzles")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "grid edge length for fresh puzzles")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed for fresh puzzles (0 = fresh)")

	return cmd
}

// runPlay loads or generates the puzzle, restores any saved session, and
// hands control to the bubbletea program.
func (c *CLI) runPlay(ctx context.Context, input string, opts engine.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var p *puzzle.Puzzle
	if input != "" {
		p, err = loadPlayPuzzle(input)
		if err != nil {
			return fmt.Errorf("load puzzle %s: %w", input, err)
		}
	} else {
		result, err := runner.Generate(ctx, opts)
		if err != nil {
			return fmt.Errorf("generate puzzle: %w", err)
		}
		p = result.Puzzle
	}

	model, err := runner.BuildModel(p)
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}

	store, err := newSessionStore()
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	sess, err := store.Get(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	resumed := sess != nil && !sess.Solved
	if sess == nil || sess.Solved {
		sess = session.New(p)
	}

	pm := newPlayModel(p, model, sess, resumed)
	prog := tea.NewProgram(pm, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	done := final.(playModel)
	if err := store.Set(ctx, done.sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if done.sess.Solved {
		printSuccess("Solved %s %dx%d", p.Family, p.Rows, p.Cols)
		_ = store.Delete(ctx, p.ID)
	} else if done.revealed {
		printInfo("Solution revealed")
	} else {
		printInfo("Progress saved; run the same command to resume")
	}
	return nil
}

// =============================================================================
// playModel - Bubbletea Model
// =============================================================================

// playModel is the bubbletea model for interactive play.
type playModel struct {
	puzzle *puzzle.Puzzle
	model  *puzzle.Model
	sess   *session.Session

	cursor   int
	report   validate.Report
	resumed  bool
	revealed bool
	status   string
}

// loadPlayPuzzle reads a puzzle file for play. The puzzle's ID names its
// session file on disk, so an ill-formed ID is rejected before it can reach
// the store.
func loadPlayPuzzle(path string) (*puzzle.Puzzle, error) {
	p, err := readPuzzleFile(path)
	if err != nil {
		return nil, err
	}
	if err := enigmaerrors.ValidatePuzzleID(p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func newPlayModel(p *puzzle.Puzzle, m *puzzle.Model, sess *session.Session, resumed bool) playModel {
	return playModel{
		puzzle:  p,
		model:   m,
		sess:    sess,
		cursor:  firstFreeCell(p),
		report:  validate.Check(m, sess.Grid),
		resumed: resumed,
	}
}

// firstFreeCell returns the first playable cell, so the cursor never starts
// on a clue in a fully-revealed fallback puzzle's corner.
func firstFreeCell(p *puzzle.Puzzle) int {
	for v := range p.Clues {
		if p.Clues[v] == puzzle.Unassigned {
			return v
		}
	}
	return 0
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(-m.puzzle.Cols)
	case "down", "j":
		m.move(m.puzzle.Cols)
	case "left", "h":
		m.move(-1)
	case "right", "l":
		m.move(1)
	case " ":
		m.cycle()
	case "x", "backspace":
		m.edit(puzzle.Unassigned)
	case "R":
		m.reveal()
	default:
		if r := key.String(); len(r) == 1 && r[0] >= '1' && r[0] <= '9' {
			m.setDigit(puzzle.Value(r[0] - '0'))
		}
	}

	if m.sess.Solved {
		return m, tea.Quit
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the grid.
func (m *playModel) move(delta int) {
	next := m.cursor + delta
	if next >= 0 && next < len(m.sess.Grid) {
		m.cursor = next
	}
}

// cycle advances the current cell through unassigned and the model domain.
func (m *playModel) cycle() {
	cur := m.sess.Grid[m.cursor]
	next := puzzle.Unassigned
	if cur == puzzle.Unassigned {
		next = m.model.Domain[0]
	} else {
		for i, d := range m.model.Domain {
			if d == cur && i+1 < len(m.model.Domain) {
				next = m.model.Domain[i+1]
				break
			}
		}
	}
	m.edit(next)
}

// setDigit applies a typed digit when the family's domain carries it.
func (m *playModel) setDigit(val puzzle.Value) {
	for _, d := range m.model.Domain {
		if d == val {
			m.edit(val)
			return
		}
	}
	m.status = "value not valid here"
}

// edit applies one cell change and recomputes validation.
func (m *playModel) edit(val puzzle.Value) {
	var err error
	if val == puzzle.Unassigned {
		err = m.sess.ClearCell(m.cursor)
	} else {
		err = m.sess.SetCell(m.cursor, val)
	}
	if err != nil {
		m.status = "cell is a clue"
		return
	}
	m.report = validate.Check(m.model, m.sess.Grid)
	m.sess.Solved = m.report.Solved && !m.revealed
}

// reveal fills the grid with the solution. The session is not marked
// solved: revealing is giving up, not winning.
func (m *playModel) reveal() {
	m.revealed = true
	copy(m.sess.Grid, m.puzzle.Solution)
	m.report = validate.Check(m.model, m.sess.Grid)
	m.sess.Solved = false
	m.status = "solution revealed"
}

func (m playModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s %dx%d", m.puzzle.Family, m.puzzle.Rows, m.puzzle.Cols)
	b.WriteString(StyleTitle.Render(title))
	if m.resumed {
		b.WriteString(" " + StyleDim.Render("(resumed)"))
	}
	b.WriteString("\n\n")

	bad := make(map[int]bool, len(m.report.Bad))
	for _, v := range m.report.Bad {
		bad[v] = true
	}
	b.WriteString(renderGridCursor(m.puzzle, m.sess.Grid, bad, m.cursor))
	b.WriteString(renderTargets(m.puzzle))
	b.WriteString("\n")


	switch {
	case m.report.Solved:
		b.WriteString(StyleSuccess.Render(iconSuccess+" solved") + "\n")
	case len(m.report.Bad) > 0:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%d cells in conflict", len(m.report.Bad))) + "\n")
	default:
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d / %d cells filled", m.sess.Grid.Assigned(), len(m.sess.Grid))) + "\n")
	}
	if m.status != "" {
		b.WriteString(StyleDim.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↓↑→ move · space cycle · 1-9 set · x clear · R reveal · q quit") + "\n")

	return b.String()
}
