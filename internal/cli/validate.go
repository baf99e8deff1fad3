package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	enigmaerrors "github.com/ianfhunter/enigma/pkg/errors"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// validateCommand creates the validate command for checking player grids.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		gridArg  string
		gridFile string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "validate [puzzle.json]",
		Short: "Validate a player grid against a puzzle's constraints",
		Long: `Validate a player grid against a puzzle's constraints.

The grid is given as whitespace-separated cell values in row-major order,
with "." for empty cells, either inline (--grid) or from a file
(--grid-file). Cells that contradict a constraint are listed; unassigned
cells are never errors.

Exit status is 0 when the grid is clean, 1 when cells are in conflict.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], gridArg, gridFile, noCache)
		},
	}

	cmd.Flags().StringVarP(&gridArg, "grid", "g", "", "grid values, row-major, '.' for empty")
	cmd.Flags().StringVar(&gridFile, "grid-file", "", "read the grid from this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runValidate parses the grid, checks it, and renders the result.
func (c *CLI) runValidate(ctx context.Context, input, gridArg, gridFile string, noCache bool) error {
	p, err := readPuzzleFile(input)
	if err != nil {
		return fmt.Errorf("load puzzle %s: %w", input, err)
	}

	raw := gridArg
	if gridFile != "" {
		data, err := os.ReadFile(gridFile)
		if err != nil {
			return fmt.Errorf("read grid %s: %w", gridFile, err)
		}
		raw = string(data)
	}
	if raw == "" {
		return fmt.Errorf("need --grid or --grid-file")
	}

	grid, err := parseGrid(raw, p.Rows*p.Cols)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	report, err := runner.Validate(ctx, p, grid)
	if err != nil {
		return err
	}

	bad := make(map[int]bool, len(report.Bad))
	for _, v := range report.Bad {
		bad[v] = true
	}
	fmt.Print(renderGrid(p, grid, bad))
	fmt.Print(renderTargets(p))
	printNewline()

	switch {
	case report.Solved:
		printSuccess("Solved")
	case report.Clean():
		printInfo("No conflicts · %d / %d cells filled", grid.Assigned(), len(grid))
	default:
		cells := make([]string, len(report.Bad))
		for i, v := range report.Bad {
			cells[i] = fmt.Sprintf("r%dc%d", v/p.Cols, v%p.Cols)
		}
		printError("%d cells in conflict: %s", len(report.Bad), strings.Join(cells, " "))
		return fmt.Errorf("grid has conflicts")
	}
	return nil
}

// parseGrid converts a whitespace-separated grid string into an assignment.
// The string is validated first so parse errors carry stable codes.
func parseGrid(s string, cells int) (puzzle.Assignment, error) {
	if err := enigmaerrors.ValidateGridString(s, cells); err != nil {
		return nil, err
	}
	tokens := strings.Fields(s)
	grid := make(puzzle.Assignment, cells)
	for i, tok := range tokens {
		if tok == "." {
			grid[i] = puzzle.Unassigned
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < math.MinInt8 || n > math.MaxInt8 {
			return nil, enigmaerrors.New(enigmaerrors.ErrCodeInvalidGrid, "bad cell %d: %q", i, tok)
		}
		grid[i] = puzzle.Value(n)
	}
	return grid, nil
}
