package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ianfhunter/enigma/pkg/solver"
)

// solveCommand creates the solve command for running the bounded solver.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		noCache bool
		opts    solver.Options
	)

	cmd := &cobra.Command{
		Use:   "solve [puzzle.json]",
		Short: "Solve a stored puzzle from its clue set",
		Long: `Solve a stored puzzle from its clue set.

The solver runs a bounded depth-first search over the puzzle's constraint
model, seeded with the clue cells. With the default limit of 2 the result
also tells you whether the clue set pins a unique solution.

Solver results are cached locally keyed by the puzzle content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", 2, "stop after this many solutions")
	cmd.Flags().IntVar(&opts.MaxStates, "max-states", c.Config.MaxStates, "solver state budget")

	return cmd
}

// runSolve loads the puzzle, solves it, and prints every found solution.
func (c *CLI) runSolve(ctx context.Context, input string, opts solver.Options, noCache bool) error {
	p, err := readPuzzleFile(input)
	if err != nil {
		return fmt.Errorf("load puzzle %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Solving %s %dx%d...", p.Family, p.Rows, p.Cols))
	spinner.Start()

	res, err := runner.Solve(ctx, p, p.FreshGrid(), opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	switch {
	case len(res.Solutions) == 0 && res.Status == solver.StatusBoundExceeded:
		printWarning("State budget exhausted before any solution was found")
	case len(res.Solutions) == 0:
		printError("No solution exists for this clue set")
	case res.Unique():
		printSuccess("Unique solution")
	default:
		printWarning("Found %d solutions (%s)", len(res.Solutions), res.Status)
	}

	for i, sol := range res.Solutions {
		printNewline()
		if len(res.Solutions) > 1 {
			printDetail("solution %d", i+1)
		}
		fmt.Print(renderGrid(p, sol, nil))
	}
	printNewline()
	printDetail("%d states · %s", res.States, res.Status)

	return nil
}
