package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ianfhunter/enigma/pkg/engine"
	"github.com/ianfhunter/enigma/pkg/families"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// generateCommand creates the generate command for producing puzzles.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		size    int
	)
	opts := c.engineOptions()

	cmd := &cobra.Command{
		Use:   "generate [family]",
		Short: "Generate a puzzle with a provably unique solution",
		Long: fmt.Sprintf(`Generate a puzzle with a provably unique solution.

The generator builds a full solution for the requested family, strips clues
greedily while the remainder keeps exactly one solution, and verifies the
final clue set before handing the puzzle out.

Available families: %s.

A seed of 0 (the default) picks a fresh random seed; pass --seed for
reproducible output. Results are cached locally per seed.`, strings.Join(families.Names(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Family = args[0]
			}
			if size > 0 {
				opts.Rows, opts.Cols = size, size
			}
			return c.runGenerate(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the puzzle as JSON to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "grid edge length (default: family default)")
	cmd.Flags().IntVar(&opts.Rows, "rows", opts.Rows, "grid rows (overrides --size)")
	cmd.Flags().IntVar(&opts.Cols, "cols", opts.Cols, "grid columns (overrides --size)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (0 = fresh)")
	cmd.Flags().IntVar(&opts.Pairs, "pairs", 0, "tree/tent pair count (tents)")
	cmd.Flags().IntVar(&opts.RegionSize, "region-size", 0, "cells per region (tetro)")
	cmd.Flags().IntVar(&opts.MaxStates, "max-states", c.Config.MaxStates, "solver state budget per solve")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even when cached")

	return cmd
}

// runGenerate runs the pipeline and prints or writes the result.
func (c *CLI) runGenerate(ctx context.Context, opts engine.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s puzzle...", opts.Family))
	spinner.Start()

	result, err := runner.Generate(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	p := result.Puzzle
	printSuccess("Generated %s %dx%d", p.Family, p.Rows, p.Cols)
	printKeyValue("id", p.ID)
	printKeyValue("seed", fmt.Sprintf("%d", p.Seed))
	if p.Fallback {
		printWarning("Generator fell back to the fixed instance; all cells are revealed")
	}
	printNewline()
	fmt.Print(renderGrid(p, p.FreshGrid(), nil))
	fmt.Print(renderTargets(p))
	printStats(p.ClueCount(), p.Rows*p.Cols, result.CacheInfo.PuzzleHit)

	if output != "" {
		if err := writePuzzleFile(p, output); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
		printNewline()
		printNextStep("Play it", "enigma play "+output)
	}

	return nil
}

// writePuzzleFile writes one puzzle as indented JSON.
func writePuzzleFile(p *puzzle.Puzzle, path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// readPuzzleFile loads one puzzle from an indented-JSON file.
func readPuzzleFile(path string) (*puzzle.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p puzzle.Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse puzzle %s: %w", path, err)
	}
	return &p, nil
}
