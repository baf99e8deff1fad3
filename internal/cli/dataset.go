package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ianfhunter/enigma/pkg/engine"
	pkgio "github.com/ianfhunter/enigma/pkg/io"
	"github.com/ianfhunter/enigma/pkg/puzzle"
	"github.com/ianfhunter/enigma/pkg/store"
)

// datasetCommand creates the dataset command for batch puzzle production.
func (c *CLI) datasetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Batch-generate puzzles into JSONL files or MongoDB",
	}

	cmd.AddCommand(c.datasetGenerateCommand())
	cmd.AddCommand(c.datasetInfoCommand())

	return cmd
}

// datasetGenerateCommand creates the "dataset generate" subcommand.
func (c *CLI) datasetGenerateCommand() *cobra.Command {
	var (
		count   int
		output  string
		mongo   bool
		dataset string
		noCache bool
		size    int
	)
	opts := c.engineOptions()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of puzzles",
		Long: `Generate a batch of puzzles.

Each puzzle gets its own seed: with --seed the batch is reproducible
(seed, seed+1, ...), without it every puzzle draws a fresh random seed.
Output goes to a JSONL file (--output), to MongoDB (--mongo, configured
in config.toml), or both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" && !mongo {
				return fmt.Errorf("need --output and/or --mongo")
			}
			if size > 0 {
				opts.Rows, opts.Cols = size, size
			}
			return c.runDatasetGenerate(cmd.Context(), opts, count, output, mongo, dataset, noCache)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "number of puzzles to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write puzzles to this JSONL file")
	cmd.Flags().BoolVar(&mongo, "mongo", false, "save puzzles to the configured MongoDB")
	cmd.Flags().StringVar(&dataset, "dataset", "default", "dataset name for MongoDB")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Family, "family", "f", opts.Family, "puzzle family")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "grid edge length")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "base seed (0 = fresh seed per puzzle)")
	cmd.Flags().IntVar(&opts.Pairs, "pairs", 0, "tree/tent pair count (tents)")
	cmd.Flags().IntVar(&opts.RegionSize, "region-size", 0, "cells per region (tetro)")
	cmd.Flags().IntVar(&opts.MaxStates, "max-states", c.Config.MaxStates, "solver state budget per solve")

	return cmd
}

// runDatasetGenerate produces count puzzles and writes them to the
// requested sinks. Fallback instances are counted but kept: a dataset
// consumer can filter on the fallback field.
func (c *CLI) runDatasetGenerate(ctx context.Context, opts engine.Options, count int, output string, mongo bool, dataset string, noCache bool) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	baseSeed := opts.Seed

	puzzles := make([]*puzzle.Puzzle, 0, count)
	fallbacks := 0
	for i := 0; i < count; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if baseSeed != 0 {
			opts.Seed = baseSeed + int64(i)
		}
		result, err := runner.Generate(ctx, opts)
		if err != nil {
			return fmt.Errorf("generate puzzle %d/%d: %w", i+1, count, err)
		}
		if result.Puzzle.Fallback {
			fallbacks++
		}
		puzzles = append(puzzles, result.Puzzle)
		c.Logger.Debugf("generated %d/%d id=%s seed=%d", i+1, count, result.Puzzle.ID, result.Puzzle.Seed)
	}
	prog.done(fmt.Sprintf("Generated %d puzzles", count))
	if fallbacks > 0 {
		printWarning("%d of %d puzzles are fallback instances", fallbacks, count)
	}

	if output != "" {
		if err := pkgio.ExportJSONL(puzzles, output); err != nil {
			return fmt.Errorf("write dataset %s: %w", output, err)
		}
		printSuccess("Wrote %d puzzles", len(puzzles))
		printFile(output)
	}

	if mongo {
		if err := c.saveToMongo(ctx, dataset, puzzles); err != nil {
			return err
		}
		printSuccess("Saved %d puzzles to dataset %q", len(puzzles), dataset)
	}

	return nil
}

// saveToMongo connects using the config and saves the batch.
func (c *CLI) saveToMongo(ctx context.Context, dataset string, puzzles []*puzzle.Puzzle) error {
	if c.Config.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is not set in config.toml")
	}
	st, err := store.NewMongoStore(ctx, c.Config.Mongo.URI, c.Config.Mongo.Database)
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer st.Close(ctx)

	if err := st.EnsureIndexes(ctx, dataset); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	if err := st.SaveBatch(ctx, dataset, puzzles); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

// datasetInfoCommand creates the "dataset info" subcommand.
func (c *CLI) datasetInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [dataset.jsonl]",
		Short: "Summarize a JSONL puzzle dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			puzzles, err := pkgio.ImportJSONL(args[0])
			if err != nil {
				return fmt.Errorf("read dataset %s: %w", args[0], err)
			}

			byFamily := map[string]int{}
			fallbacks := 0
			for _, p := range puzzles {
				byFamily[p.Family]++
				if p.Fallback {
					fallbacks++
				}
			}

			printKeyValue("puzzles", fmt.Sprintf("%d", len(puzzles)))
			names := make([]string, 0, len(byFamily))
			for family := range byFamily {
				names = append(names, family)
			}
			sort.Strings(names)
			for _, family := range names {
				printKeyValue(family, fmt.Sprintf("%d", byFamily[family]))
			}
			if fallbacks > 0 {
				printKeyValue("fallbacks", fmt.Sprintf("%d", fallbacks))
			}
			return nil
		},
	}
}
