// Package pkg provides the core libraries for Enigma constraint puzzles.
//
// # Overview
//
// Enigma generates logic puzzles with provably unique solutions, verifies
// player grids against their constraint models, and ships puzzles through a
// CLI, an HTTP API, and batch datasets. The pkg directory is organized into
// four main areas:
//
//  1. Domain logic (constraint models, generation, solving, clue reduction)
//  2. Infrastructure (caching, persistence, sessions, observability)
//  3. Orchestration ([engine] - generate → reduce → verify)
//  4. Serialization ([io] - JSONL datasets, [store] - MongoDB)
//
// # Architecture
//
// The typical data flow through Enigma:
//
//	[families] package (build a full solution + layout)
//	         ↓
//	[reduce] package (strip clues while the solution stays unique)
//	         ↓
//	[solver] package (bounded search confirms uniqueness)
//	         ↓
//	Puzzle (clues + layout + solution)
//	         ↓
//	[validate] package (live feedback on player grids)
//
// # Quick Start
//
// Generate a puzzle and solve it back:
//
//	import (
//	    "context"
//	    "github.com/ianfhunter/enigma/pkg/cache"
//	    "github.com/ianfhunter/enigma/pkg/engine"
//	    "github.com/ianfhunter/enigma/pkg/solver"
//	)
//
//	// 1. Create a runner with a local file cache
//	fc, _ := cache.NewFileCache("/tmp/enigma-cache")
//	runner := engine.NewRunner(fc, nil, nil)
//
//	// 2. Generate a tents puzzle
//	result, _ := runner.Generate(context.Background(), engine.Options{
//	    Family: "tents",
//	    Rows:   8,
//	    Cols:   8,
//	    Seed:   42,
//	})
//
//	// 3. Solve it from the clue set
//	p := result.Puzzle
//	res, _ := runner.Solve(context.Background(), p, p.FreshGrid(), solver.Options{Limit: 2})
//	fmt.Println(res.Unique()) // true
//
// # Main Packages
//
// ## Domain Logic
//
// [puzzle] - Constraint models: grids of variables, constraint groups
// (counts, sums, distinctness, acyclicity, connectivity, adjacency, shapes),
// fixed cells, and the serializable puzzle instance.
//
// [families] - The puzzle family registry. Each family (slant, tents, suko,
// tetro) knows how to generate a full solution and rebuild its model from a
// stored layout.
//
// [generate] - Low-level solution builders: slant diagonal grids without
// lattice cycles, tents tree/tent placement, suko digit squares, tetromino
// region partitions.
//
// [solver] - Bounded depth-first search with incremental constraint
// propagation. Distinguishes "no more solutions" from "ran out of budget".
//
// [reduce] - Uniqueness-preserving clue reduction. Greedily hides clues and
// keeps each one whose removal admits a second solution.
//
// [validate] - Full-grid validation for live play: flags exactly the cells
// that contradict a constraint, never unassigned ones.
//
// [dsu] - Disjoint-set union with cloning, used for cycle and connectivity
// checks inside the solver and validator.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, Redis, and null implementations plus
// deterministic content-hash keys for puzzles and solver results.
//
// [store] - MongoDB persistence for puzzle datasets.
//
// [session] - Play sessions: one mutable grid per puzzle, persisted between
// runs of the CLI.
//
// [observability] - Hook interfaces for engine, cache, and store events.
//
// [errors] - Structured errors with stable codes and input validation.
//
// ## Orchestration
//
// [engine] - The generate → reduce → verify pipeline used by CLI, API, and
// dataset components.
//
// ## Serialization
//
// [io] - JSONL import/export for puzzle datasets.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/solver/...   # Specific package
//
// [puzzle]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/puzzle
// [families]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/families
// [generate]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/generate
// [solver]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/solver
// [reduce]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/reduce
// [validate]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/validate
// [dsu]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/dsu
// [cache]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/cache
// [store]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/store
// [session]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/session
// [observability]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/observability
// [errors]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/errors
// [engine]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/engine
// [io]: https://pkg.go.dev/github.com/ianfhunter/enigma/pkg/io
package pkg
