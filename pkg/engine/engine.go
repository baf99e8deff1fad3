// Package engine provides the core puzzle pipeline for Enigma.
//
// This package implements the complete generate → reduce → verify pipeline
// that can be used by CLI, API, and dataset components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: Construct a full solution for the requested family and size
//  2. Reduce: Strip clues greedily while the puzzle keeps a unique solution
//  3. Verify: Confirm the final clue set solves to exactly the solution
//
// Solving and validating existing puzzles reuse the same Runner so cache
// and logging behavior stay identical everywhere.
//
// # Usage
//
// Create a Runner and generate a puzzle:
//
//	runner := engine.NewRunner(cache, nil, logger)
//	opts := engine.Options{
//	    Family: "tents",
//	    Rows:   8,
//	    Cols:   8,
//	    Seed:   42,
//	}
//	result, err := runner.Generate(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Puzzle.ID)
//
// Work with an existing puzzle:
//
//	res, err := runner.Solve(ctx, pz, grid, solver.Options{Limit: 2})
//	report, err := runner.Validate(ctx, pz, grid)
package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ianfhunter/enigma/pkg/cache"
	enigmaerrors "github.com/ianfhunter/enigma/pkg/errors"
	"github.com/ianfhunter/enigma/pkg/families"
	"github.com/ianfhunter/enigma/pkg/puzzle"
	"github.com/ianfhunter/enigma/pkg/solver"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one puzzle generation.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Family selects the puzzle type (slant, tents, suko, tetro).
	Family string `json:"family"`

	// Rows and Cols request the grid size. Zero means the family default;
	// fixed-size families ignore them entirely.
	Rows int `json:"rows,omitempty"`
	Cols int `json:"cols,omitempty"`

	// Seed makes generation reproducible. Zero means "pick a fresh random
	// seed", which also bypasses the cache read.
	Seed int64 `json:"seed,omitempty"`

	// Pairs is the tree/tent pair count for tents. Zero means the family
	// default.
	Pairs int `json:"pairs,omitempty"`

	// RegionSize is the region cell count for tetro. Zero means the family
	// default.
	RegionSize int `json:"region_size,omitempty"`

	// Attempts caps generator retries before the fixed fallback is used.
	Attempts int `json:"attempts,omitempty"`

	// MaxStates caps each solver run during reduction and verification.
	MaxStates int `json:"max_states,omitempty"`

	// Refresh skips the cache read and overwrites the entry.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of one generation run.
type Result struct {
	// Puzzle is the generated instance.
	Puzzle *puzzle.Puzzle

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the puzzle came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GenerateTime time.Duration
	ReduceTime   time.Duration
	VerifyTime   time.Duration

	// SolverStates is the total search states spent across reduction and
	// the final verification solve.
	SolverStates int
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	PuzzleHit bool // Whether the puzzle came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if err := enigmaerrors.ValidateFamilyName(o.Family); err != nil {
		return err
	}
	f, err := families.Lookup(o.Family)
	if err != nil {
		return enigmaerrors.Wrap(enigmaerrors.ErrCodeInvalidFamily, err, "unknown family: %s", o.Family)
	}

	p := f.Normalize(families.Params{
		Rows:       o.Rows,
		Cols:       o.Cols,
		Pairs:      o.Pairs,
		RegionSize: o.RegionSize,
		Attempts:   o.Attempts,
	})
	if err := enigmaerrors.ValidateGridSize(p.Rows, p.Cols); err != nil {
		return err
	}
	o.Rows, o.Cols = p.Rows, p.Cols
	o.Pairs, o.RegionSize, o.Attempts = p.Pairs, p.RegionSize, p.Attempts

	if o.MaxStates <= 0 {
		o.MaxStates = solver.DefaultMaxStates
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// SolverOptions returns the solver configuration implied by these options.
func (o *Options) SolverOptions() solver.Options {
	return solver.Options{Limit: 2, MaxStates: o.MaxStates}
}

// PuzzleKeyOpts returns cache key options for the given seed.
func (o *Options) PuzzleKeyOpts(seed int64) cache.PuzzleKeyOpts {
	return cache.PuzzleKeyOpts{
		Rows:       o.Rows,
		Cols:       o.Cols,
		Seed:       seed,
		Pairs:      o.Pairs,
		RegionSize: o.RegionSize,
		MaxStates:  o.MaxStates,
	}
}
