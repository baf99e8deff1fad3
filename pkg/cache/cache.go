// Package cache provides pluggable caching for generated puzzles and solver
// results.
//
// Two layers cooperate here. A Cache is a dumb byte store with TTL
// semantics; implementations exist for local files (CLI usage), Redis
// (server usage) and a null store (tests, --no-cache). A Keyer turns the
// parameters that determine a cached value into a stable key, so that two
// requests for the same family, size and seed share one entry no matter
// which process asked first.
//
// Generation is deterministic per seed, so cached puzzles never go stale;
// TTLs exist only to bound disk and memory usage.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry class. Entries are reproducible from their key, so
// expiry is purely a space/freshness trade-off.
const (
	// PuzzleTTL bounds how long a generated puzzle stays cached.
	PuzzleTTL = 7 * 24 * time.Hour

	// SolveTTL bounds how long a solver result stays cached. Solves are
	// cheaper to redo than generations, so the window is shorter.
	SolveTTL = 24 * time.Hour
)

// Cache is a byte store with per-entry TTLs.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures, never for absent keys.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PuzzleKeyOpts are the generation parameters that affect the produced
// puzzle. Anything added to engine options that changes output must be
// added here too, or stale entries will shadow the new behavior.
type PuzzleKeyOpts struct {
	Rows       int   `json:"rows"`
	Cols       int   `json:"cols"`
	Seed       int64 `json:"seed"`
	Pairs      int   `json:"pairs,omitempty"`
	RegionSize int   `json:"region_size,omitempty"`
	MaxStates  int   `json:"max_states,omitempty"`
}

// SolveKeyOpts are the solver parameters that affect the result.
type SolveKeyOpts struct {
	Limit     int `json:"limit"`
	MaxStates int `json:"max_states"`
}

// Keyer generates cache keys for the different entry classes.
type Keyer interface {
	// PuzzleKey generates a key for a generated puzzle.
	PuzzleKey(family string, opts PuzzleKeyOpts) string

	// SolveKey generates a key for a solver result, keyed by a hash of
	// the model plus clue grid.
	SolveKey(gridHash string, opts SolveKeyOpts) string

	// DatasetKey generates a key for dataset metadata.
	DatasetKey(name string) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PuzzleKey generates a key for a generated puzzle.
func (k *DefaultKeyer) PuzzleKey(family string, opts PuzzleKeyOpts) string {
	return hashKey("puzzle", family, opts)
}

// SolveKey generates a key for a solver result.
func (k *DefaultKeyer) SolveKey(gridHash string, opts SolveKeyOpts) string {
	return hashKey("solve", gridHash, opts)
}

// DatasetKey generates a key for dataset metadata.
func (k *DefaultKeyer) DatasetKey(name string) string {
	return "dataset:" + name
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
