package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ianfhunter/enigma/pkg/cache"
	enigmaerrors "github.com/ianfhunter/enigma/pkg/errors"
	"github.com/ianfhunter/enigma/pkg/families"
	"github.com/ianfhunter/enigma/pkg/observability"
	"github.com/ianfhunter/enigma/pkg/puzzle"
	"github.com/ianfhunter/enigma/pkg/reduce"
	"github.com/ianfhunter/enigma/pkg/solver"
	"github.com/ianfhunter/enigma/pkg/validate"
)

// Runner encapsulates puzzle generation and solving with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store puzzle results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Generate runs the complete generate → reduce → verify pipeline with
// caching. A zero seed picks a fresh random one and bypasses the cache
// read, so repeated unseeded calls produce distinct puzzles.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger

	seed := opts.Seed
	fresh := seed == 0
	for fresh && seed == 0 {
		seed = rand.Int63()
	}

	cacheKey := r.Keyer.PuzzleKey(opts.Family, opts.PuzzleKeyOpts(seed))
	if !fresh && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var p puzzle.Puzzle
			if err := json.Unmarshal(data, &p); err == nil {
				observability.Cache().OnCacheHit(ctx, "puzzle")
				return &Result{Puzzle: &p, CacheInfo: CacheInfo{PuzzleHit: true}}, nil
			}
			// Corrupt entry; fall through and regenerate.
			_ = r.Cache.Delete(ctx, cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, "puzzle")
	}

	f, err := families.Lookup(opts.Family)
	if err != nil {
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeInvalidFamily, err, "unknown family: %s", opts.Family)
	}

	result := &Result{}
	rng := rand.New(rand.NewSource(seed))

	// Stage 1: Generate
	observability.Engine().OnGenerateStart(ctx, opts.Family, opts.Rows, opts.Cols)
	genStart := time.Now()
	sol, layout, fallback := f.Generate(rng, families.Params{
		Rows:       opts.Rows,
		Cols:       opts.Cols,
		Pairs:      opts.Pairs,
		RegionSize: opts.RegionSize,
		Attempts:   opts.Attempts,
	})
	result.Stats.GenerateTime = time.Since(genStart)

	m, err := f.Build(opts.Rows, opts.Cols, layout)
	if err != nil {
		observability.Engine().OnGenerateComplete(ctx, opts.Family, 0, fallback, result.Stats.GenerateTime, err)
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeInternal, err, "build model for %s", opts.Family)
	}

	logger.Info("generated solution",
		"family", opts.Family,
		"size", fmt.Sprintf("%dx%d", opts.Rows, opts.Cols),
		"fallback", fallback,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Reduce. Fallback instances ship fully revealed: they exist
	// only so the caller always gets a playable grid, and hiding clues on
	// the one fixed instance per size would hand every user the same
	// "puzzle" repeatedly.
	clues := sol.Clone()
	if !fallback {
		observability.Engine().OnReduceStart(ctx, opts.Family, len(sol))
		reduceStart := time.Now()
		red := reduce.Reduce(rng, m, sol, opts.SolverOptions())
		result.Stats.ReduceTime = time.Since(reduceStart)
		result.Stats.SolverStates += red.States
		clues = red.Clues
		observability.Engine().OnReduceComplete(ctx, opts.Family, red.Hidden, red.Kept, result.Stats.ReduceTime)

		logger.Info("reduced clues",
			"hidden", red.Hidden,
			"kept", red.Kept,
			"states", red.States,
			"duration", result.Stats.ReduceTime)
	}

	// Stage 3: Verify. The reduced clue set must reproduce exactly the
	// generated solution; anything else is a pipeline bug worth failing
	// loudly on.
	verifyStart := time.Now()
	check := solver.Solve(m, clues, opts.SolverOptions())
	result.Stats.VerifyTime = time.Since(verifyStart)
	result.Stats.SolverStates += check.States
	if !fallback && !check.Unique() {
		err := enigmaerrors.New(enigmaerrors.ErrCodeAmbiguous,
			"reduced %s puzzle has %d solutions (status %s)", opts.Family, len(check.Solutions), check.Status)
		observability.Engine().OnGenerateComplete(ctx, opts.Family, 0, fallback, result.Stats.GenerateTime, err)
		return nil, err
	}

	p := puzzle.NewPuzzle(opts.Family, opts.Rows, opts.Cols, seed, layout, sol, clues)
	p.Fallback = fallback
	result.Puzzle = p
	observability.Engine().OnGenerateComplete(ctx, opts.Family, p.ClueCount(), fallback, result.Stats.GenerateTime, nil)

	if data, err := json.Marshal(p); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.PuzzleTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "puzzle", len(data))
		}
	}

	return result, nil
}

// BuildModel reconstructs the constraint model for a stored puzzle.
func (r *Runner) BuildModel(p *puzzle.Puzzle) (*puzzle.Model, error) {
	f, err := families.Lookup(p.Family)
	if err != nil {
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeInvalidFamily, err, "unknown family: %s", p.Family)
	}
	m, err := f.Build(p.Rows, p.Cols, p.Layout)
	if err != nil {
		return nil, enigmaerrors.Wrap(enigmaerrors.ErrCodeInternal, err, "build model for %s", p.Family)
	}
	return m, nil
}

// Solve enumerates solutions extending the given grid, with caching. The
// grid may be nil to solve from the puzzle's clue set.
func (r *Runner) Solve(ctx context.Context, p *puzzle.Puzzle, grid puzzle.Assignment, opts solver.Options) (solver.Result, error) {
	m, err := r.BuildModel(p)
	if err != nil {
		return solver.Result{}, err
	}
	if grid == nil {
		grid = p.Clues
	}
	if err := checkGrid(m, grid); err != nil {
		return solver.Result{}, err
	}

	gridHash := r.solveHash(p, grid)
	cacheKey := r.Keyer.SolveKey(gridHash, cache.SolveKeyOpts{Limit: opts.Limit, MaxStates: opts.MaxStates})
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached solver.Result
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "solve")
			return cached, nil
		}
	}

	observability.Engine().OnSolveStart(ctx, p.Family, grid.Assigned())
	start := time.Now()
	res := solver.Solve(m, grid, opts)
	observability.Engine().OnSolveComplete(ctx, p.Family, len(res.Solutions), res.States, time.Since(start), nil)

	if data, err := json.Marshal(res); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.SolveTTL)
	}
	return res, nil
}

// Validate checks a player grid against the puzzle's constraints.
func (r *Runner) Validate(ctx context.Context, p *puzzle.Puzzle, grid puzzle.Assignment) (validate.Report, error) {
	m, err := r.BuildModel(p)
	if err != nil {
		return validate.Report{}, err
	}
	if err := checkGrid(m, grid); err != nil {
		return validate.Report{}, err
	}
	return validate.Check(m, grid), nil
}

// checkGrid rejects grids of the wrong size and entries outside the model's
// value domain. Fixed cells are exempt from the domain check because their
// anchor values may fall outside it.
func checkGrid(m *puzzle.Model, grid puzzle.Assignment) error {
	if len(grid) != m.VarCount() {
		return enigmaerrors.New(enigmaerrors.ErrCodeInvalidGrid,
			"grid has %d cells, expected %d", len(grid), m.VarCount())
	}
	for v, val := range grid {
		if val == puzzle.Unassigned || m.IsFixed(v) {
			continue
		}
		if m.DomainIndex(val) < 0 {
			return enigmaerrors.New(enigmaerrors.ErrCodeInvalidGrid,
				"cell %d has value %d outside the puzzle's domain", v, val)
		}
	}
	return nil
}

// Reveal returns the stored solution as a fresh grid.
func (r *Runner) Reveal(p *puzzle.Puzzle) puzzle.Assignment {
	return p.Reveal()
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// solveHash fingerprints the inputs that determine a solver result.
func (r *Runner) solveHash(p *puzzle.Puzzle, grid puzzle.Assignment) string {
	data, _ := json.Marshal(struct {
		Family string            `json:"family"`
		Rows   int               `json:"rows"`
		Cols   int               `json:"cols"`
		Layout puzzle.Layout     `json:"layout"`
		Grid   puzzle.Assignment `json:"grid"`
	}{p.Family, p.Rows, p.Cols, p.Layout, grid})
	return cache.Hash(data)
}
