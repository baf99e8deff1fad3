// Package solver implements bounded backtracking with forward checking over
// a constraint model.
//
// The same code path serves two callers: solving a puzzle for the reveal
// feature (limit 1 suffices, limit 2 distinguishes ambiguous states) and
// counting solutions during clue minimization (limit 2 - the exact count
// above one never matters, only "is it exactly one").
//
// The search walks variables in a fixed scan order. Each constraint group
// keeps a running slack counter (how much room is left before the predicate
// breaks) and a still-reachable bound (how much the unassigned members could
// still contribute), so most dead branches are cut at the first bad
// assignment. Cycle predicates are checked through a cloned DSU per branch
// point rather than an undo log.
//
// The space is finite but can be astronomically large, so Options.MaxStates
// caps the number of visited states. Hitting the cap is reported as
// StatusBoundExceeded - "could not determine satisfiability" - which callers
// must never conflate with "no solutions".
package solver

import (
	"github.com/ianfhunter/enigma/pkg/dsu"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// DefaultMaxStates bounds the search when Options.MaxStates is zero. Large
// enough for every practical grid (up to roughly 14x14), small enough that
// a pathological clue set fails fast instead of hanging the caller.
const DefaultMaxStates = 500_000

// Options configures one search.
type Options struct {
	// Limit is the number of complete solutions to collect before
	// stopping. Zero means 2, the uniqueness-test default.
	Limit int

	// MaxStates caps visited search states. Zero means DefaultMaxStates.
	MaxStates int
}

// Status reports how the search terminated.
type Status int

const (
	// StatusExhausted means the whole space was searched; the solution
	// list is definitive (possibly empty).
	StatusExhausted Status = iota

	// StatusLimitReached means the search stopped after collecting
	// Limit solutions; more may exist.
	StatusLimitReached

	// StatusBoundExceeded means the MaxStates ceiling was hit before the
	// space was exhausted. Satisfiability is unknown; do not treat an
	// empty solution list as "unsatisfiable".
	StatusBoundExceeded
)

// String returns the status name for logs.
func (s Status) String() string {
	switch s {
	case StatusExhausted:
		return "exhausted"
	case StatusLimitReached:
		return "limit-reached"
	case StatusBoundExceeded:
		return "bound-exceeded"
	default:
		return "unknown"
	}
}

// Result is the outcome of one search.
type Result struct {
	Solutions []puzzle.Assignment
	States    int
	Status    Status
}

// Unique reports whether the result proves exactly one solution. It is
// false when the bound was exceeded, even if one solution was found.
func (r Result) Unique() bool {
	return r.Status != StatusBoundExceeded && len(r.Solutions) == 1
}

// Solve enumerates up to opts.Limit total assignments that extend the given
// clues and satisfy every group predicate of the model. Clues may be nil.
func Solve(m *puzzle.Model, clues puzzle.Assignment, opts Options) Result {
	if opts.Limit <= 0 {
		opts.Limit = 2
	}
	if opts.MaxStates <= 0 {
		opts.MaxStates = DefaultMaxStates
	}

	s := &search{m: m, opts: opts, grid: m.Start(clues)}
	if !s.init() {
		// The clues themselves already violate a predicate.
		return Result{Status: StatusExhausted, States: s.states}
	}
	s.dfs(0)

	status := StatusExhausted
	switch {
	case s.bounded:
		status = StatusBoundExceeded
	case len(s.sols) >= opts.Limit:
		status = StatusLimitReached
	}
	return Result{Solutions: s.sols, States: s.states, Status: status}
}

// search carries the mutable state of one Solve call. It is scratch memory,
// private to the call and discarded at its end.
type search struct {
	m    *puzzle.Model
	opts Options
	grid puzzle.Assignment

	gs      []groupState
	sols    []puzzle.Assignment
	states  int
	bounded bool
}

// groupState is the incremental bookkeeping for one constraint group.
type groupState struct {
	g   *puzzle.Group
	pos map[int]int // variable -> index in g.Vars

	assigned int
	count    int // occurrences of g.Counted
	sum      int
	valCount []int // per-value occurrences (distinct/run groups)
	minV     puzzle.Value
	maxV     puzzle.Value

	d     *dsu.DSU   // live DSU for no-cycle groups
	snaps []*dsu.DSU // clone stack, one per tentative union
}

func (s *search) init() bool {
	groups := s.m.Groups()
	s.gs = make([]groupState, len(groups))
	maxVal := puzzle.Value(0)
	for _, v := range s.m.Domain {
		if v > maxVal {
			maxVal = v
		}
	}
	for i := range groups {
		g := &groups[i]
		st := &s.gs[i]
		st.g = g
		st.pos = make(map[int]int, len(g.Vars))
		for j, v := range g.Vars {
			st.pos[v] = j
		}
		st.minV, st.maxV = puzzle.Value(127), puzzle.Value(-128)
		switch g.Kind {
		case puzzle.GroupAllDistinct, puzzle.GroupConsecutiveRun:
			st.valCount = make([]int, int(maxVal)+1)
		case puzzle.GroupNoCycle:
			st.d = dsu.New(g.Verts)
		}
	}

	// Seed the counters with the pre-assigned grid; reject inconsistent
	// clue sets outright. Values outside the enumerated domain are
	// rejected too, except on fixed cells, whose anchor values (a tree
	// marker, say) legitimately fall outside it.
	for v, val := range s.grid {
		if val == puzzle.Unassigned {
			continue
		}
		if !s.m.IsFixed(v) && s.m.DomainIndex(val) < 0 {
			return false
		}
		for _, gi := range s.m.GroupsOf(v) {
			if !s.gs[gi].feasible(s, v, val) {
				return false
			}
		}
		for _, gi := range s.m.GroupsOf(v) {
			s.gs[gi].apply(s, v, val)
		}
	}
	return true
}

// dfs extends the assignment starting at variable index from.
func (s *search) dfs(from int) bool {
	// Fixed scan order: next unassigned variable.
	v := from
	for v < len(s.grid) && s.grid[v] != puzzle.Unassigned {
		v++
	}
	if v == len(s.grid) {
		if !s.complete() {
			return false
		}
		s.sols = append(s.sols, s.grid.Clone())
		return len(s.sols) >= s.opts.Limit
	}

	for _, val := range s.m.Domain {
		s.states++
		if s.states > s.opts.MaxStates {
			s.bounded = true
			return true
		}
		if !s.feasible(v, val) {
			continue
		}
		s.assign(v, val)
		stop := s.dfs(v + 1)
		s.unassign(v, val)
		if stop {
			return true
		}
	}
	return false
}

func (s *search) feasible(v int, val puzzle.Value) bool {
	for _, gi := range s.m.GroupsOf(v) {
		if !s.gs[gi].feasible(s, v, val) {
			return false
		}
	}
	return true
}

func (s *search) assign(v int, val puzzle.Value) {
	s.grid[v] = val
	for _, gi := range s.m.GroupsOf(v) {
		s.gs[gi].apply(s, v, val)
	}
}

func (s *search) unassign(v int, val puzzle.Value) {
	// Clear the cell first so bound recomputation does not see the value
	// being retracted.
	s.grid[v] = puzzle.Unassigned
	for _, gi := range s.m.GroupsOf(v) {
		s.gs[gi].undo(s, v, val)
	}
}

// complete verifies the predicates that are only decidable on a total
// assignment (connectivity, final shape membership).
func (s *search) complete() bool {
	for i := range s.gs {
		g := s.gs[i].g
		switch g.Kind {
		case puzzle.GroupConnected:
			if !puzzle.RegionConnected(s.m, g, s.grid) {
				return false
			}
		case puzzle.GroupShape:
			if !s.gs[i].shapeOK(s) {
				return false
			}
		}
	}
	return true
}

// feasible forward-checks a tentative assignment against one group. It must
// be side-effect free.
func (st *groupState) feasible(s *search, v int, val puzzle.Value) bool {
	g := st.g
	remaining := len(g.Vars) - st.assigned // including v itself
	switch g.Kind {
	case puzzle.GroupAtMostCount:
		if val == g.Counted && st.count+1 > g.Target {
			return false
		}

	case puzzle.GroupExactCount, puzzle.GroupShape:
		hit := 0
		if val == g.Counted {
			hit = 1
		}
		if st.count+hit > g.Target {
			return false
		}
		// Even if every remaining member counts, can the target still
		// be reached?
		if st.count+hit+(remaining-1) < g.Target {
			return false
		}

	case puzzle.GroupExactSum:
		minD, maxD := domainBounds(s.m.Domain)
		newSum := st.sum + int(val)
		rest := remaining - 1
		if newSum+rest*int(minD) > g.Target {
			return false
		}
		if newSum+rest*int(maxD) < g.Target {
			return false
		}

	case puzzle.GroupAllDistinct:
		if int(val) >= 0 && int(val) < len(st.valCount) && st.valCount[val] > 0 {
			return false
		}

	case puzzle.GroupConsecutiveRun:
		if int(val) >= 0 && int(val) < len(st.valCount) && st.valCount[val] > 0 {
			return false
		}
		lo, hi := st.minV, st.maxV
		if st.assigned == 0 {
			lo, hi = val, val
		} else {
			if val < lo {
				lo = val
			}
			if val > hi {
				hi = val
			}
		}
		if int(hi-lo)+1 > len(g.Vars) {
			return false
		}

	case puzzle.GroupNoCycle:
		vi := s.m.DomainIndex(val)
		if vi < 0 {
			return false
		}
		e := g.Ends[st.pos[v]][vi]
		if st.d.Connected(e.A, e.B) {
			return false
		}

	case puzzle.GroupNoTouch:
		if val == g.Counted {
			for _, n := range s.m.Neighbors8(v) {
				if _, ok := st.pos[n]; ok && s.grid[n] == g.Counted {
					return false
				}
			}
		}

	case puzzle.GroupConnected:
		// Decided on the complete assignment; partial grids are never
		// pruned here because open cells may reconnect later.
	}
	return true
}

func (st *groupState) apply(s *search, v int, val puzzle.Value) {
	g := st.g
	st.assigned++
	if val == g.Counted {
		st.count++
	}
	st.sum += int(val)
	if st.valCount != nil && int(val) >= 0 && int(val) < len(st.valCount) {
		st.valCount[val]++
	}
	if val < st.minV {
		st.minV = val
	}
	if val > st.maxV {
		st.maxV = val
	}
	if g.Kind == puzzle.GroupNoCycle {
		// Snapshot before the tentative union so undo is a pop, never a
		// replay. Branches must not alias the same mutable DSU.
		st.snaps = append(st.snaps, st.d.Clone())
		e := g.Ends[st.pos[v]][s.m.DomainIndex(val)]
		st.d.Union(e.A, e.B)
	}
}

func (st *groupState) undo(s *search, v int, val puzzle.Value) {
	g := st.g
	st.assigned--
	if val == g.Counted {
		st.count--
	}
	st.sum -= int(val)
	if st.valCount != nil && int(val) >= 0 && int(val) < len(st.valCount) {
		st.valCount[val]--
	}
	if g.Kind == puzzle.GroupNoCycle {
		st.d = st.snaps[len(st.snaps)-1]
		st.snaps = st.snaps[:len(st.snaps)-1]
	}
	if val == st.minV || val == st.maxV {
		st.recomputeBounds(s)
	}
}

// recomputeBounds rebuilds min/max after removing a boundary value. Groups
// are small (a row, a region), so a linear rescan is fine.
func (st *groupState) recomputeBounds(s *search) {
	st.minV, st.maxV = puzzle.Value(127), puzzle.Value(-128)
	for _, v := range st.g.Vars {
		val := s.grid[v]
		if val == puzzle.Unassigned {
			continue
		}
		if val < st.minV {
			st.minV = val
		}
		if val > st.maxV {
			st.maxV = val
		}
	}
}

func (st *groupState) shapeOK(s *search) bool {
	g := st.g
	cells := make([]int, 0, g.Target)
	for _, v := range g.Vars {
		if s.grid[v] == g.Counted {
			cells = append(cells, v)
		}
	}
	if len(cells) != g.Target {
		return false
	}
	return puzzle.MatchesAny(cells, s.m.Cols, g.Shapes)
}

func domainBounds(domain []puzzle.Value) (lo, hi puzzle.Value) {
	lo, hi = domain[0], domain[0]
	for _, v := range domain[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
