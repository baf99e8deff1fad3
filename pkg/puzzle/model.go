package puzzle

import (
	"errors"
	"slices"
)

var (
	// ErrBadGeometry is returned by [NewModel] when rows or cols is not
	// positive.
	ErrBadGeometry = errors.New("grid dimensions must be positive")

	// ErrEmptyDomain is returned by [NewModel] when the value domain is
	// empty.
	ErrEmptyDomain = errors.New("value domain must not be empty")

	// ErrBadGroup is returned by [Model.AddGroup] when a group references a
	// variable outside the grid or carries malformed predicate data.
	ErrBadGroup = errors.New("malformed constraint group")
)

// Value is one assigned decision. Domains are small (2-12 options), so a
// single signed byte is plenty.
type Value int8

// Unassigned marks a variable with no decision yet. Absence of input is
// never an error.
const Unassigned Value = -1

// Assignment maps each variable index to its value, Unassigned when open.
type Assignment []Value

// NewAssignment returns an assignment of n variables, all Unassigned.
func NewAssignment(n int) Assignment {
	a := make(Assignment, n)
	for i := range a {
		a[i] = Unassigned
	}
	return a
}

// Clone returns an independent copy.
func (a Assignment) Clone() Assignment { return slices.Clone(a) }

// Complete reports whether every variable holds a value.
func (a Assignment) Complete() bool {
	for _, v := range a {
		if v == Unassigned {
			return false
		}
	}
	return true
}

// Assigned returns the number of variables holding a value.
func (a Assignment) Assigned() int {
	n := 0
	for _, v := range a {
		if v != Unassigned {
			n++
		}
	}
	return n
}

// GroupKind selects the predicate attached to a constraint group.
type GroupKind int

const (
	// GroupExactCount requires exactly Target members to hold Counted.
	GroupExactCount GroupKind = iota
	// GroupAtMostCount allows at most Target members to hold Counted.
	GroupAtMostCount
	// GroupExactSum requires member values to sum to exactly Target.
	GroupExactSum
	// GroupAllDistinct forbids two members holding the same value.
	GroupAllDistinct
	// GroupConsecutiveRun requires distinct member values forming one
	// contiguous integer run once the group is fully assigned.
	GroupConsecutiveRun
	// GroupNoCycle requires the edges implied by member assignments to
	// form a forest over the group's vertex space. Multiple components
	// are fine; a closed cycle is not.
	GroupNoCycle
	// GroupConnected requires all members NOT holding Counted to form a
	// single orthogonally connected region.
	GroupConnected
	// GroupNoTouch forbids two members holding Counted from being
	// adjacent, diagonals included.
	GroupNoTouch
	// GroupShape requires exactly Target members to hold Counted and,
	// once the group is fully assigned, those members to form one of the
	// group's Shapes.
	GroupShape
)

// String returns a short name for the kind, used in logs and group names.
func (k GroupKind) String() string {
	switch k {
	case GroupExactCount:
		return "exact-count"
	case GroupAtMostCount:
		return "at-most"
	case GroupExactSum:
		return "sum"
	case GroupAllDistinct:
		return "distinct"
	case GroupConsecutiveRun:
		return "run"
	case GroupNoCycle:
		return "no-cycle"
	case GroupConnected:
		return "connected"
	case GroupNoTouch:
		return "no-touch"
	case GroupShape:
		return "shape"
	default:
		return "unknown"
	}
}

// Edge names two vertices in a group's abstract vertex space.
type Edge struct {
	A, B int
}

// Group is an immutable set of variables plus a predicate. Groups are
// derived from geometry (a row, a column, a named region) at model build
// time and never change membership afterwards.
type Group struct {
	Name string
	Kind GroupKind
	Vars []int

	// Target is the count (GroupExactCount, GroupAtMostCount, GroupShape)
	// or sum (GroupExactSum) the predicate compares against.
	Target int

	// Counted is the domain value the count-style predicates look for,
	// or the blocking value for GroupConnected.
	Counted Value

	// Verts is the size of the vertex space for GroupNoCycle.
	Verts int

	// Ends[i][vi] is the edge implied by assigning the model's domain
	// value with index vi to Vars[i]. Only set for GroupNoCycle.
	Ends [][]Edge

	// Shapes are the acceptable normalized shapes for GroupShape.
	Shapes []Shape
}

// Model describes one puzzle instance: grid geometry, the shared value
// domain, optional pre-assigned variables, and the constraint groups.
//
// A model is immutable after the family builder finishes with it. It is
// safe for concurrent reads.
type Model struct {
	Family string
	Rows   int
	Cols   int

	// Domain is the legal value set enumerated by the solver for free
	// variables, in enumeration order.
	Domain []Value

	// Fixed holds pre-assigned variables (for example the tree cells of a
	// tents puzzle). Fixed values may lie outside Domain; the solver
	// never enumerates them and the reducer never hides them. Nil when
	// the family has no fixed cells.
	Fixed Assignment

	groups []Group
	byVar  [][]int // variable index -> indices into groups
}

// NewModel creates an empty model for a rows x cols grid over the given
// domain. The domain slice is used as-is and must not be modified after.
func NewModel(family string, rows, cols int, domain []Value) (*Model, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadGeometry
	}
	if len(domain) == 0 {
		return nil, ErrEmptyDomain
	}
	return &Model{
		Family: family,
		Rows:   rows,
		Cols:   cols,
		Domain: domain,
		byVar:  make([][]int, rows*cols),
	}, nil
}

// VarCount returns the number of decision variables (one per cell).
func (m *Model) VarCount() int { return m.Rows * m.Cols }

// Index converts a row/column pair to a variable index.
func (m *Model) Index(r, c int) int { return r*m.Cols + c }

// Coord converts a variable index back to its row/column pair.
func (m *Model) Coord(i int) (r, c int) { return i / m.Cols, i % m.Cols }

// DomainIndex returns the position of v in the model's domain, or -1.
func (m *Model) DomainIndex(v Value) int {
	for i, d := range m.Domain {
		if d == v {
			return i
		}
	}
	return -1
}

// AddGroup appends a constraint group and indexes its members. Returns
// ErrBadGroup if a member is out of range or NoCycle edge data does not
// line up with the membership and domain.
func (m *Model) AddGroup(g Group) error {
	for _, v := range g.Vars {
		if v < 0 || v >= m.VarCount() {
			return ErrBadGroup
		}
	}
	if g.Kind == GroupNoCycle {
		if g.Verts <= 0 || len(g.Ends) != len(g.Vars) {
			return ErrBadGroup
		}
		for _, ends := range g.Ends {
			if len(ends) != len(m.Domain) {
				return ErrBadGroup
			}
		}
	}
	idx := len(m.groups)
	m.groups = append(m.groups, g)
	for _, v := range g.Vars {
		m.byVar[v] = append(m.byVar[v], idx)
	}
	return nil
}

// Groups returns all constraint groups. The slice must be treated as
// read-only.
func (m *Model) Groups() []Group { return m.groups }

// Group returns the group at index i.
func (m *Model) Group(i int) *Group { return &m.groups[i] }

// GroupsOf returns the indices of groups containing variable v. The slice
// must be treated as read-only.
func (m *Model) GroupsOf(v int) []int { return m.byVar[v] }

// IsFixed reports whether v was pre-assigned by the family builder.
func (m *Model) IsFixed(v int) bool {
	return m.Fixed != nil && m.Fixed[v] != Unassigned
}

// Start returns the assignment the solver searches from: the fixed values
// overlaid with the given clues. Clues may be nil.
func (m *Model) Start(clues Assignment) Assignment {
	a := NewAssignment(m.VarCount())
	if m.Fixed != nil {
		copy(a, m.Fixed)
	}
	for i, v := range clues {
		if v != Unassigned {
			a[i] = v
		}
	}
	return a
}

// Neighbors4 returns the orthogonal neighbor indices of variable v.
func (m *Model) Neighbors4(v int) []int {
	r, c := m.Coord(v)
	out := make([]int, 0, 4)
	if r > 0 {
		out = append(out, m.Index(r-1, c))
	}
	if r < m.Rows-1 {
		out = append(out, m.Index(r+1, c))
	}
	if c > 0 {
		out = append(out, m.Index(r, c-1))
	}
	if c < m.Cols-1 {
		out = append(out, m.Index(r, c+1))
	}
	return out
}

// Neighbors8 returns the neighbor indices of v, diagonals included.
func (m *Model) Neighbors8(v int) []int {
	r, c := m.Coord(v)
	out := make([]int, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := r+dr, c+dc
			if nr >= 0 && nr < m.Rows && nc >= 0 && nc < m.Cols {
				out = append(out, m.Index(nr, nc))
			}
		}
	}
	return out
}
