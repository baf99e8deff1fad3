package puzzle

import (
	"time"

	"github.com/google/uuid"
)

// Layout carries the family-specific geometry a model is rebuilt from:
// region partitions, fixed anchors, and numeric group targets. Fields not
// used by a family stay empty and are omitted from serialization.
type Layout struct {
	// Regions assigns a region id to each cell (tetro).
	Regions []int `json:"regions,omitempty" bson:"regions,omitempty"`

	// Zones assigns a color zone id to each cell (suko).
	Zones []int `json:"zones,omitempty" bson:"zones,omitempty"`

	// Anchors are fixed cells the player never fills (tents trees).
	Anchors []int `json:"anchors,omitempty" bson:"anchors,omitempty"`

	// RowTargets and ColTargets are exact per-row/per-column counts.
	RowTargets []int `json:"row_targets,omitempty" bson:"row_targets,omitempty"`
	ColTargets []int `json:"col_targets,omitempty" bson:"col_targets,omitempty"`

	// Sums are named sum targets in family order (suko: four quadrants
	// then one per color zone).
	Sums []int `json:"sums,omitempty" bson:"sums,omitempty"`

	// ShapeNames are target tetromino names per region (tetro).
	ShapeNames []string `json:"shape_names,omitempty" bson:"shape_names,omitempty"`
}

// Puzzle is one generated instance: the full solution, the reduced clue
// set, and the layout a model can be rebuilt from. It is immutable for the
// life of the instance; the player's mutable grid lives in the session
// layer, seeded from Clues.
type Puzzle struct {
	ID        string    `json:"id" bson:"id"`
	Family    string    `json:"family" bson:"family"`
	Rows      int       `json:"rows" bson:"rows"`
	Cols      int       `json:"cols" bson:"cols"`
	Seed      int64     `json:"seed" bson:"seed"`
	Layout    Layout    `json:"layout" bson:"layout"`
	Solution  Assignment `json:"solution" bson:"solution"`
	Clues     Assignment `json:"clues" bson:"clues"`
	Fallback  bool      `json:"fallback,omitempty" bson:"fallback,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewPuzzle assembles an instance with a fresh UUID and timestamp.
func NewPuzzle(family string, rows, cols int, seed int64, layout Layout, solution, clues Assignment) *Puzzle {
	return &Puzzle{
		ID:        uuid.NewString(),
		Family:    family,
		Rows:      rows,
		Cols:      cols,
		Seed:      seed,
		Layout:    layout,
		Solution:  solution,
		Clues:     clues,
		CreatedAt: time.Now().UTC(),
	}
}

// Reveal returns a fresh player grid holding the full solution. This is the
// give-up path: no engine state is needed beyond the already-computed
// solution.
func (p *Puzzle) Reveal() Assignment { return p.Solution.Clone() }

// FreshGrid returns a player grid seeded with the clue set.
func (p *Puzzle) FreshGrid() Assignment { return p.Clues.Clone() }

// ClueCount returns the number of revealed variables.
func (p *Puzzle) ClueCount() int { return p.Clues.Assigned() }
