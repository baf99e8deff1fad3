// Package families defines the supported puzzle families and how each one
// generates solutions and rebuilds its constraint model from a stored
// layout.
//
// A family bundles two functions: Generate, which produces a full valid
// solution plus the layout describing its geometry, and Build, which turns
// a layout back into the constraint model the solver and validator work
// on. Families register themselves in a package-level registry, looked up
// by name the same way at the CLI, the HTTP API, and the dataset writer.
package families

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// ErrUnknownFamily is returned by [Lookup] for unregistered names.
var ErrUnknownFamily = errors.New("unknown puzzle family")

// Params tunes generation. Zero values select family defaults.
type Params struct {
	Rows int
	Cols int

	// Pairs is the tree/tent pair target (tents only).
	Pairs int

	// RegionSize is the cell count per region (tetro only).
	RegionSize int

	// Attempts caps whole-grid generation retries.
	Attempts int
}

// Family describes one puzzle family.
type Family struct {
	// Name is the registry key ("slant", "tents", "suko", "tetro").
	Name string

	// DefaultSize is the grid edge used when the caller passes zero.
	DefaultSize int

	// FixedSize pins both dimensions (suko is always 3x3).
	FixedSize bool

	// Generate produces a full valid solution and its layout. It never
	// fails: when the bounded attempts are exhausted it returns the
	// family's fixed fallback instance and reports fallback=true.
	Generate func(rng *rand.Rand, p Params) (puzzle.Assignment, puzzle.Layout, bool)

	// Build reconstructs the constraint model from a stored layout.
	Build func(rows, cols int, layout puzzle.Layout) (*puzzle.Model, error)
}

var registry = map[string]*Family{}

func register(f *Family) { registry[f.Name] = f }

// Lookup returns the named family or ErrUnknownFamily.
func Lookup(name string) (*Family, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	return f, nil
}

// Names returns the registered family names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize fills in family defaults for unset params.
func (f *Family) Normalize(p Params) Params {
	if f.FixedSize || p.Rows <= 0 {
		p.Rows = f.DefaultSize
	}
	if f.FixedSize || p.Cols <= 0 {
		p.Cols = f.DefaultSize
	}
	return p
}
