// Package puzzle defines the constraint model shared by every puzzle family:
// variables with small finite domains, immutable constraint groups derived
// from grid geometry, and the puzzle instance (solution plus clue set)
// handed to the session layer.
//
// # Core Types
//
//   - [Value], [Assignment]: one decision per cell, Unassigned when open
//   - [Group]: a fixed set of variables plus a predicate (counts, sums,
//     distinctness, consecutive runs, acyclicity, connectivity, shapes)
//   - [Model]: geometry, domain and groups for one puzzle instance
//   - [Puzzle]: the generated artifact - solution, clues, layout, identity
//
// # Ownership
//
// Models and solutions are immutable once built. The mutable player grid
// belongs to the session layer and is only ever read by the engine (see
// pkg/validate). Scratch search state lives in pkg/solver and pkg/dsu.
//
// Constraint groups never change membership after model construction; they
// are derived structurally (a row, a column, a region) when the family
// builder runs.
package puzzle
