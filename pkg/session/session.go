// Package session provides persistence for in-progress puzzle plays.
//
// A session pairs a puzzle instance with the player's current grid so a
// play can stop and resume across CLI invocations. The edit-validate loop
// works entirely through sessions: each cell edit updates the grid,
// re-validates, and writes the session back.
//
// # Architecture
//
// Sessions store the immutable puzzle plus the mutable grid with a last-
// touched timestamp. The Store interface supports:
//   - Get/Set/Delete operations
//   - Listing sessions for resume pickers
//   - Cleanup of stale sessions
//
// # Usage
//
// Create a session store:
//
//	store, err := session.NewFileStore("")  // Uses ~/.config/enigma/sessions/
//
// Manage sessions:
//
//	sess := session.New(pz)
//	store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, pz.ID)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // No play in progress for this puzzle
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCellFixed is returned when a play tries to edit a fixed or clue
	// cell.
	ErrCellFixed = errors.New("cell is not editable")
)

// StaleAfter is the age past which Cleanup discards a session. Long enough
// to survive a vacation, short enough to keep the session dir tidy.
const StaleAfter = 90 * 24 * time.Hour

// Session is one in-progress play.
type Session struct {
	// Puzzle is the instance being played. Its ID doubles as the session
	// key: one play per puzzle.
	Puzzle *puzzle.Puzzle `json:"puzzle"`

	// Grid is the player's current assignment.
	Grid puzzle.Assignment `json:"grid"`

	// StartedAt and UpdatedAt bound the play.
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Solved records whether a validation pass has accepted the grid.
	Solved bool `json:"solved,omitempty"`
}

// New starts a session with the grid seeded from the puzzle's clues.
func New(p *puzzle.Puzzle) *Session {
	now := time.Now().UTC()
	return &Session{
		Puzzle:    p,
		Grid:      p.FreshGrid(),
		StartedAt: now,
		UpdatedAt: now,
	}
}

// ID returns the session key.
func (s *Session) ID() string { return s.Puzzle.ID }

// SetCell writes one player edit. Clue cells and anchors are immutable;
// value semantics are the model's concern, not the session's.
func (s *Session) SetCell(v int, val puzzle.Value) error {
	if v < 0 || v >= len(s.Grid) {
		return ErrCellFixed
	}
	if s.Puzzle.Clues[v] != puzzle.Unassigned {
		return ErrCellFixed
	}
	s.Grid[v] = val
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// ClearCell retracts one player edit.
func (s *Session) ClearCell(v int) error {
	return s.SetCell(v, puzzle.Unassigned)
}

// IsStale reports whether the session is old enough to clean up.
func (s *Session) IsStale() bool {
	return time.Since(s.UpdatedAt) > StaleAfter
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by puzzle ID.
	// Returns nil, nil if the session doesn't exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session, replacing any previous state.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error

	// List returns all stored sessions, most recently updated first.
	List(ctx context.Context) ([]*Session, error)

	// Cleanup removes stale sessions.
	Cleanup(ctx context.Context) error
}
