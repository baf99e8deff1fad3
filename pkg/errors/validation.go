package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// Grid geometry limits. The solver stays interactive well past 14x14, but
// user-supplied sizes arrive from CLI flags and HTTP queries and must be
// bounded before any allocation happens.
const (
	MinGridSize = 2
	MaxGridSize = 32
)

// ValidateFamilyName validates a puzzle family name from untrusted input.
// It rejects names that could be used for path traversal, since family
// names end up in cache keys and dataset file names.
func ValidateFamilyName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFamily, "family name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidFamily, "family name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFamily, "family name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidFamily, "family name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateGridSize validates the requested grid dimensions.
func ValidateGridSize(rows, cols int) error {
	if rows < MinGridSize || cols < MinGridSize {
		return New(ErrCodeInvalidSize, "grid must be at least %dx%d, got %dx%d",
			MinGridSize, MinGridSize, rows, cols)
	}
	if rows > MaxGridSize || cols > MaxGridSize {
		return New(ErrCodeInvalidSize, "grid must be at most %dx%d, got %dx%d",
			MaxGridSize, MaxGridSize, rows, cols)
	}
	return nil
}

// puzzleIDRegex matches RFC 4122 UUID strings, the only puzzle ID format
// the engine issues.
var puzzleIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidatePuzzleID validates a puzzle identifier from untrusted input.
func ValidatePuzzleID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "puzzle id cannot be empty")
	}
	if !puzzleIDRegex.MatchString(strings.ToLower(id)) {
		return New(ErrCodeInvalidID, "invalid puzzle id: %q", id)
	}
	return nil
}

// gridTokenRegex matches one cell token of the wire grid format: a decimal
// value or "." for an unassigned cell.
var gridTokenRegex = regexp.MustCompile(`^(\.|-?[0-9]{1,3})$`)

// ValidateGridString validates the compact grid encoding used on the wire:
// whitespace-separated cell tokens, "." for unassigned. It checks shape and
// token syntax only; value-domain checks belong to the model.
func ValidateGridString(s string, cells int) error {
	if s == "" {
		return New(ErrCodeInvalidGrid, "grid cannot be empty")
	}
	if len(s) > 16*1024 {
		return New(ErrCodeInvalidGrid, "grid too long")
	}

	tokens := strings.Fields(s)
	if len(tokens) != cells {
		return New(ErrCodeInvalidGrid, "grid has %d cells, expected %d", len(tokens), cells)
	}
	for i, tok := range tokens {
		if !gridTokenRegex.MatchString(tok) {
			return New(ErrCodeInvalidGrid, "invalid cell token at %d: %q", i, tok)
		}
	}
	return nil
}

// ValidateDatasetName validates a dataset name for safety. Dataset names
// become Mongo collection names and export file basenames.
func ValidateDatasetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "dataset name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidInput, "dataset name cannot contain path separators")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidInput, "dataset name cannot be a hidden file")
	}

	if strings.Contains(name, "$") {
		return New(ErrCodeInvalidInput, "dataset name cannot contain $")
	}

	return nil
}
