package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// ReadJSONL decodes a JSON Lines dataset from r.
//
// Each non-empty line must hold one puzzle object. Decoded puzzles are
// validated just enough to catch truncated or mixed-up files: every record
// needs an ID, a family, and solution/clue grids matching its dimensions.
//
// Errors are wrapped with the line number that caused the problem. The
// returned slice is independent of r; ReadJSONL does not close r.
func ReadJSONL(r io.Reader) ([]*puzzle.Puzzle, error) {
	var out []*puzzle.Puzzle
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var p puzzle.Puzzle
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("line %d: decode: %w", line, err)
		}
		if err := checkRecord(&p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, &p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return out, nil
}

// ImportJSONL reads a JSON Lines file at path and returns the decoded
// puzzles.
//
// ImportJSONL opens the file, decodes it using [ReadJSONL], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSONL(path string) ([]*puzzle.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	ps, err := ReadJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ps, nil
}

func checkRecord(p *puzzle.Puzzle) error {
	if p.ID == "" {
		return fmt.Errorf("puzzle has no id")
	}
	if p.Family == "" {
		return fmt.Errorf("puzzle %s has no family", p.ID)
	}
	cells := p.Rows * p.Cols
	if cells <= 0 {
		return fmt.Errorf("puzzle %s has invalid size %dx%d", p.ID, p.Rows, p.Cols)
	}
	if len(p.Solution) != cells {
		return fmt.Errorf("puzzle %s solution has %d cells, expected %d", p.ID, len(p.Solution), cells)
	}
	if len(p.Clues) != cells {
		return fmt.Errorf("puzzle %s clues have %d cells, expected %d", p.ID, len(p.Clues), cells)
	}
	return nil
}
