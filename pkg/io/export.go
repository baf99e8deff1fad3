// Package io provides JSON Lines import and export for puzzle datasets.
//
// Datasets move between deployments as flat files: one JSON object per
// line, one puzzle per object. The line-oriented format lets exports
// stream from Mongo without buffering the dataset, and lets training
// pipelines consume files with ordinary line tooling.
//
// Use [WriteJSONL]/[ExportJSONL] to produce files and [ReadJSONL]/
// [ImportJSONL] to load them back. Round-trips preserve every field,
// including the solution grid, so exported files must be treated as
// answer keys, not as player-facing material.
package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// WriteJSONL encodes puzzles as JSON Lines and writes them to w.
// The output can be re-imported with [ReadJSONL] for round-trip processing.
func WriteJSONL(ps []*puzzle.Puzzle, w io.Writer) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i, p := range ps {
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encode puzzle %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ExportJSONL writes puzzles to a JSON Lines file at path.
// This is a convenience wrapper around [WriteJSONL] for file-based output.
func ExportJSONL(ps []*puzzle.Puzzle, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSONL(ps, f)
}
