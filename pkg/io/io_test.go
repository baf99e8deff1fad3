package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianfhunter/enigma/pkg/puzzle"
)

func samplePuzzles() []*puzzle.Puzzle {
	a := puzzle.NewPuzzle("slant", 2, 2, 7, puzzle.Layout{},
		puzzle.Assignment{0, 1, 1, 1}, puzzle.Assignment{0, -1, -1, 1})
	b := puzzle.NewPuzzle("suko", 3, 3, 9,
		puzzle.Layout{Zones: []int{0, 0, 1, 0, 1, 1, 2, 2, 2}, Sums: []int{10, 11, 12, 13, 14, 15, 16}},
		puzzle.Assignment{1, 2, 3, 4, 5, 6, 7, 8, 9}, puzzle.Assignment{1, -1, -1, -1, 5, -1, -1, -1, 9})
	return []*puzzle.Puzzle{a, b}
}

func TestRoundTrip(t *testing.T) {
	ps := samplePuzzles()

	var buf bytes.Buffer
	if err := WriteJSONL(ps, &buf); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	got, err := ReadJSONL(&buf)
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(got) != len(ps) {
		t.Fatalf("round trip lost puzzles: %d != %d", len(got), len(ps))
	}
	for i := range ps {
		if got[i].ID != ps[i].ID || got[i].Family != ps[i].Family {
			t.Errorf("puzzle %d identity changed: %s/%s", i, got[i].ID, got[i].Family)
		}
		for v := range ps[i].Solution {
			if got[i].Solution[v] != ps[i].Solution[v] || got[i].Clues[v] != ps[i].Clues[v] {
				t.Fatalf("puzzle %d grid changed at %d", i, v)
			}
		}
	}
}

func TestFileRoundTrip(t *testing.T) {
	ps := samplePuzzles()
	path := filepath.Join(t.TempDir(), "set.jsonl")

	if err := ExportJSONL(ps, path); err != nil {
		t.Fatalf("ExportJSONL: %v", err)
	}
	got, err := ImportJSONL(path)
	if err != nil {
		t.Fatalf("ImportJSONL: %v", err)
	}
	if len(got) != len(ps) {
		t.Fatalf("file round trip lost puzzles: %d != %d", len(got), len(ps))
	}
}

func TestReadRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", "{not json}\n"},
		{"missing id", `{"family":"slant","rows":2,"cols":2,"solution":[0,1,1,1],"clues":[0,1,1,1]}` + "\n"},
		{"missing family", `{"id":"0c9d3f6a-8a1b-4f6e-9c2d-1e2f3a4b5c6d","rows":2,"cols":2,"solution":[0,1,1,1],"clues":[0,1,1,1]}` + "\n"},
		{"short solution", `{"id":"0c9d3f6a-8a1b-4f6e-9c2d-1e2f3a4b5c6d","family":"slant","rows":2,"cols":2,"solution":[0,1],"clues":[0,1,1,1]}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSONL(strings.NewReader(tt.input)); err == nil {
				t.Errorf("ReadJSONL accepted %s", tt.name)
			}
		})
	}
}

func TestReadSkipsBlankLines(t *testing.T) {
	ps := samplePuzzles()
	var buf bytes.Buffer
	if err := WriteJSONL(ps[:1], &buf); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	buf.WriteString("\n")
	if err := WriteJSONL(ps[1:], &buf); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	got, err := ReadJSONL(&buf)
	if err != nil {
		t.Fatalf("ReadJSONL: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d puzzles, want 2", len(got))
	}
}
