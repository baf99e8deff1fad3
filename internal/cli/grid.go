package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ianfhunter/enigma/pkg/generate"
	"github.com/ianfhunter/enigma/pkg/puzzle"
)

// Cell render styles. Clues stay dim so player entries stand out; cells
// flagged by the validator render red.
var (
	styleCellClue  = lipgloss.NewStyle().Foreground(colorGray)
	styleCellEntry = lipgloss.NewStyle().Foreground(colorWhite)
	styleCellBad   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	styleCellOpen  = lipgloss.NewStyle().Foreground(colorDim)
	styleCellFixed = lipgloss.NewStyle().Foreground(colorGreen)
)

// cellGlyph maps one cell value to its display rune for a family.
// Unassigned cells render as a middle dot everywhere.
func cellGlyph(family string, val puzzle.Value) string {
	if val == puzzle.Unassigned {
		return "·"
	}
	switch family {
	case "slant":
		if val == generate.SlantNE {
			return "/"
		}
		return `\`
	case "tents":
		switch val {
		case generate.TentTree:
			return "T"
		case generate.TentTent:
			return "▲"
		default:
			return "."
		}
	default:
		// suko and tetro carry digits directly.
		return fmt.Sprintf("%d", val)
	}
}

// renderGrid draws the grid with row/column target margins where the layout
// defines them. bad marks validator-flagged cells.
func renderGrid(p *puzzle.Puzzle, grid puzzle.Assignment, bad map[int]bool) string {
	return renderGridCursor(p, grid, bad, -1)
}

// renderGridCursor is renderGrid with one cell bracketed as the cursor.
// A cursor of -1 means no cursor.
func renderGridCursor(p *puzzle.Puzzle, grid puzzle.Assignment, bad map[int]bool, cursor int) string {
	var b strings.Builder

	if len(p.Layout.ColTargets) == p.Cols {
		b.WriteString("    ")
		for c := 0; c < p.Cols; c++ {
			b.WriteString(StyleNumber.Render(fmt.Sprintf("%d ", p.Layout.ColTargets[c])))
		}
		b.WriteString("\n")
	}

	anchors := make(map[int]bool, len(p.Layout.Anchors))
	for _, a := range p.Layout.Anchors {
		anchors[a] = true
	}

	for r := 0; r < p.Rows; r++ {
		if len(p.Layout.RowTargets) == p.Rows {
			b.WriteString(StyleNumber.Render(fmt.Sprintf("%2d", p.Layout.RowTargets[r])) + "  ")
		} else {
			b.WriteString("  ")
		}
		for c := 0; c < p.Cols; c++ {
			v := r*p.Cols + c
			glyph := cellGlyph(p.Family, grid[v])
			style := cellStyle(p, grid, anchors, bad, v)
			if v == cursor {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(glyph) + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cellStyle(p *puzzle.Puzzle, grid puzzle.Assignment, anchors, bad map[int]bool, v int) lipgloss.Style {
	switch {
	case bad[v]:
		return styleCellBad
	case anchors[v]:
		return styleCellFixed
	case grid[v] == puzzle.Unassigned:
		return styleCellOpen
	case p.Clues[v] != puzzle.Unassigned:
		return styleCellClue
	default:
		return styleCellEntry
	}
}

// renderTargets prints the named sum targets for families that carry them
// (suko quadrants and zones). Other families return an empty string.
func renderTargets(p *puzzle.Puzzle) string {
	if len(p.Layout.Sums) == 0 {
		return ""
	}
	var b strings.Builder
	labels := sumLabels(p)
	for i, s := range p.Layout.Sums {
		label := fmt.Sprintf("sum %d", i)
		if i < len(labels) {
			label = labels[i]
		}
		b.WriteString("  " + StyleDim.Render(label+":") + " " + StyleNumber.Render(fmt.Sprintf("%d", s)) + "\n")
	}
	return b.String()
}

func sumLabels(p *puzzle.Puzzle) []string {
	if p.Family != "suko" {
		return nil
	}
	labels := []string{"top-left", "top-right", "bottom-left", "bottom-right"}
	for i := 4; i < len(p.Layout.Sums); i++ {
		labels = append(labels, fmt.Sprintf("zone %d", i-4))
	}
	return labels
}
