// Package pane holds the styled line snapshots components hand to the renderer.
package pane

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Segment is a run of text drawn with a single style.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Line is one terminal row.
type Line []Segment

// Pane is an immutable snapshot of a rectangular screen region.
type Pane struct {
	Lines []Line
}

// Empty is a pane that takes no rows.
var Empty = Pane{}

// Height reports the number of rows the pane needs.
func (p Pane) Height() int {
	return len(p.Lines)
}

// IsEmpty reports whether the pane has no rows.
func (p Pane) IsEmpty() bool {
	return len(p.Lines) == 0
}

// Truncate returns a pane limited to at most height rows.
func (p Pane) Truncate(height int) Pane {
	if height < 0 {
		height = 0
	}
	if len(p.Lines) <= height {
		return p
	}
	return Pane{Lines: p.Lines[:height]}
}

// Text returns the unstyled content of line i, or "" if out of range.
func (p Pane) Text(i int) string {
	if i < 0 || i >= len(p.Lines) {
		return ""
	}
	var out []byte
	for _, seg := range p.Lines[i] {
		out = append(out, seg.Text...)
	}
	return string(out)
}

// Cell is a single styled rune used while wrapping.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Wrap lays cells out into rows no wider than width display columns and
// returns at most height rows. Consecutive cells sharing a style are merged
// into one segment.
func Wrap(cells []Cell, width, height int) Pane {
	if width <= 0 || height <= 0 {
		return Empty
	}

	var lines []Line
	var current []Cell
	col := 0
	flush := func() {
		lines = append(lines, merge(current))
		current = nil
		col = 0
	}

	for _, c := range cells {
		w := runewidth.RuneWidth(c.Rune)
		if w <= 0 {
			w = 1
		}
		if col+w > width && len(current) > 0 {
			flush()
			if len(lines) >= height {
				return Pane{Lines: lines}
			}
		}
		current = append(current, c)
		col += w
	}
	if len(current) > 0 || len(lines) == 0 {
		flush()
	}
	return Pane{Lines: lines}.Truncate(height)
}

// SingleLine builds a one-row pane from text, truncated to width columns.
func SingleLine(text string, style tcell.Style, width int) Pane {
	if width <= 0 {
		return Empty
	}
	return Pane{Lines: []Line{{{Text: runewidth.Truncate(text, width, "…"), Style: style}}}}
}

func merge(cells []Cell) Line {
	if len(cells) == 0 {
		return Line{}
	}
	var line Line
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && cells[i].Style == cells[start].Style {
			continue
		}
		runes := make([]rune, 0, i-start)
		for _, c := range cells[start:i] {
			runes = append(runes, c.Rune)
		}
		line = append(line, Segment{Text: string(runes), Style: cells[start].Style})
		start = i
	}
	return line
}
