package pane

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func cells(text string, style tcell.Style) []Cell {
	out := make([]Cell, 0, len(text))
	for _, r := range text {
		out = append(out, Cell{Rune: r, Style: style})
	}
	return out
}

func TestWrapSplitsByWidth(t *testing.T) {
	p := Wrap(cells("abcdefg", tcell.StyleDefault), 3, 10)

	if p.Height() != 3 {
		t.Fatalf("expected 3 rows, got %d", p.Height())
	}
	if p.Text(0) != "abc" || p.Text(1) != "def" || p.Text(2) != "g" {
		t.Fatalf("unexpected rows %q %q %q", p.Text(0), p.Text(1), p.Text(2))
	}
}

func TestWrapRespectsHeight(t *testing.T) {
	p := Wrap(cells("abcdefg", tcell.StyleDefault), 2, 2)

	if p.Height() != 2 || p.Text(1) != "cd" {
		t.Fatalf("expected two rows ending in cd, got %d rows", p.Height())
	}
}

func TestWrapCountsWideRunes(t *testing.T) {
	p := Wrap(cells("日本語", tcell.StyleDefault), 4, 5)

	if p.Height() != 2 || p.Text(0) != "日本" || p.Text(1) != "語" {
		t.Fatalf("unexpected wide wrap %q / %q", p.Text(0), p.Text(1))
	}
}

func TestWrapMergesStyleRuns(t *testing.T) {
	bold := tcell.StyleDefault.Bold(true)
	in := append(cells("ab", tcell.StyleDefault), cells("cd", bold)...)

	p := Wrap(in, 10, 1)

	if len(p.Lines[0]) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(p.Lines[0]))
	}
	if p.Lines[0][1].Text != "cd" || p.Lines[0][1].Style != bold {
		t.Fatalf("unexpected second segment %+v", p.Lines[0][1])
	}
}

func TestWrapEmptyInputKeepsOneRow(t *testing.T) {
	if h := Wrap(nil, 5, 5).Height(); h != 1 {
		t.Fatalf("expected a single empty row, got %d", h)
	}
	if !Wrap(nil, 0, 5).IsEmpty() {
		t.Fatal("zero width should produce no rows")
	}
}

func TestSingleLineTruncates(t *testing.T) {
	p := SingleLine("abcdef", tcell.StyleDefault, 4)

	if p.Text(0) != "abc…" {
		t.Fatalf("got %q", p.Text(0))
	}
	if p.Text(5) != "" {
		t.Fatal("out of range text should be empty")
	}
}
