package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

var (
	successStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	warningStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Guide is the transient one-line status shown under the editor.
type Guide struct {
	Text  string
	Style tcell.Style
}

func (g *Guide) set(text string, style tcell.Style) {
	g.Text = text
	g.Style = style
}

func (g *Guide) clear() {
	g.Text = ""
}

// Pane renders the guide line; an empty guide takes no rows.
func (g Guide) Pane(width, height int) pane.Pane {
	if g.Text == "" || height <= 0 {
		return pane.Empty
	}
	return pane.SingleLine(g.Text, g.Style, width)
}
