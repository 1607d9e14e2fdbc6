package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/textbuf"
)

// Theme is the look of the query editor in one focus state.
type Theme struct {
	// Prefix is drawn before the query text.
	Prefix string
	// PrefixStyle is applied to Prefix.
	PrefixStyle tcell.Style
	// ActiveCharStyle is applied to the character under the cursor.
	ActiveCharStyle tcell.Style
	// InactiveCharStyle is applied to every other character.
	InactiveCharStyle tcell.Style
}

// DefaultFocusTheme is used while the editor receives keys.
func DefaultFocusTheme() Theme {
	return Theme{
		Prefix:            "❯❯ ",
		PrefixStyle:       tcell.StyleDefault.Foreground(tcell.ColorGreen),
		ActiveCharStyle:   tcell.StyleDefault.Background(tcell.ColorTeal),
		InactiveCharStyle: tcell.StyleDefault,
	}
}

// DefaultDefocusTheme is used while another pane has focus.
func DefaultDefocusTheme() Theme {
	return Theme{
		Prefix:            "▼ ",
		PrefixStyle:       tcell.StyleDefault.Foreground(tcell.ColorGray),
		ActiveCharStyle:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		InactiveCharStyle: tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// applyTo copies the theme onto the buffer's display attributes.
func (t Theme) applyTo(state *textbuf.State) {
	state.Prefix = t.Prefix
	state.PrefixStyle = t.PrefixStyle
	state.ActiveCharStyle = t.ActiveCharStyle
	state.InactiveCharStyle = t.InactiveCharStyle
}
