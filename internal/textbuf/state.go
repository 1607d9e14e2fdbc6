package textbuf

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

// State bundles the buffer with the attributes used to display and edit it.
// The style fields are overwritten by the editor's focus/defocus themes.
type State struct {
	Editor            *Editor
	Prefix            string
	PrefixStyle       tcell.Style
	ActiveCharStyle   tcell.Style
	InactiveCharStyle tcell.Style
	EditMode          Mode
	WordBreakChars    WordBreakChars
	// Lines caps the rows the editor pane may use; zero means no cap.
	Lines int
}

// NewState returns a state with an empty buffer and default word breaks.
func NewState(mode Mode) *State {
	return &State{
		Editor:         New(""),
		EditMode:       mode,
		WordBreakChars: DefaultWordBreakChars(),
	}
}

// Pane renders prefix and buffer, highlighting the rune under the cursor.
// A cursor at the tail is drawn as a highlighted blank.
func (s *State) Pane(width, height int) pane.Pane {
	if s.Lines > 0 && height > s.Lines {
		height = s.Lines
	}

	runes := s.Editor.Runes()
	cursor := s.Editor.Position()
	cells := make([]pane.Cell, 0, len(s.Prefix)+len(runes)+1)
	for _, r := range s.Prefix {
		cells = append(cells, pane.Cell{Rune: r, Style: s.PrefixStyle})
	}
	for i, r := range runes {
		style := s.InactiveCharStyle
		if i == cursor {
			style = s.ActiveCharStyle
		}
		cells = append(cells, pane.Cell{Rune: r, Style: style})
	}
	if cursor >= len(runes) {
		cells = append(cells, pane.Cell{Rune: ' ', Style: s.ActiveCharStyle})
	}
	return pane.Wrap(cells, width, height)
}
