// Package editor dispatches keystrokes to the jq query editor and its
// suggestion navigation mode.
package editor

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/keymap"
	"github.com/kk-code-lab/jnv/internal/log"
	"github.com/kk-code-lab/jnv/internal/textbuf"
	"github.com/kk-code-lab/jnv/internal/ui/pane"
)

// Mode is the active interpretation of keystrokes.
type Mode uint8

const (
	ModeEdit Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "edit"
}

// Editor owns the query buffer, its themes, the guide line and the mode.
// It is driven from a single goroutine; no method may be called concurrently.
type Editor struct {
	mode         Mode
	state        *textbuf.State
	focusTheme   Theme
	defocusTheme Theme
	guide        Guide
	searcher     Searcher
	keybinds     keymap.Keybinds
	resolver     *keymap.Resolver
}

// New creates an editor in edit mode.
func New(state *textbuf.State, searcher Searcher, focus, defocus Theme, keybinds keymap.Keybinds) *Editor {
	if state == nil {
		state = textbuf.NewState(textbuf.Insert)
	}
	return &Editor{
		mode:         ModeEdit,
		state:        state,
		focusTheme:   focus,
		defocusTheme: defocus,
		searcher:     searcher,
		keybinds:     keybinds,
		resolver:     keymap.NewResolver(keybinds),
	}
}

// Focus applies the focused theme.
func (e *Editor) Focus() {
	e.focusTheme.applyTo(e.state)
}

// Defocus applies the unfocused theme, abandons any suggestion session and
// clears the guide.
func (e *Editor) Defocus() {
	e.defocusTheme.applyTo(e.state)
	e.searcher.Leave()
	e.mode = ModeEdit
	e.guide.clear()
}

// Text returns the query without cursor markup.
func (e *Editor) Text() string {
	return e.state.Editor.TextWithoutCursor()
}

// Mode returns the active mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Guide returns the current guide message.
func (e *Editor) Guide() Guide {
	return e.guide
}

// Keybinds returns the editor's binding table.
func (e *Editor) Keybinds() keymap.Keybinds {
	return e.keybinds
}

// EditorPane renders the query line.
func (e *Editor) EditorPane(width, height int) pane.Pane {
	return e.state.Pane(width, height)
}

// SearcherPane renders the suggestion list.
func (e *Editor) SearcherPane(width, height int) pane.Pane {
	return e.searcher.Pane(width, height)
}

// GuidePane renders the guide line.
func (e *Editor) GuidePane(width, height int) pane.Pane {
	return e.guide.Pane(width, height)
}

// Operate handles one terminal key event.
func (e *Editor) Operate(ctx context.Context, ev *tcell.EventKey) error {
	return e.OperateKey(ctx, keymap.FromEvent(ev))
}

// OperateKey routes k to the handler for the active mode. Only a broken
// suggestion provider makes it fail.
func (e *Editor) OperateKey(ctx context.Context, k keymap.Keystroke) error {
	switch e.mode {
	case ModeSearch:
		return e.search(ctx, k)
	default:
		return e.edit(ctx, k)
	}
}

func (e *Editor) switchMode(m Mode) {
	if e.mode == m {
		return
	}
	log.Debug("editor mode", "from", e.mode, "to", m)
	e.mode = m
}
