package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/jnv/internal/keymap"
	statepkg "github.com/kk-code-lab/jnv/internal/state"
)

// InputHandler converts tcell events to Actions. It runs on the loop
// goroutine, so it returns actions instead of sending them to the loop's
// own channel.
type InputHandler struct {
	keys  keymap.AppKeybinds
	state *statepkg.AppState // Reference to current state for focus checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(keys keymap.AppKeybinds) *InputHandler {
	return &InputHandler{keys: keys}
}

// SetState sets the state reference for focus checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action, or nil when the event
// maps to nothing.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) statepkg.Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKey(keymap.FromEvent(ev))
	case *tcell.EventResize:
		w, h := ev.Size()
		return statepkg.ResizeAction{Width: w, Height: h}
	default:
		return nil
	}
}

// processKey checks the application bindings first and hands everything
// else to the focused component.
func (ih *InputHandler) processKey(k keymap.Keystroke) statepkg.Action {
	switch k {
	case ih.keys.Exit:
		return statepkg.QuitAction{}
	case ih.keys.CopyQuery:
		return statepkg.CopyQueryAction{}
	case ih.keys.CopyResult:
		return statepkg.CopyResultAction{}
	case ih.keys.SwitchFocus:
		return statepkg.SwitchFocusAction{}
	case ih.keys.Suspend:
		return statepkg.SuspendAction{}
	}

	if ih.state == nil || ih.state.Focus == statepkg.FocusEditor {
		return statepkg.EditorKeyAction{Key: k}
	}
	return viewerAction(k)
}

func viewerAction(k keymap.Keystroke) statepkg.Action {
	if r, ok := k.Char(); ok {
		switch r {
		case 'k':
			return statepkg.ScrollUpAction{}
		case 'j':
			return statepkg.ScrollDownAction{}
		case 'g':
			return statepkg.ScrollTopAction{}
		case 'G':
			return statepkg.ScrollBottomAction{}
		case ' ':
			return statepkg.ScrollPageDownAction{}
		}
		return nil
	}
	if k.Modifiers != tcell.ModNone {
		return nil
	}
	switch k.Code.Key {
	case tcell.KeyUp:
		return statepkg.ScrollUpAction{}
	case tcell.KeyDown:
		return statepkg.ScrollDownAction{}
	case tcell.KeyPgUp:
		return statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn:
		return statepkg.ScrollPageDownAction{}
	case tcell.KeyHome:
		return statepkg.ScrollTopAction{}
	case tcell.KeyEnd:
		return statepkg.ScrollBottomAction{}
	}
	return nil
}
