package keymap

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Kind distinguishes press, repeat and release reports for the same key.
type Kind uint8

const (
	KindPress Kind = iota
	KindRepeat
	KindRelease
)

// State carries auxiliary lock/keypad flags reported alongside a key.
type State uint8

const (
	StateNone   State = 0
	StateKeypad State = 1 << (iota - 1)
	StateCapsLock
	StateNumLock
)

// Code identifies the key itself. Rune is only meaningful when Key is tcell.KeyRune.
type Code struct {
	Key  tcell.Key
	Rune rune
}

// Keystroke describes one terminal input event. Two keystrokes are the same
// binding iff all four fields match, so the struct is usable as a map key.
type Keystroke struct {
	Code      Code
	Modifiers tcell.ModMask
	Kind      Kind
	State     State
}

// Rune builds a plain press of a character key.
func Rune(r rune, mods tcell.ModMask) Keystroke {
	return normalize(tcell.KeyRune, r, mods)
}

// Special builds a plain press of a non-character key.
func Special(k tcell.Key, mods tcell.ModMask) Keystroke {
	return normalize(k, 0, mods)
}

// FromEvent converts a tcell key event into its canonical keystroke.
func FromEvent(ev *tcell.EventKey) Keystroke {
	if ev == nil {
		return Keystroke{}
	}
	return normalize(ev.Key(), ev.Rune(), ev.Modifiers())
}

// normalize folds the different encodings tcell uses for the same physical
// key (Ctrl+letter as KeyCtrlX or as KeyRune+ModCtrl, 0x08 vs 0x7f backspace).
func normalize(k tcell.Key, r rune, mods tcell.ModMask) Keystroke {
	switch {
	case k == tcell.KeyRune:
		if mods&tcell.ModCtrl != 0 {
			lower := unicode.ToLower(r)
			if lower >= 'a' && lower <= 'z' {
				return Keystroke{
					Code:      Code{Key: tcell.KeyCtrlA + tcell.Key(lower-'a')},
					Modifiers: mods &^ tcell.ModShift,
				}
			}
		}
		return Keystroke{Code: Code{Key: tcell.KeyRune, Rune: r}, Modifiers: mods}
	case k == tcell.KeyBackspace && mods&tcell.ModCtrl == 0:
		return Keystroke{Code: Code{Key: tcell.KeyBackspace2}, Modifiers: mods}
	case k == tcell.KeyTab || k == tcell.KeyEnter:
		return Keystroke{Code: Code{Key: k}, Modifiers: mods}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return Keystroke{Code: Code{Key: k}, Modifiers: mods | tcell.ModCtrl}
	default:
		return Keystroke{Code: Code{Key: k}, Modifiers: mods}
	}
}

// IsPlain reports whether k is a press with no modifiers and no aux state.
func (k Keystroke) IsPlain() bool {
	return k.Modifiers == tcell.ModNone && k.Kind == KindPress && k.State == StateNone
}

// Char returns the printable character typed by k, if k is a literal
// character press. Only no-modifier and shift-only presses qualify; any other
// modifier combination (ctrl, alt, meta) is never treated as text.
func (k Keystroke) Char() (rune, bool) {
	if k.Code.Key != tcell.KeyRune || k.Kind != KindPress || k.State != StateNone {
		return 0, false
	}
	if k.Modifiers != tcell.ModNone && k.Modifiers != tcell.ModShift {
		return 0, false
	}
	if !unicode.IsPrint(k.Code.Rune) {
		return 0, false
	}
	return k.Code.Rune, true
}
