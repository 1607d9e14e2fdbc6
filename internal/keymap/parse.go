package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

var namedKeys = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdown":    tcell.KeyPgDn,
	"insert":    tcell.KeyInsert,
	"delete":    tcell.KeyDelete,
	"backspace": tcell.KeyBackspace2,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

var keyAliases = map[string]string{
	"escape":   "esc",
	"return":   "enter",
	"del":      "delete",
	"bs":       "backspace",
	"pageup":   "pgup",
	"pagedown": "pgdown",
	"pgdn":     "pgdown",
}

var keyNames = func() map[tcell.Key]string {
	out := make(map[tcell.Key]string, len(namedKeys))
	for name, k := range namedKeys {
		out[k] = name
	}
	return out
}()

// Parse converts a descriptor such as "ctrl+w", "alt+b", "shift+down" or "a"
// into a Keystroke. Modifier names are case-insensitive; a lone uppercase
// letter is read as shift+letter.
func Parse(spec string) (Keystroke, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Keystroke{}, errors.New("empty key descriptor")
	}
	if raw == "space" || raw == " " {
		return Rune(' ', tcell.ModNone), nil
	}
	if utf8.RuneCountInString(raw) == 1 {
		r, _ := utf8.DecodeRuneInString(raw)
		if unicode.IsUpper(r) {
			return Rune(r, tcell.ModShift), nil
		}
		return Rune(r, tcell.ModNone), nil
	}

	// "+" itself may be the key, as in "ctrl++".
	parts := strings.Split(raw, "+")
	if strings.HasSuffix(raw, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	var mods tcell.ModMask
	var key string
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == len(parts)-1 {
			key = part
			break
		}
		switch strings.ToLower(part) {
		case "ctrl", "control":
			mods |= tcell.ModCtrl
		case "alt", "option":
			mods |= tcell.ModAlt
		case "shift":
			mods |= tcell.ModShift
		case "meta", "cmd", "command":
			mods |= tcell.ModMeta
		default:
			return Keystroke{}, fmt.Errorf("key %q: unknown modifier %q", spec, part)
		}
	}
	if key == "" {
		return Keystroke{}, fmt.Errorf("key %q: missing key", spec)
	}

	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		return Rune(r, mods), nil
	}

	name := strings.ToLower(key)
	if alias, ok := keyAliases[name]; ok {
		name = alias
	}
	if name == "space" {
		return Rune(' ', mods), nil
	}
	k, ok := namedKeys[name]
	if !ok {
		return Keystroke{}, fmt.Errorf("key %q: unknown key %q", spec, key)
	}
	return Special(k, mods), nil
}

// MustParse is Parse for built-in descriptors.
func MustParse(spec string) Keystroke {
	k, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return k
}

// String renders k in the descriptor form accepted by Parse.
func (k Keystroke) String() string {
	var b strings.Builder
	mods := k.Modifiers
	key := ""

	switch {
	case k.Code.Key == tcell.KeyRune:
		if k.Code.Rune == ' ' {
			key = "space"
		} else {
			key = string(k.Code.Rune)
		}
	case k.Code.Key >= tcell.KeyCtrlA && k.Code.Key <= tcell.KeyCtrlZ &&
		k.Code.Key != tcell.KeyTab && k.Code.Key != tcell.KeyEnter:
		key = string(rune('a' + (k.Code.Key - tcell.KeyCtrlA)))
		mods |= tcell.ModCtrl
	default:
		if name, ok := keyNames[k.Code.Key]; ok {
			key = name
		} else {
			key = fmt.Sprintf("key(%d)", k.Code.Key)
		}
	}

	for _, m := range []struct {
		mask tcell.ModMask
		name string
	}{
		{tcell.ModCtrl, "ctrl"},
		{tcell.ModAlt, "alt"},
		{tcell.ModShift, "shift"},
		{tcell.ModMeta, "meta"},
	} {
		if mods&m.mask != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(key)
	return b.String()
}
